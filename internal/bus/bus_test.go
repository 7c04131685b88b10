package bus

import "testing"

func TestBusEnqueueAndDequeue(t *testing.T) {
	b := New()
	if !b.Idle() || !b.Empty() {
		t.Fatalf("new bus is not idle/empty")
	}

	b.Enqueue(Request{InitiatorCore: 0, Address: 0x10})
	b.Enqueue(Request{InitiatorCore: 1, Address: 0x20})

	if b.Empty() {
		t.Fatalf("Empty() = true after Enqueue, want false")
	}

	req := b.PopHead()
	if req.InitiatorCore != 0 || req.Address != 0x10 {
		t.Errorf("PopHead() = %+v, want the first request enqueued", req)
	}

	req = b.PopHead()
	if req.InitiatorCore != 1 {
		t.Errorf("PopHead() second call = %+v, want core 1's request", req)
	}

	if !b.Empty() {
		t.Errorf("Empty() = false after draining the queue")
	}
}

func TestBusBusyLifecycle(t *testing.T) {
	b := New()
	b.SetBusy(3, 2)

	if b.Idle() {
		t.Fatalf("Idle() = true immediately after SetBusy, want false")
	}
	if b.CurrentInitiator() != 2 {
		t.Errorf("CurrentInitiator() = %d, want 2", b.CurrentInitiator())
	}
	if b.Transactions() != 1 {
		t.Errorf("Transactions() = %d, want 1", b.Transactions())
	}

	b.Tick()
	b.Tick()
	if b.Idle() {
		t.Fatalf("Idle() = true after 2 of 3 ticks, want false")
	}
	b.Tick()
	if !b.Idle() {
		t.Errorf("Idle() = false after 3 ticks, want true")
	}

	// Ticking an idle bus is a no-op, not an underflow.
	b.Tick()
	if b.BusyRemaining() != 0 {
		t.Errorf("BusyRemaining() = %d after ticking an idle bus, want 0", b.BusyRemaining())
	}
}
