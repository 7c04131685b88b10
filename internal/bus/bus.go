// Package bus implements the single shared snooping bus that
// serializes coherence transactions across the four per-core caches.
package bus

// Request describes one pending bus transaction, issued by a core
// driver on a miss or a write-hit-to-Shared upgrade. Nothing in the
// simulator sets IsWriteback: the miss handler accounts a dirty
// eviction inside the miss's own transaction instead of enqueuing a
// separate writeback request.
type Request struct {
	InitiatorCore int
	Address       uint32
	IsWrite       bool
	IsWriteback   bool
}

// Bus is the single shared resource all coherence transactions
// serialize through. It holds a FIFO of pending requests and a
// remaining-busy countdown; at most one transaction may be in flight.
// There is no internal concurrency: the scheduler is the only caller,
// and it calls in strict cycle order.
type Bus struct {
	pending         []Request
	busyRemaining   int
	currentInitiator int
	transactions    uint64
}

// New constructs an idle bus with an empty queue.
func New() *Bus {
	return &Bus{currentInitiator: -1}
}

// Enqueue appends req to the FIFO.
func (b *Bus) Enqueue(req Request) {
	b.pending = append(b.pending, req)
}

// Idle reports whether the bus can start a new transaction this cycle.
func (b *Bus) Idle() bool {
	return b.busyRemaining == 0
}

// Empty reports whether the pending queue has no requests.
func (b *Bus) Empty() bool {
	return len(b.pending) == 0
}

// PeekHead returns the head of the queue without removing it. Callers
// must check !Empty() first.
func (b *Bus) PeekHead() Request {
	return b.pending[0]
}

// PopHead removes and returns the head of the queue. Callers must
// check !Empty() first.
func (b *Bus) PopHead() Request {
	req := b.pending[0]
	b.pending = b.pending[1:]
	return req
}

// SetBusy records the duration of the transaction just dispatched and
// which core initiated it, and increments the transaction count.
func (b *Bus) SetBusy(cycles int, initiatorCore int) {
	b.busyRemaining = cycles
	b.currentInitiator = initiatorCore
	b.transactions++
}

// Tick decrements the busy countdown by one at the end of a cycle, if
// any busy time remains, and clears the current initiator once the bus
// goes idle.
func (b *Bus) Tick() {
	if b.busyRemaining > 0 {
		b.busyRemaining--
		if b.busyRemaining == 0 {
			b.currentInitiator = -1
		}
	}
}

// BusyRemaining reports the cycles left before the bus is idle again.
func (b *Bus) BusyRemaining() int {
	return b.busyRemaining
}

// CurrentInitiator reports the core that owns the in-flight
// transaction, or -1 if the bus is idle.
func (b *Bus) CurrentInitiator() int {
	return b.currentInitiator
}

// Transactions reports the total number of transactions dispatched.
func (b *Bus) Transactions() uint64 {
	return b.transactions
}
