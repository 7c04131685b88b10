package coredriver

import (
	"testing"

	"github.com/cachelab/mesi4sim/internal/bus"
	"github.com/cachelab/mesi4sim/internal/cache"
	"github.com/cachelab/mesi4sim/internal/counters"
	"github.com/cachelab/mesi4sim/internal/trace"
)

func newGeom(t *testing.T) cache.Geometry {
	t.Helper()
	geom, err := cache.NewGeometry(1, 2, 4)
	if err != nil {
		t.Fatalf("NewGeometry() error = %v", err)
	}
	return geom
}

func TestStepReadHitAdvancesHead(t *testing.T) {
	geom := newGeom(t)
	c := cache.New(geom)
	c.Install(0x0, 0, cache.Exclusive)

	d := New(Config{Core: 0, Cache: c, Trace: trace.Trace{{Op: trace.Read, Addr: 0x0}}})
	b := bus.New()

	d.Step(b, counters.NoOpObserver{})

	if !d.Done() {
		t.Errorf("Done() = false, want true after consuming the only reference")
	}
	if c.Counters.Reads != 1 || c.Counters.HitCycles != 1 {
		t.Errorf("Counters = %+v, want Reads=1 HitCycles=1", c.Counters)
	}
	if !b.Empty() {
		t.Errorf("bus not empty after a pure hit")
	}
}

func TestStepWriteHitToModifiedIsPureHit(t *testing.T) {
	geom := newGeom(t)
	c := cache.New(geom)
	c.Install(0x0, 0, cache.Modified)

	d := New(Config{Core: 0, Cache: c, Trace: trace.Trace{{Op: trace.Write, Addr: 0x0}}})
	b := bus.New()

	d.Step(b, counters.NoOpObserver{})

	if c.Counters.Writes != 1 || c.Counters.HitCycles != 1 {
		t.Errorf("Counters = %+v, want Writes=1 HitCycles=1", c.Counters)
	}
	if !b.Empty() {
		t.Errorf("bus not empty after a write hit to Modified")
	}
}

func TestStepWriteHitToSharedNeedsBus(t *testing.T) {
	geom := newGeom(t)
	c := cache.New(geom)
	c.Install(0x0, 0, cache.Shared)

	d := New(Config{Core: 0, Cache: c, Trace: trace.Trace{{Op: trace.Write, Addr: 0x0}}})
	b := bus.New()

	d.Step(b, counters.NoOpObserver{})

	if c.Counters.Writes != 0 || c.Counters.HitCycles != 0 {
		t.Errorf("Counters = %+v, want no pure-hit accounting for a Shared write hit", c.Counters)
	}
	if b.Empty() {
		t.Fatalf("write hit to Shared should enqueue a bus request")
	}
	req := b.PeekHead()
	if req.InitiatorCore != 0 || !req.IsWrite {
		t.Errorf("enqueued request = %+v, want a write request from core 0", req)
	}
	if !d.Done() {
		t.Errorf("Done() = false, want true: head advances past the enqueued upgrade")
	}
}

func TestStepMissEnqueuesRequest(t *testing.T) {
	geom := newGeom(t)
	c := cache.New(geom)

	d := New(Config{Core: 1, Cache: c, Trace: trace.Trace{{Op: trace.Read, Addr: 0x0}}})
	b := bus.New()

	d.Step(b, counters.NoOpObserver{})

	if b.Empty() {
		t.Fatalf("miss should enqueue a bus request")
	}
	req := b.PeekHead()
	if req.InitiatorCore != 1 || req.IsWrite {
		t.Errorf("enqueued request = %+v, want a read request from core 1", req)
	}
	if c.Counters.Reads != 1 {
		t.Errorf("Reads = %d, want 1: a miss still counts as a reference", c.Counters.Reads)
	}
}

func TestStepBlockedWhenBusBusy(t *testing.T) {
	geom := newGeom(t)
	c := cache.New(geom)

	d := New(Config{Core: 0, Cache: c, Trace: trace.Trace{{Op: trace.Read, Addr: 0x0}}})
	b := bus.New()
	b.SetBusy(5, 1)

	d.Step(b, counters.NoOpObserver{})

	if !b.Empty() {
		t.Errorf("core 0's request should not enqueue while the bus serves another transaction")
	}
	if c.Counters.IdleCycles != 1 {
		t.Errorf("IdleCycles = %d, want 1", c.Counters.IdleCycles)
	}
}

func TestStepDecrementsActiveStall(t *testing.T) {
	geom := newGeom(t)
	c := cache.New(geom)
	c.StallRemaining = 2

	d := New(Config{Core: 0, Cache: c, Trace: trace.Trace{{Op: trace.Read, Addr: 0x0}}})
	b := bus.New()

	d.Step(b, counters.NoOpObserver{})
	if c.StallRemaining != 1 {
		t.Errorf("StallRemaining = %d, want 1", c.StallRemaining)
	}
	if c.Counters.Reads != 0 {
		t.Errorf("Reads = %d, want 0: a stalled core makes no progress", c.Counters.Reads)
	}
}
