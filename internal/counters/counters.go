// Package counters aggregates per-core and global performance statistics
// for the simulator and exposes a pluggable Observer interface for
// recording coherence events as they happen.
package counters

// PerCore holds the performance counters attributed to a single core's
// cache, per the data model's Cache counter fields.
type PerCore struct {
	Reads        uint64
	Writes       uint64
	Misses       uint64
	Evictions    uint64
	Writebacks   uint64
	Invalidations uint64
	DataTraffic  uint64 // bytes of bus traffic attributed to this core
	HitCycles    uint64
	MemoryCycles uint64
	IdleCycles   uint64
}

// ExecutionCycles is the per-core total execution cycle count:
// hit_cycles + memory_cycles, per the output file format.
func (c *PerCore) ExecutionCycles() uint64 {
	return c.HitCycles + c.MemoryCycles
}

// MissRate returns misses / (reads+writes), or 0 if there were no accesses.
func (c *PerCore) MissRate() float64 {
	total := c.Reads + c.Writes
	if total == 0 {
		return 0
	}
	return float64(c.Misses) / float64(total)
}

// Global holds counters aggregated across all cores and the bus itself.
type Global struct {
	TotalCycles      uint64
	Invalidations    uint64
	BusDataTraffic   uint64
	BusTransactions  uint64
}

// Observer is notified of coherence events as the scheduler processes
// them, independent of the PerCore/Global bookkeeping that feeds the
// final report. It exists so tests and external tooling can watch the
// simulation without reaching into scheduler internals. The scheduler
// and miss handler report hits, misses, evictions, and bus
// transactions; they never call ObserveInvalidation.
type Observer interface {
	ObserveHit(core int, isWrite bool)
	ObserveMiss(core int, isWrite bool)
	ObserveEviction(core int, dirty bool)
	ObserveInvalidation(core int, count int)
	ObserveBusTransaction(core int, busyCycles int)
}

// NoOpObserver discards every event.
type NoOpObserver struct{}

func (NoOpObserver) ObserveHit(int, bool)                 {}
func (NoOpObserver) ObserveMiss(int, bool)                {}
func (NoOpObserver) ObserveEviction(int, bool)            {}
func (NoOpObserver) ObserveInvalidation(int, int)         {}
func (NoOpObserver) ObserveBusTransaction(int, int)       {}

// CountingObserver records every event it is given, for use in tests
// that want to assert on the sequence and shape of coherence activity
// without parsing a rendered report.
type CountingObserver struct {
	Hits          int
	Misses        int
	Evictions     int
	DirtyEvictions int
	Invalidations int
	BusTransactions int
}

func (o *CountingObserver) ObserveHit(int, bool)  { o.Hits++ }
func (o *CountingObserver) ObserveMiss(int, bool) { o.Misses++ }

func (o *CountingObserver) ObserveEviction(core int, dirty bool) {
	o.Evictions++
	if dirty {
		o.DirtyEvictions++
	}
}

func (o *CountingObserver) ObserveInvalidation(core int, count int) {
	o.Invalidations += count
}

func (o *CountingObserver) ObserveBusTransaction(core int, busyCycles int) {
	o.BusTransactions++
}

var _ Observer = (*CountingObserver)(nil)
var _ Observer = NoOpObserver{}
