// Package coredriver implements the per-core driver: each cycle it
// advances a core's trace pointer when unblocked, classifies the next
// reference as a hit or miss, and issues bus requests on behalf of
// misses and write-hits-to-Shared.
//
// Grounded on original_source/cache.cpp's processReference for
// classification, shaped as a Config struct plus a NewX constructor
// doing one unit of work per call, with all concurrency removed: the
// scheduler is single-threaded and cooperative, so there is no
// goroutine, no channel, and no mutex here.
package coredriver

import (
	"github.com/cachelab/mesi4sim/internal/bus"
	"github.com/cachelab/mesi4sim/internal/cache"
	"github.com/cachelab/mesi4sim/internal/counters"
	"github.com/cachelab/mesi4sim/internal/trace"
)

// Config configures one core's driver.
type Config struct {
	Core  int
	Cache *cache.Cache
	Trace trace.Trace
}

// Driver owns one core's progress through its trace.
type Driver struct {
	core  int
	cache *cache.Cache
	trace trace.Trace
	head  int
}

// New constructs a Driver from its configuration.
func New(config Config) *Driver {
	return &Driver{
		core:  config.Core,
		cache: config.Cache,
		trace: config.Trace,
	}
}

// Done reports whether the core has consumed its entire trace.
func (d *Driver) Done() bool {
	return d.head >= len(d.trace)
}

// Step performs this core's core-step work for one cycle: decrementing
// an active stall, or classifying the next reference and either
// completing it locally or enqueuing a bus request.
func (d *Driver) Step(b *bus.Bus, obs counters.Observer) {
	if d.Done() {
		return
	}

	c := &d.cache.Counters

	if d.cache.StallRemaining > 0 {
		d.cache.StallRemaining--
		return
	}

	ref := d.trace[d.head]
	isWrite := ref.Op == trace.Write
	result := d.cache.Classify(ref.Addr)

	if result.Hit {
		if !isWrite || result.State == cache.Modified || result.State == cache.Exclusive {
			// Pure hit: read hit in any valid state, or write hit to
			// Modified/Exclusive.
			if isWrite {
				d.cache.PromoteOnWrite(ref.Addr, result.Way)
				c.Writes++
			} else {
				c.Reads++
			}
			c.HitCycles++
			d.head++
			if obs != nil {
				obs.ObserveHit(d.core, isWrite)
			}
			return
		}
		// Write hit to Shared: needs the bus to upgrade. Falls through
		// to the bus-request path below.
	}

	// Miss, or write-hit-to-Shared upgrade: both need the bus.
	if b.Idle() && b.Empty() {
		b.Enqueue(bus.Request{InitiatorCore: d.core, Address: ref.Addr, IsWrite: isWrite})
		if !result.Hit {
			// A genuine miss counts as a reference now; a write-hit-to-Shared
			// upgrade is already a hit and is counted as a write when the bus
			// dispatch completes the upgrade.
			if isWrite {
				c.Writes++
			} else {
				c.Reads++
			}
		}
		d.head++
		return
	}
	c.IdleCycles++
}
