// Package miss implements the miss handler: eviction, snoop, and
// fill, including the choice of the fetched line's final MESI state.
package miss

import (
	"github.com/cachelab/mesi4sim/internal/cache"
	"github.com/cachelab/mesi4sim/internal/counters"
	"github.com/cachelab/mesi4sim/internal/snoop"
)

// Outcome reports what the miss handler did, so the scheduler can
// compute the transaction's bus-busy duration and the initiator's
// stall.
type Outcome struct {
	FinalState     cache.State
	Supplied       bool // cache-to-cache transfer vs. memory fetch
	DirtyEviction  bool // initiator's own victim was Modified and flushed
	ExtraBusCycles int  // additional bus-busy cycles from a remote writeback during snoop
}

// Handle is triggered by the scheduler for a dequeued non-writeback
// request classified as a miss on its initiator. It picks a victim,
// evicts and writes it back if dirty, snoops the other caches, and
// installs the new line. Evictions are counted for any non-Invalid
// victim, and a write miss always fetches from memory after
// invalidating remote copies: there is no cache-to-cache transfer on
// writes.
//
// Grounded on original_source/bus.cpp's handleMiss, with eviction
// counting generalized from "Modified or Exclusive" to "any non-Invalid
// state."
func Handle(caches []*cache.Cache, geom cache.Geometry, global *counters.Global, obs counters.Observer, core int, addr uint32, isWrite bool) Outcome {
	initiator := caches[core]
	blockSize := uint64(geom.BlockSize())

	set := initiator.Set(addr)
	victim := set.Victim()
	victimLine := set.Lines[victim]

	var out Outcome

	if victimLine.State != cache.Invalid {
		initiator.Counters.Evictions++
		if victimLine.State == cache.Modified {
			out.DirtyEviction = true
			global.BusDataTraffic += blockSize
			initiator.Counters.DataTraffic += blockSize
			initiator.Counters.Writebacks++
		}
		if obs != nil {
			obs.ObserveEviction(core, out.DirtyEviction)
		}
	}

	snoopRes := snoop.Respond(caches, geom, core, addr, isWrite, global)
	out.ExtraBusCycles = snoopRes.ExtraBusCycles

	// A write miss always fetches from memory after invalidating
	// remote copies; there is no cache-to-cache transfer on writes.
	supplied := !isWrite && snoopRes.Supplied
	out.Supplied = supplied

	initiator.Counters.Misses++

	switch {
	case isWrite:
		out.FinalState = cache.Modified
	case supplied:
		out.FinalState = cache.Shared
	default:
		out.FinalState = cache.Exclusive
	}

	if supplied {
		initiator.Counters.MemoryCycles += uint64(2 * geom.WordsPerBlock())
	} else {
		global.BusDataTraffic += blockSize
		initiator.Counters.DataTraffic += blockSize
		initiator.Counters.MemoryCycles += 100
	}

	initiator.Install(addr, victim, out.FinalState)

	if obs != nil {
		obs.ObserveMiss(core, isWrite)
	}

	return out
}
