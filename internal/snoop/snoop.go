// Package snoop implements the bus's snoop responder: visiting every
// non-initiator cache in response to a dispatched transaction and
// updating their MESI state.
package snoop

import (
	"github.com/cachelab/mesi4sim/internal/cache"
	"github.com/cachelab/mesi4sim/internal/counters"
)

// Result carries back what the responder observed so the caller (the
// miss handler or the scheduler's bus-dispatch step) can decide the
// transaction's final duration and the initiator's resulting state.
type Result struct {
	Shared      bool
	Supplied    bool
	Invalidated bool // true if any remote copy was invalidated

	// ExtraBusCycles accounts for a remote cache flushing a Modified
	// line to memory as part of this transaction's invalidation walk
	// (grounded on original_source/bus.cpp's snoopBus, which adds 100
	// bus-busy cycles the moment it finds a remote Modified line during
	// a write transaction).
	ExtraBusCycles int
}

// Respond walks every cache in caches other than initiator, looking
// for a line in the set addressed by addr whose tag matches.
//   - on a write transaction, any matching valid remote line is
//     invalidated; if it was Modified, the remote first writes it back;
//   - on a read transaction, a matching remote line supplies the block
//     (Modified or Exclusive remotes transition to Shared; a Shared
//     remote also supplies but does not re-add transfer cost past the
//     first supplier) and both ends up Shared.
func Respond(caches []*cache.Cache, geom cache.Geometry, initiator int, addr uint32, isWrite bool, global *counters.Global) Result {
	var res Result
	tag, setIdx, _ := geom.Decode(addr)
	blockSize := uint64(geom.BlockSize())

	for i, c := range caches {
		if i == initiator {
			continue
		}
		way, ok := c.Sets[setIdx].Lookup(tag)
		if !ok {
			continue
		}
		line := c.Sets[setIdx].Lines[way]

		if isWrite {
			if line.State == cache.Modified {
				global.BusDataTraffic += blockSize
				c.Counters.DataTraffic += blockSize
				c.Counters.Writebacks++
				res.ExtraBusCycles += 100
			}
			if !res.Shared {
				res.Supplied = true
				res.Shared = true
			}
			c.Invalidate(setIdx, way)
			global.Invalidations++
			res.Invalidated = true
			continue
		}

		// Read transaction: Modified, Exclusive, and Shared remotes all
		// supply the block and transition to Shared; transfer cost is
		// billed globally once, for the first supplier only.
		switch line.State {
		case cache.Modified, cache.Exclusive:
			c.SetState(addr, way, cache.Shared)
			if !res.Shared {
				global.BusDataTraffic += blockSize
			}
			res.Supplied = true
			res.Shared = true
		case cache.Shared:
			res.Supplied = true
			if !res.Shared {
				global.BusDataTraffic += blockSize
			}
			res.Shared = true
		}
	}

	if res.Invalidated {
		caches[initiator].Counters.Invalidations++
	}

	return res
}
