// Package scheduler implements the global cycle scheduler: the tick
// loop that orders core step, bus dispatch, and clock tick, detects
// termination, and performs the final flush.
//
// Grounded on original_source/main.cpp's simulate() loop structure
// (core-step phase, termination check, bus-dispatch phase, clock
// tick), constructing every component up front, handing them to a
// loop, and reporting at the end.
package scheduler

import (
	"github.com/cachelab/mesi4sim/internal/bus"
	"github.com/cachelab/mesi4sim/internal/cache"
	"github.com/cachelab/mesi4sim/internal/coredriver"
	"github.com/cachelab/mesi4sim/internal/counters"
	"github.com/cachelab/mesi4sim/internal/logging"
	"github.com/cachelab/mesi4sim/internal/miss"
	"github.com/cachelab/mesi4sim/internal/snoop"
	"github.com/cachelab/mesi4sim/internal/trace"
)

const numCores = trace.NumCores

// Config configures a Scheduler run.
type Config struct {
	Geometry cache.Geometry
	Traces   [numCores]trace.Trace
	Observer counters.Observer
	Logger   *logging.Logger
}

// Scheduler owns the four caches, the bus, and the per-core drivers
// for one simulation run. A Scheduler instance carries everything by
// reference instead of relying on package-level state, unlike
// original_source/main.cpp.
type Scheduler struct {
	geom    cache.Geometry
	caches  [numCores]*cache.Cache
	drivers [numCores]*coredriver.Driver
	bus     *bus.Bus
	global  counters.Global
	obs     counters.Observer
	logger  *logging.Logger
	cycle   uint64
}

// New constructs a Scheduler ready to Run.
func New(config Config) *Scheduler {
	obs := config.Observer
	if obs == nil {
		obs = counters.NoOpObserver{}
	}
	logger := config.Logger
	if logger == nil {
		logger = logging.Default()
	}

	s := &Scheduler{
		geom:   config.Geometry,
		bus:    bus.New(),
		obs:    obs,
		logger: logger,
	}
	for c := 0; c < numCores; c++ {
		s.caches[c] = cache.New(config.Geometry)
		s.drivers[c] = coredriver.New(coredriver.Config{
			Core:  c,
			Cache: s.caches[c],
			Trace: config.Traces[c],
		})
	}
	return s
}

// Caches returns the per-core caches, for callers building a report
// after Run completes.
func (s *Scheduler) Caches() [numCores]*cache.Cache {
	return s.caches
}

// Global returns the aggregate counters accumulated by Run.
func (s *Scheduler) Global() counters.Global {
	return s.global
}

// Run executes the scheduler's tick loop to completion: every trace
// drained, the bus queue empty, and the bus idle. It then performs the
// final flush of any remaining Modified lines and returns the global
// counters.
func (s *Scheduler) Run() counters.Global {
	for {
		s.coreStep()

		if s.allDone() && s.bus.Empty() && s.bus.Idle() {
			break
		}

		s.busDispatch()

		s.cycle++
		s.bus.Tick()
	}

	s.global.TotalCycles = s.cycle
	s.finalFlush()
	s.global.BusTransactions = s.bus.Transactions()

	return s.global
}

func (s *Scheduler) allDone() bool {
	for _, d := range s.drivers {
		if !d.Done() {
			return false
		}
	}
	return true
}

// coreStep runs the per-cycle core-step phase in fixed core order
// 0 -> 3.
func (s *Scheduler) coreStep() {
	for _, d := range s.drivers {
		d.Step(s.bus, s.obs)
	}
}

// busDispatch runs the bus-dispatch phase: if the bus is idle and has
// a pending request, pop it, reclassify it against current cache
// state (which may have changed since it was enqueued), and either
// complete a write-hit-to-Shared upgrade or run the miss handler.
func (s *Scheduler) busDispatch() {
	if !s.bus.Idle() || s.bus.Empty() {
		return
	}

	req := s.bus.PopHead()
	initiator := s.caches[req.InitiatorCore]
	result := initiator.Classify(req.Address)

	isUpgrade := req.IsWrite && result.Hit && result.State == cache.Shared

	var busyCycles, stallAdd int

	if isUpgrade {
		snoop.Respond(s.caches[:], s.geom, req.InitiatorCore, req.Address, true, &s.global)
		initiator.UpgradeToModified(req.Address, result.Way)
		initiator.Counters.Writes++
		// The upgrade's single bus cycle is billed as a memory cycle:
		// it is not a pure local hit (a write-hit-to-Shared still needs
		// the bus to invalidate remote copies), so it must still land
		// somewhere in execution_cycles = hit_cycles + memory_cycles.
		initiator.Counters.MemoryCycles++
		busyCycles = 1
		stallAdd = 0
		if s.obs != nil {
			s.obs.ObserveBusTransaction(req.InitiatorCore, busyCycles)
		}
	} else {
		outcome := miss.Handle(s.caches[:], s.geom, &s.global, s.obs, req.InitiatorCore, req.Address, req.IsWrite)
		if outcome.Supplied {
			busyCycles = 2 * s.geom.WordsPerBlock()
			stallAdd = busyCycles - 1
		} else {
			busyCycles = 100
			stallAdd = 99
		}
		if outcome.DirtyEviction {
			busyCycles += 100
			stallAdd += 100
		}
		busyCycles += outcome.ExtraBusCycles
		stallAdd += outcome.ExtraBusCycles
		if s.obs != nil {
			s.obs.ObserveBusTransaction(req.InitiatorCore, busyCycles)
		}
	}

	s.bus.SetBusy(busyCycles, req.InitiatorCore)
	initiator.StallRemaining += stallAdd

	s.logger.WithTransaction(req.InitiatorCore, req.Address).Debug(
		"bus transaction dispatched", "write", req.IsWrite, "busy_cycles", busyCycles)
}

// finalFlush accounts for every line still Modified at termination,
// adding a 100-cycle writeback to total_cycles and to that cache's
// memory_cycles for each one.
func (s *Scheduler) finalFlush() {
	for _, c := range s.caches {
		for si := range c.Sets {
			for wi := range c.Sets[si].Lines {
				if c.Sets[si].Lines[wi].State == cache.Modified {
					s.global.TotalCycles += 100
					c.Counters.MemoryCycles += 100
				}
			}
		}
	}
}
