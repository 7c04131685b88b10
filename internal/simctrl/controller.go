// Package simctrl implements a staged simulation lifecycle: construct,
// validate geometry, load traces, run the scheduler, and hand back the
// counters a report is rendered from.
package simctrl

import (
	"fmt"

	"github.com/cachelab/mesi4sim/internal/cache"
	"github.com/cachelab/mesi4sim/internal/counters"
	"github.com/cachelab/mesi4sim/internal/logging"
	"github.com/cachelab/mesi4sim/internal/scheduler"
	"github.com/cachelab/mesi4sim/internal/trace"
)

// Config is the simulation's geometry and trace source, independent of
// the root package's Config so this package never imports back up to
// it.
type Config struct {
	TracePrefix  string
	SetIndexBits uint
	Assoc        int
	BlockBits    uint
	Observer     counters.Observer
	Logger       *logging.Logger
}

// Controller runs one simulation from validated configuration to a
// finished result.
type Controller struct {
	config Config
	geom   cache.Geometry
	logger *logging.Logger
}

// Result is everything a report needs to render: the geometry, the
// per-core counters, and the global counters.
type Result struct {
	Geometry cache.Geometry
	PerCore  [trace.NumCores]*counters.PerCore
	Global   counters.Global
}

// NewController validates config and constructs its geometry before
// any simulation work is attempted.
func NewController(config Config) (*Controller, error) {
	geom, err := cache.NewGeometry(config.SetIndexBits, config.Assoc, config.BlockBits)
	if err != nil {
		return nil, fmt.Errorf("invalid cache geometry: %w", err)
	}
	logger := config.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &Controller{config: config, geom: geom, logger: logger}, nil
}

// Run loads the trace files, drives the scheduler to completion, and
// returns the resulting counters.
func (c *Controller) Run() (*Result, error) {
	traces, err := trace.LoadAll(c.config.TracePrefix)
	if err != nil {
		return nil, fmt.Errorf("loading traces: %w", err)
	}

	sched := scheduler.New(scheduler.Config{
		Geometry: c.geom,
		Traces:   traces,
		Observer: c.config.Observer,
		Logger:   c.logger,
	})

	global := sched.Run()

	var perCore [trace.NumCores]*counters.PerCore
	caches := sched.Caches()
	for i, cch := range caches {
		perCore[i] = &cch.Counters
	}

	return &Result{Geometry: c.geom, PerCore: perCore, Global: global}, nil
}
