// Package mesi4sim replays per-core memory reference traces against a
// simulated four-core MESI snooping-bus multiprocessor and reports the
// resulting coherence and performance counters.
package mesi4sim

import (
	"os"

	"github.com/cachelab/mesi4sim/internal/report"
	"github.com/cachelab/mesi4sim/internal/simctrl"
)

// Run validates config, replays its traces to completion, writes the
// report to config.OutPath, and returns the simulation's result:
// validate parameters, construct the orchestrating controller, run
// it, and hand back something the caller can inspect without
// re-deriving it.
func Run(config Config) (*simctrl.Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	ctrl, err := simctrl.NewController(simctrl.Config{
		TracePrefix:  config.TracePrefix,
		SetIndexBits: config.SetIndexBits,
		Assoc:        config.Assoc,
		BlockBits:    config.BlockBits,
		Observer:     config.Observer,
		Logger:       config.Logger,
	})
	if err != nil {
		// An invalid geometry is a configuration mistake, not an I/O failure.
		return nil, &Error{Op: "Run", Core: -1, Code: ErrCodeConfig, Msg: err.Error(), Inner: err}
	}

	result, err := ctrl.Run()
	if err != nil {
		return nil, WrapError("Run", err)
	}

	out, err := os.Create(config.OutPath)
	if err != nil {
		return nil, NewIOError("Run", err)
	}
	defer out.Close()

	params := report.Params{
		TracePrefix:  config.TracePrefix,
		SetIndexBits: config.SetIndexBits,
		Assoc:        config.Assoc,
		BlockBits:    config.BlockBits,
	}
	if err := report.Write(out, params, result.Geometry, result.PerCore, result.Global); err != nil {
		return nil, NewIOError("Run", err)
	}

	return result, nil
}
