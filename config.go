package mesi4sim

import (
	"github.com/cachelab/mesi4sim/internal/constants"
	"github.com/cachelab/mesi4sim/internal/counters"
	"github.com/cachelab/mesi4sim/internal/logging"
)

// Config describes one simulation run: the trace files to replay, the
// cache geometry to replay them against, and where to write the
// report.
type Config struct {
	// TracePrefix identifies the four trace files
	// <prefix>_proc0.trace .. <prefix>_proc3.trace.
	TracePrefix string

	// SetIndexBits, Assoc, and BlockBits describe the cache geometry
	// shared by all four cores.
	SetIndexBits uint
	Assoc        int
	BlockBits    uint

	// OutPath is where the report is written.
	OutPath string

	// Observer, if non-nil, is notified of coherence events as they
	// happen. Defaults to a no-op observer.
	Observer counters.Observer

	// Logger defaults to logging.Default() when nil.
	Logger *logging.Logger
}

// DefaultConfig returns a Config with the default cache geometry;
// TracePrefix and OutPath are left for the caller to fill in, since
// they have no sensible default.
func DefaultConfig() Config {
	return Config{
		SetIndexBits: constants.DefaultSetIndexBits,
		Assoc:        constants.DefaultAssoc,
		BlockBits:    constants.DefaultBlockBits,
	}
}

// Validate checks the configuration for the mistakes the CLI can make:
// a missing trace prefix or output path, and a non-positive
// associativity. The geometry's bit-width limit (set-index plus block
// bits below 32) is checked by cache.NewGeometry when the simulation
// actually builds its caches;
// Validate front-loads the parts a user is most likely to get wrong so
// the error is reported before any file I/O happens.
func (c Config) Validate() error {
	if c.TracePrefix == "" {
		return NewConfigError("Validate", "trace prefix is required (-t)")
	}
	if c.OutPath == "" {
		return NewConfigError("Validate", "output path is required (-o)")
	}
	if c.Assoc <= 0 {
		return NewConfigError("Validate", "associativity must be positive (-E)")
	}
	return nil
}
