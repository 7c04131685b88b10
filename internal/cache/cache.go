package cache

import "github.com/cachelab/mesi4sim/internal/counters"

// Result classifies a reference against the local cache state.
type Result struct {
	Way    int
	State  State
	Hit    bool
	Upgrade bool // not set by Classify, which does not know the operation; callers detect a write hit to Shared from State
}

// Cache is one core's private L1: its sets, geometry, per-core
// counters, and stall countdown. Counters are only ever incremented by
// callers (the core driver, snoop responder, and miss handler);
// Classify itself never mutates a counter.
type Cache struct {
	Geometry       Geometry
	Sets           []Set
	Counters       counters.PerCore
	StallRemaining int
}

// New constructs an empty cache with the given geometry.
func New(geom Geometry) *Cache {
	sets := make([]Set, geom.NumSets())
	for i := range sets {
		sets[i] = newSet(geom.Assoc)
	}
	return &Cache{Geometry: geom, Sets: sets}
}

// Classify decodes addr and reports whether it hits locally, and if
// so, in what state. It never mutates cache state or counters.
func (c *Cache) Classify(addr uint32) Result {
	tag, setIdx, _ := c.Geometry.Decode(addr)
	set := &c.Sets[setIdx]
	way, ok := set.Lookup(tag)
	if !ok {
		return Result{Hit: false}
	}
	return Result{Way: way, State: set.Lines[way].State, Hit: true}
}

// Set returns the set addr maps to.
func (c *Cache) Set(addr uint32) *Set {
	_, setIdx, _ := c.Geometry.Decode(addr)
	return &c.Sets[setIdx]
}

// PromoteOnWrite sets the line at way to Modified and touches it, for
// a write hit to Modified or Exclusive.
func (c *Cache) PromoteOnWrite(addr uint32, way int) {
	set := c.Set(addr)
	set.Lines[way].State = Modified
	set.Touch(way)
}

// UpgradeToModified transitions a write-hit-to-Shared line to Modified
// in place, after the bus upgrade transaction has invalidated remote
// copies. It does not change the LRU rank beyond a touch, matching a
// normal hit.
func (c *Cache) UpgradeToModified(addr uint32, way int) {
	set := c.Set(addr)
	set.Lines[way].State = Modified
	set.Touch(way)
}

// Install writes tag and state into way and touches it (making it
// MRU). Used by the miss handler after eviction and snoop.
func (c *Cache) Install(addr uint32, way int, state State) {
	tag, _, _ := c.Geometry.Decode(addr)
	set := c.Set(addr)
	set.Lines[way].Tag = tag
	set.Lines[way].State = state
	set.Touch(way)
}

// Invalidate forces the line at way to Invalid, used by the snoop
// responder when a remote transaction invalidates this cache's copy.
func (c *Cache) Invalidate(setIdx, way int) {
	c.Sets[setIdx].Lines[way].State = Invalid
}

// SetState overwrites the MESI state of the line at way without
// touching its LRU rank, used by the snoop responder to downgrade a
// remote line to Shared in response to someone else's transaction.
func (c *Cache) SetState(addr uint32, way int, state State) {
	c.Set(addr).Lines[way].State = state
}
