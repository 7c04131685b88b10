// Package cache implements the per-core MESI cache: address decoding,
// set/way storage with LRU replacement, and hit/miss classification.
package cache

import "fmt"

// Geometry describes a cache's shape: block size, set count, and
// associativity. It is immutable after construction and identical
// across all four per-core caches in a simulation.
type Geometry struct {
	SetIndexBits uint
	Assoc        int
	BlockBits    uint

	numSets       int
	blockSize     int
	blockOffMask  uint32
	setIndexMask  uint32
	tagShift      uint
}

// NewGeometry validates and constructs a Geometry from set-index bits,
// associativity, and block-offset bits.
func NewGeometry(setIndexBits uint, assoc int, blockBits uint) (Geometry, error) {
	if assoc <= 0 {
		return Geometry{}, fmt.Errorf("associativity must be positive, got %d", assoc)
	}
	if setIndexBits+blockBits >= 32 {
		return Geometry{}, fmt.Errorf("set-index bits (%d) + block bits (%d) must be less than 32", setIndexBits, blockBits)
	}
	g := Geometry{
		SetIndexBits: setIndexBits,
		Assoc:        assoc,
		BlockBits:    blockBits,
		numSets:      1 << setIndexBits,
		blockSize:    1 << blockBits,
	}
	g.blockOffMask = uint32(g.blockSize - 1)
	g.setIndexMask = uint32(g.numSets - 1)
	g.tagShift = setIndexBits + blockBits
	return g, nil
}

// NumSets returns the number of sets, 2^SetIndexBits.
func (g Geometry) NumSets() int { return g.numSets }

// BlockSize returns the block size in bytes, 2^BlockBits.
func (g Geometry) BlockSize() int { return g.blockSize }

// WordsPerBlock returns the number of 4-byte words per block.
func (g Geometry) WordsPerBlock() int { return g.blockSize / 4 }

// TagBits returns the number of tag bits, 32 - SetIndexBits - BlockBits.
func (g Geometry) TagBits() uint { return 32 - g.SetIndexBits - g.BlockBits }

// TotalBytes returns the total cache capacity: sets * assoc * block size.
func (g Geometry) TotalBytes() int { return g.numSets * g.Assoc * g.blockSize }

// Decode splits a byte address into (tag, set index, block offset) per
// block_offset = addr mod 2^b, set_index = (addr >> b) mod 2^s,
// tag = addr >> (s+b). Pure, total, deterministic.
func (g Geometry) Decode(addr uint32) (tag uint32, setIndex int, blockOffset uint32) {
	blockOffset = addr & g.blockOffMask
	setIndex = int((addr >> g.BlockBits) & g.setIndexMask)
	tag = addr >> g.tagShift
	return tag, setIndex, blockOffset
}

// BlockAddr returns the address with the block offset masked off,
// identifying the block that addr belongs to.
func (g Geometry) BlockAddr(addr uint32) uint32 {
	return addr &^ g.blockOffMask
}
