// Package cache provides a decoded-instruction cache built on Akita cache
// components.
//
// Lines are indexed by instruction word, not by address. Decoding is a pure
// function of the word, so self-modifying programs never leave a stale line
// behind and nothing needs invalidating on memory writes.
package cache

import (
	"fmt"

	akitacache "github.com/sarchlab/akita/v4/mem/cache"

	"github.com/sarchlab/c8sim/insts"
)

// Config holds cache configuration parameters.
type Config struct {
	// Size is the number of instruction words the cache holds.
	Size int
	// Associativity (number of ways)
	Associativity int
	// BlockSize is the number of consecutive words per line.
	BlockSize int
}

// DefaultConfig returns a 1024-entry, 4-way cache with 16-word lines.
func DefaultConfig() Config {
	return Config{
		Size:          1024,
		Associativity: 4,
		BlockSize:     16,
	}
}

// Validate checks that the geometry yields a whole number of sets.
func (c Config) Validate() error {
	if c.Size <= 0 || c.Associativity <= 0 || c.BlockSize <= 0 {
		return fmt.Errorf("cache geometry must be positive: %+v", c)
	}
	if c.Size%(c.Associativity*c.BlockSize) != 0 {
		return fmt.Errorf("size %d is not a multiple of associativity %d x block size %d",
			c.Size, c.Associativity, c.BlockSize)
	}
	return nil
}

// Cache holds predecoded instruction lines.
type Cache struct {
	config Config

	// Akita cache directory for tag/state management
	directory *akitacache.DirectoryImpl

	// Decoded lines - indexed by (setID * associativity + wayID)
	dataStore [][]insts.Instruction

	stats Statistics

	backing BackingStore
}

// Statistics holds cache performance statistics.
type Statistics struct {
	Lookups   uint64
	Hits      uint64
	Misses    uint64
	Fills     uint64
	Evictions uint64
}

// HitRate returns Hits / Lookups, or 0 before the first lookup.
func (s Statistics) HitRate() float64 {
	if s.Lookups == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Lookups)
}

// BackingStore fills a line on a miss.
type BackingStore interface {
	// Fill decodes the words base, base+1, ... into line.
	Fill(base uint16, line []insts.Instruction)
}

// New creates a new cache. A nil backing decodes with insts.Decoder.
func New(config Config, backing BackingStore) *Cache {
	if backing == nil {
		backing = NewDecoderBacking(insts.NewDecoder())
	}

	numSets := config.Size / (config.Associativity * config.BlockSize)
	totalBlocks := numSets * config.Associativity

	dataStore := make([][]insts.Instruction, totalBlocks)
	for i := range dataStore {
		dataStore[i] = make([]insts.Instruction, config.BlockSize)
	}

	return &Cache{
		config: config,
		directory: akitacache.NewDirectory(
			numSets,
			config.Associativity,
			config.BlockSize,
			akitacache.NewLRUVictimFinder(),
		),
		dataStore: dataStore,
		backing:   backing,
	}
}

// Config returns the cache configuration.
func (c *Cache) Config() Config {
	return c.config
}

// Stats returns cache statistics.
func (c *Cache) Stats() Statistics {
	return c.stats
}

// ResetStats clears cache statistics.
func (c *Cache) ResetStats() {
	c.stats = Statistics{}
}

func (c *Cache) blockIndex(block *akitacache.Block) int {
	return block.SetID*c.config.Associativity + block.WayID
}

func (c *Cache) lineAddr(word uint16) uint64 {
	bs := uint64(c.config.BlockSize)
	return (uint64(word) / bs) * bs
}

// Lookup returns the cached decoding of word.
func (c *Cache) Lookup(word uint16) (insts.Instruction, bool) {
	c.stats.Lookups++

	block := c.directory.Lookup(0, c.lineAddr(word))
	if block == nil || !block.IsValid {
		c.stats.Misses++
		return insts.Instruction{}, false
	}

	c.stats.Hits++
	c.directory.Visit(block) // Update LRU

	offset := uint64(word) - block.Tag
	return c.dataStore[c.blockIndex(block)][offset], true
}

// Insert stores inst, filling the rest of its line from the backing store.
func (c *Cache) Insert(inst insts.Instruction) {
	lineAddr := c.lineAddr(inst.Word)

	block := c.directory.Lookup(0, lineAddr)
	if block == nil || !block.IsValid {
		block = c.fill(lineAddr)
		if block == nil {
			return
		}
	}

	c.dataStore[c.blockIndex(block)][uint64(inst.Word)-lineAddr] = inst
	c.directory.Visit(block)
}

// Decode returns the decoding of word, filling its line on a miss.
func (c *Cache) Decode(word uint16) insts.Instruction {
	if inst, ok := c.Lookup(word); ok {
		return inst
	}

	block := c.fill(c.lineAddr(word))
	if block == nil {
		return insts.NewDecoder().DecodeValue(word)
	}
	c.directory.Visit(block)

	return c.dataStore[c.blockIndex(block)][uint64(word)-block.Tag]
}

// fill evicts a victim and decodes a whole line into it.
func (c *Cache) fill(lineAddr uint64) *akitacache.Block {
	victim := c.directory.FindVictim(lineAddr)
	if victim == nil {
		return nil
	}

	if victim.IsValid {
		c.stats.Evictions++
	}

	line := c.dataStore[c.blockIndex(victim)]
	c.backing.Fill(uint16(lineAddr), line)
	c.stats.Fills++

	victim.Tag = lineAddr
	victim.IsValid = true
	victim.IsDirty = false

	return victim
}

// Reset invalidates all lines and clears statistics.
func (c *Cache) Reset() {
	c.directory.Reset()
	c.stats = Statistics{}
}
