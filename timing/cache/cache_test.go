package cache_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/c8sim/emu"
	"github.com/sarchlab/c8sim/insts"
	"github.com/sarchlab/c8sim/timing/cache"
)

// countingBacking records how many lines were filled.
type countingBacking struct {
	inner *cache.DecoderBacking
	fills int
}

func (b *countingBacking) Fill(base uint16, line []insts.Instruction) {
	b.fills++
	b.inner.Fill(base, line)
}

var _ = Describe("Cache", func() {
	var (
		c       *cache.Cache
		backing *countingBacking
	)

	BeforeEach(func() {
		backing = &countingBacking{inner: cache.NewDecoderBacking(insts.NewDecoder())}
		// Small cache for testing: 64 words, 2-way, 8-word lines
		config := cache.Config{
			Size:          64,
			Associativity: 2,
			BlockSize:     8,
		}
		c = cache.New(config, backing)
	})

	Describe("Lookup", func() {
		It("should miss on a cold cache", func() {
			_, ok := c.Lookup(0x6A2F)

			Expect(ok).To(BeFalse())
			stats := c.Stats()
			Expect(stats.Lookups).To(Equal(uint64(1)))
			Expect(stats.Misses).To(Equal(uint64(1)))
			Expect(stats.Hits).To(BeZero())
		})

		It("should hit after an insert", func() {
			decoder := insts.NewDecoder()
			c.Insert(decoder.DecodeValue(0x6A2F))

			inst, ok := c.Lookup(0x6A2F)

			Expect(ok).To(BeTrue())
			Expect(inst.Op).To(Equal(insts.OpLDImm))
			Expect(inst.NN).To(Equal(uint8(0x2F)))
		})

		It("should hit on other words of the same line", func() {
			c.Insert(insts.NewDecoder().DecodeValue(0x6A28))

			inst, ok := c.Lookup(0x6A2F)

			Expect(ok).To(BeTrue())
			Expect(inst.Word).To(Equal(uint16(0x6A2F)))
			Expect(backing.fills).To(Equal(1))
		})
	})

	Describe("Decode", func() {
		It("should fill on a miss and hit afterwards", func() {
			first := c.Decode(0xD125)
			second := c.Decode(0xD125)

			Expect(first).To(Equal(second))
			Expect(first.Op).To(Equal(insts.OpDRW))
			Expect(c.Stats().Hits).To(Equal(uint64(1)))
			Expect(c.Stats().Fills).To(Equal(uint64(1)))
		})

		It("should agree with the decoder for every word", func() {
			decoder := insts.NewDecoder()
			for w := 0; w < 0x10000; w += 7 {
				Expect(c.Decode(uint16(w))).To(Equal(decoder.DecodeValue(uint16(w))))
			}
		})
	})

	Describe("Eviction", func() {
		It("should evict the least recently used line", func() {
			// 64 words / (2 ways * 8 words) = 4 sets. Lines 0x00, 0x20
			// and 0x40 all map to set 0.
			c.Decode(0x0000)
			c.Decode(0x0020)
			c.Decode(0x0000)
			c.Decode(0x0040)

			Expect(c.Stats().Evictions).To(Equal(uint64(1)))

			_, ok := c.Lookup(0x0000)
			Expect(ok).To(BeTrue())
			_, ok = c.Lookup(0x0020)
			Expect(ok).To(BeFalse())
		})
	})

	Describe("Reset", func() {
		It("should drop lines and statistics", func() {
			c.Decode(0x1234)
			c.Reset()

			Expect(c.Stats()).To(Equal(cache.Statistics{}))
			_, ok := c.Lookup(0x1234)
			Expect(ok).To(BeFalse())
		})
	})

	Describe("Config", func() {
		It("should validate the default geometry", func() {
			Expect(cache.DefaultConfig().Validate()).To(Succeed())
		})

		It("should reject geometries without whole sets", func() {
			cfg := cache.Config{Size: 100, Associativity: 3, BlockSize: 8}
			Expect(cfg.Validate()).ToNot(Succeed())
		})

		It("should report hit rate", func() {
			Expect(cache.Statistics{}.HitRate()).To(BeZero())
			Expect(cache.Statistics{Lookups: 4, Hits: 3}.HitRate()).To(Equal(0.75))
		})
	})

	Describe("As an interpreter decode cache", func() {
		It("should serve repeated loop bodies from cache", func() {
			s := emu.Init()
			Expect(emu.LoadProgram(s, insts.Program(0x7001, 0x1200))).To(Succeed())
			dc := cache.New(cache.DefaultConfig(), nil)
			it := emu.NewInterpreter(s, emu.WithDecodeCache(dc))

			it.Run(100)

			Expect(s.V[0]).To(Equal(uint8(50)))
			Expect(dc.Stats().Hits).To(Equal(uint64(98)))
		})
	})
})
