// Validate the decoder - decodes every 16-bit word, checks the decode cache
// agrees with the plain decoder, and measures allocations.
package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/sarchlab/c8sim/insts"
	"github.com/sarchlab/c8sim/timing/cache"
)

const wordSpace = 1 << 16

func main() {
	decoder := insts.NewDecoder()
	dc := cache.New(cache.DefaultConfig(), nil)

	// Per-op coverage and cache agreement over the whole encoding space
	var counts [insts.NumOps]int
	mismatches := 0
	for w := 0; w < wordSpace; w++ {
		word := uint16(w)
		inst := decoder.DecodeValue(word)
		counts[inst.Op]++

		if dc.Decode(word) != inst {
			mismatches++
		}
	}

	// Measure allocations on the hot path
	runtime.GC()
	var m1, m2 runtime.MemStats
	runtime.ReadMemStats(&m1)

	start := time.Now()
	iterations := 20
	for i := 0; i < iterations; i++ {
		for w := 0; w < wordSpace; w++ {
			_ = decoder.DecodeValue(uint16(w))
		}
	}

	elapsed := time.Since(start)
	runtime.ReadMemStats(&m2)

	totalDecodes := iterations * wordSpace
	allocations := m2.Mallocs - m1.Mallocs

	fmt.Printf("Decoder Validation Results:\n")
	fmt.Printf("===========================\n")
	for op := insts.Op(0); int(op) < insts.NumOps; op++ {
		fmt.Printf("  %-8s %-6d", fmt.Sprintf("%d:%s", op, op), counts[op])
		if (int(op)+1)%4 == 0 {
			fmt.Println()
		}
	}
	fmt.Println()
	fmt.Printf("Undefined encodings: %d of %d\n", counts[insts.OpUnknown], wordSpace)
	fmt.Printf("Cache mismatches: %d\n", mismatches)
	fmt.Printf("Total decode operations: %d\n", totalDecodes)
	fmt.Printf("Time elapsed: %v\n", elapsed)
	fmt.Printf("Decodes per second: %.0f\n", float64(totalDecodes)/elapsed.Seconds())
	fmt.Printf("Allocations: %d\n", allocations)

	failed := false
	for op := insts.Op(1); int(op) < insts.NumOps; op++ {
		if counts[op] == 0 {
			fmt.Printf("FAIL: no encoding decodes to %s (op %d)\n", op, op)
			failed = true
		}
	}
	if mismatches > 0 {
		fmt.Printf("FAIL: decode cache disagrees with the decoder\n")
		failed = true
	}
	if failed {
		os.Exit(1)
	}

	fmt.Printf("\nOK: every operation reachable, cache consistent.\n")
}
