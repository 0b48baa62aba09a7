package benchmarks_test

import (
	"bytes"
	"encoding/json"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/c8sim/benchmarks"
	"github.com/sarchlab/c8sim/emu"
	"github.com/sarchlab/c8sim/insts"
)

var _ = Describe("Harness", func() {
	var (
		out    *bytes.Buffer
		config benchmarks.HarnessConfig
	)

	BeforeEach(func() {
		out = &bytes.Buffer{}
		config = benchmarks.DefaultConfig()
		config.Output = out
	})

	It("should complete and verify every microbenchmark", func() {
		harness := benchmarks.NewHarness(config)
		harness.AddBenchmarks(benchmarks.GetMicrobenchmarks())

		results := harness.RunAll()
		Expect(results).To(HaveLen(len(benchmarks.GetMicrobenchmarks())))
		for _, r := range results {
			Expect(r.Error).To(BeEmpty(), r.Name)
			Expect(r.Completed).To(BeTrue(), r.Name)
			Expect(r.Steps).To(BeNumerically(">", 0), r.Name)
		}
	})

	It("should produce the same registers with and without the decode cache", func() {
		cached := benchmarks.NewHarness(config)
		cached.AddBenchmarks(benchmarks.GetCoreBenchmarks())

		config.EnableDecodeCache = false
		plain := benchmarks.NewHarness(config)
		plain.AddBenchmarks(benchmarks.GetCoreBenchmarks())

		a := cached.RunAll()
		b := plain.RunAll()
		for i := range a {
			Expect(a[i].Registers).To(Equal(b[i].Registers))
			Expect(a[i].Steps).To(Equal(b[i].Steps))
			Expect(a[i].CacheHits).To(BeNumerically(">", 0))
			Expect(b[i].CacheHits).To(BeZero())
		}
	})

	It("should count the exact steps of the counter loop", func() {
		harness := benchmarks.NewHarness(config)
		harness.AddBenchmark(benchmarks.GetMicrobenchmarks()[0])

		r := harness.RunAll()[0]
		// LD, then 255 ADD/SE pairs, 254 back jumps, and the halt jump.
		Expect(r.Steps).To(Equal(uint64(1 + 255*2 + 254 + 1)))
	})

	It("should stop at the step limit when no halt loop is reached", func() {
		config.MaxSteps = 50
		harness := benchmarks.NewHarness(config)
		harness.AddBenchmark(benchmarks.Benchmark{
			Name: "spin",
			Program: insts.Program(
				insts.EncodeADDImm(0, 1),
				insts.EncodeJP(0x200),
			),
		})

		r := harness.RunAll()[0]
		Expect(r.Completed).To(BeFalse())
		Expect(r.Steps).To(Equal(uint64(50)))
	})

	It("should record step errors", func() {
		harness := benchmarks.NewHarness(config)
		harness.AddBenchmark(benchmarks.Benchmark{
			Name:    "underflow",
			Program: insts.Program(insts.EncodeRET()),
		})

		r := harness.RunAll()[0]
		Expect(r.Error).To(ContainSubstring("RET"))
		Expect(r.Completed).To(BeFalse())
	})

	It("should record verification failures", func() {
		harness := benchmarks.NewHarness(config)
		harness.AddBenchmark(benchmarks.Benchmark{
			Name:    "wrong",
			Program: insts.Program(insts.EncodeLDImm(0, 1), insts.EncodeJP(0x202)),
			Verify: func(s *emu.State) error {
				if s.V[0] != 2 {
					return emu.ErrUnknownInstruction
				}
				return nil
			},
		})

		r := harness.RunAll()[0]
		Expect(r.Completed).To(BeTrue())
		Expect(r.Error).NotTo(BeEmpty())
	})

	Describe("output", func() {
		var results []benchmarks.BenchmarkResult

		BeforeEach(func() {
			harness := benchmarks.NewHarness(config)
			harness.AddBenchmarks(benchmarks.GetCoreBenchmarks())
			results = harness.RunAll()
		})

		It("should print human readable results", func() {
			benchmarks.NewHarness(config).PrintResults(results)
			Expect(out.String()).To(ContainSubstring("Benchmark: counter_loop"))
			Expect(out.String()).To(ContainSubstring("Hit Rate:"))
		})

		It("should print one CSV row per result", func() {
			benchmarks.NewHarness(config).PrintCSV(results)
			lines := strings.Split(strings.TrimSpace(out.String()), "\n")
			Expect(lines).To(HaveLen(len(results) + 1))
			Expect(lines[0]).To(HavePrefix("name,completed,steps"))
			Expect(lines[1]).To(HavePrefix("counter_loop,true,"))
		})

		It("should print a JSON report with a summary", func() {
			Expect(benchmarks.NewHarness(config).PrintJSON(results)).To(Succeed())

			var report benchmarks.BenchmarkReport
			Expect(json.Unmarshal(out.Bytes(), &report)).To(Succeed())
			Expect(report.Metadata.Mode).To(Equal("legacy"))
			Expect(report.Metadata.DecodeCache).To(BeTrue())
			Expect(report.Summary.TotalBenchmarks).To(Equal(len(results)))
			Expect(report.Summary.Completed).To(Equal(len(results)))
		})
	})
})
