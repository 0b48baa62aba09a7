// Package benchmarks provides throughput benchmark infrastructure for the
// CHIP-8 interpreter.
package benchmarks

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sarchlab/c8sim/emu"
	"github.com/sarchlab/c8sim/insts"
	"github.com/sarchlab/c8sim/timing/cache"
)

// BenchmarkResult holds the results for a single benchmark run.
type BenchmarkResult struct {
	// Name identifies the benchmark
	Name string `json:"name"`

	// Description explains what the benchmark measures
	Description string `json:"description"`

	// Steps is the number of instructions executed
	Steps uint64 `json:"steps"`

	// Completed is true if the program reached its halt loop
	Completed bool `json:"completed"`

	// Registers holds V0-VF after the run
	Registers [emu.NumRegisters]uint8 `json:"registers"`

	// LitPixels is the number of pixels on at the end of the run
	LitPixels int `json:"lit_pixels"`

	// Decode cache stats (if cache enabled)
	CacheHits    uint64  `json:"cache_hits,omitempty"`
	CacheMisses  uint64  `json:"cache_misses,omitempty"`
	CacheHitRate float64 `json:"cache_hit_rate,omitempty"`

	// Error is the step or verification error, if any
	Error string `json:"error,omitempty"`

	// WallTime is the actual time taken to run the program
	WallTime time.Duration `json:"wall_time_ns"`
}

// StepsPerSecond returns the measured interpretation rate.
func (r BenchmarkResult) StepsPerSecond() float64 {
	if r.WallTime <= 0 {
		return 0
	}
	return float64(r.Steps) / r.WallTime.Seconds()
}

// Benchmark defines a single benchmark program.
type Benchmark struct {
	// Name identifies the benchmark
	Name string

	// Description explains what the benchmark measures
	Description string

	// Program is the CHIP-8 image loaded at 0x200. It must end in a
	// jump-to-self halt loop.
	Program []byte

	// Verify checks the final state (optional)
	Verify func(s *emu.State) error
}

// HarnessConfig configures the benchmark harness.
type HarnessConfig struct {
	// EnableDecodeCache routes decoding through the decode cache
	EnableDecodeCache bool

	// Mode is the interpreter compatibility mode
	Mode emu.Mode

	// MaxSteps bounds programs that never reach their halt loop
	MaxSteps uint64

	// Version is recorded in JSON reports
	Version string

	// Output is where to write results (default: os.Stdout)
	Output io.Writer

	// Verbose enables detailed output
	Verbose bool
}

// DefaultConfig returns a default harness configuration.
func DefaultConfig() HarnessConfig {
	return HarnessConfig{
		EnableDecodeCache: true,
		Mode:              emu.ModeLegacy,
		MaxSteps:          1_000_000,
		Version:           "dev",
		Output:            os.Stdout,
	}
}

// Harness runs benchmarks and reports results.
type Harness struct {
	config     HarnessConfig
	benchmarks []Benchmark
}

// NewHarness creates a new benchmark harness.
func NewHarness(config HarnessConfig) *Harness {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	if config.MaxSteps == 0 {
		config.MaxSteps = DefaultConfig().MaxSteps
	}
	return &Harness{
		config:     config,
		benchmarks: []Benchmark{},
	}
}

// AddBenchmark adds a benchmark to the harness.
func (h *Harness) AddBenchmark(b Benchmark) {
	h.benchmarks = append(h.benchmarks, b)
}

// AddBenchmarks adds multiple benchmarks to the harness.
func (h *Harness) AddBenchmarks(benchmarks []Benchmark) {
	h.benchmarks = append(h.benchmarks, benchmarks...)
}

// RunAll executes all benchmarks and returns results.
func (h *Harness) RunAll() []BenchmarkResult {
	results := make([]BenchmarkResult, 0, len(h.benchmarks))

	for _, bench := range h.benchmarks {
		results = append(results, h.runBenchmark(bench))
	}

	return results
}

// runBenchmark executes a single benchmark.
func (h *Harness) runBenchmark(bench Benchmark) BenchmarkResult {
	result := BenchmarkResult{
		Name:        bench.Name,
		Description: bench.Description,
	}

	s := emu.Init()
	if err := emu.LoadFont(s, nil); err != nil {
		result.Error = err.Error()
		return result
	}
	if err := emu.LoadProgram(s, bench.Program); err != nil {
		result.Error = err.Error()
		return result
	}

	opts := []emu.InterpreterOption{emu.WithMode(h.config.Mode)}
	var dc *cache.Cache
	if h.config.EnableDecodeCache {
		dc = cache.New(cache.DefaultConfig(), nil)
		opts = append(opts, emu.WithDecodeCache(dc))
	}
	it := emu.NewInterpreter(s, opts...)

	start := time.Now()
	for it.InstructionCount() < h.config.MaxSteps {
		pc := s.PC
		step := it.Step()
		if step.Err != nil {
			result.Error = step.Err.Error()
			break
		}
		if isHaltLoop(step.Inst, pc) {
			result.Completed = true
			break
		}
	}
	result.WallTime = time.Since(start)

	result.Steps = it.InstructionCount()
	result.Registers = s.V
	result.LitPixels = s.Display.Lit()

	if dc != nil {
		stats := dc.Stats()
		result.CacheHits = stats.Hits
		result.CacheMisses = stats.Misses
		result.CacheHitRate = stats.HitRate()
	}

	if result.Error == "" && bench.Verify != nil {
		if err := bench.Verify(s); err != nil {
			result.Error = err.Error()
		}
	}

	if h.config.Verbose {
		_, _ = fmt.Fprintf(h.config.Output, "ran %s: %d steps\n", bench.Name, result.Steps)
	}

	return result
}

// isHaltLoop reports whether inst, fetched from pc, jumps to itself.
func isHaltLoop(inst *insts.Instruction, pc uint16) bool {
	return inst != nil && inst.Op == insts.OpJP && inst.NNN == pc
}

// PrintResults outputs benchmark results in a human-readable format.
func (h *Harness) PrintResults(results []BenchmarkResult) {
	_, _ = fmt.Fprintln(h.config.Output, "=== c8sim Benchmark Results ===")
	_, _ = fmt.Fprintln(h.config.Output, "")

	for _, r := range results {
		_, _ = fmt.Fprintf(h.config.Output, "Benchmark: %s\n", r.Name)
		_, _ = fmt.Fprintf(h.config.Output, "  Description: %s\n", r.Description)
		_, _ = fmt.Fprintf(h.config.Output, "  Completed: %t\n", r.Completed)
		_, _ = fmt.Fprintf(h.config.Output, "  Steps:      %d\n", r.Steps)
		_, _ = fmt.Fprintf(h.config.Output, "  Steps/sec:  %.0f\n", r.StepsPerSecond())
		_, _ = fmt.Fprintf(h.config.Output, "  Lit Pixels: %d\n", r.LitPixels)

		if r.CacheHits > 0 || r.CacheMisses > 0 {
			_, _ = fmt.Fprintln(h.config.Output, "  --- Decode Cache ---")
			_, _ = fmt.Fprintf(h.config.Output, "  Hits:     %d\n", r.CacheHits)
			_, _ = fmt.Fprintf(h.config.Output, "  Misses:   %d\n", r.CacheMisses)
			_, _ = fmt.Fprintf(h.config.Output, "  Hit Rate: %.1f%%\n", r.CacheHitRate*100)
		}

		if r.Error != "" {
			_, _ = fmt.Fprintf(h.config.Output, "  Error: %s\n", r.Error)
		}

		_, _ = fmt.Fprintf(h.config.Output, "  Wall Time: %v\n", r.WallTime)
		_, _ = fmt.Fprintln(h.config.Output, "")
	}
}

// PrintCSV outputs benchmark results in CSV format for easy comparison.
func (h *Harness) PrintCSV(results []BenchmarkResult) {
	_, _ = fmt.Fprintln(h.config.Output,
		"name,completed,steps,lit_pixels,cache_hits,cache_misses,wall_time_ns")

	for _, r := range results {
		_, _ = fmt.Fprintf(h.config.Output, "%s,%t,%d,%d,%d,%d,%d\n",
			r.Name,
			r.Completed,
			r.Steps,
			r.LitPixels,
			r.CacheHits,
			r.CacheMisses,
			r.WallTime.Nanoseconds(),
		)
	}
}

// BenchmarkReport is the complete output format for benchmark results.
type BenchmarkReport struct {
	// Metadata about the benchmark run
	Metadata ReportMetadata `json:"metadata"`

	// Results is the list of individual benchmark results
	Results []BenchmarkResult `json:"results"`

	// Summary contains aggregate statistics
	Summary ReportSummary `json:"summary"`
}

// ReportMetadata contains information about the benchmark run.
type ReportMetadata struct {
	Timestamp   string `json:"timestamp"`
	Version     string `json:"version"`
	Mode        string `json:"mode"`
	DecodeCache bool   `json:"decode_cache"`
}

// ReportSummary contains aggregate statistics across all benchmarks.
type ReportSummary struct {
	TotalBenchmarks int           `json:"total_benchmarks"`
	Completed       int           `json:"completed"`
	TotalSteps      uint64        `json:"total_steps"`
	TotalWallTime   time.Duration `json:"total_wall_time_ns"`
}

// PrintJSON outputs benchmark results in JSON format for automated comparison.
func (h *Harness) PrintJSON(results []BenchmarkResult) error {
	summary := ReportSummary{TotalBenchmarks: len(results)}
	for _, r := range results {
		summary.TotalSteps += r.Steps
		summary.TotalWallTime += r.WallTime
		if r.Completed {
			summary.Completed++
		}
	}

	report := BenchmarkReport{
		Metadata: ReportMetadata{
			Timestamp:   time.Now().UTC().Format(time.RFC3339),
			Version:     h.config.Version,
			Mode:        h.config.Mode.String(),
			DecodeCache: h.config.EnableDecodeCache,
		},
		Results: results,
		Summary: summary,
	}

	encoder := json.NewEncoder(h.config.Output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
