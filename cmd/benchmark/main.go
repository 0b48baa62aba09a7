// Command benchmark runs the c8sim interpreter benchmark harness.
//
// Usage:
//
//	go run ./cmd/benchmark [flags]
//
// Flags:
//
//	-csv       Output results in CSV format (default: human-readable)
//	-json      Output results as a JSON report
//	-no-cache  Disable the decode cache
//	-modern    Run in modern compatibility mode
//	-core      Run only the core benchmarks
//
// Example:
//
//	# Compare decode cache on and off
//	go run ./cmd/benchmark -csv > cached.csv
//	go run ./cmd/benchmark -csv -no-cache > plain.csv
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/retrogolib/buildinfo"

	"github.com/sarchlab/c8sim/benchmarks"
	"github.com/sarchlab/c8sim/emu"
)

var (
	version = "0.1.0"
	commit  = ""
	date    = ""
)

func main() {
	// Parse flags
	csvOutput := flag.Bool("csv", false, "Output results in CSV format")
	jsonOutput := flag.Bool("json", false, "Output results as a JSON report")
	noCache := flag.Bool("no-cache", false, "Disable the decode cache")
	modern := flag.Bool("modern", false, "Run in modern compatibility mode")
	coreOnly := flag.Bool("core", false, "Run only the core benchmarks")
	flag.Parse()

	// Configure harness
	config := benchmarks.DefaultConfig()
	config.EnableDecodeCache = !*noCache
	config.Version = buildinfo.Version(version, commit, date)
	config.Output = os.Stdout
	if *modern {
		config.Mode = emu.ModeModern
	}

	harness := benchmarks.NewHarness(config)
	if *coreOnly {
		harness.AddBenchmarks(benchmarks.GetCoreBenchmarks())
	} else {
		harness.AddBenchmarks(benchmarks.GetMicrobenchmarks())
	}

	if !*csvOutput && !*jsonOutput {
		fmt.Println("c8sim Benchmark Harness")
		fmt.Println("=======================")
		fmt.Printf("Version:      %s\n", config.Version)
		fmt.Printf("Mode:         %s\n", config.Mode)
		fmt.Printf("Decode cache: %v\n", config.EnableDecodeCache)
		fmt.Println("")
	}

	results := harness.RunAll()

	switch {
	case *jsonOutput:
		if err := harness.PrintJSON(results); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing JSON: %v\n", err)
			os.Exit(1)
		}
	case *csvOutput:
		harness.PrintCSV(results)
	default:
		harness.PrintResults(results)
	}

	for _, r := range results {
		if r.Error != "" {
			os.Exit(1)
		}
	}
}
