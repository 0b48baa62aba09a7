// Package main provides a profiling wrapper for c8sim to identify interpreter
// bottlenecks. The ROM runs unpaced, as fast as the host allows.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/go-logr/logr"

	"github.com/sarchlab/c8sim/config"
	"github.com/sarchlab/c8sim/emu"
	"github.com/sarchlab/c8sim/loader"
	"github.com/sarchlab/c8sim/timing/core"
)

var (
	cpuProfile  = flag.String("cpuprofile", "", "write cpu profile to file")
	memProfile  = flag.String("memprofile", "", "write memory profile to file")
	duration    = flag.Duration("duration", 30*time.Second, "max duration to run (for profiling)")
	instruction = flag.Int("max-instr", 10_000_000, "max instructions to execute")
	decodeCache = flag.Bool("cache", false, "Enable the decode cache")
	modern      = flag.Bool("modern", false, "Run in modern compatibility mode")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: profile [options] <program%s>\n", loader.ROMExtension)
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Start CPU profiling if requested
	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()

		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Error starting CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	programPath := flag.Arg(0)

	prog, err := loader.Load(programPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		os.Exit(1)
	}

	cfg := config.DefaultConfig()
	cfg.DecodeCache = *decodeCache
	if *modern {
		cfg.Mode = emu.ModeModern.String()
	}

	c, err := core.Build(cfg, nil, logr.Discard())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building machine: %v\n", err)
		os.Exit(1)
	}
	if err := c.LoadROM(prog.Data); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Loaded: %s (%d bytes)\n", prog.Name, len(prog.Data))

	start := time.Now()
	deadline := start.Add(*duration)

	runErr := runProfile(c.Interpreter, *instruction, deadline)
	instrCount := c.Interpreter.InstructionCount()

	elapsed := time.Since(start)

	// Write memory profile if requested
	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating memory profile: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()

		if err := pprof.WriteHeapProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing memory profile: %v\n", err)
		}
	}

	fmt.Printf("\nProfiling Results:\n")
	if runErr != nil {
		fmt.Printf("Stopped by: %v\n", runErr)
	}
	fmt.Printf("Instructions executed: %d\n", instrCount)
	fmt.Printf("Elapsed time: %v\n", elapsed)
	if instrCount > 0 {
		fmt.Printf("Instructions/second: %.0f\n", float64(instrCount)/elapsed.Seconds())
	}
}

// runProfile steps it until max instructions, the deadline, or a step error.
// Key waits are skipped over so headless ROMs keep running.
func runProfile(it *emu.Interpreter, limit int, deadline time.Time) error {
	const checkEvery = 4096

	for i := 0; i < limit; i++ {
		result := it.Step()
		if result.Err != nil {
			return result.Err
		}
		if result.Waiting {
			it.State().PC += 2
		}
		if i%checkEvery == 0 && time.Now().After(deadline) {
			return fmt.Errorf("timeout after %v", *duration)
		}
	}
	return nil
}
