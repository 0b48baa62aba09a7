// Package main provides the headless entry point for c8sim.
// c8sim runs a CHIP-8 ROM for a fixed number of frames or instructions and
// reports the final machine state.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/retroenv/retrogolib/buildinfo"

	"github.com/sarchlab/c8sim/config"
	"github.com/sarchlab/c8sim/emu"
	"github.com/sarchlab/c8sim/loader"
	"github.com/sarchlab/c8sim/logging"
	"github.com/sarchlab/c8sim/timing/core"
	"github.com/sarchlab/c8sim/video"
)

var (
	version = "0.1.0"
	commit  = ""
	date    = ""
)

type options struct {
	configPath string
	mode       string
	screen     string
	seed       uint64
	cache      bool

	frames int
	steps  int

	dump       string
	status     bool
	screenshot string
	scale      int

	verbosity int
	trace     bool
	quiet     bool

	rom string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		return 2
	}

	if !opts.quiet {
		_, _ = fmt.Fprintf(stdout, "c8sim version: %s\n\n", buildinfo.Version(version, commit, date))
	}

	if err := simulate(opts, stdout, stderr); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseArgs(args []string, stderr io.Writer) (options, error) {
	flags := flag.NewFlagSet("c8sim", flag.ContinueOnError)
	flags.SetOutput(stderr)

	var opts options
	flags.StringVar(&opts.configPath, "config", "", "Path to JSON or YAML configuration file")
	flags.StringVar(&opts.mode, "mode", "", "Compatibility mode: legacy or modern (overrides config)")
	flags.StringVar(&opts.screen, "screen", "", "Screen mode: original or extended (overrides config)")
	flags.Uint64Var(&opts.seed, "seed", 0, "Seed for the random byte source (overrides config)")
	flags.BoolVar(&opts.cache, "cache", false, "Enable the decode cache")
	flags.IntVar(&opts.frames, "frames", 600, "Number of 60 Hz frames to run")
	flags.IntVar(&opts.steps, "steps", 0, "Run exactly this many instructions instead of frames")
	flags.StringVar(&opts.dump, "dump", "", "Hex dump a memory range, as start:end")
	flags.BoolVar(&opts.status, "status", false, "Print registers and timers after the run")
	flags.StringVar(&opts.screenshot, "screenshot", "", "Write the final screen to a PNG file")
	flags.IntVar(&opts.scale, "scale", 10, "Screenshot pixel size")
	flags.IntVar(&opts.verbosity, "v", 0, "Log verbosity")
	flags.BoolVar(&opts.trace, "trace", false, "Log every executed instruction")
	flags.BoolVar(&opts.quiet, "q", false, "Do not print the version banner")

	if err := flags.Parse(args); err != nil {
		return opts, err
	}

	if flags.NArg() != 1 {
		_, _ = fmt.Fprintf(stderr, "Usage: c8sim [options] <program%s>\n", loader.ROMExtension)
		_, _ = fmt.Fprintf(stderr, "\nOptions:\n")
		flags.PrintDefaults()
		return opts, errors.New("missing ROM argument")
	}
	opts.rom = flags.Arg(0)

	return opts, nil
}

// loadConfig reads the config file, if any, and applies flag overrides.
func loadConfig(opts options) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if opts.configPath != "" {
		var err error
		cfg, err = config.LoadConfig(opts.configPath)
		if err != nil {
			return nil, err
		}
	}

	if opts.mode != "" {
		cfg.Mode = opts.mode
	}
	if opts.screen != "" {
		cfg.Screen = opts.screen
	}
	if opts.seed != 0 {
		cfg.Seed = opts.seed
	}
	if opts.cache {
		cfg.DecodeCache = true
	}

	return cfg, nil
}

func simulate(opts options, stdout, stderr io.Writer) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	verbosity := opts.verbosity
	if opts.trace && verbosity < 2 {
		verbosity = 2
	}
	logger := logging.New(stderr, verbosity)

	c, err := core.Build(cfg, nil, logger)
	if err != nil {
		return err
	}

	prog, err := loader.Load(opts.rom)
	if err != nil {
		return err
	}
	if err := c.LoadROM(prog.Data); err != nil {
		return err
	}

	if opts.steps > 0 {
		result := c.Interpreter.Run(opts.steps)
		if result.Err != nil {
			return result.Err
		}
	} else {
		c.RunFrames(opts.frames)
		if err := c.LastErr(); err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintf(stdout, "Program: %s\n", prog.Name)
	_, _ = fmt.Fprintf(stdout, "Instructions executed: %d\n", c.Interpreter.InstructionCount())

	return report(c.State(), opts, stdout)
}

func report(s *emu.State, opts options, stdout io.Writer) error {
	if opts.status {
		if err := emu.WriteStatus(stdout, s); err != nil {
			return err
		}
	}

	if opts.dump != "" {
		start, end, err := parseRange(opts.dump)
		if err != nil {
			return err
		}
		if err := emu.DumpRange(stdout, s, start, end); err != nil {
			return err
		}
	}

	if opts.screenshot != "" {
		if err := video.SaveScreenshot(opts.screenshot, s.Display, opts.scale); err != nil {
			return err
		}
	}

	return nil
}

// parseRange parses "start:end", each side decimal or 0x-prefixed hex.
func parseRange(rng string) (int, int, error) {
	lo, hi, ok := strings.Cut(rng, ":")
	if !ok {
		return 0, 0, fmt.Errorf("invalid dump range %q, want start:end", rng)
	}

	start, err := strconv.ParseInt(strings.TrimSpace(lo), 0, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid dump start %q: %w", lo, err)
	}
	end, err := strconv.ParseInt(strings.TrimSpace(hi), 0, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid dump end %q: %w", hi, err)
	}

	return int(start), int(end), nil
}
