package core

import (
	"fmt"
	"os"

	"github.com/go-logr/logr"

	"github.com/sarchlab/c8sim/config"
	"github.com/sarchlab/c8sim/emu"
	"github.com/sarchlab/c8sim/timing/cache"
	"github.com/sarchlab/c8sim/timing/pacing"
)

// Build assembles a halted machine from cfg: screen, font, interpreter
// options and pacer. kb may be nil for headless hosts.
func Build(cfg *config.Config, kb emu.Keyboard, logger logr.Logger) (*Core, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	screen, err := cfg.ScreenMode()
	if err != nil {
		return nil, err
	}
	mode, err := cfg.EmuMode()
	if err != nil {
		return nil, err
	}
	keymap, err := cfg.HostKeymap()
	if err != nil {
		return nil, err
	}

	s := emu.NewState(screen)
	if err := loadFont(s, cfg.FontPath); err != nil {
		return nil, err
	}

	pacer, err := pacing.NewPacer(cfg.InstructionsPerSecond, cfg.FramesPerSecond)
	if err != nil {
		return nil, err
	}

	opts := []emu.InterpreterOption{
		emu.WithMode(mode),
		emu.WithKeymap(keymap),
		emu.WithRandom(emu.NewRandomSource(cfg.Seed)),
		emu.WithLogger(logger),
	}
	if kb != nil {
		opts = append(opts, emu.WithKeyboard(kb))
	}
	if cfg.DecodeCache {
		opts = append(opts, emu.WithDecodeCache(cache.New(cache.DefaultConfig(), nil)))
	}

	return NewCore(emu.NewInterpreter(s, opts...), pacer, WithLogger(logger)), nil
}

func loadFont(s *emu.State, path string) error {
	if path == "" {
		return emu.LoadFont(s, nil)
	}

	font, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read font: %w", err)
	}
	return emu.LoadFont(s, font)
}
