// Package core provides the frame-level machine model.
// It wraps an interpreter and a pacer to provide a high-level interface for
// hosts that render at a fixed frame rate.
package core

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/sarchlab/c8sim/emu"
	"github.com/sarchlab/c8sim/timing/pacing"
)

// Stats holds execution statistics for the core.
type Stats struct {
	// Frames is the number of frames ticked, halted or not.
	Frames uint64
	// Instructions is the number of instructions stepped.
	Instructions uint64
	// Errors is the number of steps that returned an error.
	Errors uint64
	// Waits is the number of frames cut short by Fx0A.
	Waits uint64
}

// Core runs one frame's worth of instructions per Tick.
type Core struct {
	// Interpreter is the underlying instruction engine.
	Interpreter *emu.Interpreter

	state   *emu.State
	pacer   *pacing.Pacer
	logger  logr.Logger
	stats   Stats
	lastErr error
}

// Option is a functional option for configuring the Core.
type Option func(*Core)

// WithLogger sets the logger. V(1) reports the error that halted the core.
func WithLogger(logger logr.Logger) Option {
	return func(c *Core) {
		c.logger = logger
	}
}

// NewCore creates a new Core. A nil pacer runs at 700 IPS and 60 FPS.
func NewCore(it *emu.Interpreter, pacer *pacing.Pacer, opts ...Option) *Core {
	if pacer == nil {
		pacer = pacing.NewDefaultPacer()
	}

	c := &Core{
		Interpreter: it,
		state:       it.State(),
		pacer:       pacer,
		logger:      logr.Discard(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// State returns the machine state.
func (c *Core) State() *emu.State {
	return c.state
}

// Pacer returns the step budget source.
func (c *Core) Pacer() *pacing.Pacer {
	return c.pacer
}

// Halted returns true if the machine is paused.
func (c *Core) Halted() bool {
	return c.state.Halted
}

// ToggleHalt pauses a running machine or resumes a paused one.
func (c *Core) ToggleHalt() {
	c.state.Halted = !c.state.Halted
}

// LastErr returns the error that last halted the core, if any.
func (c *Core) LastErr() error {
	return c.lastErr
}

// Stats returns execution statistics for the core.
func (c *Core) Stats() Stats {
	return c.stats
}

// LoadROM clears the machine, loads rom at 0x200 and starts it. The font
// region is preserved.
func (c *Core) LoadROM(rom []byte) error {
	if err := emu.ClearState(c.state); err != nil {
		return err
	}
	if err := emu.LoadProgram(c.state, rom); err != nil {
		return fmt.Errorf("failed to load ROM: %w", err)
	}

	c.pacer.Reset()
	c.lastErr = nil
	c.state.Halted = false

	return nil
}

// Tick runs one frame: up to the pacer's budget of steps unless halted, then
// one timer tick. A step error halts the machine and is kept in LastErr.
// A key wait ends the frame early.
func (c *Core) Tick() {
	if !c.state.Halted {
		c.runBudget(c.pacer.Next())
	}

	c.state.TickTimers()
	c.stats.Frames++
}

func (c *Core) runBudget(budget int) {
	for i := 0; i < budget; i++ {
		result := c.Interpreter.Step()
		c.stats.Instructions++

		if result.Err != nil {
			c.stats.Errors++
			c.lastErr = result.Err
			c.state.Halted = true
			c.logger.V(1).Info("halted", "pc", c.state.PC, "err", result.Err.Error())
			return
		}

		if result.Waiting {
			c.stats.Waits++
			return
		}
	}
}

// RunFrames ticks n frames. Returns true if still running, false if halted.
func (c *Core) RunFrames(n int) bool {
	for i := 0; i < n; i++ {
		c.Tick()
	}
	return !c.state.Halted
}

// Reset clears the statistics and the last error.
func (c *Core) Reset() {
	c.stats = Stats{}
	c.lastErr = nil
	c.pacer.Reset()
}
