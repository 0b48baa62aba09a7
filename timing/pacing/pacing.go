// Package pacing converts an instruction rate and a frame rate into a
// per-frame step budget.
package pacing

import (
	"fmt"
	"time"
)

// Default rates.
const (
	DefaultInstructionsPerSecond = 700
	DefaultFramesPerSecond       = 60
)

// Pacer hands out the number of instructions to run in each frame. The
// fractional remainder carries over, so over one second of frames the
// budgets add up to exactly the instruction rate.
type Pacer struct {
	ips   int
	fps   int
	carry int
}

// NewPacer creates a Pacer. Both rates must be positive.
func NewPacer(ips, fps int) (*Pacer, error) {
	if ips <= 0 {
		return nil, fmt.Errorf("instructions per second must be > 0, got %d", ips)
	}
	if fps <= 0 {
		return nil, fmt.Errorf("frames per second must be > 0, got %d", fps)
	}
	return &Pacer{ips: ips, fps: fps}, nil
}

// NewDefaultPacer creates a 700 IPS, 60 FPS Pacer.
func NewDefaultPacer() *Pacer {
	return &Pacer{ips: DefaultInstructionsPerSecond, fps: DefaultFramesPerSecond}
}

// InstructionsPerSecond returns the instruction rate.
func (p *Pacer) InstructionsPerSecond() int { return p.ips }

// FramesPerSecond returns the frame rate.
func (p *Pacer) FramesPerSecond() int { return p.fps }

// FrameDuration returns the wall-clock length of one frame.
func (p *Pacer) FrameDuration() time.Duration {
	return time.Second / time.Duration(p.fps)
}

// Next returns the step budget of the next frame.
func (p *Pacer) Next() int {
	p.carry += p.ips
	n := p.carry / p.fps
	p.carry %= p.fps
	return n
}

// Reset drops the carried remainder.
func (p *Pacer) Reset() {
	p.carry = 0
}
