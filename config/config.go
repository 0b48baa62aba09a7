// Package config holds the settings shared by the c8sim hosts.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/sarchlab/c8sim/emu"
	"github.com/sarchlab/c8sim/timing/pacing"
)

// Config holds interpreter and host settings.
type Config struct {
	// Mode is "legacy" or "modern". Default: legacy.
	Mode string `json:"mode" yaml:"mode"`

	// Screen is "original" (64x32) or "extended" (128x64).
	// Default: original.
	Screen string `json:"screen" yaml:"screen"`

	// InstructionsPerSecond is the instruction rate. Default: 700.
	InstructionsPerSecond int `json:"instructions_per_second" yaml:"instructions_per_second"`

	// FramesPerSecond is the display and timer rate. Default: 60.
	FramesPerSecond int `json:"frames_per_second" yaml:"frames_per_second"`

	// PixelSize is the on-screen size of one CHIP-8 pixel. Default: 10.
	PixelSize int `json:"pixel_size" yaml:"pixel_size"`

	// Seed seeds the random byte source of Cxnn.
	Seed uint64 `json:"seed" yaml:"seed"`

	// FontPath optionally names a glyph table to load instead of the
	// built-in font.
	FontPath string `json:"font_path,omitempty" yaml:"font_path,omitempty"`

	// Keymap overrides individual keys: logical hex digit to a single
	// host character, e.g. {"A": "Z"}.
	Keymap map[string]string `json:"keymap,omitempty" yaml:"keymap,omitempty"`

	// DecodeCache routes decoding through the decode cache.
	DecodeCache bool `json:"decode_cache" yaml:"decode_cache"`
}

// DefaultConfig returns a Config with the default host settings.
func DefaultConfig() *Config {
	return &Config{
		Mode:                  emu.ModeLegacy.String(),
		Screen:                emu.ScreenOriginal.String(),
		InstructionsPerSecond: pacing.DefaultInstructionsPerSecond,
		FramesPerSecond:       pacing.DefaultFramesPerSecond,
		PixelSize:             10,
	}
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// LoadConfig loads a Config from a JSON or YAML file, chosen by extension.
// Fields missing from the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if isYAML(path) {
		err = yaml.Unmarshal(data, config)
	} else {
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a Config as JSON or YAML, chosen by extension.
func (c *Config) SaveConfig(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks that every field holds a usable value.
func (c *Config) Validate() error {
	if _, err := c.EmuMode(); err != nil {
		return err
	}
	if _, err := c.ScreenMode(); err != nil {
		return err
	}
	if c.InstructionsPerSecond <= 0 {
		return fmt.Errorf("instructions_per_second must be > 0")
	}
	if c.FramesPerSecond <= 0 {
		return fmt.Errorf("frames_per_second must be > 0")
	}
	if c.PixelSize <= 0 {
		return fmt.Errorf("pixel_size must be > 0")
	}
	if _, err := c.HostKeymap(); err != nil {
		return err
	}
	return nil
}

// EmuMode parses Mode.
func (c *Config) EmuMode() (emu.Mode, error) {
	switch strings.ToLower(c.Mode) {
	case "", "legacy":
		return emu.ModeLegacy, nil
	case "modern":
		return emu.ModeModern, nil
	}
	return emu.ModeLegacy, fmt.Errorf("unknown mode %q", c.Mode)
}

// ScreenMode parses Screen.
func (c *Config) ScreenMode() (emu.ScreenMode, error) {
	switch strings.ToLower(c.Screen) {
	case "", "original":
		return emu.ScreenOriginal, nil
	case "extended":
		return emu.ScreenExtended, nil
	}
	return emu.ScreenOriginal, fmt.Errorf("unknown screen %q", c.Screen)
}

// HostKeymap applies the Keymap overrides to emu.DefaultKeymap.
func (c *Config) HostKeymap() (emu.Keymap, error) {
	km := emu.DefaultKeymap

	for logical, host := range c.Keymap {
		k, err := strconv.ParseUint(logical, 16, 8)
		if err != nil || k >= emu.NumKeys {
			return km, fmt.Errorf("keymap: %q is not a key from 0 to F", logical)
		}
		if len(host) != 1 {
			return km, fmt.Errorf("keymap: key %s must map to one character, got %q", logical, host)
		}
		km[k] = emu.HostKey(strings.ToUpper(host)[0])
	}

	return km, nil
}

// Clone returns a deep copy of the Config.
func (c *Config) Clone() *Config {
	out := *c
	if c.Keymap != nil {
		out.Keymap = make(map[string]string, len(c.Keymap))
		for k, v := range c.Keymap {
			out.Keymap[k] = v
		}
	}
	return &out
}
