// Package loader provides ROM loading for CHIP-8 programs.
package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sarchlab/c8sim/emu"
)

// ROMExtension is the only file extension accepted as a ROM.
const ROMExtension = ".ch8"

var (
	// ErrUnsupportedFile is returned for files without the .ch8 extension.
	ErrUnsupportedFile = errors.New("unsupported file type")

	// ErrROMTooLarge is returned for images that do not fit above 0x200.
	ErrROMTooLarge = fmt.Errorf("ROM too large: %w", emu.ErrCapacityExceeded)
)

// Program represents a ROM image ready for loading into the interpreter.
type Program struct {
	// Name is the base name of the ROM file.
	Name string
	// Data is the raw program image, loaded at 0x200.
	Data []byte
}

// IsROM reports whether path carries the ROM extension.
func IsROM(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ROMExtension)
}

// Load reads a ROM from the file system.
func Load(path string) (*Program, error) {
	if !IsROM(path) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, filepath.Base(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ROM file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return LoadReader(filepath.Base(path), f)
}

// LoadFS reads a ROM from fsys, e.g. an embed.FS of bundled programs.
func LoadFS(fsys fs.FS, name string) (*Program, error) {
	if !IsROM(name) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, name)
	}

	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open ROM file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return LoadReader(filepath.Base(name), f)
}

// LoadReader reads a ROM image from r. The name is not checked.
func LoadReader(name string, r io.Reader) (*Program, error) {
	// Read one byte past the limit to detect oversized images.
	data, err := io.ReadAll(io.LimitReader(r, emu.ProgramCapacity+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read ROM %s: %w", name, err)
	}
	if len(data) > emu.ProgramCapacity {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrROMTooLarge, name, emu.ProgramCapacity)
	}

	return &Program{Name: name, Data: data}, nil
}

// Install clears s and copies the program to 0x200. The font region and
// the Halted flag are left as ClearState sets them.
func (p *Program) Install(s *emu.State) error {
	if err := emu.ClearState(s); err != nil {
		return err
	}
	return emu.LoadProgram(s, p.Data)
}
