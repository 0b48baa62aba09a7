// Package emu provides functional CHIP-8 interpretation.
//
// The package owns the machine state, the loader, the fetch unit and the
// per-family execution units. Hosts drive it one Step at a time and read the
// framebuffer, timers and halt flag between steps.
package emu

// Machine geometry.
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 4096

	// ProgramStart is the load address of programs and the initial PC.
	ProgramStart = 0x200

	// ProgramCapacity is the largest program image LoadProgram accepts.
	ProgramCapacity = MemorySize - ProgramStart

	// FontBase is the address of the glyph table.
	FontBase = 0x50

	// GlyphHeight is the number of bytes in one font glyph.
	GlyphHeight = 5

	// NumRegisters is the number of general-purpose registers.
	NumRegisters = 16

	// FlagRegister is the index of VF.
	FlagRegister = 0xF

	// StackCapacity is the maximum call depth.
	StackCapacity = 1000

	// NumKeys is the number of logical keys on the CHIP-8 keypad.
	NumKeys = 16
)

// ScreenMode selects the framebuffer resolution of a State.
type ScreenMode uint8

const (
	// ScreenOriginal is the 64x32 CHIP-8 display.
	ScreenOriginal ScreenMode = iota

	// ScreenExtended is the 128x64 high resolution display.
	ScreenExtended
)

// Dimensions returns the width and height of the screen mode.
func (m ScreenMode) Dimensions() (width, height int) {
	if m == ScreenExtended {
		return 128, 64
	}
	return 64, 32
}

// String returns the config name of the screen mode.
func (m ScreenMode) String() string {
	if m == ScreenExtended {
		return "extended"
	}
	return "original"
}

// Mode selects between the historically divergent interpretations of the
// shift and jump-with-offset instructions.
type Mode uint8

const (
	// ModeLegacy copies Vy into Vx before shifting and adds V0 in Bnnn.
	ModeLegacy Mode = iota

	// ModeModern shifts Vx in place and adds Vx in Bxnn.
	ModeModern
)

// String returns the config name of the mode.
func (m Mode) String() string {
	if m == ModeModern {
		return "modern"
	}
	return "legacy"
}

// State is the complete mutable snapshot of a CHIP-8 machine.
//
// A State is owned by a single host goroutine. Nothing in this package locks
// it.
type State struct {
	// Memory is the 4 KiB address space. 0x000-0x1FF is reserved for the
	// font, programs start at 0x200.
	Memory [MemorySize]byte

	// V holds registers V0-VF. VF doubles as the carry, borrow and
	// collision flag.
	V [NumRegisters]uint8

	// PC is the program counter.
	PC uint16

	// I is the index register.
	I uint16

	// Stack holds return addresses; SP is the current depth.
	Stack [StackCapacity]uint16
	SP    int

	// Display is the framebuffer. Its size is fixed for the life of the State.
	Display *Framebuffer

	DelayTimer uint8
	SoundTimer uint8

	// Halted is the run/pause flag. Only the host toggles it.
	Halted bool
}

// Init returns a zeroed machine with the original 64x32 screen, PC at
// ProgramStart and Halted set.
func Init() *State {
	return NewState(ScreenOriginal)
}

// NewState returns a zeroed machine with the given screen mode.
func NewState(mode ScreenMode) *State {
	w, h := mode.Dimensions()
	return &State{
		PC:      ProgramStart,
		Display: NewFramebuffer(w, h),
		Halted:  true,
	}
}

// ScreenMode reports which screen mode the framebuffer was created with.
func (s *State) ScreenMode() ScreenMode {
	if s.Display != nil && s.Display.Width() == 128 {
		return ScreenExtended
	}
	return ScreenOriginal
}

// TickTimers decrements both timers by one, never below zero. Hosts call it
// at 60 Hz independently of instruction throughput.
func (s *State) TickTimers() {
	if s.DelayTimer > 0 {
		s.DelayTimer--
	}
	if s.SoundTimer > 0 {
		s.SoundTimer--
	}
}

// ReadByte reads memory at addr modulo MemorySize.
func (s *State) ReadByte(addr uint16) byte {
	return s.Memory[int(addr)%MemorySize]
}

// WriteByte writes memory at addr modulo MemorySize.
func (s *State) WriteByte(addr uint16, value byte) {
	s.Memory[int(addr)%MemorySize] = value
}
