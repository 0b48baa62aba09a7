package emu

import "fmt"

// DefaultFont is the built-in 16-glyph hexadecimal font, 5 bytes per glyph.
var DefaultFont = [NumKeys * GlyphHeight]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// fontWindow is the room between FontBase and the program area.
const fontWindow = ProgramStart - FontBase

// ClearState returns s to the Init baseline without replacing it. Memory
// below ProgramStart, which holds the font, is left untouched.
func ClearState(s *State) error {
	if s == nil {
		return ErrNilState
	}

	s.PC = ProgramStart
	s.I = 0
	s.SP = 0
	s.DelayTimer = 0
	s.SoundTimer = 0
	s.Halted = true

	clear(s.Memory[ProgramStart:])
	clear(s.V[:])
	clear(s.Stack[:])

	if s.Display == nil {
		w, h := ScreenOriginal.Dimensions()
		s.Display = NewFramebuffer(w, h)
	}
	s.Display.Clear()

	return nil
}

// LoadProgram copies program into memory starting at s.PC. PC is not reset;
// call ClearState first for a fresh run.
func LoadProgram(s *State, program []byte) error {
	if s == nil {
		return ErrNilState
	}
	start := int(s.PC) % MemorySize
	if room := min(MemorySize-start, ProgramCapacity); len(program) > room {
		return fmt.Errorf("%w: %d bytes, %d available at 0x%03X",
			ErrProgramTooLarge, len(program), room, start)
	}

	copy(s.Memory[start:], program)

	return nil
}

// LoadFont copies a glyph table to FontBase. A nil font loads DefaultFont.
func LoadFont(s *State, font []byte) error {
	if s == nil {
		return ErrNilState
	}
	if font == nil {
		font = DefaultFont[:]
	}
	if len(font) > fontWindow {
		return fmt.Errorf("font of %d bytes exceeds %d byte window: %w",
			len(font), fontWindow, ErrCapacityExceeded)
	}

	copy(s.Memory[FontBase:], font)

	return nil
}
