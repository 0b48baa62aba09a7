package emu

import (
	"fmt"
	"io"
	"strings"
)

const dumpWidth = 16

// DumpRange writes a hex and ASCII listing of Memory[start, end) to w. The
// range is clamped to memory. Each line covers 16 bytes starting at a
// multiple of 16 from start; bytes at or past end are left blank.
func DumpRange(w io.Writer, s *State, start, end int) error {
	if s == nil {
		return ErrNilState
	}

	start = max(0, min(start, MemorySize))
	end = max(0, min(end, MemorySize))

	var line strings.Builder
	for base := start; base < end; base += dumpWidth {
		line.Reset()
		fmt.Fprintf(&line, "0x%012X   ", base)

		var ascii [dumpWidth]byte
		for i := 0; i < dumpWidth; i++ {
			addr := base + i
			if addr < end {
				b := s.Memory[addr]
				fmt.Fprintf(&line, "%02x ", b)
				ascii[i] = printable(b)
			} else {
				line.WriteString("   ")
				ascii[i] = ' '
			}
			if i == 7 {
				line.WriteByte(' ')
			}
		}

		n := min(dumpWidth, end-base)
		fmt.Fprintf(&line, "  |%s|\n", ascii[:n])

		if _, err := io.WriteString(w, line.String()); err != nil {
			return fmt.Errorf("failed to write dump: %w", err)
		}
	}

	return nil
}

func printable(b byte) byte {
	if b < 0x20 || b > 0x7E {
		return '.'
	}
	return b
}

// WriteStatus writes the register file, timers, I, PC and SP to w.
func WriteStatus(w io.Writer, s *State) error {
	if s == nil {
		return ErrNilState
	}

	var b strings.Builder
	b.WriteString("Registers:")
	for r, v := range s.V {
		fmt.Fprintf(&b, " V%X=%02X", r, v)
	}
	b.WriteByte('\n')
	fmt.Fprintf(&b, "Delay Timer: %d\n", s.DelayTimer)
	fmt.Fprintf(&b, "Sound Timer: %d\n", s.SoundTimer)
	fmt.Fprintf(&b, "Index Register: 0x%03X\n", s.I)
	fmt.Fprintf(&b, "Program Counter: 0x%03X\n", s.PC)
	fmt.Fprintf(&b, "Stack Depth: %d\n", s.SP)
	fmt.Fprintf(&b, "Halted: %t\n", s.Halted)

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write status: %w", err)
	}
	return nil
}
