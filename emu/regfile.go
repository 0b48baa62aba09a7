package emu

import "fmt"

// ReadReg returns register Vr. Indices wrap into V0-VF.
func (s *State) ReadReg(r uint8) uint8 {
	return s.V[r&0xF]
}

// WriteReg sets register Vr. Indices wrap into V0-VF.
func (s *State) WriteReg(r uint8, value uint8) {
	s.V[r&0xF] = value
}

// setFlag writes VF as 0 or 1.
func (s *State) setFlag(set bool) {
	if set {
		s.V[FlagRegister] = 1
		return
	}
	s.V[FlagRegister] = 0
}

// push stores a return address. A full stack is left untouched.
func (s *State) push(addr uint16) error {
	if s.SP >= StackCapacity {
		return fmt.Errorf("%w: depth %d", ErrStackOverflow, s.SP)
	}
	s.Stack[s.SP] = addr
	s.SP++
	return nil
}

// pop removes the most recent return address. An empty stack is left
// untouched.
func (s *State) pop() (uint16, error) {
	if s.SP <= 0 {
		return 0, ErrStackUnderflow
	}
	s.SP--
	return s.Stack[s.SP], nil
}
