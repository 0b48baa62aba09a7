package emu

// BranchUnit implements control flow: jumps, calls, returns and skips.
type BranchUnit struct {
	state *State
	mode  Mode
}

// NewBranchUnit creates a new BranchUnit operating on the given state.
func NewBranchUnit(state *State, mode Mode) *BranchUnit {
	return &BranchUnit{state: state, mode: mode}
}

// JP jumps to nnn.
func (b *BranchUnit) JP(nnn uint16) {
	b.state.PC = nnn
}

// CALL pushes the return address and jumps to nnn. On a full stack nothing
// changes and ErrStackOverflow is returned.
func (b *BranchUnit) CALL(nnn uint16) error {
	if err := b.state.push(b.state.PC); err != nil {
		return err
	}
	b.state.PC = nnn
	return nil
}

// RET pops the return address into PC. On an empty stack nothing changes and
// ErrStackUnderflow is returned.
func (b *BranchUnit) RET() error {
	addr, err := b.state.pop()
	if err != nil {
		return err
	}
	b.state.PC = addr
	return nil
}

// JPOffset jumps to nnn plus an offset register: V0 in legacy mode, Vx in
// modern mode where x is the top nibble of nnn. The target wraps to 12 bits.
func (b *BranchUnit) JPOffset(nnn uint16) {
	reg := uint8(0)
	if b.mode == ModeModern {
		reg = uint8(nnn >> 8)
	}
	b.state.PC = (nnn + uint16(b.state.ReadReg(reg))) & (MemorySize - 1)
}

// SkipIf skips the next instruction when cond holds.
func (b *BranchUnit) SkipIf(cond bool) {
	if cond {
		b.state.advancePC()
	}
}
