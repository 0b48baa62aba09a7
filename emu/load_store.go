package emu

// LoadStoreUnit implements the index register and the memory transfer
// instructions. Every memory access wraps modulo MemorySize.
type LoadStoreUnit struct {
	state *State
}

// NewLoadStoreUnit creates a new LoadStoreUnit operating on the given state.
func NewLoadStoreUnit(state *State) *LoadStoreUnit {
	return &LoadStoreUnit{state: state}
}

// LDI performs I = nnn.
func (lsu *LoadStoreUnit) LDI(nnn uint16) {
	lsu.state.I = nnn
}

// ADDI performs I = I + Vx. VF is 1 if the sum exceeds MemorySize,
// otherwise 0.
func (lsu *LoadStoreUnit) ADDI(x uint8) {
	sum := uint32(lsu.state.I) + uint32(lsu.state.ReadReg(x))
	lsu.state.I = uint16(sum)
	lsu.state.setFlag(sum > MemorySize)
}

// LDF points I at the glyph for the low nibble of Vx.
func (lsu *LoadStoreUnit) LDF(x uint8) {
	digit := uint16(lsu.state.ReadReg(x) & 0xF)
	lsu.state.I = FontBase + digit*GlyphHeight
}

// LDB stores the hundreds, tens and units digits of Vx at I, I+1 and I+2.
func (lsu *LoadStoreUnit) LDB(x uint8) {
	v := lsu.state.ReadReg(x)
	i := lsu.state.I

	lsu.state.WriteByte(i, v/100)
	lsu.state.WriteByte(i+1, (v/10)%10)
	lsu.state.WriteByte(i+2, v%10)
}

// Store copies V0 through Vx to memory starting at I. I is unchanged.
func (lsu *LoadStoreUnit) Store(x uint8) {
	for r := uint8(0); r <= x&0xF; r++ {
		lsu.state.WriteByte(lsu.state.I+uint16(r), lsu.state.V[r])
	}
}

// Load copies memory starting at I into V0 through Vx. I is unchanged.
func (lsu *LoadStoreUnit) Load(x uint8) {
	for r := uint8(0); r <= x&0xF; r++ {
		lsu.state.V[r] = lsu.state.ReadByte(lsu.state.I + uint16(r))
	}
}
