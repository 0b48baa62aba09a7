package emu

// ALU implements the register arithmetic of the 7xnn and 8xyN families.
//
// Flag-setting operations compute VF from their operands before writing Vx
// and write VF last, so the flag wins when x is F.
type ALU struct {
	state *State
	mode  Mode
}

// NewALU creates a new ALU operating on the given state.
func NewALU(state *State, mode Mode) *ALU {
	return &ALU{state: state, mode: mode}
}

// ADDImm performs Vx = Vx + nn, wrapping. VF is not touched.
func (a *ALU) ADDImm(x, nn uint8) {
	a.state.WriteReg(x, a.state.ReadReg(x)+nn)
}

// LD performs Vx = Vy.
func (a *ALU) LD(x, y uint8) {
	a.state.WriteReg(x, a.state.ReadReg(y))
}

// OR performs Vx = Vx | Vy.
func (a *ALU) OR(x, y uint8) {
	a.state.WriteReg(x, a.state.ReadReg(x)|a.state.ReadReg(y))
}

// AND performs Vx = Vx & Vy.
func (a *ALU) AND(x, y uint8) {
	a.state.WriteReg(x, a.state.ReadReg(x)&a.state.ReadReg(y))
}

// XOR performs Vx = Vx ^ Vy.
func (a *ALU) XOR(x, y uint8) {
	a.state.WriteReg(x, a.state.ReadReg(x)^a.state.ReadReg(y))
}

// ADD performs Vx = Vx + Vy with VF = 1 iff the sum exceeds 255.
func (a *ALU) ADD(x, y uint8) {
	vx, vy := a.state.ReadReg(x), a.state.ReadReg(y)
	sum := uint16(vx) + uint16(vy)

	a.state.WriteReg(x, uint8(sum))
	a.state.setFlag(sum > 0xFF)
}

// SUB performs Vx = Vx - Vy with VF = 1 iff Vx >= Vy (no borrow).
func (a *ALU) SUB(x, y uint8) {
	vx, vy := a.state.ReadReg(x), a.state.ReadReg(y)

	a.state.WriteReg(x, vx-vy)
	a.state.setFlag(vx >= vy)
}

// SUBN performs Vx = Vy - Vx with VF = 1 iff Vy >= Vx (no borrow).
func (a *ALU) SUBN(x, y uint8) {
	vx, vy := a.state.ReadReg(x), a.state.ReadReg(y)

	a.state.WriteReg(x, vy-vx)
	a.state.setFlag(vy >= vx)
}

// SHR shifts right by one with VF set to the bit shifted out. In legacy mode
// the source is Vy, otherwise Vx.
func (a *ALU) SHR(x, y uint8) {
	src := a.shiftSource(x, y)

	a.state.WriteReg(x, src>>1)
	a.state.setFlag(src&0x01 != 0)
}

// SHL shifts left by one with VF set to the bit shifted out. In legacy mode
// the source is Vy, otherwise Vx.
func (a *ALU) SHL(x, y uint8) {
	src := a.shiftSource(x, y)

	a.state.WriteReg(x, src<<1)
	a.state.setFlag(src&0x80 != 0)
}

func (a *ALU) shiftSource(x, y uint8) uint8 {
	if a.mode == ModeLegacy {
		return a.state.ReadReg(y)
	}
	return a.state.ReadReg(x)
}
