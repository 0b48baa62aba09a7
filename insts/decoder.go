package insts

// Decoder decodes CHIP-8 instruction words into instructions.
type Decoder struct{}

// NewDecoder creates a new CHIP-8 instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes a 16-bit CHIP-8 instruction word.
func (d *Decoder) Decode(word uint16) *Instruction {
	inst := d.DecodeValue(word)
	return &inst
}

// DecodeValue decodes a word without allocating. The interpreter hot path
// uses this form.
func (d *Decoder) DecodeValue(word uint16) Instruction {
	inst := Instruction{
		Word:   word,
		Family: Family(word >> 12),
		Op:     OpUnknown,
		X:      uint8((word >> 8) & 0xF),
		Y:      uint8((word >> 4) & 0xF),
		N:      uint8(word & 0xF),
		NN:     uint8(word & 0xFF),
		NNN:    word & 0x0FFF,
	}

	switch inst.Family {
	case FamilySys:
		inst.Op = d.decodeSys(word)
	case FamilyJump:
		inst.Op = OpJP
	case FamilyCall:
		inst.Op = OpCALL
	case FamilySkipEqImm:
		inst.Op = OpSEImm
	case FamilySkipNeImm:
		inst.Op = OpSNEImm
	case FamilySkipEqReg:
		if inst.N == 0 {
			inst.Op = OpSEReg
		}
	case FamilyLoadImm:
		inst.Op = OpLDImm
	case FamilyAddImm:
		inst.Op = OpADDImm
	case FamilyALU:
		inst.Op = d.decodeALU(inst.N)
	case FamilySkipNeReg:
		if inst.N == 0 {
			inst.Op = OpSNEReg
		}
	case FamilyLoadIndex:
		inst.Op = OpLDI
	case FamilyJumpOffset:
		inst.Op = OpJPOffset
	case FamilyRandom:
		inst.Op = OpRND
	case FamilyDraw:
		inst.Op = OpDRW
	case FamilyKey:
		inst.Op = d.decodeKey(inst.NN)
	case FamilyMisc:
		inst.Op = d.decodeMisc(inst.NN)
	}

	return inst
}

// decodeSys decodes the 0nnn family. Only CLS and RET are defined; machine
// code routines (SYS nnn) are not supported.
func (d *Decoder) decodeSys(word uint16) Op {
	switch word {
	case 0x00E0:
		return OpCLS
	case 0x00EE:
		return OpRET
	}
	return OpUnknown
}

// decodeALU decodes the register-register 8xyN family by its low nibble.
func (d *Decoder) decodeALU(n uint8) Op {
	switch n {
	case 0x0:
		return OpLDReg
	case 0x1:
		return OpOR
	case 0x2:
		return OpAND
	case 0x3:
		return OpXOR
	case 0x4:
		return OpADDReg
	case 0x5:
		return OpSUB
	case 0x6:
		return OpSHR
	case 0x7:
		return OpSUBN
	case 0xE:
		return OpSHL
	}
	return OpUnknown
}

func (d *Decoder) decodeKey(nn uint8) Op {
	switch nn {
	case 0x9E:
		return OpSKP
	case 0xA1:
		return OpSKNP
	}
	return OpUnknown
}

func (d *Decoder) decodeMisc(nn uint8) Op {
	switch nn {
	case 0x07:
		return OpLDVxDT
	case 0x0A:
		return OpLDVxK
	case 0x15:
		return OpLDDTVx
	case 0x18:
		return OpLDSTVx
	case 0x1E:
		return OpADDI
	case 0x29:
		return OpLDF
	case 0x33:
		return OpLDB
	case 0x55:
		return OpLDIVx
	case 0x65:
		return OpLDVxI
	}
	return OpUnknown
}
