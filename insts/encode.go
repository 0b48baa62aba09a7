package insts

// Encoding helpers used to hand-assemble programs for tests and benchmarks.

// EncodeAddr builds a word of the form Fnnn.
func EncodeAddr(family Family, nnn uint16) uint16 {
	return uint16(family)<<12 | nnn&0x0FFF
}

// EncodeImm builds a word of the form Fxnn.
func EncodeImm(family Family, x uint8, nn uint8) uint16 {
	return uint16(family)<<12 | uint16(x&0xF)<<8 | uint16(nn)
}

// EncodeRegs builds a word of the form Fxyn.
func EncodeRegs(family Family, x, y, n uint8) uint16 {
	return uint16(family)<<12 | uint16(x&0xF)<<8 | uint16(y&0xF)<<4 | uint16(n&0xF)
}

// EncodeCLS returns 00E0.
func EncodeCLS() uint16 { return 0x00E0 }

// EncodeRET returns 00EE.
func EncodeRET() uint16 { return 0x00EE }

// EncodeJP returns 1nnn.
func EncodeJP(addr uint16) uint16 { return EncodeAddr(FamilyJump, addr) }

// EncodeCALL returns 2nnn.
func EncodeCALL(addr uint16) uint16 { return EncodeAddr(FamilyCall, addr) }

// EncodeSEImm returns 3xnn.
func EncodeSEImm(x, nn uint8) uint16 { return EncodeImm(FamilySkipEqImm, x, nn) }

// EncodeSNEImm returns 4xnn.
func EncodeSNEImm(x, nn uint8) uint16 { return EncodeImm(FamilySkipNeImm, x, nn) }

// EncodeLDImm returns 6xnn.
func EncodeLDImm(x, nn uint8) uint16 { return EncodeImm(FamilyLoadImm, x, nn) }

// EncodeADDImm returns 7xnn.
func EncodeADDImm(x, nn uint8) uint16 { return EncodeImm(FamilyAddImm, x, nn) }

// EncodeALU returns 8xyN.
func EncodeALU(x, y, n uint8) uint16 { return EncodeRegs(FamilyALU, x, y, n) }

// EncodeLDI returns Annn.
func EncodeLDI(addr uint16) uint16 { return EncodeAddr(FamilyLoadIndex, addr) }

// EncodeDRW returns Dxyn.
func EncodeDRW(x, y, n uint8) uint16 { return EncodeRegs(FamilyDraw, x, y, n) }

// EncodeMisc returns Fxnn.
func EncodeMisc(x, nn uint8) uint16 { return EncodeImm(FamilyMisc, x, nn) }

// Program flattens instruction words into big-endian program bytes.
func Program(words ...uint16) []byte {
	out := make([]byte, 0, len(words)*2)
	for _, w := range words {
		out = append(out, byte(w>>8), byte(w))
	}
	return out
}
