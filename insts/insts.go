// Package insts provides CHIP-8 instruction definitions and decoding.
//
// This package decodes 16-bit CHIP-8 instruction words into structured
// instruction representations. Every word belongs to exactly one Family,
// selected by its top nibble; the Op identifies the operation within the
// family, or OpUnknown when the family does not define the encoding.
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst := decoder.Decode(0x6A2F) // LD VA, $2F
//	fmt.Printf("Op: %v, X: %d, NN: 0x%02X\n", inst.Op, inst.X, inst.NN)
package insts

// Family is the instruction family selected by the top nibble of a word.
type Family uint8

// Instruction families, one per top nibble.
const (
	FamilySys       Family = iota // 0nnn: CLS, RET
	FamilyJump                    // 1nnn
	FamilyCall                    // 2nnn
	FamilySkipEqImm               // 3xnn
	FamilySkipNeImm               // 4xnn
	FamilySkipEqReg               // 5xy0
	FamilyLoadImm                 // 6xnn
	FamilyAddImm                  // 7xnn
	FamilyALU                     // 8xyN
	FamilySkipNeReg               // 9xy0
	FamilyLoadIndex               // Annn
	FamilyJumpOffset              // Bnnn
	FamilyRandom                  // Cxnn
	FamilyDraw                    // Dxyn
	FamilyKey                     // Ex9E, ExA1
	FamilyMisc                    // Fxnn
)

// Op represents a CHIP-8 operation.
type Op uint8

// CHIP-8 operations.
const (
	OpUnknown Op = iota
	OpCLS        // 00E0
	OpRET        // 00EE
	OpJP         // 1nnn
	OpCALL       // 2nnn
	OpSEImm      // 3xnn
	OpSNEImm     // 4xnn
	OpSEReg      // 5xy0
	OpLDImm      // 6xnn
	OpADDImm     // 7xnn
	OpLDReg      // 8xy0
	OpOR         // 8xy1
	OpAND        // 8xy2
	OpXOR        // 8xy3
	OpADDReg     // 8xy4
	OpSUB        // 8xy5
	OpSHR        // 8xy6
	OpSUBN       // 8xy7
	OpSHL        // 8xyE
	OpSNEReg     // 9xy0
	OpLDI        // Annn
	OpJPOffset   // Bnnn
	OpRND        // Cxnn
	OpDRW        // Dxyn
	OpSKP        // Ex9E
	OpSKNP       // ExA1
	OpLDVxDT     // Fx07
	OpLDVxK      // Fx0A
	OpLDDTVx     // Fx15
	OpLDSTVx     // Fx18
	OpADDI       // Fx1E
	OpLDF        // Fx29
	OpLDB        // Fx33
	OpLDIVx      // Fx55
	OpLDVxI      // Fx65

	opCount
)

// NumOps is the number of defined operations, OpUnknown included.
const NumOps = int(opCount)

// Instruction represents a decoded CHIP-8 instruction.
type Instruction struct {
	Word   uint16 // Raw instruction word
	Family Family // Top-nibble family
	Op     Op     // Operation, OpUnknown if the family has no such encoding

	X   uint8  // Register index from bits 8-11
	Y   uint8  // Register index from bits 4-7
	N   uint8  // Low nibble
	NN  uint8  // Low byte
	NNN uint16 // Low 12 bits
}

// Known reports whether the instruction decoded to a defined operation.
func (i *Instruction) Known() bool {
	return i.Op != OpUnknown
}

// IsSkip reports whether the instruction conditionally skips the next one.
func (i *Instruction) IsSkip() bool {
	switch i.Op {
	case OpSEImm, OpSNEImm, OpSEReg, OpSNEReg, OpSKP, OpSKNP:
		return true
	}
	return false
}

// IsJump reports whether the instruction transfers control unconditionally.
func (i *Instruction) IsJump() bool {
	return i.Op == OpJP || i.Op == OpJPOffset
}

// WritesMemory reports whether the instruction stores into main memory.
func (i *Instruction) WritesMemory() bool {
	return i.Op == OpLDB || i.Op == OpLDIVx
}
