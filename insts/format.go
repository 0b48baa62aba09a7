package insts

import "fmt"

var opNames = [NumOps]string{
	OpUnknown:  "DW",
	OpCLS:      "CLS",
	OpRET:      "RET",
	OpJP:       "JP",
	OpCALL:     "CALL",
	OpSEImm:    "SE",
	OpSNEImm:   "SNE",
	OpSEReg:    "SE",
	OpLDImm:    "LD",
	OpADDImm:   "ADD",
	OpLDReg:    "LD",
	OpOR:       "OR",
	OpAND:      "AND",
	OpXOR:      "XOR",
	OpADDReg:   "ADD",
	OpSUB:      "SUB",
	OpSHR:      "SHR",
	OpSUBN:     "SUBN",
	OpSHL:      "SHL",
	OpSNEReg:   "SNE",
	OpLDI:      "LD",
	OpJPOffset: "JP",
	OpRND:      "RND",
	OpDRW:      "DRW",
	OpSKP:      "SKP",
	OpSKNP:     "SKNP",
	OpLDVxDT:   "LD",
	OpLDVxK:    "LD",
	OpLDDTVx:   "LD",
	OpLDSTVx:   "LD",
	OpADDI:     "ADD",
	OpLDF:      "LD",
	OpLDB:      "LD",
	OpLDIVx:    "LD",
	OpLDVxI:    "LD",
}

// String returns the mnemonic of the operation.
func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("Op(%d)", uint8(o))
}

// String returns the assembly form of the instruction. Unknown encodings are
// rendered as a raw data word.
func (i *Instruction) String() string {
	name := i.Op.String()
	params := i.operands()
	if params == "" {
		return name
	}
	return name + " " + params
}

// operands formats the operand list of the instruction.
func (i *Instruction) operands() string {
	switch i.Op {
	case OpUnknown:
		return fmt.Sprintf("$%04X", i.Word)
	case OpCLS, OpRET:
		return ""
	case OpJP, OpCALL:
		return fmt.Sprintf("$%03X", i.NNN)
	case OpJPOffset:
		return fmt.Sprintf("V0, $%03X", i.NNN)
	case OpSEImm, OpSNEImm, OpLDImm, OpADDImm, OpRND:
		return fmt.Sprintf("V%X, $%02X", i.X, i.NN)
	case OpSEReg, OpSNEReg, OpLDReg, OpOR, OpAND, OpXOR, OpADDReg, OpSUB, OpSUBN:
		return fmt.Sprintf("V%X, V%X", i.X, i.Y)
	case OpSHR, OpSHL:
		return fmt.Sprintf("V%X, V%X", i.X, i.Y)
	case OpLDI:
		return fmt.Sprintf("I, $%03X", i.NNN)
	case OpDRW:
		return fmt.Sprintf("V%X, V%X, $%X", i.X, i.Y, i.N)
	case OpSKP, OpSKNP:
		return fmt.Sprintf("V%X", i.X)
	case OpLDVxDT:
		return fmt.Sprintf("V%X, DT", i.X)
	case OpLDVxK:
		return fmt.Sprintf("V%X, K", i.X)
	case OpLDDTVx:
		return fmt.Sprintf("DT, V%X", i.X)
	case OpLDSTVx:
		return fmt.Sprintf("ST, V%X", i.X)
	case OpADDI:
		return fmt.Sprintf("I, V%X", i.X)
	case OpLDF:
		return fmt.Sprintf("F, V%X", i.X)
	case OpLDB:
		return fmt.Sprintf("B, V%X", i.X)
	case OpLDIVx:
		return fmt.Sprintf("[I], V%X", i.X)
	case OpLDVxI:
		return fmt.Sprintf("V%X, [I]", i.X)
	}
	return ""
}
