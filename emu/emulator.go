package emu

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/sarchlab/c8sim/insts"
)

// StepResult represents the result of executing a single instruction.
type StepResult struct {
	// Inst is the decoded instruction. It is nil only when nothing was
	// fetched.
	Inst *insts.Instruction

	// Waiting is true when Fx0A found no key and rewound PC.
	Waiting bool

	// Err is set if the instruction could not be executed.
	Err error
}

// DecodeCache memoizes decoded instruction words.
type DecodeCache interface {
	Lookup(word uint16) (insts.Instruction, bool)
	Insert(inst insts.Instruction)
}

// Interpreter executes CHIP-8 instructions against a State.
type Interpreter struct {
	state   *State
	decoder *insts.Decoder
	cache   DecodeCache

	// Execution units
	alu        *ALU
	lsu        *LoadStoreUnit
	branchUnit *BranchUnit

	mode     Mode
	keyboard Keyboard
	keymap   Keymap
	random   RandomSource
	logger   logr.Logger

	instructionCount uint64
}

// InterpreterOption is a functional option for configuring the Interpreter.
type InterpreterOption func(*Interpreter)

// WithMode selects legacy or modern shift and jump-with-offset behavior.
func WithMode(mode Mode) InterpreterOption {
	return func(it *Interpreter) {
		it.mode = mode
	}
}

// WithKeyboard sets the input device queried by Ex9E, ExA1 and Fx0A.
func WithKeyboard(kb Keyboard) InterpreterOption {
	return func(it *Interpreter) {
		it.keyboard = kb
	}
}

// WithKeymap replaces DefaultKeymap.
func WithKeymap(km Keymap) InterpreterOption {
	return func(it *Interpreter) {
		it.keymap = km
	}
}

// WithRandom sets the byte source used by Cxnn.
func WithRandom(src RandomSource) InterpreterOption {
	return func(it *Interpreter) {
		it.random = src
	}
}

// WithLogger sets the logger. V(1) reports step errors and V(2) traces
// every instruction.
func WithLogger(logger logr.Logger) InterpreterOption {
	return func(it *Interpreter) {
		it.logger = logger
	}
}

// WithDecodeCache routes decoding through a cache.
func WithDecodeCache(c DecodeCache) InterpreterOption {
	return func(it *Interpreter) {
		it.cache = c
	}
}

// NewInterpreter creates an interpreter bound to state.
func NewInterpreter(state *State, opts ...InterpreterOption) *Interpreter {
	it := &Interpreter{
		state:    state,
		decoder:  insts.NewDecoder(),
		mode:     ModeLegacy,
		keyboard: NullKeyboard{},
		keymap:   DefaultKeymap,
		random:   NewRandomSource(0),
		logger:   logr.Discard(),
	}

	for _, opt := range opts {
		opt(it)
	}

	it.alu = NewALU(state, it.mode)
	it.lsu = NewLoadStoreUnit(state)
	it.branchUnit = NewBranchUnit(state, it.mode)

	return it
}

// State returns the interpreter's machine state.
func (it *Interpreter) State() *State {
	return it.state
}

// Mode returns the compatibility mode.
func (it *Interpreter) Mode() Mode {
	return it.mode
}

// InstructionCount returns the number of instructions executed.
func (it *Interpreter) InstructionCount() uint64 {
	return it.instructionCount
}

// Step fetches, decodes and executes one instruction. It never checks
// Halted; pausing is the host's decision.
func (it *Interpreter) Step() StepResult {
	if it.state == nil {
		return StepResult{Err: ErrNilState}
	}

	pc := it.state.PC
	word, err := FetchNext(it.state)
	if err != nil {
		return StepResult{Err: err}
	}

	inst := it.decode(word)
	result := it.execute(&inst, pc)
	result.Inst = &inst
	it.instructionCount++

	if result.Err != nil {
		it.logger.V(1).Info("step failed", "pc", pc, "word", word, "err", result.Err.Error())
	} else if v := it.logger.V(2); v.Enabled() {
		v.Info("step", "pc", pc, "word", word, "inst", inst.String())
	}

	return result
}

// Run executes up to n instructions. It stops early on an error or when the
// program is waiting for a key, and returns the last result.
func (it *Interpreter) Run(n int) StepResult {
	var result StepResult
	for i := 0; i < n; i++ {
		result = it.Step()
		if result.Err != nil || result.Waiting {
			break
		}
	}
	return result
}

func (it *Interpreter) decode(word uint16) insts.Instruction {
	if it.cache == nil {
		return it.decoder.DecodeValue(word)
	}
	if inst, ok := it.cache.Lookup(word); ok {
		return inst
	}
	inst := it.decoder.DecodeValue(word)
	it.cache.Insert(inst)
	return inst
}

// execute dispatches on the instruction family. pc is the address the
// instruction was fetched from.
func (it *Interpreter) execute(inst *insts.Instruction, pc uint16) StepResult {
	if !inst.Known() {
		return StepResult{Err: it.unknown(inst, pc)}
	}

	s := it.state

	switch inst.Family {
	case insts.FamilySys:
		return it.executeSys(inst, pc)
	case insts.FamilyJump:
		it.branchUnit.JP(inst.NNN)
	case insts.FamilyCall:
		if err := it.branchUnit.CALL(inst.NNN); err != nil {
			return StepResult{Err: fmt.Errorf("CALL at PC=0x%03X: %w", pc, err)}
		}
	case insts.FamilySkipEqImm:
		it.branchUnit.SkipIf(s.ReadReg(inst.X) == inst.NN)
	case insts.FamilySkipNeImm:
		it.branchUnit.SkipIf(s.ReadReg(inst.X) != inst.NN)
	case insts.FamilySkipEqReg:
		it.branchUnit.SkipIf(s.ReadReg(inst.X) == s.ReadReg(inst.Y))
	case insts.FamilyLoadImm:
		s.WriteReg(inst.X, inst.NN)
	case insts.FamilyAddImm:
		it.alu.ADDImm(inst.X, inst.NN)
	case insts.FamilyALU:
		it.executeALU(inst)
	case insts.FamilySkipNeReg:
		it.branchUnit.SkipIf(s.ReadReg(inst.X) != s.ReadReg(inst.Y))
	case insts.FamilyLoadIndex:
		it.lsu.LDI(inst.NNN)
	case insts.FamilyJumpOffset:
		it.branchUnit.JPOffset(inst.NNN)
	case insts.FamilyRandom:
		s.WriteReg(inst.X, inst.NN&it.random.RandomByte())
	case insts.FamilyDraw:
		s.executeDraw(inst.X, inst.Y, inst.N)
	case insts.FamilyKey:
		it.executeKey(inst)
	case insts.FamilyMisc:
		return it.executeMisc(inst, pc)
	}

	return StepResult{}
}

func (it *Interpreter) unknown(inst *insts.Instruction, pc uint16) error {
	return fmt.Errorf("%w 0x%04X at PC=0x%03X", ErrUnknownInstruction, inst.Word, pc)
}

// executeSys executes CLS and RET.
func (it *Interpreter) executeSys(inst *insts.Instruction, pc uint16) StepResult {
	switch inst.Op {
	case insts.OpCLS:
		it.state.Display.Clear()
	case insts.OpRET:
		if err := it.branchUnit.RET(); err != nil {
			return StepResult{Err: fmt.Errorf("RET at PC=0x%03X: %w", pc, err)}
		}
	}
	return StepResult{}
}

// executeALU executes the 8xyN register-register family.
func (it *Interpreter) executeALU(inst *insts.Instruction) {
	x, y := inst.X, inst.Y

	switch inst.Op {
	case insts.OpLDReg:
		it.alu.LD(x, y)
	case insts.OpOR:
		it.alu.OR(x, y)
	case insts.OpAND:
		it.alu.AND(x, y)
	case insts.OpXOR:
		it.alu.XOR(x, y)
	case insts.OpADDReg:
		it.alu.ADD(x, y)
	case insts.OpSUB:
		it.alu.SUB(x, y)
	case insts.OpSHR:
		it.alu.SHR(x, y)
	case insts.OpSUBN:
		it.alu.SUBN(x, y)
	case insts.OpSHL:
		it.alu.SHL(x, y)
	}
}

// executeKey executes Ex9E and ExA1. Values of Vx above 0xF name no key and
// read as released.
func (it *Interpreter) executeKey(inst *insts.Instruction) {
	down := it.isLogicalKeyDown(it.state.ReadReg(inst.X))

	if inst.Op == insts.OpSKP {
		it.branchUnit.SkipIf(down)
	} else {
		it.branchUnit.SkipIf(!down)
	}
}

func (it *Interpreter) isLogicalKeyDown(key uint8) bool {
	if key >= NumKeys {
		return false
	}
	return it.keyboard.IsKeyDown(it.keymap[key])
}

// executeMisc executes the Fxnn family.
func (it *Interpreter) executeMisc(inst *insts.Instruction, pc uint16) StepResult {
	s := it.state
	x := inst.X

	switch inst.Op {
	case insts.OpLDVxDT:
		s.WriteReg(x, s.DelayTimer)
	case insts.OpLDVxK:
		return it.waitKey(x, pc)
	case insts.OpLDDTVx:
		s.DelayTimer = s.ReadReg(x)
	case insts.OpLDSTVx:
		s.SoundTimer = s.ReadReg(x)
	case insts.OpADDI:
		it.lsu.ADDI(x)
	case insts.OpLDF:
		it.lsu.LDF(x)
	case insts.OpLDB:
		it.lsu.LDB(x)
	case insts.OpLDIVx:
		it.lsu.Store(x)
	case insts.OpLDVxI:
		it.lsu.Load(x)
	}

	return StepResult{}
}

// waitKey executes Fx0A. Without a pressed, mapped key PC is rewound to the
// instruction so the next Step executes it again.
func (it *Interpreter) waitKey(x uint8, pc uint16) StepResult {
	if code, ok := it.keyboard.PressedKey(); ok {
		if key, mapped := it.keymap.Logical(code); mapped {
			it.state.WriteReg(x, key)
			return StepResult{}
		}
	}

	it.state.PC = pc
	return StepResult{Waiting: true}
}
