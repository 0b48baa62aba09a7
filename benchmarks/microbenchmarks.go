package benchmarks

import (
	"fmt"

	"github.com/sarchlab/c8sim/emu"
	"github.com/sarchlab/c8sim/insts"
)

// GetMicrobenchmarks returns the standard set of interpreter microbenchmarks.
// Each benchmark stresses one instruction group and ends in a halt loop.
func GetMicrobenchmarks() []Benchmark {
	return []Benchmark{
		counterLoop(),
		nestedLoops(),
		subroutineCalls(),
		aluMix(),
		spriteDraw(),
		bcdMemory(),
	}
}

// GetCoreBenchmarks returns a minimal set of 3 core benchmarks for quick
// validation: a loop, calls and drawing.
func GetCoreBenchmarks() []Benchmark {
	return []Benchmark{
		counterLoop(),
		subroutineCalls(),
		spriteDraw(),
	}
}

// expectReg returns a verifier checking that Vx holds want.
func expectReg(x uint8, want uint8) func(s *emu.State) error {
	return func(s *emu.State) error {
		if got := s.V[x]; got != want {
			return fmt.Errorf("V%X = 0x%02X, want 0x%02X", x, got, want)
		}
		return nil
	}
}

// allOf chains verifiers, returning the first failure.
func allOf(checks ...func(s *emu.State) error) func(s *emu.State) error {
	return func(s *emu.State) error {
		for _, check := range checks {
			if err := check(s); err != nil {
				return err
			}
		}
		return nil
	}
}

// 1. Counter loop - tight ADD/SE/JP loop counting V0 to 255
func counterLoop() Benchmark {
	return Benchmark{
		Name:        "counter_loop",
		Description: "count V0 to 0xFF with ADD/SE/JP - measures dispatch overhead",
		Program: insts.Program(
			insts.EncodeLDImm(0, 0),    // 0x200
			insts.EncodeADDImm(0, 1),   // 0x202
			insts.EncodeSEImm(0, 0xFF), // 0x204
			insts.EncodeJP(0x202),      // 0x206
			insts.EncodeJP(0x208),      // 0x208 halt
		),
		Verify: expectReg(0, 0xFF),
	}
}

// 2. Nested loops - 15x15 iterations incrementing V2
func nestedLoops() Benchmark {
	return Benchmark{
		Name:        "nested_loops",
		Description: "15x15 nested loop - measures branch-heavy code",
		Program: insts.Program(
			insts.EncodeLDImm(1, 0),    // 0x200
			insts.EncodeLDImm(0, 0),    // 0x202 outer
			insts.EncodeADDImm(2, 1),   // 0x204 inner
			insts.EncodeADDImm(0, 1),   // 0x206
			insts.EncodeSEImm(0, 0x0F), // 0x208
			insts.EncodeJP(0x204),      // 0x20A
			insts.EncodeADDImm(1, 1),   // 0x20C
			insts.EncodeSEImm(1, 0x0F), // 0x20E
			insts.EncodeJP(0x202),      // 0x210
			insts.EncodeJP(0x212),      // 0x212 halt
		),
		Verify: allOf(expectReg(1, 0x0F), expectReg(2, 0xE1)),
	}
}

// 3. Subroutine calls - 32 CALL/RET pairs
func subroutineCalls() Benchmark {
	return Benchmark{
		Name:        "subroutine_calls",
		Description: "32 CALL/RET round trips - measures stack handling",
		Program: insts.Program(
			insts.EncodeLDImm(0, 0),    // 0x200
			insts.EncodeCALL(0x20A),    // 0x202
			insts.EncodeSEImm(0, 0x20), // 0x204
			insts.EncodeJP(0x202),      // 0x206
			insts.EncodeJP(0x208),      // 0x208 halt
			insts.EncodeADDImm(0, 1),   // 0x20A
			insts.EncodeRET(),          // 0x20C
		),
		Verify: allOf(expectReg(0, 0x20), func(s *emu.State) error {
			if s.SP != 0 {
				return fmt.Errorf("stack depth %d after all returns", s.SP)
			}
			return nil
		}),
	}
}

// 4. ALU mix - register ADD, XOR and SHR in a 64-iteration loop
func aluMix() Benchmark {
	return Benchmark{
		Name:        "alu_mix",
		Description: "ADD/XOR/SHR register ops over 64 iterations - measures ALU paths",
		Program: insts.Program(
			insts.EncodeLDImm(0, 0),    // 0x200
			insts.EncodeLDImm(1, 3),    // 0x202
			insts.EncodeALU(0, 1, 0x4), // 0x204 ADD V0, V1
			insts.EncodeALU(2, 0, 0x3), // 0x206 XOR V2, V0
			insts.EncodeALU(3, 0, 0x6), // 0x208 SHR V3, V0
			insts.EncodeADDImm(4, 1),   // 0x20A
			insts.EncodeSEImm(4, 0x40), // 0x20C
			insts.EncodeJP(0x204),      // 0x20E
			insts.EncodeJP(0x210),      // 0x210 halt
		),
		Verify: allOf(expectReg(0, 0xC0), expectReg(4, 0x40)),
	}
}

// 5. Sprite draw - all 16 font glyphs across the top row
func spriteDraw() Benchmark {
	return Benchmark{
		Name:        "sprite_draw",
		Description: "draw the 16 font glyphs side by side - measures DRW",
		Program: insts.Program(
			insts.EncodeLDImm(0, 0),    // 0x200 digit
			insts.EncodeLDImm(1, 0),    // 0x202 x
			insts.EncodeLDImm(2, 0),    // 0x204 y
			insts.EncodeMisc(0, 0x29),  // 0x206 LD F, V0
			insts.EncodeDRW(1, 2, 5),   // 0x208
			insts.EncodeADDImm(0, 1),   // 0x20A
			insts.EncodeADDImm(1, 4),   // 0x20C
			insts.EncodeSEImm(0, 0x10), // 0x20E
			insts.EncodeJP(0x206),      // 0x210
			insts.EncodeJP(0x212),      // 0x212 halt
		),
		Verify: allOf(expectReg(0, 0x10), expectReg(emu.FlagRegister, 0),
			func(s *emu.State) error {
				if s.Display.Lit() == 0 {
					return fmt.Errorf("no pixels lit")
				}
				return nil
			}),
	}
}

// 6. BCD memory - Fx33 then Fx65 for every value below 100
func bcdMemory() Benchmark {
	return Benchmark{
		Name:        "bcd_memory",
		Description: "BCD store and register load for 0..99 - measures memory ops",
		Program: insts.Program(
			insts.EncodeLDI(0x300),     // 0x200
			insts.EncodeLDImm(5, 0),    // 0x202
			insts.EncodeMisc(5, 0x33),  // 0x204 LD B, V5
			insts.EncodeMisc(2, 0x65),  // 0x206 LD V2, [I]
			insts.EncodeADDImm(5, 1),   // 0x208
			insts.EncodeSEImm(5, 0x64), // 0x20A
			insts.EncodeJP(0x204),      // 0x20C
			insts.EncodeJP(0x20E),      // 0x20E halt
		),
		Verify: allOf(expectReg(0, 0), expectReg(1, 9), expectReg(2, 9), expectReg(5, 0x64)),
	}
}
