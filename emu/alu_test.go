package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/c8sim/emu"
)

var _ = Describe("ALU", func() {
	var (
		s   *emu.State
		alu *emu.ALU
	)

	BeforeEach(func() {
		s = emu.Init()
		alu = emu.NewALU(s, emu.ModeLegacy)
	})

	Describe("Logic", func() {
		BeforeEach(func() {
			s.V[1] = 0b1100
			s.V[2] = 0b1010
		})

		It("should assign", func() {
			alu.LD(1, 2)
			Expect(s.V[1]).To(Equal(uint8(0b1010)))
		})

		It("should OR", func() {
			alu.OR(1, 2)
			Expect(s.V[1]).To(Equal(uint8(0b1110)))
		})

		It("should AND", func() {
			alu.AND(1, 2)
			Expect(s.V[1]).To(Equal(uint8(0b1000)))
		})

		It("should XOR", func() {
			alu.XOR(1, 2)
			Expect(s.V[1]).To(Equal(uint8(0b0110)))
		})
	})

	Describe("ADD", func() {
		It("should set VF iff the sum exceeds 255", func() {
			for a := 0; a < 256; a += 15 {
				for b := 0; b < 256; b += 17 {
					s.V[1], s.V[2] = uint8(a), uint8(b)

					alu.ADD(1, 2)

					Expect(s.V[1]).To(Equal(uint8(a + b)))
					if a+b > 255 {
						Expect(s.V[0xF]).To(Equal(uint8(1)), "%d+%d", a, b)
					} else {
						Expect(s.V[0xF]).To(BeZero(), "%d+%d", a, b)
					}
				}
			}
		})

		It("should not flag exactly 255", func() {
			s.V[1], s.V[2] = 200, 55
			alu.ADD(1, 2)
			Expect(s.V[1]).To(Equal(uint8(255)))
			Expect(s.V[0xF]).To(BeZero())
		})

		It("should write the flag last when x is F", func() {
			s.V[0xF], s.V[2] = 200, 100
			alu.ADD(0xF, 2)
			Expect(s.V[0xF]).To(Equal(uint8(1)))
		})
	})

	Describe("SUB", func() {
		It("should set VF iff Vx >= Vy", func() {
			for a := 0; a < 256; a += 15 {
				for b := 0; b < 256; b += 17 {
					s.V[1], s.V[2] = uint8(a), uint8(b)

					alu.SUB(1, 2)

					Expect(s.V[1]).To(Equal(uint8(a - b)))
					if a >= b {
						Expect(s.V[0xF]).To(Equal(uint8(1)), "%d-%d", a, b)
					} else {
						Expect(s.V[0xF]).To(BeZero(), "%d-%d", a, b)
					}
				}
			}
		})

		It("should flag equal operands as no borrow", func() {
			s.V[1], s.V[2] = 9, 9
			alu.SUB(1, 2)
			Expect(s.V[1]).To(BeZero())
			Expect(s.V[0xF]).To(Equal(uint8(1)))
		})

		It("should compute SUBN as Vy - Vx", func() {
			s.V[1], s.V[2] = 3, 10
			alu.SUBN(1, 2)
			Expect(s.V[1]).To(Equal(uint8(7)))
			Expect(s.V[0xF]).To(Equal(uint8(1)))

			s.V[1], s.V[2] = 10, 3
			alu.SUBN(1, 2)
			Expect(s.V[1]).To(Equal(uint8(249)))
			Expect(s.V[0xF]).To(BeZero())
		})
	})

	Describe("Shifts", func() {
		Context("legacy mode", func() {
			It("should shift Vy into Vx", func() {
				s.V[1], s.V[2] = 0x00, 0x05

				alu.SHR(1, 2)

				Expect(s.V[1]).To(Equal(uint8(0x02)))
				Expect(s.V[0xF]).To(Equal(uint8(1)))
			})

			It("should shift left out of the high bit", func() {
				s.V[1], s.V[2] = 0x00, 0x81

				alu.SHL(1, 2)

				Expect(s.V[1]).To(Equal(uint8(0x02)))
				Expect(s.V[0xF]).To(Equal(uint8(1)))
			})
		})

		Context("modern mode", func() {
			BeforeEach(func() {
				alu = emu.NewALU(s, emu.ModeModern)
			})

			It("should shift Vx in place", func() {
				s.V[1], s.V[2] = 0x04, 0xFF

				alu.SHR(1, 2)

				Expect(s.V[1]).To(Equal(uint8(0x02)))
				Expect(s.V[0xF]).To(BeZero())
			})

			It("should set VF to 0 or 1 for SHL", func() {
				s.V[1] = 0xC0

				alu.SHL(1, 2)

				Expect(s.V[1]).To(Equal(uint8(0x80)))
				Expect(s.V[0xF]).To(Equal(uint8(1)))
			})
		})

		It("should let the flag win when shifting VF", func() {
			s.V[0xF] = 0x02
			modern := emu.NewALU(s, emu.ModeModern)

			modern.SHR(0xF, 0)

			Expect(s.V[0xF]).To(BeZero())
		})
	})
})
