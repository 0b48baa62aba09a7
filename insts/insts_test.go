package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/c8sim/insts"
)

var _ = Describe("Insts Package", func() {
	It("should have an Instruction type", func() {
		var i insts.Instruction
		Expect(i).To(BeZero())
	})

	It("should have a Decoder type", func() {
		decoder := insts.NewDecoder()
		Expect(decoder).ToNot(BeNil())
	})

	Describe("Disassembly", func() {
		var decoder *insts.Decoder

		BeforeEach(func() {
			decoder = insts.NewDecoder()
		})

		DescribeTable("should format instructions",
			func(word uint16, want string) {
				Expect(decoder.Decode(word).String()).To(Equal(want))
			},
			Entry("CLS", uint16(0x00E0), "CLS"),
			Entry("RET", uint16(0x00EE), "RET"),
			Entry("JP", uint16(0x1234), "JP $234"),
			Entry("CALL", uint16(0x2050), "CALL $050"),
			Entry("SE imm", uint16(0x3A2F), "SE VA, $2F"),
			Entry("SNE reg", uint16(0x9120), "SNE V1, V2"),
			Entry("LD imm", uint16(0x6A2F), "LD VA, $2F"),
			Entry("SHL", uint16(0x812E), "SHL V1, V2"),
			Entry("LD I", uint16(0xA123), "LD I, $123"),
			Entry("JP offset", uint16(0xB300), "JP V0, $300"),
			Entry("DRW", uint16(0xD125), "DRW V1, V2, $5"),
			Entry("SKP", uint16(0xE49E), "SKP V4"),
			Entry("LD K", uint16(0xF30A), "LD V3, K"),
			Entry("LD B", uint16(0xF233), "LD B, V2"),
			Entry("store regs", uint16(0xF555), "LD [I], V5"),
			Entry("load regs", uint16(0xF565), "LD V5, [I]"),
			Entry("unknown", uint16(0x5121), "DW $5121"),
		)
	})

	Describe("Encoding helpers", func() {
		It("should round-trip through the decoder", func() {
			decoder := insts.NewDecoder()

			inst := decoder.Decode(insts.EncodeDRW(3, 4, 7))
			Expect(inst.Op).To(Equal(insts.OpDRW))
			Expect(inst.X).To(Equal(uint8(3)))
			Expect(inst.Y).To(Equal(uint8(4)))
			Expect(inst.N).To(Equal(uint8(7)))
		})

		It("should flatten words big-endian", func() {
			Expect(insts.Program(0x6A2F, 0x00E0)).To(Equal([]byte{0x6A, 0x2F, 0x00, 0xE0}))
		})
	})

	Describe("Classification", func() {
		It("should classify skips, jumps and stores", func() {
			decoder := insts.NewDecoder()
			Expect(decoder.Decode(0x3A2F).IsSkip()).To(BeTrue())
			Expect(decoder.Decode(0xE1A1).IsSkip()).To(BeTrue())
			Expect(decoder.Decode(0x1200).IsJump()).To(BeTrue())
			Expect(decoder.Decode(0xB200).IsJump()).To(BeTrue())
			Expect(decoder.Decode(0x2200).IsJump()).To(BeFalse())
			Expect(decoder.Decode(0xF355).WritesMemory()).To(BeTrue())
			Expect(decoder.Decode(0xF365).WritesMemory()).To(BeFalse())
		})
	})
})
