package cache

import "github.com/sarchlab/c8sim/insts"

// DecoderBacking fills lines by decoding consecutive instruction words.
type DecoderBacking struct {
	decoder *insts.Decoder
}

// NewDecoderBacking creates a new DecoderBacking adapter.
func NewDecoderBacking(decoder *insts.Decoder) *DecoderBacking {
	return &DecoderBacking{decoder: decoder}
}

// Fill decodes base, base+1, ... into line. Words past 0xFFFF wrap.
func (d *DecoderBacking) Fill(base uint16, line []insts.Instruction) {
	for i := range line {
		line[i] = d.decoder.DecodeValue(base + uint16(i))
	}
}
