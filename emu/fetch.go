package emu

// lastFetchable is the highest PC from which a fetch still advances.
const lastFetchable = MemorySize - 2

// FetchNext reads the big-endian instruction word at PC and advances PC by
// two. The advance saturates: at the top of memory PC stays put.
func FetchNext(s *State) (uint16, error) {
	if s == nil {
		return 0, ErrNilState
	}

	word := uint16(s.ReadByte(s.PC))<<8 | uint16(s.ReadByte(s.PC+1))
	s.advancePC()

	return word, nil
}

// advancePC moves PC past one instruction word unless that would run off the
// end of memory.
func (s *State) advancePC() {
	if s.PC < lastFetchable {
		s.PC += 2
	}
}
