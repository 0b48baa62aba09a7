package emu

import "math/rand/v2"

// HostKey is a host input code. Hosts report keys as upper-case ASCII.
type HostKey int

// Keymap maps logical keys 0x0-0xF to host input codes.
type Keymap [NumKeys]HostKey

// DefaultKeymap lays the keypad over the left side of a QWERTY keyboard.
//
//	1 2 3 C        1 2 3 4
//	4 5 6 D   <-   Q W E R
//	7 8 9 E        A S D F
//	A 0 B F        Z X C V
var DefaultKeymap = Keymap{
	'X', '1', '2', '3',
	'Q', 'W', 'E', 'A',
	'S', 'D', 'Z', 'C',
	'4', 'R', 'F', 'V',
}

// Logical returns the logical key mapped to code.
func (m *Keymap) Logical(code HostKey) (uint8, bool) {
	for k, c := range m {
		if c == code {
			return uint8(k), true
		}
	}
	return 0, false
}

// Keyboard is the host's view of its input device.
type Keyboard interface {
	// IsKeyDown reports whether the host key is held.
	IsKeyDown(code HostKey) bool

	// PressedKey returns the key pressed since the last query, if any.
	PressedKey() (HostKey, bool)
}

// NullKeyboard reports no keys.
type NullKeyboard struct{}

// IsKeyDown always reports false.
func (NullKeyboard) IsKeyDown(HostKey) bool { return false }

// PressedKey always reports nothing.
func (NullKeyboard) PressedKey() (HostKey, bool) { return 0, false }

// KeyState is an in-memory Keyboard driven by Press and Release. Headless
// hosts and tests use it.
type KeyState struct {
	down    map[HostKey]bool
	pressed []HostKey
}

// NewKeyState creates a KeyState with no keys held.
func NewKeyState() *KeyState {
	return &KeyState{down: make(map[HostKey]bool)}
}

// Press marks a key held and queues it for PressedKey.
func (k *KeyState) Press(code HostKey) {
	if !k.down[code] {
		k.pressed = append(k.pressed, code)
	}
	k.down[code] = true
}

// Release marks a key up.
func (k *KeyState) Release(code HostKey) {
	delete(k.down, code)
}

// IsKeyDown reports whether code is held.
func (k *KeyState) IsKeyDown(code HostKey) bool {
	return k.down[code]
}

// PressedKey dequeues the oldest press.
func (k *KeyState) PressedKey() (HostKey, bool) {
	if len(k.pressed) == 0 {
		return 0, false
	}
	code := k.pressed[0]
	k.pressed = k.pressed[1:]
	return code, true
}

// ClearPressed drops queued presses. Frame-driven hosts call it before
// sampling so Fx0A only sees presses from the current frame.
func (k *KeyState) ClearPressed() {
	k.pressed = k.pressed[:0]
}

// RandomSource produces uniformly distributed bytes for Cxnn.
type RandomSource interface {
	RandomByte() byte
}

type pcgSource struct {
	rng *rand.Rand
}

// NewRandomSource returns a deterministic RandomSource seeded with seed.
func NewRandomSource(seed uint64) RandomSource {
	return &pcgSource{rng: rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))}
}

func (p *pcgSource) RandomByte() byte {
	return byte(p.rng.UintN(256))
}
