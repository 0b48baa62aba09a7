package main

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/sarchlab/c8sim/emu"
)

var letterKeys = [...]ebiten.Key{
	ebiten.KeyA, ebiten.KeyB, ebiten.KeyC, ebiten.KeyD, ebiten.KeyE,
	ebiten.KeyF, ebiten.KeyG, ebiten.KeyH, ebiten.KeyI, ebiten.KeyJ,
	ebiten.KeyK, ebiten.KeyL, ebiten.KeyM, ebiten.KeyN, ebiten.KeyO,
	ebiten.KeyP, ebiten.KeyQ, ebiten.KeyR, ebiten.KeyS, ebiten.KeyT,
	ebiten.KeyU, ebiten.KeyV, ebiten.KeyW, ebiten.KeyX, ebiten.KeyY,
	ebiten.KeyZ,
}

var digitKeys = [...]ebiten.Key{
	ebiten.KeyDigit0, ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6, ebiten.KeyDigit7,
	ebiten.KeyDigit8, ebiten.KeyDigit9,
}

// ebitenKey translates an ASCII host key to the ebiten key that produces it.
func ebitenKey(code emu.HostKey) (ebiten.Key, bool) {
	switch {
	case code >= 'A' && code <= 'Z':
		return letterKeys[code-'A'], true
	case code >= 'a' && code <= 'z':
		return letterKeys[code-'a'], true
	case code >= '0' && code <= '9':
		return digitKeys[code-'0'], true
	}
	return 0, false
}

// keyboard mirrors the mapped ebiten keys into an emu.KeyState once per
// frame.
type keyboard struct {
	*emu.KeyState
	keys map[emu.HostKey]ebiten.Key
}

func newKeyboard(keymap emu.Keymap) *keyboard {
	kb := &keyboard{
		KeyState: emu.NewKeyState(),
		keys:     make(map[emu.HostKey]ebiten.Key, emu.NumKeys),
	}
	for _, code := range keymap {
		if k, ok := ebitenKey(code); ok {
			kb.keys[code] = k
		}
	}
	return kb
}

// poll samples the host keyboard.
func (kb *keyboard) poll() {
	kb.ClearPressed()
	for code, k := range kb.keys {
		if ebiten.IsKeyPressed(k) {
			kb.Press(code)
		} else {
			kb.Release(code)
		}
	}
}
