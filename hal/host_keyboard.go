//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type hostKeyboard struct {
	ch chan KeyEvent
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyEvent, 64)}
}

var hostKeyMap = []struct {
	key  ebiten.Key
	code KeyCode
}{
	{ebiten.KeyArrowUp, KeyUp},
	{ebiten.KeyArrowDown, KeyDown},
	{ebiten.KeyEnter, KeyEnter},
	{ebiten.KeyEscape, KeyEscape},
}

func (k *hostKeyboard) emit(ev KeyEvent) {
	select {
	case k.ch <- ev:
	default:
	}
}

func (k *hostKeyboard) poll() {
	for _, r := range ebiten.AppendInputChars(nil) {
		k.emit(KeyEvent{Press: true, Rune: r})
	}
	for _, m := range hostKeyMap {
		if inpututil.IsKeyJustPressed(m.key) {
			k.emit(KeyEvent{Code: m.code, Press: true})
		}
		if inpututil.IsKeyJustReleased(m.key) {
			k.emit(KeyEvent{Code: m.code, Press: false})
		}
	}
}
