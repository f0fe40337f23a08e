package main

import (
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/simukka/starship-formation/game"
)

// Terminals report key presses and repeats but never releases, so a control
// counts as held until no repeat has arrived for the hold window.
type keyHolds struct {
	window time.Duration
	last   map[game.Control]time.Time
}

func newKeyHolds(window time.Duration) *keyHolds {
	return &keyHolds{
		window: window,
		last:   make(map[game.Control]time.Time),
	}
}

// press records a press or repeat of c and marks it down at once.
func (h *keyHolds) press(t *game.InputTracker, c game.Control, at time.Time) {
	h.last[c] = at
	t.Set(c, true)
}

// release lets go of every control whose hold window has run out.
func (h *keyHolds) release(t *game.InputTracker, now time.Time) {
	for c, at := range h.last {
		if now.Sub(at) >= h.window {
			t.Set(c, false)
			delete(h.last, c)
		}
	}
}

// keyCode converts a terminal key to the browser key code the game's key map
// is written in.
func keyCode(ev *tcell.EventKey) (int, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return 37, true
	case tcell.KeyUp:
		return 38, true
	case tcell.KeyRight:
		return 39, true
	case tcell.KeyDown:
		return 40, true
	case tcell.KeyEnter:
		return 13, true
	case tcell.KeyEscape:
		return 27, true
	case tcell.KeyRune:
		r := unicode.ToUpper(ev.Rune())
		if r < unicode.MaxASCII {
			return int(r), true
		}
	}
	return 0, false
}

// control maps a terminal key to a game control.
func control(ev *tcell.EventKey) (game.Control, bool) {
	code, ok := keyCode(ev)
	if !ok {
		return 0, false
	}
	return game.TranslateKeyCode(code)
}
