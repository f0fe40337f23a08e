//go:build js
// +build js

package main

import (
	"log"

	"github.com/gopherjs/gopherjs/js"

	"github.com/simukka/starship-formation/audio"
	"github.com/simukka/starship-formation/game"
)

// webAudio plays event cues through HTML audio elements built from WAV data
// URLs, which already carry each cue's gain. Each play clones the element so
// overlapping cues do not cut off.
type webAudio struct {
	bank     *audio.Bank
	elements map[string]*js.Object
	muted    bool
}

var _ game.Listener = (*webAudio)(nil)

func newWebAudio(bank *audio.Bank) *webAudio {
	w := &webAudio{
		bank:     bank,
		elements: make(map[string]*js.Object),
	}
	for _, name := range bank.Names() {
		url, err := bank.DataURL(name)
		if err != nil {
			log.Printf("[audio] skipping cue %s: %v", name, err)
			continue
		}
		w.elements[name] = js.Global.Get("Audio").New(url)
	}
	log.Printf("[audio] %d cues ready", len(w.elements))
	return w
}

// ToggleMute flips the mute flag and returns the new state.
func (w *webAudio) ToggleMute() bool {
	w.muted = !w.muted
	return w.muted
}

// HandleEvent implements game.Listener.
func (w *webAudio) HandleEvent(e game.Event) {
	if w.muted {
		return
	}
	name, ok := audio.CueFor(e)
	if !ok {
		return
	}
	el, ok := w.elements[name]
	if !ok {
		return
	}
	el.Call("cloneNode").Call("play")
}
