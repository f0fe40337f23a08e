//go:build js
// +build js

package main

import (
	"context"
	"log"

	"github.com/gopherjs/gopherjs/js"

	"github.com/simukka/starship-formation/audio"
	"github.com/simukka/starship-formation/common"
	"github.com/simukka/starship-formation/game"
	"github.com/simukka/starship-formation/highscore"
)

// Keys handled by the shell itself rather than the game
const (
	keyMute    = 77  // M
	keyOverlay = 192 // backquote
)

func main() {
	// Get the canvas element
	doc := js.Global.Get("document")
	canvas := doc.Call("getElementById", "c")
	if canvas == nil || canvas == js.Undefined {
		panic("canvas element not found")
	}

	cfg := game.DefaultConfig()
	canvas.Set("width", cfg.Screen.Width)
	canvas.Set("height", cfg.Screen.Height)
	ctx := canvas.Call("getContext", "2d")

	// Shared table on the server, memory when offline
	scores := highscore.NewManager(highscore.DefaultCapacity,
		highscore.NewHTTPStore("/api/scores"),
		highscore.NewMemoryStore(nil),
	)
	go scores.Load(context.Background())

	seed := uint32(js.Global.Get("Date").Call("now").Int64())
	g, err := game.NewGame(cfg, common.NewSeededRNG(seed), scores)
	if err != nil {
		panic(err)
	}

	sounds := newWebAudio(audio.NewBank(audio.Library))
	g.Subscribe(sounds)

	tracker := &game.InputTracker{}
	overlay := game.NewStatsOverlay()
	loop := game.NewLoop(cfg.Timing.Step, cfg.Timing.MaxFrame, func(dt float64) {
		g.Update(dt, tracker.Next())
	})

	js.Global.Call("addEventListener", "keydown", func(e *js.Object) {
		code := e.Get("keyCode").Int()
		switch code {
		case keyMute:
			sounds.ToggleMute()
		case keyOverlay:
			overlay.Toggle()
		}
		if tracker.SetKeyCode(code, true) {
			e.Call("preventDefault")
		}
	})
	js.Global.Call("addEventListener", "keyup", func(e *js.Object) {
		if tracker.SetKeyCode(e.Get("keyCode").Int(), false) {
			e.Call("preventDefault")
		}
	})

	var last float64
	var frame func(ts float64)
	frame = func(ts float64) {
		if last > 0 {
			loop.Advance((ts - last) / 1000)
		}
		last = ts
		overlay.UpdateFPS(ts)

		scene := g.Scene()
		overlay.AppendTo(&scene, g)
		draw(ctx, scene)

		js.Global.Call("requestAnimationFrame", frame)
	}
	js.Global.Call("requestAnimationFrame", frame)

	log.Printf("[game] started with seed %d", seed)
}

// draw paints a scene onto a 2D canvas context.
func draw(ctx *js.Object, s game.Scene) {
	ctx.Set("fillStyle", s.Background)
	ctx.Call("fillRect", 0, 0, s.Width, s.Height)

	ctx.Set("textBaseline", "middle")
	ctx.Set("textAlign", "center")
	ctx.Set("font", "bold 14px "+game.Theme.TextFont)
	for _, sh := range s.Shapes {
		ctx.Set("fillStyle", sh.Color)
		ctx.Call("fillRect", sh.X, sh.Y, sh.W, sh.H)
		if sh.Glyph != "" {
			c := sh.Center()
			ctx.Set("fillStyle", game.Theme.BackgroundColor)
			ctx.Call("fillText", sh.Glyph, c.X, c.Y)
		}
	}

	ctx.Set("textBaseline", "top")
	ctx.Set("font", "16px "+game.Theme.ScoreFont)
	for _, l := range s.Labels {
		switch l.Align {
		case game.AlignCenter:
			ctx.Set("textAlign", "center")
		case game.AlignRight:
			ctx.Set("textAlign", "right")
		default:
			ctx.Set("textAlign", "left")
		}
		ctx.Set("fillStyle", l.Color)
		ctx.Call("fillText", l.Text, l.X, l.Y)
	}
}
