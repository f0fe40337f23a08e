// Command formation runs the game in a desktop window.
package main

import (
	"context"
	"flag"
	"image/color"
	"log"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/simukka/starship-formation/audio"
	"github.com/simukka/starship-formation/game"
	"github.com/simukka/starship-formation/session"
)

// Debug font cell used to center glyphs
const (
	glyphW = 6
	glyphH = 16
)

// keyBindings maps keyboard keys to game controls. Several keys may drive
// the same control.
var keyBindings = map[ebiten.Key]game.Control{
	ebiten.KeyArrowLeft:  game.ControlLeft,
	ebiten.KeyA:          game.ControlLeft,
	ebiten.KeyArrowRight: game.ControlRight,
	ebiten.KeyD:          game.ControlRight,
	ebiten.KeyArrowUp:    game.ControlUp,
	ebiten.KeyW:          game.ControlUp,
	ebiten.KeyArrowDown:  game.ControlDown,
	ebiten.KeyS:          game.ControlDown,
	ebiten.KeySpace:      game.ControlFire,
	ebiten.KeyZ:          game.ControlFire,
	ebiten.KeyEnter:      game.ControlStart,
	ebiten.KeyEscape:     game.ControlPause,
	ebiten.KeyP:          game.ControlPause,
}

type window struct {
	session *session.Session
	sounds  *audio.Player
	colors  map[string]color.RGBA
	start   time.Time
}

// Update implements ebiten.Game.
func (w *window) Update() error {
	var down [game.ControlPause + 1]bool
	for key, c := range keyBindings {
		if ebiten.IsKeyPressed(key) {
			down[c] = true
		}
	}
	for c, d := range down {
		w.session.Input.Set(game.Control(c), d)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		w.session.Overlay.Toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) && w.sounds != nil {
		w.sounds.ToggleMute()
	}

	w.session.Loop.Advance(1 / float64(ebiten.TPS()))
	if w.session.Loop.Stopped() {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (w *window) Draw(screen *ebiten.Image) {
	g := w.session.Game
	w.session.Overlay.UpdateFPS(float64(time.Since(w.start).Milliseconds()))

	scene := g.Scene()
	w.session.Overlay.AppendTo(&scene, g)

	screen.Fill(w.color(scene.Background))
	for _, sh := range scene.Shapes {
		vector.DrawFilledRect(screen, float32(sh.X), float32(sh.Y), float32(sh.W), float32(sh.H), w.color(sh.Color), false)
		if sh.Glyph != "" {
			c := sh.Center()
			ebitenutil.DebugPrintAt(screen, sh.Glyph, int(c.X)-glyphW/2, int(c.Y)-glyphH/2)
		}
	}
	for _, l := range scene.Labels {
		x := l.X
		switch l.Align {
		case game.AlignCenter:
			x -= float64(len(l.Text)*glyphW) / 2
		case game.AlignRight:
			x -= float64(len(l.Text) * glyphW)
		}
		ebitenutil.DebugPrintAt(screen, l.Text, int(x), int(l.Y))
	}
}

// Layout implements ebiten.Game.
func (w *window) Layout(outsideWidth, outsideHeight int) (int, int) {
	cfg := w.session.Game.Config.Screen
	return int(cfg.Width), int(cfg.Height)
}

// color parses and caches a theme color.
func (w *window) color(hex string) color.RGBA {
	if c, ok := w.colors[hex]; ok {
		return c
	}
	c, err := game.ParseHexColor(hex)
	if err != nil {
		log.Printf("[game] %v", err)
	}
	w.colors[hex] = c
	return c
}

func main() {
	opts := session.RegisterFlags(flag.CommandLine)
	mute := flag.Bool("mute", false, "Start without sound")
	flag.Parse()

	s, err := session.Open(context.Background(), opts)
	if err != nil {
		log.Fatal(err)
	}
	defer s.Close()

	w := &window{
		session: s,
		colors:  make(map[string]color.RGBA),
		start:   time.Now(),
	}

	if !*mute {
		sounds := audio.NewPlayer(audio.NewBank(audio.Library), s.Game.Config.Screen.Width)
		if err := sounds.Init(); err != nil {
			log.Printf("[audio] disabled: %v", err)
		} else {
			defer sounds.Close()
			s.Game.Subscribe(sounds)
			w.sounds = sounds
		}
	}

	cfg := s.Game.Config
	ebiten.SetTPS(int(math.Round(1 / cfg.Timing.Step)))
	ebiten.SetWindowSize(int(cfg.Screen.Width), int(cfg.Screen.Height))
	ebiten.SetWindowTitle("Starship Formation")
	ebiten.SetWindowResizable(true)

	if err := ebiten.RunGame(w); err != nil {
		log.Fatal(err)
	}
}
