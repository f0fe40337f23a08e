package game

import (
	"fmt"
	"math"
	"strconv"

	"github.com/simukka/starship-formation/highscore"
)

// Shape is one filled box of a frame. Glyph, when set, is drawn centered on
// the box.
type Shape struct {
	Rect
	Color string
	Glyph string
}

// Align is the horizontal anchor of a Label.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Label is a line of text whose top edge sits at Y.
type Label struct {
	X, Y  float64
	Text  string
	Color string
	Align Align
}

// Scene is everything a shell needs to draw one frame, in draw order. The
// browser, desktop and terminal shells all render from it.
type Scene struct {
	Width, Height float64
	Background    string
	Shapes        []Shape
	Labels        []Label
}

// scoreLister is implemented by score boards that can show their table.
type scoreLister interface {
	Entries() []highscore.Entry
}

// Scene builds the draw list for the current state.
func (g *Game) Scene() Scene {
	s := Scene{
		Width:      g.Config.Screen.Width,
		Height:     g.Config.Screen.Height,
		Background: Theme.BackgroundColor,
	}
	cx := s.Width / 2
	cy := s.Height / 2

	switch g.Phase {
	case PhaseBoot:
		s.text(cx, cy, "LOADING", Theme.TextSecondaryColor, AlignCenter)
		return s

	case PhaseTitle:
		g.titleScene(&s)
		return s

	case PhaseHighScore:
		g.highScoreScene(&s)
		return s
	}

	g.playfield(&s)
	g.hud(&s)

	switch {
	case g.Phase == PhaseGameStart:
		s.text(cx, cy, "WAVE "+strconv.Itoa(g.Formation.Wave()), Theme.TextPrimaryColor, AlignCenter)
		s.text(cx, cy+24, "GET READY", Theme.TextSecondaryColor, AlignCenter)
	case g.Phase == PhaseLevelComplete:
		s.text(cx, cy, "WAVE CLEARED", Theme.TextPrimaryColor, AlignCenter)
	case g.Phase == PhaseGameOver:
		s.text(cx, cy, "GAME OVER", Theme.TextPrimaryColor, AlignCenter)
	case g.Paused:
		s.text(cx, cy, "PAUSED", Theme.TextSecondaryColor, AlignCenter)
	}
	return s
}

func (s *Scene) box(r Rect, color, glyph string) {
	s.Shapes = append(s.Shapes, Shape{Rect: r, Color: color, Glyph: glyph})
}

func (s *Scene) text(x, y float64, text, color string, align Align) {
	s.Labels = append(s.Labels, Label{X: x, Y: y, Text: text, Color: color, Align: align})
}

// playfield draws enemies, then enemy fire, the ship, player fire and
// power-ups on top.
func (g *Game) playfield(s *Scene) {
	for _, e := range g.Formation.Enemies() {
		if !e.IsActive() {
			continue
		}
		size := e.Size
		if e.State == EnemyExploding {
			// Grow while exploding
			size *= 1 + (1 - e.StateTimer()/EnemyExplosionDuration)
		}
		half := size / 2
		s.box(Rect{X: e.X - half, Y: e.Y - half, W: size, H: size}, EnemyColor(e), "")
	}

	for _, p := range g.Formation.EnemyProjectiles() {
		s.box(Rect{X: p.X, Y: p.Y, W: p.W, H: p.H}, p.Color, "")
	}

	g.ship(s)

	for _, p := range g.Player.Projectiles {
		if p.IsActive() {
			s.box(Rect{X: p.X, Y: p.Y, W: p.W, H: p.H}, p.Color, "")
		}
	}

	for _, pu := range g.PowerUps.PowerUps() {
		if !pu.IsActive() {
			continue
		}
		if pu.IsBlinking() && math.Mod(g.Clock*PowerUpBlinkFrequency, 1) >= 0.5 {
			continue
		}
		s.box(pu.Bounds(), PowerUpColor(pu.Type), pu.Type.Glyph())
	}
}

func (g *Game) ship(s *Scene) {
	p := g.Player
	if p.IsDead() || p.IsBlinking() {
		return
	}
	body := Rect{X: p.X, Y: p.Y, W: p.W, H: p.H}

	switch p.State {
	case PlayerExploding:
		s.box(body, Theme.ExplosionColor, "")
		c := p.Center()
		s.box(Rect{X: c.X - p.W/4, Y: c.Y - p.H/4, W: p.W / 2, H: p.H / 2}, Theme.ExplosionCoreColor, "")
		return
	case PlayerCaptured:
		s.box(body, Theme.CapturedColor, "")
		return
	}

	if p.Shield {
		s.box(Rect{X: p.X - 4, Y: p.Y - 4, W: p.W + 8, H: p.H + 8}, Theme.ShieldGlowColor, "")
	}
	s.box(body, Theme.ShipColor, "")
	c := p.Center()
	s.box(Rect{X: c.X - 3, Y: p.Y + 4, W: 6, H: 8}, Theme.ShipCenterColor, "")
}

// hud draws the score, the wave number and one marker per spare life.
func (g *Game) hud(s *Scene) {
	s.text(8, 8, fmt.Sprintf("%06d", g.Score), Theme.ScoreColor, AlignLeft)
	s.text(s.Width-8, 8, "WAVE "+strconv.Itoa(g.Formation.Wave()), Theme.TextSecondaryColor, AlignRight)

	for i := 0; i < g.Player.Lives-1; i++ {
		s.box(Rect{X: 8 + float64(i)*16, Y: s.Height - 16, W: 12, H: 10}, Theme.ShipColor, "")
	}
}

func (g *Game) titleScene(s *Scene) {
	cx := s.Width / 2
	s.text(cx, s.Height/4, "STARSHIP FORMATION", Theme.TextPrimaryColor, AlignCenter)
	s.text(cx, s.Height/4+32, "PRESS FIRE TO START", Theme.TextSecondaryColor, AlignCenter)

	lister, ok := g.Scores.(scoreLister)
	if !ok {
		return
	}
	y := s.Height / 2
	s.text(cx, y, "HIGH SCORES", Theme.ScoreColor, AlignCenter)
	for i, e := range lister.Entries() {
		y += 20
		line := fmt.Sprintf("%2d. %-3s %7d  W%02d", i+1, e.Name, e.Score, e.Wave)
		s.text(cx, y, line, Theme.TextSecondaryColor, AlignCenter)
	}
}

// highScoreScene shows the initials being edited. The letter under the
// cursor uses the score color.
func (g *Game) highScoreScene(s *Scene) {
	cx := s.Width / 2
	cy := s.Height / 2
	s.text(cx, cy-64, "NEW HIGH SCORE", Theme.TextPrimaryColor, AlignCenter)
	s.text(cx, cy-40, strconv.Itoa(g.Score), Theme.ScoreColor, AlignCenter)

	const spacing = 24.0
	left := cx - spacing*float64(HighScoreInitialCount-1)/2
	for i, c := range g.Initials {
		color := Theme.TextSecondaryColor
		if i == g.InitialIndex {
			color = Theme.ScoreColor
		}
		s.text(left+float64(i)*spacing, cy, string(rune(c)), color, AlignCenter)
	}
}
