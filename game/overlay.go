package game

import "strconv"

// StatLine is one label/value row of the stats overlay.
type StatLine struct {
	Label string
	Value string
	Color string
}

// StatsOverlay collects real-time game statistics for the shells to draw.
type StatsOverlay struct {
	Visible bool

	// FPS tracking
	FrameCount    int
	LastFPSUpdate float64
	CurrentFPS    float64
}

// NewStatsOverlay creates a new stats overlay instance
func NewStatsOverlay() *StatsOverlay {
	return &StatsOverlay{}
}

// Toggle toggles the stats overlay visibility
func (s *StatsOverlay) Toggle() {
	s.Visible = !s.Visible
}

// UpdateFPS counts a rendered frame. currentTime is in milliseconds.
func (s *StatsOverlay) UpdateFPS(currentTime float64) {
	s.FrameCount++

	// Update FPS every second
	elapsed := currentTime - s.LastFPSUpdate
	if elapsed >= 1000 {
		s.CurrentFPS = float64(s.FrameCount) / (elapsed / 1000)
		s.FrameCount = 0
		s.LastFPSUpdate = currentTime
	}
}

// Lines returns the rows to draw for g.
func (s *StatsOverlay) Lines(g *Game) []StatLine {
	p := g.Player
	f := g.Formation

	return []StatLine{
		{"FPS", strconv.FormatFloat(s.CurrentFPS, 'f', 1, 64), "#00ff00"},
		{"Phase", g.Phase.String(), "#ffffff"},
		{"Wave", strconv.Itoa(f.Wave()) + " (" + f.Layout().String() + ")", "#ffffff"},
		{"Score", strconv.Itoa(g.Score), "#ffff00"},
		{"Enemies", strconv.Itoa(f.ActiveCount()), "#ff0066"},
		{"Enemy shots", strconv.Itoa(len(f.EnemyProjectiles())), "#ff8800"},
		{"Player shots", strconv.Itoa(len(p.Projectiles)), "#ff8800"},
		{"Power-ups", strconv.Itoa(len(g.PowerUps.PowerUps())), "#44ff44"},
		{"Lives", strconv.Itoa(p.Lives), s.livesColor(p.Lives)},
		{"State", p.State.String(), "#aaaaaa"},
		{"Shield", strconv.FormatFloat(p.ShieldTime, 'f', 1, 64), "#00ffff"},
		{"Upgrade", strconv.FormatFloat(p.UpgradeTime, 'f', 1, 64), "#8888ff"},
		{"Position", strconv.FormatFloat(p.X, 'f', 0, 64) + ", " + strconv.FormatFloat(p.Y, 'f', 0, 64), "#aaaaaa"},
	}
}

// livesColor returns a color based on remaining lives
func (s *StatsOverlay) livesColor(lives int) string {
	if lives > 3 {
		return "#00ff00"
	} else if lives > 2 {
		return "#88ff00"
	} else if lives > 1 {
		return "#ffff00"
	} else {
		return "#ff0000"
	}
}

// AppendTo adds the overlay rows to s when visible, anchored at the
// top-left of the playfield below the HUD.
func (s *StatsOverlay) AppendTo(scene *Scene, g *Game) {
	if !s.Visible {
		return
	}
	y := 32.0
	for _, line := range s.Lines(g) {
		scene.text(8, y, line.Label+": "+line.Value, line.Color, AlignLeft)
		y += 14
	}
}
