package game

import (
	"strings"
	"testing"

	"github.com/simukka/starship-formation/highscore"
)

// listingBoard is a ScoreBoard that can also show its table.
type listingBoard struct {
	stubBoard
	entries []highscore.Entry
}

func (b *listingBoard) Entries() []highscore.Entry { return b.entries }

func hasLabel(s Scene, text string) bool {
	for _, l := range s.Labels {
		if strings.Contains(l.Text, text) {
			return true
		}
	}
	return false
}

func countShapes(s Scene, color string) int {
	n := 0
	for _, sh := range s.Shapes {
		if sh.Color == color {
			n++
		}
	}
	return n
}

func TestScene_Boot(t *testing.T) {
	g := createTestGame(t, nil)
	s := g.Scene()
	if s.Width != WIDTH || s.Height != HEIGHT {
		t.Errorf("Expected %dx%d scene, got %vx%v", WIDTH, HEIGHT, s.Width, s.Height)
	}
	if s.Background != Theme.BackgroundColor {
		t.Errorf("Expected background %s, got %s", Theme.BackgroundColor, s.Background)
	}
	if !hasLabel(s, "LOADING") || len(s.Shapes) != 0 {
		t.Error("Boot should only show the loading label")
	}
}

func TestScene_TitleListsScores(t *testing.T) {
	board := &listingBoard{entries: []highscore.Entry{
		{Name: "ACE", Score: 12345, Wave: 7},
		{Name: "BOB", Score: 999, Wave: 2},
	}}
	g := createTestGame(t, board)
	g.setPhase(PhaseTitle, 0)

	s := g.Scene()
	if !hasLabel(s, "PRESS FIRE") {
		t.Error("Expected start prompt on the title")
	}
	if !hasLabel(s, "ACE") || !hasLabel(s, "12345") || !hasLabel(s, "BOB") {
		t.Errorf("Expected both table rows, got %+v", s.Labels)
	}

	plain := createTestGame(t, &stubBoard{})
	plain.setPhase(PhaseTitle, 0)
	if hasLabel(plain.Scene(), "HIGH SCORES") {
		t.Error("A board without a table should not list scores")
	}
}

func TestScene_PlayfieldDrawsEveryEntity(t *testing.T) {
	g := createPlayingGame(t)

	s := g.Scene()
	enemies := 0
	for _, e := range g.Formation.Enemies() {
		if e.IsActive() {
			enemies++
		}
	}
	tierShapes := 0
	for _, tier := range []EnemyTier{TierBasic, TierEscort, TierMiniBoss, TierCommander, TierMothership} {
		tierShapes += countShapes(s, TierColor(tier))
	}
	if tierShapes != enemies {
		t.Errorf("Expected %d enemy shapes, got %d", enemies, tierShapes)
	}

	// Ship body plus one marker per spare life share the ship color
	if got := countShapes(s, Theme.ShipColor); got != g.Player.Lives {
		t.Errorf("Expected %d ship-colored shapes, got %d", g.Player.Lives, got)
	}
	if !hasLabel(s, "WAVE 1") || !hasLabel(s, "000000") {
		t.Errorf("Expected HUD labels, got %+v", s.Labels)
	}
}

func TestScene_ShieldAndPowerUps(t *testing.T) {
	g := createPlayingGame(t)
	g.Player.ApplyPowerUp(PowerUpShield)
	pu := g.PowerUps.Spawn(PowerUpWeaponUpgrade, 100, 100)

	s := g.Scene()
	if countShapes(s, Theme.ShieldGlowColor) != 1 {
		t.Error("Expected a shield glow behind the ship")
	}
	found := false
	for _, sh := range s.Shapes {
		if sh.Glyph == "W" {
			found = true
			if sh.Rect != pu.Bounds() {
				t.Errorf("Expected power-up at %+v, got %+v", pu.Bounds(), sh.Rect)
			}
		}
	}
	if !found {
		t.Error("Expected the power-up glyph")
	}
}

func TestScene_ExplodingShip(t *testing.T) {
	g := createPlayingGame(t)
	g.Player.State = PlayerExploding

	s := g.Scene()
	if countShapes(s, Theme.ExplosionCoreColor) != 1 {
		t.Error("Expected an explosion core over the ship")
	}
	if got := countShapes(s, Theme.ShipColor); got != g.Player.Lives-1 {
		t.Errorf("Expected only the spare-life markers in ship color, got %d", got)
	}
}

func TestScene_BlinkingPowerUpHides(t *testing.T) {
	g := createPlayingGame(t)
	pu := g.PowerUps.Spawn(PowerUpShield, 100, 100)
	pu.Elapsed = pu.Lifespan - 1

	visible := map[bool]int{}
	for i := 0; i < 30; i++ {
		g.Clock = float64(i) / 30
		shown := false
		for _, sh := range g.Scene().Shapes {
			if sh.Glyph == "S" {
				shown = true
			}
		}
		visible[shown]++
	}
	if visible[true] == 0 || visible[false] == 0 {
		t.Errorf("Expected a blinking power-up to toggle, got %v", visible)
	}
}

func TestScene_PhaseBanners(t *testing.T) {
	g := createPlayingGame(t)

	g.Paused = true
	if !hasLabel(g.Scene(), "PAUSED") {
		t.Error("Expected pause banner")
	}
	g.Paused = false

	g.Phase = PhaseGameOver
	if !hasLabel(g.Scene(), "GAME OVER") {
		t.Error("Expected game over banner")
	}

	g.Phase = PhaseLevelComplete
	if !hasLabel(g.Scene(), "WAVE CLEARED") {
		t.Error("Expected level complete banner")
	}
}

func TestScene_HighScoreEntry(t *testing.T) {
	g := createTestGame(t, &stubBoard{qualify: true})
	g.Score = 4200
	g.Initials = [HighScoreInitialCount]byte{'Q', 'R', 'S'}
	g.InitialIndex = 1
	g.Phase = PhaseHighScore

	s := g.Scene()
	if !hasLabel(s, "4200") {
		t.Error("Expected the score being entered")
	}
	for _, l := range s.Labels {
		if l.Text == "R" && l.Color != Theme.ScoreColor {
			t.Errorf("Expected the cursor letter highlighted, got %s", l.Color)
		}
		if l.Text == "Q" && l.Color == Theme.ScoreColor {
			t.Error("Only the cursor letter should be highlighted")
		}
	}
}

func TestStatsOverlay_AppendTo(t *testing.T) {
	g := createPlayingGame(t)
	overlay := NewStatsOverlay()

	s := g.Scene()
	before := len(s.Labels)
	overlay.AppendTo(&s, g)
	if len(s.Labels) != before {
		t.Error("Hidden overlay should add nothing")
	}

	overlay.Toggle()
	overlay.AppendTo(&s, g)
	if got := len(s.Labels) - before; got != len(overlay.Lines(g)) {
		t.Errorf("Expected %d overlay rows, got %d", len(overlay.Lines(g)), got)
	}
}
