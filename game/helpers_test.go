package game

import (
	"math"
	"testing"

	"github.com/simukka/starship-formation/common"
)

// Helper for floating point comparison
func almostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) < tolerance
}

// scriptedSource replays a fixed list of Random() values, cycling when it
// runs out. RandomInt and RandomFloat are derived the same way SeededRNG
// derives them.
type scriptedSource struct {
	values []float64
	next   int
}

var _ common.Source = (*scriptedSource)(nil)

func newScriptedSource(values ...float64) *scriptedSource {
	if len(values) == 0 {
		values = []float64{0}
	}
	return &scriptedSource{values: values}
}

func (s *scriptedSource) Random() float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

func (s *scriptedSource) RandomInt(min, max int) int {
	if max <= min {
		return min
	}
	return int(s.Random()*float64(max-min)) + min
}

func (s *scriptedSource) RandomFloat(min, max float64) float64 {
	return s.Random()*(max-min) + min
}

// eventRecorder collects delivered events.
type eventRecorder struct {
	events []Event
}

func (r *eventRecorder) HandleEvent(e Event) {
	r.events = append(r.events, e)
}

func (r *eventRecorder) count(kind EventKind) int {
	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// countPending counts queued, not yet flushed, events of kind.
func countPending(b *EventBus, kind EventKind) int {
	n := 0
	for _, e := range b.Pending() {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// createTestEnv returns an enemy environment over the default playfield.
func createTestEnv(rng common.Source) *EnemyEnv {
	cfg := DefaultConfig()
	return NewEnemyEnv(&cfg, rng, NewEventBus())
}

// createTestEnemy returns an ACTIVE enemy resting at (x, y).
func createTestEnemy(tier EnemyTier, x, y float64, env *EnemyEnv) *Enemy {
	e := NewEnemy(tier, 0, 0, x, y, env)
	e.State = EnemyActive
	return e
}

// createTestPlayer returns an ACTIVE player at its launch position.
func createTestPlayer(t *testing.T) *Player {
	t.Helper()
	p, err := NewPlayer(DefaultConfig(), NewEventBus())
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}
	p.State = PlayerActive
	return p
}

// createTestGame returns a seeded game sitting in BOOT.
func createTestGame(t *testing.T, scores ScoreBoard) *Game {
	t.Helper()
	g, err := NewGame(DefaultConfig(), common.NewSeededRNG(1234), scores)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return g
}

// createPlayingGame returns a game in PLAYING on wave 1 with an ACTIVE player.
func createPlayingGame(t *testing.T) *Game {
	t.Helper()
	g := createTestGame(t, nil)
	g.StartGame()
	g.Phase = PhasePlaying
	g.Player.State = PlayerActive
	return g
}

// step runs n fixed steps with the same input.
func step(g *Game, n int, in Input) {
	for i := 0; i < n; i++ {
		g.Update(FrameDuration, in)
	}
}

// ticks converts seconds to whole fixed steps, rounding up.
func ticks(seconds float64) int {
	return int(math.Ceil(seconds/FrameDuration - 1e-9))
}
