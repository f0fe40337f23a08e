package game

import (
	"fmt"
	"time"

	"github.com/simukka/starship-formation/common"
	"github.com/simukka/starship-formation/highscore"
)

// Phase is the top-level game phase.
type Phase int

const (
	PhaseBoot Phase = iota
	PhaseTitle
	PhaseGameStart
	PhasePlaying
	PhaseLevelComplete
	PhaseGameOver
	PhaseHighScore
)

var phaseNames = map[Phase]string{
	PhaseBoot:          "boot",
	PhaseTitle:         "title",
	PhaseGameStart:     "game-start",
	PhasePlaying:       "playing",
	PhaseLevelComplete: "level-complete",
	PhaseGameOver:      "game-over",
	PhaseHighScore:     "high-score",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

// ScoreBoard is the high-score table as seen by the game. Submit must not
// block the tick.
type ScoreBoard interface {
	Qualifies(score int) bool
	Submit(entry highscore.Entry)
}

var _ ScoreBoard = (*highscore.Manager)(nil)

// Game holds the complete game state.
type Game struct {
	Config Config
	Phase  Phase
	Paused bool
	Score  int // session score

	Player    *Player
	Formation *FormationManager
	PowerUps  *PowerUpManager
	Events    *EventBus
	Scores    ScoreBoard
	GameRNG   common.Source

	// Now stamps submitted high scores. Defaults to time.Now.
	Now func() time.Time

	// Clock is the simulation time in seconds.
	Clock float64

	Initials     [HighScoreInitialCount]byte
	InitialIndex int

	phaseTimer   float64
	phaseElapsed float64
	hitThisFrame bool
}

// NewGame validates cfg and builds a game sitting in BOOT. scores may be nil,
// in which case no score ever qualifies.
func NewGame(cfg Config, rng common.Source, scores ScoreBoard) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	if rng == nil {
		return nil, fmt.Errorf("game: nil random source: %w", ErrInvalidConfig)
	}

	events := NewEventBus()
	player, err := NewPlayer(cfg, events)
	if err != nil {
		return nil, err
	}
	formation, err := NewFormationManager(cfg, rng, events)
	if err != nil {
		return nil, err
	}
	powerUps, err := NewPowerUpManager(cfg, rng, events)
	if err != nil {
		return nil, err
	}

	g := &Game{
		Config:    cfg,
		Player:    player,
		Formation: formation,
		PowerUps:  powerUps,
		Events:    events,
		Scores:    scores,
		GameRNG:   rng,
		Now:       time.Now,
	}
	g.setPhase(PhaseBoot, cfg.Timing.Boot)
	return g, nil
}

// Subscribe registers a listener for simulation events.
func (g *Game) Subscribe(l Listener) {
	g.Events.Subscribe(l)
}

// PhaseTimer returns the time left in a timed phase.
func (g *Game) PhaseTimer() float64 {
	return g.phaseTimer
}

func (g *Game) setPhase(p Phase, timer float64) {
	if g.Phase != p {
		Debugf("phase %s -> %s", g.Phase, p)
	}
	g.Phase = p
	g.phaseTimer = timer
	g.phaseElapsed = 0
	g.Events.Emit(Event{Kind: EventPhaseChange, Phase: p, Wave: g.Formation.Wave()})
}

// Update advances the game by one fixed step and then delivers the events
// raised during it.
func (g *Game) Update(dt float64, in Input) {
	g.Clock += dt
	g.phaseElapsed += dt

	switch g.Phase {
	case PhaseBoot:
		g.phaseTimer -= dt
		if g.phaseTimer <= 0 {
			g.setPhase(PhaseTitle, 0)
		}

	case PhaseTitle:
		if in.Start.JustPressed() || in.Fire.JustPressed() {
			g.StartGame()
		}

	case PhaseGameStart:
		g.phaseTimer -= dt
		if g.phaseTimer <= 0 {
			g.setPhase(PhasePlaying, 0)
		}

	case PhasePlaying:
		g.updatePlaying(dt, in)

	case PhaseLevelComplete:
		g.phaseTimer -= dt
		if g.phaseTimer <= 0 {
			g.nextWave()
		}

	case PhaseGameOver:
		g.phaseTimer -= dt
		skip := in.Start.JustPressed() && g.phaseElapsed >= g.Config.Timing.GameOverSkipAfter
		if g.phaseTimer <= 0 || skip {
			g.finishGameOver()
		}

	case PhaseHighScore:
		g.updateHighScore(in)
	}

	g.Events.Flush()
}

// StartGame resets the session and builds wave 1.
func (g *Game) StartGame() {
	g.Score = 0
	g.Paused = false
	g.Player.Restart()
	g.Formation.Reset()
	g.PowerUps.Clear()
	g.Formation.CreateWave()
	g.setPhase(PhaseGameStart, g.Config.Timing.GameStart)
}

func (g *Game) nextWave() {
	g.Formation.CreateWave()
	g.Formation.ClearProjectiles()
	g.PowerUps.Clear()
	g.Player.ClearProjectiles()
	g.Player.Reset()
	g.setPhase(PhaseGameStart, g.Config.Timing.GameStart)
}

func (g *Game) updatePlaying(dt float64, in Input) {
	if in.Pause.JustPressed() {
		g.Paused = !g.Paused
	}
	if g.Paused {
		return
	}

	g.hitThisFrame = false
	g.Player.Update(dt, in)
	g.Formation.Update(dt, g.Player.Center())
	g.PowerUps.Update(dt)
	g.ResolveCollisions()

	switch {
	case g.Player.IsDead():
		g.Events.Emit(Event{Kind: EventGameOver, Points: g.Score, Wave: g.Formation.Wave()})
		g.setPhase(PhaseGameOver, g.Config.Timing.GameOver)
	case g.Formation.IsWaveCleared() && g.Player.IsSettled():
		g.Events.Emit(Event{Kind: EventLevelComplete, Wave: g.Formation.Wave()})
		g.setPhase(PhaseLevelComplete, g.Config.Timing.LevelComplete)
	}
}

// ResolveCollisions runs the collision passes in order:
//
//  1. player projectiles against enemies
//  2. player against power-ups
//  3. enemy projectiles against the player
//  4. enemy bodies against the player
//
// Passes 3 and 4 share a single player hit per frame.
func (g *Game) ResolveCollisions() {
	g.resolvePlayerShots()
	g.resolvePowerUps()
	g.resolveEnemyShots()
	g.resolveEnemyBodies()
}

// resolvePlayerShots consumes each overlapping projectile on the first enemy
// it can still damage.
func (g *Game) resolvePlayerShots() {
	hits := DetectGroups(g.Player.Projectiles, g.Formation.Enemies())
	for _, h := range hits {
		for _, e := range h.Hits {
			if !e.IsHittable() {
				continue
			}
			h.Subject.Deactivate()
			if e.Hit() {
				g.awardKill(e)
			}
			break
		}
	}
}

func (g *Game) resolvePowerUps() {
	if !g.Player.CanCollect() {
		return
	}
	for _, pu := range Detect(g.Player, g.PowerUps.PowerUps()) {
		pu.Collect()
		g.Events.Emit(Event{Kind: EventPowerUpCollected, X: pu.X, Y: pu.Y, PowerUp: pu.Type})
		if pu.Type == PowerUpAreaAttack {
			g.areaAttack()
			continue
		}
		g.Player.ApplyPowerUp(pu.Type)
	}
}

func (g *Game) resolveEnemyShots() {
	if !g.Player.IsVulnerable() {
		return
	}
	hits := Detect(g.Player, g.Formation.EnemyProjectiles())
	if len(hits) == 0 {
		return
	}
	for _, p := range hits {
		p.Deactivate()
	}
	g.hitPlayer()
}

// resolveEnemyBodies hurts the player on contact. A diving boss captures the
// ship instead, unless a shield is up.
func (g *Game) resolveEnemyBodies() {
	if g.hitThisFrame || !g.Player.IsVulnerable() {
		return
	}
	var touching []*Enemy
	for _, e := range Detect(g.Player, g.Formation.Enemies()) {
		if e.IsHittable() {
			touching = append(touching, e)
		}
	}
	if len(touching) == 0 {
		return
	}

	if !g.Player.Shield {
		for _, e := range touching {
			if e.IsDiving() && e.Tier.IsBoss() && e.StartCapture() {
				g.Player.Capture()
				g.hitThisFrame = true
				return
			}
		}
	}
	g.hitPlayer()
}

func (g *Game) hitPlayer() {
	if g.hitThisFrame {
		return
	}
	g.hitThisFrame = true
	g.Player.Hit()
}

// areaAttack damages every hittable enemy once.
func (g *Game) areaAttack() {
	g.Events.Emit(Event{Kind: EventAreaAttack})
	for _, e := range g.Formation.Enemies() {
		if e.Hit() {
			g.awardKill(e)
		}
	}
}

func (g *Game) awardKill(e *Enemy) {
	points := e.Points()
	g.Score += points
	g.Player.AddScore(points)
	g.PowerUps.SpawnAtPosition(e.X, e.Y, points)
}

func (g *Game) finishGameOver() {
	if g.Scores != nil && g.Scores.Qualifies(g.Score) {
		g.Initials = [HighScoreInitialCount]byte{'A', 'A', 'A'}
		g.InitialIndex = 0
		g.setPhase(PhaseHighScore, 0)
		return
	}
	g.setPhase(PhaseTitle, 0)
}

// updateHighScore edits the initials: up/down cycle the current letter,
// fire or right confirm it, left steps back.
func (g *Game) updateHighScore(in Input) {
	i := g.InitialIndex
	switch {
	case in.Up.JustPressed():
		g.Initials[i] = cycleLetter(g.Initials[i], 1)
	case in.Down.JustPressed():
		g.Initials[i] = cycleLetter(g.Initials[i], -1)
	case in.Left.JustPressed():
		if g.InitialIndex > 0 {
			g.InitialIndex--
		}
	case in.Fire.JustPressed(), in.Right.JustPressed(), in.Start.JustPressed():
		g.InitialIndex++
	}

	if g.InitialIndex < HighScoreInitialCount {
		return
	}

	entry := highscore.Entry{
		Name:  string(g.Initials[:]),
		Score: g.Score,
		Wave:  g.Formation.Wave(),
		Date:  g.Now(),
	}
	g.Scores.Submit(entry)
	g.Events.Emit(Event{Kind: EventHighScore, Points: g.Score, Wave: entry.Wave})
	Debugf("high score %s %d", entry.Name, entry.Score)
	g.setPhase(PhaseTitle, 0)
}

func cycleLetter(c byte, step int) byte {
	n := (int(c-'A') + step + 26) % 26
	return byte('A' + n)
}
