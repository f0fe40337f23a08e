package game

import (
	"math"

	"github.com/simukka/starship-formation/common"
)

// EnemyTier ranks enemies from plain fodder to the mothership.
type EnemyTier int

const (
	TierBasic EnemyTier = iota
	TierEscort
	TierMiniBoss
	TierCommander
	TierMothership
)

// EnemyTierNames maps EnemyTier to display names for the UI
var EnemyTierNames = map[EnemyTier]string{
	TierBasic:      "Basic",
	TierEscort:     "Escort",
	TierMiniBoss:   "Mini Boss",
	TierCommander:  "Commander",
	TierMothership: "Mothership",
}

func (t EnemyTier) String() string {
	if name, ok := EnemyTierNames[t]; ok {
		return name
	}
	return "Unknown"
}

// TierStats holds the per-tier constants applied on spawn and on promotion.
type TierStats struct {
	Points   int
	Health   int
	Size     float64
	FireRate float64 // seconds between fire rolls
}

var tierStats = map[EnemyTier]TierStats{
	TierBasic:      {Points: 100, Health: 1, Size: 28, FireRate: 4.0},
	TierEscort:     {Points: 200, Health: 2, Size: 30, FireRate: 3.0},
	TierMiniBoss:   {Points: 400, Health: 4, Size: 36, FireRate: 2.5},
	TierCommander:  {Points: 800, Health: 8, Size: 44, FireRate: 2.0},
	TierMothership: {Points: 1600, Health: 16, Size: 52, FireRate: 1.5},
}

// Stats returns the constants for t.
func (t EnemyTier) Stats() TierStats {
	s, ok := tierStats[t]
	if !ok {
		panic("how?")
	}
	return s
}

// IsBoss reports whether t is one of the boss tiers.
func (t EnemyTier) IsBoss() bool {
	return t >= TierMiniBoss
}

// Promoted returns the tier a transformation turns t into. Tiers at or above
// MiniBoss are not promoted.
func (t EnemyTier) Promoted() EnemyTier {
	switch t {
	case TierBasic:
		return TierEscort
	case TierEscort:
		return TierMiniBoss
	default:
		return t
	}
}

// EnemyState is the lifecycle state of an enemy.
type EnemyState int

const (
	EnemySpawning EnemyState = iota
	EnemyActive
	EnemyExploding
	EnemyTransforming
	EnemyCapturing
)

// MovementPattern selects how an enemy moves while it is alive.
type MovementPattern int

const (
	PatternGrid MovementPattern = iota
	PatternDive
	PatternCircle
	PatternPatrol
	PatternReturn
)

// EnemyEnv is shared by every enemy of a formation.
type EnemyEnv struct {
	Rand   common.Source
	Events *EventBus
	Field  Rect
	Inset  float64
	Config EnemyConfig
}

// NewEnemyEnv builds the environment for cfg.
func NewEnemyEnv(cfg *Config, rng common.Source, events *EventBus) *EnemyEnv {
	return &EnemyEnv{
		Rand:   rng,
		Events: events,
		Field:  cfg.Field(),
		Inset:  cfg.Screen.HitboxInset,
		Config: cfg.Enemy,
	}
}

// Enemy is a formation member. X, Y is the center of its box.
type Enemy struct {
	Tier         EnemyTier
	Row, Col     int
	GridX, GridY float64 // cell center the enemy rests on
	X, Y         float64
	Size         float64
	Health       int
	State        EnemyState
	Pattern      MovementPattern

	Path      []Vec2
	PathIndex int
	Origin    Vec2    // circle center or patrol anchor
	Phase     float64 // circle angle or patrol phase

	Projectiles []*Projectile

	time       float64 // pattern clock
	stateTimer float64
	fireTimer  float64
	hitFlash   float64
	active     bool
	env        *EnemyEnv
}

// NewEnemy creates an enemy of tier resting on grid cell (row, col) whose
// center is (gridX, gridY). The first fire roll is staggered so a fresh wave
// does not fire in unison.
func NewEnemy(tier EnemyTier, row, col int, gridX, gridY float64, env *EnemyEnv) *Enemy {
	e := &Enemy{
		Tier:    tier,
		Row:     row,
		Col:     col,
		GridX:   gridX,
		GridY:   gridY,
		X:       gridX,
		Y:       gridY,
		State:   EnemySpawning,
		Pattern: PatternGrid,
		active:  true,
		env:     env,
	}
	e.applyStats()
	if env != nil && env.Rand != nil {
		e.fireTimer = env.Rand.Random() * e.Tier.Stats().FireRate
	}
	return e
}

func (e *Enemy) applyStats() {
	stats := e.Tier.Stats()
	e.Size = stats.Size
	e.Health = stats.Health
}

// Points returns the score awarded for destroying e.
func (e *Enemy) Points() int {
	return e.Tier.Stats().Points
}

// Bounds implements Entity.
func (e *Enemy) Bounds() Rect {
	half := e.Size / 2
	r := Rect{X: e.X - half, Y: e.Y - half, W: e.Size, H: e.Size}
	if e.env != nil {
		r = r.Inset(e.env.Inset)
	}
	return r
}

// IsActive implements Entity. An exploding enemy is still active until its
// explosion finishes.
func (e *Enemy) IsActive() bool {
	return e.active
}

// IsHittable reports whether a hit would land.
func (e *Enemy) IsHittable() bool {
	if !e.active {
		return false
	}
	switch e.State {
	case EnemyActive, EnemyTransforming, EnemyCapturing:
		return true
	}
	return false
}

// IsDiving reports whether e is on a dive path.
func (e *Enemy) IsDiving() bool {
	return e.Pattern == PatternDive
}

// IsFlashing reports whether the hit flash is showing.
func (e *Enemy) IsFlashing() bool {
	return e.hitFlash > 0
}

// StateTimer returns the time left in a timed state.
func (e *Enemy) StateTimer() float64 {
	return e.stateTimer
}

// Update advances the enemy by dt seconds. target is the player center, used
// for aiming.
func (e *Enemy) Update(dt float64, target Vec2) {
	if !e.active {
		return
	}
	if e.hitFlash > 0 {
		e.hitFlash -= dt
	}

	switch e.State {
	case EnemySpawning:
		e.State = EnemyActive

	case EnemyActive:
		e.move(dt)
		e.updateFire(dt, target)

	case EnemyExploding:
		e.stateTimer -= dt
		if e.stateTimer <= 0 {
			e.active = false
		}

	case EnemyTransforming:
		e.move(dt)
		e.stateTimer -= dt
		if e.stateTimer <= 0 {
			e.finishTransform()
		}

	case EnemyCapturing:
		// Holds position over the captured ship.
		e.stateTimer -= dt
		if e.stateTimer <= 0 {
			e.State = EnemyActive
			e.Pattern = PatternReturn
		}
	}

	e.updateProjectiles(dt)
}

func (e *Enemy) updateProjectiles(dt float64) {
	field := Rect{}
	if e.env != nil {
		field = e.env.Field
	}
	e.Projectiles = UpdateProjectiles(e.Projectiles, dt, field)
}

// move applies the current movement pattern.
func (e *Enemy) move(dt float64) {
	e.time += dt

	switch e.Pattern {
	case PatternGrid:
		e.X = e.GridX
		e.Y = e.GridY + hoverOffset(e.time)

	case PatternDive:
		e.followPath(dt)

	case PatternCircle:
		e.Phase += CircleSpeed * dt
		e.X = e.Origin.X + math.Cos(e.Phase)*CircleRadius
		e.Y = e.Origin.Y + math.Sin(e.Phase)*CircleRadius

	case PatternPatrol:
		e.Phase += PatrolSpeed * dt
		e.X = e.Origin.X + math.Sin(e.Phase)*PatrolAmplitude
		e.Y = e.Origin.Y

	case PatternReturn:
		speed := ReturnSpeed
		if e.env != nil {
			speed = e.env.Config.ReturnSpeed
		}
		if e.moveToward(Vec2{X: e.GridX, Y: e.GridY}, speed*dt) <= PathArriveRadius {
			e.X, e.Y = e.GridX, e.GridY
			e.Pattern = PatternGrid
		}
	}
}

// followPath moves along Path and switches to RETURN_TO_GRID after the last
// point.
func (e *Enemy) followPath(dt float64) {
	if e.PathIndex >= len(e.Path) {
		e.Pattern = PatternReturn
		return
	}
	speed := DiveSpeed
	if e.env != nil {
		speed = e.env.Config.DiveSpeed
	}
	if e.moveToward(e.Path[e.PathIndex], speed*dt) < PathArriveRadius {
		e.PathIndex++
		if e.PathIndex >= len(e.Path) {
			e.Pattern = PatternReturn
		}
	}
}

// moveToward steps at most step pixels toward p and returns the remaining
// distance.
func (e *Enemy) moveToward(p Vec2, step float64) float64 {
	d := p.Sub(Vec2{X: e.X, Y: e.Y})
	dist := d.Len()
	if dist <= step {
		e.X, e.Y = p.X, p.Y
		return 0
	}
	e.X += d.X / dist * step
	e.Y += d.Y / dist * step
	return dist - step
}

// updateFire rolls once per elapsed cooldown. The cooldown restarts whether
// or not the roll fires.
func (e *Enemy) updateFire(dt float64, target Vec2) {
	if e.env == nil || e.env.Rand == nil {
		return
	}
	rate := e.Tier.Stats().FireRate
	e.fireTimer += dt
	if e.fireTimer < rate {
		return
	}
	e.fireTimer -= rate

	chance := e.env.Config.FormationFireChance
	if e.Pattern == PatternDive {
		chance = e.env.Config.DiveFireChance
	}
	if e.env.Rand.Random() < chance {
		e.Fire(target)
	}
}

// Fire launches one projectile aimed at the target's x.
func (e *Enemy) Fire(target Vec2) *Projectile {
	speed := EnemyProjectileSpeed
	if e.env != nil {
		speed = e.env.Config.ProjectileSpeed
	}
	// Lead the shot by the time it takes to reach the target's height.
	vx := 0.0
	if dy := target.Y - e.Y; dy > 0 {
		vx = (target.X - e.X) / (dy / speed)
	}
	vx = math.Max(-EnemyProjectileMaxVX, math.Min(EnemyProjectileMaxVX, vx))

	p := NewProjectile(e.X, e.Y+e.Size/2, EnemyProjectileWidth, EnemyProjectileHeight, vx, speed, true)
	e.Projectiles = append(e.Projectiles, p)
	e.emit(Event{Kind: EventEnemyShoot, X: e.X, Y: e.Y, Tier: e.Tier})
	return p
}

// Hit applies one point of damage and reports whether the enemy was
// destroyed. Hits outside ACTIVE, TRANSFORMING and CAPTURING are ignored.
func (e *Enemy) Hit() bool {
	if !e.IsHittable() {
		return false
	}

	e.Health--
	if e.Health <= 0 {
		e.Health = 0
		e.State = EnemyExploding
		e.stateTimer = EnemyExplosionDuration
		e.emit(Event{
			Kind:   EventEnemyDestroyed,
			X:      e.X,
			Y:      e.Y,
			Tier:   e.Tier,
			Boss:   e.Tier.IsBoss(),
			Points: e.Points(),
		})
		return true
	}

	e.hitFlash = EnemyHitFlashDuration
	e.emit(Event{Kind: EventEnemyHit, X: e.X, Y: e.Y, Tier: e.Tier, Boss: e.Tier.IsBoss()})
	return false
}

// StartDive sends a grid enemy along path.
func (e *Enemy) StartDive(path []Vec2) bool {
	if !e.active || e.State != EnemyActive || e.Pattern != PatternGrid || len(path) == 0 {
		return false
	}
	e.Pattern = PatternDive
	e.Path = path
	e.PathIndex = 0
	e.emit(Event{Kind: EventEnemyDive, X: e.X, Y: e.Y, Tier: e.Tier})
	return true
}

// StartCircle puts a grid enemy on a circular orbit around center, starting
// at angle phase.
func (e *Enemy) StartCircle(center Vec2, phase float64) bool {
	if !e.active || e.Pattern != PatternGrid {
		return false
	}
	e.Pattern = PatternCircle
	e.Origin = center
	e.Phase = phase
	return true
}

// StartPatrol puts a grid enemy on a horizontal sweep around origin.
func (e *Enemy) StartPatrol(origin Vec2, phase float64) bool {
	if !e.active || e.Pattern != PatternGrid {
		return false
	}
	e.Pattern = PatternPatrol
	e.Origin = origin
	e.Phase = phase
	return true
}

// StartTransform begins a promotion. Only ACTIVE enemies can transform.
func (e *Enemy) StartTransform() bool {
	if !e.active || e.State != EnemyActive {
		return false
	}
	e.State = EnemyTransforming
	e.stateTimer = EnemyTransformDuration
	e.emit(Event{Kind: EventEnemyTransform, X: e.X, Y: e.Y, Tier: e.Tier})
	return true
}

func (e *Enemy) finishTransform() {
	e.State = EnemyActive
	next := e.Tier.Promoted()
	if next == e.Tier {
		return
	}
	e.Tier = next
	e.applyStats()
}

// StartCapture holds a boss over the player's ship. Non-boss tiers cannot
// capture.
func (e *Enemy) StartCapture() bool {
	if !e.active || e.State != EnemyActive || !e.Tier.IsBoss() {
		return false
	}
	e.State = EnemyCapturing
	e.stateTimer = EnemyCaptureDuration
	e.emit(Event{Kind: EventEnemyCapture, X: e.X, Y: e.Y, Tier: e.Tier, Boss: true})
	return true
}

// TakeProjectiles hands the enemy's in-flight projectiles to the caller.
func (e *Enemy) TakeProjectiles() []*Projectile {
	list := e.Projectiles
	e.Projectiles = nil
	return list
}

func (e *Enemy) emit(ev Event) {
	if e.env != nil {
		e.env.Events.Emit(ev)
	}
}
