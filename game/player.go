package game

import (
	"fmt"
	"math"
)

// PlayerState is the lifecycle state of the player ship.
type PlayerState int

const (
	PlayerSpawning PlayerState = iota
	PlayerInvulnerable
	PlayerActive
	PlayerExploding
	PlayerCaptured
	PlayerDead
)

var playerStateNames = map[PlayerState]string{
	PlayerSpawning:     "spawning",
	PlayerInvulnerable: "invulnerable",
	PlayerActive:       "active",
	PlayerExploding:    "exploding",
	PlayerCaptured:     "captured",
	PlayerDead:         "dead",
}

func (s PlayerState) String() string {
	if name, ok := playerStateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Player holds the player ship. X, Y is the top-left corner.
type Player struct {
	X, Y  float64
	W, H  float64
	Lives int
	Score int
	State PlayerState

	Projectiles []*Projectile

	Shield     bool
	ShieldTime float64

	Upgraded    bool
	UpgradeTime float64
	FireRate    float64

	cfg        PlayerConfig
	field      Rect
	inset      float64
	events     *EventBus
	clock      float64 // simulation time seen by this player
	stateTimer float64
	lastFire   float64
	hasFired   bool
}

// NewPlayer validates cfg and returns a ship at its launch position in
// SPAWNING with full lives.
func NewPlayer(cfg Config, events *EventBus) (*Player, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("player: %w", err)
	}
	p := &Player{
		W:      cfg.Player.Width,
		H:      cfg.Player.Height,
		cfg:    cfg.Player,
		field:  cfg.Field(),
		inset:  cfg.Screen.HitboxInset,
		events: events,
	}
	p.Restart()
	return p, nil
}

// LaunchPosition returns the top-left corner the ship respawns at.
func (p *Player) LaunchPosition() Vec2 {
	return Vec2{
		X: (p.field.W - p.W) / 2,
		Y: p.field.H - p.cfg.LaunchOffset - p.H,
	}
}

// Reset puts the ship back on the launch position in SPAWNING and clears
// every transient effect. Lives and score are kept.
func (p *Player) Reset() {
	pos := p.LaunchPosition()
	p.X, p.Y = pos.X, pos.Y
	p.State = PlayerSpawning
	p.Projectiles = nil
	p.Shield = false
	p.ShieldTime = 0
	p.clearUpgrade()
	p.stateTimer = 0
	p.hasFired = false
}

// Restart resets the ship for a new session.
func (p *Player) Restart() {
	p.Reset()
	p.Lives = p.cfg.StartLives
	p.Score = 0
	p.clock = 0
}

func (p *Player) clearUpgrade() {
	p.Upgraded = false
	p.UpgradeTime = 0
	p.FireRate = p.cfg.FireRate
}

// Bounds implements Entity.
func (p *Player) Bounds() Rect {
	return Rect{X: p.X, Y: p.Y, W: p.W, H: p.H}.Inset(p.inset)
}

// IsActive implements Entity. Only a dead ship is gone for good.
func (p *Player) IsActive() bool {
	return p.State != PlayerDead
}

// Center returns the middle of the ship.
func (p *Player) Center() Vec2 {
	return Vec2{X: p.X + p.W/2, Y: p.Y + p.H/2}
}

// IsDead reports whether the session is over for this ship.
func (p *Player) IsDead() bool {
	return p.State == PlayerDead
}

// IsVulnerable reports whether enemy fire and bodies can hurt the ship.
func (p *Player) IsVulnerable() bool {
	return p.State == PlayerActive
}

// CanCollect reports whether the ship can pick up power-ups.
func (p *Player) CanCollect() bool {
	return p.State == PlayerActive || p.State == PlayerInvulnerable
}

// IsSettled reports whether no death or capture is pending.
func (p *Player) IsSettled() bool {
	switch p.State {
	case PlayerExploding, PlayerCaptured, PlayerDead:
		return false
	}
	return true
}

// IsBlinking reports whether the ship should be drawn blinked out this
// frame. Only used while invulnerable.
func (p *Player) IsBlinking() bool {
	if p.State != PlayerInvulnerable {
		return false
	}
	return math.Mod(p.clock*PlayerBlinkFrequency, 1) >= 0.5
}

// StateTimer returns the time left in a timed state.
func (p *Player) StateTimer() float64 {
	return p.stateTimer
}

// Update advances timers, moves, fires and updates projectiles.
func (p *Player) Update(dt float64, in Input) {
	p.clock += dt

	if p.Shield {
		p.ShieldTime -= dt
		if p.ShieldTime <= 0 {
			p.Shield = false
			p.ShieldTime = 0
		}
	}
	if p.Upgraded {
		p.UpgradeTime -= dt
		if p.UpgradeTime <= 0 {
			p.clearUpgrade()
		}
	}

	switch p.State {
	case PlayerSpawning:
		p.State = PlayerInvulnerable
		p.stateTimer = p.cfg.InvulnerableDuration
		p.emit(Event{Kind: EventPlayerRespawn})

	case PlayerInvulnerable:
		p.stateTimer -= dt
		if p.stateTimer <= 0 {
			p.State = PlayerActive
			p.stateTimer = 0
		}
		p.control(dt, in)

	case PlayerActive:
		p.control(dt, in)

	case PlayerExploding:
		p.stateTimer -= dt
		if p.stateTimer <= 0 {
			if p.Lives > 0 {
				p.Reset()
			} else {
				p.State = PlayerDead
				Debug("player out of lives")
			}
		}

	case PlayerCaptured:
		p.stateTimer -= dt
		if p.stateTimer <= 0 {
			p.loseLife()
		}

	case PlayerDead:
	}

	p.Projectiles = UpdateProjectiles(p.Projectiles, dt, p.field)
}

func (p *Player) control(dt float64, in Input) {
	if in.Left.IsDown() {
		p.X -= p.cfg.Speed * dt
	}
	if in.Right.IsDown() {
		p.X += p.cfg.Speed * dt
	}
	p.X = math.Max(0, math.Min(p.field.W-p.W, p.X))

	if in.Fire.IsDown() {
		p.Fire()
	}
}

// CanFire reports whether the cooldown has elapsed on the simulation clock.
func (p *Player) CanFire() bool {
	if p.State != PlayerActive && p.State != PlayerInvulnerable {
		return false
	}
	return !p.hasFired || p.clock-p.lastFire >= p.FireRate-timeEpsilon
}

// Fire launches a shot, or a three-way spread while upgraded. Returns false
// when the cooldown has not elapsed.
func (p *Player) Fire() bool {
	if !p.CanFire() {
		return false
	}
	x := p.X + p.W/2
	y := p.Y - PlayerProjectileHeight
	vy := -p.cfg.ProjectileSpeed

	p.Projectiles = append(p.Projectiles,
		NewProjectile(x, y, PlayerProjectileWidth, PlayerProjectileHeight, 0, vy, false))
	if p.Upgraded {
		p.Projectiles = append(p.Projectiles,
			NewProjectile(x, y, PlayerProjectileWidth, PlayerProjectileHeight, -PlayerSpreadSpeed, vy, false),
			NewProjectile(x, y, PlayerProjectileWidth, PlayerProjectileHeight, PlayerSpreadSpeed, vy, false))
	}

	p.lastFire = p.clock
	p.hasFired = true
	p.emit(Event{Kind: EventPlayerShoot, X: x, Y: y})
	return true
}

// Hit damages the ship. A shield absorbs the hit and is consumed; otherwise a
// life is lost. Returns true when a life was lost. Hits outside ACTIVE are
// ignored.
func (p *Player) Hit() bool {
	if p.State != PlayerActive {
		return false
	}
	if p.Shield {
		p.Shield = false
		p.ShieldTime = 0
		p.emit(Event{Kind: EventShieldAbsorbed, X: p.X + p.W/2, Y: p.Y})
		return false
	}
	p.emit(Event{Kind: EventPlayerHit, X: p.X + p.W/2, Y: p.Y})
	p.loseLife()
	return true
}

// Capture hands the ship to a boss's capture beam. When the beam finishes
// the capture resolves as an unshielded hit.
func (p *Player) Capture() bool {
	if p.State != PlayerActive {
		return false
	}
	p.State = PlayerCaptured
	p.stateTimer = p.cfg.CaptureDuration
	p.emit(Event{Kind: EventPlayerCaptured, X: p.X + p.W/2, Y: p.Y})
	return true
}

func (p *Player) loseLife() {
	if p.Lives > 0 {
		p.Lives--
	}
	p.State = PlayerExploding
	p.stateTimer = p.cfg.ExplosionDuration
	p.Shield = false
	p.ShieldTime = 0
	p.clearUpgrade()
	p.emit(Event{Kind: EventPlayerDestroyed, X: p.X + p.W/2, Y: p.Y + p.H/2})
}

// ApplyPowerUp applies shield, weapon upgrade or extra life. Area attacks
// affect the whole formation and are left to the caller; it returns false
// for them.
func (p *Player) ApplyPowerUp(t PowerUpType) bool {
	switch t {
	case PowerUpShield:
		p.Shield = true
		p.ShieldTime = p.cfg.ShieldDuration
	case PowerUpWeaponUpgrade:
		p.Upgraded = true
		p.UpgradeTime = p.cfg.UpgradeDuration
		p.FireRate = p.cfg.UpgradedFireRate
	case PowerUpExtraLife:
		if p.Lives < p.cfg.MaxLives {
			p.Lives++
		}
		p.emit(Event{Kind: EventExtraLife, X: p.X + p.W/2, Y: p.Y})
	case PowerUpAreaAttack:
		return false
	}
	return true
}

// AddScore adds points. Non-positive values are ignored.
func (p *Player) AddScore(points int) {
	if points <= 0 {
		return
	}
	p.Score += points
}

// ClearProjectiles removes every player projectile.
func (p *Player) ClearProjectiles() {
	p.Projectiles = nil
}

func (p *Player) emit(e Event) {
	p.events.Emit(e)
}
