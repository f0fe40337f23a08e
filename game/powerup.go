package game

import (
	"fmt"
	"math"

	"github.com/simukka/starship-formation/common"
)

// PowerUpType is what a collected power-up does.
type PowerUpType int

const (
	PowerUpAreaAttack PowerUpType = iota
	PowerUpShield
	PowerUpWeaponUpgrade
	PowerUpExtraLife
)

var powerUpNames = map[PowerUpType]string{
	PowerUpAreaAttack:    "area attack",
	PowerUpShield:        "shield",
	PowerUpWeaponUpgrade: "weapon upgrade",
	PowerUpExtraLife:     "extra life",
}

func (t PowerUpType) String() string {
	if name, ok := powerUpNames[t]; ok {
		return name
	}
	return "unknown"
}

// Glyph returns the single-letter label drawn on the pickup.
func (t PowerUpType) Glyph() string {
	switch t {
	case PowerUpAreaAttack:
		return "B"
	case PowerUpShield:
		return "S"
	case PowerUpWeaponUpgrade:
		return "W"
	case PowerUpExtraLife:
		return "+"
	}
	return "?"
}

// PowerUp drifts down the playfield until collected or expired. Position is
// the top-left corner.
type PowerUp struct {
	Type     PowerUpType
	X, Y     float64
	Size     float64
	VY       float64
	Lifespan float64
	Elapsed  float64

	active bool
}

// NewPowerUp creates an active power-up centered on (x, y).
func NewPowerUp(t PowerUpType, x, y, size, drift, lifespan float64) *PowerUp {
	return &PowerUp{
		Type:     t,
		X:        x - size/2,
		Y:        y - size/2,
		Size:     size,
		VY:       drift,
		Lifespan: lifespan,
		active:   true,
	}
}

// Bounds implements Entity.
func (p *PowerUp) Bounds() Rect {
	return Rect{X: p.X, Y: p.Y, W: p.Size, H: p.Size}
}

// IsActive implements Entity.
func (p *PowerUp) IsActive() bool {
	return p.active
}

// Collect removes the power-up.
func (p *PowerUp) Collect() {
	p.active = false
}

// Remaining returns the seconds left before expiry.
func (p *PowerUp) Remaining() float64 {
	return math.Max(0, p.Lifespan-p.Elapsed)
}

// IsBlinking reports whether the pickup is in its final seconds. Renderers
// toggle visibility on this; it has no effect on collisions.
func (p *PowerUp) IsBlinking() bool {
	return p.active && p.Remaining() <= PowerUpBlinkWindow
}

// Update drifts and ages the power-up. It expires when Elapsed reaches
// Lifespan or when it leaves field.
func (p *PowerUp) Update(dt float64, field Rect) {
	if !p.active {
		return
	}
	p.Y += p.VY * dt
	p.Elapsed += dt
	if p.Elapsed >= p.Lifespan-timeEpsilon || !Intersects(p.Bounds(), field) {
		p.active = false
	}
}

// PowerUpManager spawns, ages and compacts power-ups.
type PowerUpManager struct {
	cfg    PowerUpConfig
	field  Rect
	rng    common.Source
	events *EventBus

	powerUps   []*PowerUp
	spawnTimer float64
}

// NewPowerUpManager validates cfg and returns an empty manager.
func NewPowerUpManager(cfg Config, rng common.Source, events *EventBus) (*PowerUpManager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("power-ups: %w", err)
	}
	if rng == nil {
		return nil, fmt.Errorf("power-ups: nil random source: %w", ErrInvalidConfig)
	}
	return &PowerUpManager{
		cfg:    cfg.PowerUps,
		field:  cfg.Field(),
		rng:    rng,
		events: events,
	}, nil
}

// PowerUps returns the live list. Callers must not modify it.
func (m *PowerUpManager) PowerUps() []*PowerUp {
	return m.powerUps
}

// Clear removes every power-up and restarts the ambient timer.
func (m *PowerUpManager) Clear() {
	m.powerUps = nil
	m.spawnTimer = 0
}

// Update ages every power-up and runs the ambient spawn roll.
func (m *PowerUpManager) Update(dt float64) {
	m.spawnTimer += dt
	if m.spawnTimer >= m.cfg.SpawnInterval {
		m.spawnTimer -= m.cfg.SpawnInterval
		if m.rng.Random() < m.cfg.SpawnChance {
			m.spawnAmbient()
		}
	}

	n := 0
	for _, p := range m.powerUps {
		p.Update(dt, m.field)
		if p.active {
			m.powerUps[n] = p
			n++
		}
	}
	for i := n; i < len(m.powerUps); i++ {
		m.powerUps[i] = nil
	}
	m.powerUps = m.powerUps[:n]
}

func (m *PowerUpManager) spawnAmbient() {
	pool := []PowerUpType{PowerUpAreaAttack, PowerUpShield, PowerUpWeaponUpgrade}
	if m.rng.Random() < ExtraLifeAmbientChance {
		pool = append(pool, PowerUpExtraLife)
	}
	t := pool[m.rng.RandomInt(0, len(pool))]

	x := m.rng.RandomFloat(20, m.field.W-40)
	y := m.rng.RandomFloat(40, 140)
	// x, y is the top-left corner; Spawn expects a center.
	m.Spawn(t, x+m.cfg.Size/2, y+m.cfg.Size/2)
}

// KillDrop rolls the drop for an enemy worth points. It reports false when
// nothing drops.
func (m *PowerUpManager) KillDrop(points int) (PowerUpType, bool) {
	chance := math.Min(KillDropCap, float64(points)/KillDropDivisor)
	if m.rng.Random() >= chance {
		return 0, false
	}
	if points >= ExtraLifeMinPoints && m.rng.Random() < ExtraLifeDropChance {
		return PowerUpExtraLife, true
	}
	r := m.rng.Random()
	switch {
	case r < ShieldDropWeight:
		return PowerUpShield, true
	case r < ShieldDropWeight+WeaponDropWeight:
		return PowerUpWeaponUpgrade, true
	}
	return PowerUpAreaAttack, true
}

// SpawnAtPosition rolls a kill drop at (x, y). Returns nil when nothing
// drops.
func (m *PowerUpManager) SpawnAtPosition(x, y float64, points int) *PowerUp {
	t, ok := m.KillDrop(points)
	if !ok {
		return nil
	}
	return m.Spawn(t, x, y)
}

// Spawn adds a power-up of type t centered on (x, y).
func (m *PowerUpManager) Spawn(t PowerUpType, x, y float64) *PowerUp {
	p := NewPowerUp(t, x, y, m.cfg.Size, m.cfg.DriftSpeed, m.cfg.Lifespan)
	m.powerUps = append(m.powerUps, p)
	m.events.Emit(Event{Kind: EventPowerUpSpawned, X: x, Y: y, PowerUp: t})
	return p
}
