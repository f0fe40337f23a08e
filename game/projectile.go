package game

// Projectile is a shot fired by the player or by an enemy. Position is the
// top-left corner of its box.
type Projectile struct {
	X, Y    float64 // Position
	W, H    float64 // Size
	VX, VY  float64 // Velocity in px/s
	Color   string
	IsEnemy bool

	active bool
}

// NewProjectile creates an active projectile centered horizontally on x.
func NewProjectile(x, y, w, h, vx, vy float64, isEnemy bool) *Projectile {
	color := Theme.BulletColor
	if isEnemy {
		color = Theme.TorpedoColor
	}
	return &Projectile{
		X:       x - w/2,
		Y:       y,
		W:       w,
		H:       h,
		VX:      vx,
		VY:      vy,
		Color:   color,
		IsEnemy: isEnemy,
		active:  true,
	}
}

// Bounds implements Entity. Projectiles are thin enough that no inset is
// applied.
func (p *Projectile) Bounds() Rect {
	return Rect{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// IsActive implements Entity.
func (p *Projectile) IsActive() bool {
	return p.active
}

// Deactivate removes the projectile at the next compaction.
func (p *Projectile) Deactivate() {
	p.active = false
}

// Update integrates the position and deactivates the projectile once it has
// left field entirely.
func (p *Projectile) Update(dt float64, field Rect) {
	if !p.active {
		return
	}
	p.X += p.VX * dt
	p.Y += p.VY * dt

	if !Intersects(p.Bounds(), field) {
		p.active = false
	}
}

// CompactProjectiles drops inactive projectiles in place, keeping order.
func CompactProjectiles(list []*Projectile) []*Projectile {
	n := 0
	for _, p := range list {
		if p.active {
			list[n] = p
			n++
		}
	}
	for i := n; i < len(list); i++ {
		list[i] = nil
	}
	return list[:n]
}

// UpdateProjectiles advances every projectile and compacts the list.
func UpdateProjectiles(list []*Projectile, dt float64, field Rect) []*Projectile {
	for _, p := range list {
		p.Update(dt, field)
	}
	return CompactProjectiles(list)
}
