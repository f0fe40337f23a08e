package game

import (
	"fmt"
	"math"

	"github.com/simukka/starship-formation/common"
)

// FormationManager owns the enemy grid of the current wave: layout, sway,
// dive scheduling and the projectiles left behind by dead enemies.
type FormationManager struct {
	cfg    Config
	rng    common.Source
	events *EventBus
	env    *EnemyEnv

	grid    [][]*Enemy
	enemies []*Enemy
	orphans []*Projectile

	wave           int
	layout         LayoutKind
	offsetX        float64
	direction      float64
	diveTimer      float64
	transformTimer float64
}

// NewFormationManager validates cfg and returns an empty formation at wave 0.
func NewFormationManager(cfg Config, rng common.Source, events *EventBus) (*FormationManager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("formation: %w", err)
	}
	if rng == nil {
		return nil, fmt.Errorf("formation: nil random source: %w", ErrInvalidConfig)
	}

	f := &FormationManager{
		cfg:    cfg,
		rng:    rng,
		events: events,
		env:    NewEnemyEnv(&cfg, rng, events),
	}
	f.Reset()
	return f, nil
}

// Reset clears the formation and rewinds the wave counter to 0.
func (f *FormationManager) Reset() {
	f.wave = 0
	f.clear()
}

func (f *FormationManager) clear() {
	f.grid = make([][]*Enemy, f.cfg.Grid.Rows)
	for r := range f.grid {
		f.grid[r] = make([]*Enemy, f.cfg.Grid.Cols)
	}
	f.enemies = nil
	f.orphans = nil
	f.offsetX = 0
	f.direction = 1
	f.diveTimer = f.DiveInterval()
	f.transformTimer = f.cfg.Formation.TransformInterval
}

// Wave returns the current wave number.
func (f *FormationManager) Wave() int { return f.wave }

// SetWave sets the wave counter. The next CreateWave builds wave n+1.
func (f *FormationManager) SetWave(n int) {
	if n < 0 {
		n = 0
	}
	f.wave = n
}

// Layout returns the layout of the current wave.
func (f *FormationManager) Layout() LayoutKind { return f.layout }

// Enemies returns the live enemy list. Callers must not modify it.
func (f *FormationManager) Enemies() []*Enemy { return f.enemies }

// Grid returns the formation grid. Empty cells are nil.
func (f *FormationManager) Grid() [][]*Enemy { return f.grid }

// OffsetX returns the current sway offset.
func (f *FormationManager) OffsetX() float64 { return f.offsetX }

// GridPosition returns the cell center of (row, col) including the sway.
func (f *FormationManager) GridPosition(row, col int) Vec2 {
	return Vec2{
		X: f.cfg.GridOriginX() + float64(col)*f.cfg.Grid.SpacingX + f.offsetX,
		Y: f.cfg.Grid.OriginY + float64(row)*f.cfg.Grid.SpacingY,
	}
}

// DiveInterval returns the seconds between dive waves at the current wave.
func (f *FormationManager) DiveInterval() float64 {
	fc := f.cfg.Formation
	return math.Max(fc.DiveIntervalMin, fc.DiveIntervalMax-fc.DiveIntervalDec*float64(f.wave))
}

// DiveCount returns how many enemies dive at once at the current wave.
func (f *FormationManager) DiveCount() int {
	n := 1 + (f.wave-1)/3
	if n < 1 {
		n = 1
	}
	if n > f.cfg.Formation.MaxDivers {
		n = f.cfg.Formation.MaxDivers
	}
	return n
}

// CreateWave advances the wave counter and lays out a fresh grid. Returns the
// number of enemies spawned.
func (f *FormationManager) CreateWave() int {
	f.wave++
	f.clear()
	f.layout = SelectLayout(f.wave)

	rows, cols := f.cfg.Grid.Rows, f.cfg.Grid.Cols
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if tier, ok := LayoutTier(f.layout, f.wave, row, col, rows, cols); ok {
				f.SpawnEnemyAt(tier, row, col)
			}
		}
	}
	if len(f.enemies) == 0 {
		DebugWarn("wave ", f.wave, ": ", f.layout, " layout left the grid empty, spawning one basic")
		f.SpawnEnemyAt(TierBasic, rows-1, cols/2)
	}

	if f.layout.IsBoss() {
		f.assignSyncGroup()
	}

	Debugf("wave %d: %s layout, %d enemies", f.wave, f.layout, len(f.enemies))
	f.events.Emit(Event{Kind: EventWaveStart, Wave: f.wave})
	return len(f.enemies)
}

// SpawnEnemyAt places a new enemy on an empty cell. Returns nil when the cell
// is out of range or taken.
func (f *FormationManager) SpawnEnemyAt(tier EnemyTier, row, col int) *Enemy {
	if row < 0 || row >= len(f.grid) || col < 0 || col >= len(f.grid[row]) {
		return nil
	}
	if f.grid[row][col] != nil {
		return nil
	}
	pos := f.GridPosition(row, col)
	e := NewEnemy(tier, row, col, pos.X, pos.Y, f.env)
	f.grid[row][col] = e
	f.enemies = append(f.enemies, e)
	return e
}

// assignSyncGroup moves a contiguous run of one row onto a shared CIRCLE or
// PATROL pattern with identical phase.
func (f *FormationManager) assignSyncGroup() {
	if f.wave < SyncGroupAlwaysAt && f.rng.Random() >= SyncGroupChance {
		return
	}
	maxRow := int(math.Min(2, float64(f.cfg.Grid.Rows-1)))
	if maxRow < 1 {
		return
	}
	row := f.rng.RandomInt(1, maxRow+1)

	var occupied []*Enemy
	for _, e := range f.grid[row] {
		if e != nil {
			occupied = append(occupied, e)
		}
	}
	if len(occupied) == 0 {
		return
	}

	size := 2 + f.wave/10
	if size > len(occupied) {
		size = len(occupied)
	}
	start := f.rng.RandomInt(0, len(occupied)-size+1)

	circle := f.wave%10 == 0
	for _, e := range occupied[start : start+size] {
		if circle {
			// Start at the top of the orbit so the enemy does not jump.
			e.StartCircle(Vec2{X: e.GridX, Y: e.GridY + CircleRadius}, -math.Pi/2)
		} else {
			e.StartPatrol(Vec2{X: e.GridX, Y: e.GridY}, 0)
		}
	}
}

// Update advances the formation by dt. player is the player's center.
func (f *FormationManager) Update(dt float64, player Vec2) {
	f.sway(dt)

	// Re-project before enemies move so grid enemies follow this tick's sway.
	// Divers heading home, or back home, track their cell from (Row, Col)
	// without reclaiming it.
	for _, e := range f.enemies {
		if !e.IsActive() || (e.Pattern != PatternGrid && e.Pattern != PatternReturn) {
			continue
		}
		pos := f.GridPosition(e.Row, e.Col)
		e.GridX, e.GridY = pos.X, pos.Y
	}

	for _, e := range f.enemies {
		e.Update(dt, player)
	}

	f.orphans = UpdateProjectiles(f.orphans, dt, f.env.Field)
	f.compact()

	if len(f.enemies) > 0 {
		f.diveTimer -= dt
		if f.diveTimer <= 0 {
			f.TriggerDive(player)
			f.diveTimer = f.DiveInterval()
		}
	}

	if f.wave >= TransformFirstWave {
		f.transformTimer -= dt
		if f.transformTimer <= 0 {
			f.transformTimer = f.cfg.Formation.TransformInterval
			f.transformRandom()
		}
	}
}

// sway slides the whole grid horizontally, reversing at the margins.
func (f *FormationManager) sway(dt float64) {
	f.offsetX += f.direction * f.cfg.Formation.SwaySpeed * dt

	half := f.cfg.Grid.SpacingX / 2
	left := f.cfg.GridOriginX() - half + f.offsetX
	right := f.cfg.GridOriginX() + float64(f.cfg.Grid.Cols-1)*f.cfg.Grid.SpacingX + half + f.offsetX
	margin := f.cfg.Formation.SwayMargin

	if right > f.cfg.Screen.Width-margin {
		f.offsetX -= right - (f.cfg.Screen.Width - margin)
		f.direction = -1
	} else if left < margin {
		f.offsetX += margin - left
		f.direction = 1
	}
}

// compact adopts the projectiles of dead enemies and drops them from the
// list and the grid.
func (f *FormationManager) compact() {
	n := 0
	for _, e := range f.enemies {
		if e.IsActive() {
			f.enemies[n] = e
			n++
			continue
		}
		f.orphans = append(f.orphans, e.TakeProjectiles()...)
		if f.grid[e.Row][e.Col] == e {
			f.grid[e.Row][e.Col] = nil
		}
	}
	for i := n; i < len(f.enemies); i++ {
		f.enemies[i] = nil
	}
	f.enemies = f.enemies[:n]
}

// DiveCandidates collects grid-resident ACTIVE enemies in GRID pattern,
// bottom row first, until at least twice count are found or the rows run
// out.
func (f *FormationManager) DiveCandidates(count int) []*Enemy {
	var candidates []*Enemy
	for row := len(f.grid) - 1; row >= 0; row-- {
		for _, e := range f.grid[row] {
			if e != nil && e.IsActive() && e.State == EnemyActive && e.Pattern == PatternGrid {
				candidates = append(candidates, e)
			}
		}
		if len(candidates) >= 2*count {
			break
		}
	}
	return candidates
}

// TriggerDive launches up to DiveCount enemies toward player and returns
// them. Their grid cells are cleared.
func (f *FormationManager) TriggerDive(player Vec2) []*Enemy {
	count := f.DiveCount()
	candidates := f.DiveCandidates(count)
	common.Shuffle(f.rng, len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if len(candidates) > count {
		candidates = candidates[:count]
	}

	var divers []*Enemy
	for _, e := range candidates {
		path := GenerateDivePath(Vec2{X: e.X, Y: e.Y}, player.X, f.env.Field, f.rng)
		if !e.StartDive(path) {
			continue
		}
		f.grid[e.Row][e.Col] = nil
		divers = append(divers, e)
	}
	return divers
}

// transformRandom starts a promotion on one grid Basic or Escort.
func (f *FormationManager) transformRandom() {
	var candidates []*Enemy
	for _, e := range f.enemies {
		if e.State == EnemyActive && e.Pattern == PatternGrid &&
			(e.Tier == TierBasic || e.Tier == TierEscort) {
			candidates = append(candidates, e)
		}
	}
	if len(candidates) == 0 {
		return
	}
	candidates[f.rng.RandomInt(0, len(candidates))].StartTransform()
}

// IsWaveCleared reports whether no active enemy is left.
func (f *FormationManager) IsWaveCleared() bool {
	for _, e := range f.enemies {
		if e.IsActive() {
			return false
		}
	}
	return true
}

// ActiveCount returns the number of active enemies.
func (f *FormationManager) ActiveCount() int {
	n := 0
	for _, e := range f.enemies {
		if e.IsActive() {
			n++
		}
	}
	return n
}

// EnemyProjectiles returns every active enemy projectile, including those
// whose shooter has died.
func (f *FormationManager) EnemyProjectiles() []*Projectile {
	var out []*Projectile
	for _, e := range f.enemies {
		for _, p := range e.Projectiles {
			if p.IsActive() {
				out = append(out, p)
			}
		}
	}
	for _, p := range f.orphans {
		if p.IsActive() {
			out = append(out, p)
		}
	}
	return out
}

// ClearProjectiles removes every enemy projectile.
func (f *FormationManager) ClearProjectiles() {
	for _, e := range f.enemies {
		e.Projectiles = nil
	}
	f.orphans = nil
}
