package game

import "math"

// Default playfield and loop constants
const (
	WIDTH         = 480
	HEIGHT        = 640
	FrameDuration = 1.0 / 30 // fixed simulation step in seconds
	MaxFrameTime  = 0.25     // longest wall-clock frame fed to the accumulator
	HitboxInset   = 4.0      // collision box shrink per side
	timeEpsilon   = 1e-9
)

// Player constants
const (
	PlayerWidth                = 36
	PlayerHeight               = 28
	PlayerSpeed                = 280.0
	PlayerLaunchOffset         = 24.0 // distance between the ship and the bottom edge
	PlayerFireRate             = 0.30
	PlayerUpgradedFireRate     = 0.18
	PlayerStartLives           = 3
	PlayerMaxLives             = 5
	PlayerInvulnerableDuration = 2.0
	PlayerExplosionDuration    = 1.5
	PlayerCaptureDuration      = 2.0
	ShieldDuration             = 10.0
	WeaponUpgradeDuration      = 10.0
	PlayerProjectileSpeed      = 520.0
	PlayerSpreadSpeed          = 120.0 // lateral speed of the two angled upgrade shots
	PlayerBlinkFrequency       = 10.0  // Hz
)

// Projectile constants
const (
	PlayerProjectileWidth  = 4
	PlayerProjectileHeight = 12
	EnemyProjectileWidth   = 4
	EnemyProjectileHeight  = 10
	EnemyProjectileSpeed   = 260.0
	EnemyProjectileMaxVX   = 120.0
)

// Enemy constants
const (
	EnemyExplosionDuration = 0.5
	EnemyTransformDuration = 1.0
	EnemyCaptureDuration   = 2.0
	EnemyHitFlashDuration  = 0.1

	// HoverAmplitude and HoverFrequency shape the small vertical bob of grid enemies:
	// offset = sin(t*HoverFrequency) * HoverAmplitude
	HoverAmplitude = 3.0
	HoverFrequency = 2.0

	DiveSpeed        = 220.0
	ReturnSpeed      = 160.0
	PathArriveRadius = 5.0
	DivePathPoints   = 20
	DiveExitY        = -60.0

	CircleRadius    = 40.0
	CircleSpeed     = 2.0 // radians per second
	PatrolAmplitude = 60.0
	PatrolSpeed     = 1.5

	DiveFireChance      = 0.8
	FormationFireChance = 0.2
)

// Formation constants
const (
	GridRows        = 5
	GridCols        = 8
	GridSpacingX    = 44.0
	GridSpacingY    = 36.0
	GridOriginY     = 80.0
	SwaySpeed       = 40.0
	SwayMargin      = 20.0
	MaxDivers       = 4
	DiveIntervalMax = 4.0
	DiveIntervalMin = 1.5
	DiveIntervalDec = 0.15 // seconds shaved off the dive interval per wave

	TransformInterval  = 12.0
	TransformFirstWave = 3

	SyncGroupChance   = 0.5
	SyncGroupAlwaysAt = 20

	// Boss layouts trigger on these wave multiples, checked rarest first.
	MothershipWaveEvery = 20
	CommanderWaveEvery  = 10
	MiniBossWaveEvery   = 5
	EarlyWaveLimit      = 10
)

// Power-up constants
const (
	PowerUpSize            = 20
	PowerUpDriftSpeed      = 60.0
	PowerUpLifespan        = 10.0
	PowerUpBlinkWindow     = 3.0
	PowerUpBlinkFrequency  = 4.0 // Hz
	PowerUpSpawnInterval   = 25.0
	PowerUpSpawnChance     = 0.10
	ExtraLifeAmbientChance = 0.15

	// Kill drops: probability is min(KillDropCap, points/KillDropDivisor).
	KillDropCap         = 0.6
	KillDropDivisor     = 1200.0
	ExtraLifeMinPoints  = 400
	ExtraLifeDropChance = 0.10
	ShieldDropWeight    = 0.4
	WeaponDropWeight    = 0.3 // remainder after shield and weapon is area attack
)

// Phase timing constants
const (
	BootDuration          = 1.0
	GameStartCountdown    = 2.0
	LevelCompleteDelay    = 2.0
	GameOverDelay         = 3.0
	GameOverSkipAfter     = 1.0
	HighScoreInitialCount = 3
)

// --- Entity Interface ---

// Entity is the common interface for everything that takes part in collision
// passes: the player, enemies, projectiles and power-ups.
type Entity interface {
	// Bounds returns the collision box, already shrunk by the hitbox inset.
	Bounds() Rect

	// IsActive reports whether the entity still exists. Once false it stays
	// false until the owner explicitly resets the entity.
	IsActive() bool
}

// Compile-time interface checks
var (
	_ Entity = (*Player)(nil)
	_ Entity = (*Enemy)(nil)
	_ Entity = (*Projectile)(nil)
	_ Entity = (*PowerUp)(nil)
)

// hoverOffset returns the vertical bob applied to grid enemies at time t.
func hoverOffset(t float64) float64 {
	return math.Sin(t*HoverFrequency) * HoverAmplitude
}
