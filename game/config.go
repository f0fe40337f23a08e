package game

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds every tunable value of a session.
//
// Zero values in a YAML file mean "keep the default": LoadConfig unmarshals
// over DefaultConfig, so a file only needs the keys it changes.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Grid      GridConfig      `yaml:"grid"`
	Formation FormationConfig `yaml:"formation"`
	Enemy     EnemyConfig     `yaml:"enemy"`
	Player    PlayerConfig    `yaml:"player"`
	PowerUps  PowerUpConfig   `yaml:"powerUps"`
	Timing    TimingConfig    `yaml:"timing"`
}

// ScreenConfig describes the playfield.
type ScreenConfig struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	HitboxInset float64 `yaml:"hitboxInset"`
}

// GridConfig describes the formation grid. Cell centers are spaced evenly and
// the whole grid is centered horizontally on the playfield.
type GridConfig struct {
	Rows     int     `yaml:"rows"`
	Cols     int     `yaml:"cols"`
	SpacingX float64 `yaml:"spacingX"`
	SpacingY float64 `yaml:"spacingY"`
	OriginY  float64 `yaml:"originY"`
}

// FormationConfig tunes the sway and the dive scheduler.
type FormationConfig struct {
	SwaySpeed         float64 `yaml:"swaySpeed"`
	SwayMargin        float64 `yaml:"swayMargin"`
	MaxDivers         int     `yaml:"maxDivers"`
	DiveIntervalMax   float64 `yaml:"diveIntervalMax"`
	DiveIntervalMin   float64 `yaml:"diveIntervalMin"`
	DiveIntervalDec   float64 `yaml:"diveIntervalDec"`
	TransformInterval float64 `yaml:"transformInterval"`
}

// EnemyConfig tunes enemy movement and firing.
type EnemyConfig struct {
	DiveSpeed           float64 `yaml:"diveSpeed"`
	ReturnSpeed         float64 `yaml:"returnSpeed"`
	DiveFireChance      float64 `yaml:"diveFireChance"`
	FormationFireChance float64 `yaml:"formationFireChance"`
	ProjectileSpeed     float64 `yaml:"projectileSpeed"`
}

// PlayerConfig tunes the player ship.
type PlayerConfig struct {
	Width                float64 `yaml:"width"`
	Height               float64 `yaml:"height"`
	Speed                float64 `yaml:"speed"`
	LaunchOffset         float64 `yaml:"launchOffset"`
	FireRate             float64 `yaml:"fireRate"`
	UpgradedFireRate     float64 `yaml:"upgradedFireRate"`
	UpgradeDuration      float64 `yaml:"upgradeDuration"`
	ShieldDuration       float64 `yaml:"shieldDuration"`
	InvulnerableDuration float64 `yaml:"invulnerableDuration"`
	ExplosionDuration    float64 `yaml:"explosionDuration"`
	CaptureDuration      float64 `yaml:"captureDuration"`
	ProjectileSpeed      float64 `yaml:"projectileSpeed"`
	StartLives           int     `yaml:"startLives"`
	MaxLives             int     `yaml:"maxLives"`
}

// PowerUpConfig tunes ambient and kill-drop power-ups.
type PowerUpConfig struct {
	Size          float64 `yaml:"size"`
	DriftSpeed    float64 `yaml:"driftSpeed"`
	Lifespan      float64 `yaml:"lifespan"`
	SpawnInterval float64 `yaml:"spawnInterval"`
	SpawnChance   float64 `yaml:"spawnChance"`
}

// TimingConfig holds the loop step and the phase delays.
type TimingConfig struct {
	Step              float64 `yaml:"step"`
	MaxFrame          float64 `yaml:"maxFrame"`
	Boot              float64 `yaml:"boot"`
	GameStart         float64 `yaml:"gameStart"`
	LevelComplete     float64 `yaml:"levelComplete"`
	GameOver          float64 `yaml:"gameOver"`
	GameOverSkipAfter float64 `yaml:"gameOverSkipAfter"`
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		Screen: ScreenConfig{
			Width:       WIDTH,
			Height:      HEIGHT,
			HitboxInset: HitboxInset,
		},
		Grid: GridConfig{
			Rows:     GridRows,
			Cols:     GridCols,
			SpacingX: GridSpacingX,
			SpacingY: GridSpacingY,
			OriginY:  GridOriginY,
		},
		Formation: FormationConfig{
			SwaySpeed:         SwaySpeed,
			SwayMargin:        SwayMargin,
			MaxDivers:         MaxDivers,
			DiveIntervalMax:   DiveIntervalMax,
			DiveIntervalMin:   DiveIntervalMin,
			DiveIntervalDec:   DiveIntervalDec,
			TransformInterval: TransformInterval,
		},
		Enemy: EnemyConfig{
			DiveSpeed:           DiveSpeed,
			ReturnSpeed:         ReturnSpeed,
			DiveFireChance:      DiveFireChance,
			FormationFireChance: FormationFireChance,
			ProjectileSpeed:     EnemyProjectileSpeed,
		},
		Player: PlayerConfig{
			Width:                PlayerWidth,
			Height:               PlayerHeight,
			Speed:                PlayerSpeed,
			LaunchOffset:         PlayerLaunchOffset,
			FireRate:             PlayerFireRate,
			UpgradedFireRate:     PlayerUpgradedFireRate,
			UpgradeDuration:      WeaponUpgradeDuration,
			ShieldDuration:       ShieldDuration,
			InvulnerableDuration: PlayerInvulnerableDuration,
			ExplosionDuration:    PlayerExplosionDuration,
			CaptureDuration:      PlayerCaptureDuration,
			ProjectileSpeed:      PlayerProjectileSpeed,
			StartLives:           PlayerStartLives,
			MaxLives:             PlayerMaxLives,
		},
		PowerUps: PowerUpConfig{
			Size:          PowerUpSize,
			DriftSpeed:    PowerUpDriftSpeed,
			Lifespan:      PowerUpLifespan,
			SpawnInterval: PowerUpSpawnInterval,
			SpawnChance:   PowerUpSpawnChance,
		},
		Timing: TimingConfig{
			Step:              FrameDuration,
			MaxFrame:          MaxFrameTime,
			Boot:              BootDuration,
			GameStart:         GameStartCountdown,
			LevelComplete:     LevelCompleteDelay,
			GameOver:          GameOverDelay,
			GameOverSkipAfter: GameOverSkipAfter,
		},
	}
}

// LoadConfig reads a YAML file over the defaults and validates the result.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Field returns the playfield rectangle.
func (c *Config) Field() Rect {
	return Rect{X: 0, Y: 0, W: c.Screen.Width, H: c.Screen.Height}
}

// GridOriginX returns the x of the first column's cell center for a
// horizontally centered grid.
func (c *Config) GridOriginX() float64 {
	return (c.Screen.Width - float64(c.Grid.Cols-1)*c.Grid.SpacingX) / 2
}

// Validate checks every section and returns the first problem found.
func (c *Config) Validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("screen size %vx%v must be positive: %w", c.Screen.Width, c.Screen.Height, ErrInvalidConfig)
	}
	if c.Screen.HitboxInset < 0 {
		return fmt.Errorf("hitbox inset %v must not be negative: %w", c.Screen.HitboxInset, ErrInvalidConfig)
	}

	if c.Grid.Rows <= 0 || c.Grid.Cols <= 0 {
		return fmt.Errorf("grid %dx%d must have at least one cell: %w", c.Grid.Rows, c.Grid.Cols, ErrInvalidConfig)
	}
	if c.Grid.SpacingX <= 0 || c.Grid.SpacingY <= 0 {
		return fmt.Errorf("grid spacing must be positive: %w", ErrInvalidConfig)
	}
	gridWidth := float64(c.Grid.Cols) * c.Grid.SpacingX
	if gridWidth+2*c.Formation.SwayMargin > c.Screen.Width {
		return fmt.Errorf("grid width %v plus margins does not fit screen width %v: %w", gridWidth, c.Screen.Width, ErrInvalidConfig)
	}
	if c.Grid.OriginY < 0 || c.Grid.OriginY+float64(c.Grid.Rows)*c.Grid.SpacingY > c.Screen.Height {
		return fmt.Errorf("grid rows do not fit screen height %v: %w", c.Screen.Height, ErrInvalidConfig)
	}

	if c.Formation.SwaySpeed < 0 || c.Formation.SwayMargin < 0 {
		return fmt.Errorf("sway speed and margin must not be negative: %w", ErrInvalidConfig)
	}
	if c.Formation.MaxDivers <= 0 {
		return fmt.Errorf("max divers %d must be positive: %w", c.Formation.MaxDivers, ErrInvalidConfig)
	}
	if c.Formation.DiveIntervalMin <= 0 || c.Formation.DiveIntervalMax < c.Formation.DiveIntervalMin {
		return fmt.Errorf("dive interval range [%v, %v] is invalid: %w", c.Formation.DiveIntervalMin, c.Formation.DiveIntervalMax, ErrInvalidConfig)
	}
	if c.Formation.TransformInterval <= 0 {
		return fmt.Errorf("transform interval must be positive: %w", ErrInvalidConfig)
	}

	if c.Enemy.DiveSpeed <= 0 || c.Enemy.ReturnSpeed <= 0 || c.Enemy.ProjectileSpeed <= 0 {
		return fmt.Errorf("enemy speeds must be positive: %w", ErrInvalidConfig)
	}
	if !isProbability(c.Enemy.DiveFireChance) || !isProbability(c.Enemy.FormationFireChance) {
		return fmt.Errorf("enemy fire chances must be within [0, 1]: %w", ErrInvalidConfig)
	}

	p := c.Player
	if p.Width <= 0 || p.Height <= 0 || p.Width > c.Screen.Width {
		return fmt.Errorf("player size %vx%v is invalid: %w", p.Width, p.Height, ErrInvalidConfig)
	}
	if p.Speed <= 0 || p.ProjectileSpeed <= 0 {
		return fmt.Errorf("player speeds must be positive: %w", ErrInvalidConfig)
	}
	if p.FireRate <= 0 || p.UpgradedFireRate <= 0 {
		return fmt.Errorf("player fire rates must be positive: %w", ErrInvalidConfig)
	}
	if p.UpgradeDuration <= 0 || p.ShieldDuration <= 0 || p.InvulnerableDuration <= 0 ||
		p.ExplosionDuration <= 0 || p.CaptureDuration <= 0 {
		return fmt.Errorf("player durations must be positive: %w", ErrInvalidConfig)
	}
	if p.MaxLives <= 0 || p.StartLives <= 0 || p.StartLives > p.MaxLives {
		return fmt.Errorf("player lives %d (max %d) are invalid: %w", p.StartLives, p.MaxLives, ErrInvalidConfig)
	}

	pu := c.PowerUps
	if pu.Size <= 0 || pu.DriftSpeed < 0 || pu.Lifespan <= 0 || pu.SpawnInterval <= 0 {
		return fmt.Errorf("power-up size, lifespan and interval must be positive: %w", ErrInvalidConfig)
	}
	if !isProbability(pu.SpawnChance) {
		return fmt.Errorf("power-up spawn chance %v must be within [0, 1]: %w", pu.SpawnChance, ErrInvalidConfig)
	}

	t := c.Timing
	if t.Step <= 0 || t.MaxFrame < t.Step {
		return fmt.Errorf("loop step %v and frame clamp %v are invalid: %w", t.Step, t.MaxFrame, ErrInvalidConfig)
	}
	if t.Boot < 0 || t.GameStart < 0 || t.LevelComplete < 0 || t.GameOver < 0 || t.GameOverSkipAfter < 0 {
		return fmt.Errorf("phase delays must not be negative: %w", ErrInvalidConfig)
	}

	return nil
}

func isProbability(p float64) bool {
	return p >= 0 && p <= 1
}
