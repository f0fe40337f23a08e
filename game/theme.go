package game

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Theme holds all visual styling constants for easy customization.
// Colors are CSS hex strings so the browser shell can use them directly.
var Theme = struct {
	// Background colors
	BackgroundColor string

	// Player ship colors
	ShipColor       string
	ShipCenterColor string
	ShieldGlowColor string
	CapturedColor   string

	// Bullet/projectile colors
	BulletColor  string
	TorpedoColor string

	// Enemy colors by tier
	BasicColor      string
	EscortColor     string
	MiniBossColor   string
	CommanderColor  string
	MothershipColor string
	HitFlashColor   string
	TransformColor  string

	// Explosion colors
	ExplosionColor     string
	ExplosionCoreColor string

	// Power-up colors
	AreaAttackColor string
	ShieldColor     string
	WeaponColor     string
	ExtraLifeColor  string

	// UI/HUD colors
	ScoreColor         string
	TextPrimaryColor   string
	TextSecondaryColor string

	// Fonts
	ScoreFont string
	TextFont  string
}{
	// Background colors - dark space theme
	BackgroundColor: "#000",

	// Player ship colors - green/lime theme
	ShipColor:       "#9F0",
	ShipCenterColor: "#FFF",
	ShieldGlowColor: "#CF0",
	CapturedColor:   "#0CF",

	// Bullet/projectile colors
	BulletColor:  "#CF0",
	TorpedoColor: "#62F",

	// Enemy colors - cool to hot by tier
	BasicColor:      "#62F",
	EscortColor:     "#C3F",
	MiniBossColor:   "#F3C",
	CommanderColor:  "#F63",
	MothershipColor: "#FC0",
	HitFlashColor:   "#FFF",
	TransformColor:  "#0FF",

	// Explosion colors - orange/red
	ExplosionColor:     "#F63",
	ExplosionCoreColor: "#FC6",

	// Power-up colors
	AreaAttackColor: "#F33",
	ShieldColor:     "#0CF",
	WeaponColor:     "#FEB",
	ExtraLifeColor:  "#9F0",

	// UI/HUD colors
	ScoreColor:         "#9F0",
	TextPrimaryColor:   "#62F",
	TextSecondaryColor: "#FFF",

	// Fonts
	ScoreFont: "Consolas,monospace",
	TextFont:  "Consolas,monospace",
}

// TierColor returns the body color for an enemy tier.
func TierColor(t EnemyTier) string {
	switch t {
	case TierBasic:
		return Theme.BasicColor
	case TierEscort:
		return Theme.EscortColor
	case TierMiniBoss:
		return Theme.MiniBossColor
	case TierCommander:
		return Theme.CommanderColor
	case TierMothership:
		return Theme.MothershipColor
	}
	return Theme.BasicColor
}

// EnemyColor returns the color an enemy should be drawn with this frame.
func EnemyColor(e *Enemy) string {
	switch {
	case e.State == EnemyExploding:
		return Theme.ExplosionColor
	case e.IsFlashing():
		return Theme.HitFlashColor
	case e.State == EnemyTransforming:
		return Theme.TransformColor
	}
	return TierColor(e.Tier)
}

// PowerUpColor returns the color of a power-up pickup.
func PowerUpColor(t PowerUpType) string {
	switch t {
	case PowerUpAreaAttack:
		return Theme.AreaAttackColor
	case PowerUpShield:
		return Theme.ShieldColor
	case PowerUpWeaponUpgrade:
		return Theme.WeaponColor
	case PowerUpExtraLife:
		return Theme.ExtraLifeColor
	}
	return Theme.TextSecondaryColor
}

// ParseHexColor converts "#RGB" or "#RRGGBB" into an opaque color for the
// shells that do not draw with CSS strings.
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("color %q: want #RGB or #RRGGBB", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, nil
}
