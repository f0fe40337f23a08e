package game

import (
	"math"

	"github.com/simukka/starship-formation/common"
)

// LayoutKind names a formation arrangement.
type LayoutKind int

const (
	LayoutBasic LayoutKind = iota
	LayoutAdvanced
	LayoutChallenge
	LayoutGenerated
	LayoutMiniBoss
	LayoutCommander
	LayoutMothership
)

var layoutNames = map[LayoutKind]string{
	LayoutBasic:      "basic",
	LayoutAdvanced:   "advanced",
	LayoutChallenge:  "challenge",
	LayoutGenerated:  "generated",
	LayoutMiniBoss:   "mini-boss",
	LayoutCommander:  "commander",
	LayoutMothership: "mothership",
}

func (k LayoutKind) String() string {
	if name, ok := layoutNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsBoss reports whether k is one of the boss layouts.
func (k LayoutKind) IsBoss() bool {
	return k == LayoutMiniBoss || k == LayoutCommander || k == LayoutMothership
}

// SelectLayout picks the arrangement for wave. Boss waves are checked rarest
// first; early waves rotate through the fixed layouts and later waves are
// generated.
func SelectLayout(wave int) LayoutKind {
	switch {
	case wave > 0 && wave%MothershipWaveEvery == 0:
		return LayoutMothership
	case wave > 0 && wave%CommanderWaveEvery == 0:
		return LayoutCommander
	case wave > 0 && wave%MiniBossWaveEvery == 0:
		return LayoutMiniBoss
	case wave < EarlyWaveLimit:
		rotation := [...]LayoutKind{LayoutBasic, LayoutAdvanced, LayoutChallenge}
		i := (wave - 1) % len(rotation)
		if i < 0 {
			i += len(rotation)
		}
		return rotation[i]
	default:
		return LayoutGenerated
	}
}

// LayoutTier returns the tier occupying (row, col) for the given layout, or
// false when the cell stays empty.
func LayoutTier(kind LayoutKind, wave, row, col, rows, cols int) (EnemyTier, bool) {
	c := cols / 2
	dc := col - c
	if dc < 0 {
		dc = -dc
	}

	switch kind {
	case LayoutBasic:
		if row == 0 {
			if col%2 == 0 {
				return TierEscort, true
			}
			return TierBasic, true
		}
		return TierBasic, true

	case LayoutAdvanced:
		if row <= 1 {
			return TierEscort, true
		}
		return TierBasic, true

	case LayoutChallenge:
		switch {
		case row == 0:
			return TierEscort, true
		case row == rows-1:
			return TierBasic, true
		case col == row || col == cols-1-row:
			return TierEscort, true
		case (row+col)%2 == 0:
			return TierBasic, true
		}
		return 0, false

	case LayoutMiniBoss:
		if row == 0 {
			switch dc {
			case 0:
				return TierMiniBoss, true
			case 1:
				return TierEscort, true
			}
			return 0, false
		}
		return escortOrBasic(row)

	case LayoutCommander:
		if row == 0 {
			switch dc {
			case 0:
				return TierCommander, true
			case 1:
				return TierMiniBoss, true
			case 2:
				return TierEscort, true
			}
			return 0, false
		}
		return escortOrBasic(row)

	case LayoutMothership:
		switch {
		case row == 0:
			switch dc {
			case 0:
				return TierMothership, true
			case 1:
				return TierCommander, true
			case 2:
				return TierMiniBoss, true
			}
			return 0, false
		case row == 1 && col%2 == 0:
			return TierMiniBoss, true
		case row == 1:
			return TierEscort, true
		}
		return TierBasic, true

	case LayoutGenerated:
		return generatedTier(wave, row, col, rows, cols)
	}

	panic("how?")
}

func escortOrBasic(row int) (EnemyTier, bool) {
	if row == 1 {
		return TierEscort, true
	}
	return TierBasic, true
}

// GeneratedOccupancy is the chance a generated cell holds an enemy.
func GeneratedOccupancy(wave int) float64 {
	return math.Min(0.95, 0.6+float64(wave)*0.01)
}

// generatedTier hashes the cell so a wave always generates the same layout
// without consuming the session's random stream.
func generatedTier(wave, row, col, rows, cols int) (EnemyTier, bool) {
	seed := uint32(wave)
	cell := row*cols + col
	if common.HashUnit(seed, cell) >= GeneratedOccupancy(wave) {
		return 0, false
	}

	roll := common.HashUnit(seed, cell+rows*cols)
	switch {
	case row == 0:
		if wave > 15 && roll < 0.10 {
			return TierMiniBoss, true
		}
		return TierEscort, true
	case row <= 2:
		if roll < 0.35 {
			return TierEscort, true
		}
		return TierBasic, true
	}
	return TierBasic, true
}
