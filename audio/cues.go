package audio

import "github.com/simukka/starship-formation/game"

// Cue is a named sound effect.
type Cue struct {
	Name        string
	Category    string // Player, Enemy, Pickup or UI
	Description string
	Settings    string  // sfxr settings string
	Volume      float64 // playback gain, 0 to 1
}

// Cue names.
const (
	CuePlayerShoot   = "player-shoot"
	CuePlayerHurt    = "player-hurt"
	CueShieldHit     = "shield-hit"
	CueShieldOn      = "shield-on"
	CueWeaponUp      = "weapon-up"
	CueExtraLife     = "extra-life"
	CueBonus         = "bonus"
	CueWaveAlarm     = "wave-alarm"
	CueEnemyHit      = "enemy-hit"
	CueEnemyDeath    = "enemy-death"
	CueBossShoot     = "boss-shoot"
	CueEnemyShoot    = "enemy-shoot"
	CueEnemyDive     = "enemy-dive"
	CueTransform     = "transform"
	CueCaptureBeam   = "capture-beam"
	CueBomb          = "bomb"
	CueGameOver      = "game-over"
	CueIntro         = "intro"
	CueLevelComplete = "level-complete"
)

// Library holds every cue by name.
var Library = map[string]Cue{
	CuePlayerShoot: {CuePlayerShoot, "Player", "Basic weapon fire",
		"0,,.167,.1637,.1361,.7212,.0399,-.363,,,,,,.1314,.0517,,.0154,-.1633,1,,,.0515,,.2", 0.5},
	CuePlayerHurt: {CuePlayerHurt, "Player", "Ship destroyed",
		"3,.0704,.0462,.3388,.4099,.1599,,.0109,-.3247,.0006,,-.1592,.4477,.1028,.1787,,-.0157,-.3372,.1896,.1628,,.0016,-.0003,.5", 1},
	CueShieldHit: {CueShieldHit, "Player", "Shield absorbs a hit",
		"3,.1,.3899,.1901,.2847,.0399,,.0007,.1492,,,-.9636,,,-.3893,.1636,-.0047,.7799,.1099,-.1103,.5924,.484,.1547,1", 0.9},
	CueShieldOn: {CueShieldOn, "Pickup", "Shield collected",
		"1,,.0398,,.4198,.3891,,.4383,,,,,,,,.616,,,1,,,,,.5", 0.8},
	CueWeaponUp: {CueWeaponUp, "Pickup", "Weapon upgrade collected",
		"0,.43,.1099,.67,.4499,.6999,,-.2199,-.2,.5299,.5299,-.0399,.3,,.0799,.1899,-.1194,.2327,.8815,-.2364,.43,.2099,-.5799,.5", 0.8},
	CueExtraLife: {CueExtraLife, "Pickup", "Extra life collected",
		"0,.09,.1099,.0733,.0854,.1099,,-.1891,.827,,,.9826,,,.4642,,-.1194,.2327,.8815,-.2364,.0992,.0076,.8314,.5", 0.8},
	CueBonus: {CueBonus, "Pickup", "Power-up appears",
		"0,.2,.1099,.0733,.0854,.14,,-.1891,.36,,,.9826,,,.4642,,-.1194,.2327,.8815,-.2364,.0992,.0076,.2,.5", 0.5},
	CueWaveAlarm: {CueWaveAlarm, "UI", "New wave starting",
		"1,.1,1,.1901,.2847,.3199,,.0007,.1492,,,-.9636,,,-.3893,.1636,-.0047,.6646,.9653,-.1103,.5924,.484,.1547,.6", 0.7},
	CueEnemyHit: {CueEnemyHit, "Enemy", "Enemy takes damage",
		"3,.1,.3899,.1901,.2847,.0399,,.0007,.1492,,,-.9636,,,-.3893,.1636,-.0047,.6646,.9653,-.1103,.5924,.484,.1547,.4", 0.6},
	CueEnemyDeath: {CueEnemyDeath, "Enemy", "Enemy destroyed",
		"3,.2,.1899,.4799,.91,.0599,,-.2199,-.2,.5299,.5299,-.0399,.3,,.0799,.1899,-.1194,.2327,.8815,-.2364,.43,.2099,-.5799,.5", 0.8},
	CueBossShoot: {CueBossShoot, "Enemy", "Boss fires",
		"1,.071,.3474,.0506,.1485,.5799,.2,-.2184,-.1405,.1681,,-.1426,,.9603,-.0961,,.2791,-.8322,.2832,.0009,,.0088,-.0082,.3", 0.6},
	CueEnemyShoot: {CueEnemyShoot, "Enemy", "Small enemy fires",
		"0,,.2863,,.3048,.751,.2,-.316,,,,,,.4416,.1008,,,,1,,,.2962,,.3", 0.4},
	CueEnemyDive: {CueEnemyDive, "Enemy", "Enemy leaves the formation",
		"0,,.3138,,.0117,.7877,.1583,-.3391,-.04,,.0464,.0585,,.4085,-.4195,,-.024,-.0396,1,-.0437,.0124,.02,.0216,.3", 0.4},
	CueTransform: {CueTransform, "Enemy", "Enemy transforming",
		"1,.0099,.15,,.2299,.45,,.1799,.48,.5099,.4599,-.4399,.6299,,,,,.0099,.6599,.0099,,.1699,,.4", 0.6},
	CueCaptureBeam: {CueCaptureBeam, "Enemy", "Boss capture beam",
		"0,.9705,.0514,.5364,.5273,.4816,.0849,.1422,.205,.7714,.1581,-.7685,.0822,.2147,.6062,.7448,-.0917,.4009,.6251,.1116,.0573,.9005,-.3763,.3", 0.8},
	CueBomb: {CueBomb, "Player", "Area attack",
		"3,.05,.3365,.4591,.4922,.1051,,.015,,,,-.6646,.7394,,,,,,1,,,,,.7", 1},
	CueGameOver: {CueGameOver, "UI", "Game over",
		"1,1,.09,.5,.4111,.506,.0942,.1499,.0199,.8799,.1099,-.68,.0268,.1652,.62,.6999,-.0399,.4799,.5199,-.0429,.0599,.8199,-.4199,.7", 0.8},
	CueIntro: {CueIntro, "UI", "Title screen",
		"0,1,.8799,.3499,.17,.61,.1899,-.3,-.18,.3,.6399,-.0279,.0071,.8,-.1599,.5099,-.46,.5199,.25,.0218,.49,.4,-.2,.3", 0.6},
	CueLevelComplete: {CueLevelComplete, "UI", "Wave cleared",
		"1,,.0398,,.4198,.3891,,.4383,,,,-.6399,,,-.4799,.7099,,,1,,,,,.5", 0.7},
}

// CueFor picks the cue for a simulation event. Events without a sound
// report false.
func CueFor(e game.Event) (string, bool) {
	switch e.Kind {
	case game.EventPlayerShoot:
		return CuePlayerShoot, true
	case game.EventEnemyShoot:
		if e.Tier.IsBoss() {
			return CueBossShoot, true
		}
		return CueEnemyShoot, true
	case game.EventEnemyHit:
		return CueEnemyHit, true
	case game.EventEnemyDestroyed:
		return CueEnemyDeath, true
	case game.EventEnemyDive:
		return CueEnemyDive, true
	case game.EventEnemyTransform:
		return CueTransform, true
	case game.EventEnemyCapture:
		return CueCaptureBeam, true
	case game.EventPlayerDestroyed:
		return CuePlayerHurt, true
	case game.EventShieldAbsorbed:
		return CueShieldHit, true
	case game.EventPowerUpSpawned:
		return CueBonus, true
	case game.EventPowerUpCollected:
		switch e.PowerUp {
		case game.PowerUpShield:
			return CueShieldOn, true
		case game.PowerUpWeaponUpgrade:
			return CueWeaponUp, true
		case game.PowerUpExtraLife:
			return CueExtraLife, true
		}
		// Area attacks sound through EventAreaAttack.
		return "", false
	case game.EventAreaAttack:
		return CueBomb, true
	case game.EventWaveStart:
		return CueWaveAlarm, true
	case game.EventLevelComplete:
		return CueLevelComplete, true
	case game.EventGameOver:
		return CueGameOver, true
	case game.EventPhaseChange:
		if e.Phase == game.PhaseTitle {
			return CueIntro, true
		}
	}
	return "", false
}
