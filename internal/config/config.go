// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

// SliceConfig contains all configuration for the slice game.
type SliceConfig struct {
	Physics    SlicePhysics     `yaml:"physics"`
	Spawn      SliceSpawn       `yaml:"spawn"`
	Trail      SliceTrail       `yaml:"trail"`
	Gameplay   SliceGameplay    `yaml:"gameplay"`
	Terminal   SliceTerminal    `yaml:"terminal"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// SlicePhysics defines per-tick motion parameters, in pixels.
type SlicePhysics struct {
	FruitGravity       float64 `yaml:"fruit_gravity"`
	BombGravity        float64 `yaml:"bomb_gravity"`
	Radius             float64 `yaml:"radius"`
	ExplosionMaxRadius float64 `yaml:"explosion_max_radius"`
	ExplosionSpeed     float64 `yaml:"explosion_speed"`
	HalfSpin           float64 `yaml:"half_spin"`    // rotation added to each half per tick
	HalfDrift          float64 `yaml:"half_drift"`   // horizontal acceleration of each half
	HalfGravity        float64 `yaml:"half_gravity"` // vertical acceleration of each half
}

// SliceSpawn defines the spawn scheduler.
type SliceSpawn struct {
	Interval   float64 `yaml:"interval"`    // seconds between spawns
	BombChance float64 `yaml:"bomb_chance"` // probability a spawn is a bomb
	Offset     float64 `yaml:"offset"`      // pixels below the bottom edge
}

// SliceTrail defines the slice trail tracker.
type SliceTrail struct {
	MaxPoints int `yaml:"max_points"`
}

// SliceGameplay defines scoring and lives.
type SliceGameplay struct {
	Lives        int     `yaml:"lives"`
	FruitPoints  int     `yaml:"fruit_points"`
	DropMargin   float64 `yaml:"drop_margin"`
	SliceImpulse float64 `yaml:"slice_impulse"`
}

// SliceTerminal maps terminal cells to simulation pixels.
type SliceTerminal struct {
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
}

// RewardConfig configures the score-to-token reward service.
type RewardConfig struct {
	Tiers          []RewardTier `yaml:"tiers"`
	TopAmount      int64        `yaml:"top_amount"` // paid at or above the last tier bound
	BonusThreshold int          `yaml:"bonus_threshold"`
	BonusAmount    int64        `yaml:"bonus_amount"`
	Decimals       int32        `yaml:"decimals"`
	HouseAccount   string       `yaml:"house_account"`
	Retries        int          `yaml:"retries"`
	RetryBackoffMs int          `yaml:"retry_backoff_ms"`
}

// RewardTier pays Amount for any score strictly below Below.
type RewardTier struct {
	Below  int   `yaml:"below"`
	Amount int64 `yaml:"amount"`
}

// WalletConfig configures the entry gate and wallet login.
type WalletConfig struct {
	EntryFee         string `yaml:"entry_fee"` // decimal credits per attempt
	StarterCredits   string `yaml:"starter_credits"`
	FundAmount       string `yaml:"fund_amount"` // credits added per top-up
	NonceExpirySecs  int    `yaml:"nonce_expiry_secs"`
	TokenExpiryHours int    `yaml:"token_expiry_hours"`
	AuthToken        string `yaml:"auth_token"` // bearer required to request a nonce
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	IntervalReduction  float64 `yaml:"interval_reduction"` // fraction of the spawn interval removed at max difficulty
	BombChanceIncrease float64 `yaml:"bomb_chance_increase"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown strings yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
