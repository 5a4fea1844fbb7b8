package config

import (
	_ "embed"
)

//go:embed defaults/slice.yaml
var defaultSliceYAML []byte

//go:embed defaults/reward.yaml
var defaultRewardYAML []byte

//go:embed defaults/wallet.yaml
var defaultWalletYAML []byte

// DefaultSliceConfig returns the default slice game configuration.
func DefaultSliceConfig() SliceConfig {
	return SliceConfig{
		Physics: SlicePhysics{
			FruitGravity:       0.2,
			BombGravity:        0.3,
			Radius:             30,
			ExplosionMaxRadius: 60,
			ExplosionSpeed:     5,
			HalfSpin:           0.1,
			HalfDrift:          0.1,
			HalfGravity:        0.3,
		},
		Spawn: SliceSpawn{
			Interval:   1.5,
			BombChance: 0.2,
			Offset:     30,
		},
		Trail: SliceTrail{
			MaxPoints: 10,
		},
		Gameplay: SliceGameplay{
			Lives:        3,
			FruitPoints:  10,
			DropMargin:   50,
			SliceImpulse: 2.0,
		},
		Terminal: SliceTerminal{
			CellWidth:  8,
			CellHeight: 16,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 500,
			},
			Scaling: ScalingConfig{
				IntervalReduction:  0.5,
				BombChanceIncrease: 0.15,
			},
		},
	}
}

// DefaultRewardConfig returns the default reward tiers.
func DefaultRewardConfig() RewardConfig {
	return RewardConfig{
		Tiers: []RewardTier{
			{Below: 20, Amount: 0},
			{Below: 40, Amount: 500},
			{Below: 60, Amount: 1000},
			{Below: 80, Amount: 1500},
			{Below: 100, Amount: 2000},
			{Below: 120, Amount: 3000},
		},
		TopAmount:      6000,
		BonusThreshold: 1000,
		BonusAmount:    50000,
		Decimals:       6,
		HouseAccount:   "house",
		Retries:        3,
		RetryBackoffMs: 200,
	}
}

// DefaultWalletConfig returns the default wallet configuration.
func DefaultWalletConfig() WalletConfig {
	return WalletConfig{
		EntryFee:         "1",
		StarterCredits:   "10",
		FundAmount:       "5",
		NonceExpirySecs:  300,
		TokenExpiryHours: 4,
	}
}

// GetDefaultYAML returns the embedded default YAML for a config id.
func GetDefaultYAML(id string) []byte {
	switch id {
	case "slice":
		return defaultSliceYAML
	case "reward":
		return defaultRewardYAML
	case "wallet":
		return defaultWalletYAML
	default:
		return nil
	}
}
