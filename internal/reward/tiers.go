// Package reward turns final scores into token payouts.
package reward

import "github.com/vovakirdan/slice-arcade/internal/config"

// Table maps scores to token amounts.
type Table struct {
	tiers []config.RewardTier
	top   int64
}

// NewTable builds a table from config. Tiers must be in ascending order of Below.
func NewTable(cfg config.RewardConfig) Table {
	return Table{tiers: cfg.Tiers, top: cfg.TopAmount}
}

// Amount returns the regular reward for score.
func (t Table) Amount(score int) int64 {
	for _, tier := range t.tiers {
		if score < tier.Below {
			return tier.Amount
		}
	}
	return t.top
}

var defaultTable = NewTable(config.DefaultRewardConfig())

// Tier returns the regular reward for score using the default tiers:
// <20 -> 0, <40 -> 500, <60 -> 1000, <80 -> 1500, <100 -> 2000, <120 -> 3000,
// otherwise 6000.
func Tier(score int) int64 {
	return defaultTable.Amount(score)
}
