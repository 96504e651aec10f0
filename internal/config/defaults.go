package config

import (
	_ "embed"

	"github.com/vovakirdan/fruit-link/internal/games/fruitlink/core"
)

//go:embed defaults/fruitlink.yaml
var defaultFruitLinkYAML []byte

// DefaultFruitLinkConfig returns the hardcoded configuration.
func DefaultFruitLinkConfig() FruitLinkConfig {
	kinds := core.DefaultKinds()
	catalog := make([]TileKindConfig, len(kinds))
	for i, k := range kinds {
		catalog[i] = TileKindConfig{
			ID:       k.ID,
			Glyph:    k.Glyph,
			Category: k.Category,
			Symbol:   string(k.Symbol),
			Color:    k.Color,
		}
	}

	table := core.DefaultLevels()
	levels := make([]LevelConfig, len(table))
	for i, l := range table {
		levels[i] = LevelConfig{
			Level:     l.Level,
			Cols:      l.Cols,
			Rows:      l.Rows,
			TileTypes: l.TileTypes,
			TimeLimit: l.TimeLimit,
		}
	}

	r := core.DefaultRules()
	return FruitLinkConfig{
		Catalog: catalog,
		Levels:  levels,
		Overflow: OverflowConfig{
			TimeStep: 5,
			MinTime:  30,
		},
		Scoring: ScoringConfig{
			Base:            r.BaseScore,
			ComboStep:       r.ComboStep,
			ComboCap:        r.ComboCap,
			LevelStep:       r.LevelStep,
			TimeDivisor:     r.TimeDivisor,
			TimeStep:        r.TimeStep,
			ClearMultiplier: r.ClearMultiplier,
		},
		Budgets: BudgetConfig{
			HintBase:        r.HintBase,
			HintEvery:       r.HintEvery,
			ShuffleBase:     r.ShuffleBase,
			ShuffleEvery:    r.ShuffleEvery,
			Minimum:         r.MinBudget,
			MinShuffleTiles: r.MinShuffleTiles,
		},
		Timing: TimingConfig{
			Tick:        r.TickPeriod,
			ComboWindow: r.ComboWindow,
		},
	}
}
