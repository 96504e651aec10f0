// Package config provides YAML-based game configuration loading and
// difficulty presets for FruitLink.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/fruit-link/internal/games/fruitlink/core"
)

// A shuffle always needs at least two pairs on the board.
const minShuffleTiles = 4

// FruitLinkConfig contains all tunable data of the game.
type FruitLinkConfig struct {
	Catalog  []TileKindConfig `yaml:"catalog"`
	Levels   []LevelConfig    `yaml:"levels"`
	Overflow OverflowConfig   `yaml:"overflow"`
	Scoring  ScoringConfig    `yaml:"scoring"`
	Budgets  BudgetConfig     `yaml:"budgets"`
	Timing   TimingConfig     `yaml:"timing"`
}

// TileKindConfig defines one icon family.
type TileKindConfig struct {
	ID       string `yaml:"id"`
	Glyph    string `yaml:"glyph"`
	Category string `yaml:"category"`
	Symbol   string `yaml:"symbol"` // First rune is used in the terminal
	Color    string `yaml:"color"`
}

// LevelConfig defines one row of the level table.
type LevelConfig struct {
	Level     int `yaml:"level"`
	Cols      int `yaml:"cols"`
	Rows      int `yaml:"rows"`
	TileTypes int `yaml:"tile_types"`
	TimeLimit int `yaml:"time_limit"` // Seconds
}

// OverflowConfig defines levels past the end of the table.
type OverflowConfig struct {
	TimeStep int `yaml:"time_step"` // Seconds removed per extra level
	MinTime  int `yaml:"min_time"`  // Floor for the time limit
}

// ScoringConfig defines match and clear scoring.
type ScoringConfig struct {
	Base            int `yaml:"base"`
	ComboStep       int `yaml:"combo_step"`
	ComboCap        int `yaml:"combo_cap"`
	LevelStep       int `yaml:"level_step"`
	TimeDivisor     int `yaml:"time_divisor"`
	TimeStep        int `yaml:"time_step"`
	ClearMultiplier int `yaml:"clear_multiplier"`
}

// BudgetConfig defines per-level hint and shuffle allowances.
type BudgetConfig struct {
	HintBase        int `yaml:"hint_base"`
	HintEvery       int `yaml:"hint_every"`
	ShuffleBase     int `yaml:"shuffle_base"`
	ShuffleEvery    int `yaml:"shuffle_every"`
	Minimum         int `yaml:"minimum"`
	MinShuffleTiles int `yaml:"min_shuffle_tiles"`
}

// TimingConfig defines the clock.
type TimingConfig struct {
	Tick        time.Duration `yaml:"tick"`
	ComboWindow time.Duration `yaml:"combo_window"`
}

// Validate checks the configuration for consistency.
func (c FruitLinkConfig) Validate() error {
	if len(c.Catalog) == 0 {
		return errors.New("config: catalog is empty")
	}
	seen := make(map[string]bool, len(c.Catalog))
	for _, k := range c.Catalog {
		if k.ID == "" {
			return errors.New("config: catalog entry without id")
		}
		if seen[k.ID] {
			return fmt.Errorf("config: duplicate catalog id %q", k.ID)
		}
		seen[k.ID] = true
	}

	if len(c.Levels) == 0 {
		return errors.New("config: no levels defined")
	}
	for i, l := range c.Levels {
		if l.Level != i+1 {
			return fmt.Errorf("config: level %d is out of order (position %d)", l.Level, i+1)
		}
		if l.TileTypes > len(c.Catalog) {
			return fmt.Errorf("config: level %d needs %d tile types, catalog has %d",
				l.Level, l.TileTypes, len(c.Catalog))
		}
	}
	if c.Scoring.TimeDivisor <= 0 {
		return errors.New("config: scoring.time_divisor must be positive")
	}
	if c.Budgets.HintEvery <= 0 || c.Budgets.ShuffleEvery <= 0 {
		return errors.New("config: budgets.hint_every and budgets.shuffle_every must be positive")
	}
	if c.Budgets.Minimum < 0 {
		return errors.New("config: budgets.minimum must not be negative")
	}
	if c.Budgets.MinShuffleTiles < minShuffleTiles {
		return fmt.Errorf("config: budgets.min_shuffle_tiles must be at least %d", minShuffleTiles)
	}
	if c.Timing.Tick <= 0 {
		return errors.New("config: timing.tick must be positive")
	}
	if c.Timing.ComboWindow <= 0 {
		return errors.New("config: timing.combo_window must be positive")
	}
	return nil
}

// Kinds converts the catalog to core tile kinds.
func (c FruitLinkConfig) Kinds() []core.TileKind {
	kinds := make([]core.TileKind, len(c.Catalog))
	for i, k := range c.Catalog {
		var sym rune
		for _, r := range k.Symbol {
			sym = r
			break
		}
		kinds[i] = core.TileKind{
			ID:       k.ID,
			Glyph:    k.Glyph,
			Category: k.Category,
			Symbol:   sym,
			Color:    k.Color,
		}
	}
	return kinds
}

// NewCatalog builds the core catalog.
func (c FruitLinkConfig) NewCatalog() (*core.Catalog, error) {
	cat, err := core.NewCatalog(c.Kinds())
	if err != nil {
		return nil, fmt.Errorf("config: catalog: %w", err)
	}
	return cat, nil
}

// NewLevelTable builds the core level table with time limits scaled for preset.
func (c FruitLinkConfig) NewLevelTable(preset DifficultyPreset) (*core.LevelTable, error) {
	levels := make([]core.LevelConfig, len(c.Levels))
	for i, l := range c.Levels {
		levels[i] = core.LevelConfig{
			Level:     l.Level,
			Cols:      l.Cols,
			Rows:      l.Rows,
			TileTypes: l.TileTypes,
			TimeLimit: l.TimeLimit,
		}
	}
	step := c.Overflow.TimeStep
	if preset.Fixed() {
		step = 0
	}
	table, err := core.NewLevelTable(levels, step, c.Overflow.MinTime)
	if err != nil {
		return nil, fmt.Errorf("config: levels: %w", err)
	}
	if scale := preset.TimeScale(); scale != 1 {
		table = table.Scale(scale)
	}
	return table, nil
}

// Rules converts scoring, budgets and timing to core rules.
func (c FruitLinkConfig) Rules() core.Rules {
	return core.Rules{
		BaseScore:       c.Scoring.Base,
		ComboStep:       c.Scoring.ComboStep,
		ComboCap:        c.Scoring.ComboCap,
		LevelStep:       c.Scoring.LevelStep,
		TimeDivisor:     c.Scoring.TimeDivisor,
		TimeStep:        c.Scoring.TimeStep,
		ClearMultiplier: c.Scoring.ClearMultiplier,

		HintBase:        c.Budgets.HintBase,
		HintEvery:       c.Budgets.HintEvery,
		ShuffleBase:     c.Budgets.ShuffleBase,
		ShuffleEvery:    c.Budgets.ShuffleEvery,
		MinBudget:       c.Budgets.Minimum,
		MinShuffleTiles: c.Budgets.MinShuffleTiles,

		TickPeriod:  c.Timing.Tick,
		ComboWindow: c.Timing.ComboWindow,
	}
}
