package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset names a time limit profile applied on top of the level
// table.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// presetScale is the time limit multiplier of each preset.
var presetScale = map[DifficultyPreset]float64{
	DifficultyEasy:   1.5,
	DifficultyNormal: 1,
	DifficultyHard:   0.75,
	DifficultyFixed:  1,
}

// ParsePreset validates a preset name, ignoring case. An empty name means
// normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(name)))
	if p == "" {
		return DifficultyNormal, nil
	}
	if _, ok := presetScale[p]; !ok {
		return "", fmt.Errorf("config: unknown difficulty %q (use easy, normal, hard or fixed)", name)
	}
	return p, nil
}

// TimeScale returns the time limit multiplier, 1 for unknown presets.
func (p DifficultyPreset) TimeScale() float64 {
	if s, ok := presetScale[p]; ok {
		return s
	}
	return 1
}

// Fixed reports whether levels past the table keep the last time limit
// instead of shrinking.
func (p DifficultyPreset) Fixed() bool {
	return p == DifficultyFixed
}
