package core

import "time"

// Rules holds the tunable constants of scoring, budgets and timing.
type Rules struct {
	// Scoring
	BaseScore       int // Points for any match
	ComboStep       int // Points per combo step beyond the first match
	ComboCap        int // Max combo steps rewarded
	LevelStep       int // Points per level number
	TimeDivisor     int // Seconds per time-bonus step
	TimeStep        int // Points per time-bonus step
	ClearMultiplier int // Level clear bonus = timeLeft * ClearMultiplier * level

	// Budgets
	HintBase        int // hints = max(MinBudget, HintBase - level/HintEvery)
	HintEvery       int
	ShuffleBase     int // shuffles = max(MinBudget, ShuffleBase - level/ShuffleEvery)
	ShuffleEvery    int
	MinBudget       int
	MinShuffleTiles int // Shuffle refused below this many remaining tiles

	// Timing
	TickPeriod  time.Duration // Countdown granularity
	ComboWindow time.Duration // Combo resets when no match happens within this window
}

// DefaultRules returns the standard rules.
func DefaultRules() Rules {
	return Rules{
		BaseScore:       100,
		ComboStep:       20,
		ComboCap:        10,
		LevelStep:       10,
		TimeDivisor:     10,
		TimeStep:        5,
		ClearMultiplier: 10,

		HintBase:        4,
		HintEvery:       3,
		ShuffleBase:     3,
		ShuffleEvery:    4,
		MinBudget:       1,
		MinShuffleTiles: 4,

		TickPeriod:  time.Second,
		ComboWindow: 2 * time.Second,
	}
}

// normalized fills zero divisors and periods with defaults.
func (r Rules) normalized() Rules {
	d := DefaultRules()
	if r.TimeDivisor <= 0 {
		r.TimeDivisor = d.TimeDivisor
	}
	if r.HintEvery <= 0 {
		r.HintEvery = d.HintEvery
	}
	if r.ShuffleEvery <= 0 {
		r.ShuffleEvery = d.ShuffleEvery
	}
	if r.TickPeriod <= 0 {
		r.TickPeriod = d.TickPeriod
	}
	if r.ComboWindow <= 0 {
		r.ComboWindow = d.ComboWindow
	}
	return r
}

// MatchScore returns the points for a match made at the given combo count
// (1 for the first match in a chain).
func (r Rules) MatchScore(combo, level, timeLeft int) int {
	steps := min(max(combo-1, 0), r.ComboCap)
	return r.BaseScore +
		steps*r.ComboStep +
		level*r.LevelStep +
		(timeLeft/r.TimeDivisor)*r.TimeStep
}

// ClearBonus returns the bonus for clearing a level with timeLeft seconds to spare.
func (r Rules) ClearBonus(timeLeft, level int) int {
	return timeLeft * r.ClearMultiplier * level
}

// Hints returns the hint budget for level.
func (r Rules) Hints(level int) int {
	return max(r.MinBudget, r.HintBase-level/r.HintEvery)
}

// Shuffles returns the shuffle budget for level.
func (r Rules) Shuffles(level int) int {
	return max(r.MinBudget, r.ShuffleBase-level/r.ShuffleEvery)
}
