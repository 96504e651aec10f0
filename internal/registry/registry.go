// Package registry keeps the playable FruitLink variants. Variants register
// themselves from init functions so front ends can list and build them by ID.
package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/vovakirdan/fruit-link/internal/core"
)

// ErrUnknownVariant is returned by Create for an unregistered ID.
var ErrUnknownVariant = errors.New("registry: unknown variant")

// Game is one playable instance driven by a front end at a fixed frame rate.
// Implementations hold no terminal or network state.
type Game interface {
	ID() string
	Title() string

	// Reset starts a new game. It is called before the first Step and
	// again on every restart.
	Reset(cfg core.RuntimeConfig)

	// Step advances one frame with the actions pressed since the last one.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a cleared screen.
	Render(dst *core.Screen)

	State() core.GameState
}

// RankAware games show the ranking position of the finished run.
// The rank is "-" when the run did not place.
type RankAware interface {
	SetRank(rank string)
}

// Variant describes a registered game flavour.
type Variant struct {
	ID         string
	Title      string
	Difficulty string // Fixed preset name; empty follows --difficulty
	New        func() Game
}

var (
	mu       sync.RWMutex
	variants []Variant
	byID     = make(map[string]int)
)

// Register adds a variant. It panics on a duplicate or incomplete entry.
func Register(v Variant) {
	if v.ID == "" || v.New == nil {
		panic("registry: variant needs an ID and a constructor")
	}

	mu.Lock()
	defer mu.Unlock()

	if _, dup := byID[v.ID]; dup {
		panic(fmt.Sprintf("registry: variant %q already registered", v.ID))
	}
	byID[v.ID] = len(variants)
	variants = append(variants, v)
}

// List returns the variants in registration order.
func List() []Variant {
	mu.RLock()
	defer mu.RUnlock()

	return append([]Variant(nil), variants...)
}

// Lookup finds a variant by ID.
func Lookup(id string) (Variant, bool) {
	mu.RLock()
	defer mu.RUnlock()

	i, ok := byID[id]
	if !ok {
		return Variant{}, false
	}
	return variants[i], true
}

// Create builds a fresh game of the given variant.
func Create(id string) (Game, error) {
	v, ok := Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownVariant, id)
	}
	return v.New(), nil
}
