package optimization

import (
	"math/rand"

	"github.com/platewise/v1/internal/domain/menu"
	"github.com/platewise/v1/internal/domain/recipe"
)

// SubstitutionEngine finds drop-in replacements for individual menu slots.
type SubstitutionEngine struct {
	pool []*recipe.Record
}

// NewSubstitutionEngine creates an engine over a shared candidate pool.
func NewSubstitutionEngine(pool []*recipe.Record) *SubstitutionEngine {
	return &SubstitutionEngine{pool: pool}
}

// Replace picks a replacement for old: same breakfast/main classification,
// name not already on the menu, chosen uniformly at random. The second
// return is false when no candidate qualifies, a normal outcome the caller
// must handle. The menu itself is never mutated here; the caller writes the
// replacement into the slot, which preserves the slot-type invariant by
// construction.
func (e *SubstitutionEngine) Replace(old *recipe.Record, m *menu.Menu, rng *rand.Rand) (*recipe.Record, bool) {
	targetType := old.IsBreakfast()
	used := m.Names()

	var candidates []*recipe.Record
	for _, r := range e.pool {
		if r.IsBreakfast() != targetType {
			continue
		}
		if _, ok := used[r.Name]; ok {
			continue
		}
		candidates = append(candidates, r)
	}
	if len(candidates) == 0 {
		return nil, false
	}
	return candidates[rng.Intn(len(candidates))], true
}
