// Package optimization implements menu selection over a candidate pool:
// a randomized top-tier heuristic selector, an exact branch-and-bound
// integer-program solver with a greedy degraded mode, and slot
// substitution.
package optimization

import (
	"math/rand"
	"sort"

	"go.uber.org/zap"

	"github.com/platewise/v1/internal/domain/menu"
	"github.com/platewise/v1/internal/domain/recipe"
)

// DefaultEliteSize is the size of the top-tier pool randomized selection
// draws from. Drawing from a top tier instead of taking a strict top-n
// trades optimality for week-to-week variety.
const DefaultEliteSize = 100

// Selector is the heuristic menu selector.
type Selector struct {
	pool      []*recipe.Record
	eliteSize int
	logger    *zap.Logger
}

// NewSelector creates a selector over a shared candidate pool. eliteSize <= 0
// falls back to DefaultEliteSize.
func NewSelector(pool []*recipe.Record, eliteSize int, logger *zap.Logger) *Selector {
	if eliteSize <= 0 {
		eliteSize = DefaultEliteSize
	}
	return &Selector{
		pool:      pool,
		eliteSize: eliteSize,
		logger:    logger.Named("selector"),
	}
}

// SelectBest returns n records drawn uniformly at random, without
// replacement, from the top-scored tier of the pool. Zero-calorie records
// are dropped first as a guard against malformed rows. Ties on score are
// broken in favor of fewer preparation steps. When fewer than n eligible
// records exist the whole tier is returned and the caller handles the
// shortfall.
func (s *Selector) SelectBest(pool []*recipe.Record, profile recipe.Profile, n int, rng *rand.Rand) []*recipe.Record {
	type scored struct {
		rec   *recipe.Record
		score float64
	}
	candidates := make([]scored, 0, len(pool))
	for _, r := range pool {
		if r.Calories == 0 {
			continue
		}
		candidates = append(candidates, scored{rec: r, score: recipe.Score(r, profile)})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return len(candidates[i].rec.Steps) < len(candidates[j].rec.Steps)
	})

	tier := candidates
	if len(tier) > s.eliteSize {
		tier = tier[:s.eliteSize]
	}

	if len(tier) <= n {
		out := make([]*recipe.Record, len(tier))
		for i, c := range tier {
			out[i] = c.rec
		}
		return out
	}

	out := make([]*recipe.Record, 0, n)
	for _, idx := range rng.Perm(len(tier))[:n] {
		out = append(out, tier[idx].rec)
	}
	return out
}

// GenerateStructuredMenu builds a full 21-slot week for the profile:
// 7 top-tier breakfasts and 14 top-tier mains, interleaved per day. When the
// pool is breakfast-poor the shortfall is padded with records sampled
// uniformly from the main pool, so a menu always has 21 filled slots; those
// padded slots knowingly hold non-breakfast records.
func (s *Selector) GenerateStructuredMenu(profile recipe.Profile, rng *rand.Rand) (*menu.Menu, error) {
	var breakfastPool, mainPool []*recipe.Record
	for _, r := range s.pool {
		if r.IsBreakfast() {
			breakfastPool = append(breakfastPool, r)
		} else {
			mainPool = append(mainPool, r)
		}
	}
	s.logger.Info("structuring week",
		zap.String("profile", profile.String()),
		zap.Int("breakfasts_available", len(breakfastPool)),
		zap.Int("mains_available", len(mainPool)),
	)

	breakfasts := s.SelectBest(breakfastPool, profile, menu.BreakfastQuota, rng)
	mains := s.SelectBest(mainPool, profile, menu.MainQuota, rng)

	if len(breakfasts) < menu.BreakfastQuota {
		breakfasts = append(breakfasts, s.padFromMains(mainPool, breakfasts, mains, rng)...)
	}

	return menu.Build(breakfasts, mains)
}

// padFromMains draws main-pool records at random to fill empty breakfast
// slots, skipping names already placed so the week stays duplicate-free.
func (s *Selector) padFromMains(mainPool, breakfasts, mains []*recipe.Record, rng *rand.Rand) []*recipe.Record {
	used := make(map[string]struct{}, len(breakfasts)+len(mains))
	for _, r := range breakfasts {
		used[r.Name] = struct{}{}
	}
	for _, r := range mains {
		used[r.Name] = struct{}{}
	}

	needed := menu.BreakfastQuota - len(breakfasts)
	pad := make([]*recipe.Record, 0, needed)
	for _, idx := range rng.Perm(len(mainPool)) {
		if len(pad) == needed {
			break
		}
		r := mainPool[idx]
		if _, ok := used[r.Name]; ok {
			continue
		}
		used[r.Name] = struct{}{}
		pad = append(pad, r)
	}
	if len(pad) > 0 {
		s.logger.Warn("breakfast pool short, padding with mains", zap.Int("padded", len(pad)))
	}
	return pad
}
