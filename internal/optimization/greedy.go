package optimization

import (
	"sort"

	"go.uber.org/zap"

	"github.com/platewise/v1/internal/domain/menu"
	"github.com/platewise/v1/internal/domain/recipe"
)

// GreedyOptimize is the degraded-mode selector: candidates sorted by score
// descending, quotas filled first-fit. Structural counts are honored;
// calorie and protein constraints are knowingly ignored. Used only when the
// integer program is infeasible or ran out of time without an incumbent.
func (s *Solver) GreedyOptimize(profile recipe.Profile) (*menu.Menu, menu.Stats, error) {
	cands := make([]candidate, 0, len(s.pool))
	for _, r := range s.pool {
		cands = append(cands, candidate{
			rec:       r,
			score:     recipe.Score(r, profile),
			breakfast: r.IsBreakfast(),
		})
	}
	sortCandidatesByScore(cands)

	var breakfasts, mains []*recipe.Record
	used := make(map[string]struct{}, menu.Slots)
	var totalScore float64
	for _, c := range cands {
		if _, ok := used[c.rec.Name]; ok {
			continue
		}
		switch {
		case c.breakfast && len(breakfasts) < menu.BreakfastQuota:
			breakfasts = append(breakfasts, c.rec)
		case !c.breakfast && len(mains) < menu.MainQuota:
			mains = append(mains, c.rec)
		default:
			continue
		}
		used[c.rec.Name] = struct{}{}
		totalScore += c.score
		if len(breakfasts) == menu.BreakfastQuota && len(mains) == menu.MainQuota {
			break
		}
	}

	// Breakfast-poor pool: backfill breakfast slots with the next unused
	// mains in score order.
	if len(breakfasts) < menu.BreakfastQuota {
		for _, c := range cands {
			if len(breakfasts) == menu.BreakfastQuota {
				break
			}
			if c.breakfast {
				continue
			}
			if _, ok := used[c.rec.Name]; ok {
				continue
			}
			used[c.rec.Name] = struct{}{}
			breakfasts = append(breakfasts, c.rec)
			totalScore += c.score
		}
	}

	m, err := menu.Build(breakfasts, mains)
	if err != nil {
		return nil, menu.Stats{}, err
	}

	stats := menu.NewStats(m, totalScore, StatusFallback)
	s.logger.Info("greedy fallback plan built",
		zap.String("profile", profile.String()),
		zap.Float64("total_score", stats.TotalScore),
		zap.Float64("avg_daily_calories", stats.AvgDailyCalories),
	)
	return m, stats, nil
}

// sortCandidatesByScore orders candidates score-descending. The stable sort
// keeps pool order on ties, which makes solve and fallback results
// reproducible for a fixed pool.
func sortCandidatesByScore(cands []candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].score > cands[j].score
	})
}
