package optimization

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/platewise/v1/internal/domain/menu"
	"github.com/platewise/v1/internal/domain/recipe"
)

// Solver status strings reported in plan stats.
const (
	StatusOptimal   = "Optimal"
	StatusTimeLimit = "Time limit"
	StatusFallback  = "Fallback (greedy)"
)

// DefaultTimeLimit bounds the branch-and-bound search wall clock.
const DefaultTimeLimit = 60 * time.Second

// SolverConfig tunes the integer-program solve.
type SolverConfig struct {
	TimeLimit time.Duration
}

// Solver selects the weekly menu by exact integer programming.
//
// Formulation, one binary variable per candidate:
//
//	max  Σ x_i·score_i
//	s.t. Σ x_i·cal_i  ≤ 7·calMaxDaily
//	     Σ x_i·prot_i ≥ 7·protMinDaily
//	     Σ x_i (breakfast candidates) = 7
//	     Σ x_i (main candidates)      = 14
//
// This is a 0/1 knapsack variant with exact cardinality, NP-complete in
// general, solved by depth-first branch-and-bound within a wall-clock
// budget. An incumbent found before the budget expires is returned as-is;
// no incumbent at all is treated like infeasibility and routed to the
// greedy degraded mode.
type Solver struct {
	pool   []*recipe.Record
	cfg    SolverConfig
	logger *zap.Logger
}

// NewSolver creates a solver over a shared candidate pool.
func NewSolver(pool []*recipe.Record, cfg SolverConfig, logger *zap.Logger) *Solver {
	if cfg.TimeLimit <= 0 {
		cfg.TimeLimit = DefaultTimeLimit
	}
	return &Solver{pool: pool, cfg: cfg, logger: logger.Named("milp")}
}

// candidate is one decision variable of the integer program.
type candidate struct {
	rec       *recipe.Record
	score     float64
	cal       float64
	prot      float64
	breakfast bool
}

// OptimizeMenu solves for the best weekly menu under the profile's scoring
// and the two nutritional knobs. Infeasibility and expiry of the time budget
// without an integral solution are recoverable: both fall back to
// GreedyOptimize and are never surfaced as an error.
func (s *Solver) OptimizeMenu(ctx context.Context, profile recipe.Profile, calMaxDaily, protMinDaily float64) (*menu.Menu, menu.Stats, error) {
	s.logger.Info("solving weekly plan",
		zap.String("profile", profile.String()),
		zap.Float64("cal_max_daily", calMaxDaily),
		zap.Float64("prot_min_daily", protMinDaily),
		zap.Int("candidates", len(s.pool)),
	)

	search := newSearch(s.pool, profile, calMaxDaily*menu.Days, protMinDaily*menu.Days)
	search.run(ctx, s.cfg.TimeLimit)

	if !search.found {
		s.logger.Warn("integer program has no integral solution, using greedy fallback",
			zap.Bool("time_limit_hit", search.aborted),
			zap.Int64("nodes", search.nodes),
		)
		return s.GreedyOptimize(profile)
	}

	selected := make([]*recipe.Record, len(search.bestPick))
	for i, pos := range search.bestPick {
		selected[i] = search.cands[pos].rec
	}

	m, err := s.assemble(selected)
	if err != nil {
		s.logger.Warn("could not assemble solved selection, using greedy fallback", zap.Error(err))
		return s.GreedyOptimize(profile)
	}

	status := StatusOptimal
	if search.aborted {
		status = StatusTimeLimit
	}
	stats := menu.NewStats(m, search.bestScore, status)
	stats.NodesExplored = search.nodes

	s.logger.Info("plan solved",
		zap.String("status", status),
		zap.Float64("total_score", stats.TotalScore),
		zap.Float64("avg_daily_calories", stats.AvgDailyCalories),
		zap.Float64("avg_daily_protein_pdv", stats.AvgDailyProteinPDV),
		zap.Int64("nodes", stats.NodesExplored),
	)
	return m, stats, nil
}

// assemble splits the solved selection into breakfast and main slots.
// Breakfast slots fill in solver-return order; mains pair into lunch/dinner
// per day in the same order. The cardinality constraints make the split
// exact, but when a split comes back short the surplus of the other side
// backfills before giving up.
func (s *Solver) assemble(selected []*recipe.Record) (*menu.Menu, error) {
	var breakfasts, mains []*recipe.Record
	for _, r := range selected {
		if r.IsBreakfast() {
			breakfasts = append(breakfasts, r)
		} else {
			mains = append(mains, r)
		}
	}
	for len(breakfasts) < menu.BreakfastQuota && len(mains) > menu.MainQuota {
		breakfasts = append(breakfasts, mains[len(mains)-1])
		mains = mains[:len(mains)-1]
	}
	return menu.Build(breakfasts, mains)
}

// bbSearch carries the branch-and-bound state. Candidates are ordered by
// score descending so the include-first depth-first walk reaches strong
// incumbents early; the order also makes the cardinality-relaxed upper
// bound a prefix-sum lookup.
type bbSearch struct {
	cands []candidate

	// bBefore[i] counts breakfast candidates in positions [0,i); bPrefix[k]
	// sums the scores of the k best breakfast candidates. Same for mains.
	bBefore, mBefore []int
	bPrefix, mPrefix []float64

	// maxProtSuffix[i] is the largest protein value in positions [i,n).
	maxProtSuffix []float64

	calBudget, protFloor float64

	deadline time.Time
	ctx      context.Context
	nodes    int64
	aborted  bool

	found     bool
	bestScore float64
	bestPick  []int
	pick      []int
}

func newSearch(pool []*recipe.Record, profile recipe.Profile, calBudget, protFloor float64) *bbSearch {
	cands := make([]candidate, 0, len(pool))
	for _, r := range pool {
		cands = append(cands, candidate{
			rec:       r,
			score:     recipe.Score(r, profile),
			cal:       r.Calories,
			prot:      r.ProteinPDV,
			breakfast: r.IsBreakfast(),
		})
	}
	sortCandidatesByScore(cands)

	n := len(cands)
	search := &bbSearch{
		cands:         cands,
		bBefore:       make([]int, n+1),
		mBefore:       make([]int, n+1),
		bPrefix:       []float64{0},
		mPrefix:       []float64{0},
		maxProtSuffix: make([]float64, n+1),
		calBudget:     calBudget,
		protFloor:     protFloor,
	}
	for i, c := range cands {
		search.bBefore[i+1] = search.bBefore[i]
		search.mBefore[i+1] = search.mBefore[i]
		if c.breakfast {
			search.bBefore[i+1]++
			search.bPrefix = append(search.bPrefix, search.bPrefix[len(search.bPrefix)-1]+c.score)
		} else {
			search.mBefore[i+1]++
			search.mPrefix = append(search.mPrefix, search.mPrefix[len(search.mPrefix)-1]+c.score)
		}
	}
	search.maxProtSuffix[n] = 0
	for i := n - 1; i >= 0; i-- {
		search.maxProtSuffix[i] = search.maxProtSuffix[i+1]
		if cands[i].prot > search.maxProtSuffix[i] {
			search.maxProtSuffix[i] = cands[i].prot
		}
	}
	return search
}

func (s *bbSearch) run(ctx context.Context, limit time.Duration) {
	s.ctx = ctx
	s.deadline = time.Now().Add(limit)
	s.dfs(0, menu.BreakfastQuota, menu.MainQuota, 0, 0, 0)
}

func (s *bbSearch) dfs(i, needB, needM int, cal, prot, score float64) {
	if s.aborted {
		return
	}
	s.nodes++
	if s.nodes&0x0fff == 0 {
		if time.Now().After(s.deadline) || s.ctx.Err() != nil {
			s.aborted = true
			return
		}
	}

	if needB == 0 && needM == 0 {
		if prot >= s.protFloor && (!s.found || score > s.bestScore) {
			s.found = true
			s.bestScore = score
			s.bestPick = append(s.bestPick[:0], s.pick...)
		}
		return
	}
	if i == len(s.cands) {
		return
	}

	// Not enough candidates of either type left.
	totalB := s.bBefore[len(s.cands)]
	totalM := s.mBefore[len(s.cands)]
	if totalB-s.bBefore[i] < needB || totalM-s.mBefore[i] < needM {
		return
	}

	// Cardinality-relaxed bound: the best remaining needB breakfasts plus
	// the best remaining needM mains, nutritional constraints dropped.
	bound := score +
		s.bPrefix[s.bBefore[i]+needB] - s.bPrefix[s.bBefore[i]] +
		s.mPrefix[s.mBefore[i]+needM] - s.mPrefix[s.mBefore[i]]
	if s.found && bound <= s.bestScore {
		return
	}

	// Protein floor unreachable even if every remaining pick carried the
	// best protein value left.
	if prot+float64(needB+needM)*s.maxProtSuffix[i] < s.protFloor {
		return
	}

	c := s.cands[i]
	canTake := (c.breakfast && needB > 0) || (!c.breakfast && needM > 0)
	if canTake && cal+c.cal <= s.calBudget {
		s.pick = append(s.pick, i)
		if c.breakfast {
			s.dfs(i+1, needB-1, needM, cal+c.cal, prot+c.prot, score+c.score)
		} else {
			s.dfs(i+1, needB, needM-1, cal+c.cal, prot+c.prot, score+c.score)
		}
		s.pick = s.pick[:len(s.pick)-1]
	}
	s.dfs(i+1, needB, needM, cal, prot, score)
}
