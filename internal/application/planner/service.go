// Package planner provides the application layer for weekly menu planning:
// it admits candidates per profile, drives the heuristic and exact
// selectors, holds generated menus for substitution and derives shopping
// lists.
package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/platewise/v1/internal/domain/menu"
	"github.com/platewise/v1/internal/domain/recipe"
	"github.com/platewise/v1/internal/infrastructure/monitoring"
	"github.com/platewise/v1/internal/optimization"
	"github.com/platewise/v1/internal/ports/inbound"
	"github.com/platewise/v1/internal/ports/outbound"
	"github.com/platewise/v1/pkg/errors"
)

// Options carries the planner knobs resolved from configuration.
type Options struct {
	EliteSize       int
	SolverTimeLimit time.Duration
	DefaultCalMax   float64
	DefaultProtMin  float64
	PlanCacheTTL    time.Duration
}

// PlannerService implements the planning use cases over an in-memory
// candidate pool loaded once at startup.
type PlannerService struct {
	pool    []*recipe.Record
	byID    map[uuid.UUID]*recipe.Record
	cache   outbound.CacheRepository
	metrics *monitoring.Metrics
	opts    Options
	logger  *zap.Logger

	// Held menus are served to concurrent HTTP requests; substitution
	// reads and conditionally writes the same slot, so each held menu is
	// serialized with its own lock.
	mu    sync.Mutex
	menus map[uuid.UUID]*heldMenu
}

type heldMenu struct {
	mu      sync.Mutex
	profile recipe.Profile
	m       *menu.Menu
	stats   *menu.Stats
	subs    *optimization.SubstitutionEngine
}

// NewPlannerService creates the planner over a loaded candidate pool.
func NewPlannerService(
	pool []*recipe.Record,
	cache outbound.CacheRepository,
	metrics *monitoring.Metrics,
	opts Options,
	logger *zap.Logger,
) inbound.PlannerService {
	byID := make(map[uuid.UUID]*recipe.Record, len(pool))
	for _, r := range pool {
		byID[r.ID] = r
	}
	return &PlannerService{
		pool:    pool,
		byID:    byID,
		cache:   cache,
		metrics: metrics,
		opts:    opts,
		logger:  logger.Named("planner"),
		menus:   make(map[uuid.UUID]*heldMenu),
	}
}

// GenerateMenu builds a heuristic weekly plan. Results are intentionally
// not cached: the randomized top-tier draw exists to vary the week between
// calls.
func (s *PlannerService) GenerateMenu(ctx context.Context, cmd inbound.GenerateMenuCommand) (*inbound.MenuDTO, error) {
	admitted := admitCandidates(s.pool, cmd.Profile, s.logger)
	selector := optimization.NewSelector(admitted, s.opts.EliteSize, s.logger)

	start := time.Now()
	m, err := selector.GenerateStructuredMenu(cmd.Profile, newRNG(cmd.Seed))
	if err != nil {
		return nil, errors.NewPoolTooSmallError(err)
	}
	s.metrics.ObserveSelection(time.Since(start))
	s.metrics.CountMenu(cmd.Profile.String(), "heuristic")

	id := s.hold(cmd.Profile, admitted, m, nil)
	return toMenuDTO(id, cmd.Profile, m, nil), nil
}

// OptimizeMenu builds an exact weekly plan via the integer-program solver,
// falling back to the greedy selector when the program is infeasible or the
// time budget runs out without an incumbent. Solves are cached per
// (profile, calorie ceiling, protein floor) since they are deterministic
// and expensive; a cache hit still registers a fresh held menu.
func (s *PlannerService) OptimizeMenu(ctx context.Context, cmd inbound.OptimizeMenuCommand) (*inbound.MenuDTO, error) {
	if cmd.CalMaxDaily <= 0 {
		cmd.CalMaxDaily = s.opts.DefaultCalMax
	}
	if cmd.ProtMinDaily <= 0 {
		cmd.ProtMinDaily = s.opts.DefaultProtMin
	}

	admitted := admitCandidates(s.pool, cmd.Profile, s.logger)

	key := planCacheKey(cmd)
	if dto, ok := s.cachedPlan(ctx, key, cmd.Profile, admitted); ok {
		return dto, nil
	}

	solver := optimization.NewSolver(admitted, optimization.SolverConfig{
		TimeLimit: s.opts.SolverTimeLimit,
	}, s.logger)

	start := time.Now()
	m, stats, err := solver.OptimizeMenu(ctx, cmd.Profile, cmd.CalMaxDaily, cmd.ProtMinDaily)
	if err != nil {
		return nil, errors.NewPoolTooSmallError(err)
	}
	s.metrics.ObserveSolve(stats.Status, time.Since(start))
	s.metrics.CountMenu(cmd.Profile.String(), "milp")

	s.storePlan(ctx, key, m, stats)

	id := s.hold(cmd.Profile, admitted, m, &stats)
	return toMenuDTO(id, cmd.Profile, m, &stats), nil
}

// SubstituteSlot swaps one slot of a held menu for a same-type recipe not
// yet on the plan. A missing candidate is a normal outcome reported as
// Replaced=false.
func (s *PlannerService) SubstituteSlot(ctx context.Context, cmd inbound.SubstituteSlotCommand) (*inbound.SubstitutionResult, error) {
	held, err := s.lookup(cmd.MenuID)
	if err != nil {
		return nil, err
	}

	held.mu.Lock()
	defer held.mu.Unlock()

	old, err := held.m.At(cmd.Slot)
	if err != nil {
		return nil, errors.NewSlotOutOfRangeError(cmd.Slot)
	}

	replacement, ok := held.subs.Replace(old, held.m, newRNG(cmd.Seed))
	if !ok {
		s.metrics.CountSubstitution("no_candidate")
		s.logger.Info("no substitute available",
			zap.String("menu_id", cmd.MenuID.String()),
			zap.Int("slot", cmd.Slot),
			zap.String("recipe", old.Name),
		)
		return &inbound.SubstitutionResult{Replaced: false}, nil
	}

	if err := held.m.Set(cmd.Slot, replacement); err != nil {
		return nil, errors.NewSlotOutOfRangeError(cmd.Slot)
	}
	s.metrics.CountSubstitution("replaced")

	slot := toSlotDTO(cmd.Slot, replacement)
	return &inbound.SubstitutionResult{Replaced: true, Replacement: &slot}, nil
}

// GetMenu returns a held menu by ID.
func (s *PlannerService) GetMenu(ctx context.Context, menuID uuid.UUID) (*inbound.MenuDTO, error) {
	held, err := s.lookup(menuID)
	if err != nil {
		return nil, err
	}
	held.mu.Lock()
	defer held.mu.Unlock()
	return toMenuDTO(menuID, held.profile, held.m, held.stats), nil
}

// SlotDetails returns the full recipe card for one slot of a held menu.
func (s *PlannerService) SlotDetails(ctx context.Context, menuID uuid.UUID, slot int) (*inbound.RecipeDetailDTO, error) {
	held, err := s.lookup(menuID)
	if err != nil {
		return nil, err
	}
	held.mu.Lock()
	defer held.mu.Unlock()
	r, err := held.m.At(slot)
	if err != nil {
		return nil, errors.NewSlotOutOfRangeError(slot)
	}
	return toDetailDTO(slot, r), nil
}

// ShoppingList aggregates ingredients across a held menu.
func (s *PlannerService) ShoppingList(ctx context.Context, menuID uuid.UUID) (*inbound.ShoppingListDTO, error) {
	held, err := s.lookup(menuID)
	if err != nil {
		return nil, err
	}
	held.mu.Lock()
	defer held.mu.Unlock()
	items, remaining := buildShoppingList(held.m)
	return &inbound.ShoppingListDTO{
		MenuID:    menuID,
		Meals:     menu.Slots,
		Items:     items,
		Remaining: remaining,
	}, nil
}

// CompareSelectors contrasts one heuristic draw with the exact solve under
// the same profile and knobs.
func (s *PlannerService) CompareSelectors(ctx context.Context, cmd inbound.OptimizeMenuCommand) (*inbound.ComparisonDTO, error) {
	heuristic, err := s.GenerateMenu(ctx, inbound.GenerateMenuCommand{Profile: cmd.Profile})
	if err != nil {
		return nil, err
	}
	optimal, err := s.OptimizeMenu(ctx, cmd)
	if err != nil {
		return nil, err
	}

	heuristicScore := s.menuScore(heuristic.ID, cmd.Profile)
	optimalScore := s.menuScore(optimal.ID, cmd.Profile)

	improvement := 0.0
	if heuristicScore != 0 {
		improvement = (optimalScore - heuristicScore) / math.Abs(heuristicScore) * 100
	}
	return &inbound.ComparisonDTO{
		HeuristicScore:     heuristicScore,
		OptimalScore:       optimalScore,
		ImprovementPercent: improvement,
		HeuristicCalories:  sumCalories(heuristic),
		OptimalCalories:    sumCalories(optimal),
	}, nil
}

func (s *PlannerService) menuScore(menuID uuid.UUID, profile recipe.Profile) float64 {
	held, err := s.lookup(menuID)
	if err != nil {
		return 0
	}
	held.mu.Lock()
	defer held.mu.Unlock()
	var total float64
	for _, r := range held.m.Records() {
		total += recipe.Score(r, profile)
	}
	return total
}

func sumCalories(dto *inbound.MenuDTO) float64 {
	var total float64
	for _, slot := range dto.Slots {
		total += slot.Calories
	}
	return total
}

// hold registers a menu for later substitution and query calls.
func (s *PlannerService) hold(profile recipe.Profile, admitted []*recipe.Record, m *menu.Menu, stats *menu.Stats) uuid.UUID {
	id := uuid.New()
	s.mu.Lock()
	s.menus[id] = &heldMenu{
		profile: profile,
		m:       m,
		stats:   stats,
		subs:    optimization.NewSubstitutionEngine(admitted),
	}
	s.mu.Unlock()
	return id
}

func (s *PlannerService) lookup(menuID uuid.UUID) (*heldMenu, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	held, ok := s.menus[menuID]
	if !ok {
		return nil, errors.NewMenuNotFoundError(menuID.String())
	}
	return held, nil
}

// cachedPlan is the serialized form of a solved plan: slot record IDs plus
// the solve stats. Records are rehydrated from the in-memory pool on hit.
type cachedPlan struct {
	SlotIDs []uuid.UUID `json:"slot_ids"`
	Stats   menu.Stats  `json:"stats"`
}

func planCacheKey(cmd inbound.OptimizeMenuCommand) string {
	return fmt.Sprintf("plan:v1:%s:%.0f:%.0f", cmd.Profile, cmd.CalMaxDaily, cmd.ProtMinDaily)
}

func (s *PlannerService) cachedPlan(ctx context.Context, key string, profile recipe.Profile, admitted []*recipe.Record) (*inbound.MenuDTO, bool) {
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, false
	}
	var plan cachedPlan
	if err := json.Unmarshal(raw, &plan); err != nil || len(plan.SlotIDs) != menu.Slots {
		return nil, false
	}

	breakfastEnd := menu.BreakfastQuota
	var breakfasts, mains []*recipe.Record
	for i, id := range plan.SlotIDs {
		r, ok := s.byID[id]
		if !ok {
			return nil, false
		}
		if i < breakfastEnd {
			breakfasts = append(breakfasts, r)
		} else {
			mains = append(mains, r)
		}
	}
	m, err := menu.Build(breakfasts, mains)
	if err != nil {
		return nil, false
	}

	stats := plan.Stats
	id := s.hold(profile, admitted, m, &stats)
	s.logger.Debug("plan served from cache", zap.String("key", key))
	return toMenuDTO(id, profile, m, &stats), true
}

func (s *PlannerService) storePlan(ctx context.Context, key string, m *menu.Menu, stats menu.Stats) {
	records := m.Records()
	plan := cachedPlan{SlotIDs: make([]uuid.UUID, 0, len(records)), Stats: stats}

	// Store breakfast slots first so rehydration can rebuild the split.
	for i, r := range records {
		if menu.KindOf(i) == menu.SlotBreakfast {
			plan.SlotIDs = append(plan.SlotIDs, r.ID)
		}
	}
	for i, r := range records {
		if menu.KindOf(i) != menu.SlotBreakfast {
			plan.SlotIDs = append(plan.SlotIDs, r.ID)
		}
	}

	raw, err := json.Marshal(plan)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.opts.PlanCacheTTL); err != nil {
		s.logger.Debug("plan cache write failed", zap.Error(err))
	}
}

// newRNG builds the random source for selection and substitution. A
// non-zero seed pins the sequence, which tests rely on.
func newRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
