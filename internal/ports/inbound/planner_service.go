// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the operations the planner exposes to HTTP handlers and the CLI
package inbound

import (
	"context"

	"github.com/google/uuid"

	"github.com/platewise/v1/internal/domain/recipe"
)

// PlannerService defines the menu-planning use cases
type PlannerService interface {
	// Commands - operations that produce or mutate a weekly plan
	GenerateMenu(ctx context.Context, cmd GenerateMenuCommand) (*MenuDTO, error)
	OptimizeMenu(ctx context.Context, cmd OptimizeMenuCommand) (*MenuDTO, error)
	SubstituteSlot(ctx context.Context, cmd SubstituteSlotCommand) (*SubstitutionResult, error)

	// Queries - operations that read an existing plan
	GetMenu(ctx context.Context, menuID uuid.UUID) (*MenuDTO, error)
	SlotDetails(ctx context.Context, menuID uuid.UUID, slot int) (*RecipeDetailDTO, error)
	ShoppingList(ctx context.Context, menuID uuid.UUID) (*ShoppingListDTO, error)
	CompareSelectors(ctx context.Context, cmd OptimizeMenuCommand) (*ComparisonDTO, error)
}

// GenerateMenuCommand requests a heuristic (randomized top-tier) weekly plan
type GenerateMenuCommand struct {
	Profile recipe.Profile
	// Seed pins the random source when non-zero; zero means time-seeded
	Seed int64
}

// OptimizeMenuCommand requests an exact integer-program plan
type OptimizeMenuCommand struct {
	Profile      recipe.Profile
	CalMaxDaily  float64
	ProtMinDaily float64
}

// SubstituteSlotCommand swaps one slot of a held menu
type SubstituteSlotCommand struct {
	MenuID uuid.UUID
	Slot   int
	Seed   int64
}

// SubstitutionResult reports the outcome of a slot substitution.
// Replacement is nil when no qualifying candidate exists, which is a normal
// outcome, not an error.
type SubstitutionResult struct {
	Replaced    bool
	Replacement *SlotDTO
}

// MenuDTO is the API representation of a weekly plan
type MenuDTO struct {
	ID      uuid.UUID `json:"id"`
	Profile string    `json:"profile"`
	Slots   []SlotDTO `json:"slots"`
	Stats   *StatsDTO `json:"stats,omitempty"`
}

// SlotDTO is one of the 21 menu positions
type SlotDTO struct {
	Index      int       `json:"index"`
	Day        int       `json:"day"`
	Kind       string    `json:"kind"`
	RecipeID   uuid.UUID `json:"recipe_id"`
	Name       string    `json:"name"`
	Calories   float64   `json:"calories"`
	ProteinPDV float64   `json:"protein_pdv"`
	Cost       float64   `json:"estimated_cost"`
	CostSymbol string    `json:"cost_symbol"`
	Rating     float64   `json:"rating"`
	Breakfast  bool      `json:"is_breakfast"`
}

// StatsDTO reports plan-level optimization statistics
type StatsDTO struct {
	TotalScore         float64 `json:"total_score"`
	TotalCalories      float64 `json:"total_calories"`
	AvgDailyCalories   float64 `json:"avg_daily_calories"`
	TotalProteinPDV    float64 `json:"total_protein_pdv"`
	AvgDailyProteinPDV float64 `json:"avg_daily_protein_pdv"`
	Status             string  `json:"status"`
}

// RecipeDetailDTO is the full recipe card for one slot
type RecipeDetailDTO struct {
	Slot        SlotDTO  `json:"slot"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	Tags        []string `json:"tags"`
	FatPDV      float64  `json:"fat_pdv"`
	CarbsPDV    float64  `json:"carbs_pdv"`
	RatingStars string   `json:"rating_stars"`
	TypeLabel   string   `json:"type_label"`
}

// ShoppingListDTO aggregates ingredients across the plan
type ShoppingListDTO struct {
	MenuID    uuid.UUID         `json:"menu_id"`
	Meals     int               `json:"meals"`
	Items     []ShoppingItemDTO `json:"items"`
	Remaining int               `json:"remaining_items"`
}

// ShoppingItemDTO is one aggregated ingredient line
type ShoppingItemDTO struct {
	Ingredient string `json:"ingredient"`
	Count      int    `json:"count"`
}

// ComparisonDTO contrasts the heuristic and exact selectors for a profile
type ComparisonDTO struct {
	HeuristicScore     float64 `json:"heuristic_score"`
	OptimalScore       float64 `json:"optimal_score"`
	ImprovementPercent float64 `json:"improvement_percent"`
	HeuristicCalories  float64 `json:"heuristic_calories"`
	OptimalCalories    float64 `json:"optimal_calories"`
}
