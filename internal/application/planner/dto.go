package planner

import (
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/platewise/v1/internal/domain/menu"
	"github.com/platewise/v1/internal/domain/recipe"
	"github.com/platewise/v1/internal/ports/inbound"
)

func toSlotDTO(index int, r *recipe.Record) inbound.SlotDTO {
	return inbound.SlotDTO{
		Index:      index,
		Day:        menu.DayOf(index),
		Kind:       menu.KindOf(index).String(),
		RecipeID:   r.ID,
		Name:       r.Name,
		Calories:   r.Calories,
		ProteinPDV: r.ProteinPDV,
		Cost:       r.EstimatedCost(),
		CostSymbol: r.CostSymbol(),
		Rating:     r.Rating,
		Breakfast:  r.IsBreakfast(),
	}
}

func toStatsDTO(stats *menu.Stats) *inbound.StatsDTO {
	if stats == nil {
		return nil
	}
	return &inbound.StatsDTO{
		TotalScore:         stats.TotalScore,
		TotalCalories:      stats.TotalCalories,
		AvgDailyCalories:   stats.AvgDailyCalories,
		TotalProteinPDV:    stats.TotalProteinPDV,
		AvgDailyProteinPDV: stats.AvgDailyProteinPDV,
		Status:             stats.Status,
	}
}

func toMenuDTO(id uuid.UUID, profile recipe.Profile, m *menu.Menu, stats *menu.Stats) *inbound.MenuDTO {
	records := m.Records()
	slots := make([]inbound.SlotDTO, len(records))
	for i, r := range records {
		slots[i] = toSlotDTO(i, r)
	}
	return &inbound.MenuDTO{
		ID:      id,
		Profile: profile.String(),
		Slots:   slots,
		Stats:   toStatsDTO(stats),
	}
}

func toDetailDTO(index int, r *recipe.Record) *inbound.RecipeDetailDTO {
	stars := "N/A"
	if r.Rating > 0 {
		stars = strings.Repeat("★", int(math.Round(r.Rating)))
	}
	label := "MAIN DISH"
	if r.IsBreakfast() {
		label = "BREAKFAST"
	}
	return &inbound.RecipeDetailDTO{
		Slot:        toSlotDTO(index, r),
		Ingredients: r.Ingredients,
		Steps:       r.Steps,
		Tags:        r.Tags,
		FatPDV:      r.FatPDV,
		CarbsPDV:    r.CarbsPDV,
		RatingStars: stars,
		TypeLabel:   label,
	}
}
