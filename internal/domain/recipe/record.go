// Package recipe contains the core domain model for menu planning:
// the immutable recipe record, the breakfast classifier and the
// profile-driven scoring model.
package recipe

import (
	"math"

	"github.com/google/uuid"
)

// Cost estimation factors, in arbitrary monetary units. Protein-heavy foods
// (meat, fish, dairy) tend to be the expensive part of a basket, so protein
// carries the largest factor.
const (
	baseCost      = 0.50
	proteinFactor = 0.035
	fatFactor     = 0.015
	carbFactor    = 0.005
)

// Cost symbol thresholds.
const (
	cheapCostCeiling    = 3.5
	moderateCostCeiling = 10.0
)

// Record is one recipe used as an optimization unit. It is constructed once
// from a cleaned dataset row and must be treated as read-only afterwards:
// menus hold shared pointers, so a mutation would be visible in every menu
// that references the record.
//
// Name is not guaranteed unique across the dataset but is the de-facto
// identity key for menu membership. ID is a stable identifier assigned at
// ingestion time.
type Record struct {
	ID          uuid.UUID
	Name        string
	Ingredients []string
	Steps       []string
	Tags        []string

	// Nutrition facts as self-reported by the dataset. Calories are
	// guaranteed to be in (10, 2500) by the ingestion layer; the PDV
	// fields are percent-of-daily-value and arrive unclamped.
	Calories   float64
	ProteinPDV float64
	FatPDV     float64
	CarbsPDV   float64

	// Rating is the mean user rating in [0, 5], zero when the recipe has
	// no interactions.
	Rating float64
}

// NewRecord builds a record from cleaned dataset fields, assigning a fresh
// stable ID.
func NewRecord(name string, ingredients, steps, tags []string, calories, proteinPDV, fatPDV, carbsPDV, rating float64) *Record {
	return &Record{
		ID:          uuid.New(),
		Name:        name,
		Ingredients: ingredients,
		Steps:       steps,
		Tags:        tags,
		Calories:    calories,
		ProteinPDV:  proteinPDV,
		FatPDV:      fatPDV,
		CarbsPDV:    carbsPDV,
		Rating:      rating,
	}
}

// EstimatedCost approximates the recipe cost from its macronutrients:
//
//	cost = base + 0.035*protein + 0.015*fat + 0.005*carbs
//
// rounded to two decimals. For non-negative PDV inputs the result is never
// below the base cost.
func (r *Record) EstimatedCost() float64 {
	cost := baseCost +
		r.ProteinPDV*proteinFactor +
		r.FatPDV*fatFactor +
		r.CarbsPDV*carbFactor
	return math.Round(cost*100) / 100
}

// CostSymbol maps the estimated cost to a coarse display bucket.
func (r *Record) CostSymbol() string {
	switch cost := r.EstimatedCost(); {
	case cost <= cheapCostCeiling:
		return "$"
	case cost <= moderateCostCeiling:
		return "$$"
	default:
		return "$$$"
	}
}
