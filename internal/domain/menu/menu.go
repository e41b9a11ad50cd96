// Package menu defines the weekly menu aggregate: a fixed 21-slot sequence
// of recipe references plus the plan statistics reported by the selectors.
package menu

import (
	"fmt"

	"github.com/platewise/v1/internal/domain/recipe"
)

// Structural constants of a weekly plan.
const (
	Days           = 7
	MealsPerDay    = 3
	Slots          = Days * MealsPerDay
	BreakfastQuota = Days
	MainQuota      = Days * 2
)

// SlotKind tags a slot position as breakfast, lunch or dinner.
type SlotKind int

const (
	SlotBreakfast SlotKind = iota
	SlotLunch
	SlotDinner
)

func (k SlotKind) String() string {
	switch k {
	case SlotBreakfast:
		return "breakfast"
	case SlotLunch:
		return "lunch"
	case SlotDinner:
		return "dinner"
	}
	return "unknown"
}

// KindOf returns the slot kind for a slot index: index%3 maps to
// breakfast/lunch/dinner.
func KindOf(slot int) SlotKind { return SlotKind(slot % MealsPerDay) }

// DayOf returns the zero-based day for a slot index.
func DayOf(slot int) int { return slot / MealsPerDay }

// Menu is an ordered sequence of exactly 21 shared recipe references.
// Slots 0,3,...,18 are breakfast slots; the rest alternate lunch/dinner.
// A menu is mutated in place by substitution and never resized.
type Menu struct {
	slots [Slots]*recipe.Record
}

// Build assembles a menu from 7 breakfast-slot records and 14 main-slot
// records, interleaving them day by day. It fails only on a structural
// shortfall, which callers surface as an input-shortfall condition.
func Build(breakfasts, mains []*recipe.Record) (*Menu, error) {
	if len(breakfasts) < BreakfastQuota || len(mains) < MainQuota {
		return nil, fmt.Errorf("menu requires %d breakfasts and %d mains, have %d and %d",
			BreakfastQuota, MainQuota, len(breakfasts), len(mains))
	}
	var m Menu
	for day := 0; day < Days; day++ {
		m.slots[day*MealsPerDay] = breakfasts[day]
		m.slots[day*MealsPerDay+1] = mains[day*2]
		m.slots[day*MealsPerDay+2] = mains[day*2+1]
	}
	return &m, nil
}

// At returns the record in the given slot.
func (m *Menu) At(slot int) (*recipe.Record, error) {
	if slot < 0 || slot >= Slots {
		return nil, fmt.Errorf("slot %d out of range [0,%d)", slot, Slots)
	}
	return m.slots[slot], nil
}

// Set writes a record into a slot. Callers use it after substitution and are
// responsible for the replacement matching the slot's classification, which
// the substitution engine guarantees by construction.
func (m *Menu) Set(slot int, r *recipe.Record) error {
	if slot < 0 || slot >= Slots {
		return fmt.Errorf("slot %d out of range [0,%d)", slot, Slots)
	}
	m.slots[slot] = r
	return nil
}

// Records returns the 21 slot references in order.
func (m *Menu) Records() []*recipe.Record {
	out := make([]*recipe.Record, Slots)
	copy(out, m.slots[:])
	return out
}

// Names returns the set of recipe names currently held by the menu. Used to
// keep week-wide uniqueness during substitution.
func (m *Menu) Names() map[string]struct{} {
	names := make(map[string]struct{}, Slots)
	for _, r := range m.slots {
		if r != nil {
			names[r.Name] = struct{}{}
		}
	}
	return names
}

// TotalCalories sums calories across all slots.
func (m *Menu) TotalCalories() float64 {
	var total float64
	for _, r := range m.slots {
		if r != nil {
			total += r.Calories
		}
	}
	return total
}

// TotalProteinPDV sums protein percent-of-daily-value across all slots.
func (m *Menu) TotalProteinPDV() float64 {
	var total float64
	for _, r := range m.slots {
		if r != nil {
			total += r.ProteinPDV
		}
	}
	return total
}

// Stats reports how a solved or selected plan came out.
type Stats struct {
	TotalScore         float64
	TotalCalories      float64
	AvgDailyCalories   float64
	TotalProteinPDV    float64
	AvgDailyProteinPDV float64
	Status             string
	NodesExplored      int64
}

// NewStats derives the nutritional aggregates of a menu.
func NewStats(m *Menu, totalScore float64, status string) Stats {
	cal := m.TotalCalories()
	prot := m.TotalProteinPDV()
	return Stats{
		TotalScore:         totalScore,
		TotalCalories:      cal,
		AvgDailyCalories:   cal / Days,
		TotalProteinPDV:    prot,
		AvgDailyProteinPDV: prot / Days,
		Status:             status,
	}
}
