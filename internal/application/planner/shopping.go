package planner

import (
	"sort"

	"github.com/platewise/v1/internal/domain/menu"
	"github.com/platewise/v1/internal/ports/inbound"
)

// shoppingListLimit caps the number of aggregated lines returned; the
// remainder is reported as a count.
const shoppingListLimit = 30

// buildShoppingList aggregates ingredient occurrences across all 21 slots,
// most frequent first, ties broken alphabetically.
func buildShoppingList(m *menu.Menu) ([]inbound.ShoppingItemDTO, int) {
	counts := make(map[string]int)
	for _, r := range m.Records() {
		for _, ing := range r.Ingredients {
			counts[ing]++
		}
	}

	items := make([]inbound.ShoppingItemDTO, 0, len(counts))
	for ing, n := range counts {
		items = append(items, inbound.ShoppingItemDTO{Ingredient: ing, Count: n})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count != items[j].Count {
			return items[i].Count > items[j].Count
		}
		return items[i].Ingredient < items[j].Ingredient
	})

	remaining := 0
	if len(items) > shoppingListLimit {
		remaining = len(items) - shoppingListLimit
		items = items[:shoppingListLimit]
	}
	return items, remaining
}
