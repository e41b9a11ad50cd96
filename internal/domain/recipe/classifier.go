package recipe

import "strings"

// Keyword lists curated against the Food.com tag vocabulary. Exclusions are
// checked before inclusions so that a record carrying both (a "bacon and egg
// sandwich") never classifies as breakfast.

var breakfastInclusions = []string{
	"breakfast", "brunch", "pancakes", "waffles", "omelet", "scramble",
	"cereal", "morning", "yogurt", "oatmeal", "granola", "porridge",
	"toast", "muffins", "crepes", "smoothie", "coffee", "latte", "egg",
}

var breakfastExclusions = []string{
	// Meat and fish
	"chicken", "poultry", "beef", "steak", "pork", "lamb", "sheep", "meat",
	"fish", "salmon", "tuna", "shrimp", "seafood", "cod", "tilapia", "halibut", "crab",
	"burger", "wings", "thighs", "roast", "brisket", "ribs", "venison", "duck",

	// Main dishes
	"dinner", "supper", "lunch", "main-dish", "soup", "stew", "chili", "curry",
	"pasta", "pizza", "lasagna", "spaghetti", "noodle", "ravioli", "risotto",
	"casserole", "taco", "burrito", "enchilada", "quesadilla", "sandwich",

	// Savory staples
	"onion", "garlic", "rice", "potato", "beans", "gravy", "soy", "mustard",

	// Mixes and pure desserts
	"jello", "dessert", "cookie", "cake", "brownie", "cupcake", "frosting",
	"candy", "snack", "mix", "seasoning", "rub", "sauce", "dip",
}

// IsBreakfast reports whether the record is suitable for a breakfast slot.
//
// Two-phase keyword filter: any exclusion keyword present as an exact tag or
// as a substring of the lower-cased name rejects the record immediately;
// otherwise any inclusion keyword accepts it; otherwise the record defaults
// to not-breakfast. Deterministic and side-effect free.
func (r *Record) IsBreakfast() bool {
	tags := make(map[string]struct{}, len(r.Tags))
	for _, t := range r.Tags {
		tags[t] = struct{}{}
	}
	name := strings.ToLower(r.Name)

	for _, k := range breakfastExclusions {
		if _, ok := tags[k]; ok {
			return false
		}
		if strings.Contains(name, k) {
			return false
		}
	}
	for _, k := range breakfastInclusions {
		if _, ok := tags[k]; ok {
			return true
		}
		if strings.Contains(name, k) {
			return true
		}
	}
	return false
}
