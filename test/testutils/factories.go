// Package testutils provides test data factories for consistent test data generation
package testutils

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/platewise/v1/internal/domain/recipe"
)

// RecipeFactory creates deterministic test recipes from a seeded faker.
type RecipeFactory struct {
	faker *gofakeit.Faker
	seq   int
}

// NewRecipeFactory creates a recipe factory with a seeded faker
func NewRecipeFactory(seed int64) *RecipeFactory {
	return &RecipeFactory{faker: gofakeit.New(seed)}
}

// Classifier-safe name fragments. Random faker vocabulary can collide with
// the breakfast keyword filter, so generated names draw from these instead.
var (
	breakfastBases = []string{"pancakes", "waffles", "oatmeal", "granola", "smoothie", "crepes"}
	mainBases      = []string{"chicken stew", "beef curry", "salmon pasta", "pork roast", "lamb chili", "shrimp risotto"}
	nameFlavors    = []string{"maple", "berry", "honey", "cinnamon", "vanilla", "smoky", "herbed", "rustic"}
)

// Main creates a main-dish record. Names carry a sequence number so every
// generated recipe is distinct under the name-based menu identity.
func (f *RecipeFactory) Main() *recipe.Record {
	f.seq++
	return recipe.NewRecord(
		fmt.Sprintf("%s %s #%d", f.pick(nameFlavors), f.pick(mainBases), f.seq),
		f.ingredients(4+f.faker.Number(0, 6)),
		f.steps(3+f.faker.Number(0, 5)),
		[]string{"main-dish", "dinner-party"},
		float64(f.faker.Number(350, 900)),
		float64(f.faker.Number(20, 80)),
		float64(f.faker.Number(10, 60)),
		float64(f.faker.Number(5, 40)),
		float64(f.faker.Number(20, 50))/10,
	)
}

// Breakfast creates a record that the classifier recognizes as a breakfast.
func (f *RecipeFactory) Breakfast() *recipe.Record {
	f.seq++
	return recipe.NewRecord(
		fmt.Sprintf("%s %s #%d", f.pick(nameFlavors), f.pick(breakfastBases), f.seq),
		f.ingredients(3+f.faker.Number(0, 4)),
		f.steps(2+f.faker.Number(0, 3)),
		[]string{"breakfast", "easy"},
		float64(f.faker.Number(250, 600)),
		float64(f.faker.Number(10, 40)),
		float64(f.faker.Number(5, 30)),
		float64(f.faker.Number(10, 50)),
		float64(f.faker.Number(20, 50))/10,
	)
}

// Pool creates a mixed candidate pool with the requested composition.
func (f *RecipeFactory) Pool(breakfasts, mains int) []*recipe.Record {
	pool := make([]*recipe.Record, 0, breakfasts+mains)
	for i := 0; i < breakfasts; i++ {
		pool = append(pool, f.Breakfast())
	}
	for i := 0; i < mains; i++ {
		pool = append(pool, f.Main())
	}
	return pool
}

func (f *RecipeFactory) pick(options []string) string {
	return options[f.faker.Number(0, len(options)-1)]
}

func (f *RecipeFactory) ingredients(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = f.faker.Fruit()
	}
	return out
}

func (f *RecipeFactory) steps(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = f.faker.Sentence(6)
	}
	return out
}
