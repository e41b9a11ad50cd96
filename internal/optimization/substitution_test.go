package optimization

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/platewise/v1/internal/domain/menu"
	"github.com/platewise/v1/internal/domain/recipe"
	"github.com/platewise/v1/test/testutils"
)

// SubstitutionTestSuite provides a test suite for slot substitution
type SubstitutionTestSuite struct {
	suite.Suite
	factory *testutils.RecipeFactory
}

func (suite *SubstitutionTestSuite) SetupTest() {
	suite.factory = testutils.NewRecipeFactory(21)
}

func (suite *SubstitutionTestSuite) menuFromPool(pool []*recipe.Record) *menu.Menu {
	s := NewSelector(pool, DefaultEliteSize, zap.NewNop())
	m, err := s.GenerateStructuredMenu(recipe.ProfileBalanced, rand.New(rand.NewSource(3)))
	require.NoError(suite.T(), err)
	return m
}

func (suite *SubstitutionTestSuite) TestReplace() {
	suite.Run("MainSlot_ShouldGetUnusedMainReplacement", func() {
		pool := suite.factory.Pool(10, 40)
		m := suite.menuFromPool(pool)
		engine := NewSubstitutionEngine(pool)

		old, err := m.At(1)
		require.NoError(suite.T(), err)

		replacement, ok := engine.Replace(old, m, rand.New(rand.NewSource(9)))
		require.True(suite.T(), ok)

		assert.False(suite.T(), replacement.IsBreakfast())
		_, onMenu := m.Names()[replacement.Name]
		assert.False(suite.T(), onMenu)
	})

	suite.Run("BreakfastSlot_ShouldGetBreakfastReplacement", func() {
		pool := suite.factory.Pool(15, 40)
		m := suite.menuFromPool(pool)
		engine := NewSubstitutionEngine(pool)

		old, err := m.At(0)
		require.NoError(suite.T(), err)

		replacement, ok := engine.Replace(old, m, rand.New(rand.NewSource(9)))
		require.True(suite.T(), ok)

		assert.True(suite.T(), replacement.IsBreakfast())
	})

	suite.Run("PoolExhausted_ShouldReportNoCandidate", func() {
		// Exactly 7 breakfasts: every one is already on the menu.
		pool := suite.factory.Pool(7, 40)
		m := suite.menuFromPool(pool)
		engine := NewSubstitutionEngine(pool)

		old, err := m.At(0)
		require.NoError(suite.T(), err)

		replacement, ok := engine.Replace(old, m, rand.New(rand.NewSource(9)))
		assert.False(suite.T(), ok)
		assert.Nil(suite.T(), replacement)
	})

	suite.Run("Replace_ShouldNotMutateTheMenu", func() {
		pool := suite.factory.Pool(10, 40)
		m := suite.menuFromPool(pool)
		engine := NewSubstitutionEngine(pool)
		before := m.Records()

		old, err := m.At(4)
		require.NoError(suite.T(), err)
		_, _ = engine.Replace(old, m, rand.New(rand.NewSource(9)))

		after := m.Records()
		for i := range before {
			assert.Same(suite.T(), before[i], after[i])
		}
	})
}

func TestSubstitutionTestSuite(t *testing.T) {
	suite.Run(t, new(SubstitutionTestSuite))
}
