package planner

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/platewise/v1/internal/domain/menu"
	"github.com/platewise/v1/internal/domain/recipe"
	"github.com/platewise/v1/internal/infrastructure/cache"
	"github.com/platewise/v1/internal/infrastructure/monitoring"
	"github.com/platewise/v1/internal/optimization"
	"github.com/platewise/v1/internal/ports/inbound"
	"github.com/platewise/v1/pkg/errors"
	"github.com/platewise/v1/test/testutils"
)

// PlannerServiceTestSuite provides a test suite for the planner use cases
type PlannerServiceTestSuite struct {
	suite.Suite
	service inbound.PlannerService
	ctx     context.Context
}

func (suite *PlannerServiceTestSuite) SetupTest() {
	factory := testutils.NewRecipeFactory(99)
	pool := factory.Pool(60, 140)

	suite.service = NewPlannerService(pool, cache.NewMemoryRepository(), monitoring.NewMetrics(), Options{
		EliteSize:       100,
		SolverTimeLimit: 20 * time.Second,
		DefaultCalMax:   2000,
		DefaultProtMin:  50,
		PlanCacheTTL:    time.Minute,
	}, zap.NewNop())
	suite.ctx = context.Background()
}

func (suite *PlannerServiceTestSuite) TestGenerateMenu() {
	suite.Run("ShouldReturnFullWeek", func() {
		dto, err := suite.service.GenerateMenu(suite.ctx, inbound.GenerateMenuCommand{
			Profile: recipe.ProfileFitness,
			Seed:    1,
		})
		require.NoError(suite.T(), err)

		assert.NotEqual(suite.T(), uuid.Nil, dto.ID)
		assert.Equal(suite.T(), "fitness", dto.Profile)
		assert.Len(suite.T(), dto.Slots, menu.Slots)
		assert.Nil(suite.T(), dto.Stats)
		for i, slot := range dto.Slots {
			assert.Equal(suite.T(), i, slot.Index)
			assert.NotEmpty(suite.T(), slot.Name)
			assert.NotEmpty(suite.T(), slot.CostSymbol)
		}
	})

	suite.Run("SameSeed_ShouldRepeatTheDraw", func() {
		first, err := suite.service.GenerateMenu(suite.ctx, inbound.GenerateMenuCommand{
			Profile: recipe.ProfileBalanced,
			Seed:    7,
		})
		require.NoError(suite.T(), err)
		second, err := suite.service.GenerateMenu(suite.ctx, inbound.GenerateMenuCommand{
			Profile: recipe.ProfileBalanced,
			Seed:    7,
		})
		require.NoError(suite.T(), err)

		assert.NotEqual(suite.T(), first.ID, second.ID)
		for i := range first.Slots {
			assert.Equal(suite.T(), first.Slots[i].Name, second.Slots[i].Name)
		}
	})
}

func (suite *PlannerServiceTestSuite) TestOptimizeMenu() {
	suite.Run("ShouldHonorNutritionKnobs", func() {
		dto, err := suite.service.OptimizeMenu(suite.ctx, inbound.OptimizeMenuCommand{
			Profile:      recipe.ProfileFitness,
			CalMaxDaily:  2000,
			ProtMinDaily: 60,
		})
		require.NoError(suite.T(), err)
		require.NotNil(suite.T(), dto.Stats)

		var cal, prot float64
		for _, slot := range dto.Slots {
			cal += slot.Calories
			prot += slot.ProteinPDV
		}
		if dto.Stats.Status != optimization.StatusFallback {
			assert.LessOrEqual(suite.T(), cal, 2000.0*menu.Days+0.001)
			assert.GreaterOrEqual(suite.T(), prot, 60.0*menu.Days-0.001)
		}
	})

	suite.Run("ZeroKnobs_ShouldUseDefaults", func() {
		dto, err := suite.service.OptimizeMenu(suite.ctx, inbound.OptimizeMenuCommand{
			Profile: recipe.ProfileBalanced,
		})
		require.NoError(suite.T(), err)
		require.NotNil(suite.T(), dto.Stats)
		assert.Len(suite.T(), dto.Slots, menu.Slots)
	})

	suite.Run("RepeatSolve_ShouldServeFromCacheUnderFreshID", func() {
		cmd := inbound.OptimizeMenuCommand{
			Profile:      recipe.ProfileGourmet,
			CalMaxDaily:  2200,
			ProtMinDaily: 30,
		}

		first, err := suite.service.OptimizeMenu(suite.ctx, cmd)
		require.NoError(suite.T(), err)
		second, err := suite.service.OptimizeMenu(suite.ctx, cmd)
		require.NoError(suite.T(), err)

		assert.NotEqual(suite.T(), first.ID, second.ID)
		require.Len(suite.T(), second.Slots, menu.Slots)
		for i := range first.Slots {
			assert.Equal(suite.T(), first.Slots[i].RecipeID, second.Slots[i].RecipeID)
		}
		assert.Equal(suite.T(), first.Stats.TotalScore, second.Stats.TotalScore)
	})
}

func (suite *PlannerServiceTestSuite) TestGetMenu() {
	suite.Run("HeldMenu_ShouldBeRetrievable", func() {
		created, err := suite.service.GenerateMenu(suite.ctx, inbound.GenerateMenuCommand{
			Profile: recipe.ProfileBudget,
			Seed:    1,
		})
		require.NoError(suite.T(), err)

		got, err := suite.service.GetMenu(suite.ctx, created.ID)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), created.ID, got.ID)
		for i := range created.Slots {
			assert.Equal(suite.T(), created.Slots[i].RecipeID, got.Slots[i].RecipeID)
		}
	})

	suite.Run("UnknownID_ShouldReturnNotFound", func() {
		_, err := suite.service.GetMenu(suite.ctx, uuid.New())
		require.Error(suite.T(), err)

		appErr, ok := errors.IsAppError(err)
		require.True(suite.T(), ok)
		assert.Equal(suite.T(), errors.CodeMenuNotFound, appErr.Code)
	})
}

func (suite *PlannerServiceTestSuite) TestSubstituteSlot() {
	suite.Run("ShouldSwapSlotAndKeepUniqueness", func() {
		created, err := suite.service.GenerateMenu(suite.ctx, inbound.GenerateMenuCommand{
			Profile: recipe.ProfileFitness,
			Seed:    1,
		})
		require.NoError(suite.T(), err)
		oldName := created.Slots[5].Name

		result, err := suite.service.SubstituteSlot(suite.ctx, inbound.SubstituteSlotCommand{
			MenuID: created.ID,
			Slot:   5,
			Seed:   4,
		})
		require.NoError(suite.T(), err)
		require.True(suite.T(), result.Replaced)
		require.NotNil(suite.T(), result.Replacement)
		assert.NotEqual(suite.T(), oldName, result.Replacement.Name)

		got, err := suite.service.GetMenu(suite.ctx, created.ID)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), result.Replacement.Name, got.Slots[5].Name)

		names := make(map[string]struct{})
		for _, slot := range got.Slots {
			names[slot.Name] = struct{}{}
		}
		assert.Len(suite.T(), names, menu.Slots)
	})

	suite.Run("SlotOutOfRange_ShouldReturnError", func() {
		created, err := suite.service.GenerateMenu(suite.ctx, inbound.GenerateMenuCommand{
			Profile: recipe.ProfileFitness,
			Seed:    1,
		})
		require.NoError(suite.T(), err)

		_, err = suite.service.SubstituteSlot(suite.ctx, inbound.SubstituteSlotCommand{
			MenuID: created.ID,
			Slot:   menu.Slots,
		})
		require.Error(suite.T(), err)

		appErr, ok := errors.IsAppError(err)
		require.True(suite.T(), ok)
		assert.Equal(suite.T(), errors.CodeSlotOutOfRange, appErr.Code)
	})

	suite.Run("UnknownMenu_ShouldReturnNotFound", func() {
		_, err := suite.service.SubstituteSlot(suite.ctx, inbound.SubstituteSlotCommand{
			MenuID: uuid.New(),
			Slot:   0,
		})
		assert.Error(suite.T(), err)
	})
}

func (suite *PlannerServiceTestSuite) TestSlotDetails() {
	suite.Run("ShouldReturnFullRecipeCard", func() {
		created, err := suite.service.GenerateMenu(suite.ctx, inbound.GenerateMenuCommand{
			Profile: recipe.ProfileGourmet,
			Seed:    1,
		})
		require.NoError(suite.T(), err)

		detail, err := suite.service.SlotDetails(suite.ctx, created.ID, 0)
		require.NoError(suite.T(), err)

		assert.Equal(suite.T(), created.Slots[0].Name, detail.Slot.Name)
		assert.Equal(suite.T(), "BREAKFAST", detail.TypeLabel)
		assert.NotEmpty(suite.T(), detail.Ingredients)
		assert.NotEmpty(suite.T(), detail.Steps)
		assert.NotEqual(suite.T(), "N/A", detail.RatingStars)
	})

	suite.Run("MainSlot_ShouldBeLabeledMainDish", func() {
		created, err := suite.service.GenerateMenu(suite.ctx, inbound.GenerateMenuCommand{
			Profile: recipe.ProfileGourmet,
			Seed:    1,
		})
		require.NoError(suite.T(), err)

		detail, err := suite.service.SlotDetails(suite.ctx, created.ID, 1)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "MAIN DISH", detail.TypeLabel)
	})
}

func (suite *PlannerServiceTestSuite) TestShoppingList() {
	suite.Run("ShouldAggregateMostFrequentFirst", func() {
		created, err := suite.service.GenerateMenu(suite.ctx, inbound.GenerateMenuCommand{
			Profile: recipe.ProfileBalanced,
			Seed:    1,
		})
		require.NoError(suite.T(), err)

		list, err := suite.service.ShoppingList(suite.ctx, created.ID)
		require.NoError(suite.T(), err)

		assert.Equal(suite.T(), created.ID, list.MenuID)
		assert.Equal(suite.T(), menu.Slots, list.Meals)
		require.NotEmpty(suite.T(), list.Items)
		assert.LessOrEqual(suite.T(), len(list.Items), 30)
		for i := 1; i < len(list.Items); i++ {
			assert.GreaterOrEqual(suite.T(), list.Items[i-1].Count, list.Items[i].Count)
		}
	})
}

func (suite *PlannerServiceTestSuite) TestCompareSelectors() {
	suite.Run("ShouldReportBothScores", func() {
		cmp, err := suite.service.CompareSelectors(suite.ctx, inbound.OptimizeMenuCommand{
			Profile:      recipe.ProfileFitness,
			CalMaxDaily:  2000,
			ProtMinDaily: 40,
		})
		require.NoError(suite.T(), err)

		assert.NotZero(suite.T(), cmp.HeuristicScore)
		assert.NotZero(suite.T(), cmp.OptimalScore)
		assert.Positive(suite.T(), cmp.HeuristicCalories)
		assert.Positive(suite.T(), cmp.OptimalCalories)
	})
}

func TestPlannerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PlannerServiceTestSuite))
}
