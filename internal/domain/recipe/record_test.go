package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// RecordTestSuite provides a test suite for the recipe record
type RecordTestSuite struct {
	suite.Suite
}

func (suite *RecordTestSuite) TestEstimatedCost() {
	suite.Run("ZeroNutrition_ShouldReturnBaseCost", func() {
		r := NewRecord("plain water", nil, nil, nil, 0, 0, 0, 0, 0)

		assert.Equal(suite.T(), 0.50, r.EstimatedCost())
	})

	suite.Run("KnownNutrition_ShouldMatchFormula", func() {
		// 0.50 + 0.035*40 + 0.015*20 + 0.005*30 = 2.35
		r := NewRecord("test dish", nil, nil, nil, 500, 40, 20, 30, 4)

		assert.InDelta(suite.T(), 2.35, r.EstimatedCost(), 0.001)
	})

	suite.Run("Result_ShouldBeRoundedToCents", func() {
		// 0.50 + 0.035*33.3 = 1.6655 -> 1.67
		r := NewRecord("test dish", nil, nil, nil, 500, 33.3, 0, 0, 4)

		assert.InDelta(suite.T(), 1.67, r.EstimatedCost(), 0.0001)
	})

	suite.Run("NonNegativeInputs_ShouldNeverFallBelowBase", func() {
		for prot := 0.0; prot <= 100; prot += 25 {
			r := NewRecord("test dish", nil, nil, nil, 400, prot, 0, 0, 3)
			assert.GreaterOrEqual(suite.T(), r.EstimatedCost(), 0.50)
		}
	})

	suite.Run("MoreProtein_ShouldCostMore", func() {
		lean := NewRecord("lean", nil, nil, nil, 400, 10, 15, 20, 3)
		rich := NewRecord("rich", nil, nil, nil, 400, 60, 15, 20, 3)

		assert.Greater(suite.T(), rich.EstimatedCost(), lean.EstimatedCost())
	})
}

func (suite *RecordTestSuite) TestCostSymbol() {
	suite.Run("CheapRecipe_ShouldShowSingleSymbol", func() {
		r := NewRecord("cheap", nil, nil, nil, 300, 10, 5, 10, 3) // cost 0.975
		assert.Equal(suite.T(), "$", r.CostSymbol())
	})

	suite.Run("CostAtCheapCeiling_ShouldStayCheap", func() {
		// 0.50 + 0.035*80 + 0.015*10 + 0.005*10 = 3.50 exactly
		r := NewRecord("borderline", nil, nil, nil, 500, 80, 10, 10, 3)
		assert.Equal(suite.T(), "$", r.CostSymbol())
	})

	suite.Run("ModerateCost_ShouldShowDoubleSymbol", func() {
		// 0.50 + 0.035*100 + 0.015*50 + 0.005*50 = 5.0
		r := NewRecord("moderate", nil, nil, nil, 600, 100, 50, 50, 3)
		assert.Equal(suite.T(), "$$", r.CostSymbol())
	})

	suite.Run("ExpensiveRecipe_ShouldShowTripleSymbol", func() {
		// 0.50 + 0.035*250 + 0.015*100 + 0.005*50 = 10.75
		r := NewRecord("expensive", nil, nil, nil, 900, 250, 100, 50, 3)
		assert.Equal(suite.T(), "$$$", r.CostSymbol())
	})
}

func (suite *RecordTestSuite) TestNewRecord() {
	suite.Run("ShouldAssignDistinctIDs", func() {
		a := NewRecord("first", nil, nil, nil, 400, 20, 10, 10, 3)
		b := NewRecord("second", nil, nil, nil, 400, 20, 10, 10, 3)

		assert.NotEqual(suite.T(), a.ID, b.ID)
	})
}

func TestRecordTestSuite(t *testing.T) {
	suite.Run(t, new(RecordTestSuite))
}
