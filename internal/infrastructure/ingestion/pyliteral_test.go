package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// PyLiteralTestSuite provides a test suite for the dataset list decoders
type PyLiteralTestSuite struct {
	suite.Suite
}

func (suite *PyLiteralTestSuite) TestParseStringList() {
	suite.Run("SimpleList_ShouldDecodeItems", func() {
		items, err := parseStringList("['flour', 'eggs', 'milk']")
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), []string{"flour", "eggs", "milk"}, items)
	})

	suite.Run("DoubleQuotedItems_ShouldDecode", func() {
		items, err := parseStringList(`["salt", "pepper"]`)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), []string{"salt", "pepper"}, items)
	})

	suite.Run("EscapedQuote_ShouldStayInsideItem", func() {
		items, err := parseStringList(`['grandma\'s sauce', 'basil']`)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), []string{"grandma's sauce", "basil"}, items)
	})

	suite.Run("CommaInsideString_ShouldNotSplit", func() {
		items, err := parseStringList("['rinse, then drain', 'serve']")
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), []string{"rinse, then drain", "serve"}, items)
	})

	suite.Run("EmptyList_ShouldDecodeToNil", func() {
		items, err := parseStringList("[]")
		require.NoError(suite.T(), err)
		assert.Empty(suite.T(), items)
	})

	suite.Run("NotAList_ShouldReturnError", func() {
		_, err := parseStringList("just a string")
		assert.Error(suite.T(), err)
	})

	suite.Run("UnterminatedString_ShouldReturnError", func() {
		_, err := parseStringList("['dangling]")
		assert.Error(suite.T(), err)
	})
}

func (suite *PyLiteralTestSuite) TestParseFloatList() {
	suite.Run("NutritionVector_ShouldDecode", func() {
		values, err := parseFloatList("[51.5, 0.0, 13.0, 0.0, 2.0, 0.0, 4.0]")
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), []float64{51.5, 0, 13, 0, 2, 0, 4}, values)
	})

	suite.Run("IntegerLiterals_ShouldDecode", func() {
		values, err := parseFloatList("[100, 20]")
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), []float64{100, 20}, values)
	})

	suite.Run("EmptyList_ShouldDecodeToNil", func() {
		values, err := parseFloatList("[]")
		require.NoError(suite.T(), err)
		assert.Empty(suite.T(), values)
	})

	suite.Run("NonNumericItem_ShouldReturnError", func() {
		_, err := parseFloatList("[1.0, high, 2.0]")
		assert.Error(suite.T(), err)
	})

	suite.Run("MissingBrackets_ShouldReturnError", func() {
		_, err := parseFloatList("1.0, 2.0")
		assert.Error(suite.T(), err)
	})
}

func TestPyLiteralTestSuite(t *testing.T) {
	suite.Run(t, new(PyLiteralTestSuite))
}
