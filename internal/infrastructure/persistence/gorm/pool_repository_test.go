package gorm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	gormlib "gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/platewise/v1/internal/ports/outbound"
	"github.com/platewise/v1/test/testutils"
)

// PoolRepositoryTestSuite provides a test suite for the embedded recipe store
type PoolRepositoryTestSuite struct {
	suite.Suite
	repo    outbound.RecipePool
	factory *testutils.RecipeFactory
	ctx     context.Context
}

func (suite *PoolRepositoryTestSuite) SetupTest() {
	db, err := gormlib.Open(sqlite.Open(":memory:"), &gormlib.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), db.AutoMigrate(&RecipeModel{}))

	suite.repo = NewPoolRepository(db, zap.NewNop())
	suite.factory = testutils.NewRecipeFactory(17)
	suite.ctx = context.Background()
}

func (suite *PoolRepositoryTestSuite) TestBulkInsertAndLoadAll() {
	suite.Run("EmptyStore_ShouldLoadNothing", func() {
		loaded, err := suite.repo.LoadAll(suite.ctx)
		require.NoError(suite.T(), err)
		assert.Empty(suite.T(), loaded)
	})

	suite.Run("Records_ShouldRoundTripWithListColumns", func() {
		inserted := suite.factory.Pool(3, 5)
		require.NoError(suite.T(), suite.repo.BulkInsert(suite.ctx, inserted))

		loaded, err := suite.repo.LoadAll(suite.ctx)
		require.NoError(suite.T(), err)
		require.Len(suite.T(), loaded, len(inserted))

		byID := make(map[string]int, len(inserted))
		for i, r := range inserted {
			byID[r.ID.String()] = i
		}
		for _, got := range loaded {
			idx, ok := byID[got.ID.String()]
			require.True(suite.T(), ok)
			want := inserted[idx]
			assert.Equal(suite.T(), want.Name, got.Name)
			assert.Equal(suite.T(), want.Ingredients, got.Ingredients)
			assert.Equal(suite.T(), want.Steps, got.Steps)
			assert.Equal(suite.T(), want.Tags, got.Tags)
			assert.Equal(suite.T(), want.Calories, got.Calories)
			assert.Equal(suite.T(), want.ProteinPDV, got.ProteinPDV)
			assert.Equal(suite.T(), want.Rating, got.Rating)
		}
	})
}

func (suite *PoolRepositoryTestSuite) TestCount() {
	suite.Run("ShouldTrackInsertedRecords", func() {
		count, err := suite.repo.Count(suite.ctx)
		require.NoError(suite.T(), err)
		assert.Zero(suite.T(), count)

		require.NoError(suite.T(), suite.repo.BulkInsert(suite.ctx, suite.factory.Pool(2, 4)))

		count, err = suite.repo.Count(suite.ctx)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), int64(6), count)
	})
}

func TestPoolRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(PoolRepositoryTestSuite))
}
