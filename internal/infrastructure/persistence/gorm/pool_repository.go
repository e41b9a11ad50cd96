package gorm

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/platewise/v1/internal/domain/recipe"
	"github.com/platewise/v1/internal/ports/outbound"
	"github.com/platewise/v1/pkg/errors"
)

// insertBatchSize bounds a single bulk insert statement.
const insertBatchSize = 500

// PoolRepository implements outbound.RecipePool on the embedded store.
type PoolRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewPoolRepository creates a new pool repository
func NewPoolRepository(db *gorm.DB, logger *zap.Logger) outbound.RecipePool {
	return &PoolRepository{db: db, logger: logger.Named("recipe-pool")}
}

// LoadAll reads every stored record into domain form. Called once at
// startup; the resulting slice is the process-lifetime candidate pool.
func (r *PoolRepository) LoadAll(ctx context.Context) ([]*recipe.Record, error) {
	var models []RecipeModel
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, errors.NewDatabaseError("load recipe pool", err)
	}

	records := make([]*recipe.Record, len(models))
	for i, m := range models {
		records[i] = &recipe.Record{
			ID:          m.ID,
			Name:        m.Name,
			Ingredients: m.Ingredients,
			Steps:       m.Steps,
			Tags:        m.Tags,
			Calories:    m.Calories,
			ProteinPDV:  m.ProteinPDV,
			FatPDV:      m.FatPDV,
			CarbsPDV:    m.CarbsPDV,
			Rating:      m.Rating,
		}
	}
	r.logger.Info("candidate pool loaded", zap.Int("records", len(records)))
	return records, nil
}

// Count reports the stored record count.
func (r *PoolRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&RecipeModel{}).Count(&count).Error; err != nil {
		return 0, errors.NewDatabaseError("count recipes", err)
	}
	return count, nil
}

// BulkInsert stores freshly ingested records in batches.
func (r *PoolRepository) BulkInsert(ctx context.Context, records []*recipe.Record) error {
	models := make([]RecipeModel, len(records))
	for i, rec := range records {
		models[i] = RecipeModel{
			ID:          rec.ID,
			Name:        rec.Name,
			Ingredients: rec.Ingredients,
			Steps:       rec.Steps,
			Tags:        rec.Tags,
			Calories:    rec.Calories,
			ProteinPDV:  rec.ProteinPDV,
			FatPDV:      rec.FatPDV,
			CarbsPDV:    rec.CarbsPDV,
			Rating:      rec.Rating,
		}
	}
	if err := r.db.WithContext(ctx).CreateInBatches(models, insertBatchSize).Error; err != nil {
		return errors.NewDatabaseError("insert recipes", err)
	}
	return nil
}
