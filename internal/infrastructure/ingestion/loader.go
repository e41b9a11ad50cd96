// Package ingestion loads the raw dataset CSVs into the embedded store:
// it decodes the Python-literal list columns, merges mean user ratings,
// drops rows with implausible calories and hands clean records to the pool
// repository. The planner core never touches files itself.
package ingestion

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/platewise/v1/internal/domain/recipe"
	"github.com/platewise/v1/internal/ports/outbound"
	"github.com/platewise/v1/pkg/errors"
)

// Calorie sanity bounds; rows outside (10, 2500) are treated as corrupt.
const (
	minCalories = 10
	maxCalories = 2500
)

// Positions inside the dataset's nutrition vector:
// [calories, fat, sugar, sodium, protein, sat_fat, carbs].
const (
	nutCalories = 0
	nutFat      = 1
	nutProtein  = 4
	nutCarbs    = 6
	nutFields   = 7
)

// Config locates the dataset files.
type Config struct {
	RecipesCSV      string
	InteractionsCSV string
	// RowLimit caps loaded recipe rows; zero means no cap.
	RowLimit int
}

// Loader performs the one-time dataset import.
type Loader struct {
	pool   outbound.RecipePool
	cfg    Config
	logger *zap.Logger
}

// NewLoader creates a dataset loader
func NewLoader(pool outbound.RecipePool, cfg Config, logger *zap.Logger) *Loader {
	return &Loader{pool: pool, cfg: cfg, logger: logger.Named("ingestion")}
}

// Run imports the dataset unless the store already holds records. Returns
// the number of records imported.
func (l *Loader) Run(ctx context.Context) (int, error) {
	count, err := l.pool.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		l.logger.Info("dataset already ingested", zap.Int64("records", count))
		return 0, nil
	}

	ratings, err := l.readRatings()
	if err != nil {
		return 0, err
	}

	records, dropped, err := l.readRecipes(ratings)
	if err != nil {
		return 0, err
	}
	if dropped > 0 {
		l.logger.Info("removed recipes with extreme or corrupt data", zap.Int("dropped", dropped))
	}

	if err := l.pool.BulkInsert(ctx, records); err != nil {
		return 0, err
	}
	l.logger.Info("dataset ingested", zap.Int("records", len(records)))
	return len(records), nil
}

// readRatings computes the mean rating per recipe ID from the interactions
// file. Recipes without interactions default to rating 0 downstream.
func (l *Loader) readRatings() (map[string]float64, error) {
	f, err := os.Open(l.cfg.InteractionsCSV)
	if err != nil {
		return nil, errors.NewDatasetError("open interactions file", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, errors.NewDatasetError("read interactions header", err)
	}
	cols, err := columnIndex(header, "recipe_id", "rating")
	if err != nil {
		return nil, errors.NewDatasetError("resolve interactions columns", err)
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewDatasetError("read interactions row", err)
		}
		rating, err := strconv.ParseFloat(row[cols["rating"]], 64)
		if err != nil {
			continue
		}
		id := row[cols["recipe_id"]]
		sums[id] += rating
		counts[id]++
	}

	means := make(map[string]float64, len(sums))
	for id, sum := range sums {
		means[id] = sum / float64(counts[id])
	}
	return means, nil
}

// readRecipes streams the recipes file into domain records, skipping rows
// whose list columns fail to decode and rows outside the calorie bounds.
func (l *Loader) readRecipes(ratings map[string]float64) ([]*recipe.Record, int, error) {
	f, err := os.Open(l.cfg.RecipesCSV)
	if err != nil {
		return nil, 0, errors.NewDatasetError("open recipes file", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, 0, errors.NewDatasetError("read recipes header", err)
	}
	cols, err := columnIndex(header, "name", "id", "tags", "nutrition", "steps", "ingredients")
	if err != nil {
		return nil, 0, errors.NewDatasetError("resolve recipes columns", err)
	}

	var records []*recipe.Record
	dropped := 0
	for {
		if l.cfg.RowLimit > 0 && len(records)+dropped >= l.cfg.RowLimit {
			break
		}
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, errors.NewDatasetError("read recipes row", err)
		}

		rec, ok := l.parseRow(row, cols, ratings)
		if !ok {
			dropped++
			continue
		}
		records = append(records, rec)
	}
	return records, dropped, nil
}

func (l *Loader) parseRow(row []string, cols map[string]int, ratings map[string]float64) (*recipe.Record, bool) {
	nutrition, err := parseFloatList(row[cols["nutrition"]])
	if err != nil || len(nutrition) < nutFields {
		return nil, false
	}
	calories := nutrition[nutCalories]
	if calories <= minCalories || calories >= maxCalories {
		return nil, false
	}

	ingredients, err := parseStringList(row[cols["ingredients"]])
	if err != nil {
		return nil, false
	}
	steps, err := parseStringList(row[cols["steps"]])
	if err != nil {
		return nil, false
	}
	tags, err := parseStringList(row[cols["tags"]])
	if err != nil {
		return nil, false
	}

	return recipe.NewRecord(
		row[cols["name"]],
		ingredients,
		steps,
		tags,
		calories,
		nutrition[nutProtein],
		nutrition[nutFat],
		nutrition[nutCarbs],
		ratings[row[cols["id"]]],
	), true
}

func columnIndex(header []string, names ...string) (map[string]int, error) {
	index := make(map[string]int, len(names))
	for _, name := range names {
		found := false
		for i, col := range header {
			if col == name {
				index[name] = i
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("column %q not found in header", name)
		}
	}
	return index, nil
}
