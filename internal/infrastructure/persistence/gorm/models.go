// Package gorm provides GORM model definitions and the recipe pool
// repository backed by the embedded dataset store.
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RecipeModel is the stored form of a cleaned dataset row. Rows are written
// once by ingestion and read in bulk at startup; the planner never updates
// them.
type RecipeModel struct {
	ID          uuid.UUID   `gorm:"type:char(36);primaryKey"`
	Name        string      `gorm:"type:varchar(255);index;not null"`
	Ingredients StringSlice `gorm:"type:json"`
	Steps       StringSlice `gorm:"type:json"`
	Tags        StringSlice `gorm:"type:json"`
	Calories    float64     `gorm:"not null;index"`
	ProteinPDV  float64     `gorm:"not null"`
	FatPDV      float64     `gorm:"not null"`
	CarbsPDV    float64     `gorm:"not null"`
	Rating      float64     `gorm:"not null;default:0"`
	CreatedAt   time.Time
}

// TableName overrides the GORM table name
func (RecipeModel) TableName() string {
	return "recipes"
}

// StringSlice custom type for handling string slices as JSON columns
type StringSlice []string

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}
