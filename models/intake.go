package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Entry types for one intake log record.
const (
	IntakeFood  = "Food"
	IntakeWater = "Water"
)

// IntakeEntry is one logged food or water record. Entries are create-only:
// once persisted they are never updated or deleted.
type IntakeEntry struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Type      string    `gorm:"not null" json:"type"` // "Food"|"Water"
	Value     string    `gorm:"not null" json:"value"`
	Date      time.Time `gorm:"index" json:"date"`
	CreatedAt time.Time `json:"created_at"`

	// Raw nutrient map from the lookup service, null for water entries.
	Nutrition datatypes.JSON `json:"nutrition,omitempty"`

	// Flattened snapshot used for totals, zero for water entries.
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
}

func (e *IntakeEntry) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return
}
