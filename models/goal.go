package models

import (
	"gorm.io/gorm"
)

// Default daily targets applied when a user has not saved goals yet.
const (
	DefaultWaterGoal   = 100 // oz
	DefaultCalorieGoal = 2000
	DefaultProteinGoal = 150 // g
	DefaultCarbsGoal   = 300 // g
)

// DailyGoal holds a user's daily intake targets.
type DailyGoal struct {
	gorm.Model
	UserID   uint `gorm:"index;not null" json:"user_id"`
	Water    int  `json:"water"`
	Calories int  `json:"calories"`
	Protein  int  `json:"protein"`
	Carbs    int  `json:"carbs"`
}

// RunningTotals are the session-accumulated sums of entries submitted since
// sign-in. They reset to zero on sign-out.
type RunningTotals struct {
	Water    float64 `json:"water"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
}
