package services

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/jwsummers/OnTrack/config"
	"github.com/jwsummers/OnTrack/models"

	"gorm.io/gorm"
)

// GetGoals returns the user's saved goals, or the defaults when the user has
// never saved any.
func GetGoals(userID uint) (*models.DailyGoal, error) {
	var goal models.DailyGoal
	err := config.DB.Where("user_id = ?", userID).First(&goal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.DailyGoal{
				UserID:   userID,
				Water:    models.DefaultWaterGoal,
				Calories: models.DefaultCalorieGoal,
				Protein:  models.DefaultProteinGoal,
				Carbs:    models.DefaultCarbsGoal,
			}, nil
		}
		return nil, err
	}
	return &goal, nil
}

// UpsertGoals overwrites the user's targets. Inputs arrive as free-form
// strings; anything non-numeric or negative coerces to 0.
func UpsertGoals(userID uint, water, calories, protein, carbs string) (*models.DailyGoal, error) {
	var goal models.DailyGoal
	err := config.DB.Where("user_id = ?", userID).First(&goal).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	goal.UserID = userID
	goal.Water = ParseGoalValue(water)
	goal.Calories = ParseGoalValue(calories)
	goal.Protein = ParseGoalValue(protein)
	goal.Carbs = ParseGoalValue(carbs)

	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := config.DB.Create(&goal).Error; err != nil {
			return nil, err
		}
		return &goal, nil
	}
	if err := config.DB.Save(&goal).Error; err != nil {
		return nil, err
	}
	return &goal, nil
}

// ParseGoalValue coerces a goal edit to a non-negative integer.
func ParseGoalValue(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// ProgressRatio is the percentage readout total/goal*100 rounded to the
// nearest integer; it may exceed 100. A zero goal is a trivially met target:
// 100 for any non-negative total, never NaN or Inf.
func ProgressRatio(total float64, goal int) int {
	if goal <= 0 {
		if total >= float64(goal) {
			return 100
		}
		return 0
	}
	return int(math.Round(total / float64(goal) * 100))
}

// BarWidth clamps the ratio to [0,100] for rendering a progress bar.
func BarWidth(total float64, goal int) int {
	p := ProgressRatio(total, goal)
	if p > 100 {
		return 100
	}
	if p < 0 {
		return 0
	}
	return p
}

// GoalProgress pairs the numeric readout with the clamped bar width for one
// goal dimension.
type GoalProgress struct {
	Consumed float64 `json:"consumed"`
	Goal     int     `json:"goal"`
	Percent  int     `json:"percent"`
	Bar      int     `json:"bar"`
}

// BuildProgress computes per-goal progress from the session's running totals.
func BuildProgress(totals models.RunningTotals, goal *models.DailyGoal) map[string]GoalProgress {
	return map[string]GoalProgress{
		"water": {
			Consumed: totals.Water,
			Goal:     goal.Water,
			Percent:  ProgressRatio(totals.Water, goal.Water),
			Bar:      BarWidth(totals.Water, goal.Water),
		},
		"calories": {
			Consumed: totals.Calories,
			Goal:     goal.Calories,
			Percent:  ProgressRatio(totals.Calories, goal.Calories),
			Bar:      BarWidth(totals.Calories, goal.Calories),
		},
		"protein": {
			Consumed: totals.Protein,
			Goal:     goal.Protein,
			Percent:  ProgressRatio(totals.Protein, goal.Protein),
			Bar:      BarWidth(totals.Protein, goal.Protein),
		},
		"carbs": {
			Consumed: totals.Carbs,
			Goal:     goal.Carbs,
			Percent:  ProgressRatio(totals.Carbs, goal.Carbs),
			Bar:      BarWidth(totals.Carbs, goal.Carbs),
		},
	}
}
