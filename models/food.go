package models

// FoodSuggestion is one search hit from the food database. Ephemeral:
// produced per query, discarded once a selection is made. Not persisted.
type FoodSuggestion struct {
	Label     string             `json:"label"`
	Nutrients map[string]float64 `json:"nutrients"`
}

// Nutrient keys used by the OpenFoodFacts nutriments payload.
const (
	NutrientCalories = "energy-kcal"
	NutrientProtein  = "proteins"
	NutrientCarbs    = "carbohydrates"
)
