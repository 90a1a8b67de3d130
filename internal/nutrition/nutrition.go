package nutrition

import "time"

// Log is a single meal entry. Meal type is free text,
// breakfast/lunch/dinner/snack by convention, not enforced.
type Log struct {
	ID       string `json:"id"`
	MealName string `json:"meal_name"`
	MealType string `json:"meal_type"`
	Calories int    `json:"calories"`
	Protein  int    `json:"protein"`
	Carbs    int    `json:"carbs"`
	Fats     int    `json:"fats"`

	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}
