package workout

import "time"

const DefaultIntensity = "moderate"

// Workout is a single logged training session. Workouts are immutable
// once created, the only lifecycle operation after that is deletion.
type Workout struct {
	ID             string    `json:"id"`
	WorkoutType    string    `json:"workout_type"`
	Duration       int       `json:"duration"` // minutes
	CaloriesBurned int       `json:"calories_burned"`
	Intensity      string    `json:"intensity"`
	Notes          string    `json:"notes,omitempty"`
	Date           time.Time `json:"date"`
	CreatedAt      time.Time `json:"created_at"`
}
