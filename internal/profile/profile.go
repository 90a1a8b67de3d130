package profile

import (
	"time"

	"github.com/google/uuid"
)

// Default daily targets, used both for profiles created without explicit
// targets and for the synthesized profile when none exists yet.
const (
	DefaultTargetCalories = 2000
	DefaultTargetProtein  = 150
	DefaultTargetCarbs    = 200
	DefaultTargetFats     = 65
	DefaultGoal           = "maintain"
)

type UserProfile struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Age            *int      `json:"age,omitempty"`
	Weight         *float64  `json:"weight,omitempty"`
	Height         *float64  `json:"height,omitempty"`
	TargetCalories int       `json:"target_calories"`
	TargetProtein  int       `json:"target_protein"`
	TargetCarbs    int       `json:"target_carbs"`
	TargetFats     int       `json:"target_fats"`
	Goal           string    `json:"goal"`
	CreatedAt      time.Time `json:"created_at"`
}

// Default returns the profile served when no profile was created yet.
// It is synthesized on the fly and never persisted.
func Default() *UserProfile {
	return &UserProfile{
		ID:             uuid.NewString(),
		Name:           "User",
		TargetCalories: DefaultTargetCalories,
		TargetProtein:  DefaultTargetProtein,
		TargetCarbs:    DefaultTargetCarbs,
		TargetFats:     DefaultTargetFats,
		Goal:           DefaultGoal,
		CreatedAt:      time.Now().UTC(),
	}
}
