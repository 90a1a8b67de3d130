package plans

import "time"

const DefaultRestSeconds = 60

// Exercise is one entry of a plan's ordered exercise sequence.
type Exercise struct {
	Name        string `json:"name"`
	Sets        int    `json:"sets"`
	Reps        int    `json:"reps"`
	RestSeconds int    `json:"rest_seconds"`
}

// WorkoutPlan is a reusable training template. Plans are immutable once
// created, there is no update or delete operation.
type WorkoutPlan struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Difficulty  string     `json:"difficulty"`
	Duration    int        `json:"duration"` // total minutes
	Exercises   []Exercise `json:"exercises"`
	Category    string     `json:"category"`
	CreatedAt   time.Time  `json:"created_at"`
}
