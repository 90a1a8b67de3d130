package workout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkoutRecord_roundTrip(t *testing.T) {
	date := time.Date(2025, time.March, 10, 7, 30, 0, 0, time.UTC)
	w := Workout{
		ID:             "w1",
		WorkoutType:    "cardio",
		Duration:       30,
		CaloriesBurned: 300,
		Intensity:      "high",
		Notes:          "intervals",
		Date:           date,
		CreatedAt:      date,
	}

	back, err := newWorkoutRecord(w).toWorkout()
	require.NoError(t, err)
	assert.Equal(t, w, back)
}

func TestWorkoutRecord_unparseableDate(t *testing.T) {
	rec := workoutRecord{
		ID:        "w1",
		Date:      "not-a-date",
		CreatedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}

	_, err := rec.toWorkout()
	require.Error(t, err)
	// the record id must survive in the error, stored dates are never defaulted
	assert.Contains(t, err.Error(), "w1")
}

func TestWorkoutRecord_unparseableCreatedAt(t *testing.T) {
	rec := workoutRecord{
		ID:        "w2",
		Date:      time.Now().UTC().Format(time.RFC3339Nano),
		CreatedAt: "yesterday-ish",
	}

	_, err := rec.toWorkout()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "w2")
}
