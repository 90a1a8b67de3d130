package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/mvelkov/fittrack/internal/nutrition"
	"github.com/mvelkov/fittrack/internal/profile"
	"github.com/mvelkov/fittrack/internal/workout"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func workoutOn(date time.Time) workout.Workout {
	return workout.Workout{
		ID:          uuid.NewString(),
		WorkoutType: "strength",
		Duration:    45,
		Date:        date,
		CreatedAt:   date,
	}
}

func TestStreak(t *testing.T) {
	now := time.Date(2025, time.March, 10, 15, 30, 0, 0, time.UTC)
	day := func(offset int) time.Time {
		return now.AddDate(0, 0, offset)
	}

	testCases := map[string]struct {
		workoutDays []int
		expected    int
	}{
		"no workouts": {
			workoutDays: nil,
			expected:    0,
		},
		"gap breaks the streak": {
			workoutDays: []int{0, -1, -2, -4},
			expected:    3,
		},
		"yesterday only": {
			workoutDays: []int{-1, -2, -3},
			expected:    0,
		},
		"today only": {
			workoutDays: []int{0},
			expected:    1,
		},
		"long unbroken run": {
			workoutDays: []int{0, -1, -2, -3, -4, -5, -6},
			expected:    7,
		},
		"multiple workouts same day count once": {
			workoutDays: []int{0, 0, 0, -1},
			expected:    2,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			var workouts []workout.Workout
			for _, offset := range tc.workoutDays {
				workouts = append(workouts, workoutOn(day(offset)))
			}
			assert.Equal(t, tc.expected, Streak(workouts, now))
		})
	}
}

func TestStreak_TimeOfDayIrrelevant(t *testing.T) {
	now := time.Date(2025, time.March, 10, 0, 0, 1, 0, time.UTC)
	workouts := []workout.Workout{
		workoutOn(time.Date(2025, time.March, 10, 23, 59, 59, 0, time.UTC)),
		workoutOn(time.Date(2025, time.March, 9, 0, 0, 0, 0, time.UTC)),
	}
	assert.Equal(t, 2, Streak(workouts, now))
}

func TestAnalyzer_Stats_DefaultTargets(t *testing.T) {
	analyzer := NewAnalyzer(
		profile.NewMockProfilesRepo(),
		workout.NewMockWorkoutsRepo(),
		nutrition.NewMockLogsRepo(),
	)

	stats, err := analyzer.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, profile.DefaultTargetCalories, stats.TargetCalories)
	assert.Equal(t, profile.DefaultTargetProtein, stats.TargetProtein)
	assert.Equal(t, profile.DefaultTargetCarbs, stats.TargetCarbs)
	assert.Equal(t, profile.DefaultTargetFats, stats.TargetFats)
	assert.Zero(t, stats.TotalWorkoutsToday)
	assert.Zero(t, stats.CaloriesBurnedToday)
	assert.Zero(t, stats.CaloriesConsumedToday)
	assert.Zero(t, stats.WorkoutStreak)
}

func TestAnalyzer_Stats_ProfileTargets(t *testing.T) {
	ctx := context.Background()
	profilesRepo := profile.NewMockProfilesRepo()
	_, err := profilesRepo.Add(ctx, &profile.UserProfile{
		ID:             uuid.NewString(),
		Name:           "Mina",
		Goal:           "gain",
		TargetCalories: 2800,
		TargetProtein:  180,
		TargetCarbs:    300,
		TargetFats:     80,
		CreatedAt:      time.Now(),
	})
	require.NoError(t, err)

	analyzer := NewAnalyzer(profilesRepo, workout.NewMockWorkoutsRepo(), nutrition.NewMockLogsRepo())

	stats, err := analyzer.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2800, stats.TargetCalories)
	assert.Equal(t, 180, stats.TargetProtein)
	assert.Equal(t, 300, stats.TargetCarbs)
	assert.Equal(t, 80, stats.TargetFats)
}

func TestAnalyzer_Stats_TodayWindowSums(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)

	workoutsRepo := workout.NewMockWorkoutsRepo()
	for _, w := range []workout.Workout{
		{ID: uuid.NewString(), WorkoutType: "cardio", Duration: 30, CaloriesBurned: 300, Date: now, CreatedAt: now},
		{ID: uuid.NewString(), WorkoutType: "strength", Duration: 60, CaloriesBurned: 250, Date: now, CreatedAt: now},
		{ID: uuid.NewString(), WorkoutType: "cardio", Duration: 30, CaloriesBurned: 999, Date: yesterday, CreatedAt: yesterday},
	} {
		_, err := workoutsRepo.Add(ctx, w)
		require.NoError(t, err)
	}

	nutritionRepo := nutrition.NewMockLogsRepo()
	for _, l := range []nutrition.Log{
		{ID: uuid.NewString(), MealName: "breakfast", Calories: 400, Protein: 30, Carbs: 50, Fats: 10, Date: now, CreatedAt: now},
		{ID: uuid.NewString(), MealName: "lunch", Calories: 600, Protein: 40, Carbs: 70, Fats: 20, Date: now, CreatedAt: now},
		{ID: uuid.NewString(), MealName: "old dinner", Calories: 900, Protein: 90, Carbs: 90, Fats: 90, Date: yesterday, CreatedAt: yesterday},
	} {
		_, err := nutritionRepo.Add(ctx, l)
		require.NoError(t, err)
	}

	analyzer := NewAnalyzer(profile.NewMockProfilesRepo(), workoutsRepo, nutritionRepo)
	analyzer.nowFunc = func() time.Time { return now }

	stats, err := analyzer.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalWorkoutsToday)
	assert.Equal(t, 550, stats.CaloriesBurnedToday)
	assert.Equal(t, 1000, stats.CaloriesConsumedToday)
	assert.Equal(t, 70, stats.ProteinConsumedToday)
	assert.Equal(t, 120, stats.CarbsConsumedToday)
	assert.Equal(t, 30, stats.FatsConsumedToday)
}

func TestAnalyzer_Stats_StreakAcrossDays(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

	workoutsRepo := workout.NewMockWorkoutsRepo()
	for _, offset := range []int{0, -1, -2, -4} {
		_, err := workoutsRepo.Add(ctx, workoutOn(now.AddDate(0, 0, offset)))
		require.NoError(t, err)
	}

	analyzer := NewAnalyzer(profile.NewMockProfilesRepo(), workoutsRepo, nutrition.NewMockLogsRepo())
	analyzer.nowFunc = func() time.Time { return now }

	stats, err := analyzer.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.WorkoutStreak)
}
