package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mvelkov/fittrack/internal/nutrition"
	"github.com/mvelkov/fittrack/internal/profile"
	"github.com/mvelkov/fittrack/internal/workout"
	"github.com/mvelkov/fittrack/pkg"
)

// Stats is the derived daily dashboard view. It is recomputed on every
// request and never persisted.
type Stats struct {
	TotalWorkoutsToday    int `json:"total_workouts_today"`
	CaloriesBurnedToday   int `json:"calories_burned_today"`
	CaloriesConsumedToday int `json:"calories_consumed_today"`
	ProteinConsumedToday  int `json:"protein_consumed_today"`
	CarbsConsumedToday    int `json:"carbs_consumed_today"`
	FatsConsumedToday     int `json:"fats_consumed_today"`
	WorkoutStreak         int `json:"workout_streak"`
	TargetCalories        int `json:"target_calories"`
	TargetProtein         int `json:"target_protein"`
	TargetCarbs           int `json:"target_carbs"`
	TargetFats            int `json:"target_fats"`
}

type profilesRepo interface {
	GetCurrent(ctx context.Context) (*profile.UserProfile, error)
}

type workoutsRepo interface {
	ListAll(ctx context.Context) ([]workout.Workout, error)
}

type nutritionRepo interface {
	ListAll(ctx context.Context) ([]nutrition.Log, error)
}

type Analyzer struct {
	profiles  profilesRepo
	workouts  workoutsRepo
	nutrition nutritionRepo

	// nowFunc is replaced in tests to pin the day window
	nowFunc func() time.Time
}

func NewAnalyzer(profiles profilesRepo, workouts workoutsRepo, nutrition nutritionRepo) *Analyzer {
	return &Analyzer{
		profiles:  profiles,
		workouts:  workouts,
		nutrition: nutrition,
		nowFunc:   time.Now,
	}
}

// Stats assembles the daily dashboard from the current profile, today's
// workouts and today's nutrition logs. The reads are independent and
// non-atomic, a write landing between them can produce a snapshot that is
// not point-in-time consistent.
func (a *Analyzer) Stats(ctx context.Context) (*Stats, error) {
	now := a.nowFunc()
	dayStart, dayEnd := pkg.DayWindow(now)

	currentProfile, err := a.profiles.GetCurrent(ctx)
	if errors.Is(err, profile.ErrProfileNotFound) {
		currentProfile = profile.Default()
	} else if err != nil {
		return nil, fmt.Errorf("get current profile: %w", err)
	}

	workouts, err := a.workouts.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}

	totalWorkoutsToday := 0
	caloriesBurnedToday := 0
	for _, w := range workouts {
		if pkg.InWindow(w.Date, dayStart, dayEnd) {
			totalWorkoutsToday++
			caloriesBurnedToday += w.CaloriesBurned
		}
	}

	nutritionLogs, err := a.nutrition.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list nutrition logs: %w", err)
	}

	caloriesConsumed, proteinConsumed, carbsConsumed, fatsConsumed := 0, 0, 0, 0
	for _, l := range nutritionLogs {
		if pkg.InWindow(l.Date, dayStart, dayEnd) {
			caloriesConsumed += l.Calories
			proteinConsumed += l.Protein
			carbsConsumed += l.Carbs
			fatsConsumed += l.Fats
		}
	}

	return &Stats{
		TotalWorkoutsToday:    totalWorkoutsToday,
		CaloriesBurnedToday:   caloriesBurnedToday,
		CaloriesConsumedToday: caloriesConsumed,
		ProteinConsumedToday:  proteinConsumed,
		CarbsConsumedToday:    carbsConsumed,
		FatsConsumedToday:     fatsConsumed,
		WorkoutStreak:         Streak(workouts, now),
		TargetCalories:        currentProfile.TargetCalories,
		TargetProtein:         currentProfile.TargetProtein,
		TargetCarbs:           currentProfile.TargetCarbs,
		TargetFats:            currentProfile.TargetFats,
	}, nil
}

// Streak counts the consecutive UTC calendar days ending at today (the
// day containing now) that each have at least one workout. A day without
// a workout stops the walk, so a missing today always yields 0.
// Future-dated workouts join the date set unchecked.
func Streak(workouts []workout.Workout, now time.Time) int {
	workoutDays := make(map[time.Time]struct{}, len(workouts))
	for _, w := range workouts {
		workoutDays[pkg.DateOnly(w.Date)] = struct{}{}
	}

	streak := 0
	for day := pkg.DateOnly(now); ; day = day.AddDate(0, 0, -1) {
		if _, ok := workoutDays[day]; !ok {
			break
		}
		streak++
	}
	return streak
}
