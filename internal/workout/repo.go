package workout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrWorkoutNotFound = errors.New("workout not found")

// workoutRecord is the stored shape of a workout. Dates live in the store
// as ISO-8601 strings and are parsed back on every read; a stored date
// that fails to parse is a data integrity error and is propagated.
type workoutRecord struct {
	ID             string `bson:"id"`
	WorkoutType    string `bson:"workout_type"`
	Duration       int    `bson:"duration"`
	CaloriesBurned int    `bson:"calories_burned"`
	Intensity      string `bson:"intensity"`
	Notes          string `bson:"notes,omitempty"`
	Date           string `bson:"date"`
	CreatedAt      string `bson:"created_at"`
}

func newWorkoutRecord(w Workout) workoutRecord {
	return workoutRecord{
		ID:             w.ID,
		WorkoutType:    w.WorkoutType,
		Duration:       w.Duration,
		CaloriesBurned: w.CaloriesBurned,
		Intensity:      w.Intensity,
		Notes:          w.Notes,
		Date:           w.Date.UTC().Format(time.RFC3339Nano),
		CreatedAt:      w.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func (rec workoutRecord) toWorkout() (Workout, error) {
	date, err := time.Parse(time.RFC3339, rec.Date)
	if err != nil {
		return Workout{}, fmt.Errorf("parse workout %s date: %w", rec.ID, err)
	}
	createdAt, err := time.Parse(time.RFC3339, rec.CreatedAt)
	if err != nil {
		return Workout{}, fmt.Errorf("parse workout %s created_at: %w", rec.ID, err)
	}
	return Workout{
		ID:             rec.ID,
		WorkoutType:    rec.WorkoutType,
		Duration:       rec.Duration,
		CaloriesBurned: rec.CaloriesBurned,
		Intensity:      rec.Intensity,
		Notes:          rec.Notes,
		Date:           date,
		CreatedAt:      createdAt,
	}, nil
}

type Repo struct {
	coll *mongo.Collection
}

func NewRepo(database *mongo.Database) *Repo {
	return &Repo{
		coll: database.Collection("workouts"),
	}
}

func (r *Repo) Add(ctx context.Context, w Workout) (*Workout, error) {
	if _, err := r.coll.InsertOne(ctx, newWorkoutRecord(w)); err != nil {
		return nil, fmt.Errorf("insert workout: %w", err)
	}
	return &w, nil
}

// List returns up to limit workouts, most recent date first.
func (r *Repo) List(ctx context.Context, limit int) ([]Workout, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find workouts: %w", err)
	}

	return r.cursor2workouts(ctx, cursor)
}

// ListAll returns every stored workout. Today-filtering and streak
// computation deliberately scan the full collection client side.
func (r *Repo) ListAll(ctx context.Context) ([]Workout, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find workouts: %w", err)
	}

	return r.cursor2workouts(ctx, cursor)
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "id", Value: id}})
	if err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrWorkoutNotFound
	}
	return nil
}

func (r *Repo) cursor2workouts(ctx context.Context, cursor *mongo.Cursor) ([]Workout, error) {
	var records []workoutRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode workouts: %w", err)
	}

	workouts := make([]Workout, 0, len(records))
	for _, rec := range records {
		w, err := rec.toWorkout()
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, w)
	}
	return workouts, nil
}
