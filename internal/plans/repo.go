package plans

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrPlanNotFound = errors.New("workout plan not found")

type exerciseRecord struct {
	Name        string `bson:"name"`
	Sets        int    `bson:"sets"`
	Reps        int    `bson:"reps"`
	RestSeconds int    `bson:"rest_seconds"`
}

type planRecord struct {
	ID          string           `bson:"id"`
	Name        string           `bson:"name"`
	Description string           `bson:"description"`
	Difficulty  string           `bson:"difficulty"`
	Duration    int              `bson:"duration"`
	Exercises   []exerciseRecord `bson:"exercises"`
	Category    string           `bson:"category"`
	CreatedAt   string           `bson:"created_at"`
}

func newPlanRecord(p WorkoutPlan) planRecord {
	exercises := make([]exerciseRecord, 0, len(p.Exercises))
	for _, e := range p.Exercises {
		exercises = append(exercises, exerciseRecord(e))
	}
	return planRecord{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Difficulty:  p.Difficulty,
		Duration:    p.Duration,
		Exercises:   exercises,
		Category:    p.Category,
		CreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func (rec planRecord) toPlan() (WorkoutPlan, error) {
	createdAt, err := time.Parse(time.RFC3339, rec.CreatedAt)
	if err != nil {
		return WorkoutPlan{}, fmt.Errorf("parse plan %s created_at: %w", rec.ID, err)
	}
	exercises := make([]Exercise, 0, len(rec.Exercises))
	for _, e := range rec.Exercises {
		exercises = append(exercises, Exercise(e))
	}
	return WorkoutPlan{
		ID:          rec.ID,
		Name:        rec.Name,
		Description: rec.Description,
		Difficulty:  rec.Difficulty,
		Duration:    rec.Duration,
		Exercises:   exercises,
		Category:    rec.Category,
		CreatedAt:   createdAt,
	}, nil
}

type Repo struct {
	coll *mongo.Collection
}

func NewRepo(database *mongo.Database) *Repo {
	return &Repo{
		coll: database.Collection("workout_plans"),
	}
}

func (r *Repo) Add(ctx context.Context, p WorkoutPlan) (*WorkoutPlan, error) {
	if _, err := r.coll.InsertOne(ctx, newPlanRecord(p)); err != nil {
		return nil, fmt.Errorf("insert workout plan: %w", err)
	}
	return &p, nil
}

func (r *Repo) List(ctx context.Context) ([]WorkoutPlan, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find workout plans: %w", err)
	}

	var records []planRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode workout plans: %w", err)
	}

	plans := make([]WorkoutPlan, 0, len(records))
	for _, rec := range records {
		p, err := rec.toPlan()
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, nil
}

func (r *Repo) Get(ctx context.Context, id string) (*WorkoutPlan, error) {
	var rec planRecord
	if err := r.coll.FindOne(ctx, bson.D{{Key: "id", Value: id}}).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("find workout plan: %w", err)
	}

	p, err := rec.toPlan()
	if err != nil {
		return nil, err
	}
	return &p, nil
}
