package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrProfileNotFound = errors.New("profile not found")

// profileRecord is the stored shape of a profile. Timestamps are kept
// as ISO-8601 strings in the store and parsed back on every read.
type profileRecord struct {
	ID             string   `bson:"id"`
	Name           string   `bson:"name"`
	Age            *int     `bson:"age,omitempty"`
	Weight         *float64 `bson:"weight,omitempty"`
	Height         *float64 `bson:"height,omitempty"`
	TargetCalories int      `bson:"target_calories"`
	TargetProtein  int      `bson:"target_protein"`
	TargetCarbs    int      `bson:"target_carbs"`
	TargetFats     int      `bson:"target_fats"`
	Goal           string   `bson:"goal"`
	CreatedAt      string   `bson:"created_at"`
}

func newProfileRecord(p UserProfile) profileRecord {
	return profileRecord{
		ID:             p.ID,
		Name:           p.Name,
		Age:            p.Age,
		Weight:         p.Weight,
		Height:         p.Height,
		TargetCalories: p.TargetCalories,
		TargetProtein:  p.TargetProtein,
		TargetCarbs:    p.TargetCarbs,
		TargetFats:     p.TargetFats,
		Goal:           p.Goal,
		CreatedAt:      p.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func (rec profileRecord) toProfile() (*UserProfile, error) {
	createdAt, err := time.Parse(time.RFC3339, rec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse profile %s created_at: %w", rec.ID, err)
	}
	return &UserProfile{
		ID:             rec.ID,
		Name:           rec.Name,
		Age:            rec.Age,
		Weight:         rec.Weight,
		Height:         rec.Height,
		TargetCalories: rec.TargetCalories,
		TargetProtein:  rec.TargetProtein,
		TargetCarbs:    rec.TargetCarbs,
		TargetFats:     rec.TargetFats,
		Goal:           rec.Goal,
		CreatedAt:      createdAt,
	}, nil
}

// UpdateParams carries the updatable profile fields. All of them are set
// on update, mirroring a full profile edit from the client.
type UpdateParams struct {
	Name           string
	Age            *int
	Weight         *float64
	Height         *float64
	TargetCalories int
	TargetProtein  int
	TargetCarbs    int
	TargetFats     int
	Goal           string
}

type Repo struct {
	coll *mongo.Collection
}

func NewRepo(database *mongo.Database) *Repo {
	return &Repo{
		coll: database.Collection("user_profiles"),
	}
}

func (r *Repo) Add(ctx context.Context, p *UserProfile) (*UserProfile, error) {
	if _, err := r.coll.InsertOne(ctx, newProfileRecord(*p)); err != nil {
		return nil, fmt.Errorf("insert profile: %w", err)
	}
	return p, nil
}

// GetCurrent returns the most recently created profile,
// or ErrProfileNotFound when no profile was ever created.
func (r *Repo) GetCurrent(ctx context.Context) (*UserProfile, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var rec profileRecord
	if err := r.coll.FindOne(ctx, bson.D{}, opts).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("find current profile: %w", err)
	}

	return rec.toProfile()
}

func (r *Repo) Update(ctx context.Context, id string, params UpdateParams) (*UserProfile, error) {
	res, err := r.coll.UpdateOne(
		ctx,
		bson.D{{Key: "id", Value: id}},
		bson.M{"$set": bson.M{
			"name":            params.Name,
			"age":             params.Age,
			"weight":          params.Weight,
			"height":          params.Height,
			"target_calories": params.TargetCalories,
			"target_protein":  params.TargetProtein,
			"target_carbs":    params.TargetCarbs,
			"target_fats":     params.TargetFats,
			"goal":            params.Goal,
		}},
	)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, ErrProfileNotFound
	}

	var rec profileRecord
	if err := r.coll.FindOne(ctx, bson.D{{Key: "id", Value: id}}).Decode(&rec); err != nil {
		return nil, fmt.Errorf("find updated profile: %w", err)
	}

	return rec.toProfile()
}
