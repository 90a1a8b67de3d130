package nutrition

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrLogNotFound = errors.New("nutrition log not found")

type logRecord struct {
	ID        string `bson:"id"`
	MealName  string `bson:"meal_name"`
	MealType  string `bson:"meal_type"`
	Calories  int    `bson:"calories"`
	Protein   int    `bson:"protein"`
	Carbs     int    `bson:"carbs"`
	Fats      int    `bson:"fats"`
	Date      string `bson:"date"`
	CreatedAt string `bson:"created_at"`
}

func newLogRecord(l Log) logRecord {
	return logRecord{
		ID:        l.ID,
		MealName:  l.MealName,
		MealType:  l.MealType,
		Calories:  l.Calories,
		Protein:   l.Protein,
		Carbs:     l.Carbs,
		Fats:      l.Fats,
		Date:      l.Date.UTC().Format(time.RFC3339Nano),
		CreatedAt: l.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func (rec logRecord) toLog() (Log, error) {
	date, err := time.Parse(time.RFC3339, rec.Date)
	if err != nil {
		return Log{}, fmt.Errorf("parse nutrition log %s date: %w", rec.ID, err)
	}
	createdAt, err := time.Parse(time.RFC3339, rec.CreatedAt)
	if err != nil {
		return Log{}, fmt.Errorf("parse nutrition log %s created_at: %w", rec.ID, err)
	}
	return Log{
		ID:        rec.ID,
		MealName:  rec.MealName,
		MealType:  rec.MealType,
		Calories:  rec.Calories,
		Protein:   rec.Protein,
		Carbs:     rec.Carbs,
		Fats:      rec.Fats,
		Date:      date,
		CreatedAt: createdAt,
	}, nil
}

type Repo struct {
	coll *mongo.Collection
}

func NewRepo(database *mongo.Database) *Repo {
	return &Repo{
		coll: database.Collection("nutrition_logs"),
	}
}

func (r *Repo) Add(ctx context.Context, l Log) (*Log, error) {
	if _, err := r.coll.InsertOne(ctx, newLogRecord(l)); err != nil {
		return nil, fmt.Errorf("insert nutrition log: %w", err)
	}
	return &l, nil
}

// List returns up to limit logs, most recent date first.
func (r *Repo) List(ctx context.Context, limit int) ([]Log, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find nutrition logs: %w", err)
	}

	return r.cursor2logs(ctx, cursor)
}

// ListAll returns every stored log, today-filtering happens client side.
func (r *Repo) ListAll(ctx context.Context) ([]Log, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find nutrition logs: %w", err)
	}

	return r.cursor2logs(ctx, cursor)
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "id", Value: id}})
	if err != nil {
		return fmt.Errorf("delete nutrition log: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrLogNotFound
	}
	return nil
}

func (r *Repo) cursor2logs(ctx context.Context, cursor *mongo.Cursor) ([]Log, error) {
	var records []logRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode nutrition logs: %w", err)
	}

	logs := make([]Log, 0, len(records))
	for _, rec := range records {
		l, err := rec.toLog()
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, nil
}
