package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type NewClientParams struct {
	MongoURL string
	DBName   string
}

// NewClient connects to the document store. A failed ping is not fatal here,
// each request will surface its own store error.
func NewClient(ctx context.Context, params NewClientParams) (*mongo.Client, *mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(params.MongoURL))
	if err != nil {
		return nil, nil, fmt.Errorf("connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return client, client.Database(params.DBName), fmt.Errorf("ping mongo: %w", err)
	}

	return client, client.Database(params.DBName), nil
}
