package database

import (
	"context"
	"fmt"

	"food-fridge/internal/config"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// NewMongoClient connects to MongoDB using the stable v1 server API and
// verifies the connection before returning.
func NewMongoClient(ctx context.Context, cfg config.MongoConfig, logger zerolog.Logger) (*mongo.Client, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerAPIOptions(serverAPI).
		// nested documents decode as bson.M so items serialise as plain JSON objects
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	logger.Info().
		Str("database", cfg.Database).
		Str("collection", cfg.Collection).
		Msg("connecting to MongoDB")

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	logger.Info().Msg("connected to MongoDB")

	return client, nil
}
