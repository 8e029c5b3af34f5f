package database

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Connect establishes the MongoDB connection for the lifetime of the process.
// The client is created once at startup and shared across requests; the
// driver's own pooling is the only connection management. A failed connection
// is fatal.
func Connect(ctx context.Context, logger *zerolog.Logger, uri, database string) (*mongo.Client, *mongo.Database) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		logger.Fatal().Err(err).Msg("failed to ping MongoDB")
	}

	logger.Info().Str("database", database).Msg("MongoDB connected successfully")

	return client, client.Database(database)
}
