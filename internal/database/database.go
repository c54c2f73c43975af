// Package database contains the logic for establishing a connection
// to the MongoDB document store.
//
// It handles:
//   - connecting a mongo client from the configured URI
//   - pinging the primary at startup so the app fails fast when the
//     store is unreachable
//   - exposing the configured database handle for the record layer
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/inkpress/blog-backend/internal/config"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Database wraps the mongo client and the configured database handle.
type Database struct {
	Client   *mongo.Client
	Database *mongo.Database
	log      *zerolog.Logger
}

// ConnectTimeout bounds the initial connect, PingTimeout the startup ping.
const (
	ConnectTimeout = 10 * time.Second
	PingTimeout    = 5 * time.Second
)

// New connects to MongoDB using the configured URI and verifies the
// connection with a ping against the primary.
func New(cfg *config.Config, logger *zerolog.Logger) (*Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Database.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), PingTimeout)
	defer pingCancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	logger.Info().Str("database", cfg.Database.Name).Msg("connected to the document store")

	return &Database{
		Client:   client,
		Database: client.Database(cfg.Database.Name),
		log:      logger,
	}, nil
}

// Close disconnects the mongo client.
func (db *Database) Close(ctx context.Context) error {
	db.log.Info().Msg("closing document store connection")
	return db.Client.Disconnect(ctx)
}
