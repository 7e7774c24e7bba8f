package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/hptcg/deckbuilder-api/deckbuilder/logger"
)

const (
	defaultConnTimeout   = 5 * time.Second
	defaultMaxRetries    = 3
	defaultRetryInterval = time.Second
)

// Collection names in the document store.
const (
	CollectionGames = "games"
	CollectionCards = "cards"
	CollectionDecks = "decks"
	CollectionUsers = "users"
)

type MongoConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

// DB holds the document store client for the process lifetime.
type DB struct {
	client   *mongo.Client
	database *mongo.Database
}

func New(ctx context.Context, cfg MongoConfig) (*DB, error) {
	monitor := &event.CommandMonitor{
		Started: func(_ context.Context, evt *event.CommandStartedEvent) {
			slog.Debug("Store command started",
				slog.String("type", "db"),
				slog.String("command", evt.CommandName),
				slog.String("database", evt.DatabaseName))
		},
		Failed: func(_ context.Context, evt *event.CommandFailedEvent) {
			logger.LogQuery(evt.CommandName, evt.Duration, errors.New(evt.Failure))
		},
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(defaultConnTimeout).
		SetMonitor(monitor)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to document store: %w", err)
	}

	// Retry the initial ping; container starts often race the store coming up.
	var pingErr error
	for i := 0; i < defaultMaxRetries; i++ {
		pingCtx, cancel := context.WithTimeout(ctx, defaultConnTimeout)
		pingErr = client.Ping(pingCtx, readpref.Primary())
		cancel()
		if pingErr == nil {
			break
		}
		time.Sleep(defaultRetryInterval)
	}
	if pingErr != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("document store unreachable after %d attempts: %w", defaultMaxRetries, pingErr)
	}

	return &DB{
		client:   client,
		database: client.Database(cfg.Database),
	}, nil
}

func (db *DB) Collection(name string) *mongo.Collection {
	return db.database.Collection(name)
}

func (db *DB) Close(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}
