package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hptcg/deckbuilder-api/deckbuilder/database"
	"github.com/hptcg/deckbuilder-api/deckbuilder/database/models"
)

// GameRepository only serves the import surface; games are never mutated by
// anything else.
type GameRepository interface {
	Insert(ctx context.Context, game *models.Game) error
	DeleteAll(ctx context.Context) error
}

type gameRepository struct {
	collection *mongo.Collection
}

func NewGameRepository(db *database.DB) GameRepository {
	return &gameRepository{collection: db.Collection(database.CollectionGames)}
}

func (r *gameRepository) Insert(ctx context.Context, game *models.Game) error {
	ctx, cancel := context.WithTimeout(ctx, defaultQueryTimeout)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, game); err != nil {
		return fmt.Errorf("failed to insert game: %w", err)
	}
	return nil
}

func (r *gameRepository) DeleteAll(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultQueryTimeout)
	defer cancel()

	if _, err := r.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to delete games: %w", err)
	}
	return nil
}
