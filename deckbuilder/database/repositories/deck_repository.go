package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hptcg/deckbuilder-api/deckbuilder/database"
	"github.com/hptcg/deckbuilder-api/deckbuilder/database/models"
	"github.com/hptcg/deckbuilder-api/deckbuilder/database/pipelines"
)

type DeckRepository interface {
	GetAll(ctx context.Context) ([]models.DeckOutput, error)
	GetByID(ctx context.Context, deckID string) (*models.DeckOutput, error)
	Insert(ctx context.Context, deck *models.Deck) (string, error)
}

type deckRepository struct {
	collection *mongo.Collection
}

func NewDeckRepository(db *database.DB) DeckRepository {
	return &deckRepository{collection: db.Collection(database.CollectionDecks)}
}

func (r *deckRepository) GetAll(ctx context.Context) ([]models.DeckOutput, error) {
	return r.aggregate(ctx, mongo.Pipeline{
		pipelines.LookupCreatedByUser(),
		pipelines.SetCreatedByUser(),
		pipelines.UnsetCreatedUsers(),
	})
}

func (r *deckRepository) GetByID(ctx context.Context, deckID string) (*models.DeckOutput, error) {
	id, err := primitive.ObjectIDFromHex(deckID)
	if err != nil {
		return nil, fmt.Errorf("invalid deck id %q: %w", deckID, err)
	}

	outputs, err := r.aggregate(ctx, mongo.Pipeline{
		pipelines.MatchByID(id),
		pipelines.LookupCreatedByUser(),
		pipelines.SetCreatedByUser(),
		pipelines.UnsetCreatedUsers(),
	})
	if err != nil {
		return nil, err
	}
	if len(outputs) == 0 {
		return nil, nil
	}
	return &outputs[0], nil
}

func (r *deckRepository) Insert(ctx context.Context, deck *models.Deck) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultQueryTimeout)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, deck)
	if err != nil {
		return "", fmt.Errorf("failed to insert deck: %w", err)
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted deck id type %T", result.InsertedID)
	}
	return id.Hex(), nil
}

func (r *deckRepository) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]models.DeckOutput, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultQueryTimeout)
	defer cancel()

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("deck aggregation failed: %w", err)
	}
	defer cursor.Close(ctx)

	var outputs []models.DeckOutput
	if err := cursor.All(ctx, &outputs); err != nil {
		return nil, fmt.Errorf("failed to decode decks: %w", err)
	}
	return outputs, nil
}
