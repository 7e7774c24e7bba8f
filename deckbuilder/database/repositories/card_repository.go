package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hptcg/deckbuilder-api/deckbuilder/database"
	"github.com/hptcg/deckbuilder-api/deckbuilder/database/models"
	"github.com/hptcg/deckbuilder-api/deckbuilder/database/pipelines"
)

const defaultQueryTimeout = 10 * time.Second

type CardRepository interface {
	Count(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, cardID string) (*models.CardOutput, error)
	GetBySetAndCode(ctx context.Context, setCode, code string) (*models.CardOutput, error)
	GetBySet(ctx context.Context, setCode string) ([]models.CardOutput, error)
	Search(ctx context.Context, query SearchQuery) ([]models.CardOutput, error)
	GetByIDs(ctx context.Context, cardIDs []string) ([]models.CardOutput, error)
	GenerateRandomPack(ctx context.Context, setCode string) ([]models.CardOutput, error)
	InsertMany(ctx context.Context, cards []models.Card) error
	DeleteAll(ctx context.Context) error
}

type cardRepository struct {
	collection *mongo.Collection
}

func NewCardRepository(db *database.DB) CardRepository {
	return &cardRepository{collection: db.Collection(database.CollectionCards)}
}

func (r *cardRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultQueryTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count cards: %w", err)
	}
	return count, nil
}

func (r *cardRepository) GetByID(ctx context.Context, cardID string) (*models.CardOutput, error) {
	id, err := primitive.ObjectIDFromHex(cardID)
	if err != nil {
		return nil, fmt.Errorf("invalid card id %q: %w", cardID, err)
	}

	outputs, err := r.aggregate(ctx, mongo.Pipeline{
		pipelines.MatchByID(id),
		pipelines.ProjectCardDetails(),
	})
	if err != nil {
		return nil, err
	}
	return first(outputs), nil
}

func (r *cardRepository) GetBySetAndCode(ctx context.Context, setCode, code string) (*models.CardOutput, error) {
	outputs, err := r.aggregate(ctx, mongo.Pipeline{
		pipelines.MatchBySetCodeAndCode(setCode, code),
		pipelines.ProjectCardDetails(),
	})
	if err != nil {
		return nil, err
	}
	return first(outputs), nil
}

func (r *cardRepository) GetBySet(ctx context.Context, setCode string) ([]models.CardOutput, error) {
	return r.aggregate(ctx, mongo.Pipeline{
		pipelines.MatchBySet(setCode),
		pipelines.ProjectCardDetails(),
	})
}

// Search runs a find with a searchable-attribute filter and flattens
// client-side, matching the shape the aggregation paths project store-side.
func (r *cardRepository) Search(ctx context.Context, query SearchQuery) ([]models.CardOutput, error) {
	filter := bson.M{}
	switch {
	case query.IsEmpty():
	case query.Structured():
		filters := make([]bson.M, 0, len(query.Terms))
		for _, term := range query.Terms {
			filters = append(filters, pipelines.SearchableAttributeFilter(term.Key, term.Pattern))
		}
		filter = pipelines.AllFilters(filters)
	default:
		filter = pipelines.FreeTextFilter(query.FreeText)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultQueryTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("card search failed: %w", err)
	}
	defer cursor.Close(ctx)

	var cards []models.Card
	if err := cursor.All(ctx, &cards); err != nil {
		return nil, fmt.Errorf("failed to decode cards: %w", err)
	}

	outputs := make([]models.CardOutput, 0, len(cards))
	for i := range cards {
		outputs = append(outputs, cards[i].Output())
	}
	return outputs, nil
}

func (r *cardRepository) GetByIDs(ctx context.Context, cardIDs []string) ([]models.CardOutput, error) {
	ids := make([]primitive.ObjectID, 0, len(cardIDs))
	for _, cardID := range cardIDs {
		id, err := primitive.ObjectIDFromHex(cardID)
		if err != nil {
			return nil, fmt.Errorf("invalid card id %q: %w", cardID, err)
		}
		ids = append(ids, id)
	}

	return r.aggregate(ctx, mongo.Pipeline{
		pipelines.MatchIDsInArray(ids),
		pipelines.ProjectCardDetails(),
	})
}

func (r *cardRepository) GenerateRandomPack(ctx context.Context, setCode string) ([]models.CardOutput, error) {
	pipeline := mongo.Pipeline{
		pipelines.MatchBySet(setCode),
		pipelines.FacetCardsByRarities(),
	}
	pipeline = append(pipeline, pipelines.ProjectFacetToRoot()...)
	pipeline = append(pipeline, pipelines.ProjectCardDetails())

	return r.aggregate(ctx, pipeline)
}

func (r *cardRepository) InsertMany(ctx context.Context, cards []models.Card) error {
	ctx, cancel := context.WithTimeout(ctx, defaultQueryTimeout)
	defer cancel()

	docs := make([]any, 0, len(cards))
	for i := range cards {
		docs = append(docs, cards[i])
	}

	_, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil {
		return fmt.Errorf("failed to insert cards: %w", err)
	}
	return nil
}

func (r *cardRepository) DeleteAll(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultQueryTimeout)
	defer cancel()

	if _, err := r.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to delete cards: %w", err)
	}
	return nil
}

func (r *cardRepository) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]models.CardOutput, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultQueryTimeout)
	defer cancel()

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("card aggregation failed: %w", err)
	}
	defer cursor.Close(ctx)

	var outputs []models.CardOutput
	if err := cursor.All(ctx, &outputs); err != nil {
		return nil, fmt.Errorf("failed to decode cards: %w", err)
	}
	return outputs, nil
}

func first(outputs []models.CardOutput) *models.CardOutput {
	if len(outputs) == 0 {
		return nil
	}
	return &outputs[0]
}
