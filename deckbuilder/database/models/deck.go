package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Deck is immutable after creation; there is no update path.
type Deck struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	CreatedBy   primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	Cards       []DeckCard         `bson:"cards" json:"cards"`
}

// DeckCard references a catalog card weakly and carries a denormalized
// point-in-time copy of its flattened attributes, captured at deck-creation
// time. The copy keeps decks readable even if the catalog entry is later
// changed or removed.
type DeckCard struct {
	CardID   primitive.ObjectID `bson:"cardId" json:"cardId"`
	Quantity int                `bson:"quantity" json:"quantity"`
	Notes    string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Details  map[string]any     `bson:"details" json:"details"`
}

// UserSummary is the subset of a user exposed on deck enrichment.
type UserSummary struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	FirstName string             `bson:"firstName" json:"firstName"`
	LastName  string             `bson:"lastName" json:"lastName"`
	Email     string             `bson:"email" json:"email"`
}

// DeckOutput is a deck enriched with its creator via a store-side lookup.
type DeckOutput struct {
	ID            primitive.ObjectID `bson:"_id" json:"id"`
	Title         string             `bson:"title" json:"title"`
	Description   string             `bson:"description" json:"description"`
	CreatedBy     primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	Cards         []DeckCard         `bson:"cards" json:"cards"`
	CreatedByUser *UserSummary       `bson:"createdByUser,omitempty" json:"createdByUser,omitempty"`
}
