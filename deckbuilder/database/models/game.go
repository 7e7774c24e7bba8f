package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Game is catalog metadata for one card game. NumberOfCards is declared by
// the import files and not enforced against the actual card count.
type Game struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Description   string             `bson:"description" json:"description"`
	NumberOfCards int                `bson:"numberOfCards" json:"numberOfCards"`
}
