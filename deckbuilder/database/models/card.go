package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Rarity codes used by pack generation.
const (
	RarityRare                = "rare"
	RarityCommon              = "common"
	RarityUncommon            = "uncommon"
	RarityFoilPremium         = "foil-premium"
	RarityHoloPortraitPremium = "holo-portrait-premium"
)

// Card is the stored EAV document. Different games put different attribute
// sets on their cards; the document carries no fixed columns beyond identity
// and language.
type Card struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Language   string             `bson:"language" json:"language"`
	Attributes []Attribute        `bson:"attributes" json:"attributes"`
}

// Normalize prepares a card for insertion, see NormalizeAttributes.
func (c *Card) Normalize() {
	c.Attributes = NormalizeAttributes(c.Attributes)
}

// Output flattens the card into its client view.
func (c *Card) Output() CardOutput {
	return CardOutput{
		ID:         c.ID,
		Language:   c.Language,
		Attributes: FlattenAttributes(c.Attributes),
	}
}

// CardOutput is the flattened client view of a card: one entry per attribute
// key, holding either a scalar string or a sequence of strings.
type CardOutput struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	Language   string             `bson:"language" json:"language"`
	Attributes map[string]any     `bson:"attributes" json:"attributes"`
}
