// Package pipelines builds aggregation stage documents for the card and deck
// collections. Everything here is pure construction; no I/O happens until a
// repository hands a pipeline to the store.
package pipelines

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hptcg/deckbuilder-api/deckbuilder/database/models"
)

// Pack tier sample sizes.
const (
	rareOrPremiumSampleSize = 1
	uncommonSampleSize      = 2
	commonSampleSize        = 12
)

// Match wraps a filter document into a $match stage so the same filters can
// serve both find queries and aggregations.
func Match(filter bson.M) bson.D {
	return bson.D{{Key: "$match", Value: filter}}
}

func MatchByID(id primitive.ObjectID) bson.D {
	return Match(bson.M{"_id": id})
}

func MatchIDsInArray(ids []primitive.ObjectID) bson.D {
	return Match(bson.M{"_id": bson.M{"$in": ids}})
}

// AttributeFilter matches cards having an attribute element with both the
// given key and value. The $elemMatch is deliberate: matching key and value
// as independent conditions would accept a card whose key and value live on
// two different attributes.
func AttributeFilter(key, value string) bson.M {
	return bson.M{"attributes": bson.M{"$elemMatch": bson.M{"key": key, "value": value}}}
}

func MatchBySet(setCode string) bson.D {
	return Match(AttributeFilter("setCode", setCode))
}

func MatchBySetCodeAndCode(setCode, code string) bson.D {
	return Match(bson.M{"$and": bson.A{
		AttributeFilter("setCode", setCode),
		AttributeFilter("code", code),
	}})
}

// searchableElem matches one searchable attribute element whose scalar value
// or any sequence element matches the case-insensitive pattern.
func searchableElem(pattern string) bson.M {
	re := primitive.Regex{Pattern: pattern, Options: "i"}
	return bson.M{
		"searchable": true,
		"$or":        bson.A{bson.M{"value": re}, bson.M{"values": re}},
	}
}

// SearchableAttributeFilter scopes a pattern to a single attribute key.
func SearchableAttributeFilter(key, pattern string) bson.M {
	elem := searchableElem(pattern)
	elem["key"] = key
	return bson.M{"attributes": bson.M{"$elemMatch": elem}}
}

// FreeTextFilter matches the pattern against any searchable attribute,
// key-agnostic.
func FreeTextFilter(pattern string) bson.M {
	return bson.M{"attributes": bson.M{"$elemMatch": searchableElem(pattern)}}
}

// AllFilters combines filters so that every one must match.
func AllFilters(filters []bson.M) bson.M {
	and := make(bson.A, 0, len(filters))
	for _, filter := range filters {
		and = append(and, filter)
	}
	return bson.M{"$and": and}
}

// ProjectCardDetails flattens the attribute list store-side: each attribute
// becomes a key/value pair (the sequence when non-empty, the scalar
// otherwise) and the pairs are folded into a single object.
func ProjectCardDetails() bson.D {
	return bson.D{{Key: "$project", Value: bson.M{
		"_id":      1,
		"language": 1,
		"attributes": bson.M{"$arrayToObject": bson.M{"$map": bson.M{
			"input": "$attributes",
			"as":    "attr",
			"in": bson.A{
				bson.M{"$toString": "$$attr.key"},
				bson.M{"$cond": bson.M{
					"if": bson.M{"$eq": bson.A{
						bson.M{"$size": bson.M{"$ifNull": bson.A{"$$attr.values", bson.A{}}}},
						0,
					}},
					"then": "$$attr.value",
					"else": "$$attr.values",
				}},
			},
		}}},
	}}}
}

func matchByRarities(rarities []string) bson.D {
	values := make(bson.A, 0, len(rarities))
	for _, rarity := range rarities {
		values = append(values, rarity)
	}
	return Match(bson.M{"attributes": bson.M{"$elemMatch": bson.M{
		"key":   "rarityCode",
		"value": bson.M{"$in": values},
	}}})
}

// SampleWithSize draws uniformly at random without replacement; fewer
// documents than the size is under-sampling, not an error.
func SampleWithSize(size int) bson.D {
	return bson.D{{Key: "$sample", Value: bson.M{"size": size}}}
}

// FacetCardsByRarities fans the filtered set out into three independently
// sampled rarity tiers.
func FacetCardsByRarities() bson.D {
	return bson.D{{Key: "$facet", Value: bson.M{
		"rareOrPremium": bson.A{
			matchByRarities([]string{models.RarityRare, models.RarityFoilPremium, models.RarityHoloPortraitPremium}),
			SampleWithSize(rareOrPremiumSampleSize),
		},
		"uncommon": bson.A{
			matchByRarities([]string{models.RarityUncommon}),
			SampleWithSize(uncommonSampleSize),
		},
		"common": bson.A{
			matchByRarities([]string{models.RarityCommon}),
			SampleWithSize(commonSampleSize),
		},
	}}}
}

// ProjectFacetToRoot merges the three tier facets back into root-level card
// documents and deduplicates by id, keeping the first occurrence when a
// misclassified rarity lands the same card in two tiers.
func ProjectFacetToRoot() []bson.D {
	return []bson.D{
		{{Key: "$project", Value: bson.M{
			"packCards": bson.M{"$concatArrays": bson.A{"$rareOrPremium", "$uncommon", "$common"}},
		}}},
		{{Key: "$unwind", Value: "$packCards"}},
		{{Key: "$replaceRoot", Value: bson.M{"newRoot": "$packCards"}}},
		{{Key: "$group", Value: bson.M{
			"_id":  "$_id",
			"card": bson.M{"$first": "$$ROOT"},
		}}},
		{{Key: "$replaceRoot", Value: bson.M{"newRoot": "$card"}}},
	}
}
