package pipelines

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestAttributeFilter(t *testing.T) {
	got := AttributeFilter("setCode", "hp1")

	want := bson.M{"attributes": bson.M{"$elemMatch": bson.M{"key": "setCode", "value": "hp1"}}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AttributeFilter() = %v, want %v", got, want)
	}
}

func TestMatchBySetCodeAndCode(t *testing.T) {
	stage := MatchBySetCodeAndCode("hp1", "042")

	if stage[0].Key != "$match" {
		t.Fatalf("stage key = %s, want $match", stage[0].Key)
	}
	filter, ok := stage[0].Value.(bson.M)
	if !ok {
		t.Fatalf("stage value is %T, want bson.M", stage[0].Value)
	}
	and, ok := filter["$and"].(bson.A)
	if !ok || len(and) != 2 {
		t.Fatalf("$and = %v, want two elemMatch filters", filter["$and"])
	}
}

func TestSearchableAttributeFilter(t *testing.T) {
	got := SearchableAttributeFilter("name", "hermione")

	elem := got["attributes"].(bson.M)["$elemMatch"].(bson.M)
	if elem["key"] != "name" {
		t.Errorf("elemMatch key = %v, want name", elem["key"])
	}
	if elem["searchable"] != true {
		t.Error("elemMatch does not require searchable: true")
	}
	if _, ok := elem["$or"]; !ok {
		t.Error("elemMatch lacks the value/values $or")
	}
}

func TestFreeTextFilter(t *testing.T) {
	got := FreeTextFilter("dragon")

	elem := got["attributes"].(bson.M)["$elemMatch"].(bson.M)
	if _, hasKey := elem["key"]; hasKey {
		t.Error("free text filter must not pin an attribute key")
	}
	if elem["searchable"] != true {
		t.Error("free text filter does not require searchable: true")
	}
}

func TestFacetCardsByRarities_SampleSizes(t *testing.T) {
	stage := FacetCardsByRarities()

	facet, ok := stage[0].Value.(bson.M)
	if !ok {
		t.Fatalf("facet value is %T, want bson.M", stage[0].Value)
	}

	tests := []struct {
		tier string
		size int
	}{
		{tier: "rareOrPremium", size: 1},
		{tier: "uncommon", size: 2},
		{tier: "common", size: 12},
	}
	for _, tt := range tests {
		t.Run(tt.tier, func(t *testing.T) {
			sub, ok := facet[tt.tier].(bson.A)
			if !ok || len(sub) != 2 {
				t.Fatalf("tier %s = %v, want match + sample stages", tt.tier, facet[tt.tier])
			}
			sample := sub[1].(bson.D)
			size := sample[0].Value.(bson.M)["size"]
			if size != tt.size {
				t.Errorf("tier %s sample size = %v, want %d", tt.tier, size, tt.size)
			}
		})
	}
}

func TestProjectFacetToRoot_DeduplicatesByID(t *testing.T) {
	stages := ProjectFacetToRoot()

	if len(stages) != 5 {
		t.Fatalf("ProjectFacetToRoot() has %d stages, want 5", len(stages))
	}

	group := stages[3]
	if group[0].Key != "$group" {
		t.Fatalf("stage 4 key = %s, want $group", group[0].Key)
	}
	spec := group[0].Value.(bson.M)
	if spec["_id"] != "$_id" {
		t.Errorf("group id = %v, want $_id", spec["_id"])
	}
	card := spec["card"].(bson.M)
	if card["$first"] != "$$ROOT" {
		t.Errorf("group accumulator = %v, want $first $$ROOT", card)
	}
}

func TestProjectCardDetails_FlattenShape(t *testing.T) {
	stage := ProjectCardDetails()

	project := stage[0].Value.(bson.M)
	if project["_id"] != 1 || project["language"] != 1 {
		t.Error("projection must keep _id and language")
	}
	attrs, ok := project["attributes"].(bson.M)
	if !ok {
		t.Fatalf("attributes projection is %T, want bson.M", project["attributes"])
	}
	if _, ok := attrs["$arrayToObject"]; !ok {
		t.Error("attributes projection must fold pairs with $arrayToObject")
	}
}
