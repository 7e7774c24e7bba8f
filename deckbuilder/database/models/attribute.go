package models

// Attribute is a single EAV fact on a card. Exactly one of Value or Values
// carries data; facts with neither are dropped by NormalizeAttributes before
// they ever reach the store.
type Attribute struct {
	Key         string   `bson:"key" json:"key"`
	DisplayText string   `bson:"displayText" json:"displayText,omitempty"`
	Value       string   `bson:"value" json:"value,omitempty"`
	Values      []string `bson:"values" json:"values,omitempty"`
	Searchable  bool     `bson:"searchable" json:"searchable"`
	Visible     bool     `bson:"visible" json:"visible"`
	Language    string   `bson:"language" json:"language,omitempty"`
}

// Empty reports whether the attribute carries no data at all.
func (a Attribute) Empty() bool {
	return a.Value == "" && len(a.Values) == 0
}

// NormalizeAttributes drops empty attributes and guarantees a non-nil values
// array, which the store-side flatten projection depends on.
func NormalizeAttributes(attributes []Attribute) []Attribute {
	kept := make([]Attribute, 0, len(attributes))
	for _, attr := range attributes {
		if attr.Empty() {
			continue
		}
		if attr.Values == nil {
			attr.Values = []string{}
		}
		kept = append(kept, attr)
	}
	return kept
}

// FlattenAttributes converts an attribute list into the flat keyed view:
// multi-value attributes map to their sequence, everything else to the
// scalar value. This is the client-side twin of the store-side
// $arrayToObject projection.
func FlattenAttributes(attributes []Attribute) map[string]any {
	flat := make(map[string]any, len(attributes))
	for _, attr := range attributes {
		if attr.Empty() {
			continue
		}
		if len(attr.Values) > 0 {
			flat[attr.Key] = attr.Values
		} else {
			flat[attr.Key] = attr.Value
		}
	}
	return flat
}
