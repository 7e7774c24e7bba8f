package repositories

import "strings"

// SearchTerm is one key=value token of a structured search query. Pattern is
// used as a case-insensitive regular expression, not a literal substring;
// callers escape metacharacters themselves if they want literal matching.
type SearchTerm struct {
	Key     string
	Pattern string
}

// SearchQuery is a parsed card search input: either a set of field-scoped
// terms that must all match, or a free-text pattern.
type SearchQuery struct {
	Raw      string
	Terms    []SearchTerm
	FreeText string
}

func (q SearchQuery) IsEmpty() bool {
	return q.Raw == ""
}

func (q SearchQuery) Structured() bool {
	return len(q.Terms) > 0
}

// ParseSearchQuery splits a raw query on commas into key=value terms. When no
// token parses as a pair, the whole trimmed query becomes a free-text
// pattern.
func ParseSearchQuery(raw string) SearchQuery {
	trimmed := strings.TrimSpace(raw)
	query := SearchQuery{Raw: trimmed}
	if trimmed == "" {
		return query
	}

	for _, token := range strings.Split(trimmed, ",") {
		key, value, found := strings.Cut(token, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		query.Terms = append(query.Terms, SearchTerm{Key: key, Pattern: value})
	}

	if len(query.Terms) == 0 {
		query.FreeText = trimmed
	}
	return query
}
