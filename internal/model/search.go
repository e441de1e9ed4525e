package model

import "strings"

// Search returns the records whose label contains the query, case insensitively.
// An empty query returns all the records.
func Search[M Model](records []M, query string) []M {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return records
	}

	matched := make([]M, 0, len(records))
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Label()), query) {
			matched = append(matched, r)
		}
	}
	return matched
}
