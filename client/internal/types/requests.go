package types

import "strconv"

// ------------------------------
// Request Types
// ------------------------------

// SearchParams are query parameters sent verbatim to /json/search.
// Callers control filtering, sorting and paging through them.
type SearchParams map[string]string

// PublishedFilter is ANDed onto every legacy search query.
const PublishedFilter = "status:published"

// LegacySearchLimit is the fixed page size of the legacy search form.
const LegacySearchLimit = 50

// LegacySearchParams reproduces the first-generation search call: the query
// fragment, if any, is ANDed with the published filter and the result count
// is capped at LegacySearchLimit.
func LegacySearchParams(query string) SearchParams {
	q := PublishedFilter
	if query != "" {
		q = query + " AND " + PublishedFilter
	}
	return SearchParams{
		"query": q,
		"limit": strconv.Itoa(LegacySearchLimit),
	}
}
