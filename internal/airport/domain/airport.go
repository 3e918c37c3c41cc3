package domain

import "context"

// Airport is one record of the directory dataset. Code is the unique key;
// lookups are case-insensitive but the stored casing is preserved.
type Airport struct {
	Code        string `json:"code"`
	City        string `json:"city"`
	Country     string `json:"country"`
	CountryCode string `json:"countryCode"`
	Name        string `json:"name,omitempty"`
}

// SearchResult pairs an airport with its relevance rank for one query. It is
// recomputed per query, never stored.
type SearchResult struct {
	Airport
	MatchScore    int      `json:"matchScore"`
	MatchedFields []string `json:"matchedFields"`
}

// Directory serves the immutable in-memory airport set. Implementations must
// be safe for unlimited concurrent readers once constructed.
type Directory interface {
	// All returns the full airport set.
	All(ctx context.Context) []Airport

	// ByCode resolves a single airport by IATA code, case-insensitively.
	// A miss wraps pkg/domain.ErrNotFound.
	ByCode(ctx context.Context, code string) (Airport, error)

	// Search ranks airports against a free-text query, best match first,
	// at most limit results. An empty or whitespace-only query yields no
	// results. A negative limit wraps pkg/domain.ErrInvalidArgument.
	Search(ctx context.Context, query string, limit int) ([]SearchResult, error)

	// Popular returns the curated high-traffic hub subset.
	Popular(ctx context.Context) []Airport

	// Refresh re-reads the backing source when it is live and returns the
	// current set. Over a static source it returns the set unchanged. It
	// never clears existing data, even when the re-read fails.
	Refresh(ctx context.Context) ([]Airport, error)
}
