package infrastructure

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/globehunters/flight-bff/internal/airport/domain"
	"github.com/globehunters/flight-bff/pkg/application"
	pkgDomain "github.com/globehunters/flight-bff/pkg/domain"
)

// Match tier weights. Each tier must dominate the sum of all lower tiers so
// the relative ordering of single-tier matches is never upset by accumulation.
const (
	weightCodeExact       = 100
	weightCodePrefix      = 60
	weightCityPrefix      = 40
	weightCityContains    = 25
	weightCountryContains = 10
)

// DefaultPopularCodes is the curated hub list served before the user has
// typed a query. Policy, not computation.
var DefaultPopularCodes = []string{
	"LHR", "LGW", "MAN", "EDI", "BHX",
	"DXB", "JFK", "LAX", "SIN", "HKG", "BKK", "SYD",
}

type DirectoryConfig struct {
	// PopularCodes overrides DefaultPopularCodes when non-nil.
	PopularCodes []string
	// LiveSource makes Refresh re-read the source instead of returning the
	// startup snapshot.
	LiveSource bool
}

type snapshot struct {
	airports []domain.Airport
	byCode   map[string]int
}

func newSnapshot(airports []domain.Airport) *snapshot {
	byCode := make(map[string]int, len(airports))
	for i, a := range airports {
		byCode[strings.ToUpper(a.Code)] = i
	}
	return &snapshot{airports: airports, byCode: byCode}
}

// CachedDirectory holds the airport set in memory. The snapshot is immutable;
// a live refresh swaps the whole snapshot under the lock, so readers never
// observe partial state.
type CachedDirectory struct {
	source Source
	cfg    DirectoryConfig
	logger application.AppLogger

	mu   sync.RWMutex
	snap *snapshot
}

// NewCachedDirectory loads the dataset once. A load failure here is a startup
// failure, not a per-request condition.
func NewCachedDirectory(ctx context.Context, source Source, cfg DirectoryConfig, logger application.AppLogger) (*CachedDirectory, error) {
	airports, err := source.Load(ctx)
	if err != nil {
		application.LogError(ctx, logger, "failed to load airport directory", err, nil)
		return nil, err
	}

	if cfg.PopularCodes == nil {
		cfg.PopularCodes = DefaultPopularCodes
	}

	application.LogInfo(ctx, logger, "airport directory loaded", map[string]interface{}{
		"count": len(airports),
	})

	return &CachedDirectory{
		source: source,
		cfg:    cfg,
		logger: logger,
		snap:   newSnapshot(airports),
	}, nil
}

func (d *CachedDirectory) snapshot() *snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.snap
}

func (d *CachedDirectory) All(ctx context.Context) []domain.Airport {
	snap := d.snapshot()
	return append([]domain.Airport(nil), snap.airports...)
}

func (d *CachedDirectory) ByCode(ctx context.Context, code string) (domain.Airport, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return domain.Airport{}, fmt.Errorf("%w: empty airport code", pkgDomain.ErrInvalidArgument)
	}

	snap := d.snapshot()
	idx, found := snap.byCode[normalized]
	if !found {
		return domain.Airport{}, fmt.Errorf("%w: airport %q", pkgDomain.ErrNotFound, normalized)
	}
	return snap.airports[idx], nil
}

func (d *CachedDirectory) Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: negative limit %d", pkgDomain.ErrInvalidArgument, limit)
	}

	normalized := strings.ToLower(strings.TrimSpace(query))
	if normalized == "" {
		return []domain.SearchResult{}, nil
	}

	snap := d.snapshot()
	// The limit is caller input; the result set can never exceed the dataset.
	results := make([]domain.SearchResult, 0, min(limit, len(snap.airports)))
	for _, airport := range snap.airports {
		score, fields := scoreAirport(airport, normalized)
		if score == 0 {
			continue
		}
		results = append(results, domain.SearchResult{
			Airport:       airport,
			MatchScore:    score,
			MatchedFields: fields,
		})
	}

	// Stable sort keeps dataset order among equal scores, so results are
	// reproducible across calls.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (d *CachedDirectory) Popular(ctx context.Context) []domain.Airport {
	snap := d.snapshot()
	popular := make([]domain.Airport, 0, len(d.cfg.PopularCodes))
	for _, code := range d.cfg.PopularCodes {
		if idx, found := snap.byCode[code]; found {
			popular = append(popular, snap.airports[idx])
		}
	}
	return popular
}

func (d *CachedDirectory) Refresh(ctx context.Context) ([]domain.Airport, error) {
	if !d.cfg.LiveSource {
		application.LogDebug(ctx, d.logger, "refresh requested on static source", nil)
		return d.All(ctx), nil
	}

	airports, err := d.source.Load(ctx)
	if err != nil {
		// The previous snapshot stays in place.
		application.LogError(ctx, d.logger, "airport refresh failed, keeping current data", err, nil)
		return nil, err
	}

	snap := newSnapshot(airports)
	d.mu.Lock()
	d.snap = snap
	d.mu.Unlock()

	application.LogInfo(ctx, d.logger, "airport directory refreshed", map[string]interface{}{
		"count": len(airports),
	})
	return append([]domain.Airport(nil), airports...), nil
}

// scoreAirport rates one airport against a normalized query. Tiers within a
// field are exclusive (an exact code match is not also a prefix match), while
// contributions across fields accumulate, so a city+country match outranks a
// bare country match.
func scoreAirport(airport domain.Airport, query string) (int, []string) {
	score := 0
	var fields []string

	code := strings.ToLower(airport.Code)
	switch {
	case code == query:
		score += weightCodeExact
		fields = append(fields, "code")
	case strings.HasPrefix(code, query):
		score += weightCodePrefix
		fields = append(fields, "code")
	}

	city := strings.ToLower(airport.City)
	switch {
	case strings.HasPrefix(city, query):
		score += weightCityPrefix
		fields = append(fields, "city")
	case strings.Contains(city, query):
		score += weightCityContains
		fields = append(fields, "city")
	}

	if strings.Contains(strings.ToLower(airport.Country), query) {
		score += weightCountryContains
		fields = append(fields, "country")
	}

	return score, fields
}
