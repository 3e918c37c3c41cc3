package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/globehunters/flight-bff/internal/airport/domain"
	pkgDomain "github.com/globehunters/flight-bff/pkg/domain"
)

type noopLogger struct{}

func (noopLogger) Info(ctx context.Context, msg string, fields map[string]interface{})  {}
func (noopLogger) Debug(ctx context.Context, msg string, fields map[string]interface{}) {}
func (noopLogger) Error(ctx context.Context, msg string, fields map[string]interface{}) {}
func (noopLogger) Trace(ctx context.Context, msg string, fields map[string]interface{}) {}

const rankingFixture = `[
	{"id": "AAA", "city": "Alphaville", "country": "Testland", "country_code": "TL"},
	{"id": "QQQ", "city": "Aaatown", "country": "Testland", "country_code": "TL"},
	{"id": "BBB", "city": "Landon", "country": "Northland", "country_code": "NL"},
	{"id": "CCC", "city": "Bergen", "country": "Southland", "country_code": "SL"}
]`

func newTestDirectory(t *testing.T) *CachedDirectory {
	t.Helper()
	dir, err := NewCachedDirectory(context.Background(), NewStaticSource(), DirectoryConfig{}, noopLogger{})
	if err != nil {
		t.Fatalf("NewCachedDirectory() error = %v", err)
	}
	return dir
}

func newFixtureDirectory(t *testing.T, data string) *CachedDirectory {
	t.Helper()
	dir, err := NewCachedDirectory(context.Background(), NewStaticSourceFromBytes([]byte(data)), DirectoryConfig{}, noopLogger{})
	if err != nil {
		t.Fatalf("NewCachedDirectory() error = %v", err)
	}
	return dir
}

func TestByCodeIsCaseInsensitive(t *testing.T) {
	dir := newTestDirectory(t)
	ctx := context.Background()

	for _, airport := range dir.All(ctx) {
		upper, err := dir.ByCode(ctx, airport.Code)
		if err != nil {
			t.Fatalf("ByCode(%q) error = %v", airport.Code, err)
		}
		if upper != airport {
			t.Errorf("ByCode(%q) = %+v, want %+v", airport.Code, upper, airport)
		}

		lower, err := dir.ByCode(ctx, strings.ToLower(airport.Code))
		if err != nil {
			t.Fatalf("ByCode(%q) error = %v", strings.ToLower(airport.Code), err)
		}
		if lower != upper {
			t.Errorf("ByCode(%q) = %+v, want %+v", strings.ToLower(airport.Code), lower, upper)
		}
	}
}

func TestByCodeErrors(t *testing.T) {
	dir := newTestDirectory(t)
	ctx := context.Background()

	if _, err := dir.ByCode(ctx, "ZZZ"); !errors.Is(err, pkgDomain.ErrNotFound) {
		t.Errorf("ByCode(ZZZ) error = %v, want ErrNotFound", err)
	}
	if _, err := dir.ByCode(ctx, "   "); !errors.Is(err, pkgDomain.ErrInvalidArgument) {
		t.Errorf("ByCode(blank) error = %v, want ErrInvalidArgument", err)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	dir := newTestDirectory(t)
	ctx := context.Background()

	for _, query := range []string{"", "   ", "\t"} {
		results, err := dir.Search(ctx, query, 10)
		if err != nil {
			t.Fatalf("Search(%q) error = %v", query, err)
		}
		if len(results) != 0 {
			t.Errorf("Search(%q) returned %d results, want 0", query, len(results))
		}
	}
}

func TestSearchNegativeLimit(t *testing.T) {
	dir := newTestDirectory(t)

	if _, err := dir.Search(context.Background(), "lon", -1); !errors.Is(err, pkgDomain.ErrInvalidArgument) {
		t.Errorf("Search(lon, -1) error = %v, want ErrInvalidArgument", err)
	}
}

func TestSearchHugeLimit(t *testing.T) {
	dir := newTestDirectory(t)
	ctx := context.Background()

	// A limit far above the dataset size is valid input and must not cost
	// memory proportional to it.
	results, err := dir.Search(ctx, "lon", 1<<40)
	if err != nil {
		t.Fatalf("Search(lon, 1<<40) error = %v", err)
	}
	if len(results) == 0 {
		t.Fatal("Search(lon, 1<<40) returned no results")
	}
	if all := dir.All(ctx); len(results) > len(all) {
		t.Errorf("Search(lon, 1<<40) returned %d results for a dataset of %d", len(results), len(all))
	}
}

func TestSearchLimitAndOrdering(t *testing.T) {
	dir := newTestDirectory(t)
	ctx := context.Background()

	results, err := dir.Search(ctx, "a", 3)
	if err != nil {
		t.Fatalf("Search(a, 3) error = %v", err)
	}
	if len(results) > 3 {
		t.Errorf("Search(a, 3) returned %d results, want at most 3", len(results))
	}

	results, err = dir.Search(ctx, "lon", 50)
	if err != nil {
		t.Fatalf("Search(lon, 50) error = %v", err)
	}
	if len(results) == 0 {
		t.Fatal("Search(lon, 50) returned no results")
	}
	for i := 1; i < len(results); i++ {
		if results[i].MatchScore > results[i-1].MatchScore {
			t.Errorf("results not sorted: score %d at %d above score %d at %d",
				results[i].MatchScore, i, results[i-1].MatchScore, i-1)
		}
	}
}

func TestSearchTieBreakIsDatasetOrder(t *testing.T) {
	dir := newTestDirectory(t)

	// All five London airports match the city tier with the same weight, so
	// they must come back in dataset order.
	results, err := dir.Search(context.Background(), "london", 10)
	if err != nil {
		t.Fatalf("Search(london) error = %v", err)
	}

	var codes []string
	for _, r := range results {
		codes = append(codes, r.Code)
	}
	want := []string{"LHR", "LGW", "STN", "LTN", "LCY"}
	if len(codes) < len(want) {
		t.Fatalf("Search(london) = %v, want at least %v", codes, want)
	}
	for i, code := range want {
		if codes[i] != code {
			t.Errorf("Search(london)[%d] = %s, want %s", i, codes[i], code)
		}
	}
}

func TestSearchRankingTiers(t *testing.T) {
	dir := newFixtureDirectory(t, rankingFixture)
	ctx := context.Background()

	t.Run("exact code outranks city prefix", func(t *testing.T) {
		// AAA matches its code exactly, QQQ only through its city.
		results, err := dir.Search(ctx, "aaa", 10)
		if err != nil {
			t.Fatalf("Search(aaa) error = %v", err)
		}
		if len(results) != 2 {
			t.Fatalf("Search(aaa) returned %d results, want 2", len(results))
		}
		if results[0].Code != "AAA" || results[1].Code != "QQQ" {
			t.Errorf("Search(aaa) order = %s, %s, want AAA, QQQ", results[0].Code, results[1].Code)
		}
		if results[0].MatchScore <= results[1].MatchScore {
			t.Errorf("exact match score %d not above city score %d", results[0].MatchScore, results[1].MatchScore)
		}
	})

	t.Run("code prefix outranks city prefix", func(t *testing.T) {
		results, err := dir.Search(ctx, "aa", 10)
		if err != nil {
			t.Fatalf("Search(aa) error = %v", err)
		}
		if len(results) != 2 {
			t.Fatalf("Search(aa) returned %d results, want 2", len(results))
		}
		if results[0].Code != "AAA" || results[1].Code != "QQQ" {
			t.Errorf("Search(aa) order = %s, %s, want AAA, QQQ", results[0].Code, results[1].Code)
		}
	})

	t.Run("multi field outranks single field", func(t *testing.T) {
		// BBB matches city prefix and country contains; CCC matches only
		// country contains.
		results, err := dir.Search(ctx, "land", 10)
		if err != nil {
			t.Fatalf("Search(land) error = %v", err)
		}
		scores := make(map[string]int)
		fields := make(map[string][]string)
		for _, r := range results {
			scores[r.Code] = r.MatchScore
			fields[r.Code] = r.MatchedFields
		}
		if scores["BBB"] <= scores["CCC"] {
			t.Errorf("BBB score %d not above CCC score %d", scores["BBB"], scores["CCC"])
		}
		if len(fields["BBB"]) != 2 {
			t.Errorf("BBB matched fields = %v, want city and country", fields["BBB"])
		}
		if len(fields["CCC"]) != 1 || fields["CCC"][0] != "country" {
			t.Errorf("CCC matched fields = %v, want [country]", fields["CCC"])
		}
	})

	t.Run("no match is excluded", func(t *testing.T) {
		results, err := dir.Search(ctx, "xyzzy", 10)
		if err != nil {
			t.Fatalf("Search(xyzzy) error = %v", err)
		}
		if len(results) != 0 {
			t.Errorf("Search(xyzzy) = %v, want no results", results)
		}
	})
}

func TestPopularIsCuratedSubset(t *testing.T) {
	dir := newTestDirectory(t)
	ctx := context.Background()

	popular := dir.Popular(ctx)
	if len(popular) != len(DefaultPopularCodes) {
		t.Fatalf("Popular() returned %d airports, want %d", len(popular), len(DefaultPopularCodes))
	}
	for i, code := range DefaultPopularCodes {
		if popular[i].Code != code {
			t.Errorf("Popular()[%d] = %s, want %s", i, popular[i].Code, code)
		}
	}
}

func TestRefreshStaticSourceIsIdempotent(t *testing.T) {
	dir := newTestDirectory(t)
	ctx := context.Background()

	first, err := dir.Refresh(ctx)
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	second, err := dir.Refresh(ctx)
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	all := dir.All(ctx)
	if len(first) != len(second) || len(first) != len(all) {
		t.Fatalf("Refresh counts differ: %d, %d, All() = %d", len(first), len(second), len(all))
	}
	for i := range first {
		if first[i] != second[i] || first[i] != all[i] {
			t.Errorf("airport %d differs between refreshes: %+v, %+v, %+v", i, first[i], second[i], all[i])
		}
	}
}

// flakySource alternates between datasets to exercise a live refresh.
type flakySource struct {
	airports []domain.Airport
	fail     bool
}

func (s *flakySource) Load(ctx context.Context) ([]domain.Airport, error) {
	if s.fail {
		return nil, fmt.Errorf("%w: source offline", pkgDomain.ErrDataUnavailable)
	}
	return append([]domain.Airport(nil), s.airports...), nil
}

func TestRefreshLiveSource(t *testing.T) {
	source := &flakySource{airports: []domain.Airport{
		{Code: "AAA", City: "Alphaville", Country: "Testland", CountryCode: "TL"},
	}}

	dir, err := NewCachedDirectory(context.Background(), source, DirectoryConfig{LiveSource: true}, noopLogger{})
	if err != nil {
		t.Fatalf("NewCachedDirectory() error = %v", err)
	}
	ctx := context.Background()

	source.airports = append(source.airports, domain.Airport{
		Code: "BBB", City: "Betaville", Country: "Testland", CountryCode: "TL",
	})

	refreshed, err := dir.Refresh(ctx)
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if len(refreshed) != 2 {
		t.Fatalf("Refresh() returned %d airports, want 2", len(refreshed))
	}
	if _, err := dir.ByCode(ctx, "BBB"); err != nil {
		t.Errorf("ByCode(BBB) after refresh error = %v", err)
	}

	// A failed reload must keep the previous snapshot.
	source.fail = true
	if _, err := dir.Refresh(ctx); !errors.Is(err, pkgDomain.ErrDataUnavailable) {
		t.Errorf("Refresh() with offline source error = %v, want ErrDataUnavailable", err)
	}
	if got := dir.All(ctx); len(got) != 2 {
		t.Errorf("All() after failed refresh = %d airports, want 2", len(got))
	}
}

func TestAllReturnsACopy(t *testing.T) {
	dir := newFixtureDirectory(t, rankingFixture)
	ctx := context.Background()

	first := dir.All(ctx)
	first[0].City = "mutated"

	second := dir.All(ctx)
	if second[0].City == "mutated" {
		t.Error("All() exposed the internal snapshot to mutation")
	}
}
