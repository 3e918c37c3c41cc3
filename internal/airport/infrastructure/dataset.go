package infrastructure

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/globehunters/flight-bff/internal/airport/domain"
	pkgDomain "github.com/globehunters/flight-bff/pkg/domain"
)

//go:embed airports.json
var airportsJSON []byte

// Source supplies the airport dataset. It is read once at startup and again
// on refresh when the source is live.
type Source interface {
	Load(ctx context.Context) ([]domain.Airport, error)
}

// airportRecord mirrors the upstream dataset field naming.
type airportRecord struct {
	ID          string `json:"id"`
	City        string `json:"city"`
	Country     string `json:"country"`
	CountryCode string `json:"country_code"`
	Name        string `json:"name,omitempty"`
}

func mapRecords(records []airportRecord) ([]domain.Airport, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: airport dataset is empty", pkgDomain.ErrDataUnavailable)
	}

	airports := make([]domain.Airport, 0, len(records))
	for i, record := range records {
		code := strings.ToUpper(strings.TrimSpace(record.ID))
		if len(code) != 3 {
			return nil, fmt.Errorf("%w: record %d has malformed code %q", pkgDomain.ErrDataUnavailable, i, record.ID)
		}
		airports = append(airports, domain.Airport{
			Code:        code,
			City:        record.City,
			Country:     record.Country,
			CountryCode: strings.ToUpper(record.CountryCode),
			Name:        record.Name,
		})
	}
	return airports, nil
}

// StaticSource parses the dataset embedded in the binary.
type StaticSource struct {
	data []byte
}

func NewStaticSource() *StaticSource {
	return &StaticSource{data: airportsJSON}
}

// NewStaticSourceFromBytes builds a source over caller-provided JSON.
func NewStaticSourceFromBytes(data []byte) *StaticSource {
	return &StaticSource{data: data}
}

func (s *StaticSource) Load(ctx context.Context) ([]domain.Airport, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var records []airportRecord
	if err := json.Unmarshal(s.data, &records); err != nil {
		return nil, fmt.Errorf("%w: parsing airport dataset: %v", pkgDomain.ErrDataUnavailable, err)
	}

	return mapRecords(records)
}
