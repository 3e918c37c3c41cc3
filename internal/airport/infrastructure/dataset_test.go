package infrastructure

import (
	"context"
	"errors"
	"testing"

	pkgDomain "github.com/globehunters/flight-bff/pkg/domain"
)

func TestStaticSourceLoadsEmbeddedDataset(t *testing.T) {
	airports, err := NewStaticSource().Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(airports) == 0 {
		t.Fatal("Load() returned an empty dataset")
	}
	for i, a := range airports {
		if len(a.Code) != 3 {
			t.Errorf("airport %d has malformed code %q", i, a.Code)
		}
		if a.City == "" || a.Country == "" || a.CountryCode == "" {
			t.Errorf("airport %d has missing fields: %+v", i, a)
		}
	}
}

func TestStaticSourceFieldMapping(t *testing.T) {
	data := `[{"id": "lhr", "city": "London", "country": "United Kingdom", "country_code": "gb", "name": "Heathrow"}]`

	airports, err := NewStaticSourceFromBytes([]byte(data)).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(airports) != 1 {
		t.Fatalf("Load() returned %d airports, want 1", len(airports))
	}

	got := airports[0]
	if got.Code != "LHR" {
		t.Errorf("Code = %q, want LHR", got.Code)
	}
	if got.CountryCode != "GB" {
		t.Errorf("CountryCode = %q, want GB", got.CountryCode)
	}
	if got.City != "London" || got.Country != "United Kingdom" || got.Name != "Heathrow" {
		t.Errorf("unexpected mapping: %+v", got)
	}
}

func TestStaticSourceRejectsBadData(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed json", `{"not": "an array"`},
		{"wrong shape", `{"airports": []}`},
		{"empty dataset", `[]`},
		{"short code", `[{"id": "LH", "city": "London", "country": "United Kingdom", "country_code": "GB"}]`},
		{"long code", `[{"id": "LHRX", "city": "London", "country": "United Kingdom", "country_code": "GB"}]`},
		{"blank code", `[{"id": "   ", "city": "London", "country": "United Kingdom", "country_code": "GB"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStaticSourceFromBytes([]byte(tt.data)).Load(context.Background())
			if !errors.Is(err, pkgDomain.ErrDataUnavailable) {
				t.Errorf("Load() error = %v, want ErrDataUnavailable", err)
			}
		})
	}
}

func TestStaticSourceHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewStaticSource().Load(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}
