package pricing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/globehunters/flight-bff/internal/pricing/application"
	"github.com/globehunters/flight-bff/internal/pricing/domain"
	pkgDomain "github.com/globehunters/flight-bff/pkg/domain"
	pkgInfra "github.com/globehunters/flight-bff/pkg/infrastructure"
)

type noopLogger struct{}

func (noopLogger) Info(ctx context.Context, msg string, fields map[string]interface{})  {}
func (noopLogger) Debug(ctx context.Context, msg string, fields map[string]interface{}) {}
func (noopLogger) Error(ctx context.Context, msg string, fields map[string]interface{}) {}
func (noopLogger) Trace(ctx context.Context, msg string, fields map[string]interface{}) {}

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	logger := noopLogger{}
	engine, err := domain.NewEngine(domain.DefaultRateTable())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	commandBus := pkgInfra.NewSimpleCommandBus[pkgDomain.Command[application.QuoteProtectionPlanData], application.QuoteProtectionPlanData]()
	queryBus := pkgInfra.NewSimpleQueryBus[pkgDomain.Query[application.ComputePlanPriceData], application.ComputePlanPriceData, domain.PlanPrice]()
	eventBus := pkgInfra.NewSimpleEventBus[pkgDomain.Event[string], string](logger)
	idGenerator := func() string { return uuid.New().String() }

	slice := NewPricingSlice(commandBus, queryBus, idGenerator, logger, eventBus, engine)

	router := chi.NewRouter()
	slice.RegisterRoutes(router)
	return router
}

func postJSON(t *testing.T, router *chi.Mux, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	request := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func TestComputePlanPriceEndpoint(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name string
		body string
		want float64
	}{
		{"global premium", `{"baseFare": 1000, "region": "global", "tier": "premium"}`, 100},
		{"uk first slab basic", `{"baseFare": 700, "region": "uk", "tier": "basic"}`, 42},
		{"uk slab boundary", `{"baseFare": 650, "region": "uk", "tier": "all"}`, 143},
		{"uk open slab", `{"baseFare": 1500, "region": "uk", "tier": "premium"}`, 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := postJSON(t, router, "/pricing/protection-plan", tt.body)
			if recorder.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d: %s", recorder.Code, http.StatusOK, recorder.Body.String())
			}

			var price domain.PlanPrice
			if err := json.Unmarshal(recorder.Body.Bytes(), &price); err != nil {
				t.Fatalf("unmarshal response: %v", err)
			}
			if price.Amount != tt.want {
				t.Errorf("Amount = %v, want %v", price.Amount, tt.want)
			}
		})
	}
}

func TestComputePlanPriceEndpointRejectsInvalidInput(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"negative fare", `{"baseFare": -1, "region": "global", "tier": "basic"}`},
		{"unknown region", `{"baseFare": 100, "region": "eu", "tier": "basic"}`},
		{"unknown tier", `{"baseFare": 100, "region": "global", "tier": "platinum"}`},
		{"malformed body", `{"baseFare": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := postJSON(t, router, "/pricing/protection-plan", tt.body)
			if recorder.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d: %s", recorder.Code, http.StatusBadRequest, recorder.Body.String())
			}
		})
	}
}

func TestQuoteProtectionPlanEndpoint(t *testing.T) {
	router := newTestRouter(t)

	recorder := postJSON(t, router, "/pricing/protection-plan/quote", `{"baseFare": 700, "region": "uk", "tier": "premium"}`)
	if recorder.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want %d: %s", recorder.Code, http.StatusAccepted, recorder.Body.String())
	}

	var body struct {
		QuoteID string `json:"quoteId"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if _, err := uuid.Parse(body.QuoteID); err != nil {
		t.Errorf("quoteId = %q, want a uuid: %v", body.QuoteID, err)
	}

	recorder = postJSON(t, router, "/pricing/protection-plan/quote", `{"baseFare": 700, "region": "uk", "tier": "gold"}`)
	if recorder.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d: %s", recorder.Code, http.StatusBadRequest, recorder.Body.String())
	}
}
