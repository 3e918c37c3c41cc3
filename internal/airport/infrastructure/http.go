package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/globehunters/flight-bff/internal/airport/application"
	"github.com/globehunters/flight-bff/internal/airport/domain"
	pkgApp "github.com/globehunters/flight-bff/pkg/application"
	pkgDomain "github.com/globehunters/flight-bff/pkg/domain"
)

const (
	defaultSearchLimit = 10
	// The dataset is static for the life of the process, so responses are
	// cacheable for a day.
	listCacheControl = "public, max-age=86400"
)

type AirportHTTPHandler struct {
	searchBus pkgApp.QueryBus[pkgDomain.Query[application.SearchAirportsData], application.SearchAirportsData, []domain.SearchResult]
	lookupBus pkgApp.QueryBus[pkgDomain.Query[application.FindAirportByCodeData], application.FindAirportByCodeData, domain.Airport]
	listBus   pkgApp.QueryBus[pkgDomain.Query[application.AirportSetData], application.AirportSetData, []domain.Airport]
	logger    pkgApp.AppLogger
}

func NewAirportHTTPHandler(
	searchBus pkgApp.QueryBus[pkgDomain.Query[application.SearchAirportsData], application.SearchAirportsData, []domain.SearchResult],
	lookupBus pkgApp.QueryBus[pkgDomain.Query[application.FindAirportByCodeData], application.FindAirportByCodeData, domain.Airport],
	listBus pkgApp.QueryBus[pkgDomain.Query[application.AirportSetData], application.AirportSetData, []domain.Airport],
	logger pkgApp.AppLogger,
) *AirportHTTPHandler {
	return &AirportHTTPHandler{
		searchBus: searchBus,
		lookupBus: lookupBus,
		listBus:   listBus,
		logger:    logger,
	}
}

// HandleSearchAirports degrades on any core error: user-facing search never
// answers with a 5xx for a bad query, it answers with zero results and logs
// the diagnostic.
func (h *AirportHTTPHandler) HandleSearchAirports(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	rawQuery := r.URL.Query().Get("q")
	limit := defaultSearchLimit
	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil {
			pkgApp.LogError(ctx, h.logger, "unparsable search limit", err, map[string]interface{}{
				"limit": rawLimit,
			})
			writeJSON(w, http.StatusOK, []domain.SearchResult{})
			return
		}
		limit = parsed
	}

	query := application.NewSearchAirportsQuery(application.SearchAirportsData{
		Query: rawQuery,
		Limit: limit,
	})

	results, err := h.searchBus.Dispatch(ctx, query)
	if err != nil {
		pkgApp.LogError(ctx, h.logger, "airport search degraded to empty result", err, map[string]interface{}{
			"query": rawQuery,
		})
		writeJSON(w, http.StatusOK, []domain.SearchResult{})
		return
	}
	if results == nil {
		results = []domain.SearchResult{}
	}

	writeJSON(w, http.StatusOK, results)
}

func (h *AirportHTTPHandler) HandleFindAirportByCode(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	code := chi.URLParam(r, "code")
	query := application.NewFindAirportByCodeQuery(application.FindAirportByCodeData{Code: code})

	airport, err := h.lookupBus.Dispatch(ctx, query)
	if err != nil {
		switch {
		case errors.Is(err, pkgDomain.ErrNotFound):
			handleError(w, "airport not found", http.StatusNotFound)
		case errors.Is(err, pkgDomain.ErrInvalidArgument):
			handleError(w, err.Error(), http.StatusBadRequest)
		default:
			handleError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, airport)
}

func (h *AirportHTTPHandler) HandleListAirports(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	airports, err := h.listBus.Dispatch(ctx, application.NewListAirportsQuery())
	if err != nil {
		pkgApp.LogError(ctx, h.logger, "airport list degraded to empty result", err, nil)
		writeJSON(w, http.StatusOK, []domain.Airport{})
		return
	}

	w.Header().Set("Cache-Control", listCacheControl)
	writeJSON(w, http.StatusOK, airports)
}

func (h *AirportHTTPHandler) HandlePopularAirports(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	airports, err := h.listBus.Dispatch(ctx, application.NewPopularAirportsQuery())
	if err != nil {
		pkgApp.LogError(ctx, h.logger, "popular airports degraded to empty result", err, nil)
		writeJSON(w, http.StatusOK, []domain.Airport{})
		return
	}

	w.Header().Set("Cache-Control", listCacheControl)
	writeJSON(w, http.StatusOK, airports)
}

func (h *AirportHTTPHandler) HandleRefreshAirports(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	airports, err := h.listBus.Dispatch(ctx, application.NewRefreshAirportsQuery())
	if err != nil {
		handleError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"count":  len(airports),
	})
}

func (h *AirportHTTPHandler) RegisterRoutes(router chi.Router) {
	router.Get("/airports", h.HandleListAirports)
	router.Get("/airports/search", h.HandleSearchAirports)
	router.Get("/airports/popular", h.HandlePopularAirports)
	router.Post("/airports/refresh", h.HandleRefreshAirports)
	router.Get("/airports/{code}", h.HandleFindAirportByCode)
}

func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func handleError(w http.ResponseWriter, message string, statusCode int) {
	http.Error(w, message, statusCode)
}
