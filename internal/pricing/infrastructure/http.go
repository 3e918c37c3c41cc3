package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/globehunters/flight-bff/internal/pricing/application"
	"github.com/globehunters/flight-bff/internal/pricing/domain"
	pkgApp "github.com/globehunters/flight-bff/pkg/application"
	pkgDomain "github.com/globehunters/flight-bff/pkg/domain"
)

type PricingHTTPHandler struct {
	commandBus  pkgApp.CommandBus[pkgDomain.Command[application.QuoteProtectionPlanData], application.QuoteProtectionPlanData]
	queryBus    pkgApp.QueryBus[pkgDomain.Query[application.ComputePlanPriceData], application.ComputePlanPriceData, domain.PlanPrice]
	idGenerator pkgDomain.IDGenerator[string]
}

func NewPricingHTTPHandler(
	commandBus pkgApp.CommandBus[pkgDomain.Command[application.QuoteProtectionPlanData], application.QuoteProtectionPlanData],
	queryBus pkgApp.QueryBus[pkgDomain.Query[application.ComputePlanPriceData], application.ComputePlanPriceData, domain.PlanPrice],
	idGenerator pkgDomain.IDGenerator[string],
) *PricingHTTPHandler {
	return &PricingHTTPHandler{
		commandBus:  commandBus,
		queryBus:    queryBus,
		idGenerator: idGenerator,
	}
}

// HandleComputePlanPrice answers with 400 on invalid input: a bad tier or
// region here is a client integration bug, not a transient condition.
func (h *PricingHTTPHandler) HandleComputePlanPrice(w http.ResponseWriter, r *http.Request) {
	var data application.ComputePlanPriceData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		handleError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	query := application.NewComputePlanPriceQuery(data)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	price, err := h.queryBus.Dispatch(ctx, query)
	if err != nil {
		if errors.Is(err, pkgDomain.ErrInvalidArgument) {
			handleError(w, err.Error(), http.StatusBadRequest)
			return
		}
		handleError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(price); err != nil {
		handleError(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *PricingHTTPHandler) HandleQuoteProtectionPlan(w http.ResponseWriter, r *http.Request) {
	var data application.QuoteProtectionPlanData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		handleError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	data.QuoteID = h.idGenerator()

	command := application.NewQuoteProtectionPlanCommand(data)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.commandBus.Dispatch(ctx, command); err != nil {
		if errors.Is(err, pkgDomain.ErrInvalidArgument) {
			handleError(w, err.Error(), http.StatusBadRequest)
			return
		}
		handleError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	if err := json.NewEncoder(w).Encode(map[string]interface{}{"message": "Protection plan quoted", "quoteId": data.QuoteID, "data": data}); err != nil {
		handleError(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *PricingHTTPHandler) RegisterRoutes(router chi.Router) {
	router.Post("/pricing/protection-plan", h.HandleComputePlanPrice)
	router.Post("/pricing/protection-plan/quote", h.HandleQuoteProtectionPlan)
}

func handleError(w http.ResponseWriter, message string, statusCode int) {
	http.Error(w, message, statusCode)
}
