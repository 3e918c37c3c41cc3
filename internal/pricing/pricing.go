package pricing

import (
	"github.com/go-chi/chi/v5"

	"github.com/globehunters/flight-bff/internal/pricing/application"
	"github.com/globehunters/flight-bff/internal/pricing/domain"
	"github.com/globehunters/flight-bff/internal/pricing/infrastructure"
	pkgApp "github.com/globehunters/flight-bff/pkg/application"
	pkgDomain "github.com/globehunters/flight-bff/pkg/domain"
)

type PricingSlice struct {
	httpHandler *infrastructure.PricingHTTPHandler
}

func NewPricingSlice(
	commandBus pkgApp.CommandBus[pkgDomain.Command[application.QuoteProtectionPlanData], application.QuoteProtectionPlanData],
	queryBus pkgApp.QueryBus[pkgDomain.Query[application.ComputePlanPriceData], application.ComputePlanPriceData, domain.PlanPrice],
	idGenerator pkgDomain.IDGenerator[string],
	logger pkgApp.AppLogger,
	eventBus pkgApp.EventBus[pkgDomain.Event[string], string],
	engine *domain.Engine,
) *PricingSlice {
	commandHandler := application.NewQuoteProtectionPlanHandler(engine, eventBus, idGenerator, logger)
	queryHandler := application.NewComputePlanPriceHandler(engine, logger)
	eventHandler := application.NewProtectionPlanQuotedEventHandler(logger)

	commandBus.RegisterHandler("QuoteProtectionPlan", commandHandler)
	queryBus.RegisterHandler("ComputePlanPrice", queryHandler)
	eventBus.RegisterHandler("ProtectionPlanQuoted", eventHandler)

	httpHandler := infrastructure.NewPricingHTTPHandler(commandBus, queryBus, idGenerator)

	return &PricingSlice{
		httpHandler: httpHandler,
	}
}

func (s *PricingSlice) RegisterRoutes(router *chi.Mux) {
	s.httpHandler.RegisterRoutes(router)
}
