package application

import (
	"context"
	"fmt"

	"github.com/globehunters/flight-bff/internal/pricing/domain"
	pkgApp "github.com/globehunters/flight-bff/pkg/application"
	pkgDomain "github.com/globehunters/flight-bff/pkg/domain"
)

type computePlanPriceHandler struct {
	engine *domain.Engine
	logger pkgApp.AppLogger
}

func (h *computePlanPriceHandler) Handle(ctx context.Context, query pkgDomain.Query[ComputePlanPriceData]) (domain.PlanPrice, error) {
	if ctx.Err() != nil {
		pkgApp.LogError(ctx, h.logger, "context cancelled", ctx.Err(), nil)
		return domain.PlanPrice{}, ctx.Err()
	}

	data := query.Payload()
	amount, err := h.engine.ComputePlanPrice(data.BaseFare, data.Region, data.Tier)
	if err != nil {
		pkgApp.LogError(ctx, h.logger, "plan price computation failed", err, map[string]interface{}{
			"base_fare": data.BaseFare,
			"region":    data.Region,
			"tier":      data.Tier,
		})
		return domain.PlanPrice{}, err
	}

	return domain.PlanPrice{
		BaseFare: data.BaseFare,
		Region:   data.Region,
		Tier:     data.Tier,
		Amount:   amount,
	}, nil
}

func NewComputePlanPriceHandler(engine *domain.Engine, logger pkgApp.AppLogger) pkgApp.QueryHandler[pkgDomain.Query[ComputePlanPriceData], ComputePlanPriceData, domain.PlanPrice] {
	return &computePlanPriceHandler{
		engine: engine,
		logger: logger,
	}
}

type quoteProtectionPlanHandler struct {
	engine      *domain.Engine
	eventBus    pkgApp.EventBus[pkgDomain.Event[string], string]
	idGenerator pkgDomain.IDGenerator[string]
	logger      pkgApp.AppLogger
}

func (h *quoteProtectionPlanHandler) Handle(ctx context.Context, command pkgDomain.Command[QuoteProtectionPlanData]) error {
	if ctx.Err() != nil {
		pkgApp.LogError(ctx, h.logger, "context cancelled", ctx.Err(), nil)
		return ctx.Err()
	}

	data := command.Payload()
	amount, err := h.engine.ComputePlanPrice(data.BaseFare, data.Region, data.Tier)
	if err != nil {
		pkgApp.LogError(ctx, h.logger, "plan quote rejected", err, map[string]interface{}{
			"base_fare": data.BaseFare,
			"region":    data.Region,
			"tier":      data.Tier,
		})
		return err
	}

	quoteID := data.QuoteID
	if quoteID == "" {
		quoteID = h.idGenerator()
	}
	pkgApp.LogInfo(ctx, h.logger, "protection plan quoted", map[string]interface{}{
		"quote_id": quoteID,
		"amount":   amount,
	})

	event := NewProtectionPlanQuotedEvent(fmt.Sprintf("Quote %s: %s/%s plan priced at %v", quoteID, data.Region, data.Tier, amount))
	if err := h.eventBus.Publish(ctx, event); err != nil {
		pkgApp.LogError(ctx, h.logger, "failed to publish quote event", err, nil)
		return err
	}

	return nil
}

func NewQuoteProtectionPlanHandler(engine *domain.Engine, eventBus pkgApp.EventBus[pkgDomain.Event[string], string], idGenerator pkgDomain.IDGenerator[string], logger pkgApp.AppLogger) pkgApp.CommandHandler[pkgDomain.Command[QuoteProtectionPlanData], QuoteProtectionPlanData] {
	return &quoteProtectionPlanHandler{
		engine:      engine,
		eventBus:    eventBus,
		idGenerator: idGenerator,
		logger:      logger,
	}
}

type protectionPlanQuotedEventHandler struct {
	logger pkgApp.AppLogger
}

func (h *protectionPlanQuotedEventHandler) Handle(ctx context.Context, event pkgDomain.Event[string]) error {
	if ctx.Err() != nil {
		pkgApp.LogError(ctx, h.logger, "context cancelled", ctx.Err(), nil)
		return ctx.Err()
	}

	pkgApp.LogInfo(ctx, h.logger, "event received", map[string]interface{}{"event": event.Payload()})
	return nil
}

func NewProtectionPlanQuotedEventHandler(logger pkgApp.AppLogger) pkgApp.EventHandler[pkgDomain.Event[string], string] {
	return &protectionPlanQuotedEventHandler{
		logger: logger,
	}
}
