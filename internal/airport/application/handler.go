package application

import (
	"context"
	"fmt"

	"github.com/globehunters/flight-bff/internal/airport/domain"
	pkgApp "github.com/globehunters/flight-bff/pkg/application"
	pkgDomain "github.com/globehunters/flight-bff/pkg/domain"
)

type searchAirportsHandler struct {
	directory domain.Directory
	logger    pkgApp.AppLogger
}

func (h *searchAirportsHandler) Handle(ctx context.Context, query pkgDomain.Query[SearchAirportsData]) ([]domain.SearchResult, error) {
	if ctx.Err() != nil {
		pkgApp.LogError(ctx, h.logger, "context cancelled", ctx.Err(), nil)
		return nil, ctx.Err()
	}

	data := query.Payload()
	results, err := h.directory.Search(ctx, data.Query, data.Limit)
	if err != nil {
		pkgApp.LogError(ctx, h.logger, "airport search failed", err, map[string]interface{}{
			"query": data.Query,
			"limit": data.Limit,
		})
		return nil, err
	}

	pkgApp.LogDebug(ctx, h.logger, "airport search completed", map[string]interface{}{
		"query":   data.Query,
		"results": len(results),
	})
	return results, nil
}

func NewSearchAirportsHandler(directory domain.Directory, logger pkgApp.AppLogger) pkgApp.QueryHandler[pkgDomain.Query[SearchAirportsData], SearchAirportsData, []domain.SearchResult] {
	return &searchAirportsHandler{
		directory: directory,
		logger:    logger,
	}
}

type findAirportByCodeHandler struct {
	directory domain.Directory
	logger    pkgApp.AppLogger
}

func (h *findAirportByCodeHandler) Handle(ctx context.Context, query pkgDomain.Query[FindAirportByCodeData]) (domain.Airport, error) {
	if ctx.Err() != nil {
		pkgApp.LogError(ctx, h.logger, "context cancelled", ctx.Err(), nil)
		return domain.Airport{}, ctx.Err()
	}

	data := query.Payload()
	airport, err := h.directory.ByCode(ctx, data.Code)
	if err != nil {
		pkgApp.LogError(ctx, h.logger, "airport lookup failed", err, map[string]interface{}{
			"code": data.Code,
		})
		return domain.Airport{}, err
	}

	return airport, nil
}

func NewFindAirportByCodeHandler(directory domain.Directory, logger pkgApp.AppLogger) pkgApp.QueryHandler[pkgDomain.Query[FindAirportByCodeData], FindAirportByCodeData, domain.Airport] {
	return &findAirportByCodeHandler{
		directory: directory,
		logger:    logger,
	}
}

type listAirportsHandler struct {
	directory domain.Directory
	logger    pkgApp.AppLogger
}

func (h *listAirportsHandler) Handle(ctx context.Context, query pkgDomain.Query[AirportSetData]) ([]domain.Airport, error) {
	if ctx.Err() != nil {
		pkgApp.LogError(ctx, h.logger, "context cancelled", ctx.Err(), nil)
		return nil, ctx.Err()
	}

	return h.directory.All(ctx), nil
}

func NewListAirportsHandler(directory domain.Directory, logger pkgApp.AppLogger) pkgApp.QueryHandler[pkgDomain.Query[AirportSetData], AirportSetData, []domain.Airport] {
	return &listAirportsHandler{
		directory: directory,
		logger:    logger,
	}
}

type popularAirportsHandler struct {
	directory domain.Directory
	logger    pkgApp.AppLogger
}

func (h *popularAirportsHandler) Handle(ctx context.Context, query pkgDomain.Query[AirportSetData]) ([]domain.Airport, error) {
	if ctx.Err() != nil {
		pkgApp.LogError(ctx, h.logger, "context cancelled", ctx.Err(), nil)
		return nil, ctx.Err()
	}

	return h.directory.Popular(ctx), nil
}

func NewPopularAirportsHandler(directory domain.Directory, logger pkgApp.AppLogger) pkgApp.QueryHandler[pkgDomain.Query[AirportSetData], AirportSetData, []domain.Airport] {
	return &popularAirportsHandler{
		directory: directory,
		logger:    logger,
	}
}

type refreshAirportsHandler struct {
	directory domain.Directory
	eventBus  pkgApp.EventBus[pkgDomain.Event[string], string]
	logger    pkgApp.AppLogger
}

func (h *refreshAirportsHandler) Handle(ctx context.Context, query pkgDomain.Query[AirportSetData]) ([]domain.Airport, error) {
	if ctx.Err() != nil {
		pkgApp.LogError(ctx, h.logger, "context cancelled", ctx.Err(), nil)
		return nil, ctx.Err()
	}

	airports, err := h.directory.Refresh(ctx)
	if err != nil {
		pkgApp.LogError(ctx, h.logger, "airport refresh failed", err, nil)
		return nil, err
	}

	event := NewAirportDirectoryRefreshedEvent(fmt.Sprintf("Airport directory refreshed with %d airports", len(airports)))
	if err := h.eventBus.Publish(ctx, event); err != nil {
		pkgApp.LogError(ctx, h.logger, "failed to publish refresh event", err, nil)
		return nil, err
	}

	return airports, nil
}

func NewRefreshAirportsHandler(directory domain.Directory, eventBus pkgApp.EventBus[pkgDomain.Event[string], string], logger pkgApp.AppLogger) pkgApp.QueryHandler[pkgDomain.Query[AirportSetData], AirportSetData, []domain.Airport] {
	return &refreshAirportsHandler{
		directory: directory,
		eventBus:  eventBus,
		logger:    logger,
	}
}

type airportDirectoryRefreshedEventHandler struct {
	logger pkgApp.AppLogger
}

func (h *airportDirectoryRefreshedEventHandler) Handle(ctx context.Context, event pkgDomain.Event[string]) error {
	if ctx.Err() != nil {
		pkgApp.LogError(ctx, h.logger, "context cancelled", ctx.Err(), nil)
		return ctx.Err()
	}

	pkgApp.LogInfo(ctx, h.logger, "event received", map[string]interface{}{"event": event.Payload()})
	return nil
}

func NewAirportDirectoryRefreshedEventHandler(logger pkgApp.AppLogger) pkgApp.EventHandler[pkgDomain.Event[string], string] {
	return &airportDirectoryRefreshedEventHandler{
		logger: logger,
	}
}
