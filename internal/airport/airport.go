package airport

import (
	"github.com/go-chi/chi/v5"

	"github.com/globehunters/flight-bff/internal/airport/application"
	"github.com/globehunters/flight-bff/internal/airport/domain"
	"github.com/globehunters/flight-bff/internal/airport/infrastructure"
	pkgApp "github.com/globehunters/flight-bff/pkg/application"
	pkgDomain "github.com/globehunters/flight-bff/pkg/domain"
)

type AirportSlice struct {
	httpHandler *infrastructure.AirportHTTPHandler
}

func NewAirportSlice(
	searchBus pkgApp.QueryBus[pkgDomain.Query[application.SearchAirportsData], application.SearchAirportsData, []domain.SearchResult],
	lookupBus pkgApp.QueryBus[pkgDomain.Query[application.FindAirportByCodeData], application.FindAirportByCodeData, domain.Airport],
	listBus pkgApp.QueryBus[pkgDomain.Query[application.AirportSetData], application.AirportSetData, []domain.Airport],
	eventBus pkgApp.EventBus[pkgDomain.Event[string], string],
	logger pkgApp.AppLogger,
	directory domain.Directory,
) *AirportSlice {
	searchHandler := application.NewSearchAirportsHandler(directory, logger)
	lookupHandler := application.NewFindAirportByCodeHandler(directory, logger)
	listHandler := application.NewListAirportsHandler(directory, logger)
	popularHandler := application.NewPopularAirportsHandler(directory, logger)
	refreshHandler := application.NewRefreshAirportsHandler(directory, eventBus, logger)
	refreshedEventHandler := application.NewAirportDirectoryRefreshedEventHandler(logger)

	searchBus.RegisterHandler("SearchAirports", searchHandler)
	lookupBus.RegisterHandler("FindAirportByCode", lookupHandler)
	listBus.RegisterHandler("ListAirports", listHandler)
	listBus.RegisterHandler("PopularAirports", popularHandler)
	listBus.RegisterHandler("RefreshAirports", refreshHandler)
	eventBus.RegisterHandler("AirportDirectoryRefreshed", refreshedEventHandler)

	httpHandler := infrastructure.NewAirportHTTPHandler(searchBus, lookupBus, listBus, logger)

	return &AirportSlice{
		httpHandler: httpHandler,
	}
}

func (s *AirportSlice) RegisterRoutes(router *chi.Mux) {
	s.httpHandler.RegisterRoutes(router)
}
