package main

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"

	airportApp "github.com/globehunters/flight-bff/internal/airport/application"
	airportDomain "github.com/globehunters/flight-bff/internal/airport/domain"
	airportInfra "github.com/globehunters/flight-bff/internal/airport/infrastructure"
	pricingApp "github.com/globehunters/flight-bff/internal/pricing/application"
	pricingDomain "github.com/globehunters/flight-bff/internal/pricing/domain"
	pkgDomain "github.com/globehunters/flight-bff/pkg/domain"
	"github.com/globehunters/flight-bff/pkg/infrastructure/channels/adapter"
	watermillLogAdapter "github.com/globehunters/flight-bff/pkg/infrastructure/watermill/adapter"
	zapAdapter "github.com/globehunters/flight-bff/pkg/infrastructure/zaplogger/adapter"
)

func main() {
	appLogger, err := zapAdapter.NewZapAppLogger()
	if err != nil {
		panic(err)
	}

	logger := watermillLogAdapter.NewWatermillLoggerAdapter(appLogger)

	// In-memory pub/sub shared by publisher and subscriber.
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	directory, err := airportInfra.NewCachedDirectory(ctx, airportInfra.NewStaticSource(), airportInfra.DirectoryConfig{}, appLogger)
	if err != nil {
		panic(err)
	}

	engine, err := pricingDomain.NewEngine(pricingDomain.DefaultRateTable())
	if err != nil {
		panic(err)
	}

	idGenerator := func() string {
		return uuid.New().String()
	}

	searchQueryBus := adapter.NewWatermillQueryBus[pkgDomain.Query[airportApp.SearchAirportsData], airportApp.SearchAirportsData, []airportDomain.SearchResult](pubSub, pubSub, appLogger)
	priceQueryBus := adapter.NewWatermillQueryBus[pkgDomain.Query[pricingApp.ComputePlanPriceData], pricingApp.ComputePlanPriceData, pricingDomain.PlanPrice](pubSub, pubSub, appLogger)
	commandBus := adapter.NewWatermillCommandBus[pkgDomain.Command[pricingApp.QuoteProtectionPlanData], pricingApp.QuoteProtectionPlanData](pubSub, pubSub, appLogger)
	eventBus := adapter.NewWatermillEventBus[pkgDomain.Event[string], string](pubSub, appLogger)

	searchQueryBus.RegisterHandler("SearchAirports", airportApp.NewSearchAirportsHandler(directory, appLogger))
	priceQueryBus.RegisterHandler("ComputePlanPrice", pricingApp.NewComputePlanPriceHandler(engine, appLogger))
	commandBus.RegisterHandler("QuoteProtectionPlan", pricingApp.NewQuoteProtectionPlanHandler(engine, eventBus, idGenerator, appLogger))
	eventBus.RegisterHandler("ProtectionPlanQuoted", pricingApp.NewProtectionPlanQuotedEventHandler(appLogger))

	searchQuery := airportApp.NewSearchAirportsQuery(airportApp.SearchAirportsData{
		Query: "lon",
		Limit: 5,
	})

	results, err := searchQueryBus.Dispatch(ctx, searchQuery)
	if err != nil {
		appLogger.Error(ctx, "failed to dispatch airport search", map[string]interface{}{
			"error": err,
		})
	} else {
		appLogger.Info(ctx, "airport search results", map[string]interface{}{
			"results": results,
		})
	}

	priceQuery := pricingApp.NewComputePlanPriceQuery(pricingApp.ComputePlanPriceData{
		BaseFare: 700,
		Region:   pricingDomain.RegionUK,
		Tier:     pricingDomain.TierPremium,
	})

	price, err := priceQueryBus.Dispatch(ctx, priceQuery)
	if err != nil {
		appLogger.Error(ctx, "failed to dispatch plan price query", map[string]interface{}{
			"error": err,
		})
	} else {
		appLogger.Info(ctx, "plan price computed", map[string]interface{}{
			"price": price,
		})
	}

	quoteCommand := pricingApp.NewQuoteProtectionPlanCommand(pricingApp.QuoteProtectionPlanData{
		BaseFare: 700,
		Region:   pricingDomain.RegionUK,
		Tier:     pricingDomain.TierPremium,
	})

	if err := commandBus.Dispatch(ctx, quoteCommand); err != nil {
		appLogger.Error(ctx, "failed to dispatch quote command", map[string]interface{}{
			"error": err,
		})
	}

	// Let the asynchronous handlers drain before shutdown.
	time.Sleep(2 * time.Second)
}
