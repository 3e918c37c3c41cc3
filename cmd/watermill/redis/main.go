package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/globehunters/flight-bff/internal/airport"
	airportApp "github.com/globehunters/flight-bff/internal/airport/application"
	airportDomain "github.com/globehunters/flight-bff/internal/airport/domain"
	airportInfra "github.com/globehunters/flight-bff/internal/airport/infrastructure"
	"github.com/globehunters/flight-bff/internal/pricing"
	pricingApp "github.com/globehunters/flight-bff/internal/pricing/application"
	pricingDomain "github.com/globehunters/flight-bff/internal/pricing/domain"
	pkgDomain "github.com/globehunters/flight-bff/pkg/domain"
	"github.com/globehunters/flight-bff/pkg/infrastructure/redis/adapter"
	watermillLogAdapter "github.com/globehunters/flight-bff/pkg/infrastructure/watermill/adapter"
	zapAdapter "github.com/globehunters/flight-bff/pkg/infrastructure/zaplogger/adapter"
)

func main() {
	appLogger, err := zapAdapter.NewZapAppLogger()
	if err != nil {
		panic(err)
	}

	logger := watermillLogAdapter.NewWatermillLoggerAdapter(appLogger)

	redisClient := adapter.NewRedisClient()
	defer redisClient.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
		Client: redisClient,
	}, logger)
	if err != nil {
		appLogger.Error(ctx, "failed to create publisher", map[string]interface{}{
			"error": err,
		})
	}
	defer publisher.Close()

	subscriber, err := redisstream.NewSubscriber(redisstream.SubscriberConfig{
		Client:        redisClient,
		ConsumerGroup: "flight_bff_group",
		Consumer:      "flight_bff_consumer",
	}, logger)
	if err != nil {
		appLogger.Error(ctx, "failed to create subscriber", map[string]interface{}{
			"error": err,
		})
	}
	defer subscriber.Close()

	directory, err := airportInfra.NewCachedDirectory(ctx, airportInfra.NewStaticSource(), airportInfra.DirectoryConfig{}, appLogger)
	if err != nil {
		panic(err)
	}

	engine, err := pricingDomain.NewEngine(pricingDomain.DefaultRateTable())
	if err != nil {
		panic(err)
	}

	searchQueryBus := adapter.NewRedisQueryBus[pkgDomain.Query[airportApp.SearchAirportsData], airportApp.SearchAirportsData, []airportDomain.SearchResult](publisher, subscriber, appLogger)
	lookupQueryBus := adapter.NewRedisQueryBus[pkgDomain.Query[airportApp.FindAirportByCodeData], airportApp.FindAirportByCodeData, airportDomain.Airport](publisher, subscriber, appLogger)
	listQueryBus := adapter.NewRedisQueryBus[pkgDomain.Query[airportApp.AirportSetData], airportApp.AirportSetData, []airportDomain.Airport](publisher, subscriber, appLogger)
	pricingQueryBus := adapter.NewRedisQueryBus[pkgDomain.Query[pricingApp.ComputePlanPriceData], pricingApp.ComputePlanPriceData, pricingDomain.PlanPrice](publisher, subscriber, appLogger)
	pricingCommandBus := adapter.NewRedisCommandBus[pkgDomain.Command[pricingApp.QuoteProtectionPlanData], pricingApp.QuoteProtectionPlanData](publisher, subscriber)
	eventBus := adapter.NewRedisEventBus[pkgDomain.Event[string], string](publisher, subscriber, appLogger)

	idGenerator := func() string {
		return uuid.New().String()
	}

	airportSlice := airport.NewAirportSlice(
		searchQueryBus,
		lookupQueryBus,
		listQueryBus,
		eventBus,
		appLogger,
		directory,
	)

	pricingSlice := pricing.NewPricingSlice(
		pricingCommandBus,
		pricingQueryBus,
		idGenerator,
		appLogger,
		eventBus,
		engine,
	)

	router := chi.NewRouter()

	airportSlice.RegisterRoutes(router)
	pricingSlice.RegisterRoutes(router)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		appLogger.Info(ctx, "signal received", map[string]interface{}{"signal": sig})
		cancel()
	}()

	serverAddress := ":8080"
	server := &http.Server{
		Addr:    serverAddress,
		Handler: router,
	}

	go func() {
		appLogger.Info(ctx, "Server starting on:"+serverAddress, nil)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error(ctx, "failed to start server", map[string]interface{}{
				"error": err,
			})
		}
	}()

	<-ctx.Done()
	appLogger.Info(ctx, "shutting down server...", nil)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error(context.Background(), "failed to shut down server", map[string]interface{}{
			"error": err,
		})
	}

	appLogger.Info(context.Background(), "server stopped", nil)
}
