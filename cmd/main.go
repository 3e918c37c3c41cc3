package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

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
	pkgInfra "github.com/globehunters/flight-bff/pkg/infrastructure"
	zapAdapter "github.com/globehunters/flight-bff/pkg/infrastructure/zaplogger/adapter"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appLogger, err := zapAdapter.NewZapAppLogger()
	if err != nil {
		panic(err)
	}

	idGenerator := func() string {
		return uuid.New().String()
	}

	// The airport dataset ships embedded in the binary; AIRPORTS_DSN points
	// the directory at a live Postgres source instead, which makes refresh a
	// real reload.
	var source airportInfra.Source
	directoryCfg := airportInfra.DirectoryConfig{}
	if dsn := os.Getenv("AIRPORTS_DSN"); dsn != "" {
		gormSource, err := airportInfra.NewGormAirportSource(dsn, appLogger)
		if err != nil {
			appLogger.Error(ctx, "failed to initialize airport source", map[string]interface{}{
				"error": err,
			})
			panic(err)
		}
		source = gormSource
		directoryCfg.LiveSource = true
	} else {
		source = airportInfra.NewStaticSource()
	}

	directory, err := airportInfra.NewCachedDirectory(ctx, source, directoryCfg, appLogger)
	if err != nil {
		appLogger.Error(ctx, "failed to load airport directory", map[string]interface{}{
			"error": err,
		})
		panic(err)
	}

	engine, err := pricingDomain.NewEngine(pricingDomain.DefaultRateTable())
	if err != nil {
		appLogger.Error(ctx, "invalid protection plan rate table", map[string]interface{}{
			"error": err,
		})
		panic(err)
	}

	searchQueryBus := pkgInfra.NewSimpleQueryBus[pkgDomain.Query[airportApp.SearchAirportsData], airportApp.SearchAirportsData, []airportDomain.SearchResult]()
	lookupQueryBus := pkgInfra.NewSimpleQueryBus[pkgDomain.Query[airportApp.FindAirportByCodeData], airportApp.FindAirportByCodeData, airportDomain.Airport]()
	listQueryBus := pkgInfra.NewSimpleQueryBus[pkgDomain.Query[airportApp.AirportSetData], airportApp.AirportSetData, []airportDomain.Airport]()
	pricingQueryBus := pkgInfra.NewSimpleQueryBus[pkgDomain.Query[pricingApp.ComputePlanPriceData], pricingApp.ComputePlanPriceData, pricingDomain.PlanPrice]()
	pricingCommandBus := pkgInfra.NewSimpleCommandBus[pkgDomain.Command[pricingApp.QuoteProtectionPlanData], pricingApp.QuoteProtectionPlanData]()
	eventBus := pkgInfra.NewSimpleEventBus[pkgDomain.Event[string], string](appLogger)

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

	serverAddress := os.Getenv("HTTP_ADDR")
	if serverAddress == "" {
		serverAddress = ":8080"
	}
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
