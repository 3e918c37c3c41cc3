package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Shopify/sarama"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/google/uuid"

	airportApp "github.com/globehunters/flight-bff/internal/airport/application"
	airportDomain "github.com/globehunters/flight-bff/internal/airport/domain"
	airportInfra "github.com/globehunters/flight-bff/internal/airport/infrastructure"
	pricingApp "github.com/globehunters/flight-bff/internal/pricing/application"
	pricingDomain "github.com/globehunters/flight-bff/internal/pricing/domain"
	pkgDomain "github.com/globehunters/flight-bff/pkg/domain"
	"github.com/globehunters/flight-bff/pkg/infrastructure/kafka/adapter"
	zapAdapter "github.com/globehunters/flight-bff/pkg/infrastructure/zaplogger/adapter"
)

func main() {
	logger := watermill.NewStdLogger(false, false)

	marshaler := kafka.DefaultMarshaler{}

	publisherConfig := kafka.PublisherConfig{
		Brokers:   []string{"localhost:9092"},
		Marshaler: marshaler,
	}

	publisher, err := kafka.NewPublisher(publisherConfig, logger)
	if err != nil {
		log.Fatalf("failed to create Kafka publisher: %v", err)
	}
	defer publisher.Close()

	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V1_0_0_0
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.ClientID = "flight-bff"

	subscriberConfig := kafka.SubscriberConfig{
		Brokers:               []string{"localhost:9092"},
		Unmarshaler:           marshaler,
		ConsumerGroup:         "flight_bff_consumer_group",
		OverwriteSaramaConfig: saramaConfig,
		InitializeTopicDetails: &sarama.TopicDetail{
			NumPartitions:     1,
			ReplicationFactor: 1,
		},
	}

	subscriber, err := kafka.NewSubscriber(subscriberConfig, logger)
	if err != nil {
		log.Fatalf("failed to create Kafka subscriber: %v", err)
	}
	defer subscriber.Close()

	for _, topic := range []string{"SearchAirports", "ComputePlanPrice", "QuoteProtectionPlan"} {
		if err := subscriber.SubscribeInitialize(topic); err != nil {
			log.Fatalf("failed to initialize Kafka topic %q: %v", topic, err)
		}
	}

	appLogger, err := zapAdapter.NewZapAppLogger()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	directory, err := airportInfra.NewCachedDirectory(ctx, airportInfra.NewStaticSource(), airportInfra.DirectoryConfig{}, appLogger)
	if err != nil {
		log.Fatalf("failed to load airport directory: %v", err)
	}

	engine, err := pricingDomain.NewEngine(pricingDomain.DefaultRateTable())
	if err != nil {
		log.Fatalf("invalid rate table: %v", err)
	}

	idGenerator := func() string {
		return uuid.New().String()
	}

	searchQueryBus := adapter.NewKafkaQueryBus[pkgDomain.Query[airportApp.SearchAirportsData], airportApp.SearchAirportsData, []airportDomain.SearchResult](publisher, subscriber)
	priceQueryBus := adapter.NewKafkaQueryBus[pkgDomain.Query[pricingApp.ComputePlanPriceData], pricingApp.ComputePlanPriceData, pricingDomain.PlanPrice](publisher, subscriber)
	commandBus := adapter.NewKafkaCommandBus[pkgDomain.Command[pricingApp.QuoteProtectionPlanData], pricingApp.QuoteProtectionPlanData](publisher, subscriber, appLogger)
	eventBus := adapter.NewKafkaEventBus[pkgDomain.Event[string], string](publisher, subscriber, appLogger)

	searchQueryBus.RegisterHandler("SearchAirports", airportApp.NewSearchAirportsHandler(directory, appLogger))
	priceQueryBus.RegisterHandler("ComputePlanPrice", pricingApp.NewComputePlanPriceHandler(engine, appLogger))
	commandBus.RegisterHandler("QuoteProtectionPlan", pricingApp.NewQuoteProtectionPlanHandler(engine, eventBus, idGenerator, appLogger))
	eventBus.RegisterHandler("ProtectionPlanQuoted", pricingApp.NewProtectionPlanQuotedEventHandler(appLogger))

	fmt.Println("Dispatching the airport search query...")
	searchQuery := airportApp.NewSearchAirportsQuery(airportApp.SearchAirportsData{
		Query: "man",
		Limit: 5,
	})

	results, err := searchQueryBus.Dispatch(ctx, searchQuery)
	if err != nil {
		fmt.Println("failed to search airports:", err)
	} else {
		fmt.Printf("Airports found: %+v\n", results)
	}

	fmt.Println("Dispatching the plan price query...")
	priceQuery := pricingApp.NewComputePlanPriceQuery(pricingApp.ComputePlanPriceData{
		BaseFare: 1000,
		Region:   pricingDomain.RegionGlobal,
		Tier:     pricingDomain.TierPremium,
	})

	price, err := priceQueryBus.Dispatch(ctx, priceQuery)
	if err != nil {
		fmt.Println("failed to compute plan price:", err)
	} else {
		fmt.Printf("Plan price: %+v\n", price)
	}

	fmt.Println("Dispatching the protection plan quote command...")
	quoteCommand := pricingApp.NewQuoteProtectionPlanCommand(pricingApp.QuoteProtectionPlanData{
		BaseFare: 650,
		Region:   pricingDomain.RegionUK,
		Tier:     pricingDomain.TierAll,
	})

	if err := commandBus.Dispatch(ctx, quoteCommand); err != nil {
		fmt.Println("failed to quote protection plan:", err)
		return
	}
	fmt.Println("Protection plan quote dispatched!")

	// Allow the consumer group to process the outstanding messages.
	time.Sleep(15 * time.Second)
}
