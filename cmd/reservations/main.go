package main

import (
	"os"
	"path/filepath"
	"strconv"

	"goodfoods/internal/reservations/events"
	"goodfoods/internal/reservations/handler"
	"goodfoods/internal/reservations/repository"
	"goodfoods/internal/reservations/service"
	"goodfoods/internal/reservations/validator"
	"goodfoods/pkg/app"
	"goodfoods/pkg/config"
	"goodfoods/pkg/kafka"
	kafka_config "goodfoods/pkg/kafka/config"
)

const ServiceName = "reservations"

func main() {
	cfg := config.Load(ServiceName)
	if cfg.StorageBackend == config.StorageMongo {
		cfg.SetMongo()
	}
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Reservations service")
	reservationService := initServices(cfg)

	if producer := initEvents(cfg, reservationService); producer != nil {
		defer producer.Close()
	}

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewReservationHandler(reservationService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) *service.ReservationService {
	reservationValidator := validator.NewReservationValidator(cfg.Log, cfg.BookingWindowDays, cfg.MinLeadTime)

	var (
		directory repository.RestaurantDirectory
		tracker   repository.AvailabilityStore
		ledger    repository.BookingLedger
		locks     repository.DateLockRepository
	)

	switch cfg.StorageBackend {
	case config.StorageMongo:
		directory = repository.NewMongoRestaurantDirectory(cfg)
		tracker = repository.NewMongoAvailabilityStore(cfg, directory)
		ledger = repository.NewMongoBookingLedger(cfg)
		locks = repository.NewMongoDateLockRepository(cfg)
	default:
		catalogPath := filepath.Join(cfg.DataDir, cfg.RestaurantDataFile)
		directory = repository.NewCSVRestaurantDirectory(catalogPath)
		tracker = repository.NewCSVAvailabilityStore(cfg.DataDir, directory, cfg.BaseTableCapacity)
		ledger = repository.NewCSVBookingLedger(cfg.DataDir, cfg.GuestsPerTable)
	}

	svc := service.NewReservationService(directory, tracker, ledger, reservationValidator, cfg.Log, cfg)
	if locks != nil {
		svc.WithSlotLocks(locks)
	}

	cfg.Log.Info("Reservation service initialized", "storage_backend", cfg.StorageBackend)
	return svc
}

// initEvents wires the Kafka producer when KAFKA_ENABLED is set. Event
// publishing is best-effort; the service runs without it.
func initEvents(cfg *config.Config, svc *service.ReservationService) *kafka.Producer {
	enabled, _ := strconv.ParseBool(os.Getenv("KAFKA_ENABLED"))
	if !enabled {
		cfg.Log.Info("Kafka publishing disabled")
		return nil
	}

	kafkaCfg := kafka_config.Load()
	if err := kafkaCfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.Log,
		kafka_config.TopicReservationEvents, kafka_config.TopicReservationEventsDLQ)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}

	svc.WithPublisher(events.NewPublisher(producer, ServiceName))
	cfg.Log.Info("Kafka publishing enabled", "topic", kafka_config.TopicReservationEvents)
	return producer
}
