// The notifications worker consumes reservation events and emits customer
// notifications. Delivery is a structured log line for now; the consumer,
// retry, and DLQ plumbing is the part that matters.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"goodfoods/internal/reservations/service"
	"goodfoods/pkg/kafka"
	kafka_config "goodfoods/pkg/kafka/config"
	"goodfoods/pkg/logger"
)

const (
	ServiceName   = "notifications"
	consumerGroup = "goodfoods-notifications"
)

func main() {
	log := logger.New(logger.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  logger.JSON,
		Service: ServiceName,
	})

	kafkaCfg := kafka_config.Load()
	if err := kafkaCfg.Validate(); err != nil {
		log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(log.Info)

	consumer, err := kafka.NewConsumer(
		kafkaCfg, log,
		kafka_config.TopicReservationEvents,
		consumerGroup,
		kafka_config.TopicReservationEventsDLQ,
		handleReservationEvent(log),
	)
	if err != nil {
		log.Fatal("Failed to create Kafka consumer", "error", err)
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("Notifications worker started", "topic", kafka_config.TopicReservationEvents, "group", consumerGroup)
	if err := consumer.Start(ctx); err != nil && ctx.Err() == nil {
		log.Fatal("Consumer stopped unexpectedly", "error", err)
	}
	log.Info("Notifications worker stopped")
}

func handleReservationEvent(log *logger.Logger) kafka.MessageHandler {
	return func(ctx context.Context, msg kafka.Message) error {
		var event service.ReservationEvent
		if err := msg.DecodeValue(&event); err != nil {
			return kafka.NewPermanentError("decoding reservation event", err)
		}

		switch event.Type {
		case service.EventReservationConfirmed:
			log.Info("Sending confirmation notification",
				"event_id", msg.GetEventID(),
				"booking_id", event.BookingID,
				"customer_email", event.CustomerEmail,
				"restaurant", event.RestaurantName,
				"date", event.Date,
				"time_slot", event.TimeSlot,
				"party_size", event.PartySize,
			)
		case service.EventReservationCancelled:
			log.Info("Sending cancellation notification",
				"event_id", msg.GetEventID(),
				"booking_id", event.BookingID,
				"customer_email", event.CustomerEmail,
				"restaurant", event.RestaurantName,
				"date", event.Date,
			)
		default:
			log.Warn("Skipping unknown event type",
				"event_id", msg.GetEventID(),
				"event_type", event.Type,
			)
		}
		return nil
	}
}
