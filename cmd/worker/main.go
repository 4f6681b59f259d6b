package main

import (
	"context"
	"mentorbook/config"
	"mentorbook/infras/kafka"
	"mentorbook/internal/domains/booking/model"
	"mentorbook/shared/logger"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

// The worker follows the booking topic and emits one notification line per party.
func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	if !cfg.Kafka.Enable {
		log.Fatal().Msg("Kafka is disabled, nothing to consume")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := kafka.New(cfg)

	log.Info().Str("topic", cfg.Kafka.Topic.Booking).Msg("Starting booking event worker.")

	client.Consume(ctx, cfg.Kafka.ConsumerGroup, cfg.Kafka.Topic.Booking, func(msg kafkaGo.Message) {
		handle(log.Logger, msg)
	})
}

func handle(l zerolog.Logger, msg kafkaGo.Message) {
	event, err := kafka.Decode[model.Event](msg)
	if err != nil {
		l.Error().Err(err).Str("key", string(msg.Key)).Msg("Skipping undecodable booking event")

		return
	}

	for _, recipient := range recipients(event) {
		l.Info().
			Str("event", event.Type).
			Str("booking_id", event.BookingID).
			Str("recipient", recipient).
			Str("status", event.Status).
			Str("date", event.Date).
			Str("time", event.Time).
			Msg("Booking notification")
	}
}

// recipients is every party of the booking except the one who caused the event.
func recipients(event model.Event) []string {
	res := []string{}

	for _, id := range []string{event.RequesterID, event.TargetID} {
		if id != event.ActorID {
			res = append(res, id)
		}
	}

	return res
}
