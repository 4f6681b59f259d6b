package kafka

//go:generate go run go.uber.org/mock/mockgen -source=./kafka.go -destination=./mocks/kafka_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mentorbook/config"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

// Message values are JSON encoded. Keying by booking id keeps every event of one booking
// on the same partition.
type Message struct {
	Key   string
	Value any
}

func (m Message) encode(topic string) (kafkaGo.Message, error) {
	value, err := json.Marshal(m.Value)
	if err != nil {
		return kafkaGo.Message{}, fmt.Errorf("failed to encode message %q: %w", m.Key, err)
	}

	return kafkaGo.Message{Topic: topic, Key: []byte(m.Key), Value: value}, nil
}

// Decode unmarshals the JSON value of msg into T.
func Decode[T any](msg kafkaGo.Message) (T, error) {
	var value T

	if err := json.Unmarshal(msg.Value, &value); err != nil {
		return value, fmt.Errorf("failed to decode message %q: %w", string(msg.Key), err)
	}

	return value, nil
}

type Client interface {
	Publish(ctx context.Context, topic string, messages ...Message) error
	// Consume blocks until ctx is done. Offsets are committed after handler returns.
	Consume(ctx context.Context, groupID, topic string, handler func(msg kafkaGo.Message))
}

type client struct {
	brokers []string
	groupID string
	dialer  *kafkaGo.Dialer
	writer  *kafkaGo.Writer
}

func New(cfg *config.Config) Client {
	mechanism := plain.Mechanism{
		Username: cfg.Kafka.SASL.Username,
		Password: cfg.Kafka.SASL.Password,
	}

	return &client{
		brokers: cfg.Kafka.Brokers,
		groupID: cfg.Kafka.ConsumerGroup,
		dialer:  &kafkaGo.Dialer{DualStack: true, SASLMechanism: mechanism},
		writer: &kafkaGo.Writer{
			Addr:                   kafkaGo.TCP(cfg.Kafka.Brokers...),
			Transport:              &kafkaGo.Transport{SASL: mechanism},
			Balancer:               &kafkaGo.Hash{},
			RequiredAcks:           kafkaGo.RequireOne,
			AllowAutoTopicCreation: true,
		},
	}
}

func (c *client) Publish(ctx context.Context, topic string, messages ...Message) error {
	encoded := make([]kafkaGo.Message, 0, len(messages))

	for _, message := range messages {
		msg, err := message.encode(topic)
		if err != nil {
			return err
		}

		encoded = append(encoded, msg)
	}

	if err := c.writer.WriteMessages(ctx, encoded...); err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Failed to publish to Kafka")

		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}

	log.Debug().Str("topic", topic).Int("count", len(encoded)).Msg("Published to Kafka")

	return nil
}

func (c *client) Consume(ctx context.Context, groupID, topic string, handler func(msg kafkaGo.Message)) {
	if groupID == "" {
		groupID = c.groupID
	}

	reader := kafkaGo.NewReader(kafkaGo.ReaderConfig{
		Brokers:     c.brokers,
		Topic:       topic,
		GroupID:     groupID,
		Dialer:      c.dialer,
		StartOffset: kafkaGo.FirstOffset,
	})

	defer func() {
		if err := reader.Close(); err != nil {
			log.Error().Err(err).Str("topic", topic).Msg("Failed to close Kafka reader")
		}
	}()

	for {
		msg, err := reader.FetchMessage(ctx)

		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			log.Info().Str("topic", topic).Msg("Consumer stopped")

			return
		case err != nil:
			log.Error().Err(err).Str("topic", topic).Msg("Failed to fetch from Kafka")

			continue
		}

		handler(msg)

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error().Err(err).Str("topic", topic).Int64("offset", msg.Offset).Msg("Failed to commit offset")
		}
	}
}
