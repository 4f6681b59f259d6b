package kafka

import (
	"testing"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type event struct {
	Type      string `json:"type"`
	BookingID string `json:"booking_id"`
}

func TestMessage_Encode(t *testing.T) {
	encoded, err := Message{Key: "booking-1", Value: event{Type: "booking.created", BookingID: "booking-1"}}.encode("booking-events")
	require.NoError(t, err)

	assert.Equal(t, "booking-events", encoded.Topic)
	assert.Equal(t, []byte("booking-1"), encoded.Key)
	assert.JSONEq(t, `{"type":"booking.created","booking_id":"booking-1"}`, string(encoded.Value))

	_, err = Message{Key: "k", Value: make(chan int)}.encode("booking-events")
	assert.ErrorContains(t, err, `failed to encode message "k"`)
}

func TestDecode(t *testing.T) {
	decoded, err := Decode[event](kafkaGo.Message{
		Key:   []byte("booking-2"),
		Value: []byte(`{"type":"booking.status_changed","booking_id":"booking-2"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, event{Type: "booking.status_changed", BookingID: "booking-2"}, decoded)

	_, err = Decode[event](kafkaGo.Message{Key: []byte("booking-3"), Value: []byte("{")})
	assert.ErrorContains(t, err, `failed to decode message "booking-3"`)
}
