package otel

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestScope_TraceIfErrorDeferred(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tr := newTracer(trace.WithSpanProcessor(recorder))

	book := func(fail bool) (err error) {
		_, scope := tr.NewScope(context.Background(), "service", "service.Create")
		defer scope.End()
		defer scope.TraceIfError(&err)

		scope.SetAttributes(map[string]any{"booking.duration": 25, "booking.type": "peerToPeer"})

		if fail {
			err = errors.New("slot unavailable")
		}

		return err
	}

	require.NoError(t, book(false))
	require.Error(t, book(true))

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Contains(t, spans[0].Attributes(), attribute.Int("booking.duration", 25))
	assert.Contains(t, spans[0].Attributes(), attribute.String("booking.type", "peerToPeer"))

	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, "slot unavailable", spans[1].Status().Description)

	require.NoError(t, tr.Shutdown(context.Background()))
}

func TestToAttribute(t *testing.T) {
	tests := []struct {
		value    any
		expected attribute.KeyValue
	}{
		{value: true, expected: attribute.Bool("k", true)},
		{value: "v", expected: attribute.String("k", "v")},
		{value: 3, expected: attribute.Int("k", 3)},
		{value: int64(4), expected: attribute.Int64("k", 4)},
		{value: []string{"a"}, expected: attribute.StringSlice("k", []string{"a"})},
		{value: 1.5, expected: attribute.String("k", "1.5")},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, toAttribute("k", tt.value))
	}
}
