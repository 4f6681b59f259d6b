package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty falls back to UTC", input: "", expected: "UTC"},
		{name: "unknown falls back to UTC", input: "Mars/Olympus", expected: "UTC"},
		{name: "iana name", input: "Asia/Jakarta", expected: "Asia/Jakarta"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, load(tt.input).String())
		})
	}
}

func TestConversions(t *testing.T) {
	previous := appLocation
	appLocation = load("Asia/Jakarta")

	t.Cleanup(func() { appLocation = previous })

	at := time.Date(2024, 1, 1, 2, 0, 0, 0, time.UTC)

	assert.Equal(t, "2024-01-01 09:00", Format(at, "2006-01-02 15:04"))
	assert.Equal(t, "Asia/Jakarta", Now().Location().String())

	parsed, err := Parse("2006-01-02 15:04", "2024-01-01 09:00")
	require.NoError(t, err)
	assert.True(t, parsed.Equal(at))
}
