package logger

import (
	"bytes"
	"errors"
	"mentorbook/config"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestSetLogLevel(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	tests := []struct {
		level    string
		expected zerolog.Level
	}{
		{level: "debug", expected: zerolog.DebugLevel},
		{level: "warn", expected: zerolog.WarnLevel},
		{level: "", expected: zerolog.TraceLevel},
		{level: "chatty", expected: zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Server.LogLevel = tt.level

			SetLogLevel(cfg)

			assert.Equal(t, tt.expected, zerolog.GlobalLevel())
		})
	}
}

func TestOutput(t *testing.T) {
	buf := &bytes.Buffer{}

	assert.Same(t, buf, output("production", buf))
	assert.IsType(t, zerolog.ConsoleWriter{}, output("development", buf))
}

func TestErrorWithStack(t *testing.T) {
	original := log.Logger
	t.Cleanup(func() { log.Logger = original })

	buf := &bytes.Buffer{}
	log.Logger = zerolog.New(buf)

	ErrorWithStack(errors.New("slot insert failed"))

	assert.Contains(t, buf.String(), "slot insert failed")
	assert.Contains(t, buf.String(), `"level":"error"`)
}
