package logger

import (
	"io"
	"mentorbook/config"
	"mentorbook/shared/constant"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger points the global logger at stdout, as JSON in production and as console text
// elsewhere, then applies SERVER_LOG_LEVEL.
func InitLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	log.Logger = zerolog.New(output(cfg.Server.Env, os.Stdout)).With().Timestamp().Logger()

	SetLogLevel(cfg)
}

func output(env string, w io.Writer) io.Writer {
	if env == constant.ServerEnvProduction {
		return w
	}

	return zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

// SetLogLevel falls back to trace when the configured level is empty or unknown.
func SetLogLevel(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.Server.LogLevel)
	if err != nil || cfg.Server.LogLevel == constant.Empty {
		level = zerolog.TraceLevel
	}

	zerolog.SetGlobalLevel(level)

	log.Trace().Str("loglevel", level.String()).Msg("Log level set.")
}
