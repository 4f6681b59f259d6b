package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"mentorbook/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const migrationsSource = "file://migrations/postgres"

type step func(*migrate.Migrate) error

var steps = map[string]step{
	"up":      (*migrate.Migrate).Up,
	"down":    func(m *migrate.Migrate) error { return m.Steps(-1) },
	"step-up": func(m *migrate.Migrate) error { return m.Steps(1) },
	"drop":    (*migrate.Migrate).Down,
}

// Runner applies one of up, down (one step back), step-up or drop (every down migration)
// against the write database.
func Runner(cfg *config.Config, action string) error {
	run, ok := steps[action]
	if !ok {
		return fmt.Errorf("unknown migration action %q", action)
	}

	pg := cfg.DB.Postgres

	mig, err := migrate.New(migrationsSource, pg.Write.DSN(pg.Prefix, "x-migrations-table="+pg.MigrationTable))
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}

	defer mig.Close()

	if err := run(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running %s migrations: %w", action, err)
	}

	version, dirty, _ := mig.Version()

	log.Info().Str("action", action).Uint("version", version).Bool("dirty", dirty).Msg("Database migrations applied")

	return nil
}

func Up(cfg *config.Config) error {
	return Runner(cfg, "up")
}

func StepUp(cfg *config.Config) error {
	return Runner(cfg, "step-up")
}

func Down(cfg *config.Config) error {
	return Runner(cfg, "down")
}

func Drop(cfg *config.Config) error {
	return Runner(cfg, "drop")
}
