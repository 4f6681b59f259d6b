// Package testdb opens throwaway SQLite databases behind the postgres.Connection type
// so repositories can be exercised without a running postgres.
package testdb

import (
	"path/filepath"
	"testing"

	"mentorbook/infras/postgres"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" //nolint:revive
)

const driverName = "sqlite"

func init() {
	sqlx.BindDriver(driverName, sqlx.QUESTION)
}

// New creates a temp-file database, applies schema and registers cleanup on tb.
func New(tb testing.TB, schema ...string) *postgres.Connection {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "mentorbook.db")

	db, err := sqlx.Open(driverName, "file:"+path+"?_pragma=busy_timeout(5000)&_time_format=sqlite")
	if err != nil {
		tb.Fatalf("failed to open sqlite: %v", err)
	}

	db.SetMaxOpenConns(1)

	tb.Cleanup(func() {
		_ = db.Close()
	})

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			tb.Fatalf("failed to apply schema: %v", err)
		}
	}

	return &postgres.Connection{Read: db, Write: db}
}
