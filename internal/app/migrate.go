package app

import (
	"database/sql"
	"fmt"

	"github.com/guttosm/negspulse/db"
	"github.com/guttosm/negspulse/internal/logger"
	goose "github.com/pressly/goose/v3"
)

// RunMigrations applies the embedded goose migrations (db/migrations) to conn.
// It is safe to call on every start; applied versions are skipped.
func RunMigrations(conn *sql.DB) error {
	goose.SetBaseFS(db.Migrations)
	goose.SetLogger(gooseLogger{})

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.Up(conn, db.MigrationsDir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// migrator is an indirection used by InitializeApp; overridden in tests.
var migrator = RunMigrations

// gooseLogger routes goose output through zerolog.
type gooseLogger struct{}

func (gooseLogger) Printf(format string, v ...interface{}) {
	log := logger.For("migrate")
	log.Info().Msgf(format, v...)
}

func (gooseLogger) Fatalf(format string, v ...interface{}) {
	log := logger.For("migrate")
	log.Fatal().Msgf(format, v...)
}
