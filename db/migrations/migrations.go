// Package migrations embeds the goose SQL migrations for every supported
// store dialect.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS

// Dir returns the directory inside FS holding the migrations for dialect.
func Dir(dialect string) (string, error) {
	switch dialect {
	case DialectPostgres:
		return "postgres", nil
	case DialectSQLite:
		return "sqlite", nil
	default:
		return "", fmt.Errorf("unsupported dialect %q", dialect)
	}
}

// Setup points goose at the embedded migrations and returns the directory to
// pass to goose commands.
func Setup(dialect string) (string, error) {
	dir, err := Dir(dialect)
	if err != nil {
		return "", err
	}
	goose.SetBaseFS(FS)
	if err := goose.SetDialect(dialect); err != nil {
		return "", fmt.Errorf("setting goose dialect: %w", err)
	}
	return dir, nil
}

// Up applies every pending migration.
func Up(ctx context.Context, db *sql.DB, dialect string) error {
	dir, err := Setup(dialect)
	if err != nil {
		return err
	}
	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}

type gooseLogger struct {
	log zerolog.Logger
}

func (l gooseLogger) Printf(format string, v ...any) {
	l.log.Info().Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l gooseLogger) Fatalf(format string, v ...any) {
	l.log.Fatal().Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// UseLogger routes goose's progress output through log instead of stdout.
func UseLogger(log zerolog.Logger) {
	goose.SetLogger(gooseLogger{log: log.With().Str("component", "goose").Logger()})
}
