package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"

	"booksapi/db/migrations"
	"booksapi/internal/config"
	"booksapi/internal/platform/database"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"

	_ "modernc.org/sqlite"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, status, create")
		name    = flag.String("name", "", "Name for 'create' command")
	)
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if err := run(context.Background(), *command, *name, logger); err != nil {
		logger.Fatal().Err(err).Str("command", *command).Msg("migration failed")
	}
}

func run(ctx context.Context, command, name string, logger zerolog.Logger) error {
	migrations.UseLogger(logger)

	store, err := config.LoadStore()
	if err != nil {
		return err
	}

	if command == "create" {
		if name == "" {
			return fmt.Errorf("name is required for 'create' command")
		}
		dir, err := createDir(store.Driver)
		if err != nil {
			return err
		}
		goose.SetBaseFS(nil)
		if err := goose.Create(nil, dir, name, "sql"); err != nil {
			return fmt.Errorf("creating migration: %w", err)
		}
		logger.Info().Str("dir", dir).Str("name", name).Msg("migration created")
		return nil
	}

	dir, err := migrations.Setup(dialectFor(store.Driver))
	if err != nil {
		return err
	}

	db, closeDB, err := openDB(ctx, store)
	if err != nil {
		return err
	}
	defer closeDB()

	switch command {
	case "up":
		if err := goose.UpContext(ctx, db, dir); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		logger.Info().Msg("migrations applied successfully")
	case "down":
		if err := goose.DownContext(ctx, db, dir); err != nil {
			return fmt.Errorf("rolling back migration: %w", err)
		}
		logger.Info().Msg("migration rolled back successfully")
	case "status":
		if err := goose.StatusContext(ctx, db, dir); err != nil {
			return fmt.Errorf("checking migration status: %w", err)
		}
	default:
		return fmt.Errorf("unknown command: %s. Use: up, down, status, create", command)
	}
	return nil
}

func openDB(ctx context.Context, store config.Store) (*sql.DB, func(), error) {
	if store.Driver == config.DriverSQLite {
		db, err := sql.Open("sqlite", store.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite %q: %w", store.SQLitePath, err)
		}
		db.SetMaxOpenConns(1)
		return db, func() { _ = db.Close() }, nil
	}

	pool, err := database.OpenPostgres(ctx, store.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	db := stdlib.OpenDBFromPool(pool)
	return db, func() {
		_ = db.Close()
		pool.Close()
	}, nil
}
