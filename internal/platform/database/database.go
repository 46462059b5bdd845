// Package database opens the connection handles behind each store driver.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"booksapi/db/migrations"

	"github.com/jackc/pgx/v5/pgxpool"

	_ "modernc.org/sqlite"
)

const pingTimeout = 2 * time.Second

// OpenPostgres creates a pool and fails fast when the server is unreachable.
func OpenPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("creating db pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database (%s): %w", RedactDSN(dsn), err)
	}
	return pool, nil
}

// OpenSQLite opens path and brings its schema up to date. Every connection to
// ":memory:" is a separate database, so the pool is pinned to one connection.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite %q: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging sqlite %q: %w", path, err)
	}
	if err := migrations.Up(ctx, db, migrations.DialectSQLite); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// SQLPinger adapts *sql.DB to the readiness probe, matching pgxpool.Pool.
type SQLPinger struct {
	DB *sql.DB
}

func (p SQLPinger) Ping(ctx context.Context) error {
	return p.DB.PingContext(ctx)
}

// RedactDSN hides the userinfo of a URL-style DSN so it can be logged.
func RedactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
