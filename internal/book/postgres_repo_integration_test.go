//go:build integration

package book

import (
	"context"
	"testing"
	"time"

	"booksapi/db/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Run with: go test -tags=integration ./internal/book/...
func setupPostgresRepo(t *testing.T) *PostgresRepo {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("books"),
		postgres.WithUsername("books"),
		postgres.WithPassword("books"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	db := stdlib.OpenDBFromPool(pool)
	require.NoError(t, migrations.Up(ctx, db, migrations.DialectPostgres))
	require.NoError(t, db.Close())

	return NewPostgresRepo(pool, 5*time.Second)
}

func TestPostgresRepo_Integration(t *testing.T) {
	repo := setupPostgresRepo(t)
	ctx := context.Background()

	hobbit, err := repo.Create(ctx, Fields{Title: "The Hobbit", Author: "J.R.R. Tolkien", ISBN: "111", PublishedYear: intPtr(1937)})
	require.NoError(t, err)
	assert.Positive(t, hobbit.ID)

	tales, err := repo.Create(ctx, Fields{Title: "100% Hobbit Tales", Author: "Someone", ISBN: "222"})
	require.NoError(t, err)
	assert.Nil(t, tales.PublishedYear)

	t.Run("search", func(t *testing.T) {
		books, err := repo.Search(ctx, Filter{Title: "HOBBIT"})
		require.NoError(t, err)
		assert.Equal(t, []Book{hobbit, tales}, books)

		books, err = repo.Search(ctx, Filter{Title: "%"})
		require.NoError(t, err)
		assert.Equal(t, []Book{tales}, books)

		books, err = repo.Search(ctx, Filter{Author: "tolkien", ISBN: "222"})
		require.NoError(t, err)
		assert.Empty(t, books)
	})

	t.Run("update replaces every field", func(t *testing.T) {
		updated, err := repo.Update(ctx, hobbit.ID, Fields{Title: "The Hobbit", Author: "Tolkien", ISBN: "111"})
		require.NoError(t, err)
		assert.Equal(t, "Tolkien", updated.Author)
		assert.Nil(t, updated.PublishedYear)

		_, err = repo.Update(ctx, 999999, Fields{Title: "x", Author: "y", ISBN: "z"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, tales.ID))
		assert.ErrorIs(t, repo.Delete(ctx, tales.ID), ErrNotFound)
	})
}
