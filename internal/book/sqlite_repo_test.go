package book

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"booksapi/db/migrations"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func newSQLiteRepo(t *testing.T) *SQLiteRepo {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, migrations.Up(context.Background(), db, migrations.DialectSQLite))
	return NewSQLiteRepo(db, time.Second)
}

func TestSQLiteRepo_CRUD(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, Fields{Title: "Dune", Author: "Frank Herbert", ISBN: "111", PublishedYear: intPtr(1965)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	require.NotNil(t, created.PublishedYear)
	assert.Equal(t, 1965, *created.PublishedYear)

	second, err := repo.Create(ctx, Fields{Title: "Emma", Author: "Jane Austen", ISBN: "222"})
	require.NoError(t, err)
	assert.Greater(t, second.ID, created.ID)
	assert.Nil(t, second.PublishedYear)

	updated, err := repo.Update(ctx, created.ID, Fields{Title: "Dune", Author: "F. Herbert", ISBN: "111"})
	require.NoError(t, err)
	assert.Equal(t, "F. Herbert", updated.Author)
	assert.Nil(t, updated.PublishedYear)

	_, err = repo.Update(ctx, 404, Fields{Title: "x", Author: "y", ISBN: "z"})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Delete(ctx, created.ID))
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), ErrNotFound)

	all, err := repo.Search(ctx, Filter{})
	require.NoError(t, err)
	assert.Equal(t, []Book{second}, all)
}

func TestSQLiteRepo_Search(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	for _, f := range []Fields{
		{Title: "The Hobbit", Author: "Tolkien", ISBN: "1"},
		{Title: "snake_case for dummies", Author: "Guido", ISBN: "2"},
		{Title: "snakeXcase", Author: "Guido", ISBN: "3"},
		{Title: "Über Alles", Author: "Ødegaard", ISBN: "4"},
	} {
		_, err := repo.Create(ctx, f)
		require.NoError(t, err)
	}

	tests := []struct {
		name   string
		filter Filter
		want   []int64
	}{
		{"case-insensitive title", Filter{Title: "HOBBIT"}, []int64{1}},
		{"underscore is literal", Filter{Title: "snake_case"}, []int64{2}},
		{"author and isbn", Filter{Author: "guido", ISBN: "3"}, []int64{3}},
		{"non-ascii title folds", Filter{Title: "über"}, []int64{4}},
		{"non-ascii author folds", Filter{Author: "ØDEGAARD"}, []int64{4}},
		{"no match", Filter{ISBN: "9"}, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			books, err := repo.Search(ctx, tt.filter)
			require.NoError(t, err)

			ids := []int64{}
			for _, b := range books {
				ids = append(ids, b.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestSQLiteRepo_DriverErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSQLiteRepo(db, time.Second)
	ctx := context.Background()
	boom := errors.New("disk I/O error")

	mock.ExpectQuery("INSERT INTO books").WillReturnError(boom)
	_, err = repo.Create(ctx, Fields{Title: "T", Author: "A", ISBN: "1"})
	assert.ErrorIs(t, err, boom)

	mock.ExpectExec("DELETE FROM books").WithArgs(int64(1)).WillReturnError(boom)
	assert.ErrorIs(t, repo.Delete(ctx, 1), boom)

	mock.ExpectQuery("SELECT (.+) FROM books").WillReturnError(boom)
	_, err = repo.Search(ctx, Filter{})
	assert.ErrorIs(t, err, boom)

	rows := sqlmock.NewRows([]string{"id", "title", "author", "isbn", "published_year"}).
		AddRow("not-a-number", "T", "A", "1", nil)
	mock.ExpectQuery("SELECT (.+) FROM books").WillReturnRows(rows)
	_, err = repo.Search(ctx, Filter{})
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteSearchQuery(t *testing.T) {
	query, args := sqliteSearchQuery(Filter{Title: "a%b", ISBN: "x"})

	assert.Equal(t, `SELECT id, title, author, isbn, published_year FROM books WHERE books_fold(title) LIKE books_fold(?) ESCAPE '\' AND isbn = ? ORDER BY id`, query)
	assert.Equal(t, []any{`%a\%b%`, "x"}, args)
}

func TestFold(t *testing.T) {
	for _, tt := range []struct {
		in   any
		want any
	}{
		{"ÜBER", "über"},
		{[]byte("ÆSOP"), "æsop"},
		{nil, nil},
		{int64(7), int64(7)},
	} {
		got, err := fold(nil, []driver.Value{tt.in})
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}
