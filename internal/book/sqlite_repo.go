package book

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"
	"time"

	"modernc.org/sqlite"
)

// foldFunc lowercases with Unicode rules; SQLite's built-in lower and LIKE
// only fold ASCII.
const foldFunc = "books_fold"

func init() {
	sqlite.MustRegisterDeterministicScalarFunction(foldFunc, 1, fold)
}

func fold(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}

// SQLiteRepo stores books in an embedded SQLite database. It backs the
// development mode where no PostgreSQL server is available.
type SQLiteRepo struct {
	db      *sql.DB
	timeout time.Duration
}

func NewSQLiteRepo(db *sql.DB, timeout time.Duration) *SQLiteRepo {
	return &SQLiteRepo{db: db, timeout: timeout}
}

func (r *SQLiteRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *SQLiteRepo) Create(ctx context.Context, f Fields) (Book, error) {
	const query = `INSERT INTO books (title, author, isbn, published_year) VALUES (?, ?, ?, ?) RETURNING ` + bookColumns

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var b Book
	err := r.db.QueryRowContext(timeoutCtx, query, f.Title, f.Author, f.ISBN, yearArg(f.PublishedYear)).
		Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.PublishedYear)
	if err != nil {
		return Book{}, err
	}
	return b, nil
}

func (r *SQLiteRepo) Update(ctx context.Context, id int64, f Fields) (Book, error) {
	const query = `UPDATE books SET title = ?, author = ?, isbn = ?, published_year = ? WHERE id = ? RETURNING ` + bookColumns

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var b Book
	err := r.db.QueryRowContext(timeoutCtx, query, f.Title, f.Author, f.ISBN, yearArg(f.PublishedYear), id).
		Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.PublishedYear)
	if errors.Is(err, sql.ErrNoRows) {
		return Book{}, ErrNotFound
	}
	if err != nil {
		return Book{}, err
	}
	return b, nil
}

func (r *SQLiteRepo) Delete(ctx context.Context, id int64) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	result, err := r.db.ExecContext(timeoutCtx, `DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLiteRepo) Search(ctx context.Context, f Filter) ([]Book, error) {
	query, args := sqliteSearchQuery(f)

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.QueryContext(timeoutCtx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Book{}
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.PublishedYear); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func yearArg(year *int) any {
	if year == nil {
		return nil
	}
	return int64(*year)
}

func sqliteSearchQuery(f Filter) (string, []any) {
	clauses := []string{}
	args := []any{}

	if f.Title != "" {
		clauses = append(clauses, foldFunc+`(title) LIKE `+foldFunc+`(?) ESCAPE '\'`)
		args = append(args, containsPattern(f.Title))
	}
	if f.Author != "" {
		clauses = append(clauses, foldFunc+`(author) LIKE `+foldFunc+`(?) ESCAPE '\'`)
		args = append(args, containsPattern(f.Author))
	}
	if f.ISBN != "" {
		clauses = append(clauses, "isbn = ?")
		args = append(args, f.ISBN)
	}

	query := "SELECT " + bookColumns + " FROM books"
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	return query + " ORDER BY id", args
}
