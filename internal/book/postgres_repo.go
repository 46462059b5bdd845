package book

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookColumns = "id, title, author, isbn, published_year"

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) Create(ctx context.Context, f Fields) (Book, error) {
	const query = `
		INSERT INTO books (title, author, isbn, published_year)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + bookColumns

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var b Book
	err := r.db.QueryRow(timeoutCtx, query, f.Title, f.Author, f.ISBN, f.PublishedYear).
		Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.PublishedYear)
	if err != nil {
		return Book{}, err
	}
	return b, nil
}

func (r *PostgresRepo) Update(ctx context.Context, id int64, f Fields) (Book, error) {
	const query = `
		UPDATE books
		SET title = $1, author = $2, isbn = $3, published_year = $4
		WHERE id = $5
		RETURNING ` + bookColumns

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var b Book
	err := r.db.QueryRow(timeoutCtx, query, f.Title, f.Author, f.ISBN, f.PublishedYear, id).
		Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.PublishedYear)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id int64) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) Search(ctx context.Context, f Filter) ([]Book, error) {
	query, args := postgresSearchQuery(f)

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, args...)
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

func postgresSearchQuery(f Filter) (string, []any) {
	clauses := []string{}
	args := []any{}
	argn := 1

	if f.Title != "" {
		clauses = append(clauses, fmt.Sprintf(`title ILIKE $%d ESCAPE '\'`, argn))
		args = append(args, containsPattern(f.Title))
		argn++
	}

	if f.Author != "" {
		clauses = append(clauses, fmt.Sprintf(`author ILIKE $%d ESCAPE '\'`, argn))
		args = append(args, containsPattern(f.Author))
		argn++
	}

	if f.ISBN != "" {
		clauses = append(clauses, fmt.Sprintf("isbn = $%d", argn))
		args = append(args, f.ISBN)
	}

	query := "SELECT " + bookColumns + " FROM books"
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	return query + " ORDER BY id", args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching s literally anywhere in the column.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
