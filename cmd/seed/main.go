package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"booksapi/db/migrations"
	"booksapi/internal/book"
	"booksapi/internal/config"
	"booksapi/internal/platform/database"

	"github.com/rs/zerolog"
)

func main() {
	var (
		count = flag.Int("count", 100, "Number of books to insert")
		seed  = flag.Int64("seed", time.Now().UnixNano(), "Random seed")
	)
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if err := run(context.Background(), *count, *seed, logger); err != nil {
		logger.Fatal().Err(err).Msg("seeding failed")
	}
}

func run(ctx context.Context, count int, seed int64, logger zerolog.Logger) error {
	migrations.UseLogger(logger)

	store, err := config.LoadStore()
	if err != nil {
		return err
	}

	var repo book.Repository
	switch store.Driver {
	case config.DriverSQLite:
		db, err := database.OpenSQLite(ctx, store.SQLitePath)
		if err != nil {
			return err
		}
		defer db.Close()
		repo = book.NewSQLiteRepo(db, store.Timeout)
	default:
		pool, err := database.OpenPostgres(ctx, store.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()
		repo = book.NewPostgresRepo(pool, store.Timeout)
	}

	logger.Info().Int("count", count).Int64("seed", seed).Msg("generating books")
	start := time.Now()

	n, err := insertBooks(ctx, book.NewService(repo), generateBooks(rand.New(rand.NewSource(seed)), count))
	if err != nil {
		return fmt.Errorf("after %d books: %w", n, err)
	}
	logger.Info().Int("inserted", n).Dur("took", time.Since(start)).Msg("seed complete")
	return nil
}

var (
	adjectives = []string{"Silent", "Crimson", "Hidden", "Last", "Broken", "Golden", "Distant", "Forgotten", "Burning", "Quiet"}
	nouns      = []string{"River", "Empire", "Garden", "Library", "Machine", "Winter", "Harbor", "Mountain", "Signal", "Orchard"}
	firstNames = []string{"Ada", "Jorge", "Ursula", "Chinua", "Octavia", "Italo", "Toni", "Haruki", "Clarice", "Stanislaw"}
	lastNames  = []string{"Lovelace", "Borges", "Le Guin", "Achebe", "Butler", "Calvino", "Morrison", "Murakami", "Lispector", "Lem"}
)

func generateBooks(rng *rand.Rand, n int) []book.Fields {
	out := make([]book.Fields, 0, n)
	for i := 0; i < n; i++ {
		f := book.Fields{
			Title:  fmt.Sprintf("The %s %s", adjectives[rng.Intn(len(adjectives))], nouns[rng.Intn(len(nouns))]),
			Author: firstNames[rng.Intn(len(firstNames))] + " " + lastNames[rng.Intn(len(lastNames))],
			ISBN:   fmt.Sprintf("978%010d", rng.Int63n(10_000_000_000)),
		}
		// roughly one in ten has no known year
		if rng.Intn(10) > 0 {
			year := 1850 + rng.Intn(175)
			f.PublishedYear = &year
		}
		out = append(out, f)
	}
	return out
}

func insertBooks(ctx context.Context, service *book.Service, books []book.Fields) (int, error) {
	for i, f := range books {
		if _, err := service.Create(ctx, f); err != nil {
			return i, err
		}
	}
	return len(books), nil
}
