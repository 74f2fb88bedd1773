package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"bookcatalog/internal/book"
	"bookcatalog/internal/config"
	"bookcatalog/internal/platform/logging"

	"github.com/jackc/pgx/v5/pgxpool"
)

var words = []string{
	"Adventure", "Mystery", "Journey", "Discovery", "Secrets", "Dreams", "Hope",
	"Love", "War", "Peace", "Science", "Nature", "Technology", "History", "Future",
	"Past", "Present", "Reality", "Imagination", "Wisdom", "Life", "Death",
	"Light", "Darkness", "World", "Universe", "Time", "Space", "Mind", "Soul",
}

func main() {
	generate := flag.Int("generate", 0, "Number of extra random books to insert after the sample set")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(1)
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger, err := logging.New(os.Stdout, cfg.LogFormat, level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		logger.Error("connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	books := book.SeedBooks()
	if *generate > 0 {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		books = append(books, generateBooks(rng, *generate, int64(len(books))+1)...)
	}

	repo := book.NewPostgresRepo(pool, cfg.DBTimeout, cfg.IDPolicy)
	inserted, err := repo.Seed(ctx, books)
	if err != nil {
		logger.Error("seed books", "inserted", inserted, "error", err)
		os.Exit(1)
	}

	total, err := repo.List(ctx)
	if err != nil {
		logger.Error("count books", "error", err)
		os.Exit(1)
	}
	logger.Info("seed finished", "inserted", inserted, "skipped", len(books)-inserted, "total", len(total))
}

// generateBooks returns n valid books numbered from firstID.
func generateBooks(rng *rand.Rand, n int, firstID int64) []book.Book {
	out := make([]book.Book, n)
	for i := range out {
		year := 1950 + rng.Intn(75)
		out[i] = book.Book{
			ID:          firstID + int64(i),
			Title:       fmt.Sprintf("Book Title %d - %s", i+1, randomWord(rng)),
			Author:      fmt.Sprintf("Author %d", rng.Intn(500)+1),
			Description: fmt.Sprintf("This is a book about %s.", randomWord(rng)),
			PublishDate: &year,
			Rating:      rng.Intn(5) + 1,
		}
	}
	return out
}

func randomWord(rng *rand.Rand) string {
	return words[rng.Intn(len(words))]
}
