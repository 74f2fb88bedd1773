package book

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookColumns = `id, title, author, description, publish_date, rating`

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
	policy  IDPolicy
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration, policy IDPolicy) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout, policy: policy}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// Ping reports whether the database is reachable.
func (r *PostgresRepo) Ping(ctx context.Context) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.db.Ping(timeoutCtx)
}

func (r *PostgresRepo) List(ctx context.Context) ([]Book, error) {
	return r.query(ctx, `SELECT `+bookColumns+` FROM books ORDER BY position`)
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int64) (Book, error) {
	const query = `SELECT ` + bookColumns + ` FROM books WHERE id = $1 LIMIT 1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var b Book
	err := r.db.QueryRow(timeoutCtx, query, id).Scan(
		&b.ID, &b.Title, &b.Author, &b.Description, &b.PublishDate, &b.Rating,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

func (r *PostgresRepo) ListByRating(ctx context.Context, rating int) ([]Book, error) {
	return r.query(ctx, `SELECT `+bookColumns+` FROM books WHERE rating = $1 ORDER BY position`, rating)
}

func (r *PostgresRepo) ListByPublishDate(ctx context.Context, year int) ([]Book, error) {
	return r.query(ctx, `SELECT `+bookColumns+` FROM books WHERE publish_date = $1 ORDER BY position`, year)
}

// Create assigns the next id inside a transaction that blocks concurrent
// writers, so two creates can never observe the same last row.
func (r *PostgresRepo) Create(ctx context.Context, b *Book) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.Begin(timeoutCtx)
	if err != nil {
		return err
	}
	defer tx.Rollback(timeoutCtx)

	if _, err := tx.Exec(timeoutCtx, `LOCK TABLE books IN SHARE ROW EXCLUSIVE MODE`); err != nil {
		return fmt.Errorf("lock books: %w", err)
	}

	nextSQL := `SELECT COALESCE((SELECT id FROM books ORDER BY position DESC LIMIT 1), 0) + 1`
	if r.policy == IDFromMax {
		nextSQL = `SELECT COALESCE(MAX(id), 0) + 1 FROM books`
	}
	var id int64
	if err := tx.QueryRow(timeoutCtx, nextSQL).Scan(&id); err != nil {
		return fmt.Errorf("next book id: %w", err)
	}

	const insertSQL = `
		INSERT INTO books (id, title, author, description, publish_date, rating, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())`
	if _, err := tx.Exec(timeoutCtx, insertSQL, id, b.Title, b.Author, b.Description, b.PublishDate, b.Rating); err != nil {
		return fmt.Errorf("insert book: %w", err)
	}

	if err := tx.Commit(timeoutCtx); err != nil {
		return err
	}
	b.ID = id
	return nil
}

func (r *PostgresRepo) Update(ctx context.Context, b Book) error {
	const sql = `
		UPDATE books
		SET title = $2, author = $3, description = $4, publish_date = $5, rating = $6, updated_at = NOW()
		WHERE id = $1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, sql, b.ID, b.Title, b.Author, b.Description, b.PublishDate, b.Rating)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
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

// Seed inserts books in order, skipping ids that already exist.
// It returns how many rows were inserted.
func (r *PostgresRepo) Seed(ctx context.Context, books []Book) (int, error) {
	const sql = `
		INSERT INTO books (id, title, author, description, publish_date, rating, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (id) DO NOTHING`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	batch := &pgx.Batch{}
	for _, b := range books {
		batch.Queue(sql, b.ID, b.Title, b.Author, b.Description, b.PublishDate, b.Rating)
	}

	br := r.db.SendBatch(timeoutCtx, batch)
	defer br.Close()

	inserted := 0
	for _, b := range books {
		tag, err := br.Exec()
		if err != nil {
			return inserted, fmt.Errorf("seed book %d: %w", b.ID, err)
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}

func (r *PostgresRepo) query(ctx context.Context, sql string, args ...any) ([]Book, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(timeoutCtx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Book{}
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Description, &b.PublishDate, &b.Rating); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
