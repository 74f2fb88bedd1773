package book

import (
	"context"
	"log/slog"

	"bookcatalog/internal/httpx"
	"bookcatalog/internal/platform/validation"
)

// Service provides book-related business logic.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new book service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// List returns every book in insertion order.
func (s *Service) List(ctx context.Context) ([]Book, error) {
	return s.repo.List(ctx)
}

// GetByID returns the book with the given id or ErrNotFound.
func (s *Service) GetByID(ctx context.Context, id int64) (Book, error) {
	return s.repo.GetByID(ctx, id)
}

// ListByRating returns the books rated exactly rating, in order.
func (s *Service) ListByRating(ctx context.Context, rating int) ([]Book, error) {
	return s.repo.ListByRating(ctx, rating)
}

// ListByPublishDate returns the books published in year, in order.
func (s *Service) ListByPublishDate(ctx context.Context, year int) ([]Book, error) {
	return s.repo.ListByPublishDate(ctx, year)
}

// Create validates req and appends it as a new book. Any id in req is ignored.
func (s *Service) Create(ctx context.Context, req Request) (Book, error) {
	if err := validation.Struct(req); err != nil {
		return Book{}, err
	}

	b := req.toBook(0)
	if err := s.repo.Create(ctx, &b); err != nil {
		return Book{}, err
	}
	s.logger.InfoContext(ctx, "book created", "id", b.ID, "title", b.Title, "actor", actor(ctx))
	return b, nil
}

// Update replaces every field of book id with req.
func (s *Service) Update(ctx context.Context, id int64, req Request) (Book, error) {
	if err := validation.Struct(req); err != nil {
		return Book{}, err
	}
	if req.ID != 0 && req.ID != id {
		return Book{}, ErrIDMismatch
	}

	b := req.toBook(id)
	if err := s.repo.Update(ctx, b); err != nil {
		return Book{}, err
	}
	s.logger.InfoContext(ctx, "book updated", "id", id, "actor", actor(ctx))
	return b, nil
}

// Delete removes book id, or returns ErrNotFound.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "book deleted", "id", id, "actor", actor(ctx))
	return nil
}

func actor(ctx context.Context) string {
	if id := httpx.UserIDFromContext(ctx); id != "" {
		return id
	}
	return "anonymous"
}
