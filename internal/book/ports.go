package book

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=book

// Repository defines the contract for book data storage.
type Repository interface {
	List(ctx context.Context) ([]Book, error)
	GetByID(ctx context.Context, id int64) (Book, error)
	ListByRating(ctx context.Context, rating int) ([]Book, error)
	ListByPublishDate(ctx context.Context, year int) ([]Book, error)
	Create(ctx context.Context, b *Book) error
	Update(ctx context.Context, b Book) error
	Delete(ctx context.Context, id int64) error
}
