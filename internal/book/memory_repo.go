package book

import (
	"context"
	"sync"
)

// MemoryRepo keeps the catalog in process memory. Reads share an RLock,
// every mutation takes the write lock. Books handed out are copies.
type MemoryRepo struct {
	mu     sync.RWMutex
	books  []Book
	policy IDPolicy
}

func NewMemoryRepo(seed []Book, policy IDPolicy) *MemoryRepo {
	books := make([]Book, 0, len(seed))
	for _, b := range seed {
		books = append(books, b.clone())
	}
	return &MemoryRepo{books: books, policy: policy}
}

func (r *MemoryRepo) List(ctx context.Context) ([]Book, error) {
	return r.filter(func(Book) bool { return true }), nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id int64) (Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(id); i >= 0 {
		return r.books[i].clone(), nil
	}
	return Book{}, ErrNotFound
}

func (r *MemoryRepo) ListByRating(ctx context.Context, rating int) ([]Book, error) {
	return r.filter(func(b Book) bool { return b.Rating == rating }), nil
}

func (r *MemoryRepo) ListByPublishDate(ctx context.Context, year int) ([]Book, error) {
	return r.filter(func(b Book) bool {
		return b.PublishDate != nil && *b.PublishDate == year
	}), nil
}

func (r *MemoryRepo) Create(ctx context.Context, b *Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b.ID = nextID(r.books, r.policy)
	r.books = append(r.books, b.clone())
	return nil
}

func (r *MemoryRepo) Update(ctx context.Context, b Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(b.ID)
	if i < 0 {
		return ErrNotFound
	}
	r.books[i] = b.clone()
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	r.books = append(r.books[:i], r.books[i+1:]...)
	return nil
}

// Len reports how many books are stored.
func (r *MemoryRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.books)
}

// indexOf must be called with mu held.
func (r *MemoryRepo) indexOf(id int64) int {
	for i := range r.books {
		if r.books[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *MemoryRepo) filter(keep func(Book) bool) []Book {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Book, 0, len(r.books))
	for _, b := range r.books {
		if keep(b) {
			out = append(out, b.clone())
		}
	}
	return out
}
