package book

import (
	"errors"
)

var (
	// ErrNotFound is returned when no book has the requested id.
	ErrNotFound = errors.New("book not found")
	// ErrIDMismatch is returned when an update tries to change a book's id.
	ErrIDMismatch = errors.New("book id cannot be changed")
)

// Book represents a book entity.
type Book struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
	PublishDate *int   `json:"publish_date,omitempty"`
	Rating      int    `json:"rating"`
}

// Request is the client payload for create and full update.
// ID is ignored on create and must match the target on update.
type Request struct {
	ID          int64  `json:"id,omitempty"`
	Title       string `json:"title" validate:"required,min=3"`
	Author      string `json:"author" validate:"required,max=150"`
	Description string `json:"description" validate:"required,min=5,max=300"`
	PublishDate *int   `json:"publish_date,omitempty"`
	Rating      int    `json:"rating" validate:"gt=0,lt=6"`
}

func (req Request) toBook(id int64) Book {
	return Book{
		ID:          id,
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		PublishDate: clonePublishDate(req.PublishDate),
		Rating:      req.Rating,
	}
}

// IDPolicy decides the id given to a newly created book.
type IDPolicy int

const (
	// IDFromLast numbers a new book after the last book in insertion order.
	IDFromLast IDPolicy = iota
	// IDFromMax numbers a new book after the highest id in the collection.
	IDFromMax
)

// ParseIDPolicy maps "last" or "max" to an IDPolicy.
func ParseIDPolicy(s string) (IDPolicy, error) {
	switch s {
	case "", "last":
		return IDFromLast, nil
	case "max":
		return IDFromMax, nil
	default:
		return IDFromLast, errors.New("unknown id policy: " + s)
	}
}

func (p IDPolicy) String() string {
	if p == IDFromMax {
		return "max"
	}
	return "last"
}

// nextID returns the id for a book appended to books under policy p.
func nextID(books []Book, p IDPolicy) int64 {
	if len(books) == 0 {
		return 1
	}
	if p == IDFromMax {
		var highest int64
		for _, b := range books {
			if b.ID > highest {
				highest = b.ID
			}
		}
		return highest + 1
	}
	return books[len(books)-1].ID + 1
}

// SeedBooks returns the sample collection a fresh catalog starts with.
func SeedBooks() []Book {
	year := func(y int) *int { return &y }
	return []Book{
		{ID: 1, Title: "Computer Science Pro", Author: "codingwithroby", Description: "A very nice book", PublishDate: year(2015), Rating: 5},
		{ID: 2, Title: "Be fast with FastAPI", Author: "codingwithroby", Description: "This is a great book", PublishDate: year(2016), Rating: 5},
		{ID: 3, Title: "Master Endpoints", Author: "codingwithroby", Description: "This is a awesome book", PublishDate: year(2017), Rating: 5},
		{ID: 4, Title: "HP1", Author: "Author 1", Description: "Book description", PublishDate: year(2000), Rating: 2},
		{ID: 5, Title: "HP2", Author: "Author 2", Description: "Book description", PublishDate: year(2001), Rating: 3},
		{ID: 6, Title: "HP3", Author: "Author 3", Description: "Book description", PublishDate: year(2002), Rating: 1},
	}
}

func clonePublishDate(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func (b Book) clone() Book {
	b.PublishDate = clonePublishDate(b.PublishDate)
	return b
}
