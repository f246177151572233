package ports

import (
	"context"
	"time"

	"github.com/bookvault/books-api/internal/core/domain"
)

// PageSize is the fixed number of books per list page.
const PageSize = 10

// BookInput carries a validated book payload from the transport layer.
// PublishedDate is already normalized to midnight UTC.
type BookInput struct {
	Title         string
	Author        string
	PublishedDate time.Time
	Genre         string
	Price         float64
}

// BookPage is one page of the book listing.
type BookPage struct {
	Items []*domain.Book
	Count int // total number of books across all pages
	Page  int // 1-based page that was returned
}

// HasNext reports whether a page exists after this one.
func (p *BookPage) HasNext() bool {
	return p.Page*PageSize < p.Count
}

// HasPrevious reports whether a page exists before this one.
func (p *BookPage) HasPrevious() bool {
	return p.Page > 1
}

// BookService defines use-case operations for books.
type BookService interface {
	CreateBook(ctx context.Context, input BookInput) (*domain.Book, error)
	ListBooks(ctx context.Context, page int) (*BookPage, error)
	GetBook(ctx context.Context, id string) (*domain.Book, error)
	// UpdateBook applies a field-level merge and returns the normalized
	// fields that were written.
	UpdateBook(ctx context.Context, id string, input BookInput) (*BookInput, error)
	DeleteBook(ctx context.Context, id string) error
	AveragePriceByYear(ctx context.Context, year int) (float64, error)
}
