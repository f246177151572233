package ports

import (
	"context"

	"github.com/bookvault/books-api/internal/core/domain"
)

// BookRepository defines persistence operations for books.
// IDs are passed in their external 24-hex string form; the implementation
// owns the conversion to the store's native identifier and returns
// domain.ErrInvalidBookID when the string is malformed.
type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) (*domain.Book, error)
	// FindAll returns every stored book in natural (insertion) order.
	// Pagination is applied by the caller, not here.
	FindAll(ctx context.Context) ([]*domain.Book, error)
	FindByID(ctx context.Context, id string) (*domain.Book, error)
	// Update overwrites only the fields carried by book ($set merge).
	Update(ctx context.Context, id string, book *domain.Book) error
	Delete(ctx context.Context, id string) error
	// AveragePriceByYear averages price over books whose published_date
	// falls within the calendar year [year-01-01, (year+1)-01-01).
	// Returns domain.ErrNoBooksForYear when the interval matches nothing.
	AveragePriceByYear(ctx context.Context, year int) (float64, error)
}
