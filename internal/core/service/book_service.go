package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/bookvault/books-api/internal/core/domain"
	"github.com/bookvault/books-api/internal/core/ports"
)

type BookService struct {
	repo   ports.BookRepository
	logger zerolog.Logger
}

func NewBookService(repo ports.BookRepository, logger zerolog.Logger) *BookService {
	return &BookService{repo: repo, logger: logger}
}

func (s *BookService) CreateBook(ctx context.Context, input ports.BookInput) (*domain.Book, error) {
	book := &domain.Book{
		Title:         input.Title,
		Author:        input.Author,
		PublishedDate: input.PublishedDate,
		Genre:         input.Genre,
		Price:         input.Price,
	}

	created, err := s.repo.Create(ctx, book)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create book")
		return nil, err
	}

	s.logger.Info().Str("book_id", created.ID).Str("title", created.Title).Msg("book created")
	return created, nil
}

// ListBooks returns the requested page of books. The repository hands back
// the full collection; pagination is applied here with a fixed page size.
func (s *BookService) ListBooks(ctx context.Context, page int) (*ports.BookPage, error) {
	if page < 1 {
		page = 1
	}

	books, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	count := len(books)
	start := (page - 1) * ports.PageSize
	if start > count {
		start = count
	}
	end := start + ports.PageSize
	if end > count {
		end = count
	}

	return &ports.BookPage{
		Items: books[start:end],
		Count: count,
		Page:  page,
	}, nil
}

func (s *BookService) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateBook merges the supplied fields into the stored document. The
// returned input echoes the normalized values that were written.
func (s *BookService) UpdateBook(ctx context.Context, id string, input ports.BookInput) (*ports.BookInput, error) {
	book := &domain.Book{
		Title:         input.Title,
		Author:        input.Author,
		PublishedDate: input.PublishedDate,
		Genre:         input.Genre,
		Price:         input.Price,
	}

	if err := s.repo.Update(ctx, id, book); err != nil {
		return nil, err
	}

	s.logger.Info().Str("book_id", id).Msg("book updated")
	return &input, nil
}

func (s *BookService) DeleteBook(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("book_id", id).Msg("book deleted")
	return nil
}

func (s *BookService) AveragePriceByYear(ctx context.Context, year int) (float64, error) {
	return s.repo.AveragePriceByYear(ctx, year)
}
