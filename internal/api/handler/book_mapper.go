package handler

import (
	"time"

	"github.com/bookvault/books-api/internal/core/domain"
	"github.com/bookvault/books-api/internal/core/ports"
)

const dateLayout = "2006-01-02"

// toBookInput converts a validated request into the service DTO. The date
// string has already passed the datetime validation rule, so parsing is
// expected to succeed; the parsed value sits at midnight UTC.
func toBookInput(req bookRequest) (ports.BookInput, error) {
	published, err := time.Parse(dateLayout, req.PublishedDate)
	if err != nil {
		return ports.BookInput{}, err
	}
	return ports.BookInput{
		Title:         req.Title,
		Author:        req.Author,
		PublishedDate: published,
		Genre:         req.Genre,
		Price:         *req.Price,
	}, nil
}

func toBookResponse(b *domain.Book) bookResponse {
	return bookResponse{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		PublishedDate: b.PublishedDate.UTC().Format(dateLayout),
		Genre:         b.Genre,
		Price:         b.Price,
	}
}

func toBookFields(in *ports.BookInput) bookFields {
	return bookFields{
		Title:         in.Title,
		Author:        in.Author,
		PublishedDate: in.PublishedDate.UTC().Format(dateLayout),
		Genre:         in.Genre,
		Price:         in.Price,
	}
}

func toListResponse(page *ports.BookPage, next, previous *string) listBooksResponse {
	results := make([]bookResponse, len(page.Items))
	for i, b := range page.Items {
		results[i] = toBookResponse(b)
	}
	return listBooksResponse{
		Count:    page.Count,
		Next:     next,
		Previous: previous,
		Results:  results,
	}
}
