package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bookvault/books-api/internal/core/domain"
	"github.com/bookvault/books-api/internal/core/ports"
)

type stubBookService struct {
	createFn func(ctx context.Context, input ports.BookInput) (*domain.Book, error)
	listFn   func(ctx context.Context, page int) (*ports.BookPage, error)
	getFn    func(ctx context.Context, id string) (*domain.Book, error)
	updateFn func(ctx context.Context, id string, input ports.BookInput) (*ports.BookInput, error)
	deleteFn func(ctx context.Context, id string) error
	avgFn    func(ctx context.Context, year int) (float64, error)
}

func (s *stubBookService) CreateBook(ctx context.Context, input ports.BookInput) (*domain.Book, error) {
	return s.createFn(ctx, input)
}

func (s *stubBookService) ListBooks(ctx context.Context, page int) (*ports.BookPage, error) {
	return s.listFn(ctx, page)
}

func (s *stubBookService) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	return s.getFn(ctx, id)
}

func (s *stubBookService) UpdateBook(ctx context.Context, id string, input ports.BookInput) (*ports.BookInput, error) {
	return s.updateFn(ctx, id, input)
}

func (s *stubBookService) DeleteBook(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *stubBookService) AveragePriceByYear(ctx context.Context, year int) (float64, error) {
	return s.avgFn(ctx, year)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func sampleBooks(n int) []*domain.Book {
	books := make([]*domain.Book, n)
	for i := range books {
		books[i] = &domain.Book{
			ID:            fmt.Sprintf("%024x", i+1),
			Title:         fmt.Sprintf("Book %d", i),
			Author:        "Jane Doe",
			PublishedDate: time.Date(2020, 6, 15, 0, 0, 0, 0, time.UTC),
			Genre:         "fiction",
			Price:         9.99,
		}
	}
	return books
}

const validBookJSON = `{"title":"Dune","author":"Frank Herbert","published_date":"1965-08-01","genre":"science fiction","price":34.99}`

func TestBookHandler_List_FirstPage(t *testing.T) {
	e := newTestEcho()
	stub := &stubBookService{
		listFn: func(ctx context.Context, page int) (*ports.BookPage, error) {
			if page != 1 {
				t.Fatalf("expected page 1, got %d", page)
			}
			return &ports.BookPage{Items: sampleBooks(10), Count: 15, Page: 1}, nil
		},
	}
	h := NewBookHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/books", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/books")

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Count    int              `json:"count"`
		Next     *string          `json:"next"`
		Previous *string          `json:"previous"`
		Results  []map[string]any `json:"results"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Count != 15 || len(resp.Results) != 10 {
		t.Fatalf("unexpected page: count=%d results=%d", resp.Count, len(resp.Results))
	}
	if resp.Next == nil || !strings.Contains(*resp.Next, "page=2") {
		t.Fatalf("expected next url with page=2, got %v", resp.Next)
	}
	if resp.Previous != nil {
		t.Fatalf("expected null previous on first page, got %v", *resp.Previous)
	}
	if resp.Results[0]["published_date"] != "2020-06-15" {
		t.Fatalf("expected date-only string, got %v", resp.Results[0]["published_date"])
	}
}

func TestBookHandler_List_LastPage(t *testing.T) {
	e := newTestEcho()
	stub := &stubBookService{
		listFn: func(ctx context.Context, page int) (*ports.BookPage, error) {
			return &ports.BookPage{Items: sampleBooks(5), Count: 15, Page: 2}, nil
		},
	}
	h := NewBookHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/books?page=2", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp struct {
		Next     *string          `json:"next"`
		Previous *string          `json:"previous"`
		Results  []map[string]any `json:"results"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(resp.Results))
	}
	if resp.Next != nil {
		t.Fatalf("expected null next on last page, got %v", *resp.Next)
	}
	if resp.Previous == nil || !strings.Contains(*resp.Previous, "page=1") {
		t.Fatalf("expected previous url with page=1, got %v", resp.Previous)
	}
}

func TestBookHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubBookService{
		createFn: func(ctx context.Context, input ports.BookInput) (*domain.Book, error) {
			if input.Title != "Dune" || input.Price != 34.99 {
				t.Fatalf("unexpected input: %+v", input)
			}
			want := time.Date(1965, 8, 1, 0, 0, 0, 0, time.UTC)
			if !input.PublishedDate.Equal(want) {
				t.Fatalf("expected parsed date %v, got %v", want, input.PublishedDate)
			}
			return &domain.Book{
				ID:            "65b2c3d4e5f6a7b8c9d0e1f2",
				Title:         input.Title,
				Author:        input.Author,
				PublishedDate: input.PublishedDate,
				Genre:         input.Genre,
				Price:         input.Price,
			}, nil
		},
	}
	h := NewBookHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader(validBookJSON))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "65b2c3d4e5f6a7b8c9d0e1f2" {
		t.Fatalf("expected id in response, got %v", resp["id"])
	}
	if resp["price"] != 34.99 {
		t.Fatalf("expected price to round-trip, got %v", resp["price"])
	}
	if resp["published_date"] != "1965-08-01" {
		t.Fatalf("expected date-only string, got %v", resp["published_date"])
	}
}

func TestBookHandler_Create_ValidationFailure(t *testing.T) {
	e := newTestEcho()
	stub := &stubBookService{
		createFn: func(ctx context.Context, input ports.BookInput) (*domain.Book, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := NewBookHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader(`{"title":"Only a title"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Create(c)
	var fe FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	for _, field := range []string{"author", "published_date", "genre", "price"} {
		if len(fe[field]) == 0 {
			t.Fatalf("expected error for %s, got %v", field, fe)
		}
	}
	if len(fe["title"]) != 0 {
		t.Fatalf("title was valid, got %v", fe["title"])
	}
}

func TestBookHandler_Get_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubBookService{
		getFn: func(ctx context.Context, id string) (*domain.Book, error) {
			return nil, domain.ErrBookNotFound
		},
	}
	h := NewBookHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/books/ffffffffffffffffffffffff", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("ffffffffffffffffffffffff")

	if err := h.Get(c); !errors.Is(err, domain.ErrBookNotFound) {
		t.Fatalf("expected ErrBookNotFound, got %v", err)
	}
}

func TestBookHandler_Get_InvalidID(t *testing.T) {
	e := newTestEcho()
	stub := &stubBookService{
		getFn: func(ctx context.Context, id string) (*domain.Book, error) {
			return nil, domain.ErrInvalidBookID
		},
	}
	h := NewBookHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/books/abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	if err := h.Get(c); !errors.Is(err, domain.ErrInvalidBookID) {
		t.Fatalf("expected ErrInvalidBookID, got %v", err)
	}
}

func TestBookHandler_Update_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubBookService{
		updateFn: func(ctx context.Context, id string, input ports.BookInput) (*ports.BookInput, error) {
			if id != "65b2c3d4e5f6a7b8c9d0e1f2" {
				t.Fatalf("unexpected id: %s", id)
			}
			return &input, nil
		},
	}
	h := NewBookHandler(stub)

	req := httptest.NewRequest(http.MethodPut, "/books/65b2c3d4e5f6a7b8c9d0e1f2", strings.NewReader(validBookJSON))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("65b2c3d4e5f6a7b8c9d0e1f2")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Message     string         `json:"message"`
		UpdatedData map[string]any `json:"updated_data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Message == "" {
		t.Fatalf("expected message in response")
	}
	if resp.UpdatedData["title"] != "Dune" || resp.UpdatedData["published_date"] != "1965-08-01" {
		t.Fatalf("unexpected updated_data: %v", resp.UpdatedData)
	}
}

func TestBookHandler_Update_SubsetRejected(t *testing.T) {
	e := newTestEcho()
	stub := &stubBookService{
		updateFn: func(ctx context.Context, id string, input ports.BookInput) (*ports.BookInput, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := NewBookHandler(stub)

	req := httptest.NewRequest(http.MethodPut, "/books/65b2c3d4e5f6a7b8c9d0e1f2", strings.NewReader(`{"price":12.5}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("65b2c3d4e5f6a7b8c9d0e1f2")

	err := h.Update(c)
	var fe FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("expected FieldErrors for partial payload, got %v", err)
	}
	for _, field := range []string{"title", "author", "published_date", "genre"} {
		if len(fe[field]) == 0 {
			t.Fatalf("expected error for %s, got %v", field, fe)
		}
	}
}

func TestBookHandler_Delete_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubBookService{
		deleteFn: func(ctx context.Context, id string) error {
			return nil
		},
	}
	h := NewBookHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/books/65b2c3d4e5f6a7b8c9d0e1f2", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("65b2c3d4e5f6a7b8c9d0e1f2")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "message") {
		t.Fatalf("expected message body, got %s", rec.Body.String())
	}
}

func TestBookHandler_AveragePrice_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubBookService{
		avgFn: func(ctx context.Context, year int) (float64, error) {
			if year != 2020 {
				t.Fatalf("expected year 2020, got %d", year)
			}
			return 15, nil
		},
	}
	h := NewBookHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/books/average-price-by-year?year=2020", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.AveragePriceByYear(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]float64
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["average_price"] != 15 {
		t.Fatalf("expected average_price 15, got %v", resp["average_price"])
	}
}

func TestBookHandler_AveragePrice_YearRequired(t *testing.T) {
	e := newTestEcho()
	stub := &stubBookService{
		avgFn: func(ctx context.Context, year int) (float64, error) {
			t.Fatalf("service should not be called")
			return 0, nil
		},
	}
	h := NewBookHandler(stub)

	for _, target := range []string{"/books/average-price-by-year", "/books/average-price-by-year?year=twenty"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := h.AveragePriceByYear(c)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %q, got %v", target, err)
		}
	}
}

func TestBookHandler_AveragePrice_NoBooks(t *testing.T) {
	e := newTestEcho()
	stub := &stubBookService{
		avgFn: func(ctx context.Context, year int) (float64, error) {
			return 0, domain.ErrNoBooksForYear
		},
	}
	h := NewBookHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/books/average-price-by-year?year=1999", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.AveragePriceByYear(c); !errors.Is(err, domain.ErrNoBooksForYear) {
		t.Fatalf("expected ErrNoBooksForYear, got %v", err)
	}
}
