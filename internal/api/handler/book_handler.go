package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/bookvault/books-api/internal/api/metrics"
	"github.com/bookvault/books-api/internal/core/domain"
	"github.com/bookvault/books-api/internal/core/ports"
)

// BookHandler handles HTTP requests for book operations.
type BookHandler struct {
	service ports.BookService
}

func NewBookHandler(service ports.BookService) *BookHandler {
	return &BookHandler{service: service}
}

// List handles GET /books.
//
// @Summary      List books, paginated
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int  false  "1-based page number (page size is fixed at 10)"
// @Success      200   {object}  listBooksResponse
// @Failure      401   {object}  errorResponse
// @Router       /books [get]
func (h *BookHandler) List(c echo.Context) error {
	page := 1
	if raw := c.QueryParam("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			page = n
		}
	}

	result, err := h.service.ListBooks(c.Request().Context(), page)
	if err != nil {
		return err
	}

	var next, previous *string
	if result.HasNext() {
		next = pageURL(c, result.Page+1)
	}
	if result.HasPrevious() {
		previous = pageURL(c, result.Page-1)
	}

	return c.JSON(http.StatusOK, toListResponse(result, next, previous))
}

// pageURL builds the absolute URL of a sibling page of the current request.
func pageURL(c echo.Context, page int) *string {
	u := fmt.Sprintf("%s://%s%s?page=%d", c.Scheme(), c.Request().Host, c.Request().URL.Path, page)
	return &u
}

// Create handles POST /books.
//
// @Summary      Create a new book
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      bookRequest  true  "Book fields"
// @Success      201   {object}  bookResponse
// @Failure      400   {object}  FieldErrors
// @Failure      401   {object}  errorResponse
// @Router       /books [post]
func (h *BookHandler) Create(c echo.Context) error {
	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input, err := toBookInput(req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	book, err := h.service.CreateBook(c.Request().Context(), input)
	if err != nil {
		return err
	}

	metrics.BooksCreatedTotal.WithLabelValues(book.Genre).Inc()
	return c.JSON(http.StatusCreated, toBookResponse(book))
}

// Get handles GET /books/:id.
//
// @Summary      Retrieve a book by id
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Book id (24-character hex)"
// @Success      200  {object}  bookResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /books/{id} [get]
func (h *BookHandler) Get(c echo.Context) error {
	book, err := h.service.GetBook(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookResponse(book))
}

// Update handles PUT /books/:id.
//
// @Summary      Update a book by id
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Book id (24-character hex)"
// @Param        body  body      bookRequest  true  "Book fields (all required)"
// @Success      200   {object}  updateBookResponse
// @Failure      400   {object}  FieldErrors
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /books/{id} [put]
func (h *BookHandler) Update(c echo.Context) error {
	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input, err := toBookInput(req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	updated, err := h.service.UpdateBook(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, updateBookResponse{
		Message:     "the book was successfully updated",
		UpdatedData: toBookFields(updated),
	})
}

// Delete handles DELETE /books/:id.
//
// @Summary      Delete a book by id
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Book id (24-character hex)"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /books/{id} [delete]
func (h *BookHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := h.service.DeleteBook(c.Request().Context(), id); err != nil {
		return err
	}

	metrics.BooksDeletedTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{
		Message: fmt.Sprintf("the book with ID '%s' was deleted successfully", id),
	})
}

// AveragePriceByYear handles GET /books/average-price-by-year.
//
// @Summary      Average book price for a publication year
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        year  query     int  true  "Calendar year (e.g. 2020)"
// @Success      200   {object}  averagePriceResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  messageResponse
// @Failure      500   {object}  errorResponse
// @Router       /books/average-price-by-year [get]
func (h *BookHandler) AveragePriceByYear(c echo.Context) error {
	year, err := strconv.Atoi(c.QueryParam("year"))
	if err != nil {
		metrics.AveragePriceQueriesTotal.WithLabelValues("bad_request").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "a valid year is required")
	}

	avg, err := h.service.AveragePriceByYear(c.Request().Context(), year)
	if err != nil {
		if errors.Is(err, domain.ErrNoBooksForYear) {
			metrics.AveragePriceQueriesTotal.WithLabelValues("no_books").Inc()
		} else {
			metrics.AveragePriceQueriesTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.AveragePriceQueriesTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, averagePriceResponse{AveragePrice: avg})
}
