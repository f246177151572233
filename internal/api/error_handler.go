package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bookvault/books-api/internal/api/handler"
	"github.com/bookvault/books-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// messageResponse is the envelope for informational non-success bodies, such
// as the empty-year aggregation outcome.
type messageResponse struct {
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Renders validation failures verbatim as {"field": ["reason", ...]}.
//   - Maps known domain errors to their HTTP status codes; this is the only
//     place a status is decided for a service-layer failure.
//   - Logs unexpected errors and surfaces their message with a 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, any) {
	// Field-level validation failures keep their own body shape.
	var fe handler.FieldErrors
	if errors.As(err, &fe) {
		return http.StatusBadRequest, fe
	}

	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	switch {
	case errors.Is(err, domain.ErrInvalidBookID):
		return http.StatusBadRequest, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrBookNotFound):
		return http.StatusNotFound, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrNoBooksForYear):
		return http.StatusNotFound, messageResponse{Message: err.Error()}
	case errors.Is(err, domain.ErrMissingCredentials):
		return http.StatusBadRequest, errorResponse{Error: err.Error()}
	// A duplicate username is reported as 400, not 409. This mirrors the
	// registration contract callers already depend on.
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusBadRequest, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, errorResponse{Error: err.Error()}
	}

	// Unexpected error: log it and pass the message through.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: err.Error()}
}
