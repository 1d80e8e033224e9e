package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"loan-origination/internal/domain/apperr"
	"loan-origination/internal/domain/application"
)

type transitionErrorResponse struct {
	Error          string   `json:"error"`
	CurrentStatus  string   `json:"current_status"`
	AllowedActions []string `json:"allowed_actions"`
}

// respondError maps usecase errors onto status codes.
func respondError(c echo.Context, err error) error {
	var te *application.InvalidTransitionError
	if errors.As(err, &te) {
		allowed := make([]string, 0, len(te.Allowed))
		for _, a := range te.Allowed {
			allowed = append(allowed, string(a))
		}
		return c.JSON(http.StatusConflict, transitionErrorResponse{
			Error:          te.Error(),
			CurrentStatus:  string(te.Current),
			AllowedActions: allowed,
		})
	}
	if fields, ok := apperr.AsValidation(err); ok {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: fromFieldErrors(fields),
		})
	}

	code := statusOf(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = "internal server error"
	}
	return c.JSON(code, ErrorResponse{Error: msg})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, apperr.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperr.ErrUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func invalidRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation failed",
		Details: ToFieldErrors(err),
	})
}
