package middleware

import (
	"errors"
	"net/http"

	"pasarKarya/domain"
	"pasarKarya/pkg/logger"

	jsonres "pasarKarya/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler is the echo fallback for errors that escape the handlers.
// Domain sentinels keep their HTTP mapping; everything else is a 500.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	label := "INTERNAL_SERVER_ERROR"

	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		code = he.Code
		label = http.StatusText(code)
	case errors.Is(err, domain.ErrInvalidInput):
		code = http.StatusBadRequest
		label = "BAD_REQUEST"
	case errors.Is(err, domain.ErrInvalidState):
		code = http.StatusConflict
		label = "CONFLICT"
	case errors.Is(err, domain.ErrForbidden):
		code = http.StatusForbidden
		label = "FORBIDDEN"
	case errors.Is(err, domain.ErrNotFound):
		code = http.StatusNotFound
		label = "NOT_FOUND"
	}

	if code == http.StatusInternalServerError {
		logger.Error("unhandled error", err)
	}

	if err := c.JSON(code, jsonres.Error(label, err.Error(), nil)); err != nil {
		logger.Error("failed to write error response", err)
	}
}
