package rest

import (
	"errors"
	"net/http"

	"pasarKarya/domain"

	"github.com/labstack/echo/v4"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

// actorFrom rebuilds the caller identity set by the auth middleware.
func actorFrom(c echo.Context) (domain.Actor, bool) {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return domain.Actor{}, false
	}

	roleStr, ok := c.Get("role").(string)
	if !ok {
		return domain.Actor{}, false
	}

	return domain.Actor{ID: userID, Role: domain.Role(roleStr)}, true
}

// httpStatus maps domain sentinel errors onto status codes so every
// handler reports the taxonomy the same way.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
