package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"pasarKarya/domain"
	"pasarKarya/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type CuratorService interface {
	ListPending(ctx context.Context, actor domain.Actor) ([]domain.User, error)
	Approve(ctx context.Context, actor domain.Actor, userID uint, grant int) (domain.User, error)
	Reject(ctx context.Context, actor domain.Actor, userID uint, reason string) error
}

type CuratorHandler struct {
	curatorService CuratorService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewCuratorHandler(curatorService CuratorService) *CuratorHandler {
	return &CuratorHandler{
		curatorService: curatorService,
		validator:      validator.New(),
		timeout:        10 * time.Second,
	}
}

type ApproveCuratorRequest struct {
	// Grant overrides the default onboarding point grant when positive.
	Grant int `json:"grant,omitempty" validate:"omitempty,gte=0"`
}

type RejectCuratorRequest struct {
	Reason string `json:"reason,omitempty"`
}

// ListPending returns curator applications waiting for a decision.
func (h *CuratorHandler) ListPending(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	curators, err := h.curatorService.ListPending(ctx, actor)
	if err != nil {
		return c.JSON(httpStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "Pending curators retrieved successfully",
		"curators": curators,
	})
}

// Approve accepts a curator application and seeds their point balance.
func (h *CuratorHandler) Approve(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var userID uint
	if _, err := fmt.Sscan(c.Param("id"), &userID); err != nil {
		logger.Error("Invalid user ID", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid user ID"})
	}

	var req ApproveCuratorRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	user, err := h.curatorService.Approve(ctx, actor, userID, req.Grant)
	if err != nil {
		return c.JSON(httpStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Curator approved successfully",
		"user":    user,
	})
}

// Reject declines a curator application and demotes the account to client.
func (h *CuratorHandler) Reject(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var userID uint
	if _, err := fmt.Sscan(c.Param("id"), &userID); err != nil {
		logger.Error("Invalid user ID", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid user ID"})
	}

	var req RejectCuratorRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.curatorService.Reject(ctx, actor, userID, req.Reason); err != nil {
		return c.JSON(httpStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Curator application rejected",
	})
}
