package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"pasarKarya/domain"
	"pasarKarya/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	RedeemHandler struct {
		validate      *validator.Validate
		redeemService RedeemService
		timeout       time.Duration
	}

	RedeemService interface {
		ListRedeemProducts(ctx context.Context, actor domain.Actor) ([]domain.RedeemProduct, error)
		CreateRedeemProduct(ctx context.Context, actor domain.Actor, item *domain.RedeemProduct) (domain.RedeemProduct, error)
		Redeem(ctx context.Context, actor domain.Actor, redeemProductID uint) (domain.Redemption, error)
		GetMyRedemptions(ctx context.Context, actor domain.Actor) ([]domain.Redemption, error)
	}

	RedeemProductInput struct {
		Name        string `json:"name" validate:"required"`
		Description string `json:"description,omitempty"`
		PointCost   int    `json:"point_cost" validate:"required,gt=0"`
		Stock       int    `json:"stock" validate:"gte=0"`
	}
)

func NewRedeemHandler(redeemService RedeemService) *RedeemHandler {
	return &RedeemHandler{
		validate:      validator.New(),
		redeemService: redeemService,
		timeout:       10 * time.Second,
	}
}

func (h *RedeemHandler) ListRedeemProducts(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	items, err := h.redeemService.ListRedeemProducts(ctx, actor)
	if err != nil {
		logger.Error("Failed to list redeem products", err)
		return c.JSON(httpStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(items))
}

func (h *RedeemHandler) CreateRedeemProduct(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var request RedeemProductInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate redeem product", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	item, err := h.redeemService.CreateRedeemProduct(ctx, actor, &domain.RedeemProduct{
		Name:        request.Name,
		Description: request.Description,
		PointCost:   request.PointCost,
		Stock:       request.Stock,
	})
	if err != nil {
		logger.Error("Failed to create redeem product", err)
		return c.JSON(httpStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(item))
}

func (h *RedeemHandler) Redeem(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid redeem product ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	redemption, err := h.redeemService.Redeem(ctx, actor, uint(itemID))
	if err != nil {
		logger.Error("Failed to redeem", err)
		return c.JSON(httpStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(redemption))
}

func (h *RedeemHandler) GetMyRedemptions(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	redemptions, err := h.redeemService.GetMyRedemptions(ctx, actor)
	if err != nil {
		logger.Error("Failed to get redemptions", err)
		return c.JSON(httpStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(redemptions))
}
