package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"pasarKarya/business/curation"
	"pasarKarya/domain"
	"pasarKarya/pkg/logger"
	"pasarKarya/pkg/metrics"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type CurationService interface {
	SubmitProduct(ctx context.Context, actor domain.Actor, draft *domain.Product) (domain.Product, error)
	ReviewProduct(ctx context.Context, actor domain.Actor, productID uint, scores []int, comment string) (curation.ReviewOutcome, error)
	ListPendingProducts(ctx context.Context, actor domain.Actor) ([]domain.Product, error)
}

type CurationHandler struct {
	curationService CurationService
	validator       *validator.Validate
	timeout         time.Duration
}

func NewCurationHandler(curationService CurationService) *CurationHandler {
	return &CurationHandler{
		curationService: curationService,
		validator:       validator.New(),
		timeout:         10 * time.Second,
	}
}

type SubmitProductRequest struct {
	ProductName  string  `json:"product_name" validate:"required"`
	Description  string  `json:"description,omitempty"`
	Category     string  `json:"category" validate:"required,oneof=ebook ecourse resep_masakan jasa_design software"`
	Price        float64 `json:"price" validate:"required,gt=0"`
	Stock        int     `json:"stock" validate:"gte=0"`
	ThumbnailURL string  `json:"thumbnail_url,omitempty"`
	ContentURL   string  `json:"content_url,omitempty"`
	// SellerID is honored for admin callers only.
	SellerID uint `json:"seller_id,omitempty"`
}

type ReviewProductRequest struct {
	Scores  []int  `json:"scores" validate:"required,len=8,dive,min=1,max=4"`
	Comment string `json:"comment,omitempty"`
}

// SubmitProduct creates a pending product and credits submission points.
func (h *CurationHandler) SubmitProduct(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req SubmitProductRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate product submission", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	product, err := h.curationService.SubmitProduct(ctx, actor, &domain.Product{
		SellerID:     req.SellerID,
		ProductName:  req.ProductName,
		Description:  req.Description,
		Category:     req.Category,
		Price:        req.Price,
		Stock:        req.Stock,
		ThumbnailURL: req.ThumbnailURL,
		ContentURL:   req.ContentURL,
	})
	if err != nil {
		return c.JSON(httpStatus(err), ResponseError{Message: err.Error()})
	}

	metrics.SubmissionsTotal.Inc()

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Product submitted for curation",
		"product": product,
	})
}

// ReviewProduct scores a pending product and settles the curation outcome.
func (h *CurationHandler) ReviewProduct(c echo.Context) error {
	start := time.Now()

	actor, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var productID uint
	if _, err := fmt.Sscan(c.Param("id"), &productID); err != nil {
		logger.Error("Invalid product ID", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product ID"})
	}

	var req ReviewProductRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate review", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	outcome, err := h.curationService.ReviewProduct(ctx, actor, productID, req.Scores, req.Comment)
	if err != nil {
		return c.JSON(httpStatus(err), ResponseError{Message: err.Error()})
	}

	metrics.ReviewDuration.Observe(time.Since(start).Seconds())
	metrics.ReviewsTotal.WithLabelValues(string(outcome.NewStatus)).Inc()
	metrics.PointsAwardedTotal.WithLabelValues("seller").Add(float64(outcome.SellerCredit))
	metrics.PointsAwardedTotal.WithLabelValues("curator").Add(float64(outcome.CuratorCredit))

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":        "Review recorded",
		"review":         outcome.Review,
		"new_status":     outcome.NewStatus,
		"seller_credit":  outcome.SellerCredit,
		"curator_credit": outcome.CuratorCredit,
	})
}

// ListPendingProducts returns the curation queue, oldest first.
func (h *CurationHandler) ListPendingProducts(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.curationService.ListPendingProducts(ctx, actor)
	if err != nil {
		return c.JSON(httpStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "Pending products retrieved successfully",
		"products": products,
	})
}
