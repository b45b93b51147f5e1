package rest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"pasarKarya/domain"
	"pasarKarya/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type ProductService interface {
	GetCatalog(ctx context.Context) ([]domain.Product, error)
	GetProductByID(ctx context.Context, actor domain.Actor, id uint) (*domain.Product, error)
	GetMyProducts(ctx context.Context, actor domain.Actor) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, actor domain.Actor, update *domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, actor domain.Actor, id uint) error
	UploadAsset(ctx context.Context, actor domain.Actor, folder, originalName, contentType string, blob []byte) (string, error)
}

type ProductHandler struct {
	productService ProductService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewProductHandler(productService ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		validator:      validator.New(),
		timeout:        10 * time.Second,
	}
}

type ProductUpdateRequest struct {
	ProductName  string  `json:"product_name" validate:"required"`
	Description  string  `json:"description,omitempty"`
	Category     string  `json:"category" validate:"required"`
	Price        float64 `json:"price" validate:"required,gt=0"`
	Stock        int     `json:"stock" validate:"gte=0"`
	ThumbnailURL string  `json:"thumbnail_url,omitempty"`
	ContentURL   string  `json:"content_url,omitempty"`
}

// GetCatalog lists approved products, public route.
func (h *ProductHandler) GetCatalog(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.productService.GetCatalog(ctx)
	if err != nil {
		logger.Error("Failed to get catalog", err)
		return c.JSON(httpStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "Products retrieved successfully",
		"products": products,
	})
}

func (h *ProductHandler) GetProductByID(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var productID uint
	if _, err := fmt.Sscan(c.Param("id"), &productID); err != nil {
		logger.Error("Invalid product ID", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	product, err := h.productService.GetProductByID(ctx, actor, productID)
	if err != nil {
		return c.JSON(httpStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Product retrieved successfully",
		"product": product,
	})
}

// GetMyProducts lists the seller's own products in every curation state.
func (h *ProductHandler) GetMyProducts(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.productService.GetMyProducts(ctx, actor)
	if err != nil {
		return c.JSON(httpStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "Products retrieved successfully",
		"products": products,
	})
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var productID uint
	if _, err := fmt.Sscan(c.Param("id"), &productID); err != nil {
		logger.Error("Invalid product ID", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product ID"})
	}

	var req ProductUpdateRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate product update", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, err := h.productService.UpdateProduct(ctx, actor, &domain.Product{
		ID:           productID,
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

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Product updated successfully",
		"product": updated,
	})
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var productID uint
	if _, err := fmt.Sscan(c.Param("id"), &productID); err != nil {
		logger.Error("Invalid product ID", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.productService.DeleteProduct(ctx, actor, productID); err != nil {
		return c.JSON(httpStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Product deleted successfully",
	})
}

// UploadAsset receives a multipart file and stores it in object storage.
// The folder query param picks thumbnail or content placement.
func (h *ProductHandler) UploadAsset(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	folder := c.QueryParam("folder")
	if folder != "thumbnails" && folder != "contents" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "folder must be thumbnails or contents"})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		logger.Error("Missing file in upload", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "file is required"})
	}

	src, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	defer src.Close()

	blob, err := io.ReadAll(src)
	if err != nil {
		logger.Error("Failed to read uploaded file", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	url, err := h.productService.UploadAsset(ctx, actor, folder, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), blob)
	if err != nil {
		return c.JSON(httpStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "File uploaded successfully",
		"url":     url,
	})
}
