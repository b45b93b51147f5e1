package product

import (
	"context"
	"fmt"
	"path/filepath"

	"pasarKarya/business/policy"
	"pasarKarya/domain"
	"pasarKarya/pkg/logger"

	"github.com/google/uuid"
)

// ProductRepository contract interface
type ProductRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Product, error)
	FindByStatus(ctx context.Context, status domain.ProductStatus) ([]domain.Product, error)
	FindBySeller(ctx context.Context, sellerID uint) ([]domain.Product, error)
	UpdatePending(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uint) error
}

// StorageRepository contract interface
type StorageRepository interface {
	Upload(folder, filename, contentType string, blob []byte) (string, error)
}

type productService struct {
	productRepo ProductRepository
	storageRepo StorageRepository
}

func NewProductService(productRepo ProductRepository, storageRepo StorageRepository) *productService {
	return &productService{
		productRepo: productRepo,
		storageRepo: storageRepo,
	}
}

// GetCatalog returns the storefront listing. Only approved products are
// visible here regardless of who asks.
func (s *productService) GetCatalog(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get catalog")
		return nil, fmt.Errorf("context error: %w", err)
	}

	products, err := s.productRepo.FindByStatus(ctx, domain.ProductApproved)
	if err != nil {
		logger.Error("Failed to find approved products", err)
		return nil, err
	}

	return products, nil
}

func (s *productService) GetProductByID(ctx context.Context, actor domain.Actor, id uint) (*domain.Product, error) {
	if id == 0 {
		logger.Error("invalid product id")
		return nil, fmt.Errorf("%w: invalid product id", domain.ErrInvalidInput)
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to find product by id", err)
		return nil, err
	}

	if !policy.CanViewProduct(actor.ID, actor.Role, product) {
		return nil, domain.ErrNotFound
	}

	return &product, nil
}

// GetMyProducts returns a seller's own products in any curation state.
func (s *productService) GetMyProducts(ctx context.Context, actor domain.Actor) ([]domain.Product, error) {
	if !policy.Authorize(actor.Role, policy.ActionSubmitProduct) {
		return nil, domain.ErrForbidden
	}

	products, err := s.productRepo.FindBySeller(ctx, actor.ID)
	if err != nil {
		logger.Error("Failed to find seller products", err)
		return nil, err
	}

	return products, nil
}

// UpdateProduct edits a pending product. Only the owning seller or an
// admin may edit, and a curated product can no longer be changed.
func (s *productService) UpdateProduct(ctx context.Context, actor domain.Actor, update *domain.Product) (*domain.Product, error) {
	if !policy.Authorize(actor.Role, policy.ActionEditProduct) {
		return nil, domain.ErrForbidden
	}

	if update.ID == 0 {
		logger.Error("Invalid product data: ID is required")
		return nil, fmt.Errorf("%w: product ID is required", domain.ErrInvalidInput)
	}

	if update.ProductName == "" {
		logger.Error("Invalid product data: product name is required")
		return nil, fmt.Errorf("%w: product name is required", domain.ErrInvalidInput)
	}

	if !domain.IsValidCategory(update.Category) {
		logger.Error("Invalid product data: unknown category", "category", update.Category)
		return nil, fmt.Errorf("%w: unknown category %q", domain.ErrInvalidInput, update.Category)
	}

	if update.Price <= 0 {
		logger.Error("Invalid product data: price must be greater than 0")
		return nil, fmt.Errorf("%w: price must be greater than 0", domain.ErrInvalidInput)
	}

	if update.Stock < 0 {
		logger.Error("Invalid product data: stock cannot be negative")
		return nil, fmt.Errorf("%w: stock cannot be negative", domain.ErrInvalidInput)
	}

	existing, err := s.productRepo.FindByID(ctx, update.ID)
	if err != nil {
		logger.Error("product not found", err)
		return nil, err
	}

	if !policy.CanModifyProduct(actor.ID, actor.Role, existing) {
		return nil, domain.ErrForbidden
	}

	if err := s.productRepo.UpdatePending(ctx, update); err != nil {
		logger.Error("failed to update product", err)
		return nil, err
	}

	updated, err := s.productRepo.FindByID(ctx, update.ID)
	if err != nil {
		logger.Error("failed to fetch updated product", err)
		return nil, fmt.Errorf("failed to fetch updated product: %w", err)
	}

	logger.Info("product updated success")

	return &updated, nil
}

// DeleteProduct removes a product. Sellers may only remove their own
// pending products; admin may remove any.
func (s *productService) DeleteProduct(ctx context.Context, actor domain.Actor, id uint) error {
	if !policy.Authorize(actor.Role, policy.ActionDeleteProduct) {
		return domain.ErrForbidden
	}

	if id == 0 {
		logger.Error("Invalid product id when deleting product")
		return fmt.Errorf("%w: invalid product id", domain.ErrInvalidInput)
	}

	existing, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("product not found", err)
		return err
	}

	if !policy.CanModifyProduct(actor.ID, actor.Role, existing) {
		return domain.ErrForbidden
	}

	if actor.Role != domain.RoleAdmin && existing.Status != domain.ProductPending {
		return fmt.Errorf("%w: only pending products can be deleted", domain.ErrInvalidState)
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete product", err)
		return err
	}

	logger.Info("product deleted success")

	return nil
}

// UploadAsset stores a product file (thumbnail or content) and returns
// its public URL. The original filename only contributes its extension so
// object keys never collide.
func (s *productService) UploadAsset(ctx context.Context, actor domain.Actor, folder, originalName, contentType string, blob []byte) (string, error) {
	if !policy.Authorize(actor.Role, policy.ActionSubmitProduct) {
		return "", domain.ErrForbidden
	}

	if len(blob) == 0 {
		return "", fmt.Errorf("%w: empty file", domain.ErrInvalidInput)
	}

	filename := uuid.NewString() + filepath.Ext(originalName)
	url, err := s.storageRepo.Upload(folder, filename, contentType, blob)
	if err != nil {
		logger.Error("failed to upload product asset", err)
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return url, nil
}
