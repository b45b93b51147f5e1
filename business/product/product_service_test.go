package product

import (
	"context"
	"testing"

	"pasarKarya/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uint) (domain.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindByStatus(ctx context.Context, status domain.ProductStatus) ([]domain.Product, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySeller(ctx context.Context, sellerID uint) ([]domain.Product, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) UpdatePending(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockStorageRepository is a mock implementation of StorageRepository
type MockStorageRepository struct {
	mock.Mock
}

func (m *MockStorageRepository) Upload(folder, filename, contentType string, blob []byte) (string, error) {
	args := m.Called(folder, filename, contentType, blob)
	return args.String(0), args.Error(1)
}

var (
	owner    = domain.Actor{ID: 2, Role: domain.RoleSeller}
	stranger = domain.Actor{ID: 3, Role: domain.RoleSeller}
	admin    = domain.Actor{ID: 1, Role: domain.RoleAdmin}
	client   = domain.Actor{ID: 9, Role: domain.RoleClient}
)

func pendingProduct() domain.Product {
	return domain.Product{
		ID:          4,
		SellerID:    2,
		ProductName: "Ebook Golang",
		Category:    domain.CategoryEbook,
		Price:       50000,
		Stock:       10,
		Status:      domain.ProductPending,
	}
}

func TestGetCatalog(t *testing.T) {
	repo := new(MockProductRepository)
	svc := NewProductService(repo, new(MockStorageRepository))

	repo.On("FindByStatus", mock.Anything, domain.ProductApproved).
		Return([]domain.Product{{ID: 4, Status: domain.ProductApproved}}, nil)

	products, err := svc.GetCatalog(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 1)
	repo.AssertExpectations(t)
}

func TestGetProductByID(t *testing.T) {
	t.Run("owner sees own pending product", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewProductService(repo, new(MockStorageRepository))

		repo.On("FindByID", mock.Anything, uint(4)).Return(pendingProduct(), nil)

		product, err := svc.GetProductByID(context.Background(), owner, 4)
		require.NoError(t, err)
		assert.Equal(t, uint(4), product.ID)
	})

	t.Run("pending product is hidden from other users", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewProductService(repo, new(MockStorageRepository))

		repo.On("FindByID", mock.Anything, uint(4)).Return(pendingProduct(), nil)

		_, err := svc.GetProductByID(context.Background(), client, 4)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("curator sees pending product", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewProductService(repo, new(MockStorageRepository))

		repo.On("FindByID", mock.Anything, uint(4)).Return(pendingProduct(), nil)

		_, err := svc.GetProductByID(context.Background(), domain.Actor{ID: 7, Role: domain.RoleCurator}, 4)
		assert.NoError(t, err)
	})
}

func TestUpdateProduct(t *testing.T) {
	validUpdate := func() *domain.Product {
		return &domain.Product{
			ID:          4,
			ProductName: "Ebook Golang Edisi 2",
			Category:    domain.CategoryEbook,
			Price:       60000,
			Stock:       5,
		}
	}

	t.Run("owner updates pending product", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewProductService(repo, new(MockStorageRepository))

		repo.On("FindByID", mock.Anything, uint(4)).Return(pendingProduct(), nil).Once()
		repo.On("UpdatePending", mock.Anything, mock.Anything).Return(nil)
		updated := pendingProduct()
		updated.ProductName = "Ebook Golang Edisi 2"
		repo.On("FindByID", mock.Anything, uint(4)).Return(updated, nil)

		product, err := svc.UpdateProduct(context.Background(), owner, validUpdate())
		require.NoError(t, err)
		assert.Equal(t, "Ebook Golang Edisi 2", product.ProductName)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewProductService(repo, new(MockStorageRepository))

		repo.On("FindByID", mock.Anything, uint(4)).Return(pendingProduct(), nil)

		_, err := svc.UpdateProduct(context.Background(), stranger, validUpdate())
		assert.ErrorIs(t, err, domain.ErrForbidden)
		repo.AssertNotCalled(t, "UpdatePending")
	})

	t.Run("curated product passes through invalid state", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewProductService(repo, new(MockStorageRepository))

		approved := pendingProduct()
		approved.Status = domain.ProductApproved
		repo.On("FindByID", mock.Anything, uint(4)).Return(approved, nil)
		repo.On("UpdatePending", mock.Anything, mock.Anything).Return(domain.ErrInvalidState)

		_, err := svc.UpdateProduct(context.Background(), owner, validUpdate())
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})
}

func TestDeleteProduct(t *testing.T) {
	t.Run("owner deletes pending product", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewProductService(repo, new(MockStorageRepository))

		repo.On("FindByID", mock.Anything, uint(4)).Return(pendingProduct(), nil)
		repo.On("Delete", mock.Anything, uint(4)).Return(nil)

		err := svc.DeleteProduct(context.Background(), owner, 4)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("owner cannot delete approved product", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewProductService(repo, new(MockStorageRepository))

		approved := pendingProduct()
		approved.Status = domain.ProductApproved
		repo.On("FindByID", mock.Anything, uint(4)).Return(approved, nil)

		err := svc.DeleteProduct(context.Background(), owner, 4)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
		repo.AssertNotCalled(t, "Delete")
	})

	t.Run("admin deletes approved product", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewProductService(repo, new(MockStorageRepository))

		approved := pendingProduct()
		approved.Status = domain.ProductApproved
		repo.On("FindByID", mock.Anything, uint(4)).Return(approved, nil)
		repo.On("Delete", mock.Anything, uint(4)).Return(nil)

		err := svc.DeleteProduct(context.Background(), admin, 4)
		assert.NoError(t, err)
	})

	t.Run("client is forbidden", func(t *testing.T) {
		svc := NewProductService(new(MockProductRepository), new(MockStorageRepository))

		err := svc.DeleteProduct(context.Background(), client, 4)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestUploadAsset(t *testing.T) {
	t.Run("upload returns public url", func(t *testing.T) {
		storageRepo := new(MockStorageRepository)
		svc := NewProductService(new(MockProductRepository), storageRepo)

		storageRepo.On("Upload", "thumbnails", mock.MatchedBy(func(name string) bool {
			return len(name) > 4 && name[len(name)-4:] == ".png"
		}), "image/png", []byte{1, 2, 3}).Return("https://cdn.example.com/x.png", nil)

		url, err := svc.UploadAsset(context.Background(), owner, "thumbnails", "sampul.png", "image/png", []byte{1, 2, 3})
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/x.png", url)
	})

	t.Run("empty file is invalid input", func(t *testing.T) {
		svc := NewProductService(new(MockProductRepository), new(MockStorageRepository))

		_, err := svc.UploadAsset(context.Background(), owner, "contents", "isi.zip", "application/zip", nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}
