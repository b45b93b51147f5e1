package curation

import (
	"context"
	"testing"

	"pasarKarya/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCurationRepository is a mock implementation of CurationRepository
type MockCurationRepository struct {
	mock.Mock
}

func (m *MockCurationRepository) CreateSubmission(ctx context.Context, product *domain.Product, sellerCredit int) error {
	args := m.Called(ctx, product, sellerCredit)
	return args.Error(0)
}

func (m *MockCurationRepository) ApplyReview(ctx context.Context, review *domain.Review, newStatus domain.ProductStatus, sellerCredit, curatorCredit int) error {
	args := m.Called(ctx, review, newStatus, sellerCredit, curatorCredit)
	return args.Error(0)
}

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

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

func validScores() []int {
	return []int{3, 3, 3, 3, 3, 3, 3, 3}
}

func TestSubmitProduct(t *testing.T) {
	draft := func() *domain.Product {
		return &domain.Product{
			ProductName: "Belajar Go",
			Category:    domain.CategoryEbook,
			Price:       50000,
			Stock:       10,
		}
	}

	t.Run("seller submits and earns 2 points", func(t *testing.T) {
		curationRepo := new(MockCurationRepository)
		svc := NewCurationService(curationRepo, new(MockProductRepository), new(MockUserRepository))

		curationRepo.On("CreateSubmission", mock.Anything, mock.AnythingOfType("*domain.Product"), 2).Return(nil)

		product, err := svc.SubmitProduct(context.Background(), domain.Actor{ID: 7, Role: domain.RoleSeller}, draft())
		require.NoError(t, err)
		assert.Equal(t, uint(7), product.SellerID)
		assert.Equal(t, domain.ProductPending, product.Status)
		curationRepo.AssertExpectations(t)
	})

	t.Run("client is forbidden", func(t *testing.T) {
		curationRepo := new(MockCurationRepository)
		svc := NewCurationService(curationRepo, new(MockProductRepository), new(MockUserRepository))

		_, err := svc.SubmitProduct(context.Background(), domain.Actor{ID: 7, Role: domain.RoleClient}, draft())
		assert.ErrorIs(t, err, domain.ErrForbidden)
		curationRepo.AssertNotCalled(t, "CreateSubmission")
	})

	t.Run("curator is forbidden", func(t *testing.T) {
		svc := NewCurationService(new(MockCurationRepository), new(MockProductRepository), new(MockUserRepository))

		_, err := svc.SubmitProduct(context.Background(), domain.Actor{ID: 7, Role: domain.RoleCurator}, draft())
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("unknown category rejected", func(t *testing.T) {
		svc := NewCurationService(new(MockCurationRepository), new(MockProductRepository), new(MockUserRepository))

		d := draft()
		d.Category = "perabotan"
		_, err := svc.SubmitProduct(context.Background(), domain.Actor{ID: 7, Role: domain.RoleSeller}, d)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("missing name rejected", func(t *testing.T) {
		svc := NewCurationService(new(MockCurationRepository), new(MockProductRepository), new(MockUserRepository))

		d := draft()
		d.ProductName = ""
		_, err := svc.SubmitProduct(context.Background(), domain.Actor{ID: 7, Role: domain.RoleSeller}, d)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("admin submits on behalf of seller", func(t *testing.T) {
		curationRepo := new(MockCurationRepository)
		svc := NewCurationService(curationRepo, new(MockProductRepository), new(MockUserRepository))

		curationRepo.On("CreateSubmission", mock.Anything, mock.AnythingOfType("*domain.Product"), 2).Return(nil)

		d := draft()
		d.SellerID = 42
		product, err := svc.SubmitProduct(context.Background(), domain.Actor{ID: 1, Role: domain.RoleAdmin}, d)
		require.NoError(t, err)
		assert.Equal(t, uint(42), product.SellerID)
	})
}

func TestReviewProduct(t *testing.T) {
	pendingProduct := domain.Product{
		ID:       11,
		SellerID: 7,
		Category: domain.CategorySoftware,
		Status:   domain.ProductPending,
	}
	approvedCurator := domain.User{ID: 3, Role: domain.RoleCurator, CuratorApproved: true}

	t.Run("passing review approves product with software credits", func(t *testing.T) {
		curationRepo := new(MockCurationRepository)
		productRepo := new(MockProductRepository)
		userRepo := new(MockUserRepository)
		svc := NewCurationService(curationRepo, productRepo, userRepo)

		userRepo.On("FindByID", mock.Anything, uint(3)).Return(approvedCurator, nil)
		productRepo.On("FindByID", mock.Anything, uint(11)).Return(pendingProduct, nil)
		curationRepo.On("ApplyReview", mock.Anything, mock.AnythingOfType("*domain.Review"), domain.ProductApproved, 10, 200).Return(nil)

		outcome, err := svc.ReviewProduct(context.Background(), domain.Actor{ID: 3, Role: domain.RoleCurator}, 11, validScores(), "bagus")
		require.NoError(t, err)
		assert.Equal(t, domain.ProductApproved, outcome.NewStatus)
		assert.Equal(t, 10, outcome.SellerCredit)
		assert.Equal(t, 200, outcome.CuratorCredit)
		assert.Equal(t, 3.00, outcome.Review.AverageScore)
		assert.Equal(t, 24, outcome.Review.TotalScore)
		assert.Equal(t, 200, outcome.Review.PointsEarned)
		curationRepo.AssertExpectations(t)
	})

	t.Run("failing review rejects product with 5 seller points", func(t *testing.T) {
		curationRepo := new(MockCurationRepository)
		productRepo := new(MockProductRepository)
		userRepo := new(MockUserRepository)
		svc := NewCurationService(curationRepo, productRepo, userRepo)

		userRepo.On("FindByID", mock.Anything, uint(3)).Return(approvedCurator, nil)
		productRepo.On("FindByID", mock.Anything, uint(11)).Return(pendingProduct, nil)
		curationRepo.On("ApplyReview", mock.Anything, mock.AnythingOfType("*domain.Review"), domain.ProductRejected, 5, 200).Return(nil)

		outcome, err := svc.ReviewProduct(context.Background(), domain.Actor{ID: 3, Role: domain.RoleCurator}, 11, []int{2, 2, 2, 2, 2, 2, 2, 2}, "kurang")
		require.NoError(t, err)
		assert.Equal(t, domain.ProductRejected, outcome.NewStatus)
		assert.Equal(t, 5, outcome.SellerCredit)
		assert.Equal(t, 2.00, outcome.Review.AverageScore)
	})

	t.Run("client is forbidden", func(t *testing.T) {
		svc := NewCurationService(new(MockCurationRepository), new(MockProductRepository), new(MockUserRepository))

		_, err := svc.ReviewProduct(context.Background(), domain.Actor{ID: 3, Role: domain.RoleClient}, 11, validScores(), "")
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("unapproved curator is forbidden", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewCurationService(new(MockCurationRepository), new(MockProductRepository), userRepo)

		userRepo.On("FindByID", mock.Anything, uint(3)).Return(domain.User{ID: 3, Role: domain.RoleCurator, CuratorApproved: false}, nil)

		_, err := svc.ReviewProduct(context.Background(), domain.Actor{ID: 3, Role: domain.RoleCurator}, 11, validScores(), "")
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("admin may review without curator approval", func(t *testing.T) {
		curationRepo := new(MockCurationRepository)
		productRepo := new(MockProductRepository)
		userRepo := new(MockUserRepository)
		svc := NewCurationService(curationRepo, productRepo, userRepo)

		productRepo.On("FindByID", mock.Anything, uint(11)).Return(pendingProduct, nil)
		curationRepo.On("ApplyReview", mock.Anything, mock.AnythingOfType("*domain.Review"), domain.ProductApproved, 10, 200).Return(nil)

		_, err := svc.ReviewProduct(context.Background(), domain.Actor{ID: 1, Role: domain.RoleAdmin}, 11, validScores(), "")
		require.NoError(t, err)
		userRepo.AssertNotCalled(t, "FindByID")
	})

	t.Run("wrong score count is invalid input", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewCurationService(new(MockCurationRepository), new(MockProductRepository), userRepo)

		userRepo.On("FindByID", mock.Anything, uint(3)).Return(approvedCurator, nil)

		_, err := svc.ReviewProduct(context.Background(), domain.Actor{ID: 3, Role: domain.RoleCurator}, 11, []int{3, 3, 3}, "")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("already reviewed product is invalid state", func(t *testing.T) {
		curationRepo := new(MockCurationRepository)
		productRepo := new(MockProductRepository)
		userRepo := new(MockUserRepository)
		svc := NewCurationService(curationRepo, productRepo, userRepo)

		score := 3.5
		reviewed := pendingProduct
		reviewed.Status = domain.ProductApproved
		reviewed.ReviewScore = &score

		userRepo.On("FindByID", mock.Anything, uint(3)).Return(approvedCurator, nil)
		productRepo.On("FindByID", mock.Anything, uint(11)).Return(reviewed, nil)

		_, err := svc.ReviewProduct(context.Background(), domain.Actor{ID: 3, Role: domain.RoleCurator}, 11, validScores(), "")
		assert.ErrorIs(t, err, domain.ErrInvalidState)
		curationRepo.AssertNotCalled(t, "ApplyReview")
	})

	t.Run("concurrent loser surfaces repository invalid state", func(t *testing.T) {
		curationRepo := new(MockCurationRepository)
		productRepo := new(MockProductRepository)
		userRepo := new(MockUserRepository)
		svc := NewCurationService(curationRepo, productRepo, userRepo)

		userRepo.On("FindByID", mock.Anything, uint(3)).Return(approvedCurator, nil)
		productRepo.On("FindByID", mock.Anything, uint(11)).Return(pendingProduct, nil)
		curationRepo.On("ApplyReview", mock.Anything, mock.Anything, domain.ProductApproved, 10, 200).Return(domain.ErrInvalidState)

		_, err := svc.ReviewProduct(context.Background(), domain.Actor{ID: 3, Role: domain.RoleCurator}, 11, validScores(), "")
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})
}

func TestListPendingProducts(t *testing.T) {
	t.Run("curator sees queue", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		svc := NewCurationService(new(MockCurationRepository), productRepo, new(MockUserRepository))

		queue := []domain.Product{{ID: 1, Status: domain.ProductPending}}
		productRepo.On("FindByStatus", mock.Anything, domain.ProductPending).Return(queue, nil)

		got, err := svc.ListPendingProducts(context.Background(), domain.Actor{ID: 3, Role: domain.RoleCurator})
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("seller is forbidden", func(t *testing.T) {
		svc := NewCurationService(new(MockCurationRepository), new(MockProductRepository), new(MockUserRepository))

		_, err := svc.ListPendingProducts(context.Background(), domain.Actor{ID: 3, Role: domain.RoleSeller})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}
