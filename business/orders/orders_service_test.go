package orders

import (
	"context"
	"testing"

	"pasarKarya/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrdersRepository is a mock implementation of OrdersRepository
type MockOrdersRepository struct {
	mock.Mock
}

func (m *MockOrdersRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrdersRepository) FindByUser(ctx context.Context, userID uint) ([]domain.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrdersRepository) FindByID(ctx context.Context, id uint) (domain.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Order), args.Error(1)
}

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uint) (domain.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Product), args.Error(1)
}

func approvedProduct() domain.Product {
	return domain.Product{
		ID:       4,
		SellerID: 2,
		Price:    25000,
		Stock:    10,
		Status:   domain.ProductApproved,
	}
}

func TestCreateOrder(t *testing.T) {
	buyer := domain.Actor{ID: 9, Role: domain.RoleClient}

	t.Run("purchase computes subtotal and completes", func(t *testing.T) {
		orderRepo := new(MockOrdersRepository)
		productRepo := new(MockProductRepository)
		svc := NewOrdersService(orderRepo, productRepo)

		productRepo.On("FindByID", mock.Anything, uint(4)).Return(approvedProduct(), nil)
		orderRepo.On("CreateOrder", mock.Anything, mock.MatchedBy(func(o *domain.Order) bool {
			return o.UserID == 9 && o.PriceEach == 25000 && o.Subtotal == 50000 &&
				o.OrderStatus == "COMPLETED" && o.OrderCode != ""
		})).Return(nil)

		order, err := svc.CreateOrder(context.Background(), buyer, 4, 2)
		require.NoError(t, err)
		assert.Equal(t, float64(50000), order.Subtotal)
		orderRepo.AssertExpectations(t)
	})

	t.Run("pending product is not for sale", func(t *testing.T) {
		orderRepo := new(MockOrdersRepository)
		productRepo := new(MockProductRepository)
		svc := NewOrdersService(orderRepo, productRepo)

		pending := approvedProduct()
		pending.Status = domain.ProductPending
		productRepo.On("FindByID", mock.Anything, uint(4)).Return(pending, nil)

		_, err := svc.CreateOrder(context.Background(), buyer, 4, 1)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
		orderRepo.AssertNotCalled(t, "CreateOrder")
	})

	t.Run("seller cannot buy own product", func(t *testing.T) {
		orderRepo := new(MockOrdersRepository)
		productRepo := new(MockProductRepository)
		svc := NewOrdersService(orderRepo, productRepo)

		productRepo.On("FindByID", mock.Anything, uint(4)).Return(approvedProduct(), nil)

		_, err := svc.CreateOrder(context.Background(), domain.Actor{ID: 2, Role: domain.RoleSeller}, 4, 1)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("zero quantity is invalid input", func(t *testing.T) {
		svc := NewOrdersService(new(MockOrdersRepository), new(MockProductRepository))

		_, err := svc.CreateOrder(context.Background(), buyer, 4, 0)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestGetOrder(t *testing.T) {
	t.Run("buyer sees own order", func(t *testing.T) {
		orderRepo := new(MockOrdersRepository)
		svc := NewOrdersService(orderRepo, new(MockProductRepository))

		orderRepo.On("FindByID", mock.Anything, uint(11)).Return(domain.Order{ID: 11, UserID: 9}, nil)

		order, err := svc.GetOrder(context.Background(), domain.Actor{ID: 9, Role: domain.RoleClient}, 11)
		require.NoError(t, err)
		assert.Equal(t, uint(11), order.ID)
	})

	t.Run("other user's order reads as not found", func(t *testing.T) {
		orderRepo := new(MockOrdersRepository)
		svc := NewOrdersService(orderRepo, new(MockProductRepository))

		orderRepo.On("FindByID", mock.Anything, uint(11)).Return(domain.Order{ID: 11, UserID: 9}, nil)

		_, err := svc.GetOrder(context.Background(), domain.Actor{ID: 5, Role: domain.RoleClient}, 11)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("admin sees any order", func(t *testing.T) {
		orderRepo := new(MockOrdersRepository)
		svc := NewOrdersService(orderRepo, new(MockProductRepository))

		orderRepo.On("FindByID", mock.Anything, uint(11)).Return(domain.Order{ID: 11, UserID: 9}, nil)

		_, err := svc.GetOrder(context.Background(), domain.Actor{ID: 1, Role: domain.RoleAdmin}, 11)
		assert.NoError(t, err)
	})
}
