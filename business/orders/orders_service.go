package orders

import (
	"context"
	"fmt"

	"pasarKarya/business/policy"
	"pasarKarya/domain"
	"pasarKarya/pkg/logger"

	"github.com/google/uuid"
)

// OrdersRepository contract interface
type OrdersRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	FindByUser(ctx context.Context, userID uint) ([]domain.Order, error)
	FindByID(ctx context.Context, id uint) (domain.Order, error)
}

// ProductRepository contract interface
type ProductRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Product, error)
}

type ordersService struct {
	orderRepo   OrdersRepository
	productRepo ProductRepository
}

func NewOrdersService(orderRepo OrdersRepository, productRepo ProductRepository) *ordersService {
	return &ordersService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

// CreateOrder purchases an approved product. Digital goods deliver
// instantly so the order completes in one step; the stock decrement and
// order row are written atomically by the repository.
func (s *ordersService) CreateOrder(ctx context.Context, actor domain.Actor, productID uint, quantity int) (domain.Order, error) {
	if !policy.Authorize(actor.Role, policy.ActionPurchaseProduct) {
		return domain.Order{}, domain.ErrForbidden
	}

	if quantity <= 0 {
		logger.Error("Invalid order quantity", "quantity", quantity)
		return domain.Order{}, fmt.Errorf("%w: quantity must be greater than 0", domain.ErrInvalidInput)
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		logger.Error("product not found for order", err)
		return domain.Order{}, err
	}

	if product.Status != domain.ProductApproved {
		return domain.Order{}, fmt.Errorf("%w: product is not for sale", domain.ErrInvalidState)
	}

	if product.SellerID == actor.ID {
		return domain.Order{}, fmt.Errorf("%w: cannot purchase own product", domain.ErrForbidden)
	}

	order := domain.Order{
		OrderCode:   "PK-" + uuid.NewString(),
		UserID:      actor.ID,
		ProductID:   product.ID,
		Quantity:    quantity,
		PriceEach:   product.Price,
		Subtotal:    product.Price * float64(quantity),
		OrderStatus: "COMPLETED",
	}

	if err := s.orderRepo.CreateOrder(ctx, &order); err != nil {
		logger.Error("failed to create order", err)
		return domain.Order{}, err
	}

	return order, nil
}

func (s *ordersService) GetMyOrders(ctx context.Context, actor domain.Actor) ([]domain.Order, error) {
	orders, err := s.orderRepo.FindByUser(ctx, actor.ID)
	if err != nil {
		logger.Error("failed to find orders", err)
		return nil, err
	}

	return orders, nil
}

// GetOrder returns a single order. Only the buyer or an admin may see it.
func (s *ordersService) GetOrder(ctx context.Context, actor domain.Actor, id uint) (domain.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to find order", err)
		return domain.Order{}, err
	}

	if order.UserID != actor.ID && actor.Role != domain.RoleAdmin {
		return domain.Order{}, domain.ErrNotFound
	}

	return order, nil
}
