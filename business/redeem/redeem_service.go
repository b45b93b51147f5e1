package redeem

import (
	"context"
	"fmt"

	"pasarKarya/business/policy"
	"pasarKarya/domain"
	"pasarKarya/pkg/logger"
)

// RedeemRepository contract interface
type RedeemRepository interface {
	Create(ctx context.Context, item *domain.RedeemProduct) error
	FindAll(ctx context.Context) ([]domain.RedeemProduct, error)
	FindByID(ctx context.Context, id uint) (domain.RedeemProduct, error)
	Redeem(ctx context.Context, userID, redeemProductID uint) (domain.Redemption, error)
	FindRedemptionsByUser(ctx context.Context, userID uint) ([]domain.Redemption, error)
}

// UserRepository contract interface
type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

type redeemService struct {
	redeemRepo RedeemRepository
	userRepo   UserRepository
}

func NewRedeemService(redeemRepo RedeemRepository, userRepo UserRepository) *redeemService {
	return &redeemService{
		redeemRepo: redeemRepo,
		userRepo:   userRepo,
	}
}

// ListRedeemProducts shows the redeemable catalog. Curators browse it to
// spend their points; admin sees the same list for management.
func (s *redeemService) ListRedeemProducts(ctx context.Context, actor domain.Actor) ([]domain.RedeemProduct, error) {
	if !policy.Authorize(actor.Role, policy.ActionRedeemPoints) {
		return nil, domain.ErrForbidden
	}

	items, err := s.redeemRepo.FindAll(ctx)
	if err != nil {
		logger.Error("failed to list redeem products", err)
		return nil, err
	}

	return items, nil
}

// CreateRedeemProduct adds an item to the redeemable catalog, admin only.
func (s *redeemService) CreateRedeemProduct(ctx context.Context, actor domain.Actor, item *domain.RedeemProduct) (domain.RedeemProduct, error) {
	if !policy.Authorize(actor.Role, policy.ActionManageRedeem) {
		return domain.RedeemProduct{}, domain.ErrForbidden
	}

	if item.Name == "" {
		return domain.RedeemProduct{}, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if item.PointCost <= 0 {
		return domain.RedeemProduct{}, fmt.Errorf("%w: point cost must be greater than 0", domain.ErrInvalidInput)
	}
	if item.Stock < 0 {
		return domain.RedeemProduct{}, fmt.Errorf("%w: stock cannot be negative", domain.ErrInvalidInput)
	}

	if err := s.redeemRepo.Create(ctx, item); err != nil {
		logger.Error("failed to create redeem product", err)
		return domain.RedeemProduct{}, err
	}

	return *item, nil
}

// Redeem spends curator points on an item. The caller must be an approved
// curator; the balance and stock checks run inside the repository
// transaction so concurrent redemptions cannot overspend.
func (s *redeemService) Redeem(ctx context.Context, actor domain.Actor, redeemProductID uint) (domain.Redemption, error) {
	if !policy.Authorize(actor.Role, policy.ActionRedeemPoints) {
		return domain.Redemption{}, domain.ErrForbidden
	}

	user, err := s.userRepo.FindByID(ctx, actor.ID)
	if err != nil {
		logger.Error("failed to find user for redemption", err)
		return domain.Redemption{}, err
	}

	if !user.CanCurate() {
		return domain.Redemption{}, fmt.Errorf("%w: curator is not approved", domain.ErrForbidden)
	}

	redemption, err := s.redeemRepo.Redeem(ctx, actor.ID, redeemProductID)
	if err != nil {
		logger.Error("failed to redeem", err)
		return domain.Redemption{}, err
	}

	logger.Info("points redeemed", "user_id", actor.ID, "redeem_product_id", redeemProductID, "points_spent", redemption.PointsSpent)

	return redemption, nil
}

func (s *redeemService) GetMyRedemptions(ctx context.Context, actor domain.Actor) ([]domain.Redemption, error) {
	if !policy.Authorize(actor.Role, policy.ActionRedeemPoints) {
		return nil, domain.ErrForbidden
	}

	redemptions, err := s.redeemRepo.FindRedemptionsByUser(ctx, actor.ID)
	if err != nil {
		logger.Error("failed to find redemptions", err)
		return nil, err
	}

	return redemptions, nil
}
