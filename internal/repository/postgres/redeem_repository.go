package postgres

import (
	"context"
	"errors"
	"fmt"

	"pasarKarya/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RedeemRepository struct {
	DB *gorm.DB
}

func NewRedeemRepository(db *gorm.DB) *RedeemRepository {
	return &RedeemRepository{
		DB: db,
	}
}

func (r *RedeemRepository) Create(ctx context.Context, item *domain.RedeemProduct) error {
	if err := r.DB.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("failed to create redeem product: %w", err)
	}

	return nil
}

func (r *RedeemRepository) FindAll(ctx context.Context) ([]domain.RedeemProduct, error) {
	var items []domain.RedeemProduct

	if err := r.DB.WithContext(ctx).Order("point_cost ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to find redeem products: %w", err)
	}

	return items, nil
}

func (r *RedeemRepository) FindByID(ctx context.Context, id uint) (domain.RedeemProduct, error) {
	var item domain.RedeemProduct

	err := r.DB.WithContext(ctx).First(&item, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RedeemProduct{}, fmt.Errorf("%w: redeem product %d", domain.ErrNotFound, id)
		}
		return domain.RedeemProduct{}, fmt.Errorf("failed to find redeem product: %w", err)
	}

	return item, nil
}

// Redeem spends curator points on a redeemable item. Stock and point
// balance are decremented in the same transaction with guards that keep
// both non-negative under concurrent redemptions.
func (r *RedeemRepository) Redeem(ctx context.Context, userID, redeemProductID uint) (domain.Redemption, error) {
	if err := ctx.Err(); err != nil {
		return domain.Redemption{}, fmt.Errorf("context error: %w", err)
	}

	var redemption domain.Redemption

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item domain.RedeemProduct
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&item, redeemProductID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: redeem product %d", domain.ErrNotFound, redeemProductID)
			}
			return fmt.Errorf("failed to lock redeem product: %w", err)
		}

		if item.Stock <= 0 {
			return fmt.Errorf("%w: redeem product out of stock", domain.ErrInvalidState)
		}

		result := tx.Model(&domain.User{}).
			Where("id = ? AND curator_points >= ?", userID, item.PointCost).
			Update("curator_points", gorm.Expr("curator_points - ?", item.PointCost))
		if result.Error != nil {
			return fmt.Errorf("failed to debit curator points: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: insufficient curator points", domain.ErrInvalidState)
		}

		if err := tx.Model(&domain.RedeemProduct{}).
			Where("id = ?", redeemProductID).
			Update("stock", gorm.Expr("stock - ?", 1)).Error; err != nil {
			return fmt.Errorf("failed to decrement stock: %w", err)
		}

		redemption = domain.Redemption{
			UserID:          userID,
			RedeemProductID: redeemProductID,
			PointsSpent:     item.PointCost,
		}
		if err := tx.Create(&redemption).Error; err != nil {
			return fmt.Errorf("failed to create redemption: %w", err)
		}

		return nil
	})
	if err != nil {
		return domain.Redemption{}, err
	}

	return redemption, nil
}

func (r *RedeemRepository) FindRedemptionsByUser(ctx context.Context, userID uint) ([]domain.Redemption, error) {
	var redemptions []domain.Redemption

	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&redemptions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find redemptions: %w", err)
	}

	return redemptions, nil
}
