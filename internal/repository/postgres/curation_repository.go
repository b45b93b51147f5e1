package postgres

import (
	"context"
	"errors"
	"fmt"

	"pasarKarya/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CurationRepository struct {
	DB *gorm.DB
}

func NewCurationRepository(db *gorm.DB) *CurationRepository {
	return &CurationRepository{
		DB: db,
	}
}

// CreateSubmission inserts the pending product and credits the seller's
// submission points in one transaction. The credit is an atomic SQL
// increment, never a read-then-write of the counter.
func (r *CurationRepository) CreateSubmission(ctx context.Context, product *domain.Product, sellerCredit int) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}

		result := tx.Model(&domain.User{}).
			Where("id = ?", product.SellerID).
			Update("seller_points", gorm.Expr("seller_points + ?", sellerCredit))
		if result.Error != nil {
			return fmt.Errorf("failed to credit seller: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: seller %d", domain.ErrNotFound, product.SellerID)
		}

		return nil
	})
}

// ApplyReview performs the four-effect transition as a single atomic unit:
// review row, product status/score, curator credit, seller credit. The
// product row is locked FOR UPDATE and the status flip is conditional on
// it still being pending, so of two concurrent reviewers exactly one
// commits and the other gets ErrInvalidState.
func (r *CurationRepository) ApplyReview(ctx context.Context, review *domain.Review, newStatus domain.ProductStatus, sellerCredit, curatorCredit int) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product domain.Product
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, review.ProductID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: product %d", domain.ErrNotFound, review.ProductID)
			}
			return fmt.Errorf("failed to lock product: %w", err)
		}

		if product.Status != domain.ProductPending {
			return fmt.Errorf("%w: product already %s", domain.ErrInvalidState, product.Status)
		}

		if err := tx.Create(review).Error; err != nil {
			return fmt.Errorf("failed to create review: %w", err)
		}

		result := tx.Model(&domain.Product{}).
			Where("id = ? AND status = ?", review.ProductID, domain.ProductPending).
			Updates(map[string]interface{}{
				"status":       newStatus,
				"review_score": review.AverageScore,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update product status: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: product already reviewed", domain.ErrInvalidState)
		}

		result = tx.Model(&domain.User{}).
			Where("id = ?", review.CuratorID).
			Update("curator_points", gorm.Expr("curator_points + ?", curatorCredit))
		if result.Error != nil {
			return fmt.Errorf("failed to credit curator: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: curator %d", domain.ErrNotFound, review.CuratorID)
		}

		result = tx.Model(&domain.User{}).
			Where("id = ?", product.SellerID).
			Update("seller_points", gorm.Expr("seller_points + ?", sellerCredit))
		if result.Error != nil {
			return fmt.Errorf("failed to credit seller: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: seller %d", domain.ErrNotFound, product.SellerID)
		}

		return nil
	})
}

// FindReviewByProductID returns the review of an already-curated product.
func (r *CurationRepository) FindReviewByProductID(ctx context.Context, productID uint) (domain.Review, error) {
	var review domain.Review

	err := r.DB.WithContext(ctx).Where("product_id = ?", productID).First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Review{}, fmt.Errorf("%w: review for product %d", domain.ErrNotFound, productID)
		}
		return domain.Review{}, fmt.Errorf("failed to find review: %w", err)
	}

	return review, nil
}

// FindReviewsByCurator lists a curator's scorecards, newest first.
func (r *CurationRepository) FindReviewsByCurator(ctx context.Context, curatorID uint) ([]domain.Review, error) {
	var reviews []domain.Review

	err := r.DB.WithContext(ctx).
		Where("curator_id = ?", curatorID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find reviews: %w", err)
	}

	return reviews, nil
}
