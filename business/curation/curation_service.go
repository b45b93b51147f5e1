package curation

import (
	"context"
	"fmt"

	"pasarKarya/business/points"
	"pasarKarya/business/policy"
	"pasarKarya/domain"
	"pasarKarya/pkg/logger"
)

// ProductRepository contract interface
type ProductRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Product, error)
	FindByStatus(ctx context.Context, status domain.ProductStatus) ([]domain.Product, error)
}

// UserRepository contract interface
type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

// CurationRepository is the transactional boundary of the workflow. Both
// methods apply every listed effect atomically or none of them.
type CurationRepository interface {
	// CreateSubmission inserts the pending product and credits the seller
	// in one transaction.
	CreateSubmission(ctx context.Context, product *domain.Product, sellerCredit int) error
	// ApplyReview persists the review, transitions the product out of
	// pending and credits curator and seller in one transaction. Returns
	// domain.ErrInvalidState when the product is no longer pending.
	ApplyReview(ctx context.Context, review *domain.Review, newStatus domain.ProductStatus, sellerCredit, curatorCredit int) error
}

// ReviewOutcome is what a completed review produced.
type ReviewOutcome struct {
	Review        domain.Review
	NewStatus     domain.ProductStatus
	SellerCredit  int
	CuratorCredit int
}

type curationService struct {
	curationRepo CurationRepository
	productRepo  ProductRepository
	userRepo     UserRepository
}

func NewCurationService(curationRepo CurationRepository, productRepo ProductRepository, userRepo UserRepository) *curationService {
	return &curationService{
		curationRepo: curationRepo,
		productRepo:  productRepo,
		userRepo:     userRepo,
	}
}

// SubmitProduct creates a pending product for the actor and credits the
// submission points. Admin may submit on behalf of a seller via
// draft.SellerID.
func (s *curationService) SubmitProduct(ctx context.Context, actor domain.Actor, draft *domain.Product) (domain.Product, error) {
	if !policy.Authorize(actor.Role, policy.ActionSubmitProduct) {
		logger.Error("submit product denied", "role", actor.Role)
		return domain.Product{}, domain.ErrForbidden
	}

	if draft.ProductName == "" {
		return domain.Product{}, fmt.Errorf("%w: product name is required", domain.ErrInvalidInput)
	}

	if !domain.IsValidCategory(draft.Category) {
		return domain.Product{}, fmt.Errorf("%w: unknown category %q", domain.ErrInvalidInput, draft.Category)
	}

	if draft.Price <= 0 {
		return domain.Product{}, fmt.Errorf("%w: price must be greater than 0", domain.ErrInvalidInput)
	}

	if draft.Stock < 0 {
		return domain.Product{}, fmt.Errorf("%w: stock cannot be negative", domain.ErrInvalidInput)
	}

	if actor.Role != domain.RoleAdmin || draft.SellerID == 0 {
		draft.SellerID = actor.ID
	}
	draft.Status = domain.ProductPending
	draft.ReviewScore = nil

	credit := points.SellerPointsFor(points.ActionSubmit)
	if err := s.curationRepo.CreateSubmission(ctx, draft, credit); err != nil {
		logger.Error("failed to create submission", err)
		return domain.Product{}, err
	}

	logger.Info("product submitted", "product_id", draft.ID, "seller_id", draft.SellerID)

	return *draft, nil
}

// ReviewProduct scores a pending product and transitions it to approved or
// rejected, crediting curator and seller atomically with the transition.
func (s *curationService) ReviewProduct(ctx context.Context, actor domain.Actor, productID uint, scores []int, comment string) (ReviewOutcome, error) {
	if !policy.Authorize(actor.Role, policy.ActionReviewProduct) {
		logger.Error("review product denied", "role", actor.Role)
		return ReviewOutcome{}, domain.ErrForbidden
	}

	if actor.Role == domain.RoleCurator {
		curator, err := s.userRepo.FindByID(ctx, actor.ID)
		if err != nil {
			logger.Error("failed to load curator", err)
			return ReviewOutcome{}, err
		}
		if !curator.CanCurate() {
			logger.Error("unapproved curator attempted review", "curator_id", actor.ID)
			return ReviewOutcome{}, domain.ErrForbidden
		}
	}

	average, err := AverageScore(scores)
	if err != nil {
		return ReviewOutcome{}, err
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		logger.Error("failed to find product for review", err)
		return ReviewOutcome{}, err
	}

	// Fast-path check; the repository re-verifies inside the transaction
	// so a concurrent reviewer still loses cleanly.
	if product.Status != domain.ProductPending {
		return ReviewOutcome{}, fmt.Errorf("%w: product already %s", domain.ErrInvalidState, product.Status)
	}

	passing := IsPassing(average)
	newStatus := domain.ProductRejected
	sellerAction := points.ActionRejected
	if passing {
		newStatus = domain.ProductApproved
		sellerAction = points.ActionApproved
	}

	sellerCredit := points.SellerPointsFor(sellerAction)
	curatorCredit := points.CuratorPointsFor(product.Category)

	review := domain.Review{
		ProductID:    productID,
		CuratorID:    actor.ID,
		Score1:       scores[0],
		Score2:       scores[1],
		Score3:       scores[2],
		Score4:       scores[3],
		Score5:       scores[4],
		Score6:       scores[5],
		Score7:       scores[6],
		Score8:       scores[7],
		TotalScore:   TotalScore(scores),
		AverageScore: average,
		PointsEarned: curatorCredit,
		Comment:      comment,
	}

	if err := s.curationRepo.ApplyReview(ctx, &review, newStatus, sellerCredit, curatorCredit); err != nil {
		logger.Error("failed to apply review", err)
		return ReviewOutcome{}, err
	}

	logger.Info("product reviewed",
		"product_id", productID,
		"curator_id", actor.ID,
		"average", average,
		"status", string(newStatus),
	)

	return ReviewOutcome{
		Review:        review,
		NewStatus:     newStatus,
		SellerCredit:  sellerCredit,
		CuratorCredit: curatorCredit,
	}, nil
}

// ListPendingProducts returns the curation queue.
func (s *curationService) ListPendingProducts(ctx context.Context, actor domain.Actor) ([]domain.Product, error) {
	if !policy.Authorize(actor.Role, policy.ActionListPending) {
		return nil, domain.ErrForbidden
	}

	products, err := s.productRepo.FindByStatus(ctx, domain.ProductPending)
	if err != nil {
		logger.Error("failed to list pending products", err)
		return nil, err
	}

	return products, nil
}
