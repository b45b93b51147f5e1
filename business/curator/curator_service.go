package curator

import (
	"context"
	"fmt"

	"pasarKarya/business/points"
	"pasarKarya/business/policy"
	"pasarKarya/domain"
	"pasarKarya/pkg/logger"
)

// UserRepository contract interface
type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindPendingCurators(ctx context.Context) ([]domain.User, error)
	// ApproveCurator flips curator_approved and sets the point grant with a
	// conditional update; returns domain.ErrInvalidState when the row is no
	// longer an unapproved curator.
	ApproveCurator(ctx context.Context, id uint, grant int) error
	// DemoteCurator sets role to client and zeroes curator points.
	DemoteCurator(ctx context.Context, id uint) error
}

// NotificationRepository contract interface
type NotificationRepository interface {
	SendEmail(toName, toEmail, subject, message string) (err error)
}

const (
	subjectCuratorApproved = "Selamat, Anda Kurator PasarKarya!"
	bodyCuratorApproved    = `Halo %v, pengajuan kurator anda telah disetujui. Saldo awal anda %v poin. Selamat bekerja!`
	subjectCuratorRejected = "Pengajuan Kurator Ditolak"
	bodyCuratorRejected    = `Halo %v, mohon maaf pengajuan kurator anda ditolak.</br>Alasan: %v`
)

type curatorService struct {
	userRepo  UserRepository
	notifRepo NotificationRepository
}

func NewCuratorService(userRepo UserRepository, notifRepo NotificationRepository) *curatorService {
	return &curatorService{
		userRepo:  userRepo,
		notifRepo: notifRepo,
	}
}

// ListPending returns curator accounts waiting for an admin decision.
func (s *curatorService) ListPending(ctx context.Context, actor domain.Actor) ([]domain.User, error) {
	if !policy.Authorize(actor.Role, policy.ActionListCurators) {
		return nil, domain.ErrForbidden
	}

	curators, err := s.userRepo.FindPendingCurators(ctx)
	if err != nil {
		logger.Error("failed to list pending curators", err)
		return nil, err
	}

	return curators, nil
}

// Approve marks a pending curator as approved and seeds their point
// balance. Re-approving an already-approved curator fails with
// ErrInvalidState so the misuse is visible to the caller.
func (s *curatorService) Approve(ctx context.Context, actor domain.Actor, userID uint, grant int) (domain.User, error) {
	if !policy.Authorize(actor.Role, policy.ActionApproveCurator) {
		return domain.User{}, domain.ErrForbidden
	}

	if grant <= 0 {
		grant = points.CuratorOnboardingGrant()
	}

	target, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		logger.Error("curator candidate not found", err)
		return domain.User{}, err
	}

	if target.Role != domain.RoleCurator {
		return domain.User{}, fmt.Errorf("%w: user %d is not a curator", domain.ErrInvalidState, userID)
	}

	if target.CuratorApproved {
		return domain.User{}, fmt.Errorf("%w: curator %d already approved", domain.ErrInvalidState, userID)
	}

	if err := s.userRepo.ApproveCurator(ctx, userID, grant); err != nil {
		logger.Error("failed to approve curator", err)
		return domain.User{}, err
	}

	// Decision notice is best-effort, never part of the transaction.
	if err := s.notifRepo.SendEmail(target.FullName, target.Email, subjectCuratorApproved,
		fmt.Sprintf(bodyCuratorApproved, target.FullName, grant)); err != nil {
		logger.Warn("failed to send curator approval email", err)
	}

	logger.Info("curator approved", "user_id", userID, "grant", grant)

	target.CuratorApproved = true
	target.CuratorPoints = grant
	return target, nil
}

// Reject demotes a curator candidate back to client and clears their
// curator balance. Reason is advisory only, forwarded in the notice.
func (s *curatorService) Reject(ctx context.Context, actor domain.Actor, userID uint, reason string) error {
	if !policy.Authorize(actor.Role, policy.ActionRejectCurator) {
		return domain.ErrForbidden
	}

	target, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		logger.Error("curator candidate not found", err)
		return err
	}

	if target.Role != domain.RoleCurator {
		return fmt.Errorf("%w: user %d is not a curator", domain.ErrInvalidState, userID)
	}

	if err := s.userRepo.DemoteCurator(ctx, userID); err != nil {
		logger.Error("failed to demote curator", err)
		return err
	}

	if reason == "" {
		reason = "tidak memenuhi kriteria"
	}

	if err := s.notifRepo.SendEmail(target.FullName, target.Email, subjectCuratorRejected,
		fmt.Sprintf(bodyCuratorRejected, target.FullName, reason)); err != nil {
		logger.Warn("failed to send curator rejection email", err)
	}

	logger.Info("curator rejected", "user_id", userID)

	return nil
}
