package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pasarKarya/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		DB: db,
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.DB.WithContext(ctx).Create(&user).Error; err != nil {
		return err
	}

	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	var user domain.User

	err := r.DB.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, fmt.Errorf("%w: user %d", domain.ErrNotFound, id)
		}
		return domain.User{}, err
	}

	return user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	var user domain.User

	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, fmt.Errorf("%w: user %s", domain.ErrNotFound, email)
		}
		return domain.User{}, err
	}

	return user, nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	var users []domain.User

	if err := r.DB.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	var existingUser domain.User
	if err := r.DB.WithContext(ctx).First(&existingUser, user.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user %d", domain.ErrNotFound, user.ID)
		}
		return err
	}

	user.UpdatedAt = time.Now()

	if err := r.DB.WithContext(ctx).Model(&domain.User{}).Where("id = ?", user.ID).
		Select("full_name", "password", "updated_at").
		Updates(user).Error; err != nil {
		return err
	}

	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	result := r.DB.WithContext(ctx).Delete(&domain.User{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: user %d", domain.ErrNotFound, id)
	}

	return nil
}

func (r *UserRepository) UpdateEmailVerification(ctx context.Context, id uint, isVerified bool) error {
	result := r.DB.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Update("is_verified", isVerified)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: user %d", domain.ErrNotFound, id)
	}

	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	result := r.DB.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"password":   passwordHash,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: user %d", domain.ErrNotFound, id)
	}

	return nil
}

// FindPendingCurators lists curator accounts still waiting for approval.
func (r *UserRepository) FindPendingCurators(ctx context.Context) ([]domain.User, error) {
	var curators []domain.User

	err := r.DB.WithContext(ctx).
		Where("role = ? AND curator_approved = ?", domain.RoleCurator, false).
		Order("created_at ASC").
		Find(&curators).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find pending curators: %w", err)
	}

	return curators, nil
}

// ApproveCurator flips the approval flag and seeds the point grant. The
// WHERE clause keeps the update conditional so a concurrent approval (or
// demotion) makes this a no-op surfaced as ErrInvalidState.
func (r *UserRepository) ApproveCurator(ctx context.Context, id uint, grant int) error {
	result := r.DB.WithContext(ctx).Model(&domain.User{}).
		Where("id = ? AND role = ? AND curator_approved = ?", id, domain.RoleCurator, false).
		Updates(map[string]interface{}{
			"curator_approved": true,
			"curator_points":   grant,
			"updated_at":       time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to approve curator: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: user %d is not an unapproved curator", domain.ErrInvalidState, id)
	}

	return nil
}

// DemoteCurator sends a rejected curator back to the client role with a
// zeroed curator balance.
func (r *UserRepository) DemoteCurator(ctx context.Context, id uint) error {
	result := r.DB.WithContext(ctx).Model(&domain.User{}).
		Where("id = ? AND role = ?", id, domain.RoleCurator).
		Updates(map[string]interface{}{
			"role":             domain.RoleClient,
			"curator_approved": false,
			"curator_points":   0,
			"updated_at":       time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to demote curator: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: user %d is not a curator", domain.ErrInvalidState, id)
	}

	return nil
}
