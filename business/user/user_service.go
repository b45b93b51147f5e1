package user

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"pasarKarya/business/policy"
	"pasarKarya/domain"
	"pasarKarya/internal/repository/redis"
	"pasarKarya/pkg/logger"
	"pasarKarya/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/pobyzaarif/goshortcute"
)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uint) error
	UpdateEmailVerification(ctx context.Context, id uint, isVerified bool) error
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
}

// NotificationRepository contract interface
type NotificationRepository interface {
	SendEmail(toName, toEmail, subject, message string) (err error)
}

// OTPRepository contract interface
type OTPRepository interface {
	StoreOTP(ctx context.Context, email, code string, ttl time.Duration) error
	VerifyOTP(ctx context.Context, email, code string) error
}

// TokenRepository contract interface
type TokenRepository interface {
	StoreToken(ctx context.Context, userID, token string, data redis.TokenData, ttl time.Duration) error
	ValidateToken(ctx context.Context, token string) (string, error)
	DeleteToken(ctx context.Context, userID, token string) error
}

type userService struct {
	userRepo        UserRepository
	validate        *validator.Validate
	notifRepo       NotificationRepository
	otpRepo         OTPRepository
	tokenRepo       TokenRepository
	appResetLinkKey string
	appDeploymentUrl string
}

const (
	otpTTL          = 5 * time.Minute
	resetLinkTTLMin = 15
	sessionTTL      = 24 * time.Hour

	SubjectRegisterAccount   = "Aktivasi Akun PasarKarya"
	EmailBodyRegisterAccount = `Halo, %v, kode verifikasi email anda adalah <b>%v</b></br>catatan: kode hanya berlaku %v menit`
	SubjectPasswordReset     = "Reset Password PasarKarya"
	EmailBodyPasswordReset   = `Halo, %v, reset password anda dengan membuka tautan dibawah</br></br>%v</br>catatan: link hanya berlaku %v menit`
)

func NewUserService(
	userRepo UserRepository,
	validate *validator.Validate,
	notifRepo NotificationRepository,
	otpRepo OTPRepository,
	tokenRepo TokenRepository,
	appResetLinkKey string,
	appDeploymentUrl string,
) *userService {
	return &userService{
		userRepo:         userRepo,
		validate:         validate,
		notifRepo:        notifRepo,
		otpRepo:          otpRepo,
		tokenRepo:        tokenRepo,
		appResetLinkKey:  appResetLinkKey,
		appDeploymentUrl: appDeploymentUrl,
	}
}

// Register creates an account with the requested role. Curators start
// unapproved; admin accounts cannot be self-registered. A 6-digit OTP is
// mailed for email verification.
func (s *userService) Register(ctx context.Context, user *domain.User) (domain.User, error) {
	if err := s.validate.Var(user.Email, "required,email"); err != nil {
		logger.Error("Invalid email format", err)
		return domain.User{}, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}

	if err := s.validate.Var(user.Password, "required,min=6"); err != nil {
		logger.Error("Invalid user password", err)
		return domain.User{}, fmt.Errorf("%w: password must be at least 6 characters", domain.ErrInvalidInput)
	}

	role := user.Role
	if role == "" {
		role = domain.RoleClient
	}
	if !domain.IsRegistrableRole(role) {
		logger.Error("Invalid role at registration", "role", role)
		return domain.User{}, fmt.Errorf("%w: invalid role", domain.ErrInvalidInput)
	}

	// Check if email already exists
	existingUser, err := s.userRepo.FindByEmail(ctx, user.Email)
	if err == nil && existingUser.ID > 0 {
		logger.Error("Email already exists")
		return domain.User{}, fmt.Errorf("%w: email already exists", domain.ErrInvalidInput)
	}

	passwordHash, err := utils.HashPassword(user.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return domain.User{}, errors.New("failed to hash password")
	}

	newUser := domain.User{
		FullName:        user.FullName,
		Email:           user.Email,
		Password:        string(passwordHash),
		IsVerified:      false,
		Role:            role,
		CuratorApproved: false,
	}

	if err := s.userRepo.Create(ctx, &newUser); err != nil {
		logger.Error("Failed to create new user")
		return domain.User{}, err
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		logger.Error("Failed to generate otp", err)
		return domain.User{}, err
	}

	if err := s.otpRepo.StoreOTP(ctx, newUser.Email, code, otpTTL); err != nil {
		logger.Error("Failed to store otp", err)
		return domain.User{}, err
	}

	err = s.notifRepo.SendEmail(newUser.FullName, newUser.Email, SubjectRegisterAccount,
		fmt.Sprintf(EmailBodyRegisterAccount, newUser.FullName, code, int(otpTTL.Minutes())))
	if err != nil {
		logger.Warn("Failed to send verification email", err)
	}

	newUser.Password = ""
	return newUser, nil
}

// VerifyEmail consumes the mailed OTP and marks the account verified.
func (s *userService) VerifyEmail(ctx context.Context, email, code string) error {
	if err := s.otpRepo.VerifyOTP(ctx, email, code); err != nil {
		logger.Error("Verifying email error", err)
		return fmt.Errorf("%w: invalid or expired code", domain.ErrInvalidInput)
	}

	getUser, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		logger.Error("Verifying email error", err)
		return err
	}

	if getUser.IsVerified {
		logger.Warn("verify email err", "error", "email verified already")
		return fmt.Errorf("%w: email already verified", domain.ErrInvalidState)
	}

	if err := s.userRepo.UpdateEmailVerification(ctx, getUser.ID, true); err != nil {
		logger.Error("Verify email err", err)
		return err
	}

	return nil
}

func (s *userService) Login(ctx context.Context, email, password, ipAddress, userAgent string) (string, domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		logger.Error("Invalid user credentials", err)
		return "", domain.User{}, errors.New("incorrect email or password")
	}

	ok := utils.CheckPassword(password, user.Password)
	if !ok {
		logger.Error("User password incorrect")
		return "", domain.User{}, errors.New("incorrect email or password")
	}

	if !user.IsVerified {
		logger.Error("Email address has not been verified")
		return "", domain.User{}, errors.New("email address has not been verified")
	}

	userIdStr := strconv.FormatUint(uint64(user.ID), 10)
	token, err := utils.GenerateJWT(userIdStr, string(user.Role))
	if err != nil {
		logger.Error("Failed to generated token", err)
		return "", domain.User{}, errors.New("failed to generate token")
	}

	now := time.Now()
	tokenData := redis.TokenData{
		UserID:    userIdStr,
		Role:      string(user.Role),
		Token:     token,
		IssuedAt:  now,
		ExpiresAt: now.Add(sessionTTL),
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
	if err := s.tokenRepo.StoreToken(ctx, userIdStr, token, tokenData, sessionTTL); err != nil {
		logger.Error("Failed to store token in Redis", err)
		return "", domain.User{}, errors.New("failed to create session")
	}

	user.Password = ""
	return token, user, nil
}

// ValidateTokenFromRedis lets the auth middleware reject revoked tokens.
func (s *userService) ValidateTokenFromRedis(ctx context.Context, token string) (string, error) {
	return s.tokenRepo.ValidateToken(ctx, token)
}

func (s *userService) Logout(ctx context.Context, userID uint, token string) error {
	userIdStr := strconv.FormatUint(uint64(userID), 10)
	if err := s.tokenRepo.DeleteToken(ctx, userIdStr, token); err != nil {
		logger.Error("Failed to delete token", err)
		return err
	}

	return nil
}

// RequestPasswordReset mails an encrypted, expiring reset link. Always
// reports success to the caller so account existence is not leaked.
func (s *userService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		logger.Warn("Password reset requested for unknown email")
		return nil
	}

	expAt := time.Now().Add(time.Duration(time.Minute * resetLinkTTLMin)).Unix()
	resetCode := fmt.Sprintf("%v|%v", user.Email, expAt)
	resetCodeEncrypt, err := goshortcute.AESCBCEncrypt([]byte(resetCode), []byte(s.appResetLinkKey))
	if err != nil {
		logger.Error("error when encrypt reset code", err)
		return errors.New("failed to create reset link")
	}
	strEncode := goshortcute.StringtoBase64Encode(resetCodeEncrypt)
	resetLink := s.appDeploymentUrl + "/api/v1/users/password-reset/" + strEncode

	err = s.notifRepo.SendEmail(user.FullName, user.Email, SubjectPasswordReset,
		fmt.Sprintf(EmailBodyPasswordReset, user.FullName, resetLink, resetLinkTTLMin))
	if err != nil {
		logger.Warn("Failed to send password reset email", err)
	}

	return nil
}

// ResetPassword validates the encrypted reset code and replaces the
// password.
func (s *userService) ResetPassword(ctx context.Context, resetCodeEncrypt, newPassword string) error {
	if err := s.validate.Var(newPassword, "required,min=6"); err != nil {
		return fmt.Errorf("%w: password must be at least 6 characters", domain.ErrInvalidInput)
	}

	strDecode := goshortcute.StringtoBase64Decode(resetCodeEncrypt)
	resetCodeDecrypt, err := goshortcute.AESCBCDecrypt([]byte(strDecode), []byte(s.appResetLinkKey))
	if err != nil {
		logger.Error("Reset password error", err)
		return fmt.Errorf("%w: invalid or expired url", domain.ErrInvalidInput)
	}

	resetCode := strings.Split(resetCodeDecrypt, "|")
	if len(resetCode) != 2 {
		logger.Error("Reset password error", resetCodeDecrypt)
		return fmt.Errorf("%w: invalid or expired url", domain.ErrInvalidInput)
	}

	email := resetCode[0]
	expAtStr := resetCode[1]

	ts, err := strconv.ParseInt(expAtStr, 10, 64)
	if err != nil {
		logger.Error("Reset password error", resetCodeDecrypt)
		return fmt.Errorf("%w: invalid or expired url", domain.ErrInvalidInput)
	}
	expAt := time.Unix(ts, 0)
	if time.Now().After(expAt) {
		return fmt.Errorf("%w: invalid or expired url", domain.ErrInvalidInput)
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		logger.Error("Reset password error", err)
		return err
	}

	passwordHash, err := utils.HashPassword(newPassword)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return errors.New("failed to hash password")
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, string(passwordHash)); err != nil {
		logger.Error("Failed to update password", err)
		return err
	}

	return nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to get user by ID", err)
		return domain.User{}, err
	}

	user.Password = ""
	return user, nil
}

// GetAllUsers retrieves all users, admin only.
func (s *userService) GetAllUsers(ctx context.Context, actor domain.Actor) ([]domain.User, error) {
	if !policy.Authorize(actor.Role, policy.ActionManageUsers) {
		return nil, domain.ErrForbidden
	}

	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to get all users", err)
		return nil, err
	}

	for i := range users {
		users[i].Password = ""
	}

	return users, nil
}

// UpdateUser updates profile information. Role and point balances are
// never writable here; those move only through their workflows.
func (s *userService) UpdateUser(ctx context.Context, id uint, updateData *domain.User) (domain.User, error) {
	existingUser, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("User not found for update", err)
		return domain.User{}, err
	}

	if updateData.FullName != "" {
		existingUser.FullName = updateData.FullName
	}

	if updateData.Password != "" {
		if err := s.validate.Var(updateData.Password, "required,min=6"); err != nil {
			logger.Error("Invalid password", err)
			return domain.User{}, fmt.Errorf("%w: password must be at least 6 characters", domain.ErrInvalidInput)
		}

		passwordHash, err := utils.HashPassword(updateData.Password)
		if err != nil {
			logger.Error("Failed to hash password", err)
			return domain.User{}, errors.New("failed to hash password")
		}
		existingUser.Password = string(passwordHash)
	}

	if err := s.userRepo.Update(ctx, &existingUser); err != nil {
		logger.Error("Failed to update user", err)
		return domain.User{}, err
	}

	existingUser.Password = ""
	return existingUser, nil
}

// DeleteUser soft deletes a user. Admin only, and never the admin's own
// account.
func (s *userService) DeleteUser(ctx context.Context, actor domain.Actor, id uint) error {
	if !policy.Authorize(actor.Role, policy.ActionDeleteUser) {
		return domain.ErrForbidden
	}

	if !policy.CanDeleteUser(actor.ID, id) {
		logger.Error("User attempted to delete own account", "user_id", actor.ID)
		return domain.ErrForbidden
	}

	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		logger.Error("User not found for deletion", err)
		return err
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		logger.Error("Failed to delete user", err)
		return err
	}

	return nil
}
