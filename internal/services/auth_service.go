package services

import (
	"context"
	"fmt"

	"carefund/internal/models"
	"carefund/internal/repositories/interfaces"
	"carefund/internal/utils"
	"carefund/pkg/email"
	"carefund/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)

	// CreateUser provisions an account with any valid role, including admin.
	// Only reachable from the admin console.
	CreateUser(ctx context.Context, req *RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*utils.TokenPair, error)
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, req *UpdateProfileRequest) (*models.User, error)
	ChangePassword(ctx context.Context, userID primitive.ObjectID, req *ChangePasswordRequest) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req *ResetPasswordRequest) error

	RequestEmailVerification(ctx context.Context, userID primitive.ObjectID) error
	VerifyEmail(ctx context.Context, token string) error
}

type RegisterRequest struct {
	Name     string          `json:"name" validate:"required,min=2,max=100"`
	Email    string          `json:"email" validate:"required,email"`
	Phone    string          `json:"phone" validate:"required,indian_phone"`
	Password string          `json:"password" validate:"required,strong_password"`
	Role     models.UserRole `json:"role" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Name           string `json:"name" validate:"omitempty,min=2,max=100"`
	Phone          string `json:"phone" validate:"omitempty,indian_phone"`
	Address        string `json:"address"`
	ProfilePicture string `json:"profilePicture"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,strong_password"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,strong_password"`
}

type AuthResponse struct {
	User   *models.User     `json:"user"`
	Tokens *utils.TokenPair `json:"tokens"`
}

type authService struct {
	userRepo  interfaces.UserRepository
	cache     CacheService
	mailer    email.EmailProvider
	logger    *logger.Logger
	jwtSecret string
	baseURL   string
}

func NewAuthService(userRepo interfaces.UserRepository, cache CacheService, mailer email.EmailProvider, log *logger.Logger, jwtSecret, baseURL string) AuthService {
	return &authService{
		userRepo:  userRepo,
		cache:     cache,
		mailer:    mailer,
		logger:    log,
		jwtSecret: jwtSecret,
		baseURL:   baseURL,
	}
}

func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	// Admin accounts are provisioned out of band, never self-registered.
	if !models.SelfAssignableRole(req.Role) {
		return nil, fmt.Errorf("role %q cannot be self-assigned", req.Role)
	}

	user, err := s.createUser(ctx, req)
	if err != nil {
		return nil, err
	}

	tokens, err := utils.GenerateTokenPair(user.ID, string(user.Role), user.Email, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	s.logger.WithUserID(user.ID).WithField("role", user.Role).Info("User registered")

	return &AuthResponse{User: user, Tokens: tokens}, nil
}

func (s *authService) CreateUser(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	if !models.ValidRole(req.Role) {
		return nil, fmt.Errorf("unknown role %q", req.Role)
	}

	user, err := s.createUser(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.WithUserID(user.ID).WithField("role", user.Role).Info("User provisioned")

	return user, nil
}

func (s *authService) createUser(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	email := utils.NormalizeEmail(req.Email)
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf(utils.ErrUserExists)
	}
	if _, err := s.userRepo.GetByPhone(ctx, req.Phone); err == nil {
		return nil, fmt.Errorf("phone number already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     utils.SanitizeString(req.Name),
		Email:    email,
		Phone:    req.Phone,
		Password: string(hashed),
		Role:     req.Role,
		Status:   models.UserStatusActive,
		IsActive: true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, utils.NormalizeEmail(req.Email))
	if err != nil {
		return nil, fmt.Errorf(utils.ErrInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf(utils.ErrInvalidCredentials)
	}

	if !user.IsActive || user.Status == models.UserStatusSuspended {
		return nil, fmt.Errorf("account is disabled")
	}

	tokens, err := utils.GenerateTokenPair(user.ID, string(user.Role), user.Email, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.WithError(err).WithUserID(user.ID).Warn("Failed to record last login")
	}

	s.logger.WithUserID(user.ID).Info("User logged in")

	return &AuthResponse{User: user, Tokens: tokens}, nil
}

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*utils.TokenPair, error) {
	claims, err := utils.ValidateToken(refreshToken, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf(utils.ErrInvalidToken)
	}

	// The user must still exist and be active; tokens outlive account changes.
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf(utils.ErrUserNotFound)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("account is disabled")
	}

	return utils.GenerateTokenPair(user.ID, string(user.Role), user.Email, s.jwtSecret)
}

func (s *authService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *authService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, req *UpdateProfileRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = utils.SanitizeString(req.Name)
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.Address != "" {
		updates["address"] = utils.SanitizeString(req.Address)
	}
	if req.ProfilePicture != "" {
		updates["profile_picture"] = req.ProfilePicture
	}

	if len(updates) > 0 {
		if err := s.userRepo.Update(ctx, userID, updates); err != nil {
			return nil, err
		}
	}

	return s.userRepo.GetByID(ctx, userID)
}

func (s *authService) ChangePassword(ctx context.Context, userID primitive.ObjectID, req *ChangePasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return fmt.Errorf("current password is incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.userRepo.Update(ctx, userID, map[string]interface{}{
		"password": string(hashed),
	})
}

// ForgotPassword stores a single-use reset token in Redis. A silent success
// is returned for unknown emails so the endpoint cannot be used to probe
// registered accounts.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		s.logger.WithField("email", utils.MaskEmail(email)).Info("Password reset requested for unknown email")
		return nil
	}

	token := utils.GenerateRandomString(48)
	ok, err := s.cache.SetNX(ctx, utils.CacheResetPrefix+token, user.ID.Hex(), utils.ResetTokenTTL)
	if err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}
	if !ok {
		return fmt.Errorf("failed to issue reset token")
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", s.baseURL, token)
	body := fmt.Sprintf("Hello %s,\n\nUse the link below to reset your password. It expires in one hour.\n\n%s\n\nIf you did not request this, ignore this email.", user.Name, link)
	s.sendMail(ctx, user.Email, "Reset your password", body)

	s.logger.WithUserID(user.ID).Debug("Password reset token issued")

	return nil
}

func (s *authService) ResetPassword(ctx context.Context, req *ResetPasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}

	var userIDHex string
	if err := s.cache.Get(ctx, utils.CacheResetPrefix+req.Token, &userIDHex); err != nil {
		return fmt.Errorf(utils.ErrInvalidToken)
	}

	userID, err := primitive.ObjectIDFromHex(userIDHex)
	if err != nil {
		return fmt.Errorf(utils.ErrInvalidToken)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.Update(ctx, userID, map[string]interface{}{
		"password": string(hashed),
	}); err != nil {
		return err
	}

	// The token is consumed whether or not anything else fails afterwards.
	s.cache.Delete(ctx, utils.CacheResetPrefix+req.Token)

	s.logger.WithUserID(userID).Info("Password reset completed")

	return nil
}

// RequestEmailVerification issues a single-use verification token. Delivery
// follows the same notification path as password resets.
func (s *authService) RequestEmailVerification(ctx context.Context, userID primitive.ObjectID) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsVerified {
		return fmt.Errorf("email is already verified")
	}

	token := utils.GenerateRandomString(48)
	ok, err := s.cache.SetNX(ctx, utils.CacheVerifyPrefix+token, userID.Hex(), utils.VerifyTokenTTL)
	if err != nil {
		return fmt.Errorf("failed to store verification token: %w", err)
	}
	if !ok {
		return fmt.Errorf("failed to issue verification token")
	}

	link := fmt.Sprintf("%s/verify-email?token=%s", s.baseURL, token)
	body := fmt.Sprintf("Hello %s,\n\nConfirm your email address for %s by opening the link below.\n\n%s", user.Name, utils.AppName, link)
	s.sendMail(ctx, user.Email, "Verify your email address", body)

	s.logger.WithUserID(userID).Debug("Email verification token issued")

	return nil
}

// sendMail is best effort: a failed delivery is logged, never surfaced, so
// the token in Redis stays valid for a retried request.
func (s *authService) sendMail(ctx context.Context, to, subject, body string) {
	if s.mailer == nil {
		return
	}
	if err := s.mailer.SendEmail(ctx, &email.EmailRequest{To: to, Subject: subject, Body: body}); err != nil {
		s.logger.WithError(err).WithField("email", utils.MaskEmail(to)).Error("Failed to send email")
	}
}

func (s *authService) VerifyEmail(ctx context.Context, token string) error {
	var userIDHex string
	if err := s.cache.Get(ctx, utils.CacheVerifyPrefix+token, &userIDHex); err != nil {
		return fmt.Errorf(utils.ErrInvalidToken)
	}

	userID, err := primitive.ObjectIDFromHex(userIDHex)
	if err != nil {
		return fmt.Errorf(utils.ErrInvalidToken)
	}

	if err := s.userRepo.UpdateEmailVerification(ctx, userID, true); err != nil {
		return err
	}

	s.cache.Delete(ctx, utils.CacheVerifyPrefix+token)

	s.logger.WithUserID(userID).Info("Email verified")

	return nil
}
