package services

import (
	"context"
	"testing"

	"carefund/internal/models"
	"carefund/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture(t *testing.T) (AuthService, *fakeUserRepo, *fakeCache) {
	svc, userRepo, cache, _ := newAuthFixtureWithMailer(t)
	return svc, userRepo, cache
}

func newAuthFixtureWithMailer(t *testing.T) (AuthService, *fakeUserRepo, *fakeCache, *fakeMailer) {
	userRepo := newFakeUserRepo()
	cache := newFakeCache()
	mailer := &fakeMailer{}
	svc := NewAuthService(userRepo, cache, mailer, newTestLogger(t), "test-secret", "https://carefund.test")
	return svc, userRepo, cache, mailer
}

func donorRegistration() *RegisterRequest {
	return &RegisterRequest{
		Name:     "Asha Kumar",
		Email:    "Asha@Example.com",
		Phone:    "9876543210",
		Password: "secret123",
		Role:     models.UserRoleDonor,
	}
}

func TestRegister(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	resp, err := svc.Register(context.Background(), donorRegistration())
	require.NoError(t, err)

	assert.Equal(t, "asha@example.com", resp.User.Email, "email is normalized")
	assert.Equal(t, models.UserRoleDonor, resp.User.Role)
	assert.True(t, resp.User.IsActive)
	assert.NotEqual(t, "secret123", resp.User.Password, "password is hashed")
	assert.NotEmpty(t, resp.Tokens.AccessToken)
	assert.NotEmpty(t, resp.Tokens.RefreshToken)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, donorRegistration())
	require.NoError(t, err)

	dup := donorRegistration()
	dup.Phone = "9876500000"
	_, err = svc.Register(ctx, dup)
	assert.EqualError(t, err, utils.ErrUserExists)
}

func TestRegisterDuplicatePhone(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, donorRegistration())
	require.NoError(t, err)

	dup := donorRegistration()
	dup.Email = "other@example.com"
	_, err = svc.Register(ctx, dup)
	assert.ErrorContains(t, err, "phone number already registered")
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	req := donorRegistration()
	req.Role = models.UserRoleAdmin
	_, err := svc.Register(context.Background(), req)
	assert.ErrorContains(t, err, "cannot be self-assigned")
}

func TestCreateUserAllowsAdminRole(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	req := donorRegistration()
	req.Role = models.UserRoleAdmin
	user, err := svc.CreateUser(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleAdmin, user.Role)
}

func TestLogin(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, donorRegistration())
	require.NoError(t, err)

	resp, err := svc.Login(ctx, &LoginRequest{Email: "asha@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Tokens.AccessToken)
	assert.NotNil(t, resp.User.LastLoginAt)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, donorRegistration())
	require.NoError(t, err)

	_, err = svc.Login(ctx, &LoginRequest{Email: "asha@example.com", Password: "wrongpass1"})
	assert.EqualError(t, err, utils.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), &LoginRequest{Email: "ghost@example.com", Password: "secret123"})
	assert.EqualError(t, err, utils.ErrInvalidCredentials)
}

func TestLoginSuspendedAccount(t *testing.T) {
	svc, userRepo, _ := newAuthFixture(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, donorRegistration())
	require.NoError(t, err)

	require.NoError(t, userRepo.Update(ctx, resp.User.ID, map[string]interface{}{
		"is_active": false,
		"status":    models.UserStatusSuspended,
	}))

	_, err = svc.Login(ctx, &LoginRequest{Email: "asha@example.com", Password: "secret123"})
	assert.ErrorContains(t, err, "account is disabled")
}

func TestChangePassword(t *testing.T) {
	svc, userRepo, _ := newAuthFixture(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, donorRegistration())
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, resp.User.ID, &ChangePasswordRequest{
		CurrentPassword: "secret123",
		NewPassword:     "newsecret456",
	})
	require.NoError(t, err)

	user, err := userRepo.GetByID(ctx, resp.User.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("newsecret456")))
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, donorRegistration())
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, resp.User.ID, &ChangePasswordRequest{
		CurrentPassword: "notthepass1",
		NewPassword:     "newsecret456",
	})
	assert.ErrorContains(t, err, "current password is incorrect")
}

func TestForgotAndResetPassword(t *testing.T) {
	svc, _, cache := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, donorRegistration())
	require.NoError(t, err)

	require.NoError(t, svc.ForgotPassword(ctx, "asha@example.com"))

	// Pull the token straight out of the fake cache.
	var token string
	for k := range cache.data {
		token = k[len(utils.CacheResetPrefix):]
	}
	require.NotEmpty(t, token)

	err = svc.ResetPassword(ctx, &ResetPasswordRequest{Token: token, NewPassword: "resetpass789"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &LoginRequest{Email: "asha@example.com", Password: "resetpass789"})
	assert.NoError(t, err)

	// The token is single use.
	err = svc.ResetPassword(ctx, &ResetPasswordRequest{Token: token, NewPassword: "anotherpass1"})
	assert.EqualError(t, err, utils.ErrInvalidToken)
}

func TestForgotPasswordEmailsResetLink(t *testing.T) {
	svc, _, cache, mailer := newAuthFixtureWithMailer(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, donorRegistration())
	require.NoError(t, err)

	require.NoError(t, svc.ForgotPassword(ctx, "asha@example.com"))

	var token string
	for k := range cache.data {
		token = k[len(utils.CacheResetPrefix):]
	}
	require.NotEmpty(t, token)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "asha@example.com", mailer.sent[0].To)
	assert.Contains(t, mailer.sent[0].Subject, "Reset")
	assert.Contains(t, mailer.sent[0].Body, "/reset-password?token="+token)
}

func TestForgotPasswordUnknownEmailIsSilent(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	assert.NoError(t, svc.ForgotPassword(context.Background(), "ghost@example.com"))
}

func TestEmailVerificationFlow(t *testing.T) {
	svc, userRepo, cache := newAuthFixture(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, donorRegistration())
	require.NoError(t, err)

	require.NoError(t, svc.RequestEmailVerification(ctx, resp.User.ID))

	var token string
	for k := range cache.data {
		token = k[len(utils.CacheVerifyPrefix):]
	}
	require.NotEmpty(t, token)

	require.NoError(t, svc.VerifyEmail(ctx, token))

	user, err := userRepo.GetByID(ctx, resp.User.ID)
	require.NoError(t, err)
	assert.True(t, user.IsVerified)

	// Requesting again after verification is rejected.
	err = svc.RequestEmailVerification(ctx, resp.User.ID)
	assert.ErrorContains(t, err, "already verified")
}

func TestEmailVerificationEmailsLink(t *testing.T) {
	svc, _, cache, mailer := newAuthFixtureWithMailer(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, donorRegistration())
	require.NoError(t, err)

	require.NoError(t, svc.RequestEmailVerification(ctx, resp.User.ID))

	var token string
	for k := range cache.data {
		token = k[len(utils.CacheVerifyPrefix):]
	}
	require.NotEmpty(t, token)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "asha@example.com", mailer.sent[0].To)
	assert.Contains(t, mailer.sent[0].Body, "/verify-email?token="+token)
}

func TestVerifyEmailBadToken(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	err := svc.VerifyEmail(context.Background(), "bogus")
	assert.EqualError(t, err, utils.ErrInvalidToken)
}

func TestRefreshToken(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, donorRegistration())
	require.NoError(t, err)

	pair, err := svc.RefreshToken(ctx, resp.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
}

func TestRefreshTokenGarbage(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	_, err := svc.RefreshToken(context.Background(), "not-a-jwt")
	assert.EqualError(t, err, utils.ErrInvalidToken)
}
