package services

import (
	"context"
	"testing"
	"time"

	"carefund/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type adminFixture struct {
	svc          AdminService
	auth         AuthService
	userRepo     *fakeUserRepo
	donationRepo *fakeDonationRepo
	couponRepo   *fakeCouponRepo
	walletRepo   *fakeWalletRepo
}

func newAdminFixture(t *testing.T) *adminFixture {
	userRepo := newFakeUserRepo()
	campaignRepo := newFakeCampaignRepo()
	donationRepo := newFakeDonationRepo()
	couponRepo := newFakeCouponRepo()
	partnerRepo := newFakePartnerRepo()
	walletRepo := newFakeWalletRepo()
	log := newTestLogger(t)

	auth := NewAuthService(userRepo, newFakeCache(), nil, log, "test-secret", "https://carefund.test")
	donations := NewDonationService(donationRepo, campaignRepo, log)
	svc := NewAdminService(userRepo, campaignRepo, donationRepo, couponRepo,
		partnerRepo, walletRepo, donations, auth, log)

	return &adminFixture{
		svc:          svc,
		auth:         auth,
		userRepo:     userRepo,
		donationRepo: donationRepo,
		couponRepo:   couponRepo,
		walletRepo:   walletRepo,
	}
}

func (fx *adminFixture) registeredUser(t *testing.T, email, phone string, role models.UserRole) *models.User {
	t.Helper()
	resp, err := fx.auth.Register(context.Background(), &RegisterRequest{
		Name:     "Test User",
		Email:    email,
		Phone:    phone,
		Password: "secret123",
		Role:     role,
	})
	require.NoError(t, err)
	return resp.User
}

func TestSuspendAndReactivateUser(t *testing.T) {
	fx := newAdminFixture(t)
	ctx := context.Background()
	user := fx.registeredUser(t, "donor@example.com", "9876543210", models.UserRoleDonor)

	require.NoError(t, fx.svc.SetUserActive(ctx, user.ID, false))

	got, err := fx.userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.Equal(t, models.UserStatusSuspended, got.Status)

	require.NoError(t, fx.svc.SetUserActive(ctx, user.ID, true))
	got, err = fx.userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, got.IsActive)
}

func TestAdminAccountsCannotBeSuspended(t *testing.T) {
	fx := newAdminFixture(t)
	ctx := context.Background()

	admin, err := fx.svc.CreateAdmin(ctx, &RegisterRequest{
		Name:     "Root Admin",
		Email:    "admin@example.com",
		Phone:    "9876500001",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleAdmin, admin.Role)

	err = fx.svc.SetUserActive(ctx, admin.ID, false)
	assert.ErrorContains(t, err, "cannot be suspended")

	err = fx.svc.DeleteUser(ctx, admin.ID)
	assert.ErrorContains(t, err, "cannot be deleted")
}

func TestAssignRole(t *testing.T) {
	fx := newAdminFixture(t)
	ctx := context.Background()
	user := fx.registeredUser(t, "donor@example.com", "9876543210", models.UserRoleDonor)

	assert.ErrorContains(t, fx.svc.AssignRole(ctx, user.ID, "superuser"), "unknown role")

	require.NoError(t, fx.svc.AssignRole(ctx, user.ID, models.UserRoleVendor))
	got, err := fx.userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleVendor, got.Role)
}

func TestDeleteUser(t *testing.T) {
	fx := newAdminFixture(t)
	ctx := context.Background()
	user := fx.registeredUser(t, "donor@example.com", "9876543210", models.UserRoleDonor)

	require.NoError(t, fx.svc.DeleteUser(ctx, user.ID))
	_, err := fx.userRepo.GetByID(ctx, user.ID)
	assert.Error(t, err)
}

func TestDashboardCounts(t *testing.T) {
	fx := newAdminFixture(t)
	ctx := context.Background()

	fx.registeredUser(t, "donor@example.com", "9876543210", models.UserRoleDonor)
	fx.registeredUser(t, "vendor@example.com", "9876543211", models.UserRoleVendor)

	stats, err := fx.svc.Dashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.Users.Total)
	assert.Equal(t, int64(1), stats.Users.Donors)
	assert.Equal(t, int64(1), stats.Users.Vendors)
	assert.Equal(t, int64(0), stats.Campaigns.Total)
}

func TestPlatformAnalytics(t *testing.T) {
	fx := newAdminFixture(t)
	ctx := context.Background()

	for _, d := range []*models.Donation{
		{Amount: 1000, Status: models.DonationStatusCompleted},
		{Amount: 500, Status: models.DonationStatusPending},
		{Amount: 200, Status: models.DonationStatusRefunded},
	} {
		require.NoError(t, fx.donationRepo.Create(ctx, d))
	}
	for _, c := range []*models.Coupon{
		{Code: "FOO2345ABCD", Status: models.CouponStatusActive},
		{Code: "MED2345WXYZ", Status: models.CouponStatusRedeemed},
	} {
		require.NoError(t, fx.couponRepo.Create(ctx, c))
	}
	require.NoError(t, fx.walletRepo.Create(ctx, &models.Wallet{CurrentBalance: 300}))

	analytics, err := fx.svc.Analytics(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(3), analytics.Donations.Total)
	assert.Equal(t, 1000.0, analytics.Donations.CompletedTotal)
	assert.Equal(t, 500.0, analytics.Donations.PendingTotal)
	assert.Equal(t, 200.0, analytics.Donations.RefundedTotal)

	assert.Equal(t, int64(2), analytics.Coupons.Total)
	assert.Equal(t, int64(1), analytics.Coupons.Active)
	assert.Equal(t, int64(1), analytics.Coupons.Redeemed)
	assert.Equal(t, 0.5, analytics.Coupons.RedemptionRate)

	assert.Equal(t, 300.0, analytics.Wallets.OutstandingBalance)
}

func TestFinancialReport(t *testing.T) {
	fx := newAdminFixture(t)
	ctx := context.Background()

	now := time.Now()
	_, err := fx.svc.FinancialReport(ctx, now, now.Add(-time.Hour))
	assert.ErrorContains(t, err, "end precedes start")

	report, err := fx.svc.FinancialReport(ctx, now.Add(-24*time.Hour), now)
	require.NoError(t, err)
	assert.Equal(t, 0, report.DonationCount)
	assert.Equal(t, 0.0, report.NetCollected)
}
