package services

import (
	"context"
	"fmt"
	"time"

	"carefund/internal/models"
	"carefund/internal/repositories/interfaces"
	"carefund/internal/utils"
	"carefund/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AdminService interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)

	ListUsers(ctx context.Context, role models.UserRole, params *utils.PaginationParams) ([]*models.User, *utils.PaginationMeta, error)
	SetUserActive(ctx context.Context, userID primitive.ObjectID, active bool) error
	AssignRole(ctx context.Context, userID primitive.ObjectID, role models.UserRole) error
	DeleteUser(ctx context.Context, userID primitive.ObjectID) error
	CreateAdmin(ctx context.Context, req *RegisterRequest) (*models.User, error)

	// Analytics is the cross-module rollup: money moved per donation status,
	// coupon redemption rate, and outstanding wallet liability.
	Analytics(ctx context.Context) (*PlatformAnalytics, error)

	// DonationReport renders the date-ranged xlsx workbook for download.
	DonationReport(ctx context.Context, from, to time.Time, status models.DonationStatus) ([]byte, error)

	// FinancialReport summarizes donation money movement over a date range.
	FinancialReport(ctx context.Context, from, to time.Time) (*FinancialReport, error)
}

// FinancialReport aggregates completed, refunded and pending donation amounts
// for a period.
type FinancialReport struct {
	From           time.Time `json:"from"`
	To             time.Time `json:"to"`
	DonationCount  int       `json:"donationCount"`
	CompletedTotal float64   `json:"completedTotal"`
	PendingTotal   float64   `json:"pendingTotal"`
	RefundedTotal  float64   `json:"refundedTotal"`
	NetCollected   float64   `json:"netCollected"`
}

type PlatformAnalytics struct {
	Donations struct {
		Total          int64   `json:"total"`
		CompletedTotal float64 `json:"completedTotal"`
		PendingTotal   float64 `json:"pendingTotal"`
		RefundedTotal  float64 `json:"refundedTotal"`
	} `json:"donations"`
	Coupons struct {
		Total          int64   `json:"total"`
		Active         int64   `json:"active"`
		Redeemed       int64   `json:"redeemed"`
		RedemptionRate float64 `json:"redemptionRate"`
	} `json:"coupons"`
	Wallets struct {
		OutstandingBalance float64 `json:"outstandingBalance"`
	} `json:"wallets"`
}

// DashboardStats is the admin console landing payload.
type DashboardStats struct {
	Users struct {
		Total   int64 `json:"total"`
		Donors  int64 `json:"donors"`
		Vendors int64 `json:"vendors"`
	} `json:"users"`
	Campaigns struct {
		Total       int64   `json:"total"`
		TotalRaised float64 `json:"totalRaised"`
	} `json:"campaigns"`
	Donations struct {
		Total          int64   `json:"total"`
		CompletedTotal float64 `json:"completedTotal"`
	} `json:"donations"`
	Coupons struct {
		Total    int64 `json:"total"`
		Active   int64 `json:"active"`
		Redeemed int64 `json:"redeemed"`
	} `json:"coupons"`
	Partners struct {
		Total int64 `json:"total"`
	} `json:"partners"`
	Wallets struct {
		OutstandingBalance float64 `json:"outstandingBalance"`
	} `json:"wallets"`
}

type adminService struct {
	userRepo     interfaces.UserRepository
	campaignRepo interfaces.CampaignRepository
	donationRepo interfaces.DonationRepository
	couponRepo   interfaces.CouponRepository
	partnerRepo  interfaces.PartnerRepository
	walletRepo   interfaces.WalletRepository
	donations    DonationService
	auth         AuthService
	logger       *logger.Logger
}

func NewAdminService(
	userRepo interfaces.UserRepository,
	campaignRepo interfaces.CampaignRepository,
	donationRepo interfaces.DonationRepository,
	couponRepo interfaces.CouponRepository,
	partnerRepo interfaces.PartnerRepository,
	walletRepo interfaces.WalletRepository,
	donations DonationService,
	auth AuthService,
	log *logger.Logger,
) AdminService {
	return &adminService{
		userRepo:     userRepo,
		campaignRepo: campaignRepo,
		donationRepo: donationRepo,
		couponRepo:   couponRepo,
		partnerRepo:  partnerRepo,
		walletRepo:   walletRepo,
		donations:    donations,
		auth:         auth,
		logger:       log,
	}
}

func (s *adminService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	var err error

	if stats.Users.Total, err = s.userRepo.GetTotalCount(ctx); err != nil {
		return nil, fmt.Errorf("failed to load user counts: %w", err)
	}
	if stats.Users.Donors, err = s.userRepo.GetCountByRole(ctx, models.UserRoleDonor); err != nil {
		return nil, err
	}
	if stats.Users.Vendors, err = s.userRepo.GetCountByRole(ctx, models.UserRoleVendor); err != nil {
		return nil, err
	}

	if stats.Campaigns.Total, err = s.campaignRepo.GetTotalCount(ctx); err != nil {
		return nil, err
	}
	if stats.Campaigns.TotalRaised, err = s.campaignRepo.GetTotalRaised(ctx); err != nil {
		return nil, err
	}

	if stats.Donations.Total, err = s.donationRepo.GetTotalCount(ctx); err != nil {
		return nil, err
	}
	if stats.Donations.CompletedTotal, err = s.donationRepo.GetTotalAmount(ctx, models.DonationStatusCompleted); err != nil {
		return nil, err
	}

	if stats.Coupons.Total, err = s.couponRepo.GetTotalCount(ctx); err != nil {
		return nil, err
	}
	if stats.Coupons.Active, err = s.couponRepo.GetCountByStatus(ctx, models.CouponStatusActive); err != nil {
		return nil, err
	}
	if stats.Coupons.Redeemed, err = s.couponRepo.GetCountByStatus(ctx, models.CouponStatusRedeemed); err != nil {
		return nil, err
	}

	if stats.Partners.Total, err = s.partnerRepo.GetTotalCount(ctx); err != nil {
		return nil, err
	}

	if stats.Wallets.OutstandingBalance, err = s.walletRepo.GetTotalBalance(ctx); err != nil {
		return nil, err
	}

	return stats, nil
}

func (s *adminService) Analytics(ctx context.Context) (*PlatformAnalytics, error) {
	analytics := &PlatformAnalytics{}
	var err error

	if analytics.Donations.Total, err = s.donationRepo.GetTotalCount(ctx); err != nil {
		return nil, fmt.Errorf("failed to load donation analytics: %w", err)
	}
	if analytics.Donations.CompletedTotal, err = s.donationRepo.GetTotalAmount(ctx, models.DonationStatusCompleted); err != nil {
		return nil, err
	}
	if analytics.Donations.PendingTotal, err = s.donationRepo.GetTotalAmount(ctx, models.DonationStatusPending); err != nil {
		return nil, err
	}
	if analytics.Donations.RefundedTotal, err = s.donationRepo.GetTotalAmount(ctx, models.DonationStatusRefunded); err != nil {
		return nil, err
	}

	if analytics.Coupons.Total, err = s.couponRepo.GetTotalCount(ctx); err != nil {
		return nil, err
	}
	if analytics.Coupons.Active, err = s.couponRepo.GetCountByStatus(ctx, models.CouponStatusActive); err != nil {
		return nil, err
	}
	if analytics.Coupons.Redeemed, err = s.couponRepo.GetCountByStatus(ctx, models.CouponStatusRedeemed); err != nil {
		return nil, err
	}
	if analytics.Coupons.Total > 0 {
		analytics.Coupons.RedemptionRate = float64(analytics.Coupons.Redeemed) / float64(analytics.Coupons.Total)
	}

	if analytics.Wallets.OutstandingBalance, err = s.walletRepo.GetTotalBalance(ctx); err != nil {
		return nil, err
	}

	return analytics, nil
}

func (s *adminService) ListUsers(ctx context.Context, role models.UserRole, params *utils.PaginationParams) ([]*models.User, *utils.PaginationMeta, error) {
	var (
		users []*models.User
		total int64
		err   error
	)
	if role == "" {
		users, total, err = s.userRepo.List(ctx, params)
	} else {
		if !models.ValidRole(role) {
			return nil, nil, fmt.Errorf("unknown role %q", role)
		}
		users, total, err = s.userRepo.GetByRole(ctx, role, params)
	}
	if err != nil {
		return nil, nil, err
	}
	return users, utils.CreatePaginationMeta(params, total), nil
}

func (s *adminService) SetUserActive(ctx context.Context, userID primitive.ObjectID, active bool) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Role == models.UserRoleAdmin && !active {
		return fmt.Errorf("admin accounts cannot be suspended here")
	}

	status := models.UserStatusActive
	if !active {
		status = models.UserStatusSuspended
	}

	if err := s.userRepo.Update(ctx, userID, map[string]interface{}{
		"is_active": active,
		"status":    status,
	}); err != nil {
		return err
	}

	s.logger.WithUserID(userID).WithField("active", active).Info("User activation changed")
	return nil
}

// CreateAdmin provisions an admin account. Registration refuses the admin
// role, so this is the only path that mints one.
func (s *adminService) CreateAdmin(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	req.Role = models.UserRoleAdmin
	return s.auth.CreateUser(ctx, req)
}

func (s *adminService) AssignRole(ctx context.Context, userID primitive.ObjectID, role models.UserRole) error {
	if !models.ValidRole(role) {
		return fmt.Errorf("unknown role %q", role)
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}

	if err := s.userRepo.Update(ctx, userID, map[string]interface{}{
		"role": role,
	}); err != nil {
		return err
	}

	s.logger.WithUserID(userID).WithField("role", role).Info("User role assigned")
	return nil
}

func (s *adminService) DeleteUser(ctx context.Context, userID primitive.ObjectID) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Role == models.UserRoleAdmin {
		return fmt.Errorf("admin accounts cannot be deleted here")
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}

	s.logger.WithUserID(userID).Info("User deleted")
	return nil
}

func (s *adminService) DonationReport(ctx context.Context, from, to time.Time, status models.DonationStatus) ([]byte, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("report range end precedes start")
	}
	return s.donations.ExportReport(ctx, from, to, status)
}

func (s *adminService) FinancialReport(ctx context.Context, from, to time.Time) (*FinancialReport, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("report range end precedes start")
	}

	donations, err := s.donationRepo.GetByDateRange(ctx, from, to, "")
	if err != nil {
		return nil, err
	}

	report := &FinancialReport{From: from, To: to, DonationCount: len(donations)}
	for _, d := range donations {
		switch d.Status {
		case models.DonationStatusCompleted:
			report.CompletedTotal += d.Amount
		case models.DonationStatusPending:
			report.PendingTotal += d.Amount
		case models.DonationStatusRefunded:
			report.RefundedTotal += d.Amount
		}
	}
	report.NetCollected = report.CompletedTotal - report.RefundedTotal

	return report, nil
}
