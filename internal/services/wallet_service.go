package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"carefund/internal/models"
	"carefund/internal/repositories/interfaces"
	"carefund/internal/utils"
	"carefund/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WalletService interface {
	// GetOrCreate returns the vendor's wallet, creating an empty one on
	// first access.
	GetOrCreate(ctx context.Context, vendorID primitive.ObjectID) (*models.Wallet, error)
	Get(ctx context.Context, vendorID primitive.ObjectID) (*models.Wallet, error)

	// GetByID looks a wallet up by its id. Non-admin callers may only read
	// their own wallet.
	GetByID(ctx context.Context, id, actorID primitive.ObjectID, isAdmin bool) (*models.Wallet, error)

	// CreditCoupon moves a redeemed coupon's value into the vendor wallet.
	// The coupon must have been redeemed by this vendor.
	CreditCoupon(ctx context.Context, vendorID, couponID primitive.ObjectID) (*models.Wallet, error)

	// Settle pays out a pending wallet coupon and debits the balance.
	Settle(ctx context.Context, req *SettleCouponRequest) (*models.Wallet, error)

	Transactions(ctx context.Context, vendorID primitive.ObjectID) ([]models.WalletTransaction, error)

	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Wallet, *utils.PaginationMeta, error)
	TotalOutstanding(ctx context.Context) (float64, error)
}

type SettleCouponRequest struct {
	WalletID  string `json:"walletId" validate:"required"`
	CouponID  string `json:"couponId" validate:"required"`
	Reference string `json:"reference"`
	Notes     string `json:"notes"`
}

type walletService struct {
	walletRepo  interfaces.WalletRepository
	couponRepo  interfaces.CouponRepository
	partnerRepo interfaces.PartnerRepository
	logger      *logger.Logger
}

func NewWalletService(
	walletRepo interfaces.WalletRepository,
	couponRepo interfaces.CouponRepository,
	partnerRepo interfaces.PartnerRepository,
	log *logger.Logger,
) WalletService {
	return &walletService{
		walletRepo:  walletRepo,
		couponRepo:  couponRepo,
		partnerRepo: partnerRepo,
		logger:      log,
	}
}

func (s *walletService) GetOrCreate(ctx context.Context, vendorID primitive.ObjectID) (*models.Wallet, error) {
	wallet, err := s.walletRepo.GetByVendor(ctx, vendorID)
	if err == nil {
		return wallet, nil
	}
	if !isNotFound(err) {
		return nil, err
	}

	wallet = &models.Wallet{
		VendorID:     vendorID,
		Currency:     utils.DefaultCurrency,
		Coupons:      []models.WalletCoupon{},
		Transactions: []models.WalletTransaction{},
		IsActive:     true,
	}
	if err := s.walletRepo.Create(ctx, wallet); err != nil {
		// A concurrent first access may have created it already.
		if existing, getErr := s.walletRepo.GetByVendor(ctx, vendorID); getErr == nil {
			return existing, nil
		}
		return nil, err
	}

	s.logger.WithUserID(vendorID).Info("Vendor wallet created")

	return wallet, nil
}

func (s *walletService) Get(ctx context.Context, vendorID primitive.ObjectID) (*models.Wallet, error) {
	return s.walletRepo.GetByVendor(ctx, vendorID)
}

func (s *walletService) GetByID(ctx context.Context, id, actorID primitive.ObjectID, isAdmin bool) (*models.Wallet, error) {
	wallet, err := s.walletRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && wallet.VendorID != actorID {
		return nil, fmt.Errorf(utils.ErrForbidden)
	}
	return wallet, nil
}

func (s *walletService) CreditCoupon(ctx context.Context, vendorID, couponID primitive.ObjectID) (*models.Wallet, error) {
	coupon, err := s.couponRepo.GetByID(ctx, couponID)
	if err != nil {
		return nil, err
	}

	if len(coupon.Redemptions) == 0 {
		return nil, fmt.Errorf("coupon has not been redeemed")
	}
	if !s.redeemedByVendor(ctx, coupon, vendorID) {
		return nil, fmt.Errorf("coupon was not redeemed at this vendor")
	}

	wallet, err := s.GetOrCreate(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if !wallet.IsActive {
		return nil, fmt.Errorf("wallet is frozen")
	}

	amount := coupon.Value.Amount
	if amount <= 0 {
		return nil, fmt.Errorf("coupon carries no cash value")
	}

	entry := &models.WalletCoupon{
		Coupon:  couponID,
		Amount:  amount,
		Status:  models.WalletCouponPending,
		AddedAt: time.Now(),
	}
	txn := &models.WalletTransaction{
		ID:          primitive.NewObjectID(),
		Type:        models.WalletTxnTopup,
		Amount:      amount,
		Description: "Coupon " + coupon.Code + " credited",
		Reference:   coupon.Code,
		ProcessedAt: time.Now(),
	}

	if err := s.walletRepo.AddCoupon(ctx, wallet.ID, entry, txn); err != nil {
		return nil, err
	}

	s.logger.WithUserID(vendorID).
		WithField("coupon_code", coupon.Code).
		WithField("amount", amount).
		Info("Coupon credited to wallet")

	return s.walletRepo.GetByID(ctx, wallet.ID)
}

func (s *walletService) Settle(ctx context.Context, req *SettleCouponRequest) (*models.Wallet, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	walletID, err := primitive.ObjectIDFromHex(req.WalletID)
	if err != nil {
		return nil, fmt.Errorf("invalid wallet id")
	}
	couponID, err := primitive.ObjectIDFromHex(req.CouponID)
	if err != nil {
		return nil, fmt.Errorf("invalid coupon id")
	}

	wallet, err := s.walletRepo.GetByID(ctx, walletID)
	if err != nil {
		return nil, err
	}

	var amount float64
	found := false
	for _, c := range wallet.Coupons {
		if c.Coupon == couponID {
			found = true
			if c.Status != models.WalletCouponPending {
				return nil, fmt.Errorf("coupon is already settled")
			}
			amount = c.Amount
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("coupon is not in this wallet")
	}

	txn := &models.WalletTransaction{
		ID:          primitive.NewObjectID(),
		Type:        models.WalletTxnSettlement,
		Amount:      -amount,
		Description: settlementDescription(req.Notes),
		Reference:   req.Reference,
		ProcessedAt: time.Now(),
	}

	if err := s.walletRepo.SettleCoupon(ctx, walletID, couponID, amount, txn); err != nil {
		return nil, err
	}

	s.logger.WithField("wallet_id", walletID.Hex()).
		WithField("coupon_id", couponID.Hex()).
		WithField("amount", amount).
		Info("Wallet coupon settled")

	return s.walletRepo.GetByID(ctx, walletID)
}

func (s *walletService) Transactions(ctx context.Context, vendorID primitive.ObjectID) ([]models.WalletTransaction, error) {
	wallet, err := s.walletRepo.GetByVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	return wallet.Transactions, nil
}

func (s *walletService) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Wallet, *utils.PaginationMeta, error) {
	wallets, total, err := s.walletRepo.List(ctx, params)
	if err != nil {
		return nil, nil, err
	}
	return wallets, utils.CreatePaginationMeta(params, total), nil
}

func (s *walletService) TotalOutstanding(ctx context.Context) (float64, error) {
	return s.walletRepo.GetTotalBalance(ctx)
}

// redeemedByVendor accepts either a direct redemption by the vendor user or a
// redemption at a partner the vendor owns.
func (s *walletService) redeemedByVendor(ctx context.Context, coupon *models.Coupon, vendorID primitive.ObjectID) bool {
	for _, r := range coupon.Redemptions {
		if r.RedeemedBy == vendorID {
			return true
		}
	}
	if coupon.Partner == nil {
		return false
	}
	partner, err := s.partnerRepo.GetByID(ctx, *coupon.Partner)
	if err != nil {
		return false
	}
	return partner.Owner != nil && *partner.Owner == vendorID
}

func settlementDescription(notes string) string {
	if notes == "" {
		return "Settlement payout"
	}
	return "Settlement payout: " + notes
}

func isNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), "not found")
}
