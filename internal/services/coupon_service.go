package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"carefund/internal/models"
	"carefund/internal/repositories/interfaces"
	"carefund/internal/utils"
	"carefund/pkg/email"
	"carefund/pkg/logger"
	"carefund/pkg/payment"
	"carefund/pkg/sms"
	"carefund/pkg/storage"

	qrcode "github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CouponService interface {
	ListPackages(ctx context.Context) ([]*models.CouponPackage, error)

	// Purchase opens a gateway charge for package x quantity. The coupons
	// themselves are issued by VerifyPurchase once the charge settles.
	Purchase(ctx context.Context, userID primitive.ObjectID, req *PurchaseCouponsRequest) (*PurchaseResult, error)
	VerifyPurchase(ctx context.Context, req *VerifyPaymentRequest) ([]*models.Coupon, error)

	// Create mints a single coupon outside the package flow, for drives
	// managed from the admin console.
	Create(ctx context.Context, req *CreateCouponRequest) (*models.Coupon, error)
	Update(ctx context.Context, id primitive.ObjectID, req *UpdateCouponRequest) (*models.Coupon, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Coupon, error)
	GetByCode(ctx context.Context, code string) (*models.Coupon, error)
	Redeem(ctx context.Context, vendorID primitive.ObjectID, req *RedeemCouponRequest) (*models.Coupon, error)
	Send(ctx context.Context, userID primitive.ObjectID, req *SendCouponRequest) error
	AssignPartner(ctx context.Context, couponID, partnerID primitive.ObjectID) error
	Reject(ctx context.Context, couponID primitive.ObjectID, reason string) error

	ListMine(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Coupon, *utils.PaginationMeta, error)
	ListByPartner(ctx context.Context, partnerID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Coupon, *utils.PaginationMeta, error)
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Coupon, *utils.PaginationMeta, error)
}

type PurchaseCouponsRequest struct {
	PackageID string                `json:"packageId" validate:"required"`
	Quantity  int                   `json:"quantity" validate:"required,gte=1"`
	Gateway   models.PaymentGateway `json:"gateway" validate:"required"`
	PartnerID string                `json:"partnerId"`

	// Beneficiary, when present, receives every issued coupon code by SMS
	// once the charge settles.
	Beneficiary *PurchaseBeneficiary `json:"beneficiary"`
}

type PurchaseBeneficiary struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required,indian_phone"`
	Email string `json:"email" validate:"omitempty,email"`
}

type CreateCouponRequest struct {
	Title        string            `json:"title" validate:"required"`
	Category     string            `json:"category" validate:"required"`
	Type         models.CouponType `json:"type"`
	Amount       float64           `json:"amount" validate:"required,gt=0"`
	ValidityDays int               `json:"validityDays" validate:"required,gte=1"`
	MaxUses      int               `json:"maxUses" validate:"omitempty,gte=1"`
	IsUnlimited  bool              `json:"isUnlimited"`
	PartnerID    string            `json:"partnerId"`
}

type UpdateCouponRequest struct {
	Title    string     `json:"title"`
	EndDate  *time.Time `json:"endDate"`
	MaxUses  *int       `json:"maxUses" validate:"omitempty,gte=1"`
	IsActive *bool      `json:"isActive"`
}

type PurchaseResult struct {
	Charge  *payment.ChargeResult `json:"charge"`
	Coupons []*models.Coupon      `json:"coupons,omitempty"`
}

type RedeemCouponRequest struct {
	Code     string `json:"code" validate:"required"`
	Location string `json:"location"`
	Notes    string `json:"notes"`
}

type SendCouponRequest struct {
	CouponID string `json:"couponId" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required,indian_phone"`
	Email    string `json:"email" validate:"omitempty,email"`
}

type couponService struct {
	couponRepo  interfaces.CouponRepository
	packageRepo interfaces.CouponPackageRepository
	partnerRepo interfaces.PartnerRepository
	paymentRepo interfaces.PaymentRepository
	providers   *payment.Registry
	smsProvider sms.SMSProvider
	mailer      email.EmailProvider
	storage     storage.StorageProvider
	logger      *logger.Logger
	baseURL     string
	production  bool
}

func NewCouponService(
	couponRepo interfaces.CouponRepository,
	packageRepo interfaces.CouponPackageRepository,
	partnerRepo interfaces.PartnerRepository,
	paymentRepo interfaces.PaymentRepository,
	providers *payment.Registry,
	smsProvider sms.SMSProvider,
	mailer email.EmailProvider,
	store storage.StorageProvider,
	log *logger.Logger,
	baseURL string,
	production bool,
) CouponService {
	return &couponService{
		couponRepo:  couponRepo,
		packageRepo: packageRepo,
		partnerRepo: partnerRepo,
		paymentRepo: paymentRepo,
		providers:   providers,
		smsProvider: smsProvider,
		mailer:      mailer,
		storage:     store,
		logger:      log,
		baseURL:     baseURL,
		production:  production,
	}
}

func (s *couponService) ListPackages(ctx context.Context) ([]*models.CouponPackage, error) {
	return s.packageRepo.GetActive(ctx)
}

func (s *couponService) Purchase(ctx context.Context, userID primitive.ObjectID, req *PurchaseCouponsRequest) (*PurchaseResult, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	if req.Quantity > utils.MaxCouponsPerPurchase {
		return nil, fmt.Errorf("at most %d coupons per purchase", utils.MaxCouponsPerPurchase)
	}
	if !models.ValidGateway(req.Gateway) {
		return nil, fmt.Errorf("unknown payment gateway %q", req.Gateway)
	}
	if req.Gateway == models.GatewayTest && s.production {
		return nil, ErrTestGatewayDisabled
	}

	packageID, err := primitive.ObjectIDFromHex(req.PackageID)
	if err != nil {
		return nil, fmt.Errorf("invalid package id")
	}

	pkg, err := s.packageRepo.GetByID(ctx, packageID)
	if err != nil {
		return nil, fmt.Errorf(utils.ErrPackageNotFound)
	}
	if !pkg.IsActive {
		return nil, fmt.Errorf("coupon package is no longer available")
	}

	var partnerID *primitive.ObjectID
	if req.PartnerID != "" {
		pid, err := primitive.ObjectIDFromHex(req.PartnerID)
		if err != nil {
			return nil, fmt.Errorf("invalid partner id")
		}
		partner, err := s.partnerRepo.GetByID(ctx, pid)
		if err != nil {
			return nil, err
		}
		if partner.Status != models.PartnerStatusApproved || !partner.IsActive {
			return nil, fmt.Errorf("partner is not accepting coupons")
		}
		partnerID = &pid
	}

	total := pkg.Amount * float64(req.Quantity)

	provider, err := s.providers.Get(string(req.Gateway))
	if err != nil {
		return nil, err
	}

	charge, err := provider.CreateCharge(ctx, &payment.ChargeRequest{
		Amount:      total,
		Currency:    utils.DefaultCurrency,
		Receipt:     packageID.Hex(),
		Description: fmt.Sprintf("%d x %s", req.Quantity, pkg.Title),
		CustomerID:  userID.Hex(),
		Metadata: map[string]interface{}{
			"package_id": packageID.Hex(),
			"quantity":   req.Quantity,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway charge: %w", err)
	}

	record := &models.Payment{
		UserID:    userID,
		PackageID: &packageID,
		PartnerID: partnerID,
		Quantity:  req.Quantity,
		Gateway:   req.Gateway,
		OrderID:   charge.OrderID,
		Amount:    total,
		Currency:  utils.DefaultCurrency,
		Status:    models.PaymentStatusCreated,
	}
	if req.Beneficiary != nil {
		record.Beneficiary = &models.CouponBeneficiary{
			Name:  utils.SanitizeString(req.Beneficiary.Name),
			Phone: req.Beneficiary.Phone,
			Email: utils.NormalizeEmail(req.Beneficiary.Email),
		}
	}
	if err := s.paymentRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	s.logger.LogPaymentEvent(string(req.Gateway), "coupon_order_created", charge.OrderID, total)

	result := &PurchaseResult{Charge: charge}

	// Test gateway settles synchronously, so issue right away.
	if charge.Status == payment.ChargeStatusSucceeded {
		coupons, err := s.completePurchase(ctx, record, pkg, charge.OrderID)
		if err != nil {
			return nil, err
		}
		result.Coupons = coupons
	}

	return result, nil
}

func (s *couponService) VerifyPurchase(ctx context.Context, req *VerifyPaymentRequest) ([]*models.Coupon, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	record, err := s.paymentRepo.GetByOrderID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if record.PackageID == nil {
		return nil, fmt.Errorf("order is not a coupon purchase")
	}
	if record.Status == models.PaymentStatusCompleted {
		return nil, fmt.Errorf("purchase already settled")
	}

	provider, err := s.providers.Get(string(record.Gateway))
	if err != nil {
		return nil, err
	}

	result, err := provider.VerifyCharge(ctx, &payment.VerificationRequest{
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
		Signature: req.Signature,
	})
	if err != nil {
		s.paymentRepo.Update(ctx, record.ID, map[string]interface{}{
			"status":         models.PaymentStatusFailed,
			"failure_reason": err.Error(),
		})
		return nil, fmt.Errorf("payment verification failed: %w", err)
	}

	pkg, err := s.packageRepo.GetByID(ctx, *record.PackageID)
	if err != nil {
		return nil, err
	}

	return s.completePurchase(ctx, record, pkg, result.PaymentID)
}

func (s *couponService) completePurchase(ctx context.Context, record *models.Payment, pkg *models.CouponPackage, paymentID string) ([]*models.Coupon, error) {
	now := time.Now()
	if err := s.paymentRepo.Update(ctx, record.ID, map[string]interface{}{
		"status":                 models.PaymentStatusCompleted,
		"gateway_transaction_id": paymentID,
		"processed_at":           now,
	}); err != nil {
		return nil, err
	}

	coupons, err := s.issueCoupons(ctx, record.UserID, pkg, record.Quantity, record.PartnerID, record.Beneficiary)
	if err != nil {
		return nil, err
	}

	if record.Beneficiary != nil {
		s.deliverCoupons(ctx, record.Beneficiary, coupons)
	}

	s.logger.LogCouponEvent("", utils.EventCouponsIssued, map[string]interface{}{
		"package_id": pkg.ID.Hex(),
		"count":      len(coupons),
		"order_id":   record.OrderID,
	})

	return coupons, nil
}

// deliverCoupons sends one SMS per issued coupon to the purchase beneficiary.
// Delivery is best effort; the coupons stay retrievable under my-coupons.
func (s *couponService) deliverCoupons(ctx context.Context, beneficiary *models.CouponBeneficiary, coupons []*models.Coupon) {
	if s.smsProvider == nil || len(coupons) == 0 {
		return
	}

	requests := make([]*sms.SMSRequest, 0, len(coupons))
	for _, coupon := range coupons {
		requests = append(requests, &sms.SMSRequest{
			To: "+91" + beneficiary.Phone,
			Message: fmt.Sprintf("%s coupon for %s: %s, worth Rs %.0f, valid till %s.",
				utils.AppName, coupon.Title, coupon.Code, coupon.Value.Amount,
				coupon.Validity.EndDate.Format("02 Jan 2006")),
		})
	}

	if _, err := s.smsProvider.SendBulkSMS(ctx, requests); err != nil {
		s.logger.WithError(err).WithField("phone", utils.MaskPhone(beneficiary.Phone)).Warn("Coupon bulk SMS delivery failed")
	}
}

// issueCoupons mints quantity coupons from the package template. Codes are
// regenerated on collision before the batch insert.
func (s *couponService) issueCoupons(ctx context.Context, purchaserID primitive.ObjectID, pkg *models.CouponPackage, quantity int, partnerID *primitive.ObjectID, beneficiary *models.CouponBeneficiary) ([]*models.Coupon, error) {
	now := time.Now()
	validUntil := now.AddDate(0, 0, pkg.ValidityDays)

	coupons := make([]*models.Coupon, 0, quantity)
	for i := 0; i < quantity; i++ {
		code, err := s.uniqueCode(ctx, pkg.Category)
		if err != nil {
			return nil, err
		}

		coupon := &models.Coupon{
			Code:     code,
			Title:    pkg.Title,
			Category: pkg.Category,
			Type:     pkg.CouponType,
			Value:    models.CouponValue{Amount: pkg.Amount},
			Validity: models.CouponValidity{
				StartDate: now,
				EndDate:   validUntil,
				IsActive:  true,
			},
			Usage: models.CouponUsage{
				MaxUses: pkg.MaxUses,
			},
			Status:      models.CouponStatusActive,
			PackageID:   &pkg.ID,
			Partner:     partnerID,
			PurchasedBy: &purchaserID,
			Beneficiary: beneficiary,
		}

		if url, err := s.generateQR(ctx, code); err != nil {
			s.logger.WithError(err).WithCouponCode(code).Warn("Failed to generate coupon QR")
		} else {
			coupon.QRCode = &models.CouponQRCode{URL: url}
		}

		coupons = append(coupons, coupon)
	}

	if err := s.couponRepo.CreateMany(ctx, coupons); err != nil {
		return nil, err
	}

	return coupons, nil
}

func (s *couponService) uniqueCode(ctx context.Context, category string) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		code := utils.GenerateCouponCode(category)
		exists, err := s.couponRepo.CodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("failed to generate a unique coupon code")
}

func (s *couponService) generateQR(ctx context.Context, code string) (string, error) {
	png, err := qrcode.Encode(s.baseURL+"/redeem/"+code, qrcode.Medium, 256)
	if err != nil {
		return "", fmt.Errorf("failed to encode qr: %w", err)
	}

	upload, err := s.storage.Upload(ctx, &storage.UploadRequest{
		Key:         "coupons/qr/" + code + ".png",
		Reader:      bytes.NewReader(png),
		ContentType: "image/png",
		Size:        int64(len(png)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to store qr image: %w", err)
	}

	return upload.URL, nil
}

func (s *couponService) Create(ctx context.Context, req *CreateCouponRequest) (*models.Coupon, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	if !req.IsUnlimited && req.MaxUses == 0 {
		req.MaxUses = 1
	}

	var partnerID *primitive.ObjectID
	if req.PartnerID != "" {
		pid, err := primitive.ObjectIDFromHex(req.PartnerID)
		if err != nil {
			return nil, fmt.Errorf("invalid partner id")
		}
		partner, err := s.partnerRepo.GetByID(ctx, pid)
		if err != nil {
			return nil, err
		}
		if partner.Status != models.PartnerStatusApproved || !partner.IsActive {
			return nil, fmt.Errorf("partner is not accepting coupons")
		}
		partnerID = &pid
	}

	code, err := s.uniqueCode(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	couponType := req.Type
	if couponType == "" {
		couponType = models.CouponTypeService
	}

	now := time.Now()
	coupon := &models.Coupon{
		Code:     code,
		Title:    utils.SanitizeString(req.Title),
		Category: req.Category,
		Type:     couponType,
		Value:    models.CouponValue{Amount: req.Amount},
		Validity: models.CouponValidity{
			StartDate: now,
			EndDate:   now.AddDate(0, 0, req.ValidityDays),
			IsActive:  true,
		},
		Usage: models.CouponUsage{
			MaxUses:     req.MaxUses,
			IsUnlimited: req.IsUnlimited,
		},
		Status:  models.CouponStatusActive,
		Partner: partnerID,
	}

	if url, err := s.generateQR(ctx, code); err != nil {
		s.logger.WithError(err).WithCouponCode(code).Warn("Failed to generate coupon QR")
	} else {
		coupon.QRCode = &models.CouponQRCode{URL: url}
	}

	if err := s.couponRepo.Create(ctx, coupon); err != nil {
		return nil, err
	}

	s.logger.LogCouponEvent(code, "coupon_created", map[string]interface{}{
		"amount": req.Amount,
	})

	return coupon, nil
}

func (s *couponService) Update(ctx context.Context, id primitive.ObjectID, req *UpdateCouponRequest) (*models.Coupon, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	coupon, err := s.couponRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if coupon.Status == models.CouponStatusRedeemed {
		return nil, fmt.Errorf("redeemed coupons cannot be modified")
	}

	updates := make(map[string]interface{})
	if req.Title != "" {
		updates["title"] = utils.SanitizeString(req.Title)
	}
	if req.EndDate != nil {
		updates["validity.end_date"] = *req.EndDate
	}
	if req.MaxUses != nil {
		updates["usage.max_uses"] = *req.MaxUses
	}
	if req.IsActive != nil {
		updates["validity.is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := s.couponRepo.Update(ctx, id, updates); err != nil {
			return nil, err
		}
	}

	return s.couponRepo.GetByID(ctx, id)
}

// Delete removes an unused coupon entirely. A coupon with redemption history
// can only be deactivated, never deleted.
func (s *couponService) Delete(ctx context.Context, id primitive.ObjectID) error {
	coupon, err := s.couponRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if coupon.Usage.UsedCount > 0 || len(coupon.Redemptions) > 0 {
		return fmt.Errorf("coupons with redemptions cannot be deleted")
	}

	if err := s.couponRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.LogCouponEvent(coupon.Code, "coupon_deleted", nil)
	return nil
}

func (s *couponService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Coupon, error) {
	return s.couponRepo.GetByID(ctx, id)
}

func (s *couponService) GetByCode(ctx context.Context, code string) (*models.Coupon, error) {
	return s.couponRepo.GetByCode(ctx, utils.NormalizeCouponCode(code))
}

func (s *couponService) Redeem(ctx context.Context, vendorID primitive.ObjectID, req *RedeemCouponRequest) (*models.Coupon, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	code := utils.NormalizeCouponCode(req.Code)
	if !utils.IsValidCouponCode(code) {
		return nil, fmt.Errorf("malformed coupon code")
	}

	coupon, err := s.couponRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf(utils.ErrCouponNotFound)
	}

	if ok, reason := coupon.RedeemabilityReason(time.Now()); !ok {
		return nil, fmt.Errorf(reason)
	}

	// A coupon bound to a partner may only be redeemed at that partner.
	if coupon.Partner != nil {
		partners, err := s.partnerRepo.GetByOwner(ctx, vendorID)
		if err != nil {
			return nil, err
		}
		owned := false
		for _, p := range partners {
			if p.ID == *coupon.Partner {
				owned = true
				break
			}
		}
		if !owned {
			return nil, fmt.Errorf("coupon is not valid at this partner")
		}
	}

	markRedeemed := !coupon.Usage.IsUnlimited && coupon.Usage.UsedCount+1 >= coupon.Usage.MaxUses

	redemption := &models.CouponRedemption{
		RedeemedBy: vendorID,
		Location:   utils.SanitizeString(req.Location),
		Notes:      utils.SanitizeString(req.Notes),
		RedeemedAt: time.Now(),
	}

	if err := s.couponRepo.RecordRedemption(ctx, coupon.ID, redemption, markRedeemed); err != nil {
		return nil, err
	}

	s.logger.LogCouponEvent(code, utils.EventCouponRedeemed, map[string]interface{}{
		"vendor_id": vendorID.Hex(),
	})

	return s.couponRepo.GetByID(ctx, coupon.ID)
}

// Send delivers the coupon code to a beneficiary over SMS and records who it
// was assigned to.
func (s *couponService) Send(ctx context.Context, userID primitive.ObjectID, req *SendCouponRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}

	couponID, err := primitive.ObjectIDFromHex(req.CouponID)
	if err != nil {
		return fmt.Errorf("invalid coupon id")
	}

	coupon, err := s.couponRepo.GetByID(ctx, couponID)
	if err != nil {
		return err
	}

	if coupon.PurchasedBy == nil || *coupon.PurchasedBy != userID {
		return fmt.Errorf(utils.ErrForbidden)
	}
	if ok, reason := coupon.RedeemabilityReason(time.Now()); !ok {
		return fmt.Errorf(reason)
	}

	beneficiary := &models.CouponBeneficiary{
		Name:  utils.SanitizeString(req.Name),
		Phone: req.Phone,
		Email: utils.NormalizeEmail(req.Email),
	}

	if err := s.couponRepo.Update(ctx, couponID, map[string]interface{}{
		"beneficiary": beneficiary,
	}); err != nil {
		return err
	}

	message := fmt.Sprintf("%s has sent you a %s coupon worth Rs %.0f. Code: %s. Valid till %s.",
		utils.AppName, coupon.Title, coupon.Value.Amount, coupon.Code,
		coupon.Validity.EndDate.Format("02 Jan 2006"))

	if s.smsProvider != nil {
		if _, err := s.smsProvider.SendSMS(ctx, &sms.SMSRequest{
			To:      "+91" + req.Phone,
			Message: message,
		}); err != nil {
			s.logger.WithError(err).WithCouponCode(coupon.Code).Warn("Coupon SMS delivery failed")
		}
	}

	if s.mailer != nil && beneficiary.Email != "" {
		if err := s.mailer.SendEmail(ctx, &email.EmailRequest{
			To:      beneficiary.Email,
			Subject: fmt.Sprintf("Your %s coupon from %s", coupon.Title, utils.AppName),
			Body:    message,
		}); err != nil {
			s.logger.WithError(err).WithCouponCode(coupon.Code).Warn("Coupon email delivery failed")
		}
	}

	s.logger.LogCouponEvent(coupon.Code, "coupon_sent", map[string]interface{}{
		"phone": utils.MaskPhone(req.Phone),
	})

	return nil
}

func (s *couponService) AssignPartner(ctx context.Context, couponID, partnerID primitive.ObjectID) error {
	partner, err := s.partnerRepo.GetByID(ctx, partnerID)
	if err != nil {
		return err
	}
	if partner.Status != models.PartnerStatusApproved || !partner.IsActive {
		return fmt.Errorf("partner is not accepting coupons")
	}

	coupon, err := s.couponRepo.GetByID(ctx, couponID)
	if err != nil {
		return err
	}
	if coupon.Status != models.CouponStatusActive {
		return fmt.Errorf("only active coupons can be reassigned")
	}

	if err := s.couponRepo.Update(ctx, couponID, map[string]interface{}{
		"partner": partnerID,
	}); err != nil {
		return err
	}

	s.logger.LogCouponEvent(coupon.Code, "partner_assigned", map[string]interface{}{
		"partner_id": partnerID.Hex(),
	})

	return nil
}

func (s *couponService) Reject(ctx context.Context, couponID primitive.ObjectID, reason string) error {
	if reason == "" {
		return fmt.Errorf("rejection reason is required")
	}

	coupon, err := s.couponRepo.GetByID(ctx, couponID)
	if err != nil {
		return err
	}
	if coupon.Status == models.CouponStatusRedeemed {
		return fmt.Errorf("redeemed coupons cannot be rejected")
	}

	if err := s.couponRepo.Update(ctx, couponID, map[string]interface{}{
		"status":       models.CouponStatusInactive,
		"rejected_for": reason,
	}); err != nil {
		return err
	}

	s.logger.LogCouponEvent(coupon.Code, "coupon_rejected", map[string]interface{}{
		"reason": reason,
	})

	return nil
}

func (s *couponService) ListMine(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Coupon, *utils.PaginationMeta, error) {
	coupons, total, err := s.couponRepo.GetByPurchaser(ctx, userID, params)
	if err != nil {
		return nil, nil, err
	}
	return coupons, utils.CreatePaginationMeta(params, total), nil
}

func (s *couponService) ListByPartner(ctx context.Context, partnerID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Coupon, *utils.PaginationMeta, error) {
	coupons, total, err := s.couponRepo.GetByPartner(ctx, partnerID, params)
	if err != nil {
		return nil, nil, err
	}
	return coupons, utils.CreatePaginationMeta(params, total), nil
}

func (s *couponService) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Coupon, *utils.PaginationMeta, error) {
	coupons, total, err := s.couponRepo.List(ctx, params)
	if err != nil {
		return nil, nil, err
	}
	return coupons, utils.CreatePaginationMeta(params, total), nil
}
