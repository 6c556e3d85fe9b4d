package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"carefund/internal/models"
	"carefund/internal/repositories/interfaces"
	"carefund/internal/utils"
	"carefund/pkg/logger"
	"carefund/pkg/payment"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrTestGatewayDisabled is returned when the zero-cost test gateway is hit
// outside development.
var ErrTestGatewayDisabled = errors.New("test gateway is disabled in this environment")

type PaymentService interface {
	// CreateOrder opens a gateway charge for a pending donation and records
	// the correlation id so the later verification callback can be matched.
	CreateOrder(ctx context.Context, userID primitive.ObjectID, req *CreateOrderRequest) (*payment.ChargeResult, error)
	Verify(ctx context.Context, req *VerifyPaymentRequest) (*models.Donation, error)
	Refund(ctx context.Context, donationID primitive.ObjectID, reason string) error

	// RefundPayment refunds by payment record id, resolving the donation the
	// payment settled.
	RefundPayment(ctx context.Context, paymentID primitive.ObjectID, reason string) error

	// GetByID returns a payment record; non-admin callers may only read
	// their own.
	GetByID(ctx context.Context, id, actorID primitive.ObjectID, isAdmin bool) (*models.Payment, error)

	ListByUser(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Payment, *utils.PaginationMeta, error)

	// Methods lists the gateways available to this deployment.
	Methods() []string
}

type CreateOrderRequest struct {
	DonationID string                `json:"donationId" validate:"required"`
	Gateway    models.PaymentGateway `json:"gateway" validate:"required"`
	UPIHandle  string                `json:"upiHandle" validate:"omitempty,upi_handle"`
}

type VerifyPaymentRequest struct {
	OrderID   string `json:"orderId" validate:"required"`
	PaymentID string `json:"paymentId"`
	Signature string `json:"signature"`
}

type paymentService struct {
	paymentRepo  interfaces.PaymentRepository
	donationRepo interfaces.DonationRepository
	donations    DonationService
	providers    *payment.Registry
	logger       *logger.Logger
	production   bool
}

func NewPaymentService(
	paymentRepo interfaces.PaymentRepository,
	donationRepo interfaces.DonationRepository,
	donations DonationService,
	providers *payment.Registry,
	log *logger.Logger,
	production bool,
) PaymentService {
	return &paymentService{
		paymentRepo:  paymentRepo,
		donationRepo: donationRepo,
		donations:    donations,
		providers:    providers,
		logger:       log,
		production:   production,
	}
}

func (s *paymentService) CreateOrder(ctx context.Context, userID primitive.ObjectID, req *CreateOrderRequest) (*payment.ChargeResult, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	if !models.ValidGateway(req.Gateway) {
		return nil, fmt.Errorf("unknown payment gateway %q", req.Gateway)
	}
	if req.Gateway == models.GatewayTest && s.production {
		return nil, ErrTestGatewayDisabled
	}

	donationID, err := primitive.ObjectIDFromHex(req.DonationID)
	if err != nil {
		return nil, fmt.Errorf("invalid donation id")
	}

	donation, err := s.donationRepo.GetByID(ctx, donationID)
	if err != nil {
		return nil, err
	}
	if donation.Status != models.DonationStatusPending {
		return nil, fmt.Errorf("donation is not awaiting payment")
	}

	provider, err := s.providers.Get(string(req.Gateway))
	if err != nil {
		return nil, err
	}

	charge, err := provider.CreateCharge(ctx, &payment.ChargeRequest{
		Amount:      donation.Amount,
		Currency:    donation.Currency,
		Receipt:     donationID.Hex(),
		Description: "Donation " + donationID.Hex(),
		CustomerID:  userID.Hex(),
		UPIHandle:   req.UPIHandle,
		Metadata: map[string]interface{}{
			"donation_id": donationID.Hex(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway charge: %w", err)
	}

	record := &models.Payment{
		UserID:     userID,
		CampaignID: donation.Campaign,
		DonationID: &donationID,
		Gateway:    req.Gateway,
		OrderID:    charge.OrderID,
		Amount:     donation.Amount,
		Currency:   donation.Currency,
		Status:     models.PaymentStatusCreated,
	}

	if err := s.paymentRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	s.logger.LogPaymentEvent(string(req.Gateway), "order_created", charge.OrderID, donation.Amount)

	// The test gateway settles synchronously; everything else waits for the
	// client to come back through Verify.
	if charge.Status == payment.ChargeStatusSucceeded {
		if _, err := s.settle(ctx, record, charge.OrderID, charge.OrderID); err != nil {
			return nil, err
		}
	}

	return charge, nil
}

func (s *paymentService) Verify(ctx context.Context, req *VerifyPaymentRequest) (*models.Donation, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	record, err := s.paymentRepo.GetByOrderID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	if record.Status == models.PaymentStatusCompleted {
		// Idempotent: a retried callback returns the settled donation.
		if record.DonationID != nil {
			return s.donationRepo.GetByID(ctx, *record.DonationID)
		}
		return nil, fmt.Errorf("payment already settled")
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
		s.markFailed(ctx, record, err)
		return nil, fmt.Errorf("payment verification failed: %w", err)
	}

	// UPI submissions stay pending until manual reconciliation; the donation
	// is not completed yet.
	if result.Status == payment.ChargeStatusPending {
		if err := s.paymentRepo.Update(ctx, record.ID, map[string]interface{}{
			"status":                 models.PaymentStatusPending,
			"gateway_transaction_id": result.PaymentID,
		}); err != nil {
			return nil, err
		}
		if record.DonationID == nil {
			return nil, fmt.Errorf("payment has no donation attached")
		}
		return s.donationRepo.GetByID(ctx, *record.DonationID)
	}

	return s.settle(ctx, record, req.OrderID, result.PaymentID)
}

func (s *paymentService) Refund(ctx context.Context, donationID primitive.ObjectID, reason string) error {
	donation, err := s.donationRepo.GetByID(ctx, donationID)
	if err != nil {
		return err
	}
	if donation.PaymentDetails == nil {
		return fmt.Errorf("donation has no settled payment")
	}

	record, err := s.paymentRepo.GetByOrderID(ctx, donation.PaymentDetails.TransactionID)
	if err != nil {
		return err
	}

	provider, err := s.providers.Get(string(record.Gateway))
	if err != nil {
		return err
	}

	refund, err := provider.Refund(ctx, &payment.RefundRequest{
		PaymentID: record.GatewayTxnID,
		Amount:    record.Amount,
		Reason:    reason,
	})
	if err != nil {
		return fmt.Errorf("gateway refund failed: %w", err)
	}

	now := time.Now()
	if err := s.paymentRepo.Update(ctx, record.ID, map[string]interface{}{
		"status":        models.PaymentStatusRefunded,
		"refund_id":     refund.RefundID,
		"refund_amount": refund.Amount,
		"refunded_at":   now,
	}); err != nil {
		return err
	}

	if err := s.donations.Refund(ctx, donationID, reason); err != nil {
		return err
	}

	s.logger.LogPaymentEvent(string(record.Gateway), "refunded", refund.RefundID, refund.Amount)

	return nil
}

func (s *paymentService) RefundPayment(ctx context.Context, paymentID primitive.ObjectID, reason string) error {
	record, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return err
	}
	if record.DonationID == nil {
		return fmt.Errorf("payment has no donation attached")
	}
	return s.Refund(ctx, *record.DonationID, reason)
}

func (s *paymentService) GetByID(ctx context.Context, id, actorID primitive.ObjectID, isAdmin bool) (*models.Payment, error) {
	record, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && record.UserID != actorID {
		return nil, fmt.Errorf(utils.ErrForbidden)
	}
	return record, nil
}

func (s *paymentService) ListByUser(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Payment, *utils.PaginationMeta, error) {
	payments, total, err := s.paymentRepo.GetByUser(ctx, userID, params)
	if err != nil {
		return nil, nil, err
	}
	return payments, utils.CreatePaginationMeta(params, total), nil
}

func (s *paymentService) Methods() []string {
	return s.providers.Names()
}

func (s *paymentService) settle(ctx context.Context, record *models.Payment, orderID, paymentID string) (*models.Donation, error) {
	now := time.Now()
	if err := s.paymentRepo.Update(ctx, record.ID, map[string]interface{}{
		"status":                 models.PaymentStatusCompleted,
		"gateway_transaction_id": paymentID,
		"processed_at":           now,
	}); err != nil {
		return nil, err
	}

	if record.DonationID == nil {
		return nil, fmt.Errorf("payment has no donation attached")
	}

	donation, err := s.donations.Complete(ctx, *record.DonationID, &models.PaymentDetails{
		Gateway:       record.Gateway,
		TransactionID: orderID,
		PaymentID:     paymentID,
	})
	if err != nil {
		return nil, err
	}

	s.logger.LogPaymentEvent(string(record.Gateway), "verified", orderID, record.Amount)

	return donation, nil
}

func (s *paymentService) markFailed(ctx context.Context, record *models.Payment, cause error) {
	if err := s.paymentRepo.Update(ctx, record.ID, map[string]interface{}{
		"status":         models.PaymentStatusFailed,
		"failure_reason": cause.Error(),
	}); err != nil {
		s.logger.WithError(err).Error("Failed to mark payment failed")
	}

	if record.DonationID != nil {
		if err := s.donations.Fail(ctx, *record.DonationID, cause.Error()); err != nil {
			s.logger.WithError(err).Error("Failed to mark donation failed")
		}
	}
}
