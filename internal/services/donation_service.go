package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"carefund/internal/models"
	"carefund/internal/repositories/interfaces"
	"carefund/internal/utils"
	"carefund/pkg/logger"

	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DonationService interface {
	Create(ctx context.Context, req *CreateDonationRequest) (*models.Donation, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Donation, error)

	// Complete settles a pending donation after gateway verification and
	// moves the campaign counters in the same logical step.
	Complete(ctx context.Context, id primitive.ObjectID, details *models.PaymentDetails) (*models.Donation, error)
	Fail(ctx context.Context, id primitive.ObjectID, reason string) error
	Refund(ctx context.Context, id primitive.ObjectID, reason string) error

	ListByDonor(ctx context.Context, donorID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Donation, *utils.PaginationMeta, error)
	ListByCampaign(ctx context.Context, campaignID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Donation, *utils.PaginationMeta, error)
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Donation, *utils.PaginationMeta, error)

	// ExportReport renders donations in a date range as an xlsx workbook.
	ExportReport(ctx context.Context, from, to time.Time, status models.DonationStatus) ([]byte, error)

	// ExportDonorReport renders one donor's history as an xlsx workbook.
	ExportDonorReport(ctx context.Context, donorID primitive.ObjectID) ([]byte, error)
}

type CreateDonationRequest struct {
	CampaignID  string               `json:"campaignId" validate:"required"`
	DonorID     *primitive.ObjectID  `json:"-"`
	Donor       *models.DonorDetails `json:"donor"`
	Amount      float64              `json:"amount" validate:"required,gte=10"`
	Currency    string               `json:"currency"`
	IsAnonymous bool                 `json:"isAnonymous"`
	Message     string               `json:"message"`
}

type donationService struct {
	donationRepo interfaces.DonationRepository
	campaignRepo interfaces.CampaignRepository
	logger       *logger.Logger
}

func NewDonationService(
	donationRepo interfaces.DonationRepository,
	campaignRepo interfaces.CampaignRepository,
	log *logger.Logger,
) DonationService {
	return &donationService{
		donationRepo: donationRepo,
		campaignRepo: campaignRepo,
		logger:       log,
	}
}

func (s *donationService) Create(ctx context.Context, req *CreateDonationRequest) (*models.Donation, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	if req.Amount > utils.MaxDonationAmount {
		return nil, fmt.Errorf("donation amount exceeds the allowed maximum")
	}

	campaignID, err := primitive.ObjectIDFromHex(req.CampaignID)
	if err != nil {
		return nil, fmt.Errorf("invalid campaign id")
	}

	campaign, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf(utils.ErrCampaignNotFound)
	}
	if !campaign.AcceptsDonations() {
		return nil, fmt.Errorf("campaign is not accepting donations")
	}

	// Guest donations carry donor details inline; logged-in donations carry
	// the donor id.
	if req.DonorID == nil {
		if req.Donor == nil || req.Donor.Email == "" {
			return nil, fmt.Errorf("donor details are required for guest donations")
		}
	}

	currency := req.Currency
	if currency == "" {
		currency = utils.DefaultCurrency
	}

	donation := &models.Donation{
		Campaign:     campaignID,
		Donor:        req.DonorID,
		DonorDetails: req.Donor,
		Amount:       req.Amount,
		Currency:     currency,
		IsAnonymous:  req.IsAnonymous,
		Message:      utils.SanitizeString(req.Message),
		Status:       models.DonationStatusPending,
	}

	if err := s.donationRepo.Create(ctx, donation); err != nil {
		return nil, err
	}

	s.logger.WithDonationID(donation.ID).
		WithField("campaign_id", campaignID.Hex()).
		WithField("amount", donation.Amount).
		Info("Donation created")

	return donation, nil
}

func (s *donationService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Donation, error) {
	return s.donationRepo.GetByID(ctx, id)
}

func (s *donationService) Complete(ctx context.Context, id primitive.ObjectID, details *models.PaymentDetails) (*models.Donation, error) {
	donation, err := s.donationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !donation.CanTransitionTo(models.DonationStatusCompleted) {
		return nil, fmt.Errorf("donation in status %q cannot be completed", donation.Status)
	}

	now := time.Now()
	receipt := newReceiptNumber(now)

	if err := s.donationRepo.Update(ctx, id, map[string]interface{}{
		"status":          models.DonationStatusCompleted,
		"payment_details": details,
		"receipt_number":  receipt,
		"completed_at":    now,
	}); err != nil {
		return nil, err
	}

	newDonor := true
	if donation.Donor != nil {
		count, err := s.donationRepo.CountDonorDonations(ctx, *donation.Donor, donation.Campaign)
		if err == nil && count > 0 {
			newDonor = false
		}
	}

	if err := s.campaignRepo.IncrementRaisedAmount(ctx, donation.Campaign, donation.Amount, newDonor); err != nil {
		// The donation stays settled even if the counter update is lost; the
		// mismatch shows up against the financial report until corrected.
		s.logger.WithError(err).WithDonationID(id).Error("Failed to update campaign totals")
	}

	donation.Status = models.DonationStatusCompleted
	donation.PaymentDetails = details
	donation.ReceiptNumber = receipt
	donation.CompletedAt = &now

	s.logger.WithDonationID(id).WithField("receipt", receipt).Info("Donation completed")

	return donation, nil
}

func (s *donationService) Fail(ctx context.Context, id primitive.ObjectID, reason string) error {
	donation, err := s.donationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !donation.CanTransitionTo(models.DonationStatusFailed) {
		return fmt.Errorf("donation in status %q cannot be failed", donation.Status)
	}

	return s.donationRepo.Update(ctx, id, map[string]interface{}{
		"status":        models.DonationStatusFailed,
		"refund_reason": reason,
	})
}

func (s *donationService) Refund(ctx context.Context, id primitive.ObjectID, reason string) error {
	donation, err := s.donationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !donation.CanTransitionTo(models.DonationStatusRefunded) {
		return fmt.Errorf("only completed donations can be refunded")
	}

	now := time.Now()
	if err := s.donationRepo.Update(ctx, id, map[string]interface{}{
		"status":        models.DonationStatusRefunded,
		"refund_reason": reason,
		"refunded_at":   now,
	}); err != nil {
		return err
	}

	// A refund walks the raised amount back without touching donor_count.
	if err := s.campaignRepo.IncrementRaisedAmount(ctx, donation.Campaign, -donation.Amount, false); err != nil {
		s.logger.WithError(err).WithDonationID(id).Error("Failed to roll back campaign totals")
	}

	s.logger.WithDonationID(id).WithField("reason", reason).Info("Donation refunded")

	return nil
}

func (s *donationService) ListByDonor(ctx context.Context, donorID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Donation, *utils.PaginationMeta, error) {
	donations, total, err := s.donationRepo.GetByDonor(ctx, donorID, params)
	if err != nil {
		return nil, nil, err
	}
	return donations, utils.CreatePaginationMeta(params, total), nil
}

func (s *donationService) ListByCampaign(ctx context.Context, campaignID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Donation, *utils.PaginationMeta, error) {
	donations, total, err := s.donationRepo.GetByCampaign(ctx, campaignID, params)
	if err != nil {
		return nil, nil, err
	}
	return donations, utils.CreatePaginationMeta(params, total), nil
}

func (s *donationService) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Donation, *utils.PaginationMeta, error) {
	donations, total, err := s.donationRepo.List(ctx, params)
	if err != nil {
		return nil, nil, err
	}
	return donations, utils.CreatePaginationMeta(params, total), nil
}

func (s *donationService) ExportReport(ctx context.Context, from, to time.Time, status models.DonationStatus) ([]byte, error) {
	donations, err := s.donationRepo.GetByDateRange(ctx, from, to, status)
	if err != nil {
		return nil, err
	}
	return s.renderWorkbook(donations)
}

func (s *donationService) ExportDonorReport(ctx context.Context, donorID primitive.ObjectID) ([]byte, error) {
	params := &utils.PaginationParams{Page: 1, PageSize: utils.MaxPageSize, Sort: "created_at", Order: "desc"}
	donations, _, err := s.donationRepo.GetByDonor(ctx, donorID, params)
	if err != nil {
		return nil, err
	}
	return s.renderWorkbook(donations)
}

func (s *donationService) renderWorkbook(donations []*models.Donation) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Donations"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"Receipt", "Date", "Campaign", "Donor", "Email", "Amount", "Currency", "Gateway", "Status"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, d := range donations {
		donorName := "Anonymous"
		donorEmail := ""
		if !d.IsAnonymous && d.DonorDetails != nil {
			donorName = d.DonorDetails.Name
			donorEmail = d.DonorDetails.Email
		}

		gateway := ""
		if d.PaymentDetails != nil {
			gateway = string(d.PaymentDetails.Gateway)
		}

		values := []interface{}{
			d.ReceiptNumber,
			d.CreatedAt.Format("2006-01-02 15:04"),
			d.Campaign.Hex(),
			donorName,
			donorEmail,
			d.Amount,
			d.Currency,
			gateway,
			string(d.Status),
		}

		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to render donation report: %w", err)
	}

	s.logger.WithField("rows", len(donations)).Info("Donation report exported")

	return buf.Bytes(), nil
}

func newReceiptNumber(now time.Time) string {
	return fmt.Sprintf("CF-%s-%s", now.Format("20060102"), utils.GenerateRandomNumericString(6))
}
