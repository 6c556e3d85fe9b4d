package services

import (
	"context"
	"strings"
	"testing"

	"carefund/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type donationFixture struct {
	svc          DonationService
	donationRepo *fakeDonationRepo
	campaignRepo *fakeCampaignRepo
	campaign     *models.Campaign
}

func newDonationFixture(t *testing.T) *donationFixture {
	donationRepo := newFakeDonationRepo()
	campaignRepo := newFakeCampaignRepo()

	campaign := &models.Campaign{
		Title:       "Winter meals for daily-wage families",
		Description: "Hot meals through the cold months",
		Category:    "food",
		GoalAmount:  50000,
		Status:      models.CampaignStatusActive,
	}
	require.NoError(t, campaignRepo.Create(context.Background(), campaign))

	return &donationFixture{
		svc:          NewDonationService(donationRepo, campaignRepo, newTestLogger(t)),
		donationRepo: donationRepo,
		campaignRepo: campaignRepo,
		campaign:     campaign,
	}
}

func (fx *donationFixture) guestRequest(amount float64) *CreateDonationRequest {
	return &CreateDonationRequest{
		CampaignID: fx.campaign.ID.Hex(),
		Donor: &models.DonorDetails{
			Name:  "Ravi Menon",
			Email: "ravi@example.com",
			Phone: "9876543210",
		},
		Amount: amount,
	}
}

func TestCreateGuestDonation(t *testing.T) {
	fx := newDonationFixture(t)

	donation, err := fx.svc.Create(context.Background(), fx.guestRequest(500))
	require.NoError(t, err)

	assert.Equal(t, models.DonationStatusPending, donation.Status)
	assert.Equal(t, "INR", donation.Currency)
	assert.Nil(t, donation.Donor)
	assert.Equal(t, "ravi@example.com", donation.DonorDetails.Email)
}

func TestCreateDonationRequiresGuestDetails(t *testing.T) {
	fx := newDonationFixture(t)

	req := fx.guestRequest(500)
	req.Donor = nil
	_, err := fx.svc.Create(context.Background(), req)
	assert.ErrorContains(t, err, "donor details are required")
}

func TestCreateDonationForLoggedInDonor(t *testing.T) {
	fx := newDonationFixture(t)

	donorID := primitive.NewObjectID()
	req := fx.guestRequest(500)
	req.Donor = nil
	req.DonorID = &donorID

	donation, err := fx.svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, donorID, *donation.Donor)
}

func TestCreateDonationBelowMinimum(t *testing.T) {
	fx := newDonationFixture(t)

	_, err := fx.svc.Create(context.Background(), fx.guestRequest(5))
	assert.Error(t, err)
}

func TestCreateDonationInactiveCampaign(t *testing.T) {
	fx := newDonationFixture(t)
	ctx := context.Background()

	require.NoError(t, fx.campaignRepo.Update(ctx, fx.campaign.ID, map[string]interface{}{
		"status": models.CampaignStatusPaused,
	}))

	_, err := fx.svc.Create(ctx, fx.guestRequest(500))
	assert.ErrorContains(t, err, "not accepting donations")
}

func TestCompleteDonation(t *testing.T) {
	fx := newDonationFixture(t)
	ctx := context.Background()

	donation, err := fx.svc.Create(ctx, fx.guestRequest(1000))
	require.NoError(t, err)

	completed, err := fx.svc.Complete(ctx, donation.ID, &models.PaymentDetails{
		Gateway:       models.GatewayRazorpay,
		TransactionID: "order_abc",
		PaymentID:     "pay_xyz",
	})
	require.NoError(t, err)

	assert.Equal(t, models.DonationStatusCompleted, completed.Status)
	assert.True(t, strings.HasPrefix(completed.ReceiptNumber, "CF-"))
	assert.NotNil(t, completed.CompletedAt)

	campaign, err := fx.campaignRepo.GetByID(ctx, fx.campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, campaign.RaisedAmount)
	assert.Equal(t, int64(1), campaign.DonorCount)
}

func TestCompleteDonationTwiceFails(t *testing.T) {
	fx := newDonationFixture(t)
	ctx := context.Background()

	donation, err := fx.svc.Create(ctx, fx.guestRequest(1000))
	require.NoError(t, err)

	details := &models.PaymentDetails{Gateway: models.GatewayTest}
	_, err = fx.svc.Complete(ctx, donation.ID, details)
	require.NoError(t, err)

	_, err = fx.svc.Complete(ctx, donation.ID, details)
	assert.ErrorContains(t, err, "cannot be completed")
}

func TestFailDonation(t *testing.T) {
	fx := newDonationFixture(t)
	ctx := context.Background()

	donation, err := fx.svc.Create(ctx, fx.guestRequest(500))
	require.NoError(t, err)

	require.NoError(t, fx.svc.Fail(ctx, donation.ID, "signature mismatch"))

	got, err := fx.svc.GetByID(ctx, donation.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DonationStatusFailed, got.Status)

	// A failed donation cannot settle afterwards.
	_, err = fx.svc.Complete(ctx, donation.ID, &models.PaymentDetails{Gateway: models.GatewayTest})
	assert.Error(t, err)
}

func TestRefundDonation(t *testing.T) {
	fx := newDonationFixture(t)
	ctx := context.Background()

	donation, err := fx.svc.Create(ctx, fx.guestRequest(1000))
	require.NoError(t, err)

	_, err = fx.svc.Complete(ctx, donation.ID, &models.PaymentDetails{Gateway: models.GatewayTest})
	require.NoError(t, err)

	require.NoError(t, fx.svc.Refund(ctx, donation.ID, "donor request"))

	got, err := fx.svc.GetByID(ctx, donation.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DonationStatusRefunded, got.Status)
	assert.Equal(t, "donor request", got.RefundReason)

	// The raised amount walks back, the donor count does not.
	campaign, err := fx.campaignRepo.GetByID(ctx, fx.campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, campaign.RaisedAmount)
	assert.Equal(t, int64(1), campaign.DonorCount)
}

func TestRefundPendingDonationFails(t *testing.T) {
	fx := newDonationFixture(t)
	ctx := context.Background()

	donation, err := fx.svc.Create(ctx, fx.guestRequest(500))
	require.NoError(t, err)

	err = fx.svc.Refund(ctx, donation.ID, "donor request")
	assert.ErrorContains(t, err, "only completed donations")
}

func TestExportDonorReport(t *testing.T) {
	fx := newDonationFixture(t)
	ctx := context.Background()

	donorID := primitive.NewObjectID()
	req := fx.guestRequest(1000)
	req.DonorID = &donorID

	donation, err := fx.svc.Create(ctx, req)
	require.NoError(t, err)
	_, err = fx.svc.Complete(ctx, donation.ID, &models.PaymentDetails{Gateway: models.GatewayTest})
	require.NoError(t, err)

	data, err := fx.svc.ExportDonorReport(ctx, donorID)
	require.NoError(t, err)
	// xlsx files are zip archives.
	assert.Equal(t, "PK", string(data[:2]))
}
