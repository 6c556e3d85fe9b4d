package handlers

import (
	"net/http"

	"carefund/internal/middleware"
	"carefund/internal/models"
	"carefund/internal/services"
	"carefund/internal/utils"

	"github.com/gin-gonic/gin"
)

type DonationHandler struct {
	donationService services.DonationService
	paymentService  services.PaymentService
}

func NewDonationHandler(donationService services.DonationService, paymentService services.PaymentService) *DonationHandler {
	return &DonationHandler{
		donationService: donationService,
		paymentService:  paymentService,
	}
}

// Create opens the donation checkout. Works for guests and logged-in donors;
// when a token is present the donation is attached to the account.
func (h *DonationHandler) Create(c *gin.Context) {
	var req services.CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	if userID, ok := middleware.GetUserID(c); ok {
		req.DonorID = &userID
	}

	donation, err := h.donationService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Donation created, proceed to payment", donation)
}

// CreateTest runs the whole checkout against the test gateway in one call.
// Refused outside development.
func (h *DonationHandler) CreateTest(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var req services.CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}
	req.DonorID = &userID

	donation, err := h.donationService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	// The test provider settles synchronously, so the donation comes back
	// completed.
	if _, err := h.paymentService.CreateOrder(c.Request.Context(), userID, &services.CreateOrderRequest{
		DonationID: donation.ID.Hex(),
		Gateway:    models.GatewayTest,
	}); err != nil {
		respondError(c, err)
		return
	}

	settled, err := h.donationService.GetByID(c.Request.Context(), donation.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Test donation completed", settled)
}

func (h *DonationHandler) Get(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	donation, err := h.donationService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Donation retrieved", donation)
}

// Receipt returns the JSON receipt for a completed donation.
func (h *DonationHandler) Receipt(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	donation, err := h.donationService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if donation.Status != models.DonationStatusCompleted {
		utils.BadRequestResponse(c, "receipts are only issued for completed donations")
		return
	}

	receipt := gin.H{
		"receiptNumber": donation.ReceiptNumber,
		"donationId":    donation.ID.Hex(),
		"campaignId":    donation.Campaign.Hex(),
		"amount":        donation.Amount,
		"currency":      donation.Currency,
		"completedAt":   donation.CompletedAt,
	}
	if donation.PaymentDetails != nil {
		receipt["gateway"] = donation.PaymentDetails.Gateway
		receipt["transactionId"] = donation.PaymentDetails.TransactionID
	}

	utils.SuccessResponse(c, "Receipt retrieved", receipt)
}

func (h *DonationHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	params := utils.GetPaginationParams(c)
	donations, meta, err := h.donationService.ListByDonor(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Donations retrieved", donations, paginationMeta(meta))
}

// MyReport exports the caller's donation history. format=excel streams an
// xlsx; anything else returns the rows as JSON.
func (h *DonationHandler) MyReport(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	if c.DefaultQuery("format", "excel") == "excel" {
		report, err := h.donationService.ExportDonorReport(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="my-donations.xlsx"`)
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", report)
		return
	}

	params := utils.GetPaginationParams(c)
	donations, meta, err := h.donationService.ListByDonor(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Donation report", donations, paginationMeta(meta))
}

func (h *DonationHandler) ListByCampaign(c *gin.Context) {
	campaignID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	donations, meta, err := h.donationService.ListByCampaign(c.Request.Context(), campaignID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Donations retrieved", donations, paginationMeta(meta))
}

func (h *DonationHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	donations, meta, err := h.donationService.List(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Donations retrieved", donations, paginationMeta(meta))
}
