package handlers

import (
	"carefund/internal/middleware"
	"carefund/internal/models"
	"carefund/internal/services"
	"carefund/internal/utils"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentService services.PaymentService
}

func NewPaymentHandler(paymentService services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// CreateOrder opens a gateway charge for a pending donation. The response
// carries what the payment widget needs (order id, key, client secret or
// UPI handle depending on the gateway).
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	charge, err := h.paymentService.CreateOrder(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Payment order created", charge)
}

// The per-gateway aliases pin the gateway server-side so older clients that
// post to /payments/razorpay/create-order or /payments/stripe/create-intent
// cannot be redirected to a different processor by the request body.
func (h *PaymentHandler) RazorpayCreateOrder(c *gin.Context) {
	h.createOrderFor(c, models.GatewayRazorpay)
}

func (h *PaymentHandler) StripeCreateIntent(c *gin.Context) {
	h.createOrderFor(c, models.GatewayStripe)
}

func (h *PaymentHandler) UPIProcess(c *gin.Context) {
	h.createOrderFor(c, models.GatewayUPI)
}

func (h *PaymentHandler) createOrderFor(c *gin.Context, gateway models.PaymentGateway) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}
	req.Gateway = gateway

	charge, err := h.paymentService.CreateOrder(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Payment order created", charge)
}

// Verify is the checkout callback: the client posts the gateway's
// order/payment/signature triple and gets the settled donation back.
func (h *PaymentHandler) Verify(c *gin.Context) {
	var req services.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	donation, err := h.paymentService.Verify(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Payment verified", donation)
}

// RazorpayVerify accepts the field names the Razorpay checkout widget posts
// on redirect.
func (h *PaymentHandler) RazorpayVerify(c *gin.Context) {
	var req struct {
		OrderID   string `json:"razorpay_order_id" binding:"required"`
		PaymentID string `json:"razorpay_payment_id"`
		Signature string `json:"razorpay_signature"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	h.verify(c, &services.VerifyPaymentRequest{
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
		Signature: req.Signature,
	})
}

// StripeConfirm verifies a Stripe intent after the client-side confirmation.
func (h *PaymentHandler) StripeConfirm(c *gin.Context) {
	var req struct {
		PaymentIntentID string `json:"paymentIntentId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	h.verify(c, &services.VerifyPaymentRequest{OrderID: req.PaymentIntentID})
}

// VerifyByID verifies the order named in the path. The body may carry the
// gateway payment id and signature when the gateway requires them.
func (h *PaymentHandler) VerifyByID(c *gin.Context) {
	var req services.VerifyPaymentRequest
	c.ShouldBindJSON(&req)
	req.OrderID = c.Param("id")

	h.verify(c, &req)
}

func (h *PaymentHandler) verify(c *gin.Context, req *services.VerifyPaymentRequest) {
	donation, err := h.paymentService.Verify(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Payment verified", donation)
}

// Get returns one payment record; only its owner or an admin may read it.
func (h *PaymentHandler) Get(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	record, err := h.paymentService.GetByID(c.Request.Context(), id, userID, middleware.IsAdmin(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Payment retrieved", record)
}

// RefundByPayment refunds through the payment record id. Admin only.
func (h *PaymentHandler) RefundByPayment(c *gin.Context) {
	paymentID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "refund reason is required")
		return
	}

	if err := h.paymentService.RefundPayment(c.Request.Context(), paymentID, req.Reason); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Refund processed", nil)
}

func (h *PaymentHandler) Refund(c *gin.Context) {
	donationID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "refund reason is required")
		return
	}

	if err := h.paymentService.Refund(c.Request.Context(), donationID, req.Reason); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Refund processed", nil)
}

// Methods lists the gateways this deployment accepts.
func (h *PaymentHandler) Methods(c *gin.Context) {
	utils.SuccessResponse(c, "Payment methods retrieved", gin.H{"gateways": h.paymentService.Methods()})
}

func (h *PaymentHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	params := utils.GetPaginationParams(c)
	payments, meta, err := h.paymentService.ListByUser(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Payments retrieved", payments, paginationMeta(meta))
}
