package handlers

import (
	"carefund/internal/middleware"
	"carefund/internal/services"
	"carefund/internal/utils"

	"github.com/gin-gonic/gin"
)

type WalletHandler struct {
	walletService services.WalletService
}

func NewWalletHandler(walletService services.WalletService) *WalletHandler {
	return &WalletHandler{walletService: walletService}
}

// Get returns the calling vendor's wallet, creating it on first access.
func (h *WalletHandler) Get(c *gin.Context) {
	vendorID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	wallet, err := h.walletService.GetOrCreate(c.Request.Context(), vendorID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Wallet retrieved", wallet)
}

// GetByID returns a wallet by id; only its vendor or an admin may read it.
func (h *WalletHandler) GetByID(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	wallet, err := h.walletService.GetByID(c.Request.Context(), id, userID, middleware.IsAdmin(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Wallet retrieved", wallet)
}

func (h *WalletHandler) TransactionsByID(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	wallet, err := h.walletService.GetByID(c.Request.Context(), id, userID, middleware.IsAdmin(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Transactions retrieved", wallet.Transactions)
}

// CreditCoupon moves a redeemed coupon's value into the vendor wallet.
func (h *WalletHandler) CreditCoupon(c *gin.Context) {
	vendorID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	couponID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	wallet, err := h.walletService.CreditCoupon(c.Request.Context(), vendorID, couponID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Coupon credited to wallet", wallet)
}

func (h *WalletHandler) Transactions(c *gin.Context) {
	vendorID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	txns, err := h.walletService.Transactions(c.Request.Context(), vendorID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Transactions retrieved", txns)
}

// Settle pays out a pending wallet coupon. Admin only.
func (h *WalletHandler) Settle(c *gin.Context) {
	var req services.SettleCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	wallet, err := h.walletService.Settle(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Coupon settled", wallet)
}

func (h *WalletHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	wallets, meta, err := h.walletService.List(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Wallets retrieved", wallets, paginationMeta(meta))
}
