package handlers

import (
	"time"

	"carefund/internal/middleware"
	"carefund/internal/services"
	"carefund/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CouponHandler struct {
	couponService services.CouponService
}

func NewCouponHandler(couponService services.CouponService) *CouponHandler {
	return &CouponHandler{couponService: couponService}
}

// ListPackages is the public sponsorship catalogue.
func (h *CouponHandler) ListPackages(c *gin.Context) {
	packages, err := h.couponService.ListPackages(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Packages retrieved", packages)
}

func (h *CouponHandler) Purchase(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var req services.PurchaseCouponsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	result, err := h.couponService.Purchase(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Coupon order created", result)
}

func (h *CouponHandler) VerifyPurchase(c *gin.Context) {
	var req services.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	coupons, err := h.couponService.VerifyPurchase(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Coupons issued", coupons)
}

// GetByCode resolves a coupon code scanned from its QR. Non-redeemable
// coupons still return 200 with isRedeemable=false and the reason.
func (h *CouponHandler) GetByCode(c *gin.Context) {
	coupon, err := h.couponService.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}

	redeemable, reason := coupon.RedeemabilityReason(time.Now())
	utils.SuccessResponse(c, "Coupon retrieved", gin.H{
		"coupon":       coupon,
		"isRedeemable": redeemable,
		"reason":       reason,
	})
}

// Validate is the POST-body counterpart of GetByCode.
func (h *CouponHandler) Validate(c *gin.Context) {
	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "coupon code is required")
		return
	}

	coupon, err := h.couponService.GetByCode(c.Request.Context(), req.Code)
	if err != nil {
		respondError(c, err)
		return
	}

	redeemable, reason := coupon.RedeemabilityReason(time.Now())
	utils.SuccessResponse(c, "Coupon validated", gin.H{
		"coupon":       coupon,
		"isRedeemable": redeemable,
		"reason":       reason,
	})
}

func (h *CouponHandler) Get(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	coupon, err := h.couponService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Coupon retrieved", coupon)
}

func (h *CouponHandler) Create(c *gin.Context) {
	var req services.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	coupon, err := h.couponService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Coupon created", coupon)
}

func (h *CouponHandler) Update(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	coupon, err := h.couponService.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Coupon updated", coupon)
}

func (h *CouponHandler) Delete(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.couponService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Coupon deleted", nil)
}

// Analytics reports per-coupon usage and redemption history.
func (h *CouponHandler) Analytics(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	coupon, err := h.couponService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	remaining := -1
	if !coupon.Usage.IsUnlimited {
		remaining = coupon.Usage.MaxUses - coupon.Usage.UsedCount
		if remaining < 0 {
			remaining = 0
		}
	}

	utils.SuccessResponse(c, "Coupon analytics retrieved", gin.H{
		"code":          coupon.Code,
		"status":        coupon.Status,
		"usedCount":     coupon.Usage.UsedCount,
		"maxUses":       coupon.Usage.MaxUses,
		"isUnlimited":   coupon.Usage.IsUnlimited,
		"remainingUses": remaining,
		"redemptions":   coupon.Redemptions,
	})
}

func (h *CouponHandler) Redeem(c *gin.Context) {
	vendorID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var req services.RedeemCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	coupon, err := h.couponService.Redeem(c.Request.Context(), vendorID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Coupon redeemed", coupon)
}

func (h *CouponHandler) Send(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var req services.SendCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	if err := h.couponService.Send(c.Request.Context(), userID, &req); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Coupon sent to beneficiary", nil)
}

func (h *CouponHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	params := utils.GetPaginationParams(c)
	coupons, meta, err := h.couponService.ListMine(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Coupons retrieved", coupons, paginationMeta(meta))
}

func (h *CouponHandler) ListByPartner(c *gin.Context) {
	partnerID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	coupons, meta, err := h.couponService.ListByPartner(c.Request.Context(), partnerID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Coupons retrieved", coupons, paginationMeta(meta))
}

func (h *CouponHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	coupons, meta, err := h.couponService.List(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Coupons retrieved", coupons, paginationMeta(meta))
}

func (h *CouponHandler) AssignPartner(c *gin.Context) {
	couponID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		PartnerID string `json:"partnerId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "partner id is required")
		return
	}

	partnerID, err := primitive.ObjectIDFromHex(req.PartnerID)
	if err != nil {
		utils.BadRequestResponse(c, "invalid partner id")
		return
	}

	if err := h.couponService.AssignPartner(c.Request.Context(), couponID, partnerID); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Partner assigned", nil)
}

func (h *CouponHandler) Reject(c *gin.Context) {
	couponID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "rejection reason is required")
		return
	}

	if err := h.couponService.Reject(c.Request.Context(), couponID, req.Reason); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Coupon rejected", nil)
}
