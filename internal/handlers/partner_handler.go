package handlers

import (
	"io"

	"carefund/internal/middleware"
	"carefund/internal/models"
	"carefund/internal/services"
	"carefund/internal/utils"

	"github.com/gin-gonic/gin"
)

type PartnerHandler struct {
	partnerService services.PartnerService
}

func NewPartnerHandler(partnerService services.PartnerService) *PartnerHandler {
	return &PartnerHandler{partnerService: partnerService}
}

// Directory serves the public partner listings, e.g. /partners/directory/food.
func (h *PartnerHandler) Directory(c *gin.Context) {
	category := models.PartnerCategoryFromPath(c.Param("category"))
	h.directory(c, category)
}

// HealthDirectory lists the approved medical partners.
func (h *PartnerHandler) HealthDirectory(c *gin.Context) {
	h.directory(c, models.PartnerCategoryMedical)
}

// FoodDirectory lists the approved food partners.
func (h *PartnerHandler) FoodDirectory(c *gin.Context) {
	h.directory(c, models.PartnerCategoryFood)
}

func (h *PartnerHandler) directory(c *gin.Context, category models.PartnerCategory) {
	params := utils.GetPaginationParams(c)

	partners, meta, err := h.partnerService.ListDirectory(c.Request.Context(), category, params)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Partners retrieved", partners, paginationMeta(meta))
}

// ListPublic serves the cross-category public listing.
func (h *PartnerHandler) ListPublic(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	partners, meta, err := h.partnerService.ListPublic(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Partners retrieved", partners, paginationMeta(meta))
}

func (h *PartnerHandler) Get(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	partner, err := h.partnerService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Partner retrieved", partner)
}

func (h *PartnerHandler) Register(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var req services.RegisterPartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	partner, err := h.partnerService.Register(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Partner registration submitted for review", partner)
}

func (h *PartnerHandler) Update(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var req services.UpdatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	partner, err := h.partnerService.Update(c.Request.Context(), id, userID, middleware.IsAdmin(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Partner updated", partner)
}

func (h *PartnerHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	partners, err := h.partnerService.ListMine(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Partners retrieved", partners)
}

func (h *PartnerHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	partners, meta, err := h.partnerService.List(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Partners retrieved", partners, paginationMeta(meta))
}

// UploadImage accepts a multipart image for the partner gallery.
func (h *PartnerHandler) UploadImage(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, "image file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, utils.MaxImageSize+1))
	if err != nil {
		utils.BadRequestResponse(c, "failed to read image")
		return
	}

	url, err := h.partnerService.UploadImage(c.Request.Context(), id, userID, middleware.IsAdmin(c), header.Filename, data)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Image uploaded", gin.H{"url": url})
}

func (h *PartnerHandler) Approve(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Notes string `json:"notes"`
	}
	c.ShouldBindJSON(&req)

	if err := h.partnerService.Approve(c.Request.Context(), id, req.Notes); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Partner approved", nil)
}

func (h *PartnerHandler) Reject(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
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

	if err := h.partnerService.Reject(c.Request.Context(), id, req.Reason); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Partner rejected", nil)
}
