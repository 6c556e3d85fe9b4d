package handlers

import (
	"carefund/internal/middleware"
	"carefund/internal/services"
	"carefund/internal/utils"

	"github.com/gin-gonic/gin"
)

type CampaignHandler struct {
	campaignService services.CampaignService
}

func NewCampaignHandler(campaignService services.CampaignService) *CampaignHandler {
	return &CampaignHandler{campaignService: campaignService}
}

// ListActive is the public campaign browse endpoint, optionally filtered by
// category.
func (h *CampaignHandler) ListActive(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	category := c.Query("category")

	campaigns, meta, err := h.campaignService.ListActive(c.Request.Context(), category, params)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Campaigns retrieved", campaigns, paginationMeta(meta))
}

func (h *CampaignHandler) Get(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	campaign, err := h.campaignService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Campaign retrieved", campaign)
}

func (h *CampaignHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var req services.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	campaign, err := h.campaignService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Campaign submitted for review", campaign)
}

func (h *CampaignHandler) Update(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var req services.UpdateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	campaign, err := h.campaignService.Update(c.Request.Context(), id, userID, middleware.IsAdmin(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Campaign updated", campaign)
}

func (h *CampaignHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	params := utils.GetPaginationParams(c)
	campaigns, meta, err := h.campaignService.ListMine(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Campaigns retrieved", campaigns, paginationMeta(meta))
}

func (h *CampaignHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	campaigns, meta, err := h.campaignService.List(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Campaigns retrieved", campaigns, paginationMeta(meta))
}

func (h *CampaignHandler) Approve(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Notes string `json:"notes"`
	}
	c.ShouldBindJSON(&req)

	if err := h.campaignService.Approve(c.Request.Context(), id, req.Notes); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Campaign approved", nil)
}

func (h *CampaignHandler) Reject(c *gin.Context) {
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

	if err := h.campaignService.Reject(c.Request.Context(), id, req.Reason); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Campaign rejected", nil)
}

func (h *CampaignHandler) Pause(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.campaignService.Pause(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Campaign paused", nil)
}

func (h *CampaignHandler) Resume(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.campaignService.Resume(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Campaign resumed", nil)
}
