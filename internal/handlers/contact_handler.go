package handlers

import (
	"carefund/internal/middleware"
	"carefund/internal/models"
	"carefund/internal/services"
	"carefund/internal/utils"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactService services.ContactService
}

func NewContactHandler(contactService services.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Submit is the public contact form endpoint.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req services.SubmitQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	query, err := h.contactService.Submit(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Query submitted, we will get back to you", query)
}

func (h *ContactHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	status := models.QueryStatus(c.Query("status"))

	queries, meta, err := h.contactService.List(c.Request.Context(), status, params)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Queries retrieved", queries, paginationMeta(meta))
}

func (h *ContactHandler) Get(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	query, err := h.contactService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Query retrieved", query)
}

func (h *ContactHandler) Respond(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	adminID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var req struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "response message is required")
		return
	}

	query, err := h.contactService.Respond(c.Request.Context(), id, adminID, req.Message)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Response recorded", query)
}

func (h *ContactHandler) Close(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.contactService.Close(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Query closed", nil)
}

func (h *ContactHandler) Delete(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.contactService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Query deleted", nil)
}
