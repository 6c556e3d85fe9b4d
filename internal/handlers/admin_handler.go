package handlers

import (
	"fmt"
	"time"

	"carefund/internal/models"
	"carefund/internal/services"
	"carefund/internal/utils"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminService services.AdminService
}

func NewAdminHandler(adminService services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.adminService.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Dashboard stats retrieved", stats)
}

func (h *AdminHandler) Analytics(c *gin.Context) {
	analytics, err := h.adminService.Analytics(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Analytics retrieved", analytics)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	role := models.UserRole(c.Query("role"))

	users, meta, err := h.adminService.ListUsers(c.Request.Context(), role, params)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Users retrieved", users, paginationMeta(meta))
}

func (h *AdminHandler) ActivateUser(c *gin.Context) {
	h.setUserActive(c, true, "User activated")
}

func (h *AdminHandler) SuspendUser(c *gin.Context) {
	h.setUserActive(c, false, "User suspended")
}

func (h *AdminHandler) setUserActive(c *gin.Context, active bool, message string) {
	userID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.adminService.SetUserActive(c.Request.Context(), userID, active); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, message, nil)
}

func (h *AdminHandler) CreateAdmin(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	user, err := h.adminService.CreateAdmin(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Admin account created", user)
}

func (h *AdminHandler) AssignRole(c *gin.Context) {
	userID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "role is required")
		return
	}

	if err := h.adminService.AssignRole(c.Request.Context(), userID, models.UserRole(req.Role)); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Role assigned", nil)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	userID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.adminService.DeleteUser(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "User deleted", nil)
}

// FinancialReport summarizes donation money movement over a date range.
func (h *AdminHandler) FinancialReport(c *gin.Context) {
	from, to, ok := reportRange(c)
	if !ok {
		return
	}

	report, err := h.adminService.FinancialReport(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Financial report retrieved", report)
}

// DonationReport streams the xlsx workbook for the requested date range.
func (h *AdminHandler) DonationReport(c *gin.Context) {
	from, to, ok := reportRange(c)
	if !ok {
		return
	}

	status := models.DonationStatus(c.Query("status"))

	report, err := h.adminService.DonationReport(c.Request.Context(), from, to, status)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("donations-%s.xlsx", time.Now().Format("20060102-150405"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", report)
}

// reportRange parses from/to query params (2006-01-02), defaulting to the
// last month, with the end date made inclusive.
func reportRange(c *gin.Context) (time.Time, time.Time, bool) {
	from, err := time.Parse("2006-01-02", c.DefaultQuery("from", time.Now().AddDate(0, -1, 0).Format("2006-01-02")))
	if err != nil {
		utils.BadRequestResponse(c, "invalid from date")
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse("2006-01-02", c.DefaultQuery("to", time.Now().Format("2006-01-02")))
	if err != nil {
		utils.BadRequestResponse(c, "invalid to date")
		return time.Time{}, time.Time{}, false
	}
	to = to.Add(24*time.Hour - time.Second)
	return from, to, true
}
