package audit

import (
	"net/http"
	"strconv"
	"strings"

	"finance-tracker-backend/internal/models"
	"finance-tracker-backend/internal/services"
	"finance-tracker-backend/internal/utils"
	"finance-tracker-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuditLogListResponse struct {
	AuditLogs []models.AuditLog `json:"audit_logs"`
	Total     int64             `json:"total"`
	Page      int               `json:"page"`
	Limit     int               `json:"limit"`
}

// ListAuditLogs godoc
// @Summary List audit logs
// @Description Newest-first audit trail. Admin only.
// @Tags admin
// @Produce json
// @Security Bearer
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param user_id query int false "Filter by acting user ID"
// @Param action query string false "Filter by action code, e.g. ADD_TRANSACTION"
// @Success 200 {object} utils.Response{data=AuditLogListResponse}
// @Failure 400 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /admin/audit-logs [get]
func ListAuditLogs(c *gin.Context) {
	page, limit, ok := utils.ParsePagination(c)
	if !ok {
		return
	}

	filter := services.AuditLogFilter{Page: page, Limit: limit}

	if userIDStr, exists := c.GetQuery("user_id"); exists {
		userID, err := strconv.ParseUint(userIDStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid user_id"))
			return
		}
		uid := uint(userID)
		filter.UserID = &uid
	}

	if actionStr, exists := c.GetQuery("action"); exists {
		action := models.AuditAction(strings.ToUpper(actionStr))
		filter.Action = &action
	}

	logs, total, err := services.FindAuditLogs(filter)
	if err != nil {
		logger.Log.Error("Failed to fetch audit logs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch audit logs"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Audit logs retrieved successfully", AuditLogListResponse{
		AuditLogs: logs,
		Total:     total,
		Page:      page,
		Limit:     limit,
	}))
}
