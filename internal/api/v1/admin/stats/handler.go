package stats

import (
	"net/http"

	"finance-tracker-backend/internal/services"
	"finance-tracker-backend/internal/utils"
	"finance-tracker-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetStats godoc
// @Summary Aggregate statistics
// @Description Counts of users, categories, transactions, budgets and unread notifications plus income and expense totals. Admin only.
// @Tags admin
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.Response{data=services.AdminStats}
// @Failure 500 {object} utils.Response
// @Router /admin/stats [get]
func GetStats(c *gin.Context) {
	stats, err := services.GetAdminStats(c.Request.Context())
	if err != nil {
		logger.Log.Error("Failed to compute stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to compute stats"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Stats retrieved successfully", stats))
}
