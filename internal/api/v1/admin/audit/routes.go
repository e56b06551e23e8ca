package audit

import (
	"finance-tracker-backend/internal/middleware"
	"finance-tracker-backend/internal/policy"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/audit-logs", middleware.RequireAction(policy.AdminListAuditLogs), ListAuditLogs)
}
