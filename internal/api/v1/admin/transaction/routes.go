package transaction

import (
	"finance-tracker-backend/internal/middleware"
	"finance-tracker-backend/internal/policy"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup) {
	transactions := router.Group("/transactions", middleware.RequireAction(policy.AdminListTransactions))
	transactions.GET("", ListTransactions)
	transactions.GET("/export", ExportTransactions)
}
