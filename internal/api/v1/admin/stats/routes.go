package stats

import (
	"finance-tracker-backend/internal/middleware"
	"finance-tracker-backend/internal/policy"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/stats", middleware.RequireAction(policy.AdminViewStats), GetStats)
}
