package notification

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	notifications := router.Group("/notifications")
	notifications.GET("/my", MyNotifications)
	notifications.POST("/check-budgets", CheckBudgets)
	notifications.PUT("/read-all", MarkAllRead)
	notifications.PUT("/read/:id", MarkRead)
	notifications.DELETE("/:id", DeleteNotification)
}
