package transaction

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	transactions := router.Group("/transactions")
	transactions.GET("", ListTransactions)
	transactions.POST("", CreateTransaction)
	transactions.GET("/export", ExportTransactions)
	transactions.POST("/import", ImportTransactions)
	transactions.GET("/:id", GetTransaction)
	transactions.PUT("/:id", UpdateTransaction)
	transactions.DELETE("/:id", DeleteTransaction)
}
