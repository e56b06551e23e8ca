package budget

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	budgets := router.Group("/budgets")
	budgets.GET("", ListBudgets)
	budgets.POST("", CreateBudget)
	budgets.GET("/summary", BudgetSummary)
	budgets.PUT("/:id", UpdateBudget)
	budgets.DELETE("/:id", DeleteBudget)
}
