package category

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	categories := router.Group("/categories")
	categories.GET("", ListCategories)
	categories.POST("", CreateCategory)
	categories.PUT("/:id", UpdateCategory)
	categories.DELETE("/:id", DeleteCategory)
}
