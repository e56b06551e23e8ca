package user

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	users.GET("/me", GetProfile)
	users.PUT("/me", UpdateProfile)
	users.DELETE("/me", DeleteAccount)
}
