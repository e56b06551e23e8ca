package user

import (
	"finance-tracker-backend/internal/middleware"
	"finance-tracker-backend/internal/policy"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/users", middleware.RequireAction(policy.AdminListUsers), ListUsers)
	router.PATCH("/users/:id", middleware.RequireAction(policy.AdminUpdateUser), UpdateUser)
	router.DELETE("/users/:id", middleware.RequireAction(policy.AdminDeleteUser), DeleteUser)
}
