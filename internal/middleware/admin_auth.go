package middleware

import (
	"net/http"

	"finance-tracker-backend/internal/policy"
	"finance-tracker-backend/internal/utils"
	"finance-tracker-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequireAction rejects callers whose role is not granted action by the
// policy table. It must run after AuthMiddleware.
func RequireAction(action policy.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := CurrentActor(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "User not found in context"))
			return
		}

		if !policy.RoleAllowed(actor.Role, action) {
			logger.Log.Warn("Unauthorized admin access attempt",
				zap.Uint("user_id", actor.ID),
				zap.String("role", actor.Role),
				zap.String("action", string(action)),
				zap.String("path", c.Request.URL.Path),
			)
			c.AbortWithStatusJSON(http.StatusForbidden, utils.NewErrorResponse(http.StatusForbidden, "Forbidden: Admins only"))
			return
		}

		c.Next()
	}
}

// AdminAuthMiddleware authenticates the caller and requires the admin role.
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticate(c) {
			return
		}

		actor, _ := CurrentActor(c)
		if !actor.IsAdmin() {
			logger.Log.Warn("Unauthorized admin access attempt",
				zap.Uint("user_id", actor.ID),
				zap.String("path", c.Request.URL.Path),
			)
			c.AbortWithStatusJSON(http.StatusForbidden, utils.NewErrorResponse(http.StatusForbidden, "Forbidden: Admins only"))
			return
		}

		c.Next()
	}
}
