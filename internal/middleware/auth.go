package middleware

import (
	"errors"
	"net/http"

	"finance-tracker-backend/internal/models"
	"finance-tracker-backend/internal/policy"
	"finance-tracker-backend/internal/services"
	"finance-tracker-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	userContextKey  = "user"
	tokenContextKey = "token"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if authenticate(c) {
			c.Next()
		}
	}
}

// authenticate resolves the bearer token to an active user and stores it on
// the context. On failure it writes the response, aborts and returns false.
func authenticate(c *gin.Context) bool {
	tokenString, err := utils.ExtractToken(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, err.Error()))
		return false
	}

	isDenylisted, err := services.IsDenylisted(tokenString)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to check token status"))
		return false
	}
	if isDenylisted {
		c.AbortWithStatusJSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Token has been revoked"))
		return false
	}

	claims, err := utils.ValidateToken(tokenString)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Invalid or expired token"))
		return false
	}

	userID, ok := utils.ClaimUserID(claims)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Invalid user ID in token"))
		return false
	}

	user, err := services.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "User not found"))
		} else {
			c.AbortWithStatusJSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to load user"))
		}
		return false
	}

	if !user.IsActive() {
		c.AbortWithStatusJSON(http.StatusForbidden, utils.NewErrorResponse(http.StatusForbidden, "Account is inactive"))
		return false
	}

	c.Set(userContextKey, user)
	c.Set(tokenContextKey, tokenString)
	return true
}

// SetCurrentUser stores user the way AuthMiddleware does.
func SetCurrentUser(c *gin.Context, user models.User) {
	c.Set(userContextKey, user)
}

// CurrentUser returns the user stored by AuthMiddleware.
func CurrentUser(c *gin.Context) (models.User, bool) {
	value, exists := c.Get(userContextKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := value.(models.User)
	return user, ok
}

// CurrentActor returns the authenticated caller as a policy actor.
func CurrentActor(c *gin.Context) (policy.Actor, bool) {
	user, ok := CurrentUser(c)
	if !ok {
		return policy.Actor{}, false
	}
	return policy.Actor{ID: user.ID, Role: user.Role}, true
}

func CurrentToken(c *gin.Context) string {
	return c.GetString(tokenContextKey)
}
