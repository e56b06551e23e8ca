package user

import (
	"errors"
	"net/http"

	"finance-tracker-backend/internal/middleware"
	"finance-tracker-backend/internal/services"
	"finance-tracker-backend/internal/utils"
	"finance-tracker-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetProfile godoc
// @Summary Get current user
// @Description Get the authenticated user's profile
// @Tags user
// @Produce  json
// @Security Bearer
// @Success 200 {object} utils.Response{data=user.UserResponse}
// @Failure 401 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /users/me [get]
func GetProfile(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("User information retrieved successfully", NewUserResponse(u)))
}

// UpdateProfile godoc
// @Summary Update current user
// @Description Update the authenticated user's own profile. Role and status cannot be changed here.
// @Tags user
// @Accept  json
// @Produce  json
// @Security Bearer
// @Param   input body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} utils.Response{data=user.UserResponse}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /users/me [put]
func UpdateProfile(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	var req UpdateProfileRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	updated, err := services.UpdateProfile(u.ID, req.Updates())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "User not found"))
		case errors.Is(err, services.ErrUserAlreadyExists), errors.Is(err, services.ErrOptimisticLock):
			c.JSON(http.StatusConflict, utils.NewErrorResponse(http.StatusConflict, err.Error()))
		default:
			logger.Log.Error("Failed to update profile", zap.Uint("user_id", u.ID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to update profile"))
		}
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Profile updated successfully", NewUserResponse(*updated)))
}

// DeleteAccount godoc
// @Summary Delete current user
// @Description Delete the authenticated user together with their categories, transactions, budgets, notifications and audit entries
// @Tags user
// @Produce  json
// @Security Bearer
// @Success 200 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /users/me [delete]
func DeleteAccount(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	if err := services.DeleteUser(u.ID); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "User not found"))
			return
		}
		logger.Log.Error("Failed to delete account", zap.Uint("user_id", u.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to delete account"))
		return
	}

	if token := middleware.CurrentToken(c); token != "" {
		if claims, err := utils.ValidateToken(token); err == nil {
			if remaining, err := utils.TokenRemaining(claims); err == nil {
				_ = services.AddToDenylist(token, remaining)
			}
		}
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Account deleted successfully", nil))
}
