package auth

import (
	"errors"
	"net/http"
	"time"

	"finance-tracker-backend/internal/api/v1/user"
	"finance-tracker-backend/internal/services"
	"finance-tracker-backend/internal/utils"
	"finance-tracker-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Register godoc
// @Summary Register a new user
// @Description Register a new user account and return a token
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   input     body   RegisterInput  true  "Register Input"
// @Success 201 {object} utils.Response{data=user.UserResponse}
// @Failure 400 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /auth/register [post]
func Register(c *gin.Context) {
	var input RegisterInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	u, err := services.RegisterUser(services.RegisterParams{
		Username:    input.Username,
		Name:        input.Name,
		Email:       input.Email,
		Password:    input.Password,
		Gender:      input.Gender,
		DateOfBirth: input.DateOfBirth,
	})
	if err != nil {
		if errors.Is(err, services.ErrUserAlreadyExists) {
			c.JSON(http.StatusConflict, utils.NewErrorResponse(http.StatusConflict, err.Error()))
			return
		}
		logger.Log.Error("Failed to register user", zap.String("username", input.Username), zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to register user due to an internal error"))
		return
	}

	token, err := utils.GenerateToken(u.ID, u.Email, u.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Could not generate token"))
		return
	}

	resp := user.NewUserResponse(*u)
	resp.Token = token
	c.JSON(http.StatusCreated, utils.NewResponse(http.StatusCreated, "User registered successfully", resp))
}

// Login godoc
// @Summary Log in a user
// @Description Log in with email or username and password
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   input     body   LoginInput  true  "Login Input"
// @Success 200 {object} utils.Response{data=user.UserResponse}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Router /auth/login [post]
func Login(c *gin.Context) {
	var input LoginInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	token, u, err := services.LoginUser(input.Identifier(), input.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAccountInactive):
			c.JSON(http.StatusForbidden, utils.NewErrorResponse(http.StatusForbidden, "Account is inactive"))
		case errors.Is(err, services.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Invalid username or password"))
		default:
			logger.Log.Error("Login failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to log in"))
		}
		return
	}

	resp := user.NewUserResponse(*u)
	resp.Token = token
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Logged in successfully", resp))
}

// Logout godoc
// @Summary Log out a user
// @Description Invalidate the user's current token
// @Tags auth
// @Produce  json
// @Security Bearer
// @Success 200 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /auth/logout [post]
func Logout(c *gin.Context) {
	tokenString, err := utils.ExtractToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, err.Error()))
		return
	}

	remaining := 72 * time.Hour
	if claims, err := utils.ValidateToken(tokenString); err == nil {
		if r, err := utils.TokenRemaining(claims); err == nil {
			remaining = r
		}
	}

	if err := services.AddToDenylist(tokenString, remaining); err != nil {
		logger.Log.Error("Failed to denylist token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to denylist token"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Logged out successfully", nil))
}
