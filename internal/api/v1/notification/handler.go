package notification

import (
	"errors"
	"net/http"

	"finance-tracker-backend/internal/middleware"
	"finance-tracker-backend/internal/models"
	"finance-tracker-backend/internal/services"
	"finance-tracker-backend/internal/utils"
	"finance-tracker-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MyNotifications godoc
// @Summary List my notifications
// @Description Newest first, with the number of unread notifications
// @Tags notifications
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.Response{data=NotificationListResponse}
// @Failure 500 {object} utils.Response
// @Router /notifications/my [get]
func MyNotifications(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)

	notifications, unread, err := services.ListNotifications(actor.ID)
	if err != nil {
		logger.Log.Error("Failed to fetch notifications", zap.Uint("user_id", actor.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch notifications"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Notifications retrieved successfully", NotificationListResponse{
		Notifications: notifications,
		UnreadCount:   unread,
	}))
}

// CheckBudgets godoc
// @Summary Check budgets now
// @Description Run the budget evaluator for the authenticated user and return the notifications it created
// @Tags notifications
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.Response{data=CheckBudgetsResponse}
// @Failure 500 {object} utils.Response
// @Router /notifications/check-budgets [post]
func CheckBudgets(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)

	created, err := services.EvaluateBudgets(actor.ID)
	if err != nil {
		logger.Log.Error("Budget check failed", zap.Uint("user_id", actor.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to check budgets"))
		return
	}

	unread, err := services.CountUnreadNotifications(actor.ID)
	if err != nil {
		logger.Log.Error("Failed to count unread notifications", zap.Uint("user_id", actor.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to check budgets"))
		return
	}

	if created == nil {
		created = []models.Notification{}
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Budgets checked", CheckBudgetsResponse{
		Created:       len(created),
		Notifications: created,
		UnreadCount:   unread,
	}))
}

// MarkRead godoc
// @Summary Mark a notification as read
// @Tags notifications
// @Produce json
// @Security Bearer
// @Param id path int true "Notification ID"
// @Success 200 {object} utils.Response{data=models.Notification}
// @Failure 404 {object} utils.Response
// @Router /notifications/read/{id} [put]
func MarkRead(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)

	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid notification ID"))
		return
	}

	n, err := services.MarkNotificationRead(actor, id)
	if err != nil {
		if errors.Is(err, services.ErrNotificationNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Notification not found"))
			return
		}
		logger.Log.Error("Failed to mark notification read", zap.Uint("notification_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to update notification"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Notification marked as read", n))
}

// MarkAllRead godoc
// @Summary Mark all notifications as read
// @Tags notifications
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.Response{data=MarkAllReadResponse}
// @Failure 500 {object} utils.Response
// @Router /notifications/read-all [put]
func MarkAllRead(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)

	updated, err := services.MarkAllNotificationsRead(actor.ID)
	if err != nil {
		logger.Log.Error("Failed to mark notifications read", zap.Uint("user_id", actor.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to update notifications"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("All notifications marked as read", MarkAllReadResponse{Updated: updated}))
}

// DeleteNotification godoc
// @Summary Delete a notification
// @Tags notifications
// @Produce json
// @Security Bearer
// @Param id path int true "Notification ID"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /notifications/{id} [delete]
func DeleteNotification(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)

	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid notification ID"))
		return
	}

	if err := services.DeleteNotification(actor, id); err != nil {
		if errors.Is(err, services.ErrNotificationNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Notification not found"))
			return
		}
		logger.Log.Error("Failed to delete notification", zap.Uint("notification_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to delete notification"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Notification deleted successfully", nil))
}
