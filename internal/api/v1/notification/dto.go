package notification

import "finance-tracker-backend/internal/models"

type NotificationListResponse struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int64                 `json:"unreadCount"`
}

// CheckBudgetsResponse reports a forced evaluation. Created counts the new
// notifications listed in Notifications.
type CheckBudgetsResponse struct {
	Created       int                   `json:"created"`
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int64                 `json:"unreadCount"`
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}
