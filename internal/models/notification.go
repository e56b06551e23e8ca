package models

import (
	"fmt"
	"time"
)

type NotificationType string

const (
	NotificationBudgetWarning   NotificationType = "budget_warning"
	NotificationBudgetFullyUsed NotificationType = "budget_fully_used"
	NotificationBudgetExceeded  NotificationType = "budget_exceeded"
)

type Notification struct {
	ID         uint             `gorm:"primarykey" json:"id"`
	CreatedAt  time.Time        `json:"created_at"`
	UserID     uint             `gorm:"index;not null" json:"user_id"`
	Type       NotificationType `gorm:"type:varchar(40);not null" json:"type"`
	CategoryID *uint            `gorm:"index" json:"category_id"`
	Message    string           `gorm:"type:text;not null" json:"message"`
	IsRead     bool             `gorm:"not null;default:false" json:"is_read"`
	// One row per (user, type, category, day); see NotificationDedupKey.
	DedupKey string `gorm:"type:varchar(191);uniqueIndex;not null" json:"-"`
}

// NotificationDedupKey builds the uniqueness key that enforces the per-day
// recency guard at the storage layer.
func NotificationDedupKey(userID uint, t NotificationType, categoryID *uint, day string) string {
	cat := "none"
	if categoryID != nil {
		cat = fmt.Sprint(*categoryID)
	}
	return fmt.Sprintf("%d:%s:%s:%s", userID, t, cat, day)
}
