package events

import (
	"encoding/json"
	"time"

	"finance-tracker-backend/internal/models"
)

// NotificationCreatedMessage is published once per notification the budget
// evaluator inserts.
type NotificationCreatedMessage struct {
	ID         uint                    `json:"id"`
	UserID     uint                    `json:"user_id"`
	Type       models.NotificationType `json:"type"`
	CategoryID *uint                   `json:"category_id"`
	Message    string                  `json:"message"`
	Timestamp  time.Time               `json:"timestamp"`
}

func NewNotificationCreatedMessage(n models.Notification) *NotificationCreatedMessage {
	return &NotificationCreatedMessage{
		ID:         n.ID,
		UserID:     n.UserID,
		Type:       n.Type,
		CategoryID: n.CategoryID,
		Message:    n.Message,
		Timestamp:  time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *NotificationCreatedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func NotificationCreatedMessageFromJSON(data []byte) (*NotificationCreatedMessage, error) {
	var msg NotificationCreatedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
