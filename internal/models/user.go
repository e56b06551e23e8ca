package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	StatusActive   = "active"
	StatusInactive = "inactive"
)

type User struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Username    string    `gorm:"uniqueIndex;not null" json:"username"`
	Name        string    `json:"name"`
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	Password    string    `gorm:"not null" json:"-"`
	Role        string    `gorm:"not null;default:'user'" json:"role"`
	Gender      string    `json:"gender"`
	DateOfBirth *Date     `json:"date_of_birth,omitempty"`
	Status      string    `gorm:"not null;default:'active'" json:"status"`
	Version     int       `gorm:"default:1" json:"-"`
}

// IsActive reports whether the account may authenticate.
func (u User) IsActive() bool {
	return u.Status == "" || u.Status == StatusActive
}
