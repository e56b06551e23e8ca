package models

import "time"

// DefaultCategoryType is used when a category is created without a type.
// Category types are free-form labels ("income", "expense", "Global", ...).
const DefaultCategoryType = "expense"

type Category struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_categories_user_name" json:"user_id"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_categories_user_name" json:"name"`
	Type      string    `gorm:"type:varchar(50);not null;default:'expense'" json:"type"`
}
