package user

import (
	"time"

	"finance-tracker-backend/internal/models"
)

type UserListItem struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserListResponse struct {
	Users []UserListItem `json:"users"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

func newUserListItem(u models.User) UserListItem {
	return UserListItem{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// UpdateUserRequest represents the request body for updating a user
type UpdateUserRequest struct {
	Username    *string      `json:"username,omitempty" binding:"omitempty,min=3,max=50"`
	Name        *string      `json:"name,omitempty" binding:"omitempty,max=100"`
	Email       *string      `json:"email,omitempty" binding:"omitempty,email"`
	Password    *string      `json:"password,omitempty" binding:"omitempty,min=6"`
	Role        *string      `json:"role,omitempty" binding:"omitempty,oneof=admin user"`
	Status      *string      `json:"status,omitempty" binding:"omitempty,oneof=active inactive"`
	Gender      *string      `json:"gender,omitempty" binding:"omitempty,max=20"`
	DateOfBirth *models.Date `json:"date_of_birth,omitempty" swaggertype:"string"`
}

func (r UpdateUserRequest) updates() map[string]interface{} {
	updates := make(map[string]interface{})
	for key, value := range map[string]*string{
		"username": r.Username,
		"name":     r.Name,
		"email":    r.Email,
		"password": r.Password,
		"role":     r.Role,
		"status":   r.Status,
		"gender":   r.Gender,
	} {
		if value != nil {
			updates[key] = *value
		}
	}
	if r.DateOfBirth != nil {
		updates["date_of_birth"] = *r.DateOfBirth
	}
	return updates
}
