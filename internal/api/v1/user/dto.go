package user

import (
	"time"

	"finance-tracker-backend/internal/models"
)

// UserResponse defines the response structure for user information.
type UserResponse struct {
	ID          uint         `json:"id"`
	Username    string       `json:"username"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Role        string       `json:"role"`
	Gender      string       `json:"gender,omitempty"`
	DateOfBirth *models.Date `json:"date_of_birth,omitempty" swaggertype:"string" example:"01/31/1990"`
	Status      string       `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	Token       string       `json:"token,omitempty"`
}

func NewUserResponse(u models.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		Gender:      u.Gender,
		DateOfBirth: u.DateOfBirth,
		Status:      u.Status,
		CreatedAt:   u.CreatedAt,
	}
}

// UpdateProfileRequest is the self-service profile edit. Omitted fields are
// left unchanged.
type UpdateProfileRequest struct {
	Username    *string      `json:"username,omitempty" binding:"omitempty,min=3,max=50"`
	Name        *string      `json:"name,omitempty" binding:"omitempty,max=100"`
	Email       *string      `json:"email,omitempty" binding:"omitempty,email"`
	Password    *string      `json:"password,omitempty" binding:"omitempty,min=6"`
	Gender      *string      `json:"gender,omitempty" binding:"omitempty,max=20"`
	DateOfBirth *models.Date `json:"date_of_birth,omitempty" swaggertype:"string" example:"01/31/1990"`
}

func (r UpdateProfileRequest) Updates() map[string]interface{} {
	updates := make(map[string]interface{})
	if r.Username != nil {
		updates["username"] = *r.Username
	}
	if r.Name != nil {
		updates["name"] = *r.Name
	}
	if r.Email != nil {
		updates["email"] = *r.Email
	}
	if r.Password != nil {
		updates["password"] = *r.Password
	}
	if r.Gender != nil {
		updates["gender"] = *r.Gender
	}
	if r.DateOfBirth != nil {
		updates["date_of_birth"] = *r.DateOfBirth
	}
	return updates
}
