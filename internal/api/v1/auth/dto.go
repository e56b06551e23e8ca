package auth

import "finance-tracker-backend/internal/models"

type RegisterInput struct {
	Username    string       `json:"username" binding:"required,min=3,max=50"`
	Name        string       `json:"name" binding:"max=100"`
	Email       string       `json:"email" binding:"required,email"`
	Password    string       `json:"password" binding:"required,min=6"`
	Gender      string       `json:"gender" binding:"max=20"`
	DateOfBirth *models.Date `json:"date_of_birth,omitempty" swaggertype:"string" example:"01/31/1990"`
}

// LoginInput accepts either the email or the username as identifier.
type LoginInput struct {
	Email    string `json:"email" binding:"required_without=Username"`
	Username string `json:"username" binding:"required_without=Email"`
	Password string `json:"password" binding:"required"`
}

func (in LoginInput) Identifier() string {
	if in.Email != "" {
		return in.Email
	}
	return in.Username
}
