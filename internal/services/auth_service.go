package services

import (
	"errors"
	"fmt"
	"strings"

	"finance-tracker-backend/internal/database"
	"finance-tracker-backend/internal/models"
	"finance-tracker-backend/internal/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserAlreadyExists  = errors.New("user with this username or email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is inactive")
)

type RegisterParams struct {
	Username    string
	Name        string
	Email       string
	Password    string
	Gender      string
	DateOfBirth *models.Date
}

// RegisterUser creates a regular user account. Admin accounts are created
// with the create-admin command or promoted by an existing admin.
func RegisterUser(params RegisterParams) (*models.User, error) {
	return createUser(params, models.RoleUser)
}

// CreateAdminUser seeds an administrator account.
func CreateAdminUser(params RegisterParams) (*models.User, error) {
	return createUser(params, models.RoleAdmin)
}

func createUser(params RegisterParams, role string) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(params.Email))
	username := strings.TrimSpace(params.Username)

	if err := ensureIdentityAvailable(database.DB, 0, username, email); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:    username,
		Name:        strings.TrimSpace(params.Name),
		Email:       email,
		Password:    string(hashedPassword),
		Role:        role,
		Gender:      params.Gender,
		DateOfBirth: params.DateOfBirth,
		Status:      models.StatusActive,
		Version:     1,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return RecordAudit(tx, user.ID, models.AuditRegisterUser, fmt.Sprintf("User %s registered", user.Username), nil)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// LoginUser authenticates by email or username.
func LoginUser(identifier, password string) (string, *models.User, error) {
	identifier = strings.TrimSpace(identifier)

	var user models.User
	err := database.DB.Where("email = ? OR username = ?", strings.ToLower(identifier), identifier).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if !user.IsActive() {
		return "", nil, ErrAccountInactive
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", nil, err
	}

	return token, &user, nil
}

// ensureIdentityAvailable rejects a username or email already held by a
// user other than excludeID.
func ensureIdentityAvailable(db *gorm.DB, excludeID uint, username, email string) error {
	if username == "" && email == "" {
		return nil
	}

	query := db.Model(&models.User{})
	switch {
	case username != "" && email != "":
		query = query.Where("username = ? OR email = ?", username, email)
	case username != "":
		query = query.Where("username = ?", username)
	default:
		query = query.Where("email = ?", email)
	}
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrUserAlreadyExists
	}
	return nil
}
