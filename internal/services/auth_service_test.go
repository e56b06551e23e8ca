package services

import (
	"testing"

	"finance-tracker-backend/internal/database"
	"finance-tracker-backend/internal/models"
	"finance-tracker-backend/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterUser(t *testing.T) {
	setupTestDB()

	user, err := RegisterUser(RegisterParams{
		Username: "ana",
		Name:     "Ana",
		Email:    " Ana@Example.com ",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Equal(t, models.StatusActive, user.Status)
	assert.NotEqual(t, "secret123", user.Password)
	assert.Equal(t, int64(1), countRows(t, &models.AuditLog{}, "action = ? AND user_id = ?", models.AuditRegisterUser, user.ID))

	_, err = RegisterUser(RegisterParams{Username: "ana", Email: "other@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	_, err = RegisterUser(RegisterParams{Username: "other", Email: "ANA@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestLoginUser(t *testing.T) {
	setupTestDB()

	registered, err := RegisterUser(RegisterParams{Username: "ana", Email: "ana@example.com", Password: "secret123"})
	require.NoError(t, err)

	tests := []struct {
		name       string
		identifier string
		password   string
		wantErr    error
	}{
		{"by email", "ana@example.com", "secret123", nil},
		{"by email mixed case", "Ana@Example.com", "secret123", nil},
		{"by username", "ana", "secret123", nil},
		{"wrong password", "ana", "nope", ErrInvalidCredentials},
		{"unknown user", "ghost", "secret123", ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, user, err := LoginUser(tt.identifier, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, registered.ID, user.ID)

			claims, err := utils.ValidateToken(token)
			require.NoError(t, err)
			id, ok := utils.ClaimUserID(claims)
			require.True(t, ok)
			assert.Equal(t, registered.ID, id)
		})
	}
}

func TestLoginUserInactive(t *testing.T) {
	setupTestDB()

	user, err := RegisterUser(RegisterParams{Username: "ana", Email: "ana@example.com", Password: "secret123"})
	require.NoError(t, err)
	require.NoError(t, database.DB.Model(user).Update("status", models.StatusInactive).Error)

	_, _, err = LoginUser("ana", "secret123")
	assert.ErrorIs(t, err, ErrAccountInactive)

	// a wrong password never reveals the account state
	_, _, err = LoginUser("ana", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
