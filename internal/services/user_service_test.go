package services

import (
	"testing"
	"time"

	"finance-tracker-backend/internal/database"
	"finance-tracker-backend/internal/models"
	"finance-tracker-backend/internal/policy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestFindUserByIDUsesCache(t *testing.T) {
	setupTestDB()
	mr := setupTestRedis()
	defer mr.Close()

	user := seedUser(t, "ana")

	found, err := FindUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana", found.Username)
	assert.True(t, mr.Exists(userCacheKey(user.ID)))

	// served from cache even after the row changes underneath
	require.NoError(t, database.DB.Model(&models.User{}).Where("id = ?", user.ID).Update("name", "Changed").Error)
	cached, err := FindUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana", cached.Name)

	_, err = FindUserByID(999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateProfileInvalidatesCache(t *testing.T) {
	setupTestDB()
	mr := setupTestRedis()
	defer mr.Close()

	user := seedUser(t, "ana")
	_, err := FindUserByID(user.ID)
	require.NoError(t, err)

	updated, err := UpdateProfile(user.ID, map[string]interface{}{
		"name":     "Ana Maria",
		"role":     models.RoleAdmin,
		"status":   models.StatusInactive,
		"password": "newpass123",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", updated.Name)
	assert.Equal(t, models.RoleUser, updated.Role)
	assert.Equal(t, models.StatusActive, updated.Status)
	assert.Equal(t, 2, updated.Version)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("newpass123")))
	assert.False(t, mr.Exists(userCacheKey(user.ID)))

	assert.Equal(t, int64(1), countRows(t, &models.AuditLog{}, "action = ?", models.AuditUpdateProfile))
}

func TestUpdateProfileRejectsTakenIdentity(t *testing.T) {
	setupTestDB()
	ana := seedUser(t, "ana")
	seedUser(t, "ben")

	_, err := UpdateProfile(ana.ID, map[string]interface{}{"email": "BEN@example.com"})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	_, err = UpdateProfile(ana.ID, map[string]interface{}{"username": "ana"})
	assert.NoError(t, err)

	_, err = UpdateProfile(ana.ID, map[string]interface{}{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateUserRequiresAdmin(t *testing.T) {
	setupTestDB()
	admin := seedUser(t, "root")
	require.NoError(t, database.DB.Model(&admin).Update("role", models.RoleAdmin).Error)
	target := seedUser(t, "ana")

	_, err := UpdateUser(policy.Actor{ID: target.ID, Role: policy.RoleUser}, target.ID, map[string]interface{}{"role": models.RoleAdmin})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := UpdateUser(policy.Actor{ID: admin.ID, Role: policy.RoleAdmin}, target.ID, map[string]interface{}{"status": models.StatusInactive})
	require.NoError(t, err)
	assert.Equal(t, models.StatusInactive, updated.Status)

	_, err = UpdateUser(policy.Actor{ID: admin.ID, Role: policy.RoleAdmin}, target.ID, map[string]interface{}{"role": "owner"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = UpdateUser(policy.Actor{ID: admin.ID, Role: policy.RoleAdmin}, 999, map[string]interface{}{"name": "x"})
	assert.ErrorIs(t, err, ErrUserNotFound)

	var logs []models.AuditLog
	require.NoError(t, database.DB.Where("action = ?", models.AuditUpdateUser).Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, admin.ID, logs[0].UserID)
}

func TestFindUsersPaginates(t *testing.T) {
	setupTestDB()
	for _, name := range []string{"a1", "a2", "a3"} {
		seedUser(t, name)
	}

	users, total, err := FindUsers(2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, users, 1)
	assert.Equal(t, "a3", users[0].Username)
}

func seedOwnedData(t *testing.T, user models.User) {
	t.Helper()
	food := seedCategory(t, user.ID, "Food")
	seedTransaction(t, user.ID, food.ID, models.TransactionTypeExpense, "100", date(2024, time.January, 2))
	seedBudget(t, user.ID, food.ID, "100", date(2024, time.January, 1), nil)
	_, err := EvaluateBudgets(user.ID)
	require.NoError(t, err)
	require.NoError(t, RecordAudit(database.DB, user.ID, models.AuditAddCategory, "seed", nil))
}

func TestDeleteUserCascades(t *testing.T) {
	setupTestDB()
	ana := seedUser(t, "ana")
	ben := seedUser(t, "ben")
	seedOwnedData(t, ana)
	seedOwnedData(t, ben)

	require.NoError(t, DeleteUser(ana.ID))

	for _, model := range []interface{}{&models.Category{}, &models.Transaction{}, &models.Budget{}, &models.Notification{}, &models.AuditLog{}} {
		assert.Zero(t, countRows(t, model, "user_id = ?", ana.ID))
		assert.NotZero(t, countRows(t, model, "user_id = ?", ben.ID))
	}
	assert.Zero(t, countRows(t, &models.User{}, "id = ?", ana.ID))

	assert.ErrorIs(t, DeleteUser(ana.ID), ErrUserNotFound)
}

func TestAdminDeleteUser(t *testing.T) {
	setupTestDB()
	admin := seedUser(t, "root")
	target := seedUser(t, "ana")
	seedOwnedData(t, target)
	adminActor := policy.Actor{ID: admin.ID, Role: policy.RoleAdmin}

	assert.ErrorIs(t, AdminDeleteUser(policy.Actor{ID: admin.ID, Role: policy.RoleUser}, target.ID), ErrForbidden)
	assert.ErrorIs(t, AdminDeleteUser(adminActor, admin.ID), ErrValidation)
	assert.ErrorIs(t, AdminDeleteUser(adminActor, 999), ErrUserNotFound)

	require.NoError(t, AdminDeleteUser(adminActor, target.ID))
	assert.Zero(t, countRows(t, &models.Transaction{}))

	var logs []models.AuditLog
	require.NoError(t, database.DB.Where("action = ?", models.AuditDeleteUser).Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, admin.ID, logs[0].UserID)
}
