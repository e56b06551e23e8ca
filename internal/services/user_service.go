package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"finance-tracker-backend/internal/database"
	"finance-tracker-backend/internal/models"
	"finance-tracker-backend/internal/policy"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")
var ErrOptimisticLock = errors.New("data has been modified by another user, please refresh and try again")

func userCacheKey(userID uint) string {
	return fmt.Sprintf("user:%d", userID)
}

func FindUserByID(userID uint) (models.User, error) {
	// Try cache
	cacheKey := userCacheKey(userID)
	if database.RedisClient != nil {
		val, err := database.RedisClient.Get(database.Ctx, cacheKey).Result()
		if err == nil {
			var user models.User
			if err := json.Unmarshal([]byte(val), &user); err == nil {
				return user, nil
			}
		}
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user, ErrUserNotFound
		}
		return user, err
	}

	// Set cache
	if database.RedisClient != nil {
		if data, err := json.Marshal(user); err == nil {
			database.RedisClient.Set(database.Ctx, cacheKey, data, time.Hour)
		}
	}

	return user, nil
}

func invalidateUserCache(userID uint) {
	if database.RedisClient != nil {
		database.RedisClient.Del(database.Ctx, userCacheKey(userID))
	}
}

// FindUsers retrieves a paginated list of users.
func FindUsers(page, limit int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	if err := database.DB.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := database.DB.Order("id").Limit(limit).Offset(offsetFor(page, limit)).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// UpdateUser applies an admin edit to any account. Allowed keys: username,
// name, email, password, role, status, gender, date_of_birth.
func UpdateUser(actor policy.Actor, id uint, updates map[string]interface{}) (*models.User, error) {
	if err := policy.Check(actor, policy.AdminUpdateUser, 0); err != nil {
		return nil, err
	}
	return applyUserUpdates(id, updates, actor.ID, models.AuditUpdateUser)
}

// UpdateProfile applies a self-service edit. Role and status cannot be
// changed this way.
func UpdateProfile(userID uint, updates map[string]interface{}) (*models.User, error) {
	delete(updates, "role")
	delete(updates, "status")
	return applyUserUpdates(userID, updates, userID, models.AuditUpdateProfile)
}

// applyUserUpdates updates a user with optimistic locking and records the
// audit entry in the same transaction.
func applyUserUpdates(id uint, updates map[string]interface{}, actorID uint, action models.AuditAction) (*models.User, error) {
	if len(updates) == 0 {
		return nil, validationError("no fields to update")
	}

	if email, ok := updates["email"].(string); ok {
		updates["email"] = strings.ToLower(strings.TrimSpace(email))
	}
	if role, ok := updates["role"].(string); ok && role != models.RoleUser && role != models.RoleAdmin {
		return nil, validationError("invalid role %q", role)
	}
	if status, ok := updates["status"].(string); ok && status != models.StatusActive && status != models.StatusInactive {
		return nil, validationError("invalid status %q", status)
	}

	var user models.User
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		username, _ := updates["username"].(string)
		email, _ := updates["email"].(string)
		if err := ensureIdentityAvailable(tx, id, username, email); err != nil {
			return err
		}

		changed := changedFields(updates)

		// Password handling
		if password, ok := updates["password"].(string); ok && password != "" {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			updates["password"] = string(hashedPassword)
		}

		// Optimistic Lock Check
		currentVersion := user.Version
		updates["version"] = currentVersion + 1

		result := tx.Model(&user).Where("version = ?", currentVersion).Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrOptimisticLock
		}

		details := fmt.Sprintf("User %d updated fields: %s", id, strings.Join(changed, ", "))
		return RecordAudit(tx, actorID, action, details, map[string]interface{}{
			"target_user_id": id,
			"fields":         changed,
		})
	})
	if err != nil {
		return nil, err
	}

	invalidateUserCache(id)

	// Fetch updated user to return full object
	if err := database.DB.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func changedFields(updates map[string]interface{}) []string {
	fields := make([]string, 0, len(updates))
	for k := range updates {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return fields
}

// DeleteUser removes the account and everything it owns.
func DeleteUser(userID uint) error {
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		return deleteUserData(tx, userID)
	})
	if err != nil {
		return err
	}
	invalidateUserCache(userID)
	return nil
}

// AdminDeleteUser deletes another account and records DELETE_USER against
// the acting admin.
func AdminDeleteUser(actor policy.Actor, userID uint) error {
	if err := policy.Check(actor, policy.AdminDeleteUser, 0); err != nil {
		return err
	}
	if actor.ID == userID {
		return validationError("admins cannot delete their own account from the admin panel")
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if err := deleteUserData(tx, userID); err != nil {
			return err
		}
		return RecordAudit(tx, actor.ID, models.AuditDeleteUser, fmt.Sprintf("Deleted user %s (id %d)", user.Username, user.ID), map[string]interface{}{
			"target_user_id": user.ID,
			"username":       user.Username,
		})
	})
	if err != nil {
		return err
	}
	invalidateUserCache(userID)
	return nil
}

// deleteUserData cascades explicitly so behaviour does not depend on the
// database enforcing foreign keys.
func deleteUserData(tx *gorm.DB, userID uint) error {
	for _, model := range []interface{}{
		&models.Notification{},
		&models.Budget{},
		&models.Transaction{},
		&models.Category{},
		&models.AuditLog{},
	} {
		if err := tx.Where("user_id = ?", userID).Delete(model).Error; err != nil {
			return err
		}
	}
	return tx.Delete(&models.User{}, userID).Error
}
