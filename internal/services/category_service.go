package services

import (
	"errors"
	"fmt"
	"strings"

	"finance-tracker-backend/internal/database"
	"finance-tracker-backend/internal/models"
	"finance-tracker-backend/internal/policy"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category with this name already exists")
)

func ListCategories(userID uint) ([]models.Category, error) {
	var categories []models.Category
	if err := database.DB.Where("user_id = ?", userID).Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func CreateCategory(userID uint, name, catType string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationError("category name is required")
	}
	if catType = strings.TrimSpace(catType); catType == "" {
		catType = models.DefaultCategoryType
	}

	category := &models.Category{UserID: userID, Name: name, Type: catType}
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(category)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCategoryExists
		}
		return RecordAudit(tx, userID, models.AuditAddCategory, fmt.Sprintf("Added category %s", name), map[string]interface{}{
			"category_id": category.ID,
		})
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

func findCategory(db *gorm.DB, id uint) (*models.Category, error) {
	var category models.Category
	if err := db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// ensureCategoryOwned fails with ErrCategoryNotFound unless categoryID
// belongs to userID.
func ensureCategoryOwned(db *gorm.DB, userID, categoryID uint) (*models.Category, error) {
	category, err := findCategory(db, categoryID)
	if err != nil {
		return nil, err
	}
	if category.UserID != userID {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// UpdateCategory renames or retypes a category. Owners and admins may do so.
func UpdateCategory(actor policy.Actor, id uint, name, catType *string) (*models.Category, error) {
	category, err := findCategory(database.DB, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, policy.CategoryUpdate, category.UserID, ErrCategoryNotFound); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, validationError("category name is required")
		}
		updates["name"] = trimmed
	}
	if catType != nil {
		updates["type"] = strings.TrimSpace(*catType)
	}
	if len(updates) == 0 {
		return nil, validationError("no fields to update")
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if newName, ok := updates["name"].(string); ok && newName != category.Name {
			var count int64
			if err := tx.Model(&models.Category{}).Where("user_id = ? AND name = ? AND id <> ?", category.UserID, newName, id).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrCategoryExists
			}
		}
		if err := tx.Model(category).Updates(updates).Error; err != nil {
			return err
		}
		return RecordAudit(tx, actor.ID, models.AuditUpdateCategory, fmt.Sprintf("Updated category %d", id), map[string]interface{}{
			"category_id": id,
			"owner_id":    category.UserID,
		})
	})
	if err != nil {
		return nil, err
	}
	return findCategory(database.DB, id)
}

// DeleteCategory removes a category together with its transactions and
// budgets.
func DeleteCategory(actor policy.Actor, id uint) error {
	category, err := findCategory(database.DB, id)
	if err != nil {
		return err
	}
	if err := authorize(actor, policy.CategoryDelete, category.UserID, ErrCategoryNotFound); err != nil {
		return err
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&models.Transaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("category_id = ?", id).Delete(&models.Budget{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Category{}, id).Error; err != nil {
			return err
		}
		return RecordAudit(tx, actor.ID, models.AuditDeleteCategory, fmt.Sprintf("Deleted category %s", category.Name), map[string]interface{}{
			"category_id": id,
			"owner_id":    category.UserID,
		})
	})
}

// CategoryNames maps category ids to names for display.
func CategoryNames(ids []uint) (map[uint]string, error) {
	names := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	var categories []models.Category
	if err := database.DB.Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, err
	}
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names, nil
}
