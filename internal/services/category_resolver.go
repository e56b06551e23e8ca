package services

import (
	"errors"
	"fmt"
	"strings"

	"finance-tracker-backend/internal/database"
	"finance-tracker-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CategoryResolver maps free-text category names to a user's categories,
// creating missing ones. Names match exactly and case-sensitively; an
// existing category keeps its type even when a later row names another.
//
// A resolver serves one import batch. Resolved categories are cached only
// via Remember, after the row transaction that created them has committed.
type CategoryResolver struct {
	userID uint
	cache  map[string]models.Category
}

func NewCategoryResolver(userID uint) *CategoryResolver {
	return &CategoryResolver{
		userID: userID,
		cache:  make(map[string]models.Category),
	}
}

// Resolve returns the category named name, creating it with catType inside
// tx when absent.
func (r *CategoryResolver) Resolve(tx *gorm.DB, name, catType string) (models.Category, error) {
	if cached, ok := r.cache[name]; ok {
		return cached, nil
	}

	category, err := r.lookup(tx, name)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Category{}, fmt.Errorf("lookup category %q: %w", name, err)
	}

	if strings.TrimSpace(catType) == "" {
		catType = models.DefaultCategoryType
	}
	category = models.Category{UserID: r.userID, Name: name, Type: catType}

	// (user_id, name) is unique, so a concurrent import creating the same
	// name makes this insert a no-op and the re-read below finds its row.
	result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&category)
	if result.Error != nil {
		return models.Category{}, fmt.Errorf("create category %q: %w", name, result.Error)
	}
	if result.RowsAffected == 0 {
		if category, err = r.lookup(tx, name); err != nil {
			return models.Category{}, fmt.Errorf("reload category %q: %w", name, err)
		}
	}
	return category, nil
}

// Remember caches c for the rest of the batch.
func (r *CategoryResolver) Remember(c models.Category) {
	r.cache[c.Name] = c
}

func (r *CategoryResolver) lookup(tx *gorm.DB, name string) (models.Category, error) {
	var category models.Category
	err := tx.Where("user_id = ? AND name = ?", r.userID, name).First(&category).Error
	return category, err
}

// ResolveOrCreateCategory resolves a single name in its own transaction.
func ResolveOrCreateCategory(userID uint, name, catType string) (models.Category, error) {
	resolver := NewCategoryResolver(userID)
	var category models.Category
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		category, err = resolver.Resolve(tx, name, catType)
		return err
	})
	return category, err
}
