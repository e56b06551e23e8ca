package services

import (
	"encoding/json"
	"fmt"

	"finance-tracker-backend/internal/database"
	"finance-tracker-backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RecordAudit appends an audit entry using db, which may be a transaction.
func RecordAudit(db *gorm.DB, userID uint, action models.AuditAction, details string, metadata map[string]interface{}) error {
	entry := models.AuditLog{
		UserID:  userID,
		Action:  action,
		Details: details,
	}
	if len(metadata) > 0 {
		raw, err := json.Marshal(metadata)
		if err != nil {
			return fmt.Errorf("marshal audit metadata: %w", err)
		}
		entry.Metadata = datatypes.JSON(raw)
	}
	if err := db.Create(&entry).Error; err != nil {
		return fmt.Errorf("record audit %s: %w", action, err)
	}
	return nil
}

type AuditLogFilter struct {
	UserID *uint
	Action *models.AuditAction
	Page   int
	Limit  int
}

// FindAuditLogs retrieves a paginated, newest-first list of audit entries.
func FindAuditLogs(filter AuditLogFilter) ([]models.AuditLog, int64, error) {
	var logs []models.AuditLog
	var total int64

	query := database.DB.Model(&models.AuditLog{})
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Action != nil {
		query = query.Where("action = ?", *filter.Action)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at desc, id desc").Limit(filter.Limit).Offset(offsetFor(filter.Page, filter.Limit)).Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
