package models

import (
	"time"

	"gorm.io/datatypes"
)

type AuditAction string

const (
	AuditRegisterUser       AuditAction = "REGISTER_USER"
	AuditUpdateUser         AuditAction = "UPDATE_USER"
	AuditDeleteUser         AuditAction = "DELETE_USER"
	AuditAddCategory        AuditAction = "ADD_CATEGORY"
	AuditUpdateCategory     AuditAction = "UPDATE_CATEGORY"
	AuditDeleteCategory     AuditAction = "DELETE_CATEGORY"
	AuditAddTransaction     AuditAction = "ADD_TRANSACTION"
	AuditUpdateTransaction  AuditAction = "UPDATE_TRANSACTION"
	AuditDeleteTransaction  AuditAction = "DELETE_TRANSACTION"
	AuditImportTransactions AuditAction = "IMPORT_TRANSACTIONS"
	AuditUpdateProfile      AuditAction = "UPDATE_PROFILE"
)

// AuditLog is append-only.
type AuditLog struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UserID    uint           `gorm:"index;not null" json:"user_id"`
	Action    AuditAction    `gorm:"type:varchar(40);index;not null" json:"action"`
	Details   string         `gorm:"type:text" json:"details"`
	Metadata  datatypes.JSON `json:"metadata,omitempty" swaggertype:"object"`
}

func (AuditLog) TableName() string {
	return "auditlogs"
}
