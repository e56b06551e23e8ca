package transaction

import (
	"time"

	"finance-tracker-backend/internal/models"

	"github.com/shopspring/decimal"
)

// Amount fields accept a JSON number or a numeric string.
type CreateTransactionRequest struct {
	CategoryID  uint         `json:"category_id" binding:"required"`
	Amount      interface{}  `json:"amount" binding:"required" swaggertype:"number" example:"42.5"`
	Type        string       `json:"type" binding:"required" example:"expense"`
	Description string       `json:"description"`
	Date        *models.Date `json:"date" binding:"required" swaggertype:"string" example:"01/31/2024"`
}

type UpdateTransactionRequest struct {
	CategoryID  *uint        `json:"category_id,omitempty"`
	Amount      interface{}  `json:"amount,omitempty" swaggertype:"number"`
	Type        *string      `json:"type,omitempty"`
	Description *string      `json:"description,omitempty"`
	Date        *models.Date `json:"date,omitempty" swaggertype:"string" example:"01/31/2024"`
}

type ImportRequest struct {
	Records []map[string]interface{} `json:"records" binding:"required"`
}

type TransactionListItem struct {
	ID           uint                   `json:"id"`
	CreatedAt    time.Time              `json:"created_at"`
	UserID       uint                   `json:"user_id"`
	CategoryID   uint                   `json:"category_id"`
	CategoryName string                 `json:"category_name"`
	Amount       decimal.Decimal        `json:"amount" swaggertype:"number"`
	Type         models.TransactionType `json:"type"`
	Description  string                 `json:"description"`
	Date         models.Date            `json:"date" swaggertype:"string" example:"01/31/2024"`
}

type TransactionListResponse struct {
	Transactions []TransactionListItem `json:"transactions"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"page"`
	Limit        int                   `json:"limit"`
}

func NewTransactionListItem(t models.Transaction, categoryNames map[uint]string) TransactionListItem {
	return TransactionListItem{
		ID:           t.ID,
		CreatedAt:    t.CreatedAt,
		UserID:       t.UserID,
		CategoryID:   t.CategoryID,
		CategoryName: categoryNames[t.CategoryID],
		Amount:       t.Amount,
		Type:         t.Type,
		Description:  t.Description,
		Date:         t.Date,
	}
}
