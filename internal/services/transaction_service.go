package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
	"time"

	"finance-tracker-backend/internal/database"
	"finance-tracker-backend/internal/models"
	"finance-tracker-backend/internal/policy"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrTransactionNotFound = errors.New("transaction not found")

// Evaluator trigger names, used in logs.
const (
	TriggerTransactionCreate = "transaction_create"
	TriggerTransactionUpdate = "transaction_update"
	TriggerTransactionDelete = "transaction_delete"
	TriggerImport            = "transaction_import"
)

// TransactionFilter defines criteria for filtering transactions
type TransactionFilter struct {
	UserID     *uint
	Type       *models.TransactionType
	CategoryID *uint
	StartDate  *models.Date
	EndDate    *models.Date
	MinAmount  *decimal.Decimal
	MaxAmount  *decimal.Decimal
	Page       int
	Limit      int
}

func (f TransactionFilter) apply(query *gorm.DB) *gorm.DB {
	if f.UserID != nil {
		query = query.Where("user_id = ?", *f.UserID)
	}
	if f.Type != nil {
		query = query.Where("type = ?", *f.Type)
	}
	if f.CategoryID != nil {
		query = query.Where("category_id = ?", *f.CategoryID)
	}
	if f.StartDate != nil {
		query = query.Where("date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		query = query.Where("date <= ?", *f.EndDate)
	}
	if f.MinAmount != nil {
		query = query.Where("amount >= ?", *f.MinAmount)
	}
	if f.MaxAmount != nil {
		query = query.Where("amount <= ?", *f.MaxAmount)
	}
	return query
}

// FindTransactions retrieves a paginated list of transactions with filtering.
// A Limit of 0 returns every match.
func FindTransactions(filter TransactionFilter) ([]models.Transaction, int64, error) {
	var transactions []models.Transaction
	var total int64

	query := filter.apply(database.DB.Model(&models.Transaction{}))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("date desc, id desc")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(offsetFor(filter.Page, filter.Limit))
	}
	if err := query.Find(&transactions).Error; err != nil {
		return nil, 0, err
	}

	return transactions, total, nil
}

type TransactionInput struct {
	CategoryID  uint
	Amount      decimal.Decimal
	Type        models.TransactionType
	Description string
	Date        models.Date
}

// normalize lowercases the type and rounds the amount to cents so the
// positivity check sees the stored value.
func (in *TransactionInput) normalize() {
	in.Type = models.TransactionType(strings.ToLower(string(in.Type)))
	in.Amount = in.Amount.Round(2)
}

func (in TransactionInput) validate() error {
	if !in.Type.Valid() {
		return validationError("type must be income or expense")
	}
	if !in.Amount.IsPositive() {
		return validationError("amount must be greater than zero")
	}
	if in.Date.IsZero() {
		return validationError("date is required")
	}
	if in.CategoryID == 0 {
		return validationError("category_id is required")
	}
	return nil
}

// CreateTransaction records a transaction for userID in one of their own
// categories. Expense inserts trigger budget evaluation.
func CreateTransaction(userID uint, in TransactionInput) (*models.Transaction, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}

	t := &models.Transaction{
		UserID:      userID,
		CategoryID:  in.CategoryID,
		Amount:      in.Amount,
		Type:        in.Type,
		Description: strings.TrimSpace(in.Description),
		Date:        in.Date,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := ensureCategoryOwned(tx, userID, in.CategoryID); err != nil {
			return err
		}
		if err := tx.Create(t).Error; err != nil {
			return err
		}
		return RecordAudit(tx, userID, models.AuditAddTransaction,
			fmt.Sprintf("Added %s of %s on %s", t.Type, t.Amount.StringFixed(2), t.Date),
			map[string]interface{}{"transaction_id": t.ID})
	})
	if err != nil {
		return nil, err
	}

	if t.Type == models.TransactionTypeExpense {
		EvaluateBudgetsQuietly(userID, TriggerTransactionCreate)
	}
	return t, nil
}

// GetTransaction returns a transaction the actor owns.
func GetTransaction(actor policy.Actor, id uint) (*models.Transaction, error) {
	var t models.Transaction
	if err := database.DB.First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	if err := authorize(actor, policy.TransactionRead, t.UserID, ErrTransactionNotFound); err != nil {
		return nil, err
	}
	return &t, nil
}

type TransactionUpdate struct {
	CategoryID  *uint
	Amount      *decimal.Decimal
	Type        *models.TransactionType
	Description *string
	Date        *models.Date
}

func UpdateTransaction(actor policy.Actor, id uint, upd TransactionUpdate) (*models.Transaction, error) {
	t, err := GetTransaction(actor, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, policy.TransactionUpdate, t.UserID, ErrTransactionNotFound); err != nil {
		return nil, err
	}

	in := TransactionInput{
		CategoryID:  t.CategoryID,
		Amount:      t.Amount,
		Type:        t.Type,
		Description: t.Description,
		Date:        t.Date,
	}
	if upd.CategoryID != nil {
		in.CategoryID = *upd.CategoryID
	}
	if upd.Amount != nil {
		in.Amount = *upd.Amount
	}
	if upd.Type != nil {
		in.Type = models.TransactionType(strings.ToLower(string(*upd.Type)))
	}
	if upd.Description != nil {
		in.Description = strings.TrimSpace(*upd.Description)
	}
	if upd.Date != nil {
		in.Date = *upd.Date
	}
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if in.CategoryID != t.CategoryID {
			if _, err := ensureCategoryOwned(tx, t.UserID, in.CategoryID); err != nil {
				return err
			}
		}
		err := tx.Model(t).Updates(map[string]interface{}{
			"category_id": in.CategoryID,
			"amount":      in.Amount,
			"type":        in.Type,
			"description": in.Description,
			"date":        in.Date,
		}).Error
		if err != nil {
			return err
		}
		return RecordAudit(tx, actor.ID, models.AuditUpdateTransaction, fmt.Sprintf("Updated transaction %d", id),
			map[string]interface{}{"transaction_id": id})
	})
	if err != nil {
		return nil, err
	}

	EvaluateBudgetsQuietly(t.UserID, TriggerTransactionUpdate)

	var updated models.Transaction
	if err := database.DB.First(&updated, id).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

func DeleteTransaction(actor policy.Actor, id uint) error {
	t, err := GetTransaction(actor, id)
	if err != nil {
		return err
	}
	if err := authorize(actor, policy.TransactionDelete, t.UserID, ErrTransactionNotFound); err != nil {
		return err
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Transaction{}, id).Error; err != nil {
			return err
		}
		return RecordAudit(tx, actor.ID, models.AuditDeleteTransaction,
			fmt.Sprintf("Deleted %s of %s on %s", t.Type, t.Amount.StringFixed(2), t.Date),
			map[string]interface{}{"transaction_id": id})
	})
	if err != nil {
		return err
	}

	EvaluateBudgetsQuietly(t.UserID, TriggerTransactionDelete)
	return nil
}

// GenerateTransactionCSV generates a CSV file content for transactions.
// categoryNames may be nil.
func GenerateTransactionCSV(transactions []models.Transaction, categoryNames map[uint]string) ([]byte, error) {
	b := &bytes.Buffer{}
	w := csv.NewWriter(b)

	// Write header
	header := []string{
		"ID", "Date", "User ID", "Category ID", "Category",
		"Type", "Amount", "Description", "Created At",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	// Write data
	for _, t := range transactions {
		record := []string{
			fmt.Sprintf("%d", t.ID),
			t.Date.String(),
			fmt.Sprintf("%d", t.UserID),
			fmt.Sprintf("%d", t.CategoryID),
			categoryNames[t.CategoryID],
			string(t.Type),
			t.Amount.StringFixed(2),
			t.Description,
			t.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

// ExportTransactionsCSV renders every transaction matching filter.
func ExportTransactionsCSV(filter TransactionFilter) ([]byte, error) {
	filter.Limit = 0
	transactions, _, err := FindTransactions(filter)
	if err != nil {
		return nil, err
	}

	seen := map[uint]bool{}
	var ids []uint
	for _, t := range transactions {
		if !seen[t.CategoryID] {
			seen[t.CategoryID] = true
			ids = append(ids, t.CategoryID)
		}
	}
	names, err := CategoryNames(ids)
	if err != nil {
		return nil, err
	}
	return GenerateTransactionCSV(transactions, names)
}
