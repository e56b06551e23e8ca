package services

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"finance-tracker-backend/internal/database"
	"finance-tracker-backend/internal/models"
	"finance-tracker-backend/internal/utils"
	"finance-tracker-backend/pkg/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrEmptyImport = errors.New("records must be a non-empty array")

type ImportRowError struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

type ImportResult struct {
	InsertedCount int              `json:"insertedCount"`
	ErrorCount    int              `json:"errorCount"`
	Errors        []ImportRowError `json:"errors"`
}

func (r *ImportResult) reject(index int, err error) {
	r.ErrorCount++
	r.Errors = append(r.Errors, ImportRowError{Index: index, Error: err.Error()})
}

type importRow struct {
	date         models.Date
	description  string
	categoryName string
	txType       models.TransactionType
	amount       decimal.Decimal
}

// recordField returns the first non-empty value among keys; see isEmptyField. Callers list
// the capitalized key first so it wins when both spellings are present.
func recordField(record map[string]interface{}, keys ...string) interface{} {
	for _, key := range keys {
		v, ok := record[key]
		if !ok || v == nil {
			continue
		}
		if isEmptyField(v) {
			continue
		}
		return v
	}
	return nil
}

// isEmptyField treats blank strings and numeric zero as absent.
func isEmptyField(v interface{}) bool {
	switch n := v.(type) {
	case string:
		return strings.TrimSpace(n) == ""
	case float64:
		return n == 0
	case int:
		return n == 0
	case int64:
		return n == 0
	case json.Number:
		f, err := n.Float64()
		return err == nil && f == 0
	}
	return false
}

func recordString(record map[string]interface{}, keys ...string) string {
	v := recordField(record, keys...)
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

// parseImportRecord validates one row. Checks run in a fixed order (date,
// type, amount, category) and the first failure is reported.
func parseImportRecord(record map[string]interface{}) (importRow, error) {
	var row importRow

	canonical, ok := utils.NormalizeDate(recordString(record, "Date", "date"))
	if !ok {
		return row, errors.New("invalid or missing date")
	}
	parsed, err := utils.ParseCanonicalDate(canonical)
	if err != nil {
		return row, fmt.Errorf("invalid date %q", canonical)
	}
	row.date = models.DateOf(parsed)

	row.txType = models.TransactionType(strings.ToLower(recordString(record, "Type", "type")))
	if !row.txType.Valid() {
		return row, errors.New("type must be income or expense")
	}

	amount, err := utils.ParseAmount(recordField(record, "Amount", "amount"))
	if err != nil {
		return row, errors.New("amount must be a positive number")
	}
	row.amount = amount.Round(2)
	if !row.amount.IsPositive() {
		return row, errors.New("amount must be a positive number")
	}

	row.categoryName = recordString(record, "Category", "category")
	if row.categoryName == "" {
		return row, errors.New("category is required")
	}

	row.description = recordString(record, "Description", "description")
	return row, nil
}

// ImportTransactions inserts records for userID in order. Invalid rows are
// reported in the result without aborting the batch; each valid row's
// category resolution and insert commit together. Budgets are evaluated
// once afterwards if any expense was inserted.
func ImportTransactions(userID uint, records []map[string]interface{}) (*ImportResult, error) {
	if len(records) == 0 {
		return nil, ErrEmptyImport
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	result := &ImportResult{Errors: []ImportRowError{}}
	resolver := NewCategoryResolver(userID)
	insertedExpense := false

	for i, record := range records {
		row, err := parseImportRecord(record)
		if err != nil {
			result.reject(i, err)
			continue
		}

		var category models.Category
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			var err error
			category, err = resolver.Resolve(tx, row.categoryName, string(row.txType))
			if err != nil {
				return err
			}
			return tx.Create(&models.Transaction{
				UserID:      userID,
				CategoryID:  category.ID,
				Amount:      row.amount,
				Type:        row.txType,
				Description: row.description,
				Date:        row.date,
			}).Error
		})
		if err != nil {
			logger.Log.Error("Import row failed", zap.Uint("user_id", userID), zap.Int("index", i), zap.Error(err))
			result.reject(i, errors.New("failed to save transaction"))
			continue
		}

		resolver.Remember(category)
		result.InsertedCount++
		if row.txType == models.TransactionTypeExpense {
			insertedExpense = true
		}
	}

	if insertedExpense {
		EvaluateBudgetsQuietly(userID, TriggerImport)
	}

	details := fmt.Sprintf("Imported %d transactions, %d failed", result.InsertedCount, result.ErrorCount)
	if err := RecordAudit(database.DB, userID, models.AuditImportTransactions, details, map[string]interface{}{
		"insertedCount": result.InsertedCount,
		"errorCount":    result.ErrorCount,
	}); err != nil {
		logger.Log.Error("Failed to record import audit", zap.Uint("user_id", userID), zap.Error(err))
	}

	return result, nil
}

// ParseImportCSV reads a CSV upload whose header row names the record keys.
func ParseImportCSV(r io.Reader) ([]map[string]interface{}, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyImport
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	var records []map[string]interface{}
	for {
		line, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", len(records)+1, err)
		}

		record := make(map[string]interface{}, len(header))
		for i, key := range header {
			if key == "" || i >= len(line) {
				continue
			}
			record[key] = line[i]
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, ErrEmptyImport
	}
	return records, nil
}
