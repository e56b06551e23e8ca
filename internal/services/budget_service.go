package services

import (
	"errors"

	"finance-tracker-backend/internal/database"
	"finance-tracker-backend/internal/models"
	"finance-tracker-backend/internal/policy"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrBudgetNotFound = errors.New("budget not found")

type BudgetInput struct {
	CategoryID uint
	Amount     decimal.Decimal
	StartDate  models.Date
	EndDate    *models.Date
}

func (in BudgetInput) validate() error {
	if in.CategoryID == 0 {
		return validationError("category_id is required")
	}
	// Amounts are stored in cents; sub-cent values round to zero.
	if !in.Amount.Round(2).IsPositive() {
		return validationError("amount must be greater than zero")
	}
	if in.StartDate.IsZero() {
		return validationError("start_date is required")
	}
	if in.EndDate != nil && in.EndDate.Before(in.StartDate.Time) {
		return validationError("end_date must not be before start_date")
	}
	return nil
}

func ListBudgets(userID uint) ([]models.Budget, error) {
	var budgets []models.Budget
	if err := database.DB.Where("user_id = ?", userID).Order("id").Find(&budgets).Error; err != nil {
		return nil, err
	}
	return budgets, nil
}

func CreateBudget(userID uint, in BudgetInput) (*models.Budget, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if _, err := ensureCategoryOwned(database.DB, userID, in.CategoryID); err != nil {
		return nil, err
	}

	budget := &models.Budget{
		UserID:     userID,
		CategoryID: in.CategoryID,
		Amount:     in.Amount.Round(2),
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
	}
	if err := database.DB.Create(budget).Error; err != nil {
		return nil, err
	}
	return budget, nil
}

func GetBudget(actor policy.Actor, id uint) (*models.Budget, error) {
	var budget models.Budget
	if err := database.DB.First(&budget, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBudgetNotFound
		}
		return nil, err
	}
	if err := authorize(actor, policy.BudgetRead, budget.UserID, ErrBudgetNotFound); err != nil {
		return nil, err
	}
	return &budget, nil
}

type BudgetUpdate struct {
	CategoryID   *uint
	Amount       *decimal.Decimal
	StartDate    *models.Date
	EndDate      *models.Date
	ClearEndDate bool
}

func UpdateBudget(actor policy.Actor, id uint, upd BudgetUpdate) (*models.Budget, error) {
	budget, err := GetBudget(actor, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, policy.BudgetUpdate, budget.UserID, ErrBudgetNotFound); err != nil {
		return nil, err
	}

	in := BudgetInput{
		CategoryID: budget.CategoryID,
		Amount:     budget.Amount,
		StartDate:  budget.StartDate,
		EndDate:    budget.EndDate,
	}
	if upd.CategoryID != nil {
		in.CategoryID = *upd.CategoryID
	}
	if upd.Amount != nil {
		in.Amount = *upd.Amount
	}
	if upd.StartDate != nil {
		in.StartDate = *upd.StartDate
	}
	if upd.EndDate != nil {
		in.EndDate = upd.EndDate
	}
	if upd.ClearEndDate {
		in.EndDate = nil
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	if in.CategoryID != budget.CategoryID {
		if _, err := ensureCategoryOwned(database.DB, budget.UserID, in.CategoryID); err != nil {
			return nil, err
		}
	}

	updates := map[string]interface{}{
		"category_id": in.CategoryID,
		"amount":      in.Amount.Round(2),
		"start_date":  in.StartDate,
		"end_date":    nil,
	}
	if in.EndDate != nil {
		updates["end_date"] = *in.EndDate
	}
	err = database.DB.Model(budget).Updates(updates).Error
	if err != nil {
		return nil, err
	}
	return GetBudget(actor, id)
}

func DeleteBudget(actor policy.Actor, id uint) error {
	budget, err := GetBudget(actor, id)
	if err != nil {
		return err
	}
	if err := authorize(actor, policy.BudgetDelete, budget.UserID, ErrBudgetNotFound); err != nil {
		return err
	}
	return database.DB.Delete(&models.Budget{}, id).Error
}

// BudgetSummary reports spend against a budget over its own window.
type BudgetSummary struct {
	Budget       models.Budget   `json:"budget"`
	CategoryName string          `json:"category_name"`
	Spent        decimal.Decimal `json:"spent"`
	Remaining    decimal.Decimal `json:"remaining"`
	Percentage   decimal.Decimal `json:"percentage"`
}

func BudgetSummaries(userID uint) ([]BudgetSummary, error) {
	budgets, err := ListBudgets(userID)
	if err != nil {
		return nil, err
	}

	names := map[uint]string{}
	summaries := make([]BudgetSummary, 0, len(budgets))
	for _, b := range budgets {
		spent, err := SumExpenses(userID, b.CategoryID, b.StartDate, b.EndDate)
		if err != nil {
			return nil, err
		}
		label, err := categoryLabel(b.CategoryID, names)
		if err != nil {
			return nil, err
		}

		percentage := decimal.Zero
		if b.Amount.IsPositive() {
			percentage = spent.Div(b.Amount).Mul(hundred).Round(2)
		}
		summaries = append(summaries, BudgetSummary{
			Budget:       b,
			CategoryName: label,
			Spent:        spent,
			Remaining:    b.Amount.Sub(spent),
			Percentage:   percentage,
		})
	}
	return summaries, nil
}
