package services

import (
	"context"
	"errors"
	"fmt"

	"finance-tracker-backend/internal/database"
	"finance-tracker-backend/internal/events"
	"finance-tracker-backend/internal/models"
	"finance-tracker-backend/internal/policy"
	"finance-tracker-backend/pkg/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotificationNotFound = errors.New("notification not found")

var (
	hundred          = decimal.NewFromInt(100)
	warningThreshold = decimal.NewFromInt(80)
)

// ClassifySpend maps a spend percentage to at most one tier. Tiers are
// checked from most to least severe; ok is false below the warning
// threshold. The fully-used tier compares the percentage rounded half away
// from zero, so 99.5 counts as 100.
func ClassifySpend(percentage decimal.Decimal) (models.NotificationType, bool) {
	switch {
	case percentage.GreaterThan(hundred):
		return models.NotificationBudgetExceeded, true
	case percentage.Round(0).Equal(hundred):
		return models.NotificationBudgetFullyUsed, true
	case percentage.GreaterThanOrEqual(warningThreshold):
		return models.NotificationBudgetWarning, true
	default:
		return "", false
	}
}

// SumExpenses totals expense transactions of userID in categoryID dated
// within [start, end]. A nil end leaves the range open.
func SumExpenses(userID, categoryID uint, start models.Date, end *models.Date) (decimal.Decimal, error) {
	query := database.DB.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND category_id = ? AND type = ?", userID, categoryID, models.TransactionTypeExpense).
		Where("date >= ?", start)
	if end != nil {
		query = query.Where("date <= ?", *end)
	}

	var total decimal.Decimal
	if err := query.Row().Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum expenses: %w", err)
	}
	return total.Round(2), nil
}

func budgetMessage(tier models.NotificationType, categoryName string, spent, amount, percentage decimal.Decimal) string {
	switch tier {
	case models.NotificationBudgetExceeded:
		return fmt.Sprintf("Budget for %q exceeded by %s. Spent %s of %s.",
			categoryName, spent.Sub(amount).StringFixed(2), spent.StringFixed(2), amount.StringFixed(2))
	case models.NotificationBudgetFullyUsed:
		return fmt.Sprintf("Budget for %q is fully used (100%%). Spent %s of %s.",
			categoryName, spent.StringFixed(2), amount.StringFixed(2))
	default:
		return fmt.Sprintf("You have used %s%% of your %q budget (%s of %s).",
			percentage.Round(0).String(), categoryName, spent.StringFixed(2), amount.StringFixed(2))
	}
}

// categoryLabel resolves a display name, falling back to "Category <id>"
// when the category no longer exists.
func categoryLabel(categoryID uint, cache map[uint]string) (string, error) {
	if name, ok := cache[categoryID]; ok {
		return name, nil
	}
	var category models.Category
	err := database.DB.First(&category, categoryID).Error
	switch {
	case err == nil:
		cache[categoryID] = category.Name
	case errors.Is(err, gorm.ErrRecordNotFound):
		cache[categoryID] = fmt.Sprintf("Category %d", categoryID)
	default:
		return "", fmt.Errorf("lookup category %d: %w", categoryID, err)
	}
	return cache[categoryID], nil
}

// EvaluateBudgets recomputes spend for every budget of userID and inserts at
// most one notification per (type, category) per calendar day. Only rows
// inserted by this call are returned.
func EvaluateBudgets(userID uint) ([]models.Notification, error) {
	var budgets []models.Budget
	if err := database.DB.Where("user_id = ?", userID).Order("id").Find(&budgets).Error; err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}

	day := Now().In(NotificationLocation).Format("2006-01-02")
	names := map[uint]string{}
	created := []models.Notification{}

	for _, budget := range budgets {
		if !budget.Amount.IsPositive() {
			continue
		}

		spent, err := SumExpenses(userID, budget.CategoryID, budget.StartDate, budget.EndDate)
		if err != nil {
			return created, err
		}

		percentage := spent.Div(budget.Amount).Mul(hundred)
		tier, ok := ClassifySpend(percentage)
		if !ok {
			continue
		}

		label, err := categoryLabel(budget.CategoryID, names)
		if err != nil {
			return created, err
		}

		categoryID := budget.CategoryID
		notification := models.Notification{
			UserID:     userID,
			Type:       tier,
			CategoryID: &categoryID,
			Message:    budgetMessage(tier, label, spent, budget.Amount, percentage),
			DedupKey:   models.NotificationDedupKey(userID, tier, &categoryID, day),
		}

		result := database.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&notification)
		if result.Error != nil {
			return created, fmt.Errorf("insert notification: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			// already notified today
			continue
		}

		created = append(created, notification)
		if err := events.PublishNotification(context.Background(), notification); err != nil {
			logger.Log.Warn("Failed to publish notification event",
				zap.Uint("notification_id", notification.ID), zap.Error(err))
		}
	}

	return created, nil
}

// EvaluateBudgetsQuietly runs EvaluateBudgets as a side effect of a write.
// Failures are logged and dropped so the triggering write still succeeds.
func EvaluateBudgetsQuietly(userID uint, trigger string) []models.Notification {
	created, err := EvaluateBudgets(userID)
	if err != nil {
		logger.Log.Error("Budget evaluation failed",
			zap.Uint("user_id", userID),
			zap.String("trigger", trigger),
			zap.Error(err))
		return nil
	}
	return created
}

// ListNotifications returns the user's notifications newest first, plus the
// unread count.
func ListNotifications(userID uint) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	if err := database.DB.Where("user_id = ?", userID).Order("created_at desc, id desc").Find(&notifications).Error; err != nil {
		return nil, 0, err
	}
	unread, err := CountUnreadNotifications(userID)
	if err != nil {
		return nil, 0, err
	}
	return notifications, unread, nil
}

func CountUnreadNotifications(userID uint) (int64, error) {
	var unread int64
	err := database.DB.Model(&models.Notification{}).Where("user_id = ? AND is_read = ?", userID, false).Count(&unread).Error
	return unread, err
}

func findOwnedNotification(actor policy.Actor, action policy.Action, id uint) (*models.Notification, error) {
	var n models.Notification
	if err := database.DB.First(&n, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	if err := authorize(actor, action, n.UserID, ErrNotificationNotFound); err != nil {
		return nil, err
	}
	return &n, nil
}

func MarkNotificationRead(actor policy.Actor, id uint) (*models.Notification, error) {
	n, err := findOwnedNotification(actor, policy.NotificationUpdate, id)
	if err != nil {
		return nil, err
	}
	if err := database.DB.Model(n).Update("is_read", true).Error; err != nil {
		return nil, err
	}
	n.IsRead = true
	return n, nil
}

// MarkAllNotificationsRead returns how many notifications changed.
func MarkAllNotificationsRead(userID uint) (int64, error) {
	result := database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

func DeleteNotification(actor policy.Actor, id uint) error {
	n, err := findOwnedNotification(actor, policy.NotificationDelete, id)
	if err != nil {
		return err
	}
	return database.DB.Delete(&models.Notification{}, n.ID).Error
}
