package services

import (
	"context"

	"finance-tracker-backend/internal/database"
	"finance-tracker-backend/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type AdminStats struct {
	Users               int64           `json:"users"`
	ActiveUsers         int64           `json:"active_users"`
	Categories          int64           `json:"categories"`
	Transactions        int64           `json:"transactions"`
	Budgets             int64           `json:"budgets"`
	UnreadNotifications int64           `json:"unread_notifications"`
	TotalIncome         decimal.Decimal `json:"total_income"`
	TotalExpense        decimal.Decimal `json:"total_expense"`
}

// GetAdminStats gathers the aggregate counters concurrently.
func GetAdminStats(ctx context.Context) (*AdminStats, error) {
	stats := &AdminStats{}
	g, ctx := errgroup.WithContext(ctx)
	db := database.DB.WithContext(ctx)

	count := func(dst *int64, model interface{}, where ...interface{}) {
		g.Go(func() error {
			q := db.Model(model)
			if len(where) > 0 {
				q = q.Where(where[0], where[1:]...)
			}
			return q.Count(dst).Error
		})
	}
	sum := func(dst *decimal.Decimal, txType models.TransactionType) {
		g.Go(func() error {
			var total decimal.Decimal
			err := db.Model(&models.Transaction{}).
				Select("COALESCE(SUM(amount), 0)").
				Where("type = ?", txType).
				Row().Scan(&total)
			*dst = total.Round(2)
			return err
		})
	}

	count(&stats.Users, &models.User{})
	count(&stats.ActiveUsers, &models.User{}, "status = ?", models.StatusActive)
	count(&stats.Categories, &models.Category{})
	count(&stats.Transactions, &models.Transaction{})
	count(&stats.Budgets, &models.Budget{})
	count(&stats.UnreadNotifications, &models.Notification{}, "is_read = ?", false)
	sum(&stats.TotalIncome, models.TransactionTypeIncome)
	sum(&stats.TotalExpense, models.TransactionTypeExpense)

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}
