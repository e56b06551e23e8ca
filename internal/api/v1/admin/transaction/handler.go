package transaction

import (
	userTransaction "finance-tracker-backend/internal/api/v1/transaction"
	"finance-tracker-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// ListTransactions godoc
// @Summary List transactions
// @Description Get a paginated list of every user's transactions with filtering. Admin only.
// @Tags admin
// @Produce json
// @Security Bearer
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param user_id query int false "Filter by user ID"
// @Param type query string false "income or expense"
// @Param category_id query int false "Filter by category"
// @Param start_date query string false "Inclusive start date"
// @Param end_date query string false "Inclusive end date"
// @Param min_amount query number false "Filter by minimum amount"
// @Param max_amount query number false "Filter by maximum amount"
// @Success 200 {object} utils.Response{data=transaction.TransactionListResponse}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /admin/transactions [get]
func ListTransactions(c *gin.Context) {
	page, limit, ok := utils.ParsePagination(c)
	if !ok {
		return
	}

	filter, ok := userTransaction.ParseFilter(c, true)
	if !ok {
		return
	}
	filter.Page = page
	filter.Limit = limit

	userTransaction.RespondTransactionList(c, filter)
}

// ExportTransactions godoc
// @Summary Export transactions
// @Description Export every transaction matching the filters to CSV. Admin only.
// @Tags admin
// @Produce text/csv
// @Security Bearer
// @Param user_id query int false "Filter by user ID"
// @Param type query string false "income or expense"
// @Param start_date query string false "Inclusive start date"
// @Param end_date query string false "Inclusive end date"
// @Success 200 {string} string "CSV content"
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /admin/transactions/export [get]
func ExportTransactions(c *gin.Context) {
	filter, ok := userTransaction.ParseFilter(c, true)
	if !ok {
		return
	}

	userTransaction.RespondCSV(c, filter)
}
