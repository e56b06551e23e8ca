package transaction

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"finance-tracker-backend/internal/middleware"
	"finance-tracker-backend/internal/models"
	"finance-tracker-backend/internal/services"
	"finance-tracker-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func respondError(c *gin.Context, err error, fallback string) {
	utils.RespondError(c, err, fallback,
		utils.ErrorCase{Err: services.ErrValidation, Status: http.StatusBadRequest},
		utils.ErrorCase{Err: services.ErrEmptyImport, Status: http.StatusBadRequest},
		utils.ErrorCase{Err: services.ErrTransactionNotFound, Status: http.StatusNotFound, Message: "Transaction not found"},
		utils.ErrorCase{Err: services.ErrCategoryNotFound, Status: http.StatusBadRequest, Message: "Category not found"},
		utils.ErrorCase{Err: services.ErrUserNotFound, Status: http.StatusNotFound, Message: "User not found"},
	)
}

func parseOptionalAmount(raw interface{}) (*decimal.Decimal, error) {
	if raw == nil {
		return nil, nil
	}
	amount, err := utils.ParseAmount(raw)
	if err != nil {
		return nil, err
	}
	return &amount, nil
}

// ListTransactions godoc
// @Summary List my transactions
// @Description Get a paginated list of the authenticated user's transactions, newest first
// @Tags transactions
// @Produce json
// @Security Bearer
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param type query string false "income or expense"
// @Param category_id query int false "Filter by category"
// @Param start_date query string false "Inclusive start date"
// @Param end_date query string false "Inclusive end date"
// @Param min_amount query number false "Filter by minimum amount"
// @Param max_amount query number false "Filter by maximum amount"
// @Success 200 {object} utils.Response{data=TransactionListResponse}
// @Failure 400 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /transactions [get]
func ListTransactions(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)

	page, limit, ok := utils.ParsePagination(c)
	if !ok {
		return
	}
	filter, ok := ParseFilter(c, false)
	if !ok {
		return
	}
	filter.UserID = &actor.ID
	filter.Page = page
	filter.Limit = limit

	RespondTransactionList(c, filter)
}

// RespondTransactionList runs filter and writes the paginated list.
func RespondTransactionList(c *gin.Context, filter services.TransactionFilter) {
	transactions, total, err := services.FindTransactions(filter)
	if err != nil {
		respondError(c, err, "Failed to fetch transactions")
		return
	}

	names, err := CategoryNamesFor(transactions)
	if err != nil {
		respondError(c, err, "Failed to fetch transactions")
		return
	}

	items := make([]TransactionListItem, 0, len(transactions))
	for _, t := range transactions {
		items = append(items, NewTransactionListItem(t, names))
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Transactions retrieved successfully", TransactionListResponse{
		Transactions: items,
		Total:        total,
		Page:         filter.Page,
		Limit:        filter.Limit,
	}))
}

// CreateTransaction godoc
// @Summary Create a transaction
// @Description Record an income or expense in one of the user's categories. Expenses trigger a budget check.
// @Tags transactions
// @Accept json
// @Produce json
// @Security Bearer
// @Param body body CreateTransactionRequest true "Transaction"
// @Success 201 {object} utils.Response{data=models.Transaction}
// @Failure 400 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /transactions [post]
func CreateTransaction(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)

	var req CreateTransactionRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	amount, err := utils.ParseAmount(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		return
	}

	t, err := services.CreateTransaction(actor.ID, services.TransactionInput{
		CategoryID:  req.CategoryID,
		Amount:      amount,
		Type:        models.TransactionType(req.Type),
		Description: req.Description,
		Date:        *req.Date,
	})
	if err != nil {
		respondError(c, err, "Failed to create transaction")
		return
	}

	c.JSON(http.StatusCreated, utils.NewResponse(http.StatusCreated, "Transaction created successfully", t))
}

// GetTransaction godoc
// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Security Bearer
// @Param id path int true "Transaction ID"
// @Success 200 {object} utils.Response{data=models.Transaction}
// @Failure 404 {object} utils.Response
// @Router /transactions/{id} [get]
func GetTransaction(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)

	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid transaction ID"))
		return
	}

	t, err := services.GetTransaction(actor, id)
	if err != nil {
		respondError(c, err, "Failed to fetch transaction")
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Transaction retrieved successfully", t))
}

// UpdateTransaction godoc
// @Summary Update a transaction
// @Description Update fields of one of the user's transactions. Triggers a budget check.
// @Tags transactions
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Transaction ID"
// @Param body body UpdateTransactionRequest true "Fields to update"
// @Success 200 {object} utils.Response{data=models.Transaction}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /transactions/{id} [put]
func UpdateTransaction(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)

	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid transaction ID"))
		return
	}

	var req UpdateTransactionRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	amount, err := parseOptionalAmount(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		return
	}

	upd := services.TransactionUpdate{
		CategoryID:  req.CategoryID,
		Amount:      amount,
		Description: req.Description,
		Date:        req.Date,
	}
	if req.Type != nil {
		t := models.TransactionType(*req.Type)
		upd.Type = &t
	}

	t, err := services.UpdateTransaction(actor, id, upd)
	if err != nil {
		respondError(c, err, "Failed to update transaction")
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Transaction updated successfully", t))
}

// DeleteTransaction godoc
// @Summary Delete a transaction
// @Description Delete one of the user's transactions. Triggers a budget check.
// @Tags transactions
// @Produce json
// @Security Bearer
// @Param id path int true "Transaction ID"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /transactions/{id} [delete]
func DeleteTransaction(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)

	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid transaction ID"))
		return
	}

	if err := services.DeleteTransaction(actor, id); err != nil {
		respondError(c, err, "Failed to delete transaction")
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Transaction deleted successfully", nil))
}

// ExportTransactions godoc
// @Summary Export my transactions
// @Description Export the authenticated user's transactions matching the filters to CSV
// @Tags transactions
// @Produce text/csv
// @Security Bearer
// @Param type query string false "income or expense"
// @Param category_id query int false "Filter by category"
// @Param start_date query string false "Inclusive start date"
// @Param end_date query string false "Inclusive end date"
// @Success 200 {string} string "CSV content"
// @Failure 400 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /transactions/export [get]
func ExportTransactions(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)

	filter, ok := ParseFilter(c, false)
	if !ok {
		return
	}
	filter.UserID = &actor.ID

	RespondCSV(c, filter)
}

// RespondCSV writes every transaction matching filter as a CSV attachment.
func RespondCSV(c *gin.Context, filter services.TransactionFilter) {
	csvContent, err := services.ExportTransactionsCSV(filter)
	if err != nil {
		respondError(c, err, "Failed to generate CSV")
		return
	}

	filename := fmt.Sprintf("transactions_%s.csv", time.Now().Format("20060102150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv", csvContent)
}

// ImportTransactions godoc
// @Summary Import transactions
// @Description Bulk import rows given as JSON {"records": [...]} or as a multipart CSV upload in field "file". Invalid rows are reported without aborting the batch.
// @Tags transactions
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Param body body ImportRequest false "Records"
// @Param file formData file false "CSV file with a header row"
// @Success 200 {object} utils.Response{data=services.ImportResult}
// @Failure 400 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /transactions/import [post]
func ImportTransactions(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)

	var records []map[string]interface{}
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "file is required"))
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Failed to read uploaded file"))
			return
		}
		defer file.Close()

		records, err = services.ParseImportCSV(file)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
			return
		}
	} else {
		var req ImportRequest
		if !utils.BindAndValidate(c, &req) {
			return
		}
		records = req.Records
	}

	result, err := services.ImportTransactions(actor.ID, records)
	if err != nil {
		respondError(c, err, "Failed to import transactions")
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Import completed", result))
}
