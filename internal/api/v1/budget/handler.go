package budget

import (
	"net/http"

	"finance-tracker-backend/internal/middleware"
	"finance-tracker-backend/internal/services"
	"finance-tracker-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, err error, fallback string) {
	utils.RespondError(c, err, fallback,
		utils.ErrorCase{Err: services.ErrValidation, Status: http.StatusBadRequest},
		utils.ErrorCase{Err: services.ErrCategoryNotFound, Status: http.StatusBadRequest, Message: "Category not found"},
		utils.ErrorCase{Err: services.ErrBudgetNotFound, Status: http.StatusNotFound, Message: "Budget not found"},
	)
}

// ListBudgets godoc
// @Summary List budgets
// @Tags budgets
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.Response{data=[]models.Budget}
// @Failure 500 {object} utils.Response
// @Router /budgets [get]
func ListBudgets(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)

	budgets, err := services.ListBudgets(actor.ID)
	if err != nil {
		respondError(c, err, "Failed to fetch budgets")
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Budgets retrieved successfully", budgets))
}

// BudgetSummary godoc
// @Summary Budget summary
// @Description Spent, remaining and percentage used for each budget over its own date window
// @Tags budgets
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.Response{data=[]services.BudgetSummary}
// @Failure 500 {object} utils.Response
// @Router /budgets/summary [get]
func BudgetSummary(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)

	summaries, err := services.BudgetSummaries(actor.ID)
	if err != nil {
		respondError(c, err, "Failed to compute budget summary")
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Budget summary retrieved successfully", summaries))
}

// CreateBudget godoc
// @Summary Create a budget
// @Description Create a spending limit for one of the user's categories. Omit end_date for an open-ended budget.
// @Tags budgets
// @Accept json
// @Produce json
// @Security Bearer
// @Param body body CreateBudgetRequest true "Budget"
// @Success 201 {object} utils.Response{data=models.Budget}
// @Failure 400 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /budgets [post]
func CreateBudget(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)

	var req CreateBudgetRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	amount, err := utils.ParseAmount(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		return
	}

	budget, err := services.CreateBudget(actor.ID, services.BudgetInput{
		CategoryID: req.CategoryID,
		Amount:     amount,
		StartDate:  *req.StartDate,
		EndDate:    req.EndDate,
	})
	if err != nil {
		respondError(c, err, "Failed to create budget")
		return
	}

	c.JSON(http.StatusCreated, utils.NewResponse(http.StatusCreated, "Budget created successfully", budget))
}

// UpdateBudget godoc
// @Summary Update a budget
// @Tags budgets
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Budget ID"
// @Param body body UpdateBudgetRequest true "Fields to update"
// @Success 200 {object} utils.Response{data=models.Budget}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /budgets/{id} [put]
func UpdateBudget(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)

	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid budget ID"))
		return
	}

	var req UpdateBudgetRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	upd := services.BudgetUpdate{
		CategoryID:   req.CategoryID,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		ClearEndDate: req.ClearEndDate,
	}
	if req.Amount != nil {
		amount, err := utils.ParseAmount(req.Amount)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
			return
		}
		upd.Amount = &amount
	}

	budget, err := services.UpdateBudget(actor, id, upd)
	if err != nil {
		respondError(c, err, "Failed to update budget")
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Budget updated successfully", budget))
}

// DeleteBudget godoc
// @Summary Delete a budget
// @Tags budgets
// @Produce json
// @Security Bearer
// @Param id path int true "Budget ID"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /budgets/{id} [delete]
func DeleteBudget(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)

	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid budget ID"))
		return
	}

	if err := services.DeleteBudget(actor, id); err != nil {
		respondError(c, err, "Failed to delete budget")
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Budget deleted successfully", nil))
}
