package budget

import "finance-tracker-backend/internal/models"

type CreateBudgetRequest struct {
	CategoryID uint         `json:"category_id" binding:"required"`
	Amount     interface{}  `json:"amount" binding:"required" swaggertype:"number" example:"300"`
	StartDate  *models.Date `json:"start_date" binding:"required" swaggertype:"string" example:"01/01/2024"`
	EndDate    *models.Date `json:"end_date,omitempty" swaggertype:"string" example:"01/31/2024"`
}

// UpdateBudgetRequest edits a budget. Set clear_end_date to make the budget
// open-ended.
type UpdateBudgetRequest struct {
	CategoryID   *uint        `json:"category_id,omitempty"`
	Amount       interface{}  `json:"amount,omitempty" swaggertype:"number"`
	StartDate    *models.Date `json:"start_date,omitempty" swaggertype:"string"`
	EndDate      *models.Date `json:"end_date,omitempty" swaggertype:"string"`
	ClearEndDate bool         `json:"clear_end_date,omitempty"`
}
