package category

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
		utils.ErrorCase{Err: services.ErrCategoryNotFound, Status: http.StatusNotFound, Message: "Category not found"},
		utils.ErrorCase{Err: services.ErrForbidden, Status: http.StatusForbidden, Message: "You are not allowed to modify this category"},
		utils.ErrorCase{Err: services.ErrCategoryExists, Status: http.StatusConflict},
	)
}

// ListCategories godoc
// @Summary List categories
// @Description List the authenticated user's categories ordered by name
// @Tags categories
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.Response{data=[]models.Category}
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /categories [get]
func ListCategories(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)

	categories, err := services.ListCategories(actor.ID)
	if err != nil {
		respondError(c, err, "Failed to fetch categories")
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Categories retrieved successfully", categories))
}

// CreateCategory godoc
// @Summary Create a category
// @Description Create a category. Names are unique per user.
// @Tags categories
// @Accept json
// @Produce json
// @Security Bearer
// @Param body body CreateCategoryRequest true "Category"
// @Success 201 {object} utils.Response{data=models.Category}
// @Failure 400 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /categories [post]
func CreateCategory(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)

	var req CreateCategoryRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	category, err := services.CreateCategory(actor.ID, req.Name, req.Type)
	if err != nil {
		respondError(c, err, "Failed to create category")
		return
	}

	c.JSON(http.StatusCreated, utils.NewResponse(http.StatusCreated, "Category created successfully", category))
}

// UpdateCategory godoc
// @Summary Update a category
// @Description Rename or retype a category. Allowed for the owner and for admins.
// @Tags categories
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Category ID"
// @Param body body UpdateCategoryRequest true "Fields to update"
// @Success 200 {object} utils.Response{data=models.Category}
// @Failure 400 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /categories/{id} [put]
func UpdateCategory(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)

	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid category ID"))
		return
	}

	var req UpdateCategoryRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	category, err := services.UpdateCategory(actor, id, req.Name, req.Type)
	if err != nil {
		respondError(c, err, "Failed to update category")
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Category updated successfully", category))
}

// DeleteCategory godoc
// @Summary Delete a category
// @Description Delete a category with its transactions and budgets. Allowed for the owner and for admins.
// @Tags categories
// @Produce json
// @Security Bearer
// @Param id path int true "Category ID"
// @Success 200 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /categories/{id} [delete]
func DeleteCategory(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)

	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid category ID"))
		return
	}

	if err := services.DeleteCategory(actor, id); err != nil {
		respondError(c, err, "Failed to delete category")
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Category deleted successfully", nil))
}
