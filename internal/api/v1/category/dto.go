package category

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=255"`
	Type string `json:"type" binding:"max=50" example:"expense"`
}

type UpdateCategoryRequest struct {
	Name *string `json:"name,omitempty" binding:"omitempty,max=255"`
	Type *string `json:"type,omitempty" binding:"omitempty,max=50"`
}
