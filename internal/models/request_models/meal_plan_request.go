package request_models

import "tiffin/internal/models/db_models"

type CreateMealPlanRequest struct {
	Title        string               `json:"title" binding:"required,min=2,max=150"`
	Description  string               `json:"description"`
	Price        int64                `json:"price" binding:"gte=0"`
	TotalMeals   int                  `json:"total_meals" binding:"required,gt=0"`
	DurationDays int                  `json:"duration_days" binding:"gte=0"`
	Tags         []string             `json:"tags"`
	Weeks        []db_models.PlanWeek `json:"weeks" binding:"required"`
}

type UpdateMealPlanRequest struct {
	Title        *string              `json:"title" binding:"omitempty,min=2,max=150"`
	Description  *string              `json:"description"`
	Price        *int64               `json:"price" binding:"omitempty,gte=0"`
	TotalMeals   *int                 `json:"total_meals" binding:"omitempty,gt=0"`
	DurationDays *int                 `json:"duration_days" binding:"omitempty,gte=0"`
	Tags         []string             `json:"tags"`
	IsActive     *bool                `json:"is_active"`
	Weeks        []db_models.PlanWeek `json:"weeks"`
}
