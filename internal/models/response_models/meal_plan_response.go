package response_models

import "tiffin/internal/models/db_models"

type MealPlanResponse struct {
	ID           string               `json:"id"`
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	Price        int64                `json:"price"`
	TotalMeals   int                  `json:"total_meals"`
	DurationDays int                  `json:"duration_days"`
	Tags         []string             `json:"tags,omitempty"`
	IsActive     bool                 `json:"is_active"`
	Weeks        []db_models.PlanWeek `json:"weeks,omitempty"`
}

type MealPlanListResponse struct {
	Plans    []MealPlanResponse `json:"plans"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}

func BuildMealPlanResponse(p *db_models.MealPlan) MealPlanResponse {
	return MealPlanResponse{
		ID:           p.ID.String(),
		Title:        p.Title,
		Description:  p.Description,
		Price:        p.Price,
		TotalMeals:   p.TotalMeals,
		DurationDays: p.DurationDays,
		Tags:         p.Tags,
		IsActive:     p.IsActive,
		Weeks:        p.Weeks,
	}
}
