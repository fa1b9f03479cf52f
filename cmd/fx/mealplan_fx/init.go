package mealplan_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"tiffin/internal/repositories"
	"tiffin/internal/services"
)

var Module = fx.Provide(provideMealPlanRepo, provideMealPlanService)

func provideMealPlanRepo(db *gorm.DB) repositories.IMealPlanRepository {
	return repositories.NewMealPlanRepository(db)
}

func provideMealPlanService(planRepo repositories.IMealPlanRepository) services.MealPlanServiceInterface {
	return services.NewMealPlanService(planRepo)
}
