package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tiffin/internal/models/request_models"
	"tiffin/internal/services"
	"tiffin/pkg/utils"
)

type MealPlanController struct {
	planService services.MealPlanServiceInterface
}

func NewMealPlanController(planService services.MealPlanServiceInterface) *MealPlanController {
	return &MealPlanController{
		planService: planService,
	}
}

func (mp *MealPlanController) CreateMealPlan(c *gin.Context) {
	var req request_models.CreateMealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	plan, err := mp.planService.CreateMealPlan(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, plan, "Meal plan created successfully")
}

func (mp *MealPlanController) ListMealPlans(c *gin.Context) {
	page, pageSize, ok := parsePagination(c)
	if !ok {
		return
	}
	activeOnly := c.Query("active") == "true"

	plans, err := mp.planService.ListMealPlans(c.Request.Context(), page, pageSize, activeOnly)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plans, "Meal plans fetched successfully")
}

func (mp *MealPlanController) GetMealPlanById(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		utils.RespondError(c, http.StatusBadRequest, "Meal plan ID is required")
		return
	}

	plan, err := mp.planService.GetMealPlanById(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plan, "Meal plan fetched successfully")
}

func (mp *MealPlanController) UpdateMealPlan(c *gin.Context) {
	id := c.Param("id")

	var req request_models.UpdateMealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	plan, err := mp.planService.UpdateMealPlan(c.Request.Context(), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plan, "Meal plan updated successfully")
}

func (mp *MealPlanController) DeleteMealPlan(c *gin.Context) {
	id := c.Param("id")

	if err := mp.planService.DeleteMealPlan(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Meal plan deleted successfully")
}
