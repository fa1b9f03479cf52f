package services

import (
	"context"

	"tiffin/internal/models/db_models"
	"tiffin/internal/models/request_models"
	"tiffin/internal/models/response_models"
	"tiffin/internal/repositories"
	"tiffin/pkg/utils"
)

type MealPlanServiceInterface interface {
	CreateMealPlan(ctx context.Context, req request_models.CreateMealPlanRequest) (*response_models.MealPlanResponse, error)
	GetMealPlanById(ctx context.Context, id string) (*response_models.MealPlanResponse, error)
	ListMealPlans(ctx context.Context, page int, pageSize int, activeOnly bool) (*response_models.MealPlanListResponse, error)
	UpdateMealPlan(ctx context.Context, id string, req request_models.UpdateMealPlanRequest) (*response_models.MealPlanResponse, error)
	DeleteMealPlan(ctx context.Context, id string) error
}

type MealPlanService struct {
	planRepo repositories.IMealPlanRepository
}

func NewMealPlanService(planRepo repositories.IMealPlanRepository) MealPlanServiceInterface {
	return &MealPlanService{planRepo: planRepo}
}

func (s *MealPlanService) CreateMealPlan(ctx context.Context, req request_models.CreateMealPlanRequest) (*response_models.MealPlanResponse, error) {

	if err := db_models.ValidatePlanWeeks(req.Weeks); err != nil {
		return nil, err
	}

	plan := &db_models.MealPlan{
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		TotalMeals:   req.TotalMeals,
		DurationDays: req.DurationDays,
		Tags:         req.Tags,
		IsActive:     true,
		Weeks:        req.Weeks,
	}
	if err := s.planRepo.Insert(ctx, plan); err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := response_models.BuildMealPlanResponse(plan)
	return &out, nil
}

func (s *MealPlanService) GetMealPlanById(ctx context.Context, id string) (*response_models.MealPlanResponse, error) {
	plan, err := s.planRepo.GetById(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if plan == nil {
		return nil, utils.ErrPlanNotFound
	}

	out := response_models.BuildMealPlanResponse(plan)
	return &out, nil
}

func (s *MealPlanService) ListMealPlans(ctx context.Context, page int, pageSize int, activeOnly bool) (*response_models.MealPlanListResponse, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	plans, total, err := s.planRepo.List(ctx, page, pageSize, activeOnly)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := &response_models.MealPlanListResponse{
		Plans:    make([]response_models.MealPlanResponse, 0, len(plans)),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
	for i := range plans {
		out.Plans = append(out.Plans, response_models.BuildMealPlanResponse(&plans[i]))
	}
	return out, nil
}

func (s *MealPlanService) UpdateMealPlan(ctx context.Context, id string, req request_models.UpdateMealPlanRequest) (*response_models.MealPlanResponse, error) {
	plan, err := s.planRepo.GetById(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if plan == nil {
		return nil, utils.ErrPlanNotFound
	}

	if req.Title != nil {
		plan.Title = *req.Title
	}
	if req.Description != nil {
		plan.Description = *req.Description
	}
	if req.Price != nil {
		plan.Price = *req.Price
	}
	if req.TotalMeals != nil {
		plan.TotalMeals = *req.TotalMeals
	}
	if req.DurationDays != nil {
		plan.DurationDays = *req.DurationDays
	}
	if req.Tags != nil {
		plan.Tags = req.Tags
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}
	if req.Weeks != nil {
		// Existing memberships keep their own copy; edits here only affect
		// memberships created afterwards.
		if err := db_models.ValidatePlanWeeks(req.Weeks); err != nil {
			return nil, err
		}
		plan.Weeks = req.Weeks
	}

	if err := s.planRepo.Update(ctx, plan); err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := response_models.BuildMealPlanResponse(plan)
	return &out, nil
}

func (s *MealPlanService) DeleteMealPlan(ctx context.Context, id string) error {
	plan, err := s.planRepo.GetById(ctx, id)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if plan == nil {
		return utils.ErrPlanNotFound
	}

	if err := s.planRepo.SoftDelete(ctx, id); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}
