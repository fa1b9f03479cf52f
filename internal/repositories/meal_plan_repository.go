package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"tiffin/internal/models/db_models"
)

type IMealPlanRepository interface {
	Insert(ctx context.Context, plan *db_models.MealPlan) error
	GetById(ctx context.Context, id string) (*db_models.MealPlan, error)
	List(ctx context.Context, page int, pageSize int, activeOnly bool) ([]db_models.MealPlan, int64, error)
	Update(ctx context.Context, plan *db_models.MealPlan) error
	SoftDelete(ctx context.Context, id string) error
}

type mealPlanRepository struct {
	db *gorm.DB
}

func NewMealPlanRepository(db *gorm.DB) IMealPlanRepository {
	return &mealPlanRepository{db: db}
}

func (r *mealPlanRepository) Insert(ctx context.Context, plan *db_models.MealPlan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

func (r *mealPlanRepository) GetById(ctx context.Context, id string) (*db_models.MealPlan, error) {
	var plan db_models.MealPlan
	err := r.db.WithContext(ctx).First(&plan, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &plan, nil
}

func (r *mealPlanRepository) List(ctx context.Context, page int, pageSize int, activeOnly bool) ([]db_models.MealPlan, int64, error) {
	var plans []db_models.MealPlan
	var total int64

	query := r.db.WithContext(ctx).Model(&db_models.MealPlan{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&plans).Error
	if err != nil {
		return nil, 0, err
	}

	return plans, total, nil
}

func (r *mealPlanRepository) Update(ctx context.Context, plan *db_models.MealPlan) error {
	return r.db.WithContext(ctx).Save(plan).Error
}

func (r *mealPlanRepository) SoftDelete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&db_models.MealPlan{}, "id = ?", id).Error
}
