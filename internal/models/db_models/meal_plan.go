package db_models

import (
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// MealPlan is the catalog template a membership is purchased against. The
// weekly schedule here is only a blueprint; each membership takes its own
// copy at creation and owns it from then on.
type MealPlan struct {
	BaseModel
	Title        string `gorm:"not null"`
	Description  string
	Price        int64 `gorm:"not null"`
	TotalMeals   int   `gorm:"not null"`
	DurationDays int
	Tags         pq.StringArray `gorm:"type:text[]"`
	IsActive     bool           `gorm:"default:true"`

	Weeks datatypes.JSONSlice[PlanWeek] `gorm:"type:jsonb"`
}
