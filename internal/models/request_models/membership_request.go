package request_models

import (
	"time"

	"tiffin/internal/models/db_models"
)

// Each membership endpoint has its own strict request shape; there is no
// shared patch-bag. Field names mirror the dashboard's JSON contract.

type CreateMembershipRequest struct {
	CustomerID     string               `json:"userId" binding:"required,uuid4"`
	MealPlanID     string               `json:"mealPlanId" binding:"required,uuid4"`
	TotalMeals     int                  `json:"totalMeals" binding:"required,gt=0"`
	TotalPrice     int64                `json:"totalPrice" binding:"gte=0"`
	ReceivedAmount int64                `json:"receivedAmount" binding:"gte=0"`
	PaymentMode    *string              `json:"paymentMode" binding:"omitempty,oneof=cash card online payment_link"`
	Note           string               `json:"note"`
	StartDate      *time.Time           `json:"startDate"`
	EndDate        time.Time            `json:"endDate" binding:"required"`
	Weeks          []db_models.PlanWeek `json:"weeks"`
}

type MealItemRequest struct {
	MealType string `json:"mealType" binding:"required,oneof=breakfast lunch snacks dinner"`
	Title    string `json:"mealItemTitle"`
	Qty      int    `json:"qty" binding:"omitempty,gte=1"`
}

type UpdateMembershipRequest struct {
	ConsumedMeals  *int              `json:"consumedMeals" binding:"omitempty,gte=0"`
	RemainingMeals *int              `json:"remainingMeals" binding:"omitempty,gte=0"`
	ReceivedAmount *int64            `json:"receivedAmount" binding:"omitempty,gte=0"`
	PaymentMode    *string           `json:"paymentMode" binding:"omitempty,oneof=cash card online payment_link"`
	Note           *string           `json:"note"`
	Status         *string           `json:"status" binding:"omitempty,oneof=active hold cancelled"`
	MealItems      []MealItemRequest `json:"mealItems" binding:"omitempty,dive"`
}

type SetMembershipStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=hold active cancelled"`
}

type PunchRequest struct {
	Date              *time.Time        `json:"date"`
	Week              *int              `json:"week" binding:"omitempty,gte=1"`
	Day               *string           `json:"day" binding:"omitempty,oneof=sunday monday tuesday wednesday thursday friday saturday"`
	ConsumedMealTypes []string          `json:"consumedMealTypes" binding:"omitempty,dive,oneof=breakfast lunch snacks dinner"`
	MealItems         []MealItemRequest `json:"mealItems" binding:"omitempty,dive"`
	Notes             string            `json:"notes"`
}

type MealSelections struct {
	Breakfast *[]string `json:"breakfast"`
	Lunch     *[]string `json:"lunch"`
	Snacks    *[]string `json:"snacks"`
	Dinner    *[]string `json:"dinner"`
}

// ForType returns the replacement list for a meal type, nil when the type
// was not supplied at all.
func (m MealSelections) ForType(t db_models.MealType) *[]string {
	switch t {
	case db_models.MealBreakfast:
		return m.Breakfast
	case db_models.MealLunch:
		return m.Lunch
	case db_models.MealSnacks:
		return m.Snacks
	case db_models.MealDinner:
		return m.Dinner
	}
	return nil
}

type UpdateMealSelectionsRequest struct {
	Week  int            `json:"week" binding:"required,gte=1"`
	Day   string         `json:"day" binding:"required,oneof=sunday monday tuesday wednesday thursday friday saturday"`
	Meals MealSelections `json:"meals" binding:"required"`
}
