package response_models

import (
	"github.com/google/uuid"

	"tiffin/internal/models/db_models"
	"tiffin/pkg/utils"
)

// CustomerSummary is the populated customer reference embedded in every
// membership response.
type CustomerSummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Status  string `json:"status"`
}

type MealPlanSummary struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Price        int64  `json:"price"`
	TotalMeals   int    `json:"total_meals"`
	DurationDays int    `json:"duration_days"`
}

type MembershipResponse struct {
	ID             string  `json:"id"`
	CustomerID     string  `json:"customer_id"`
	MealPlanID     string  `json:"meal_plan_id"`
	TotalMeals     int     `json:"total_meals"`
	ConsumedMeals  int     `json:"consumed_meals"`
	RemainingMeals int     `json:"remaining_meals"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	Status         string  `json:"status"`
	TotalPrice     int64   `json:"total_price"`
	ReceivedAmount int64   `json:"received_amount"`
	PaymentMode    *string `json:"payment_mode,omitempty"`
	PaymentStatus  string  `json:"payment_status"`
	Note           string  `json:"note,omitempty"`

	Weeks   []db_models.MembershipWeek `json:"weeks"`
	History []db_models.HistoryEntry   `json:"history"`

	Customer *CustomerSummary `json:"customer,omitempty"`
	MealPlan *MealPlanSummary `json:"meal_plan,omitempty"`
}

type MembershipListResponse struct {
	Memberships []MembershipResponse `json:"memberships"`
	Total       int64                `json:"total"`
	Page        int                  `json:"page"`
	PageSize    int                  `json:"page_size"`
}

func BuildMembershipResponse(m *db_models.Membership) *MembershipResponse {
	out := &MembershipResponse{
		ID:             m.ID.String(),
		CustomerID:     m.CustomerID.String(),
		MealPlanID:     m.MealPlanID.String(),
		TotalMeals:     m.TotalMeals,
		ConsumedMeals:  m.ConsumedMeals,
		RemainingMeals: m.RemainingMeals,
		StartDate:      utils.FormatRFC3339(utils.FromUnixSeconds(m.StartDate)),
		EndDate:        utils.FormatRFC3339(utils.FromUnixSeconds(m.EndDate)),
		Status:         string(m.Status),
		TotalPrice:     m.TotalPrice,
		ReceivedAmount: m.ReceivedAmount,
		PaymentStatus:  string(m.PaymentStatus),
		Note:           m.Note,
		Weeks:          m.Weeks,
		History:        m.History,
	}
	if m.PaymentMode != nil {
		mode := string(*m.PaymentMode)
		out.PaymentMode = &mode
	}
	if m.Customer.ID != uuid.Nil {
		out.Customer = &CustomerSummary{
			ID:      m.Customer.ID.String(),
			Name:    m.Customer.Name,
			Email:   m.Customer.Email,
			Phone:   m.Customer.Phone,
			Address: m.Customer.Address,
			Status:  string(m.Customer.Status),
		}
	}
	if m.MealPlan.ID != uuid.Nil {
		out.MealPlan = &MealPlanSummary{
			ID:           m.MealPlan.ID.String(),
			Title:        m.MealPlan.Title,
			Description:  m.MealPlan.Description,
			Price:        m.MealPlan.Price,
			TotalMeals:   m.MealPlan.TotalMeals,
			DurationDays: m.MealPlan.DurationDays,
		}
	}
	return out
}
