package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"tiffin/pkg/utils"
)

type MembershipStatus string

const (
	MembershipActive    MembershipStatus = "active"
	MembershipHold      MembershipStatus = "hold"
	MembershipCancelled MembershipStatus = "cancelled"
	MembershipCompleted MembershipStatus = "completed"
)

type PaymentMode string

const (
	PaymentCash   PaymentMode = "cash"
	PaymentCard   PaymentMode = "card"
	PaymentOnline PaymentMode = "online"
	PaymentLink   PaymentMode = "payment_link"
)

type PaymentStatus string

// Memberships only exist fully paid; partial payment has no persisted state.
const PaymentPaid PaymentStatus = "paid"

type HistoryAction string

const (
	ActionCreated        HistoryAction = "created"
	ActionConsumed       HistoryAction = "consumed"
	ActionUpdated        HistoryAction = "updated"
	ActionCompleted      HistoryAction = "completed"
	ActionPaymentUpdated HistoryAction = "payment_updated"
)

type MealItem struct {
	Title        string   `json:"title"`
	Qty          int      `json:"qty"`
	MealType     MealType `json:"meal_type"`
	PunchingTime int64    `json:"punching_time"`
	MoreOptions  string   `json:"more_options,omitempty"`
}

type MealChange struct {
	MealType MealType `json:"meal_type"`
	Before   []string `json:"before"`
	After    []string `json:"after"`
}

// HistoryEntry is immutable once appended. ConsumedMeals/RemainingMeals are
// the totals after the entry; CurrentConsumed is the delta of this entry.
type HistoryEntry struct {
	Action            HistoryAction `json:"action"`
	ConsumedMeals     int           `json:"consumed_meals"`
	RemainingMeals    int           `json:"remaining_meals"`
	CurrentConsumed   int           `json:"current_consumed"`
	Timestamp         int64         `json:"timestamp"`
	Notes             string        `json:"notes,omitempty"`
	MealItems         []MealItem    `json:"meal_items,omitempty"`
	Week              int           `json:"week,omitempty"`
	Day               string        `json:"day,omitempty"`
	ConsumedMealTypes []MealType    `json:"consumed_meal_types,omitempty"`
	MealChanges       []MealChange  `json:"meal_changes,omitempty"`
}

// Membership is one subscription purchase. The row is self-contained: the
// weekly schedule cloned from the plan and the full ledger live in jsonb
// columns, so core reads never join.
type Membership struct {
	BaseModel
	CustomerID uuid.UUID `gorm:"type:uuid;index"`
	MealPlanID uuid.UUID `gorm:"type:uuid;index"`

	TotalMeals     int `gorm:"not null"`
	ConsumedMeals  int `gorm:"not null;default:0"`
	RemainingMeals int `gorm:"not null;default:0"`

	StartDate int64 `gorm:"not null"`
	EndDate   int64 `gorm:"not null"`

	Status MembershipStatus `gorm:"size:16;index"`

	TotalPrice     int64
	ReceivedAmount int64
	PaymentMode    *PaymentMode  `gorm:"size:16"`
	PaymentStatus  PaymentStatus `gorm:"size:16"`
	Note           string

	Weeks   datatypes.JSONSlice[MembershipWeek] `gorm:"type:jsonb"`
	History datatypes.JSONSlice[HistoryEntry]   `gorm:"type:jsonb"`

	Customer Customer `gorm:"foreignKey:CustomerID"`
	MealPlan MealPlan `gorm:"foreignKey:MealPlanID"`
}

// AppendHistory stamps the entry with post-action totals and appends it.
// The ledger is append-only; nothing in the codebase rewrites past entries.
func (m *Membership) AppendHistory(e HistoryEntry) {
	e.ConsumedMeals = m.ConsumedMeals
	e.RemainingMeals = m.RemainingMeals
	if e.Timestamp == 0 {
		e.Timestamp = utils.NowUnixSeconds()
	}
	m.History = append(m.History, e)
}

// ApplyConsumption moves delta meals from remaining to consumed. Callers
// check the balance first; the counters always satisfy
// consumed + remaining == total.
func (m *Membership) ApplyConsumption(delta int) {
	m.ConsumedMeals += delta
	m.RemainingMeals -= delta
}

// MembershipEvent drives the status state machine.
type MembershipEvent string

const (
	EventActivate MembershipEvent = "activate"
	EventHold     MembershipEvent = "hold"
	EventCancel   MembershipEvent = "cancel"
	EventExhaust  MembershipEvent = "exhaust" // remaining meals reached zero
	EventResume   MembershipEvent = "resume"  // remaining meals back above zero
)

// NextStatus is the single transition table for membership status. Every
// status change in the service layer goes through here; cancelled and
// completed are absorbing except for the stale-completed resume.
func NextStatus(current MembershipStatus, ev MembershipEvent) (MembershipStatus, error) {
	switch current {
	case MembershipActive:
		switch ev {
		case EventActivate, EventResume:
			return MembershipActive, nil
		case EventHold:
			return MembershipHold, nil
		case EventCancel:
			return MembershipCancelled, nil
		case EventExhaust:
			return MembershipCompleted, nil
		}
	case MembershipHold:
		switch ev {
		case EventActivate, EventResume:
			return MembershipActive, nil
		case EventHold:
			return MembershipHold, nil
		case EventCancel:
			return MembershipCancelled, nil
		}
	case MembershipCompleted:
		switch ev {
		case EventResume:
			return MembershipActive, nil
		case EventExhaust:
			return MembershipCompleted, nil
		}
	case MembershipCancelled:
		if ev == EventCancel {
			return MembershipCancelled, nil
		}
	}
	return current, utils.ErrInvalidStatusChange
}

// StatusEvent maps a requested target status onto its manual event.
func StatusEvent(target MembershipStatus) (MembershipEvent, error) {
	switch target {
	case MembershipActive:
		return EventActivate, nil
	case MembershipHold:
		return EventHold, nil
	case MembershipCancelled:
		return EventCancel, nil
	}
	// completed is derived from the balance, never set directly
	return "", utils.ErrInvalidStatusChange
}
