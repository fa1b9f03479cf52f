package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"tiffin/internal/models/db_models"
	"tiffin/internal/models/request_models"
	"tiffin/internal/models/response_models"
	"tiffin/internal/repositories"
	"tiffin/pkg/utils"
)

type MembershipServiceInterface interface {
	CreateMembership(ctx context.Context, req request_models.CreateMembershipRequest) (*response_models.MembershipResponse, error)
	GetMembershipById(ctx context.Context, id string) (*response_models.MembershipResponse, error)
	ListMemberships(ctx context.Context, customerID string, status string, page int, pageSize int) (*response_models.MembershipListResponse, error)
	UpdateMembership(ctx context.Context, id string, req request_models.UpdateMembershipRequest) (*response_models.MembershipResponse, error)
	SetStatus(ctx context.Context, id string, target string) (*response_models.MembershipResponse, error)
	DeleteMembership(ctx context.Context, id string) error
}

type MembershipService struct {
	membershipRepo repositories.IMembershipRepository
	customerRepo   repositories.ICustomerRepository
	planRepo       repositories.IMealPlanRepository
}

func NewMembershipService(
	membershipRepo repositories.IMembershipRepository,
	customerRepo repositories.ICustomerRepository,
	planRepo repositories.IMealPlanRepository,
) MembershipServiceInterface {
	return &MembershipService{
		membershipRepo: membershipRepo,
		customerRepo:   customerRepo,
		planRepo:       planRepo,
	}
}

func (s *MembershipService) CreateMembership(ctx context.Context, req request_models.CreateMembershipRequest) (*response_models.MembershipResponse, error) {

	customer, err := s.customerRepo.GetById(ctx, req.CustomerID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if customer == nil {
		return nil, utils.ErrCustomerNotFound
	}

	plan, err := s.planRepo.GetById(ctx, req.MealPlanID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if plan == nil {
		return nil, utils.ErrPlanNotFound
	}

	if req.ReceivedAmount != req.TotalPrice {
		return nil, utils.ErrInvalidPayment
	}

	start := utils.NowUnixSeconds()
	if req.StartDate != nil {
		start = req.StartDate.Unix()
	}
	end := req.EndDate.Unix()
	if end <= start {
		return nil, fmt.Errorf("%w: endDate must be after startDate", utils.ErrInvalidInput)
	}

	// The membership takes its own copy of the schedule: the weeks override
	// when supplied, otherwise the plan template.
	source := req.Weeks
	if len(source) == 0 {
		source = plan.Weeks
	}
	var weeks []db_models.MembershipWeek
	if len(source) > 0 {
		weeks, err = db_models.BuildMembershipWeeks(source)
		if err != nil {
			return nil, err
		}
	}

	membership := &db_models.Membership{
		CustomerID:     customer.ID,
		MealPlanID:     plan.ID,
		TotalMeals:     req.TotalMeals,
		ConsumedMeals:  0,
		RemainingMeals: req.TotalMeals,
		StartDate:      start,
		EndDate:        end,
		Status:         db_models.MembershipActive,
		TotalPrice:     req.TotalPrice,
		ReceivedAmount: req.ReceivedAmount,
		PaymentStatus:  db_models.PaymentPaid,
		Note:           req.Note,
		Weeks:          weeks,
	}
	if req.PaymentMode != nil {
		mode := db_models.PaymentMode(*req.PaymentMode)
		membership.PaymentMode = &mode
	}

	membership.AppendHistory(db_models.HistoryEntry{
		Action:          db_models.ActionCreated,
		CurrentConsumed: 0,
		Notes:           fmt.Sprintf("Membership created with %d meals", req.TotalMeals),
	})

	if err := s.membershipRepo.Insert(ctx, membership); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return s.populated(ctx, membership.ID.String())
}

func (s *MembershipService) GetMembershipById(ctx context.Context, id string) (*response_models.MembershipResponse, error) {
	membership, err := s.membershipRepo.GetById(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if membership == nil {
		return nil, utils.ErrMembershipNotFound
	}

	return response_models.BuildMembershipResponse(membership), nil
}

func (s *MembershipService) ListMemberships(ctx context.Context, customerID string, status string, page int, pageSize int) (*response_models.MembershipListResponse, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	memberships, total, err := s.membershipRepo.List(ctx, customerID, status, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := &response_models.MembershipListResponse{
		Memberships: make([]response_models.MembershipResponse, 0, len(memberships)),
		Total:       total,
		Page:        page,
		PageSize:    pageSize,
	}
	for i := range memberships {
		out.Memberships = append(out.Memberships, *response_models.BuildMembershipResponse(&memberships[i]))
	}
	return out, nil
}

// UpdateMembership is the general mutation endpoint. Precedence: meal items
// are a consumption, else counter fields are consumption deltas, then
// payment fields, then the balance-derived status adjustment.
func (s *MembershipService) UpdateMembership(ctx context.Context, id string, req request_models.UpdateMembershipRequest) (*response_models.MembershipResponse, error) {

	_, err := s.membershipRepo.MutateWithLock(ctx, id, func(m *db_models.Membership) error {
		// A status supplied in the same call takes precedence over the
		// stored one when gating consumption.
		statusRequested := req.Status != nil
		if statusRequested {
			target := db_models.MembershipStatus(*req.Status)
			if target != m.Status {
				ev, evErr := db_models.StatusEvent(target)
				if evErr != nil {
					return evErr
				}
				next, trErr := db_models.NextStatus(m.Status, ev)
				if trErr != nil {
					return trErr
				}
				m.Status = next
			}
		}

		consumed := false
		var entry *db_models.HistoryEntry

		switch {
		case len(req.MealItems) > 0:
			if m.Status != db_models.MembershipActive {
				return utils.ErrNotActive
			}
			totalQty := 0
			items := make([]db_models.MealItem, 0, len(req.MealItems))
			now := utils.NowUnixSeconds()
			for _, it := range req.MealItems {
				qty := it.Qty
				if qty == 0 {
					qty = 1
				}
				totalQty += qty
				items = append(items, db_models.MealItem{
					Title:        it.Title,
					Qty:          qty,
					MealType:     db_models.MealType(it.MealType),
					PunchingTime: now,
				})
			}
			if totalQty > m.RemainingMeals {
				return fmt.Errorf("%w: requested %d, remaining %d", utils.ErrInsufficientBalance, totalQty, m.RemainingMeals)
			}
			m.ApplyConsumption(totalQty)
			consumed = true
			entry = &db_models.HistoryEntry{
				Action:          db_models.ActionConsumed,
				CurrentConsumed: totalQty,
				MealItems:       items,
				Notes:           fmt.Sprintf("%d meals consumed", totalQty),
			}

		case req.ConsumedMeals != nil || req.RemainingMeals != nil:
			if m.Status != db_models.MembershipActive {
				return utils.ErrNotActive
			}
			// Counter fields are deltas relative to current state, never
			// absolute targets: consumedMeals=N consumes N more meals now,
			// remainingMeals=R implies consuming currentRemaining-R.
			var delta int
			if req.ConsumedMeals != nil {
				delta = *req.ConsumedMeals
			} else {
				delta = m.RemainingMeals - *req.RemainingMeals
				if delta < 0 {
					return fmt.Errorf("%w: remaining meals cannot increase", utils.ErrInvalidInput)
				}
			}
			if delta > m.RemainingMeals {
				return fmt.Errorf("%w: requested %d, remaining %d", utils.ErrInsufficientBalance, delta, m.RemainingMeals)
			}
			m.ApplyConsumption(delta)
			consumed = true
			entry = &db_models.HistoryEntry{
				Action:          db_models.ActionConsumed,
				CurrentConsumed: delta,
				Notes:           fmt.Sprintf("%d meals consumed", delta),
			}
		}

		paid := false
		if req.ReceivedAmount != nil {
			if *req.ReceivedAmount != m.TotalPrice {
				return utils.ErrInvalidPayment
			}
			m.ReceivedAmount = *req.ReceivedAmount
			m.PaymentStatus = db_models.PaymentPaid
			paid = true
		}
		if req.PaymentMode != nil {
			mode := db_models.PaymentMode(*req.PaymentMode)
			m.PaymentMode = &mode
			paid = true
		}
		if req.Note != nil {
			m.Note = *req.Note
		}

		// Balance-derived status: zero remaining always completes; a stale
		// completed/hold reverts to active while meals remain, unless this
		// very call set the status explicitly.
		if m.RemainingMeals == 0 && m.Status == db_models.MembershipActive {
			m.Status, _ = db_models.NextStatus(m.Status, db_models.EventExhaust)
			if entry != nil {
				entry.Action = db_models.ActionCompleted
				entry.Notes += "; membership completed"
			}
		} else if m.RemainingMeals > 0 && !statusRequested &&
			(m.Status == db_models.MembershipCompleted || (m.Status == db_models.MembershipHold && consumed)) {
			m.Status, _ = db_models.NextStatus(m.Status, db_models.EventResume)
		}

		// Exactly one ledger entry per successful mutation.
		switch {
		case entry != nil:
			m.AppendHistory(*entry)
		case paid:
			m.AppendHistory(db_models.HistoryEntry{
				Action: db_models.ActionPaymentUpdated,
				Notes:  "Payment details updated",
			})
		default:
			m.AppendHistory(db_models.HistoryEntry{
				Action: db_models.ActionUpdated,
				Notes:  "Membership updated",
			})
		}
		return nil
	})
	if err != nil {
		return nil, mapMutationError(err)
	}

	return s.populated(ctx, id)
}

func (s *MembershipService) SetStatus(ctx context.Context, id string, target string) (*response_models.MembershipResponse, error) {
	ev, err := db_models.StatusEvent(db_models.MembershipStatus(target))
	if err != nil {
		return nil, err
	}

	_, err = s.membershipRepo.MutateWithLock(ctx, id, func(m *db_models.Membership) error {
		previous := m.Status
		next, trErr := db_models.NextStatus(m.Status, ev)
		if trErr != nil {
			return fmt.Errorf("%w: cannot move %s membership to %s", utils.ErrInvalidStatusChange, previous, target)
		}
		m.Status = next
		m.AppendHistory(db_models.HistoryEntry{
			Action: db_models.ActionUpdated,
			Notes:  fmt.Sprintf("Status changed from %s to %s", previous, next),
		})
		return nil
	})
	if err != nil {
		return nil, mapMutationError(err)
	}

	return s.populated(ctx, id)
}

func (s *MembershipService) DeleteMembership(ctx context.Context, id string) error {
	err := s.membershipRepo.HardDelete(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrMembershipNotFound
		}
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *MembershipService) populated(ctx context.Context, id string) (*response_models.MembershipResponse, error) {
	membership, err := s.membershipRepo.GetById(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if membership == nil {
		return nil, utils.ErrMembershipNotFound
	}
	return response_models.BuildMembershipResponse(membership), nil
}

// mapMutationError keeps business errors from the mutation callback intact
// and folds storage errors into the service taxonomy.
func mapMutationError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.ErrMembershipNotFound
	}
	for _, known := range []error{
		utils.ErrNotActive, utils.ErrInvalidPayment, utils.ErrInsufficientBalance,
		utils.ErrAlreadyConsumed, utils.ErrOutOfRange, utils.ErrNoMealTypes,
		utils.ErrAmbiguousTarget, utils.ErrNoSchedule, utils.ErrInvalidSchedule,
		utils.ErrInvalidStatusChange, utils.ErrInvalidInput,
		utils.ErrWeekNotFound, utils.ErrDayNotFound,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	return utils.ErrDatabaseError
}
