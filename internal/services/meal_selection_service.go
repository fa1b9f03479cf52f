package services

import (
	"context"
	"fmt"

	"tiffin/internal/models/db_models"
	"tiffin/internal/models/request_models"
	"tiffin/internal/models/response_models"
	"tiffin/internal/repositories"
	"tiffin/pkg/utils"
)

type MealSelectionServiceInterface interface {
	UpdateMealSelections(ctx context.Context, id string, req request_models.UpdateMealSelectionsRequest) (*response_models.MembershipResponse, error)
}

type MealSelectionService struct {
	membershipRepo repositories.IMembershipRepository
}

func NewMealSelectionService(membershipRepo repositories.IMembershipRepository) MealSelectionServiceInterface {
	return &MealSelectionService{membershipRepo: membershipRepo}
}

// UpdateMealSelections replaces the candidate items for the supplied meal
// types of one (week, day) slot. Editing is blocked as soon as any meal of
// that day has been consumed.
func (s *MealSelectionService) UpdateMealSelections(ctx context.Context, id string, req request_models.UpdateMealSelectionsRequest) (*response_models.MembershipResponse, error) {

	_, err := s.membershipRepo.MutateWithLock(ctx, id, func(m *db_models.Membership) error {
		if m.Status != db_models.MembershipActive {
			return utils.ErrNotActive
		}
		if len(m.Weeks) == 0 {
			return utils.ErrNoSchedule
		}

		supplied := 0
		for _, t := range db_models.AllMealTypes() {
			if req.Meals.ForType(t) != nil {
				supplied++
			}
		}
		if supplied == 0 {
			return fmt.Errorf("%w: at least one meal type is required", utils.ErrInvalidInput)
		}

		weeks := []db_models.MembershipWeek(m.Weeks)
		_, day, err := db_models.IndexWeeks(weeks).Day(req.Week, req.Day)
		if err != nil {
			return err
		}

		if consumed := day.ConsumedMeals.SetTypes(); day.IsConsumed || len(consumed) > 0 {
			return fmt.Errorf("%w: %s on %s of week %d",
				utils.ErrAlreadyConsumed, db_models.JoinMealTypes(consumed), req.Day, req.Week)
		}

		// Record a before/after diff only for types whose content actually
		// changed; comparison ignores ordering.
		var changes []db_models.MealChange
		for _, t := range db_models.AllMealTypes() {
			replacement := req.Meals.ForType(t)
			if replacement == nil {
				continue
			}
			before := day.Meals.ForType(t)
			if db_models.SameItems(before, *replacement) {
				continue
			}
			changes = append(changes, db_models.MealChange{
				MealType: t,
				Before:   append([]string(nil), before...),
				After:    append([]string(nil), *replacement...),
			})
			day.Meals.SetForType(t, append([]string(nil), *replacement...))
		}

		m.Weeks = weeks

		if len(changes) == 0 {
			return nil
		}

		notes := fmt.Sprintf("Meal selections updated for %s of week %d:", req.Day, req.Week)
		for _, ch := range changes {
			notes += fmt.Sprintf(" %s changed;", ch.MealType)
		}
		m.AppendHistory(db_models.HistoryEntry{
			Action:      db_models.ActionUpdated,
			Week:        req.Week,
			Day:         req.Day,
			MealChanges: changes,
			Notes:       notes,
		})
		return nil
	})
	if err != nil {
		return nil, mapMutationError(err)
	}

	membership, err := s.membershipRepo.GetById(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if membership == nil {
		return nil, utils.ErrMembershipNotFound
	}
	return response_models.BuildMembershipResponse(membership), nil
}
