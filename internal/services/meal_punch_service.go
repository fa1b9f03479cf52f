package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tiffin/internal/models/db_models"
	"tiffin/internal/models/request_models"
	"tiffin/internal/models/response_models"
	"tiffin/internal/repositories"
	"tiffin/pkg/utils"
)

type MealPunchServiceInterface interface {
	PunchMeals(ctx context.Context, id string, req request_models.PunchRequest) (*response_models.MembershipResponse, error)
}

type MealPunchService struct {
	membershipRepo repositories.IMembershipRepository
	now            func() time.Time
}

func NewMealPunchService(membershipRepo repositories.IMembershipRepository) MealPunchServiceInterface {
	return &MealPunchService{
		membershipRepo: membershipRepo,
		now:            time.Now,
	}
}

// punchTarget is the resolved (week, day) slot plus the calendar date it
// corresponds to, kept for the ledger.
type punchTarget struct {
	week int
	day  string
	date time.Time
}

// resolveTarget turns the request addressing into a schedule slot. Exactly
// one of date-based or week/day-based addressing may be used; a bare week
// or bare day is malformed. With neither, today is assumed.
func (s *MealPunchService) resolveTarget(m *db_models.Membership, req request_models.PunchRequest) (punchTarget, error) {
	start := utils.FromUnixSeconds(m.StartDate)
	end := utils.FromUnixSeconds(m.EndDate)

	if req.Date != nil && (req.Week != nil || req.Day != nil) {
		return punchTarget{}, utils.ErrAmbiguousTarget
	}
	if (req.Week == nil) != (req.Day == nil) {
		return punchTarget{}, utils.ErrAmbiguousTarget
	}

	if req.Week != nil {
		week := *req.Week
		day := *req.Day
		idx, _ := db_models.DayIndex(day)
		// Calendar date reconstructed for audit only: offset from the start
		// date by whole weeks plus the weekday alignment.
		offset := (idx - int(start.Weekday()) + 7) % 7
		date := utils.StartOfDay(start).AddDate(0, 0, (week-1)*7+offset)
		return punchTarget{week: week, day: day, date: date}, nil
	}

	date := s.now()
	if req.Date != nil {
		date = *req.Date
	}
	if utils.StartOfDay(date).Before(utils.StartOfDay(start)) || utils.StartOfDay(date).After(utils.StartOfDay(end)) {
		return punchTarget{}, fmt.Errorf("%w: %s is not within %s and %s",
			utils.ErrOutOfRange,
			date.Format("2006-01-02"), start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	days := utils.DaysBetween(start, date)
	return punchTarget{
		week: days/7 + 1,
		day:  db_models.DayNameOf(date),
		date: date,
	}, nil
}

// PunchMeals marks meal types of one day as consumed, exactly once each,
// against the shared balance.
func (s *MealPunchService) PunchMeals(ctx context.Context, id string, req request_models.PunchRequest) (*response_models.MembershipResponse, error) {

	_, err := s.membershipRepo.MutateWithLock(ctx, id, func(m *db_models.Membership) error {
		if m.Status != db_models.MembershipActive {
			return utils.ErrNotActive
		}
		if len(m.Weeks) == 0 {
			return utils.ErrNoSchedule
		}

		target, err := s.resolveTarget(m, req)
		if err != nil {
			return err
		}

		weeks := []db_models.MembershipWeek(m.Weeks)
		week, day, err := db_models.IndexWeeks(weeks).Day(target.week, target.day)
		if err != nil {
			return err
		}

		quantityMode := len(req.MealItems) > 0
		var requested []db_models.MealType
		if quantityMode {
			for _, it := range req.MealItems {
				requested = append(requested, db_models.MealType(it.MealType))
			}
		} else {
			for _, t := range req.ConsumedMealTypes {
				requested = append(requested, db_models.MealType(t))
			}
		}
		if len(requested) == 0 {
			return utils.ErrNoMealTypes
		}

		// Re-punching a type is silently skipped; it only becomes an error
		// when nothing in the request is left to consume.
		var newly, skipped []db_models.MealType
		seen := map[db_models.MealType]bool{}
		for _, t := range requested {
			if seen[t] {
				continue
			}
			seen[t] = true
			if day.ConsumedMeals.IsSet(t) {
				skipped = append(skipped, t)
			} else {
				newly = append(newly, t)
			}
		}
		if len(newly) == 0 {
			return fmt.Errorf("%w: %s on %s of week %d",
				utils.ErrAlreadyConsumed, db_models.JoinMealTypes(skipped), target.day, target.week)
		}

		// Quantity mode charges the full requested quantity, including
		// items for types that were already consumed.
		charge := len(newly)
		if quantityMode {
			charge = 0
			for _, it := range req.MealItems {
				qty := it.Qty
				if qty == 0 {
					qty = 1
				}
				charge += qty
			}
		}
		if charge > m.RemainingMeals {
			return fmt.Errorf("%w: requested %d, remaining %d", utils.ErrInsufficientBalance, charge, m.RemainingMeals)
		}

		punchedAt := s.now().Unix()
		var items []db_models.MealItem
		if quantityMode {
			for _, it := range req.MealItems {
				qty := it.Qty
				if qty == 0 {
					qty = 1
				}
				items = append(items, db_models.MealItem{
					Title:        it.Title,
					Qty:          qty,
					MealType:     db_models.MealType(it.MealType),
					PunchingTime: punchedAt,
				})
			}
		} else {
			for _, t := range newly {
				candidates := day.Meals.ForType(t)
				item := db_models.MealItem{Qty: 1, MealType: t, PunchingTime: punchedAt}
				if len(candidates) > 0 {
					item.Title = candidates[0]
					item.MoreOptions = strings.Join(candidates[1:], ", ")
				}
				items = append(items, item)
			}
		}

		for _, t := range newly {
			day.ConsumedMeals.Set(t)
		}
		week.Recompute()
		m.Weeks = weeks

		m.ApplyConsumption(charge)

		entry := db_models.HistoryEntry{
			Action:            db_models.ActionConsumed,
			CurrentConsumed:   charge,
			Week:              target.week,
			Day:               target.day,
			ConsumedMealTypes: newly,
			MealItems:         items,
			Notes:             req.Notes,
		}
		if entry.Notes == "" {
			entry.Notes = fmt.Sprintf("Punched %s for %s (%s)",
				db_models.JoinMealTypes(newly), target.day, target.date.Format("2006-01-02"))
		}

		if m.RemainingMeals == 0 {
			m.Status, _ = db_models.NextStatus(m.Status, db_models.EventExhaust)
			entry.Action = db_models.ActionCompleted
			entry.Notes += "; membership completed"
		}

		m.AppendHistory(entry)
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
