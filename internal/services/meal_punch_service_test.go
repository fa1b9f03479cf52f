package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"tiffin/internal/models/db_models"
	"tiffin/internal/models/request_models"
	"tiffin/internal/services"
	"tiffin/pkg/utils"
)

func newPunchFixture(t *testing.T, totalMeals int) (services.MealPunchServiceInterface, *mockMembershipRepo, string) {
	t.Helper()
	repo := newMockMembershipRepo()
	id := seedMembership(t, repo, testMembership(t, totalMeals))
	return services.NewMealPunchService(repo), repo, id
}

func dateAt(offsetDays int) *time.Time {
	d := testStart.AddDate(0, 0, offsetDays)
	return &d
}

func findDay(t *testing.T, repo *mockMembershipRepo, id string, week int, day string) db_models.MembershipDay {
	t.Helper()
	m, _ := repo.GetById(context.Background(), id)
	if m == nil {
		t.Fatal("membership disappeared")
	}
	_, d, err := db_models.IndexWeeks([]db_models.MembershipWeek(m.Weeks)).Day(week, day)
	if err != nil {
		t.Fatalf("looking up %s of week %d: %v", day, week, err)
	}
	return *d
}

func TestPunchMeals_ByDate(t *testing.T) {
	svc, repo, id := newPunchFixture(t, 112)

	resp, err := svc.PunchMeals(context.Background(), id, request_models.PunchRequest{
		Date:              dateAt(0),
		ConsumedMealTypes: []string{"breakfast", "lunch"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.ConsumedMeals != 2 || resp.RemainingMeals != 110 {
		t.Fatalf("expected 2/110, got %d/%d", resp.ConsumedMeals, resp.RemainingMeals)
	}

	day := findDay(t, repo, id, 1, "monday")
	if !day.ConsumedMeals.Breakfast || !day.ConsumedMeals.Lunch {
		t.Fatalf("breakfast and lunch flags not set: %+v", day.ConsumedMeals)
	}
	if day.ConsumedMeals.Snacks || day.ConsumedMeals.Dinner {
		t.Fatalf("untouched flags flipped: %+v", day.ConsumedMeals)
	}
	if day.IsConsumed {
		t.Fatal("day must not be fully consumed after two of four meal types")
	}

	last := resp.History[len(resp.History)-1]
	if last.Action != db_models.ActionConsumed || last.Week != 1 || last.Day != "monday" {
		t.Fatalf("unexpected ledger entry: %+v", last)
	}
	if len(last.ConsumedMealTypes) != 2 {
		t.Fatalf("expected two consumed types in ledger, got %v", last.ConsumedMealTypes)
	}
	checkInvariant(t, repo, id)
}

func TestPunchMeals_DateMapsToLaterWeek(t *testing.T) {
	svc, _, id := newPunchFixture(t, 112)

	// start is a Monday; eight days later is the Tuesday of week 2
	resp, err := svc.PunchMeals(context.Background(), id, request_models.PunchRequest{
		Date:              dateAt(8),
		ConsumedMealTypes: []string{"dinner"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	last := resp.History[len(resp.History)-1]
	if last.Week != 2 || last.Day != "tuesday" {
		t.Fatalf("expected week 2 tuesday, got week %d %s", last.Week, last.Day)
	}
}

func TestPunchMeals_ByWeekAndDay(t *testing.T) {
	svc, repo, id := newPunchFixture(t, 112)

	week, day := 2, "friday"
	resp, err := svc.PunchMeals(context.Background(), id, request_models.PunchRequest{
		Week:              &week,
		Day:               &day,
		ConsumedMealTypes: []string{"snacks"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.RemainingMeals != 111 {
		t.Fatalf("expected 111 remaining, got %d", resp.RemainingMeals)
	}
	got := findDay(t, repo, id, 2, "friday")
	if !got.ConsumedMeals.Snacks {
		t.Fatal("snacks flag not set on week 2 friday")
	}
}

func TestPunchMeals_TargetErrors(t *testing.T) {
	week, day := 1, "monday"
	badWeek := 5

	tests := []struct {
		name    string
		req     request_models.PunchRequest
		wantErr error
	}{
		{"date before start", request_models.PunchRequest{Date: dateAt(-1), ConsumedMealTypes: []string{"lunch"}}, utils.ErrOutOfRange},
		{"date after end", request_models.PunchRequest{Date: dateAt(40), ConsumedMealTypes: []string{"lunch"}}, utils.ErrOutOfRange},
		{"date and week together", request_models.PunchRequest{Date: dateAt(0), Week: &week, ConsumedMealTypes: []string{"lunch"}}, utils.ErrAmbiguousTarget},
		{"week without day", request_models.PunchRequest{Week: &week, ConsumedMealTypes: []string{"lunch"}}, utils.ErrAmbiguousTarget},
		{"day without week", request_models.PunchRequest{Day: &day, ConsumedMealTypes: []string{"lunch"}}, utils.ErrAmbiguousTarget},
		{"week outside schedule", request_models.PunchRequest{Week: &badWeek, Day: &day, ConsumedMealTypes: []string{"lunch"}}, utils.ErrWeekNotFound},
		{"no meal types", request_models.PunchRequest{Date: dateAt(0)}, utils.ErrNoMealTypes},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, repo, id := newPunchFixture(t, 112)
			if _, err := svc.PunchMeals(context.Background(), id, tc.req); !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			m, _ := repo.GetById(context.Background(), id)
			if m.ConsumedMeals != 0 {
				t.Fatal("failed punch must not consume")
			}
		})
	}
}

func TestPunchMeals_RepunchSkipsConsumedTypes(t *testing.T) {
	svc, repo, id := newPunchFixture(t, 112)

	punch := func(types ...string) error {
		_, err := svc.PunchMeals(context.Background(), id, request_models.PunchRequest{
			Date:              dateAt(0),
			ConsumedMealTypes: types,
		})
		return err
	}

	if err := punch("breakfast", "lunch"); err != nil {
		t.Fatalf("first punch: %v", err)
	}

	// overlap: only dinner is newly consumed, only dinner is charged
	if err := punch("breakfast", "dinner"); err != nil {
		t.Fatalf("overlapping punch: %v", err)
	}
	m, _ := repo.GetById(context.Background(), id)
	if m.ConsumedMeals != 3 {
		t.Fatalf("expected 3 consumed after overlap punch, got %d", m.ConsumedMeals)
	}

	// nothing left in the request to consume
	err := punch("breakfast", "lunch", "dinner")
	if !errors.Is(err, utils.ErrAlreadyConsumed) {
		t.Fatalf("expected ErrAlreadyConsumed, got %v", err)
	}
	if !strings.Contains(err.Error(), "breakfast") {
		t.Fatalf("error should name the consumed types, got %q", err.Error())
	}
	checkInvariant(t, repo, id)
}

func TestPunchMeals_DuplicateTypesCountOnce(t *testing.T) {
	svc, repo, id := newPunchFixture(t, 112)

	_, err := svc.PunchMeals(context.Background(), id, request_models.PunchRequest{
		Date:              dateAt(0),
		ConsumedMealTypes: []string{"lunch", "lunch", "lunch"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, _ := repo.GetById(context.Background(), id)
	if m.ConsumedMeals != 1 {
		t.Fatalf("duplicates must collapse to one, got %d consumed", m.ConsumedMeals)
	}
	checkInvariant(t, repo, id)
}

func TestPunchMeals_QuantityMode(t *testing.T) {
	svc, repo, id := newPunchFixture(t, 112)

	resp, err := svc.PunchMeals(context.Background(), id, request_models.PunchRequest{
		Date: dateAt(0),
		MealItems: []request_models.MealItemRequest{
			{MealType: "breakfast", Title: "Poha", Qty: 2},
			{MealType: "lunch", Title: "Veg Thali"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.ConsumedMeals != 3 {
		t.Fatalf("expected charge of 3 (qty 2 + default 1), got %d", resp.ConsumedMeals)
	}
	last := resp.History[len(resp.History)-1]
	if len(last.MealItems) != 2 || last.MealItems[0].Title != "Poha" {
		t.Fatalf("expected requested items in ledger, got %+v", last.MealItems)
	}

	// a later quantity punch is charged in full even for the type that is
	// already consumed, as long as something in it is newly consumed
	resp, err = svc.PunchMeals(context.Background(), id, request_models.PunchRequest{
		Date: dateAt(0),
		MealItems: []request_models.MealItemRequest{
			{MealType: "breakfast", Title: "Upma", Qty: 1},
			{MealType: "dinner", Title: "Khichdi", Qty: 1},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.ConsumedMeals != 5 {
		t.Fatalf("expected full charge of 2 on overlap, got total %d", resp.ConsumedMeals)
	}
	day := findDay(t, repo, id, 1, "monday")
	if !day.ConsumedMeals.Dinner {
		t.Fatal("dinner flag not set")
	}
	checkInvariant(t, repo, id)
}

func TestPunchMeals_SimpleModeTitlesFromSchedule(t *testing.T) {
	svc, _, id := newPunchFixture(t, 112)

	resp, err := svc.PunchMeals(context.Background(), id, request_models.PunchRequest{
		Date:              dateAt(0),
		ConsumedMealTypes: []string{"breakfast"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	last := resp.History[len(resp.History)-1]
	if len(last.MealItems) != 1 {
		t.Fatalf("expected one materialized item, got %d", len(last.MealItems))
	}
	item := last.MealItems[0]
	if item.Title != "Poha" || !strings.Contains(item.MoreOptions, "Upma") {
		t.Fatalf("item should carry the day's candidates, got %+v", item)
	}
	if item.PunchingTime == 0 {
		t.Fatal("punching time not stamped")
	}
}

func TestPunchMeals_InsufficientBalance(t *testing.T) {
	svc, repo, id := newPunchFixture(t, 1)

	_, err := svc.PunchMeals(context.Background(), id, request_models.PunchRequest{
		Date:              dateAt(0),
		ConsumedMealTypes: []string{"breakfast", "lunch"},
	})
	if !errors.Is(err, utils.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	m, _ := repo.GetById(context.Background(), id)
	if m.ConsumedMeals != 0 || len(m.History) != 0 {
		t.Fatal("failed punch must leave counters and ledger untouched")
	}
}

func TestPunchMeals_ExhaustionCompletes(t *testing.T) {
	svc, _, id := newPunchFixture(t, 2)

	resp, err := svc.PunchMeals(context.Background(), id, request_models.PunchRequest{
		Date:              dateAt(0),
		ConsumedMealTypes: []string{"breakfast", "lunch"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status != "completed" || resp.RemainingMeals != 0 {
		t.Fatalf("expected completed at zero balance, got %s with %d", resp.Status, resp.RemainingMeals)
	}
	last := resp.History[len(resp.History)-1]
	if last.Action != db_models.ActionCompleted {
		t.Fatalf("expected completed ledger entry, got %s", last.Action)
	}

	// a completed membership rejects further punches
	_, err = svc.PunchMeals(context.Background(), id, request_models.PunchRequest{
		Date:              dateAt(1),
		ConsumedMealTypes: []string{"dinner"},
	})
	if !errors.Is(err, utils.ErrNotActive) {
		t.Fatalf("expected ErrNotActive after completion, got %v", err)
	}
}

func TestPunchMeals_AllTypesMarkDayConsumed(t *testing.T) {
	svc, repo, id := newPunchFixture(t, 112)

	_, err := svc.PunchMeals(context.Background(), id, request_models.PunchRequest{
		Date:              dateAt(0),
		ConsumedMealTypes: []string{"breakfast", "lunch", "snacks", "dinner"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	day := findDay(t, repo, id, 1, "monday")
	if !day.IsConsumed {
		t.Fatal("day with all four types punched must be fully consumed")
	}
}

func TestPunchMeals_StateGates(t *testing.T) {
	t.Run("held membership", func(t *testing.T) {
		repo := newMockMembershipRepo()
		m := testMembership(t, 10)
		m.Status = db_models.MembershipHold
		id := seedMembership(t, repo, m)
		svc := services.NewMealPunchService(repo)

		_, err := svc.PunchMeals(context.Background(), id, request_models.PunchRequest{
			Date:              dateAt(0),
			ConsumedMealTypes: []string{"lunch"},
		})
		if !errors.Is(err, utils.ErrNotActive) {
			t.Fatalf("expected ErrNotActive, got %v", err)
		}
	})

	t.Run("membership without schedule", func(t *testing.T) {
		repo := newMockMembershipRepo()
		m := testMembership(t, 10)
		m.Weeks = nil
		id := seedMembership(t, repo, m)
		svc := services.NewMealPunchService(repo)

		_, err := svc.PunchMeals(context.Background(), id, request_models.PunchRequest{
			Date:              dateAt(0),
			ConsumedMealTypes: []string{"lunch"},
		})
		if !errors.Is(err, utils.ErrNoSchedule) {
			t.Fatalf("expected ErrNoSchedule, got %v", err)
		}
	})

	t.Run("missing membership", func(t *testing.T) {
		svc := services.NewMealPunchService(newMockMembershipRepo())
		_, err := svc.PunchMeals(context.Background(), "no-such-id", request_models.PunchRequest{
			ConsumedMealTypes: []string{"lunch"},
		})
		if !errors.Is(err, utils.ErrMembershipNotFound) {
			t.Fatalf("expected ErrMembershipNotFound, got %v", err)
		}
	})
}

func TestPunchMeals_DefaultsToToday(t *testing.T) {
	repo := newMockMembershipRepo()
	m := testMembership(t, 10)
	now := time.Now()
	m.StartDate = now.AddDate(0, 0, -1).Unix()
	m.EndDate = now.AddDate(0, 0, 12).Unix()
	id := seedMembership(t, repo, m)
	svc := services.NewMealPunchService(repo)

	resp, err := svc.PunchMeals(context.Background(), id, request_models.PunchRequest{
		ConsumedMealTypes: []string{"lunch"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	last := resp.History[len(resp.History)-1]
	if last.Week != 1 || last.Day != db_models.DayNameOf(now) {
		t.Fatalf("expected today's slot in week 1, got week %d %s", last.Week, last.Day)
	}
}
