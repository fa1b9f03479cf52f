package services_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tiffin/internal/models/db_models"
)

type mockCustomerRepo struct {
	getByIdFn    func(ctx context.Context, id string) (*db_models.Customer, error)
	getByEmailFn func(ctx context.Context, email string) (*db_models.Customer, error)
}

func (m *mockCustomerRepo) Insert(ctx context.Context, customer *db_models.Customer) error {
	return nil
}

func (m *mockCustomerRepo) GetById(ctx context.Context, id string) (*db_models.Customer, error) {
	if m.getByIdFn != nil {
		return m.getByIdFn(ctx, id)
	}
	return nil, nil
}

func (m *mockCustomerRepo) GetByEmail(ctx context.Context, email string) (*db_models.Customer, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, nil
}

func (m *mockCustomerRepo) List(ctx context.Context, page int, pageSize int) ([]db_models.Customer, int64, error) {
	return nil, 0, nil
}

func (m *mockCustomerRepo) Update(ctx context.Context, customer *db_models.Customer) error {
	return nil
}

func (m *mockCustomerRepo) SoftDelete(ctx context.Context, id string) error {
	return nil
}

type mockMealPlanRepo struct {
	getByIdFn func(ctx context.Context, id string) (*db_models.MealPlan, error)
}

func (m *mockMealPlanRepo) Insert(ctx context.Context, plan *db_models.MealPlan) error {
	return nil
}

func (m *mockMealPlanRepo) GetById(ctx context.Context, id string) (*db_models.MealPlan, error) {
	if m.getByIdFn != nil {
		return m.getByIdFn(ctx, id)
	}
	return nil, nil
}

func (m *mockMealPlanRepo) List(ctx context.Context, page int, pageSize int, activeOnly bool) ([]db_models.MealPlan, int64, error) {
	return nil, 0, nil
}

func (m *mockMealPlanRepo) Update(ctx context.Context, plan *db_models.MealPlan) error {
	return nil
}

func (m *mockMealPlanRepo) SoftDelete(ctx context.Context, id string) error {
	return nil
}

// mockMembershipRepo keeps memberships in a map and mimics the transaction
// semantics of the real repository: a failed mutation leaves the stored
// aggregate untouched.
type mockMembershipRepo struct {
	memberships map[string]*db_models.Membership
}

func newMockMembershipRepo() *mockMembershipRepo {
	return &mockMembershipRepo{memberships: make(map[string]*db_models.Membership)}
}

func cloneMembership(t *testing.T, m *db_models.Membership) *db_models.Membership {
	if t != nil {
		t.Helper()
	}
	raw, err := json.Marshal(m)
	if err != nil {
		panic(err)
	}
	var out db_models.Membership
	if err := json.Unmarshal(raw, &out); err != nil {
		panic(err)
	}
	return &out
}

func (r *mockMembershipRepo) Insert(ctx context.Context, membership *db_models.Membership) error {
	if membership.ID == uuid.Nil {
		membership.ID = uuid.New()
	}
	r.memberships[membership.ID.String()] = cloneMembership(nil, membership)
	return nil
}

func (r *mockMembershipRepo) GetById(ctx context.Context, id string) (*db_models.Membership, error) {
	m, ok := r.memberships[id]
	if !ok {
		return nil, nil
	}
	return cloneMembership(nil, m), nil
}

func (r *mockMembershipRepo) List(ctx context.Context, customerID string, status string, page int, pageSize int) ([]db_models.Membership, int64, error) {
	var out []db_models.Membership
	for _, m := range r.memberships {
		if customerID != "" && m.CustomerID.String() != customerID {
			continue
		}
		if status != "" && string(m.Status) != status {
			continue
		}
		out = append(out, *cloneMembership(nil, m))
	}
	return out, int64(len(out)), nil
}

func (r *mockMembershipRepo) MutateWithLock(ctx context.Context, id string, fn func(m *db_models.Membership) error) (*db_models.Membership, error) {
	stored, ok := r.memberships[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	working := cloneMembership(nil, stored)
	if err := fn(working); err != nil {
		return nil, err
	}
	r.memberships[id] = cloneMembership(nil, working)
	return working, nil
}

func (r *mockMembershipRepo) HardDelete(ctx context.Context, id string) error {
	if _, ok := r.memberships[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.memberships, id)
	return nil
}

// --- shared fixtures ---

var weekdayNames = []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

func testDayMeals() db_models.DayMeals {
	return db_models.DayMeals{
		Breakfast: []string{"Poha", "Upma", "Idli"},
		Lunch:     []string{"Dal Rice", "Veg Thali", "Paneer Bowl"},
		Snacks:    []string{"Samosa", "Fruit Cup", "Sprout Salad"},
		Dinner:    []string{"Roti Sabzi", "Khichdi", "Veg Biryani"},
	}
}

// testPlanWeeks builds a valid 2-week schedule where week 2 repeats week 1.
func testPlanWeeks() []db_models.PlanWeek {
	days := make([]db_models.PlanDay, 0, 7)
	for _, name := range weekdayNames {
		days = append(days, db_models.PlanDay{Day: name, Meals: testDayMeals()})
	}
	two := 1
	return []db_models.PlanWeek{
		{Week: 1, Days: days},
		{Week: 2, RepeatFromWeek: &two},
	}
}

// monday is a fixed start date so week arithmetic in tests is predictable.
var testStart = time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)

func testMembership(t *testing.T, totalMeals int) *db_models.Membership {
	t.Helper()
	weeks, err := db_models.BuildMembershipWeeks(testPlanWeeks())
	if err != nil {
		t.Fatalf("building test schedule: %v", err)
	}
	return &db_models.Membership{
		BaseModel:      db_models.BaseModel{ID: uuid.New()},
		CustomerID:     uuid.New(),
		MealPlanID:     uuid.New(),
		TotalMeals:     totalMeals,
		ConsumedMeals:  0,
		RemainingMeals: totalMeals,
		StartDate:      testStart.Unix(),
		EndDate:        testStart.AddDate(0, 0, 27).Unix(),
		Status:         db_models.MembershipActive,
		TotalPrice:     500,
		ReceivedAmount: 500,
		PaymentStatus:  db_models.PaymentPaid,
		Weeks:          weeks,
	}
}

func seedMembership(t *testing.T, repo *mockMembershipRepo, m *db_models.Membership) string {
	t.Helper()
	if err := repo.Insert(context.Background(), m); err != nil {
		t.Fatalf("seeding membership: %v", err)
	}
	return m.ID.String()
}

func checkInvariant(t *testing.T, repo *mockMembershipRepo, id string) {
	t.Helper()
	m, _ := repo.GetById(context.Background(), id)
	if m == nil {
		t.Fatal("membership disappeared")
	}
	if m.ConsumedMeals+m.RemainingMeals != m.TotalMeals {
		t.Fatalf("counter invariant broken: consumed %d + remaining %d != total %d",
			m.ConsumedMeals, m.RemainingMeals, m.TotalMeals)
	}
}
