package db_models

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"tiffin/pkg/utils"
)

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealSnacks    MealType = "snacks"
	MealDinner    MealType = "dinner"
)

func AllMealTypes() []MealType {
	return []MealType{MealBreakfast, MealLunch, MealSnacks, MealDinner}
}

// Day names follow Go's weekday ordering (sunday = 0) so calendar dates and
// schedule slots convert both ways without a lookup table.
var dayNames = []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

func DayNameOf(t time.Time) string {
	return dayNames[int(t.Weekday())]
}

func DayIndex(name string) (int, bool) {
	for i, d := range dayNames {
		if d == name {
			return i, true
		}
	}
	return 0, false
}

// CandidatesPerMeal is how many items a day offers per meal type.
const CandidatesPerMeal = 3

type DayMeals struct {
	Breakfast []string `json:"breakfast"`
	Lunch     []string `json:"lunch"`
	Snacks    []string `json:"snacks"`
	Dinner    []string `json:"dinner"`
}

func (m DayMeals) ForType(t MealType) []string {
	switch t {
	case MealBreakfast:
		return m.Breakfast
	case MealLunch:
		return m.Lunch
	case MealSnacks:
		return m.Snacks
	case MealDinner:
		return m.Dinner
	}
	return nil
}

func (m *DayMeals) SetForType(t MealType, items []string) {
	switch t {
	case MealBreakfast:
		m.Breakfast = items
	case MealLunch:
		m.Lunch = items
	case MealSnacks:
		m.Snacks = items
	case MealDinner:
		m.Dinner = items
	}
}

// MealFlags tracks per-meal-type consumption for one day.
type MealFlags struct {
	Breakfast bool `json:"breakfast"`
	Lunch     bool `json:"lunch"`
	Snacks    bool `json:"snacks"`
	Dinner    bool `json:"dinner"`
}

func (f MealFlags) IsSet(t MealType) bool {
	switch t {
	case MealBreakfast:
		return f.Breakfast
	case MealLunch:
		return f.Lunch
	case MealSnacks:
		return f.Snacks
	case MealDinner:
		return f.Dinner
	}
	return false
}

func (f *MealFlags) Set(t MealType) {
	switch t {
	case MealBreakfast:
		f.Breakfast = true
	case MealLunch:
		f.Lunch = true
	case MealSnacks:
		f.Snacks = true
	case MealDinner:
		f.Dinner = true
	}
}

func (f MealFlags) All() bool {
	return f.Breakfast && f.Lunch && f.Snacks && f.Dinner
}

func (f MealFlags) SetTypes() []MealType {
	var out []MealType
	for _, t := range AllMealTypes() {
		if f.IsSet(t) {
			out = append(out, t)
		}
	}
	return out
}

// PlanDay and PlanWeek are the catalog-side schedule shape. A week either
// lists its 7 days or points back at an earlier week via RepeatFromWeek.
type PlanDay struct {
	Day   string   `json:"day"`
	Meals DayMeals `json:"meals"`
}

type PlanWeek struct {
	Week           int       `json:"week"`
	RepeatFromWeek *int      `json:"repeat_from_week,omitempty"`
	Days           []PlanDay `json:"days,omitempty"`
}

// MembershipDay is the membership-owned copy of a plan day, carrying the
// consumption flags the catalog side never has.
type MembershipDay struct {
	Day           string    `json:"day"`
	Meals         DayMeals  `json:"meals"`
	ConsumedMeals MealFlags `json:"consumed_meals"`
	IsConsumed    bool      `json:"is_consumed"`
}

type MembershipWeek struct {
	Week       int             `json:"week"`
	Days       []MembershipDay `json:"days"`
	IsConsumed bool            `json:"is_consumed"`
}

func (w *MembershipWeek) Recompute() {
	for i := range w.Days {
		w.Days[i].IsConsumed = w.Days[i].ConsumedMeals.All()
	}
	consumed := len(w.Days) > 0
	for i := range w.Days {
		if !w.Days[i].IsConsumed {
			consumed = false
			break
		}
	}
	w.IsConsumed = consumed
}

// ValidatePlanWeeks checks the catalog schedule invariant: week numbers are
// positive and unique, and every week either supplies exactly 7 days - one
// per weekday, each meal type offering exactly 3 candidates - or a
// back-reference to an earlier week.
func ValidatePlanWeeks(weeks []PlanWeek) error {
	if len(weeks) == 0 {
		return fmt.Errorf("%w: at least one week is required", utils.ErrInvalidSchedule)
	}

	seen := map[int]bool{}
	for _, w := range weeks {
		if w.Week < 1 {
			return fmt.Errorf("%w: week numbers start at 1", utils.ErrInvalidSchedule)
		}
		if seen[w.Week] {
			return fmt.Errorf("%w: duplicate week %d", utils.ErrInvalidSchedule, w.Week)
		}
		seen[w.Week] = true

		if w.RepeatFromWeek != nil {
			if *w.RepeatFromWeek >= w.Week || !seen[*w.RepeatFromWeek] {
				return fmt.Errorf("%w: week %d repeats from unknown week %d", utils.ErrInvalidSchedule, w.Week, *w.RepeatFromWeek)
			}
			continue
		}

		if len(w.Days) != len(dayNames) {
			return fmt.Errorf("%w: week %d must have exactly 7 days", utils.ErrInvalidSchedule, w.Week)
		}
		days := map[string]bool{}
		for _, d := range w.Days {
			if _, ok := DayIndex(d.Day); !ok {
				return fmt.Errorf("%w: week %d has unknown day %q", utils.ErrInvalidSchedule, w.Week, d.Day)
			}
			if days[d.Day] {
				return fmt.Errorf("%w: week %d repeats day %q", utils.ErrInvalidSchedule, w.Week, d.Day)
			}
			days[d.Day] = true
			for _, t := range AllMealTypes() {
				if len(d.Meals.ForType(t)) != CandidatesPerMeal {
					return fmt.Errorf("%w: week %d %s must offer exactly %d %s items",
						utils.ErrInvalidSchedule, w.Week, d.Day, CandidatesPerMeal, t)
				}
			}
		}
	}
	return nil
}

// BuildMembershipWeeks deep-copies a catalog schedule into membership-owned
// weeks, expanding RepeatFromWeek back-references into concrete days with
// all consumption flags cleared.
func BuildMembershipWeeks(weeks []PlanWeek) ([]MembershipWeek, error) {
	if err := ValidatePlanWeeks(weeks); err != nil {
		return nil, err
	}

	byNumber := map[int][]PlanDay{}
	out := make([]MembershipWeek, 0, len(weeks))
	for _, w := range weeks {
		days := w.Days
		if w.RepeatFromWeek != nil {
			days = byNumber[*w.RepeatFromWeek]
		}
		byNumber[w.Week] = days

		mw := MembershipWeek{Week: w.Week, Days: make([]MembershipDay, 0, len(days))}
		for _, d := range days {
			mw.Days = append(mw.Days, MembershipDay{
				Day: d.Day,
				Meals: DayMeals{
					Breakfast: append([]string(nil), d.Meals.Breakfast...),
					Lunch:     append([]string(nil), d.Meals.Lunch...),
					Snacks:    append([]string(nil), d.Meals.Snacks...),
					Dinner:    append([]string(nil), d.Meals.Dinner...),
				},
			})
		}
		out = append(out, mw)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Week < out[j].Week })
	return out, nil
}

// ScheduleIndex gives O(1) access to a membership's day records by
// (week, day). The membership owns its day records exclusively; the index
// holds pointers into the weeks slice and must be rebuilt after the slice
// itself is reallocated.
type ScheduleIndex struct {
	weeks map[int]*MembershipWeek
	days  map[string]*MembershipDay
}

func dayKey(week int, day string) string {
	return fmt.Sprintf("%d/%s", week, day)
}

func IndexWeeks(weeks []MembershipWeek) ScheduleIndex {
	idx := ScheduleIndex{
		weeks: make(map[int]*MembershipWeek, len(weeks)),
		days:  make(map[string]*MembershipDay),
	}
	for i := range weeks {
		idx.weeks[weeks[i].Week] = &weeks[i]
		for j := range weeks[i].Days {
			idx.days[dayKey(weeks[i].Week, weeks[i].Days[j].Day)] = &weeks[i].Days[j]
		}
	}
	return idx
}

func (s ScheduleIndex) Week(week int) (*MembershipWeek, error) {
	w, ok := s.weeks[week]
	if !ok {
		return nil, fmt.Errorf("%w: week %d", utils.ErrWeekNotFound, week)
	}
	return w, nil
}

func (s ScheduleIndex) Day(week int, day string) (*MembershipWeek, *MembershipDay, error) {
	w, err := s.Week(week)
	if err != nil {
		return nil, nil, err
	}
	d, ok := s.days[dayKey(week, day)]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s of week %d", utils.ErrDayNotFound, day, week)
	}
	return w, d, nil
}

// SameItems compares two candidate lists ignoring order.
func SameItems(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

func JoinMealTypes(types []MealType) string {
	parts := make([]string, 0, len(types))
	for _, t := range types {
		parts = append(parts, string(t))
	}
	return strings.Join(parts, ", ")
}
