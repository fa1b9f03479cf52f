package db_models_test

import (
	"errors"
	"testing"

	"tiffin/internal/models/db_models"
	"tiffin/pkg/utils"
)

func TestNextStatus(t *testing.T) {
	type transition struct {
		from db_models.MembershipStatus
		ev   db_models.MembershipEvent
		to   db_models.MembershipStatus
		ok   bool
	}

	table := []transition{
		{db_models.MembershipActive, db_models.EventHold, db_models.MembershipHold, true},
		{db_models.MembershipActive, db_models.EventCancel, db_models.MembershipCancelled, true},
		{db_models.MembershipActive, db_models.EventExhaust, db_models.MembershipCompleted, true},
		{db_models.MembershipActive, db_models.EventActivate, db_models.MembershipActive, true},
		{db_models.MembershipActive, db_models.EventResume, db_models.MembershipActive, true},

		{db_models.MembershipHold, db_models.EventActivate, db_models.MembershipActive, true},
		{db_models.MembershipHold, db_models.EventResume, db_models.MembershipActive, true},
		{db_models.MembershipHold, db_models.EventHold, db_models.MembershipHold, true},
		{db_models.MembershipHold, db_models.EventCancel, db_models.MembershipCancelled, true},
		{db_models.MembershipHold, db_models.EventExhaust, "", false},

		{db_models.MembershipCompleted, db_models.EventResume, db_models.MembershipActive, true},
		{db_models.MembershipCompleted, db_models.EventExhaust, db_models.MembershipCompleted, true},
		{db_models.MembershipCompleted, db_models.EventActivate, "", false},
		{db_models.MembershipCompleted, db_models.EventHold, "", false},
		{db_models.MembershipCompleted, db_models.EventCancel, "", false},

		{db_models.MembershipCancelled, db_models.EventCancel, db_models.MembershipCancelled, true},
		{db_models.MembershipCancelled, db_models.EventActivate, "", false},
		{db_models.MembershipCancelled, db_models.EventResume, "", false},
		{db_models.MembershipCancelled, db_models.EventHold, "", false},
		{db_models.MembershipCancelled, db_models.EventExhaust, "", false},
	}

	for _, tr := range table {
		got, err := db_models.NextStatus(tr.from, tr.ev)
		if tr.ok {
			if err != nil {
				t.Errorf("%s + %s: unexpected error %v", tr.from, tr.ev, err)
				continue
			}
			if got != tr.to {
				t.Errorf("%s + %s = %s, want %s", tr.from, tr.ev, got, tr.to)
			}
			continue
		}
		if !errors.Is(err, utils.ErrInvalidStatusChange) {
			t.Errorf("%s + %s: expected ErrInvalidStatusChange, got %v", tr.from, tr.ev, err)
		}
	}
}

func TestStatusEvent(t *testing.T) {
	tests := []struct {
		target db_models.MembershipStatus
		want   db_models.MembershipEvent
		ok     bool
	}{
		{db_models.MembershipActive, db_models.EventActivate, true},
		{db_models.MembershipHold, db_models.EventHold, true},
		{db_models.MembershipCancelled, db_models.EventCancel, true},
		{db_models.MembershipCompleted, "", false},
		{"garbage", "", false},
	}
	for _, tc := range tests {
		ev, err := db_models.StatusEvent(tc.target)
		if tc.ok {
			if err != nil || ev != tc.want {
				t.Errorf("StatusEvent(%s) = %s, %v; want %s", tc.target, ev, err, tc.want)
			}
			continue
		}
		if !errors.Is(err, utils.ErrInvalidStatusChange) {
			t.Errorf("StatusEvent(%s): expected ErrInvalidStatusChange, got %v", tc.target, err)
		}
	}
}

func TestAppendHistoryStampsTotals(t *testing.T) {
	m := &db_models.Membership{
		TotalMeals:     10,
		ConsumedMeals:  0,
		RemainingMeals: 10,
	}

	m.ApplyConsumption(4)
	m.AppendHistory(db_models.HistoryEntry{
		Action:          db_models.ActionConsumed,
		CurrentConsumed: 4,
	})

	if m.ConsumedMeals != 4 || m.RemainingMeals != 6 {
		t.Fatalf("counters wrong after consumption: %d/%d", m.ConsumedMeals, m.RemainingMeals)
	}
	if len(m.History) != 1 {
		t.Fatalf("expected one history entry, got %d", len(m.History))
	}
	e := m.History[0]
	if e.ConsumedMeals != 4 || e.RemainingMeals != 6 || e.CurrentConsumed != 4 {
		t.Fatalf("entry not stamped with post-action totals: %+v", e)
	}
	if e.Timestamp == 0 {
		t.Fatal("entry timestamp not stamped")
	}

	// a caller-supplied timestamp is kept
	m.AppendHistory(db_models.HistoryEntry{Action: db_models.ActionUpdated, Timestamp: 1700000000})
	if m.History[1].Timestamp != 1700000000 {
		t.Fatalf("explicit timestamp overwritten: %d", m.History[1].Timestamp)
	}
}
