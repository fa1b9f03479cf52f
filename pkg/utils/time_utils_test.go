package utils_test

import (
	"testing"
	"time"

	"tiffin/pkg/utils"
)

func TestDaysBetween(t *testing.T) {
	base := time.Date(2025, time.January, 6, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		{"same day", base, base.Add(8 * time.Hour), 0},
		{"next morning", base, base.AddDate(0, 0, 1).Add(-9 * time.Hour), 1},
		{"one week", base, base.AddDate(0, 0, 7), 7},
		{"backwards", base, base.AddDate(0, 0, -3), -3},
		{"month boundary", base, time.Date(2025, time.February, 5, 0, 0, 0, 0, time.UTC), 30},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := utils.DaysBetween(tc.a, tc.b); got != tc.want {
				t.Fatalf("DaysBetween = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestFromUnixSeconds(t *testing.T) {
	if !utils.FromUnixSeconds(0).IsZero() {
		t.Fatal("zero epoch must map to zero time")
	}
	got := utils.FromUnixSeconds(1736121600)
	if got.Year() != 2025 || got.Month() != time.January {
		t.Fatalf("unexpected conversion: %v", got)
	}
}

func TestFormatRFC3339(t *testing.T) {
	if utils.FormatRFC3339(time.Time{}) != "" {
		t.Fatal("zero time must render empty")
	}
	in := time.Date(2025, time.January, 6, 12, 0, 0, 0, time.UTC)
	if got := utils.FormatRFC3339(in); got != "2025-01-06T12:00:00Z" {
		t.Fatalf("unexpected format: %s", got)
	}
}
