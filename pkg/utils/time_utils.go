package utils

import "time"

// Timestamps are stored as epoch seconds (UTC); see db_models.BaseModel.
func NowUnixSeconds() int64 { return time.Now().Unix() }

// FromUnixSeconds converts an epoch value in seconds to UTC time.
// Returns zero time if t<=0 to let callers decide how to render.
func FromUnixSeconds(t int64) time.Time {
	if t <= 0 {
		return time.Time{}
	}
	return time.Unix(t, 0).UTC()
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the number of whole calendar days from a to b,
// negative when b is before a.
func DaysBetween(a, b time.Time) int {
	return int(StartOfDay(b).Sub(StartOfDay(a)).Hours() / 24)
}

func FormatRFC3339(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
