package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// FormatDuration formats seconds as a human-readable string like "1h 40m" or "45m" or "30s".
// Negative durations are prefixed with a minus sign.
func FormatDuration(seconds int64) string {
	prefix := ""
	if seconds < 0 {
		prefix = "-"
		seconds = -seconds
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%s%dh %dm", prefix, h, m)
	}
	if m > 0 {
		return fmt.Sprintf("%s%dm", prefix, m)
	}
	return fmt.Sprintf("%s%ds", prefix, s)
}

// FormatDurationHHMMSS formats seconds as HH:MM:SS.
func FormatDurationHHMMSS(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// TimeParts splits a millisecond duration into hour, minute and second components.
func TimeParts(millis int64) (hours, minutes, seconds int64) {
	seconds = millis / 1000 % 60
	minutes = millis / (1000 * 60) % 60
	hours = millis / (1000 * 60 * 60)
	return hours, minutes, seconds
}

// SpendNote builds a GitLab "/spend" quick-action note body for the given
// duration. Negative durations produce a subtraction ("/spend -1h30m0s"),
// which GitLab interprets as removing logged time. A non-empty summary is
// appended on the following line.
func SpendNote(millis int64, summary string) string {
	sign := ""
	if millis < 0 {
		sign = "-"
		millis = -millis
	}
	h, m, s := TimeParts(millis)
	note := fmt.Sprintf("/spend %s%dh%dm%ds", sign, h, m, s)
	if summary == "" {
		return note
	}
	return note + "\n" + strings.TrimSpace(summary)
}

// StartOfDay returns 00:00:00 of the same day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DaysInRange enumerates every calendar day in [from, to) at day granularity.
// Both bounds are truncated to midnight in from's location before stepping.
func DaysInRange(from, to time.Time) []time.Time {
	var days []time.Time
	end := StartOfDay(to)
	for d := StartOfDay(from); d.Before(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
