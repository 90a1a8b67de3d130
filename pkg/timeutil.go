package pkg

import "time"

// DayWindow returns the UTC calendar day containing t,
// as the half-open interval [start, end) where end = start + 24h.
// The window is recomputed on every call, never cached.
func DayWindow(t time.Time) (start, end time.Time) {
	t = t.UTC()
	start = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	end = start.Add(24 * time.Hour)
	return start, end
}

// InWindow reports whether t falls in [start, end) - start inclusive, end exclusive.
func InWindow(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

// DateOnly truncates t to its UTC calendar date (midnight UTC).
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
