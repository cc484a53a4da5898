package tax

import (
	"fmt"
	"time"
)

// Indian financial years run 1 April to 31 March and are labelled
// "FY 2025-2026" for the year starting April 2025.

// CurrentFY returns the financial year label containing now.
func CurrentFY(now time.Time) string {
	y := now.Year()
	if now.Month() < time.April {
		y--
	}
	return FYLabel(y)
}

// FYLabel formats the label for the financial year starting in April of y.
func FYLabel(startYear int) string {
	return fmt.Sprintf("FY %d-%d", startYear, startYear+1)
}

// FYWindow resolves a label to its [start, end) window. End is exclusive.
func FYWindow(label string) (time.Time, time.Time, error) {
	var from, to int
	if _, err := fmt.Sscanf(label, "FY %d-%d", &from, &to); err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid financial year %q, want e.g. %q", label, "FY 2025-2026")
	}
	if to != from+1 {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid financial year %q: years must be consecutive", label)
	}

	start := time.Date(from, time.April, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(1, 0, 0), nil
}

func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
