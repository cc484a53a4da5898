package tax

import (
	"testing"
	"time"
)

func TestCurrentFYBoundary(t *testing.T) {
	cases := []struct {
		now  time.Time
		want string
	}{
		{time.Date(2025, 3, 31, 23, 0, 0, 0, time.UTC), "FY 2024-2025"},
		{time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), "FY 2025-2026"},
		{time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC), "FY 2025-2026"},
		{time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), "FY 2025-2026"},
	}
	for _, c := range cases {
		if got := CurrentFY(c.now); got != c.want {
			t.Errorf("CurrentFY(%v) = %q, want %q", c.now, got, c.want)
		}
	}
}

func TestFYWindow(t *testing.T) {
	start, end, err := FYWindow("FY 2024-2025")
	if err != nil {
		t.Fatalf("FYWindow: %v", err)
	}
	if start != time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC) {
		t.Errorf("start = %v", start)
	}
	if end != time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC) {
		t.Errorf("end = %v", end)
	}

	// 31 March belongs to the year, 1 April of the next year does not.
	if !inWindow(time.Date(2025, 3, 31, 12, 0, 0, 0, time.UTC), start, end) {
		t.Error("31 March should be in window")
	}
	if inWindow(end, start, end) {
		t.Error("window end should be exclusive")
	}
}

func TestFYWindowRejectsMalformedLabels(t *testing.T) {
	for _, label := range []string{"", "2024-2025", "FY 2024-2026", "FY 2024", "FY abc-def"} {
		if _, _, err := FYWindow(label); err == nil {
			t.Errorf("FYWindow(%q) expected error", label)
		}
	}
}
