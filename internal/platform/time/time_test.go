package time

import (
	"testing"
	"time"
)

func TestRelative(t *testing.T) {
	now := time.Date(2025, time.March, 20, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		ago  time.Duration
		want string
	}{
		{-time.Hour, "Just now"},
		{0, "Just now"},
		{59 * time.Second, "Just now"},
		{time.Minute, "1m ago"},
		{59*time.Minute + 59*time.Second, "59m ago"},
		{time.Hour, "1h ago"},
		{23 * time.Hour, "23h ago"},
		{24 * time.Hour, "1d ago"},
		{6*24*time.Hour + 23*time.Hour, "6d ago"},
		{7 * 24 * time.Hour, "Mar 13, 2025"},
		{400 * 24 * time.Hour, "Feb 14, 2024"}, // across 29 Feb 2024
	}
	for _, tc := range cases {
		if got := Relative(now.Add(-tc.ago), now); got != tc.want {
			t.Fatalf("Relative(-%s) = %q, want %q", tc.ago, got, tc.want)
		}
	}
}

func TestLayouts(t *testing.T) {
	at := time.Date(2025, time.January, 6, 15, 4, 5, 0, time.UTC)
	if got := at.Format(ClockLayout); got != "3:04:05 PM" {
		t.Fatalf("clock = %q", got)
	}
	if got := at.Format(LongDateLayout); got != "Monday, January 6, 2025" {
		t.Fatalf("long date = %q", got)
	}
}

func TestFixed(t *testing.T) {
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if !Fixed(at).Now().Equal(at) {
		t.Fatalf("Fixed clock moved")
	}
}
