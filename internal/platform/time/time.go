// Package time holds the clock seam and the display formats the assistant
// speaks and prints
package time

import (
	"strconv"
	"time"
)

// Layouts for assistant replies
const (
	ClockLayout    = "3:04:05 PM"
	LongDateLayout = "Monday, January 2, 2006"
	ShortDate      = "Jan 2, 2006"
)

// Clock reports the current instant
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a func to Clock
type ClockFunc func() time.Time

// Now calls f
func (f ClockFunc) Now() time.Time { return f() }

// System is the wall clock
var System Clock = ClockFunc(time.Now)

// Fixed returns a clock frozen at t
func Fixed(t time.Time) Clock { return ClockFunc(func() time.Time { return t }) }

// Relative renders at as seen from now: "Just now", "5m ago", "3h ago",
// "2d ago", then a short date once it is a week old. Future times count as
// "Just now"
func Relative(at, now time.Time) string {
	d := now.Sub(at)
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return strconv.Itoa(int(d/time.Minute)) + "m ago"
	case d < 24*time.Hour:
		return strconv.Itoa(int(d/time.Hour)) + "h ago"
	case d < 7*24*time.Hour:
		return strconv.Itoa(int(d/(24*time.Hour))) + "d ago"
	}
	return at.In(now.Location()).Format(ShortDate)
}
