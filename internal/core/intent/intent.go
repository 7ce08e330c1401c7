// Package intent maps raw command text to exactly one Intent.
// Matching is case-insensitive substring search over the ordered keyword sets
// of the rule pack; the first intent in priority order with any keyword present
// wins and Unknown is the total default
package intent

import (
	"fmt"
	"strings"
)

// Intent is the discrete category assigned to a command
type Intent string

const (
	Greeting   Intent = "greeting"
	TimeQuery  Intent = "time_query"
	DateQuery  Intent = "date_query"
	Reminder   Intent = "reminder"
	Notice     Intent = "notice"
	Assignment Intent = "assignment"
	Department Intent = "department"
	Help       Intent = "help"
	Study      Intent = "study"
	Unknown    Intent = "unknown"
)

// Priority is the fixed classification order, highest first. Unknown is not
// part of it, it is what you get when nothing matches
var Priority = []Intent{
	Greeting, TimeQuery, DateQuery, Reminder, Notice,
	Assignment, Department, Help, Study,
}

// All lists every intent including Unknown
func All() []Intent {
	out := make([]Intent, 0, len(Priority)+1)
	out = append(out, Priority...)
	return append(out, Unknown)
}

func (i Intent) String() string { return string(i) }

// Valid reports whether i is one of the known intents
func (i Intent) Valid() bool {
	if i == Unknown {
		return true
	}
	for _, p := range Priority {
		if p == i {
			return true
		}
	}
	return false
}

// Parse resolves a name like "time_query" or "TimeQuery" to an Intent
func Parse(s string) (Intent, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, i := range All() {
		if key == string(i) || key == strings.ReplaceAll(string(i), "_", "") {
			return i, nil
		}
	}
	return Unknown, fmt.Errorf("intent: unknown intent %q", s)
}
