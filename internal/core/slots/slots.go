// Package slots pulls the free-text fields out of a reminder command.
// Extraction is best effort and deliberately permissive: a time like "25:99"
// or "99:99pm" is taken literally and never parsed into a clock time
package slots

import (
	"regexp"
	"strings"
)

var (
	timeRE = regexp.MustCompile(`(?i)(\d{1,2}(?::\d{2})?\s*(?:am|pm)?)`)
	leadRE = regexp.MustCompile(`(?i)for|about`)
	taskRE = regexp.MustCompile(`(?i)^(?:for|about)\s+(.+)`)
)

// Reminder holds the raw task and time literals as typed
type Reminder struct {
	Task string
	Time string
}

// ExtractReminder finds the first time token and a task introduced by "for"
// or "about". Both are required.
//
// Every "for"/"about" followed by whitespace is a task candidate. A candidate
// that starts with the time token itself ("for 10am ...") is passed over in
// favour of a later one; when every candidate is passed over the last one is
// used
func ExtractReminder(text string) (Reminder, bool) {
	tm := timeRE.FindStringSubmatch(text)
	if tm == nil {
		return Reminder{}, false
	}
	tok := tm[1]
	prefix := strings.TrimSpace(tok)

	var task, last string
	for _, loc := range leadRE.FindAllStringIndex(text, -1) {
		m := taskRE.FindStringSubmatch(text[loc[0]:])
		if m == nil {
			continue
		}
		last = m[1]
		if prefix != "" && strings.HasPrefix(m[1], prefix) {
			continue
		}
		task = m[1]
		break
	}
	if task == "" {
		task = last
	}
	if task == "" {
		return Reminder{}, false
	}
	return Reminder{Task: task, Time: tok}, true
}
