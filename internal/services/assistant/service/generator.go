package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pbl/internal/core/department"
	"pbl/internal/core/intent"
	"pbl/internal/core/rulepack"
	"pbl/internal/core/slots"
	perr "pbl/internal/platform/errors"
	ptime "pbl/internal/platform/time"
	"pbl/internal/services/assistant/domain"
)

// MaxNotices caps the notice reply
const MaxNotices = 5

// Generator turns a classified command into reply text
type Generator struct {
	notices   domain.NoticeLister
	reminders domain.ReminderStore
	clock     ptime.Clock
	loc       *time.Location
	buckets   []rulepack.Bucket
}

// GeneratorOption tunes a Generator
type GeneratorOption func(*Generator)

// WithClock sets the clock used for time, date and relative notice dates
func WithClock(c ptime.Clock) GeneratorOption {
	return func(g *Generator) {
		if c != nil {
			g.clock = c
		}
	}
}

// WithLocation sets the zone times and dates are rendered in
func WithLocation(loc *time.Location) GeneratorOption {
	return func(g *Generator) {
		if loc != nil {
			g.loc = loc
		}
	}
}

// WithStudyBuckets replaces the study buckets of the embedded pack
func WithStudyBuckets(b []rulepack.Bucket) GeneratorOption {
	return func(g *Generator) { g.buckets = b }
}

// NewGenerator wires the two stores. Both are required
func NewGenerator(notices domain.NoticeLister, reminders domain.ReminderStore, opts ...GeneratorOption) *Generator {
	if notices == nil || reminders == nil {
		panic("assistant.Generator requires a notice lister and a reminder store")
	}
	g := &Generator{
		notices:   notices,
		reminders: reminders,
		clock:     ptime.System,
		loc:       time.Local,
	}
	if p, err := rulepack.Load(); err == nil {
		g.buckets = p.StudyBuckets
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Generate produces the reply for in. Only the notice and reminder branches
// touch a store; their failures come back as ExternalStore errors
func (g *Generator) Generate(ctx context.Context, in intent.Intent, cmd domain.Command) (string, error) {
	switch in {
	case intent.Greeting:
		name := "there"
		if cmd.User != nil && cmd.User.DisplayName != "" {
			name = cmd.User.DisplayName
		}
		return fmt.Sprintf(greetingText, name), nil
	case intent.TimeQuery:
		now := g.now()
		return fmt.Sprintf(timeText, now.Format(ptime.ClockLayout), now.Format(ptime.LongDateLayout)), nil
	case intent.DateQuery:
		return fmt.Sprintf(dateText, g.now().Format(ptime.LongDateLayout)), nil
	case intent.Reminder:
		return g.reminder(ctx, cmd)
	case intent.Notice:
		return g.noticeList(ctx, cmd)
	case intent.Assignment:
		return assignmentsText, nil
	case intent.Department:
		return g.department(cmd), nil
	case intent.Help:
		return helpText, nil
	case intent.Study:
		return g.study(cmd.Text), nil
	}
	return unknownText, nil
}

func (g *Generator) now() time.Time { return g.clock.Now().In(g.loc) }

func (g *Generator) reminder(ctx context.Context, cmd domain.Command) (string, error) {
	r, ok := slots.ExtractReminder(cmd.Text)
	if !ok {
		return reminderUsageText, nil
	}
	if _, err := g.reminders.AppendReminder(ctx, cmd.Owner(), r.Task, r.Time); err != nil {
		return "", perr.ExternalStoref(err, "append reminder")
	}
	return fmt.Sprintf(reminderSetText, r.Task, r.Time), nil
}

// noticeTarget picks the department a notice request is about: a code in the
// command, then the user's department, then "your"
func noticeTarget(cmd domain.Command) string {
	if code, ok := department.Find(cmd.Text); ok {
		return code
	}
	if d := cmd.Department(); d != "" {
		if code, ok := department.Canonical(d); ok {
			return code
		}
		return d
	}
	return "your"
}

func (g *Generator) noticeList(ctx context.Context, cmd domain.Command) (string, error) {
	target := noticeTarget(cmd)
	all, err := g.notices.ListNotices(ctx)
	if err != nil {
		return "", perr.ExternalStoref(err, "list notices")
	}

	picked := make([]domain.Notice, 0, MaxNotices)
	for _, n := range all {
		if n.Department == target || n.Department == department.All {
			picked = append(picked, n)
			if len(picked) == MaxNotices {
				break
			}
		}
	}
	if len(picked) == 0 {
		return fmt.Sprintf(noNoticesText, target), nil
	}

	now := g.now()
	var b strings.Builder
	fmt.Fprintf(&b, noticeHeaderText, target)
	for i, n := range picked {
		icon := "📌 "
		if n.Priority == domain.HighPriority {
			icon = "🚨 "
		}
		fmt.Fprintf(&b, noticeItemText, i+1, icon, n.Title, ptime.Relative(n.CreatedAt, now))
	}
	b.WriteString(noticeFooterText)
	return b.String(), nil
}

// department matches "department" case-sensitively on the raw text, so
// "Department info" lists the whole directory
func (g *Generator) department(cmd domain.Command) string {
	if strings.Contains(cmd.Text, "department") {
		dept := cmd.Department()
		if dept == "" {
			dept = "your"
		}
		desc, ok := department.Describe(dept)
		if !ok {
			desc = departmentPeers
		}
		return fmt.Sprintf(ownDepartmentText, dept, desc)
	}

	entries := department.Entries()
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.Code + ": " + e.Description
	}
	return directoryHeader + strings.Join(lines, "\n\n")
}

// study checks bucket triggers on the raw text in pack order
func (g *Generator) study(text string) string {
	for _, b := range g.buckets {
		for _, t := range b.Triggers {
			if strings.Contains(text, t) {
				if s, ok := studyTexts[b.ID]; ok {
					return s
				}
			}
		}
	}
	return studyTexts["general"]
}
