package intent

import (
	"strings"
	"testing"

	"pbl/internal/core/rulepack"
)

func mustDefault(t *testing.T) *Classifier {
	t.Helper()
	c, err := Default()
	if err != nil {
		t.Fatalf("Default(): %v", err)
	}
	return c
}

// linear is the plain ordered first-match scan the automaton must agree with
func linear(p *rulepack.Pack, text string) Intent {
	lower := strings.ToLower(text)
	for _, r := range p.Rules {
		for _, kw := range r.Keywords {
			if strings.Contains(lower, kw) {
				in, _ := Parse(r.Name)
				return in
			}
		}
	}
	return Unknown
}

func TestClassify_Table(t *testing.T) {
	c := mustDefault(t)
	tests := []struct {
		in   string
		want Intent
	}{
		{"hello", Greeting},
		{"hello, what assignment is due", Greeting},
		{"what is the time", TimeQuery},
		{"current time please", TimeQuery},
		{"what day is it", DateQuery},
		{"today's date", DateQuery},
		{"set reminder for 10am for study session", Reminder},
		{"schedule a cse review", Reminder},
		{"remind me about assignment for math homework", Reminder},
		{"show notices", Notice},
		{"any announcements from eee", Notice},
		{"homework for calculus", Assignment},
		{"project submission", Assignment},
		{"department info", Department},
		{"tell me about civil", Department},
		{"bba", Department},
		{"what can you do", Help},
		{"assistance please", Help},
		{"study resources", Study},
		{"recommend a book", Study},
		{"xyzzy", Unknown},
		{"", Unknown},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			if got := c.Classify(tc.in); got != tc.want {
				t.Fatalf("Classify(%q) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
}

func TestClassify_CaseInsensitive(t *testing.T) {
	c := mustDefault(t)
	for _, r := range c.Pack().Rules {
		for _, kw := range r.Keywords {
			want := c.Classify(kw)
			variants := []string{strings.ToUpper(kw), strings.ToUpper(kw[:1]) + kw[1:], kw}
			for _, v := range variants {
				if got := c.Classify(v); got != want {
					t.Fatalf("Classify(%q) = %s, want %s like %q", v, got, want, kw)
				}
			}
		}
	}
}

// substrings count, so "this" carries the greeting keyword "hi"
func TestClassify_SubstringQuirks(t *testing.T) {
	c := mustDefault(t)
	if got := c.Classify("what assignments do I have this week"); got != Greeting {
		t.Fatalf("got %s, want greeting", got)
	}
	if got := c.Classify("sometimes"); got != TimeQuery {
		t.Fatalf("got %s, want time_query", got)
	}
}

func TestClassify_MatchesLinearScan(t *testing.T) {
	c := mustDefault(t)
	p := c.Pack()
	inputs := []string{
		"Good Morning, what is the date",
		"deadline for the english department project",
		"I want to learn mechanical drawing",
		"news updates on alerts",
		"nothing here",
		"THE MECHANICAL HOMEWORK",
		"tutorial on features",
		"hey",
		"a",
	}
	for _, in := range inputs {
		if got, want := c.Classify(in), linear(p, in); got != want {
			t.Fatalf("Classify(%q) = %s, linear scan says %s", in, got, want)
		}
	}
}

func TestExplain(t *testing.T) {
	c := mustDefault(t)
	hits := c.Explain("Schedule CSE")
	if len(hits) < 2 {
		t.Fatalf("expected schedule and cse hits, got %+v", hits)
	}
	if hits[0].Keyword != "schedule" || hits[0].Intent != Reminder || hits[0].Start != 0 || hits[0].End != 8 {
		t.Fatalf("first hit = %+v", hits[0])
	}
	var sawCSE bool
	for _, h := range hits {
		if h.Keyword == "cse" && h.Intent == Department && h.Start == 9 {
			sawCSE = true
		}
	}
	if !sawCSE {
		t.Fatalf("cse hit missing from %+v", hits)
	}
	if len(c.Explain("xyzzy")) != 0 {
		t.Fatalf("expected no hits")
	}
}

func TestNew_Errors(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatalf("expected error for nil pack")
	}
	p, err := rulepack.Parse([]byte(`{"version":1,"intents":[{"name":"weather","keywords":["rain"]}]}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := New(p); err == nil {
		t.Fatalf("expected error for unknown intent name")
	}
	p, _ = rulepack.Parse([]byte(`{"version":1,"intents":[{"name":"unknown","keywords":["rain"]}]}`))
	if _, err := New(p); err == nil {
		t.Fatalf("expected error when unknown owns keywords")
	}
}

func TestNew_CustomOrder(t *testing.T) {
	p, err := rulepack.Parse([]byte(`{"version":1,"intents":[
		{"name":"department","keywords":["cse"]},
		{"name":"reminder","keywords":["schedule"]}]}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	c, err := New(p)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := c.Classify("schedule cse"); got != Department {
		t.Fatalf("pack order should decide, got %s", got)
	}
	if o := c.Order(); len(o) != 2 || o[0] != Department {
		t.Fatalf("Order() = %v", o)
	}
}

func TestDefault_OrderIsPriority(t *testing.T) {
	c := mustDefault(t)
	got := c.Order()
	if len(got) != len(Priority) {
		t.Fatalf("order len %d, want %d", len(got), len(Priority))
	}
	for i := range Priority {
		if got[i] != Priority[i] {
			t.Fatalf("order[%d] = %s, want %s", i, got[i], Priority[i])
		}
	}
}

func TestParse(t *testing.T) {
	for _, in := range []string{"time_query", "TimeQuery", " TIME_QUERY "} {
		if got, err := Parse(in); err != nil || got != TimeQuery {
			t.Fatalf("Parse(%q) = %s, %v", in, got, err)
		}
	}
	if _, err := Parse("weather"); err == nil {
		t.Fatalf("expected error")
	}
	if !Unknown.Valid() || Intent("x").Valid() {
		t.Fatalf("Valid() wrong")
	}
}
