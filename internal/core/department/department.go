// Package department is the static directory of the six academic departments:
// their codes, one-line descriptions and accent colors
package department

import (
	"regexp"
	"strings"
)

// All is the pseudo department a notice uses to reach everyone
const All = "all"

// DefaultColor is used for All and for anything not in the directory
const DefaultColor = "#666"

// Entry is one directory row
type Entry struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

var directory = []Entry{
	{"CSE", "Computer Science & Engineering - Focus on programming, algorithms, and software development.", "#4361ee"},
	{"EEE", "Electrical & Electronic Engineering - Focus on circuits, power systems, and electronics.", "#3a0ca3"},
	{"Civil", "Civil Engineering - Focus on construction, structures, and infrastructure.", "#f72585"},
	{"Mechanical", "Mechanical Engineering - Focus on machines, thermodynamics, and manufacturing.", "#4cc9f0"},
	{"English", "English Literature & Language - Focus on literature, linguistics, and communication.", "#f8961e"},
	{"BBA", "Business Administration - Focus on management, marketing, and business operations.", "#4895ef"},
}

// codeRE finds the first department code anywhere in a command, any case.
// No word boundaries: "cse" inside a longer token still counts
var codeRE = regexp.MustCompile(`(?i)(CSE|EEE|Civil|Mechanical|English|BBA)`)

// Entries returns the directory in display order
func Entries() []Entry { return append([]Entry(nil), directory...) }

// Codes returns the department codes in display order
func Codes() []string {
	out := make([]string, len(directory))
	for i, e := range directory {
		out[i] = e.Code
	}
	return out
}

// Describe returns the description for an exact code
func Describe(code string) (string, bool) {
	for _, e := range directory {
		if e.Code == code {
			return e.Description, true
		}
	}
	return "", false
}

// Color returns the accent color for a code, DefaultColor when unknown
func Color(code string) string {
	for _, e := range directory {
		if e.Code == code {
			return e.Color
		}
	}
	return DefaultColor
}

// Canonical maps any casing of a code to the directory spelling
func Canonical(code string) (string, bool) {
	for _, e := range directory {
		if strings.EqualFold(e.Code, code) {
			return e.Code, true
		}
	}
	return "", false
}

// Find returns the first department code mentioned in text, in directory
// spelling
func Find(text string) (string, bool) {
	m := codeRE.FindString(text)
	if m == "" {
		return "", false
	}
	return Canonical(m)
}

// Valid reports whether code is an exact directory code
func Valid(code string) bool {
	_, ok := Describe(code)
	return ok
}

// ValidTarget reports whether code can be used as a notice department
func ValidTarget(code string) bool { return code == All || Valid(code) }

// Label is the human label for a notice department
func Label(code string) string {
	if code == All {
		return "All Departments"
	}
	return code
}
