// Package normalize prepares text for keyword matching, storage and speech.
// Fold lower-cases for the classifier, Sanitize strips bytes we never want to
// keep, Collapse tidies imported prose and ForSpeech strips decoration before
// synthesis
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// lowerPool hands out language-neutral lower casers. A cases.Caser keeps
// state between calls so each goroutine takes its own
var lowerPool = sync.Pool{
	New: func() any {
		c := cases.Lower(language.Und)
		return &c
	},
}

// Fold returns s lower-cased with full Unicode mappings. Nothing else is
// touched, so substring matches line up with what the user typed
func Fold(s string) string {
	if s == "" {
		return ""
	}
	if isLowerASCII(s) {
		return s
	}
	c := lowerPool.Get().(*cases.Caser)
	out := c.String(s)
	c.Reset()
	lowerPool.Put(c)
	return out
}

func isLowerASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b >= 0x80 || (b >= 'A' && b <= 'Z') {
			return false
		}
	}
	return true
}

// Collapse converts whitespace runs to a single space and trims the edges.
// Runs containing a line break collapse to one newline
func Collapse(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inWS, sawNL := false, false
	flush := func() {
		if !inWS {
			return
		}
		if sawNL {
			b.WriteByte('\n')
		} else {
			b.WriteByte(' ')
		}
		inWS, sawNL = false, false
	}
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			if r == '\n' || r == '\r' {
				sawNL = true
			}
			continue
		}
		flush()
		b.WriteRune(r)
	}
	flush()
	return strings.Trim(b.String(), " \n\t\r")
}
