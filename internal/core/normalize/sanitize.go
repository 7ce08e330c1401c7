package normalize

import (
	"strings"
	"unicode/utf8"
)

// Sanitize removes runes we never store or dispatch:
// NUL and the other C0 controls except tab, LF and CR, DEL, the C1 block and
// invalid UTF-8. Clean input comes back unchanged without allocating
func Sanitize(s string) string {
	if s == "" || isClean(s) {
		return s
	}
	s = strings.ToValidUTF8(s, "")
	return strings.Map(func(r rune) rune {
		if dropRune(r) {
			return -1
		}
		return r
	}, s)
}

func isClean(s string) bool {
	for i := 0; i < len(s); {
		b := s[i]
		if b < utf8.RuneSelf {
			if dropRune(rune(b)) {
				return false
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			return false
		}
		if dropRune(r) {
			return false
		}
		i += size
	}
	return true
}

func dropRune(r rune) bool {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return false
	case r < 0x20, r == 0x7F:
		return true
	case r >= 0x80 && r <= 0x9F:
		return true
	}
	return false
}
