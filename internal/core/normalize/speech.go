package normalize

import "strings"

// ForSpeech strips everything a synthesizer would read out as noise.
// Kept: ASCII letters, digits and underscore, whitespace, and . , ! ? ; : ( ) -
// Every newline then becomes a sentence break so list items are read as
// separate sentences
func ForSpeech(s string) string {
	if s == "" {
		return s
	}
	kept := strings.Map(func(r rune) rune {
		if speakable(r) {
			return r
		}
		return -1
	}, s)
	return strings.ReplaceAll(kept, "\n", ". ")
}

func speakable(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		return true
	}
	switch r {
	case '.', ',', '!', '?', ';', ':', '(', ')', '-':
		return true
	}
	return isSpeechSpace(r)
}

// isSpeechSpace follows the ECMAScript whitespace set, which differs from
// unicode.IsSpace on U+0085 (excluded) and U+FEFF (included)
func isSpeechSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', 0xA0, 0x1680, 0x2028, 0x2029, 0x202F, 0x205F, 0x3000, 0xFEFF:
		return true
	}
	return r >= 0x2000 && r <= 0x200A
}
