// Package intent turns free-form chat text into planning intents and topic
// focuses. Everything here is pure and safe for concurrent use.
package intent

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Bengali block.
const (
	bengaliFirst = 'ঀ'
	bengaliLast  = '৿'
)

func keepRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || (r >= bengaliFirst && r <= bengaliLast)
}

// Normalize lower-cases raw, turns every rune other than a-z, 0-9 and
// Bengali script into a space, then collapses and trims whitespace.
func Normalize(raw string) string {
	lowered := strings.ToLower(raw)
	var b strings.Builder
	b.Grow(len(lowered))
	pendingSpace := false
	for _, r := range lowered {
		if !keepRune(r) {
			pendingSpace = b.Len() > 0
			continue
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Tokenize splits normalized text on spaces.
func Tokenize(normalized string) []string {
	return strings.Fields(normalized)
}

func titleWord(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if size == 0 {
		return w
	}
	return string(unicode.ToUpper(r)) + w[size:]
}
