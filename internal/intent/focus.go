package intent

import (
	"strings"
	"unicode/utf8"

	"github.com/abushaidislam/study-guide/internal/lexicon"
)

// Focus is a resolved topic filter. When Applied is false the plan uses
// every eligible task.
type Focus struct {
	Raw     string
	Tokens  []string
	Label   string
	Applied bool
}

// Matches reports whether every focus token occurs somewhere in the
// normalized title, subject and description. Tokens match as substrings,
// so "math" matches "Mathematics".
func (f Focus) Matches(title, subject, description string) bool {
	haystack := Normalize(title + " " + subject + " " + description)
	for _, tok := range f.Tokens {
		if !strings.Contains(haystack, tok) {
			return false
		}
	}
	return true
}

type FocusResolver struct {
	stopwords map[string]bool
}

func NewFocusResolver(lex *lexicon.Lexicon) *FocusResolver {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &FocusResolver{stopwords: lexicon.Set(lex.FocusStopwords)}
}

func (r *FocusResolver) Resolve(raw string) Focus {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Focus{Raw: trimmed}
	}
	var tokens []string
	for _, tok := range Tokenize(Normalize(trimmed)) {
		if utf8.RuneCountInString(tok) <= 1 || r.stopwords[tok] {
			continue
		}
		tokens = append(tokens, tok)
	}
	if len(tokens) == 0 {
		return Focus{Raw: trimmed}
	}
	words := make([]string, len(tokens))
	for i, tok := range tokens {
		words[i] = titleWord(tok)
	}
	return Focus{
		Raw:     trimmed,
		Tokens:  tokens,
		Label:   strings.Join(words, " "),
		Applied: true,
	}
}
