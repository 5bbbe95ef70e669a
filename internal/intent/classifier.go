package intent

import (
	"regexp"
	"strings"
	"sync/atomic"
	"unicode/utf8"

	"github.com/abushaidislam/study-guide/internal/domain"
	"github.com/abushaidislam/study-guide/internal/lexicon"
)

// shortRequestMaxTokens bounds "plan ajke"-style requests that carry a
// plan noun and a day hint but no verb.
const shortRequestMaxTokens = 4

// space matches any Unicode whitespace or separator, so keyboard-inserted
// NBSPs separate words like ASCII spaces do.
const space = `[\s\p{Z}]`

// focusCapture is the text a focus phrase may capture: Latin letters,
// Bengali script and whitespace, 3 to 40 runes.
const focusCapture = `([a-z\x{0980}-\x{09FF}\s\p{Z}]{3,40})`

var focusPatternSources = []string{
	`focus(?:` + space + `+on)?` + space + `+` + focusCapture,
	`only` + space + `+` + focusCapture,
	`just` + space + `+` + focusCapture,
	`plan` + space + `+(?:for|on)` + space + `+` + focusCapture,
	focusCapture + space + `+(?:niye|er)` + space + `+plan`,
}

var focusPunct = regexp.MustCompile(`(?i)[^a-z0-9\x{0980}-\x{09FF}\s\p{Z}]`)

// Intent is the result of classifying one chat message.
type Intent struct {
	ShouldRebuild bool
	Day           domain.PlanDay
	FocusRaw      string
}

// Classifier decides whether a message asks for a plan. Build it with
// NewClassifier; the zero value is not usable.
type Classifier struct {
	planNouns     map[string]bool
	actionVerbs   map[string]bool
	todayHints    map[string]bool
	tomorrowHints map[string]bool
	directPhrases []string
	focusPatterns []*regexp.Regexp
	focusCleanup  *regexp.Regexp
}

func NewClassifier(lex *lexicon.Lexicon) *Classifier {
	if lex == nil {
		lex = lexicon.Default()
	}
	c := &Classifier{
		planNouns:     lexicon.Set(lex.PlanNouns),
		actionVerbs:   lexicon.Set(lex.ActionVerbs),
		todayHints:    lexicon.Set(lex.TodayHints),
		tomorrowHints: lexicon.Set(lex.TomorrowHints),
		directPhrases: append([]string(nil), lex.DirectPhrases...),
	}
	for _, src := range focusPatternSources {
		c.focusPatterns = append(c.focusPatterns, regexp.MustCompile(`(?i)`+src))
	}
	if len(lex.FocusCleanup) > 0 {
		quoted := make([]string, len(lex.FocusCleanup))
		for i, w := range lex.FocusCleanup {
			quoted[i] = regexp.QuoteMeta(w)
		}
		c.focusCleanup = regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`)
	}
	return c
}

func (c *Classifier) Classify(text string) Intent {
	normalized := Normalize(text)
	tokens := Tokenize(normalized)

	var hasKeyword, hasAction, mentionsToday, mentionsTomorrow bool
	for _, tok := range tokens {
		hasKeyword = hasKeyword || c.planNouns[tok]
		hasAction = hasAction || c.actionVerbs[tok]
		mentionsToday = mentionsToday || c.todayHints[tok]
		mentionsTomorrow = mentionsTomorrow || c.tomorrowHints[tok]
	}

	day := domain.PlanToday
	if mentionsTomorrow {
		day = domain.PlanTomorrow
	}

	direct := false
	for _, phrase := range c.directPhrases {
		if strings.Contains(normalized, phrase) {
			direct = true
			break
		}
	}

	focusRaw := c.extractFocus(text)
	shortRequest := hasKeyword && len(tokens) <= shortRequestMaxTokens && (mentionsTomorrow || mentionsToday)

	should := direct || (hasKeyword && (hasAction || mentionsTomorrow || focusRaw != "" || shortRequest))
	return Intent{ShouldRebuild: should, Day: day, FocusRaw: focusRaw}
}

// extractFocus returns the first usable capture of the focus patterns,
// tried in order against the raw text.
func (c *Classifier) extractFocus(text string) string {
	for _, re := range c.focusPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if cleaned := c.cleanFocus(m[1]); cleaned != "" {
			return cleaned
		}
	}
	return ""
}

func (c *Classifier) cleanFocus(capture string) string {
	s := capture
	if c.focusCleanup != nil {
		s = c.focusCleanup.ReplaceAllString(s, " ")
	}
	s = focusPunct.ReplaceAllString(s, " ")
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= 1 {
		return ""
	}
	return s
}

// Reloadable serves classification and focus resolution from vocabulary
// that can be swapped while requests are in flight. Each call sees one
// complete set of tables.
type Reloadable struct {
	classifier atomic.Pointer[Classifier]
	resolver   atomic.Pointer[FocusResolver]
}

func NewReloadable(lex *lexicon.Lexicon) *Reloadable {
	r := &Reloadable{}
	r.Reload(lex)
	return r
}

// Reload rebuilds both components from lex.
func (r *Reloadable) Reload(lex *lexicon.Lexicon) {
	r.classifier.Store(NewClassifier(lex))
	r.resolver.Store(NewFocusResolver(lex))
}

func (r *Reloadable) Classify(text string) Intent {
	return r.classifier.Load().Classify(text)
}

func (r *Reloadable) Resolve(raw string) Focus {
	return r.resolver.Load().Resolve(raw)
}
