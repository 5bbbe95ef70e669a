// Package lexicon holds the bilingual vocabulary used to recognise planning
// requests written in English, Banglish and Bengali script.
package lexicon

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Lexicon groups the word tables by role. All entries are lower-case.
type Lexicon struct {
	PlanNouns      []string `yaml:"plan_nouns"`
	ActionVerbs    []string `yaml:"action_verbs"`
	DirectPhrases  []string `yaml:"direct_phrases"`
	TodayHints     []string `yaml:"today_hints"`
	TomorrowHints  []string `yaml:"tomorrow_hints"`
	FocusCleanup   []string `yaml:"focus_cleanup"`
	FocusStopwords []string `yaml:"focus_stopwords"`
}

// Default returns the built-in tables. Each call returns fresh slices.
func Default() *Lexicon {
	return &Lexicon{
		PlanNouns: []string{
			"plan", "planner", "planning", "routine", "schedule", "study", "studyplan",
			"porikolpona", "porikalpona", "porikolpana", "porikalpana",
		},
		ActionVerbs: []string{
			"ban", "banao", "banan", "bana", "baniye",
			"kor", "koro", "korbo", "kore", "korun",
			"dao", "dorkar", "lagbe", "chai", "chahi",
			"create", "generate", "suggest", "help", "update", "refresh",
		},
		DirectPhrases: []string{
			"plan dao", "plan koro", "plan ban", "plan banan", "plan banao",
			"planner update", "routine dao", "routine ban", "schedule dao",
			"daily plan", "study plan", "study schedule", "next plan",
		},
		TodayHints:    []string{"ajk", "ajke", "ajker", "aaj", "aajke", "today"},
		TomorrowHints: []string{"kal", "kalke", "kalka", "tomorrow", "agami", "nextday"},
		FocusCleanup: []string{
			"plan", "routine", "schedule", "study",
			"ajker", "ajk", "aaj", "aajke", "today",
			"kal", "kalke", "tomorrow",
		},
		FocusStopwords: []string{
			"focus", "only", "just", "on", "niye", "niyei", "subject", "topic",
			"plan", "routine", "schedule", "study",
			"ajke", "ajker", "aaj", "aajke", "kal", "kalke", "tomorrow", "today",
			"amar", "please", "plz", "pls", "dorkar", "lagbe",
			"koro", "korun", "dao", "banan", "banao", "create", "generate", "help",
		},
	}
}

// Load returns the defaults extended by the tables in path. Entries in the
// file are added to the built-in ones; nothing is removed. An empty path
// returns the defaults.
func Load(path string) (*Lexicon, error) {
	lex := Default()
	if path == "" {
		return lex, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading vocabulary file: %w", err)
	}
	var extra Lexicon
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return nil, fmt.Errorf("parsing vocabulary file: %w", err)
	}
	lex.Merge(&extra)
	if err := lex.Validate(); err != nil {
		return nil, err
	}
	return lex, nil
}

// Merge appends other's entries, lower-cased and de-duplicated.
func (l *Lexicon) Merge(other *Lexicon) {
	if other == nil {
		return
	}
	l.PlanNouns = mergeWords(l.PlanNouns, other.PlanNouns)
	l.ActionVerbs = mergeWords(l.ActionVerbs, other.ActionVerbs)
	l.DirectPhrases = mergeWords(l.DirectPhrases, other.DirectPhrases)
	l.TodayHints = mergeWords(l.TodayHints, other.TodayHints)
	l.TomorrowHints = mergeWords(l.TomorrowHints, other.TomorrowHints)
	l.FocusCleanup = mergeWords(l.FocusCleanup, other.FocusCleanup)
	l.FocusStopwords = mergeWords(l.FocusStopwords, other.FocusStopwords)
}

// Validate rejects tables that would make classification impossible.
func (l *Lexicon) Validate() error {
	if len(l.PlanNouns) == 0 {
		return fmt.Errorf("vocabulary: plan_nouns must not be empty")
	}
	for _, w := range l.singleWordTables() {
		if strings.ContainsAny(w, " \t") {
			return fmt.Errorf("vocabulary: %q must be a single word", w)
		}
	}
	return nil
}

func (l *Lexicon) singleWordTables() []string {
	var all []string
	for _, t := range [][]string{l.PlanNouns, l.ActionVerbs, l.TodayHints, l.TomorrowHints, l.FocusCleanup, l.FocusStopwords} {
		all = append(all, t...)
	}
	return all
}

// Set converts a table into a lookup set.
func Set(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

func mergeWords(base, extra []string) []string {
	seen := Set(base)
	out := append([]string(nil), base...)
	var added []string
	for _, w := range extra {
		w = strings.ToLower(strings.Join(strings.Fields(w), " "))
		if w == "" || seen[w] {
			continue
		}
		seen[w] = true
		added = append(added, w)
	}
	sort.Strings(added)
	return append(out, added...)
}
