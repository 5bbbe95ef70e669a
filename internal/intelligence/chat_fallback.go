package intelligence

import (
	"strings"
	"unicode"

	"github.com/abushaidislam/study-guide/internal/intent"
)

type replyLanguage int

const (
	langBangla replyLanguage = iota
	langEnglish
)

// banglishMarkers are common romanized Bangla words. Any of them in an
// all-Latin message selects a Bangla reply.
var banglishMarkers = map[string]bool{
	"ami": true, "amar": true, "tumi": true, "apni": true, "kemon": true,
	"acho": true, "achen": true, "ki": true, "keno": true, "kivabe": true,
	"koro": true, "korbo": true, "korte": true, "dao": true, "din": true,
	"ajke": true, "kalke": true, "bhai": true, "apu": true, "hobe": true,
	"parbo": true, "parina": true, "bujhte": true, "porte": true, "pora": true,
	"niye": true, "kichu": true, "valo": true, "bhalo": true, "lagche": true,
}

var englishGreetings = map[string]bool{"hi": true, "hello": true, "hey": true, "thanks": true, "thank": true}

func detectLanguage(message string) replyLanguage {
	for _, r := range message {
		if unicode.In(r, unicode.Bengali) {
			return langBangla
		}
	}
	for _, tok := range intent.Tokenize(intent.Normalize(message)) {
		if banglishMarkers[tok] {
			return langBangla
		}
	}
	return langEnglish
}

type fallbackTopic int

const (
	topicGeneral fallbackTopic = iota
	topicGreeting
	topicFlashcards
	topicTasks
	topicSchedule
)

func detectTopic(message string) fallbackTopic {
	norm := intent.Normalize(message)
	tokens := intent.Tokenize(norm)
	has := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(norm, w) {
				return true
			}
		}
		return false
	}
	switch {
	case has("flashcard", "q a", "quiz", "proshno", "question", "প্রশ্ন"):
		return topicFlashcards
	case has("task", "kaj", "homework", "assignment", "deadline", "কাজ"):
		return topicTasks
	case has("time", "somoy", "break", "pomodoro", "focus", "সময়"):
		return topicSchedule
	}
	for _, tok := range tokens {
		if englishGreetings[tok] || tok == "salam" || tok == "assalamualaikum" || tok == "হ্যালো" {
			return topicGreeting
		}
	}
	if has("kemon acho", "kemon achen") {
		return topicGreeting
	}
	return topicGeneral
}

var fallbackReplies = map[fallbackTopic][2]string{
	topicGreeting: {
		"Hi! Ami Study Flow Agent. Ajker plan chaile bolo \"plan dao\", ba kono subject niye plan chaile \"physics niye plan dao\".",
		"Hi! I'm Study Flow Agent. Say \"plan for today\" for a routine, or \"focus on physics plan\" to plan one subject.",
	},
	topicFlashcards: {
		"Ekhon AI model off ache, tai flashcard banate parchi na. Topic er 3-5 ta mul point likhe rakho, pore abar try koro.",
		"The AI model is offline, so I can't write flashcards right now. Note 3-5 key points for the topic and try again later.",
	},
	topicTasks: {
		"Task add korte task list e title, deadline ar estimate dao. Tarpor \"plan dao\" bolle deadline ar priority dekhe plan banabo.",
		"Add the task with a title, due date and estimate. Then ask for a plan and I'll schedule it by deadline and priority.",
	},
	topicSchedule: {
		"25-50 minute er focus block nao, majhe 10 minute break. \"plan dao\" bolle ajker block gulo ready kore dibo.",
		"Work in 25-50 minute focus blocks with 10 minute breaks. Ask for a plan and I'll lay out today's blocks.",
	},
	topicGeneral: {
		"Ekhon AI model er sathe jog korte parchi na. Plan er jonno \"plan dao\" ba \"kalke routine banao\" bolo.",
		"I can't reach the AI model right now. For a study plan, say \"plan for today\" or \"tomorrow schedule\".",
	},
}

// DeterministicReply answers without a model, in Bangla unless the message
// reads as English.
func DeterministicReply(message string) string {
	replies := fallbackReplies[detectTopic(message)]
	if detectLanguage(message) == langEnglish {
		return replies[1]
	}
	return replies[0]
}
