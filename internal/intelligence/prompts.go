package intelligence

import (
	"github.com/abushaidislam/study-guide/internal/domain"
	"github.com/abushaidislam/study-guide/internal/llm"
)

const studyAgentSystemPrompt = `You are Study Flow Agent.
Plan study routines, create daily tasks, and help with scheduling.
Default language: Bangla (unless the user writes in English).
Be concise and actionable.
When suggesting schedules, use 25–50 minute focused blocks with short breaks.
Consider deadlines and priorities when asked to plan.
If asked to generate Q&A or flashcards, keep them short and clear.`

// buildChatMessages maps the stored transcript onto chat turns and appends
// the new user message.
func buildChatMessages(history []domain.ChatMessage, message string) []llm.Message {
	out := make([]llm.Message, 0, len(history)+1)
	for _, m := range history {
		role := llm.RoleUser
		if m.Role == domain.RoleAssistant {
			role = llm.RoleAssistant
		}
		out = append(out, llm.Message{Role: role, Content: m.Content})
	}
	return append(out, llm.Message{Role: llm.RoleUser, Content: message})
}
