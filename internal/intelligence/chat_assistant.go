package intelligence

import (
	"context"
	"log/slog"

	"github.com/abushaidislam/study-guide/internal/domain"
	"github.com/abushaidislam/study-guide/internal/llm"
)

// ChatAssistant answers non-plan chat messages. Replies come from the LLM
// when it is reachable and from DeterministicReply otherwise, so Reply
// never fails.
type ChatAssistant struct {
	client llm.LLMClient
	logger *slog.Logger
}

func NewChatAssistant(client llm.LLMClient, logger *slog.Logger) *ChatAssistant {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ChatAssistant{client: client, logger: logger}
}

func (a *ChatAssistant) Reply(ctx context.Context, history []domain.ChatMessage, message string) (string, error) {
	if a.client == nil {
		return DeterministicReply(message), nil
	}
	resp, err := a.client.Chat(ctx, llm.ChatRequest{
		Task:         llm.TaskChat,
		SystemPrompt: studyAgentSystemPrompt,
		Messages:     buildChatMessages(history, message),
	})
	if err != nil {
		a.logger.DebugContext(ctx, "chat assistant fallback", "error", err)
		return DeterministicReply(message), nil
	}
	return resp.Text, nil
}
