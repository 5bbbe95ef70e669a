package contract

import (
	"github.com/abushaidislam/study-guide/internal/app"
	"github.com/abushaidislam/study-guide/internal/domain"
)

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatMessageDTO struct {
	ID        string          `json:"id"`
	Role      domain.ChatRole `json:"role"`
	Content   string          `json:"content"`
	PlanDay   *domain.PlanDay `json:"planDay,omitempty"`
	CreatedAt string          `json:"createdAt"`
}

type ChatHistoryResponse struct {
	Messages []ChatMessageDTO `json:"messages"`
}

func FromChatMessages(msgs []domain.ChatMessage) []ChatMessageDTO {
	out := make([]ChatMessageDTO, len(msgs))
	for i, m := range msgs {
		out[i] = ChatMessageDTO{
			ID:        m.ID,
			Role:      m.Role,
			Content:   m.Content,
			CreatedAt: FormatTime(m.CreatedAt),
		}
		if m.PlanDay != "" {
			day := m.PlanDay
			out[i].PlanDay = &day
		}
	}
	return out
}

// ChatPostResponse carries the plan fields only when the message rebuilt a
// plan. A nil *ChatPlanFields leaves them out of the JSON entirely.
type ChatPostResponse struct {
	ID    string `json:"id"`
	Reply string `json:"reply"`
	*ChatPlanFields
}

type ChatPlanFields struct {
	PlanGenerated    bool           `json:"planGenerated"`
	PlanDay          domain.PlanDay `json:"planDay"`
	PlanFocusLabel   *string        `json:"planFocusLabel"`
	PlanFocusRaw     *string        `json:"planFocusRaw"`
	PlanFocusApplied bool           `json:"planFocusApplied"`
	PlanDidUpdate    bool           `json:"planDidUpdate"`
	PlanHadMatches   bool           `json:"planHadMatches"`
}

func FromChatReply(r *app.ChatReply) ChatPostResponse {
	resp := ChatPostResponse{ID: r.MessageID, Reply: r.Reply}
	if p := r.Plan; p != nil {
		resp.ChatPlanFields = &ChatPlanFields{
			PlanGenerated:    true,
			PlanDay:          p.Day,
			PlanFocusLabel:   optional(p.FocusLabel),
			PlanFocusRaw:     optional(p.FocusRaw),
			PlanFocusApplied: p.FocusApplied,
			PlanDidUpdate:    p.DidUpdate,
			PlanHadMatches:   p.HadMatches,
		}
	}
	return resp
}
