package domain

import "time"

type Subject struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatMessage is one entry of the append-only chat transcript.
type ChatMessage struct {
	ID        string
	Role      ChatRole
	Content   string
	PlanDay   PlanDay // set on assistant replies produced by a plan rebuild
	CreatedAt time.Time
}
