package service

import (
	"context"

	"github.com/abushaidislam/study-guide/internal/app"
	"github.com/abushaidislam/study-guide/internal/domain"
	"github.com/abushaidislam/study-guide/internal/intent"
)

type TaskService interface {
	Create(ctx context.Context, t *domain.Task) error
	Get(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context) ([]*domain.Task, error)
	Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
	MarkDone(ctx context.Context, id string) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}

type SubjectService interface {
	Create(ctx context.Context, name string) (*domain.Subject, error)
	// Ensure returns the subject with name, creating it if needed.
	Ensure(ctx context.Context, name string) (*domain.Subject, error)
	List(ctx context.Context) ([]*domain.Subject, error)
}

type PlanService interface {
	app.RebuildPlanUseCase
	app.GetPlanUseCase
}

type ChatService interface {
	app.SendChatUseCase
	// History returns at most limit of the newest messages, oldest first.
	// A non-positive limit uses the configured transcript size.
	History(ctx context.Context, limit int) ([]domain.ChatMessage, error)
}

type IntentClassifier interface {
	Classify(text string) intent.Intent
}

type FocusResolver interface {
	Resolve(raw string) intent.Focus
}

// Assistant produces free-form replies for messages that are not plan
// requests. history excludes the message being answered.
type Assistant interface {
	Reply(ctx context.Context, history []domain.ChatMessage, message string) (string, error)
}
