package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/abushaidislam/study-guide/internal/app"
	"github.com/abushaidislam/study-guide/internal/domain"
	"github.com/abushaidislam/study-guide/internal/repository"
	"github.com/google/uuid"
)

// ErrEmptyMessage is returned by Send for blank input.
var ErrEmptyMessage = errors.New("empty message")

const (
	DefaultHistoryLimit    = 20
	DefaultTranscriptLimit = 50
)

type ChatSettings struct {
	// HistoryLimit bounds the context passed to the assistant.
	HistoryLimit int
	// TranscriptLimit is the default size of History.
	TranscriptLimit int
}

type chatService struct {
	messages   repository.ChatRepo
	classifier IntentClassifier
	plans      app.RebuildPlanUseCase
	assistant  Assistant
	settings   ChatSettings
	observer   UseCaseObserver
}

func NewChatService(
	messages repository.ChatRepo,
	classifier IntentClassifier,
	plans app.RebuildPlanUseCase,
	assistant Assistant,
	settings ChatSettings,
	observers ...UseCaseObserver,
) ChatService {
	if settings.HistoryLimit <= 0 {
		settings.HistoryLimit = DefaultHistoryLimit
	}
	if settings.TranscriptLimit <= 0 {
		settings.TranscriptLimit = DefaultTranscriptLimit
	}
	return &chatService{
		messages:   messages,
		classifier: classifier,
		plans:      plans,
		assistant:  assistant,
		settings:   settings,
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *chatService) Send(ctx context.Context, text string, now time.Time) (reply *app.ChatReply, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() {
		observe(ctx, s.observer, UseCaseSendChat, startedAt, fields, err)
	}()

	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}

	user := &domain.ChatMessage{
		ID:        uuid.New().String(),
		Role:      domain.RoleUser,
		Content:   text,
		CreatedAt: now.UTC(),
	}
	if err := s.messages.Append(ctx, user); err != nil {
		return nil, &app.DependencyError{Op: "storing user message", Err: err}
	}

	reply = &app.ChatReply{}
	assistantMsg := &domain.ChatMessage{
		ID:   uuid.New().String(),
		Role: domain.RoleAssistant,
	}

	in := s.classifier.Classify(text)
	fields["plan_request"] = in.ShouldRebuild
	if in.ShouldRebuild {
		req := app.NewPlanRequest(in.Day)
		req.FocusRaw = in.FocusRaw
		req.Now = &now
		plan, err := s.plans.Rebuild(ctx, req)
		if err != nil {
			return nil, err
		}
		reply.Plan = plan
		reply.Reply = FormatPlanReply(plan)
		assistantMsg.PlanDay = plan.Day
	} else {
		history, err := s.priorHistory(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		answer, err := s.assistant.Reply(ctx, history, text)
		if err != nil {
			return nil, err
		}
		reply.Reply = answer
	}

	assistantMsg.Content = reply.Reply
	assistantMsg.CreatedAt = now.UTC()
	if err := s.messages.Append(ctx, assistantMsg); err != nil {
		return nil, &app.DependencyError{Op: "storing assistant reply", Err: err}
	}
	reply.MessageID = assistantMsg.ID
	return reply, nil
}

// priorHistory returns the recent transcript without the message with
// excludeID.
func (s *chatService) priorHistory(ctx context.Context, excludeID string) ([]domain.ChatMessage, error) {
	recent, err := s.messages.ListRecent(ctx, s.settings.HistoryLimit+1)
	if err != nil {
		return nil, &app.DependencyError{Op: "loading chat history", Err: err}
	}
	history := make([]domain.ChatMessage, 0, len(recent))
	for _, m := range recent {
		if m.ID != excludeID {
			history = append(history, m)
		}
	}
	if len(history) > s.settings.HistoryLimit {
		history = history[len(history)-s.settings.HistoryLimit:]
	}
	return history, nil
}

func (s *chatService) History(ctx context.Context, limit int) ([]domain.ChatMessage, error) {
	if limit <= 0 {
		limit = s.settings.TranscriptLimit
	}
	messages, err := s.messages.ListRecent(ctx, limit)
	if err != nil {
		return nil, &app.DependencyError{Op: "loading chat history", Err: err}
	}
	return messages, nil
}
