package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/abushaidislam/study-guide/internal/domain"
	"github.com/abushaidislam/study-guide/internal/intent"
	"github.com/abushaidislam/study-guide/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAssistant struct {
	answer  string
	err     error
	calls   int
	history []domain.ChatMessage
	message string
}

func (a *stubAssistant) Reply(_ context.Context, history []domain.ChatMessage, message string) (string, error) {
	a.calls++
	a.history = history
	a.message = message
	return a.answer, a.err
}

func newChatService(s *testStack, assistant Assistant, settings ChatSettings) ChatService {
	plans := s.planService(testutil.NewTestUoW(s.db))
	return NewChatService(s.chats, intent.NewClassifier(nil), plans, assistant, settings, s.observer)
}

func TestSend_PlanRequestRebuildsPlan(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()
	s.addTask(t, "Algebra", testutil.WithPriority(3))
	assistant := &stubAssistant{answer: "unused"}
	svc := newChatService(s, assistant, ChatSettings{})

	reply, err := svc.Send(ctx, "plan dao", planNow)
	require.NoError(t, err)
	require.NotNil(t, reply.Plan)
	assert.Zero(t, assistant.calls, "plan requests never reach the assistant")
	assert.True(t, strings.HasPrefix(reply.Reply, "Ajker plan ready!"))
	assert.Len(t, reply.Plan.Blocks, 1)
	assert.NotEmpty(t, reply.MessageID)

	transcript, err := svc.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, transcript, 2)
	assert.Equal(t, domain.RoleUser, transcript[0].Role)
	assert.Equal(t, "plan dao", transcript[0].Content)
	assert.Equal(t, domain.RoleAssistant, transcript[1].Role)
	assert.Equal(t, reply.Reply, transcript[1].Content)
	assert.Equal(t, domain.PlanToday, transcript[1].PlanDay)
}

func TestSend_PlanRequestCarriesDayAndFocus(t *testing.T) {
	s := newTestStack(t)
	physics := s.addSubject(t, "Physics")
	s.addTask(t, "Optics", testutil.WithSubject(physics))
	svc := newChatService(s, &stubAssistant{}, ChatSettings{})

	reply, err := svc.Send(context.Background(), "kalke physics niye plan dao", planNow)
	require.NoError(t, err)
	require.NotNil(t, reply.Plan)
	assert.Equal(t, domain.PlanTomorrow, reply.Plan.Day)
	assert.Equal(t, "physics", reply.Plan.FocusRaw)
	assert.True(t, reply.Plan.FocusApplied)
	assert.True(t, reply.Plan.HadMatches)
	assert.True(t, strings.HasPrefix(reply.Reply, "Kalke plan ready!\nFocus: Physics"))
}

func TestSend_PlanRequestUsesConfiguredStartHour(t *testing.T) {
	s := newTestStack(t)
	s.addTask(t, "Algebra")
	plans := NewPlanService(s.tasks, NewBlockStore(s.blocks, testutil.NewTestUoW(s.db)), s.resolver,
		PlannerSettings{StartHour: intPtr(7)}, s.observer)
	svc := NewChatService(s.chats, intent.NewClassifier(nil), plans, &stubAssistant{}, ChatSettings{}, s.observer)

	reply, err := svc.Send(context.Background(), "kalke plan dao", planNow)
	require.NoError(t, err)
	require.NotNil(t, reply.Plan)
	require.NotEmpty(t, reply.Plan.Blocks)
	assert.True(t, time.Date(2025, 6, 16, 7, 0, 0, 0, time.UTC).Equal(reply.Plan.Blocks[0].Start))
}

func TestSend_SmallTalkGoesToAssistant(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()
	earlier := testutil.NewTestChatMessage(domain.RoleUser, "earlier question", planNow.Add(-time.Minute))
	require.NoError(t, s.chats.Append(ctx, earlier))

	assistant := &stubAssistant{answer: "Bhalo achi!"}
	svc := newChatService(s, assistant, ChatSettings{})

	reply, err := svc.Send(ctx, "hello how are you", planNow)
	require.NoError(t, err)
	assert.Nil(t, reply.Plan)
	assert.Equal(t, "Bhalo achi!", reply.Reply)
	assert.Equal(t, 1, assistant.calls)
	assert.Equal(t, "hello how are you", assistant.message)
	require.Len(t, assistant.history, 1, "history excludes the message being answered")
	assert.Equal(t, "earlier question", assistant.history[0].Content)
}

func TestSend_HistoryIsBounded(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		msg := testutil.NewTestChatMessage(domain.RoleUser, string(rune('a'+i)), planNow.Add(-5*time.Minute).Add(time.Duration(i)*time.Minute))
		require.NoError(t, s.chats.Append(ctx, msg))
	}
	assistant := &stubAssistant{answer: "ok"}
	svc := newChatService(s, assistant, ChatSettings{HistoryLimit: 2})

	_, err := svc.Send(ctx, "what next?", planNow)
	require.NoError(t, err)
	require.Len(t, assistant.history, 2)
	assert.Equal(t, "d", assistant.history[0].Content)
	assert.Equal(t, "e", assistant.history[1].Content)
}

func TestSend_EmptyMessage(t *testing.T) {
	s := newTestStack(t)
	svc := newChatService(s, &stubAssistant{}, ChatSettings{})

	_, err := svc.Send(context.Background(), "   ", planNow)
	assert.ErrorIs(t, err, ErrEmptyMessage)

	transcript, err := svc.History(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, transcript)
}

func TestSend_AssistantFailureKeepsUserMessage(t *testing.T) {
	s := newTestStack(t)
	cause := errors.New("model offline")
	svc := newChatService(s, &stubAssistant{err: cause}, ChatSettings{})

	_, err := svc.Send(context.Background(), "explain photosynthesis", planNow)
	assert.ErrorIs(t, err, cause)

	transcript, err := svc.History(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, transcript, 1)
	assert.Equal(t, domain.RoleUser, transcript[0].Role)

	ev, ok := s.observer.last(UseCaseSendChat)
	require.True(t, ok)
	assert.False(t, ev.Success)
}

func TestHistory_Limit(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()
	for i := 0; i < 4; i++ {
		msg := testutil.NewTestChatMessage(domain.RoleAssistant, string(rune('w'+i)), planNow.Add(time.Duration(i)*time.Minute))
		require.NoError(t, s.chats.Append(ctx, msg))
	}
	svc := newChatService(s, &stubAssistant{}, ChatSettings{TranscriptLimit: 3})

	all, err := svc.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "x", all[0].Content)

	two, err := svc.History(ctx, 2)
	require.NoError(t, err)
	require.Len(t, two, 2)
	assert.Equal(t, "z", two[1].Content)
}
