package intelligence

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/abushaidislam/study-guide/internal/domain"
	"github.com/abushaidislam/study-guide/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	resp *llm.ChatResponse
	err  error
	got  llm.ChatRequest
}

func (c *stubClient) Chat(_ context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	c.got = req
	return c.resp, c.err
}

func (c *stubClient) Available(context.Context) bool { return c.err == nil }

func TestChatAssistant_UsesModelReply(t *testing.T) {
	client := &stubClient{resp: &llm.ChatResponse{Text: "Photosynthesis holo..."}}
	a := NewChatAssistant(client, nil)

	at := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	history := []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "hi", CreatedAt: at},
		{Role: domain.RoleAssistant, Content: "Hello!", CreatedAt: at},
	}
	got, err := a.Reply(context.Background(), history, "photosynthesis ki?")
	require.NoError(t, err)
	assert.Equal(t, "Photosynthesis holo...", got)

	assert.Equal(t, llm.TaskChat, client.got.Task)
	assert.Contains(t, client.got.SystemPrompt, "Study Flow Agent")
	require.Len(t, client.got.Messages, 3)
	assert.Equal(t, llm.RoleAssistant, client.got.Messages[1].Role)
	assert.Equal(t, llm.Message{Role: llm.RoleUser, Content: "photosynthesis ki?"}, client.got.Messages[2])
}

func TestChatAssistant_FallsBackOnError(t *testing.T) {
	a := NewChatAssistant(&stubClient{err: llm.ErrOllamaUnavailable}, nil)
	got, err := a.Reply(context.Background(), nil, "hello")
	require.NoError(t, err)
	assert.Equal(t, DeterministicReply("hello"), got)
}

func TestChatAssistant_DisabledClient(t *testing.T) {
	a := NewChatAssistant(llm.NewClient(llm.DefaultConfig(), nil), nil)
	got, err := a.Reply(context.Background(), nil, "ami kivabe porbo?")
	require.NoError(t, err)
	assert.Contains(t, got, "plan dao")
}

func TestChatAssistant_AgainstOllamaServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Messages []llm.Message `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.NotEmpty(t, body.Messages)
		assert.Equal(t, llm.RoleSystem, body.Messages[0].Role)

		json.NewEncoder(w).Encode(map[string]any{
			"model":   "llama3.2",
			"message": map[string]string{"role": "assistant", "content": "25 minute block nao."},
			"done":    true,
		})
	}))
	defer srv.Close()

	cfg := llm.DefaultConfig()
	cfg.Enabled = true
	cfg.Endpoint = srv.URL
	a := NewChatAssistant(llm.NewClient(cfg, llm.NoopObserver{}), nil)

	got, err := a.Reply(context.Background(), nil, "kivabe porbo?")
	require.NoError(t, err)
	assert.Equal(t, "25 minute block nao.", got)
}

func TestDeterministicReply_Language(t *testing.T) {
	cases := []struct {
		name    string
		message string
		english bool
	}{
		{"english", "How should I revise for exams?", true},
		{"banglish", "ami kivabe porbo", false},
		{"bengali script", "আমি কিভাবে পড়ব", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.english, detectLanguage(tc.message) == langEnglish)
		})
	}
}

func TestDeterministicReply_Topics(t *testing.T) {
	assert.Equal(t, fallbackReplies[topicGreeting][1], DeterministicReply("Hello there"))
	assert.Equal(t, fallbackReplies[topicGreeting][0], DeterministicReply("kemon acho?"))
	assert.Equal(t, fallbackReplies[topicFlashcards][1], DeterministicReply("make flashcards for cell biology"))
	assert.Equal(t, fallbackReplies[topicTasks][0], DeterministicReply("amar homework onek"))
	assert.Equal(t, fallbackReplies[topicSchedule][1], DeterministicReply("how long should a break be"))
	assert.Equal(t, fallbackReplies[topicGeneral][1], DeterministicReply("what is entropy"))
}

func TestDeterministicReply_Deterministic(t *testing.T) {
	first := DeterministicReply("ki korbo ekhon")
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, DeterministicReply("ki korbo ekhon"))
	}
}
