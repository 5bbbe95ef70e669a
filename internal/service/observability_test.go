package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombineObservers_FansOutAndSkipsNil(t *testing.T) {
	a, b := &recordingObserver{}, &recordingObserver{}
	obs := CombineObservers(a, nil, b)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: UseCaseSendChat, Success: true})
	assert.Len(t, a.events, 1)
	assert.Len(t, b.events, 1)
}

func TestCombineObservers_Degenerate(t *testing.T) {
	assert.Equal(t, NoopUseCaseObserver{}, CombineObservers())
	assert.Equal(t, NoopUseCaseObserver{}, CombineObservers(nil))

	only := &recordingObserver{}
	assert.Same(t, only, CombineObservers(only))
}

func TestLogUseCaseObserver_WritesEvent(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf)

	observe(context.Background(), obs, UseCaseRebuildPlan, time.Now(), map[string]any{FieldDay: "today"}, nil)
	out := buf.String()
	assert.Contains(t, out, "msg=service_use_case")
	assert.Contains(t, out, "use_case=rebuild-plan")
	assert.Contains(t, out, "day=today")
	assert.Contains(t, out, "level=INFO")

	buf.Reset()
	observe(context.Background(), obs, UseCaseRebuildPlan, time.Now(), nil, errors.New("boom"))
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "error=boom")
}

func TestNewLogUseCaseObserver_NilWriter(t *testing.T) {
	obs := NewLogUseCaseObserver(nil)
	require.NotPanics(t, func() {
		obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "x"})
	})
}
