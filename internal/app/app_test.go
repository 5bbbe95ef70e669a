package app

import (
	"errors"
	"testing"
	"time"

	"github.com/abushaidislam/study-guide/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestNewPlanRequest_SetsDefaults(t *testing.T) {
	req := NewPlanRequest(domain.PlanTomorrow)

	assert.Equal(t, domain.PlanTomorrow, req.Day)
	assert.Nil(t, req.StartHour)
	assert.Empty(t, req.FocusRaw)
	assert.Nil(t, req.Now)
	assert.Zero(t, req.TotalMinutes)
	assert.Zero(t, req.BlockMinutes)
}

func TestPlanRequest_SetStartHour(t *testing.T) {
	req := NewPlanRequest(domain.PlanToday)
	req.SetStartHour(0)
	if assert.NotNil(t, req.StartHour) {
		assert.Equal(t, 0.0, *req.StartHour)
	}
}

func TestDependencyError_UnwrapsOriginal(t *testing.T) {
	cause := errors.New("disk full")
	var err error = &DependencyError{Op: "replacing plan window", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Same(t, cause, errors.Unwrap(err))
	assert.Equal(t, "replacing plan window: disk full", err.Error())

	var dep *DependencyError
	assert.True(t, errors.As(err, &dep))
	assert.Equal(t, "replacing plan window", dep.Op)
}

func TestRequestError_Message(t *testing.T) {
	err := &RequestError{Code: ErrCodeInvalidInput, Message: "title is required"}
	assert.Equal(t, "INVALID_INPUT: title is required", err.Error())
}

func TestPlanResult_TotalMinutes(t *testing.T) {
	start := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	r := &PlanResult{Blocks: []domain.ScheduleBlock{
		{Start: start, End: start.Add(50 * time.Minute)},
		{Start: start.Add(time.Hour), End: start.Add(100 * time.Minute)},
	}}
	assert.Equal(t, 90, r.TotalMinutes())
	assert.Zero(t, (&PlanResult{}).TotalMinutes())
}
