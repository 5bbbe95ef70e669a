package testutil

import (
	"time"

	"github.com/abushaidislam/study-guide/internal/domain"
	"github.com/google/uuid"
)

// Task options
type TaskOption func(*domain.Task)

func WithDescription(d string) TaskOption {
	return func(t *domain.Task) {
		t.Description = d
	}
}

// WithSubject links the task to a subject and sets the joined name, as a
// read through the repository would.
func WithSubject(s *domain.Subject) TaskOption {
	return func(t *domain.Task) {
		id := s.ID
		t.SubjectID = &id
		t.SubjectName = s.Name
	}
}

func WithSubjectName(name string) TaskOption {
	return func(t *domain.Task) {
		t.SubjectName = name
	}
}

func WithDueDate(d time.Time) TaskOption {
	return func(t *domain.Task) {
		t.DueDate = &d
	}
}

func WithEstimate(m int) TaskOption {
	return func(t *domain.Task) {
		t.EstimatedMinutes = m
	}
}

func WithPriority(p int) TaskOption {
	return func(t *domain.Task) {
		t.Priority = p
	}
}

func WithStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) {
		t.Status = s
	}
}

func WithCreatedAt(at time.Time) TaskOption {
	return func(t *domain.Task) {
		t.CreatedAt = at
		t.UpdatedAt = at
	}
}

func NewTestTask(title string, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC()
	t := &domain.Task{
		ID:               uuid.New().String(),
		Title:            title,
		EstimatedMinutes: domain.DefaultEstimatedMinutes,
		Priority:         domain.DefaultPriority,
		Status:           domain.TaskPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func NewTestSubject(name string) *domain.Subject {
	return &domain.Subject{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}

// NewTestBlock returns a block of the given length starting at start.
// A nil task makes a generic focus block.
func NewTestBlock(task *domain.Task, start time.Time, minutes int) domain.ScheduleBlock {
	b := domain.ScheduleBlock{
		ID:        uuid.New().String(),
		Start:     start,
		End:       start.Add(time.Duration(minutes) * time.Minute),
		CreatedAt: time.Now().UTC(),
	}
	if task != nil {
		id := task.ID
		b.TaskID = &id
		b.TaskTitle = task.Title
	}
	return b
}

func NewTestChatMessage(role domain.ChatRole, content string, at time.Time) *domain.ChatMessage {
	return &domain.ChatMessage{
		ID:        uuid.New().String(),
		Role:      role,
		Content:   content,
		CreatedAt: at,
	}
}
