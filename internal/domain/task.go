package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type TaskStatus string

const (
	TaskPending    TaskStatus = "PENDING"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskDone       TaskStatus = "DONE"
)

// ValidTaskStatuses is the canonical set of accepted task status strings.
var ValidTaskStatuses = map[TaskStatus]bool{
	TaskPending:    true,
	TaskInProgress: true,
	TaskDone:       true,
}

const (
	DefaultEstimatedMinutes = 50
	DefaultPriority         = 1
	MinPriority             = 1
	MaxPriority             = 3
)

// ErrInvalidTask is wrapped by every task validation failure.
var ErrInvalidTask = errors.New("invalid task")

type Task struct {
	ID               string
	Title            string
	Description      string
	SubjectID        *string
	SubjectName      string // populated on read from the subjects join
	DueDate          *time.Time
	EstimatedMinutes int
	Priority         int
	Status           TaskStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ApplyDefaults fills zero-valued fields with the task defaults.
func (t *Task) ApplyDefaults() {
	if t.EstimatedMinutes == 0 {
		t.EstimatedMinutes = DefaultEstimatedMinutes
	}
	if t.Priority == 0 {
		t.Priority = DefaultPriority
	}
	if t.Status == "" {
		t.Status = TaskPending
	}
}

func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidTask)
	}
	if t.EstimatedMinutes <= 0 {
		return fmt.Errorf("%w: estimated minutes must be positive, got %d", ErrInvalidTask, t.EstimatedMinutes)
	}
	if t.Priority < MinPriority || t.Priority > MaxPriority {
		return fmt.Errorf("%w: priority must be between %d and %d, got %d", ErrInvalidTask, MinPriority, MaxPriority, t.Priority)
	}
	if !ValidTaskStatuses[t.Status] {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTask, t.Status)
	}
	return nil
}

// IsEligible reports whether the task can take part in a plan.
func (t *Task) IsEligible() bool {
	return t.Status != TaskDone
}

func (t *Task) MarkDone(now time.Time) {
	t.Status = TaskDone
	t.UpdatedAt = now
}

// TaskPatch is a partial update. Nil fields are left unchanged.
// ClearDueDate removes the due date and takes precedence over DueDate.
type TaskPatch struct {
	Title            *string
	Description      *string
	SubjectID        *string
	Status           *TaskStatus
	DueDate          *time.Time
	ClearDueDate     bool
	EstimatedMinutes *int
	Priority         *int
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.SubjectID == nil &&
		p.Status == nil && p.DueDate == nil && !p.ClearDueDate &&
		p.EstimatedMinutes == nil && p.Priority == nil
}

// Apply copies the set fields onto t and validates the result.
func (p TaskPatch) Apply(t *Task, now time.Time) error {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.SubjectID != nil {
		if *p.SubjectID == "" {
			t.SubjectID = nil
		} else {
			id := *p.SubjectID
			t.SubjectID = &id
		}
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	switch {
	case p.ClearDueDate:
		t.DueDate = nil
	case p.DueDate != nil:
		d := *p.DueDate
		t.DueDate = &d
	}
	if p.EstimatedMinutes != nil {
		t.EstimatedMinutes = *p.EstimatedMinutes
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	t.UpdatedAt = now
	return t.Validate()
}

// ParseTaskStatus accepts the canonical upper-case names and their
// lower-case spellings.
func ParseTaskStatus(s string) (TaskStatus, error) {
	status := TaskStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !ValidTaskStatuses[status] {
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidTask, s)
	}
	return status, nil
}
