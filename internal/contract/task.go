package contract

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/abushaidislam/study-guide/internal/app"
	"github.com/abushaidislam/study-guide/internal/domain"
)

type TaskDTO struct {
	ID           string            `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description,omitempty"`
	SubjectID    *string           `json:"subjectId"`
	SubjectName  string            `json:"subjectName,omitempty"`
	Status       domain.TaskStatus `json:"status"`
	DueDate      *string           `json:"dueDate"`
	EstimatedMin int               `json:"estimatedMin"`
	Priority     int               `json:"priority"`
	CreatedAt    string            `json:"createdAt"`
	UpdatedAt    string            `json:"updatedAt"`
}

func FromTask(t *domain.Task) TaskDTO {
	return TaskDTO{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		SubjectID:    t.SubjectID,
		SubjectName:  t.SubjectName,
		Status:       t.Status,
		DueDate:      formatTimePtr(t.DueDate),
		EstimatedMin: t.EstimatedMinutes,
		Priority:     t.Priority,
		CreatedAt:    FormatTime(t.CreatedAt),
		UpdatedAt:    FormatTime(t.UpdatedAt),
	}
}

func FromTasks(tasks []*domain.Task) []TaskDTO {
	out := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		out[i] = FromTask(t)
	}
	return out
}

type TaskResponse struct {
	Task TaskDTO `json:"task"`
}

type TaskListResponse struct {
	Tasks []TaskDTO `json:"tasks"`
}

type CreateTaskRequest struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	SubjectID    *string `json:"subjectId"`
	DueDate      *string `json:"dueDate"`
	EstimatedMin *int    `json:"estimatedMin"`
	Priority     *int    `json:"priority"`
}

// ToTask validates the request shape. Defaults and domain rules are applied
// by the task service.
func (r CreateTaskRequest) ToTask(loc *time.Location) (*domain.Task, error) {
	if strings.TrimSpace(r.Title) == "" {
		return nil, &app.RequestError{Code: app.ErrCodeInvalidInput, Message: "title required"}
	}
	t := &domain.Task{
		Title:            r.Title,
		Description:      r.Description,
		EstimatedMinutes: domain.IntFromPtrWithDefault(domain.DefaultEstimatedMinutes, r.EstimatedMin),
		Priority:         domain.IntFromPtrWithDefault(domain.DefaultPriority, r.Priority),
	}
	if r.SubjectID != nil && *r.SubjectID != "" {
		id := *r.SubjectID
		t.SubjectID = &id
	}
	if r.DueDate != nil && strings.TrimSpace(*r.DueDate) != "" {
		due, err := ParseDueDate(*r.DueDate, loc)
		if err != nil {
			return nil, err
		}
		t.DueDate = &due
	}
	return t, nil
}

// NullableString tells an absent field apart from an explicit null.
type NullableString struct {
	Set   bool
	Valid bool
	Value string
}

func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Valid = false
		return nil
	}
	n.Valid = true
	return json.Unmarshal(data, &n.Value)
}

type UpdateTaskRequest struct {
	Title        *string        `json:"title"`
	Description  *string        `json:"description"`
	SubjectID    NullableString `json:"subjectId"`
	Status       *string        `json:"status"`
	DueDate      NullableString `json:"dueDate"`
	EstimatedMin *int           `json:"estimatedMin"`
	Priority     *int           `json:"priority"`
}

// ToPatch maps the request onto a TaskPatch. A null dueDate clears it; a
// null subjectId unlinks the subject.
func (r UpdateTaskRequest) ToPatch(loc *time.Location) (domain.TaskPatch, error) {
	patch := domain.TaskPatch{
		Title:            r.Title,
		Description:      r.Description,
		EstimatedMinutes: r.EstimatedMin,
		Priority:         r.Priority,
	}
	if r.Status != nil {
		status, err := domain.ParseTaskStatus(*r.Status)
		if err != nil {
			return domain.TaskPatch{}, &app.RequestError{Code: app.ErrCodeInvalidStatus, Message: err.Error()}
		}
		patch.Status = &status
	}
	if r.SubjectID.Set {
		id := ""
		if r.SubjectID.Valid {
			id = r.SubjectID.Value
		}
		patch.SubjectID = &id
	}
	if r.DueDate.Set {
		if !r.DueDate.Valid || strings.TrimSpace(r.DueDate.Value) == "" {
			patch.ClearDueDate = true
		} else {
			due, err := ParseDueDate(r.DueDate.Value, loc)
			if err != nil {
				return domain.TaskPatch{}, err
			}
			patch.DueDate = &due
		}
	}
	return patch, nil
}

type SubjectDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
}

func FromSubject(s *domain.Subject) SubjectDTO {
	return SubjectDTO{ID: s.ID, Name: s.Name, CreatedAt: FormatTime(s.CreatedAt)}
}

type SubjectResponse struct {
	Subject SubjectDTO `json:"subject"`
}

type SubjectListResponse struct {
	Subjects []SubjectDTO `json:"subjects"`
}

type CreateSubjectRequest struct {
	Name string `json:"name"`
}
