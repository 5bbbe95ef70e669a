package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/abushaidislam/study-guide/internal/app"
	"github.com/abushaidislam/study-guide/internal/db"
	"github.com/abushaidislam/study-guide/internal/domain"
	"github.com/abushaidislam/study-guide/internal/repository"
	"github.com/google/uuid"
)

type taskService struct {
	tasks    repository.TaskRepo
	subjects repository.SubjectRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewTaskService(tasks repository.TaskRepo, subjects repository.SubjectRepo, uow db.UnitOfWork, observers ...UseCaseObserver) TaskService {
	return &taskService{
		tasks:    tasks,
		subjects: subjects,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *taskService) Create(ctx context.Context, t *domain.Task) (err error) {
	startedAt := time.Now()
	defer func() {
		observe(ctx, s.observer, UseCaseCreateTask, startedAt, map[string]any{"task_id": t.ID}, err)
	}()

	t.Title = strings.TrimSpace(t.Title)
	t.Description = strings.TrimSpace(t.Description)
	t.ApplyDefaults()
	if err = t.Validate(); err != nil {
		return err
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	if t.SubjectID != nil {
		subject, err := s.subjects.GetByID(ctx, *t.SubjectID)
		if err != nil {
			return fmt.Errorf("resolving subject: %w", err)
		}
		t.SubjectName = subject.Name
	}
	return s.tasks.Create(ctx, t)
}

func (s *taskService) Get(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) List(ctx context.Context) ([]*domain.Task, error) {
	return s.tasks.List(ctx)
}

// Update applies patch inside one transaction so a concurrent edit cannot
// interleave between the read and the write.
func (s *taskService) Update(ctx context.Context, id string, patch domain.TaskPatch) (task *domain.Task, err error) {
	startedAt := time.Now()
	defer func() {
		observe(ctx, s.observer, UseCaseUpdateTask, startedAt, map[string]any{"task_id": id}, err)
	}()

	if patch.IsEmpty() {
		return nil, &app.RequestError{Code: app.ErrCodeInvalidInput, Message: "no fields to update"}
	}
	if patch.Title != nil {
		trimmed := strings.TrimSpace(*patch.Title)
		patch.Title = &trimmed
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		txSubjects := repository.NewSQLiteSubjectRepo(tx)

		current, err := txTasks.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := patch.Apply(current, time.Now().UTC()); err != nil {
			return err
		}
		current.SubjectName = ""
		if current.SubjectID != nil {
			subject, err := txSubjects.GetByID(ctx, *current.SubjectID)
			if err != nil {
				return fmt.Errorf("resolving subject: %w", err)
			}
			current.SubjectName = subject.Name
		}
		if err := txTasks.Update(ctx, current); err != nil {
			return err
		}
		task = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) MarkDone(ctx context.Context, id string) (*domain.Task, error) {
	done := domain.TaskDone
	return s.Update(ctx, id, domain.TaskPatch{Status: &done})
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	return s.tasks.Delete(ctx, id)
}
