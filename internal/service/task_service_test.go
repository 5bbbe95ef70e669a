package service

import (
	"context"
	"errors"
	"testing"

	"github.com/abushaidislam/study-guide/internal/app"
	"github.com/abushaidislam/study-guide/internal/domain"
	"github.com/abushaidislam/study-guide/internal/repository"
	"github.com/abushaidislam/study-guide/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTaskService(s *testStack) TaskService {
	return NewTaskService(s.tasks, s.subjects, testutil.NewTestUoW(s.db), s.observer)
}

func TestTaskCreate_AppliesDefaults(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()
	svc := newTaskService(s)

	task := &domain.Task{Title: "  Read chapter 4  "}
	require.NoError(t, svc.Create(ctx, task))
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "Read chapter 4", task.Title)
	assert.Equal(t, domain.DefaultEstimatedMinutes, task.EstimatedMinutes)
	assert.Equal(t, domain.DefaultPriority, task.Priority)
	assert.Equal(t, domain.TaskPending, task.Status)

	stored, err := svc.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.Title, stored.Title)

	ev, ok := s.observer.last(UseCaseCreateTask)
	require.True(t, ok)
	assert.True(t, ev.Success)
	assert.Equal(t, task.ID, ev.Fields["task_id"])
}

func TestTaskCreate_RejectsBlankTitle(t *testing.T) {
	s := newTestStack(t)
	err := newTaskService(s).Create(context.Background(), &domain.Task{Title: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidTask)
}

func TestTaskCreate_ResolvesSubjectName(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()
	subject := s.addSubject(t, "Chemistry")
	svc := newTaskService(s)

	task := &domain.Task{Title: "Titration lab", SubjectID: &subject.ID}
	require.NoError(t, svc.Create(ctx, task))
	assert.Equal(t, "Chemistry", task.SubjectName)

	missing := "no-such-subject"
	err := svc.Create(ctx, &domain.Task{Title: "Orphan", SubjectID: &missing})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTaskUpdate_AppliesPatch(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()
	task := s.addTask(t, "Essay draft", testutil.WithDueDate(planNow))
	svc := newTaskService(s)

	title := " Essay final "
	prio := 3
	updated, err := svc.Update(ctx, task.ID, domain.TaskPatch{Title: &title, Priority: &prio, ClearDueDate: true})
	require.NoError(t, err)
	assert.Equal(t, "Essay final", updated.Title)
	assert.Equal(t, 3, updated.Priority)
	assert.Nil(t, updated.DueDate)

	stored, err := s.tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Essay final", stored.Title)
	assert.Nil(t, stored.DueDate)
}

func TestTaskUpdate_EmptyPatchIsRequestError(t *testing.T) {
	s := newTestStack(t)
	task := s.addTask(t, "Anything")

	_, err := newTaskService(s).Update(context.Background(), task.ID, domain.TaskPatch{})
	var reqErr *app.RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, app.ErrCodeInvalidInput, reqErr.Code)
}

func TestTaskUpdate_InvalidResultLeavesRowUnchanged(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()
	task := s.addTask(t, "Flashcards", testutil.WithPriority(2))

	bad := 7
	_, err := newTaskService(s).Update(ctx, task.ID, domain.TaskPatch{Priority: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidTask)

	stored, err := s.tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Priority)
}

func TestTaskUpdate_Missing(t *testing.T) {
	s := newTestStack(t)
	title := "x"
	_, err := newTaskService(s).Update(context.Background(), "missing", domain.TaskPatch{Title: &title})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTaskMarkDone_RemovesFromPlanning(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()
	task := s.addTask(t, "Past paper")
	svc := newTaskService(s)

	done, err := svc.MarkDone(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskDone, done.Status)

	eligible, err := s.tasks.ListEligible(ctx)
	require.NoError(t, err)
	assert.Empty(t, eligible)
}

func TestTaskDelete(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()
	task := s.addTask(t, "Temporary")
	svc := newTaskService(s)

	require.NoError(t, svc.Delete(ctx, task.ID))
	_, err := svc.Get(ctx, task.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	tasks, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestSubjectCreate(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()
	svc := NewSubjectService(s.subjects)

	created, err := svc.Create(ctx, "  Organic   Chemistry ")
	require.NoError(t, err)
	assert.Equal(t, "Organic Chemistry", created.Name)

	_, err = svc.Create(ctx, "Organic Chemistry")
	var reqErr *app.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Contains(t, reqErr.Message, "already exists")

	_, err = svc.Create(ctx, " ")
	require.ErrorAs(t, err, &reqErr)
}

func TestSubjectEnsure_GetOrCreate(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()
	svc := NewSubjectService(s.subjects)

	first, err := svc.Ensure(ctx, "Physics")
	require.NoError(t, err)
	second, err := svc.Ensure(ctx, " Physics ")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
