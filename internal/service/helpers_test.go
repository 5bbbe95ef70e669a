package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/abushaidislam/study-guide/internal/db"
	"github.com/abushaidislam/study-guide/internal/domain"
	"github.com/abushaidislam/study-guide/internal/intent"
	"github.com/abushaidislam/study-guide/internal/lexicon"
	"github.com/abushaidislam/study-guide/internal/repository"
	"github.com/abushaidislam/study-guide/internal/testutil"
	"github.com/stretchr/testify/require"
)

var planNow = time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

func at(hour, min int) time.Time {
	return time.Date(2025, 6, 15, hour, min, 0, 0, time.UTC)
}

type testStack struct {
	db       *sql.DB
	tasks    *repository.SQLiteTaskRepo
	subjects *repository.SQLiteSubjectRepo
	blocks   *repository.SQLiteBlockRepo
	chats    *repository.SQLiteChatRepo
	resolver *intent.FocusResolver
	observer *recordingObserver
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &testStack{
		db:       database,
		tasks:    repository.NewSQLiteTaskRepo(database),
		subjects: repository.NewSQLiteSubjectRepo(database),
		blocks:   repository.NewSQLiteBlockRepo(database),
		chats:    repository.NewSQLiteChatRepo(database),
		resolver: intent.NewFocusResolver(lexicon.Default()),
		observer: &recordingObserver{},
	}
}

func (s *testStack) planService(uow db.UnitOfWork) PlanService {
	return NewPlanService(s.tasks, NewBlockStore(s.blocks, uow), s.resolver, PlannerSettings{}, s.observer)
}

func (s *testStack) addTask(t *testing.T, title string, opts ...testutil.TaskOption) *domain.Task {
	t.Helper()
	task := testutil.NewTestTask(title, opts...)
	require.NoError(t, s.tasks.Create(context.Background(), task))
	return task
}

func (s *testStack) addSubject(t *testing.T, name string) *domain.Subject {
	t.Helper()
	subject := testutil.NewTestSubject(name)
	require.NoError(t, s.subjects.Create(context.Background(), subject))
	return subject
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, ev UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, ev)
}

func (o *recordingObserver) last(name string) (UseCaseEvent, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for i := len(o.events) - 1; i >= 0; i-- {
		if o.events[i].Name == name {
			return o.events[i], true
		}
	}
	return UseCaseEvent{}, false
}

// blockShape drops storage identity so two plans can be compared.
type blockShape struct {
	TaskID string
	Start  time.Time
	End    time.Time
}

func shapes(blocks []domain.ScheduleBlock) []blockShape {
	out := make([]blockShape, len(blocks))
	for i, b := range blocks {
		out[i] = blockShape{Start: b.Start.UTC(), End: b.End.UTC()}
		if b.TaskID != nil {
			out[i].TaskID = *b.TaskID
		}
	}
	return out
}

func intPtr(v int) *int {
	return &v
}
