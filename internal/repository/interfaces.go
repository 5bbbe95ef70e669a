package repository

import (
	"context"
	"errors"
	"time"

	"github.com/abushaidislam/study-guide/internal/domain"
)

// ErrNotFound is wrapped by every lookup that matches no row.
var ErrNotFound = errors.New("not found")

type SubjectRepo interface {
	Create(ctx context.Context, s *domain.Subject) error
	GetByID(ctx context.Context, id string) (*domain.Subject, error)
	GetByName(ctx context.Context, name string) (*domain.Subject, error)
	List(ctx context.Context) ([]*domain.Subject, error)
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	// List orders by status, then newest first.
	List(ctx context.Context) ([]*domain.Task, error)
	// ListEligible returns every task whose status is not DONE, with its
	// subject name, in creation order.
	ListEligible(ctx context.Context) ([]domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
}

// BlockRepo stores schedule blocks. A block is inside a window when
// start >= windowStart and end <= windowEnd.
type BlockRepo interface {
	ListInWindow(ctx context.Context, start, end time.Time) ([]domain.ScheduleBlock, error)
	DeleteInWindow(ctx context.Context, start, end time.Time) (int64, error)
	CreateBatch(ctx context.Context, blocks []domain.ScheduleBlock) error
}

type ChatRepo interface {
	Append(ctx context.Context, m *domain.ChatMessage) error
	// ListRecent returns at most limit of the newest messages, oldest first.
	ListRecent(ctx context.Context, limit int) ([]domain.ChatMessage, error)
}
