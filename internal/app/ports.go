package app

import (
	"context"
	"time"

	"github.com/abushaidislam/study-guide/internal/domain"
)

// TaskSource supplies the tasks a plan may use.
type TaskSource interface {
	// ListEligible returns every task that is not DONE, with its subject name.
	ListEligible(ctx context.Context) ([]domain.Task, error)
}

// BlockStore persists a day's blocks. A block belongs to a window when it
// starts at or after start and ends at or before end.
type BlockStore interface {
	FindInWindow(ctx context.Context, start, end time.Time) ([]domain.ScheduleBlock, error)
	// ReplaceWindow deletes every block in the window and inserts blocks as
	// one atomic step. Readers see either the old set or the new one.
	ReplaceWindow(ctx context.Context, start, end time.Time, blocks []domain.ScheduleBlock) error
}

type RebuildPlanUseCase interface {
	Rebuild(ctx context.Context, req PlanRequest) (*PlanResult, error)
}

type GetPlanUseCase interface {
	Blocks(ctx context.Context, day domain.PlanDay, now time.Time) ([]domain.ScheduleBlock, error)
}

type SendChatUseCase interface {
	Send(ctx context.Context, text string, now time.Time) (*ChatReply, error)
}
