package service

import (
	"context"
	"fmt"
	"time"

	"github.com/abushaidislam/study-guide/internal/app"
	"github.com/abushaidislam/study-guide/internal/db"
	"github.com/abushaidislam/study-guide/internal/domain"
	"github.com/abushaidislam/study-guide/internal/repository"
)

// windowBlockStore composes the block repository steps into the atomic
// window replacement plans rely on.
type windowBlockStore struct {
	blocks repository.BlockRepo
	uow    db.UnitOfWork
}

func NewBlockStore(blocks repository.BlockRepo, uow db.UnitOfWork) app.BlockStore {
	return &windowBlockStore{blocks: blocks, uow: uow}
}

func (s *windowBlockStore) FindInWindow(ctx context.Context, start, end time.Time) ([]domain.ScheduleBlock, error) {
	return s.blocks.ListInWindow(ctx, start, end)
}

func (s *windowBlockStore) ReplaceWindow(ctx context.Context, start, end time.Time, blocks []domain.ScheduleBlock) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txBlocks := repository.NewSQLiteBlockRepo(tx)
		if _, err := txBlocks.DeleteInWindow(ctx, start, end); err != nil {
			return fmt.Errorf("clearing window: %w", err)
		}
		if err := txBlocks.CreateBatch(ctx, blocks); err != nil {
			return fmt.Errorf("inserting window blocks: %w", err)
		}
		return nil
	})
}
