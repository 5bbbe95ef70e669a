package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/abushaidislam/study-guide/internal/db"
	"github.com/abushaidislam/study-guide/internal/domain"
)

// SQLiteBlockRepo implements BlockRepo using a SQLite database.
type SQLiteBlockRepo struct {
	db db.DBTX
}

func NewSQLiteBlockRepo(conn db.DBTX) *SQLiteBlockRepo {
	return &SQLiteBlockRepo{db: conn}
}

func (r *SQLiteBlockRepo) ListInWindow(ctx context.Context, start, end time.Time) ([]domain.ScheduleBlock, error) {
	query := `SELECT b.id, b.task_id, COALESCE(t.title, ''), b.start_at, b.end_at, b.created_at
		FROM schedule_blocks b
		LEFT JOIN tasks t ON t.id = b.task_id
		WHERE b.start_at >= ? AND b.end_at <= ?
		ORDER BY b.start_at, b.id`
	rows, err := r.db.QueryContext(ctx, query, formatTime(start), formatTime(end))
	if err != nil {
		return nil, fmt.Errorf("listing blocks in window: %w", err)
	}
	defer rows.Close()

	blocks := []domain.ScheduleBlock{}
	for rows.Next() {
		var b domain.ScheduleBlock
		var taskID sql.NullString
		var startAt, endAt, createdAt string
		if err := rows.Scan(&b.ID, &taskID, &b.TaskTitle, &startAt, &endAt, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning block row: %w", err)
		}
		if taskID.Valid {
			id := taskID.String
			b.TaskID = &id
		}
		if b.Start, err = parseTime(startAt); err != nil {
			return nil, fmt.Errorf("parsing start_at: %w", err)
		}
		if b.End, err = parseTime(endAt); err != nil {
			return nil, fmt.Errorf("parsing end_at: %w", err)
		}
		if b.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		blocks = append(blocks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating blocks: %w", err)
	}
	return blocks, nil
}

func (r *SQLiteBlockRepo) DeleteInWindow(ctx context.Context, start, end time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM schedule_blocks WHERE start_at >= ? AND end_at <= ?`,
		formatTime(start), formatTime(end),
	)
	if err != nil {
		return 0, fmt.Errorf("deleting blocks in window: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading deleted block count: %w", err)
	}
	return n, nil
}

// CreateBatch inserts blocks in order. Callers that need all-or-nothing
// semantics run it inside a UnitOfWork.
func (r *SQLiteBlockRepo) CreateBatch(ctx context.Context, blocks []domain.ScheduleBlock) error {
	query := `INSERT INTO schedule_blocks (id, task_id, start_at, end_at, created_at) VALUES (?, ?, ?, ?, ?)`
	for i := range blocks {
		b := &blocks[i]
		if err := b.Validate(); err != nil {
			return err
		}
		_, err := r.db.ExecContext(ctx, query,
			b.ID,
			nullableString(b.TaskID),
			formatTime(b.Start),
			formatTime(b.End),
			formatTime(b.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("inserting block %d: %w", i, err)
		}
	}
	return nil
}
