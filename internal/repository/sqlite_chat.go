package repository

import (
	"context"
	"fmt"

	"github.com/abushaidislam/study-guide/internal/db"
	"github.com/abushaidislam/study-guide/internal/domain"
)

// SQLiteChatRepo implements ChatRepo using a SQLite database.
type SQLiteChatRepo struct {
	db db.DBTX
}

func NewSQLiteChatRepo(conn db.DBTX) *SQLiteChatRepo {
	return &SQLiteChatRepo{db: conn}
}

func (r *SQLiteChatRepo) Append(ctx context.Context, m *domain.ChatMessage) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO chat_messages (id, role, content, plan_day, created_at) VALUES (?, ?, ?, ?, ?)`,
		m.ID, string(m.Role), m.Content, string(m.PlanDay), formatTime(m.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting chat message: %w", err)
	}
	return nil
}

func (r *SQLiteChatRepo) ListRecent(ctx context.Context, limit int) ([]domain.ChatMessage, error) {
	if limit <= 0 {
		return []domain.ChatMessage{}, nil
	}
	// rowid breaks ties between messages stored in the same millisecond.
	query := `SELECT id, role, content, plan_day, created_at FROM (
			SELECT rowid AS seq, id, role, content, plan_day, created_at
			FROM chat_messages
			ORDER BY created_at DESC, rowid DESC
			LIMIT ?
		) ORDER BY created_at, seq`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent chat messages: %w", err)
	}
	defer rows.Close()

	messages := []domain.ChatMessage{}
	for rows.Next() {
		var m domain.ChatMessage
		var role, planDay, createdAt string
		if err := rows.Scan(&m.ID, &role, &m.Content, &planDay, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning chat message row: %w", err)
		}
		m.Role = domain.ChatRole(role)
		m.PlanDay = domain.PlanDay(planDay)
		if m.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("parsing chat created_at: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chat messages: %w", err)
	}
	return messages, nil
}
