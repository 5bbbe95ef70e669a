package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/abushaidislam/study-guide/internal/db"
	"github.com/abushaidislam/study-guide/internal/domain"
)

// SQLiteSubjectRepo implements SubjectRepo using a SQLite database.
type SQLiteSubjectRepo struct {
	db db.DBTX
}

func NewSQLiteSubjectRepo(conn db.DBTX) *SQLiteSubjectRepo {
	return &SQLiteSubjectRepo{db: conn}
}

func (r *SQLiteSubjectRepo) Create(ctx context.Context, s *domain.Subject) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO subjects (id, name, created_at) VALUES (?, ?, ?)`,
		s.ID, s.Name, formatTime(s.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting subject: %w", err)
	}
	return nil
}

func (r *SQLiteSubjectRepo) GetByID(ctx context.Context, id string) (*domain.Subject, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, created_at FROM subjects WHERE id = ?`, id)
	return scanSubject(row)
}

func (r *SQLiteSubjectRepo) GetByName(ctx context.Context, name string) (*domain.Subject, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, created_at FROM subjects WHERE name = ? COLLATE NOCASE`, name)
	return scanSubject(row)
}

func (r *SQLiteSubjectRepo) List(ctx context.Context) ([]*domain.Subject, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created_at FROM subjects ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing subjects: %w", err)
	}
	defer rows.Close()

	var subjects []*domain.Subject
	for rows.Next() {
		var s domain.Subject
		var createdAt string
		if err := rows.Scan(&s.ID, &s.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning subject row: %w", err)
		}
		if s.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("parsing subject created_at: %w", err)
		}
		subjects = append(subjects, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating subjects: %w", err)
	}
	return subjects, nil
}

func scanSubject(row *sql.Row) (*domain.Subject, error) {
	var s domain.Subject
	var createdAt string
	if err := row.Scan(&s.ID, &s.Name, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("subject: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning subject: %w", err)
	}
	var err error
	if s.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing subject created_at: %w", err)
	}
	return &s, nil
}
