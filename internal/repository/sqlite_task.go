package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/abushaidislam/study-guide/internal/db"
	"github.com/abushaidislam/study-guide/internal/domain"
)

// taskColumns is the canonical SELECT column list for tasks joined to subjects.
const taskColumns = `t.id, t.title, t.description, t.subject_id, COALESCE(s.name, ''),
		t.due_date, t.estimated_minutes, t.priority, t.status, t.created_at, t.updated_at`

const taskFrom = `FROM tasks t LEFT JOIN subjects s ON s.id = t.subject_id`

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db db.DBTX
}

func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: conn}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (id, title, description, subject_id, due_date,
		estimated_minutes, priority, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.Title,
		t.Description,
		nullableString(t.SubjectID),
		nullableTimeToString(t.DueDate),
		t.EstimatedMinutes,
		t.Priority,
		string(t.Status),
		formatTime(t.CreatedAt),
		formatTime(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` `+taskFrom+` WHERE t.id = ?`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task: %w", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *SQLiteTaskRepo) List(ctx context.Context) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` ` + taskFrom + `
		ORDER BY CASE t.status WHEN 'PENDING' THEN 0 WHEN 'IN_PROGRESS' THEN 1 ELSE 2 END,
		         t.created_at DESC, t.id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

func (r *SQLiteTaskRepo) ListEligible(ctx context.Context) ([]domain.Task, error) {
	query := `SELECT ` + taskColumns + ` ` + taskFrom + `
		WHERE t.status != 'DONE'
		ORDER BY t.created_at, t.id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing eligible tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating eligible tasks: %w", err)
	}
	return tasks, nil
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET title = ?, description = ?, subject_id = ?, due_date = ?,
		estimated_minutes = ?, priority = ?, status = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Title,
		t.Description,
		nullableString(t.SubjectID),
		nullableTimeToString(t.DueDate),
		t.EstimatedMinutes,
		t.Priority,
		string(t.Status),
		formatTime(t.UpdatedAt),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return checkAffected(res, "task")
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return checkAffected(res, "task")
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask returns sql.ErrNoRows unwrapped so GetByID can map it.
func scanTask(row rowScanner) (*domain.Task, error) {
	var t domain.Task
	var subjectID, dueDate sql.NullString
	var status, createdAt, updatedAt string

	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &subjectID, &t.SubjectName,
		&dueDate, &t.EstimatedMinutes, &t.Priority, &status, &createdAt, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning task: %w", err)
	}
	return populateTask(&t, subjectID, dueDate, status, createdAt, updatedAt)
}

// populateTask fills in parsed fields on a Task after scanning raw strings.
func populateTask(t *domain.Task, subjectID, dueDate sql.NullString, status, createdAt, updatedAt string) (*domain.Task, error) {
	var err error
	if subjectID.Valid {
		id := subjectID.String
		t.SubjectID = &id
	}
	if t.DueDate, err = parseNullableTime(dueDate); err != nil {
		return nil, fmt.Errorf("parsing due_date: %w", err)
	}
	t.Status = domain.TaskStatus(status)
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if t.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return t, nil
}
