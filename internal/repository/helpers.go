package repository

import (
	"database/sql"
	"fmt"
	"time"
)

// timestampLayout is fixed-width so that stored UTC instants order
// lexically. Window queries compare timestamps as strings.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// formatTime normalizes t to UTC and renders it with timestampLayout.
func formatTime(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// parseTime parses a value written by formatTime.
func parseTime(s string) (time.Time, error) {
	return time.Parse(timestampLayout, s)
}

// parseNullableTime parses a sql.NullString written by formatTime.
// Returns nil if the value is NULL or empty.
func parseNullableTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := parseTime(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// nullableTimeToString converts a *time.Time to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil.
func nullableTimeToString(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

// nullableString converts an optional string pointer to SQL NULL or its value.
func nullableString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

// checkAffected returns ErrNotFound, labelled with entity, when a write
// touched no rows.
func checkAffected(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows for %s: %w", entity, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", entity, ErrNotFound)
	}
	return nil
}
