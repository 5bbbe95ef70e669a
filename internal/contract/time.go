package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/abushaidislam/study-guide/internal/app"
)

const dateOnly = "2006-01-02"

// FormatTime renders t as RFC 3339 in the location it carries.
func FormatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatTime(*t)
	return &s
}

// ParseDueDate accepts RFC 3339 timestamps and bare dates. A bare date is
// midnight in loc.
func ParseDueDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(dateOnly, s, loc); err == nil {
		return t, nil
	}
	return time.Time{}, &app.RequestError{
		Code:    app.ErrCodeInvalidInput,
		Message: fmt.Sprintf("dueDate %q is not a date (use YYYY-MM-DD or RFC 3339)", s),
	}
}
