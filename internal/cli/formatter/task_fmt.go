package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/abushaidislam/study-guide/internal/domain"
)

const dateLayout = "2006-01-02"

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// FormatTaskList renders tasks as a table. Due dates are shown relative to now.
func FormatTaskList(tasks []*domain.Task, now time.Time) string {
	if len(tasks) == 0 {
		return Dim("No tasks yet. Add one with: studyflow task add --title \"...\"") + "\n"
	}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		due := Dim("-")
		if t.DueDate != nil {
			due = dueLabel(*t.DueDate, now)
		}
		rows = append(rows, []string{
			Dim(shortID(t.ID)),
			Truncate(t.Title, 40),
			domain.CoalesceStr(t.SubjectName, "-"),
			StatusBadge(t.Status),
			due,
			fmt.Sprintf("%dm", t.EstimatedMinutes),
			PriorityMark(t.Priority),
		})
	}
	return RenderTable([]string{"ID", "TITLE", "SUBJECT", "STATUS", "DUE", "EST", "PRI"}, rows)
}

// FormatTaskDetail renders every field of one task.
func FormatTaskDetail(t *domain.Task, now time.Time) string {
	var b strings.Builder
	b.WriteString(Header(t.Title))
	b.WriteString("\n")
	line := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", Dim(fmt.Sprintf("%-10s", label)), value)
	}
	line("ID", t.ID)
	line("Status", StatusBadge(t.Status))
	line("Subject", domain.CoalesceStr(t.SubjectName, "-"))
	if t.DueDate != nil {
		line("Due", t.DueDate.In(now.Location()).Format(dateLayout)+" "+Dim("("+dueLabel(*t.DueDate, now)+")"))
	} else {
		line("Due", "-")
	}
	line("Estimate", fmt.Sprintf("%d min", t.EstimatedMinutes))
	line("Priority", PriorityMark(t.Priority))
	if t.Description != "" {
		b.WriteString("\n")
		b.WriteString(t.Description)
		b.WriteString("\n")
	}
	return b.String()
}

// dueLabel describes a due date by calendar days from now.
func dueLabel(due, now time.Time) string {
	loc := now.Location()
	dy, dm, dd := due.In(loc).Date()
	ny, nm, nd := now.Date()
	days := int(time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC).Sub(time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)).Hours() / 24)

	switch {
	case days == 0:
		return StyleYellow.Render("today")
	case days == 1:
		return StyleYellow.Render("tomorrow")
	case days < 0:
		return StyleRed.Render(fmt.Sprintf("%dd overdue", -days))
	case days < 14:
		return fmt.Sprintf("in %dd", days)
	default:
		return due.In(loc).Format(dateLayout)
	}
}
