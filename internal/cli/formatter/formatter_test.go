package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/abushaidislam/study-guide/internal/app"
	"github.com/abushaidislam/study-guide/internal/domain"
	"github.com/stretchr/testify/assert"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

var fmtNow = time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := stripANSI(RenderTable([]string{"A", "LONGER"}, [][]string{{"xyz", "1"}, {"q", "22"}}))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "A    LONGER", lines[0])
	assert.Equal(t, "xyz  1", lines[2])
	assert.Equal(t, "q    22", lines[3])
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", Truncate("hello", 5))
	assert.Equal(t, "hell…", Truncate("hello!", 5))
	assert.Equal(t, "বাং…", Truncate("বাংলা", 4))
	assert.Equal(t, "x", Truncate("x", 0))
}

func TestFormatTaskList(t *testing.T) {
	due := fmtNow.AddDate(0, 0, 1)
	overdue := fmtNow.AddDate(0, 0, -2)
	tasks := []*domain.Task{
		{ID: "0123456789", Title: "Algebra", SubjectName: "Math", Status: domain.TaskPending, DueDate: &due, EstimatedMinutes: 50, Priority: 3},
		{ID: "abc", Title: "Essay", Status: domain.TaskDone, DueDate: &overdue, EstimatedMinutes: 30, Priority: 1},
	}
	out := stripANSI(FormatTaskList(tasks, fmtNow))
	assert.Contains(t, out, "01234567 ")
	assert.NotContains(t, out, "0123456789")
	assert.Contains(t, out, "tomorrow")
	assert.Contains(t, out, "2d overdue")
	assert.Contains(t, out, "✔ done")
	assert.Contains(t, out, "!!!")
}

func TestFormatTaskList_Empty(t *testing.T) {
	assert.Contains(t, stripANSI(FormatTaskList(nil, fmtNow)), "No tasks yet")
}

func TestFormatTaskDetail(t *testing.T) {
	task := &domain.Task{ID: "t1", Title: "Algebra", Description: "chapter 4", Status: domain.TaskInProgress, EstimatedMinutes: 45, Priority: 2}
	out := stripANSI(FormatTaskDetail(task, fmtNow))
	assert.True(t, strings.HasPrefix(out, "ALGEBRA\n"))
	assert.Contains(t, out, "45 min")
	assert.Contains(t, out, "in progress")
	assert.Contains(t, out, "chapter 4")
}

func TestFormatBlocks(t *testing.T) {
	id := "t1"
	blocks := []domain.ScheduleBlock{
		{TaskID: &id, TaskTitle: "Algebra", Start: fmtNow, End: fmtNow.Add(50 * time.Minute)},
		{Start: fmtNow.Add(time.Hour), End: fmtNow.Add(90 * time.Minute)},
	}
	out := stripANSI(FormatBlocks(domain.PlanToday, blocks))
	assert.Contains(t, out, "TODAY PLAN")
	assert.Contains(t, out, "09:00-09:50")
	assert.Contains(t, out, "focus block")
	assert.Contains(t, out, "Total: 80 min")

	assert.Contains(t, stripANSI(FormatBlocks(domain.PlanTomorrow, nil)), "No blocks scheduled.")
}

func TestFormatPlanResult_UnmatchedFocus(t *testing.T) {
	res := &app.PlanResult{Day: domain.PlanToday, FocusApplied: true, FocusLabel: "Chemistry"}
	out := stripANSI(FormatPlanResult(res))
	assert.Contains(t, out, "Focus: Chemistry")
	assert.Contains(t, out, "existing plan is unchanged")
}

func TestFormatChatHistory(t *testing.T) {
	msgs := []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "plan dao", CreatedAt: fmtNow},
		{Role: domain.RoleAssistant, Content: "Ajker plan ready!", CreatedAt: fmtNow},
	}
	out := stripANSI(FormatChatHistory(msgs))
	assert.Contains(t, out, "you> plan dao")
	assert.Contains(t, out, "studyflow> Ajker plan ready!")
	assert.Contains(t, stripANSI(FormatChatHistory(nil)), "No messages yet.")
}
