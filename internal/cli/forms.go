package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/abushaidislam/study-guide/internal/cli/formatter"
	"github.com/abushaidislam/study-guide/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

func studyflowHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// taskFormValues holds the raw strings a task form edits.
type taskFormValues struct {
	Title       string
	Description string
	Subject     string
	Due         string
	Estimate    string
	Priority    string
}

func taskForm(v *taskFormValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(&v.Title).Validate(validateRequired),
			huh.NewInput().Title("Subject (blank for none)").Value(&v.Subject),
			huh.NewText().Title("Description").Value(&v.Description).Lines(3),
		),
		huh.NewGroup(
			huh.NewInput().Title("Due Date (YYYY-MM-DD, blank for none)").Placeholder("2025-06-30").
				Value(&v.Due).Validate(validateOptionalDate),
			huh.NewInput().Title("Estimated Minutes").Placeholder(strconv.Itoa(domain.DefaultEstimatedMinutes)).
				Value(&v.Estimate).Validate(validatePositiveInt),
			huh.NewSelect[string]().Title("Priority").
				Options(
					huh.NewOption("Low", "1"),
					huh.NewOption("Medium", "2"),
					huh.NewOption("High", "3"),
				).
				Value(&v.Priority),
		),
	).WithTheme(studyflowHuhTheme()).WithShowHelp(false)
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}

// validatePositiveInt accepts empty or a positive integer.
func validatePositiveInt(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}

func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

// toTask converts form input into a task. Subject is returned separately
// because it is resolved by name.
func (v taskFormValues) toTask(loc *time.Location) (*domain.Task, string, error) {
	task := &domain.Task{
		Title:       strings.TrimSpace(v.Title),
		Description: strings.TrimSpace(v.Description),
	}
	if v.Due != "" {
		due, err := time.ParseInLocation("2006-01-02", v.Due, loc)
		if err != nil {
			return nil, "", fmt.Errorf("invalid due date %q: %w", v.Due, err)
		}
		task.DueDate = &due
	}
	if v.Estimate != "" {
		n, err := strconv.Atoi(v.Estimate)
		if err != nil {
			return nil, "", fmt.Errorf("invalid estimate %q: %w", v.Estimate, err)
		}
		task.EstimatedMinutes = n
	}
	if v.Priority != "" {
		n, err := strconv.Atoi(v.Priority)
		if err != nil {
			return nil, "", fmt.Errorf("invalid priority %q: %w", v.Priority, err)
		}
		task.Priority = n
	}
	return task, strings.TrimSpace(v.Subject), nil
}
