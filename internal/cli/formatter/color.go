package formatter

import (
	"fmt"
	"strings"

	"github.com/abushaidislam/study-guide/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusBadge renders a task status with its color.
func StatusBadge(s domain.TaskStatus) string {
	switch s {
	case domain.TaskDone:
		return StyleGreen.Render("✔ done")
	case domain.TaskInProgress:
		return StyleYellow.Render("◐ in progress")
	default:
		return StyleBlue.Render("○ pending")
	}
}

// PriorityMark renders 1..3 as that many bangs.
func PriorityMark(p int) string {
	if p < 1 {
		p = 1
	}
	mark := strings.Repeat("!", p)
	if p >= 3 {
		return StyleRed.Render(mark)
	}
	return StyleYellow.Render(mark)
}

// Header renders an upper-case section title over a dim rule.
func Header(text string) string {
	upper := strings.ToUpper(text)
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(strings.Repeat("─", lipgloss.Width(upper))))
}

func Dim(text string) string  { return StyleDim.Render(text) }
func Bold(text string) string { return StyleBold.Render(text) }
