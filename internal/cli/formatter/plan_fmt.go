package formatter

import (
	"fmt"
	"strings"

	"github.com/abushaidislam/study-guide/internal/app"
	"github.com/abushaidislam/study-guide/internal/domain"
)

const clockLayout = "15:04"

// FormatBlocks renders a day's blocks as a timetable.
func FormatBlocks(day domain.PlanDay, blocks []domain.ScheduleBlock) string {
	var b strings.Builder
	b.WriteString(Header(string(day) + " plan"))
	b.WriteString("\n")
	if len(blocks) == 0 {
		b.WriteString(Dim("No blocks scheduled."))
		b.WriteString("\n")
		return b.String()
	}
	total := 0
	rows := make([][]string, 0, len(blocks))
	for _, blk := range blocks {
		title := blk.TaskTitle
		if blk.TaskID == nil {
			title = Dim("focus block")
		}
		rows = append(rows, []string{
			StyleBlue.Render(blk.Start.Format(clockLayout) + "-" + blk.End.Format(clockLayout)),
			fmt.Sprintf("%dm", blk.Minutes()),
			title,
		})
		total += blk.Minutes()
	}
	b.WriteString(RenderTable([]string{"TIME", "LEN", "TASK"}, rows))
	fmt.Fprintf(&b, "%s %s\n", Dim("Total:"), Bold(fmt.Sprintf("%d min", total)))
	return b.String()
}

// FormatPlanResult renders a rebuild outcome, noting when a focus matched
// nothing and the stored plan was left alone.
func FormatPlanResult(res *app.PlanResult) string {
	var b strings.Builder
	if res.FocusApplied {
		fmt.Fprintf(&b, "%s %s\n", Dim("Focus:"), StylePurple.Render(res.FocusLabel))
	}
	if !res.DidUpdate {
		b.WriteString(StyleYellow.Render("No tasks matched that focus; the existing plan is unchanged."))
		b.WriteString("\n")
	}
	b.WriteString(FormatBlocks(res.Day, res.Blocks))
	return b.String()
}
