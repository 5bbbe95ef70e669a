package service

import (
	"fmt"
	"strings"

	"github.com/abushaidislam/study-guide/internal/app"
	"github.com/abushaidislam/study-guide/internal/domain"
)

const replyTimeLayout = "03:04 PM"

// FormatPlanReply renders a rebuild result as the Banglish chat reply.
// Block times are printed in the location they carry.
func FormatPlanReply(r *app.PlanResult) string {
	if r.FocusApplied && !r.HadMatches {
		label := domain.CoalesceStr(r.FocusLabel, r.FocusRaw, "selected topic")
		return fmt.Sprintf(`Focus "%s" er sathe kono task pawa gelo na, tai plan change kori nai. Task list e oi focus er kaj add kore abar bolo.`, label)
	}

	if len(r.Blocks) == 0 {
		prefix := "Ajker"
		if r.Day == domain.PlanTomorrow {
			prefix = "Kalke"
		}
		msg := prefix + " plan banate parlam na, karon kono active task pawa gelo na."
		if r.FocusLabel != "" {
			msg += fmt.Sprintf(` Focus "%s" er kono task list e nei.`, r.FocusLabel)
		}
		return msg + " Task list e kaj add kore abar bolo."
	}

	header := "Ajker plan ready!"
	if r.Day == domain.PlanTomorrow {
		header = "Kalke plan ready!"
	}
	lines := []string{header}
	if r.FocusApplied && r.FocusLabel != "" {
		lines = append(lines, "Focus: "+r.FocusLabel)
	}
	for i, b := range r.Blocks {
		title := b.TaskTitle
		if b.TaskID == nil || title == "" {
			title = "Focus block"
		}
		lines = append(lines, fmt.Sprintf("%d. %s - %s: %s",
			i+1, b.Start.Format(replyTimeLayout), b.End.Format(replyTimeLayout), title))
	}
	lines = append(lines, "", fmt.Sprintf("Mot focus time: %s.", FormatDuration(r.TotalMinutes())))
	if r.DidUpdate {
		lines = append(lines, "Planner panel e blocks gulo update hoye geche.")
	} else {
		lines = append(lines, "Planner e ager plan e kono poriborton laglo na.")
	}
	if !r.FocusApplied && strings.TrimSpace(r.FocusRaw) != "" {
		lines = append(lines, "", fmt.Sprintf(`Focus "%s" bujhte parini, tai default plan dilam.`, strings.TrimSpace(r.FocusRaw)))
	}
	return strings.Join(lines, "\n")
}

// FormatDuration renders minutes as "0m", "45m", "2h" or "2h 5m".
func FormatDuration(minutes int) string {
	if minutes <= 0 {
		return "0m"
	}
	h, m := minutes/60, minutes%60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dm", m)
}
