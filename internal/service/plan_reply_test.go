package service

import (
	"strings"
	"testing"

	"github.com/abushaidislam/study-guide/internal/app"
	"github.com/abushaidislam/study-guide/internal/domain"
	"github.com/abushaidislam/study-guide/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestFormatPlanReply_ReadyPlan(t *testing.T) {
	algebra := testutil.NewTestTask("Algebra")
	res := &app.PlanResult{
		Day:       domain.PlanToday,
		DidUpdate: true,
		Blocks: []domain.ScheduleBlock{
			testutil.NewTestBlock(algebra, at(9, 0), 60),
			testutil.NewTestBlock(nil, at(14, 30), 40),
		},
	}

	got := FormatPlanReply(res)
	lines := strings.Split(got, "\n")
	assert.Equal(t, "Ajker plan ready!", lines[0])
	assert.Equal(t, "1. 09:00 AM - 10:00 AM: Algebra", lines[1])
	assert.Equal(t, "2. 02:30 PM - 03:10 PM: Focus block", lines[2])
	assert.Contains(t, got, "Mot focus time: 1h 40m.")
	assert.Contains(t, got, "Planner panel e blocks gulo update hoye geche.")
}

func TestFormatPlanReply_TomorrowWithFocus(t *testing.T) {
	task := testutil.NewTestTask("Optics")
	res := &app.PlanResult{
		Day:          domain.PlanTomorrow,
		FocusLabel:   "Physics",
		FocusApplied: true,
		HadMatches:   true,
		Blocks:       []domain.ScheduleBlock{testutil.NewTestBlock(task, at(9, 0), 50)},
	}

	got := FormatPlanReply(res)
	assert.True(t, strings.HasPrefix(got, "Kalke plan ready!\nFocus: Physics\n"))
	assert.Contains(t, got, "Planner e ager plan e kono poriborton laglo na.")
}

func TestFormatPlanReply_NoMatches(t *testing.T) {
	res := &app.PlanResult{FocusRaw: "geography", FocusLabel: "Geography", FocusApplied: true}
	got := FormatPlanReply(res)
	assert.Equal(t, `Focus "Geography" er sathe kono task pawa gelo na, tai plan change kori nai. Task list e oi focus er kaj add kore abar bolo.`, got)
}

func TestFormatPlanReply_EmptyPlan(t *testing.T) {
	got := FormatPlanReply(&app.PlanResult{Day: domain.PlanTomorrow, DidUpdate: true, HadMatches: true})
	assert.Equal(t, "Kalke plan banate parlam na, karon kono active task pawa gelo na. Task list e kaj add kore abar bolo.", got)
}

func TestFormatPlanReply_UnusableFocusNote(t *testing.T) {
	task := testutil.NewTestTask("Essay")
	res := &app.PlanResult{
		Day:       domain.PlanToday,
		FocusRaw:  "please",
		DidUpdate: true,
		Blocks:    []domain.ScheduleBlock{testutil.NewTestBlock(task, at(9, 0), 25)},
	}
	got := FormatPlanReply(res)
	assert.True(t, strings.HasSuffix(got, `Focus "please" bujhte parini, tai default plan dilam.`))
	assert.NotContains(t, got, "Focus: ")
}

func TestFormatDuration(t *testing.T) {
	cases := map[int]string{0: "0m", -5: "0m", 45: "45m", 60: "1h", 125: "2h 5m"}
	for minutes, want := range cases {
		assert.Equal(t, want, FormatDuration(minutes), "minutes=%d", minutes)
	}
}
