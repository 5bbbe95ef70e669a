package cli

import (
	"testing"

	"github.com/abushaidislam/study-guide/internal/domain"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayFlag(t *testing.T) {
	var day domain.PlanDay
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	addDayFlag(fs, &day)
	assert.Equal(t, domain.PlanToday, day)

	require.NoError(t, fs.Parse([]string{"--day", "Kalke"}))
	assert.Equal(t, domain.PlanTomorrow, day)
	assert.Equal(t, "tomorrow", fs.Lookup("day").Value.String())
	assert.Equal(t, "day", fs.Lookup("day").Value.Type())

	assert.Error(t, fs.Parse([]string{"--day", "monday"}))
}

func TestFormValidators(t *testing.T) {
	assert.NoError(t, validatePositiveInt(""))
	assert.NoError(t, validatePositiveInt("30"))
	assert.Error(t, validatePositiveInt("0"))
	assert.Error(t, validatePositiveInt("abc"))

	assert.NoError(t, validateOptionalDate(""))
	assert.NoError(t, validateOptionalDate("2025-06-30"))
	assert.Error(t, validateOptionalDate("30/06/2025"))

	assert.Error(t, validateRequired("  "))
	assert.NoError(t, validateRequired("Algebra"))
}

func TestTaskFormValues_ToTask(t *testing.T) {
	v := taskFormValues{Title: " Algebra ", Subject: " Math ", Due: "2025-06-20", Estimate: "40", Priority: "3"}
	task, subject, err := v.toTask(cliNow.Location())
	require.NoError(t, err)
	assert.Equal(t, "Algebra", task.Title)
	assert.Equal(t, "Math", subject)
	assert.Equal(t, 40, task.EstimatedMinutes)
	assert.Equal(t, 3, task.Priority)
	require.NotNil(t, task.DueDate)
	assert.Equal(t, 20, task.DueDate.Day())

	_, _, err = taskFormValues{Title: "x", Due: "soon"}.toTask(cliNow.Location())
	assert.Error(t, err)
}

func TestFormTheme(t *testing.T) {
	assert.NotNil(t, studyflowHuhTheme())
	assert.NotNil(t, taskForm(&taskFormValues{}))
}

func TestApp_StartHourDefault(t *testing.T) {
	assert.Equal(t, 9.0, (&App{}).startHour())

	midnight := 0
	assert.Equal(t, 0.0, (&App{DefaultStartHour: &midnight}).startHour())

	cmd := newPlanGenerateCmd(&App{DefaultStartHour: &midnight})
	assert.Equal(t, "0", cmd.Flags().Lookup("start-hour").DefValue)
}
