package scheduler

import (
	"testing"
	"time"

	"github.com/abushaidislam/study-guide/internal/domain"
	"github.com/abushaidislam/study-guide/internal/testutil"
	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

func TestScoreTask_Formula(t *testing.T) {
	due := testNow.Add(24 * time.Hour)
	task := *testutil.NewTestTask("Algebra", testutil.WithPriority(3), testutil.WithEstimate(60), testutil.WithDueDate(due))

	// 0.5*(1/2) + 0.4*(3/3) + 0.1*(60/120)
	assert.InDelta(t, 0.70, ScoreTask(task, testNow), 1e-9)
}

func TestScoreTask_NoDueDateUsesFourteenDays(t *testing.T) {
	task := *testutil.NewTestTask("History", testutil.WithPriority(1), testutil.WithEstimate(40))

	want := 0.5*(1.0/15) + 0.4*(1.0/3) + 0.1*(40.0/120)
	assert.InDelta(t, want, ScoreTask(task, testNow), 1e-9)
}

func TestScoreTask_OverdueClampsToZeroDays(t *testing.T) {
	past := testNow.Add(-72 * time.Hour)
	overdue := *testutil.NewTestTask("Late", testutil.WithDueDate(past))
	dueNow := *testutil.NewTestTask("Now", testutil.WithDueDate(testNow))
	assert.InDelta(t, ScoreTask(dueNow, testNow), ScoreTask(overdue, testNow), 1e-9)
}

func TestScoreTask_ClampsInputs(t *testing.T) {
	cases := []struct {
		name          string
		priority, est int
		wantPriority  float64
		wantEffort    float64
	}{
		{"priority below range", 0, 60, 1.0 / 3, 0.5},
		{"priority above range", 9, 60, 1, 0.5},
		{"tiny estimate floors at quarter", 3, 10, 1, 0.25},
		{"huge estimate caps at one", 3, 600, 1, 1},
		{"missing estimate reads as thirty", 3, 0, 1, 0.25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			task := domain.Task{Priority: tc.priority, EstimatedMinutes: tc.est}
			want := 0.5*(1.0/15) + 0.4*tc.wantPriority + 0.1*tc.wantEffort
			assert.InDelta(t, want, ScoreTask(task, testNow), 1e-9)
		})
	}
}

func TestScoreTask_CloserDeadlineScoresHigher(t *testing.T) {
	soon := testNow.Add(2 * 24 * time.Hour)
	later := testNow.Add(10 * 24 * time.Hour)
	a := domain.Task{Priority: 2, EstimatedMinutes: 50, DueDate: &soon}
	b := domain.Task{Priority: 2, EstimatedMinutes: 50, DueDate: &later}
	assert.Greater(t, ScoreTask(a, testNow), ScoreTask(b, testNow))
}
