package scheduler

import (
	"time"

	"github.com/abushaidislam/study-guide/internal/domain"
)

// ScoringWeights controls how much each factor contributes to a task score.
// The three weights sum to 1, so scores fall in (0, 1].
type ScoringWeights struct {
	Urgency  float64
	Priority float64
	Effort   float64
}

func defaultWeights() ScoringWeights {
	return ScoringWeights{
		Urgency:  0.5,
		Priority: 0.4,
		Effort:   0.1,
	}
}

const (
	// noDueDateDays is the deadline distance assumed for undated tasks.
	noDueDateDays = 14.0
	// fallbackScoringMinutes stands in for a missing estimate when scoring.
	fallbackScoringMinutes = 30
	effortCeilingMinutes   = 120.0
	minEffortFactor        = 0.25
)

// ScoreTask rates how urgently a task should be worked on at now. Higher is
// more urgent. The result depends only on its arguments.
func ScoreTask(task domain.Task, now time.Time) float64 {
	w := defaultWeights()
	return w.Urgency*urgencyFactor(task.DueDate, now) +
		w.Priority*priorityFactor(task.Priority) +
		w.Effort*effortFactor(task.EstimatedMinutes)
}

func urgencyFactor(due *time.Time, now time.Time) float64 {
	days := noDueDateDays
	if due != nil {
		days = due.Sub(now).Hours() / 24
		if days < 0 {
			days = 0
		}
	}
	return 1 / (1 + days)
}

func priorityFactor(priority int) float64 {
	p := clampInt(priority, domain.MinPriority, domain.MaxPriority)
	return float64(p) / float64(domain.MaxPriority)
}

func effortFactor(estimated int) float64 {
	if estimated <= 0 {
		estimated = fallbackScoringMinutes
	}
	f := float64(estimated) / effortCeilingMinutes
	switch {
	case f < minEffortFactor:
		return minEffortFactor
	case f > 1:
		return 1
	}
	return f
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
