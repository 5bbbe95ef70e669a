package app

import (
	"time"

	"github.com/abushaidislam/study-guide/internal/domain"
)

type PlanRequest struct {
	Day      domain.PlanDay
	FocusRaw string
	// StartHour is floored and clamped to 0..23. Nil or NaN selects the
	// planner's configured start hour.
	StartHour *float64
	// Now defaults to the current local time.
	Now *time.Time
	// Zero minutes select the generator defaults.
	TotalMinutes int
	BlockMinutes int
}

func NewPlanRequest(day domain.PlanDay) PlanRequest {
	return PlanRequest{Day: day}
}

// SetStartHour pins the hour the plan begins at.
func (r *PlanRequest) SetStartHour(h float64) {
	r.StartHour = &h
}

// PlanResult is the outcome of a rebuild. When a focus matched no task the
// stored plan is returned untouched with DidUpdate and HadMatches false.
type PlanResult struct {
	Day          domain.PlanDay
	Blocks       []domain.ScheduleBlock
	FocusLabel   string
	FocusRaw     string
	FocusApplied bool
	DidUpdate    bool
	HadMatches   bool
	WindowStart  time.Time
	WindowEnd    time.Time
}

// TotalMinutes sums the block lengths.
func (r *PlanResult) TotalMinutes() int {
	total := 0
	for _, b := range r.Blocks {
		total += b.Minutes()
	}
	return total
}

// ChatReply is what the chat flow returns for one user message. Plan is set
// only when the message triggered a rebuild.
type ChatReply struct {
	MessageID string
	Reply     string
	Plan      *PlanResult
}
