package domain

import (
	"fmt"
	"strings"
	"time"
)

// ScheduleBlock is one contiguous interval of a day's plan.
// A nil TaskID denotes a generic focus block.
type ScheduleBlock struct {
	ID        string
	TaskID    *string
	TaskTitle string // populated on read from the tasks join
	Start     time.Time
	End       time.Time
	CreatedAt time.Time
}

func (b ScheduleBlock) Minutes() int {
	d := b.End.Sub(b.Start)
	if d <= 0 {
		return 0
	}
	return int((d + 30*time.Second) / time.Minute)
}

func (b ScheduleBlock) Validate() error {
	if !b.Start.Before(b.End) {
		return fmt.Errorf("block %s: start %s is not before end %s", b.ID, b.Start.Format(time.RFC3339), b.End.Format(time.RFC3339))
	}
	return nil
}

// PlanDay is the target day of a plan relative to now.
type PlanDay string

const (
	PlanToday    PlanDay = "today"
	PlanTomorrow PlanDay = "tomorrow"
)

// ParsePlanDay maps anything other than "tomorrow" to today.
func ParsePlanDay(s string) PlanDay {
	if strings.EqualFold(strings.TrimSpace(s), string(PlanTomorrow)) {
		return PlanTomorrow
	}
	return PlanToday
}
