package scheduler

import (
	"math"
	"time"

	"github.com/abushaidislam/study-guide/internal/domain"
)

// DefaultStartHour is the hour plans begin at when nothing configures one.
const DefaultStartHour = 9

// ClampHour floors h into 0..23. NaN yields DefaultStartHour.
func ClampHour(h float64) int {
	switch {
	case math.IsNaN(h):
		return DefaultStartHour
	case h < 0:
		return 0
	case h > 23:
		return 23
	}
	return int(math.Floor(h))
}

// DayWindow is the span a plan occupies. Blocks belong to the window when
// they start at or after Start and end at or before End.
type DayWindow struct {
	Start     time.Time
	End       time.Time
	PlanStart time.Time
}

// Contains reports whether [start, end) lies inside the window.
func (w DayWindow) Contains(start, end time.Time) bool {
	return !start.Before(w.Start) && !end.After(w.End)
}

// ResolveDayWindow computes the window for day relative to now, in now's
// location. Today's plan never starts before now.
func ResolveDayWindow(day domain.PlanDay, now time.Time, startHour int) DayWindow {
	y, m, d := now.Date()
	if day == domain.PlanTomorrow {
		d++
	}
	loc := now.Location()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	end := time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), loc)
	planStart := time.Date(y, m, d, startHour, 0, 0, 0, loc)

	if day != domain.PlanTomorrow && now.After(planStart) {
		planStart = now
	}
	return DayWindow{Start: start, End: end, PlanStart: planStart}
}
