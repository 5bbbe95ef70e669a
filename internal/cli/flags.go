package cli

import (
	"fmt"
	"strings"

	"github.com/abushaidislam/study-guide/internal/domain"
	"github.com/spf13/pflag"
)

// dayValue is a pflag.Value restricted to today and tomorrow.
type dayValue struct {
	day *domain.PlanDay
}

var _ pflag.Value = dayValue{}

func newDayValue(day *domain.PlanDay) dayValue {
	*day = domain.PlanToday
	return dayValue{day: day}
}

func (d dayValue) String() string {
	if d.day == nil {
		return string(domain.PlanToday)
	}
	return string(*d.day)
}

func (d dayValue) Set(s string) error {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "today":
		*d.day = domain.PlanToday
	case "tomorrow", "kal", "kalke":
		*d.day = domain.PlanTomorrow
	default:
		return fmt.Errorf("day must be today or tomorrow, got %q", s)
	}
	return nil
}

func (d dayValue) Type() string { return "day" }

// addDayFlag registers --day on fs.
func addDayFlag(fs *pflag.FlagSet, day *domain.PlanDay) {
	fs.Var(newDayValue(day), "day", "Plan day: today or tomorrow")
}
