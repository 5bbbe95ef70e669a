package cli

import (
	"context"
	"io"
	"time"

	"github.com/abushaidislam/study-guide/internal/calendar"
	"github.com/abushaidislam/study-guide/internal/domain"
	"github.com/abushaidislam/study-guide/internal/scheduler"
	"github.com/abushaidislam/study-guide/internal/service"
	"github.com/spf13/cobra"
)

// CalendarSyncer mirrors one day's blocks into an external calendar.
type CalendarSyncer interface {
	Sync(ctx context.Context, windowStart time.Time, blocks []domain.ScheduleBlock) (calendar.SyncResult, error)
}

// App holds the services and hooks the commands run against. Optional
// hooks left nil make their commands report that the feature is not
// configured.
type App struct {
	Tasks    service.TaskService
	Subjects service.SubjectService
	Plans    service.PlanService
	Chat     service.ChatService

	// DefaultStartHour is the configured hour shown as the --start-hour
	// default. Nil shows scheduler.DefaultStartHour.
	DefaultStartHour *int

	Now           func() time.Time
	IsInteractive func() bool

	Calendar          func(ctx context.Context) (CalendarSyncer, error)
	AuthorizeCalendar func(ctx context.Context, out io.Writer) error
	Serve             func(ctx context.Context, addr string) error
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) startHour() float64 {
	if a.DefaultStartHour != nil {
		return float64(*a.DefaultStartHour)
	}
	return scheduler.DefaultStartHour
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "studyflow" command.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "studyflow",
		Short:         "Study planner with a bilingual chat assistant",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	// Read by main before the App is built; declared here so cobra accepts it.
	root.PersistentFlags().String("config", "", "Path to a YAML config file")

	root.AddCommand(
		newTaskCmd(app),
		newSubjectCmd(app),
		newPlanCmd(app),
		newChatCmd(app),
		newServeCmd(app),
		newCalendarCmd(app),
	)
	return root
}

func ctxOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
