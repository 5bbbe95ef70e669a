package service

import (
	"context"
	"math"
	"time"

	"github.com/abushaidislam/study-guide/internal/app"
	"github.com/abushaidislam/study-guide/internal/domain"
	"github.com/abushaidislam/study-guide/internal/scheduler"
	"github.com/google/uuid"
)

// PlannerSettings holds generator budgets. Zero values use the scheduler
// defaults. A PlanRequest with its own budgets overrides these.
type PlannerSettings struct {
	TotalMinutes int
	BlockMinutes int
	// StartHour applies when a request names no hour. Nil selects
	// scheduler.DefaultStartHour; a configured 0 is midnight.
	StartHour *int
}

func (p PlannerSettings) startHour(requested *float64) int {
	if requested != nil && !math.IsNaN(*requested) {
		return scheduler.ClampHour(*requested)
	}
	if p.StartHour != nil {
		return scheduler.ClampHour(float64(*p.StartHour))
	}
	return scheduler.DefaultStartHour
}

type planService struct {
	tasks    app.TaskSource
	blocks   app.BlockStore
	focus    FocusResolver
	settings PlannerSettings
	observer UseCaseObserver
}

func NewPlanService(
	tasks app.TaskSource,
	blocks app.BlockStore,
	focus FocusResolver,
	settings PlannerSettings,
	observers ...UseCaseObserver,
) PlanService {
	return &planService{
		tasks:    tasks,
		blocks:   blocks,
		focus:    focus,
		settings: settings,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *planService) Rebuild(ctx context.Context, req app.PlanRequest) (result *app.PlanResult, err error) {
	startedAt := time.Now()
	now := startedAt
	if req.Now != nil {
		now = *req.Now
	}
	day := domain.ParsePlanDay(string(req.Day))
	fields := map[string]any{FieldDay: string(day)}
	defer func() {
		if result != nil {
			fields[FieldFocusLabel] = result.FocusLabel
			fields[FieldFocusApplied] = result.FocusApplied
			fields[FieldDidUpdate] = result.DidUpdate
			fields[FieldHadMatches] = result.HadMatches
			fields[FieldBlockCount] = len(result.Blocks)
		}
		observe(ctx, s.observer, UseCaseRebuildPlan, startedAt, fields, err)
	}()

	window := scheduler.ResolveDayWindow(day, now, s.settings.startHour(req.StartHour))
	fields[FieldWindowStart] = window.Start
	fields[FieldWindowEnd] = window.End

	focus := s.focus.Resolve(req.FocusRaw)

	tasks, err := s.tasks.ListEligible(ctx)
	if err != nil {
		return nil, &app.DependencyError{Op: "loading eligible tasks", Err: err}
	}

	candidates := tasks
	if focus.Applied {
		candidates = make([]domain.Task, 0, len(tasks))
		for _, t := range tasks {
			if focus.Matches(t.Title, t.SubjectName, t.Description) {
				candidates = append(candidates, t)
			}
		}
	}

	res := &app.PlanResult{
		Day:          day,
		FocusLabel:   focus.Label,
		FocusRaw:     focus.Raw,
		FocusApplied: focus.Applied,
		WindowStart:  window.Start,
		WindowEnd:    window.End,
	}

	if focus.Applied && len(candidates) == 0 {
		existing, err := s.blocks.FindInWindow(ctx, window.Start, window.End)
		if err != nil {
			return nil, &app.DependencyError{Op: "loading plan window", Err: err}
		}
		res.Blocks = inLocation(existing, now.Location())
		return res, nil
	}

	planned := scheduler.GenerateDailyBlocks(candidates, scheduler.BlockOptions{
		TotalMinutes: firstPositive(req.TotalMinutes, s.settings.TotalMinutes),
		BlockMinutes: firstPositive(req.BlockMinutes, s.settings.BlockMinutes),
		Now:          window.PlanStart,
	})
	blocks := windowBlocks(planned, window, time.Now().UTC())

	if err := s.blocks.ReplaceWindow(ctx, window.Start, window.End, blocks); err != nil {
		return nil, &app.DependencyError{Op: "replacing plan window", Err: err}
	}

	stored, err := s.blocks.FindInWindow(ctx, window.Start, window.End)
	if err != nil {
		return nil, &app.DependencyError{Op: "reloading plan window", Err: err}
	}
	res.Blocks = inLocation(stored, now.Location())
	res.DidUpdate = true
	res.HadMatches = true
	return res, nil
}

func (s *planService) Blocks(ctx context.Context, day domain.PlanDay, now time.Time) ([]domain.ScheduleBlock, error) {
	window := scheduler.ResolveDayWindow(domain.ParsePlanDay(string(day)), now, s.settings.startHour(nil))
	blocks, err := s.blocks.FindInWindow(ctx, window.Start, window.End)
	if err != nil {
		return nil, &app.DependencyError{Op: "loading plan window", Err: err}
	}
	return inLocation(blocks, now.Location()), nil
}

// windowBlocks converts generated blocks to storable ones, dropping any
// that would spill past the end of the window.
func windowBlocks(planned []scheduler.PlannedBlock, window scheduler.DayWindow, createdAt time.Time) []domain.ScheduleBlock {
	out := make([]domain.ScheduleBlock, 0, len(planned))
	for _, p := range planned {
		if !window.Contains(p.Start, p.End) {
			continue
		}
		taskID := p.TaskID
		out = append(out, domain.ScheduleBlock{
			ID:        uuid.New().String(),
			TaskID:    &taskID,
			TaskTitle: p.TaskTitle,
			Start:     p.Start,
			End:       p.End,
			CreatedAt: createdAt,
		})
	}
	return out
}

func inLocation(blocks []domain.ScheduleBlock, loc *time.Location) []domain.ScheduleBlock {
	out := make([]domain.ScheduleBlock, len(blocks))
	for i, b := range blocks {
		b.Start = b.Start.In(loc)
		b.End = b.End.In(loc)
		out[i] = b
	}
	return out
}

func firstPositive(vals ...int) int {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return 0
}
