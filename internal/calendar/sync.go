// Package calendar exports a day's plan blocks to Google Calendar.
package calendar

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/abushaidislam/study-guide/internal/domain"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Private extended property keys on exported events.
const (
	PropBlockID = "studyflow_block_id"
	PropDay     = "studyflow_day"
)

const dayKeyLayout = "2006-01-02"

type SyncResult struct {
	Inserted int
	Updated  int
	Deleted  int
}

type Syncer struct {
	srv        *gcal.Service
	calendarID string
}

// NewService builds a Calendar API client on an authorized HTTP client.
func NewService(ctx context.Context, client *http.Client, opts ...option.ClientOption) (*gcal.Service, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(client)}, opts...)
	srv, err := gcal.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating calendar service: %w", err)
	}
	return srv, nil
}

func NewSyncer(srv *gcal.Service, calendarID string) *Syncer {
	if calendarID == "" {
		calendarID = "primary"
	}
	return &Syncer{srv: srv, calendarID: calendarID}
}

// DayKey identifies a plan day in event properties.
func DayKey(windowStart time.Time) string {
	return windowStart.Format(dayKeyLayout)
}

// Sync makes the calendar's studyflow events for the day match blocks:
// known blocks are patched, new ones inserted and stale ones deleted.
func (s *Syncer) Sync(ctx context.Context, windowStart time.Time, blocks []domain.ScheduleBlock) (SyncResult, error) {
	var res SyncResult
	day := DayKey(windowStart)

	existing := map[string]*gcal.Event{}
	err := s.srv.Events.List(s.calendarID).
		PrivateExtendedProperty(PropDay+"="+day).
		ShowDeleted(false).
		Pages(ctx, func(page *gcal.Events) error {
			for _, ev := range page.Items {
				if ev.ExtendedProperties == nil {
					continue
				}
				if id := ev.ExtendedProperties.Private[PropBlockID]; id != "" {
					existing[id] = ev
				}
			}
			return nil
		})
	if err != nil {
		return res, fmt.Errorf("listing events for %s: %w", day, err)
	}

	for _, b := range blocks {
		want := eventFor(b, day)
		if ev, ok := existing[b.ID]; ok {
			delete(existing, b.ID)
			if _, err := s.srv.Events.Patch(s.calendarID, ev.Id, want).Context(ctx).Do(); err != nil {
				return res, fmt.Errorf("patching event for block %s: %w", b.ID, err)
			}
			res.Updated++
			continue
		}
		if _, err := s.srv.Events.Insert(s.calendarID, want).Context(ctx).Do(); err != nil {
			return res, fmt.Errorf("inserting event for block %s: %w", b.ID, err)
		}
		res.Inserted++
	}

	for blockID, ev := range existing {
		if err := s.srv.Events.Delete(s.calendarID, ev.Id).Context(ctx).Do(); err != nil {
			return res, fmt.Errorf("deleting event for block %s: %w", blockID, err)
		}
		res.Deleted++
	}
	return res, nil
}

func eventFor(b domain.ScheduleBlock, day string) *gcal.Event {
	summary := b.TaskTitle
	if b.TaskID == nil || summary == "" {
		summary = "Focus block"
	}
	return &gcal.Event{
		Summary:     summary,
		Description: "Planned by studyflow",
		Start:       &gcal.EventDateTime{DateTime: b.Start.Format(time.RFC3339)},
		End:         &gcal.EventDateTime{DateTime: b.End.Format(time.RFC3339)},
		ExtendedProperties: &gcal.EventExtendedProperties{
			Private: map[string]string{PropBlockID: b.ID, PropDay: day},
		},
	}
}
