package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/abushaidislam/study-guide/internal/domain"
	"github.com/abushaidislam/study-guide/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// fakeCalendar implements the handful of Events endpoints Sync uses.
type fakeCalendar struct {
	mu     sync.Mutex
	events map[string]*gcal.Event
	nextID int
	calls  []string
}

func newFakeCalendar() *fakeCalendar {
	return &fakeCalendar{events: map[string]*gcal.Event{}}
}

func (f *fakeCalendar) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	const prefix = "/calendars/primary/events"
	if !strings.HasPrefix(r.URL.Path, prefix) {
		http.NotFound(w, r)
		return
	}
	eventID := strings.TrimPrefix(strings.TrimPrefix(r.URL.Path, prefix), "/")
	f.calls = append(f.calls, r.Method)

	switch {
	case r.Method == http.MethodGet && eventID == "":
		filter := r.URL.Query().Get("privateExtendedProperty")
		key, val, _ := strings.Cut(filter, "=")
		var items []*gcal.Event
		for _, ev := range f.events {
			if ev.ExtendedProperties != nil && ev.ExtendedProperties.Private[key] == val {
				items = append(items, ev)
			}
		}
		json.NewEncoder(w).Encode(&gcal.Events{Items: items})
	case r.Method == http.MethodPost && eventID == "":
		var ev gcal.Event
		json.NewDecoder(r.Body).Decode(&ev)
		f.nextID++
		ev.Id = fmt.Sprintf("ev%d", f.nextID)
		f.events[ev.Id] = &ev
		json.NewEncoder(w).Encode(&ev)
	case r.Method == http.MethodPatch:
		ev, ok := f.events[eventID]
		if !ok {
			http.NotFound(w, r)
			return
		}
		var patch gcal.Event
		json.NewDecoder(r.Body).Decode(&patch)
		ev.Summary = patch.Summary
		ev.Start, ev.End = patch.Start, patch.End
		json.NewEncoder(w).Encode(ev)
	case r.Method == http.MethodDelete:
		delete(f.events, eventID)
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "unsupported", http.StatusMethodNotAllowed)
	}
}

func newTestSyncer(t *testing.T, fake *fakeCalendar) *Syncer {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	svc, err := NewService(context.Background(), srv.Client(), option.WithEndpoint(srv.URL+"/"))
	require.NoError(t, err)
	return NewSyncer(svc, "")
}

var windowStart = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

func TestSync_InsertsThenReconciles(t *testing.T) {
	fake := newFakeCalendar()
	syncer := newTestSyncer(t, fake)
	ctx := context.Background()

	task := testutil.NewTestTask("Algebra")
	first := testutil.NewTestBlock(task, windowStart.Add(9*time.Hour), 50)
	second := testutil.NewTestBlock(nil, windowStart.Add(10*time.Hour), 30)

	res, err := syncer.Sync(ctx, windowStart, []domain.ScheduleBlock{first, second})
	require.NoError(t, err)
	assert.Equal(t, SyncResult{Inserted: 2}, res)
	require.Len(t, fake.events, 2)

	summaries := map[string]bool{}
	for _, ev := range fake.events {
		summaries[ev.Summary] = true
		assert.Equal(t, "2025-06-15", ev.ExtendedProperties.Private[PropDay])
	}
	assert.True(t, summaries["Algebra"])
	assert.True(t, summaries["Focus block"])

	// A rebuild keeps the first block and drops the second.
	moved := first
	moved.Start = moved.Start.Add(time.Hour)
	moved.End = moved.End.Add(time.Hour)
	res, err = syncer.Sync(ctx, windowStart, []domain.ScheduleBlock{moved})
	require.NoError(t, err)
	assert.Equal(t, SyncResult{Updated: 1, Deleted: 1}, res)
	require.Len(t, fake.events, 1)
	for _, ev := range fake.events {
		assert.Equal(t, moved.Start.Format(time.RFC3339), ev.Start.DateTime)
	}
}

func TestSync_OtherDaysUntouched(t *testing.T) {
	fake := newFakeCalendar()
	syncer := newTestSyncer(t, fake)
	ctx := context.Background()

	tomorrow := windowStart.AddDate(0, 0, 1)
	_, err := syncer.Sync(ctx, tomorrow, []domain.ScheduleBlock{testutil.NewTestBlock(nil, tomorrow.Add(9*time.Hour), 50)})
	require.NoError(t, err)

	res, err := syncer.Sync(ctx, windowStart, nil)
	require.NoError(t, err)
	assert.Equal(t, SyncResult{}, res)
	assert.Len(t, fake.events, 1)
}

func TestTokenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token.json")

	_, err := LoadToken(path)
	assert.ErrorIs(t, err, ErrNoToken)

	tok := &oauth2.Token{AccessToken: "a", RefreshToken: "r", TokenType: "Bearer"}
	require.NoError(t, SaveToken(path, tok))

	loaded, err := LoadToken(path)
	require.NoError(t, err)
	assert.Equal(t, "a", loaded.AccessToken)
	assert.Equal(t, "r", loaded.RefreshToken)
}

func TestOAuthConfig_MissingFile(t *testing.T) {
	_, err := OAuthConfig(filepath.Join(t.TempDir(), "credentials.json"))
	assert.Error(t, err)
}
