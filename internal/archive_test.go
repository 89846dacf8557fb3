package internal

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/iksnae/asc/testutil"
)

const testChannel = "#openstack-ironic"

func TestArchiveClient_LogURL(t *testing.T) {
	c := NewArchiveClient()
	day := time.Date(2024, 1, 15, 18, 0, 0, 0, time.UTC)

	want := "https://meetings.opendev.org/irclogs/%23openstack-ironic/%23openstack-ironic.2024-01-15.log.html"
	if got := c.LogURL(testChannel, day); got != want {
		t.Errorf("LogURL() = %q, want %q", got, want)
	}

	c = NewArchiveClient(WithBaseURL("http://localhost:8080/logs/"))
	want = "http://localhost:8080/logs/%23openstack-ironic/%23openstack-ironic.2024-01-15.log.html"
	if got := c.LogURL(testChannel, day); got != want {
		t.Errorf("LogURL() with base = %q, want %q", got, want)
	}
}

func TestArchiveClient_FetchTranscript(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	yesterday := time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC)
	today := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	srv := testutil.NewArchiveServer(t, map[string]string{
		testutil.ArchivePath(testChannel, yesterday): testutil.ArchivePage(
			testutil.Row{Time: now.Add(-20 * time.Hour), Nick: "TheJulia", Text: "too old"},
			testutil.Row{Time: now.Add(-13 * time.Hour), Nick: "TheJulia", Text: "evening"},
			testutil.Row{Time: now.Add(-12 * time.Hour), Nick: "opendevreview", Text: "proposed a change"},
		),
		testutil.ArchivePath(testChannel, today): testutil.ArchivePage(
			testutil.Row{Time: now.Add(-time.Hour), Nick: "dtantsur", Text: "TheJulia: morning"},
		),
	})

	window, err := NewWindow(now, 14)
	if err != nil {
		t.Fatal(err)
	}
	c := NewArchiveClient(WithBaseURL(srv.URL), WithClock(func() time.Time { return now }))

	tr, err := c.FetchTranscript(context.Background(), testChannel, window, []string{"opendevreview"})
	if err != nil {
		t.Fatalf("FetchTranscript() error = %v", err)
	}
	if len(tr.Messages) != 2 {
		t.Fatalf("FetchTranscript() returned %d messages, want 2: %+v", len(tr.Messages), tr.Messages)
	}
	if tr.Messages[0].Text != "evening" || tr.Messages[1].Nickname != "dtantsur" {
		t.Errorf("unexpected messages: %+v", tr.Messages)
	}
	if len(srv.Requests()) != 2 {
		t.Errorf("server saw %d requests, want 2: %v", len(srv.Requests()), srv.Requests())
	}
}

func TestArchiveClient_FetchTranscript_SkipsMissingDays(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	srv := testutil.NewArchiveServer(t, map[string]string{
		testutil.ArchivePath(testChannel, now): testutil.ArchivePage(
			testutil.Row{Time: now.Add(-time.Hour), Nick: "TheJulia", Text: "only today"},
		),
	})

	window, _ := NewWindow(now, 48)
	c := NewArchiveClient(WithBaseURL(srv.URL), WithClock(func() time.Time { return now }))

	tr, err := c.FetchTranscript(context.Background(), testChannel, window, nil)
	if err != nil {
		t.Fatalf("FetchTranscript() error = %v", err)
	}
	if len(tr.Messages) != 1 {
		t.Errorf("FetchTranscript() returned %d messages, want 1", len(tr.Messages))
	}
	if len(srv.Requests()) != 3 {
		t.Errorf("server saw %d requests, want 3", len(srv.Requests()))
	}
}

func TestArchiveClient_FetchTranscript_Empty(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	srv := testutil.NewArchiveServer(t, nil)

	window, _ := NewWindow(now, 14)
	c := NewArchiveClient(WithBaseURL(srv.URL), WithClock(func() time.Time { return now }))

	_, err := c.FetchTranscript(context.Background(), testChannel, window, nil)
	if !errors.Is(err, ErrEmptyLog) {
		t.Errorf("FetchTranscript() error = %v, want ErrEmptyLog", err)
	}
}

func TestArchiveClient_Unreachable(t *testing.T) {
	now := time.Now()
	window, _ := NewWindow(now, 1)
	c := NewArchiveClient(WithBaseURL(testutil.UnreachableURL(t)), WithTimeout(2*time.Second))

	_, err := c.FetchTranscript(context.Background(), testChannel, window, nil)
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("FetchTranscript() error = %v, want *FetchError", err)
	}
	if fetchErr.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0 for a connection failure", fetchErr.StatusCode)
	}
	if errors.Is(err, ErrDayNotArchived) {
		t.Error("connection failure must not look like a missing day")
	}
}

func TestArchiveClient_FetchDay(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		wantErr     error
		wantMissing bool
	}{
		{
			name:        "not archived",
			status:      http.StatusNotFound,
			wantErr:     ErrDayNotArchived,
			wantMissing: true,
		},
		{
			name:   "server error",
			status: http.StatusInternalServerError,
		},
		{
			name:   "forbidden",
			status: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, http.StatusText(tt.status), tt.status)
			}))
			defer srv.Close()
			c := NewArchiveClient(WithBaseURL(srv.URL))

			_, err := c.FetchDay(context.Background(), testChannel, time.Now())
			var fetchErr *FetchError
			if !errors.As(err, &fetchErr) {
				t.Fatalf("FetchDay() error = %v, want *FetchError", err)
			}
			if fetchErr.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", fetchErr.StatusCode, tt.status)
			}
			if got := errors.Is(err, ErrDayNotArchived); got != tt.wantMissing {
				t.Errorf("errors.Is(err, ErrDayNotArchived) = %v, want %v", got, tt.wantMissing)
			}
		})
	}
}

func TestArchiveClient_FetchTranscript_ServerError(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	window, _ := NewWindow(now, 14)
	c := NewArchiveClient(WithBaseURL(srv.URL), WithClock(func() time.Time { return now }))

	_, err := c.FetchTranscript(context.Background(), testChannel, window, nil)
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("FetchTranscript() error = %v, want *FetchError", err)
	}
	if fetchErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", fetchErr.StatusCode)
	}
}

func TestArchiveClient_FetchTranscript_MalformedPage(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	srv := testutil.NewArchiveServer(t, map[string]string{
		testutil.ArchivePath(testChannel, now): "<html><body><p>maintenance</p></body></html>",
	})

	window, _ := NewWindow(now, 2)
	c := NewArchiveClient(WithBaseURL(srv.URL), WithClock(func() time.Time { return now }))

	_, err := c.FetchTranscript(context.Background(), testChannel, window, nil)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("FetchTranscript() error = %v, want *ParseError", err)
	}
	if parseErr.Source != "archive" {
		t.Errorf("Source = %q, want %q", parseErr.Source, "archive")
	}
	if want := c.LogURL(testChannel, now); parseErr.Key != want {
		t.Errorf("Key = %q, want %q", parseErr.Key, want)
	}
}

func TestArchiveClient_FetchDay_Cache(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	yesterday := time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC)
	page := testutil.ArchivePage(testutil.Row{Time: yesterday.Add(time.Hour), Nick: "TheJulia", Text: "hi"})

	srv := testutil.NewArchiveServer(t, map[string]string{
		testutil.ArchivePath(testChannel, yesterday): page,
		testutil.ArchivePath(testChannel, now):       page,
	})
	cache := newTestPageCache(t)
	c := NewArchiveClient(
		WithBaseURL(srv.URL),
		WithPageCache(cache),
		WithClock(func() time.Time { return now }),
	)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		body, err := c.FetchDay(ctx, testChannel, yesterday)
		if err != nil {
			t.Fatalf("FetchDay(yesterday) error = %v", err)
		}
		if body != page {
			t.Errorf("FetchDay(yesterday) body mismatch")
		}
	}
	if n := len(srv.Requests()); n != 1 {
		t.Errorf("completed day fetched %d times, want 1", n)
	}

	// today is still being written to, so it is never served from cache
	for i := 0; i < 2; i++ {
		if _, err := c.FetchDay(ctx, testChannel, now); err != nil {
			t.Fatalf("FetchDay(today) error = %v", err)
		}
	}
	if n := len(srv.Requests()); n != 3 {
		t.Errorf("server saw %d requests, want 3", n)
	}
	if _, ok, _ := cache.Get(testChannel, now); ok {
		t.Error("today's page was cached")
	}
}

func TestArchiveClient_FetchDay_JustAfterMidnight(t *testing.T) {
	yesterday := time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC)
	early := testutil.Row{Time: yesterday.Add(22 * time.Hour), Nick: "TheJulia", Text: "early"}
	late := testutil.Row{Time: yesterday.Add(23*time.Hour + 59*time.Minute), Nick: "dtantsur", Text: "late"}

	var mu sync.Mutex
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		// the archive writes the last minutes of the day out after midnight
		if n == 1 {
			_, _ = w.Write([]byte(testutil.ArchivePage(early)))
			return
		}
		_, _ = w.Write([]byte(testutil.ArchivePage(early, late)))
	}))
	defer srv.Close()
	requests := func() int {
		mu.Lock()
		defer mu.Unlock()
		return calls
	}

	now := time.Date(2024, 1, 15, 0, 0, 30, 0, time.UTC)
	cache := newTestPageCache(t)
	c := NewArchiveClient(
		WithBaseURL(srv.URL),
		WithPageCache(cache),
		WithClock(func() time.Time { return now }),
	)
	ctx := context.Background()

	first, err := c.FetchDay(ctx, testChannel, yesterday)
	if err != nil {
		t.Fatalf("FetchDay() error = %v", err)
	}
	if strings.Contains(first, "late") {
		t.Fatal("first fetch already has the late message")
	}
	if _, ok, _ := cache.Get(testChannel, yesterday); ok {
		t.Error("page was cached while the archive could still be writing it")
	}

	now = now.Add(2 * time.Hour)
	second, err := c.FetchDay(ctx, testChannel, yesterday)
	if err != nil {
		t.Fatalf("FetchDay() error = %v", err)
	}
	if !strings.Contains(second, "late") {
		t.Error("later fetch is missing the late message")
	}
	if n := requests(); n != 2 {
		t.Errorf("server saw %d requests, want 2", n)
	}

	third, err := c.FetchDay(ctx, testChannel, yesterday)
	if err != nil {
		t.Fatalf("FetchDay() error = %v", err)
	}
	if third != second {
		t.Error("settled page not served from cache")
	}
	if n := requests(); n != 2 {
		t.Errorf("server saw %d requests, want 2 once the page is cached", n)
	}
}
