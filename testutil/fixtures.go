package testutil

import (
	"fmt"
	"html"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"
)

// Row is one message row of an archived log page
type Row struct {
	Time time.Time
	Nick string
	Text string
}

// ArchivePage renders rows the way the OpenDev IRC log archive does
func ArchivePage(rows ...Row) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head><title>IRC log</title></head>\n<body>\n")
	b.WriteString(`<table class="irclog">` + "\n")
	for _, r := range rows {
		id := "t" + r.Time.UTC().Format("2006-01-02T15:04:05")
		fmt.Fprintf(&b,
			`<tr id="%s"><th class="nick">%s</th><td class="text">%s</td><td class="time"><a href="#%s" class="time">%s</a></td></tr>`+"\n",
			id, html.EscapeString(r.Nick), html.EscapeString(r.Text), id, r.Time.UTC().Format("15:04"),
		)
	}
	b.WriteString("</table>\n</body>\n</html>\n")
	return b.String()
}

// ArchivePath returns the escaped request path of channel's log for day
func ArchivePath(channel string, day time.Time) string {
	escaped := url.PathEscape(channel)
	return fmt.Sprintf("/%s/%s.%s.log.html", escaped, escaped, day.UTC().Format("2006-01-02"))
}

// ArchiveServer is a fake log archive serving fixed pages by escaped path
type ArchiveServer struct {
	*httptest.Server

	mu       sync.Mutex
	pages    map[string]string
	requests []string
}

// NewArchiveServer starts a fake archive; unknown paths answer 404
func NewArchiveServer(t *testing.T, pages map[string]string) *ArchiveServer {
	t.Helper()
	s := &ArchiveServer{pages: pages}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.EscapedPath()
		s.mu.Lock()
		s.requests = append(s.requests, path)
		page, ok := s.pages[path]
		s.mu.Unlock()
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(page))
	}))
	t.Cleanup(s.Close)
	return s
}

// Requests returns the escaped paths requested so far
func (s *ArchiveServer) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

// UnreachableURL returns the URL of a server that has already been shut down
func UnreachableURL(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	u := srv.URL
	srv.Close()
	return u
}
