package internal

import (
	"fmt"
	"time"
)

// Window is the span of time to fetch messages for
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow returns the window covering the given number of hours up to end
func NewWindow(end time.Time, hours int) (Window, error) {
	if hours <= 0 {
		return Window{}, fmt.Errorf("hours must be positive, got %d", hours)
	}
	end = end.UTC()
	return Window{
		Start: end.Add(-time.Duration(hours) * time.Hour),
		End:   end,
	}, nil
}

// Days returns the UTC midnight of every day touched by the window, oldest first
func (w Window) Days() []time.Time {
	first := truncateDay(w.Start)
	last := truncateDay(w.End)

	var days []time.Time
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
	}
	return days
}

// Includes reports whether ts is at or after the window start
func (w Window) Includes(ts time.Time) bool {
	return !ts.Before(w.Start)
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
