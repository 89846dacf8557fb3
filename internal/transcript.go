package internal

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Transcript is the ordered set of messages fetched for one channel and window
type Transcript struct {
	ID       string    `json:"id" yaml:"id"`
	Channel  string    `json:"channel" yaml:"channel"`
	Start    time.Time `json:"start" yaml:"start"`
	End      time.Time `json:"end" yaml:"end"`
	Messages []Message `json:"messages" yaml:"messages"`

	nicknames map[string]struct{}
}

// NewTranscript creates an empty transcript for channel covering window
func NewTranscript(channel string, window Window) *Transcript {
	return &Transcript{
		ID:        uuid.NewString(),
		Channel:   channel,
		Start:     window.Start,
		End:       window.End,
		Messages:  []Message{},
		nicknames: make(map[string]struct{}),
	}
}

// Add appends a message and records its sender
func (t *Transcript) Add(m Message) {
	if t.nicknames == nil {
		t.nicknames = make(map[string]struct{})
	}
	t.Messages = append(t.Messages, m)
	t.nicknames[m.Nickname] = struct{}{}
}

// Nicknames returns every sender seen, longest first, ties broken alphabetically
func (t *Transcript) Nicknames() []string {
	seen := t.nicknames
	if len(seen) == 0 && len(t.Messages) > 0 {
		seen = make(map[string]struct{}, len(t.Messages))
		for _, m := range t.Messages {
			seen[m.Nickname] = struct{}{}
		}
	}

	nicks := make([]string, 0, len(seen))
	for nick := range seen {
		nicks = append(nicks, nick)
	}
	sort.Slice(nicks, func(i, j int) bool {
		if len(nicks[i]) != len(nicks[j]) {
			return len(nicks[i]) > len(nicks[j])
		}
		return nicks[i] < nicks[j]
	})
	return nicks
}

// Render formats all messages as readable chat text
func (t *Transcript) Render(verbose bool) string {
	nicks := t.Nicknames()
	var b strings.Builder
	var prev *Message
	for i := range t.Messages {
		msg := &t.Messages[i]
		b.WriteString(msg.Format(prev, nicks, verbose))
		prev = msg
	}
	return b.String()
}

// FirstDay returns the UTC day of the first message, or the window start when empty
func (t *Transcript) FirstDay() time.Time {
	if len(t.Messages) == 0 {
		return truncateDay(t.Start)
	}
	return truncateDay(t.Messages[0].Timestamp)
}
