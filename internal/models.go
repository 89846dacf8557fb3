package internal

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is how message timestamps are shown in verbose chat output
const TimestampLayout = "2006-01-02 15:04:05"

// Message represents a single IRC message from the archive
type Message struct {
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Nickname  string    `json:"nickname" yaml:"nickname"`
	Text      string    `json:"text" yaml:"text"`
}

// Format renders the message as part of a chat transcript.
//
// A header names the speaker unless prev was sent by the same nickname, in
// which case the text just starts a new line. When the text starts with one
// of nicknames the addressed nickname is stripped and the header reads
// "<nick> replied to <other>:". Verbose output prefixes
// the header with the message timestamp. nicknames are tried in order, so
// callers should pass longer nicknames first.
func (m Message) Format(prev *Message, nicknames []string, verbose bool) string {
	text := m.Text
	header := fmt.Sprintf("\n%s said:\n", m.Nickname)
	stamp := ""
	if verbose {
		stamp = "\n" + m.Timestamp.UTC().Format(TimestampLayout)
	}

	if prev != nil && prev.Nickname == m.Nickname {
		header = "\n"
		stamp = ""
	}

	for _, nick := range nicknames {
		if nick == "" || !strings.HasPrefix(text, nick) {
			continue
		}
		text = strings.TrimSpace(text[len(nick):])
		if strings.HasPrefix(text, ":") {
			text = strings.TrimSpace(text[1:])
		}
		header = fmt.Sprintf("\n%s replied to %s:\n", m.Nickname, nick)
		break
	}

	return stamp + header + text
}

// String returns a log-line representation of the message
func (m Message) String() string {
	return fmt.Sprintf("[%s] <%s> %s", m.Timestamp.UTC().Format(TimestampLayout), m.Nickname, m.Text)
}
