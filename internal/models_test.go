package internal

import (
	"testing"
	"time"
)

func TestMessage_Format(t *testing.T) {
	ts := time.Date(2024, 1, 15, 14, 30, 25, 0, time.UTC)
	nicks := []string{"dtantsur", "TheJulia"}

	tests := []struct {
		name    string
		msg     Message
		prev    *Message
		verbose bool
		want    string
	}{
		{
			name: "new speaker",
			msg:  Message{Timestamp: ts, Nickname: "TheJulia", Text: "hello"},
			want: "\nTheJulia said:\nhello",
		},
		{
			name: "same speaker continues",
			msg:  Message{Timestamp: ts, Nickname: "TheJulia", Text: "again"},
			prev: &Message{Nickname: "TheJulia"},
			want: "\nagain",
		},
		{
			name: "reply with colon",
			msg:  Message{Timestamp: ts, Nickname: "TheJulia", Text: "dtantsur: sounds good"},
			prev: &Message{Nickname: "dtantsur"},
			want: "\nTheJulia replied to dtantsur:\nsounds good",
		},
		{
			name: "reply without colon",
			msg:  Message{Timestamp: ts, Nickname: "dtantsur", Text: "TheJulia thanks"},
			want: "\ndtantsur replied to TheJulia:\nthanks",
		},
		{
			name:    "verbose new speaker",
			msg:     Message{Timestamp: ts, Nickname: "TheJulia", Text: "hello"},
			verbose: true,
			want:    "\n2024-01-15 14:30:25\nTheJulia said:\nhello",
		},
		{
			name:    "verbose same speaker has no stamp",
			msg:     Message{Timestamp: ts, Nickname: "TheJulia", Text: "again"},
			prev:    &Message{Nickname: "TheJulia"},
			verbose: true,
			want:    "\nagain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.msg.Format(tt.prev, nicks, tt.verbose); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMessage_String(t *testing.T) {
	m := Message{
		Timestamp: time.Date(2024, 1, 15, 14, 30, 25, 0, time.UTC),
		Nickname:  "TheJulia",
		Text:      "hello",
	}
	want := "[2024-01-15 14:30:25] <TheJulia> hello"
	if got := m.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
