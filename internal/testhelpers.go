package internal

import (
	"time"
)

// testBaseTime is the first message time used by test transcripts
var testBaseTime = time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)

// CreateTestTranscript creates a test transcript with sample data
func CreateTestTranscript(channel string) *Transcript {
	return CreateTestTranscriptWithMessages(channel, []Message{
		{
			Timestamp: testBaseTime,
			Nickname:  "TheJulia",
			Text:      "good morning ironic",
		},
		{
			Timestamp: testBaseTime.Add(time.Minute),
			Nickname:  "dtantsur",
			Text:      "TheJulia: morning! the CI is green again",
		},
		{
			Timestamp: testBaseTime.Add(2 * time.Minute),
			Nickname:  "dtantsur",
			Text:      "I will land the bifrost fix next",
		},
	})
}

// CreateTestTranscriptWithMessages creates a test transcript with custom messages
func CreateTestTranscriptWithMessages(channel string, messages []Message) *Transcript {
	window := Window{Start: testBaseTime.Add(-time.Hour), End: testBaseTime.Add(time.Hour)}
	t := NewTranscript(channel, window)
	for _, m := range messages {
		t.Add(m)
	}
	return t
}
