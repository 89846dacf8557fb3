package internal

import (
	"strings"
	"testing"
)

func TestParseOutputType(t *testing.T) {
	tests := []struct {
		input   string
		want    OutputType
		wantErr bool
	}{
		{"CHAT", OutputChat, false},
		{"chat", OutputChat, false},
		{"TEXT_SUMMARY", OutputTextSummary, false},
		{"SUMMARY", OutputTextSummary, false},
		{" speech_summary ", OutputSpeechSummary, false},
		{"", "", true},
		{"AUDIO", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseOutputType(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOutputType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseOutputType(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseOutputType_ErrorListsTypes(t *testing.T) {
	_, err := ParseOutputType("AUDIO")
	if err == nil {
		t.Fatal("ParseOutputType(AUDIO) expected error")
	}
	for _, o := range OutputTypes {
		if !strings.Contains(err.Error(), string(o)) {
			t.Errorf("error %q does not mention %s", err, o)
		}
	}
}

func TestOutputTypeNames(t *testing.T) {
	want := "CHAT, TEXT_SUMMARY, SPEECH_SUMMARY"
	if got := OutputTypeNames(); got != want {
		t.Errorf("OutputTypeNames() = %q, want %q", got, want)
	}
}

func TestOutputType_Wants(t *testing.T) {
	tests := []struct {
		typ         OutputType
		wantSummary bool
		wantSpeech  bool
	}{
		{OutputChat, false, false},
		{OutputTextSummary, true, false},
		{OutputSpeechSummary, true, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			if got := tt.typ.WantsSummary(); got != tt.wantSummary {
				t.Errorf("WantsSummary() = %v, want %v", got, tt.wantSummary)
			}
			if got := tt.typ.WantsSpeech(); got != tt.wantSpeech {
				t.Errorf("WantsSpeech() = %v, want %v", got, tt.wantSpeech)
			}
		})
	}
}
