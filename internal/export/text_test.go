package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iksnae/asc/internal"
)

func TestTextExporter_Export(t *testing.T) {
	transcript := internal.CreateTestTranscript("#openstack-ironic")

	var buf bytes.Buffer
	if err := (&TextExporter{}).Export(transcript, &buf); err != nil {
		t.Fatalf("TextExporter.Export() error = %v", err)
	}
	if buf.String() != transcript.Render(false) {
		t.Errorf("Export() = %q, want rendered chat", buf.String())
	}

	buf.Reset()
	if err := (&TextExporter{Verbose: true}).Export(transcript, &buf); err != nil {
		t.Fatalf("TextExporter.Export() verbose error = %v", err)
	}
	if !strings.Contains(buf.String(), "2024-01-15 14:30:00") {
		t.Errorf("verbose export %q lacks timestamps", buf.String())
	}
}
