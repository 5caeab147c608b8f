package oracle

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "plain",
			in:   "lines:\n  - \"The spires hum.\"\n  - \"Listen to their order.\"",
			want: []string{">> The spires hum.", ">> Listen to their order."},
		},
		{
			name: "fenced",
			in:   "```yaml\nlines:\n  - Patience.\n```",
			want: []string{">> Patience."},
		},
		{
			name: "blank lines dropped and capped",
			in:   "lines:\n  - one\n  - \"\"\n  - two\n  - three\n  - four",
			want: []string{">> one", ">> two", ">> three"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseLines(tt.in)
			if err != nil {
				t.Fatalf("Failed to parse: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Lines mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseLinesErrors(t *testing.T) {
	for _, in := range []string{"lines: [", "lines: []", "answer: nothing"} {
		if _, err := parseLines(in); err == nil {
			t.Errorf("Expected error for %q", in)
		}
	}
}

func TestRenderPrompt(t *testing.T) {
	got, err := renderPrompt(Query{
		Room:     "Beacon Array",
		Context:  []string{">> Three spires rise.", ">> Pulse 1 ready."},
		Question: "what order?",
	})
	if err != nil {
		t.Fatalf("Failed to render prompt: %v", err)
	}
	for _, want := range []string{"Current room: Beacon Array", ">> Pulse 1 ready.", "Player question: what order?"} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected prompt to contain %q", want)
		}
	}
}
