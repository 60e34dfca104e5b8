package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestGoldmarkConverter_ToFragment(t *testing.T) {
	t.Parallel()

	conv := NewGoldmarkConverter()

	tests := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:  "blank input",
			input: "  \n\t",
		},
		{
			name:     "paragraph",
			input:    "The sanctuary was a type.",
			contains: []string{"<p>The sanctuary was a type.</p>"},
		},
		{
			name:     "numbered notes stay one list",
			input:    IndentNoteContinuations("1. First note.\n\nContinued.\n2. Second note."),
			contains: []string{"<ol>", "Continued.", "Second note."},
			excludes: []string{"<pre>"},
		},
		{
			name:     "table",
			input:    "| Week | Title |\n|---|---|\n| 1 | Creation |",
			contains: []string{"<table>", "<td>Creation</td>"},
		},
		{
			name:     "raw html dropped",
			input:    "Before <script>alert(1)</script> after",
			excludes: []string{"<script>"},
		},
		{
			name:     "highlighted code uses classes",
			input:    "```go\nfunc main() {}\n```",
			contains: []string{`class="chroma"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := conv.ToFragment(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("ToFragment() error = %v", err)
			}
			if len(tt.contains) == 0 && len(tt.excludes) == 0 && got != "" {
				t.Errorf("ToFragment() = %q, want empty", got)
			}
			for _, want := range tt.contains {
				if !strings.Contains(string(got), want) {
					t.Errorf("ToFragment() = %q, missing %q", got, want)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(string(got), bad) {
					t.Errorf("ToFragment() = %q, should not contain %q", got, bad)
				}
			}
		})
	}
}

func TestGoldmarkConverter_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGoldmarkConverter().ToFragment(ctx, "text")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ToFragment() error = %v, want context.Canceled", err)
	}
}
