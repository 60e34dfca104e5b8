package pipeline

import (
	"context"
	"testing"
)

func TestLessonPreprocessor_PreprocessMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "crlf line endings",
			input: "# Lesson 1\r\nTHE SANCTUARY\r\n",
			want:  "# Lesson 1\nTHE SANCTUARY\n",
		},
		{
			name:  "bare carriage returns",
			input: "line one\rline two",
			want:  "line one\nline two",
		},
		{
			name:  "byte order mark",
			input: "\uFEFF# File: front-matter",
			want:  "# File: front-matter",
		},
		{
			name:  "decomposed accents composed",
			input: "Le\u0301vitique",
			want:  "L\u00e9vitique",
		},
		{
			name:  "trailing whitespace",
			input: "QUESTIONS  \t\n1. Who? \n   \nlast line  ",
			want:  "QUESTIONS\n1. Who?\n\nlast line",
		},
		{
			name:  "hard line breaks kept",
			input: "Pacific Press   \nOakland, California\n",
			want:  "Pacific Press  \nOakland, California\n",
		},
		{
			name:  "blank line runs",
			input: "NOTES\n\n\n\n1. First note.",
			want:  "NOTES\n\n1. First note.",
		},
	}

	p := &LessonPreprocessor{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := p.PreprocessMarkdown(context.Background(), tt.input); got != tt.want {
				t.Errorf("PreprocessMarkdown() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLessonPreprocessor_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	input := "a\r\nb"
	p := &LessonPreprocessor{}
	if got := p.PreprocessMarkdown(ctx, input); got != input {
		t.Errorf("PreprocessMarkdown() = %q, want input unchanged", got)
	}
}

func TestIndentNoteContinuations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "single line",
			input: "1. Only note.",
			want:  "1. Only note.",
		},
		{
			name:  "continuation paragraph indented",
			input: "1. The tabernacle.\n\nIt was a type.\n2. The court.",
			want:  "1. The tabernacle.\n\n\tIt was a type.\n2. The court.",
		},
		{
			name:  "text before first item untouched",
			input: "Read carefully.\n1. First.\nMore.",
			want:  "Read carefully.\n1. First.\n\tMore.",
		},
		{
			name:  "no numbered items",
			input: "A paragraph.\n\nAnother.",
			want:  "A paragraph.\n\nAnother.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := IndentNoteContinuations(tt.input); got != tt.want {
				t.Errorf("IndentNoteContinuations() = %q, want %q", got, tt.want)
			}
		})
	}
}
