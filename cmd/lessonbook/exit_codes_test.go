package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/alnah/go-lessonbook"
	"github.com/alnah/go-lessonbook/internal/assets"
	"github.com/alnah/go-lessonbook/internal/config"
	"github.com/alnah/go-lessonbook/internal/fetch"
	"github.com/alnah/go-lessonbook/internal/lesson"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitSuccess},
		{name: "unknown", err: errors.New("boom"), want: ExitGeneral},
		{name: "browser connect", err: fmt.Errorf("converting to PDF: %w", lessonbook.ErrBrowserConnect), want: ExitBrowser},
		{name: "page load", err: lessonbook.ErrPageLoad, want: ExitBrowser},
		{name: "pdf generation", err: lessonbook.ErrPDFGeneration, want: ExitBrowser},
		{name: "missing file", err: fmt.Errorf("%w: %w", ErrReadInput, os.ErrNotExist), want: ExitIO},
		{name: "download", err: &downloadError{year: 1905, quarter: "q2", language: "en", err: fetch.ErrContentsDownload}, want: ExitIO},
		{name: "write output", err: ErrWriteOutput, want: ExitIO},
		{name: "output exists", err: ErrOutputExists, want: ExitIO},
		{name: "usage", err: wrapFlagError(errors.New("unknown flag")), want: ExitUsage},
		{name: "config not found", err: config.ErrConfigNotFound, want: ExitUsage},
		{name: "invalid config", err: fmt.Errorf("loading config: %w", config.ErrInvalidConfig), want: ExitUsage},
		{name: "no lessons", err: lessonbook.ErrNoLessons, want: ExitUsage},
		{name: "theme", err: lessonbook.ErrThemeLoad, want: ExitUsage},
		{name: "start date", err: lesson.ErrInvalidStartDate, want: ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestHintFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "no hint", err: errors.New("boom"), want: ""},
		{name: "page load", err: lessonbook.ErrPageLoad, want: "--timeout"},
		{name: "config", err: config.ErrConfigNotFound, want: "lessonbook init"},
		{name: "theme name", err: fmt.Errorf("%w: %w", lessonbook.ErrThemeLoad, assets.ErrThemeNotFound), want: "available: burgundy"},
		{name: "theme file", err: lessonbook.ErrThemeLoad, want: "color_theme_path"},
		{name: "download", err: &downloadError{year: 1905, quarter: "q2", language: "es", err: errors.New("404")}, want: "1905/q2/es"},
		{name: "start date", err: lesson.ErrInvalidStartDate, want: "YYYY-MM-DD"},
		{name: "output", err: ErrWriteOutput, want: "writable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := hintFor(tt.err)
			if tt.want == "" && got != "" {
				t.Errorf("hintFor() = %q, want none", got)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("hintFor() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestDownloadError(t *testing.T) {
	t.Parallel()

	err := &downloadError{year: 1888, quarter: "q1", language: "en", err: fetch.ErrContentsDownload}
	if !errors.Is(err, ErrDownload) || !errors.Is(err, fetch.ErrContentsDownload) {
		t.Error("downloadError should match both ErrDownload and its cause")
	}
	if !strings.Contains(err.Error(), "1888 q1 (en)") {
		t.Errorf("Error() = %q", err.Error())
	}
}
