package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alnah/go-lessonbook"
	"github.com/alnah/go-lessonbook/internal/assets"
	"github.com/alnah/go-lessonbook/internal/config"
	"github.com/alnah/go-lessonbook/internal/fetch"
	"github.com/alnah/go-lessonbook/internal/hints"
	"github.com/alnah/go-lessonbook/internal/lesson"
)

// Exit codes for the lessonbook CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Booklet written
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File, download or permission errors
	ExitBrowser = 4 // Browser/Chrome errors
)

// Sentinel errors for CLI operations.
var (
	ErrUsage        = errors.New("invalid usage")
	ErrReadInput    = errors.New("failed to read lesson source")
	ErrDownload     = errors.New("failed to download lessons")
	ErrWriteOutput  = errors.New("failed to write output")
	ErrOutputExists = errors.New("file already exists")
)

// wrapFlagError tags pflag errors so they map to ExitUsage.
func wrapFlagError(err error) error {
	return fmt.Errorf("%w: %w", ErrUsage, err)
}

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, lessonbook.ErrBrowserConnect) ||
		errors.Is(err, lessonbook.ErrPageCreate) ||
		errors.Is(err, lessonbook.ErrPageLoad) ||
		errors.Is(err, lessonbook.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrDownload) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrOutputExists) ||
		errors.Is(err, fetch.ErrContentsDownload) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, lessonbook.ErrEmptyMarkdown) ||
		errors.Is(err, lessonbook.ErrNoLessons) ||
		errors.Is(err, lessonbook.ErrInvalidPageSize) ||
		errors.Is(err, lessonbook.ErrInvalidMargin) ||
		errors.Is(err, lessonbook.ErrInvalidQuarter) ||
		errors.Is(err, lessonbook.ErrInvalidYear) ||
		errors.Is(err, lessonbook.ErrInvalidAssetPath) ||
		errors.Is(err, lessonbook.ErrThemeLoad) ||
		errors.Is(err, lesson.ErrInvalidStartDate) ||
		errors.Is(err, lesson.ErrInvalidDateFormat) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	var dl *downloadError
	switch {
	case errors.Is(err, lessonbook.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, lessonbook.ErrPageLoad):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(userConfigPaths())
	case errors.Is(err, assets.ErrThemeNotFound):
		return hints.ForThemeNotFound(builtinThemes)
	case errors.Is(err, lessonbook.ErrThemeLoad):
		return hints.ForThemeNotFound(nil)
	case errors.As(err, &dl):
		return hints.ForDownload(dl.year, dl.quarter, dl.language)
	case errors.Is(err, lesson.ErrInvalidStartDate):
		return hints.ForStartDate()
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}

// builtinThemes lists the themes shipped with the binary.
var builtinThemes = []string{assets.DefaultThemeName}

// downloadError records which quarter failed so the hint can name it.
type downloadError struct {
	year     int
	quarter  string
	language string
	err      error
}

func (e *downloadError) Error() string {
	return fmt.Sprintf("%v: %d %s (%s): %v", ErrDownload, e.year, e.quarter, e.language, e.err)
}

func (e *downloadError) Unwrap() []error {
	return []error{ErrDownload, e.err}
}
