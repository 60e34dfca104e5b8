package lessonbook

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown  = errors.New("lesson markdown cannot be empty")
	ErrNoLessons      = errors.New("no lessons found in source")
	ErrHTMLConversion = errors.New("HTML conversion failed")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Page settings validation errors.
	ErrInvalidPageSize = errors.New("invalid page size")
	ErrInvalidMargin   = errors.New("invalid margin")

	// Booklet input validation errors.
	ErrInvalidQuarter = errors.New("invalid quarter")
	ErrInvalidYear    = errors.New("invalid year")

	// Asset loading errors.
	ErrInvalidAssetPath = errors.New("invalid asset path")
	ErrThemeLoad        = errors.New("failed to load color theme")
)
