package assets

import "errors"

// Sentinel errors for asset operations.
var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrThemeNotFound    = errors.New("theme not found")
	ErrLanguageNotFound = errors.New("language not found")

	// ErrInvalidAssetName indicates the asset name contains path separators
	// or traversal sequences.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath indicates the configured base path is not a valid directory.
	ErrInvalidBasePath = errors.New("invalid base path")

	// ErrAssetRead indicates an I/O error occurred while reading an asset file.
	ErrAssetRead = errors.New("failed to read asset")

	// ErrPathTraversal indicates an attempt to access files outside the base path.
	ErrPathTraversal = errors.New("path traversal detected")

	// ErrInvalidTheme indicates a theme file that is not a map of color
	// groups or holds a value unsafe to place in a stylesheet.
	ErrInvalidTheme = errors.New("invalid theme")

	// ErrInvalidLanguage indicates a translation file that cannot be decoded.
	ErrInvalidLanguage = errors.New("invalid language file")
)
