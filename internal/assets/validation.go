package assets

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidateAssetName rejects names that could escape the asset directory or
// change the file extension: empty, path separators, or dots.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

var themeKeyPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// validateThemeEntry checks a theme group, key and value before they are
// written into a stylesheet.
func validateThemeEntry(group, key, value string) error {
	if !themeKeyPattern.MatchString(group) || !themeKeyPattern.MatchString(key) {
		return fmt.Errorf("%w: bad name %q.%q", ErrInvalidTheme, group, key)
	}
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s.%s is empty", ErrInvalidTheme, group, key)
	}
	if strings.ContainsAny(value, ";{}<>") {
		return fmt.Errorf("%w: %s.%s has unsafe value %q", ErrInvalidTheme, group, key, value)
	}
	return nil
}
