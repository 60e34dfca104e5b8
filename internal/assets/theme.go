package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode"

	"github.com/alnah/go-lessonbook/internal/yamlutil"
)

// Theme maps color groups (text, background, border, accent, special) to
// named values. Each entry becomes a CSS custom property --{group}-{key}.
type Theme map[string]map[string]string

// ParseTheme decodes and validates theme YAML.
func ParseTheme(data []byte) (Theme, error) {
	var theme Theme
	if err := yamlutil.Unmarshal(data, &theme); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTheme, err)
	}
	if len(theme) == 0 {
		return nil, fmt.Errorf("%w: no color groups", ErrInvalidTheme)
	}
	for group, colors := range theme {
		for key, value := range colors {
			if err := validateThemeEntry(group, key, value); err != nil {
				return nil, err
			}
		}
	}
	return theme, nil
}

// LoadTheme loads and parses a named theme through loader.
func LoadTheme(loader AssetLoader, name string) (Theme, error) {
	raw, err := loader.LoadTheme(name)
	if err != nil {
		return nil, err
	}
	return ParseTheme([]byte(raw))
}

// LoadThemeFile parses a theme from an arbitrary YAML file, as named by
// the color_theme_path setting.
func LoadThemeFile(path string) (Theme, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("%w: %s is not a YAML file", ErrInvalidTheme, path)
	}

	data, err := os.ReadFile(path) // #nosec G304 -- user-provided theme path
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return ParseTheme(data)
}

// CSS renders the theme as a :root rule. Output is sorted so the same
// theme always yields the same stylesheet.
func (t Theme) CSS() string {
	groups := make([]string, 0, len(t))
	for group := range t {
		groups = append(groups, group)
	}
	slices.Sort(groups)

	var sb strings.Builder
	sb.WriteString(":root {\n")
	for _, group := range groups {
		keys := make([]string, 0, len(t[group]))
		for key := range t[group] {
			keys = append(keys, key)
		}
		slices.Sort(keys)

		for _, key := range keys {
			fmt.Fprintf(&sb, "  --%s-%s: %s;\n", kebab(group), kebab(key), strings.TrimSpace(t[group][key]))
		}
	}
	sb.WriteString("}\n")
	return sb.String()
}

// kebab converts camelCase and snake_case keys: tableRowEven -> table-row-even.
func kebab(s string) string {
	var sb strings.Builder
	for i, r := range s {
		switch {
		case r == '_':
			sb.WriteByte('-')
		case unicode.IsUpper(r):
			if i > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(unicode.ToLower(r))
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
