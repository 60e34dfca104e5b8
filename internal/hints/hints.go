// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"fmt"
	"os"
	"strings"

	"github.com/alnah/go-lessonbook/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect suggests the environment variables that usually fix a
// headless Chrome launch failure.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing the timeout.
func ForTimeout() string {
	return format("for a full quarter or a slow network, use --timeout")
}

// ForConfigNotFound suggests --config or creating a config in the user
// config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml or run 'lessonbook init'"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/lessonbook") {
			hint += ", or create " + p
			break
		}
	}
	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForThemeNotFound lists built-in themes or explains color_theme_path.
func ForThemeNotFound(available []string) string {
	if len(available) == 0 {
		return format("color_theme_path takes a theme name or a path to a YAML file")
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForDownload explains where quarterly lessons are fetched from.
func ForDownload(year int, quarter, language string) string {
	return format(fmt.Sprintf(
		"check that %d/%s/%s exists in the SabbathSchool/lessons repository, or set input_file",
		year, quarter, language))
}

// ForStartDate describes the accepted quarter_start_date values.
func ForStartDate() string {
	return format("quarter_start_date takes YYYY-MM-DD or 'auto'")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
