package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-lessonbook/internal/dateutil"
)

// Template returns a commented starter configuration for the quarter
// containing now, pointing color_theme_path at themePath.
func Template(now time.Time, themePath string) string {
	year := now.Year()
	quarter := dateutil.QuarterOf(now)
	start, _ := dateutil.QuarterStart(year, quarter) // quarter comes from QuarterOf

	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	line("# Sabbath School lesson booklet configuration")
	line("")
	line("# Year and quarter printed on the booklet")
	line("year: %d", year)
	line("# q1, q2, q3 or q4")
	line("quarter: %s", quarter)
	line("# Lesson language (en, es, fr, ...)")
	line("language: %s", DefaultLanguage)
	line("")
	line("# File paths")
	line("# Combined lesson markdown; leave empty to download the quarter")
	line("input_file: \"\"")
	line("output_file: %s", DefaultOutputFile(year, quarter, DefaultLanguage))
	line("front_cover_svg: ./assets/front_cover.svg")
	line("back_cover_svg: ./assets/back_cover.svg")
	line("# Theme name or path to a theme YAML file")
	line("color_theme_path: %s", themePath)
	line("")
	line("# Reproduction of a historical quarter")
	line("reproduce:")
	line("  # Historical year and quarter to adapt")
	line("  year: 1905")
	line("  quarter: q2")
	line("  # First and last lesson to include (null keeps all lessons)")
	line("  start_lesson: 1")
	line("  stop_lesson: null")
	line("  # First Sabbath of the new quarter (YYYY-MM-DD or auto)")
	line("  quarter_start_date: '%s'", start.Format(dateutil.ISOLayout))
	line("  # Date layout: a preset (lesson, long, us, iso, british) or tokens")
	line("  date_format: lesson")
	line("")
	line("# Booklet metadata")
	line("title: %s", DefaultTitle)
	line("subtitle: Quarter %s, %d", quarter[1:], year)
	line("publisher: Gospel Sounders")
	line("")
	line("# PDF page settings")
	line("page:")
	line("  size: %s", DefaultPageSize)
	line("  margin: %.2f", DefaultMargin)
	line("  pageNumbers: false")
	line("")
	line("# Download settings")
	line("fetch:")
	line("  timeout: %s", DefaultTimeout)
	line("  workers: %d", DefaultWorkers)

	return b.String()
}
