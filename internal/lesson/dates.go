package lesson

import (
	"regexp"
	"strings"
)

// dashClass matches the dash variants found in historical sources:
// em dash, en dash and ASCII hyphen.
const dashClass = `[—–-]`

// datePatterns are tried in priority order. Month words must be capitalized;
// days may have one or two digits.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\p{Lu}\p{Ll}+ \d{1,2}, \d{4}`), // May 20, 1905
	regexp.MustCompile(`\d{1,2} \p{Lu}\p{Ll}+, \d{4}`), // 20 May, 1905
	regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b`),    // 5/20/1905
}

// extraBlankLines matches three or more newlines separated only by whitespace.
var extraBlankLines = regexp.MustCompile(`\n\s*\n\s*\n`)

// FindDate returns the first date in text, trying each pattern in priority
// order, along with its byte offsets. ok is false when nothing matches.
func FindDate(text string) (date string, start, end int, ok bool) {
	for _, p := range datePatterns {
		if loc := p.FindStringIndex(text); loc != nil {
			return text[loc[0]:loc[1]], loc[0], loc[1], true
		}
	}
	return "", 0, 0, false
}

// ExtractDate finds the first date in text and removes it when it sits on a
// line of its own. Inline dates are reported but left in place, and the
// input is returned unchanged when no date matches.
func ExtractDate(text string) (date, cleaned string) {
	date, _, _, ok := FindDate(text)
	if !ok {
		return "", text
	}

	lineOnly := regexp.MustCompile(`(?m)^[ \t]*` + regexp.QuoteMeta(date) + `[ \t]*$`)
	if !lineOnly.MatchString(text) {
		return date, text
	}

	cleaned = lineOnly.ReplaceAllString(text, "")
	cleaned = extraBlankLines.ReplaceAllString(cleaned, "\n\n")
	return date, strings.TrimSpace(cleaned)
}

// MatchDateLine reports whether line holds nothing but a date, optionally
// wrapped in markdown emphasis (*date*, **date**, _date_).
func MatchDateLine(line string) (string, bool) {
	s := stripEmphasis(line)
	if s == "" {
		return "", false
	}
	for _, p := range datePatterns {
		if loc := p.FindStringIndex(s); loc != nil && loc[0] == 0 && loc[1] == len(s) {
			return s, true
		}
	}
	return "", false
}

// StripDateLines removes every line of text that consists only of date.
func StripDateLines(text, date string) string {
	if date == "" || text == "" {
		return text
	}

	lines := strings.Split(text, "\n")
	kept := lines[:0]
	removed := false
	for _, line := range lines {
		if stripEmphasis(line) == date {
			removed = true
			continue
		}
		kept = append(kept, line)
	}
	if !removed {
		return text
	}

	out := strings.Join(kept, "\n")
	out = extraBlankLines.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}

// stripEmphasis trims whitespace and surrounding emphasis markers.
func stripEmphasis(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), "*_"))
}
