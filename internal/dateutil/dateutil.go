// Package dateutil converts user-friendly date format tokens to Go layouts
// and resolves quarter start dates.
package dateutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Sentinel errors for date operations.
var (
	ErrInvalidDateFormat = errors.New("invalid date format")
	ErrInvalidQuarter    = errors.New("invalid quarter")
)

// MaxDateFormatLength limits format string length to prevent abuse.
const MaxDateFormatLength = 50

// ISOLayout is the layout of configured calendar dates.
const ISOLayout = "2006-01-02"

// dateTokens maps user-friendly tokens to Go time format components.
// Ordered by length descending for greedy matching.
var dateTokens = []struct {
	token string
	goFmt string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// DatePresets provides named shortcuts for common lesson date formats.
var DatePresets = map[string]string{
	"iso":     "YYYY-MM-DD",
	"us":      "MM/DD/YYYY",
	"long":    "MMMM D, YYYY",
	"lesson":  "MMMM DD, YYYY",
	"british": "D MMMM, YYYY",
}

// ParseDateFormat converts a format string or preset name to Go's layout.
// Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D.
// Brackets escape literal text: [Week of] is kept as "Week of".
// Other characters are copied as literals.
func ParseDateFormat(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}
	if preset, ok := DatePresets[strings.ToLower(format)]; ok {
		format = preset
	}

	var result strings.Builder
	result.Grow(len(format) + 10)

	i := 0
	for i < len(format) {
		if format[i] == '[' {
			end := strings.Index(format[i+1:], "]")
			if end == -1 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			result.WriteString(format[i+1 : i+1+end])
			i += end + 2
			continue
		}

		matched := false
		for _, t := range dateTokens {
			if strings.HasPrefix(format[i:], t.token) {
				result.WriteString(t.goFmt)
				i += len(t.token)
				matched = true
				break
			}
		}

		if !matched {
			result.WriteByte(format[i])
			i++
		}
	}

	return result.String(), nil
}

// QuarterStart returns the first day of the given quarter ("q1".."q4").
func QuarterStart(year int, quarter string) (time.Time, error) {
	q, err := QuarterNumber(quarter)
	if err != nil {
		return time.Time{}, err
	}
	month := time.Month((q-1)*3 + 1)
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), nil
}

// QuarterNumber parses "q1".."q4" (any case) into 1..4.
func QuarterNumber(quarter string) (int, error) {
	q := strings.ToLower(strings.TrimSpace(quarter))
	if len(q) != 2 || q[0] != 'q' {
		return 0, fmt.Errorf("%w: %q (must be q1, q2, q3 or q4)", ErrInvalidQuarter, quarter)
	}
	n, err := strconv.Atoi(q[1:])
	if err != nil || n < 1 || n > 4 {
		return 0, fmt.Errorf("%w: %q (must be q1, q2, q3 or q4)", ErrInvalidQuarter, quarter)
	}
	return n, nil
}

// QuarterOf returns the quarter code ("q1".."q4") containing t.
func QuarterOf(t time.Time) string {
	return fmt.Sprintf("q%d", (int(t.Month())-1)/3+1)
}

// ResolveStartDate handles the "auto" value of a quarter start date.
//   - "" → "" (reproduction disabled)
//   - "auto" → first day of year/quarter, as YYYY-MM-DD
//   - anything else → returned unchanged; validation happens at use
func ResolveStartDate(value string, year int, quarter string) (string, error) {
	v := strings.TrimSpace(value)
	if !strings.EqualFold(v, "auto") {
		return v, nil
	}
	start, err := QuarterStart(year, quarter)
	if err != nil {
		return "", err
	}
	return start.Format(ISOLayout), nil
}
