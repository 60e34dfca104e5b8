package lesson

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-lessonbook/internal/dateutil"
)

// Sentinel errors for reproduction.
var (
	ErrInvalidStartDate  = errors.New("invalid quarter start date")
	ErrInvalidDateFormat = errors.New("invalid lesson date format")
)

// StartDateLayout is the layout of Reproduction.QuarterStartDate.
const StartDateLayout = "2006-01-02"

// DefaultDateFormat renders reproduced dates as "April 01, 2025".
const DefaultDateFormat = "MMMM DD, YYYY"

// daysPerLesson is the spacing between consecutive lessons.
const daysPerLesson = 7

// Reproduction maps historical lessons onto a new quarter's schedule.
// StartLesson and StopLesson are informational here: range filtering happens
// when lessons are retrieved.
type Reproduction struct {
	StartLesson      int
	StopLesson       *int
	QuarterStartDate string // YYYY-MM-DD; empty disables reproduction
	DateFormat       string // dateutil tokens; empty uses DefaultDateFormat
}

// Reproduce sorts lessons by their original number, renumbers them from 1
// and assigns weekly dates from the quarter start date. The previous date,
// when there was one, is kept in OriginalDate.
//
// Inputs are validated before anything is touched: on error the lessons are
// left exactly as they were.
func Reproduce(lessons []Lesson, r Reproduction) error {
	raw := strings.TrimSpace(r.QuarterStartDate)
	if raw == "" {
		return nil
	}

	start, err := time.Parse(StartDateLayout, raw)
	if err != nil {
		return fmt.Errorf("%w: %q (want YYYY-MM-DD)", ErrInvalidStartDate, raw)
	}

	format := r.DateFormat
	if format == "" {
		format = DefaultDateFormat
	}
	layout, err := dateutil.ParseDateFormat(format)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDateFormat, err)
	}

	slices.SortStableFunc(lessons, func(a, b Lesson) int {
		return cmp.Compare(ordinal(a.Number), ordinal(b.Number))
	})

	for i := range lessons {
		l := &lessons[i]
		if l.Date != "" {
			l.OriginalDate = l.Date
		}
		l.Number = strconv.Itoa(i + 1)
		l.Date = start.AddDate(0, 0, daysPerLesson*i).Format(layout)
	}
	return nil
}

// ordinal reads a lesson number; anything unparseable sorts first.
func ordinal(number string) int {
	n, err := strconv.Atoi(strings.TrimSpace(number))
	if err != nil {
		return 0
	}
	return n
}
