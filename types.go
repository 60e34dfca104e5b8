package lessonbook

import (
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-lessonbook/internal/lesson"
	"github.com/alnah/go-lessonbook/internal/logger"
)

// Page size constants.
const (
	PageSizeLetter  = "letter"
	PageSizeA4      = "a4"
	PageSizeLegal   = "legal"
	PageSizeBooklet = "booklet" // half letter, for saddle-stitched printing
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.75
)

// pageDimensions maps page sizes to width and height in inches.
var pageDimensions = map[string][2]float64{
	PageSizeLetter:  {8.5, 11},
	PageSizeA4:      {8.27, 11.69},
	PageSizeLegal:   {8.5, 14},
	PageSizeBooklet: {5.5, 8.5},
}

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal", "booklet"
	Margin      float64 // inches, applied to all sides
	PageNumbers bool    // print "n / total" in the footer
}

// DefaultPageSettings returns page settings with default values.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:   PageSizeLetter,
		Margin: DefaultMargin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}
	if _, ok := pageDimensions[strings.ToLower(p.Size)]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}
	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}
	return nil
}

// dimensions returns width and height in inches, defaulting to letter.
func (p *PageSettings) dimensions() (width, height float64) {
	if p == nil {
		p = DefaultPageSettings()
	}
	d, ok := pageDimensions[strings.ToLower(p.Size)]
	if !ok {
		d = pageDimensions[PageSizeLetter]
	}
	return d[0], d[1]
}

// Reproduction renumbers and redates lessons for a new quarter.
type Reproduction struct {
	SourceYear       int    // year of the historical quarterly, shown as attribution
	SourceQuarter    string // quarter of the historical quarterly
	QuarterStartDate string // YYYY-MM-DD of the first lesson
	DateFormat       string // e.g. "MMMM DD, YYYY"; empty uses the default
}

// Input contains conversion parameters.
type Input struct {
	Markdown  string // combined lesson source (required)
	SourceDir string // directory for relative image paths (optional)

	Year     int    // year printed on the booklet
	Quarter  string // q1..q4
	Language string // label language; empty means English

	Title         string
	FrontCoverSVG string // cover markup; empty uses the built-in cover
	BackCoverSVG  string // back cover markup; empty omits the back cover
	Theme         string // theme name or YAML path; empty uses the default theme

	Reproduce *Reproduction // nil keeps the source numbering and dates
	Page      *PageSettings // nil = defaults

	HTMLOnly bool // skip PDF generation
}

// Validate checks the booklet identity fields.
func (in Input) Validate() error {
	if strings.TrimSpace(in.Markdown) == "" {
		return ErrEmptyMarkdown
	}
	switch strings.ToLower(in.Quarter) {
	case "q1", "q2", "q3", "q4":
	default:
		return fmt.Errorf("%w: %q (must be q1..q4)", ErrInvalidQuarter, in.Quarter)
	}
	if in.Year <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidYear, in.Year)
	}
	if in.Reproduce != nil && in.Reproduce.SourceQuarter != "" {
		switch strings.ToLower(in.Reproduce.SourceQuarter) {
		case "q1", "q2", "q3", "q4":
		default:
			return fmt.Errorf("%w: source %q", ErrInvalidQuarter, in.Reproduce.SourceQuarter)
		}
	}
	return in.Page.Validate()
}

// Result holds the outputs of a conversion.
type Result struct {
	HTML     []byte
	PDF      []byte // nil when Input.HTMLOnly is set
	Lessons  int
	Warnings []string
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout   time.Duration
	assetPath string
	windows   lesson.Windows
	parallel  int
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the PDF page load timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("lessonbook: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithAssetPath looks up styles, templates, themes and languages in dir
// before falling back to the embedded assets.
func WithAssetPath(dir string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = dir
	}
}

// WithLogger sets the logger used for progress and warnings.
func WithLogger(l *logger.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.log = l
		}
	}
}

// WithWindows sets the parser lookahead windows. Zero fields keep defaults.
func WithWindows(titleWindow, dateWindow, locationWindow, listWindow int) Option {
	return func(c *Converter) {
		c.cfg.windows = lesson.Windows{
			Title:    titleWindow,
			Date:     dateWindow,
			Location: locationWindow,
			List:     listWindow,
		}
	}
}

// WithParallelParsing classifies up to n lesson blocks concurrently.
func WithParallelParsing(n int) Option {
	return func(c *Converter) {
		c.cfg.parallel = n
	}
}
