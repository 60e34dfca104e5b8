// Package config loads and validates booklet generation settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-lessonbook/internal/dateutil"
	"github.com/alnah/go-lessonbook/internal/fileutil"
	"github.com/alnah/go-lessonbook/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidConfig   = errors.New("invalid config")
)

// Field length limits.
const (
	MaxPathLength      = 4096
	MaxTitleLength     = 200
	MaxPublisherLength = 100
	MaxLanguageLength  = 10
	MaxPageSizeLength  = 10
)

// FirstLessonYear is the earliest year with published quarterlies.
const FirstLessonYear = 1880

// Defaults applied by DefaultConfig and ApplyDefaults.
const (
	DefaultLanguage = "en"
	DefaultPageSize = "letter"
	DefaultMargin   = 0.75
	DefaultTimeout  = 30 * time.Second
	DefaultWorkers  = 4
	DefaultTitle    = "Sabbath School Lessons"
)

var validPageSizes = []string{"letter", "a4", "legal", "booklet"}

// Config holds everything needed to produce one booklet.
type Config struct {
	Year     int    `yaml:"year"`     // year printed on the booklet
	Quarter  string `yaml:"quarter"`  // q1..q4
	Language string `yaml:"language"` // lesson and label language

	InputFile      string `yaml:"input_file"` // empty downloads the quarter
	OutputFile     string `yaml:"output_file"`
	FrontCoverSVG  string `yaml:"front_cover_svg"`
	BackCoverSVG   string `yaml:"back_cover_svg"`
	ColorThemePath string `yaml:"color_theme_path"` // theme name or YAML path
	AssetPath      string `yaml:"asset_path"`       // custom asset directory

	Title     string `yaml:"title"`
	Subtitle  string `yaml:"subtitle"`
	Publisher string `yaml:"publisher"`

	Page      PageConfig       `yaml:"page"`
	Reproduce *ReproduceConfig `yaml:"reproduce"`
	Parser    ParserConfig     `yaml:"parser"`
	Fetch     FetchConfig      `yaml:"fetch"`

	// Path is the file the config was loaded from, if any.
	Path string `yaml:"-"`
}

// PageConfig defines PDF page settings.
type PageConfig struct {
	Size        string  `yaml:"size"`   // letter, a4, legal, booklet
	Margin      float64 `yaml:"margin"` // inches
	PageNumbers bool    `yaml:"pageNumbers"`
}

// ReproduceConfig adapts a historical quarter to a new calendar.
type ReproduceConfig struct {
	Year             int    `yaml:"year"`    // historical source year
	Quarter          string `yaml:"quarter"` // historical source quarter
	StartLesson      int    `yaml:"start_lesson"`
	StopLesson       *int   `yaml:"stop_lesson"`        // nil keeps every lesson
	QuarterStartDate string `yaml:"quarter_start_date"` // YYYY-MM-DD or "auto"
	DateFormat       string `yaml:"date_format"`
}

// ParserConfig overrides the classifier lookahead windows. Zero keeps the
// parser default.
type ParserConfig struct {
	TitleWindow    int `yaml:"title_window"`
	DateWindow     int `yaml:"date_window"`
	LocationWindow int `yaml:"location_window"`
	ListWindow     int `yaml:"list_window"`
}

// FetchConfig controls lesson downloads.
type FetchConfig struct {
	Timeout time.Duration `yaml:"timeout"`
	Workers int           `yaml:"workers"`
	BaseURL string        `yaml:"base_url"` // mirror of the lessons repository
}

// DefaultConfig returns a configuration for the current quarter.
func DefaultConfig() *Config {
	return defaultConfigAt(time.Now())
}

func defaultConfigAt(now time.Time) *Config {
	quarter := dateutil.QuarterOf(now)
	cfg := &Config{
		Year:       now.Year(),
		Quarter:    quarter,
		Language:   DefaultLanguage,
		OutputFile: DefaultOutputFile(now.Year(), quarter, DefaultLanguage),
		Title:      DefaultTitle,
	}
	cfg.ApplyDefaults()
	return cfg
}

// DefaultOutputFile names the PDF for a quarter.
func DefaultOutputFile(year int, quarter, language string) string {
	return fmt.Sprintf("./output/sabbath_school_lesson_%d_%s_%s.pdf", year, quarter, language)
}

// ApplyDefaults fills unset optional fields.
func (c *Config) ApplyDefaults() {
	if c.Language == "" {
		c.Language = DefaultLanguage
	}
	c.Quarter = strings.ToLower(c.Quarter)
	if c.OutputFile == "" && c.Year != 0 && c.Quarter != "" {
		c.OutputFile = DefaultOutputFile(c.Year, c.Quarter, c.Language)
	}
	if c.Title == "" {
		c.Title = DefaultTitle
	}
	if c.Page.Size == "" {
		c.Page.Size = DefaultPageSize
	}
	if c.Page.Margin == 0 {
		c.Page.Margin = DefaultMargin
	}
	if c.Fetch.Timeout == 0 {
		c.Fetch.Timeout = DefaultTimeout
	}
	if c.Fetch.Workers == 0 {
		c.Fetch.Workers = DefaultWorkers
	}
	if r := c.Reproduce; r != nil {
		r.Quarter = strings.ToLower(r.Quarter)
		if r.StartLesson == 0 {
			r.StartLesson = 1
		}
	}
}

// SourceYear is the year whose lessons are downloaded: the reproduced
// historical year when set, otherwise the booklet year.
func (c *Config) SourceYear() int {
	if c.Reproduce != nil && c.Reproduce.Year != 0 {
		return c.Reproduce.Year
	}
	return c.Year
}

// SourceQuarter is the quarter whose lessons are downloaded.
func (c *Config) SourceQuarter() string {
	if c.Reproduce != nil && c.Reproduce.Quarter != "" {
		return c.Reproduce.Quarter
	}
	return c.Quarter
}

// Reproducing reports whether lessons come from another quarter.
func (c *Config) Reproducing() bool {
	return c.SourceYear() != c.Year || c.SourceQuarter() != c.Quarter
}

// StartDate resolves quarter_start_date, expanding "auto" to the first day
// of the booklet quarter. Empty means dates are kept as printed.
func (c *Config) StartDate() (string, error) {
	if c.Reproduce == nil {
		return "", nil
	}
	return dateutil.ResolveStartDate(c.Reproduce.QuarterStartDate, c.Year, c.Quarter)
}

// Validate checks field values and lengths. Called by LoadConfig, and
// available to callers that build a Config in code.
func (c *Config) Validate() error {
	return c.validateAt(time.Now())
}

func (c *Config) validateAt(now time.Time) error {
	// The booklet may be printed for next year's first quarter.
	if err := validateYear("year", c.Year, now.Year()+1); err != nil {
		return err
	}
	if err := validateQuarter("quarter", c.Quarter); err != nil {
		return err
	}
	if len(c.Language) < 2 {
		return fmt.Errorf("%w: language: invalid code %q", ErrInvalidConfig, c.Language)
	}

	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"language", c.Language, MaxLanguageLength},
		{"input_file", c.InputFile, MaxPathLength},
		{"output_file", c.OutputFile, MaxPathLength},
		{"front_cover_svg", c.FrontCoverSVG, MaxPathLength},
		{"back_cover_svg", c.BackCoverSVG, MaxPathLength},
		{"color_theme_path", c.ColorThemePath, MaxPathLength},
		{"asset_path", c.AssetPath, MaxPathLength},
		{"title", c.Title, MaxTitleLength},
		{"subtitle", c.Subtitle, MaxTitleLength},
		{"publisher", c.Publisher, MaxPublisherLength},
		{"page.size", c.Page.Size, MaxPageSizeLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.OutputFile == "" {
		return fmt.Errorf("%w: output_file: required", ErrInvalidConfig)
	}
	if c.Page.Size != "" && !contains(validPageSizes, strings.ToLower(c.Page.Size)) {
		return fmt.Errorf("%w: page.size: invalid value %q (must be %s)",
			ErrInvalidConfig, c.Page.Size, strings.Join(validPageSizes, ", "))
	}
	if c.Page.Margin < 0 || c.Page.Margin > 3 {
		return fmt.Errorf("%w: page.margin: must be between 0 and 3, got %.2f", ErrInvalidConfig, c.Page.Margin)
	}
	if c.Fetch.Timeout < 0 || c.Fetch.Workers < 0 {
		return fmt.Errorf("%w: fetch: timeout and workers cannot be negative", ErrInvalidConfig)
	}
	if c.Fetch.BaseURL != "" && !fileutil.IsURL(c.Fetch.BaseURL) {
		return fmt.Errorf("%w: fetch.base_url: must be an http(s) URL, got %q", ErrInvalidConfig, c.Fetch.BaseURL)
	}

	p := c.Parser
	if p.TitleWindow < 0 || p.DateWindow < 0 || p.LocationWindow < 0 || p.ListWindow < 0 {
		return fmt.Errorf("%w: parser: windows cannot be negative", ErrInvalidConfig)
	}

	if c.Reproduce != nil {
		return c.Reproduce.validate(now)
	}
	return nil
}

func (r *ReproduceConfig) validate(now time.Time) error {
	if r.Year != 0 {
		if err := validateYear("reproduce.year", r.Year, now.Year()); err != nil {
			return err
		}
	}
	if r.Quarter != "" {
		if err := validateQuarter("reproduce.quarter", r.Quarter); err != nil {
			return err
		}
	}
	if r.StartLesson < 0 {
		return fmt.Errorf("%w: reproduce.start_lesson: must be positive", ErrInvalidConfig)
	}
	if r.StopLesson != nil && *r.StopLesson < max(r.StartLesson, 1) {
		return fmt.Errorf("%w: reproduce.stop_lesson: %d is before start_lesson", ErrInvalidConfig, *r.StopLesson)
	}
	if r.DateFormat != "" {
		if _, err := dateutil.ParseDateFormat(r.DateFormat); err != nil {
			return fmt.Errorf("%w: reproduce.date_format: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}

func validateYear(field string, year, latest int) error {
	if year < FirstLessonYear || year > latest {
		return fmt.Errorf("%w: %s: %d is out of supported range %d-%d",
			ErrInvalidConfig, field, year, FirstLessonYear, latest)
	}
	return nil
}

func validateQuarter(field, quarter string) error {
	if _, err := dateutil.QuarterNumber(quarter); err != nil {
		return fmt.Errorf("%w: %s: must be one of q1, q2, q3, q4, not %q", ErrInvalidConfig, field, quarter)
	}
	return nil
}

func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// LoadConfig loads configuration from a file path or config name.
// A value containing a path separator is read as a file; otherwise it is a
// name searched in the current directory and the user config directory.
// Missing files are an error; there is no silent fallback.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) && !hasYAMLExt(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	cfg.Path = configPath
	return cfg, nil
}

// Parse decodes, defaults and validates config YAML. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func hasYAMLExt(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// resolveConfigPath searches the current directory, then
// ~/.config/lessonbook/, trying .yaml before .yml.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	tried := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		local := name + ext
		if fileutil.FileExists(local) {
			return local, nil
		}
		tried = append(tried, local)
	}

	if dir, err := UserConfigDir(); err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(dir, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			tried = append(tried, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

// UserConfigDir returns the per-user lessonbook config directory.
func UserConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "lessonbook"), nil
}
