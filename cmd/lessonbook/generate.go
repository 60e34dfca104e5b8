package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-lessonbook"
	"github.com/alnah/go-lessonbook/internal/config"
	"github.com/alnah/go-lessonbook/internal/fetch"
	"github.com/alnah/go-lessonbook/internal/fileutil"
	"github.com/alnah/go-lessonbook/internal/lesson"
)

// defaultConfigName is looked up when generate gets no config.
const defaultConfigName = "lessonbook"

// filePermissions is rw-r--r--: booklets are meant to be shared.
const filePermissions = 0o644

// BookletResult holds the outcome of one configuration.
type BookletResult struct {
	ConfigPath string
	OutputPath string
	Lessons    int
	Err        error
	Duration   time.Duration
}

// runGenerate builds one booklet per configuration.
func runGenerate(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseGenerateFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if err := setupLogging(env, flags.common); err != nil {
		return err
	}

	names := positional
	if flags.config != "" {
		names = append([]string{flags.config}, names...)
	}
	if len(names) == 0 {
		names = []string{defaultConfigName}
	}
	if flags.output != "" && len(names) > 1 {
		return fmt.Errorf("%w: --output needs a single config, got %d", ErrUsage, len(names))
	}
	if flags.workers < 0 {
		return fmt.Errorf("%w: --workers must be positive", ErrUsage)
	}

	var timeout time.Duration
	if flags.timeout != "" {
		if timeout, err = time.ParseDuration(flags.timeout); err != nil || timeout <= 0 {
			return fmt.Errorf("%w: invalid --timeout %q", ErrUsage, flags.timeout)
		}
	}

	configs := make([]*config.Config, 0, len(names))
	for _, name := range names {
		cfg, err := config.LoadConfig(name)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		applyFlags(cfg, flags, timeout)
		if err := validateStartDate(cfg); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		configs = append(configs, cfg)
	}

	// Converter options come from the first config; a batch shares one
	// set of assets and parser windows.
	poolSize := min(lessonbook.ResolvePoolSize(flags.workers), len(configs))
	env.Log.Debug("converter pool", "size", poolSize)
	pool := env.NewPool(poolSize, converterOptions(configs[0], env)...)
	defer func() { _ = pool.Close() }()

	results := generateBatch(ctx, pool, configs, flags.outputMode, env)
	return reportResults(results, flags.common, env)
}

// applyFlags merges CLI flags into cfg (CLI wins).
func applyFlags(cfg *config.Config, flags *generateFlags, timeout time.Duration) {
	if flags.output != "" {
		cfg.OutputFile = flags.output
	}
	if flags.assetPath != "" {
		cfg.AssetPath = flags.assetPath
	}
	if timeout > 0 {
		cfg.Fetch.Timeout = timeout
	}
}

// validateStartDate rejects a malformed quarter_start_date up front.
// The library only warns, which would silently keep historical dates.
func validateStartDate(cfg *config.Config) error {
	start, err := cfg.StartDate()
	if err != nil {
		return fmt.Errorf("%w: %v", lesson.ErrInvalidStartDate, err)
	}
	if start == "" {
		return nil
	}
	if _, err := time.Parse(lesson.StartDateLayout, start); err != nil {
		return fmt.Errorf("%w: %q", lesson.ErrInvalidStartDate, start)
	}
	return nil
}

func converterOptions(cfg *config.Config, env *Environment) []lessonbook.Option {
	opts := []lessonbook.Option{
		lessonbook.WithLogger(env.Log),
		lessonbook.WithWindows(cfg.Parser.TitleWindow, cfg.Parser.DateWindow, cfg.Parser.LocationWindow, cfg.Parser.ListWindow),
	}
	if cfg.Fetch.Timeout > 0 {
		opts = append(opts, lessonbook.WithTimeout(cfg.Fetch.Timeout))
	}
	if cfg.AssetPath != "" {
		opts = append(opts, lessonbook.WithAssetPath(fileutil.ExpandHome(cfg.AssetPath)))
	}
	return opts
}

// generateBatch builds booklets concurrently, one converter each.
// Results keep the order of configs.
func generateBatch(ctx context.Context, pool Pool, configs []*config.Config, mode outputFlags, env *Environment) []BookletResult {
	results := make([]BookletResult, len(configs))

	var g errgroup.Group
	g.SetLimit(pool.Size())
	for i, cfg := range configs {
		g.Go(func() error {
			results[i] = generateOne(ctx, pool, cfg, mode, env)
			return nil
		})
	}
	_ = g.Wait() // workers record errors in results
	return results
}

// generateOne loads the lesson source, converts it and writes the outputs.
func generateOne(ctx context.Context, pool Pool, cfg *config.Config, mode outputFlags, env *Environment) BookletResult {
	start := time.Now()
	result := BookletResult{ConfigPath: cfg.Path, OutputPath: cfg.OutputFile}
	log := env.Log.With("config", cfg.Path)

	fail := func(err error) BookletResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	source, err := loadSource(ctx, cfg, env)
	if err != nil {
		return fail(err)
	}
	if mode.source {
		path := fileutil.ReplaceExt(cfg.OutputFile, ".md")
		if err := writeOutput(path, []byte(source)); err != nil {
			return fail(err)
		}
		log.Info("saved lesson source", "path", path)
	}

	input, err := buildInput(cfg, source, mode.htmlOnly, log.Warn)
	if err != nil {
		return fail(err)
	}

	conv, err := pool.Acquire()
	if err != nil {
		return fail(err)
	}
	res, err := conv.Convert(ctx, input)
	pool.Release(conv)
	if err != nil {
		return fail(err)
	}
	result.Lessons = res.Lessons

	if mode.html || mode.htmlOnly {
		path := fileutil.ReplaceExt(cfg.OutputFile, ".html")
		if err := writeOutput(path, res.HTML); err != nil {
			return fail(err)
		}
		if mode.htmlOnly {
			result.OutputPath = path
		}
	}
	if !mode.htmlOnly {
		if err := writeOutput(cfg.OutputFile, res.PDF); err != nil {
			return fail(err)
		}
	}

	result.Duration = time.Since(start)
	return result
}

// loadSource reads input_file or downloads the source quarter.
func loadSource(ctx context.Context, cfg *config.Config, env *Environment) (string, error) {
	if cfg.InputFile != "" {
		data, err := os.ReadFile(fileutil.ExpandHome(cfg.InputFile)) // #nosec G304 -- user-provided path
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrReadInput, err)
		}
		return string(data), nil
	}

	year, quarter := cfg.SourceYear(), cfg.SourceQuarter()
	rng := fetch.Range{}
	if r := cfg.Reproduce; r != nil {
		rng = fetch.Range{Start: r.StartLesson, Stop: r.StopLesson}
	}

	env.Log.Info("downloading lessons", "year", year, "quarter", quarter, "language", cfg.Language)
	bundle, err := env.NewDownloader(cfg, env.Log).Download(ctx, fetch.NewPaths(cfg.Fetch.BaseURL, year, quarter, cfg.Language), rng)
	if err != nil {
		return "", &downloadError{year: year, quarter: quarter, language: cfg.Language, err: err}
	}
	if len(bundle.Weeks) == 0 {
		return "", &downloadError{year: year, quarter: quarter, language: cfg.Language, err: errors.New("no lessons selected")}
	}
	return bundle.Combined(), nil
}

// buildInput maps a config onto converter input. Missing cover files are
// reported through warn and the built-in cover is used.
func buildInput(cfg *config.Config, source string, htmlOnly bool, warn func(string, ...any)) (lessonbook.Input, error) {
	input := lessonbook.Input{
		Markdown:  source,
		Year:      cfg.Year,
		Quarter:   cfg.Quarter,
		Language:  cfg.Language,
		Title:     cfg.Title,
		Theme:     fileutil.ExpandHome(cfg.ColorThemePath),
		HTMLOnly:  htmlOnly,
		SourceDir: sourceDir(cfg),
		Page: &lessonbook.PageSettings{
			Size:        cfg.Page.Size,
			Margin:      cfg.Page.Margin,
			PageNumbers: cfg.Page.PageNumbers,
		},
	}

	var err error
	if input.FrontCoverSVG, err = readOptional(cfg.FrontCoverSVG, "front cover", warn); err != nil {
		return input, err
	}
	if input.BackCoverSVG, err = readOptional(cfg.BackCoverSVG, "back cover", warn); err != nil {
		return input, err
	}

	if r := cfg.Reproduce; r != nil {
		start, err := cfg.StartDate()
		if err != nil {
			return input, fmt.Errorf("%w: %v", lesson.ErrInvalidStartDate, err)
		}
		input.Reproduce = &lessonbook.Reproduction{
			QuarterStartDate: start,
			DateFormat:       r.DateFormat,
		}
		if cfg.Reproducing() {
			input.Reproduce.SourceYear = cfg.SourceYear()
			input.Reproduce.SourceQuarter = cfg.SourceQuarter()
		}
	}
	return input, nil
}

// sourceDir anchors relative image paths in a local lesson file.
func sourceDir(cfg *config.Config) string {
	if cfg.InputFile == "" {
		return ""
	}
	dir, err := filepath.Abs(filepath.Dir(fileutil.ExpandHome(cfg.InputFile)))
	if err != nil {
		return ""
	}
	return dir
}

// readOptional reads a cover file. A configured but missing file is a
// warning; other read errors fail the booklet.
func readOptional(path, what string, warn func(string, ...any)) (string, error) {
	if path == "" {
		return "", nil
	}
	path = fileutil.ExpandHome(path)
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if errors.Is(err, os.ErrNotExist) {
		warn(what+" not found, using default", "path", path)
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrReadInput, what, err)
	}
	return string(data), nil
}

func writeOutput(path string, data []byte) error {
	if err := fileutil.EnsureParentDir(path); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	// #nosec G306 -- booklets are intended to be readable
	if err := os.WriteFile(path, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}

// reportResults prints one line per booklet and returns the first failure.
func reportResults(results []BookletResult, common commonFlags, env *Environment) error {
	var (
		firstErr error
		failed   int
	)
	for _, r := range results {
		if r.Err != nil {
			failed++
			if firstErr == nil {
				firstErr = r.Err
			}
			if len(results) > 1 {
				fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.ConfigPath, r.Err, hintFor(r.Err))
			}
			continue
		}
		if common.quiet {
			continue
		}
		if common.verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%d lessons, %v)\n", r.ConfigPath, r.OutputPath, r.Lessons, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !common.quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", len(results)-failed, failed)
	}
	if failed > 1 {
		return fmt.Errorf("%d booklets failed, first: %w", failed, firstErr)
	}
	return firstErr
}

// userConfigPaths lists where a default config would be looked up.
func userConfigPaths() []string {
	dir, err := config.UserConfigDir()
	if err != nil {
		return nil
	}
	return []string{filepath.Join(dir, defaultConfigName+".yaml")}
}
