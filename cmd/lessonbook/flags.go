package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	quiet   bool
	verbose bool
}

// outputFlags holds output mode flags.
type outputFlags struct {
	html     bool // write HTML alongside the PDF
	htmlOnly bool // write HTML only, skip PDF
	source   bool // save the combined markdown source
}

// generateFlags holds all flags for the generate command.
type generateFlags struct {
	common     commonFlags
	config     string
	output     string
	workers    int
	timeout    string
	assetPath  string
	outputMode outputFlags
}

// parseFlags holds flags for the parse command.
type parseFlags struct {
	common     commonFlags
	format     string
	output     string
	startDate  string
	dateFormat string
}

// initFlags holds flags for the init command.
type initFlags struct {
	common commonFlags
	force  bool
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug output")
}

func newFlagSet(name string, usage func(io.Writer), stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(stderr) }
	return fs
}

// parseGenerateFlags parses generate command flags and returns positional args.
func parseGenerateFlags(args []string, stderr io.Writer) (*generateFlags, []string, error) {
	f := &generateFlags{}
	fs := newFlagSet("generate", printGenerateUsage, stderr)

	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVarP(&f.output, "output", "o", "", "output PDF path (single config only)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel booklets (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "download and PDF timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory with custom styles, templates, themes, languages")
	fs.BoolVar(&f.outputMode.html, "html", false, "write HTML alongside PDF")
	fs.BoolVar(&f.outputMode.htmlOnly, "html-only", false, "write HTML only, skip PDF")
	fs.BoolVar(&f.outputMode.source, "save-source", false, "save the combined lesson markdown")
	addCommonFlags(fs, &f.common)

	if err := fs.Parse(args); err != nil {
		return nil, nil, wrapFlagError(err)
	}
	return f, fs.Args(), nil
}

// parseParseFlags parses parse command flags and returns positional args.
func parseParseFlags(args []string, stderr io.Writer) (*parseFlags, []string, error) {
	f := &parseFlags{}
	fs := newFlagSet("parse", printParseUsage, stderr)

	fs.StringVarP(&f.format, "format", "f", "yaml", "output format: yaml or json")
	fs.StringVarP(&f.output, "output", "o", "", "output file (default stdout)")
	fs.StringVar(&f.startDate, "start-date", "", "renumber and redate from YYYY-MM-DD")
	fs.StringVar(&f.dateFormat, "date-format", "", "layout for new dates (tokens or preset)")
	addCommonFlags(fs, &f.common)

	if err := fs.Parse(args); err != nil {
		return nil, nil, wrapFlagError(err)
	}
	return f, fs.Args(), nil
}

// parseInitFlags parses init command flags and returns positional args.
func parseInitFlags(args []string, stderr io.Writer) (*initFlags, []string, error) {
	f := &initFlags{}
	fs := newFlagSet("init", printInitUsage, stderr)

	fs.BoolVar(&f.force, "force", false, "overwrite existing files")
	addCommonFlags(fs, &f.common)

	if err := fs.Parse(args); err != nil {
		return nil, nil, wrapFlagError(err)
	}
	return f, fs.Args(), nil
}
