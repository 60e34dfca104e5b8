package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alnah/go-lessonbook"
	"github.com/alnah/go-lessonbook/internal/lesson"
	"github.com/alnah/go-lessonbook/internal/yamlutil"
)

// runParse prints the lesson model of a markdown file as YAML or JSON.
func runParse(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseParseFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if err := setupLogging(env, flags.common); err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("%w: parse takes exactly one markdown file", ErrUsage)
	}

	format := strings.ToLower(flags.format)
	if format != "yaml" && format != "json" {
		return fmt.Errorf("%w: --format must be yaml or json, not %q", ErrUsage, flags.format)
	}

	var repro *lessonbook.Reproduction
	if flags.startDate != "" {
		if _, err := time.Parse(lesson.StartDateLayout, flags.startDate); err != nil {
			return fmt.Errorf("%w: %q", lesson.ErrInvalidStartDate, flags.startDate)
		}
		repro = &lessonbook.Reproduction{QuarterStartDate: flags.startDate, DateFormat: flags.dateFormat}
	}

	data, err := os.ReadFile(positional[0]) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	conv, err := lessonbook.NewConverter(lessonbook.WithLogger(env.Log))
	if err != nil {
		return err
	}
	defer func() { _ = conv.Close() }()

	doc, err := conv.Parse(ctx, string(data), repro)
	if err != nil {
		return err
	}
	env.Log.Info("parsed lessons", "file", positional[0], "count", len(doc.Lessons))

	var out []byte
	if format == "json" {
		out, err = yamlutil.MarshalJSON(doc)
	} else {
		out, err = yamlutil.Marshal(doc)
	}
	if err != nil {
		return fmt.Errorf("encoding lessons: %w", err)
	}

	if flags.output == "" {
		_, err = env.Stdout.Write(out)
		return err
	}
	return writeOutput(flags.output, out)
}
