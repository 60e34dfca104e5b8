package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alnah/go-lessonbook/internal/assets"
	"github.com/alnah/go-lessonbook/internal/config"
)

// runInit writes a starter config and the default color theme.
func runInit(_ context.Context, args []string, env *Environment) error {
	flags, positional, err := parseInitFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if err := setupLogging(env, flags.common); err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: init takes at most one directory", ErrUsage)
	}

	dir := "."
	if len(positional) == 1 {
		dir = positional[0]
	}

	theme, err := assets.NewEmbeddedLoader().LoadTheme(assets.DefaultThemeName)
	if err != nil {
		return err
	}

	themeRel := filepath.Join("themes", assets.DefaultThemeName+".yaml")
	files := []struct {
		path    string
		content string
	}{
		{filepath.Join(dir, defaultConfigName+".yaml"), config.Template(env.Now(), "./"+filepath.ToSlash(themeRel))},
		{filepath.Join(dir, themeRel), theme},
	}

	if !flags.force {
		for _, f := range files {
			if _, err := os.Stat(f.path); err == nil {
				return fmt.Errorf("%w: %s (use --force to overwrite)", ErrOutputExists, f.path)
			}
		}
	}

	for _, f := range files {
		if err := writeOutput(f.path, []byte(f.content)); err != nil {
			return err
		}
		if !flags.common.quiet {
			fmt.Fprintf(env.Stdout, "Created %s\n", f.path)
		}
	}
	return nil
}
