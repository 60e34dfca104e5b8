package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-lessonbook/internal/logger"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches the command and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}
	cmd, rest := args[1], args[2:]

	switch cmd {
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "lessonbook %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		runHelp(rest, env)
		return ExitSuccess
	}

	run, ok := commands[cmd]
	if !ok {
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	err := run(ctx, rest, env)
	defer env.Log.Sync() // after run: setupLogging replaces env.Log
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "Error: %v%s\n", err, hintFor(err))
	}
	return exitCodeFor(err)
}

// commandFunc runs one subcommand.
type commandFunc func(ctx context.Context, args []string, env *Environment) error

var commands = map[string]commandFunc{
	"generate": runGenerate,
	"parse":    runParse,
	"init":     runInit,
}

// setupLogging replaces env.Log according to -q/-v and sizes GOMAXPROCS
// for the container the CLI runs in.
func setupLogging(env *Environment, common commonFlags) error {
	if env.logReady {
		return nil
	}
	mode := logger.ModeNormal
	switch {
	case common.verbose:
		mode = logger.ModeVerbose
	case common.quiet:
		mode = logger.ModeQuiet
	}
	log, err := logger.New(mode)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	env.Log = log
	env.logReady = true

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply.
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		log.Debug(fmt.Sprintf(format, args...))
	}))
	return nil
}
