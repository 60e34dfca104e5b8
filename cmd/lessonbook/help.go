package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: lessonbook <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  generate   Build lesson booklets from config files")
	fmt.Fprintln(w, "  parse      Print the lesson model of a markdown file")
	fmt.Fprintln(w, "  init       Write a starter config and color theme")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'lessonbook help <command>' for details on a specific command.")
}

// printGenerateUsage prints usage for the generate command.
func printGenerateUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: lessonbook generate [configs...] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build one booklet per config. Without arguments, lessonbook.yaml is")
	fmt.Fprintln(w, "looked up in the current directory, then in ~/.config/lessonbook/.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -o, --output <path>       Output PDF (single config only)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel booklets (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Download and PDF timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom styles, templates, themes, languages")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Mode:")
	fmt.Fprintln(w, "      --html                Write HTML alongside PDF")
	fmt.Fprintln(w, "      --html-only           Write HTML only, skip PDF")
	fmt.Fprintln(w, "      --save-source         Save the combined lesson markdown")
	fmt.Fprintln(w)
	printOutputControl(w)
}

// printParseUsage prints usage for the parse command.
func printParseUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: lessonbook parse <file.md> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Parse lesson markdown and print lessons, front matter and back matter.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -f, --format <s>          Output format: yaml, json")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (default stdout)")
	fmt.Fprintln(w, "      --start-date <date>   Renumber and redate from YYYY-MM-DD")
	fmt.Fprintln(w, "      --date-format <s>     Date layout: tokens (MMMM DD, YYYY) or preset")
	fmt.Fprintln(w)
	printOutputControl(w)
}

// printInitUsage prints usage for the init command.
func printInitUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: lessonbook init [dir] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write lessonbook.yaml and themes/burgundy.yaml into dir (default .).")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --force               Overwrite existing files")
	fmt.Fprintln(w)
	printOutputControl(w)
}

func printOutputControl(w io.Writer) {
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug output")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "generate":
		printGenerateUsage(env.Stdout)
	case "parse":
		printParseUsage(env.Stdout)
	case "init":
		printInitUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: lessonbook version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: lessonbook help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
