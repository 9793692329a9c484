// Command gmlfmt tokenizes GML source files for inspection, linting, and
// interactive exploration. It does not parse or format; see the scanner
// package for the tokenizer this CLI is a thin shell around.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/google/uuid"

	"github.com/gmlfmt/gmlfmt/cmd/internal/cliutil"
	"github.com/gmlfmt/gmlfmt/internal/config"
	"github.com/gmlfmt/gmlfmt/internal/types"
)

// Exit codes.
const (
	exitOK              = 0 // success
	exitError           = 1 // user error or processing failure
	exitStrictViolation = 2 // scan found diagnostics and -lenient was not set
)

const usage = `gmlfmt - GML lexical scanner and inspection tool

Usage:
  gmlfmt <command> [options] [arguments]

Commands:
  scan    Tokenize files and print the token stream
  lint    Scan files and report only diagnostics
  watch   Re-run lint whenever a watched file changes
  repl    Tokenize snippets read interactively from stdin
  version Show version

Common options:
  -v, --verbose   Enable debug logging
  -vv             Enable trace logging (implies -v)
  -lenient        Exit 0 even if diagnostics were found (scan, lint)
  --no-color      Disable colorized output
  -h, --help      Show help
`

func main() {
	os.Exit(run())
}

func run() int {
	args := os.Args[1:]
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return exitError
	}

	cmd := args[0]
	rest := args[1:]

	flags, cmdArgs := cliutil.ParseArgs(rest)
	if flags.HelpFlag || cmd == "help" || cmd == "-h" || cmd == "--help" {
		fmt.Fprint(os.Stdout, usage)
		return exitOK
	}

	cfg, err := config.Load(".")
	if err != nil {
		cliutil.PrintError("loading config: %v", err)
		return exitError
	}
	if flags.NoColor {
		cfg.NoColor = true
	}

	runID := uuid.New().String()
	logger := setupLogger(flags.Verbose, cfg.LogLevel, runID)

	switch cmd {
	case "scan":
		return cmdScan(cmdArgs, flags, cfg, logger)
	case "lint":
		return cmdLint(cmdArgs, flags, cfg, logger)
	case "watch":
		return cmdWatch(cmdArgs, flags, cfg, logger)
	case "repl":
		return cmdRepl(flags, cfg, logger)
	case "version":
		printVersion()
		return exitOK
	case "help", "-h", "--help":
		fmt.Fprint(os.Stdout, usage)
		return exitOK
	default:
		cliutil.PrintError("unknown command: %s", cmd)
		fmt.Fprint(os.Stderr, usage)
		return exitError
	}
}

// setupLogger resolves the effective log level from cfg.LogLevel
// (itself layered from .gmlfmt.yaml / GMLFMT_LOG_LEVEL by config.Load) and
// raises it if -v/-vv were passed explicitly; the CLI flag never lowers
// a level the config already requested.
func setupLogger(verbose int, logLevel string, runID string) *types.Logger {
	level := parseLogLevel(logLevel)
	if verbose >= 1 && level > slog.LevelDebug {
		level = slog.LevelDebug
	}
	if verbose >= 2 {
		level = types.LevelTrace
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	l := slog.New(handler).With(slog.String("run_id", runID))
	return &types.Logger{L: l}
}

func parseLogLevel(s string) slog.Level {
	switch s {
	case "trace":
		return types.LevelTrace
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func printVersion() {
	version := "(devel)"
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		version = info.Main.Version
	}
	fmt.Printf("gmlfmt %s\n", version)
}
