package main

import (
	"os"

	"github.com/gmlfmt/gmlfmt/cmd/internal/cliutil"
	"github.com/gmlfmt/gmlfmt/internal/config"
	"github.com/gmlfmt/gmlfmt/internal/diag"
	"github.com/gmlfmt/gmlfmt/internal/scanner"
	"github.com/gmlfmt/gmlfmt/internal/source"
	"github.com/gmlfmt/gmlfmt/internal/types"
)

func cmdLint(paths []string, flags cliutil.Flags, cfg config.Config, logger *types.Logger) int {
	files, err := collectFiles(paths, cfg.Extensions)
	if err != nil {
		cliutil.PrintError("%v", err)
		return exitError
	}

	out, palette := newPalette(os.Stdout, cfg.NoColor)
	total := 0
	for _, path := range files {
		content, err := source.ReadFile(path)
		if err != nil {
			cliutil.PrintError("reading %s: %v", path, err)
			return exitError
		}
		_, diags := scanner.New(content, logger.L).Tokenize()
		for _, d := range diags {
			total++
			c := palette.warn
			if d.Severity == diag.SeverityError {
				c = palette.err
			}
			c.Fprintf(out, "%s: ", path)
			palette.faint.Fprintf(out, "%s ", d.Pos)
			c.Fprintln(out, d.Message)
		}
	}

	if total == 0 {
		palette.ok.Fprintln(out, "no diagnostics")
		return exitOK
	}
	if flags.Lenient {
		return exitOK
	}
	return exitStrictViolation
}
