package main

import (
	"fmt"
	"os"

	"github.com/gmlfmt/gmlfmt/cmd/internal/cliutil"
	"github.com/gmlfmt/gmlfmt/internal/config"
	"github.com/gmlfmt/gmlfmt/internal/scanner"
	"github.com/gmlfmt/gmlfmt/internal/source"
	"github.com/gmlfmt/gmlfmt/internal/types"
)

func cmdScan(paths []string, flags cliutil.Flags, cfg config.Config, logger *types.Logger) int {
	files, err := collectFiles(paths, cfg.Extensions)
	if err != nil {
		cliutil.PrintError("%v", err)
		return exitError
	}
	if len(files) == 0 {
		cliutil.PrintError("no .gml files found")
		return exitError
	}

	hadDiagnostics := false
	for _, path := range files {
		content, err := source.ReadFile(path)
		if err != nil {
			cliutil.PrintError("reading %s: %v", path, err)
			return exitError
		}

		tokens, diags := scanner.New(content, logger.L).Tokenize()
		if len(diags) > 0 {
			hadDiagnostics = true
		}

		fmt.Printf("== %s ==\n", path)
		for _, tok := range tokens {
			fmt.Println(tok.String())
		}
		for _, d := range diags {
			fmt.Fprintln(os.Stderr, d.String())
		}
	}

	if hadDiagnostics && !flags.Lenient {
		return exitStrictViolation
	}
	return exitOK
}

// collectFiles expands paths into a flat, deduplicated list of files with
// one of exts. A path that is itself a file is taken as-is (regardless of
// extension); a directory is walked recursively via internal/source.
func collectFiles(paths []string, exts []string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	var files []string
	seen := make(map[string]struct{})
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if _, ok := seen[p]; !ok {
				seen[p] = struct{}{}
				files = append(files, p)
			}
			continue
		}
		found, err := source.Walk(p, exts)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			if _, ok := seen[f]; !ok {
				seen[f] = struct{}{}
				files = append(files, f)
			}
		}
	}
	return files, nil
}
