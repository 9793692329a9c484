package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/gmlfmt/gmlfmt/cmd/internal/cliutil"
	"github.com/gmlfmt/gmlfmt/internal/config"
	"github.com/gmlfmt/gmlfmt/internal/scanner"
	"github.com/gmlfmt/gmlfmt/internal/types"
)

const replPrompt = "gmlfmt> "

// cmdRepl reads GML snippets from stdin line by line and prints the token
// stream produced for each, so a user can see how a fragment tokenizes
// without creating a file.
func cmdRepl(flags cliutil.Flags, cfg config.Config, logger *types.Logger) int {
	_, palette := newPalette(os.Stdout, cfg.NoColor)

	rl, err := readline.New(replPrompt)
	if err != nil {
		cliutil.PrintError("readline: %v", err)
		return exitError
	}
	defer rl.Close()

	palette.faint.Println("gmlfmt interactive scanner - type a GML snippet, Ctrl-D to exit")

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == io.EOF || err == readline.ErrInterrupt {
				return exitOK
			}
			cliutil.PrintError("%v", err)
			return exitError
		}

		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rl.SaveHistory(line)

		tokens, diags := scanner.New([]byte(line), logger.L).Tokenize()
		for _, tok := range tokens {
			fmt.Println(tok.String())
		}
		for _, d := range diags {
			palette.warn.Println(d.String())
		}
	}
}
