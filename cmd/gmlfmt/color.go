package main

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// palette holds the severity colors used by scan/lint output, mirroring
// go-mix's REPL color set but keyed to diagnostic severity instead of
// evaluator result kind.
type palette struct {
	warn  *color.Color
	err   *color.Color
	ok    *color.Color
	faint *color.Color
}

// newPalette returns a palette wired to w. Color is disabled outright when
// noColor is set or w is not a terminal; on a terminal, w is wrapped with
// go-colorable so ANSI codes render correctly on Windows consoles too.
func newPalette(w *os.File, noColor bool) (io.Writer, palette) {
	isTerminal := isatty.IsTerminal(w.Fd()) || isatty.IsCygwinTerminal(w.Fd())
	out := io.Writer(w)
	if isTerminal {
		out = colorable.NewColorable(w)
	}

	p := palette{
		warn:  color.New(color.FgYellow),
		err:   color.New(color.FgRed),
		ok:    color.New(color.FgGreen),
		faint: color.New(color.FgHiBlack),
	}
	if noColor || !isTerminal {
		p.warn.DisableColor()
		p.err.DisableColor()
		p.ok.DisableColor()
		p.faint.DisableColor()
	}
	return out, p
}
