package display

import (
	"io"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

type fdWriter interface {
	Fd() uintptr
}

// ColorEnabled reports whether w is a terminal that should receive colour
func ColorEnabled(w io.Writer) bool {
	if color.NoColor {
		return false
	}
	f, ok := w.(fdWriter)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// paint wraps s in the given colour regardless of the global NoColor switch;
// callers decide with ColorEnabled first.
func paint(s string, attrs ...color.Attribute) string {
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(s)
}
