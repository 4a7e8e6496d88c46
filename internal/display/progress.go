package display

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
)

// ProgressIndicator manages multi-step progress display for batch commands
type ProgressIndicator struct {
	writer  io.Writer
	total   int
	current int
	label   string
	color   bool
}

// NewProgressIndicator creates a progress indicator for total items described by label (e.g. "answer files")
func NewProgressIndicator(w io.Writer, total int, label string) *ProgressIndicator {
	return &ProgressIndicator{
		writer: w,
		total:  total,
		label:  label,
		color:  ColorEnabled(w),
	}
}

// Start displays the header message
func (p *ProgressIndicator) Start() {
	fmt.Fprintf(p.writer, "Processing %d %s:\n", p.total, p.label)
}

// Step displays progress for the next item: [N/Total] filename
func (p *ProgressIndicator) Step(filename string) {
	p.current++
	line := fmt.Sprintf("  [%d/%d] %s", p.current, p.total, filepath.Base(filename))
	if p.color {
		line = paint(line, color.FgCyan)
	}
	fmt.Fprintln(p.writer, line)
}

// Complete displays the final line; failed counts the items that did not pass
func (p *ProgressIndicator) Complete(failed int) {
	if failed == 0 {
		fmt.Fprintf(p.writer, "%s Processed %d %s\n", p.mark("✓", color.FgGreen), p.total, p.label)
		return
	}
	fmt.Fprintf(p.writer, "%s %d of %d %s failed\n", p.mark("✗", color.FgRed), failed, p.total, p.label)
}

func (p *ProgressIndicator) mark(symbol string, attr color.Attribute) string {
	if p.color {
		return paint(symbol, attr)
	}
	return symbol
}

// DisplaySingleFile shows a simple loading message for a single file
func DisplaySingleFile(w io.Writer, filename string) {
	fmt.Fprintf(w, "Loading answers from %s...\n", filename)
}
