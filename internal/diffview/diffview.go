// Package diffview renders unified diffs between original and patched
// dictionary lines, optionally coloured for terminals.
package diffview

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/pmezard/go-difflib/difflib"
)

const (
	contextLines    = 3
	noNewlineMarker = "\\ No newline at end of file\n"
)

// Unified returns a unified diff of a and b with three lines of context.
// Both slices hold lines with their terminators, as produced by
// dictmerge.SplitLines. Identical inputs produce an empty string.
func Unified(a, b []string, fromFile, toFile string) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        terminate(a),
		B:        terminate(b),
		FromFile: fromFile,
		ToFile:   toFile,
		Context:  contextLines,
	})
}

// terminate gives every line a trailing '\n' so the diff stays line-aligned
// when lines end in a bare '\r'. A final line with no terminator at all is
// marked.
func terminate(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		switch {
		case strings.HasSuffix(line, "\n"):
			out[i] = line
		case strings.HasSuffix(line, "\r"):
			out[i] = line + "\n"
		default:
			out[i] = line + "\n" + noNewlineMarker
		}
	}
	return out
}

// ShouldColor reports whether output to w should be coloured. Colour needs
// enabled, an unset NO_COLOR, and w being a terminal.
func ShouldColor(w io.Writer, enabled bool) bool {
	if !enabled {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Printer writes diffs, colouring them when asked.
type Printer struct {
	w        io.Writer
	colorize bool
	header   *color.Color
	hunk     *color.Color
	added    *color.Color
	removed  *color.Color
}

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer, colorize bool) *Printer {
	p := &Printer{
		w:        w,
		colorize: colorize,
		header:   color.New(color.Bold),
		hunk:     color.New(color.FgCyan),
		added:    color.New(color.FgGreen),
		removed:  color.New(color.FgRed),
	}
	for _, c := range []*color.Color{p.header, p.hunk, p.added, p.removed} {
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Print writes diff line by line.
func (p *Printer) Print(diff string) error {
	bw := bufio.NewWriter(p.w)
	for _, line := range strings.SplitAfter(diff, "\n") {
		if line == "" {
			continue
		}
		if _, err := bw.WriteString(p.paint(line)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func (p *Printer) paint(line string) string {
	if !p.colorize {
		return line
	}
	body, nl := strings.CutSuffix(line, "\n")
	var c *color.Color
	switch {
	case strings.HasPrefix(body, "+++"), strings.HasPrefix(body, "---"):
		c = p.header
	case strings.HasPrefix(body, "@@"):
		c = p.hunk
	case strings.HasPrefix(body, "+"):
		c = p.added
	case strings.HasPrefix(body, "-"):
		c = p.removed
	default:
		return line
	}
	out := c.Sprint(body)
	if nl {
		out += "\n"
	}
	return out
}
