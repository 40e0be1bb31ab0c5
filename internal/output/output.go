// Package output implements the writer layer from §6: plain, NUL-
// separated (-print0), and count-only (-count) result printing, plus
// colorized diagnostic (-v) output whose TTY/NO_COLOR detection mirrors
// the teacher's --color=auto handling in cmd/titus/report.go.
package output

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// ColorMode mirrors the teacher's --color flag values.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ShouldColor resolves a ColorMode against the output stream and
// environment, exactly as cmd/titus/report.go resolves --color=auto:
// NO_COLOR and a non-TTY destination both force colors off.
func ShouldColor(mode ColorMode, out *os.File) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return term.IsTerminal(int(out.Fd())) && os.Getenv("NO_COLOR") == ""
	}
}

// Styles holds the color formatters diagnostic (-v) output uses.
type Styles struct {
	Heading *color.Color
	Path    *color.Color
	Warn    *color.Color
	Metric  *color.Color
}

// NewStyles builds a Styles set, disabling all color when enabled=false.
func NewStyles(enabled bool) *Styles {
	s := &Styles{
		Heading: color.New(color.Bold, color.FgHiWhite),
		Path:    color.New(color.FgHiGreen),
		Warn:    color.New(color.Bold, color.FgHiYellow),
		Metric:  color.New(color.FgHiBlue),
	}
	if !enabled {
		s.Heading.DisableColor()
		s.Path.DisableColor()
		s.Warn.DisableColor()
		s.Metric.DisableColor()
	}
	return s
}

// Writer prints matched paths in one of three modes: plain newline-
// separated (default), NUL-separated (-print0, safe for paths containing
// newlines), or count-only (-count, suppressing per-path output).
type Writer struct {
	w         *bufio.Writer
	print0    bool
	countOnly bool
	count     int
}

// New constructs a Writer over dst.
func New(dst io.Writer, print0, countOnly bool) *Writer {
	return &Writer{w: bufio.NewWriter(dst), print0: print0, countOnly: countOnly}
}

// Emit records one matched path, printing it immediately unless countOnly
// is set.
func (w *Writer) Emit(path string) error {
	w.count++
	if w.countOnly {
		return nil
	}
	if w.print0 {
		_, err := fmt.Fprintf(w.w, "%s\x00", path)
		return err
	}
	_, err := fmt.Fprintln(w.w, path)
	return err
}

// Flush finishes the output, printing the final count line if countOnly
// was requested, and flushes the underlying buffer.
func (w *Writer) Flush() error {
	if w.countOnly {
		if _, err := fmt.Fprintln(w.w, w.count); err != nil {
			return err
		}
	}
	return w.w.Flush()
}

// Count returns the number of paths Emit has recorded so far.
func (w *Writer) Count() int { return w.count }
