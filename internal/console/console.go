// Package console narrates pipeline progress to the terminal. It is separate
// from structured logging: these lines are the tool's user-facing output.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Printer writes styled progress lines. The zero value is unusable; use New.
type Printer struct {
	out   io.Writer
	plain bool
}

// New returns a Printer writing to stdout.
func New() *Printer {
	return &Printer{out: os.Stdout}
}

// NewWriter returns a Printer writing to w without color, for tests.
func NewWriter(w io.Writer) *Printer {
	return &Printer{out: w, plain: true}
}

var (
	stepStyle = color.New(color.FgBlue, color.Bold)
	doneStyle = color.New(color.FgGreen, color.Bold)
	warnStyle = color.New(color.FgYellow, color.Bold)
	failStyle = color.New(color.FgRed, color.Bold)
)

func (p *Printer) line(style *color.Color, emoji, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if p.plain {
		fmt.Fprintf(p.out, "%s %s\n", emoji, msg)
		return
	}
	style.Fprintf(p.out, "%s %s\n", emoji, msg)
}

// Step announces the start of a pipeline stage.
func (p *Printer) Step(format string, args ...any) {
	p.line(stepStyle, "🔄", format, args...)
}

// Done reports a completed stage.
func (p *Printer) Done(format string, args ...any) {
	p.line(doneStyle, "✅", format, args...)
}

// Warn reports a degraded but non-fatal condition.
func (p *Printer) Warn(format string, args ...any) {
	p.line(warnStyle, "⚠️", format, args...)
}

// Fail reports a fatal condition.
func (p *Printer) Fail(format string, args ...any) {
	p.line(failStyle, "❌", format, args...)
}
