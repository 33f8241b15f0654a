// Package output provides mode-aware rendering for CLI commands: plain
// text, markdown, or JSON, with terminal styling when stdout supports it.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// Mode selects the output format.
type Mode string

// Output modes. ModeAuto renders text with styling when the writer is a
// terminal.
const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

// Valid reports whether the mode is one of the known names.
func (m Mode) Valid() bool {
	switch m {
	case ModeAuto, ModeText, ModeMarkdown, ModeJSON, "md":
		return true
	}
	return false
}

// Renderer writes command output in the selected mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	styles Styles
}

// NewRenderer creates a renderer. Styling follows the terminal capabilities
// of out; redirected output gets plain text.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	if mode == "" || !mode.Valid() {
		mode = ModeAuto
	}
	if mode == "md" {
		mode = ModeMarkdown
	}
	to := termenv.NewOutput(out)
	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		styles: newStyles(to),
	}
}

// EffectiveMode resolves ModeAuto to the concrete mode being rendered.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode == ModeAuto {
		return ModeText
	}
	return r.mode
}

// Out returns the underlying output writer.
func (r *Renderer) Out() io.Writer {
	return r.out
}

// Styles returns the terminal styles for the output writer.
func (r *Renderer) Styles() Styles {
	return r.styles
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Println writes a line to the output writer.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted output to the output writer.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// Success writes a styled success line.
func (r *Renderer) Success(msg string) {
	r.Println(r.styles.Success.Render("✓") + " " + msg)
}

// Warnf writes a formatted warning to the error writer.
func (r *Renderer) Warnf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.errOut, format, a...)
}
