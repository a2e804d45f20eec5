package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/muurk/tmcatcher/internal/api"
)

// Format selects how the Printer renders results
type Format string

const (
	FormatDetailed Format = "detailed"
	FormatJSON     Format = "json"
)

// ParseFormat validates a --format value
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatDetailed, "":
		return FormatDetailed, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown format %q (expected detailed or json)", s)
}

// Printer provides methods for printing UI components to a writer.
// This is the primary way commands output styled content.
type Printer struct {
	out    io.Writer
	width  int
	format Format
}

// NewPrinter creates a new Printer that writes to the given writer.
// If w is nil, os.Stdout is used.
func NewPrinter(w io.Writer, format Format) *Printer {
	if w == nil {
		w = os.Stdout
	}
	if format == "" {
		format = FormatDetailed
	}
	return &Printer{
		out:    w,
		width:  GetTerminalWidth(),
		format: format,
	}
}

// SetWidth overrides the detected terminal width
func (p *Printer) SetWidth(width int) *Printer {
	p.width = width
	return p
}

// Width returns the current terminal width used by this printer
func (p *Printer) Width() int {
	return p.width
}

// JSON reports whether the printer emits JSON
func (p *Printer) JSON() bool {
	return p.format == FormatJSON
}

// Print writes content to the output
func (p *Printer) Print(content string) {
	_, _ = fmt.Fprint(p.out, content)
}

// Println writes content with a newline
func (p *Printer) Println(content string) {
	_, _ = fmt.Fprintln(p.out, content)
}

// Newline prints an empty line
func (p *Printer) Newline() {
	_, _ = fmt.Fprintln(p.out)
}

// PrintHeader prints a command header box. JSON output has no header.
func (p *Printer) PrintHeader(title, command string, params []api.Field) {
	if p.JSON() {
		return
	}
	p.Println(renderHeader(title, command, params, p.width))
}

// PrintJSON writes v as indented JSON
func (p *Printer) PrintJSON(v any) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// PrintResult renders an operation result. For detailed output, a successful
// response gets a success box with details and a failed one gets an error box
// with troubleshooting tips. For JSON output, v is encoded as is.
func (p *Printer) PrintResult(title string, resp api.Response, details []api.Field, v any) error {
	if p.JSON() {
		return p.PrintJSON(v)
	}

	if resp.Success {
		r := NewSuccessResult(title, details).SetWidth(p.width)
		r.Message = resp.Message
		p.Println(r.Render())
		return nil
	}

	r := NewFailureResult(title, resp.Message, TroubleshootingFor(resp)).SetWidth(p.width)
	r.Details = details
	p.Println(r.Render())
	return nil
}

// PrintWarning prints a warning result box
func (p *Printer) PrintWarning(title string, details []api.Field) {
	if p.JSON() {
		return
	}
	p.Println(NewWarningResult(title, details).SetWidth(p.width).Render())
}
