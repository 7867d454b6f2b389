// Package view provides output formatting for the Pinterest Ads CLI.
// API responses are JSON; the view renders them compact or
// pretty-printed and adds colored status messages for workflows.
package view

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
)

// View handles output formatting.
type View struct {
	Pretty  bool
	NoColor bool
	Out     io.Writer
	Err     io.Writer
}

// New creates a new View. If noColor is true, colorized output is disabled.
func New(pretty, noColor bool) *View {
	if noColor {
		color.NoColor = true
	}

	return &View{
		Pretty:  pretty,
		NoColor: noColor,
		Out:     os.Stdout,
		Err:     os.Stderr,
	}
}

// JSON renders a Go value as JSON, honoring the pretty setting.
func (v *View) JSON(data interface{}) error {
	enc := json.NewEncoder(v.Out)
	if v.Pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(data)
}

// RawJSON writes an already-encoded JSON document, re-indenting it when
// pretty output is requested.
func (v *View) RawJSON(data json.RawMessage) error {
	if !v.Pretty {
		var compact bytes.Buffer
		if err := json.Compact(&compact, data); err != nil {
			return err
		}
		_, err := fmt.Fprintln(v.Out, compact.String())
		return err
	}

	var indented bytes.Buffer
	if err := json.Indent(&indented, data, "", "  "); err != nil {
		return err
	}
	_, err := fmt.Fprintln(v.Out, indented.String())
	return err
}

// Table renders data as a formatted table with aligned columns.
func (v *View) Table(headers []string, rows [][]string) error {
	w := tabwriter.NewWriter(v.Out, 0, 0, 2, ' ', 0)

	headerLine := strings.Join(headers, "\t")
	if v.NoColor {
		_, _ = fmt.Fprintln(w, headerLine)
	} else {
		_, _ = fmt.Fprintln(w, color.New(color.Bold).Sprint(headerLine))
	}

	for _, row := range rows {
		_, _ = fmt.Fprintln(w, strings.Join(row, "\t"))
	}

	return w.Flush()
}

// Success prints a success message with a green checkmark.
func (v *View) Success(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if v.NoColor {
		_, _ = fmt.Fprintln(v.Out, "✓ "+msg)
	} else {
		_, _ = fmt.Fprintln(v.Out, color.GreenString("✓ %s", msg))
	}
}

// Error prints an error message with a red X.
func (v *View) Error(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if v.NoColor {
		_, _ = fmt.Fprintln(v.Err, "✗ "+msg)
	} else {
		_, _ = fmt.Fprintln(v.Err, color.RedString("✗ %s", msg))
	}
}

// Warning prints a warning message with a yellow warning sign.
func (v *View) Warning(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if v.NoColor {
		_, _ = fmt.Fprintln(v.Err, "⚠ "+msg)
	} else {
		_, _ = fmt.Fprintln(v.Err, color.YellowString("⚠ %s", msg))
	}
}

// Info prints an informational message.
func (v *View) Info(format string, args ...interface{}) {
	_, _ = fmt.Fprintln(v.Out, fmt.Sprintf(format, args...))
}
