package ui

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// OutputMode determines how output should be formatted
type OutputMode int

const (
	// OutputModeInteractive enables colors, icons and the progress display
	OutputModeInteractive OutputMode = iota
	// OutputModePlain disables colors and progress (piped output, NO_COLOR)
	OutputModePlain
	// OutputModeJSON writes machine-readable reports only
	OutputModeJSON
)

// UI bundles the output streams of a command with the styles for its mode
type UI struct {
	Mode      OutputMode
	Writer    io.Writer
	ErrWriter io.Writer
	Styles    *Styles
}

// New creates a UI for the given report format, detecting whether w is a terminal
func New(w, errW io.Writer, format string) *UI {
	mode := detectMode(w, format, os.Getenv("NO_COLOR") != "")
	return &UI{
		Mode:      mode,
		Writer:    w,
		ErrWriter: errW,
		Styles:    NewStyles(mode == OutputModeInteractive),
	}
}

func detectMode(w io.Writer, format string, noColor bool) OutputMode {
	if format == "json" {
		return OutputModeJSON
	}
	if noColor {
		return OutputModePlain
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return OutputModeInteractive
	}
	return OutputModePlain
}

// IsInteractive returns true if the output is interactive (TTY)
func (ui *UI) IsInteractive() bool {
	return ui.Mode == OutputModeInteractive
}

// IsJSON returns true if JSON output mode is enabled
func (ui *UI) IsJSON() bool {
	return ui.Mode == OutputModeJSON
}

// Errorf prints a styled error line to the error stream
func (ui *UI) Errorf(format string, args ...any) {
	fmt.Fprintln(ui.ErrWriter, ui.Styles.Error.Render(ui.Styles.IconError+" "+fmt.Sprintf(format, args...)))
}

// Successf prints a styled confirmation to the output stream.
// Nothing is printed in JSON mode so reports stay parseable.
func (ui *UI) Successf(format string, args ...any) {
	if ui.IsJSON() {
		return
	}
	fmt.Fprintln(ui.Writer, ui.Styles.Success.Render(ui.Styles.IconSuccess+" "+fmt.Sprintf(format, args...)))
}

// Infof prints a styled status line to the output stream, skipped in JSON mode
func (ui *UI) Infof(format string, args ...any) {
	if ui.IsJSON() {
		return
	}
	fmt.Fprintln(ui.Writer, ui.Styles.Info.Render(ui.Styles.IconInfo+" "+fmt.Sprintf(format, args...)))
}
