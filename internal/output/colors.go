package output

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ColorScheme defines the colors used for different elements in the output
type ColorScheme struct {
	Method      *color.Color
	URL         *color.Color
	StatusOK    *color.Color
	StatusWarn  *color.Color
	StatusError *color.Color
	HeaderKey   *color.Color
	Success     *color.Color
	Error       *color.Color
}

// NewColorScheme returns the default color scheme, with every color disabled
// when noColor is set or stdout is not a terminal.
func NewColorScheme(noColor bool) *ColorScheme {
	scheme := &ColorScheme{
		Method:      color.New(color.FgBlue, color.Bold),
		URL:         color.New(color.FgCyan),
		StatusOK:    color.New(color.FgGreen, color.Bold),
		StatusWarn:  color.New(color.FgYellow, color.Bold),
		StatusError: color.New(color.FgRed, color.Bold),
		HeaderKey:   color.New(color.FgYellow),
		Success:     color.New(color.FgGreen),
		Error:       color.New(color.FgRed),
	}

	if noColor || !isTerminal() {
		scheme.Method.DisableColor()
		scheme.URL.DisableColor()
		scheme.StatusOK.DisableColor()
		scheme.StatusWarn.DisableColor()
		scheme.StatusError.DisableColor()
		scheme.HeaderKey.DisableColor()
		scheme.Success.DisableColor()
		scheme.Error.DisableColor()
	}

	return scheme
}

// isTerminal reports whether stdout is attached to a terminal.
func isTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// statusColor picks the scheme color for an HTTP status code.
func (s *ColorScheme) statusColor(status int) *color.Color {
	switch {
	case status >= 200 && status < 300:
		return s.StatusOK
	case status >= 300 && status < 400:
		return s.StatusWarn
	default:
		return s.StatusError
	}
}
