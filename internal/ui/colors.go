package ui

import (
	"os"

	"github.com/mattn/go-isatty"
)

// Color codes for terminal output
const (
	ColorReset = "\033[0m"
	ColorBold  = "\033[1m"

	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorCyan   = "\033[36m"
)

// colorEnabled is resolved once at startup; piped output stays plain.
var colorEnabled = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

// Colorize wraps text with the given color code when stdout is a terminal.
func Colorize(text, color string) string {
	if !colorEnabled {
		return text
	}
	return color + text + ColorReset
}

// Bold makes text bold.
func Bold(text string) string {
	return Colorize(text, ColorBold)
}

// Semantic color functions for common use cases

func SuccessText(text string) string {
	return Colorize(text, ColorGreen)
}

func ErrorText(text string) string {
	return Colorize(text, ColorRed)
}

func WarningText(text string) string {
	return Colorize(text, ColorYellow)
}

func InfoText(text string) string {
	return Colorize(text, ColorCyan)
}
