package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// renderInputLine draws a text input as a single visual line on the input background.
func renderInputLine(bodyW int, inputView string, focused bool) string {
	if bodyW < 10 {
		bodyW = 10
	}

	// A newline in the view (or cursor styling overflow) would wrap and look like the
	// input grew a line while typing.
	inputView = strings.ReplaceAll(inputView, "\n", " ")
	inputView = strings.ReplaceAll(inputView, "\r", " ")

	bg := colorInputBg
	if !focused {
		bg = colorControlBg
	}
	line := lipgloss.PlaceHorizontal(
		bodyW,
		lipgloss.Left,
		" "+inputView+" ",
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(bg),
	)
	if xansi.StringWidth(line) > bodyW {
		// Never exceed the body width; terminate ANSI styling to prevent bleed.
		line = xansi.Cut(line, 0, bodyW) + "\x1b[0m"
	}
	return line
}
