package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const emptyTaskAlert = "Please enter a task."

func modalBodyWidth(width int) int {
	w := width - 12
	if w > 60 {
		w = 60
	}
	if w < 20 {
		w = 20
	}
	return w
}

// renderModalBox draws a titled box on the surface background. No border: nested borders
// inside a background-colored box leave artifacts on some terminals.
func renderModalBox(width int, title string, content string) string {
	bodyW := modalBodyWidth(width)
	titleLine := lipgloss.NewStyle().Bold(true).Render(title)
	return lipgloss.NewStyle().
		Width(bodyW+4).
		Padding(1, 2).
		Foreground(colorSurfaceFg).
		Background(colorSurfaceBg).
		Render(titleLine + "\n\n" + content)
}

// renderAlertModal is a blocking message with a single OK button.
func renderAlertModal(width int, message string) string {
	bodyW := modalBodyWidth(width)
	ok := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true).
		Render("OK")
	help := styleMuted().Width(bodyW).Render("enter/esc: dismiss")

	content := strings.Join([]string{
		lipgloss.NewStyle().Width(bodyW).Render(message),
		"",
		ok,
		"",
		help,
	}, "\n")
	return renderModalBox(width, "Checklist", content)
}
