package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// fitWidth pads or cuts s (ANSI-aware) to exactly width columns. Cut lines end with "…".
func fitWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	// Fast path: huge raw strings are certainly wider than the pane; cut before measuring.
	if len(s) > 8192 {
		s = xansi.Cut(s, 0, width)
	}
	w := xansi.StringWidth(s)
	switch {
	case w > width && width == 1:
		return xansi.Cut(s, 0, 1)
	case w > width:
		s = xansi.Cut(s, 0, width-1) + "…"
		w = xansi.StringWidth(s)
	}
	if w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

// normalizePane forces s to be exactly width columns wide and height lines tall.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}
	for i := range lines {
		lines[i] = fitWidth(lines[i], width)
	}
	return strings.Join(lines, "\n")
}
