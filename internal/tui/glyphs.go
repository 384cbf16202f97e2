package tui

import (
	"os"
	"strings"
	"sync"
)

// Terminal apps can't change the user's font, so we choose between Unicode and ASCII
// glyph sets for checkboxes and markers. ASCII helps on fonts that render some glyphs badly.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

// applyGlyphPreference applies the config value first and lets CHECKLIST_TUI_GLYPHS override it.
func applyGlyphPreference(configured string) {
	for _, v := range []string{configured, os.Getenv("CHECKLIST_TUI_GLYPHS")} {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "unicode", "utf8":
			setGlyphs(glyphSetUnicode)
		case "ascii":
			setGlyphs(glyphSetASCII)
		default:
			// Empty or unknown: keep current.
		}
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func glyphCheckbox(checked bool) string {
	if glyphs() == glyphSetASCII {
		if checked {
			return "[x]"
		}
		return "[ ]"
	}
	if checked {
		return "☑"
	}
	return "☐"
}

func glyphCursor() string {
	if glyphs() == glyphSetASCII {
		return ">"
	}
	return "›"
}

func glyphDelete() string {
	if glyphs() == glyphSetASCII {
		return "x"
	}
	return "✕"
}

func glyphHRule() string {
	if glyphs() == glyphSetASCII {
		return "-"
	}
	return "─"
}
