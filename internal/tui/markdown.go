package tui

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
)

var (
	mdRendererMu sync.Mutex
	// Cache renderers by wrap width + style. WithAutoStyle can trigger terminal
	// background queries that block on some terminals, so we pick the style ourselves.
	mdRenderers = map[string]*glamour.TermRenderer{}
)

// renderMarkdown renders md for the help overlay. On any renderer error the raw text is returned.
func renderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	style := markdownStyle()
	key := style + ":" + strconv.Itoa(width)

	mdRendererMu.Lock()
	r := mdRenderers[key]
	if r == nil {
		cfg := markdownStyleConfig(style)
		zero := uint(0)
		cfg.Document.Margin = &zero
		rr, err := glamour.NewTermRenderer(
			glamour.WithStyles(cfg),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			mdRendererMu.Unlock()
			return md
		}
		mdRenderers[key] = rr
		r = rr
	}
	mdRendererMu.Unlock()

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func markdownStyleConfig(styleName string) ansi.StyleConfig {
	cfg := styles.DarkStyleConfig
	if styleName == "light" {
		cfg = styles.LightStyleConfig
	}

	// Headings and text follow the surface palette; links use the accent.
	text := mdColor(colorSurfaceFg, styleName)
	cfg.Text.Color = text
	cfg.Heading.Color = text
	cfg.H1.Color = text
	cfg.H2.Color = text
	cfg.H3.Color = text
	cfg.Code.Color = text
	cfg.Strong.Color = nil
	cfg.Emph.Color = nil

	link := mdColor(colorAccent, styleName)
	cfg.Link.Color = link
	cfg.LinkText.Color = link
	return cfg
}

// markdownStyle picks "light" or "dark".
//
// Priority: CHECKLIST_TUI_MD_STYLE, then CHECKLIST_TUI_THEME, then Lip Gloss's background
// detection (which applyThemePreference already seeded from COLORFGBG).
func markdownStyle() string {
	for _, env := range []string{"CHECKLIST_TUI_MD_STYLE", "CHECKLIST_TUI_THEME"} {
		switch strings.ToLower(strings.TrimSpace(os.Getenv(env))) {
		case "light":
			return "light"
		case "dark":
			return "dark"
		}
	}
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}

func mdColor(c lipgloss.AdaptiveColor, styleName string) *string {
	v := c.Dark
	if styleName == "light" {
		v = c.Light
	}
	return &v
}
