// Package tui is the interactive checklist: a text input, the rendered list and a help
// overlay, all driven by a checklist.Controller.
package tui

import (
	"context"

	"checklist-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type Options struct {
	Store  store.Store
	Logger *zap.Logger
	// Glyphs is the configured glyph set ("unicode" or "ascii"); CHECKLIST_TUI_GLYPHS wins over it.
	Glyphs string
}

func Run(ctx context.Context, opts Options) error {
	applyThemePreference()
	applyColorProfilePreference()
	applyGlyphPreference(opts.Glyphs)

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	watch, err := opts.Store.Watch(ctx)
	if err != nil {
		log.Warn("store watcher unavailable; polling for changes", zap.Error(err))
		watch = nil
	}

	m := newAppModel(ctx, opts.Store, log, watch)
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
