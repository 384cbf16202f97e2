package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"checklist-cli/internal/checklist"
	"checklist-cli/internal/docs"
	"checklist-cli/internal/model"
	"checklist-cli/internal/store"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

type focusArea int

const (
	focusInput focusArea = iota
	focusList
)

func (f focusArea) String() string {
	if f == focusList {
		return "list"
	}
	return "input"
}

func parseFocus(s string) focusArea {
	if strings.TrimSpace(s) == "list" {
		return focusList
	}
	return focusInput
}

type (
	// externalChangeMsg: the watcher saw a write to the database file.
	externalChangeMsg struct{}
	// watchClosedMsg: the watcher stopped; fall back to polling.
	watchClosedMsg struct{}
	reloadTickMsg  struct{}
)

const reloadPollInterval = 750 * time.Millisecond

type appModel struct {
	ctx   context.Context
	ctrl  *checklist.Controller
	store store.Store
	log   *zap.Logger

	view  *listView
	input textinput.Model
	keys  keyMap
	help  help.Model

	width  int
	height int

	focus    focusArea
	alert    string
	showHelp bool

	minibufferText string

	watch     <-chan struct{}
	lastStamp store.SlotStamp
}

// newAppModel boots the controller against s and wires the list view as its render target.
// watch may be nil, in which case external changes are picked up by polling.
func newAppModel(ctx context.Context, s store.Store, log *zap.Logger, watch <-chan struct{}) appModel {
	if log == nil {
		log = zap.NewNop()
	}
	m := appModel{
		ctx:   ctx,
		store: s,
		log:   log,
		keys:  defaultKeyMap(),
		help:  help.New(),
		watch: watch,
	}

	m.ctrl = checklist.New(s, nil, log)
	m.view = newListView(ctx, m.ctrl)
	m.ctrl.SetRenderer(m.view.Render)

	if st := m.ctrl.Boot(ctx); st == checklist.HydrateRecovered {
		m.minibufferText = "Saved tasks could not be read; starting with an empty list."
	}
	m.lastStamp, _ = s.Stamp(ctx, store.TasksKey)

	m.input = textinput.New()
	m.input.Placeholder = "What needs to be done?"
	m.input.Prompt = "+ "
	m.input.CharLimit = 500
	m.input.Width = 40

	m.focus = focusInput
	if st, err := s.LoadTUIState(); err == nil && st != nil {
		m.focus = parseFocus(st.Focus)
		if st.SelectedItemID > 0 {
			m.view.Select(st.SelectedItemID)
		}
	}
	if m.focus == focusList && m.view.Len() == 0 {
		m.focus = focusInput
	}
	if m.focus == focusInput {
		m.input.Focus()
	}
	return m
}

func (m appModel) Init() tea.Cmd {
	if m.watch != nil {
		return waitForChange(m.watch)
	}
	return tickReload()
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return watchClosedMsg{}
		}
		return externalChangeMsg{}
	}
}

func tickReload() tea.Cmd {
	return tea.Tick(reloadPollInterval, func(time.Time) tea.Msg { return reloadTickMsg{} })
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-6, 10)
		m.help.Width = msg.Width
		return m, nil

	case externalChangeMsg:
		m.reloadIfExternal()
		return m, waitForChange(m.watch)

	case watchClosedMsg:
		m.watch = nil
		if m.ctx.Err() != nil {
			return m, nil
		}
		m.log.Warn("store watcher stopped; polling for changes")
		return m, tickReload()

	case reloadTickMsg:
		m.reloadIfExternal()
		return m, tickReload()

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	if m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, m.quit()
	}

	// The alert blocks everything else until dismissed.
	if m.alert != "" {
		switch msg.String() {
		case "enter", "esc":
			m.alert = ""
		}
		return m, nil
	}

	if m.showHelp {
		switch msg.String() {
		case "?", "esc", "q", "enter":
			m.showHelp = false
		}
		return m, nil
	}

	if m.focus == focusInput {
		return m.updateInputKey(msg)
	}
	return m.updateListKey(msg)
}

func (m appModel) updateInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Add):
		m.minibufferText = ""
		_, err := m.ctrl.Add(m.ctx, m.input.Value())
		switch {
		case checklist.IsValidation(err):
			m.alert = emptyTaskAlert
		case err != nil:
			m.minibufferText = "Add failed: " + err.Error()
		default:
			m.input.SetValue("")
			m.syncStamp()
		}
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		m.input.SetValue("")
		return m, nil

	case key.Matches(msg, m.keys.Focus):
		m.setFocus(focusList)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) updateListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.Focus), key.Matches(msg, m.keys.Edit):
		m.setFocus(focusInput)
	case key.Matches(msg, m.keys.Up):
		m.view.MoveUp()
	case key.Matches(msg, m.keys.Down):
		m.view.MoveDown()
	case key.Matches(msg, m.keys.Toggle):
		if r, ok := m.view.Selected(); ok {
			m.afterMutation(r.toggle())
		}
	case key.Matches(msg, m.keys.Delete):
		if r, ok := m.view.Selected(); ok {
			m.afterMutation(r.remove())
		}
	}
	return m, nil
}

func (m *appModel) afterMutation(err error) {
	if err != nil {
		m.minibufferText = "Save failed: " + err.Error()
		return
	}
	m.minibufferText = ""
	m.syncStamp()
}

func (m *appModel) setFocus(f focusArea) {
	m.focus = f
	if f == focusInput {
		m.input.Focus()
		return
	}
	m.input.Blur()
}

// syncStamp records our own write so the watcher doesn't reload it.
func (m *appModel) syncStamp() {
	if st, err := m.store.Stamp(m.ctx, store.TasksKey); err == nil {
		m.lastStamp = st
	}
}

// reloadIfExternal reloads the list when another process wrote the slot since we last looked.
func (m *appModel) reloadIfExternal() {
	st, err := m.store.Stamp(m.ctx, store.TasksKey)
	if err != nil {
		m.log.Debug("stamp check failed", zap.Error(err))
		return
	}
	if st == m.lastStamp {
		return
	}
	// No slot (e.g. the database file was removed): keep the list, the next save recreates it.
	if st.IsZero() {
		m.lastStamp = st
		return
	}
	prev := m.lastStamp
	m.lastStamp = st
	if st.WriterID == m.store.WriterID {
		return
	}
	m.log.Debug("external change detected", zap.String("writer", st.WriterID))
	switch m.ctrl.Reload(m.ctx) {
	case checklist.HydrateRecovered:
		m.minibufferText = "Saved tasks could not be read; starting with an empty list."
	case checklist.HydrateKept:
		// Retry on the next notification or tick.
		m.lastStamp = prev
		m.minibufferText = "Could not reload tasks: " + m.ctrl.LastLoadError().Error()
	}
}

func (m appModel) quit() tea.Cmd {
	st := &store.TUIState{
		SelectedItemID: m.view.SelectedID(),
		Focus:          m.focus.String(),
	}
	if err := m.store.SaveTUIState(st); err != nil {
		m.log.Warn("could not save tui state", zap.Error(err))
	}
	return tea.Quit
}

func summary(items []model.Item) string {
	done := 0
	for _, it := range items {
		if it.Completed {
			done++
		}
	}
	return fmt.Sprintf("%d of %d done", done, len(items))
}

func (m appModel) View() string {
	w := m.width
	if w <= 0 {
		w = 80
	}
	h := m.height
	if h <= 0 {
		h = 24
	}

	if m.alert != "" {
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, renderAlertModal(w, m.alert),
			lipgloss.WithWhitespaceChars(" "))
	}
	if m.showHelp {
		body := "No help available."
		if md, ok := docs.Get("keys"); ok {
			body = renderMarkdown(md, modalBodyWidth(w))
		}
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, renderModalBox(w, "Help", body),
			lipgloss.WithWhitespaceChars(" "))
	}

	header := lipgloss.NewStyle().Bold(true).Render("Checklist")
	counts := styleMuted().Render(" " + summary(m.ctrl.Snapshot()))
	inputLine := renderInputLine(w, m.input.View(), m.focus == focusInput)
	rule := styleMuted().Render(strings.Repeat(glyphHRule(), w))

	footer := m.help.View(m.keys)
	if m.minibufferText != "" {
		footer = styleError().Render(m.minibufferText)
	}

	// header, spacer, input, rule, footer
	listH := h - 5
	if listH < 1 {
		listH = 1
	}
	list := m.view.View(w, listH, m.focus == focusList)

	return strings.Join([]string{
		header + counts,
		"",
		inputLine,
		rule,
		list,
		fitWidth(footer, w),
	}, "\n")
}
