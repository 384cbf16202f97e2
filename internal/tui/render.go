package tui

import (
	"context"
	"strings"

	"checklist-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// rowMutator is the part of checklist.Controller the rows call back into.
type rowMutator interface {
	Toggle(ctx context.Context, id int) (bool, error)
	Remove(ctx context.Context, id int) (bool, error)
}

// listRow is one rendered item plus its two triggers, both bound to the item's id.
type listRow struct {
	item   model.Item
	toggle func() error
	remove func() error
}

// listView is the visual projection of the item sequence. It never holds state of its own
// beyond the cursor: Render throws away every row and rebuilds from the items it is given.
type listView struct {
	ctx  context.Context
	mut  rowMutator
	rows []listRow

	cursor int
	// selectedID keeps the cursor on the same item across re-renders.
	selectedID int
	offset     int
}

func newListView(ctx context.Context, mut rowMutator) *listView {
	return &listView{ctx: ctx, mut: mut}
}

// Render clears the rows and rebuilds them from items. It is the controller's render target.
func (v *listView) Render(items []model.Item) {
	rows := make([]listRow, 0, len(items))
	for _, it := range items {
		id := it.ID
		rows = append(rows, listRow{
			item: it,
			toggle: func() error {
				_, err := v.mut.Toggle(v.ctx, id)
				return err
			},
			remove: func() error {
				_, err := v.mut.Remove(v.ctx, id)
				return err
			},
		})
	}
	v.rows = rows

	v.cursor = v.indexOf(v.selectedID, v.cursor)
	v.syncSelected()
}

// indexOf returns the row index for id, or fallback clamped to the row range.
func (v *listView) indexOf(id int, fallback int) int {
	for i := range v.rows {
		if v.rows[i].item.ID == id {
			return i
		}
	}
	if fallback >= len(v.rows) {
		fallback = len(v.rows) - 1
	}
	if fallback < 0 {
		fallback = 0
	}
	return fallback
}

func (v *listView) syncSelected() {
	if v.cursor >= 0 && v.cursor < len(v.rows) {
		v.selectedID = v.rows[v.cursor].item.ID
		return
	}
	v.selectedID = 0
}

func (v *listView) Len() int { return len(v.rows) }

func (v *listView) MoveUp() {
	if v.cursor > 0 {
		v.cursor--
		v.syncSelected()
	}
}

func (v *listView) MoveDown() {
	if v.cursor < len(v.rows)-1 {
		v.cursor++
		v.syncSelected()
	}
}

// Select puts the cursor on id if it is present.
func (v *listView) Select(id int) {
	for i := range v.rows {
		if v.rows[i].item.ID == id {
			v.cursor = i
			v.selectedID = id
			return
		}
	}
}

func (v *listView) Selected() (listRow, bool) {
	if v.cursor < 0 || v.cursor >= len(v.rows) {
		return listRow{}, false
	}
	return v.rows[v.cursor], true
}

func (v *listView) SelectedID() int { return v.selectedID }

// View draws the rows into a width x height pane.
func (v *listView) View(width, height int, focused bool) string {
	if height < 1 {
		height = 1
	}
	if len(v.rows) == 0 {
		return normalizePane(styleMuted().Render("No tasks yet."), width, height)
	}

	// Keep the cursor inside the visible window.
	if v.cursor < v.offset {
		v.offset = v.cursor
	}
	if v.cursor >= v.offset+height {
		v.offset = v.cursor - height + 1
	}
	if v.offset > len(v.rows)-1 {
		v.offset = 0
	}

	end := v.offset + height
	if end > len(v.rows) {
		end = len(v.rows)
	}
	lines := make([]string, 0, end-v.offset)
	for i := v.offset; i < end; i++ {
		lines = append(lines, v.renderRow(v.rows[i], width, focused && i == v.cursor, i == v.cursor))
	}
	return normalizePane(strings.Join(lines, "\n"), width, height)
}

func (v *listView) renderRow(r listRow, width int, active bool, isCursor bool) string {
	cursor := " "
	if isCursor {
		cursor = glyphCursor()
	}
	left := cursor + " " + glyphCheckbox(r.item.Completed) + " "
	del := " " + glyphDelete()

	textW := width - xansi.StringWidth(left) - xansi.StringWidth(del)
	if textW < 1 {
		textW = 1
	}
	label := fitWidth(r.item.Text, textW)

	if active {
		return styleSelected().Render(left + label + del)
	}
	if r.item.Completed {
		label = styleDone().Render(label)
	}
	return left + label + lipgloss.NewStyle().Foreground(colorMuted).Render(del)
}
