package mutate

import (
	"math"
	"strings"

	"checklist-cli/internal/model"
)

// List is the in-memory item store: items in insertion order plus the next id to hand out.
//
// Invariants: ids are unique and nextID is strictly greater than every id present.
// List does no persistence or rendering; callers (see internal/checklist) are responsible
// for saving and re-rendering after each mutation.
type List struct {
	items  []model.Item
	nextID int
}

func NewList() *List {
	return &List{items: []model.Item{}, nextID: 1}
}

// Hydrate replaces the whole sequence and recomputes nextID as max(id)+1 (1 when empty).
// nextID saturates at math.MaxInt instead of wrapping; Add then refuses new items.
func (l *List) Hydrate(items []model.Item) {
	l.items = append(make([]model.Item, 0, len(items)), items...)
	l.nextID = 1
	for _, it := range l.items {
		if it.ID >= l.nextID {
			l.nextID = it.ID
			if l.nextID < math.MaxInt {
				l.nextID++
			}
		}
	}
}

// Add appends a new item with the trimmed text. Empty text is rejected with ErrEmptyText
// and leaves the list untouched. math.MaxInt is never handed out, so nextID always stays
// above every id.
func (l *List) Add(text string) (model.Item, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Item{}, ErrEmptyText
	}
	if l.nextID >= math.MaxInt {
		return model.Item{}, ErrIDsExhausted
	}
	it := model.Item{ID: l.nextID, Text: text}
	l.nextID++
	l.items = append(l.items, it)
	return it, nil
}

// Toggle flips Completed on the item with the given id. A miss is a no-op and reports false.
func (l *List) Toggle(id int) bool {
	i := l.indexOf(id)
	if i < 0 {
		return false
	}
	l.items[i].Completed = !l.items[i].Completed
	return true
}

// Remove deletes the item with the given id, keeping the relative order of the rest.
// nextID is left alone.
func (l *List) Remove(id int) bool {
	i := l.indexOf(id)
	if i < 0 {
		return false
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	return true
}

func (l *List) Find(id int) (model.Item, bool) {
	i := l.indexOf(id)
	if i < 0 {
		return model.Item{}, false
	}
	return l.items[i], true
}

// Snapshot returns a copy of the current sequence; never nil.
func (l *List) Snapshot() []model.Item {
	return append(make([]model.Item, 0, len(l.items)), l.items...)
}

func (l *List) NextID() int { return l.nextID }

func (l *List) Len() int { return len(l.items) }

// Restore puts back a state captured with Snapshot/NextID. Used to roll back a mutation
// whose save failed.
func (l *List) Restore(items []model.Item, nextID int) {
	l.items = append(make([]model.Item, 0, len(items)), items...)
	l.nextID = nextID
}

func (l *List) indexOf(id int) int {
	for i := range l.items {
		if l.items[i].ID == id {
			return i
		}
	}
	return -1
}
