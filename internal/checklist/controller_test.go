package checklist

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"checklist-cli/internal/model"
	"checklist-cli/internal/mutate"
	"checklist-cli/internal/store"

	"github.com/stretchr/testify/require"
)

// memPersister is an in-memory Persister with error injection.
type memPersister struct {
	items []model.Item
	found bool

	LoadErr error
	SaveErr error

	saves int
}

func (p *memPersister) LoadItems(ctx context.Context) ([]model.Item, bool, error) {
	if p.LoadErr != nil {
		return nil, true, p.LoadErr
	}
	if !p.found {
		return nil, false, nil
	}
	return append([]model.Item(nil), p.items...), true, nil
}

func (p *memPersister) SaveItems(ctx context.Context, items []model.Item) error {
	if p.SaveErr != nil {
		return p.SaveErr
	}
	p.saves++
	p.items = append([]model.Item(nil), items...)
	p.found = true
	return nil
}

// recorder captures every render call.
type recorder struct {
	frames [][]model.Item
}

func (r *recorder) render(items []model.Item) {
	r.frames = append(r.frames, items)
}

func (r *recorder) last() []model.Item {
	if len(r.frames) == 0 {
		return nil
	}
	return r.frames[len(r.frames)-1]
}

func newTestController(p *memPersister) (*Controller, *recorder) {
	rec := &recorder{}
	c := New(p, rec.render, nil)
	return c, rec
}

func TestBoot_AbsentSlot(t *testing.T) {
	c, rec := newTestController(&memPersister{})

	st := c.Boot(context.Background())

	require.Equal(t, HydrateEmpty, st)
	require.Empty(t, c.Snapshot())
	require.Equal(t, 1, c.NextID())
	require.Len(t, rec.frames, 1, "boot renders exactly once")
}

func TestBoot_LoadsAndRecomputesNextID(t *testing.T) {
	p := &memPersister{found: true, items: []model.Item{{ID: 4, Text: "a"}, {ID: 2, Text: "b", Completed: true}}}
	c, rec := newTestController(p)

	st := c.Boot(context.Background())

	require.Equal(t, HydrateLoaded, st)
	require.Equal(t, p.items, c.Snapshot())
	require.Equal(t, 5, c.NextID())
	require.Equal(t, p.items, rec.last())
}

func TestBoot_ReadFailureFallsBackToEmpty(t *testing.T) {
	loadErr := errors.New("disk on fire")
	c, rec := newTestController(&memPersister{LoadErr: loadErr})

	st := c.Boot(context.Background())

	require.Equal(t, HydrateRecovered, st)
	require.ErrorIs(t, c.LastLoadError(), loadErr)
	require.Empty(t, c.Snapshot())
	require.Equal(t, 1, c.NextID())
	require.Len(t, rec.frames, 1)
}

func TestAdd_BuyMilk_PersistsAndRenders(t *testing.T) {
	p := &memPersister{}
	c, rec := newTestController(p)
	c.Boot(context.Background())

	it, err := c.Add(context.Background(), "Buy milk")
	require.NoError(t, err)

	want := []model.Item{{ID: 1, Text: "Buy milk", Completed: false}}
	require.Equal(t, want[0], it)
	require.Equal(t, want, c.Snapshot())
	require.Equal(t, want, p.items, "persisted slot equals the in-memory list")
	require.Equal(t, want, rec.last(), "rendered rows equal the in-memory list")
}

func TestAdd_EmptyTextHasNoSideEffects(t *testing.T) {
	for _, text := range []string{"", "   "} {
		p := &memPersister{}
		c, rec := newTestController(p)
		c.Boot(context.Background())
		framesBefore := len(rec.frames)

		_, err := c.Add(context.Background(), text)

		require.ErrorIs(t, err, mutate.ErrEmptyText)
		require.True(t, IsValidation(err))
		require.Empty(t, c.Snapshot())
		require.Zero(t, p.saves, "rejected add must not persist")
		require.Len(t, rec.frames, framesBefore, "rejected add must not re-render")
	}
}

func TestToggle_TwiceRestoresFlag(t *testing.T) {
	p := &memPersister{found: true, items: []model.Item{{ID: 1, Text: "a"}}}
	c, _ := newTestController(p)
	c.Boot(context.Background())

	hit, err := c.Toggle(context.Background(), 1)
	require.NoError(t, err)
	require.True(t, hit)
	require.True(t, p.items[0].Completed)

	hit, err = c.Toggle(context.Background(), 1)
	require.NoError(t, err)
	require.True(t, hit)
	require.False(t, p.items[0].Completed)
}

func TestToggle_MissStillPersistsAndRenders(t *testing.T) {
	p := &memPersister{found: true, items: []model.Item{{ID: 1, Text: "a"}}}
	c, rec := newTestController(p)
	c.Boot(context.Background())
	framesBefore := len(rec.frames)

	hit, err := c.Toggle(context.Background(), 99)

	require.NoError(t, err)
	require.False(t, hit)
	require.Equal(t, 1, p.saves)
	require.Len(t, rec.frames, framesBefore+1)
	require.Equal(t, []model.Item{{ID: 1, Text: "a"}}, p.items)
}

func TestRemove_MiddleKeepsOrderAndNextID(t *testing.T) {
	p := &memPersister{}
	c, rec := newTestController(p)
	ctx := context.Background()
	c.Boot(ctx)
	for _, s := range []string{"a", "b", "c"} {
		_, err := c.Add(ctx, s)
		require.NoError(t, err)
	}

	hit, err := c.Remove(ctx, 2)
	require.NoError(t, err)
	require.True(t, hit)

	want := []model.Item{{ID: 1, Text: "a"}, {ID: 3, Text: "c"}}
	require.Equal(t, want, c.Snapshot())
	require.Equal(t, want, p.items)
	require.Equal(t, want, rec.last())
	require.Equal(t, 4, c.NextID())

	hit, err = c.Remove(ctx, 2)
	require.NoError(t, err)
	require.False(t, hit)
	require.Equal(t, want, c.Snapshot())
}

func TestSaveFailure_RollsBack(t *testing.T) {
	p := &memPersister{found: true, items: []model.Item{{ID: 1, Text: "a"}}}
	c, rec := newTestController(p)
	ctx := context.Background()
	c.Boot(ctx)

	saveErr := errors.New("read-only filesystem")
	p.SaveErr = saveErr

	_, err := c.Add(ctx, "b")
	require.ErrorIs(t, err, saveErr)
	require.False(t, IsValidation(err))
	require.Equal(t, []model.Item{{ID: 1, Text: "a"}}, c.Snapshot())
	require.Equal(t, 2, c.NextID(), "nextId is rolled back with the list")
	require.Equal(t, c.Snapshot(), rec.last(), "view re-rendered from the rolled back list")

	_, err = c.Toggle(ctx, 1)
	require.ErrorIs(t, err, saveErr)
	it, _ := c.Find(1)
	require.False(t, it.Completed)

	_, err = c.Remove(ctx, 1)
	require.ErrorIs(t, err, saveErr)
	require.Len(t, c.Snapshot(), 1)
}

func TestSetRenderer_PaintsImmediately(t *testing.T) {
	p := &memPersister{found: true, items: []model.Item{{ID: 1, Text: "a"}}}
	c := New(p, nil, nil)
	c.Boot(context.Background())

	rec := &recorder{}
	c.SetRenderer(rec.render)
	require.Equal(t, []model.Item{{ID: 1, Text: "a"}}, rec.last())
}

func TestController_WithSQLiteStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	c1 := New(store.New(dir), nil, nil)
	require.Equal(t, HydrateEmpty, c1.Boot(ctx))
	_, err := c1.Add(ctx, "Buy milk")
	require.NoError(t, err)
	_, err = c1.Add(ctx, "Walk dog")
	require.NoError(t, err)
	_, err = c1.Toggle(ctx, 2)
	require.NoError(t, err)

	// A fresh process sees exactly what the first one left behind.
	c2 := New(store.New(dir), nil, nil)
	require.Equal(t, HydrateLoaded, c2.Boot(ctx))
	require.Equal(t, c1.Snapshot(), c2.Snapshot())
	require.Equal(t, 3, c2.NextID())
}

func TestController_MalformedSlotRecovers(t *testing.T) {
	ctx := context.Background()
	s := store.New(t.TempDir())
	require.NoError(t, s.PutSlot(ctx, store.TasksKey, "not json"))

	c := New(s, nil, nil)
	require.Equal(t, HydrateRecovered, c.Boot(ctx))
	require.ErrorIs(t, c.LastLoadError(), store.ErrMalformed)

	// The next mutation overwrites the bad slot.
	_, err := c.Add(ctx, "fresh start")
	require.NoError(t, err)
	items, found, err := s.LoadItems(ctx)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []model.Item{{ID: 1, Text: "fresh start"}}, items)
}

func TestController_MaxIntIDNeverDuplicates(t *testing.T) {
	ctx := context.Background()
	s := store.New(t.TempDir())
	require.NoError(t, s.PutSlot(ctx, store.TasksKey,
		fmt.Sprintf(`[{"id":1,"text":"a","completed":false},{"id":%d,"text":"b","completed":false}]`, math.MaxInt)))

	c := New(s, nil, nil)
	require.Equal(t, HydrateRecovered, c.Boot(ctx))

	it, err := c.Add(ctx, "new")
	require.NoError(t, err)
	require.Equal(t, 1, it.ID)

	// What was saved loads back cleanly.
	c2 := New(store.New(s.Dir), nil, nil)
	require.Equal(t, HydrateLoaded, c2.Boot(ctx))
	require.Equal(t, []model.Item{{ID: 1, Text: "new"}}, c2.Snapshot())
}

func TestController_AddRefusedWhenIDsExhausted(t *testing.T) {
	ctx := context.Background()
	items := []model.Item{{ID: math.MaxInt - 1, Text: "last"}}
	p := &memPersister{found: true, items: items}
	c, rec := newTestController(p)
	c.Boot(ctx)
	framesBefore := len(rec.frames)

	_, err := c.Add(ctx, "one more")

	require.ErrorIs(t, err, mutate.ErrIDsExhausted)
	require.False(t, IsValidation(err))
	require.Zero(t, p.saves)
	require.Len(t, rec.frames, framesBefore)
	require.Equal(t, items, c.Snapshot())
}

func TestReload(t *testing.T) {
	busy := errors.New("database is locked")
	tests := []struct {
		name      string
		loadErr   error
		want      HydrateStatus
		wantItems []model.Item
		repaint   bool
	}{
		{
			name:      "transient read error keeps the list",
			loadErr:   fmt.Errorf("load tasks: %w", busy),
			want:      HydrateKept,
			wantItems: []model.Item{{ID: 1, Text: "a"}, {ID: 2, Text: "b"}},
		},
		{
			name:      "malformed slot falls back to empty",
			loadErr:   fmt.Errorf("%w: duplicate id 1", store.ErrMalformed),
			want:      HydrateRecovered,
			wantItems: []model.Item{},
			repaint:   true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			p := &memPersister{found: true, items: []model.Item{{ID: 1, Text: "a"}, {ID: 2, Text: "b"}}}
			c, rec := newTestController(p)
			require.Equal(t, HydrateLoaded, c.Boot(ctx))
			framesBefore := len(rec.frames)

			p.LoadErr = tt.loadErr
			st := c.Reload(ctx)

			require.Equal(t, tt.want, st)
			require.ErrorIs(t, c.LastLoadError(), tt.loadErr)
			require.Equal(t, tt.wantItems, c.Snapshot())
			if tt.repaint {
				require.Len(t, rec.frames, framesBefore+1)
				require.Equal(t, 1, c.NextID())
			} else {
				require.Len(t, rec.frames, framesBefore)
				require.Equal(t, 3, c.NextID())
			}
		})
	}
}

func TestReload_PicksUpExternalWrite(t *testing.T) {
	ctx := context.Background()
	p := &memPersister{found: true, items: []model.Item{{ID: 1, Text: "a"}}}
	c, rec := newTestController(p)
	c.Boot(ctx)

	p.items = []model.Item{{ID: 1, Text: "a"}, {ID: 5, Text: "theirs"}}
	require.Equal(t, HydrateLoaded, c.Reload(ctx))
	require.Equal(t, p.items, c.Snapshot())
	require.Equal(t, p.items, rec.last())
	require.Equal(t, 6, c.NextID())
	require.NoError(t, c.LastLoadError())
}
