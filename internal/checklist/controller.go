// Package checklist owns the item store and runs every mutation through the same
// pipeline: mutate the list, persist it, re-render it. Nothing else changes the list.
package checklist

import (
	"context"
	"errors"
	"fmt"

	"checklist-cli/internal/model"
	"checklist-cli/internal/mutate"
	"checklist-cli/internal/store"

	"go.uber.org/zap"
)

// Persister is the persistence adapter the controller saves to and hydrates from.
// store.Store implements it.
type Persister interface {
	LoadItems(ctx context.Context) ([]model.Item, bool, error)
	SaveItems(ctx context.Context, items []model.Item) error
}

// RenderFunc projects the current sequence onto the screen. It must rebuild its
// output from items alone.
type RenderFunc func(items []model.Item)

type HydrateStatus int

const (
	// HydrateEmpty: nothing was persisted yet; the list starts empty.
	HydrateEmpty HydrateStatus = iota
	// HydrateLoaded: the persisted list was loaded.
	HydrateLoaded
	// HydrateRecovered: the persisted list could not be read; the list starts empty.
	HydrateRecovered
	// HydrateKept: a reload hit a read error that says nothing about the data (a busy or
	// unopenable database); the current list was kept.
	HydrateKept
)

func (s HydrateStatus) String() string {
	switch s {
	case HydrateLoaded:
		return "loaded"
	case HydrateRecovered:
		return "recovered"
	case HydrateKept:
		return "kept"
	default:
		return "empty"
	}
}

type Controller struct {
	list   *mutate.List
	store  Persister
	render RenderFunc
	log    *zap.Logger

	// lastLoadErr is the read/parse error behind the most recent HydrateRecovered/HydrateKept.
	lastLoadErr error
}

// New returns a controller with an empty list. Call Boot before the first mutation.
// render and log may be nil.
func New(store Persister, render RenderFunc, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		list:   mutate.NewList(),
		store:  store,
		render: render,
		log:    log,
	}
}

// SetRenderer swaps the render target and immediately paints the current list on it.
func (c *Controller) SetRenderer(render RenderFunc) {
	c.render = render
	c.paint()
}

// Boot hydrates the list from the persisted slot and renders it once.
// Read or parse failures never abort startup: the list falls back to empty.
func (c *Controller) Boot(ctx context.Context) HydrateStatus {
	st := c.hydrate(ctx)
	c.paint()
	return st
}

// Reload re-reads the slot after another process wrote it. Unlike Boot it only drops the
// current list when the slot itself is malformed (store.ErrMalformed); any other read
// error keeps the list and reports HydrateKept.
func (c *Controller) Reload(ctx context.Context) HydrateStatus {
	c.log.Debug("reloading tasks")
	items, found, err := c.store.LoadItems(ctx)
	if err != nil && !errors.Is(err, store.ErrMalformed) {
		c.lastLoadErr = err
		c.log.Warn("could not reload saved tasks; keeping the current list", zap.Error(err))
		return HydrateKept
	}
	st := c.apply(items, found, err)
	c.paint()
	return st
}

// LastLoadError returns the error behind the most recent HydrateRecovered or HydrateKept.
func (c *Controller) LastLoadError() error { return c.lastLoadErr }

func (c *Controller) hydrate(ctx context.Context) HydrateStatus {
	items, found, err := c.store.LoadItems(ctx)
	return c.apply(items, found, err)
}

func (c *Controller) apply(items []model.Item, found bool, err error) HydrateStatus {
	c.lastLoadErr = nil
	if err != nil {
		c.lastLoadErr = err
		c.log.Warn("could not read saved tasks; starting with an empty list", zap.Error(err))
		c.list.Hydrate(nil)
		return HydrateRecovered
	}
	if !found {
		c.list.Hydrate(nil)
		return HydrateEmpty
	}
	c.list.Hydrate(items)
	c.log.Debug("hydrated tasks", zap.Int("count", c.list.Len()), zap.Int("nextId", c.list.NextID()))
	return HydrateLoaded
}

// Add creates an item from text. Empty text is rejected with mutate.ErrEmptyText before
// anything is saved or rendered.
func (c *Controller) Add(ctx context.Context, text string) (model.Item, error) {
	var created model.Item
	err := c.run(ctx, "add", func(l *mutate.List) (bool, error) {
		it, err := l.Add(text)
		if err != nil {
			return false, err
		}
		created = it
		return true, nil
	})
	if err != nil {
		return model.Item{}, err
	}
	return created, nil
}

// Toggle flips the completed flag of id. A missing id reports false and is not an error.
func (c *Controller) Toggle(ctx context.Context, id int) (bool, error) {
	var hit bool
	err := c.run(ctx, "toggle", func(l *mutate.List) (bool, error) {
		hit = l.Toggle(id)
		return hit, nil
	})
	return hit, err
}

// Remove deletes id. A missing id reports false and is not an error.
func (c *Controller) Remove(ctx context.Context, id int) (bool, error) {
	var hit bool
	err := c.run(ctx, "remove", func(l *mutate.List) (bool, error) {
		hit = l.Remove(id)
		return hit, nil
	})
	return hit, err
}

func (c *Controller) Snapshot() []model.Item { return c.list.Snapshot() }

func (c *Controller) Find(id int) (model.Item, bool) { return c.list.Find(id) }

func (c *Controller) NextID() int { return c.list.NextID() }

// run is the mutate → persist → render pipeline. A mutation error aborts before any
// side effect. A save error rolls the list back so memory matches what is on disk, and
// the rolled-back list is rendered before the error is returned.
func (c *Controller) run(ctx context.Context, op string, mutateFn func(*mutate.List) (bool, error)) error {
	prevItems, prevNext := c.list.Snapshot(), c.list.NextID()

	changed, err := mutateFn(c.list)
	if err != nil {
		c.log.Debug("mutation rejected", zap.String("op", op), zap.Error(err))
		return err
	}

	if err := c.store.SaveItems(ctx, c.list.Snapshot()); err != nil {
		c.list.Restore(prevItems, prevNext)
		c.paint()
		c.log.Error("save failed; mutation rolled back", zap.String("op", op), zap.Error(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	c.paint()
	c.log.Debug("mutation applied",
		zap.String("op", op),
		zap.Bool("changed", changed),
		zap.Int("count", c.list.Len()),
	)
	return nil
}

func (c *Controller) paint() {
	if c.render != nil {
		c.render(c.list.Snapshot())
	}
}

// IsValidation reports whether err is a user input problem (as opposed to a storage failure).
func IsValidation(err error) bool {
	return errors.Is(err, mutate.ErrEmptyText)
}
