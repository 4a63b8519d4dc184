// Package controller owns the authoritative in-memory collection behind each
// screen. Two strategies exist: Remote for server-backed collections and
// Local for the client-only course catalog. Both keep the mirror store
// rewritten in full after every change.
package controller

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/openlms-dev/admin-console/internal/mirror"
	"github.com/openlms-dev/admin-console/internal/models"
	appErrors "github.com/openlms-dev/admin-console/pkg/errors"
)

// RemoteGateway is the slice of the gateway a server-backed controller
// drives. F is the validated form type for writes.
type RemoteGateway[T models.Entity, F any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, form F) error
	Update(ctx context.Context, id string, form F) error
	Delete(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id string, status models.AccountStatus) error
}

// Remote maintains the authoritative collection for one server-backed
// screen. Every successful mutation is followed by a full refresh so the
// collection never diverges from the backend's view.
type Remote[T models.Entity, F any] struct {
	gw    RemoteGateway[T, F]
	store mirror.Store
	key   string
	log   *zap.Logger

	mu       sync.Mutex
	items    []T
	inFlight bool
	epoch    int
}

// NewRemote builds a server-backed controller persisting under the given
// mirror key.
func NewRemote[T models.Entity, F any](gw RemoteGateway[T, F], store mirror.Store, key string, log *zap.Logger) *Remote[T, F] {
	if log == nil {
		log = zap.NewNop()
	}
	return &Remote[T, F]{gw: gw, store: store, key: key, log: log}
}

// Items returns a copy of the authoritative collection.
func (c *Remote[T, F]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Find returns the entity with the given id, if present.
func (c *Remote[T, F]) Find(id string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range c.items {
		if item.EntityID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Refresh replaces the collection from the backend. On failure it falls back
// to the mirrored snapshot (or empty when none exists) and still returns the
// gateway error so the screen can surface it. Safe to call repeatedly.
func (c *Remote[T, F]) Refresh(ctx context.Context) error {
	c.mu.Lock()
	epoch := c.epoch
	c.mu.Unlock()

	items, err := c.gw.List(ctx)
	if err != nil {
		fallback := []T{}
		if loadErr := c.store.Load(ctx, c.key, &fallback); loadErr != nil {
			fallback = []T{}
		}
		c.apply(epoch, fallback)
		return err
	}

	if items == nil {
		items = []T{}
	}
	if c.apply(epoch, items) {
		if saveErr := c.store.Save(ctx, c.key, items); saveErr != nil {
			c.log.Warn("mirror_save_failed", zap.String("key", c.key), zap.Error(saveErr))
		}
	}
	return nil
}

// apply installs a fetched collection unless the screen was reset while the
// request was in flight; stale responses are dropped, not applied.
func (c *Remote[T, F]) apply(epoch int, items []T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if epoch != c.epoch {
		return false
	}
	c.items = items
	return true
}

// Reset drops the collection, e.g. when the user navigates off the screen.
// Any response still in flight for the old view is discarded.
func (c *Remote[T, F]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch++
	c.items = nil
}

// Create submits an already-validated form. On success the collection is
// re-fetched; on failure it is left untouched and the error surfaced.
func (c *Remote[T, F]) Create(ctx context.Context, form F) error {
	return c.mutate(ctx, func() error { return c.gw.Create(ctx, form) })
}

// Update submits an already-validated form for an existing entity.
func (c *Remote[T, F]) Update(ctx context.Context, id string, form F) error {
	return c.mutate(ctx, func() error { return c.gw.Update(ctx, id, form) })
}

// Remove deletes an entity after the confirm callback answers yes. Declining
// makes zero gateway calls and is not an error; the returned bool says
// whether a deletion happened.
func (c *Remote[T, F]) Remove(ctx context.Context, id string, confirm func() bool) (bool, error) {
	if confirm == nil || !confirm() {
		return false, nil
	}
	if err := c.mutate(ctx, func() error { return c.gw.Delete(ctx, id) }); err != nil {
		return false, err
	}
	return true, nil
}

// SetStatus moves an account to exactly one of the two enumerated states.
func (c *Remote[T, F]) SetStatus(ctx context.Context, id string, status models.AccountStatus) error {
	if !status.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, "unknown account status")
	}
	return c.mutate(ctx, func() error { return c.gw.SetStatus(ctx, id, status) })
}

// mutate serialises mutations per screen: while one request is outstanding,
// further mutations are rejected rather than queued, the moral equivalent of
// disabling the submit button.
func (c *Remote[T, F]) mutate(ctx context.Context, op func() error) error {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return appErrors.ErrBusy
	}
	c.inFlight = true
	c.mu.Unlock()

	err := op()

	c.mu.Lock()
	c.inFlight = false
	c.mu.Unlock()

	if err != nil {
		return err
	}
	return c.Refresh(ctx)
}
