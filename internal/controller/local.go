package controller

import (
	"context"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/openlms-dev/admin-console/internal/mirror"
	"github.com/openlms-dev/admin-console/internal/models"
)

// Local maintains a client-only collection. There is no backend: the mirror
// is the persistence layer, rewritten in full after every change, and ids
// are generated client-side from the current time.
type Local[T models.Entity] struct {
	store mirror.Store
	key   string
	seed  func() []T
	log   *zap.Logger

	mu    sync.Mutex
	items []T
	now   func() time.Time
}

// NewLocal builds a client-only controller. seed provides the starter
// collection used when the mirror holds nothing.
func NewLocal[T models.Entity](store mirror.Store, key string, seed func() []T, log *zap.Logger) *Local[T] {
	if log == nil {
		log = zap.NewNop()
	}
	if seed == nil {
		seed = func() []T { return nil }
	}
	return &Local[T]{store: store, key: key, seed: seed, log: log, now: time.Now}
}

// Refresh loads the collection from the mirror, falling back to the seed set
// on first use or corruption. Idempotent.
func (c *Local[T]) Refresh(ctx context.Context) error {
	var items []T
	if err := c.store.Load(ctx, c.key, &items); err != nil {
		items = c.seed()
		if len(items) > 0 {
			if saveErr := c.store.Save(ctx, c.key, items); saveErr != nil {
				c.log.Warn("mirror_save_failed", zap.String("key", c.key), zap.Error(saveErr))
			}
		}
	}

	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	return nil
}

// Items returns a copy of the collection.
func (c *Local[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Find returns the entity with the given id, if present.
func (c *Local[T]) Find(id string) (T, bool) {
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

// Create prepends a new entity built around a fresh time-derived id and
// rewrites the mirror.
func (c *Local[T]) Create(ctx context.Context, build func(id string) T) error {
	c.mu.Lock()
	item := build(c.nextID())
	c.items = append([]T{item}, c.items...)
	items := make([]T, len(c.items))
	copy(items, c.items)
	c.mu.Unlock()

	return c.store.Save(ctx, c.key, items)
}

// Remove deletes an entity after the confirm callback answers yes and
// rewrites the mirror. Declining changes nothing.
func (c *Local[T]) Remove(ctx context.Context, id string, confirm func() bool) (bool, error) {
	if confirm == nil || !confirm() {
		return false, nil
	}

	c.mu.Lock()
	removed := false
	kept := c.items[:0]
	for _, item := range c.items {
		if item.EntityID() == id {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	c.items = kept
	items := make([]T, len(c.items))
	copy(items, c.items)
	c.mu.Unlock()

	if !removed {
		return false, nil
	}
	return true, c.store.Save(ctx, c.key, items)
}

// nextID derives a collection-unique id from the current time. Callers hold
// the mutex.
func (c *Local[T]) nextID() string {
	base := c.now().UnixMilli()
	for {
		id := strconv.FormatInt(base, 10)
		taken := false
		for _, item := range c.items {
			if item.EntityID() == id {
				taken = true
				break
			}
		}
		if !taken {
			return id
		}
		base++
	}
}
