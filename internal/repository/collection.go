package repository

import "context"

// Collection is the typed get/save pair for one key. It performs no
// validation and enforces no uniqueness.
type Collection[E any] struct {
	store *Store
	key   string
}

// NewCollection binds a collection of E to key.
func NewCollection[E any](store *Store, key string) *Collection[E] {
	return &Collection[E]{store: store, key: key}
}

// Key returns the persistence key.
func (c *Collection[E]) Key() string {
	return c.key
}

// List returns every stored item, or an empty slice.
func (c *Collection[E]) List(ctx context.Context) []E {
	items := Get(ctx, c.store, c.key, []E{})
	if items == nil {
		return []E{}
	}
	return items
}

// Save replaces the stored items.
func (c *Collection[E]) Save(ctx context.Context, items []E) {
	if items == nil {
		items = []E{}
	}
	Set(ctx, c.store, c.key, items)
}

// Mutate applies fn to the current items under the key lock and persists the
// result. Returning an error aborts without writing.
func (c *Collection[E]) Mutate(ctx context.Context, fn func([]E) ([]E, error)) ([]E, error) {
	return Update(ctx, c.store, c.key, []E{}, func(items []E) ([]E, error) {
		if items == nil {
			items = []E{}
		}
		next, err := fn(items)
		if err != nil {
			return nil, err
		}
		if next == nil {
			next = []E{}
		}
		return next, nil
	})
}
