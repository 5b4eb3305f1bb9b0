package catalog

import "sync/atomic"

// Holder publishes the active catalog. Readers call Current on every use and
// never cache the result across requests; Swap installs a new catalog
// atomically so in-flight normalizations keep the version they started with.
type Holder struct {
	current atomic.Pointer[Catalog]
}

// NewHolder creates a holder seeded with the given catalog.
func NewHolder(c *Catalog) *Holder {
	h := &Holder{}
	h.current.Store(c)
	return h
}

// Current returns the active catalog.
func (h *Holder) Current() *Catalog {
	return h.current.Load()
}

// Swap installs a new catalog and returns the previous one.
func (h *Holder) Swap(c *Catalog) *Catalog {
	return h.current.Swap(c)
}

// Register adds an alias to the active catalog and publishes the result.
// Concurrent Register calls serialize through compare-and-swap so no
// registration is lost.
func (h *Holder) Register(field Field, raw, category string) (*Catalog, error) {
	for {
		cur := h.current.Load()
		next, err := cur.WithAlias(field, raw, category)
		if err != nil {
			return nil, err
		}
		if h.current.CompareAndSwap(cur, next) {
			return next, nil
		}
	}
}
