package session

import (
	"context"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/campuscard/portal-gateway/internal/core/domain"
	"github.com/campuscard/portal-gateway/internal/core/ports"
)

const defaultCacheSize = 10_000

// Registry hands out the Context of each browser. Contexts are kept in an
// LRU cache and refreshed from the store on every Get, so the store stays
// authoritative. An evicted Context is detached: requests still holding it
// keep working and their writes are mirrored onto its successor.
type Registry struct {
	store ports.SessionStore
	cache *lru.Cache[string, *Context]
	group singleflight.Group
	log   zerolog.Logger

	mu        sync.RWMutex
	listeners []Listener
}

// NewRegistry creates a Registry holding at most size live Contexts.
func NewRegistry(store ports.SessionStore, size int, log zerolog.Logger) (*Registry, error) {
	if size <= 0 {
		size = defaultCacheSize
	}
	r := &Registry{store: store, log: log}
	cache, err := lru.NewWithEvict[string, *Context](size, func(_ string, c *Context) {
		c.detach(r.registered)
	})
	if err != nil {
		return nil, fmt.Errorf("session registry: %w", err)
	}
	r.cache = cache
	return r, nil
}

// Subscribe registers a listener for changes of every browser.
func (r *Registry) Subscribe(l Listener) {
	r.mu.Lock()
	r.listeners = append(r.listeners, l)
	r.mu.Unlock()
}

// Get returns the Context of browserID, seeding it on first use and
// refreshing it from the store afterwards. Concurrent first uses share a
// single Load.
func (r *Registry) Get(ctx context.Context, browserID string) (*Context, error) {
	if c, ok := r.cache.Get(browserID); ok {
		if err := c.Refresh(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
		}
		return c, nil
	}

	v, err, _ := r.group.Do(browserID, func() (any, error) {
		if c, ok := r.cache.Get(browserID); ok {
			return c, nil
		}
		c, err := NewContext(ctx, browserID, r.store)
		if err != nil {
			return nil, err
		}
		c.Subscribe(r.broadcast)
		r.cache.Add(browserID, c)
		r.log.Debug().Str("browser_id", browserID).Bool("authenticated", c.Current() != nil).Msg("session context seeded")
		return c, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return v.(*Context), nil
}

// registered returns the cached Context of browserID without touching its
// recency.
func (r *Registry) registered(browserID string) *Context {
	c, _ := r.cache.Peek(browserID)
	return c
}

// Len reports the number of live Contexts.
func (r *Registry) Len() int {
	return r.cache.Len()
}

func (r *Registry) broadcast(ch domain.SessionChange) {
	r.mu.RLock()
	ls := r.listeners
	r.mu.RUnlock()
	for _, l := range ls {
		l(ch)
	}
}
