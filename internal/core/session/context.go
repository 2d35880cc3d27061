package session

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/campuscard/portal-gateway/internal/core/domain"
	"github.com/campuscard/portal-gateway/internal/core/ports"
)

// Listener receives session changes. Listeners run synchronously on the
// writer path and must not call Set or Clear on the same Context.
type Listener func(domain.SessionChange)

// Context is the live session of one browser. The store is authoritative:
// every mutation goes through the store first and the in-memory copy second,
// and Refresh reconciles the copy with records that expired or were written
// through another Context.
type Context struct {
	browserID string
	store     ports.SessionStore
	now       func() time.Time

	// detached is set once the Registry dropped this Context. Writes through
	// a detached Context are mirrored onto the registered one via peer.
	detached atomic.Bool
	peer     func(browserID string) *Context

	// wmu serialises writers, including listener delivery.
	wmu sync.Mutex

	mu        sync.RWMutex
	current   *domain.Session
	listeners map[uint64]Listener
	nextID    uint64
}

// NewContext builds the Context of browserID with a single Load.
func NewContext(ctx context.Context, browserID string, store ports.SessionStore) (*Context, error) {
	s, err := store.Load(ctx, browserID)
	if err != nil {
		return nil, fmt.Errorf("seed session %s: %w", browserID, err)
	}
	return &Context{
		browserID: browserID,
		store:     store,
		now:       time.Now,
		current:   s,
		listeners: make(map[uint64]Listener),
	}, nil
}

// BrowserID returns the key the Context persists under.
func (c *Context) BrowserID() string {
	return c.browserID
}

// Current returns a copy of the session, or nil for an anonymous visitor.
func (c *Context) Current() *domain.Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current.Clone()
}

// Set replaces the session.
func (c *Context) Set(ctx context.Context, s *domain.Session, reason domain.ChangeReason) error {
	if err := s.Validate(); err != nil {
		return err
	}
	next := s.Clone()

	c.wmu.Lock()
	defer c.wmu.Unlock()

	if err := c.store.Save(ctx, c.browserID, next); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	c.mu.Lock()
	prev := c.current
	c.current = next
	c.mu.Unlock()

	c.notify(prev, next, reason)
	c.mirror(next)
	return nil
}

// Clear removes the session. Clearing an absent session is a no-op apart
// from the store call and emits no change.
func (c *Context) Clear(ctx context.Context, reason domain.ChangeReason) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()

	if err := c.store.Clear(ctx, c.browserID); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	c.mu.Lock()
	prev := c.current
	c.current = nil
	c.mu.Unlock()

	if prev != nil {
		c.notify(prev, nil, reason)
	}
	c.mirror(nil)
	return nil
}

// Refresh reloads the session from the store. A record that is gone from
// the store (TTL expiry, a logout through a detached Context) is dropped
// from memory and reported as expired.
func (c *Context) Refresh(ctx context.Context) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()

	s, err := c.store.Load(ctx, c.browserID)
	if err != nil {
		return fmt.Errorf("refresh session %s: %w", c.browserID, err)
	}

	c.mu.Lock()
	prev := c.current
	c.current = s
	c.mu.Unlock()

	if prev != nil && s == nil {
		c.notify(prev, nil, domain.ChangeExpired)
	}
	return nil
}

// detach marks the Context as no longer registered.
func (c *Context) detach(peer func(browserID string) *Context) {
	c.peer = peer
	c.detached.Store(true)
}

// mirror copies a write of a detached Context onto the registered Context
// of the same browser, if there is one. Listeners were already notified.
func (c *Context) mirror(next *domain.Session) {
	if !c.detached.Load() || c.peer == nil {
		return
	}
	p := c.peer(c.browserID)
	if p == nil || p == c {
		return
	}
	p.mu.Lock()
	p.current = next.Clone()
	p.mu.Unlock()
}

// ExpireIfStale clears the session when its token has expired. It reports
// whether a session was cleared.
func (c *Context) ExpireIfStale(ctx context.Context, now time.Time) (bool, error) {
	if !Expired(c.Current(), now) {
		return false, nil
	}
	if err := c.Clear(ctx, domain.ChangeExpired); err != nil {
		return false, err
	}
	return true, nil
}

// Subscribe registers l and returns a function that removes it.
func (c *Context) Subscribe(l Listener) (cancel func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = l
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

func (c *Context) notify(prev, next *domain.Session, reason domain.ChangeReason) {
	c.mu.RLock()
	ls := make([]Listener, 0, len(c.listeners))
	for _, l := range c.listeners {
		ls = append(ls, l)
	}
	c.mu.RUnlock()

	ch := domain.SessionChange{
		BrowserID: c.browserID,
		Previous:  prev.Clone(),
		Current:   next.Clone(),
		Reason:    reason,
		At:        c.now(),
	}
	for _, l := range ls {
		l(ch)
	}
}
