package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/campuscard/portal-gateway/internal/core/domain"
)

func TestNewContext_SeedsOnce(t *testing.T) {
	store := newStubStore()
	raw, _ := Encode(approvedStudent())
	store.records["b1"] = raw

	c, err := NewContext(context.Background(), "b1", store)
	if err != nil {
		t.Fatalf("new context: %v", err)
	}
	if store.loads != 1 {
		t.Fatalf("expected exactly one load, got %d", store.loads)
	}
	for i := 0; i < 3; i++ {
		if c.Current() == nil {
			t.Fatalf("expected seeded session")
		}
	}
	if store.loads != 1 {
		t.Fatalf("reads must not hit the store, got %d loads", store.loads)
	}
}

func TestNewContext_MalformedStoredSession(t *testing.T) {
	store := newStubStore()
	store.records["b1"] = []byte("{not json")

	c, err := NewContext(context.Background(), "b1", store)
	if err != nil {
		t.Fatalf("malformed data must not fail: %v", err)
	}
	if c.Current() != nil {
		t.Fatalf("expected anonymous visitor")
	}
	if _, ok := store.records["b1"]; ok {
		t.Fatalf("expected malformed record to be healed")
	}
}

func TestNewContext_StoreError(t *testing.T) {
	store := newStubStore()
	store.loadErr = errStoreDown

	if _, err := NewContext(context.Background(), "b1", store); !errors.Is(err, errStoreDown) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestContext_SetWritesThrough(t *testing.T) {
	store := newStubStore()
	c, _ := NewContext(context.Background(), "b1", store)

	want := approvedStudent()
	if err := c.Set(context.Background(), want, domain.ChangeLogin); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got := c.Current(); got == nil || *got != *want {
		t.Fatalf("in-memory copy mismatch: %+v", got)
	}

	stored, _ := store.Load(context.Background(), "b1")
	if stored == nil || *stored != *want {
		t.Fatalf("durable copy mismatch: %+v", stored)
	}
}

func TestContext_SetRejectsPartialSession(t *testing.T) {
	store := newStubStore()
	c, _ := NewContext(context.Background(), "b1", store)

	err := c.Set(context.Background(), &domain.Session{Token: "t"}, domain.ChangeLogin)
	if !errors.Is(err, domain.ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
	if c.Current() != nil || len(store.records) != 0 {
		t.Fatalf("partial session must not be stored")
	}
}

func TestContext_SetStoreFailureKeepsMemory(t *testing.T) {
	store := newStubStore()
	c, _ := NewContext(context.Background(), "b1", store)
	store.saveErr = errStoreDown

	if err := c.Set(context.Background(), approvedStudent(), domain.ChangeLogin); !errors.Is(err, errStoreDown) {
		t.Fatalf("expected store error, got %v", err)
	}
	if c.Current() != nil {
		t.Fatalf("memory must not diverge from the store")
	}
}

func TestContext_CurrentReturnsCopy(t *testing.T) {
	c, _ := NewContext(context.Background(), "b1", newStubStore())
	_ = c.Set(context.Background(), approvedStudent(), domain.ChangeLogin)

	got := c.Current()
	got.Role = domain.RoleAdmin
	if c.Current().Role != domain.RoleStudent {
		t.Fatalf("callers must not be able to patch the live session")
	}
}

func TestContext_ClearIsIdempotent(t *testing.T) {
	store := newStubStore()
	c, _ := NewContext(context.Background(), "b1", store)
	_ = c.Set(context.Background(), approvedStudent(), domain.ChangeLogin)

	var changes []domain.SessionChange
	c.Subscribe(func(ch domain.SessionChange) { changes = append(changes, ch) })

	for i := 0; i < 2; i++ {
		if err := c.Clear(context.Background(), domain.ChangeLogout); err != nil {
			t.Fatalf("clear #%d: %v", i+1, err)
		}
		if c.Current() != nil {
			t.Fatalf("expected absent session after clear #%d", i+1)
		}
		if len(store.records) != 0 {
			t.Fatalf("expected empty store after clear #%d", i+1)
		}
	}
	if len(changes) != 1 {
		t.Fatalf("expected a single change, got %d", len(changes))
	}
	if changes[0].Reason != domain.ChangeLogout || changes[0].Previous == nil || changes[0].Current != nil {
		t.Fatalf("unexpected change: %+v", changes[0])
	}
}

func TestContext_SubscribeAndCancel(t *testing.T) {
	c, _ := NewContext(context.Background(), "b1", newStubStore())

	var seen []domain.ChangeReason
	cancel := c.Subscribe(func(ch domain.SessionChange) {
		if ch.BrowserID != "b1" {
			t.Errorf("unexpected browser id %q", ch.BrowserID)
		}
		// Listeners observe the new state.
		if (c.Current() == nil) != (ch.Current == nil) {
			t.Errorf("listener saw stale state")
		}
		seen = append(seen, ch.Reason)
	})

	_ = c.Set(context.Background(), approvedStudent(), domain.ChangeLogin)
	cancel()
	_ = c.Clear(context.Background(), domain.ChangeLogout)

	if len(seen) != 1 || seen[0] != domain.ChangeLogin {
		t.Fatalf("unexpected notifications: %v", seen)
	}
}

func TestContext_ExpireIfStale(t *testing.T) {
	c, _ := NewContext(context.Background(), "b1", newStubStore())
	now := time.Now()

	s := approvedStudent()
	s.Token = signedToken(t, now.Add(-time.Second))
	_ = c.Set(context.Background(), s, domain.ChangeLogin)

	var reason domain.ChangeReason
	c.Subscribe(func(ch domain.SessionChange) { reason = ch.Reason })

	cleared, err := c.ExpireIfStale(context.Background(), now)
	if err != nil || !cleared {
		t.Fatalf("expected expired session to be cleared, cleared=%v err=%v", cleared, err)
	}
	if c.Current() != nil || reason != domain.ChangeExpired {
		t.Fatalf("expected absent session with expired reason, got %q", reason)
	}

	cleared, _ = c.ExpireIfStale(context.Background(), now)
	if cleared {
		t.Fatalf("absent session cannot expire twice")
	}
}
