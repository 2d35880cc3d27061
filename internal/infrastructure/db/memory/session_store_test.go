package memory

import (
	"context"
	"testing"
	"time"

	"github.com/campuscard/portal-gateway/internal/core/domain"
)

func TestSessionStore_RoundTrip(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()
	want := &domain.Session{Token: "t", UserID: "3", Email: "x@eng.psu.edu.eg", Role: domain.RoleStudent, Status: domain.StatusPending}

	if err := store.Save(ctx, "b", want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.Load(ctx, "b")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == nil || *got != *want {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestSessionStore_MalformedHeals(t *testing.T) {
	store := NewSessionStore()
	store.PutRaw("b", []byte(`{"token":`))

	got, err := store.Load(context.Background(), "b")
	if err != nil || got != nil {
		t.Fatalf("expected absent without error, got %+v %v", got, err)
	}
	if _, ok := store.Raw("b"); ok {
		t.Fatalf("expected malformed record removed")
	}
}

func TestSessionStore_ClearIdempotent(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if err := store.Clear(ctx, "b"); err != nil {
			t.Fatalf("clear: %v", err)
		}
	}
}

func TestSubmitGuard(t *testing.T) {
	g := NewSubmitGuard(time.Minute)
	now := time.Now()
	g.now = func() time.Time { return now }
	ctx := context.Background()

	ok, _ := g.Acquire(ctx, "review", "7")
	if !ok {
		t.Fatalf("first acquire must succeed")
	}
	if ok, _ := g.Acquire(ctx, "review", "7"); ok {
		t.Fatalf("second acquire must fail")
	}
	if ok, _ := g.Acquire(ctx, "review", "8"); !ok {
		t.Fatalf("other subjects are independent")
	}

	now = now.Add(2 * time.Minute)
	if ok, _ := g.Acquire(ctx, "review", "7"); !ok {
		t.Fatalf("lock must expire")
	}

	_ = g.Release(ctx, "review", "7")
	if ok, _ := g.Acquire(ctx, "review", "7"); !ok {
		t.Fatalf("released lock must be acquirable")
	}
}
