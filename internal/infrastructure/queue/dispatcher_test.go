package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/campuscard/portal-gateway/internal/core/domain"
)

type stubAuditRepo struct {
	mu     sync.Mutex
	events []domain.AuditEvent
	err    error
}

func (r *stubAuditRepo) InsertSessionEvent(_ context.Context, e domain.AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, e)
	return nil
}

func (r *stubAuditRepo) snapshot() []domain.AuditEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.AuditEvent(nil), r.events...)
}

func TestDispatcher_PreservesPerUserOrder(t *testing.T) {
	repo := &stubAuditRepo{}
	d := NewDispatcher(4, repo, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	kinds := []domain.ChangeReason{domain.ChangeLogin, domain.ChangeLogout, domain.ChangeLogin, domain.ChangeExpired}
	for _, k := range kinds {
		d.Enqueue(domain.AuditEvent{UserID: "u1", Kind: k})
		d.Enqueue(domain.AuditEvent{UserID: "u2", Kind: k})
	}

	deadline := time.Now().Add(2 * time.Second)
	for len(repo.snapshot()) < 2*len(kinds) && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	d.Wait()

	var u1 []domain.ChangeReason
	for _, e := range repo.snapshot() {
		if e.UserID == "u1" {
			u1 = append(u1, e.Kind)
		}
	}
	if len(u1) != len(kinds) {
		t.Fatalf("expected %d events for u1, got %d", len(kinds), len(u1))
	}
	for i := range kinds {
		if u1[i] != kinds[i] {
			t.Fatalf("order mismatch at %d: got %v want %v", i, u1, kinds)
		}
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(8, &stubAuditRepo{}, zerolog.Nop())
	for _, id := range []string{"1", "42", "student@eng.psu.edu.eg"} {
		a, b := d.shardIndex(id), d.shardIndex(id)
		if a != b || a < 0 || a >= 8 {
			t.Fatalf("unstable or out of range shard for %q: %d %d", id, a, b)
		}
	}
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	d := NewDispatcher(1, &stubAuditRepo{}, zerolog.Nop())
	// Workers not started: the buffer fills up.
	for i := 0; i < channelBuffer; i++ {
		if !d.Enqueue(domain.AuditEvent{UserID: "u"}) {
			t.Fatalf("event %d should fit in the buffer", i)
		}
	}
	if d.Enqueue(domain.AuditEvent{UserID: "u"}) {
		t.Fatalf("expected event to be dropped")
	}
}

func TestDispatcher_DrainsOnShutdown(t *testing.T) {
	repo := &stubAuditRepo{}
	d := NewDispatcher(1, repo, zerolog.Nop())
	for i := 0; i < 10; i++ {
		d.Enqueue(domain.AuditEvent{UserID: "u"})
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.Start(ctx)
	d.Wait()

	if got := len(repo.snapshot()); got != 10 {
		t.Fatalf("expected queued events to be drained, got %d", got)
	}
}

func TestDispatcher_WriteFailureIsNotFatal(t *testing.T) {
	repo := &stubAuditRepo{err: errors.New("mongo down")}
	d := NewDispatcher(1, repo, zerolog.Nop())
	d.Enqueue(domain.AuditEvent{UserID: "u"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.Start(ctx)
	d.Wait()
}

func TestDispatcher_OnSessionChange(t *testing.T) {
	repo := &stubAuditRepo{}
	d := NewDispatcher(1, repo, zerolog.Nop())

	s := &domain.Session{Token: "t", UserID: "9", Email: "e@eng.psu.edu.eg", Role: domain.RoleStudent, Status: domain.StatusPending}
	d.OnSessionChange(domain.SessionChange{BrowserID: "b", Previous: s, Reason: domain.ChangeLogout, At: time.Now()})
	d.OnSessionChange(domain.SessionChange{BrowserID: "b", Reason: domain.ChangeLogout})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.Start(ctx)
	d.Wait()

	events := repo.snapshot()
	if len(events) != 1 {
		t.Fatalf("expected one event, got %d", len(events))
	}
	if events[0].UserID != "9" || events[0].Kind != domain.ChangeLogout || events[0].BrowserID != "b" {
		t.Fatalf("unexpected event: %+v", events[0])
	}
}
