package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/proton-market/marketplace-api/internal/core/domain"
)

type recordingRepo struct {
	mu     sync.Mutex
	events []domain.AuthEvent
	done   chan struct{}
	want   int
}

func (r *recordingRepo) InsertAuthEvent(_ context.Context, e *domain.AuthEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *e)
	if len(r.events) == r.want {
		close(r.done)
	}
	return nil
}

func TestAuditDispatcher_PreservesPerEmailOrder(t *testing.T) {
	repo := &recordingRepo{done: make(chan struct{}), want: 6}
	d := NewAuditDispatcher(3, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	kinds := []domain.AuthEventKind{domain.AuthEventSignup, domain.AuthEventLoginFailed, domain.AuthEventLogin}
	for _, k := range kinds {
		d.Record(domain.AuthEvent{Email: "a@x.com", Kind: k})
		d.Record(domain.AuthEvent{Email: "b@x.com", Kind: k})
	}

	select {
	case <-repo.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for audit writes")
	}
	cancel()
	d.Wait()

	perEmail := map[string][]domain.AuthEventKind{}
	for _, e := range repo.events {
		if e.ID == "" {
			t.Fatalf("event id not assigned")
		}
		perEmail[e.Email] = append(perEmail[e.Email], e.Kind)
	}
	for email, got := range perEmail {
		for i := range kinds {
			if got[i] != kinds[i] {
				t.Fatalf("%s: order = %v, want %v", email, got, kinds)
			}
		}
	}
}

func TestAuditDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewAuditDispatcher(0, nil, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("workers = %d, want %d", len(d.workers), defaultWorkers)
	}
	if d.shardIndex("a@x.com") != d.shardIndex("a@x.com") {
		t.Fatalf("shard index not deterministic")
	}
}

func TestAuditDispatcher_DropsWhenFull(t *testing.T) {
	d := NewAuditDispatcher(1, nil, zerolog.Nop())
	for i := 0; i < channelBuffer+10; i++ {
		d.Record(domain.AuthEvent{Email: "a@x.com", Kind: domain.AuthEventLogin})
	}
	if got := len(d.workers[0]); got != channelBuffer {
		t.Fatalf("queued = %d, want %d", got, channelBuffer)
	}
}
