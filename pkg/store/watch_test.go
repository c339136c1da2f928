package store

import (
	"context"
	"testing"
	"time"
)

func TestPersistenceWatchEmitsSnapshotChanges(t *testing.T) {
	base := t.TempDir()
	p, err := Load(StaticConfig(base, DefaultAPIURL, 0))
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe to directories before storing.
	time.Sleep(50 * time.Millisecond)

	if err := p.SaveSnapshot(CollectionJournals, []int{1, 2}); err != nil {
		t.Fatalf("save snapshot: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventInvalidated {
				return
			}
			if evt.Type == EventSnapshotChanged {
				if evt.Collection != CollectionJournals {
					t.Fatalf("expected collection 'journals', got %q", evt.Collection)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for snapshot change event")
		}
	}
}

func TestEventForPath(t *testing.T) {
	p := &persistence{basePath: "/base"}
	tests := map[string]Event{
		"/base/snapshots/quests": {Type: EventSnapshotChanged, Collection: CollectionQuests},
		"/base/session/cookies":  {Type: EventSessionChanged},
		"/base/other":            {Type: EventInvalidated},
		"/base":                  {Type: EventInvalidated},
	}
	for in, want := range tests {
		if got := p.eventForPath(in); got != want {
			t.Fatalf("eventForPath(%q) = %+v, want %+v", in, got, want)
		}
	}
}
