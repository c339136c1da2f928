package optimistic

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"tableflip.dev/jquest/pkg/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func cloneUser(u *model.User) *model.User { return u.Clone() }

var errRejected = errors.New("422: Email is required")

func TestMutateConfirms(t *testing.T) {
	r := New(&model.User{ID: 1, Email: "old@example.com"}, cloneUser)
	got, err := r.Mutate(context.Background(), &model.User{ID: 1, Email: "new@example.com"},
		func(ctx context.Context, next *model.User) (*model.User, error) {
			if r.Phase() != Confirming {
				t.Errorf("phase during send = %v", r.Phase())
			}
			if r.Value().Email != "new@example.com" {
				t.Errorf("optimistic value not applied before send")
			}
			server := next.Clone()
			server.Nickname = "from server"
			return server, nil
		})
	if err != nil {
		t.Fatalf("Mutate: %v", err)
	}
	if got.Nickname != "from server" || r.Value().Nickname != "from server" {
		t.Fatalf("server value not adopted: %+v", r.Value())
	}
	if r.Phase() != Confirmed {
		t.Fatalf("phase = %v", r.Phase())
	}
}

func TestRollbackRestoresSnapshot(t *testing.T) {
	snapshot := &model.User{ID: 1, Username: "hero", Email: "old@example.com", Stats: model.UserStats{JournalCount: 3}}
	r := New(snapshot, cloneUser)

	_, err := r.Mutate(context.Background(), &model.User{ID: 1, Username: "hero", Email: ""},
		func(ctx context.Context, next *model.User) (*model.User, error) {
			return nil, errRejected
		})
	if !errors.Is(err, errRejected) {
		t.Fatalf("err = %v", err)
	}
	if diff := cmp.Diff(snapshot, r.Value()); diff != "" {
		t.Fatalf("rollback mismatch (-want +got):\n%s", diff)
	}
	if r.Phase() != RolledBack {
		t.Fatalf("phase = %v", r.Phase())
	}
}

func TestRollbackDoesNotAliasCallerValue(t *testing.T) {
	snapshot := model.Journal{ID: 1, Title: "Alpha", FolderID: model.FolderRef(5)}
	r := New(snapshot, model.Journal.Clone)
	next := snapshot.Clone()
	next.FolderID = model.FolderRef(9)
	_, _ = r.Mutate(context.Background(), next, func(ctx context.Context, n model.Journal) (model.Journal, error) {
		*n.FolderID = 11
		return model.Journal{}, errRejected
	})
	if diff := cmp.Diff(snapshot, r.Value()); diff != "" {
		t.Fatalf("rollback mismatch (-want +got):\n%s", diff)
	}
}

type result struct {
	val string
	err error
}

// startMutation issues a mutation whose send blocks until release yields.
func startMutation(r *Resource[string], next string) (release chan result, done chan result) {
	release = make(chan result)
	done = make(chan result, 1)
	started := make(chan struct{})
	go func() {
		v, err := r.Mutate(context.Background(), next, func(ctx context.Context, n string) (string, error) {
			close(started)
			res := <-release
			return res.val, res.err
		})
		done <- result{val: v, err: err}
	}()
	<-started
	return release, done
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	r := New("v0", nil)

	release1, done1 := startMutation(r, "r1")
	release2, done2 := startMutation(r, "r2")

	release2 <- result{val: "r2-server"}
	if res := <-done2; res.err != nil || res.val != "r2-server" {
		t.Fatalf("r2 result = %+v", res)
	}

	release1 <- result{val: "r1-server"}
	if res := <-done1; !errors.Is(res.err, ErrSuperseded) {
		t.Fatalf("r1 err = %v", res.err)
	}

	if got := r.Value(); got != "r2-server" {
		t.Fatalf("value = %q, want r2-server", got)
	}
	if r.Phase() != Confirmed {
		t.Fatalf("phase = %v", r.Phase())
	}
}

func TestStaleFailureAfterNewerSuccessIsDiscarded(t *testing.T) {
	r := New("v0", nil)

	release1, done1 := startMutation(r, "r1")
	release2, done2 := startMutation(r, "r2")

	release2 <- result{val: "r2-server"}
	<-done2
	release1 <- result{err: errRejected}
	res := <-done1
	if !errors.Is(res.err, ErrSuperseded) || !errors.Is(res.err, errRejected) {
		t.Fatalf("r1 err = %v", res.err)
	}
	if got := r.Value(); got != "r2-server" {
		t.Fatalf("value = %q", got)
	}
}

func TestNewestFailureRestoresLastServerValue(t *testing.T) {
	r := New("v0", nil)

	release1, done1 := startMutation(r, "r1")
	release2, done2 := startMutation(r, "r2")

	// r1 lands on the server while r2 is still pending.
	release1 <- result{val: "r1-server"}
	if res := <-done1; !errors.Is(res.err, ErrSuperseded) {
		t.Fatalf("r1 err = %v", res.err)
	}
	if got := r.Value(); got != "r2" {
		t.Fatalf("optimistic value changed by stale response: %q", got)
	}

	release2 <- result{err: errRejected}
	<-done2
	if got := r.Value(); got != "r1-server" {
		t.Fatalf("value = %q, want r1-server", got)
	}
}

func TestDetachIgnoresLateResponse(t *testing.T) {
	r := New("v0", nil)
	changes, _ := r.Subscribe()

	release, done := startMutation(r, "r1")
	r.Detach()
	release <- result{val: "server"}

	if res := <-done; !errors.Is(res.err, ErrDetached) {
		t.Fatalf("err = %v", res.err)
	}
	if got := r.Value(); got != "r1" {
		t.Fatalf("value written after detach: %q", got)
	}
	if _, err := r.Mutate(context.Background(), "r2", func(ctx context.Context, n string) (string, error) {
		t.Fatalf("send called on detached resource")
		return "", nil
	}); !errors.Is(err, ErrDetached) {
		t.Fatalf("err = %v", err)
	}

	var phases []Phase
	for c := range changes {
		phases = append(phases, c.Phase)
	}
	if diff := cmp.Diff([]Phase{AppliedLocally, Confirming}, phases); diff != "" {
		t.Fatalf("phases (-want +got):\n%s", diff)
	}
}

func TestSubscribeReportsPhases(t *testing.T) {
	r := New(1, nil)
	changes, cancel := r.Subscribe()
	if _, err := r.Mutate(context.Background(), 2, func(ctx context.Context, n int) (int, error) {
		return n, nil
	}); err != nil {
		t.Fatalf("Mutate: %v", err)
	}
	cancel()

	var got []Change[int]
	for c := range changes {
		got = append(got, c)
	}
	want := []Change[int]{
		{Phase: AppliedLocally, Value: 2, Token: 1},
		{Phase: Confirming, Value: 2, Token: 1},
		{Phase: Confirmed, Value: 2, Token: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("changes (-want +got):\n%s", diff)
	}
}

func TestSetKeepsResourcesIndependent(t *testing.T) {
	s := NewSet[int64, string](nil)
	a := s.Get(1, "a")
	b := s.Get(2, "b")
	if s.Get(1, "ignored") != a {
		t.Fatalf("Get should return the existing resource")
	}

	releaseA, doneA := startMutation(a, "a1")
	if _, err := b.Mutate(context.Background(), "b1", func(ctx context.Context, n string) (string, error) {
		return n, nil
	}); err != nil {
		t.Fatalf("b Mutate: %v", err)
	}
	releaseA <- result{val: "a1"}
	if res := <-doneA; res.err != nil {
		t.Fatalf("a should not be superseded by b: %v", res.err)
	}

	s.DetachAll()
	if !a.Detached() || !b.Detached() || s.Len() != 0 {
		t.Fatalf("DetachAll did not detach")
	}
}
