package session

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/jquest/pkg/api"
	"tableflip.dev/jquest/pkg/model"
)

func TestReduce(t *testing.T) {
	hero := &model.User{ID: 1, Username: "hero"}
	s := State{Loading: true}

	s = Reduce(s, UpdateUser(hero))
	if s.User != nil {
		t.Fatalf("updateUser without a session should be ignored")
	}
	s = Reduce(s, SetUser(hero))
	if s.Loading || s.User.Username != "hero" {
		t.Fatalf("setUser: %+v", s)
	}
	s = Reduce(s, UpdateUser(&model.User{ID: 1, Username: "hero", Nickname: "H"}))
	if s.User.Nickname != "H" {
		t.Fatalf("updateUser: %+v", s.User)
	}
	s = Reduce(s, Logout())
	if s.User != nil || s.Loading {
		t.Fatalf("logout: %+v", s)
	}
}

func TestStoreCopiesUser(t *testing.T) {
	st := NewStore()
	u := &model.User{ID: 1, Email: "a@example.com"}
	st.Dispatch(SetUser(u))
	u.Email = "changed"
	if st.User().Email != "a@example.com" {
		t.Fatalf("store aliases dispatched user")
	}
	got := st.User()
	got.Email = "changed"
	if st.User().Email != "a@example.com" {
		t.Fatalf("store aliases returned user")
	}
}

func TestSubscribe(t *testing.T) {
	st := NewStore()
	ch, cancel := st.Subscribe()
	st.Dispatch(SetUser(&model.User{ID: 2}))
	st.Dispatch(Logout())
	cancel()
	var users []bool
	for s := range ch {
		users = append(users, s.SignedIn())
	}
	if diff := cmp.Diff([]bool{true, false}, users); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

type fakeFetcher struct {
	user        *model.User
	meErr       error
	journals    []model.Journal
	journalsErr error
	calls       []string
}

func (f *fakeFetcher) Me(ctx context.Context) (*model.User, error) {
	f.calls = append(f.calls, "me")
	return f.user, f.meErr
}

func (f *fakeFetcher) Journals(ctx context.Context) ([]model.Journal, error) {
	f.calls = append(f.calls, "journals")
	return f.journals, f.journalsErr
}

func TestBootstrapFetchesJournalsAfterUser(t *testing.T) {
	f := &fakeFetcher{user: &model.User{ID: 1}, journals: []model.Journal{{ID: 5}}}
	st := NewStore()
	journals, err := Bootstrap(context.Background(), st, f, nil)
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	if diff := cmp.Diff([]string{"me", "journals"}, f.calls); diff != "" {
		t.Fatalf("calls (-want +got):\n%s", diff)
	}
	if len(journals) != 1 || !st.State().SignedIn() || st.State().Loading {
		t.Fatalf("unexpected result %v %+v", journals, st.State())
	}
}

func TestBootstrapUnauthorizedStopsLoading(t *testing.T) {
	f := &fakeFetcher{meErr: &api.RequestError{Op: "GET /me", Status: http.StatusUnauthorized}}
	st := NewStore()
	_, err := Bootstrap(context.Background(), st, f, nil)
	if !errors.Is(err, ErrSignedOut) {
		t.Fatalf("err = %v", err)
	}
	if diff := cmp.Diff([]string{"me"}, f.calls); diff != "" {
		t.Fatalf("journals fetched without a user (-want +got):\n%s", diff)
	}
	s := st.State()
	if s.Loading || s.SignedIn() || s.Err != nil {
		t.Fatalf("unexpected state %+v", s)
	}
}

func TestBootstrapNetworkFailure(t *testing.T) {
	netErr := &api.NetworkError{Op: "GET /me", Err: errors.New("connection refused")}
	f := &fakeFetcher{meErr: netErr}
	st := NewStore()
	_, err := Bootstrap(context.Background(), st, f, nil)
	var se *StageError
	if !errors.As(err, &se) || se.Stage != StageFetchUser {
		t.Fatalf("err = %v", err)
	}
	if st.State().Loading || st.State().Err == nil {
		t.Fatalf("unexpected state %+v", st.State())
	}
}

func TestBootstrapJournalFailureKeepsUser(t *testing.T) {
	f := &fakeFetcher{user: &model.User{ID: 1}, journalsErr: errors.New("boom")}
	st := NewStore()
	_, err := Bootstrap(context.Background(), st, f, nil)
	var se *StageError
	if !errors.As(err, &se) || se.Stage != StageFetchJournals {
		t.Fatalf("err = %v", err)
	}
	if !st.State().SignedIn() {
		t.Fatalf("user dropped after journal failure")
	}
}
