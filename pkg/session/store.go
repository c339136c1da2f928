// Package session holds the signed-in user. Screens read State snapshots and
// change it only by dispatching actions through the Store.
package session

import (
	"sync"

	"tableflip.dev/jquest/pkg/model"
)

// State is the application auth state. Loading is true from start-up until
// the session user has been fetched or the fetch has failed.
type State struct {
	User    *model.User
	Loading bool
	Err     error
}

// SignedIn reports whether a user is present.
func (s State) SignedIn() bool {
	return s.User != nil
}

func (s State) clone() State {
	s.User = s.User.Clone()
	return s
}

// ActionType names a state transition.
type ActionType string

const (
	ActionSetUser     ActionType = "setUser"
	ActionUpdateUser  ActionType = "updateUser"
	ActionLogout      ActionType = "logout"
	ActionStopLoading ActionType = "stopLoading"
)

// Action is dispatched to the Store.
type Action struct {
	Type ActionType
	User *model.User
	Err  error
}

func SetUser(u *model.User) Action    { return Action{Type: ActionSetUser, User: u} }
func UpdateUser(u *model.User) Action { return Action{Type: ActionUpdateUser, User: u} }
func Logout() Action                  { return Action{Type: ActionLogout} }

// StopLoading ends the loading phase without a user. err, when set, is the
// reason the session could not be loaded.
func StopLoading(err error) Action { return Action{Type: ActionStopLoading, Err: err} }

// Reduce returns the state after applying a. It never modifies s.
func Reduce(s State, a Action) State {
	switch a.Type {
	case ActionSetUser:
		return State{User: a.User.Clone()}
	case ActionUpdateUser:
		if s.User == nil || a.User == nil {
			return s
		}
		s.User = a.User.Clone()
		s.Err = nil
		return s
	case ActionLogout:
		return State{}
	case ActionStopLoading:
		s.Loading = false
		s.Err = a.Err
		return s
	}
	return s
}

// Store is the single holder of State. It is safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	state   State
	subs    map[int]chan State
	nextSub int
}

// NewStore starts in the loading state, as at application start.
func NewStore() *Store {
	return &Store{
		state: State{Loading: true},
		subs:  make(map[int]chan State),
	}
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// User returns a copy of the session user or nil.
func (s *Store) User() *model.User {
	return s.State().User
}

// Dispatch applies a and notifies subscribers. It returns the new state.
func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reduce(s.state, a)
	snap := s.state.clone()
	for _, ch := range s.subs {
		select {
		case ch <- snap.clone():
		default:
		}
	}
	return snap
}

// Subscribe returns a channel of state snapshots and a cancel function.
func (s *Store) Subscribe() (<-chan State, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan State, 8)
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.subs[id]; ok {
			close(c)
			delete(s.subs, id)
		}
	}
}
