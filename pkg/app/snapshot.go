package app

import (
	"errors"
	"time"

	"tableflip.dev/jquest/pkg/cache"
	"tableflip.dev/jquest/pkg/model"
	"tableflip.dev/jquest/pkg/session"
	"tableflip.dev/jquest/pkg/store"
)

// ErrNoPersistence is returned by offline operations without a store.
var ErrNoPersistence = errors.New("app: no persistence configured")

// LoadSnapshots fills the cache and the session from the copies saved by the
// last successful fetches. It returns the oldest save time found.
func (s *Service) LoadSnapshots() (time.Time, error) {
	if s.Persistence == nil {
		return time.Time{}, ErrNoPersistence
	}
	var (
		snap   cache.Snapshot
		user   model.User
		oldest time.Time
		found  bool
	)
	load := func(c store.Collection, v interface{}) error {
		at, err := s.Persistence.LoadSnapshot(c, v)
		if errors.Is(err, store.ErrNoSnapshot) {
			return nil
		}
		if err != nil {
			return err
		}
		if !found || at.Before(oldest) {
			oldest = at
		}
		found = true
		return nil
	}
	if err := load(store.CollectionJournals, &snap.Journals); err != nil {
		return time.Time{}, err
	}
	if err := load(store.CollectionFolders, &snap.Folders); err != nil {
		return time.Time{}, err
	}
	if err := load(store.CollectionQuests, &snap.Quests); err != nil {
		return time.Time{}, err
	}
	if err := load(store.CollectionUser, &user); err != nil {
		return time.Time{}, err
	}
	if !found {
		return time.Time{}, store.ErrNoSnapshot
	}
	s.Cache.ApplySnapshot(snap)
	if user.ID != 0 {
		s.Session.Dispatch(session.SetUser(&user))
	} else {
		s.Session.Dispatch(session.StopLoading(nil))
	}
	return oldest, nil
}
