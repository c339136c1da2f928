package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"tableflip.dev/jquest/pkg/forms"
	"tableflip.dev/jquest/pkg/model"
	"tableflip.dev/jquest/pkg/optimistic"
	"tableflip.dev/jquest/pkg/store"
	"tableflip.dev/jquest/pkg/viewmodel"
)

// Journals fetches the journal list and replaces the cache with it.
func (s *Service) Journals(ctx context.Context) ([]model.Journal, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	list, err := s.API.Journals(ctx)
	if err != nil {
		return nil, fmt.Errorf("load journals: %w", err)
	}
	s.Cache.SetJournals(list)
	s.saveSnapshot(store.CollectionJournals, list)
	return s.Cache.Journals(), nil
}

// ListJournals fetches journals and returns the filtered, sorted view.
func (s *Service) ListJournals(ctx context.Context, f viewmodel.Filter) ([]model.Journal, error) {
	list, err := s.Journals(ctx)
	if err != nil {
		return nil, err
	}
	return viewmodel.Derive(list, f), nil
}

// Journal fetches one journal and refreshes it in the cache.
func (s *Service) Journal(ctx context.Context, id int64) (*model.Journal, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	j, err := s.API.Journal(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load journal %d: %w", id, err)
	}
	s.Cache.UpsertJournal(*j)
	return j, nil
}

// ResolveFolder points req at a folder. A non-empty newFolder is created
// first and merged into the cached folders without a reload.
func (s *Service) ResolveFolder(ctx context.Context, req *forms.JournalRequest, newFolder string) error {
	name := strings.TrimSpace(newFolder)
	if name == "" {
		return nil
	}
	f, err := s.CreateFolder(ctx, forms.FolderRequest{Name: name})
	if err != nil {
		return err
	}
	req.FolderID = model.FolderRef(f.ID)
	return nil
}

// CreateJournal saves a new journal and puts it at the front of the list.
func (s *Service) CreateJournal(ctx context.Context, req forms.JournalRequest) (*model.Journal, error) {
	if err := forms.Validate(req); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	if u := s.Session.User(); u != nil && req.UserID == 0 {
		req.UserID = u.ID
	}
	j, err := s.API.CreateJournal(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create journal: %w", err)
	}
	s.Cache.PrependJournal(*j)
	s.saveSnapshot(store.CollectionJournals, s.Cache.Journals())
	return j, nil
}

// UpdateJournal applies req to the cached journal at once and confirms it
// with the server. A rejected edit restores the previous journal.
func (s *Service) UpdateJournal(ctx context.Context, id int64, req forms.JournalRequest) (*model.Journal, error) {
	if err := forms.Validate(req); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	current, ok := s.Cache.Journal(id)
	if !ok {
		j, err := s.Journal(ctx, id)
		if err != nil {
			return nil, err
		}
		current = *j
	}

	res := s.journalEdits.Get(id, current)
	if !res.Phase().Pending() {
		res.Set(current)
	}
	next := req.Apply(current)

	got, err := res.Mutate(ctx, next, func(ctx context.Context, n model.Journal) (model.Journal, error) {
		s.Cache.UpsertJournal(n)
		j, err := s.API.UpdateJournal(ctx, id, req)
		if err != nil {
			return model.Journal{}, err
		}
		return *j, nil
	})
	switch {
	case errors.Is(err, optimistic.ErrSuperseded), errors.Is(err, optimistic.ErrDetached):
		s.Log.Debug("journal edit discarded", zap.Int64("id", id), zap.Error(err))
		return nil, err
	case err != nil:
		s.Cache.UpsertJournal(res.Value())
		return nil, fmt.Errorf("update journal %d: %w", id, err)
	}
	s.Cache.UpsertJournal(got)
	s.saveSnapshot(store.CollectionJournals, s.Cache.Journals())
	return &got, nil
}

// DeleteJournal removes the journal from the cache at once and restores it
// in place when the server refuses.
func (s *Service) DeleteJournal(ctx context.Context, id int64) error {
	if err := s.ready(); err != nil {
		return err
	}
	removed, idx, cached := s.Cache.RemoveJournal(id)
	if err := s.API.DeleteJournal(ctx, id); err != nil {
		if cached {
			s.Cache.InsertJournal(idx, removed)
		}
		return fmt.Errorf("delete journal %d: %w", id, err)
	}
	s.journalEdits.Drop(id)
	s.saveSnapshot(store.CollectionJournals, s.Cache.Journals())
	return nil
}

// JournalPending reports whether an edit of journal id is still waiting for
// the server.
func (s *Service) JournalPending(id int64) bool {
	res, ok := s.journalEdits.Lookup(id)
	return ok && res.Phase().Pending()
}
