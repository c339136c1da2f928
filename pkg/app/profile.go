package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"tableflip.dev/jquest/pkg/api"
	"tableflip.dev/jquest/pkg/forms"
	"tableflip.dev/jquest/pkg/model"
	"tableflip.dev/jquest/pkg/optimistic"
	"tableflip.dev/jquest/pkg/session"
	"tableflip.dev/jquest/pkg/store"
)

const (
	ProfileFailedMessage = "Profile update failed."
	NetworkFailedMessage = "Network error."
)

// FailureMessages is what the user sees for err: the server's messages,
// "Network error." when the server was not reached, else fallback.
func FailureMessages(err error, fallback string) []string {
	var netErr *api.NetworkError
	if errors.As(err, &netErr) {
		return []string{NetworkFailedMessage}
	}
	return api.Messages(err, fallback)
}

// Profile loads the editable profile of the session user.
func (s *Service) Profile(ctx context.Context) (*model.User, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	u, err := s.currentUser()
	if err != nil {
		if u, err = s.Whoami(ctx); err != nil {
			return nil, err
		}
	}
	p, err := s.API.Profile(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	s.Session.Dispatch(session.UpdateUser(p))
	s.saveSnapshot(store.CollectionUser, p)
	return p, nil
}

// EditProfile shows the edited profile at once and confirms it with the
// server. When the server rejects it the session user goes back to the
// profile as it was before the edit.
func (s *Service) EditProfile(ctx context.Context, req forms.ProfileEditRequest) (*model.User, error) {
	if err := forms.Validate(req); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	current, err := s.currentUser()
	if err != nil {
		return nil, err
	}

	res := s.profileEdits.Get(current.ID, current)
	if !res.Phase().Pending() {
		res.Set(current)
	}
	next := req.Apply(current)

	got, err := res.Mutate(ctx, next, func(ctx context.Context, n *model.User) (*model.User, error) {
		s.Session.Dispatch(session.UpdateUser(n))
		return s.API.UpdateProfile(ctx, current.ID, req)
	})
	switch {
	case errors.Is(err, optimistic.ErrSuperseded), errors.Is(err, optimistic.ErrDetached):
		s.Log.Debug("profile edit discarded", zap.Error(err))
		return nil, err
	case err != nil:
		s.Session.Dispatch(session.UpdateUser(res.Value()))
		return nil, fmt.Errorf("update profile: %w", err)
	}
	s.Session.Dispatch(session.UpdateUser(got))
	s.saveSnapshot(store.CollectionUser, got)
	return got, nil
}
