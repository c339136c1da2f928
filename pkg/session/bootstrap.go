package session

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"tableflip.dev/jquest/pkg/api"
	"tableflip.dev/jquest/pkg/model"
)

// ErrSignedOut is returned by Bootstrap when the API has no session.
var ErrSignedOut = errors.New("session: not signed in")

// Stage names a bootstrap step.
type Stage string

const (
	StageFetchUser     Stage = "fetch-user"
	StageFetchJournals Stage = "fetch-journals"
)

// StageError reports which bootstrap stage failed.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("session: %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Fetcher is the part of the API client Bootstrap needs.
type Fetcher interface {
	Me(ctx context.Context) (*model.User, error)
	Journals(ctx context.Context) ([]model.Journal, error)
}

// Bootstrap loads the session user and then that user's journals. Journals
// are only requested once a user is confirmed. A 401 from the user fetch
// stops loading and returns ErrSignedOut.
func Bootstrap(ctx context.Context, store *Store, f Fetcher, log *zap.Logger) ([]model.Journal, error) {
	if log == nil {
		log = zap.NewNop()
	}

	log.Debug("bootstrap stage", zap.String("stage", string(StageFetchUser)))
	user, err := f.Me(ctx)
	switch {
	case api.IsUnauthorized(err):
		store.Dispatch(StopLoading(nil))
		return nil, ErrSignedOut
	case err != nil:
		store.Dispatch(StopLoading(err))
		return nil, &StageError{Stage: StageFetchUser, Err: err}
	case user == nil:
		store.Dispatch(StopLoading(nil))
		return nil, ErrSignedOut
	}
	store.Dispatch(SetUser(user))

	log.Debug("bootstrap stage", zap.String("stage", string(StageFetchJournals)), zap.Int64("user", user.ID))
	journals, err := f.Journals(ctx)
	if err != nil {
		return nil, &StageError{Stage: StageFetchJournals, Err: err}
	}
	return journals, nil
}
