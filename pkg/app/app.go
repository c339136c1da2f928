package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"tableflip.dev/jquest/pkg/api"
	"tableflip.dev/jquest/pkg/cache"
	"tableflip.dev/jquest/pkg/forms"
	"tableflip.dev/jquest/pkg/model"
	"tableflip.dev/jquest/pkg/optimistic"
	"tableflip.dev/jquest/pkg/session"
	"tableflip.dev/jquest/pkg/store"
)

// API is the remote surface the Service drives. *api.Client implements it.
type API interface {
	Login(ctx context.Context, req forms.LoginRequest) (*model.User, error)
	Signup(ctx context.Context, req forms.SignupRequest) (*model.User, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*model.User, error)

	Journals(ctx context.Context) ([]model.Journal, error)
	Journal(ctx context.Context, id int64) (*model.Journal, error)
	CreateJournal(ctx context.Context, req forms.JournalRequest) (*model.Journal, error)
	UpdateJournal(ctx context.Context, id int64, req forms.JournalRequest) (*model.Journal, error)
	DeleteJournal(ctx context.Context, id int64) error

	Folders(ctx context.Context) ([]model.Folder, error)
	CreateFolder(ctx context.Context, req forms.FolderRequest) (*model.Folder, error)

	Profile(ctx context.Context, id int64) (*model.User, error)
	UpdateProfile(ctx context.Context, id int64, req forms.ProfileEditRequest) (*model.User, error)

	Quests(ctx context.Context) ([]model.Quest, error)
	CreateQuest(ctx context.Context, req forms.QuestRequest) (*model.Quest, error)
	UpdateQuest(ctx context.Context, id int64, patch forms.QuestPatch) (*model.Quest, error)
}

// CookieClearer forgets the session cookie held by the HTTP client.
type CookieClearer interface {
	Clear() error
}

var (
	ErrNotSignedIn = errors.New("app: not signed in")
	ErrNotFound    = errors.New("app: not found")
)

// Service provides the journal, folder, quest and profile operations shared by
// the CLI and the TUI. It is the only writer of the session store and the
// collection cache.
type Service struct {
	API         API
	Persistence store.Persistence
	Cookies     CookieClearer
	Session     *session.Store
	Cache       *cache.Cache
	Log         *zap.Logger

	journalEdits *optimistic.Set[int64, model.Journal]
	questEdits   *optimistic.Set[int64, model.Quest]
	profileEdits *optimistic.Set[int64, *model.User]
}

// New wires a Service. p may be nil, in which case nothing is saved to disk.
func New(remote API, p store.Persistence, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		API:          remote,
		Persistence:  p,
		Session:      session.NewStore(),
		Cache:        cache.New(),
		Log:          log.Named("app"),
		journalEdits: optimistic.NewSet[int64](model.Journal.Clone),
		questEdits:   optimistic.NewSet[int64, model.Quest](nil),
		profileEdits: optimistic.NewSet[int64]((*model.User).Clone),
	}
}

func (s *Service) ready() error {
	if s.API == nil {
		return errors.New("app: no api configured")
	}
	return nil
}

func (s *Service) currentUser() (*model.User, error) {
	u := s.Session.User()
	if u == nil {
		return nil, ErrNotSignedIn
	}
	return u, nil
}

// Bootstrap loads the session user and then the journals, the way the
// application starts.
func (s *Service) Bootstrap(ctx context.Context) (*model.User, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	journals, err := session.Bootstrap(ctx, s.Session, s.API, s.Log)
	if u := s.Session.User(); u != nil {
		s.saveSnapshot(store.CollectionUser, u)
	}
	if err != nil {
		return s.Session.User(), err
	}
	s.Cache.SetJournals(journals)
	s.saveSnapshot(store.CollectionJournals, journals)
	return s.Session.User(), nil
}

// Whoami returns the session user, asking the API when none is loaded.
func (s *Service) Whoami(ctx context.Context) (*model.User, error) {
	if u := s.Session.User(); u != nil {
		return u, nil
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	u, err := s.API.Me(ctx)
	if err != nil {
		if api.IsUnauthorized(err) {
			s.Session.Dispatch(session.StopLoading(nil))
			return nil, ErrNotSignedIn
		}
		s.Session.Dispatch(session.StopLoading(err))
		return nil, err
	}
	s.Session.Dispatch(session.SetUser(u))
	s.saveSnapshot(store.CollectionUser, u)
	return u, nil
}

// Login signs in and records the session user.
func (s *Service) Login(ctx context.Context, req forms.LoginRequest) (*model.User, error) {
	if err := forms.Validate(req); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	u, err := s.API.Login(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	s.Session.Dispatch(session.SetUser(u))
	s.saveSnapshot(store.CollectionUser, u)
	return u, nil
}

// Signup creates an account and signs it in.
func (s *Service) Signup(ctx context.Context, req forms.SignupRequest) (*model.User, error) {
	if err := forms.Validate(req); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	u, err := s.API.Signup(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}
	s.Session.Dispatch(session.SetUser(u))
	s.saveSnapshot(store.CollectionUser, u)
	return u, nil
}

// Logout ends the session. When the server could not be reached the local
// session is kept so the user can retry; any response from the server clears
// it.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.ready(); err != nil {
		return err
	}
	err := s.API.Logout(ctx)
	var netErr *api.NetworkError
	if errors.As(err, &netErr) {
		return fmt.Errorf("logout: %w", err)
	}
	if err != nil {
		s.Log.Warn("logout rejected, clearing local session", zap.Error(err))
	}

	s.journalEdits.DetachAll()
	s.questEdits.DetachAll()
	s.profileEdits.DetachAll()
	s.Session.Dispatch(session.Logout())
	s.Cache.Reset()

	var errs []error
	if s.Cookies != nil {
		errs = append(errs, s.Cookies.Clear())
	}
	if s.Persistence != nil {
		errs = append(errs, s.Persistence.Clear())
	}
	return errors.Join(errs...)
}

func (s *Service) saveSnapshot(c store.Collection, v interface{}) {
	if s.Persistence == nil {
		return
	}
	if err := s.Persistence.SaveSnapshot(c, v); err != nil {
		s.Log.Warn("save snapshot", zap.String("collection", string(c)), zap.Error(err))
	}
}
