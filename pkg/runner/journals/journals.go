package journals

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/jquest/pkg/api"
	"tableflip.dev/jquest/pkg/app"
	"tableflip.dev/jquest/pkg/forms"
	"tableflip.dev/jquest/pkg/model"
	"tableflip.dev/jquest/pkg/runner"
	"tableflip.dev/jquest/pkg/timeutil"
	"tableflip.dev/jquest/pkg/viewmodel"
)

const (
	SaveFailedMessage   = "Failed to save journal"
	DeleteFailedMessage = "Failed to delete journal"
)

// List prints the filtered, sorted journal list.
type List struct {
	Filter viewmodel.Filter
	Since  time.Time

	// Offline reads the last saved copy instead of asking the API.
	Offline bool

	Service *app.Service
	Log     *zap.Logger
	runner.Output
}

func (n *List) Do(ctx context.Context) error {
	var (
		list    []model.Journal
		folders []model.Folder
		savedAt time.Time
		err     error
	)
	if n.Offline {
		if savedAt, err = n.Service.LoadSnapshots(); err != nil {
			return err
		}
		list = viewmodel.Derive(n.Service.Cache.Journals(), n.Filter)
		folders = n.Service.Cache.Folders()
	} else {
		if list, err = n.Service.ListJournals(ctx, n.Filter); err != nil {
			return runner.Failure(n.Output, err, api.GenericMessage)
		}
		if folders, err = n.Service.Folders(ctx); err != nil && n.Log != nil {
			n.Log.Warn("folders unavailable, labels may be missing", zap.Error(err))
		}
	}
	if !n.Since.IsZero() {
		list = viewmodel.CreatedSince(list, n.Since)
	}

	if n.Structured() {
		return n.Encode(list)
	}
	pp := n.Pretty()
	if n.Offline {
		pp.Notice("offline copy saved %s", timeutil.Ago(savedAt, time.Now()))
	}
	title := "Journals"
	if s := n.Filter.String(); s != "" {
		title += " (" + s + ")"
	}
	pp.TitleWithCount(title, len(list), "journal")
	pp.Journals(folders, list...)
	return nil
}

// Get prints one journal in full.
type Get struct {
	ID      int64
	Service *app.Service
	runner.Output
}

func (n *Get) Do(ctx context.Context) error {
	j, err := n.Service.Journal(ctx, n.ID)
	if err != nil {
		return runner.Failure(n.Output, err, api.GenericMessage)
	}
	if n.Structured() {
		return n.Encode(j)
	}
	folders, _ := n.Service.Folders(ctx)
	n.Pretty().Journal(folders, *j)
	return nil
}

// Add creates a journal, creating its folder first when NewFolder is set.
type Add struct {
	Request   forms.JournalRequest
	NewFolder string

	Service *app.Service
	runner.Output
}

func (n *Add) Do(ctx context.Context) error {
	if err := forms.Validate(n.Request); err != nil {
		return runner.Failure(n.Output, err, SaveFailedMessage)
	}
	if err := n.Service.ResolveFolder(ctx, &n.Request, n.NewFolder); err != nil {
		return runner.Failure(n.Output, err, SaveFailedMessage)
	}
	j, err := n.Service.CreateJournal(ctx, n.Request)
	if err != nil {
		return runner.Failure(n.Output, err, SaveFailedMessage)
	}
	if n.Structured() {
		return n.Encode(j)
	}
	n.Pretty().Notice("Journal saved (#%d).", j.ID)
	return nil
}

// Changes are the journal fields given on the command line. Nil means keep.
type Changes struct {
	Title       *string
	Body        *string
	Archetype   *string
	FolderID    *int64
	ClearFolder bool
	NewFolder   string
}

func (c Changes) apply(req *forms.JournalRequest) {
	if c.Title != nil {
		req.Title = *c.Title
	}
	if c.Body != nil {
		req.Body = *c.Body
	}
	if c.Archetype != nil {
		req.Archetype = *c.Archetype
	}
	switch {
	case c.ClearFolder:
		req.FolderID = nil
	case c.FolderID != nil:
		req.FolderID = model.FolderRef(*c.FolderID)
	}
}

// Edit changes an existing journal.
type Edit struct {
	ID      int64
	Changes Changes

	Service *app.Service
	runner.Output
}

func (n *Edit) Do(ctx context.Context) error {
	current, err := n.Service.Journal(ctx, n.ID)
	if err != nil {
		return runner.Failure(n.Output, err, api.GenericMessage)
	}
	req := forms.JournalFromModel(*current)
	n.Changes.apply(&req)
	if err := forms.Validate(req); err != nil {
		return runner.Failure(n.Output, err, SaveFailedMessage)
	}
	if err := n.Service.ResolveFolder(ctx, &req, n.Changes.NewFolder); err != nil {
		return runner.Failure(n.Output, err, SaveFailedMessage)
	}
	j, err := n.Service.UpdateJournal(ctx, n.ID, req)
	if err != nil {
		return runner.Failure(n.Output, err, SaveFailedMessage)
	}
	if n.Structured() {
		return n.Encode(j)
	}
	n.Pretty().Notice("Journal saved (#%d).", j.ID)
	return nil
}

// Delete removes a journal.
type Delete struct {
	ID int64

	// Confirm is asked before deleting when set.
	Confirm func(title string) (bool, error)

	Service *app.Service
	runner.Output
}

func (n *Delete) Do(ctx context.Context) error {
	if n.Confirm != nil {
		title := "journal #" + strconv.FormatInt(n.ID, 10)
		if j, err := n.Service.Journal(ctx, n.ID); err == nil {
			title = j.Title
		}
		ok, err := n.Confirm(title)
		if err != nil {
			return err
		}
		if !ok {
			n.Pretty().Notice("Nothing deleted.")
			return nil
		}
	}
	if err := n.Service.DeleteJournal(ctx, n.ID); err != nil {
		return runner.Failure(n.Output, err, DeleteFailedMessage)
	}
	if n.Structured() {
		return n.Encode(map[string]int64{"deleted": n.ID})
	}
	n.Pretty().Notice("Journal deleted.")
	return nil
}
