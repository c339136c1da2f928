package folders

import (
	"context"

	"tableflip.dev/jquest/pkg/api"
	"tableflip.dev/jquest/pkg/app"
	"tableflip.dev/jquest/pkg/forms"
	"tableflip.dev/jquest/pkg/runner"
	"tableflip.dev/jquest/pkg/viewmodel"
)

// List prints every folder with the number of journals in it.
type List struct {
	Service *app.Service
	runner.Output
}

func (n *List) Do(ctx context.Context) error {
	folders, err := n.Service.Folders(ctx)
	if err != nil {
		return runner.Failure(n.Output, err, api.GenericMessage)
	}
	journals, err := n.Service.Journals(ctx)
	if err != nil {
		return runner.Failure(n.Output, err, api.GenericMessage)
	}
	groups := viewmodel.GroupByFolder(folders, journals)
	if n.Structured() {
		return n.Encode(folders)
	}
	n.Pretty().Folders(groups)
	return nil
}

type Add struct {
	Name    string
	Service *app.Service
	runner.Output
}

func (n *Add) Do(ctx context.Context) error {
	f, err := n.Service.CreateFolder(ctx, forms.FolderRequest{Name: n.Name})
	if err != nil {
		return runner.Failure(n.Output, err, api.GenericMessage)
	}
	if n.Structured() {
		return n.Encode(f)
	}
	n.Pretty().Notice("Folder %q created (#%d).", f.Name, f.ID)
	return nil
}
