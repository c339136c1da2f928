package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/jquest/pkg/archetype"
	"tableflip.dev/jquest/pkg/timeutil"
	"tableflip.dev/jquest/pkg/viewmodel"
)

// FilterOptions select and order the journal list.
type FilterOptions struct {
	Search    string
	Folder    string
	Archetype string
	Sort      string
	Since     string
	Offline   bool
}

func AddFilterArgs(cmd *cobra.Command, o *FilterOptions) {
	cmd.Flags().StringVarP(&o.Search, "search", "s", "",
		"Only journals whose title contains this text.")
	cmd.Flags().StringVarP(&o.Folder, "folder", "f", "all",
		`Folder id, "all" or "unassigned".`)
	cmd.Flags().StringVarP(&o.Archetype, "archetype", "a", "",
		"Only journals written as this archetype.")
	cmd.Flags().StringVar(&o.Sort, "sort", "latest",
		"latest or oldest first.")
	cmd.Flags().StringVar(&o.Since, "since", "",
		`Only journals created in this window or after this date, example: --since=1w or --since=2024-03-01.`)
	cmd.Flags().BoolVar(&o.Offline, "offline", false,
		"Show the last saved copy without contacting the server.")
}

// Filter builds the list filter.
func (o *FilterOptions) Filter() (viewmodel.Filter, error) {
	folder, err := viewmodel.ParseFolderFilter(o.Folder)
	if err != nil {
		return viewmodel.Filter{}, err
	}
	sort, err := viewmodel.ParseSortOrder(o.Sort)
	if err != nil {
		return viewmodel.Filter{}, err
	}
	return viewmodel.Filter{
		Search:    o.Search,
		Folder:    folder,
		Archetype: archetype.Normalize(o.Archetype),
		Sort:      sort,
	}, nil
}

// SinceTime resolves --since against now. Unset gives the zero time.
func (o *FilterOptions) SinceTime(now time.Time) (time.Time, error) {
	return timeutil.ParseSince(o.Since, now)
}
