package options

import (
	"github.com/spf13/cobra"
)

// JournalOptions are the journal fields. Only flags that were set are
// applied on edit.
type JournalOptions struct {
	Title     string
	Body      string
	Archetype string
	FolderID  int64
	NoFolder  bool
	NewFolder string
}

func AddJournalArgs(cmd *cobra.Command, o *JournalOptions) {
	cmd.Flags().StringVarP(&o.Title, "title", "t", "",
		"Journal title.")
	cmd.Flags().StringVarP(&o.Body, "body", "b", "",
		`Journal text. Use "-" to read it from stdin.`)
	cmd.Flags().StringVarP(&o.Archetype, "archetype", "a", "",
		"Archetype the journal is written as.")
	cmd.Flags().Int64Var(&o.FolderID, "folder-id", 0,
		"Put the journal in this folder.")
	cmd.Flags().BoolVar(&o.NoFolder, "no-folder", false,
		"Leave the journal unassigned.")
	cmd.Flags().StringVar(&o.NewFolder, "new-folder", "",
		"Create a folder with this name and put the journal in it.")
	cmd.MarkFlagsMutuallyExclusive("folder-id", "no-folder", "new-folder")
}
