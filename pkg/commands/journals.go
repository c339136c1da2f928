package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/jquest/pkg/archetype"
	"tableflip.dev/jquest/pkg/commands/options"
	"tableflip.dev/jquest/pkg/forms"
	"tableflip.dev/jquest/pkg/model"
	"tableflip.dev/jquest/pkg/runner/journals"
)

func addJournals(topLevel *cobra.Command) {
	list := newJournalsList()

	cmd := &cobra.Command{
		Use:     "journals",
		Aliases: []string{"journal", "j"},
		Short:   "List, read and write journals.",
		Args:    cobra.NoArgs,
		RunE:    list.RunE,
	}
	cmd.Flags().AddFlagSet(list.Flags())

	cmd.AddCommand(list)
	addJournalGet(cmd)
	addJournalAdd(cmd)
	addJournalEdit(cmd)
	addJournalDelete(cmd)
	topLevel.AddCommand(cmd)
}

func newJournalsList() *cobra.Command {
	fo := &options.FilterOptions{}
	ido := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List journals, newest first.",
		Example: `
jquest journals
jquest journals list --folder unassigned --sort oldest
jquest journals --search dragon --since 2w
jquest journals --offline
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			filter, err := fo.Filter()
			if err != nil {
				return output.HandleError(err)
			}
			since, err := fo.SinceTime(time.Now())
			if err != nil {
				return output.HandleError(err)
			}
			svc, err := service()
			if err != nil {
				return output.HandleError(err)
			}
			s := journals.List{
				Filter:  filter,
				Since:   since,
				Offline: fo.Offline,
				Service: svc,
				Log:     logger,
				Output:  result(cmd, ido.ShowID),
			}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	options.AddFilterArgs(cmd, fo)
	options.AddShowIDArgs(cmd, ido)
	_ = cmd.RegisterFlagCompletionFunc("archetype", archetypeCompletions)
	_ = cmd.RegisterFlagCompletionFunc("folder", folderCompletions)
	return cmd
}

func addJournalGet(topLevel *cobra.Command) {
	var id int64

	cmd := &cobra.Command{
		Use:     "get ID",
		Aliases: []string{"show", "read"},
		Short:   "Print one journal in full.",
		Example: `
jquest journals get 12
`,
		Args: options.IDArg(&id),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := service()
			if err != nil {
				return output.HandleError(err)
			}
			s := journals.Get{ID: id, Service: svc, Output: result(cmd, true)}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	topLevel.AddCommand(cmd)
}

// readBody resolves --body, reading stdin when it is "-".
func readBody(body string) (string, error) {
	if body != "-" {
		return body, nil
	}
	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func addJournalAdd(topLevel *cobra.Command) {
	jo := &options.JournalOptions{}
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:     "add [title]",
		Aliases: []string{"new", "write"},
		Short:   "Write a new journal.",
		Example: `
jquest journals add "Slept under the stars" --body "The fire went out at dawn."
jquest journals add -i
jquest journals add "Road notes" --new-folder Travel --body - < notes.txt
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) > 0 {
				if jo.Title != "" {
					return errors.New("title given twice, use the argument or --title")
				}
				jo.Title = strings.Join(args, " ")
			}
			body, err := readBody(jo.Body)
			if err != nil {
				return output.HandleError(err)
			}
			if i.Interactive {
				p := prompter(cmd)
				if jo.Title == "" {
					if jo.Title, err = p.Line("Title", ""); err != nil {
						return output.HandleError(err)
					}
				}
				if body == "" {
					if body, err = p.Multiline("Body"); err != nil {
						return output.HandleError(err)
					}
				}
			}

			req := forms.JournalRequest{
				Title:     strings.TrimSpace(jo.Title),
				Body:      body,
				Archetype: archetype.Normalize(jo.Archetype),
			}
			if jo.FolderID != 0 {
				req.FolderID = model.FolderRef(jo.FolderID)
			}
			svc, err := service()
			if err != nil {
				return output.HandleError(err)
			}
			s := journals.Add{
				Request:   req,
				NewFolder: jo.NewFolder,
				Service:   svc,
				Output:    result(cmd, true),
			}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	options.AddJournalArgs(cmd, jo)
	options.InteractiveArgs(cmd, i)
	_ = cmd.RegisterFlagCompletionFunc("archetype", archetypeCompletions)
	topLevel.AddCommand(cmd)
}

// journalChanges keeps only the flags that were given.
func journalChanges(cmd *cobra.Command, jo *options.JournalOptions) (journals.Changes, error) {
	var c journals.Changes
	flags := cmd.Flags()
	c.Title = changedString(flags, "title")
	if flags.Changed("body") {
		body, err := readBody(jo.Body)
		if err != nil {
			return c, err
		}
		c.Body = &body
	}
	if flags.Changed("archetype") {
		a := archetype.Normalize(jo.Archetype)
		c.Archetype = &a
	}
	if flags.Changed("folder-id") {
		c.FolderID = &jo.FolderID
	}
	c.ClearFolder = jo.NoFolder
	c.NewFolder = jo.NewFolder
	return c, nil
}

func addJournalEdit(topLevel *cobra.Command) {
	var id int64
	jo := &options.JournalOptions{}

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change a journal. Only the given fields change.",
		Example: `
jquest journals edit 12 --title "Slept under the moon"
jquest journals edit 12 --no-folder
`,
		Args: options.IDArg(&id),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			changes, err := journalChanges(cmd, jo)
			if err != nil {
				return output.HandleError(err)
			}
			svc, err := service()
			if err != nil {
				return output.HandleError(err)
			}
			s := journals.Edit{ID: id, Changes: changes, Service: svc, Output: result(cmd, true)}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	options.AddJournalArgs(cmd, jo)
	_ = cmd.RegisterFlagCompletionFunc("archetype", archetypeCompletions)
	topLevel.AddCommand(cmd)
}

func addJournalDelete(topLevel *cobra.Command) {
	var id int64
	yo := &options.YesOptions{}

	cmd := &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a journal.",
		Example: `
jquest journals delete 12
jquest journals delete 12 --yes
`,
		Args: options.IDArg(&id),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := service()
			if err != nil {
				return output.HandleError(err)
			}
			s := journals.Delete{ID: id, Service: svc, Output: result(cmd, false)}
			if !yo.Yes {
				p := prompter(cmd)
				s.Confirm = func(title string) (bool, error) {
					return p.Confirm(fmt.Sprintf("Delete %q?", title))
				}
			}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	options.AddYesArg(cmd, yo)
	topLevel.AddCommand(cmd)
}
