package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/jquest/pkg/commands/options"
	"tableflip.dev/jquest/pkg/runner/folders"
)

func addFolders(topLevel *cobra.Command) {
	ido := &options.IDOptions{}

	list := func(cmd *cobra.Command, _ []string) error {
		cmd.SilenceUsage = true
		svc, err := service()
		if err != nil {
			return output.HandleError(err)
		}
		s := folders.List{Service: svc, Output: result(cmd, ido.ShowID)}
		return output.HandleError(s.Do(context.Background()))
	}

	cmd := &cobra.Command{
		Use:     "folders",
		Aliases: []string{"folder"},
		Short:   "List folders and how many journals each holds.",
		Args:    cobra.NoArgs,
		RunE:    list,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List folders.",
		Args:  cobra.NoArgs,
		RunE:  list,
	})

	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a folder.",
		Example: `
jquest folders add Travel
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := service()
			if err != nil {
				return output.HandleError(err)
			}
			s := folders.Add{Name: strings.Join(args, " "), Service: svc, Output: result(cmd, true)}
			return output.HandleError(s.Do(context.Background()))
		},
	}
	cmd.AddCommand(add)

	options.AddShowIDArgs(cmd, ido)
	topLevel.AddCommand(cmd)
}
