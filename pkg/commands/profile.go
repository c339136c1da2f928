package commands

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"tableflip.dev/jquest/pkg/commands/options"
	"tableflip.dev/jquest/pkg/runner/profile"
)

func addProfile(topLevel *cobra.Command) {
	show := func(cmd *cobra.Command, _ []string) error {
		cmd.SilenceUsage = true
		svc, err := service()
		if err != nil {
			return output.HandleError(err)
		}
		s := profile.Show{Service: svc, Output: result(cmd, false)}
		return output.HandleError(s.Do(context.Background()))
	}

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or change your hero profile.",
		Args:  cobra.NoArgs,
		RunE:  show,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show your profile.",
		Args:  cobra.NoArgs,
		RunE:  show,
	})
	addProfileEdit(cmd)
	topLevel.AddCommand(cmd)
}

// changedString returns the flag value only when it was given.
func changedString(flags *pflag.FlagSet, name string) *string {
	if !flags.Changed(name) {
		return nil
	}
	v, err := flags.GetString(name)
	if err != nil {
		return nil
	}
	return &v
}

func addProfileEdit(topLevel *cobra.Command) {
	ao := &options.AccountOptions{}
	var username string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Change profile fields. Only the given fields change.",
		Example: `
jquest profile edit --nickname Wren --archetype rebel
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			flags := cmd.Flags()
			c := profile.Changes{
				Username:  changedString(flags, "username"),
				Email:     changedString(flags, "email"),
				FirstName: changedString(flags, "first-name"),
				LastName:  changedString(flags, "last-name"),
				Nickname:  changedString(flags, "nickname"),
				Archetype: changedString(flags, "archetype"),
			}
			svc, err := service()
			if err != nil {
				return output.HandleError(err)
			}
			s := profile.Edit{Changes: c, Service: svc, Output: result(cmd, false)}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Account username.")
	options.AddAccountArgs(cmd, ao)
	_ = cmd.RegisterFlagCompletionFunc("archetype", archetypeCompletions)
	topLevel.AddCommand(cmd)
}
