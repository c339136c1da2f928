package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/jquest/pkg/archetype"
)

func addArchetypes(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "archetypes",
		Short: "List the hero archetypes.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			o := result(cmd, false)
			if o.Structured() {
				return output.HandleError(o.Encode(archetype.All()))
			}
			o.Pretty().Archetypes(archetype.All())
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
