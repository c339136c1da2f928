package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"tableflip.dev/jquest/pkg/archetype"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish]",
		Short: "Generates shell completion scripts",
		Long: `To load completion run

. <(jquest completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(jquest completion)
`,
		ValidArgs: []string{"bash", "zsh", "fish"},
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := "bash"
			if len(args) > 0 {
				shell = args[0]
			}
			switch shell {
			case "zsh":
				return topLevel.GenZshCompletion(os.Stdout)
			case "fish":
				return topLevel.GenFishCompletion(os.Stdout, true)
			default:
				return topLevel.GenBashCompletionV2(os.Stdout, true)
			}
		},
	}

	topLevel.AddCommand(cmd)
}

func archetypeCompletions(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return archetype.Names(), cobra.ShellCompDirectiveNoFileComp
}

// folderCompletions offers the saved folders without contacting the server.
func folderCompletions(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	out := []string{"all", "unassigned"}
	svc, err := service()
	if err != nil {
		return out, cobra.ShellCompDirectiveNoFileComp
	}
	if _, err := svc.LoadSnapshots(); err != nil {
		return out, cobra.ShellCompDirectiveNoFileComp
	}
	for _, f := range svc.Cache.Folders() {
		out = append(out, fmt.Sprintf("%s\t%s", strconv.FormatInt(f.ID, 10), f.Name))
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
