package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tableflip.dev/jquest/pkg/runner"
	teaui "tableflip.dev/jquest/pkg/runner/tea"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
jquest ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			// Log lines on stderr would tear the alt screen.
			log := zap.NewNop()
			if root.Verbose {
				log = logger
			}
			e := runner.Env{APIURL: root.APIURL, Log: log}
			svc, err := e.Service()
			if err != nil {
				return err
			}
			return teaui.Run(svc, log)
		},
	}

	topLevel.AddCommand(cmd)
}
