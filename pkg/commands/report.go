package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/jquest/pkg/commands/options"
	"tableflip.dev/jquest/pkg/runner/report"
)

func addReport(topLevel *cobra.Command) {
	ro := &options.ReportOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize journals written and quest progress in a time window",
		Long: `Report lists the journals written in the window grouped by folder, followed by the
quest board split into in progress, completed and not started.

Examples:
  jquest report
  jquest report --last 3d
  jquest report --last 1w2d --calendar`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := service()
			if err != nil {
				return output.HandleError(err)
			}
			s := report.Report{
				Last:     ro.Last,
				Calendar: ro.Calendar,
				Service:  svc,
				Output:   result(cmd, false),
			}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	options.AddReportArgs(cmd, ro)
	topLevel.AddCommand(cmd)
}
