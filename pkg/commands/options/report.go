package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/jquest/pkg/timeutil"
)

// ReportOptions
type ReportOptions struct {
	Last     string
	Calendar bool
}

func AddReportArgs(cmd *cobra.Command, o *ReportOptions) {
	cmd.Flags().StringVar(&o.Last, "last", timeutil.DefaultWindow,
		"Time window to include, for example 3d or 1w2d.")
	cmd.Flags().BoolVarP(&o.Calendar, "calendar", "m", false,
		"Show a month calendar marking days with journals.")
}
