package options

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/jquest/pkg/printers"
)

// OutputOptions
type OutputOptions struct {
	Output string
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.PersistentFlags().StringVarP(&po.Output, "output", "o", "text",
		"Output format. One of text, json or yaml.")
}

// Format parses the --output value.
func (o *OutputOptions) Format() (printers.Format, error) {
	return printers.ParseFormat(o.Output)
}

func (o *OutputOptions) structured() bool {
	f, err := o.Format()
	return err == nil && f != printers.FormatText
}

// HandleError prints err as {"error": "..."} for structured output and
// swallows it. Text output returns err unchanged.
func (o *OutputOptions) HandleError(err error) error {
	if o.structured() && err != nil {
		out := map[string]string{
			"error": err.Error(),
		}
		b, err := json.Marshal(out)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(color.Output, string(b))
		return nil
	}
	return err
}
