package report

import (
	"context"
	"time"

	"tableflip.dev/jquest/pkg/api"
	"tableflip.dev/jquest/pkg/app"
	"tableflip.dev/jquest/pkg/model"
	"tableflip.dev/jquest/pkg/runner"
	"tableflip.dev/jquest/pkg/timeutil"
)

// Report prints what was written and achieved in the last window.
type Report struct {
	Last     string
	Calendar bool

	// Now defaults to time.Now.
	Now time.Time

	Service *app.Service
	runner.Output
}

func (n *Report) Do(ctx context.Context) error {
	duration, label, err := timeutil.ParseWindow(n.Last)
	if err != nil {
		return err
	}
	until := n.Now
	if until.IsZero() {
		until = time.Now()
	}
	since := until.Add(-duration)

	result, err := n.Service.Report(ctx, since, until)
	if err != nil {
		return runner.Failure(n.Output, err, api.GenericMessage)
	}
	if n.Structured() {
		return n.Encode(result)
	}
	pp := n.Pretty()
	pp.Report(result, label)
	if n.Calendar {
		var written []model.Journal
		for _, s := range result.Sections {
			written = append(written, s.Journals...)
		}
		since := since.Local()
		for m := time.Date(since.Year(), since.Month(), 1, 0, 0, 0, 0, time.Local); !m.After(until); m = m.AddDate(0, 1, 0) {
			pp.Calendar(m, written...)
		}
	}
	return nil
}
