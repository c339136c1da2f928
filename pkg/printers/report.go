package printers

import (
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/jquest/pkg/app"
)

// Report prints the journals written in the window by folder, then the quest
// board.
func (pp *PrettyPrint) Report(result app.ReportResult, label string) {
	since := result.Since.Local().Format("2006-01-02 15:04")
	until := result.Until.Local().Format("2006-01-02 15:04")
	_, _ = fmt.Fprintf(pp.out(), "Report · last %s (%s → %s)\n\n", label, since, until)

	if result.Total == 0 {
		_, _ = color.New(color.Faint, color.Italic).Fprintln(pp.out(), "  No journals written in this window.")
		pp.NewLine()
	}
	for _, section := range result.Sections {
		pp.TitleWithCount(section.Folder, len(section.Journals), "journal")
		pp.Journals(result.Folders, section.Journals...)
	}

	pp.TitleWithCount("In progress", len(result.InProgress), "quest")
	pp.Quests(result.InProgress...)
	pp.TitleWithCount("Completed", len(result.Completed), "quest")
	pp.Quests(result.Completed...)
	if len(result.NotStarted) > 0 {
		pp.TitleWithCount("Not started", len(result.NotStarted), "quest")
		pp.Quests(result.NotStarted...)
	}
}
