package teaui

import (
	"strings"

	"tableflip.dev/jquest/pkg/model"
)

// journalItem is a row of the journal list.
type journalItem struct {
	journal model.Journal
	folder  string
	pending bool
}

func (it journalItem) Title() string {
	if it.pending {
		return "… " + it.journal.Title
	}
	return it.journal.Title
}

func (it journalItem) Description() string {
	parts := []string{it.folder}
	if it.journal.Archetype != "" {
		parts = append(parts, it.journal.Archetype)
	}
	if it.journal.CreatedAt.Valid() {
		parts = append(parts, it.journal.CreatedAt.Local().Format("Jan 2, 2006"))
	}
	return strings.Join(parts, " · ")
}

func (it journalItem) FilterValue() string { return it.journal.Title }
