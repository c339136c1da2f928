package viewmodel

import (
	"sort"
	"strings"

	"tableflip.dev/jquest/pkg/model"
)

const (
	// UnknownFolder labels a folder id missing from the loaded folder set.
	UnknownFolder = "Unknown"
	NoFolder      = "None"

	// PreviewLength is the number of characters shown in list previews.
	PreviewLength = 160
)

// FolderLabel names the folder a journal points at.
func FolderLabel(folders []model.Folder, id *int64) string {
	if id == nil {
		return NoFolder
	}
	for _, f := range folders {
		if f.ID == *id {
			return f.Name
		}
	}
	return UnknownFolder
}

// Preview trims body to n characters, appending "..." when it was cut.
func Preview(body string, n int) string {
	body = strings.TrimSpace(body)
	r := []rune(body)
	if n <= 0 || len(r) <= n {
		return body
	}
	return strings.TrimSpace(string(r[:n])) + "..."
}

// FolderGroup is a folder with the journals that reference it.
type FolderGroup struct {
	ID       *int64
	Name     string
	Count    int
	Journals []model.Journal
}

// GroupByFolder groups journals by folder in folder order. Unassigned
// journals come last, followed by journals pointing at folders that are not
// loaded. Empty groups for loaded folders are kept so they stay selectable.
func GroupByFolder(folders []model.Folder, journals []model.Journal) []FolderGroup {
	byID := make(map[int64][]model.Journal)
	var unassigned []model.Journal
	var dangling []model.Journal
	known := make(map[int64]struct{}, len(folders))
	for _, f := range folders {
		known[f.ID] = struct{}{}
	}
	for _, j := range journals {
		switch {
		case j.FolderID == nil:
			unassigned = append(unassigned, j)
		default:
			if _, ok := known[*j.FolderID]; ok {
				byID[*j.FolderID] = append(byID[*j.FolderID], j)
			} else {
				dangling = append(dangling, j)
			}
		}
	}

	groups := make([]FolderGroup, 0, len(folders)+2)
	ordered := append([]model.Folder(nil), folders...)
	sort.SliceStable(ordered, func(a, b int) bool {
		return strings.ToLower(ordered[a].Name) < strings.ToLower(ordered[b].Name)
	})
	for _, f := range ordered {
		list := byID[f.ID]
		groups = append(groups, FolderGroup{ID: model.FolderRef(f.ID), Name: f.Name, Count: len(list), Journals: list})
	}
	if len(unassigned) > 0 {
		groups = append(groups, FolderGroup{Name: "Unassigned", Count: len(unassigned), Journals: unassigned})
	}
	if len(dangling) > 0 {
		groups = append(groups, FolderGroup{Name: UnknownFolder, Count: len(dangling), Journals: dangling})
	}
	return groups
}
