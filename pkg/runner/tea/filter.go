package teaui

import (
	"fmt"
	"sort"
	"strings"

	"tableflip.dev/jquest/pkg/model"
	"tableflip.dev/jquest/pkg/viewmodel"
)

// nextFolder cycles all -> unassigned -> each folder by name -> all.
func nextFolder(cur viewmodel.FolderFilter, folders []model.Folder) viewmodel.FolderFilter {
	sorted := append([]model.Folder(nil), folders...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
	})
	switch {
	case cur.IsAll():
		return viewmodel.Unassigned()
	case cur.IsUnassigned():
		if len(sorted) == 0 {
			return viewmodel.AllFolders()
		}
		return viewmodel.InFolder(sorted[0].ID)
	}
	id, _ := cur.ID()
	for i, f := range sorted {
		if f.ID == id && i+1 < len(sorted) {
			return viewmodel.InFolder(sorted[i+1].ID)
		}
	}
	return viewmodel.AllFolders()
}

// nextArchetype cycles any -> each known archetype -> any.
func nextArchetype(cur string, known []string) string {
	if cur == "" {
		if len(known) == 0 {
			return ""
		}
		return known[0]
	}
	for i, a := range known {
		if strings.EqualFold(a, cur) && i+1 < len(known) {
			return known[i+1]
		}
	}
	return ""
}

// folderFilterByName accepts the keywords of ParseFolderFilter or a folder
// name.
func folderFilterByName(v string, folders []model.Folder) (viewmodel.FolderFilter, error) {
	if f, err := viewmodel.ParseFolderFilter(v); err == nil {
		return f, nil
	}
	for _, f := range folders {
		if strings.EqualFold(f.Name, strings.TrimSpace(v)) {
			return viewmodel.InFolder(f.ID), nil
		}
	}
	return viewmodel.FolderFilter{}, fmt.Errorf("no folder named %q", v)
}
