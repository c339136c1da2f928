package cache

import "tableflip.dev/jquest/pkg/model"

// MergeFolder returns folders with f merged in by id. A new id is appended.
// An id that is already present keeps its position and takes the fields of
// f, which covers a create that raced with another create of the same
// folder. The input slice is not modified.
func MergeFolder(folders []model.Folder, f model.Folder) []model.Folder {
	out := make([]model.Folder, len(folders), len(folders)+1)
	copy(out, folders)
	if idx := folderIndex(out, f.ID); idx >= 0 {
		out[idx] = refreshFolder(out[idx], f)
		return out
	}
	return append(out, f)
}

func refreshFolder(existing, updated model.Folder) model.Folder {
	existing.Name = updated.Name
	if updated.UserID != 0 {
		existing.UserID = updated.UserID
	}
	if updated.CreatedAt.Raw != "" || updated.CreatedAt.Valid() {
		existing.CreatedAt = updated.CreatedAt
	}
	if updated.UpdatedAt.Raw != "" || updated.UpdatedAt.Valid() {
		existing.UpdatedAt = updated.UpdatedAt
	}
	return existing
}
