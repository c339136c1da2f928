// Package viewmodel derives what the journal screens render from the cached
// journal list and the current filter. Everything here is pure: the same
// inputs always give the same ordered output and inputs are never modified.
package viewmodel

import (
	"fmt"
	"strconv"
	"strings"
)

type folderKind int

const (
	folderAll folderKind = iota
	folderUnassigned
	folderID
)

// FolderFilter selects journals by folder. The zero value passes everything.
type FolderFilter struct {
	kind folderKind
	id   int64
}

func AllFolders() FolderFilter { return FolderFilter{} }

// Unassigned passes only journals without a folder.
func Unassigned() FolderFilter { return FolderFilter{kind: folderUnassigned} }

// InFolder passes only journals in folder id.
func InFolder(id int64) FolderFilter { return FolderFilter{kind: folderID, id: id} }

// ParseFolderFilter accepts "all", "unassigned" (or "null"), or a decimal
// folder id. Empty input means all.
func ParseFolderFilter(v string) (FolderFilter, error) {
	switch s := strings.ToLower(strings.TrimSpace(v)); s {
	case "", "all":
		return AllFolders(), nil
	case "unassigned", "null", "none":
		return Unassigned(), nil
	default:
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return FolderFilter{}, fmt.Errorf("invalid folder filter %q: want all, unassigned or a folder id", v)
		}
		return InFolder(id), nil
	}
}

// ID returns the folder id and whether the filter selects a single folder.
func (f FolderFilter) ID() (int64, bool) {
	return f.id, f.kind == folderID
}

func (f FolderFilter) IsAll() bool        { return f.kind == folderAll }
func (f FolderFilter) IsUnassigned() bool { return f.kind == folderUnassigned }

func (f FolderFilter) String() string {
	switch f.kind {
	case folderUnassigned:
		return "unassigned"
	case folderID:
		return strconv.FormatInt(f.id, 10)
	default:
		return "all"
	}
}

// Pass reports whether a journal with the given folder id passes.
func (f FolderFilter) Pass(id *int64) bool {
	switch f.kind {
	case folderUnassigned:
		return id == nil
	case folderID:
		return id != nil && *id == f.id
	default:
		return true
	}
}

// SortOrder orders journals by creation time.
type SortOrder string

const (
	SortLatest SortOrder = "latest"
	SortOldest SortOrder = "oldest"
)

// ParseSortOrder accepts latest or oldest; empty means latest.
func ParseSortOrder(v string) (SortOrder, error) {
	switch s := SortOrder(strings.ToLower(strings.TrimSpace(v))); s {
	case "", SortLatest:
		return SortLatest, nil
	case SortOldest:
		return SortOldest, nil
	default:
		return "", fmt.Errorf("invalid sort %q: want latest or oldest", v)
	}
}

// Filter is the ephemeral list state of the journal screen. It is never
// persisted.
type Filter struct {
	Search    string
	Folder    FolderFilter
	Archetype string
	Sort      SortOrder
}

// DefaultFilter shows everything, newest first.
func DefaultFilter() Filter {
	return Filter{Folder: AllFolders(), Sort: SortLatest}
}

func (f Filter) String() string {
	parts := []string{"folder=" + f.Folder.String(), "sort=" + string(f.sortOrder())}
	if f.Search != "" {
		parts = append(parts, fmt.Sprintf("search=%q", f.Search))
	}
	if f.Archetype != "" {
		parts = append(parts, "archetype="+f.Archetype)
	}
	return strings.Join(parts, " ")
}

func (f Filter) sortOrder() SortOrder {
	if f.Sort == SortOldest {
		return SortOldest
	}
	return SortLatest
}
