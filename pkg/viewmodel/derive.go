package viewmodel

import (
	"sort"
	"strings"
	"time"

	"tableflip.dev/jquest/pkg/model"
)

// Match applies the search, folder and archetype predicates to j.
func (f Filter) Match(j model.Journal) bool {
	if f.Search != "" && !strings.Contains(strings.ToLower(j.Title), strings.ToLower(f.Search)) {
		return false
	}
	if !f.Folder.Pass(j.FolderID) {
		return false
	}
	if f.Archetype != "" && j.Archetype != f.Archetype {
		return false
	}
	return true
}

// Derive filters src and sorts the result by created_at. Ties keep their
// source order. Journals whose created_at did not parse sort as the oldest.
// The result is a new slice of copies.
func Derive(src []model.Journal, f Filter) []model.Journal {
	out := make([]model.Journal, 0, len(src))
	for _, j := range src {
		if f.Match(j) {
			out = append(out, j.Clone())
		}
	}
	latest := f.sortOrder() == SortLatest
	sort.SliceStable(out, func(a, b int) bool {
		ta, tb := createdAt(out[a]), createdAt(out[b])
		if latest {
			return ta.After(tb)
		}
		return ta.Before(tb)
	})
	return out
}

func createdAt(j model.Journal) time.Time {
	return j.CreatedAt.Time
}

// CreatedSince keeps journals created at or after since. A zero since keeps
// everything.
func CreatedSince(list []model.Journal, since time.Time) []model.Journal {
	if since.IsZero() {
		return list
	}
	out := make([]model.Journal, 0, len(list))
	for _, j := range list {
		if !j.CreatedAt.Time.Before(since) {
			out = append(out, j)
		}
	}
	return out
}

// Archetypes returns the distinct non-empty archetypes in src, in first-seen
// order. The journal screen offers them as filter choices.
func Archetypes(src []model.Journal) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, j := range src {
		if j.Archetype == "" {
			continue
		}
		if _, ok := seen[j.Archetype]; ok {
			continue
		}
		seen[j.Archetype] = struct{}{}
		out = append(out, j.Archetype)
	}
	return out
}
