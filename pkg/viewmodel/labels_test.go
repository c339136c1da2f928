package viewmodel

import (
	"strings"
	"testing"

	"tableflip.dev/jquest/pkg/model"
)

func TestFolderLabel(t *testing.T) {
	folders := []model.Folder{{ID: 5, Name: "Dreams"}}
	if got := FolderLabel(folders, model.FolderRef(5)); got != "Dreams" {
		t.Fatalf("got %q", got)
	}
	if got := FolderLabel(folders, model.FolderRef(6)); got != UnknownFolder {
		t.Fatalf("dangling folder = %q", got)
	}
	if got := FolderLabel(folders, nil); got != NoFolder {
		t.Fatalf("nil folder = %q", got)
	}
}

func TestPreview(t *testing.T) {
	short := "  a short entry  "
	if got := Preview(short, PreviewLength); got != "a short entry" {
		t.Fatalf("got %q", got)
	}
	long := strings.Repeat("x", 200)
	got := Preview(long, PreviewLength)
	if !strings.HasSuffix(got, "...") || len(got) != PreviewLength+3 {
		t.Fatalf("unexpected preview length %d", len(got))
	}
}

func TestGroupByFolder(t *testing.T) {
	folders := []model.Folder{{ID: 2, Name: "work"}, {ID: 1, Name: "Dreams"}, {ID: 3, Name: "empty"}}
	journals := []model.Journal{
		{ID: 1, FolderID: model.FolderRef(1)},
		{ID: 2},
		{ID: 3, FolderID: model.FolderRef(2)},
		{ID: 4, FolderID: model.FolderRef(9)},
		{ID: 5, FolderID: model.FolderRef(1)},
	}
	groups := GroupByFolder(folders, journals)
	var names []string
	var counts []int
	for _, g := range groups {
		names = append(names, g.Name)
		counts = append(counts, g.Count)
	}
	if strings.Join(names, ",") != "Dreams,empty,work,Unassigned,Unknown" {
		t.Fatalf("unexpected group order %v", names)
	}
	want := []int{2, 0, 1, 1, 1}
	for i := range want {
		if counts[i] != want[i] {
			t.Fatalf("counts = %v, want %v", counts, want)
		}
	}
}
