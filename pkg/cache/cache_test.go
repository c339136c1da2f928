package cache

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/jquest/pkg/model"
)

func drain(c *Cache) []ChangeMsg {
	var out []ChangeMsg
	for {
		select {
		case msg := <-c.Events():
			out = append(out, msg)
		default:
			return out
		}
	}
}

func TestMergeFolderAppendsNew(t *testing.T) {
	in := []model.Folder{{ID: 1, Name: "Dreams"}}
	out := MergeFolder(in, model.Folder{ID: 2, Name: "Work"})
	if len(in) != 1 {
		t.Fatalf("input modified")
	}
	want := []model.Folder{{ID: 1, Name: "Dreams"}, {ID: 2, Name: "Work"}}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestMergeFolderDuplicateKeepsPosition(t *testing.T) {
	in := []model.Folder{{ID: 1, Name: "Dreams"}, {ID: 2, Name: "work", UserID: 4}, {ID: 3, Name: "Ideas"}}
	out := MergeFolder(in, model.Folder{ID: 2, Name: "Work"})
	want := []model.Folder{{ID: 1, Name: "Dreams"}, {ID: 2, Name: "Work", UserID: 4}, {ID: 3, Name: "Ideas"}}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if in[1].Name != "work" {
		t.Fatalf("input modified")
	}
}

func TestCacheMergeFolderEmits(t *testing.T) {
	c := New()
	c.SetFolders([]model.Folder{{ID: 1, Name: "Dreams"}})
	drain(c)
	c.MergeFolder(model.Folder{ID: 2, Name: "Work"})
	c.MergeFolder(model.Folder{ID: 2, Name: "Work 2"})
	want := []ChangeMsg{
		{Kind: KindFolder, Action: ChangeCreate, ID: 2},
		{Kind: KindFolder, Action: ChangeUpdate, ID: 2},
	}
	if diff := cmp.Diff(want, drain(c)); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if got := c.Folders(); len(got) != 2 || got[1].Name != "Work 2" {
		t.Fatalf("unexpected folders %+v", got)
	}
}

func TestRemoveAndInsertJournalRestoresOrder(t *testing.T) {
	c := New()
	list := []model.Journal{{ID: 1}, {ID: 2}, {ID: 3}}
	c.SetJournals(list)

	removed, idx, ok := c.RemoveJournal(2)
	if !ok || idx != 1 || removed.ID != 2 {
		t.Fatalf("RemoveJournal = %+v %d %v", removed, idx, ok)
	}
	if _, ok := c.Journal(2); ok {
		t.Fatalf("journal still cached")
	}
	c.InsertJournal(idx, removed)
	if diff := cmp.Diff(list, c.Journals()); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestPrependJournal(t *testing.T) {
	c := New()
	c.SetJournals([]model.Journal{{ID: 1}})
	c.PrependJournal(model.Journal{ID: 2})
	got := c.Journals()
	if len(got) != 2 || got[0].ID != 2 {
		t.Fatalf("unexpected order %+v", got)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	c := New()
	c.SetJournals([]model.Journal{{ID: 1, FolderID: model.FolderRef(3)}})
	snap := c.Snapshot()
	*snap.Journals[0].FolderID = 9
	j, _ := c.Journal(1)
	if *j.FolderID != 3 {
		t.Fatalf("snapshot aliases cache")
	}
}

func TestApplySnapshotEmitsDiff(t *testing.T) {
	c := New()
	c.SetJournals([]model.Journal{{ID: 1, Title: "a"}, {ID: 2, Title: "b"}})
	c.SetQuests([]model.Quest{{ID: 7, Goal: 3}})
	drain(c)

	c.ApplySnapshot(Snapshot{
		Journals: []model.Journal{{ID: 2, Title: "b2"}, {ID: 3, Title: "c"}},
		Quests:   []model.Quest{{ID: 7, Goal: 3}},
	})
	want := []ChangeMsg{
		{Kind: KindJournal, Action: ChangeUpdate, ID: 2},
		{Kind: KindJournal, Action: ChangeCreate, ID: 3},
		{Kind: KindJournal, Action: ChangeDelete, ID: 1},
	}
	if diff := cmp.Diff(want, drain(c)); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestEmitDoesNotBlockWhenFull(t *testing.T) {
	c := New()
	for i := 0; i < 200; i++ {
		c.UpsertQuest(model.Quest{ID: int64(i)})
	}
	if n := len(drain(c)); n != 64 {
		t.Fatalf("expected buffer of 64 events, got %d", n)
	}
}
