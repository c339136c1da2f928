package teaui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"tableflip.dev/jquest/pkg/api"
	"tableflip.dev/jquest/pkg/app"
	"tableflip.dev/jquest/pkg/model"
	"tableflip.dev/jquest/pkg/runner/tea/internal/bottombar"
	"tableflip.dev/jquest/pkg/viewmodel"
)

// fakeAPI answers only the calls a test overrides; anything else panics on
// the nil embedded interface.
type fakeAPI struct {
	app.API
	deleteErr error
	deleted   []int64
}

func (f *fakeAPI) DeleteJournal(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

func fixture(t *testing.T, remote *fakeAPI) Model {
	t.Helper()
	svc := app.New(remote, nil, nil)
	svc.Cache.SetFolders([]model.Folder{{ID: 1, Name: "Work"}, {ID: 2, Name: "Dreams"}})
	svc.Cache.SetJournals([]model.Journal{
		{ID: 10, Title: "Standup notes", FolderID: model.FolderRef(1), Archetype: "Mage", CreatedAt: model.MustTimestamp("2024-03-01T09:00:00Z")},
		{ID: 11, Title: "Flying again", FolderID: model.FolderRef(2), CreatedAt: model.MustTimestamp("2024-03-03T09:00:00Z")},
		{ID: 12, Title: "Loose thought", CreatedAt: model.MustTimestamp("2024-03-02T09:00:00Z")},
	})
	m := New(svc, nil)
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return update(t, m, syncedMsg{})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	got, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return got
}

func press(t *testing.T, m Model, keys string) Model {
	t.Helper()
	for _, r := range keys {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func titles(m Model) []string {
	var out []string
	for _, it := range m.list.Items() {
		out = append(out, it.(journalItem).journal.Title)
	}
	return out
}

func TestListSortToggle(t *testing.T) {
	m := fixture(t, &fakeAPI{})

	want := []string{"Flying again", "Loose thought", "Standup notes"}
	if diff := cmp.Diff(want, titles(m)); diff != "" {
		t.Fatalf("latest first (-want +got):\n%s", diff)
	}

	m = press(t, m, "s")
	want = []string{"Standup notes", "Loose thought", "Flying again"}
	if diff := cmp.Diff(want, titles(m)); diff != "" {
		t.Errorf("oldest first (-want +got):\n%s", diff)
	}
	if m.filter.Sort != viewmodel.SortOldest {
		t.Errorf("sort = %q", m.filter.Sort)
	}
}

func TestSearchEscRestores(t *testing.T) {
	m := fixture(t, &fakeAPI{})

	m = press(t, m, "/")
	if m.footer.Mode() != bottombar.ModeSearch {
		t.Fatalf("mode = %s", m.footer.Mode())
	}
	m = press(t, m, "fly")
	if diff := cmp.Diff([]string{"Flying again"}, titles(m)); diff != "" {
		t.Errorf("live search (-want +got):\n%s", diff)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.footer.Mode() != bottombar.ModeNormal {
		t.Errorf("mode = %s", m.footer.Mode())
	}
	if m.filter.Search != "" {
		t.Errorf("search = %q, want restored", m.filter.Search)
	}
	if got := len(titles(m)); got != 3 {
		t.Errorf("%d journals after esc, want 3", got)
	}
}

func TestFolderCycle(t *testing.T) {
	m := fixture(t, &fakeAPI{})

	m = press(t, m, "f")
	if diff := cmp.Diff([]string{"Loose thought"}, titles(m)); diff != "" {
		t.Errorf("unassigned (-want +got):\n%s", diff)
	}
	m = press(t, m, "f")
	if diff := cmp.Diff([]string{"Flying again"}, titles(m)); diff != "" {
		t.Errorf("Dreams (-want +got):\n%s", diff)
	}
	m = press(t, m, "f")
	if diff := cmp.Diff([]string{"Standup notes"}, titles(m)); diff != "" {
		t.Errorf("Work (-want +got):\n%s", diff)
	}
	m = press(t, m, "f")
	if !m.filter.Folder.IsAll() {
		t.Errorf("folder = %s, want all", m.filter.Folder)
	}
}

func TestDeleteConfirm(t *testing.T) {
	remote := &fakeAPI{}
	m := fixture(t, remote)

	m = press(t, m, "d")
	if m.footer.Mode() != bottombar.ModeConfirm {
		t.Fatalf("mode = %s", m.footer.Mode())
	}
	if !strings.Contains(m.footer.Status(), "Flying again") {
		t.Errorf("status = %q", m.footer.Status())
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	m = next.(Model)
	if cmd == nil {
		t.Fatal("no delete command")
	}
	m = update(t, m, cmd())

	if diff := cmp.Diff([]int64{11}, remote.deleted); diff != "" {
		t.Errorf("deleted (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Loose thought", "Standup notes"}, titles(m)); diff != "" {
		t.Errorf("after delete (-want +got):\n%s", diff)
	}
	if got := m.footer.Status(); got != "Journal deleted" {
		t.Errorf("status = %q", got)
	}
}

func TestDeleteFailureRestores(t *testing.T) {
	remote := &fakeAPI{deleteErr: &api.RequestError{Op: "DELETE /journals/11", Status: 500}}
	m := fixture(t, remote)

	m = press(t, m, "d")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	m = update(t, m, cmd())

	if got := len(titles(m)); got != 3 {
		t.Errorf("%d journals, want the deleted one restored", got)
	}
	if !strings.HasPrefix(m.footer.Status(), "Failed to delete journal") {
		t.Errorf("status = %q", m.footer.Status())
	}
}

func TestDeleteCancelled(t *testing.T) {
	remote := &fakeAPI{}
	m := fixture(t, remote)

	m = press(t, m, "dn")
	if m.footer.Mode() != bottombar.ModeNormal {
		t.Errorf("mode = %s", m.footer.Mode())
	}
	if len(remote.deleted) != 0 {
		t.Errorf("deleted %v", remote.deleted)
	}
}

func TestRunCommand(t *testing.T) {
	m := fixture(t, &fakeAPI{})

	m = press(t, m, ":")
	m = press(t, m, "folder work")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if diff := cmp.Diff([]string{"Standup notes"}, titles(m)); diff != "" {
		t.Errorf(":folder work (-want +got):\n%s", diff)
	}

	m = press(t, m, ":")
	m = press(t, m, "bogus")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.footer.Status(); got != "Unknown command: bogus" {
		t.Errorf("status = %q", got)
	}
}

func TestLoadedOfflineStatus(t *testing.T) {
	m := fixture(t, &fakeAPI{})
	m = update(t, m, loadedMsg{err: errors.New("boom")})
	if !strings.HasPrefix(m.footer.Status(), "ERR: ") {
		t.Errorf("status = %q", m.footer.Status())
	}

	m = update(t, m, loadedMsg{offline: true})
	if !m.offline || !strings.Contains(m.View(), "offline copy") {
		t.Errorf("offline view missing notice:\n%s", m.View())
	}
}

func TestNextArchetype(t *testing.T) {
	known := []string{"Mage", "Rogue"}
	got := []string{}
	cur := ""
	for i := 0; i < 3; i++ {
		cur = nextArchetype(cur, known)
		got = append(got, cur)
	}
	if diff := cmp.Diff([]string{"Mage", "Rogue", ""}, got); diff != "" {
		t.Errorf("cycle (-want +got):\n%s", diff)
	}
}
