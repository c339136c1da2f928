package viewmodel

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/jquest/pkg/model"
)

func scenarioJournals() []model.Journal {
	return []model.Journal{
		{ID: 1, Title: "Alpha", FolderID: nil, Archetype: "Seeker", CreatedAt: model.MustTimestamp("2024-01-01")},
		{ID: 2, Title: "Beta", FolderID: model.FolderRef(5), Archetype: "Sage", CreatedAt: model.MustTimestamp("2024-02-01")},
	}
}

func ids(list []model.Journal) []int64 {
	out := make([]int64, len(list))
	for i, j := range list {
		out[i] = j.ID
	}
	return out
}

func TestDeriveScenarios(t *testing.T) {
	tests := map[string]struct {
		filter Filter
		want   []int64
	}{
		"all latest": {
			filter: Filter{Search: "", Folder: AllFolders(), Archetype: "", Sort: SortLatest},
			want:   []int64{2, 1},
		},
		"unassigned": {
			filter: Filter{Folder: Unassigned()},
			want:   []int64{1},
		},
		"search alp": {
			filter: Filter{Search: "alp"},
			want:   []int64{1},
		},
		"search is case insensitive": {
			filter: Filter{Search: "BET"},
			want:   []int64{2},
		},
		"folder id": {
			filter: Filter{Folder: InFolder(5)},
			want:   []int64{2},
		},
		"missing folder id": {
			filter: Filter{Folder: InFolder(6)},
			want:   []int64{},
		},
		"archetype exact": {
			filter: Filter{Archetype: "Sage"},
			want:   []int64{2},
		},
		"archetype case matters": {
			filter: Filter{Archetype: "sage"},
			want:   []int64{},
		},
		"oldest": {
			filter: Filter{Sort: SortOldest},
			want:   []int64{1, 2},
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := ids(Derive(scenarioJournals(), tc.filter))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("ids (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDeriveDoesNotMutateSource(t *testing.T) {
	src := scenarioJournals()
	before := model.CloneJournals(src)
	out := Derive(src, DefaultFilter())
	*out[0].FolderID = 99
	out[1].Title = "changed"
	if diff := cmp.Diff(before, src); diff != "" {
		t.Fatalf("source changed (-want +got):\n%s", diff)
	}
}

func TestDeriveTiesKeepSourceOrder(t *testing.T) {
	day := model.MustTimestamp("2024-03-01")
	src := []model.Journal{
		{ID: 3, Title: "c", CreatedAt: day},
		{ID: 1, Title: "a", CreatedAt: day},
		{ID: 2, Title: "b", CreatedAt: day},
	}
	for _, s := range []SortOrder{SortLatest, SortOldest} {
		if diff := cmp.Diff([]int64{3, 1, 2}, ids(Derive(src, Filter{Sort: s}))); diff != "" {
			t.Fatalf("%s ties reordered (-want +got):\n%s", s, diff)
		}
	}
}

func randomJournals(r *rand.Rand, n int) []model.Journal {
	titles := []string{"Morning pages", "Alpha", "alphabet soup", "Quest log", "Dream", "ALPS"}
	archetypes := []string{"", "Seeker", "Sage", "Fool"}
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]model.Journal, n)
	for i := range out {
		j := model.Journal{
			ID:        int64(i + 1),
			Title:     titles[r.Intn(len(titles))],
			Archetype: archetypes[r.Intn(len(archetypes))],
			CreatedAt: model.NewTimestamp(base.Add(time.Duration(r.Intn(20)) * 24 * time.Hour)),
		}
		if r.Intn(3) > 0 {
			j.FolderID = model.FolderRef(int64(r.Intn(3) + 1))
		}
		out[i] = j
	}
	return out
}

func randomFilter(r *rand.Rand) Filter {
	searches := []string{"", "alp", "QUEST", "zzz"}
	folders := []FolderFilter{AllFolders(), Unassigned(), InFolder(1), InFolder(2)}
	archetypes := []string{"", "Seeker", "Sage"}
	sorts := []SortOrder{SortLatest, SortOldest}
	return Filter{
		Search:    searches[r.Intn(len(searches))],
		Folder:    folders[r.Intn(len(folders))],
		Archetype: archetypes[r.Intn(len(archetypes))],
		Sort:      sorts[r.Intn(len(sorts))],
	}
}

func TestDeriveProperties(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		src := randomJournals(r, r.Intn(30))
		f := randomFilter(r)
		name := fmt.Sprintf("case %d %s", i, f)

		first := Derive(src, f)
		second := Derive(src, f)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Fatalf("%s: not deterministic (-first +second):\n%s", name, diff)
		}

		for _, j := range first {
			if f.Search != "" && !strings.Contains(strings.ToLower(j.Title), strings.ToLower(f.Search)) {
				t.Fatalf("%s: %q does not match search", name, j.Title)
			}
			if id, ok := f.Folder.ID(); ok && (j.FolderID == nil || *j.FolderID != id) {
				t.Fatalf("%s: journal %d in wrong folder", name, j.ID)
			}
			if f.Folder.IsUnassigned() && j.FolderID != nil {
				t.Fatalf("%s: journal %d is assigned", name, j.ID)
			}
			if f.Archetype != "" && j.Archetype != f.Archetype {
				t.Fatalf("%s: journal %d has archetype %q", name, j.ID, j.Archetype)
			}
		}

		for k := 1; k < len(first); k++ {
			a, b := first[k-1].CreatedAt.Time, first[k].CreatedAt.Time
			if f.Sort == SortLatest && a.Before(b) {
				t.Fatalf("%s: latest order broken at %d", name, k)
			}
			if f.Sort == SortOldest && a.After(b) {
				t.Fatalf("%s: oldest order broken at %d", name, k)
			}
		}

		want := 0
		for _, j := range src {
			if f.Match(j) {
				want++
			}
		}
		if len(first) != want {
			t.Fatalf("%s: got %d journals, want %d", name, len(first), want)
		}
	}
}

func TestUnparseableCreatedAtSortsOldest(t *testing.T) {
	src := []model.Journal{
		{ID: 1, Title: "bad", CreatedAt: model.Timestamp{Raw: "someday"}},
		{ID: 2, Title: "good", CreatedAt: model.MustTimestamp("2024-01-01")},
	}
	if diff := cmp.Diff([]int64{2, 1}, ids(Derive(src, Filter{Sort: SortLatest}))); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int64{1, 2}, ids(Derive(src, Filter{Sort: SortOldest}))); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestParseFolderFilter(t *testing.T) {
	tests := map[string]string{
		"":           "all",
		"all":        "all",
		"unassigned": "unassigned",
		"null":       "unassigned",
		"5":          "5",
		" 12 ":       "12",
	}
	for in, want := range tests {
		f, err := ParseFolderFilter(in)
		if err != nil {
			t.Fatalf("ParseFolderFilter(%q): %v", in, err)
		}
		if f.String() != want {
			t.Fatalf("ParseFolderFilter(%q) = %s, want %s", in, f, want)
		}
	}
	if _, err := ParseFolderFilter("work"); err == nil {
		t.Fatalf("expected error for non-numeric folder")
	}
}

func TestParseSortOrder(t *testing.T) {
	if s, err := ParseSortOrder(""); err != nil || s != SortLatest {
		t.Fatalf("empty sort = %q, %v", s, err)
	}
	if s, err := ParseSortOrder("Oldest"); err != nil || s != SortOldest {
		t.Fatalf("Oldest sort = %q, %v", s, err)
	}
	if _, err := ParseSortOrder("newest"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestArchetypesFirstSeen(t *testing.T) {
	src := []model.Journal{{Archetype: "Sage"}, {Archetype: ""}, {Archetype: "Seeker"}, {Archetype: "Sage"}}
	if diff := cmp.Diff([]string{"Sage", "Seeker"}, Archetypes(src)); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestCreatedSince(t *testing.T) {
	src := scenarioJournals()
	since := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	if diff := cmp.Diff([]int64{2}, ids(CreatedSince(src, since))); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if len(CreatedSince(src, time.Time{})) != 2 {
		t.Fatalf("zero since should keep all")
	}
}
