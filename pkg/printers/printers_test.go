package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"

	"tableflip.dev/jquest/pkg/model"
)

func init() {
	color.NoColor = true
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatText, "JSON": FormatJSON, " yaml ": FormatYAML, "text": FormatText} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Errorf("expected error for xml")
	}
}

func TestEncode(t *testing.T) {
	j := model.Journal{ID: 3, Title: "Dream", FolderID: model.FolderRef(2), CreatedAt: model.MustTimestamp("2024-01-01")}

	var js bytes.Buffer
	if err := Encode(&js, FormatJSON, j); err != nil {
		t.Fatalf("json: %v", err)
	}
	if !strings.Contains(js.String(), `"folder_id": 2`) || !strings.Contains(js.String(), `"created_at": "2024-01-01"`) {
		t.Errorf("unexpected json:\n%s", js.String())
	}

	var ys bytes.Buffer
	if err := Encode(&ys, FormatYAML, j); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if !strings.Contains(ys.String(), "title: Dream") || !strings.Contains(ys.String(), "2024-01-01") {
		t.Errorf("unexpected yaml:\n%s", ys.String())
	}

	if err := Encode(&ys, FormatText, j); err == nil {
		t.Errorf("text should not encode")
	}
}

func TestProgressBarPlain(t *testing.T) {
	tests := []struct {
		ratio float64
		want  string
	}{
		{0, "[----------]"},
		{0.4, "[####------]"},
		{1, "[##########]"},
		{3, "[##########]"},
		{-1, "[----------]"},
	}
	for _, tt := range tests {
		if got := ProgressBar(tt.ratio, 10, false); got != tt.want {
			t.Errorf("ProgressBar(%v) = %q, want %q", tt.ratio, got, tt.want)
		}
	}
}

func TestColorfulBuffer(t *testing.T) {
	if Colorful(&bytes.Buffer{}) {
		t.Errorf("a buffer is not a terminal")
	}
}

func TestJournals(t *testing.T) {
	var out bytes.Buffer
	now := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	pp := PrettyPrint{Out: &out, ShowID: true, Now: now}
	pp.Journals([]model.Folder{{ID: 1, Name: "Dreams"}},
		model.Journal{ID: 7, Title: "Flying", Body: "I was flying", Archetype: "Seeker", FolderID: model.FolderRef(1), CreatedAt: model.NewTimestamp(now.Add(-3 * time.Hour))},
		model.Journal{ID: 8, Title: "Loose", CreatedAt: model.NewTimestamp(now.Add(-30 * time.Hour))},
	)
	got := out.String()
	for _, want := range []string{"#7", "Flying  Dreams · Seeker · 3h ago", "I was flying", "Loose  None · 1d ago"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestJournalsEmpty(t *testing.T) {
	var out bytes.Buffer
	pp := PrettyPrint{Out: &out}
	pp.Journals(nil)
	if got := out.String(); got != " none\n\n" {
		t.Errorf("got %q", got)
	}
}

func TestJournalWrapsBody(t *testing.T) {
	var out bytes.Buffer
	pp := PrettyPrint{Out: &out, Width: 20}
	pp.Journal(nil, model.Journal{ID: 1, Title: "Long", Body: "one two three four five six seven"})
	for _, line := range strings.Split(out.String(), "\n") {
		if strings.HasPrefix(line, "  one") && len(line) > 20 {
			t.Errorf("line not wrapped: %q", line)
		}
	}
	if !strings.Contains(out.String(), "  one two three") {
		t.Errorf("body not indented:\n%s", out.String())
	}
}

func TestJournalDays(t *testing.T) {
	then := time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local)
	days := JournalDays(then,
		model.Journal{CreatedAt: model.NewTimestamp(time.Date(2024, 2, 3, 12, 0, 0, 0, time.Local))},
		model.Journal{CreatedAt: model.NewTimestamp(time.Date(2024, 2, 3, 13, 0, 0, 0, time.Local))},
		model.Journal{CreatedAt: model.NewTimestamp(time.Date(2024, 3, 3, 12, 0, 0, 0, time.Local))},
		model.Journal{},
	)
	if len(days) != 29 {
		t.Fatalf("february 2024 has 29 days, got %d", len(days))
	}
	want := make([]int, 29)
	want[2] = 2
	if diff := cmp.Diff(want, days); diff != "" {
		t.Errorf("days (-want +got):\n%s", diff)
	}
}

func TestQuests(t *testing.T) {
	var out bytes.Buffer
	pp := PrettyPrint{Out: &out}
	pp.Quests(model.Quest{ID: 1, Title: "Run", Goal: 4, Progress: 1, Status: model.QuestInProgress})
	got := out.String()
	if !strings.Contains(got, "Run  in progress") || !strings.Contains(got, "1 / 4") {
		t.Errorf("unexpected output:\n%s", got)
	}
}
