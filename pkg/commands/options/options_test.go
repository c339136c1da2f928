package options

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/jquest/pkg/viewmodel"
)

func TestParseID(t *testing.T) {
	for in, want := range map[string]int64{"12": 12, "#7": 7, " 3 ": 3} {
		got, err := ParseID(in)
		if err != nil || got != want {
			t.Errorf("ParseID(%q) = %d, %v; want %d", in, got, err, want)
		}
	}
	for _, in := range []string{"", "abc", "0", "-4"} {
		if _, err := ParseID(in); err == nil {
			t.Errorf("ParseID(%q) succeeded", in)
		}
	}
}

func TestFilterOptions(t *testing.T) {
	cmd := &cobra.Command{}
	o := &FilterOptions{}
	AddFilterArgs(cmd, o)
	if err := cmd.ParseFlags([]string{"--folder", "unassigned", "--sort", "oldest", "-a", "magician"}); err != nil {
		t.Fatal(err)
	}
	f, err := o.Filter()
	if err != nil {
		t.Fatal(err)
	}
	if !f.Folder.IsUnassigned() || f.Sort != viewmodel.SortOldest || f.Archetype != "Magician" {
		t.Errorf("filter = %s", f)
	}

	o.Sort = "sideways"
	if _, err := o.Filter(); err == nil {
		t.Error("bad sort accepted")
	}
}

func TestSinceTime(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	o := &FilterOptions{Since: "2d"}
	got, err := o.SinceTime(now)
	if err != nil {
		t.Fatal(err)
	}
	if want := now.Add(-48 * time.Hour); !got.Equal(want) {
		t.Errorf("since = %s, want %s", got, want)
	}
}

func TestHandleError(t *testing.T) {
	var buf bytes.Buffer
	prev := color.Output
	color.Output = &buf
	defer func() { color.Output = prev }()

	boom := errors.New("boom")

	o := &OutputOptions{Output: "text"}
	if err := o.HandleError(boom); err != boom {
		t.Errorf("text HandleError = %v", err)
	}

	o.Output = "json"
	if err := o.HandleError(boom); err != nil {
		t.Errorf("json HandleError = %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != `{"error":"boom"}` {
		t.Errorf("printed %q", got)
	}
}

func TestWrap(t *testing.T) {
	got := Wrap("one two three four", 9)
	if got != "one two\nthree\nfour" {
		t.Errorf("Wrap = %q", got)
	}
}
