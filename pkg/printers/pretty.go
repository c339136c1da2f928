package printers

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/jquest/pkg/archetype"
	"tableflip.dev/jquest/pkg/model"
	"tableflip.dev/jquest/pkg/timeutil"
	"tableflip.dev/jquest/pkg/viewmodel"
)

const defaultWidth = 80

type PrettyPrint struct {
	ShowID bool

	// Width wraps journal bodies. Zero means 80 columns.
	Width int

	// Out defaults to color.Output.
	Out io.Writer

	// Now is used for relative times. Zero means time.Now.
	Now time.Time
}

var (
	spacing = strings.Repeat(" ", len("#00000  "))
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) now() time.Time {
	if pp.Now.IsZero() {
		return time.Now()
	}
	return pp.Now
}

func (pp *PrettyPrint) width() int {
	if pp.Width <= 0 {
		return defaultWidth
	}
	return pp.Width
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

// TitleWithCount prints a heading followed by "- N noun(s)".
func (pp *PrettyPrint) TitleWithCount(title string, count int, noun string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintf(pp.out(), " %s\n", noun)
	default:
		_, _ = c.Fprintf(pp.out(), " %ss\n", noun)
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = f.Fprint(pp.out(), spacing)
	}
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

func (pp *PrettyPrint) id(id int64) {
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	s := "#" + strconv.FormatInt(id, 10)
	_, _ = y.Fprint(pp.out(), s)
	if pad := len(spacing) - len(s); pad > 0 {
		_, _ = y.Fprint(pp.out(), strings.Repeat(" ", pad))
	} else {
		_, _ = y.Fprint(pp.out(), " ")
	}
}

// Journals prints one line per journal with a short preview of its body.
func (pp *PrettyPrint) Journals(folders []model.Folder, journals ...model.Journal) {
	if len(journals) == 0 {
		pp.none()
		return
	}

	t := color.New(color.Bold)
	m := color.New(color.Faint)
	p := color.New(color.Italic)

	for _, j := range journals {
		if pp.ShowID {
			pp.id(j.ID)
		}
		_, _ = t.Fprint(pp.out(), j.Title)
		meta := []string{viewmodel.FolderLabel(folders, j.FolderID)}
		if j.Archetype != "" {
			meta = append(meta, j.Archetype)
		}
		meta = append(meta, timeutil.Ago(j.CreatedAt.Time, pp.now()))
		_, _ = m.Fprintf(pp.out(), "  %s\n", strings.Join(meta, " · "))

		if preview := viewmodel.Preview(j.Body, pp.width()-len(spacing)); preview != "" {
			if pp.ShowID {
				_, _ = p.Fprint(pp.out(), spacing)
			}
			_, _ = p.Fprintf(pp.out(), "  %s\n", preview)
		}
	}
	pp.NewLine()
}

// Journal prints a single journal with its full body.
func (pp *PrettyPrint) Journal(folders []model.Folder, j model.Journal) {
	pp.Title(j.Title)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("ID:", j.ID)
	tbl.AddRow("Folder:", viewmodel.FolderLabel(folders, j.FolderID))
	if j.Archetype != "" {
		tbl.AddRow("Archetype:", j.Archetype)
	}
	tbl.AddRow("Created:", j.CreatedAt.String())
	if j.UpdatedAt.Raw != "" || j.UpdatedAt.Valid() {
		tbl.AddRow("Updated:", j.UpdatedAt.String())
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()

	body := strings.TrimSpace(j.Body)
	if body == "" {
		_, _ = color.New(color.Faint, color.Italic).Fprintln(pp.out(), "  (empty)")
		return
	}
	_, _ = fmt.Fprintln(pp.out(), indent.String(wordwrap.String(body, pp.width()-2), 2))
}

// Folders prints the folder table with journal counts.
func (pp *PrettyPrint) Folders(groups []viewmodel.FolderGroup) {
	if len(groups) == 0 {
		pp.none()
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("ID", "NAME", "JOURNALS")
	for _, g := range groups {
		id := "-"
		if g.ID != nil {
			id = strconv.FormatInt(*g.ID, 10)
		}
		tbl.AddRow(id, g.Name, g.Count)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Quests prints each quest with a progress bar.
func (pp *PrettyPrint) Quests(quests ...model.Quest) {
	if len(quests) == 0 {
		pp.none()
		return
	}
	t := color.New(color.Bold)
	m := color.New(color.Faint)
	done := color.New(color.FgGreen)

	for _, q := range quests {
		if pp.ShowID {
			pp.id(q.ID)
		}
		mark := "○"
		if q.Status == model.QuestCompleted {
			mark = done.Sprint("✔")
		}
		_, _ = fmt.Fprintf(pp.out(), "%s ", mark)
		_, _ = t.Fprint(pp.out(), q.Title)
		_, _ = m.Fprintf(pp.out(), "  %s\n", q.Status.Label())

		if pp.ShowID {
			_, _ = fmt.Fprint(pp.out(), spacing)
		}
		_, _ = fmt.Fprintf(pp.out(), "  %s %s\n", ProgressBar(q.Ratio(), 20, Colorful(pp.out())), q.ProgressString())
		if q.Description != "" {
			if pp.ShowID {
				_, _ = fmt.Fprint(pp.out(), spacing)
			}
			_, _ = m.Fprintf(pp.out(), "  %s\n", viewmodel.Preview(q.Description, pp.width()-len(spacing)))
		}
	}
	pp.NewLine()
}

// User prints the profile fields of u.
func (pp *PrettyPrint) User(u *model.User) {
	if u == nil {
		_, _ = color.New(color.Faint, color.Italic).Fprintln(pp.out(), "Not signed in.")
		return
	}
	pp.Title(u.DisplayName())
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("ID:", u.ID)
	tbl.AddRow("Username:", u.Username)
	tbl.AddRow("Email:", u.Email)
	if name := strings.TrimSpace(u.FirstName + " " + u.LastName); name != "" {
		tbl.AddRow("Name:", name)
	}
	if u.Nickname != "" {
		tbl.AddRow("Nickname:", u.Nickname)
	}
	if u.Archetype != "" {
		label := u.Archetype
		if a, ok := archetype.Lookup(u.Archetype); ok {
			label = a.Name + " (" + a.Title + ")"
		}
		tbl.AddRow("Archetype:", label)
	}
	if u.Stats != (model.UserStats{}) {
		tbl.AddRow("Journals:", u.Stats.JournalCount)
		tbl.AddRow("Quests:", fmt.Sprintf("%d (%d completed)", u.Stats.QuestCount, u.Stats.CompletedQuests))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

func (pp *PrettyPrint) Archetypes(list []archetype.Archetype) {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("ID", "NAME", "TITLE")
	for _, a := range list {
		tbl.AddRow(a.ID, a.Name, a.Title)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Messages prints user facing error messages, one per line.
func (pp *PrettyPrint) Messages(msgs []string) {
	r := color.New(color.FgRed)
	for _, msg := range msgs {
		_, _ = r.Fprintf(pp.out(), "✗ %s\n", msg)
	}
}

// Notice prints a faint one-line status.
func (pp *PrettyPrint) Notice(format string, args ...interface{}) {
	_, _ = color.New(color.Faint, color.Italic).Fprintf(pp.out(), format+"\n", args...)
}
