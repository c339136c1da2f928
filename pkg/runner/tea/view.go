package teaui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/jquest/pkg/model"
	"tableflip.dev/jquest/pkg/runner/tea/internal/bottombar"
	"tableflip.dev/jquest/pkg/viewmodel"
)

const helpText = `Keys
  j/k, ↑/↓     move through journals
  enter, tab   read the selected journal, again to go back
  /            search titles, esc restores
  f            cycle folder: all, unassigned, each folder
  a            cycle archetype
  s            toggle latest/oldest first
  c            clear search and filters
  n            new journal in the current folder
  e            rename the selected journal
  d            delete the selected journal
  r            reload from the server
  :q           quit`

var gap = lipgloss.NewStyle().Padding(0, 1).Render

// View renders the journal list beside the reading pane with the footer.
func (m Model) View() string {
	left := m.list.View()
	right := m.theme.Detail.Frame.Render(m.detail.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, gap(" "), right)

	if m.footer.Mode() == bottombar.ModeHelp {
		body = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2).Render(helpText)
	}

	footer, _ := m.footer.View()
	return body + "\n" + footer
}

// refreshDetail renders the selected journal into the reading pane.
func (m *Model) refreshDetail() {
	j := m.selected()
	if j == nil {
		m.detail.SetContent(m.theme.List.Empty.Render("No journals match."))
		return
	}
	var folders []model.Folder
	pending := false
	if m.svc != nil {
		folders = m.svc.Cache.Folders()
		pending = m.svc.JournalPending(j.ID)
	}
	m.detail.SetContent(m.renderDetail(*j, folders, pending))
	m.detail.GotoTop()
}

func (m Model) renderDetail(j model.Journal, folders []model.Folder, pending bool) string {
	width := m.detail.Width - 2
	if width < 10 {
		width = 10
	}
	meta := []string{"folder " + viewmodel.FolderLabel(folders, j.FolderID)}
	if j.Archetype != "" {
		meta = append(meta, j.Archetype)
	}
	if j.CreatedAt.Valid() {
		meta = append(meta, j.CreatedAt.Local().Format("Mon Jan 2, 2006 15:04"))
	}

	var b strings.Builder
	b.WriteString(m.theme.Detail.Title.Render(j.Title))
	if pending {
		b.WriteString(" " + m.theme.List.Pending.Render("(saving…)"))
	}
	b.WriteString("\n")
	b.WriteString(m.theme.Detail.Meta.Render(strings.Join(meta, " · ")))
	b.WriteString("\n\n")
	body := strings.TrimSpace(j.Body)
	if body == "" {
		b.WriteString(m.theme.List.Empty.Render("(empty)"))
	} else {
		b.WriteString(m.theme.Detail.Body.Render(wordwrap.String(body, width)))
	}
	if m.offline {
		b.WriteString("\n\n" + m.theme.Detail.Meta.Render(fmt.Sprintf("journal #%d, offline copy", j.ID)))
	}
	return b.String()
}
