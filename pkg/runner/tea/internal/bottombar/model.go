package bottombar

import (
	"fmt"
	"strings"

	"tableflip.dev/jquest/pkg/runner/tea/internal/theme"
)

// Mode represents the UI mode that influences footer layout.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeCommand
	ModeHelp
	ModeConfirm
	ModeEdit
)

func (m Mode) String() string {
	switch m {
	case ModeSearch:
		return "SEARCH"
	case ModeCommand:
		return "CMD"
	case ModeHelp:
		return "HELP"
	case ModeConfirm:
		return "CONFIRM"
	case ModeEdit:
		return "EDIT"
	}
	return "NORMAL"
}

// CommandOption describes a command palette entry.
type CommandOption struct {
	Name        string
	Description string
}

// Model tracks footer/help/status rendering state.
type Model struct {
	mode            Mode
	helpLine        string
	statusLine      string
	isError         bool
	filterLine      string
	inputView       string
	commandInput    string
	commandOptions  []CommandOption
	filteredOptions []CommandOption
	maxSuggestions  int
	styles          theme.FooterTheme
}

func New(t theme.FooterTheme) Model {
	return Model{
		mode:           ModeNormal,
		maxSuggestions: 6,
		styles:         t,
	}
}

// SetMode updates the visual mode.
func (m *Model) SetMode(mode Mode) {
	if m.mode == mode {
		return
	}
	m.mode = mode
	m.inputView = ""
	m.commandInput = ""
	m.filterSuggestions("")
}

func (m Model) Mode() Mode { return m.mode }

func (m *Model) SetHelp(help string) {
	m.helpLine = help
}

// SetStatus sets the status message to display.
func (m *Model) SetStatus(status string) {
	m.statusLine = status
	m.isError = false
}

// SetError shows status in the error style.
func (m *Model) SetError(status string) {
	m.statusLine = status
	m.isError = true
}

func (m Model) Status() string { return m.statusLine }

// SetFilter shows the active list filter.
func (m *Model) SetFilter(summary string) {
	m.filterLine = summary
}

// SetCommandDefinitions configures the available command palette entries.
func (m *Model) SetCommandDefinitions(cmds []CommandOption) {
	m.commandOptions = cmds
	m.filterSuggestions(m.commandInput)
}

// UpdateInput refreshes the rendered input line. In command mode value also
// filters the palette.
func (m *Model) UpdateInput(value string, view string) {
	switch m.mode {
	case ModeCommand:
		m.commandInput = value
		m.inputView = ":" + view
		m.filterSuggestions(value)
	case ModeSearch:
		m.inputView = "/" + view
	case ModeEdit:
		m.inputView = "title: " + view
	}
}

// Suggestions returns the palette entries matching the typed command.
func (m Model) Suggestions() []CommandOption {
	return m.filteredOptions
}

// Height reports the number of lines consumed by the footer.
func (m Model) Height() int {
	_, h := m.View()
	return h
}

// View renders the footer string and reports lines consumed.
func (m Model) View() (string, int) {
	switch m.mode {
	case ModeCommand:
		return m.renderCommandMode()
	case ModeSearch, ModeEdit:
		return m.inputView + "\n" + m.renderStatusLine(), 2
	default:
		return m.renderStatusLine(), 1
	}
}

func (m Model) renderStatusLine() string {
	var segments []string
	segments = append(segments, m.styles.Status.Render(fmt.Sprintf("[%s]", m.mode)))
	if m.helpLine != "" {
		segments = append(segments, m.styles.Help.Render(m.helpLine))
	}
	if m.statusLine != "" {
		style := m.styles.Status
		if m.isError {
			style = m.styles.Error
		}
		segments = append(segments, style.Render(m.statusLine))
	}
	if m.filterLine != "" {
		segments = append(segments, m.styles.Filter.Render(m.filterLine))
	}
	return strings.Join(segments, " │ ")
}

func (m Model) renderCommandMode() (string, int) {
	var lines []string
	limit := m.maxSuggestions
	if limit <= 0 || limit > len(m.filteredOptions) {
		limit = len(m.filteredOptions)
	}
	for i := 0; i < limit; i++ {
		opt := m.filteredOptions[i]
		nameStyle := m.styles.CommandName
		if i == 0 && strings.TrimSpace(m.commandInput) != "" {
			nameStyle = m.styles.CommandSelectedName
		}
		name := nameStyle.Render(":" + opt.Name)
		if opt.Description == "" {
			lines = append(lines, name)
		} else {
			lines = append(lines, fmt.Sprintf("%s  %s", name, m.styles.CommandDescription.Render(opt.Description)))
		}
	}
	commandLine := m.inputView
	if commandLine == "" {
		commandLine = ":"
	}
	lines = append(lines, commandLine)
	return strings.Join(lines, "\n"), len(lines)
}

func (m *Model) filterSuggestions(prefix string) {
	if m.mode != ModeCommand {
		m.filteredOptions = nil
		return
	}
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	m.filteredOptions = make([]CommandOption, 0, len(m.commandOptions))
	for _, opt := range m.commandOptions {
		if prefix == "" || strings.HasPrefix(strings.ToLower(opt.Name), prefix) {
			m.filteredOptions = append(m.filteredOptions, opt)
		}
	}
}
