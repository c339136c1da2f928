package theme

import "github.com/charmbracelet/lipgloss"

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Footer FooterTheme
	Detail DetailTheme
	List   ListTheme
}

// FooterTheme groups styles used by the bottom status/command bar.
type FooterTheme struct {
	Help                lipgloss.Style
	Status              lipgloss.Style
	Filter              lipgloss.Style
	Error               lipgloss.Style
	CommandName         lipgloss.Style
	CommandDescription  lipgloss.Style
	CommandSelectedName lipgloss.Style
}

// DetailTheme styles the journal reading pane.
type DetailTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Meta  lipgloss.Style
	Body  lipgloss.Style
}

type ListTheme struct {
	Pending lipgloss.Style
	Empty   lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	commandName := lipgloss.NewStyle().
		Foreground(lipgloss.Color("212")).
		Bold(true)
	commandDesc := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	return Theme{
		Footer: FooterTheme{
			Help:               lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status:             lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Filter:             lipgloss.NewStyle().Foreground(lipgloss.Color("141")),
			Error:              lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
			CommandName:        commandName,
			CommandDescription: commandDesc,
			CommandSelectedName: commandName.
				Copy().
				Reverse(true),
		},
		Detail: DetailTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("60")).
				Padding(0, 1),
			Title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("223")),
			Meta:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true),
			Body:  lipgloss.NewStyle(),
		},
		List: ListTheme{
			Pending: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			Empty:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		},
	}
}
