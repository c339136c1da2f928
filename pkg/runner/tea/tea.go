// Package teaui is the Bubble Tea journal browser behind `jquest ui`.
package teaui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"tableflip.dev/jquest/pkg/app"
)

// Run launches the Bubble Tea UI and blocks until the user quits.
func Run(svc *app.Service, log *zap.Logger) error {
	p := tea.NewProgram(New(svc, log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
