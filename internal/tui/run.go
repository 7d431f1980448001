package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nomanion/nomadmin/internal/api"
	"github.com/nomanion/nomadmin/internal/session"
)

// RunDashboard starts the interactive dashboard and blocks until the
// operator quits.
func RunDashboard(client *api.Client, sessions *session.Manager) error {
	model := NewModel(client, sessions)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}
