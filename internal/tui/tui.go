// Package tui is the interactive terminal client: a projects picker, a
// two-pane tree editor, and a board view, all over the same project files
// the CLI commands operate on.
package tui

import (
	"agentboard/internal/autosave"
	"agentboard/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive client over the given store directory and
// blocks until the user quits.
func Run(st store.Store) error {
	cfg, err := st.LoadConfig()
	if err != nil {
		return err
	}

	// The engine's interval callback fires on its own goroutine; it only
	// posts a message so the actual save runs inside the update loop.
	var prog *tea.Program
	engine := autosave.New(0, 0, func() {
		if prog != nil {
			prog.Send(periodicSaveMsg{})
		}
	})
	defer engine.Close()

	m := newAppModel(st, cfg, engine)
	prog = tea.NewProgram(m, tea.WithAltScreen())
	_, err = prog.Run()
	return err
}
