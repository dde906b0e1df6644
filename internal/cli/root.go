// Package cli wires the scriptable command surface. Every command operates
// on the same store directory and project files as the interactive TUI, so
// agents and shell scripts can drive a board a human has open.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"agentboard/internal/store"
	"agentboard/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	PrettyJSON bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "agentboard",
		Short:        "Local-first project trees and boards for agent work",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  agentboard

  # Scriptable commands
  agentboard projects list
  agentboard nodes add myproject --parent n-1a2b3c4d --topic "Write tests"
  agentboard board show myproject
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("AGENTBOARD_DIR", ""), "Path to store dir (default: discovered .agentboard or ~/.agentboard)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newProjectsCmd(app))
	cmd.AddCommand(newNodesCmd(app))
	cmd.AddCommand(newBoardCmd(app))
	cmd.AddCommand(newRunCmd(app))
	cmd.AddCommand(newEventsCmd(app))

	return cmd
}

func runTUI(app *App) error {
	st, err := loadStore(app)
	if err != nil {
		return err
	}
	return tui.Run(st)
}

func loadStore(app *App) (store.Store, error) {
	dir := app.Dir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return store.Store{}, err
		}
		if d, ok := store.DiscoverDir(cwd); ok {
			dir = d
		} else if d, err := store.DefaultDir(); err == nil {
			dir = d
		} else {
			return store.Store{}, err
		}
	}
	st := store.Store{Dir: dir}
	if err := st.Ensure(); err != nil {
		return store.Store{}, err
	}
	return st, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	if app.PrettyJSON {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
