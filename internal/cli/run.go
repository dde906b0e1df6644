package cli

import (
	"fmt"

	"agentboard/internal/runner"
	"agentboard/internal/store"
	"agentboard/internal/tree"

	"github.com/spf13/cobra"
)

// newRunCmd drives the configured agent script against one node and writes
// its stdout back as the node's content, same as pressing g in the TUI.
func newRunCmd(app *App) *cobra.Command {
	var prompt string

	cmd := &cobra.Command{
		Use:   "run <project> <node-id>",
		Short: "Run the agent script for a node and store its output",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg, err := st.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			file := st.ProjectPath(args[0])
			doc, err := store.ReadDoc(file)
			if err != nil {
				return writeErr(cmd, err)
			}
			n, ok := tree.Find(doc.Children, args[1])
			if !ok {
				return writeErr(cmd, tree.NotFoundError{ID: args[1]})
			}
			if prompt == "" {
				prompt = n.Topic
			}

			ru := runner.Runner{
				Script:     cfg.RunnerScript,
				ConfigPath: cfg.RunnerConfig,
				Timeout:    cfg.Timeout(),
			}
			out, err := ru.Run(cmd.Context(), prompt)
			if err != nil {
				return writeErr(cmd, err)
			}

			bus := &store.Bus{Log: st.EventLog()}
			if res := bus.SaveNodeFields(file, n.ID, map[string]any{"content": out}); !res.OK {
				return writeErr(cmd, fmt.Errorf("save: %s", res.String()))
			}
			bus.Log.AppendBestEffort("run.agent", file, n.ID, map[string]any{"bytes": len(out)})
			return writeOut(cmd, app, map[string]any{"id": n.ID, "bytes": len(out)})
		},
	}
	cmd.Flags().StringVar(&prompt, "prompt", "", "Prompt override (default: the node's topic)")
	return cmd
}
