package cli

import (
	"agentboard/internal/store"
	"agentboard/internal/swimlane"

	"github.com/spf13/cobra"
)

func newBoardCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Project the board view of a tree",
	}

	showCmd := &cobra.Command{
		Use:   "show <project>",
		Short: "Print the five-column board as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			doc, err := store.ReadDoc(st.ProjectPath(args[0]))
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg, err := st.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			b := swimlane.Build(doc.Children, cfg.AnchorTopic)
			return writeOut(cmd, app, b)
		},
	}

	cmd.AddCommand(showCmd)
	return cmd
}
