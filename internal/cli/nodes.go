package cli

import (
	"fmt"

	"agentboard/internal/model"
	"agentboard/internal/store"
	"agentboard/internal/tree"

	"github.com/spf13/cobra"
)

func newNodesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nodes",
		Short: "Inspect and edit nodes in a project tree",
	}

	cmd.AddCommand(newNodesShowCmd(app))
	cmd.AddCommand(newNodesAddCmd(app))
	cmd.AddCommand(newNodesSetStatusCmd(app))
	return cmd
}

func newNodesShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <project> [node-id]",
		Short: "Print a project's tree, or one subtree",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			doc, err := store.ReadDoc(st.ProjectPath(args[0]))
			if err != nil {
				return writeErr(cmd, err)
			}
			if len(args) == 1 {
				return writeOut(cmd, app, doc)
			}
			n, ok := tree.Find(doc.Children, args[1])
			if !ok {
				return writeErr(cmd, tree.NotFoundError{ID: args[1]})
			}
			return writeOut(cmd, app, n)
		},
	}
}

func newNodesAddCmd(app *App) *cobra.Command {
	var parent, topic, content string

	cmd := &cobra.Command{
		Use:   "add <project>",
		Short: "Add a node (top-level unless --parent is given)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			file := st.ProjectPath(args[0])
			doc, err := store.ReadDoc(file)
			if err != nil {
				return writeErr(cmd, err)
			}
			n, err := tree.NewNode(store.UsedIDs(file, doc.Children))
			if err != nil {
				return writeErr(cmd, err)
			}
			n.Topic = tree.CleanTopic(topic)
			n.Content = content
			if err := tree.InsertChild(&doc.Children, parent, n, -1); err != nil {
				return writeErr(cmd, err)
			}
			bus := &store.Bus{Log: st.EventLog()}
			if res := bus.SaveFullTree(file, doc.Children); !res.OK {
				return writeErr(cmd, fmt.Errorf("save: %s", res.String()))
			}
			bus.Log.AppendBestEffort("node.create", file, n.ID, map[string]any{"parent": parent})
			return writeOut(cmd, app, n)
		},
	}
	cmd.Flags().StringVar(&parent, "parent", "", "Parent node id (empty = top level)")
	cmd.Flags().StringVar(&topic, "topic", "", "Node title")
	cmd.Flags().StringVar(&content, "content", "", "Node content (markdown)")
	return cmd
}

func newNodesSetStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-status <project> <node-id> <status>",
		Short: "Set a node's board status",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			status := args[2]
			if !model.ValidStatus(status) {
				return writeErr(cmd, fmt.Errorf("invalid status %q (valid: %v)", status, model.Statuses))
			}
			st, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			file := st.ProjectPath(args[0])
			bus := &store.Bus{Log: st.EventLog()}
			if res := bus.SaveNodeFields(file, args[1], map[string]any{"status": status}); !res.OK {
				return writeErr(cmd, fmt.Errorf("save: %s", res.String()))
			}
			return writeOut(cmd, app, map[string]any{"id": args[1], "status": status})
		},
	}
}
