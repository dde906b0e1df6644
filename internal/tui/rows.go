package tui

import (
	"agentboard/internal/model"
)

// row is one visible line of the tree view, pointing at its node in the
// loaded document. Rows hold node pointers, not copies: the document is the
// single source of truth and rows are rebuilt after every structural change.
type row struct {
	node        *model.Node
	depth       int
	hasChildren bool
	collapsed   bool
}

// expanded treats a missing expanded field as "open": a freshly created
// tree shows its structure until the user collapses something.
func expandedState(n *model.Node) bool {
	return n.Expanded == nil || *n.Expanded
}

// flattenTree produces the visible rows for the current document, honoring
// each node's persisted expanded state.
func flattenTree(roots []*model.Node) []row {
	var out []row
	var walk func(n *model.Node, depth int)
	walk = func(n *model.Node, depth int) {
		open := expandedState(n)
		out = append(out, row{
			node:        n,
			depth:       depth,
			hasChildren: len(n.Children) > 0,
			collapsed:   !open,
		})
		if !open {
			return
		}
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	for _, n := range roots {
		walk(n, 0)
	}
	return out
}

// rowIndexByID finds the visible row for a node id, or -1.
func rowIndexByID(rows []row, id string) int {
	for i := range rows {
		if rows[i].node.ID == id {
			return i
		}
	}
	return -1
}
