// Package swimlane derives the five-column board view from a project tree
// and computes the write-backs a board drop requires. The board and the tree
// are projections of the same document: nothing here owns state.
package swimlane

import (
	"sort"
	"strings"

	"agentboard/internal/model"
	"agentboard/internal/tree"
)

// Card is one board entry, pointing back at its node by id.
type Card struct {
	ID    string
	Topic string
	Order int
}

// Column holds the sorted cards of one status.
type Column struct {
	Status string
	Cards  []Card
}

// Board is the full five-column projection.
type Board struct {
	Columns []Column
}

// Scope returns the node set feeding the board: the subtree under the first
// node whose topic equals anchorTopic exactly, or the whole tree when no
// anchor is configured or matched.
func Scope(roots []*model.Node, anchorTopic string) []*model.Node {
	anchorTopic = strings.TrimSpace(anchorTopic)
	if anchorTopic == "" {
		return roots
	}
	var anchor *model.Node
	tree.Walk(roots, func(n *model.Node) bool {
		if n.Topic == anchorTopic {
			anchor = n
			return false
		}
		return true
	})
	if anchor == nil {
		return roots
	}
	return anchor.Children
}

// Build buckets every node with a recognized status into its column and
// sorts each column by kanban_order ascending; missing or invalid orders
// sort last. Statusless nodes never appear.
func Build(roots []*model.Node, anchorTopic string) Board {
	scope := Scope(roots, anchorTopic)

	byStatus := map[string][]Card{}
	tree.Walk(scope, func(n *model.Node) bool {
		if model.ValidStatus(n.Status) {
			byStatus[n.Status] = append(byStatus[n.Status], Card{
				ID:    n.ID,
				Topic: n.Topic,
				Order: n.Order(),
			})
		}
		return true
	})

	b := Board{Columns: make([]Column, 0, len(model.Statuses))}
	for _, status := range model.Statuses {
		cards := byStatus[status]
		sort.SliceStable(cards, func(i, j int) bool {
			if cards[i].Order != cards[j].Order {
				return cards[i].Order < cards[j].Order
			}
			return cards[i].ID < cards[j].ID
		})
		b.Columns = append(b.Columns, Column{Status: status, Cards: cards})
	}
	return b
}

// Column returns the named column, or an empty one.
func (b Board) Column(status string) Column {
	for _, c := range b.Columns {
		if c.Status == status {
			return c
		}
	}
	return Column{Status: status}
}

// NextPlannedOrder computes the kanban_order for a node newly added to the
// planned column: max existing order in that column plus one, starting at 0.
func NextPlannedOrder(roots []*model.Node, anchorTopic string) int {
	max := -1
	for _, c := range Build(roots, anchorTopic).Column(model.StatusPlanned).Cards {
		if c.Order != model.OrderLast && c.Order > max {
			max = c.Order
		}
	}
	return max + 1
}

// AddTargets resolves the "add to board" context action: the node itself, or
// all of its direct children.
func AddTargets(n *model.Node, directChildren bool) []*model.Node {
	if n == nil {
		return nil
	}
	if !directChildren {
		return []*model.Node{n}
	}
	return n.Children
}

// SyncNodes applies a committed board state back onto an in-memory tree so
// later full-tree saves don't clobber the board-driven changes. Ids the tree
// does not contain are skipped.
func SyncNodes(roots []*model.Node, state map[string][]Card) {
	for status, cards := range state {
		if !model.ValidStatus(status) {
			continue
		}
		for _, c := range cards {
			if n, ok := tree.Find(roots, c.ID); ok {
				order := c.Order
				n.Status = status
				n.KanbanOrder = &order
			}
		}
	}
}
