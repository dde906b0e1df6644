// Package tree implements the pure mutation layer for project node trees:
// lookup, deep copy, structural edits, and clipboard encoding. Nothing here
// touches disk; persistence goes through the store.
package tree

import (
	"fmt"
	"regexp"
	"strings"

	"agentboard/internal/model"
)

type NotFoundError struct {
	ID string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("node not found: %s", e.ID)
}

// Find returns the node with the given id anywhere under roots.
func Find(roots []*model.Node, id string) (*model.Node, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, false
	}
	var found *model.Node
	Walk(roots, func(n *model.Node) bool {
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found, found != nil
}

// FindParent returns the parent of id and the child's index within it.
// A top-level node has a nil parent and its index within roots.
func FindParent(roots []*model.Node, id string) (parent *model.Node, idx int, ok bool) {
	id = strings.TrimSpace(id)
	for i, n := range roots {
		if n.ID == id {
			return nil, i, true
		}
	}
	var walk func(p *model.Node) bool
	walk = func(p *model.Node) bool {
		for i, c := range p.Children {
			if c.ID == id {
				parent = p
				idx = i
				ok = true
				return true
			}
			if walk(c) {
				return true
			}
		}
		return false
	}
	for _, n := range roots {
		if walk(n) {
			return parent, idx, true
		}
	}
	return nil, 0, false
}

// Walk visits every node depth-first. Returning false from fn stops the walk.
func Walk(roots []*model.Node, fn func(*model.Node) bool) {
	var walk func(n *model.Node) bool
	walk = func(n *model.Node) bool {
		if n == nil {
			return true
		}
		if !fn(n) {
			return false
		}
		for _, c := range n.Children {
			if !walk(c) {
				return false
			}
		}
		return true
	}
	for _, n := range roots {
		if !walk(n) {
			return
		}
	}
}

// Clone deep-copies a subtree, ids included. Callers that insert the clone
// into a document must remap ids first (see RemapIDs).
func Clone(n *model.Node) *model.Node {
	if n == nil {
		return nil
	}
	out := &model.Node{
		ID:      n.ID,
		Topic:   n.Topic,
		Content: n.Content,
		Status:  n.Status,
	}
	if n.KanbanOrder != nil {
		v := *n.KanbanOrder
		out.KanbanOrder = &v
	}
	if n.Expanded != nil {
		v := *n.Expanded
		out.Expanded = &v
	}
	out.Children = make([]*model.Node, 0, len(n.Children))
	for _, c := range n.Children {
		out.Children = append(out.Children, Clone(c))
	}
	return out
}

// Detach removes the node with the given id from roots and returns it.
// Used by cut and by move (detach + insert preserves ids).
func Detach(roots *[]*model.Node, id string) (*model.Node, error) {
	parent, idx, ok := FindParent(*roots, id)
	if !ok {
		return nil, NotFoundError{ID: id}
	}
	if parent == nil {
		n := (*roots)[idx]
		*roots = append((*roots)[:idx], (*roots)[idx+1:]...)
		return n, nil
	}
	n := parent.Children[idx]
	parent.Children = append(parent.Children[:idx], parent.Children[idx+1:]...)
	return n, nil
}

// InsertChild appends child under parentID, or at the top level when
// parentID is empty. at == -1 appends; otherwise the child is inserted at
// the given index (clamped).
func InsertChild(roots *[]*model.Node, parentID string, child *model.Node, at int) error {
	if child == nil {
		return fmt.Errorf("nil child")
	}
	if strings.TrimSpace(parentID) == "" {
		*roots = insertAt(*roots, child, at)
		return nil
	}
	parent, ok := Find(*roots, parentID)
	if !ok {
		return NotFoundError{ID: parentID}
	}
	parent.Children = insertAt(parent.Children, child, at)
	return nil
}

func insertAt(list []*model.Node, n *model.Node, at int) []*model.Node {
	if at < 0 || at > len(list) {
		at = len(list)
	}
	list = append(list, nil)
	copy(list[at+1:], list[at:])
	list[at] = n
	return list
}

// Move detaches id and re-inserts it under newParentID at index at.
// Ids are never touched: a move is the same subtree in a new position.
// Moving a node under its own descendant is rejected.
func Move(roots *[]*model.Node, id, newParentID string, at int) error {
	if strings.TrimSpace(newParentID) != "" {
		moved, ok := Find(*roots, id)
		if !ok {
			return NotFoundError{ID: id}
		}
		if _, inside := Find([]*model.Node{moved}, newParentID); inside {
			return fmt.Errorf("cannot move %s under its own descendant %s", id, newParentID)
		}
	}
	n, err := Detach(roots, id)
	if err != nil {
		return err
	}
	if err := InsertChild(roots, newParentID, n, at); err != nil {
		// Restore at the top level rather than losing the subtree.
		*roots = append(*roots, n)
		return err
	}
	return nil
}

// idSuffixRe matches the transient " (n-xxxxxxxx)" decoration the tree view
// may append to a displayed title. It is display-only and must never be
// persisted into topic.
var idSuffixRe = regexp.MustCompile(`\s*\(n-[0-9a-f]{8}\)\s*$`)

// CleanTopic strips any transient id decoration from an edited title.
func CleanTopic(s string) string {
	return idSuffixRe.ReplaceAllString(s, "")
}
