package store

import (
	"agentboard/internal/model"
	"agentboard/internal/tree"
)

// UsedIDs gathers every node id in scope for a file: the live in-memory tree
// (authoritative for unsaved nodes) unioned with the on-disk document (which
// may hold nodes the UI has not materialized, or external edits). A disk
// read failure just means the disk side contributes nothing; the live side
// still guards against in-session collisions.
func UsedIDs(file string, live []*model.Node) map[string]bool {
	used := tree.CollectIDs(live, nil)
	if doc, err := ReadDoc(file); err == nil {
		tree.CollectIDs(doc.Children, used)
	}
	return used
}

// NewNodeID mints an id unique across both the live tree and the file.
func NewNodeID(file string, live []*model.Node) (string, error) {
	return tree.NewID(UsedIDs(file, live))
}
