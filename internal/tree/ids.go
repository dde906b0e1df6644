package tree

import (
	"crypto/rand"
	"encoding/hex"
	"errors"

	"agentboard/internal/model"
)

// IDPrefix is the node id prefix: ids look like n-3fa9c012.
const IDPrefix = "n-"

// NewID mints a fresh node id (IDPrefix + 8 hex chars) that is not present
// in used. 8 hex chars is 32 bits of space, so collisions are retried, not
// avoided.
func NewID(used map[string]bool) (string, error) {
	for i := 0; i < 1000; i++ {
		var b [4]byte
		if _, err := rand.Read(b[:]); err != nil {
			return "", err
		}
		id := IDPrefix + hex.EncodeToString(b[:])
		if !used[id] {
			return id, nil
		}
	}
	return "", errors.New("unable to allocate unique node id")
}

// CollectIDs adds every id under roots into out (allocating it if nil).
func CollectIDs(roots []*model.Node, out map[string]bool) map[string]bool {
	if out == nil {
		out = map[string]bool{}
	}
	Walk(roots, func(n *model.Node) bool {
		if n.ID != "" {
			out[n.ID] = true
		}
		return true
	})
	return out
}

// RemapIDs rewrites every id in the subtree (the node itself and all
// descendants) to a fresh id absent from used, adding each new id to used as
// it goes. This is the paste / copy-drop path: an inserted clone must end up
// with an id set fully disjoint from everything already in the file.
func RemapIDs(n *model.Node, used map[string]bool) error {
	if n == nil {
		return nil
	}
	if used == nil {
		used = map[string]bool{}
	}
	id, err := NewID(used)
	if err != nil {
		return err
	}
	n.ID = id
	used[id] = true
	for _, c := range n.Children {
		if err := RemapIDs(c, used); err != nil {
			return err
		}
	}
	return nil
}
