package tree

import (
	"testing"

	"agentboard/internal/model"

	"pgregory.net/rapid"
)

// genTree draws a random subtree with bounded depth and fanout, using fresh
// ids drawn from used.
func genTree(rt *rapid.T, used map[string]bool, depth int) *model.Node {
	id, err := NewID(used)
	if err != nil {
		rt.Fatalf("NewID error: %v", err)
	}
	used[id] = true
	n := &model.Node{
		ID:       id,
		Topic:    rapid.StringMatching(`[A-Za-z 计划]{0,12}`).Draw(rt, "topic"),
		Content:  rapid.StringMatching(`[a-z\n]{0,20}`).Draw(rt, "content"),
		Children: []*model.Node{},
	}
	if depth <= 0 {
		return n
	}
	fanout := rapid.IntRange(0, 3).Draw(rt, "fanout")
	for i := 0; i < fanout; i++ {
		n.Children = append(n.Children, genTree(rt, used, depth-1))
	}
	return n
}

// For any sequence of clone+remap insertions into a tree, every id in the
// resulting forest stays unique and every pasted subtree's id-set stays
// disjoint from its source's.
func TestRemapIDsUniquenessProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		used := map[string]bool{}
		roots := []*model.Node{genTree(rt, used, 3)}

		pastes := rapid.IntRange(1, 5).Draw(rt, "pastes")
		for i := 0; i < pastes; i++ {
			src := roots[rapid.IntRange(0, len(roots)-1).Draw(rt, "srcIdx")]
			srcIDs := CollectIDs([]*model.Node{src}, nil)

			clone := Clone(src)
			if err := RemapIDs(clone, used); err != nil {
				rt.Fatalf("RemapIDs error: %v", err)
			}
			for id := range CollectIDs([]*model.Node{clone}, nil) {
				if srcIDs[id] {
					rt.Fatalf("pasted subtree kept source id %s", id)
				}
			}
			roots = append(roots, clone)
		}

		// Global uniqueness: walking the whole forest finds each id once.
		seen := map[string]int{}
		Walk(roots, func(n *model.Node) bool {
			seen[n.ID]++
			return true
		})
		for id, count := range seen {
			if count != 1 {
				rt.Fatalf("id %s appears %d times", id, count)
			}
		}
	})
}
