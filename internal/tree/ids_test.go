package tree

import (
	"regexp"
	"testing"

	"agentboard/internal/model"
)

var idRe = regexp.MustCompile(`^n-[0-9a-f]{8}$`)

func TestNewIDFormat(t *testing.T) {
	id, err := NewID(nil)
	if err != nil {
		t.Fatalf("NewID error: %v", err)
	}
	if !idRe.MatchString(id) {
		t.Fatalf("unexpected id format: %q", id)
	}
}

func TestNewIDAvoidsUsedSet(t *testing.T) {
	used := map[string]bool{}
	for i := 0; i < 500; i++ {
		id, err := NewID(used)
		if err != nil {
			t.Fatalf("NewID error: %v", err)
		}
		if used[id] {
			t.Fatalf("duplicate id minted: %s", id)
		}
		used[id] = true
	}
}

func TestRemapIDsDisjoint(t *testing.T) {
	src := sampleRoots()[0]
	used := CollectIDs([]*model.Node{src}, nil)
	before := len(used)

	clone := Clone(src)
	if err := RemapIDs(clone, used); err != nil {
		t.Fatalf("RemapIDs error: %v", err)
	}

	srcIDs := CollectIDs([]*model.Node{src}, nil)
	cloneIDs := CollectIDs([]*model.Node{clone}, nil)
	if len(cloneIDs) != len(srcIDs) {
		t.Fatalf("clone id count %d != source id count %d", len(cloneIDs), len(srcIDs))
	}
	for id := range cloneIDs {
		if srcIDs[id] {
			t.Fatalf("clone kept source id %s", id)
		}
		if !idRe.MatchString(id) {
			t.Fatalf("remapped id has bad format: %q", id)
		}
	}
	// Every fresh id was registered into the used set.
	if len(used) != before+len(cloneIDs) {
		t.Fatalf("used set not extended: %d -> %d", before, len(used))
	}
	// Topics survive the remap untouched.
	if clone.Topic != src.Topic {
		t.Fatalf("remap changed topic: %q", clone.Topic)
	}
}

func TestCollectIDs(t *testing.T) {
	roots := sampleRoots()
	ids := CollectIDs(roots, nil)
	want := []string{"n-aaaaaaaa", "n-bbbbbbbb", "n-cccccccc", "n-dddddddd", "n-eeeeeeee"}
	if len(ids) != len(want) {
		t.Fatalf("expected %d ids; got %d", len(want), len(ids))
	}
	for _, id := range want {
		if !ids[id] {
			t.Fatalf("missing id %s", id)
		}
	}
}
