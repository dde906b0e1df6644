package store

import (
	"path/filepath"
	"testing"

	"agentboard/internal/model"
)

func TestUsedIDsUnionsLiveAndDisk(t *testing.T) {
	path := writeTestProject(t) // disk: n-aaaaaaaa, n-bbbbbbbb, n-cccccccc

	// Live tree holds an unsaved node the disk doesn't know about.
	live := []*model.Node{
		{ID: "n-aaaaaaaa", Children: []*model.Node{
			{ID: "n-ffffffff", Children: []*model.Node{}},
		}},
	}

	used := UsedIDs(path, live)
	for _, id := range []string{"n-aaaaaaaa", "n-bbbbbbbb", "n-cccccccc", "n-ffffffff"} {
		if !used[id] {
			t.Fatalf("missing id %s in union set", id)
		}
	}
}

func TestUsedIDsToleratesMissingFile(t *testing.T) {
	live := []*model.Node{{ID: "n-aaaaaaaa", Children: []*model.Node{}}}
	used := UsedIDs(filepath.Join(t.TempDir(), "nope.json"), live)
	if !used["n-aaaaaaaa"] || len(used) != 1 {
		t.Fatalf("unexpected used set: %v", used)
	}
}

func TestNewNodeIDUnique(t *testing.T) {
	path := writeTestProject(t)
	id, err := NewNodeID(path, nil)
	if err != nil {
		t.Fatalf("NewNodeID error: %v", err)
	}
	for _, existing := range []string{"n-aaaaaaaa", "n-bbbbbbbb", "n-cccccccc"} {
		if id == existing {
			t.Fatalf("minted an existing id: %s", id)
		}
	}
}
