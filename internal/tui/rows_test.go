package tui

import (
	"testing"

	"agentboard/internal/model"
)

func rowFixture() []*model.Node {
	closed := false
	return []*model.Node{
		{
			ID:    "n-aaaaaaaa",
			Topic: "Backend",
			Children: []*model.Node{
				{ID: "n-bbbbbbbb", Topic: "API", Children: []*model.Node{
					{ID: "n-cccccccc", Topic: "Routing"},
				}},
				{ID: "n-dddddddd", Topic: "Storage", Expanded: &closed, Children: []*model.Node{
					{ID: "n-eeeeeeee", Topic: "Hidden"},
				}},
			},
		},
		{ID: "n-ffffffff", Topic: "Frontend"},
	}
}

func TestFlattenTreeHonorsExpanded(t *testing.T) {
	rows := flattenTree(rowFixture())

	want := []string{"n-aaaaaaaa", "n-bbbbbbbb", "n-cccccccc", "n-dddddddd", "n-ffffffff"}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows, want %d", len(rows), len(want))
	}
	for i, id := range want {
		if rows[i].node.ID != id {
			t.Fatalf("row %d = %s, want %s", i, rows[i].node.ID, id)
		}
	}
	if rows[0].depth != 0 || rows[1].depth != 1 || rows[2].depth != 2 {
		t.Fatalf("wrong depths: %d %d %d", rows[0].depth, rows[1].depth, rows[2].depth)
	}
	if !rows[3].collapsed || !rows[3].hasChildren {
		t.Fatalf("collapsed parent should keep hasChildren and collapsed set")
	}
	if rows[4].hasChildren {
		t.Fatalf("leaf marked as having children")
	}
}

func TestRowIndexByID(t *testing.T) {
	rows := flattenTree(rowFixture())
	if idx := rowIndexByID(rows, "n-dddddddd"); idx != 3 {
		t.Fatalf("got %d, want 3", idx)
	}
	// Hidden under a collapsed parent: not a visible row.
	if idx := rowIndexByID(rows, "n-eeeeeeee"); idx != -1 {
		t.Fatalf("got %d, want -1", idx)
	}
	if idx := rowIndexByID(rows, "n-99999999"); idx != -1 {
		t.Fatalf("got %d, want -1", idx)
	}
}

func TestExpandedStateDefaultsOpen(t *testing.T) {
	n := &model.Node{ID: "n-aaaaaaaa"}
	if !expandedState(n) {
		t.Fatalf("missing expanded should read as open")
	}
	closed := false
	n.Expanded = &closed
	if expandedState(n) {
		t.Fatalf("expanded=false should read as closed")
	}
}
