package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestOrderSentinel(t *testing.T) {
	n := &Node{ID: "n-aaaaaaaa"}
	if got := n.Order(); got != OrderLast {
		t.Fatalf("missing kanban_order: got %d, want %d", got, OrderLast)
	}
	neg := -3
	n.KanbanOrder = &neg
	if got := n.Order(); got != OrderLast {
		t.Fatalf("negative kanban_order: got %d, want %d", got, OrderLast)
	}
	three := 3
	n.KanbanOrder = &three
	if got := n.Order(); got != 3 {
		t.Fatalf("got %d, want 3", got)
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range Statuses {
		if !ValidStatus(s) {
			t.Fatalf("%q should be valid", s)
		}
	}
	for _, s := range []string{"", "todo", "Done", "in-progress"} {
		if ValidStatus(s) {
			t.Fatalf("%q should be invalid", s)
		}
	}
}

func TestNodeMarshalChildrenNeverNull(t *testing.T) {
	b, err := json.Marshal(&Node{ID: "n-aaaaaaaa", Topic: "x"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"children":[]`) {
		t.Fatalf("children should serialize as []: %s", b)
	}
	if strings.Contains(string(b), "null") {
		t.Fatalf("no field should serialize as null: %s", b)
	}
}

func TestProjectDocRoundTripPreservesUnknownKeys(t *testing.T) {
	in := `{"id":"n-11111111","topic":"p","children":[],"theme":"dark"}`
	var doc ProjectDoc
	if err := json.Unmarshal([]byte(in), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	out, err := json.Marshal(&doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(out), `"theme":"dark"`) {
		t.Fatalf("unknown key lost: %s", out)
	}
}
