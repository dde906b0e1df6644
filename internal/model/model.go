package model

import "encoding/json"

// Status values a node may carry. A node without a status does not
// participate in the board view at all.
const (
	StatusPlanned  = "planned"
	StatusAssigned = "assigned"
	StatusDoing    = "doing"
	StatusDone     = "done"
	StatusPaused   = "paused"
)

// Statuses lists the board columns in display order.
var Statuses = []string{StatusPlanned, StatusAssigned, StatusDoing, StatusDone, StatusPaused}

func ValidStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// OrderLast is the sort key used for nodes whose kanban_order is absent or
// unusable: they sort after every explicitly ordered card.
const OrderLast = 999999

// Node is one entry in a project tree. Topic and Content always persist as
// strings (possibly empty), never null. Children order is display order.
type Node struct {
	ID          string  `json:"id"`
	Topic       string  `json:"topic"`
	Content     string  `json:"content"`
	Children    []*Node `json:"children"`
	Status      string  `json:"status,omitempty"`
	KanbanOrder *int    `json:"kanban_order,omitempty"`
	Expanded    *bool   `json:"expanded,omitempty"`
}

// MarshalJSON ensures children always serializes as a list, never null.
func (n Node) MarshalJSON() ([]byte, error) {
	type alias Node
	if n.Children == nil {
		n.Children = []*Node{}
	}
	return json.Marshal(alias(n))
}

// Order returns the node's board sort key (OrderLast when unset or negative).
func (n *Node) Order() int {
	if n == nil || n.KanbanOrder == nil || *n.KanbanOrder < 0 {
		return OrderLast
	}
	return *n.KanbanOrder
}

// ProjectDoc is the root object of a project file. Top-level keys the app
// does not touch are round-tripped through Extra so a save never truncates
// them.
type ProjectDoc struct {
	ID       string
	Topic    string
	Children []*Node

	Extra map[string]json.RawMessage
}

func (d *ProjectDoc) UnmarshalJSON(b []byte) error {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if v, ok := raw["id"]; ok {
		if err := json.Unmarshal(v, &d.ID); err != nil {
			return err
		}
		delete(raw, "id")
	}
	if v, ok := raw["topic"]; ok {
		if err := json.Unmarshal(v, &d.Topic); err != nil {
			return err
		}
		delete(raw, "topic")
	}
	if v, ok := raw["children"]; ok {
		if err := json.Unmarshal(v, &d.Children); err != nil {
			return err
		}
		delete(raw, "children")
	}
	if len(raw) > 0 {
		d.Extra = raw
	}
	return nil
}

func (d *ProjectDoc) MarshalJSON() ([]byte, error) {
	out := map[string]json.RawMessage{}
	for k, v := range d.Extra {
		out[k] = v
	}
	id, err := json.Marshal(d.ID)
	if err != nil {
		return nil, err
	}
	topic, err := json.Marshal(d.Topic)
	if err != nil {
		return nil, err
	}
	children := d.Children
	if children == nil {
		children = []*Node{}
	}
	ch, err := json.Marshal(children)
	if err != nil {
		return nil, err
	}
	out["id"] = id
	out["topic"] = topic
	out["children"] = ch
	// Maps marshal with sorted keys, so repeated saves of the same doc are
	// byte-identical.
	return json.Marshal(out)
}

// NewProjectDoc returns an empty document with the conventional root id.
func NewProjectDoc(topic string) *ProjectDoc {
	return &ProjectDoc{ID: "root", Topic: topic, Children: []*Node{}}
}

// Event is one row of the mutation audit log.
type Event struct {
	ID      string `json:"id"`
	TSMs    int64  `json:"ts"`
	Type    string `json:"type"`
	File    string `json:"file"`
	NodeID  string `json:"nodeId,omitempty"`
	Payload any    `json:"payload,omitempty"`
}
