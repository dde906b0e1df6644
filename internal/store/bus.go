package store

import (
	"fmt"
	"sort"
	"strings"

	"agentboard/internal/model"
	"agentboard/internal/tree"
)

// ErrorCode classifies why a bus save did not happen. Callers log and
// surface these; they never panic the UI.
type ErrorCode string

const (
	ErrNone            ErrorCode = ""
	ErrFileNotExists   ErrorCode = "file_not_exists"
	ErrReadJSONFailed  ErrorCode = "read_json_failed"
	ErrNodeNotFound    ErrorCode = "node_not_found"
	ErrWriteFailed     ErrorCode = "write_failed"
	ErrEmptyFields     ErrorCode = "empty_fields"
	ErrInvalidChildren ErrorCode = "invalid_children"
	ErrStateApply      ErrorCode = "state_apply_failed"
)

// SaveResult is what every bus operation returns instead of raising.
type SaveResult struct {
	OK   bool
	Code ErrorCode
	Err  error
}

func okResult() SaveResult { return SaveResult{OK: true} }

func failResult(code ErrorCode, err error) SaveResult {
	return SaveResult{Code: code, Err: err}
}

func (r SaveResult) String() string {
	if r.OK {
		return "ok"
	}
	if r.Err != nil {
		return fmt.Sprintf("%s: %v", r.Code, r.Err)
	}
	return string(r.Code)
}

// BoardEntry is one card position within a board column.
type BoardEntry struct {
	ID    string
	Order int
}

// BoardState maps status -> ordered card positions, as read back from the
// board widgets after a drop.
type BoardState map[string][]BoardEntry

// Bus owns the read-merge-atomic-write pattern for project files so call
// sites never hand-roll it. It is UI-independent; the TUI, the CLI, and the
// autosave engine all funnel through the same four entry points.
type Bus struct {
	// Log, when set, receives an audit event after every attempt.
	Log *EventLog
}

func (b *Bus) load(file string) (*model.ProjectDoc, SaveResult) {
	if !FileExists(file) {
		return nil, failResult(ErrFileNotExists, fmt.Errorf("no such project file: %s", file))
	}
	doc, err := ReadDoc(file)
	if err != nil {
		return nil, failResult(ErrReadJSONFailed, err)
	}
	return doc, okResult()
}

func (b *Bus) write(file string, doc *model.ProjectDoc) SaveResult {
	if err := WriteDoc(file, doc); err != nil {
		res := failResult(ErrWriteFailed, err)
		b.logEvent("save.failed", file, "", map[string]any{"error": err.Error()})
		return res
	}
	return okResult()
}

func (b *Bus) logEvent(typ, file, nodeID string, payload any) {
	if b == nil || b.Log == nil {
		return
	}
	_ = b.Log.Append(typ, file, nodeID, payload)
}

// SaveTreeExpansion persists a single node's expand/collapse state.
func (b *Bus) SaveTreeExpansion(file, nodeID string, expanded bool) SaveResult {
	return b.SaveNodeFields(file, nodeID, map[string]any{"expanded": expanded})
}

// SaveNodeFields merges the given fields into the node with nodeID and
// writes the document. Only recognized fields are applied; everything else
// on the node (and on every other node) is left exactly as loaded.
func (b *Bus) SaveNodeFields(file, nodeID string, fields map[string]any) SaveResult {
	if len(fields) == 0 {
		return failResult(ErrEmptyFields, fmt.Errorf("no fields to save for node %s", nodeID))
	}
	doc, res := b.load(file)
	if !res.OK {
		return res
	}
	n, ok := tree.Find(doc.Children, nodeID)
	if !ok {
		return failResult(ErrNodeNotFound, tree.NotFoundError{ID: nodeID})
	}
	applyFields(n, fields)
	return b.write(file, doc)
}

func applyFields(n *model.Node, fields map[string]any) {
	for k, v := range fields {
		switch k {
		case "topic":
			if s, ok := v.(string); ok {
				n.Topic = tree.CleanTopic(s)
			}
		case "content":
			if s, ok := v.(string); ok {
				n.Content = s
			}
		case "status":
			switch s := v.(type) {
			case string:
				n.Status = s
			case nil:
				n.Status = ""
			}
		case "kanban_order":
			if o, ok := toInt(v); ok {
				n.KanbanOrder = &o
			}
		case "expanded":
			if e, ok := v.(bool); ok {
				n.Expanded = &e
			}
		}
	}
}

func toInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case int64:
		return int(x), true
	case float64:
		return int(x), true
	default:
		return 0, false
	}
}

// SaveSwimlaneState applies a full board state (every column's id+order
// pairs) as repeated per-node field updates against one loaded document,
// then writes once. Nodes the document no longer contains make the result
// state_apply_failed, but every node that could be updated is still written.
func (b *Bus) SaveSwimlaneState(file string, state BoardState) SaveResult {
	doc, res := b.load(file)
	if !res.OK {
		return res
	}
	var missing []string
	for status, entries := range state {
		if !model.ValidStatus(status) {
			continue
		}
		for _, e := range entries {
			n, ok := tree.Find(doc.Children, e.ID)
			if !ok {
				missing = append(missing, e.ID)
				continue
			}
			order := e.Order
			n.Status = status
			n.KanbanOrder = &order
		}
	}
	if res := b.write(file, doc); !res.OK {
		return res
	}
	b.logEvent("board.apply", file, "", boardPayload(state))
	if len(missing) > 0 {
		sort.Strings(missing)
		return failResult(ErrStateApply, fmt.Errorf("nodes not found: %s", strings.Join(missing, ", ")))
	}
	return okResult()
}

func boardPayload(state BoardState) map[string]any {
	out := map[string]any{}
	for status, entries := range state {
		ids := make([]string, 0, len(entries))
		for _, e := range entries {
			ids = append(ids, e.ID)
		}
		out[status] = ids
	}
	return out
}

// SaveFullTree replaces the root's children array wholesale, preserving
// every top-level field the UI does not touch. This is only safe because the
// in-memory tree is the authoritative superset of pending edits at save
// time.
func (b *Bus) SaveFullTree(file string, children []*model.Node) SaveResult {
	if children == nil {
		return failResult(ErrInvalidChildren, fmt.Errorf("nil children for %s", file))
	}
	doc, res := b.load(file)
	if !res.OK {
		return res
	}
	doc.Children = children
	return b.write(file, doc)
}
