package tui

import (
	"context"
	"fmt"

	"agentboard/internal/model"
	"agentboard/internal/runner"
	"agentboard/internal/store"
	"agentboard/internal/swimlane"
	"agentboard/internal/tree"

	tea "github.com/charmbracelet/bubbletea"
)

// selectRow moves the tree selection. Any pending debounce save belongs to
// the node being left behind, so it is flushed before the editors are
// repointed; clearing the editors afterwards guarantees the next node never
// shows (or saves) leftover text.
func (m *appModel) selectRow(idx int) {
	if idx < 0 || idx >= len(m.rows) {
		return
	}
	if idx == m.sel {
		return
	}
	m.engine.Flush()
	m.stopEditing()
	m.sel = idx
}

func (m *appModel) stopEditing() {
	m.editing = editNone
	m.editNodeID = ""
	m.titleInput.SetValue("")
	m.titleInput.Blur()
	m.content.SetValue("")
	m.content.Blur()
}

func (m *appModel) startTitleEdit(n *model.Node) {
	m.engine.Flush()
	m.editing = editTitle
	m.editNodeID = n.ID
	m.titleInput.SetValue(n.Topic)
	m.titleInput.CursorEnd()
	m.titleInput.Focus()
}

func (m *appModel) commitTitleEdit() {
	n, ok := findNode(m.doc, m.editNodeID)
	if !ok {
		m.stopEditing()
		return
	}
	topic := tree.Rename(n, m.titleInput.Value())
	m.stopEditing()

	// Targeted field update plus a full-tree save as a structural net.
	m.noteSave(m.bus.SaveNodeFields(m.file, n.ID, map[string]any{"topic": topic}))
	m.saveFullTree()
	m.bus.Log.AppendBestEffort("node.rename", m.file, n.ID, map[string]any{"topic": topic})
}

func (m *appModel) startContentEdit(n *model.Node) {
	m.engine.Flush()
	m.editing = editContent
	m.editNodeID = n.ID
	m.content.SetValue(n.Content)
	m.content.Focus()
}

// touchContentAutosave registers the debounce flush for the content being
// typed. Values are captured now: the flush never reads UI state, so a
// selection change after Touch cannot leak node A's buffer into node B.
func (m *appModel) touchContentAutosave() {
	n, ok := findNode(m.doc, m.editNodeID)
	if !ok {
		return
	}
	value := m.content.Value()
	n.Content = value

	file, id := m.file, n.ID
	bus := m.bus
	m.engine.Touch(func() {
		bus.SaveNodeFields(file, id, map[string]any{"content": value})
	})
}

// insertNewNode mints a fresh node and inserts it, entering rename mode.
// parentID == "" inserts at the top level.
func (m *appModel) insertNewNode(parentID string, at int) {
	m.engine.Flush()
	used := store.UsedIDs(m.file, m.doc.Children)
	n, err := tree.NewNode(used)
	if err != nil {
		m.flash = err.Error()
		return
	}
	if err := tree.InsertChild(&m.doc.Children, parentID, n, at); err != nil {
		m.flash = err.Error()
		return
	}
	if parentID != "" {
		if p, ok := findNode(m.doc, parentID); ok && !expandedState(p) {
			open := true
			p.Expanded = &open
		}
	}
	m.rebuildRows()
	if idx := rowIndexByID(m.rows, n.ID); idx >= 0 {
		m.sel = idx
	}
	m.saveFullTree()
	m.bus.Log.AppendBestEffort("node.create", m.file, n.ID, map[string]any{"parent": parentID})
	m.startTitleEdit(n)
}

func (m *appModel) newChild() {
	r, ok := m.selectedRow()
	if !ok {
		// Empty project: create the first top-level node.
		m.insertNewNode("", -1)
		return
	}
	m.insertNewNode(r.node.ID, -1)
}

func (m *appModel) newSibling() {
	r, ok := m.selectedRow()
	if !ok {
		m.insertNewNode("", -1)
		return
	}
	parent, idx, ok := tree.FindParent(m.doc.Children, r.node.ID)
	if !ok {
		return
	}
	parentID := ""
	if parent != nil {
		parentID = parent.ID
	}
	m.insertNewNode(parentID, idx+1)
}

func (m *appModel) deleteNode(id string) {
	m.engine.Flush()
	if _, err := tree.Detach(&m.doc.Children, id); err != nil {
		m.flash = err.Error()
		return
	}
	m.stopEditing()
	m.rebuildRows()
	m.saveFullTree()
	m.bus.Log.AppendBestEffort("node.delete", m.file, id, nil)
}

func (m *appModel) copySelected() {
	r, ok := m.selectedRow()
	if !ok {
		return
	}
	text, err := tree.EncodeSubtree(r.node)
	if err != nil {
		m.flash = err.Error()
		return
	}
	if err := clipboardWrite(text); err != nil {
		m.flash = fmt.Sprintf("clipboard: %v", err)
		return
	}
	m.flash = fmt.Sprintf("copied %q", displayTopic(r.node))
}

// cutSelected is copy + detach. Unlike delete it asks for no confirmation:
// the subtree survives on the clipboard.
func (m *appModel) cutSelected() {
	r, ok := m.selectedRow()
	if !ok {
		return
	}
	text, err := tree.EncodeSubtree(r.node)
	if err != nil {
		m.flash = err.Error()
		return
	}
	if err := clipboardWrite(text); err != nil {
		m.flash = fmt.Sprintf("clipboard: %v", err)
		return
	}
	id := r.node.ID
	m.engine.Flush()
	if _, err := tree.Detach(&m.doc.Children, id); err != nil {
		m.flash = err.Error()
		return
	}
	m.stopEditing()
	m.rebuildRows()
	m.saveFullTree()
	m.bus.Log.AppendBestEffort("node.cut", m.file, id, nil)
}

// pasteAsChild decodes the clipboard subtree and inserts it under the
// selection with every id (root and descendants) freshly remapped, then
// enters rename mode on the pasted root.
func (m *appModel) pasteAsChild() {
	r, ok := m.selectedRow()
	if !ok {
		return
	}
	text, err := clipboardRead()
	if err != nil {
		m.flash = fmt.Sprintf("clipboard: %v", err)
		return
	}
	n, err := tree.DecodeSubtree(text)
	if err != nil {
		m.flash = fmt.Sprintf("paste: %v", err)
		return
	}
	m.engine.Flush()
	used := store.UsedIDs(m.file, m.doc.Children)
	if err := tree.RemapIDs(n, used); err != nil {
		m.flash = err.Error()
		return
	}
	parent := r.node
	if err := tree.InsertChild(&m.doc.Children, parent.ID, n, -1); err != nil {
		m.flash = err.Error()
		return
	}
	if !expandedState(parent) {
		open := true
		parent.Expanded = &open
	}
	m.rebuildRows()
	if idx := rowIndexByID(m.rows, n.ID); idx >= 0 {
		m.sel = idx
	}
	m.saveFullTree()
	m.bus.Log.AppendBestEffort("node.paste", m.file, n.ID, map[string]any{"parent": parent.ID})
	m.startTitleEdit(n)
}

// duplicateSelected is the explicit copy-intent drop: the clone lands as
// the next sibling with a fully disjoint id-set.
func (m *appModel) duplicateSelected() {
	r, ok := m.selectedRow()
	if !ok {
		return
	}
	parent, idx, ok := tree.FindParent(m.doc.Children, r.node.ID)
	if !ok {
		return
	}
	m.engine.Flush()
	clone := tree.Clone(r.node)
	used := store.UsedIDs(m.file, m.doc.Children)
	if err := tree.RemapIDs(clone, used); err != nil {
		m.flash = err.Error()
		return
	}
	parentID := ""
	if parent != nil {
		parentID = parent.ID
	}
	if err := tree.InsertChild(&m.doc.Children, parentID, clone, idx+1); err != nil {
		m.flash = err.Error()
		return
	}
	m.rebuildRows()
	if i := rowIndexByID(m.rows, clone.ID); i >= 0 {
		m.sel = i
	}
	m.saveFullTree()
	m.bus.Log.AppendBestEffort("node.paste", m.file, clone.ID, map[string]any{"duplicatedFrom": r.node.ID})
}

type moveDir int

const (
	moveUp moveDir = iota
	moveDown
	moveOut
	moveIn
)

// moveSelected is the explicit move-intent drop: the subtree is relocated
// and no id anywhere in it changes.
func (m *appModel) moveSelected(dir moveDir) {
	r, ok := m.selectedRow()
	if !ok {
		return
	}
	id := r.node.ID
	parent, idx, ok := tree.FindParent(m.doc.Children, id)
	if !ok {
		return
	}
	m.engine.Flush()

	var err error
	switch dir {
	case moveUp:
		if idx == 0 {
			return
		}
		parentID := ""
		if parent != nil {
			parentID = parent.ID
		}
		err = tree.Move(&m.doc.Children, id, parentID, idx-1)
	case moveDown:
		siblings := m.doc.Children
		if parent != nil {
			siblings = parent.Children
		}
		if idx >= len(siblings)-1 {
			return
		}
		parentID := ""
		if parent != nil {
			parentID = parent.ID
		}
		err = tree.Move(&m.doc.Children, id, parentID, idx+1)
	case moveOut:
		if parent == nil {
			return
		}
		grand, pIdx, ok := tree.FindParent(m.doc.Children, parent.ID)
		if !ok {
			return
		}
		grandID := ""
		if grand != nil {
			grandID = grand.ID
		}
		err = tree.Move(&m.doc.Children, id, grandID, pIdx+1)
	case moveIn:
		if idx == 0 {
			return
		}
		siblings := m.doc.Children
		if parent != nil {
			siblings = parent.Children
		}
		target := siblings[idx-1]
		err = tree.Move(&m.doc.Children, id, target.ID, -1)
		if err == nil && !expandedState(target) {
			open := true
			target.Expanded = &open
		}
	}
	if err != nil {
		m.flash = err.Error()
		return
	}
	m.rebuildRows()
	if i := rowIndexByID(m.rows, id); i >= 0 {
		m.sel = i
	}
	m.saveFullTree()
	m.bus.Log.AppendBestEffort("node.move", m.file, id, nil)
}

// setExpanded toggles a node open/closed and persists just that field.
func (m *appModel) setExpanded(n *model.Node, open bool) {
	n.Expanded = &open
	m.rebuildRows()
	m.noteSave(m.bus.SaveTreeExpansion(m.file, n.ID, open))
}

// addToBoard puts the selection (or its direct children) into the planned
// column at the end, via the field-update path.
func (m *appModel) addToBoard(directChildren bool) {
	r, ok := m.selectedRow()
	if !ok {
		return
	}
	targets := swimlane.AddTargets(r.node, directChildren)
	if len(targets) == 0 {
		m.flash = "no nodes to add"
		return
	}
	order := swimlane.NextPlannedOrder(m.doc.Children, m.cfg.AnchorTopic)
	for _, n := range targets {
		o := order
		n.Status = model.StatusPlanned
		n.KanbanOrder = &o
		m.noteSave(m.bus.SaveNodeFields(m.file, n.ID, map[string]any{
			"status":       model.StatusPlanned,
			"kanban_order": o,
		}))
		order++
	}
	m.rebuildBoard()
	m.flash = fmt.Sprintf("added %d node(s) to planned", len(targets))
}

// runAgent asks the configured external script to draft content for the
// selected node. The subprocess runs off-loop; only the message re-enters.
func (m *appModel) runAgent() tea.Cmd {
	r, ok := m.selectedRow()
	if !ok {
		return nil
	}
	if m.agentBusy {
		m.flash = "agent already running"
		return nil
	}
	n := r.node
	prompt := n.Topic
	if prompt == "" {
		prompt = n.Content
	}
	ru := runner.Runner{
		Script:     m.cfg.RunnerScript,
		ConfigPath: m.cfg.RunnerConfig,
		Timeout:    m.cfg.Timeout(),
	}
	id := n.ID
	m.agentBusy = true
	return func() tea.Msg {
		out, err := ru.Run(context.Background(), prompt)
		return agentDoneMsg{nodeID: id, out: out, err: err}
	}
}

func (m *appModel) applyAgentResult(msg agentDoneMsg) {
	m.agentBusy = false
	if msg.err != nil {
		m.flash = fmt.Sprintf("agent: %v", msg.err)
		return
	}
	n, ok := findNode(m.doc, msg.nodeID)
	if !ok {
		// The node was deleted while the agent ran; drop the output.
		m.flash = "agent output discarded: node gone"
		return
	}
	n.Content = msg.out
	m.noteSave(m.bus.SaveNodeFields(m.file, n.ID, map[string]any{"content": msg.out}))
	m.bus.Log.AppendBestEffort("run.agent", m.file, n.ID, map[string]any{"bytes": len(msg.out)})
	m.flash = fmt.Sprintf("agent filled %q", displayTopic(n))
}
