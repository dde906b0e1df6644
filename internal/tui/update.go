package tui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.seenWindowSize = true
		m.resize()
		return m, nil

	case periodicSaveMsg:
		// Interval save runs on the update loop so the document is only
		// ever touched here. The document already carries every pending
		// edit, so one full-tree write covers them all.
		if m.doc != nil {
			m.saveFullTree()
		}
		return m, nil

	case agentDoneMsg:
		m.applyAgentResult(msg)
		m.rebuildRows()
		return m, nil

	case tea.KeyMsg:
		// One keypress clears the previous flash.
		m.flash = ""
		return m.handleKey(msg)
	}

	return m.forward(msg)
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	if m.modal != modalNone {
		return m.updateModal(msg)
	}
	if m.editing != editNone {
		return m.updateEditing(msg)
	}

	switch m.view {
	case viewProjects:
		return m.updateProjects(msg)
	case viewTree:
		return m.updateTree(msg)
	case viewBoard:
		return m.updateBoard(msg)
	}
	return m, nil
}

func (m appModel) quit() (tea.Model, tea.Cmd) {
	m.engine.Flush()
	m.persistUIState()
	return m, tea.Quit
}

func (m appModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalConfirmDelete:
		switch msg.String() {
		case "y", "Y":
			id := m.modalForID
			m.modal = modalNone
			m.modalForID = ""
			m.deleteNode(id)
		case "n", "N", "esc":
			m.modal = modalNone
			m.modalForID = ""
		}
		return m, nil

	case modalNewProject:
		switch msg.String() {
		case "enter":
			name := m.nameInput.Value()
			m.modal = modalNone
			m.nameInput.SetValue("")
			m.nameInput.Blur()
			if _, err := m.st.CreateProject(name); err != nil {
				m.flash = err.Error()
				return m, nil
			}
			m.refreshProjects()
			m.openProject(name)
		case "esc":
			m.modal = modalNone
			m.nameInput.SetValue("")
			m.nameInput.Blur()
		default:
			var cmd tea.Cmd
			m.nameInput, cmd = m.nameInput.Update(msg)
			return m, cmd
		}
		return m, nil
	}
	return m, nil
}

func (m appModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.editing {
	case editTitle:
		switch msg.String() {
		case "enter":
			m.commitTitleEdit()
			return m, nil
		case "esc":
			m.stopEditing()
			return m, nil
		}
		var cmd tea.Cmd
		m.titleInput, cmd = m.titleInput.Update(msg)
		return m, cmd

	case editContent:
		if msg.String() == "esc" {
			m.engine.Flush()
			m.stopEditing()
			return m, nil
		}
		var cmd tea.Cmd
		m.content, cmd = m.content.Update(msg)
		m.touchContentAutosave()
		return m, cmd
	}
	return m, nil
}

func (m appModel) updateProjects(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the list filter is typing, every key belongs to it.
	if m.projectsList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.projectsList, cmd = m.projectsList.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m.quit()
	case "n":
		m.modal = modalNewProject
		m.nameInput.SetValue("")
		m.nameInput.Focus()
		return m, nil
	case "enter":
		if it, ok := m.projectsList.SelectedItem().(projectItem); ok {
			m.openProject(it.name)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.projectsList, cmd = m.projectsList.Update(msg)
	return m, cmd
}

func (m appModel) updateTree(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.engine.Flush()
		m.persistUIState()
		m.view = viewProjects
		m.refreshProjects()
		return m, nil
	case "up", "k":
		m.selectRow(m.sel - 1)
	case "down", "j":
		m.selectRow(m.sel + 1)
	case "left", "h":
		if r, ok := m.selectedRow(); ok && r.hasChildren && !r.collapsed {
			m.setExpanded(r.node, false)
		}
	case "right", "l":
		if r, ok := m.selectedRow(); ok && r.hasChildren && r.collapsed {
			m.setExpanded(r.node, true)
		}
	case "a":
		m.newChild()
	case "o":
		m.newSibling()
	case "enter":
		if r, ok := m.selectedRow(); ok {
			m.startTitleEdit(r.node)
		}
	case "e":
		if r, ok := m.selectedRow(); ok {
			m.startContentEdit(r.node)
		}
	case "d":
		if r, ok := m.selectedRow(); ok {
			m.modal = modalConfirmDelete
			m.modalForID = r.node.ID
		}
	case "c":
		m.copySelected()
	case "x":
		m.cutSelected()
	case "p":
		m.pasteAsChild()
	case "D":
		m.duplicateSelected()
	case "K":
		m.moveSelected(moveUp)
	case "J":
		m.moveSelected(moveDown)
	case "H":
		m.moveSelected(moveOut)
	case "L":
		m.moveSelected(moveIn)
	case "t":
		m.addToBoard(false)
	case "T":
		m.addToBoard(true)
	case "b":
		m.engine.Flush()
		m.rebuildBoard()
		m.view = viewBoard
	case "g":
		return m, m.runAgent()
	}
	return m, nil
}

func (m appModel) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "b", "esc":
		m.view = viewTree
		m.rebuildRows()
		return m, nil
	case "up", "k":
		m.moveBoardSel(0, -1)
	case "down", "j":
		m.moveBoardSel(0, 1)
	case "left", "h":
		m.moveBoardSel(-1, 0)
	case "right", "l":
		m.moveBoardSel(1, 0)
	case "K":
		m.moveCardWithin(-1)
	case "J":
		m.moveCardWithin(1)
	case "H":
		m.moveCardAcross(-1)
	case "L":
		m.moveCardAcross(1)
	case "enter":
		// Jump to the card's node in the tree.
		if card, ok := m.selectedCard(); ok {
			m.view = viewTree
			m.rebuildRows()
			if idx := rowIndexByID(m.rows, card.ID); idx >= 0 {
				m.selectRow(idx)
			}
		}
	}
	return m, nil
}

// forward hands non-key messages to whichever bubbles component is active.
func (m appModel) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	if m.view == viewProjects {
		m.projectsList, cmd = m.projectsList.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.editing == editTitle {
		m.titleInput, cmd = m.titleInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.editing == editContent {
		m.content, cmd = m.content.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}
