package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"agentboard/internal/autosave"
	"agentboard/internal/model"
	"agentboard/internal/store"
	"agentboard/internal/swimlane"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type appModel struct {
	st     store.Store
	cfg    *store.Config
	bus    *store.Bus
	engine *autosave.Engine

	width          int
	height         int
	seenWindowSize bool

	view view

	projectsList list.Model

	// Loaded project.
	file string
	doc  *model.ProjectDoc

	// Tree view.
	rows []row
	sel  int

	// Inline editing.
	editing    editKind
	editNodeID string
	titleInput textinput.Model
	content    textarea.Model

	// Board view.
	board    swimlane.Board
	boardSel boardSelection

	modal      modalKind
	modalForID string
	nameInput  textinput.Model

	// Sticky persistence status. unsaved stays set from the first failed
	// write until the next successful one for this file.
	unsaved  bool
	saveErr  string
	flash    string
	agentBusy bool
}

type projectItem struct {
	name string
}

func (p projectItem) Title() string       { return p.name }
func (p projectItem) Description() string { return "project file" }
func (p projectItem) FilterValue() string { return p.name }

func newAppModel(st store.Store, cfg *store.Config, eng *autosave.Engine) appModel {
	m := appModel{
		st:     st,
		cfg:    cfg,
		bus:    &store.Bus{Log: st.EventLog()},
		engine: eng,
		view:   viewProjects,
	}

	m.projectsList = newList("Projects", nil)
	m.titleInput = textinput.New()
	m.titleInput.Prompt = ""
	m.titleInput.Placeholder = "(unnamed)"
	m.nameInput = textinput.New()
	m.nameInput.Prompt = "> "
	m.content = textarea.New()
	m.content.ShowLineNumbers = false

	m.refreshProjects()
	m.restoreUIState()
	return m
}

func newList(title string, items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	// We render our own footer, so keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("project", "projects")
	l.KeyMap.Quit.SetKeys("q")
	return l
}

func (m *appModel) refreshProjects() {
	names, err := m.st.ListProjects()
	if err != nil {
		m.flash = err.Error()
		return
	}
	items := make([]list.Item, 0, len(names))
	for _, n := range names {
		items = append(items, projectItem{name: n})
	}
	m.projectsList.SetItems(items)
}

func (m *appModel) restoreUIState() {
	ui, err := m.st.LoadUIState()
	if err != nil || ui.OpenProject == "" {
		return
	}
	if !m.openProject(ui.OpenProject) {
		return
	}
	if ui.View == "board" {
		m.rebuildBoard()
		m.view = viewBoard
	}
	if ui.SelectedNodeID != "" {
		if idx := rowIndexByID(m.rows, ui.SelectedNodeID); idx >= 0 {
			m.sel = idx
		}
	}
}

func (m *appModel) persistUIState() {
	ui := &store.UIState{View: viewToString(m.view)}
	if m.file != "" {
		ui.OpenProject = strings.TrimSuffix(filepath.Base(m.file), ".json")
	}
	if r, ok := m.selectedRow(); ok {
		ui.SelectedNodeID = r.node.ID
	}
	_ = m.st.SaveUIState(ui)
}

// openProject loads a project file and rebuilds the tree view.
func (m *appModel) openProject(name string) bool {
	path := m.st.ProjectPath(name)
	doc, err := store.ReadDoc(path)
	if err != nil {
		m.flash = fmt.Sprintf("open %s: %v", name, err)
		return false
	}
	// Pending edits belong to the previous file; flush before repointing.
	m.engine.Flush()
	m.file = path
	m.doc = doc
	m.rebuildRows()
	m.sel = 0
	m.view = viewTree
	m.stopEditing()
	m.unsaved = false
	m.saveErr = ""
	return true
}

func (m *appModel) rebuildRows() {
	m.rows = flattenTree(m.doc.Children)
	if m.sel >= len(m.rows) {
		m.sel = len(m.rows) - 1
	}
	if m.sel < 0 {
		m.sel = 0
	}
}

func (m *appModel) rebuildBoard() {
	m.board = swimlane.Build(m.doc.Children, m.cfg.AnchorTopic)
	m.clampBoardSel()
}

func (m *appModel) selectedRow() (row, bool) {
	if m.doc == nil || m.sel < 0 || m.sel >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.sel], true
}

// noteSave records the outcome of any bus write for the status bar. A
// failure leaves the tree optimistically updated in memory but marks the
// file unsaved until a later write succeeds.
func (m *appModel) noteSave(res store.SaveResult) {
	if res.OK {
		m.unsaved = false
		m.saveErr = ""
		return
	}
	m.unsaved = true
	m.saveErr = res.String()
}

// saveFullTree rebuilds the whole children array from the in-memory
// document. The document already reflects every pending edit, so the
// wholesale replace is safe.
func (m *appModel) saveFullTree() {
	if m.doc == nil || m.file == "" {
		return
	}
	m.noteSave(m.bus.SaveFullTree(m.file, m.doc.Children))
}

func (m appModel) Init() tea.Cmd { return nil }

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	footerStyle  = lipgloss.NewStyle().Faint(true)
	flashStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	unsavedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

func (m appModel) View() string {
	header := m.viewHeader()

	var body string
	switch m.view {
	case viewProjects:
		body = m.viewProjects()
	case viewTree:
		body = m.viewTree()
	case viewBoard:
		body = m.viewBoard()
	}

	if m.modal != modalNone {
		body = m.viewModal()
	}

	return strings.Join([]string{header, body, m.viewFooter()}, "\n\n")
}

func (m appModel) viewHeader() string {
	name := "-"
	if m.file != "" {
		name = strings.TrimSuffix(filepath.Base(m.file), ".json")
	}
	h := fmt.Sprintf("agentboard  project=%s  view=%s", name, viewToString(m.view))
	out := headerStyle.Render(h)
	if m.unsaved {
		out += "  " + unsavedStyle.Render("● unsaved: "+m.saveErr)
	} else if m.agentBusy {
		out += "  " + flashStyle.Render("agent running…")
	}
	return out
}

func (m appModel) viewFooter() string {
	var help string
	switch {
	case m.modal == modalConfirmDelete:
		help = "y: delete  n/esc: cancel"
	case m.modal == modalNewProject:
		help = "enter: create  esc: cancel"
	case m.editing == editTitle:
		help = "enter: commit title  esc: cancel"
	case m.editing == editContent:
		help = "esc: done editing (autosaves as you type)"
	case m.view == viewProjects:
		help = "enter: open  n: new project  q: quit"
	case m.view == viewTree:
		help = "a: child  o: sibling  enter: rename  e: content  c/x/p: copy/cut/paste  D: duplicate  K/J/H/L: move  t/T: to board  d: delete  b: board  g: agent  esc: projects"
	case m.view == viewBoard:
		help = "arrows: select  K/J: reorder  H/L: change column  b/esc: tree"
	}
	out := footerStyle.Render(help)
	if m.flash != "" {
		out = flashStyle.Render(m.flash) + "\n" + out
	}
	return out
}

func (m appModel) viewProjects() string {
	return m.projectsList.View()
}

func (m appModel) viewModal() string {
	switch m.modal {
	case modalConfirmDelete:
		topic := m.modalForID
		if m.doc != nil {
			if n, ok := findNode(m.doc, m.modalForID); ok {
				topic = displayTopic(n)
			}
		}
		return fmt.Sprintf("Delete %q and its subtree? (y/n)", topic)
	case modalNewProject:
		return "New project name:\n\n" + m.nameInput.View()
	default:
		return ""
	}
}

func (m *appModel) bodyHeight() int {
	h := m.height - 6
	if h < 8 {
		h = 8
	}
	return h
}

func (m *appModel) resize() {
	w := m.width
	if w < 40 {
		w = 40
	}
	m.projectsList.SetSize(w, m.bodyHeight())
	m.content.SetWidth(w/2 - 4)
	m.content.SetHeight(m.bodyHeight() - 4)
	m.titleInput.Width = w/2 - 4
}
