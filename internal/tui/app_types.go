package tui

type view int

const (
	viewProjects view = iota
	viewTree
	viewBoard
)

func viewToString(v view) string {
	switch v {
	case viewProjects:
		return "projects"
	case viewTree:
		return "tree"
	case viewBoard:
		return "board"
	default:
		return "?"
	}
}

type modalKind int

const (
	modalNone modalKind = iota
	modalConfirmDelete
	modalNewProject
)

type editKind int

const (
	editNone editKind = iota
	editTitle
	editContent
)

// periodicSaveMsg is delivered by the autosave engine's fixed-interval
// schedule; the full-tree save itself runs on the update loop so the
// document is never touched off-thread.
type periodicSaveMsg struct{}

// agentDoneMsg carries the runner's output for a node back into the loop.
type agentDoneMsg struct {
	nodeID string
	out    string
	err    error
}

type boardSelection struct {
	Col  int
	Card int
}
