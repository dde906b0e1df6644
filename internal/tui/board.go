package tui

import (
	"fmt"
	"strings"

	"agentboard/internal/model"
	"agentboard/internal/store"
	"agentboard/internal/swimlane"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

var (
	colTitleStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	cardStyle     = lipgloss.NewStyle()
	cardSelStyle  = lipgloss.NewStyle().Reverse(true)
)

func (m *appModel) clampBoardSel() {
	if len(m.board.Columns) == 0 {
		m.boardSel = boardSelection{}
		return
	}
	if m.boardSel.Col < 0 {
		m.boardSel.Col = 0
	}
	if m.boardSel.Col >= len(m.board.Columns) {
		m.boardSel.Col = len(m.board.Columns) - 1
	}
	cards := m.board.Columns[m.boardSel.Col].Cards
	if m.boardSel.Card >= len(cards) {
		m.boardSel.Card = len(cards) - 1
	}
	if m.boardSel.Card < 0 {
		m.boardSel.Card = 0
	}
}

func (m *appModel) selectedCard() (swimlane.Card, bool) {
	if m.boardSel.Col < 0 || m.boardSel.Col >= len(m.board.Columns) {
		return swimlane.Card{}, false
	}
	cards := m.board.Columns[m.boardSel.Col].Cards
	if m.boardSel.Card < 0 || m.boardSel.Card >= len(cards) {
		return swimlane.Card{}, false
	}
	return cards[m.boardSel.Card], true
}

func (m appModel) viewBoard() string {
	if len(m.board.Columns) == 0 {
		return "(board is empty)"
	}
	w := m.width
	if w < 50 {
		w = 50
	}
	colW := w/len(m.board.Columns) - 2
	if colW < 10 {
		colW = 10
	}
	h := m.bodyHeight()

	cols := make([]string, 0, len(m.board.Columns))
	for ci, col := range m.board.Columns {
		var b strings.Builder
		b.WriteString(colTitleStyle.Render(fmt.Sprintf("%s (%d)", col.Status, len(col.Cards))))
		b.WriteByte('\n')
		for i, card := range col.Cards {
			if i >= h-2 {
				b.WriteString(footerStyle.Render(fmt.Sprintf("…%d more", len(col.Cards)-i)))
				break
			}
			topic := card.Topic
			if topic == "" {
				topic = "(unnamed)"
			}
			line := xansi.Truncate(topic, colW, "…")
			style := cardStyle
			if ci == m.boardSel.Col && i == m.boardSel.Card {
				style = cardSelStyle
			}
			b.WriteString(style.Render(line))
			b.WriteByte('\n')
		}
		cols = append(cols, lipgloss.NewStyle().Width(colW).Height(h).Render(b.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (m *appModel) moveBoardSel(dCol, dCard int) {
	m.boardSel.Col += dCol
	m.boardSel.Card += dCard
	m.clampBoardSel()
}

// moveCardWithin reorders the selected card inside its column. The whole
// column is recommitted with dense orders, which also normalizes any
// sentinel-valued cards that sorted to the bottom.
func (m *appModel) moveCardWithin(delta int) {
	if _, ok := m.selectedCard(); !ok {
		return
	}
	col := m.board.Columns[m.boardSel.Col]
	to := m.boardSel.Card + delta
	if to < 0 || to >= len(col.Cards) {
		return
	}
	cards := append([]swimlane.Card(nil), col.Cards...)
	cards[m.boardSel.Card], cards[to] = cards[to], cards[m.boardSel.Card]

	state := store.BoardState{col.Status: entriesFor(cards)}
	m.commitBoard(state)
	m.boardSel.Card = to
}

// moveCardAcross moves the selected card to the adjacent column, appended
// at the bottom. Both touched columns are recommitted.
func (m *appModel) moveCardAcross(delta int) {
	card, ok := m.selectedCard()
	if !ok {
		return
	}
	from := m.boardSel.Col
	to := from + delta
	if to < 0 || to >= len(m.board.Columns) {
		return
	}
	src := m.board.Columns[from]
	dst := m.board.Columns[to]

	srcCards := make([]swimlane.Card, 0, len(src.Cards)-1)
	for _, c := range src.Cards {
		if c.ID != card.ID {
			srcCards = append(srcCards, c)
		}
	}
	dstCards := append(append([]swimlane.Card(nil), dst.Cards...), card)

	state := store.BoardState{
		src.Status: entriesFor(srcCards),
		dst.Status: entriesFor(dstCards),
	}
	m.commitBoard(state)
	m.boardSel = boardSelection{Col: to, Card: len(dstCards) - 1}
}

func entriesFor(cards []swimlane.Card) []store.BoardEntry {
	out := make([]store.BoardEntry, 0, len(cards))
	for i, c := range cards {
		out = append(out, store.BoardEntry{ID: c.ID, Order: i})
	}
	return out
}

// commitBoard persists a board mutation and mirrors the committed state
// onto the in-memory tree, then rebuilds the projection.
func (m *appModel) commitBoard(state store.BoardState) {
	m.engine.Flush()
	m.noteSave(m.bus.SaveSwimlaneState(m.file, state))

	sync := map[string][]swimlane.Card{}
	for status, entries := range state {
		if !model.ValidStatus(status) {
			continue
		}
		for _, e := range entries {
			sync[status] = append(sync[status], swimlane.Card{ID: e.ID, Order: e.Order})
		}
	}
	swimlane.SyncNodes(m.doc.Children, sync)
	m.rebuildBoard()
}
