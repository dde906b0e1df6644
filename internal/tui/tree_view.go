package tui

import (
	"fmt"
	"strings"

	"agentboard/internal/model"
	"agentboard/internal/tree"

	xansi "github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/lipgloss"
)

var (
	selectedRowStyle = lipgloss.NewStyle().Reverse(true)
	placeholderStyle = lipgloss.NewStyle().Faint(true)
	statusBadgeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

func findNode(doc *model.ProjectDoc, id string) (*model.Node, bool) {
	if doc == nil {
		return nil, false
	}
	return tree.Find(doc.Children, id)
}

func displayTopic(n *model.Node) string {
	if strings.TrimSpace(n.Topic) == "" {
		return "(unnamed)"
	}
	return n.Topic
}

func (m appModel) viewTree() string {
	bodyHeight := m.bodyHeight()
	leftWidth := m.width / 2
	if leftWidth < 40 {
		leftWidth = 40
	}
	rightWidth := m.width - leftWidth - 2
	if rightWidth < 30 {
		rightWidth = 30
	}

	left := m.renderRows(leftWidth, bodyHeight)
	right := m.renderDetail(rightWidth, bodyHeight)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m appModel) renderRows(width, height int) string {
	if len(m.rows) == 0 {
		return lipgloss.NewStyle().Width(width).Height(height).Render(
			placeholderStyle.Render("Empty project. Press a to create the first node."))
	}

	// Keep the selection visible within the viewport.
	top := 0
	if m.sel >= height {
		top = m.sel - height + 1
	}

	var b strings.Builder
	for i := top; i < len(m.rows) && i-top < height; i++ {
		r := m.rows[i]
		line := m.renderRow(r, i == m.sel, width)
		b.WriteString(line)
		if i < len(m.rows)-1 && i-top < height-1 {
			b.WriteByte('\n')
		}
	}
	return lipgloss.NewStyle().Width(width).Height(height).Render(b.String())
}

func (m appModel) renderRow(r row, selected bool, width int) string {
	indent := strings.Repeat("  ", r.depth)

	glyph := "· "
	if r.hasChildren {
		if r.collapsed {
			glyph = "▸ "
		} else {
			glyph = "▾ "
		}
	}

	// Inline rename replaces the row's label with the editor.
	if selected && m.editing == editTitle && m.editNodeID == r.node.ID {
		return indent + glyph + m.titleInput.View()
	}

	label := displayTopic(r.node)
	if strings.TrimSpace(r.node.Topic) == "" {
		label = placeholderStyle.Render(label)
	}

	badge := ""
	if model.ValidStatus(r.node.Status) {
		badge = " " + statusBadgeStyle.Render("["+r.node.Status+"]")
	}

	line := xansi.Truncate(indent+glyph+label+badge, width, "…")
	if selected {
		return selectedRowStyle.Render(line)
	}
	return line
}

func (m appModel) renderDetail(width, height int) string {
	frame := lipgloss.NewStyle().Width(width).Height(height)

	r, ok := m.selectedRow()
	if !ok {
		return frame.Render(placeholderStyle.Render("No node selected."))
	}
	n := r.node

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", headerStyle.Render(displayTopic(n)))
	fmt.Fprintf(&b, "%s\n\n", footerStyle.Render(n.ID))
	if model.ValidStatus(n.Status) {
		fmt.Fprintf(&b, "%s\n\n", statusBadgeStyle.Render("status: "+n.Status))
	}

	if m.editing == editContent && m.editNodeID == n.ID {
		b.WriteString(m.content.View())
		return frame.Render(b.String())
	}

	if strings.TrimSpace(n.Content) == "" {
		b.WriteString(placeholderStyle.Render("No content. Press e to edit, g to ask the agent."))
	} else {
		b.WriteString(renderMarkdown(n.Content, width-2))
	}
	return frame.Render(b.String())
}
