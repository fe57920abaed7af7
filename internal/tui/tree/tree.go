// ABOUTME: Interactive bubbletea browser for a parsed diagram hierarchy
// ABOUTME: Expand/collapse navigation over System -> LPAR -> group -> component

package tree

import (
	"fmt"
	"strings"

	"github.com/ahmedalalousi/hwVisualiser/internal/puml"
	"github.com/ahmedalalousi/hwVisualiser/internal/tui/styles"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// row is one visible line of the tree: a node at a nesting depth.
type row struct {
	node  *puml.Node
	depth int
}

// Model is the hierarchy browser.
type Model struct {
	roots    []*puml.Node
	expanded map[*puml.Node]bool
	showMeta bool

	rows   []row
	cursor int

	viewport viewport.Model
	ready    bool
	width    int
	height   int
}

// New creates a browser over a parsed hierarchy with roots expanded.
func New(h *puml.Hierarchy) Model {
	m := Model{
		roots:    h.Roots,
		expanded: make(map[*puml.Node]bool),
	}
	for _, root := range h.Roots {
		m.expanded[root] = true
	}
	m.rebuild()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		headerHeight := 3
		footerHeight := 2
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight - footerHeight
		}
		m.syncViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			m.syncViewport()
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
			m.syncViewport()
		case "enter", " ":
			m.toggle()
			m.syncViewport()
		case "e":
			m.setAll(true)
			m.syncViewport()
		case "c":
			m.setAll(false)
			m.cursor = 0
			m.syncViewport()
		case "m":
			m.showMeta = !m.showMeta
			m.syncViewport()
		case "g":
			m.cursor = 0
			m.syncViewport()
		case "G":
			m.cursor = len(m.rows) - 1
			m.syncViewport()
		}
	}
	return m, nil
}

func (m Model) View() string {
	if !m.ready {
		return "Loading hierarchy..."
	}

	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Hardware Inventory Hierarchy"))
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("%d nodes", m.nodeCount())))
	sb.WriteString("\n")
	sb.WriteString(m.viewport.View())
	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("↑/↓ move · enter toggle · e expand all · c collapse all · m metadata · q quit"))
	return sb.String()
}

// toggle expands or collapses the node under the cursor.
func (m *Model) toggle() {
	if m.cursor >= len(m.rows) {
		return
	}
	node := m.rows[m.cursor].node
	if len(node.Children) == 0 {
		return
	}
	m.expanded[node] = !m.expanded[node]
	m.rebuild()
}

func (m *Model) setAll(expanded bool) {
	for _, root := range m.roots {
		walkNodes(root, func(n *puml.Node) {
			if len(n.Children) > 0 {
				m.expanded[n] = expanded
			}
		})
	}
	if !expanded {
		for _, root := range m.roots {
			m.expanded[root] = false
		}
	}
	m.rebuild()
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
}

// rebuild recomputes the visible rows from the expansion state.
func (m *Model) rebuild() {
	m.rows = m.rows[:0]
	for _, root := range m.roots {
		m.appendVisible(root, 0)
	}
}

func (m *Model) appendVisible(n *puml.Node, depth int) {
	m.rows = append(m.rows, row{node: n, depth: depth})
	if m.expanded[n] {
		for _, c := range n.Children {
			m.appendVisible(c, depth+1)
		}
	}
}

// syncViewport re-renders the rows and keeps the cursor line in view.
func (m *Model) syncViewport() {
	if !m.ready {
		return
	}

	lines := make([]string, 0, len(m.rows))
	cursorLine := 0
	for i, r := range m.rows {
		if i == m.cursor {
			cursorLine = len(lines)
		}
		lines = append(lines, m.renderRow(r, i == m.cursor))
		if m.showMeta {
			indent := strings.Repeat("  ", r.depth+2)
			for _, meta := range r.node.Metadata {
				lines = append(lines, indent+styles.Metadata.Render(meta))
			}
		}
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))

	// Scroll the viewport just enough to keep the cursor visible.
	if cursorLine < m.viewport.YOffset {
		m.viewport.SetYOffset(cursorLine)
	} else if cursorLine >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(cursorLine - m.viewport.Height + 1)
	}
}

func (m *Model) renderRow(r row, selected bool) string {
	marker := "  "
	if len(r.node.Children) > 0 {
		if m.expanded[r.node] {
			marker = "▾ "
		} else {
			marker = "▸ "
		}
	}

	label := r.node.Name
	if len(r.node.Children) > 0 && !m.expanded[r.node] {
		label += fmt.Sprintf(" (%d)", len(r.node.Children))
	}

	line := strings.Repeat("  ", r.depth) + marker + nodeStyle(r.node.Type).Render(label)
	if selected {
		return styles.Cursor.Render("> ") + line
	}
	return "  " + line
}

func (m *Model) nodeCount() int {
	n := 0
	for _, root := range m.roots {
		walkNodes(root, func(*puml.Node) { n++ })
	}
	return n
}

func nodeStyle(nodeType string) lipgloss.Style {
	switch nodeType {
	case puml.TagChassis:
		return styles.Chassis
	case puml.TagLPAR:
		return styles.LPAR
	case puml.TagUnmatchedLPAR:
		return styles.UnmatchedLPAR
	case puml.TypePackage:
		return styles.Group
	default:
		return styles.Component
	}
}

func walkNodes(n *puml.Node, fn func(*puml.Node)) {
	fn(n)
	for _, c := range n.Children {
		walkNodes(c, fn)
	}
}
