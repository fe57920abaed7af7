// ABOUTME: Tests for the hierarchy browser model
// ABOUTME: Drives Update with key messages and checks row/expansion state

package tree

import (
	"strings"
	"testing"

	"github.com/ahmedalalousi/hwVisualiser/internal/puml"
	tea "github.com/charmbracelet/bubbletea"
)

func fixtureHierarchy(t *testing.T) *puml.Hierarchy {
	t.Helper()
	text := `rectangle "SYS-A" as SYS_A <<Chassis>> {
  rectangle "lpar1\nCPU: 2" as lpar1 <<LPAR>> {
    package "Database (1)" as lpar1_Database {
      component "DB2" as lpar1_DB2_0
    }
  }
}
`
	h, err := puml.Parse(strings.NewReader(text))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return h
}

func keyMsg(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		m = next.(Model)
	}
	return m
}

func TestNewExpandsRoots(t *testing.T) {
	m := New(fixtureHierarchy(t))

	// Root expanded, everything below it collapsed: root + its direct child.
	if len(m.rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(m.rows))
	}
	if m.rows[0].node.ID != "SYS_A" || m.rows[0].depth != 0 {
		t.Errorf("row 0 = %+v", m.rows[0])
	}
	if m.rows[1].node.ID != "lpar1" || m.rows[1].depth != 1 {
		t.Errorf("row 1 = %+v", m.rows[1])
	}
}

func TestCursorMovement(t *testing.T) {
	m := update(t, New(fixtureHierarchy(t)), "j")
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.cursor)
	}

	m = update(t, m, "j", "j", "j")
	if m.cursor != len(m.rows)-1 {
		t.Errorf("cursor must clamp at the last row, got %d", m.cursor)
	}

	m = update(t, m, "k", "k", "k", "k", "k")
	if m.cursor != 0 {
		t.Errorf("cursor must clamp at 0, got %d", m.cursor)
	}
}

func TestToggleExpand(t *testing.T) {
	m := update(t, New(fixtureHierarchy(t)), "j", "enter")

	// Expanding lpar1 reveals the group row.
	if len(m.rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(m.rows))
	}
	if m.rows[2].node.ID != "lpar1_Database" {
		t.Errorf("row 2 = %+v", m.rows[2])
	}

	m = update(t, m, "enter")
	if len(m.rows) != 2 {
		t.Errorf("collapse must hide descendants, rows = %d", len(m.rows))
	}
}

func TestToggleLeafIsNoOp(t *testing.T) {
	m := update(t, New(fixtureHierarchy(t)), "e", "G")
	before := len(m.rows)

	m = update(t, m, "enter")
	if len(m.rows) != before {
		t.Errorf("toggling a leaf changed visible rows: %d -> %d", before, len(m.rows))
	}
}

func TestExpandAndCollapseAll(t *testing.T) {
	m := update(t, New(fixtureHierarchy(t)), "e")
	if len(m.rows) != 4 {
		t.Errorf("expand all: rows = %d, want 4", len(m.rows))
	}

	m = update(t, m, "G", "c")
	if len(m.rows) != 1 {
		t.Errorf("collapse all: rows = %d, want 1", len(m.rows))
	}
	if m.cursor != 0 {
		t.Errorf("collapse all must reset the cursor, got %d", m.cursor)
	}
}

func TestJumpKeys(t *testing.T) {
	m := update(t, New(fixtureHierarchy(t)), "e", "G")
	if m.cursor != len(m.rows)-1 {
		t.Errorf("G: cursor = %d", m.cursor)
	}

	m = update(t, m, "g")
	if m.cursor != 0 {
		t.Errorf("g: cursor = %d", m.cursor)
	}
}

func TestQuit(t *testing.T) {
	m := New(fixtureHierarchy(t))
	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("q must produce a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q must quit")
	}
}

func TestViewBeforeReady(t *testing.T) {
	m := New(fixtureHierarchy(t))
	if !strings.Contains(m.View(), "Loading") {
		t.Error("pre-size view must show the loading placeholder")
	}
}

func TestViewAfterResize(t *testing.T) {
	m := New(fixtureHierarchy(t))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = next.(Model)

	view := m.View()
	if !strings.Contains(view, "Hardware Inventory Hierarchy") {
		t.Error("view missing title")
	}
	if !strings.Contains(view, "4 nodes") {
		t.Errorf("view missing node count:\n%s", view)
	}
	if !strings.Contains(view, "SYS-A") {
		t.Error("view missing root row")
	}
}

func TestMetadataToggle(t *testing.T) {
	m := New(fixtureHierarchy(t))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = next.(Model)

	m = update(t, m, "e", "m")
	if !strings.Contains(m.View(), "CPU: 2") {
		t.Error("metadata lines not shown after toggle")
	}

	m = update(t, m, "m")
	if strings.Contains(m.View(), "CPU: 2") {
		t.Error("metadata lines still shown after second toggle")
	}
}
