// ABOUTME: Round-trip conformance tests between the diagram writer and parser
// ABOUTME: A serialized inventory must parse back to the equivalent hierarchy

package puml

import (
	"reflect"
	"strings"
	"testing"

	"github.com/ahmedalalousi/hwVisualiser/internal/inventory"
)

func TestRoundTripStructure(t *testing.T) {
	inv := fixtureInventory(t)
	out := renderDiagram(t, inv, DefaultWriterOptions())

	h, err := Parse(strings.NewReader(out))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if h.SkippedCount != 0 {
		t.Fatalf("writer output must parse cleanly, skipped %d: %v", h.SkippedCount, h.Skipped)
	}

	if len(h.Roots) != 2 {
		t.Fatalf("expected 2 roots (system + unmatched bucket), got %d", len(h.Roots))
	}
	sys, bucket := h.Roots[0], h.Roots[1]
	if sys.ID != "S1_MMB_001" || sys.Name != "S1-MMB-001" || sys.Type != TagChassis {
		t.Errorf("system root mismatch: %+v", sys)
	}
	if bucket.Name != inventory.UnmatchedSystemName || bucket.Type != TagChassis {
		t.Errorf("unmatched bucket root mismatch: %+v", bucket)
	}

	wantMeta := []string{"Model: S1 MMB", "Serial: SER1", "Total CPU: 3", "Total Memory: 6 GB"}
	if !reflect.DeepEqual(sys.Metadata, wantMeta) {
		t.Errorf("system metadata = %v, want %v", sys.Metadata, wantMeta)
	}

	if len(sys.Children) != 2 {
		t.Fatalf("expected 2 partitions, got %d", len(sys.Children))
	}
	p1, p2 := sys.Children[0], sys.Children[1]
	if p1.Name != "p1" || p1.Type != TagLPAR {
		t.Errorf("p1 mismatch: %+v", p1)
	}
	if p2.Name != "p2" || len(p2.Children) != 0 {
		t.Errorf("p2 must be an empty leaf partition: %+v", p2)
	}

	// Groups are sorted by type, leaves keep matcher order inside the group.
	if len(p1.Children) != 2 {
		t.Fatalf("expected 2 groups under p1, got %d", len(p1.Children))
	}
	db, mw := p1.Children[0], p1.Children[1]
	if db.Name != "Database (1)" || db.Type != TypePackage {
		t.Errorf("database group mismatch: %+v", db)
	}
	if mw.Name != "Middleware (1)" {
		t.Errorf("middleware group mismatch: %+v", mw)
	}
	if len(db.Children) != 1 || db.Children[0].Name != "DB2 v11.5" {
		t.Errorf("version suffix must survive the trip: %+v", db.Children)
	}
	if db.Children[0].ID != "p1_DB2_0" || db.Children[0].Type != TypeComponent {
		t.Errorf("leaf identity mismatch: %+v", db.Children[0])
	}

	if len(bucket.Children) != 1 {
		t.Fatalf("expected the synthetic partition under the bucket root")
	}
	synth := bucket.Children[0]
	if synth.Name != inventory.UnmatchedPartitionName || synth.Type != TagUnmatchedLPAR {
		t.Errorf("synthetic partition mismatch: %+v", synth)
	}
	if len(synth.Children) != 1 || len(synth.Children[0].Children) != 1 {
		t.Fatalf("orphan application lost: %+v", synth.Children)
	}
	if synth.Children[0].Children[0].Name != "MysteryApp" {
		t.Errorf("orphan leaf mismatch: %+v", synth.Children[0].Children[0])
	}
}

func TestRoundTripEscapedQuotes(t *testing.T) {
	inv := inventory.New()
	loadPartitions(t, inv, onePartitionCSV)
	apps := []inventory.Application{{Host: "p1", Name: `My "Quoted" App`, Type: "Tool"}}
	inv.Applications = apps
	inv.ApplyMatches(inventory.Correlate(apps, inv.Partitions))

	out := renderDiagram(t, inv, DefaultWriterOptions())
	h, err := Parse(strings.NewReader(out))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	var found bool
	h.Walk(func(n *Node, _ int) {
		if n.Name == `My "Quoted" App` {
			found = true
		}
	})
	if !found {
		t.Error("quoted application name did not survive the round trip")
	}
}

func TestRoundTripNodeCountStable(t *testing.T) {
	inv := fixtureInventory(t)
	out := renderDiagram(t, inv, DefaultWriterOptions())

	h, err := Parse(strings.NewReader(out))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	// 2 systems + 3 partitions + 3 groups + 3 components.
	if got := h.NodeCount(); got != 11 {
		t.Errorf("node count = %d, want 11", got)
	}
}

func TestC4IdentifiersAgreeWithNestedWriter(t *testing.T) {
	inv := fixtureInventory(t)

	var c4 strings.Builder
	if err := WriteC4(&c4, inv); err != nil {
		t.Fatalf("WriteC4: %v", err)
	}

	h, err := Parse(strings.NewReader(renderDiagram(t, inv, DefaultWriterOptions())))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	// Every container-level id from the nested view must appear verbatim in
	// the C4 view so tooling can join the two.
	for _, id := range []string{"S1_MMB_001", "p1", "p2", "p1_Database", "p1_Middleware"} {
		if h.Index[id] == nil {
			t.Errorf("id %q missing from nested view", id)
		}
		if !strings.Contains(c4.String(), "("+id+",") {
			t.Errorf("id %q missing from C4 view", id)
		}
	}

	for _, want := range []string{
		"System_Boundary(S1_MMB_001, \"S1-MMB-001\"",
		"Container(p1, \"p1\", \"LPAR\"",
		"Component(p1_Database, \"Database\", \"Application Group\", \"1 applications\")",
		"Rel(p1, p1_Database, \"hosts\")",
		"SHOW_LEGEND()",
	} {
		if !strings.Contains(c4.String(), want) {
			t.Errorf("C4 output missing:\n%s", want)
		}
	}
}
