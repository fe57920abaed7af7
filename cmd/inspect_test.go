// ABOUTME: Tests for the inspect command's hierarchy printer
// ABOUTME: Covers indented text, metadata lines, and JSON output

package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ahmedalalousi/hwVisualiser/internal/puml"
)

func parsedHierarchy(t *testing.T) *puml.Hierarchy {
	t.Helper()
	text := `rectangle "SYS-A\nSerial: 001" as SYS_A <<Chassis>> {
  rectangle "lpar1" as lpar1 <<LPAR>> {
  }
}
`
	h, err := puml.Parse(strings.NewReader(text))
	if err != nil {
		t.Fatal(err)
	}
	return h
}

func TestPrintHierarchyText(t *testing.T) {
	var buf bytes.Buffer
	if err := printHierarchy(&buf, parsedHierarchy(t)); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{
		"SYS-A [Chassis] (SYS_A)",
		"  lpar1 [LPAR] (lpar1)",
		"2 nodes",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Serial: 001") {
		t.Error("metadata printed without --metadata")
	}
}

func TestPrintHierarchyMetadata(t *testing.T) {
	inspectMetadata = true
	t.Cleanup(func() { inspectMetadata = false })

	var buf bytes.Buffer
	if err := printHierarchy(&buf, parsedHierarchy(t)); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Serial: 001") {
		t.Errorf("metadata missing:\n%s", buf.String())
	}
}

func TestPrintHierarchyJSON(t *testing.T) {
	jsonOutput = true
	t.Cleanup(func() { jsonOutput = false })

	var buf bytes.Buffer
	if err := printHierarchy(&buf, parsedHierarchy(t)); err != nil {
		t.Fatal(err)
	}

	var out struct {
		Nodes        int `json:"nodes"`
		SkippedLines int `json:"skipped_lines"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if out.Nodes != 2 {
		t.Errorf("nodes = %d, want 2", out.Nodes)
	}
}
