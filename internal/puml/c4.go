// ABOUTME: Renders the inventory into C4-PlantUML boundary/container notation
// ABOUTME: Same node set and identifiers as the nested writer, containment via Rel

package puml

import (
	"fmt"
	"io"

	"github.com/ahmedalalousi/hwVisualiser/internal/identifier"
	"github.com/ahmedalalousi/hwVisualiser/internal/inventory"
)

const c4Include = "!include https://raw.githubusercontent.com/plantuml-stdlib/C4-PlantUML/master/C4_Container.puml"

// WriteC4 renders the same hierarchy as WriteDiagram in C4 notation:
// System_Boundary per system, Container per partition, Component per
// application group, with explicit "hosts" relationships instead of nesting.
// Identifiers agree with the nested writer so tooling can join the two views.
func WriteC4(w io.Writer, inv *inventory.Inventory) error {
	bw := &diagramWriter{w: w}

	bw.line("@startuml")
	bw.line("' C4 Hardware Inventory Diagram")
	bw.line("' Generated by hwVisualiser")
	bw.line("")
	bw.line(c4Include)
	bw.line("")
	bw.line("title Hardware Inventory Architecture - C4 Diagram")
	bw.line("")

	for _, systemName := range inv.SystemOrder {
		sys := inv.Systems[systemName]
		systemID := identifier.Clean(sys.Name)
		desc := fmt.Sprintf("Model: %s %s, Serial: %s, CPU: %s, Memory: %s GB",
			sys.ModelType, sys.ModelNumber, sys.Serial,
			formatNumber(sys.TotalCPU), formatNumber(sys.TotalMemory))
		bw.linef("System_Boundary(%s, \"%s\", \"%s\") {", systemID, escapeLabel(sys.Name), escapeLabel(desc))

		for _, partitionName := range sys.Partitions {
			p := inv.Partitions[partitionName]
			if p == nil {
				continue
			}
			partitionID := identifier.Clean(partitionName)
			osVersion := p.OSVersion
			if osVersion == "" {
				osVersion = "Unknown"
			}
			partitionDesc := fmt.Sprintf("CPU: %s, Memory: %s GB, OS: %s",
				formatNumber(p.CPU), formatNumber(p.Memory), osVersion)
			bw.linef("  Container(%s, \"%s\", \"LPAR\", \"%s\")",
				partitionID, escapeLabel(partitionName), escapeLabel(partitionDesc))

			for _, group := range groupByType(inv.Matched[partitionName]) {
				groupID := identifier.Clean(partitionName + "_" + group.Type)
				bw.linef("  Component(%s, \"%s\", \"Application Group\", \"%d applications\")",
					groupID, escapeLabel(group.Type), len(group.Apps))
				bw.linef("  Rel(%s, %s, \"hosts\")", partitionID, groupID)
			}
		}

		bw.line("}")
		bw.line("")
	}

	bw.line("SHOW_LEGEND()")
	bw.line("@enduml")
	return bw.err
}
