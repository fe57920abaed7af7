// ABOUTME: Renders the inventory model into the nested PlantUML diagram format
// ABOUTME: Emits rectangle/package/component blocks with stable identifiers

package puml

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/ahmedalalousi/hwVisualiser/internal/identifier"
	"github.com/ahmedalalousi/hwVisualiser/internal/inventory"
)

// WriterOptions bound how many application leaves a group lists before
// collapsing the remainder into an overflow entry.
type WriterOptions struct {
	MaxAppsPerGroup  int
	MaxUnmatchedApps int
}

// DefaultWriterOptions mirror the caps the diagrams were designed around:
// groups stay readable at 10 entries, the unmatched bucket at 5.
func DefaultWriterOptions() WriterOptions {
	return WriterOptions{MaxAppsPerGroup: 10, MaxUnmatchedApps: 5}
}

// WriteDiagram renders the inventory as a nested PlantUML diagram. Systems
// appear in ingestion order, partitions in system order, and application
// groups sorted by type name, so the same inventory always serializes to the
// same bytes. The parser in this package consumes the exact shape emitted
// here; the two must never drift.
func WriteDiagram(w io.Writer, inv *inventory.Inventory, opts WriterOptions) error {
	bw := &diagramWriter{w: w}

	bw.line("@startuml")
	bw.line("' Hardware Inventory Diagram")
	bw.line("' Generated by hwVisualiser")
	bw.line("")
	bw.line("title Hardware Inventory Architecture")
	bw.line("")
	bw.line("' Styling")
	bw.line("skinparam rectangle {")
	bw.line("  BackgroundColor<<Chassis>> LightBlue")
	bw.line("  BackgroundColor<<LPAR>> LightGreen")
	bw.line("  BackgroundColor<<UnmatchedLPAR>> LightPink")
	bw.line("  BorderColor Black")
	bw.line("  FontSize 12")
	bw.line("}")
	bw.line("")
	bw.line("skinparam component {")
	bw.line("  BackgroundColor LightYellow")
	bw.line("  BorderColor Black")
	bw.line("  FontSize 10")
	bw.line("}")
	bw.line("")

	for _, systemName := range inv.SystemOrder {
		sys := inv.Systems[systemName]
		writeSystem(bw, inv, sys, opts)
	}

	bw.line("@enduml")
	return bw.err
}

func writeSystem(bw *diagramWriter, inv *inventory.Inventory, sys *inventory.System, opts WriterOptions) {
	label := fmt.Sprintf("%s\\nModel: %s %s\\nSerial: %s\\nTotal CPU: %s\\nTotal Memory: %s GB",
		escapeLabel(sys.Name), escapeLabel(sys.ModelType), escapeLabel(sys.ModelNumber),
		escapeLabel(sys.Serial), formatNumber(sys.TotalCPU), formatNumber(sys.TotalMemory))
	bw.linef("rectangle \"%s\" as %s <<%s>> {", label, identifier.Clean(sys.Name), TagChassis)

	for _, partitionName := range sys.Partitions {
		writePartition(bw, inv, partitionName, opts)
	}

	bw.line("}")
	bw.line("")
}

func writePartition(bw *diagramWriter, inv *inventory.Inventory, name string, opts WriterOptions) {
	p := inv.Partitions[name]
	if p == nil {
		return
	}

	tag := TagLPAR
	maxApps := opts.MaxAppsPerGroup
	if name == inventory.UnmatchedPartitionName {
		tag = TagUnmatchedLPAR
		maxApps = opts.MaxUnmatchedApps
	}

	osVersion := p.OSVersion
	if osVersion == "" {
		osVersion = "Unknown"
	}
	label := fmt.Sprintf("%s\\nCPU: %s\\nMemory: %s GB\\nOS: %s",
		escapeLabel(name), formatNumber(p.CPU), formatNumber(p.Memory), escapeLabel(osVersion))
	bw.linef("  rectangle \"%s\" as %s <<%s>> {", label, identifier.Clean(name), tag)

	for _, group := range groupByType(inv.Matched[name]) {
		writeGroup(bw, name, group, maxApps)
	}

	bw.line("  }")
}

// appGroup is one application-type bucket within a partition.
type appGroup struct {
	Type string
	Apps []inventory.Application
}

// groupByType buckets applications by type, sorted by type name so the
// emission order never depends on map iteration.
func groupByType(apps []inventory.Application) []appGroup {
	byType := make(map[string][]inventory.Application)
	for _, app := range apps {
		byType[app.Type] = append(byType[app.Type], app)
	}

	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	sort.Strings(types)

	groups := make([]appGroup, 0, len(types))
	for _, t := range types {
		groups = append(groups, appGroup{Type: t, Apps: byType[t]})
	}
	return groups
}

func writeGroup(bw *diagramWriter, partitionName string, group appGroup, maxApps int) {
	groupID := identifier.Clean(partitionName + "_" + group.Type)
	bw.linef("    package \"%s (%d)\" as %s {", escapeLabel(group.Type), len(group.Apps), groupID)

	shown := group.Apps
	if len(shown) > maxApps {
		shown = shown[:maxApps]
	}
	for i, app := range shown {
		label := escapeLabel(app.Name)
		if app.Version != "" {
			label += " v" + escapeLabel(app.Version)
		}
		appID := identifier.Clean(fmt.Sprintf("%s_%s_%d", partitionName, app.Name, i))
		bw.linef("      component \"%s\" as %s", label, appID)
	}

	if remaining := len(group.Apps) - maxApps; remaining > 0 {
		moreID := identifier.Clean(partitionName + "_" + group.Type + "_more")
		bw.linef("      component \"... and %d more\" as %s", remaining, moreID)
	}

	bw.line("    }")
}

// escapeLabel protects the quote delimiter inside label text.
func escapeLabel(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

// formatNumber prints capacity values the compact way: no trailing zeros,
// so 3 stays "3" and 2.5 stays "2.5".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// diagramWriter accumulates the first write error so emission code stays
// free of per-line error plumbing.
type diagramWriter struct {
	w   io.Writer
	err error
}

func (dw *diagramWriter) line(s string) {
	if dw.err != nil {
		return
	}
	_, dw.err = io.WriteString(dw.w, s+"\n")
}

func (dw *diagramWriter) linef(format string, args ...any) {
	dw.line(fmt.Sprintf(format, args...))
}
