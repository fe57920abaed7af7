// ABOUTME: Cross-checks a generated diagram against the source inventory
// ABOUTME: Diffs system sets, aggregates, partition sets, and re-runs matching

package diag

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/ahmedalalousi/hwVisualiser/internal/inventory"
	"github.com/ahmedalalousi/hwVisualiser/internal/puml"
)

// Tolerance absorbs float accumulation drift between the two computations.
const aggregateTolerance = 0.1

// AggregateMismatch records a per-system CPU or memory total disagreement.
type AggregateMismatch struct {
	System  string  `json:"system"`
	Field   string  `json:"field"`
	Source  float64 `json:"source"`
	Diagram float64 `json:"diagram"`
}

// Report is the result of diffing diagram content against the source tables.
// It is diagnostic only: producing it never mutates either side.
type Report struct {
	MissingSystems    []string            `json:"missing_systems,omitempty"`
	ExtraSystems      []string            `json:"extra_systems,omitempty"`
	Mismatches        []AggregateMismatch `json:"aggregate_mismatches,omitempty"`
	MissingPartitions []string            `json:"missing_partitions,omitempty"`
	ExtraPartitions   []string            `json:"extra_partitions,omitempty"`
	UnmatchedHosts    []string            `json:"unmatched_hosts,omitempty"`
}

// Consistent reports whether the diagram and the source tables agree.
// Unmatched hosts are expected output of correlation, not a discrepancy.
func (r *Report) Consistent() bool {
	return len(r.MissingSystems) == 0 &&
		len(r.ExtraSystems) == 0 &&
		len(r.Mismatches) == 0 &&
		len(r.MissingPartitions) == 0 &&
		len(r.ExtraPartitions) == 0
}

// Compare recomputes inventory facts from a parsed diagram and diffs them
// against the inventory built from the source tables. The synthetic unmatched
// containers are excluded from the set comparisons: they exist only in the
// diagram by design.
func Compare(inv *inventory.Inventory, h *puml.Hierarchy) *Report {
	report := &Report{}

	diagramSystems := make(map[string]*puml.Node)
	diagramPartitions := make(map[string]bool)
	h.Walk(func(n *puml.Node, depth int) {
		switch n.Type {
		case puml.TagChassis:
			if n.Name != inventory.UnmatchedSystemName {
				diagramSystems[n.Name] = n
			}
		case puml.TagLPAR:
			diagramPartitions[n.Name] = true
		}
	})

	for _, name := range sortedKeys(inv.Systems) {
		if name == inventory.UnmatchedSystemName {
			continue
		}
		node, ok := diagramSystems[name]
		if !ok {
			report.MissingSystems = append(report.MissingSystems, name)
			continue
		}
		sys := inv.Systems[name]
		checkAggregate(report, name, "Total CPU", sys.TotalCPU, node)
		checkAggregate(report, name, "Total Memory", sys.TotalMemory, node)
	}
	for name := range diagramSystems {
		if _, ok := inv.Systems[name]; !ok {
			report.ExtraSystems = append(report.ExtraSystems, name)
		}
	}
	sort.Strings(report.ExtraSystems)

	for _, name := range sortedKeys(inv.Partitions) {
		if name == inventory.UnmatchedPartitionName {
			continue
		}
		if !diagramPartitions[name] {
			report.MissingPartitions = append(report.MissingPartitions, name)
		}
	}
	for name := range diagramPartitions {
		if _, ok := inv.Partitions[name]; !ok {
			report.ExtraPartitions = append(report.ExtraPartitions, name)
		}
	}
	sort.Strings(report.ExtraPartitions)

	// Re-run the matching chain to surface hosts that stay unmatched.
	result := inventory.Correlate(inv.Applications, inv.Partitions)
	report.UnmatchedHosts = unmatchedHosts(result.Unmatched)

	return report
}

func checkAggregate(report *Report, system, field string, source float64, node *puml.Node) {
	diagram, ok := metadataFloat(node.Metadata, field+":")
	if !ok {
		return
	}
	if math.Abs(diagram-source) > aggregateTolerance {
		report.Mismatches = append(report.Mismatches, AggregateMismatch{
			System:  system,
			Field:   field,
			Source:  source,
			Diagram: diagram,
		})
	}
}

// metadataFloat finds the metadata line with the given prefix and parses its
// leading numeric token ("Total Memory: 48 GB" -> 48).
func metadataFloat(metadata []string, prefix string) (float64, bool) {
	for _, line := range metadata {
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		value := strings.TrimSpace(strings.TrimPrefix(line, prefix))
		if i := strings.IndexByte(value, ' '); i >= 0 {
			value = value[:i]
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}
	return 0, false
}

func unmatchedHosts(apps []inventory.Application) []string {
	seen := make(map[string]bool)
	var hosts []string
	for _, app := range apps {
		if !seen[app.Host] {
			seen[app.Host] = true
			hosts = append(hosts, app.Host)
		}
	}
	sort.Strings(hosts)
	return hosts
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// TypeCount is one entry of the application-type histogram.
type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// Summary aggregates the headline numbers a run must end with, so an
// operator can judge correlation quality without reading logs.
type Summary struct {
	Systems        int         `json:"systems"`
	Partitions     int         `json:"partitions"`
	Applications   int         `json:"applications"`
	Matched        int         `json:"matched"`
	Unmatched      int         `json:"unmatched"`
	AppTypes       []TypeCount `json:"app_types,omitempty"`
	BusiestSystem  string      `json:"busiest_system,omitempty"`
	BusiestSysLPAR int         `json:"busiest_system_lpars,omitempty"`
	TopPartition   string      `json:"top_partition,omitempty"`
	TopPartitionN  int         `json:"top_partition_apps,omitempty"`
}

// Summarize computes the run summary from a correlated inventory.
func Summarize(inv *inventory.Inventory) Summary {
	s := Summary{
		Systems:      len(inv.Systems),
		Partitions:   len(inv.Partitions),
		Applications: len(inv.Applications),
		Matched:      inv.MatchedCount(),
		Unmatched:    len(inv.Unmatched),
	}

	counts := make(map[string]int)
	for _, app := range inv.Applications {
		counts[app.Type]++
	}
	for _, t := range sortedKeys(counts) {
		s.AppTypes = append(s.AppTypes, TypeCount{Type: t, Count: counts[t]})
	}
	sort.SliceStable(s.AppTypes, func(i, j int) bool {
		return s.AppTypes[i].Count > s.AppTypes[j].Count
	})

	for _, name := range sortedKeys(inv.Systems) {
		if n := len(inv.Systems[name].Partitions); n > s.BusiestSysLPAR {
			s.BusiestSystem = name
			s.BusiestSysLPAR = n
		}
	}
	for _, name := range sortedKeys(inv.Matched) {
		if n := len(inv.Matched[name]); n > s.TopPartitionN {
			s.TopPartition = name
			s.TopPartitionN = n
		}
	}
	return s
}

// String renders the summary block printed at the end of every run.
func (s Summary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Systems: %d\n", s.Systems)
	fmt.Fprintf(&sb, "Partitions: %d\n", s.Partitions)
	fmt.Fprintf(&sb, "Application records: %d\n", s.Applications)
	fmt.Fprintf(&sb, "Matched: %d\n", s.Matched)
	fmt.Fprintf(&sb, "Unmatched: %d\n", s.Unmatched)
	if s.BusiestSystem != "" {
		fmt.Fprintf(&sb, "System with most LPARs: %s (%d)\n", s.BusiestSystem, s.BusiestSysLPAR)
	}
	if s.TopPartition != "" {
		fmt.Fprintf(&sb, "Partition with most applications: %s (%d)\n", s.TopPartition, s.TopPartitionN)
	}
	return sb.String()
}
