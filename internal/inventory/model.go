// ABOUTME: In-memory model of physical systems, logical partitions, and applications
// ABOUTME: Tracks per-system CPU/memory aggregates accumulated during ingestion

package inventory

import "strings"

// System represents a physical chassis housing one or more partitions.
type System struct {
	Name        string   `json:"name"`
	Serial      string   `json:"serial"`
	ModelType   string   `json:"model_type"`
	ModelNumber string   `json:"model_number"`
	Partitions  []string `json:"partitions"`
	TotalCPU    float64  `json:"total_cpu"`
	TotalMemory float64  `json:"total_memory"`
}

// Partition represents a logical partition (LPAR) hosted by a System.
type Partition struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Status      string  `json:"status"`
	Environment string  `json:"environment"`
	OSVersion   string  `json:"os_version"`
	CPU         float64 `json:"cpu"`
	Memory      float64 `json:"memory"`
	System      string  `json:"system"`
}

// Application is one installed-software record from the application table.
// Records are not unique: the same product installed twice on the same host
// is two records.
type Application struct {
	Host        string `json:"computer"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Version     string `json:"version"`
	Product     string `json:"product"`
	Metric      string `json:"metric"`
	CloudBundle string `json:"cloud_pak"`
	Entitled    string `json:"entitled"`
	Charged     string `json:"charged"`
	InstallPath string `json:"installation_path"`
}

// Names of the synthetic containers that hold applications no matching
// strategy could place. They exist only so the final hierarchy stays total.
const (
	UnmatchedSystemName    = "UNMATCHED-APPLICATIONS"
	UnmatchedPartitionName = "UnmatchedApplications"
)

// Inventory is the full in-memory inventory: systems, partitions, and
// application records, plus the correlation verdicts once applied.
type Inventory struct {
	Systems     map[string]*System
	SystemOrder []string
	Partitions  map[string]*Partition

	Applications []Application

	// Populated by ApplyMatches.
	Matched   map[string][]Application
	Unmatched []Application
}

// New returns an empty Inventory.
func New() *Inventory {
	return &Inventory{
		Systems:    make(map[string]*System),
		Partitions: make(map[string]*Partition),
		Matched:    make(map[string][]Application),
	}
}

// ensureSystem returns the System for name, creating it on first sight.
// Model type and number are parsed from the name ("TYPE-MODEL-serial-...").
func (inv *Inventory) ensureSystem(name, serial string) *System {
	if sys, ok := inv.Systems[name]; ok {
		return sys
	}

	modelType, modelNumber := parseModel(name)
	sys := &System{
		Name:        name,
		Serial:      serial,
		ModelType:   modelType,
		ModelNumber: modelNumber,
	}
	inv.Systems[name] = sys
	inv.SystemOrder = append(inv.SystemOrder, name)
	return sys
}

// addPartition registers a partition under its owning system. Partition names
// are unique across the whole inventory; the first occurrence wins and only
// that occurrence contributes to the system aggregates.
func (inv *Inventory) addPartition(sys *System, p *Partition) {
	if !containsName(sys.Partitions, p.Name) {
		sys.Partitions = append(sys.Partitions, p.Name)
		sys.TotalCPU += p.CPU
		sys.TotalMemory += p.Memory
	}
	inv.Partitions[p.Name] = p
}

// ApplyMatches records the correlator verdicts on the inventory.
func (inv *Inventory) ApplyMatches(result MatchResult) {
	inv.Matched = result.Matched
	inv.Unmatched = result.Unmatched
}

// AddUnmatchedPartition packages the unmatched applications into a synthetic
// partition within a synthetic system so every application is reachable from
// a root. No-op when everything matched.
func (inv *Inventory) AddUnmatchedPartition() {
	if len(inv.Unmatched) == 0 {
		return
	}

	sys := inv.ensureSystem(UnmatchedSystemName, "N/A")
	sys.ModelType = "Virtual"
	sys.ModelNumber = "Unmatched"

	p := &Partition{
		ID:          "unmatched",
		Name:        UnmatchedPartitionName,
		Status:      "Unmatched",
		Environment: "Various",
		OSVersion:   "Multiple",
		System:      UnmatchedSystemName,
	}
	inv.addPartition(sys, p)
	inv.Matched[UnmatchedPartitionName] = inv.Unmatched
}

// MatchedCount returns the number of application records attached to a
// partition by correlation (excluding the unmatched residual).
func (inv *Inventory) MatchedCount() int {
	n := 0
	for name, apps := range inv.Matched {
		if name == UnmatchedPartitionName {
			continue
		}
		n += len(apps)
	}
	return n
}

func parseModel(systemName string) (modelType, modelNumber string) {
	parts := strings.Split(systemName, "-")
	modelType, modelNumber = "Unknown", "Unknown"
	if len(parts) > 0 && parts[0] != "" {
		modelType = parts[0]
	}
	if len(parts) > 1 {
		modelNumber = parts[1]
	}
	return modelType, modelNumber
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
