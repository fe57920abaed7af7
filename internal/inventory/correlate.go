// ABOUTME: Multi-strategy correlation of application records to partitions
// ABOUTME: Pure fan-out over hosts against an immutable partition name index

package inventory

import (
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Strategy names one heuristic in the ordered matching chain.
type Strategy string

const (
	StrategyExact           Strategy = "exact"
	StrategyCaseInsensitive Strategy = "case_insensitive"
	StrategyDomainCleanup   Strategy = "domain_cleanup"
	StrategyVMCleanup       Strategy = "vm_cleanup"
	StrategyPartial         Strategy = "partial"
)

// sampleLimit bounds the host-name samples kept for operator auditing.
const sampleLimit = 10

// MatchResult is the complete verdict of one correlation run. It is derived
// data: nothing here mutates the inventory it was computed from.
type MatchResult struct {
	Matched   map[string][]Application
	Unmatched []Application
	Stats     map[Strategy]int

	TotalHosts       int
	MatchedHosts     int
	SampleMatched    []string
	SampleUnmatched  []string
	MatchedRecords   int
	UnmatchedRecords int
}

// matcher holds the read-only partition name index shared by all hosts.
type matcher struct {
	names   []string          // sorted, for reproducible partial matching
	byName  map[string]*Partition
	byLower map[string]string // lowercased name -> canonical name
}

func newMatcher(partitions map[string]*Partition) *matcher {
	m := &matcher{
		names:   make([]string, 0, len(partitions)),
		byName:  partitions,
		byLower: make(map[string]string, len(partitions)),
	}
	for name := range partitions {
		m.names = append(m.names, name)
	}
	sort.Strings(m.names)
	// First in sorted order wins when two names collide case-insensitively.
	for _, name := range m.names {
		lower := strings.ToLower(name)
		if _, ok := m.byLower[lower]; !ok {
			m.byLower[lower] = name
		}
	}
	return m
}

// lookup runs the exact and case-insensitive strategies for one candidate.
func (m *matcher) lookup(candidate string) (string, bool) {
	if _, ok := m.byName[candidate]; ok {
		return candidate, true
	}
	if name, ok := m.byLower[strings.ToLower(candidate)]; ok {
		return name, true
	}
	return "", false
}

// match applies the full strategy chain to one host name. First success wins.
func (m *matcher) match(host string) (string, Strategy, bool) {
	// Strategy 1: exact.
	if _, ok := m.byName[host]; ok {
		return host, StrategyExact, true
	}

	// Strategy 2: case-insensitive exact.
	if name, ok := m.byLower[strings.ToLower(host)]; ok {
		return name, StrategyCaseInsensitive, true
	}

	// Strategy 3: strip a DNS domain suffix and retry.
	if i := strings.IndexByte(host, '.'); i >= 0 {
		if name, ok := m.lookup(host[:i]); ok {
			return name, StrategyDomainCleanup, true
		}
	}

	// Strategy 4: strip a "VM" prefix and leading zeros and retry.
	if len(host) >= 2 && strings.EqualFold(host[:2], "VM") {
		clean := strings.TrimLeft(host[2:], "0")
		if clean != "" {
			if name, ok := m.lookup(clean); ok {
				return name, StrategyVMCleanup, true
			}
		}
	}

	// Strategy 5: substring containment either way, guarded so 1-3 character
	// fragments never match. Partition names are scanned in sorted order to
	// keep the first-match tiebreak reproducible.
	hostLower := strings.ToLower(host)
	for _, name := range m.names {
		nameLower := strings.ToLower(name)
		if (len(host) > 3 && strings.Contains(nameLower, hostLower)) ||
			(len(name) > 3 && strings.Contains(hostLower, nameLower)) {
			return name, StrategyPartial, true
		}
	}

	return "", "", false
}

// hostVerdict is the per-host outcome of the parallel matching phase.
type hostVerdict struct {
	partition string
	strategy  Strategy
	matched   bool
}

// Correlate assigns every application record to exactly one partition or to
// the unmatched residual. The verdict is per unique host name: all records
// sharing a host land together. Correlation never fails; hosts no strategy
// can place end up in Unmatched rather than being dropped.
//
// Hosts are matched concurrently. Each worker sees the complete, immutable
// partition index, so cross-host results are independent and the merge below
// is a plain sequential fold in sorted host order, which keeps output
// deterministic.
func Correlate(apps []Application, partitions map[string]*Partition) MatchResult {
	byHost := make(map[string][]Application)
	for _, app := range apps {
		byHost[app.Host] = append(byHost[app.Host], app)
	}

	hosts := make([]string, 0, len(byHost))
	for host := range byHost {
		hosts = append(hosts, host)
	}
	sort.Strings(hosts)

	m := newMatcher(partitions)
	verdicts := make([]hostVerdict, len(hosts))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, host := range hosts {
		g.Go(func() error {
			name, strategy, ok := m.match(host)
			verdicts[i] = hostVerdict{partition: name, strategy: strategy, matched: ok}
			return nil
		})
	}
	_ = g.Wait() // workers never error

	result := MatchResult{
		Matched:    make(map[string][]Application),
		Stats:      make(map[Strategy]int),
		TotalHosts: len(hosts),
	}
	for i, host := range hosts {
		v := verdicts[i]
		records := byHost[host]
		if v.matched {
			result.Matched[v.partition] = append(result.Matched[v.partition], records...)
			result.Stats[v.strategy]++
			result.MatchedHosts++
			result.MatchedRecords += len(records)
			if len(result.SampleMatched) < sampleLimit {
				result.SampleMatched = append(result.SampleMatched, host)
			}
		} else {
			result.Unmatched = append(result.Unmatched, records...)
			result.UnmatchedRecords += len(records)
			if len(result.SampleUnmatched) < sampleLimit {
				result.SampleUnmatched = append(result.SampleUnmatched, host)
			}
		}
	}
	return result
}
