// ABOUTME: Tests for the inventory model
// ABOUTME: Verifies aggregates, duplicate handling, and the synthetic unmatched bucket

package inventory

import "testing"

func TestEnsureSystemParsesModel(t *testing.T) {
	inv := New()
	sys := inv.ensureSystem("9117-MMB-SN10AB123", "SN10AB123")

	if sys.ModelType != "9117" {
		t.Errorf("expected model type 9117, got %q", sys.ModelType)
	}
	if sys.ModelNumber != "MMB" {
		t.Errorf("expected model number MMB, got %q", sys.ModelNumber)
	}

	// Re-encountering the same system returns the existing entry.
	again := inv.ensureSystem("9117-MMB-SN10AB123", "other-serial")
	if again != sys {
		t.Error("expected the same system instance on second sight")
	}
	if again.Serial != "SN10AB123" {
		t.Errorf("first serial should win, got %q", again.Serial)
	}
}

func TestEnsureSystemNoHyphen(t *testing.T) {
	inv := New()
	sys := inv.ensureSystem("PLAINNAME", "")
	if sys.ModelType != "PLAINNAME" {
		t.Errorf("expected model type PLAINNAME, got %q", sys.ModelType)
	}
	if sys.ModelNumber != "Unknown" {
		t.Errorf("expected model number Unknown, got %q", sys.ModelNumber)
	}
}

func TestAddPartitionAggregates(t *testing.T) {
	inv := New()
	sys := inv.ensureSystem("S1", "SER1")

	inv.addPartition(sys, &Partition{Name: "p1", CPU: 2, Memory: 4, System: "S1"})
	inv.addPartition(sys, &Partition{Name: "p2", CPU: 1, Memory: 2, System: "S1"})

	if sys.TotalCPU != 3 {
		t.Errorf("expected total CPU 3, got %v", sys.TotalCPU)
	}
	if sys.TotalMemory != 6 {
		t.Errorf("expected total memory 6, got %v", sys.TotalMemory)
	}
	if len(sys.Partitions) != 2 {
		t.Errorf("expected 2 partitions, got %d", len(sys.Partitions))
	}
}

func TestAddPartitionDuplicateDoesNotDoubleCount(t *testing.T) {
	inv := New()
	sys := inv.ensureSystem("S1", "SER1")

	inv.addPartition(sys, &Partition{Name: "p1", CPU: 2, Memory: 4, System: "S1"})
	inv.addPartition(sys, &Partition{Name: "p1", CPU: 2, Memory: 4, System: "S1"})

	if sys.TotalCPU != 2 {
		t.Errorf("duplicate partition double-counted CPU: got %v", sys.TotalCPU)
	}
	if len(sys.Partitions) != 1 {
		t.Errorf("expected 1 partition entry, got %d", len(sys.Partitions))
	}
}

func TestAddUnmatchedPartition(t *testing.T) {
	inv := New()
	inv.Unmatched = []Application{
		{Host: "orphan-host", Name: "DB", Type: "Unknown"},
	}

	inv.AddUnmatchedPartition()

	sys, ok := inv.Systems[UnmatchedSystemName]
	if !ok {
		t.Fatal("synthetic system not created")
	}
	if sys.ModelType != "Virtual" || sys.ModelNumber != "Unmatched" {
		t.Errorf("unexpected synthetic model: %s %s", sys.ModelType, sys.ModelNumber)
	}

	p, ok := inv.Partitions[UnmatchedPartitionName]
	if !ok {
		t.Fatal("synthetic partition not created")
	}
	if p.Status != "Unmatched" || p.Environment != "Various" || p.OSVersion != "Multiple" {
		t.Errorf("unexpected synthetic partition attributes: %+v", p)
	}

	if len(inv.Matched[UnmatchedPartitionName]) != 1 {
		t.Errorf("unmatched applications not attached to the synthetic partition")
	}
}

func TestAddUnmatchedPartitionNoOp(t *testing.T) {
	inv := New()
	inv.AddUnmatchedPartition()

	if _, ok := inv.Systems[UnmatchedSystemName]; ok {
		t.Error("synthetic system created despite no unmatched applications")
	}
}

func TestMatchedCountExcludesUnmatchedBucket(t *testing.T) {
	inv := New()
	inv.Matched = map[string][]Application{
		"p1":                   {{Name: "a"}, {Name: "b"}},
		UnmatchedPartitionName: {{Name: "c"}},
	}
	if got := inv.MatchedCount(); got != 2 {
		t.Errorf("expected matched count 2, got %d", got)
	}
}
