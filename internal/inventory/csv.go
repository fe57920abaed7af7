// ABOUTME: CSV ingestion for the partition table and the application table
// ABOUTME: Tolerates BOM-prefixed headers and resolves multi-candidate columns

package inventory

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Column candidates for the partition name, in priority order. The first
// present, non-empty value wins.
var partitionNameColumns = []string{
	"POR - Virtual Name - use this ONE",
	"POR - Virtual Name",
	"Name",
}

// How many defective rows to echo before going quiet.
const skipSampleLimit = 5

// row is one CSV record addressed by cleaned header name.
type row map[string]string

// get returns the trimmed cell for the named column, or "" when absent.
func (r row) get(name string) string {
	return strings.TrimSpace(r[name])
}

// first returns the first present, non-empty value among the candidate
// columns. Keeping the fallback chain here, and only here, stops it from
// leaking into ingestion logic.
func (r row) first(candidates []string) string {
	for _, c := range candidates {
		if v := r.get(c); v != "" {
			return v
		}
	}
	return ""
}

// readRows consumes a CSV stream into header-keyed rows. Header names are
// trimmed and stripped of a leading byte-order mark, so both BOM-prefixed and
// bare variants of a column resolve to the same key.
func readRows(r io.Reader) ([]row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	var rows []row
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		m := make(row, len(header))
		for i, h := range header {
			if i < len(record) {
				m[h] = record[i]
			}
		}
		rows = append(rows, m)
	}
	return rows, nil
}

// LoadPartitionsCSV ingests the hardware table (systems and their LPARs).
// Rows without a system name or partition name are skipped. Numeric fields
// that fail to parse default to zero.
func (inv *Inventory) LoadPartitionsCSV(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open partition table: %w", err)
	}
	defer f.Close()

	rows, err := readRows(f)
	if err != nil {
		return fmt.Errorf("parse partition table %s: %w", path, err)
	}

	for _, r := range rows {
		systemName := r.get("Managed System Name")
		if systemName == "" {
			continue
		}
		sys := inv.ensureSystem(systemName, r.get("Managed System Serial"))

		name := r.first(partitionNameColumns)
		if name == "" {
			continue
		}

		p := &Partition{
			ID:          r.get("ID"),
			Name:        name,
			Status:      r.get("Status"),
			Environment: r.get("Environment"),
			OSVersion:   r.get("OS Version"),
			CPU:         parseFloat(r.get("LPAR CPU")),
			Memory:      parseFloat(r.get("LPAR MEM")),
			System:      systemName,
		}
		inv.addPartition(sys, p)
	}

	slog.Info("Loaded partition table",
		"path", path,
		"rows", len(rows),
		"systems", len(inv.Systems),
		"partitions", len(inv.Partitions),
	)
	return nil
}

// LoadApplicationsCSV ingests the application-installation table. A row
// becomes a record only when both a host name and a component name are
// present; defective rows are skipped with a bounded sample log.
func (inv *Inventory) LoadApplicationsCSV(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open application table: %w", err)
	}
	defer f.Close()

	rows, err := readRows(f)
	if err != nil {
		return fmt.Errorf("parse application table %s: %w", path, err)
	}

	skippedNoHost := 0
	skippedNoName := 0
	for i, r := range rows {
		host := r.get("Computer Name")
		if host == "" {
			skippedNoHost++
			if skippedNoHost <= skipSampleLimit {
				slog.Warn("Skipping application row without computer name", "row", i+1)
			}
			continue
		}

		name := r.get("Component Name")
		if name == "" {
			skippedNoName++
			if skippedNoName <= skipSampleLimit {
				slog.Warn("Skipping application row without component name", "row", i+1, "host", host)
			}
			continue
		}

		appType := r.get("App type")
		if appType == "" {
			appType = "Unknown"
		}

		inv.Applications = append(inv.Applications, Application{
			Host:        host,
			Name:        name,
			Type:        appType,
			Version:     r.get("Component Version"),
			Product:     r.get("Product Name"),
			Metric:      r.get("Product Metric"),
			CloudBundle: r.get("Cloud Pak or FlexPoint Bundle"),
			Entitled:    r.get("Entitled"),
			Charged:     r.get("Charged"),
			InstallPath: r.get("Installation Path"),
		})
	}

	slog.Info("Loaded application table",
		"path", path,
		"rows", len(rows),
		"records", len(inv.Applications),
		"skipped_no_host", skippedNoHost,
		"skipped_no_name", skippedNoName,
	)
	return nil
}

// InputFiles are the two source tables resolved within an input directory.
type InputFiles struct {
	Partitions   string
	Applications string
}

// FindInputFiles locates chasses.csv and fixed_inventory_file.csv in dir,
// matching file names case-insensitively. Either path may be empty when the
// corresponding file is absent; callers decide what is required.
func FindInputFiles(dir string) (InputFiles, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return InputFiles{}, fmt.Errorf("read input directory: %w", err)
	}

	var files InputFiles
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(e.Name()) {
		case "chasses.csv":
			files.Partitions = filepath.Join(dir, e.Name())
		case "fixed_inventory_file.csv":
			files.Applications = filepath.Join(dir, e.Name())
		}
	}
	return files, nil
}

// parseFloat is the lenient numeric coercion used for capacity fields:
// anything unparseable counts as zero rather than failing the row.
func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
