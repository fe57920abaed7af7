// ABOUTME: Reconstructs a hierarchy graph from PlantUML diagram text
// ABOUTME: Independent of the inventory model; tolerates malformed input

package puml

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"
)

// Construct lines carry a quoted label (quotes inside escaped as \") and an
// "as <identifier>" clause, optionally a <<stereotype>> and an opening brace.
var (
	rectangleRe = regexp.MustCompile(`^rectangle\s+"((?:\\.|[^"\\])*)"\s+as\s+(\w+)(?:\s+<<([^>]+)>>)?`)
	packageRe   = regexp.MustCompile(`^package\s+"((?:\\.|[^"\\])*)"\s+as\s+(\w+)(?:\s+<<([^>]+)>>)?`)
	componentRe = regexp.MustCompile(`^component\s+"((?:\\.|[^"\\])*)"\s+as\s+(\w+)(?:\s+<<([^>]+)>>)?`)
)

const parserSampleLimit = 10

// Parse reads diagram text and rebuilds the hierarchy graph. It is built to
// survive diagrams it did not generate: unknown lines are ignored, construct
// lines that fail to decode are counted and skipped, a dangling parent
// reference degrades to a root attachment, and a stray closing brace is a
// no-op. An entirely unparseable input yields an empty hierarchy, not an
// error; I/O failures are the only errors returned.
func Parse(r io.Reader) (*Hierarchy, error) {
	h := &Hierarchy{Index: make(map[string]*Node)}
	var path []string // ids of currently open containers

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		// Blank lines and PlantUML comments carry no structure.
		if line == "" || strings.HasPrefix(line, "'") {
			continue
		}

		if line == "}" {
			if len(path) > 0 {
				path = path[:len(path)-1]
			}
			continue
		}

		keyword, re := constructFor(line)
		if keyword == "" {
			continue
		}

		m := re.FindStringSubmatch(line)
		if m == nil {
			h.SkippedCount++
			if len(h.Skipped) < parserSampleLimit {
				h.Skipped = append(h.Skipped, fmt.Sprintf("line %d: %s", lineNo, line))
			}
			continue
		}

		node := buildNode(keyword, m)
		// Identifiers may collide (the normalizer is not injective); the
		// newest node wins the lookup so nesting attaches to the block that
		// actually opened.
		h.Index[node.ID] = node

		attached := false
		if len(path) > 0 {
			if parent, ok := h.Index[path[len(path)-1]]; ok {
				parent.Children = append(parent.Children, node)
				attached = true
			}
		}
		if !attached {
			h.Roots = append(h.Roots, node)
		}

		if strings.HasSuffix(line, "{") {
			path = append(path, node.ID)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read diagram: %w", err)
	}

	if h.SkippedCount > 0 {
		slog.Warn("Skipped malformed diagram lines",
			"count", h.SkippedCount,
			"sample", h.Skipped,
		)
	}
	return h, nil
}

// ParseFile parses a diagram from disk.
func ParseFile(path string) (*Hierarchy, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open diagram: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// constructFor picks the construct regex for a line, or "" when the line is
// not a construct at all.
func constructFor(line string) (string, *regexp.Regexp) {
	switch {
	case strings.HasPrefix(line, TypeRectangle+" "):
		return TypeRectangle, rectangleRe
	case strings.HasPrefix(line, TypePackage+" "):
		return TypePackage, packageRe
	case strings.HasPrefix(line, TypeComponent+" "):
		return TypeComponent, componentRe
	default:
		return "", nil
	}
}

func buildNode(keyword string, m []string) *Node {
	label, id, stereotype := m[1], m[2], m[3]

	segments := strings.Split(label, `\n`)
	for i, s := range segments {
		segments[i] = unescapeLabel(s)
	}

	nodeType := keyword
	if stereotype != "" {
		nodeType = stereotype
	}

	node := &Node{
		ID:   id,
		Name: segments[0],
		Type: nodeType,
	}
	if len(segments) > 1 {
		node.Metadata = segments[1:]
	}
	return node
}

func unescapeLabel(s string) string {
	return strings.ReplaceAll(s, `\"`, `"`)
}
