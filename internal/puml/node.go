// ABOUTME: Hierarchy node graph shared by the diagram writer and parser
// ABOUTME: Nodes form a tree: System -> Partition -> app group -> application

package puml

// Construct keywords and stereotype tags of the wire format.
const (
	TypeRectangle = "rectangle"
	TypePackage   = "package"
	TypeComponent = "component"

	TagChassis       = "Chassis"
	TagLPAR          = "LPAR"
	TagUnmatchedLPAR = "UnmatchedLPAR"
)

// Node is one element of the parsed hierarchy. ID is the diagram identifier
// from the "as <id>" clause; Name is the first label segment; Metadata holds
// the remaining label segments in order.
type Node struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Metadata []string `json:"metadata"`
	Children []*Node  `json:"children"`
}

// Hierarchy is the result of parsing one diagram: the root nodes in
// encounter order plus a flat id lookup. Identifiers are not guaranteed
// unique; on collision the lookup keeps the newest node.
type Hierarchy struct {
	Roots []*Node
	Index map[string]*Node

	// Lines the parser recognized as constructs but could not decode.
	SkippedCount int
	Skipped      []string
}

// Empty reports whether the parse produced no usable structure. Callers use
// this, not an error, to detect an unparseable input.
func (h *Hierarchy) Empty() bool {
	return len(h.Roots) == 0
}

// NodeCount returns the number of nodes reachable from the roots.
func (h *Hierarchy) NodeCount() int {
	n := 0
	for _, root := range h.Roots {
		n += countNodes(root)
	}
	return n
}

// Walk visits every node reachable from the roots, parents before children.
func (h *Hierarchy) Walk(fn func(n *Node, depth int)) {
	for _, root := range h.Roots {
		walk(root, 0, fn)
	}
}

func walk(n *Node, depth int, fn func(*Node, int)) {
	fn(n, depth)
	for _, c := range n.Children {
		walk(c, depth+1, fn)
	}
}

func countNodes(n *Node) int {
	total := 1
	for _, c := range n.Children {
		total += countNodes(c)
	}
	return total
}
