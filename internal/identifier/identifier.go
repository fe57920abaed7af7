// ABOUTME: Converts arbitrary labels into diagram-safe identifiers
// ABOUTME: Total and deterministic; distinct labels may collide

package identifier

import "strings"

// Clean converts text into an identifier usable in diagram "as <id>" clauses.
// Every character outside [A-Za-z0-9] becomes an underscore. Empty input
// returns "unknown". Identifiers never start with a digit.
func Clean(text string) string {
	if text == "" {
		return "unknown"
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}

	id := b.String()
	if id[0] >= '0' && id[0] <= '9' {
		id = "id_" + id
	}
	return id
}
