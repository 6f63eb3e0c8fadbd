package blocks

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"codescope/internal/source"
)

// DefaultMarkers are the task-marker tokens scanned for in comments.
var DefaultMarkers = []string{"TODO", "FIXME", "HACK"}

// TaskMarker is an in-source task marker attributed to the declaration that
// follows it.
type TaskMarker struct {
	Marker string     `json:"marker"`
	Text   string     `json:"text"`
	Line   int        `json:"line"`
	Block  *CodeBlock `json:"block,omitempty"`
}

// ScanMarkers finds task markers in the unit's comments and maps each to the
// nearest following declaration. The marker precedes the code it annotates,
// so the mapping direction is forward, by minimum positive line distance
// across the whole file. Markers with no following declaration keep a nil
// Block.
func (m *Mapper) ScanMarkers(unit *source.Unit, markers []string) []TaskMarker {
	if len(markers) == 0 {
		markers = DefaultMarkers
	}

	var found []TaskMarker

	walkComments(unit.Root(), func(comment *sitter.Node) {
		text := unit.Text(comment)
		marker, ok := matchMarker(text, markers)
		if !ok {
			return
		}

		line := unit.StartLine(comment)
		tm := TaskMarker{
			Marker: marker,
			Text:   markerText(text, marker),
			Line:   line,
		}

		if block, ok := m.NearestDeclaration(unit, line, Following); ok {
			tm.Block = &block
		}

		found = append(found, tm)
	})

	return found
}

// walkComments visits every comment node in the tree.
func walkComments(root *sitter.Node, visit func(*sitter.Node)) {
	var walk func(node *sitter.Node)
	walk = func(node *sitter.Node) {
		if node == nil {
			return
		}
		if node.Kind() == "comment" {
			visit(node)
		}
		for i := 0; i < int(node.ChildCount()); i++ {
			walk(node.Child(uint(i)))
		}
	}
	walk(root)
}

// matchMarker returns the first marker token present in the comment.
func matchMarker(text string, markers []string) (string, bool) {
	for _, marker := range markers {
		if strings.Contains(text, marker) {
			return marker, true
		}
	}
	return "", false
}

// markerText extracts the annotation text following the marker token.
func markerText(text, marker string) string {
	idx := strings.Index(text, marker)
	rest := text[idx+len(marker):]
	rest = strings.TrimLeft(rest, ": ")
	if nl := strings.Index(rest, "\n"); nl >= 0 {
		rest = rest[:nl]
	}
	return strings.TrimSpace(strings.TrimSuffix(rest, "*/"))
}
