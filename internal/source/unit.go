package source

import (
	"sort"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Unit is a parsed source file. It owns the raw bytes and the syntax tree and
// provides position mapping between byte offsets and 1-indexed line numbers.
type Unit struct {
	Path     string
	Language string
	Source   []byte

	tree        *sitter.Tree
	lineOffsets []int // byte offset at which each line starts; lineOffsets[0] == 0
}

func newUnit(path, language string, src []byte, tree *sitter.Tree) *Unit {
	return &Unit{
		Path:        path,
		Language:    language,
		Source:      src,
		tree:        tree,
		lineOffsets: computeLineOffsets(src),
	}
}

// computeLineOffsets records the byte offset of the start of every line.
func computeLineOffsets(src []byte) []int {
	offsets := []int{0}
	for i, b := range src {
		if b == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}

// Root returns the root syntax node.
func (u *Unit) Root() *sitter.Node {
	return u.tree.RootNode()
}

// NodeAt returns the smallest named node containing the given byte offset.
func (u *Unit) NodeAt(offset int) *sitter.Node {
	if offset < 0 || offset >= len(u.Source) {
		return nil
	}
	return u.Root().NamedDescendantForByteRange(uint(offset), uint(offset))
}

// LineOf maps a byte offset to its 1-indexed line number.
func (u *Unit) LineOf(offset int) int {
	if offset < 0 {
		return 1
	}
	// First line starting after the offset; the offset belongs to the line before it.
	idx := sort.Search(len(u.lineOffsets), func(i int) bool {
		return u.lineOffsets[i] > offset
	})
	return idx
}

// OffsetOfLine maps a 1-indexed line number to the byte offset of its first
// character, i.e. the sum of the lengths of all prior lines.
func (u *Unit) OffsetOfLine(line int) (int, bool) {
	if line < 1 || line > len(u.lineOffsets) {
		return 0, false
	}
	return u.lineOffsets[line-1], true
}

// LineCount returns the number of lines in the unit.
func (u *Unit) LineCount() int {
	return len(u.lineOffsets)
}

// Text returns the source text of a node.
func (u *Unit) Text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return string(u.Source[n.StartByte():n.EndByte()])
}

// Lines splits the source into lines without trailing newlines.
func (u *Unit) Lines() []string {
	return strings.Split(string(u.Source), "\n")
}

// StartLine returns the 1-indexed first line of a node.
func (u *Unit) StartLine(n *sitter.Node) int {
	return int(n.StartPosition().Row) + 1
}

// EndLine returns the 1-indexed last line of a node.
func (u *Unit) EndLine(n *sitter.Node) int {
	return int(n.EndPosition().Row) + 1
}

// walkTree visits node and all descendants. The visitor returns false to
// prune the subtree below the current node.
func walkTree(node *sitter.Node, visitor func(*sitter.Node) bool) {
	if node == nil {
		return
	}

	if !visitor(node) {
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		walkTree(node.Child(uint(i)), visitor)
	}
}

// findChildrenByKind returns the direct children of node with the given kind.
func findChildrenByKind(node *sitter.Node, kind string) []*sitter.Node {
	var results []*sitter.Node
	if node == nil {
		return results
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.Kind() == kind {
			results = append(results, child)
		}
	}
	return results
}
