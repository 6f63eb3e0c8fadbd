// Package blocks maps changed line numbers and task markers onto the named
// declarations that contain or follow them.
package blocks

import "sort"

// Kind classifies a code block.
type Kind string

const (
	KindFunction  Kind = "function"
	KindMethod    Kind = "method"
	KindClass     Kind = "class"
	KindInterface Kind = "interface"
	KindComponent Kind = "component"
)

// CodeBlock is a named declaration touched by one or more changed lines.
// Identity for deduplication is (Kind, Name, StartLine).
type CodeBlock struct {
	Kind         Kind   `json:"kind"`
	Name         string `json:"name"`
	StartLine    int    `json:"start_line"`
	EndLine      int    `json:"end_line"`
	Signature    string `json:"signature"`
	FullText     string `json:"full_text"`
	ChangedLines []int  `json:"changed_lines"`
}

// blockKey is the deduplication identity of a block.
type blockKey struct {
	kind      Kind
	name      string
	startLine int
}

// blockSet accumulates blocks, merging changed lines that land inside an
// already-recorded declaration.
type blockSet struct {
	byKey map[blockKey]*CodeBlock
	order []blockKey
}

func newBlockSet() *blockSet {
	return &blockSet{byKey: map[blockKey]*CodeBlock{}}
}

func (s *blockSet) add(block CodeBlock, line int) {
	key := blockKey{kind: block.Kind, name: block.Name, startLine: block.StartLine}
	if existing, ok := s.byKey[key]; ok {
		existing.ChangedLines = append(existing.ChangedLines, line)
		return
	}
	block.ChangedLines = []int{line}
	s.byKey[key] = &block
	s.order = append(s.order, key)
}

func (s *blockSet) blocks() []CodeBlock {
	result := make([]CodeBlock, 0, len(s.order))
	for _, key := range s.order {
		block := s.byKey[key]
		sort.Ints(block.ChangedLines)
		result = append(result, *block)
	}
	return result
}
