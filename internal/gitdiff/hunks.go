package gitdiff

import (
	"regexp"
	"strconv"
	"strings"
)

// ChangeType classifies one diff event.
type ChangeType string

const (
	ChangeAdd     ChangeType = "add"
	ChangeDelete  ChangeType = "delete"
	ChangeContext ChangeType = "context"
)

// LineChange is one diff event at a line number in the new file. Deleted
// lines carry the number of the line that now occupies their position.
type LineChange struct {
	Line    int        `json:"line"`
	Type    ChangeType `json:"type"`
	Content string     `json:"content"`
}

// hunkHeaderRe matches "@@ -<old>[,<count>] +<new>[,<count>] @@".
var hunkHeaderRe = regexp.MustCompile(`^@@ -\d+(?:,\d+)? \+(\d+)(?:,\d+)? @@`)

// ParseUnifiedDiff walks a unified diff line by line and emits change
// events. The line cursor advances only for added and context lines; deleted
// lines no longer exist in the new file, so they do not move it. A
// replacement therefore shows up as one delete and one add at the same line.
func ParseUnifiedDiff(diff string) []LineChange {
	var changes []LineChange
	cursor := 0
	inHunk := false

	for _, line := range strings.Split(diff, "\n") {
		if m := hunkHeaderRe.FindStringSubmatch(line); m != nil {
			cursor, _ = strconv.Atoi(m[1])
			inHunk = true
			continue
		}
		if !inHunk {
			continue
		}

		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			// File headers, not content
		case strings.HasPrefix(line, "+"):
			changes = append(changes, LineChange{Line: cursor, Type: ChangeAdd, Content: line[1:]})
			cursor++
		case strings.HasPrefix(line, "-"):
			changes = append(changes, LineChange{Line: cursor, Type: ChangeDelete, Content: line[1:]})
		case strings.HasPrefix(line, " "):
			cursor++
		}
	}

	return changes
}

// ChangedLineNumbers extracts the deduplicated, ordered set of line numbers
// touched by add events. Delete-only events do not contribute: those lines do
// not exist in the new file.
func ChangedLineNumbers(changes []LineChange) []int {
	seen := map[int]bool{}
	var lines []int
	for _, c := range changes {
		if c.Type != ChangeAdd {
			continue
		}
		if seen[c.Line] {
			continue
		}
		seen[c.Line] = true
		lines = append(lines, c.Line)
	}
	return lines
}
