// Package gitdiff extracts staged changes from a git working tree and maps
// unified diffs to per-line change events.
package gitdiff

import (
	"errors"
	"os/exec"
	"strings"
)

// ErrNotRepository means the working directory is not inside a git
// repository. Diff-based queries cannot proceed without one.
var ErrNotRepository = errors.New("not a git repository")

// Status is the staged state of a file.
type Status string

const (
	StatusAdded    Status = "added"
	StatusModified Status = "modified"
	StatusDeleted  Status = "deleted"
)

// StagedFile is one entry of the staged file list.
type StagedFile struct {
	Path   string `json:"path"`
	Status Status `json:"status"`
}

// Operations defines the git subprocess surface.
// This allows mocking git commands in tests.
type Operations interface {
	// StagedFiles returns the staged file list with per-file status.
	StagedFiles(repoPath string) ([]StagedFile, error)

	// UnifiedDiff returns the zero-context staged diff for one file.
	UnifiedDiff(repoPath, file string) (string, error)
}

// gitOps is the real implementation using exec.Command.
type gitOps struct{}

// NewOperations returns the default git operations implementation.
func NewOperations() Operations {
	return &gitOps{}
}

func (g *gitOps) StagedFiles(repoPath string) ([]StagedFile, error) {
	output, err := runGit(repoPath, "diff", "--cached", "--name-status")
	if err != nil {
		return nil, err
	}

	var files []StagedFile
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			continue
		}

		status := StatusModified
		switch fields[0][0] {
		case 'A':
			status = StatusAdded
		case 'D':
			status = StatusDeleted
		case 'R', 'C':
			// Renames and copies report old and new path; the new path is
			// the one that exists in the index.
			fields[1] = fields[len(fields)-1]
		}

		files = append(files, StagedFile{Path: fields[1], Status: status})
	}

	return files, nil
}

func (g *gitOps) UnifiedDiff(repoPath, file string) (string, error) {
	return runGit(repoPath, "diff", "--cached", "-U0", "--", file)
}

// runGit executes git in repoPath, translating the "not a git repository"
// failure into the distinct environment error.
func runGit(repoPath string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = repoPath
	output, err := cmd.CombinedOutput()
	if err != nil {
		if strings.Contains(strings.ToLower(string(output)), "not a git repository") {
			return "", ErrNotRepository
		}
		return "", err
	}
	return string(output), nil
}
