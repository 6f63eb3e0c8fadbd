package gitdiff

// MockGitOps is a mock implementation of Operations for testing.
type MockGitOps struct {
	Staged      []StagedFile
	Diffs       map[string]string // path -> unified diff text
	StagedError error
	DiffError   error
}

// NewMockGitOps creates a mock with no staged changes.
func NewMockGitOps() *MockGitOps {
	return &MockGitOps{
		Diffs: map[string]string{},
	}
}

func (m *MockGitOps) StagedFiles(repoPath string) ([]StagedFile, error) {
	if m.StagedError != nil {
		return nil, m.StagedError
	}
	return m.Staged, nil
}

func (m *MockGitOps) UnifiedDiff(repoPath, file string) (string, error) {
	if m.DiffError != nil {
		return "", m.DiffError
	}
	return m.Diffs[file], nil
}
