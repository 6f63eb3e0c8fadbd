package resolver

// Test Plan for Module Resolution:
// - Relative specifiers resolve against the importing directory
// - Extensionless specifiers probe .ts .tsx .js .jsx then index files
// - An exact-extension match wins over any probed suffix
// - Alias specifiers resolve against the project root
// - Bare package specifiers never resolve
// - A specifier matching a directory but no file fails
// - WithAliasPrefix changes the recognized alias marker
// - IsLocal classifies specifiers without filesystem access

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupProject creates a small tree and returns its root.
func setupProject(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("export {}\n"), 0644))
	}
	return root
}

func TestResolve_RelativeWithExtension(t *testing.T) {
	root := setupProject(t, "src/utils.ts")

	r := New(root)
	got, ok := r.Resolve(filepath.Join(root, "src"), "./utils.ts")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "src", "utils.ts"), got)
}

func TestResolve_ProbesExtensions(t *testing.T) {
	root := setupProject(t, "src/utils.tsx")

	r := New(root)
	got, ok := r.Resolve(filepath.Join(root, "src"), "./utils")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "src", "utils.tsx"), got)
}

func TestResolve_ProbeOrderPrefersTs(t *testing.T) {
	root := setupProject(t, "src/utils.ts", "src/utils.js")

	r := New(root)
	got, ok := r.Resolve(filepath.Join(root, "src"), "./utils")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "src", "utils.ts"), got)
}

func TestResolve_IndexFile(t *testing.T) {
	root := setupProject(t, "src/components/index.ts")

	r := New(root)
	got, ok := r.Resolve(filepath.Join(root, "src"), "./components")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "src", "components", "index.ts"), got)
}

func TestResolve_ParentDirectory(t *testing.T) {
	root := setupProject(t, "src/api.ts", "src/nested/deep.ts")

	r := New(root)
	got, ok := r.Resolve(filepath.Join(root, "src", "nested"), "../api")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "src", "api.ts"), got)
}

func TestResolve_Alias(t *testing.T) {
	root := setupProject(t, "src/hooks/useAuth.ts")

	r := New(root)
	got, ok := r.Resolve(filepath.Join(root, "src", "pages"), "@/src/hooks/useAuth")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "src", "hooks", "useAuth.ts"), got)
}

func TestResolve_CustomAliasPrefix(t *testing.T) {
	root := setupProject(t, "lib/math.ts")

	r := New(root, WithAliasPrefix("~/"))
	got, ok := r.Resolve(filepath.Join(root, "src"), "~/lib/math")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "lib", "math.ts"), got)

	// The default marker is no longer recognized as an alias.
	_, ok = r.Resolve(filepath.Join(root, "src"), "@/lib/math")
	assert.False(t, ok)
}

func TestResolve_BarePackage(t *testing.T) {
	root := setupProject(t, "src/app.ts")

	r := New(root)
	_, ok := r.Resolve(filepath.Join(root, "src"), "react")
	assert.False(t, ok)
	_, ok = r.Resolve(filepath.Join(root, "src"), "lodash/debounce")
	assert.False(t, ok)
}

func TestResolve_MissingFile(t *testing.T) {
	root := setupProject(t, "src/app.ts")

	r := New(root)
	_, ok := r.Resolve(filepath.Join(root, "src"), "./missing")
	assert.False(t, ok)
}

func TestResolve_DirectoryWithoutIndex(t *testing.T) {
	root := setupProject(t, "src/components/Button.tsx")

	r := New(root)
	_, ok := r.Resolve(filepath.Join(root, "src"), "./components")
	assert.False(t, ok)
}

func TestIsLocal(t *testing.T) {
	r := New(t.TempDir())

	assert.True(t, r.IsLocal("./utils"))
	assert.True(t, r.IsLocal("../api"))
	assert.True(t, r.IsLocal("@/hooks/useAuth"))
	assert.True(t, r.IsLocal("/abs/path"))
	assert.False(t, r.IsLocal("react"))
	assert.False(t, r.IsLocal("@scope/pkg"))
}
