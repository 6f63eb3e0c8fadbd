package blocks

// Test Plan for Block Mapping:
// - A changed line inside a function maps to that function
// - Two changed lines in one function merge into a single block
// - A line on a declaration's own first line still maps to it, including
//   exported functions and const arrow functions
// - A line inside a method maps to the method, not the enclosing class
// - Functions returning JSX classify as components
// - JSX text mentioning a tag in a string does not upgrade the kind
// - A changed line with no enclosing declaration is dropped
// - Interfaces and classes map with their own kinds
// - Signatures are clipped at the body's opening brace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codescope/internal/source"
)

// parseFixture parses content under a temp dir with the given file name.
func parseFixture(t *testing.T, name, content string) *source.Unit {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	provider, err := source.NewProvider()
	require.NoError(t, err)
	t.Cleanup(provider.Close)

	unit, err := provider.Parse(path)
	require.NoError(t, err)
	return unit
}

const mapperFixture = `import { api } from './api'

export function loadUser(id: string) {
  const res = api.get(id)
  return res
}

const formatName = (name: string) => {
  return name.trim()
}

export class UserStore {
  private users = new Map()

  add(user: User) {
    this.users.set(user.id, user)
  }
}

export interface User {
  id: string
}
`

func TestMapChangedLines_InsideFunction(t *testing.T) {
	unit := parseFixture(t, "user.ts", mapperFixture)

	blocks := NewMapper().MapChangedLines(unit, []int{4})
	require.Len(t, blocks, 1)

	b := blocks[0]
	assert.Equal(t, KindFunction, b.Kind)
	assert.Equal(t, "loadUser", b.Name)
	assert.Equal(t, 3, b.StartLine)
	assert.Equal(t, 6, b.EndLine)
	assert.Equal(t, []int{4}, b.ChangedLines)
}

func TestMapChangedLines_MergesLinesInOneBlock(t *testing.T) {
	unit := parseFixture(t, "user.ts", mapperFixture)

	blocks := NewMapper().MapChangedLines(unit, []int{5, 4})
	require.Len(t, blocks, 1)
	assert.Equal(t, "loadUser", blocks[0].Name)
	assert.Equal(t, []int{4, 5}, blocks[0].ChangedLines)
}

func TestMapChangedLines_DeclarationFirstLine(t *testing.T) {
	unit := parseFixture(t, "user.ts", mapperFixture)

	blocks := NewMapper().MapChangedLines(unit, []int{3})
	require.Len(t, blocks, 1)
	assert.Equal(t, KindFunction, blocks[0].Kind)
	assert.Equal(t, "loadUser", blocks[0].Name)
}

func TestMapChangedLines_ArrowFunctionBinding(t *testing.T) {
	unit := parseFixture(t, "user.ts", mapperFixture)

	blocks := NewMapper().MapChangedLines(unit, []int{8})
	require.Len(t, blocks, 1)
	assert.Equal(t, KindFunction, blocks[0].Kind)
	assert.Equal(t, "formatName", blocks[0].Name)
}

func TestMapChangedLines_MethodBeatsClass(t *testing.T) {
	unit := parseFixture(t, "user.ts", mapperFixture)

	blocks := NewMapper().MapChangedLines(unit, []int{16})
	require.Len(t, blocks, 1)
	assert.Equal(t, KindMethod, blocks[0].Kind)
	assert.Equal(t, "add", blocks[0].Name)
}

func TestMapChangedLines_ClassAndInterface(t *testing.T) {
	unit := parseFixture(t, "user.ts", mapperFixture)

	blocks := NewMapper().MapChangedLines(unit, []int{12, 20})
	require.Len(t, blocks, 2)
	assert.Equal(t, KindClass, blocks[0].Kind)
	assert.Equal(t, "UserStore", blocks[0].Name)
	assert.Equal(t, KindInterface, blocks[1].Kind)
	assert.Equal(t, "User", blocks[1].Name)
}

func TestMapChangedLines_NoEnclosingDeclarationDropped(t *testing.T) {
	unit := parseFixture(t, "user.ts", mapperFixture)

	// Line 1 is an import; line 4 is inside loadUser.
	blocks := NewMapper().MapChangedLines(unit, []int{1, 4})
	require.Len(t, blocks, 1)
	assert.Equal(t, "loadUser", blocks[0].Name)
}

func TestMapChangedLines_ComponentDetection(t *testing.T) {
	unit := parseFixture(t, "Avatar.tsx", `export function Avatar(props: Props) {
  return <img src={props.url} />
}

export function urlOf(props: Props) {
  const tag = "<img>"
  return props.url + tag
}
`)

	blocks := NewMapper().MapChangedLines(unit, []int{2, 6})
	require.Len(t, blocks, 2)
	assert.Equal(t, KindComponent, blocks[0].Kind)
	assert.Equal(t, "Avatar", blocks[0].Name)
	assert.Equal(t, KindFunction, blocks[1].Kind)
	assert.Equal(t, "urlOf", blocks[1].Name)
}

func TestMakeBlock_Signature(t *testing.T) {
	unit := parseFixture(t, "user.ts", mapperFixture)

	blocks := NewMapper().MapChangedLines(unit, []int{4})
	require.Len(t, blocks, 1)
	assert.Equal(t, "function loadUser(id: string) { ... }", blocks[0].Signature)
}

func TestNearestDeclaration_OutOfRangeLine(t *testing.T) {
	unit := parseFixture(t, "user.ts", mapperFixture)

	_, ok := NewMapper().NearestDeclaration(unit, 999, Enclosing)
	assert.False(t, ok)
}
