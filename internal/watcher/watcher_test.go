package watcher

// Test Plan for the File Watcher:
// - New creates a watcher over an existing tree
// - New fails for a missing root
// - A write to a watched extension fires the debounced callback
// - Rapid consecutive writes coalesce into one callback
// - Files with other extensions do not fire
// - Files in newly created directories are picked up
// - Stop is safe to call more than once
// - Context cancellation stops the event loop

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collector gathers callback invocations behind a mutex.
type collector struct {
	mu    sync.Mutex
	calls [][]string
}

func (c *collector) callback(files []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, files)
}

func (c *collector) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

func (c *collector) allFiles() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var all []string
	for _, call := range c.calls {
		all = append(all, call...)
	}
	return all
}

// newTestWatcher builds a started watcher with a short debounce.
func newTestWatcher(t *testing.T, root string) (*Watcher, *collector) {
	t.Helper()

	w, err := New(root, []string{".ts", ".tsx"})
	require.NoError(t, err)
	w.debounceTime = 50 * time.Millisecond

	c := &collector{}
	require.NoError(t, w.Start(context.Background(), c.callback))
	t.Cleanup(func() { w.Stop() })

	return w, c
}

// waitFor polls until check passes or the deadline expires.
func waitFor(t *testing.T, check func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if check() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestNew_MissingRoot(t *testing.T) {
	t.Parallel()

	_, err := New(filepath.Join(t.TempDir(), "nonexistent"), []string{".ts"})
	assert.Error(t, err)
}

func TestWatcher_FiresOnWrite(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	_, c := newTestWatcher(t, root)

	file := filepath.Join(root, "app.ts")
	require.NoError(t, os.WriteFile(file, []byte("const x = 1\n"), 0644))

	waitFor(t, func() bool { return c.count() >= 1 })
	assert.Contains(t, c.allFiles(), file)
}

func TestWatcher_DebouncesRapidWrites(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	_, c := newTestWatcher(t, root)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(root, "app.ts"), []byte("const x = 1\n"), 0644))
		time.Sleep(5 * time.Millisecond)
	}

	waitFor(t, func() bool { return c.count() >= 1 })
	// The quiet period collapses the burst into one delivery.
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, 1, c.count())
}

func TestWatcher_IgnoresOtherExtensions(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	_, c := newTestWatcher(t, root)

	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.md"), []byte("x"), 0644))

	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, 0, c.count())
}

func TestWatcher_PicksUpNewDirectories(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	_, c := newTestWatcher(t, root)

	sub := filepath.Join(root, "src")
	require.NoError(t, os.MkdirAll(sub, 0755))
	// Give the event loop a beat to add the new directory.
	time.Sleep(100 * time.Millisecond)

	file := filepath.Join(sub, "view.tsx")
	require.NoError(t, os.WriteFile(file, []byte("const v = 1\n"), 0644))

	waitFor(t, func() bool { return c.count() >= 1 })
	assert.Contains(t, c.allFiles(), file)
}

func TestWatcher_StopTwice(t *testing.T) {
	t.Parallel()

	w, err := New(t.TempDir(), []string{".ts"})
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background(), func([]string) {}))

	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
}

func TestWatcher_ContextCancellation(t *testing.T) {
	t.Parallel()

	w, err := New(t.TempDir(), []string{".ts"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx, func([]string) {}))

	cancel()
	waitFor(t, func() bool {
		select {
		case <-w.doneCh:
			return true
		default:
			return false
		}
	})
	require.NoError(t, w.Stop())
}

func TestShouldProcessEvent(t *testing.T) {
	t.Parallel()

	w := &Watcher{extensions: map[string]bool{".ts": true}}

	assert.True(t, w.shouldProcessEvent(fsnotify.Event{Name: "a.ts", Op: fsnotify.Write}))
	assert.True(t, w.shouldProcessEvent(fsnotify.Event{Name: "a.ts", Op: fsnotify.Create}))
	assert.True(t, w.shouldProcessEvent(fsnotify.Event{Name: "a.ts", Op: fsnotify.Remove}))
	assert.False(t, w.shouldProcessEvent(fsnotify.Event{Name: "a.ts", Op: fsnotify.Chmod}))
	assert.False(t, w.shouldProcessEvent(fsnotify.Event{Name: "a.md", Op: fsnotify.Write}))
}
