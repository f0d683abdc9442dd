package watcher_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/helixdojo/internal/watcher"
)

func startWatcher(t *testing.T, dir string) <-chan struct{} {
	t.Helper()
	w, err := watcher.New(watcher.Config{Dir: dir, Debounce: 50 * time.Millisecond})
	require.NoError(t, err, "failed to create watcher")
	t.Cleanup(func() { _ = w.Stop() })

	onChange, err := w.Start()
	require.NoError(t, err, "failed to start watcher")
	return onChange
}

func TestWatcher_DebounceMultipleWrites(t *testing.T) {
	dir := t.TempDir()
	pack := filepath.Join(dir, "pack.yaml")
	require.NoError(t, os.WriteFile(pack, []byte("challenges: []"), 0o644))

	onChange := startWatcher(t, dir)

	// Rapid writes should coalesce into a single notification
	for i := 0; i < 10; i++ {
		require.NoError(t, os.WriteFile(pack, []byte(fmt.Sprintf("# %d\nchallenges: []", i)), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-onChange:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected notification but got timeout")
	}

	select {
	case <-onChange:
		t.Fatal("unexpected second notification")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_IgnoresNonYAMLFiles(t *testing.T) {
	dir := t.TempDir()
	notes := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(notes, []byte("initial"), 0o644))

	onChange := startWatcher(t, dir)

	require.NoError(t, os.WriteFile(notes, []byte("other content"), 0o644))

	select {
	case <-onChange:
		t.Fatal("should not notify for non-pack files")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_NotifiesOnCreateAndRemove(t *testing.T) {
	dir := t.TempDir()
	onChange := startWatcher(t, dir)

	pack := filepath.Join(dir, "new.yml")
	require.NoError(t, os.WriteFile(pack, []byte("challenges: []"), 0o644))
	select {
	case <-onChange:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected notification for new pack")
	}

	require.NoError(t, os.Remove(pack))
	select {
	case <-onChange:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected notification for removed pack")
	}
}

func TestWatcher_Stop(t *testing.T) {
	w, err := watcher.New(watcher.DefaultConfig(t.TempDir()))
	require.NoError(t, err)

	_, err = w.Start()
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		assert.NoError(t, w.Stop(), "Stop returned error")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop() timed out - possible deadlock")
	}
}

func TestWatcher_MissingDir(t *testing.T) {
	w, err := watcher.New(watcher.DefaultConfig(filepath.Join(t.TempDir(), "missing")))
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	_, err = w.Start()
	require.ErrorContains(t, err, "watching directory")
}

func TestNew_RequiresDir(t *testing.T) {
	_, err := watcher.New(watcher.Config{})
	require.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	cfg := watcher.DefaultConfig("/packs")

	assert.Equal(t, "/packs", cfg.Dir)
	assert.Equal(t, watcher.DefaultDebounce, cfg.Debounce)
}
