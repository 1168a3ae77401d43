package watch

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pohlang/plhub/internal/logging"
)

func TestDebounce_CoalescesBurst(t *testing.T) {
	var builds atomic.Int32
	var lastChanged atomic.Int32

	w, err := New(t.TempDir(), 50*time.Millisecond, func(changed int) {
		builds.Add(1)
		lastChanged.Store(int32(changed))
	}, logging.NewWithOutput(io.Discard, false))
	require.NoError(t, err)
	defer w.Stop()

	// A burst of events within the quiet window triggers exactly one build
	w.note("/p/a.poh")
	w.note("/p/b.poh")
	w.note("/p/c.poh")

	assert.Eventually(t, func() bool {
		return builds.Load() == 1
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, int32(3), lastChanged.Load())

	// Quiet afterwards: no further builds
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(1), builds.Load())
}

func TestDebounce_EventDuringBuildDeferred(t *testing.T) {
	var builds atomic.Int32
	release := make(chan struct{})

	var w *Watcher
	var err error
	w, err = New(t.TempDir(), 30*time.Millisecond, func(changed int) {
		if builds.Add(1) == 1 {
			// First build blocks; an event arriving now must wait for the
			// next window rather than start an overlapping build
			w.note("/p/late.poh")
			<-release
		}
	}, logging.NewWithOutput(io.Discard, false))
	require.NoError(t, err)
	defer w.Stop()

	w.note("/p/a.poh")

	assert.Eventually(t, func() bool {
		return builds.Load() == 1
	}, 2*time.Second, 5*time.Millisecond)

	// Give the timer a chance to fire while the build is still running
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), builds.Load(), "No overlapping build while one is in progress")

	close(release)

	assert.Eventually(t, func() bool {
		return builds.Load() == 2
	}, 2*time.Second, 5*time.Millisecond)
}

func TestWatcher_TriggersOnSourceWrite(t *testing.T) {
	root := t.TempDir()

	var builds atomic.Int32
	w, err := New(root, 50*time.Millisecond, func(changed int) {
		builds.Add(1)
	}, logging.NewWithOutput(io.Discard, false))
	require.NoError(t, err)
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	// Let the watch set settle before writing
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(root, "main.poh"), []byte("Write \"hi\"\n"), 0o644))

	assert.Eventually(t, func() bool {
		return builds.Load() >= 1
	}, 3*time.Second, 20*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestWatcher_IgnoresNonSourceFiles(t *testing.T) {
	root := t.TempDir()

	var builds atomic.Int32
	w, err := New(root, 30*time.Millisecond, func(changed int) {
		builds.Add(1)
	}, logging.NewWithOutput(io.Discard, false))
	require.NoError(t, err)
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() { _ = w.Start(ctx) }()
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("not a source"), 0o644))

	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(0), builds.Load())
}
