package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRun_FileChangeTriggersConversion(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "index.md"), []byte("# Home\n"), 0644))

	var runs atomic.Int32
	ran := make(chan struct{}, 8)
	svc := New(func(ctx context.Context) error {
		runs.Add(1)
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	}, Options{
		SourceDir: src,
		Debounce:  50 * time.Millisecond,
		Resync:    time.Hour,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()

	// Initial run fires before watching starts.
	select {
	case <-ran:
	case <-time.After(5 * time.Second):
		t.Fatal("initial run never fired")
	}

	require.NoError(t, os.WriteFile(filepath.Join(src, "index.md"), []byte("# Changed\n"), 0644))

	select {
	case <-ran:
	case <-time.After(5 * time.Second):
		t.Fatal("change-triggered run never fired")
	}

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
	require.GreaterOrEqual(t, runs.Load(), int32(2))
}

func TestRun_RapidChangesAreDebounced(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "index.md"), []byte("# Home\n"), 0644))

	var runs atomic.Int32
	svc := New(func(ctx context.Context) error {
		runs.Add(1)
		return nil
	}, Options{
		SourceDir: src,
		Debounce:  200 * time.Millisecond,
		Resync:    time.Hour,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()

	// A burst of writes inside the debounce window collapses to one run.
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(src, "index.md"), []byte("# Home\n"), 0644))
		time.Sleep(10 * time.Millisecond)
	}
	time.Sleep(600 * time.Millisecond)

	cancel()
	<-done
	// One initial run plus at most two debounced runs for the whole burst.
	require.LessOrEqual(t, runs.Load(), int32(3))
	require.GreaterOrEqual(t, runs.Load(), int32(2))
}

func TestRun_MissingSourceDir_ReturnsError(t *testing.T) {
	svc := New(func(context.Context) error { return nil }, Options{
		SourceDir: "/nonexistent/docs",
	})
	err := svc.Run(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "watch source tree")
}
