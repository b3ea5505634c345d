// Package watch reruns the conversion whenever the source tree changes,
// with a periodic full resync as a safety net.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docmigrate/internal/logfields"
	"git.home.luguber.info/inful/docmigrate/internal/metrics"
)

// RunFunc performs one conversion run. Runs are never invoked concurrently.
type RunFunc func(ctx context.Context) error

// Options configures the watch service.
type Options struct {
	SourceDir string
	// Debounce is how long to wait after the last event before running.
	Debounce time.Duration
	// Resync is the interval of the periodic unconditional run.
	Resync time.Duration
	// MetricsAddr serves the registry on /metrics when non-empty.
	MetricsAddr string
	Registry    *prom.Registry
	Recorder    metrics.Recorder
	Logger      *slog.Logger
}

// Service watches the source tree and triggers conversion runs.
type Service struct {
	run  RunFunc
	opts Options
	// trigger coalesces pending run requests; capacity one.
	trigger chan struct{}
}

// New creates a watch service around run.
func New(run RunFunc, opts Options) *Service {
	if opts.Debounce <= 0 {
		opts.Debounce = 500 * time.Millisecond
	}
	if opts.Resync <= 0 {
		opts.Resync = 15 * time.Minute
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Service{run: run, opts: opts, trigger: make(chan struct{}, 1)}
}

// Run blocks watching the source tree until ctx is canceled. An initial
// conversion runs before watching starts.
func (s *Service) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := s.addTree(watcher); err != nil {
		return fmt.Errorf("watch source tree: %w", err)
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("create scheduler: %w", err)
	}
	if _, err := scheduler.NewJob(
		gocron.DurationJob(s.opts.Resync),
		gocron.NewTask(s.requestRun),
		gocron.WithName("resync"),
	); err != nil {
		return fmt.Errorf("schedule resync job: %w", err)
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Shutdown(); err != nil {
			s.opts.Logger.Error("scheduler shutdown failed", logfields.Error(err))
		}
	}()

	if s.opts.MetricsAddr != "" {
		stop := s.serveMetrics(ctx)
		defer stop()
	}

	s.runOnce(ctx)
	s.opts.Logger.Info("watching source tree",
		logfields.Path(s.opts.SourceDir),
		slog.Duration("debounce", s.opts.Debounce),
		slog.Duration("resync", s.opts.Resync))

	var debounce *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !s.relevant(watcher, event) {
				continue
			}
			s.requestRun()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.opts.Logger.Error("watcher error", logfields.Error(err))

		case <-s.trigger:
			if debounce == nil {
				debounce = time.NewTimer(s.opts.Debounce)
			} else {
				if !debounce.Stop() {
					select {
					case <-debounce.C:
					default:
					}
				}
				debounce.Reset(s.opts.Debounce)
			}
			fire = debounce.C

		case <-fire:
			fire = nil
			s.runOnce(ctx)
		}
	}
}

func (s *Service) runOnce(ctx context.Context) {
	if err := s.run(ctx); err != nil && ctx.Err() == nil {
		s.opts.Logger.Error("conversion run failed", logfields.Error(err))
	}
}

// requestRun queues a run unless one is already pending.
func (s *Service) requestRun() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// relevant reports whether the event should trigger a run, registering newly
// created directories along the way.
func (s *Service) relevant(watcher *fsnotify.Watcher, event fsnotify.Event) bool {
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") {
		return false
	}
	// New subdirectories must be watched too.
	if event.Op&fsnotify.Create != 0 && isDir(event.Name) {
		if err := watcher.Add(event.Name); err != nil {
			s.opts.Logger.Warn("cannot watch new directory", logfields.Path(event.Name), logfields.Error(err))
		}
		return true
	}
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}

// addTree watches every directory under the source root and records the
// number of markdown files found.
func (s *Service) addTree(watcher *fsnotify.Watcher) error {
	files := 0
	err := filepath.WalkDir(s.opts.SourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != s.opts.SourceDir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return watcher.Add(path)
		}
		if strings.EqualFold(filepath.Ext(d.Name()), ".md") {
			files++
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.opts.Recorder.SetWatchedFiles(files)
	return nil
}

// serveMetrics exposes the Prometheus registry until ctx is canceled.
func (s *Service) serveMetrics(ctx context.Context) (stop func()) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(s.opts.Registry))
	srv := &http.Server{Addr: s.opts.MetricsAddr, Handler: mux}

	go func() {
		s.opts.Logger.Info("serving metrics", logfields.URL("http://"+s.opts.MetricsAddr+"/metrics"))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.opts.Logger.Error("metrics server failed", logfields.Error(err))
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
