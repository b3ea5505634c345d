// Package batch converts a whole source tree in one run: markdown documents
// through the conversion pipeline, everything else copied verbatim.
package batch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/docmigrate/internal/convert"
	"git.home.luguber.info/inful/docmigrate/internal/logfields"
	"git.home.luguber.info/inful/docmigrate/internal/metrics"
)

// Options configures a Runner.
type Options struct {
	SourceDir string
	OutputDir string
	// Extension replaces the .md extension on converted documents.
	Extension string
	// Clean removes OutputDir before the run.
	Clean bool
	// Concurrency bounds parallel document conversions. Zero means
	// one worker per CPU.
	Concurrency int
	Recorder    metrics.Recorder
	Logger      *slog.Logger
}

// DocumentError is a per-document failure collected by a run. One bad
// document never aborts the batch.
type DocumentError struct {
	Path string
	Err  error
}

func (e DocumentError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e DocumentError) Unwrap() error { return e.Err }

// Summary reports the outcome of one run.
type Summary struct {
	RunID     string
	Total     int
	Converted int
	Unchanged int
	Assets    int
	Warnings  int
	Errors    []DocumentError
	Duration  time.Duration
}

// Failed reports whether any document in the run could not be converted.
func (s Summary) Failed() bool { return len(s.Errors) > 0 }

// Runner converts source trees. It holds only immutable collaborators and is
// safe to reuse across runs.
type Runner struct {
	pipeline *convert.Pipeline
	opts     Options
}

// NewRunner creates a Runner around a conversion pipeline.
func NewRunner(pipeline *convert.Pipeline, opts Options) *Runner {
	if opts.Extension == "" {
		opts.Extension = ".mdx"
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = runtime.NumCPU()
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Runner{pipeline: pipeline, opts: opts}
}

type docResult struct {
	path     string
	changed  bool
	warnings int
	err      error
}

// Run converts every markdown document under SourceDir into OutputDir and
// copies the remaining files alongside. Per-document failures are collected
// in the summary; Run itself fails only when the tree cannot be traversed or
// the output cannot be prepared.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	start := time.Now()
	sum := Summary{RunID: uuid.NewString()}
	log := r.opts.Logger.With(logfields.RunID(sum.RunID))

	docs, assets, err := Discover(r.opts.SourceDir)
	if err != nil {
		r.opts.Recorder.ObserveRunDuration(time.Since(start), false)
		return sum, fmt.Errorf("discover source tree: %w", err)
	}
	sum.Total = len(docs)
	log.Info("starting conversion run", logfields.Files(len(docs)), logfields.Path(r.opts.SourceDir))

	if r.opts.Clean {
		if err := os.RemoveAll(r.opts.OutputDir); err != nil {
			return sum, fmt.Errorf("clean output dir: %w", err)
		}
	}
	if err := os.MkdirAll(r.opts.OutputDir, 0755); err != nil {
		return sum, fmt.Errorf("create output dir: %w", err)
	}

	results := r.convertAll(ctx, docs)
	for _, res := range results {
		if res.err != nil {
			sum.Errors = append(sum.Errors, DocumentError{Path: res.path, Err: res.err})
			continue
		}
		sum.Warnings += res.warnings
		if res.changed {
			sum.Converted++
		} else {
			sum.Unchanged++
		}
	}

	for _, rel := range assets {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		if err := copyFile(filepath.Join(r.opts.SourceDir, rel), filepath.Join(r.opts.OutputDir, rel)); err != nil {
			sum.Errors = append(sum.Errors, DocumentError{Path: rel, Err: err})
			continue
		}
		sum.Assets++
	}

	sum.Duration = time.Since(start)
	r.opts.Recorder.ObserveRunDuration(sum.Duration, !sum.Failed())
	log.Info("conversion run finished",
		logfields.Files(sum.Converted+sum.Unchanged),
		logfields.Warnings(sum.Warnings),
		logfields.DurationMS(float64(sum.Duration.Milliseconds())),
		slog.Int("errors", len(sum.Errors)))
	return sum, ctx.Err()
}

// convertAll fans the documents out over a bounded worker pool, preserving
// input order in the results.
func (r *Runner) convertAll(ctx context.Context, docs []string) []docResult {
	results := make([]docResult, len(docs))
	sem := make(chan struct{}, r.opts.Concurrency)

	var wg sync.WaitGroup
	for i, rel := range docs {
		wg.Add(1)
		go func(i int, rel string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			if err := ctx.Err(); err != nil {
				results[i] = docResult{path: rel, err: err}
				return
			}
			results[i] = r.convertOne(rel)
		}(i, rel)
	}
	wg.Wait()
	return results
}

func (r *Runner) convertOne(rel string) docResult {
	start := time.Now()
	log := r.opts.Logger.With(logfields.Path(rel))

	input, err := os.ReadFile(filepath.Join(r.opts.SourceDir, rel))
	if err != nil {
		r.opts.Recorder.IncDocumentResult(metrics.ResultFailed)
		return docResult{path: rel, err: err}
	}

	res, err := r.pipeline.Convert(input)
	if err != nil {
		r.opts.Recorder.IncDocumentResult(metrics.ResultFailed)
		log.Error("conversion failed", logfields.Error(err))
		return docResult{path: rel, err: err}
	}

	outRel := strings.TrimSuffix(rel, filepath.Ext(rel)) + r.opts.Extension
	outPath := filepath.Join(r.opts.OutputDir, outRel)
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		r.opts.Recorder.IncDocumentResult(metrics.ResultFailed)
		return docResult{path: rel, err: err}
	}
	if err := os.WriteFile(outPath, res.Output, 0644); err != nil {
		r.opts.Recorder.IncDocumentResult(metrics.ResultFailed)
		return docResult{path: rel, err: err}
	}

	for _, w := range res.Warnings {
		log.Warn("conversion warning", slog.Int("line", w.Line), slog.String("message", w.Message))
	}
	r.opts.Recorder.AddWarnings(len(res.Warnings))
	r.opts.Recorder.ObserveDocumentDuration(time.Since(start))
	if res.Changed {
		r.opts.Recorder.IncDocumentResult(metrics.ResultConverted)
	} else {
		r.opts.Recorder.IncDocumentResult(metrics.ResultUnchanged)
	}
	return docResult{path: rel, changed: res.Changed, warnings: len(res.Warnings)}
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
