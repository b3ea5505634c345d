// Package gitfetch keeps a local checkout of the source documentation
// repository in sync with its remote.
package gitfetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"

	"git.home.luguber.info/inful/docmigrate/internal/logfields"
	"git.home.luguber.info/inful/docmigrate/internal/metrics"
)

var (
	// ErrAuth marks fetch failures the remote rejected for credentials.
	ErrAuth = errors.New("authentication failed")
	// ErrNotFound marks a remote repository that does not exist.
	ErrNotFound = errors.New("repository not found")
)

// Options describes the repository to sync.
type Options struct {
	URL    string
	Branch string
	Dir    string
	// Token, when set, authenticates HTTPS fetches.
	Token string
	// Depth limits clone history. Zero means a shallow single-commit clone;
	// negative means full history.
	Depth int
}

// Client syncs source checkouts. The zero collaborators default to no
// metrics and the process logger.
type Client struct {
	recorder metrics.Recorder
	logger   *slog.Logger
}

// NewClient creates a Client.
func NewClient(recorder metrics.Recorder, logger *slog.Logger) *Client {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{recorder: recorder, logger: logger}
}

// Sync clones opts.URL into opts.Dir, or fast-forwards the existing checkout.
func (c *Client) Sync(ctx context.Context, opts Options) error {
	if opts.URL == "" {
		return fmt.Errorf("repository URL not configured")
	}
	if opts.Branch == "" {
		opts.Branch = "main"
	}

	start := time.Now()
	err := c.sync(ctx, opts)
	c.recorder.ObserveFetchDuration(opts.URL, time.Since(start), err == nil)
	if err != nil {
		return classify(opts.URL, err)
	}
	return nil
}

func (c *Client) sync(ctx context.Context, opts Options) error {
	if _, err := os.Stat(filepath.Join(opts.Dir, ".git")); err != nil {
		return c.clone(ctx, opts)
	}
	return c.update(ctx, opts)
}

func (c *Client) clone(ctx context.Context, opts Options) error {
	c.logger.Info("cloning source repository", logfields.URL(opts.URL), logfields.Path(opts.Dir), slog.String("branch", opts.Branch))

	if err := os.MkdirAll(filepath.Dir(opts.Dir), 0755); err != nil {
		return fmt.Errorf("prepare checkout dir: %w", err)
	}
	depth := opts.Depth
	if depth == 0 {
		depth = 1
	} else if depth < 0 {
		depth = 0
	}
	_, err := git.PlainCloneContext(ctx, opts.Dir, false, &git.CloneOptions{
		URL:           opts.URL,
		ReferenceName: plumbing.NewBranchReferenceName(opts.Branch),
		SingleBranch:  true,
		Depth:         depth,
		Auth:          auth(opts),
	})
	if err != nil {
		return fmt.Errorf("clone: %w", err)
	}
	return nil
}

func (c *Client) update(ctx context.Context, opts Options) error {
	repo, err := git.PlainOpen(opts.Dir)
	if err != nil {
		return fmt.Errorf("open checkout: %w", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("worktree: %w", err)
	}

	c.logger.Info("updating source repository", logfields.URL(opts.URL), logfields.Path(opts.Dir))
	err = wt.PullContext(ctx, &git.PullOptions{
		RemoteName:    "origin",
		ReferenceName: plumbing.NewBranchReferenceName(opts.Branch),
		SingleBranch:  true,
		Auth:          auth(opts),
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("pull: %w", err)
	}
	return nil
}

func auth(opts Options) transport.AuthMethod {
	if opts.Token == "" {
		return nil
	}
	return &githttp.BasicAuth{Username: "token", Password: opts.Token}
}

func classify(url string, err error) error {
	switch {
	case errors.Is(err, transport.ErrAuthenticationRequired), errors.Is(err, transport.ErrAuthorizationFailed):
		return fmt.Errorf("%w: %s: %v", ErrAuth, url, err)
	case errors.Is(err, transport.ErrRepositoryNotFound):
		return fmt.Errorf("%w: %s: %v", ErrNotFound, url, err)
	default:
		return err
	}
}
