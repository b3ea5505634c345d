package gitfetch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/stretchr/testify/require"
)

func mkGitStub(dir string) error {
	return os.MkdirAll(filepath.Join(dir, ".git"), 0755)
}

func TestSync_MissingURL_ReturnsError(t *testing.T) {
	c := NewClient(nil, nil)
	err := c.Sync(context.Background(), Options{Dir: t.TempDir()})
	require.Error(t, err)
	require.Contains(t, err.Error(), "not configured")
}

func TestClassify_MapsTransportErrors(t *testing.T) {
	err := classify("https://example.com/docs.git", fmt.Errorf("clone: %w", transport.ErrAuthenticationRequired))
	require.ErrorIs(t, err, ErrAuth)

	err = classify("https://example.com/docs.git", fmt.Errorf("clone: %w", transport.ErrRepositoryNotFound))
	require.ErrorIs(t, err, ErrNotFound)

	plain := errors.New("dial tcp: timeout")
	require.Equal(t, plain, classify("https://example.com/docs.git", plain))
}

func TestSync_BrokenCheckout_ReturnsOpenError(t *testing.T) {
	dir := t.TempDir()
	// A .git directory that is not a repository.
	require.NoError(t, mkGitStub(dir))

	c := NewClient(nil, nil)
	err := c.Sync(context.Background(), Options{URL: "https://example.com/docs.git", Dir: dir})
	require.Error(t, err)
	require.Contains(t, err.Error(), "open checkout")
}
