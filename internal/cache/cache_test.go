package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"

	"github.com/wheelforge/wheelforge/internal/command"
)

// Stub runner answering the pip cache query.
type stubRunner struct {
	out string
	err error
}

func (s stubRunner) Run(ctx context.Context, cmd command.Cmd) error {
	return s.err
}

func (s stubRunner) Output(ctx context.Context, cmd command.Cmd) (string, error) {
	return s.out, s.err
}

func TestResolve(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	xdg.Reload()

	pipDir := t.TempDir()
	paths, err := Resolve(context.Background(), stubRunner{out: pipDir})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if paths.PipCache != pipDir {
		t.Fatalf("PipCache = %q, want %q", paths.PipCache, pipDir)
	}
	if !filepath.IsAbs(paths.Ccache) {
		t.Fatalf("Ccache = %q, want absolute", paths.Ccache)
	}

	// The ccache directory is created as a side effect.
	info, err := os.Stat(paths.Ccache)
	if err != nil || !info.IsDir() {
		t.Fatalf("ccache dir missing: %v", err)
	}

	// Idempotent: resolving again with the directory present succeeds.
	if _, err := Resolve(context.Background(), stubRunner{out: pipDir}); err != nil {
		t.Fatalf("second Resolve: %v", err)
	}
}

func TestResolveQueryFailureIsFatal(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	xdg.Reload()

	_, err := Resolve(context.Background(), stubRunner{err: errors.New("pip not found")})
	if !errors.Is(err, ErrCacheUnresolvable) {
		t.Fatalf("err = %v, want ErrCacheUnresolvable", err)
	}
}
