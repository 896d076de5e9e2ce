package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/wheelforge/wheelforge/internal/command"
	"github.com/wheelforge/wheelforge/internal/paths"
)

var (
	ErrCacheUnresolvable = errors.New("cache path unresolvable")
)

// Host-side cache locations to be mounted into the build container.
type Paths struct {
	PipCache string // Package-index cache root, as reported by pip.
	Ccache   string // Compiler cache directory.
}

// Resolves the host cache directories.
//
// The pip cache root comes from pip itself ("pip cache dir"); a run cannot
// proceed without a known cache path, so a failed query is fatal. The ccache
// directory lives under the XDG cache home and is created if absent.
func Resolve(ctx context.Context, runner command.Runner) (Paths, error) {
	out, err := runner.Output(ctx, command.Cmd{
		Name: "python3",
		Args: []string{"-m", "pip", "cache", "dir"},
	})
	if err != nil {
		return Paths{}, fmt.Errorf("%w: query pip cache dir: %w", ErrCacheUnresolvable, err)
	}

	pipCache, err := filepath.Abs(out)
	if err != nil {
		return Paths{}, fmt.Errorf("%w: %w", ErrCacheUnresolvable, err)
	}

	ccache := paths.Ccache()
	if err := os.MkdirAll(ccache, paths.DefaultDirMode); err != nil {
		return Paths{}, fmt.Errorf("%w: create ccache dir: %w", ErrCacheUnresolvable, err)
	}

	slog.Debug("caches resolved", "pip", pipCache, "ccache", ccache)

	return Paths{PipCache: pipCache, Ccache: ccache}, nil
}
