package build

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/wheelforge/wheelforge/internal/buildenv"
	"github.com/wheelforge/wheelforge/internal/command"
	"github.com/wheelforge/wheelforge/internal/config"
	"github.com/wheelforge/wheelforge/internal/paths"
	"github.com/wheelforge/wheelforge/internal/variant"
	"github.com/wheelforge/wheelforge/internal/wheelhouse"
)

// Controls the variant build loop.
type Options struct {
	Config      config.Config  // Immutable run configuration.
	Runner      command.Runner // Executor for external build tools.
	ProjectRoot string         // Mounted project tree. Defaults to the container project mount.
	WorkDir     string         // Base directory for per-variant workspaces. Defaults to the system temp dir.
}

// Returned after the loop completes or aborts.
type Result struct {
	Wheelhouse string          // Output directory holding the collected wheels.
	Variants   []VariantResult // One entry per discovered variant, in build order.
}

// Runs the variant build loop inside the isolated environment.
//
// The wheelhouse is cleared exactly once, before any variant work, then each
// discovered variant is built strictly sequentially in its own ephemeral
// workspace. Under the default fail-fast policy the loop aborts on the first
// failing variant, leaving only earlier variants' wheels collected; with
// ContinueOnVariantFailure the remaining variants still build and the run
// reports a combined failure at the end.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.ProjectRoot == "" {
		opts.ProjectRoot = paths.ProjectMount
	}
	if opts.WorkDir == "" {
		opts.WorkDir = os.TempDir()
	}

	house := paths.Wheelhouse(opts.ProjectRoot)
	if err := wheelhouse.Reset(house); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileSystemOperation, err)
	}

	variants, err := variant.Discover(opts.Config.VariantsRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuild, err)
	}

	slog.Info("building variants",
		"count", len(variants),
		"project", opts.ProjectRoot,
		"wheelhouse", house,
	)

	loop := newLoop(opts, house, uuid.NewString()[:8])
	results, err := loop.run(ctx, variants)

	result := &Result{Wheelhouse: house, Variants: results}
	if err != nil {
		return result, err
	}

	if err := cleanStaging(opts.ProjectRoot); err != nil {
		return result, err
	}

	return result, nil
}

// Removes leftover top-level staging directories from the project checkout.
//
// The checkout itself is never built in, but packaging front-ends invoked
// against it in earlier workflows may have left build/, dist/, or egg-info
// directories behind. Clearing them keeps the mounted tree pristine for the
// next run.
func cleanStaging(projectRoot string) error {
	for _, pattern := range []string{"build", "dist", "*.egg-info"} {
		matches, err := filepath.Glob(filepath.Join(projectRoot, pattern))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrFileSystemOperation, err)
		}
		for _, match := range matches {
			if err := os.RemoveAll(match); err != nil {
				return fmt.Errorf("%w: remove %s: %w", ErrFileSystemOperation, match, err)
			}
		}
	}
	return nil
}

// Computes the per-command environment: the deterministic build entries
// merged over the current process environment.
func commandEnv(cfg config.Config) []string {
	return buildenv.Merge(os.Environ(), buildenv.Deterministic(cfg))
}
