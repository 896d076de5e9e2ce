package launcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/wheelforge/wheelforge/internal/buildenv"
	"github.com/wheelforge/wheelforge/internal/cache"
	"github.com/wheelforge/wheelforge/internal/command"
	"github.com/wheelforge/wheelforge/internal/config"
	"github.com/wheelforge/wheelforge/internal/paths"
	"github.com/wheelforge/wheelforge/internal/runtime"
	"github.com/wheelforge/wheelforge/internal/wheelhouse"
)

// Controls a host-side launch.
type Options struct {
	Config config.Config  // Immutable run configuration.
	Runner command.Runner // Executor for the host-side cache query.
}

// Provisions the isolated build container and re-invokes the orchestrator
// inside it.
//
// Cache resolution and image availability are checked before any container
// is created; failures there abort the run with the project tree untouched.
// The container mounts the project tree read-write, both caches, and this
// process's own binary, then runs "wheelforge build --mode=isolated" as its
// primary process. The isolated run's exit status becomes this run's exit
// status, carried as an [ExitError]. On success the populated wheelhouse is
// listed as the user-visible summary.
func Run(ctx context.Context, opts Options) error {
	cfg := opts.Config

	projectRoot, err := resolveProjectRoot(cfg.ProjectRoot)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLaunch, err)
	}

	caches, err := cache.Resolve(ctx, opts.Runner)
	if err != nil {
		return err
	}

	binary, err := os.Executable()
	if err != nil {
		return fmt.Errorf("%w: locate own binary: %w", ErrLaunch, err)
	}

	rt, err := runtime.New(cfg.ContainerdAddress, cfg.ContainerdNamespace)
	if err != nil {
		return err
	}
	defer rt.Close()

	image, err := rt.EnsureImage(ctx, cfg.Image)
	if err != nil {
		return err
	}

	id := "wheelforge-build-" + uuid.NewString()[:8]

	slog.Info("launching isolated build",
		"image", cfg.Image,
		"project", projectRoot,
		"container", id,
	)

	code, err := rt.RunContainer(ctx, runtime.RunSpec{
		ID:    id,
		Image: image,
		Mounts: []runtime.Mount{
			{Source: projectRoot, Target: paths.ProjectMount},
			{Source: caches.PipCache, Target: paths.PipCacheMount},
			{Source: caches.Ccache, Target: paths.CcacheMount},
			{Source: binary, Target: paths.BinaryMount, ReadOnly: true},
		},
		Env:  buildenv.Deterministic(cfg),
		Args: isolatedArgs(cfg),
	})
	if err != nil {
		return err
	}
	if code != 0 {
		return &ExitError{Code: code}
	}

	return listWheelhouse(projectRoot)
}

// Builds the argument vector for the orchestrator inside the container.
//
// The mode is always explicit so the inner invocation never depends on
// filesystem probing, and the policy flags are forwarded so host and
// isolated runs agree on configuration.
func isolatedArgs(cfg config.Config) []string {
	args := []string{
		paths.BinaryMount, "build",
		"--mode=isolated",
		"--plat", cfg.PlatformTag,
		"--audit", cfg.AuditPolicy,
	}
	if cfg.ContinueOnVariantFailure {
		args = append(args, "--continue-on-failure")
	}
	return args
}

// Resolves the host project root to an absolute path.
func resolveProjectRoot(root string) (string, error) {
	if root == "" {
		return os.Getwd()
	}
	return filepath.Abs(root)
}

// Logs the collected wheels with their sizes and content digests.
//
// The wheelhouse lives under the mounted project root, so it is visible on
// the host as soon as the isolated run has exited.
func listWheelhouse(projectRoot string) error {
	entries, err := wheelhouse.Summary(paths.Wheelhouse(projectRoot))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLaunch, err)
	}

	if len(entries) == 0 {
		slog.Warn("isolated run succeeded but collected no wheels")
		return nil
	}

	for _, entry := range entries {
		slog.Info("collected wheel",
			"name", entry.Name,
			"size", entry.Size,
			"digest", entry.Digest,
		)
	}

	return nil
}
