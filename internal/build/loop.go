package build

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/wheelforge/wheelforge/internal/command"
	"github.com/wheelforge/wheelforge/internal/config"
	"github.com/wheelforge/wheelforge/internal/variant"
	"github.com/wheelforge/wheelforge/internal/wheelhouse"
)

// Directory names inside a variant's source checkout.
const (
	distDir     = "dist"     // Where pip wheel writes the built wheel.
	repairedDir = "repaired" // Where auditwheel repair writes the platform-tagged wheel.
)

// Holds shared state for building all variants of a run.
type loop struct {
	cfg     config.Config  // Immutable run configuration.
	runner  command.Runner // Executor for external build tools.
	project string         // Mounted project tree, cloned fresh per variant.
	house   string         // Shared wheelhouse, already reset.
	workDir string         // Base directory for workspaces.
	env     []string       // Deterministic command environment, computed once.
	runID   string         // Short run identifier, scoping workspace names.
}

// Creates a new [loop] from the given options.
func newLoop(opts Options, house, runID string) *loop {
	return &loop{
		cfg:     opts.Config,
		runner:  opts.Runner,
		project: opts.ProjectRoot,
		house:   house,
		workDir: opts.WorkDir,
		env:     commandEnv(opts.Config),
		runID:   runID,
	}
}

// Builds every enabled variant strictly sequentially.
//
// Each variant's workspace lifetime is nested entirely inside its own
// iteration; variant N's workspace is created only after variant N-1's has
// been destroyed. Under fail-fast the first failure aborts the loop and the
// remaining variants are reported as skipped.
func (l *loop) run(ctx context.Context, variants []variant.Variant) ([]VariantResult, error) {
	results := make([]VariantResult, 0, len(variants))

	failed := 0
	aborted := false

	for _, v := range variants {
		if aborted || !l.cfg.VariantEnabled(v.Tag) {
			results = append(results, VariantResult{Tag: v.Tag, Status: StatusSkipped})
			continue
		}

		wheel, err := l.buildVariant(ctx, v)
		if err != nil {
			slog.Error("variant failed", "variant", v.Tag, "error", err)
			results = append(results, VariantResult{Tag: v.Tag, Status: StatusFailed, Err: err})
			failed++

			if !l.cfg.ContinueOnVariantFailure {
				aborted = true
			}
			continue
		}

		slog.Info("variant built", "variant", v.Tag, "wheel", wheel)
		results = append(results, VariantResult{Tag: v.Tag, Status: StatusSucceeded, Wheel: wheel})
	}

	if failed > 0 {
		return results, fmt.Errorf("%w: %d of %d variants failed", ErrBuild, failed, len(variants))
	}

	return results, nil
}

// Builds, audits, repairs, and collects one variant's wheel.
//
// Runs inside a fresh workspace that is destroyed when the iteration ends,
// success or failure. Returns the collected wheel's filename.
func (l *loop) buildVariant(ctx context.Context, v variant.Variant) (string, error) {
	slog.Info("building variant", "variant", v.Tag, "python", v.Python())

	ws, err := newWorkspace(l.workDir, l.runID, v.Tag)
	if err != nil {
		return "", err
	}
	defer ws.destroy()

	if err := l.cloneSource(ctx, ws); err != nil {
		return "", err
	}
	if err := l.installToolchain(ctx, v, ws); err != nil {
		return "", err
	}

	wheel, err := l.buildWheel(ctx, v, ws)
	if err != nil {
		return "", err
	}

	if err := l.auditWheel(ctx, v, ws, wheel); err != nil {
		return "", err
	}

	repaired, err := l.repairWheel(ctx, ws, wheel)
	if err != nil {
		return "", err
	}

	collected, err := wheelhouse.Collect(l.house, repaired)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFileSystemOperation, err)
	}

	return filepath.Base(collected), nil
}

// Clones the project tree fresh into the workspace.
//
// A previous variant's checkout is never reused; compiled intermediates and
// generated files from one ABI must not reach the next.
func (l *loop) cloneSource(ctx context.Context, ws *workspace) error {
	return l.runCmd(ctx, command.Cmd{
		Name: "git",
		Args: []string{"clone", "--no-hardlinks", l.project, ws.src()},
	})
}

// Upgrades the packaging front-end and installs the extension-build
// toolchain at its pinned minimum versions, using the variant's own
// interpreter.
func (l *loop) installToolchain(ctx context.Context, v variant.Variant, ws *workspace) error {
	if err := l.runCmd(ctx, command.Cmd{
		Name: v.Python(),
		Args: []string{"-m", "pip", "install", "--upgrade", "pip"},
		Dir:  ws.src(),
	}); err != nil {
		return err
	}

	args := append([]string{"-m", "pip", "install", "--upgrade"}, l.cfg.Toolchain...)
	return l.runCmd(ctx, command.Cmd{
		Name: v.Python(),
		Args: args,
		Dir:  ws.src(),
	})
}

// Builds the variant's wheel into the checkout-local dist directory and
// returns its path. Exactly one wheel is expected per variant.
func (l *loop) buildWheel(ctx context.Context, v variant.Variant, ws *workspace) (string, error) {
	if err := l.runCmd(ctx, command.Cmd{
		Name: v.Python(),
		Args: []string{"-m", "pip", "wheel", "--no-deps", "--wheel-dir", distDir, "."},
		Dir:  ws.src(),
	}); err != nil {
		return "", err
	}

	return singleWheel(filepath.Join(ws.src(), distDir))
}

// Runs the platform-compliance inspection on the built wheel.
//
// Under the default "warn" policy an inspection failure is logged and the
// build continues; the repair step is still the authority on whether the
// wheel can be made compliant. The "strict" policy turns inspection
// failures fatal.
func (l *loop) auditWheel(ctx context.Context, v variant.Variant, ws *workspace, wheel string) error {
	err := l.runCmd(ctx, command.Cmd{
		Name: "auditwheel",
		Args: []string{"show", wheel},
		Dir:  ws.src(),
	})
	if err == nil {
		return nil
	}

	if l.cfg.AuditPolicy == config.AuditStrict {
		return fmt.Errorf("%w: %w", ErrAudit, err)
	}

	slog.Warn("wheel audit failed", "variant", v.Tag, "wheel", filepath.Base(wheel), "error", err)
	return nil
}

// Repairs the wheel for platform compliance and returns the repaired
// wheel's path.
func (l *loop) repairWheel(ctx context.Context, ws *workspace, wheel string) (string, error) {
	if err := l.runCmd(ctx, command.Cmd{
		Name: "auditwheel",
		Args: []string{"repair", "--plat", l.cfg.PlatformTag, "--wheel-dir", repairedDir, wheel},
		Dir:  ws.src(),
	}); err != nil {
		return "", err
	}

	return singleWheel(filepath.Join(ws.src(), repairedDir))
}

// Runs one external command with the deterministic environment.
func (l *loop) runCmd(ctx context.Context, cmd command.Cmd) error {
	cmd.Env = l.env
	slog.Debug("run", "name", cmd.Name, "args", cmd.Args, "dir", cmd.Dir)
	return l.runner.Run(ctx, cmd)
}

// Returns the single wheel in dir.
//
// Zero wheels means the preceding step silently produced nothing; more than
// one means the directory is shared or stale. Both are errors.
func singleWheel(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.whl"))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFileSystemOperation, err)
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w in %s", ErrNoWheel, dir)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w in %s: %d wheels", ErrAmbiguousWheel, dir, len(matches))
	}
}
