package build

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/wheelforge/wheelforge/internal/paths"
)

// Ephemeral directory owned by a single variant iteration.
//
// Holds that variant's fresh source checkout and build outputs. Created at
// the start of the iteration and destroyed at its end whether the build
// succeeded or failed, so nothing a variant produces can leak into the next
// one's inputs.
type workspace struct {
	dir string
}

// Creates the workspace directory for one variant of one run.
func newWorkspace(baseDir, runID, tag string) (*workspace, error) {
	dir := filepath.Join(baseDir, fmt.Sprintf("wheelforge-%s-%s", runID, tag))
	if err := os.MkdirAll(dir, paths.DefaultDirMode); err != nil {
		return nil, fmt.Errorf("%w: create workspace: %w", ErrFileSystemOperation, err)
	}
	return &workspace{dir: dir}, nil
}

// Path of the variant's source checkout inside the workspace.
func (w *workspace) src() string {
	return filepath.Join(w.dir, "src")
}

// Removes the workspace recursively.
//
// Deferred unconditionally by the variant loop. A removal failure is logged
// rather than propagated; it cannot contaminate later variants because every
// workspace path is unique to its variant and run.
func (w *workspace) destroy() {
	if err := os.RemoveAll(w.dir); err != nil {
		slog.Warn("failed to remove workspace", "dir", w.dir, "error", err)
	}
}
