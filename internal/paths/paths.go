package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (

	// Name used for directory and file naming.
	toolName = "wheelforge"

	// Default permission mode for directories.
	DefaultDirMode os.FileMode = 0755

	// Default permission mode for files.
	DefaultFileMode os.FileMode = 0644
)

// Fixed mount points inside the build container.
//
// The project tree, the package-index cache, the compiler cache, and the
// orchestrator binary are all bind-mounted at these locations. The variant
// build loop and the environment detector rely on them being stable.
const (

	// Where the project source tree is mounted, read-write.
	ProjectMount = "/project"

	// Where the host's pip cache is mounted.
	PipCacheMount = "/cache/pip"

	// Where the host's ccache directory is mounted.
	CcacheMount = "/ccache"

	// Where the orchestrator binary is mounted, read-only.
	BinaryMount = "/usr/local/bin/wheelforge"

	// Root directory under which manylinux images install one toolchain
	// per interpreter ABI (e.g., /opt/python/cp39-cp39).
	VariantsRoot = "/opt/python"

	// Output directory for repaired wheels, relative to the project root.
	WheelhouseDir = "wheelhouse"
)

// Path to the host-side compiler cache directory.
//
//	Linux:   ~/.cache/wheelforge/ccache
//	macOS:   ~/Library/Caches/wheelforge/ccache
func Ccache() string {
	return filepath.Join(xdg.CacheHome, toolName, "ccache")
}

// Path to the wheelhouse under the given project root.
func Wheelhouse(projectRoot string) string {
	return filepath.Join(projectRoot, WheelhouseDir)
}
