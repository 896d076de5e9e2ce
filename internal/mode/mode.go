package mode

import (
	"errors"
	"fmt"
	"os"

	"github.com/wheelforge/wheelforge/internal/paths"
)

// Where a run is executing: on the host or inside the build container.
type Mode int

const (
	Host     Mode = iota // Running on the host, outside the container.
	Isolated             // Running inside the build container.
)

var (
	ErrAmbiguousEnvironment = errors.New("ambiguous build environment")
	ErrUnknownMode          = errors.New("unknown run mode")
)

// Returns the mode name ("host" or "isolated").
func (m Mode) String() string {
	switch m {
	case Host:
		return "host"
	case Isolated:
		return "isolated"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Parses a mode flag value.
//
// "auto" (and "") fall back to filesystem probing via [Detect]. Explicit
// "host" and "isolated" values bypass probing entirely; the host launcher
// always passes --mode=isolated to the inner invocation so that probing is
// only a fallback for direct use.
func Parse(value string) (Mode, error) {
	switch value {
	case "host":
		return Host, nil
	case "isolated":
		return Isolated, nil
	case "auto", "":
		return Detect()
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, value)
	}
}

// Decides the run mode by probing the container mount points.
//
// The build container image provides both the project mount and the variants
// root; a host never has either. Both present means isolated, both absent
// means host. A mixed result indicates a broken image or a host that happens
// to carry one of the paths, and is rejected rather than guessed at.
func Detect() (Mode, error) {
	project := isDir(paths.ProjectMount)
	variants := isDir(paths.VariantsRoot)

	switch {
	case project && variants:
		return Isolated, nil
	case !project && !variants:
		return Host, nil
	default:
		return 0, fmt.Errorf("%w: project mount present=%t, variants root present=%t",
			ErrAmbiguousEnvironment, project, variants)
	}
}

// Whether path exists and is a directory.
func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
