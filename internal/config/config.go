package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/wheelforge/wheelforge/internal/paths"
)

// How auditwheel inspection failures are treated.
const (
	AuditWarn   = "warn"   // Log the failure and continue (default).
	AuditStrict = "strict" // Treat the failure as fatal.
)

var (
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Immutable build configuration.
//
// Constructed once in the CLI from defaults, an optional config file, and
// flags, then passed by value into every component. Nothing reads ambient
// process state after construction.
type Config struct {

	// Reference of the manylinux build image.
	Image string `yaml:"image"`

	// Host-side project root. Set from the CLI, never from the config
	// file: the file is itself located via the project root.
	ProjectRoot string `yaml:"-"`

	// Platform tag passed to auditwheel repair.
	PlatformTag string `yaml:"platform_tag"`

	// Root directory scanned for interpreter variants inside the container.
	VariantsRoot string `yaml:"variants_root"`

	// Variant ABI tags to build. Empty means all discovered variants.
	VariantAllow []string `yaml:"variants"`

	// Variant ABI tags to skip.
	VariantDeny []string `yaml:"skip_variants"`

	// Pinned minimum versions of the extension-build toolchain, installed
	// into each variant before building.
	Toolchain []string `yaml:"toolchain"`

	// Compiler flag overrides for deterministic builds.
	CFlags  string `yaml:"cflags"`
	LDFlags string `yaml:"ldflags"`

	// Fixed interpreter hash seed.
	HashSeed int `yaml:"hash_seed"`

	// Whether to set the flag excluding network-dependent tests.
	DisableNetworkTests bool `yaml:"disable_network_tests"`

	// Whether to keep building remaining variants after one fails.
	// The run still exits non-zero. Defaults to fail-fast.
	ContinueOnVariantFailure bool `yaml:"continue_on_failure"`

	// Audit failure policy: "warn" or "strict".
	AuditPolicy string `yaml:"audit"`

	// Containerd connection settings for the host launcher.
	ContainerdAddress   string `yaml:"containerd_address"`
	ContainerdNamespace string `yaml:"containerd_namespace"`

	// Additional environment entries for the build environment.
	ExtraEnv map[string]string `yaml:"env"`
}

// Returns the built-in defaults.
func Default() Config {
	return Config{
		Image:        "quay.io/pypa/manylinux2014_x86_64:latest",
		PlatformTag:  "manylinux2014_x86_64",
		VariantsRoot: paths.VariantsRoot,
		Toolchain: []string{
			"setuptools>=69",
			"wheel>=0.42",
			"cython>=3.0",
		},
		CFlags:              "-g0 -O2 -pipe",
		HashSeed:            8675309,
		DisableNetworkTests: true,
		AuditPolicy:         AuditWarn,
		ContainerdAddress:   "/run/containerd/containerd.sock",
		ContainerdNamespace: "wheelforge",
	}
}

// Checks the configuration for values no run can proceed with.
func (c Config) Validate() error {
	if c.Image == "" {
		return fmt.Errorf("%w: image reference is empty", ErrInvalidConfig)
	}
	if c.PlatformTag == "" {
		return fmt.Errorf("%w: platform tag is empty", ErrInvalidConfig)
	}
	if c.VariantsRoot == "" {
		return fmt.Errorf("%w: variants root is empty", ErrInvalidConfig)
	}
	if c.AuditPolicy != AuditWarn && c.AuditPolicy != AuditStrict {
		return fmt.Errorf("%w: audit policy %q (want %q or %q)",
			ErrInvalidConfig, c.AuditPolicy, AuditWarn, AuditStrict)
	}
	return nil
}

// Whether the given variant ABI tag should be built.
//
// The deny list wins over the allow list. An empty allow list admits every
// discovered variant.
func (c Config) VariantEnabled(tag string) bool {
	if slices.Contains(c.VariantDeny, tag) {
		return false
	}
	if len(c.VariantAllow) == 0 {
		return true
	}
	return slices.Contains(c.VariantAllow, tag)
}
