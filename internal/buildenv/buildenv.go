package buildenv

import (
	"sort"
	"strconv"
	"strings"

	"github.com/wheelforge/wheelforge/internal/config"
	"github.com/wheelforge/wheelforge/internal/paths"
)

// Compiler cache settings that keep cache hits stable across fresh
// per-variant checkouts. The base directory rewrite makes object paths
// relative to the project mount, and the sloppiness list ignores header
// timestamps that differ between clones.
const (
	ccacheSloppiness = "file_macro,time_macros,include_file_ctime,include_file_mtime"
	buildLibraryPath = "/usr/local/lib"
)

// Returns the deterministic build environment as sorted KEY=value entries.
//
// The same entries are applied on the host (as the container's environment)
// and inside the container (per build command), so behavior is reproducible
// across both. Pure function of the configuration; calling it any number of
// times yields the same result.
func Deterministic(cfg config.Config) []string {
	env := map[string]string{
		"CI":                   "1",
		"PYTHONHASHSEED":       strconv.Itoa(cfg.HashSeed),
		"PIP_CACHE_DIR":        paths.PipCacheMount,
		"CCACHE_DIR":           paths.CcacheMount,
		"CCACHE_BASEDIR":       paths.ProjectMount,
		"CCACHE_SLOPPINESS":    ccacheSloppiness,
		"CCACHE_NOHASHDIR":     "true",
		"LIBRARY_PATH":         buildLibraryPath,
		"LD_LIBRARY_PATH":      buildLibraryPath,
		"WHEELFORGE_CONTAINER": "1",
	}

	if cfg.CFlags != "" {
		env["CFLAGS"] = cfg.CFlags
	}
	if cfg.LDFlags != "" {
		env["LDFLAGS"] = cfg.LDFlags
	}
	if cfg.DisableNetworkTests {
		env["SKIP_NETWORK_TESTS"] = "1"
	}
	for k, v := range cfg.ExtraEnv {
		env[k] = v
	}

	return flatten(env)
}

// Merges override env vars on top of a base env slice.
//
// Later entries win. The result is sorted so that identical inputs always
// produce identical command environments.
func Merge(base, overrides []string) []string {
	merged := make(map[string]string, len(base)+len(overrides))
	for _, entry := range base {
		if k, v, ok := strings.Cut(entry, "="); ok {
			merged[k] = v
		}
	}
	for _, entry := range overrides {
		if k, v, ok := strings.Cut(entry, "="); ok {
			merged[k] = v
		}
	}
	return flatten(merged)
}

// Formats an env map as a sorted list of "key=value" strings.
func flatten(env map[string]string) []string {
	entries := make([]string, 0, len(env))
	for k, v := range env {
		entries = append(entries, k+"="+v)
	}
	sort.Strings(entries)
	return entries
}
