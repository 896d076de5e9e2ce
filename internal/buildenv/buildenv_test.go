package buildenv

import (
	"slices"
	"strings"
	"testing"

	"github.com/wheelforge/wheelforge/internal/config"
)

func entryValue(t *testing.T, env []string, key string) string {
	t.Helper()
	for _, entry := range env {
		if k, v, ok := strings.Cut(entry, "="); ok && k == key {
			return v
		}
	}
	t.Fatalf("entry %s missing from %v", key, env)
	return ""
}

func TestDeterministic(t *testing.T) {
	cfg := config.Default()
	env := Deterministic(cfg)

	if got := entryValue(t, env, "PYTHONHASHSEED"); got != "8675309" {
		t.Fatalf("PYTHONHASHSEED = %q", got)
	}
	if got := entryValue(t, env, "CI"); got != "1" {
		t.Fatalf("CI = %q", got)
	}
	if got := entryValue(t, env, "CCACHE_DIR"); got != "/ccache" {
		t.Fatalf("CCACHE_DIR = %q", got)
	}
	if got := entryValue(t, env, "CFLAGS"); got != cfg.CFlags {
		t.Fatalf("CFLAGS = %q, want %q", got, cfg.CFlags)
	}
	if got := entryValue(t, env, "SKIP_NETWORK_TESTS"); got != "1" {
		t.Fatalf("SKIP_NETWORK_TESTS = %q", got)
	}
	if got := entryValue(t, env, "WHEELFORGE_CONTAINER"); got != "1" {
		t.Fatalf("WHEELFORGE_CONTAINER = %q", got)
	}
}

func TestDeterministicIsIdempotent(t *testing.T) {
	cfg := config.Default()

	first := Deterministic(cfg)
	second := Deterministic(cfg)

	if !slices.Equal(first, second) {
		t.Fatalf("repeated calls disagree:\n%v\n%v", first, second)
	}
}

func TestDeterministicIsSorted(t *testing.T) {
	env := Deterministic(config.Default())
	if !slices.IsSorted(env) {
		t.Fatalf("entries not sorted: %v", env)
	}
}

func TestDeterministicOmitsNetworkFlagWhenEnabled(t *testing.T) {
	cfg := config.Default()
	cfg.DisableNetworkTests = false

	for _, entry := range Deterministic(cfg) {
		if strings.HasPrefix(entry, "SKIP_NETWORK_TESTS=") {
			t.Fatalf("network exclusion flag set despite config: %s", entry)
		}
	}
}

func TestDeterministicExtraEnvOverrides(t *testing.T) {
	cfg := config.Default()
	cfg.ExtraEnv = map[string]string{
		"CI":     "true",
		"CUSTOM": "value",
	}

	env := Deterministic(cfg)
	if got := entryValue(t, env, "CI"); got != "true" {
		t.Fatalf("CI = %q, want extra-env override", got)
	}
	if got := entryValue(t, env, "CUSTOM"); got != "value" {
		t.Fatalf("CUSTOM = %q", got)
	}
}

func TestMerge(t *testing.T) {
	base := []string{"A=1", "B=2"}
	merged := Merge(base, []string{"B=3", "C=4"})

	if got := entryValue(t, merged, "A"); got != "1" {
		t.Fatalf("A = %q", got)
	}
	if got := entryValue(t, merged, "B"); got != "3" {
		t.Fatalf("B = %q, want override", got)
	}
	if got := entryValue(t, merged, "C"); got != "4" {
		t.Fatalf("C = %q", got)
	}
	if !slices.IsSorted(merged) {
		t.Fatalf("merged entries not sorted: %v", merged)
	}
}
