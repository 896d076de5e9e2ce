package launcher

import (
	"path/filepath"
	"slices"
	"testing"

	"github.com/wheelforge/wheelforge/internal/config"
	"github.com/wheelforge/wheelforge/internal/paths"
)

func TestIsolatedArgs(t *testing.T) {
	cfg := config.Default()
	args := isolatedArgs(cfg)

	if args[0] != paths.BinaryMount || args[1] != "build" {
		t.Fatalf("args = %v, want the mounted binary's build command", args)
	}
	if !slices.Contains(args, "--mode=isolated") {
		t.Fatalf("args = %v, missing explicit isolated mode", args)
	}
	if slices.Contains(args, "--continue-on-failure") {
		t.Fatalf("args = %v, continue-on-failure forwarded despite default", args)
	}

	i := slices.Index(args, "--plat")
	if i < 0 || args[i+1] != cfg.PlatformTag {
		t.Fatalf("args = %v, platform tag not forwarded", args)
	}
}

func TestIsolatedArgsForwardsContinueOnFailure(t *testing.T) {
	cfg := config.Default()
	cfg.ContinueOnVariantFailure = true

	if !slices.Contains(isolatedArgs(cfg), "--continue-on-failure") {
		t.Fatal("continue-on-failure not forwarded")
	}
}

func TestResolveProjectRoot(t *testing.T) {
	dir := t.TempDir()

	got, err := resolveProjectRoot(dir)
	if err != nil || got != dir {
		t.Fatalf("resolveProjectRoot(%q) = %q, %v", dir, got, err)
	}

	got, err = resolveProjectRoot("")
	if err != nil {
		t.Fatal(err)
	}
	if !filepath.IsAbs(got) {
		t.Fatalf("empty root resolved to %q, want absolute", got)
	}
}

func TestExitError(t *testing.T) {
	err := &ExitError{Code: 3}
	if err.Error() != "isolated build exited with status 3" {
		t.Fatalf("Error() = %q", err.Error())
	}
}
