package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	cfg, err := Load("", t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Image != Default().Image {
		t.Fatalf("Image = %q, want default", cfg.Image)
	}
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), ""); err == nil {
		t.Fatal("Load succeeded on a missing explicit file")
	}
}

func TestLoadOverlaysFileOnDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFileName)
	content := `
image: quay.io/pypa/manylinux_2_28_x86_64:latest
platform_tag: manylinux_2_28_x86_64
continue_on_failure: true
skip_variants:
  - cp36-cp36m
env:
  EXTRA: "1"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("", dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Image != "quay.io/pypa/manylinux_2_28_x86_64:latest" {
		t.Fatalf("Image = %q", cfg.Image)
	}
	if cfg.PlatformTag != "manylinux_2_28_x86_64" {
		t.Fatalf("PlatformTag = %q", cfg.PlatformTag)
	}
	if !cfg.ContinueOnVariantFailure {
		t.Fatal("ContinueOnVariantFailure not set from file")
	}
	if len(cfg.VariantDeny) != 1 || cfg.VariantDeny[0] != "cp36-cp36m" {
		t.Fatalf("VariantDeny = %v", cfg.VariantDeny)
	}
	if cfg.ExtraEnv["EXTRA"] != "1" {
		t.Fatalf("ExtraEnv = %v", cfg.ExtraEnv)
	}

	// Untouched keys keep their defaults.
	if cfg.HashSeed != Default().HashSeed {
		t.Fatalf("HashSeed = %d, want default", cfg.HashSeed)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFileName)
	if err := os.WriteFile(path, []byte("imige: typo\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load("", dir); err == nil {
		t.Fatal("Load accepted an unknown key")
	}
}
