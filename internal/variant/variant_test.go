package variant

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	for _, tag := range []string{"cp39-cp39", "cp310-cp310", "cp38-cp38"} {
		if err := os.Mkdir(filepath.Join(root, tag), 0755); err != nil {
			t.Fatal(err)
		}
	}
	// Stray file in the root must be ignored.
	if err := os.WriteFile(filepath.Join(root, "README"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	variants, err := Discover(root)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	want := []string{"cp310-cp310", "cp38-cp38", "cp39-cp39"}
	if len(variants) != len(want) {
		t.Fatalf("got %d variants, want %d", len(variants), len(want))
	}
	for i, tag := range want {
		if variants[i].Tag != tag {
			t.Fatalf("variants[%d].Tag = %q, want %q (sorted)", i, variants[i].Tag, tag)
		}
		if variants[i].Root != filepath.Join(root, tag) {
			t.Fatalf("variants[%d].Root = %q", i, variants[i].Root)
		}
	}
}

func TestDiscoverEmpty(t *testing.T) {
	if _, err := Discover(t.TempDir()); !errors.Is(err, ErrNoVariants) {
		t.Fatalf("err = %v, want ErrNoVariants", err)
	}
}

func TestDiscoverMissingRoot(t *testing.T) {
	if _, err := Discover(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("Discover succeeded on a missing root")
	}
}

func TestPython(t *testing.T) {
	v := Variant{Tag: "cp39-cp39", Root: "/opt/python/cp39-cp39"}
	if got := v.Python(); got != "/opt/python/cp39-cp39/bin/python" {
		t.Fatalf("Python() = %q", got)
	}
}
